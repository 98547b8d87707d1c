package eval

import (
	"github.com/csgarlock/corvid/internal/attacks"
	"github.com/csgarlock/corvid/internal/position"
)

// hangingPenalty[kind] and threatBonus below implement spec.md §4.4 items
// 8 and 9: pieces hanging to an undefended attack, and enemy pieces we
// merely threaten.
var hangingPenaltyMG = [6]int32{0, 30, 30, 45, 60, 0}
var hangingPenaltyEG = [6]int32{0, 40, 40, 55, 70, 0}

const (
	pawnThreatBonus  = 15
	minorThreatBonus = 35
)

func evaluateHangingAndThreats(p *position.Position, c position.Color) (mg, eg int32) {
	us := c
	them := c.Other()

	for k := position.Knight; k <= position.Queen; k++ {
		bb := p.Pieces(us, k)
		for bb != 0 {
			sq := attacks.PopLSB(&bb)
			if p.IsAttacked(sq, them) && !p.IsAttacked(sq, us) {
				mg -= hangingPenaltyMG[k]
				eg -= hangingPenaltyEG[k]
			}
		}
	}

	ourPawnAttacks := pawnAttackSet(p, us)
	enemyNonKing := p.Occupied(them) &^ p.Pieces(them, position.King)
	mg += int32((ourPawnAttacks & enemyNonKing).PopCount()) * pawnThreatBonus
	eg += int32((ourPawnAttacks & enemyNonKing).PopCount()) * pawnThreatBonus

	valuable := p.Pieces(them, position.Knight) | p.Pieces(them, position.Bishop) |
		p.Pieces(them, position.Rook) | p.Pieces(them, position.Queen)
	bb := valuable
	for bb != 0 {
		sq := attacks.PopLSB(&bb)
		if p.IsAttacked(sq, us) && !p.IsAttacked(sq, them) {
			mg += minorThreatBonus
			eg += minorThreatBonus
		}
	}
	return mg, eg
}

func pawnAttackSet(p *position.Position, c position.Color) attacks.Bitboard {
	var set attacks.Bitboard
	bb := p.Pieces(c, position.Pawn)
	for bb != 0 {
		sq := attacks.PopLSB(&bb)
		set |= attacks.PawnAttacks(c, sq)
	}
	return set
}

const outpostBonus = 20

// evaluateOutposts: a knight on the 5th/6th rank (from own side) that a
// friendly pawn supports and no enemy pawn can ever challenge (spec.md
// §4.4 item 10).
func evaluateOutposts(p *position.Position, c position.Color) (mg, eg int32) {
	them := c.Other()
	knights := p.Pieces(c, position.Knight)
	enemyPawns := p.Pieces(them, position.Pawn)
	ownPawnAttacks := pawnAttackSet(p, c)

	bb := knights
	for bb != 0 {
		sq := attacks.PopLSB(&bb)
		r := rankFromOwn(sq, c)
		if r != 4 && r != 5 {
			continue
		}
		if ownPawnAttacks&sq.Bitboard() == 0 {
			continue
		}
		if neighborFiles(sq.File())&enemyPawns&aheadMaskFor(c, sq.Rank()) != 0 {
			continue
		}
		mg += outpostBonus
		eg += outpostBonus / 2
	}
	return mg, eg
}

func aheadMaskFor(c position.Color, rank int) attacks.Bitboard {
	if c == position.White {
		return aheadMaskWhite(rank)
	}
	return aheadMaskBlack(rank)
}

const badBishopPenalty = -3

// evaluateBadBishop: penalty per own pawn on the same square color as
// each own bishop (spec.md §4.4 item 11).
func evaluateBadBishop(p *position.Position, c position.Color) (mg, eg int32) {
	bishops := p.Pieces(c, position.Bishop)
	ownPawns := p.Pieces(c, position.Pawn)
	bb := bishops
	for bb != 0 {
		sq := attacks.PopLSB(&bb)
		sameColorSquares := lightSquares
		if !isLight(sq) {
			sameColorSquares = ^lightSquares
		}
		count := int32((ownPawns & sameColorSquares).PopCount())
		mg += count * badBishopPenalty
		eg += count * badBishopPenalty
	}
	return mg, eg
}

const lightSquares attacks.Bitboard = 0x55AA55AA55AA55AA

func isLight(sq position.Square) bool { return lightSquares&sq.Bitboard() != 0 }
