package eval

import (
	"github.com/csgarlock/corvid/internal/attacks"
	"github.com/csgarlock/corvid/internal/position"
)

// attackUnits[kind] is the hand-tuned contribution (spec.md §4.4 item 7)
// one attacking piece of that kind adds to a color's king-safety unit
// count, when it attacks any king-zone square. It is a compile-time
// constant; the param file does not override it.
var attackUnits = [6]int32{0, 2, 2, 3, 5, 0}

// kingDangerTable is the non-linear penalty applied to a clamped 0..32
// unit count.
var kingDangerTable = [33]int32{
	0, 0, 1, 2, 3, 5, 7, 9, 12, 15, 18, 22, 26, 30, 35, 39, 44,
	50, 56, 62, 68, 75, 82, 85, 89, 97, 105, 113, 122, 131, 140, 150, 169,
}

const (
	pawnShieldBonus  = 8
	openFileKingMG   = -16
	semiOpenKingMG   = -8
)

func evaluateKingSafety(p *position.Position, c position.Color) (mg, eg int32) {
	us := c
	them := c.Other()
	kingSq := p.KingSquare[us]
	zone := kingZone(kingSq)

	var units int32
	attackerCount := 0
	for k := position.Knight; k <= position.Queen; k++ {
		bb := p.Pieces(them, k)
		for bb != 0 {
			sq := attacks.PopLSB(&bb)
			if pieceAttacks(k, sq, p.All)&zone != 0 {
				units += attackUnits[k]
				attackerCount++
			}
		}
	}
	if attackerCount >= 2 {
		units += int32(attackerCount-1) * 3
	}
	if units > 32 {
		units = 32
	} else if units < 0 {
		units = 0
	}
	mg -= kingDangerTable[units]

	shieldSquares := pawnShieldSquares(kingSq, us)
	shieldCount := (shieldSquares & p.Pieces(us, position.Pawn)).PopCount()
	mg += int32(shieldCount) * pawnShieldBonus

	file := kingSq.File()
	for f := maxInt(0, file-1); f <= minInt(7, file+1); f++ {
		fileBB := attacks.Files[f]
		ownPawns := fileBB & p.Pieces(us, position.Pawn)
		enemyPawns := fileBB & p.Pieces(them, position.Pawn)
		if ownPawns == 0 && enemyPawns == 0 {
			mg += openFileKingMG
		} else if ownPawns == 0 {
			mg += semiOpenKingMG
		}
	}
	return mg, eg
}

// kingZone is the king's own ring plus that ring's ring (spec.md §4.4
// item 7).
func kingZone(sq position.Square) attacks.Bitboard {
	zone := attacks.KingAttacks(sq) | sq.Bitboard()
	ring := zone
	for ring != 0 {
		s := attacks.PopLSB(&ring)
		zone |= attacks.KingAttacks(s)
	}
	return zone
}

func pawnShieldSquares(kingSq position.Square, c position.Color) attacks.Bitboard {
	forward := 8
	if c == position.Black {
		forward = -8
	}
	rank1 := position.Square(int(kingSq) + forward)
	var shield attacks.Bitboard
	for _, df := range [3]int{-1, 0, 1} {
		f := kingSq.File() + df
		if f < 0 || f > 7 {
			continue
		}
		r := rank1.Rank()
		if int(rank1)+forward < 0 {
			continue
		}
		shield |= attacks.FromFileRank(f, r).Bitboard()
	}
	return shield
}

func pieceAttacks(k position.PieceKind, sq position.Square, occ attacks.Bitboard) attacks.Bitboard {
	switch k {
	case position.Knight:
		return attacks.KnightAttacks(sq)
	case position.Bishop:
		return attacks.BishopAttacks(sq, occ)
	case position.Rook:
		return attacks.RookAttacks(sq, occ)
	case position.Queen:
		return attacks.QueenAttacks(sq, occ)
	}
	return 0
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
