package eval

import (
	"github.com/csgarlock/corvid/internal/attacks"
	"github.com/csgarlock/corvid/internal/position"
)

func evaluateRooks(p *position.Position, c position.Color) (mg, eg int32) {
	them := c.Other()
	ownPawns := p.Pieces(c, position.Pawn)
	enemyPawns := p.Pieces(them, position.Pawn)
	enemyKing := p.KingSquare[them]

	rooks := p.Pieces(c, position.Rook)
	bb := rooks
	for bb != 0 {
		sq := attacks.PopLSB(&bb)
		file := sq.File()
		fileBB := attacks.Files[file]
		switch {
		case ownPawns&fileBB == 0 && enemyPawns&fileBB == 0:
			mg += openFileBonusMG
			eg += openFileBonusEG
		case ownPawns&fileBB == 0:
			mg += semiOpenBonusMG
			eg += semiOpenBonusEG
		}

		on7th := (c == position.White && sq.Rank() == 6) || (c == position.Black && sq.Rank() == 1)
		if on7th {
			kingBackRank := (c == position.White && enemyKing.Rank() == 7) || (c == position.Black && enemyKing.Rank() == 0)
			enemyPawnsOn7th := enemyPawns&rankRelativeTo(c, 6) != 0
			if kingBackRank || enemyPawnsOn7th {
				mg += seventhRankBonusMG
				eg += seventhRankBonusEG
			}
		}
	}

	if rooks.PopCount() == 2 {
		s1 := attacks.LSB(rooks)
		rest := rooks &^ s1.Bitboard()
		s2 := attacks.LSB(rest)
		if s1.File() == s2.File() || s1.Rank() == s2.Rank() {
			if attacks.RookAttacks(s1, p.All)&s2.Bitboard() != 0 {
				mg += connectedRooksMG
				eg += connectedRooksEG
			}
		}
	}
	return mg, eg
}

// rankRelativeTo returns the rank bitboard that is "rankFromOwn" ranks
// ahead of color c's own back rank (0-indexed).
func rankRelativeTo(c position.Color, rankFromOwn int) attacks.Bitboard {
	if c == position.White {
		return attacks.Ranks[rankFromOwn]
	}
	return attacks.Ranks[7-rankFromOwn]
}
