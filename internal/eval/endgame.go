package eval

import (
	"github.com/csgarlock/corvid/internal/attacks"
	"github.com/csgarlock/corvid/internal/position"
)

// centerDistance[sq] is the Chebyshev distance from sq to the nearest of
// the four center squares, used to reward king centralization as the
// position empties out (spec.md §4.4 item 13).
var centerDistance [64]int32

func init() {
	for sq := 0; sq < 64; sq++ {
		f, r := sq%8, sq/8
		df := f - 3
		if df < 0 {
			df = 3 - f
		}
		if f >= 4 {
			df = f - 4
		}
		dr := r - 3
		if dr < 0 {
			dr = 3 - r
		}
		if r >= 4 {
			dr = r - 4
		}
		d := df
		if dr > d {
			d = dr
		}
		centerDistance[sq] = int32(d)
	}
}

const kingActivityWeight = 6

// evaluateKingActivity only contributes to the endgame score: an active,
// centralized king is strong once queens and rooks start leaving the
// board, and actively bad in the middlegame where it is handled by
// evaluateKingSafety instead.
func evaluateKingActivity(p *position.Position, c position.Color) int32 {
	sq := p.KingSquare[c]
	return (3 - centerDistance[sq]) * kingActivityWeight
}

// scaleFactor implements spec.md §9's explicit note that endgame scaling
// is applied to the endgame score before tapering, not after: drawish
// material combinations (opposite-colored bishops, or a lone minor up
// with no pawns) are scaled down so the blended score doesn't overstate a
// material edge that is unlikely to convert.
func scaleFactor(p *position.Position) int32 {
	whitePawns := p.Pieces(position.White, position.Pawn).PopCount()
	blackPawns := p.Pieces(position.Black, position.Pawn).PopCount()

	if oppositeColoredBishops(p) {
		minorsAndRooks := p.Pieces(position.White, position.Knight).PopCount() +
			p.Pieces(position.Black, position.Knight).PopCount() +
			p.Pieces(position.White, position.Rook).PopCount() +
			p.Pieces(position.Black, position.Rook).PopCount()
		if minorsAndRooks == 0 {
			return 16
		}
		return 48
	}

	if whitePawns == 0 && blackPawns == 0 {
		wMajorMinor := nonPawnCount(p, position.White)
		bMajorMinor := nonPawnCount(p, position.Black)
		majors := p.Pieces(position.White, position.Rook) | p.Pieces(position.Black, position.Rook) |
			p.Pieces(position.White, position.Queen) | p.Pieces(position.Black, position.Queen)
		if majors == 0 && wMajorMinor <= 1 && bMajorMinor <= 1 {
			return 16
		}
	}

	return 64
}

func nonPawnCount(p *position.Position, c position.Color) int {
	n := 0
	for k := position.Knight; k <= position.Queen; k++ {
		n += p.Pieces(c, k).PopCount()
	}
	return n
}

func oppositeColoredBishops(p *position.Position) bool {
	wb := p.Pieces(position.White, position.Bishop)
	bb := p.Pieces(position.Black, position.Bishop)
	if wb.PopCount() != 1 || bb.PopCount() != 1 {
		return false
	}
	return isLight(attacks.LSB(wb)) != isLight(attacks.LSB(bb))
}
