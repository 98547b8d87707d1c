// Package eval implements the tapered static evaluation of spec.md §4.4:
// material, piece-square tables, pawn structure, king safety, mobility,
// and the smaller positional terms, blended between middlegame and
// endgame scores by a phase value, plus the pawn-hash and eval caches of
// §4.4.1. Grounded in the teacher's Eval.go piece-square/phase scheme,
// generalized to every term spec.md names.
package eval

import "github.com/csgarlock/corvid/internal/position"

// Centipawn-unit material values, mg and eg (spec.md §4.4 item 1).
var materialMG = [6]int32{82, 337, 365, 477, 1025, 0}
var materialEG = [6]int32{94, 281, 297, 512, 936, 0}

// Phase weights per piece, summing to 24 at the start of the game
// (spec.md §4.4's "phase ... 0 = deep endgame, 24 = opening material").
var phaseWeight = [6]int32{0, 1, 1, 2, 4, 0}

const totalPhase = 24

const (
	bishopPairBonusMG = 25
	bishopPairBonusEG = 35
	tempoBonus        = 10
)

// computePhase returns 0 (deep endgame) .. 24 (opening material) from the
// non-pawn piece counts on the board.
func computePhase(p *position.Position) int32 {
	var ph int32
	for c := position.Color(0); c < 2; c++ {
		for k := position.Knight; k <= position.Queen; k++ {
			ph += int32(p.Pieces(c, k).PopCount()) * phaseWeight[k]
		}
	}
	if ph > totalPhase {
		ph = totalPhase
	}
	return ph
}
