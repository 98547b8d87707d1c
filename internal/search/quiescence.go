package search

import (
	"github.com/csgarlock/corvid/internal/eval"
	"github.com/csgarlock/corvid/internal/movegen"
	"github.com/csgarlock/corvid/internal/position"
	"github.com/csgarlock/corvid/internal/see"
)

const (
	deltaPruneMargin = 200
	qSeeThreshold    = -50
	maxQuietChecks   = 8
)

var qPieceValue = [6]int32{100, 320, 330, 500, 900, 20000}

// Quiescence is the leaf-tail search of spec.md §4.7.1, restricted to
// captures, promotions, and (at the first ply only) a handful of quiet
// checks, to avoid the horizon effect at the bottom of the main search.
func (th *Thread) Quiescence(alpha, beta int32, ply, qCheckDepth int) int32 {
	if th.checkTime() {
		return 0
	}
	if ply > th.selDepth {
		th.selDepth = ply
	}

	p := th.Pos
	inCheck := p.InCheck()

	var standPat int32
	if !inCheck {
		standPat = eval.Evaluate(p)
		if standPat >= beta {
			return beta
		}
		alpha = maxI32(alpha, standPat)
	}

	var list movegen.List
	if inCheck {
		movegen.Generate(p, &list, true)
	} else {
		movegen.Generate(p, &list, false)
	}

	var scores [256]int32
	prevMove := position.NilMove
	if ply > 0 {
		prevMove = th.moveStack[ply-1]
	}
	th.scoreMoves(&list, ply, position.NilMove, prevMove, scores[:list.Len()])

	quietChecksTried := 0
	legalMoves := 0

	for i := 0; i < list.Len(); i++ {
		m := pickBest(&list, scores[:list.Len()], i)

		if !inCheck {
			if m.IsQuiet() {
				if qCheckDepth != 0 || quietChecksTried >= maxQuietChecks {
					continue
				}
				if !moveGivesCheck(p, m) {
					continue
				}
				quietChecksTried++
			} else {
				victim := m.CapturedKind()
				if m.IsEnPassant() {
					victim = position.Pawn
				}
				if standPat+deltaPruneMargin+qPieceValue[victim] <= alpha {
					continue
				}
				if see.Evaluate(p, m) < qSeeThreshold {
					continue
				}
			}
		}

		u := p.Make(m)
		if p.IsAttacked(p.KingSquare[p.SideToMove.Other()], p.SideToMove) {
			p.Unmake(m, u)
			continue
		}
		legalMoves++
		th.moveStack[ply] = m
		score := -th.Quiescence(-beta, -alpha, ply+1, 1)
		p.Unmake(m, u)

		if th.Stop.Load() {
			return 0
		}

		if score > alpha {
			alpha = score
			if score >= beta {
				return beta
			}
		}
	}

	// In check with no legal reply is checkmate even at the quiescence
	// horizon (spec.md §4.7.1); a pseudo-legal move count of zero is not
	// enough, since an illegal-looking escape square still appears in the
	// generated list.
	if inCheck && legalMoves == 0 {
		return -MateValue + int32(ply)
	}

	return alpha
}
