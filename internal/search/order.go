package search

import (
	"github.com/csgarlock/corvid/internal/movegen"
	"github.com/csgarlock/corvid/internal/position"
)

const (
	scoreTT          = 10_000_000
	scoreCaptureBase = 5_000_000
	scoreKiller1     = 4_000_000
	scoreKiller2     = 3_900_000
	scoreCounter     = 3_800_000
	scorePromoBase   = 400_000
	scorePromoPer    = 50_000
	scoreRecapture   = 60_000
)

var pieceOrderValue = [6]int32{1, 3, 3, 5, 9, 0}

// scoreMoves fills scores[i] with move i's ordering priority (spec.md
// §4.7.2), used at every node (full table) and in quiescence (captures
// only, via scoreCapture).
func (th *Thread) scoreMoves(list *movegen.List, ply int, ttMove, prevMove position.Move, scores []int32) {
	k1, k2 := th.Heur.Killers(ply)
	side := th.Pos.SideToMove
	counter := th.Heur.Countermove(side, prevMove)

	for i := 0; i < list.Len(); i++ {
		m := list.At(i)
		switch {
		case m == ttMove:
			scores[i] = scoreTT
		case m.IsCapture() || m.IsPromotion():
			scores[i] = th.scoreCapture(m, prevMove)
		case m == k1:
			scores[i] = scoreKiller1
		case m == k2:
			scores[i] = scoreKiller2
		case counter != position.NilMove && m == counter:
			scores[i] = scoreCounter
		default:
			scores[i] = th.Heur.History(side, m) + th.Heur.ContinuationScore(side, prevMove, m)/2
		}
	}
}

func (th *Thread) scoreCapture(m position.Move, prevMove position.Move) int32 {
	victim := m.CapturedKind()
	if m.IsEnPassant() {
		victim = position.Pawn
	}
	attacker := pieceOrderValue[m.MovingKind()]
	score := scoreCaptureBase + 1000*(int32(victim)+1) - attacker + 4*th.Heur.CaptureHistory(m)
	if m.IsPromotion() {
		score += scorePromoBase + scorePromoPer*int32(m.PromotedKind())
	}
	if prevMove != position.NilMove && prevMove.IsCapture() && m.To() == prevMove.To() {
		score += scoreRecapture
	}
	return score
}

// pickBest performs one pass of selection sort starting at from,
// swapping the highest-scoring remaining move into place and returning
// it. This keeps the hot path allocation-free (spec.md §4.7 step 14).
func pickBest(list *movegen.List, scores []int32, from int) position.Move {
	best := from
	for i := from + 1; i < list.Len(); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	if best != from {
		scores[from], scores[best] = scores[best], scores[from]
		swapMoves(list, from, best)
	}
	return list.At(from)
}

func swapMoves(list *movegen.List, i, j int) {
	mi, mj := list.At(i), list.At(j)
	list.Set(i, mj)
	list.Set(j, mi)
}

// seeThreshold is the losing-capture pruning cutoff of spec.md §4.7 step
// 15: tighter at low depth, looser (more permissive of small losses) as
// depth grows.
func seeThreshold(depth int) int32 {
	if depth <= 3 {
		return -50
	}
	return -100
}
