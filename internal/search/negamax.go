package search

import (
	"math"

	"github.com/csgarlock/corvid/internal/eval"
	"github.com/csgarlock/corvid/internal/movegen"
	"github.com/csgarlock/corvid/internal/position"
	"github.com/csgarlock/corvid/internal/see"
	"github.com/csgarlock/corvid/internal/tb"
	"github.com/csgarlock/corvid/internal/tt"
)

// Reverse-futility, razoring, and futility margins (spec.md §4.7 steps 9,
// 10, 15), indexed by depth.
var reverseFutilityMargin = [4]int32{0, 120, 240, 400}
var razorMargin = [3]int32{0, 220, 420}
var futilityMargin = [4]int32{0, 90, 170, 260}
var lateMovePruneThreshold = [4]int{0, 6, 10, 16}

// These are Params' defaults (internal/search/params.go); the package
// consts stay the canonical values so Default() needs no duplicated
// literals, while every call site that can be tuned reads th.Params
// instead.
const (
	aspBase     = 12
	aspPerDepth = 2

	histPruneMinDepth     = 5
	histPruneLateBase     = 3
	histPruneLatePerDepth = 2
	histPruneThreshold    = -2000

	lmrDivisor = 2.25
)

// Negamax searches (alpha, beta) at depth from ply, returning a score
// from the side-to-move's perspective. pvNode marks a principal-variation
// node (wide window); excludedMove, when non-nil, is skipped during move
// iteration for the singular-extension test (spec.md §4.7 step 12).
func (th *Thread) Negamax(alpha, beta int32, depth, ply int, pvNode bool, excludedMove position.Move) int32 {
	th.clearPVLen(ply)
	isRoot := ply == 0

	// Step 1: time/stop check.
	if !isRoot && th.checkTime() {
		return 0
	}
	if ply > th.selDepth {
		th.selDepth = ply
	}

	// Step 2: mate-distance pruning.
	if !isRoot {
		alpha = maxI32(alpha, -MateValue+int32(ply))
		beta = minI32(beta, MateValue-int32(ply)-1)
		if alpha >= beta {
			return alpha
		}
	}

	p := th.Pos
	inCheck := p.InCheck()

	// Step 3: draw detection.
	if !isRoot && !inCheck {
		if p.IsDrawnByHalfmoveClock() || p.IsRepetition() {
			return 0
		}
	}

	// Step 4: tablebase probe.
	if !isRoot && th.TB != nil {
		if totalPieceCount(p) <= th.TB.MaxPieces() {
			if wdl, ok := th.TB.Probe(p); ok {
				return tb.ScoreFromWDL(wdl, ply)
			}
		}
	}

	// Step 5: drop to quiescence at the search horizon.
	if depth <= 0 {
		return th.Quiescence(alpha, beta, ply, 0)
	}

	// Step 6: transposition table probe.
	var ttMove position.Move
	if entry, ok := th.TT.Probe(p.Key, ply); ok {
		ttMove = position.Move(entry.Move)
		if int(entry.Depth) >= depth && !pvNode && excludedMove == position.NilMove {
			switch entry.Flag {
			case tt.FlagExact:
				return entry.Score
			case tt.FlagLower:
				if entry.Score >= beta {
					return entry.Score
				}
			case tt.FlagUpper:
				if entry.Score <= alpha {
					return entry.Score
				}
			}
		}
		if pvNode {
			switch entry.Flag {
			case tt.FlagLower:
				alpha = maxI32(alpha, entry.Score)
			case tt.FlagUpper:
				beta = minI32(beta, entry.Score)
			}
			if alpha >= beta {
				return entry.Score
			}
		}
	}

	// Step 7: internal iterative deepening.
	if pvNode && ttMove == position.NilMove && depth >= 6 && !inCheck {
		th.Negamax(alpha, beta, depth-2, ply, true, position.NilMove)
		if th.pvLen[ply] > 0 {
			ttMove = th.pv[ply][0]
		}
	}

	// Step 8: static eval, and the "improving" flag.
	var staticEval int32
	if inCheck {
		staticEval = -MateValue + int32(ply)
	} else {
		staticEval = eval.Evaluate(p)
	}
	th.staticEval[ply] = staticEval
	improving := ply >= 2 && !inCheck && staticEval > th.staticEval[ply-2]

	nonPV := !pvNode

	// Step 9: reverse futility pruning.
	if nonPV && !inCheck && depth <= 3 && excludedMove == position.NilMove {
		if staticEval-reverseFutilityMargin[depth] >= beta {
			return staticEval
		}
	}

	// Step 10: razoring.
	if nonPV && !inCheck && depth <= 2 && excludedMove == position.NilMove {
		if staticEval+razorMargin[depth] <= alpha {
			return th.Quiescence(alpha, beta, ply, 0)
		}
	}

	// Step 11: null-move pruning.
	if nonPV && !inCheck && depth >= 3 && excludedMove == position.NilMove &&
		p.HalfmoveClock < 90 && hasNonPawnMaterial(p) {
		r := 2
		if depth >= 6 {
			r = 3
		}
		nullUndo := p.MakeNull()
		score := -th.Negamax(-beta, -beta+1, depth-1-r, ply+1, false, position.NilMove)
		p.UnmakeNull(nullUndo)
		if !th.Stop.Load() && score >= beta {
			if depth >= 8 {
				verify := th.Negamax(beta-1, beta, depth-1-r, ply, false, position.NilMove)
				if verify >= beta {
					return score
				}
			} else {
				return score
			}
		}
	}

	// Step 12: singular extension check (seeds singularMove for step 15).
	var singularMove position.Move
	if pvNode && ttMove != position.NilMove && depth >= 8 && excludedMove == position.NilMove {
		if entry, ok := th.TT.Probe(p.Key, ply); ok && entry.Flag == tt.FlagExact && int(entry.Depth) >= depth-2 {
			singularBeta := entry.Score - (2*int32(depth) + 50)
			score := th.Negamax(singularBeta-1, singularBeta, depth/2, ply, false, ttMove)
			if score < singularBeta {
				singularMove = ttMove
			}
		}
	}

	// Step 13: ProbCut.
	if nonPV && !inCheck && depth >= 6 && excludedMove == position.NilMove &&
		beta > -MateValue+MateBound && beta < MateValue-MateBound {
		probCutBeta := beta + 80 + 20*int32(depth)
		if th.probCut(probCutBeta, depth, ply) {
			return probCutBeta
		}
	}

	// Step 14: generate and score pseudo-legal moves.
	var list movegen.List
	movegen.Generate(p, &list, true)
	var scores [256]int32
	prevMove := position.NilMove
	if ply > 0 {
		prevMove = th.moveStack[ply-1]
	}
	th.scoreMoves(&list, ply, ttMove, prevMove, scores[:list.Len()])

	legalMoves := 0
	bestScore := int32(-MateValue - 1)
	bestMove := position.NilMove
	allNode := true

	for i := 0; i < list.Len(); i++ {
		m := pickBest(&list, scores[:list.Len()], i)

		if m == excludedMove {
			continue
		}

		isQuiet := m.IsQuiet()

		// Late-move pruning.
		if nonPV && !inCheck && depth <= 3 && isQuiet &&
			legalMoves >= lateMovePruneThreshold[depth] {
			continue
		}

		// SEE pruning for losing non-PV captures, excluding the TT move
		// and promotions.
		if nonPV && !isQuiet && m != ttMove && !m.IsPromotion() {
			if !see.GainsAtLeast(p, m, seeThreshold(depth)) {
				continue
			}
		}

		// Futility pruning.
		if nonPV && !inCheck && depth <= 3 && isQuiet && m != ttMove &&
			staticEval+futilityMargin[depth] <= alpha {
			givesCheck := moveGivesCheck(p, m)
			if !givesCheck {
				continue
			}
		}

		u := p.Make(m)
		if p.IsAttacked(p.KingSquare[p.SideToMove.Other()], p.SideToMove) {
			p.Unmake(m, u)
			continue
		}

		givesCheck := p.InCheck()

		// History pruning.
		if nonPV && !inCheck && depth >= th.Params.HistPruneMinDepth && isQuiet &&
			m != ttMove && !isKillerOrCounter(th, ply, prevMove, m) &&
			legalMoves >= th.Params.HistPruneLateBase+depth*th.Params.HistPruneLatePerDepth &&
			!givesCheck {
			histScore := th.Heur.History(p.SideToMove.Other(), m) + th.Heur.ContinuationScore(p.SideToMove.Other(), prevMove, m)
			if histScore < th.Params.HistPruneThreshold {
				p.Unmake(m, u)
				continue
			}
		}

		legalMoves++
		th.moveStack[ply] = m

		newDepth := depth - 1
		if m == singularMove {
			newDepth++
		}

		var score int32
		if legalMoves == 1 {
			score = -th.Negamax(-beta, -alpha, newDepth, ply+1, pvNode, position.NilMove)
		} else {
			reduce := 0
			if isQuiet && !inCheck && newDepth >= 3 && legalMoves >= 4 {
				reduce = lmrReduction(depth, legalMoves, th.Params.LMRDivisor)
				if improving {
					reduce--
				}
				if givesCheck {
					reduce--
				}
				histScore := th.Heur.History(p.SideToMove.Other(), m)
				if histScore > 4000 {
					reduce--
				} else if histScore < -4000 {
					reduce++
				}
				if isKillerOrCounter(th, ply, prevMove, m) {
					reduce--
				}
				if reduce < 0 {
					reduce = 0
				}
				if newDepth-1-reduce < 1 {
					reduce = newDepth - 1
					if reduce < 0 {
						reduce = 0
					}
				}
			}

			score = -th.Negamax(-alpha-1, -alpha, newDepth-reduce, ply+1, false, position.NilMove)
			if score > alpha && reduce > 0 {
				score = -th.Negamax(-alpha-1, -alpha, newDepth, ply+1, false, position.NilMove)
			}
			if score > alpha && pvNode {
				score = -th.Negamax(-beta, -alpha, newDepth, ply+1, true, position.NilMove)
			}
		}

		p.Unmake(m, u)

		if th.Stop.Load() {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = m
			if score > alpha {
				allNode = false
				alpha = score
				th.pushPV(ply, m)
				if isRoot {
					th.RootBestMove = m
					th.RootBestScore = score
				}
			}
		}

		if alpha >= beta {
			if isQuiet {
				bonus := int32(depth * depth)
				th.Heur.AddKiller(ply, m)
				th.Heur.AddHistory(p.SideToMove.Other(), m, bonus)
				th.Heur.SetCountermove(p.SideToMove.Other(), prevMove, m)
				th.Heur.AddContinuation(p.SideToMove.Other(), prevMove, m, bonus)
			} else {
				th.Heur.AddCaptureHistory(m, int32(depth*depth))
			}
			th.TT.Store(p.Key, depth, beta, tt.FlagLower, uint32(m), ply)
			return beta
		}
	}

	if legalMoves == 0 {
		if excludedMove != position.NilMove {
			return alpha
		}
		if inCheck {
			return -MateValue + int32(ply)
		}
		return 0
	}

	flag := tt.FlagUpper
	if !allNode {
		flag = tt.FlagExact
	}
	th.TT.Store(p.Key, depth, bestScore, flag, uint32(bestMove), ply)
	return bestScore
}

// probCut tries up to 6 good captures at a shallow reduced depth to see
// if any of them already clears probCutBeta (spec.md §4.7 step 13).
func (th *Thread) probCut(probCutBeta int32, depth, ply int) bool {
	p := th.Pos
	var list movegen.List
	movegen.Generate(p, &list, false)
	tried := 0
	for i := 0; i < list.Len() && tried < 6; i++ {
		m := list.At(i)
		if !see.GainsAtLeast(p, m, 0) {
			continue
		}
		u := p.Make(m)
		if p.IsAttacked(p.KingSquare[p.SideToMove.Other()], p.SideToMove) {
			p.Unmake(m, u)
			continue
		}
		tried++
		score := -th.Negamax(-probCutBeta, -probCutBeta+1, depth-4, ply+1, false, position.NilMove)
		p.Unmake(m, u)
		if th.Stop.Load() {
			return false
		}
		if score >= probCutBeta {
			return true
		}
	}
	return false
}

func isKillerOrCounter(th *Thread, ply int, prevMove, m position.Move) bool {
	k1, k2 := th.Heur.Killers(ply)
	if m == k1 || m == k2 {
		return true
	}
	// Both callers ask after m has been made, so the mover (the side the
	// countermove was recorded under) is the side no longer to move.
	side := th.Pos.SideToMove.Other()
	return th.Heur.Countermove(side, prevMove) == m
}

// lmrReduction implements the log-log table of spec.md §4.7 step 15.
func lmrReduction(depth, moveIndex int, divisor float64) int {
	r := (math.Log(float64(depth)+1) * math.Log(float64(moveIndex)+1)) / divisor
	ri := int(r)
	if ri < 0 {
		ri = 0
	}
	if ri > depth-1 {
		ri = depth - 1
	}
	return ri
}

func totalPieceCount(p *position.Position) int {
	n := 0
	for c := position.Color(0); c < 2; c++ {
		for k := position.Pawn; k <= position.King; k++ {
			n += p.Pieces(c, k).PopCount()
		}
	}
	return n
}

func hasNonPawnMaterial(p *position.Position) bool {
	us := p.SideToMove
	for k := position.Knight; k <= position.Queen; k++ {
		if p.Pieces(us, k) != 0 {
			return true
		}
	}
	return false
}

// moveGivesCheck makes and unmakes m to test whether it checks the
// opponent; used only off the hot capture path (futility's check
// exemption, spec.md §4.7 step 15).
func moveGivesCheck(p *position.Position, m position.Move) bool {
	u := p.Make(m)
	check := p.InCheck()
	p.Unmake(m, u)
	return check
}

func maxI32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func minI32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}
