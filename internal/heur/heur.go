// Package heur holds the per-thread move-ordering heuristics of spec.md
// §4.9: killers, history, countermove, continuation history, and capture
// history. Every search thread (the main thread and every Lazy SMP
// helper) owns its own Tables value — nothing here is shared or
// synchronized, mirroring the teacher's per-state histories in
// histories.go generalized from undo-stacks to move-ordering scores.
package heur

import "github.com/csgarlock/corvid/internal/position"

const maxPly = 128

// Tables is the full heuristic state for one search thread.
type Tables struct {
	killers [maxPly][2]position.Move

	history [2][64][64]int32

	counter [2][64][64]position.Move

	contHist [2][6][64][6][64]int32

	captureHistory [6][64][6]int32
}

func New() *Tables { return &Tables{} }

// Killers returns ply's two killer moves.
func (t *Tables) Killers(ply int) (position.Move, position.Move) {
	return t.killers[ply][0], t.killers[ply][1]
}

// AddKiller pushes m into ply's killer slots, keeping the most recent in
// slot 0 and never storing a duplicate.
func (t *Tables) AddKiller(ply int, m position.Move) {
	if t.killers[ply][0] == m {
		return
	}
	t.killers[ply][1] = t.killers[ply][0]
	t.killers[ply][0] = m
}

func (t *Tables) History(side position.Color, m position.Move) int32 {
	return t.history[side][m.From()][m.To()]
}

// AddHistory adds bonus to the from/to history score (the search passes
// depth squared on a quiet beta cutoff), with gravity and clamping to
// keep the table from overflowing across a long game.
func (t *Tables) AddHistory(side position.Color, m position.Move, bonus int32) {
	addClamped(&t.history[side][m.From()][m.To()], bonus)
}

func (t *Tables) Countermove(side position.Color, prev position.Move) position.Move {
	if prev == position.NilMove {
		return position.NilMove
	}
	return t.counter[side][prev.From()][prev.To()]
}

func (t *Tables) SetCountermove(side position.Color, prev, m position.Move) {
	if prev == position.NilMove {
		return
	}
	t.counter[side][prev.From()][prev.To()] = m
}

func (t *Tables) ContinuationScore(side position.Color, prev, m position.Move) int32 {
	if prev == position.NilMove {
		return 0
	}
	return t.contHist[side][prev.MovingKind()][prev.To()][m.MovingKind()][m.To()]
}

func (t *Tables) AddContinuation(side position.Color, prev, m position.Move, bonus int32) {
	if prev == position.NilMove {
		return
	}
	addClamped(&t.contHist[side][prev.MovingKind()][prev.To()][m.MovingKind()][m.To()], bonus)
}

func (t *Tables) CaptureHistory(m position.Move) int32 {
	return t.captureHistory[m.MovingKind()][m.To()][m.CapturedKind()]
}

func (t *Tables) AddCaptureHistory(m position.Move, bonus int32) {
	addClamped(&t.captureHistory[m.MovingKind()][m.To()][m.CapturedKind()], bonus)
}

const historyMax = 1 << 20

func addClamped(slot *int32, bonus int32) {
	// Gravity: before the bonus is added, this slot's own value is pulled
	// toward zero in proportion to |bonus|/historyMax, so a slot that is
	// rewarded again and again levels off near historyMax instead of only
	// ever growing (standard history-heuristic "history gravity"). No
	// other slot of the table changes.
	*slot += bonus - (*slot * abs32(bonus) / historyMax)
	if *slot > historyMax {
		*slot = historyMax
	} else if *slot < -historyMax {
		*slot = -historyMax
	}
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// Decay shrinks every table by 15/16 after each completed iterative
// deepening iteration (spec.md §4.9), keeping them adaptive across the
// game instead of accumulating stale bias.
func (t *Tables) Decay() {
	for s := 0; s < 2; s++ {
		for f := 0; f < 64; f++ {
			for to := 0; to < 64; to++ {
				t.history[s][f][to] -= t.history[s][f][to] >> 4
			}
		}
	}
	for s := 0; s < 2; s++ {
		for pp := 0; pp < 6; pp++ {
			for pt := 0; pt < 64; pt++ {
				for p := 0; p < 6; p++ {
					for to := 0; to < 64; to++ {
						t.contHist[s][pp][pt][p][to] -= t.contHist[s][pp][pt][p][to] >> 4
					}
				}
			}
		}
	}
	for a := 0; a < 6; a++ {
		for to := 0; to < 64; to++ {
			for c := 0; c < 6; c++ {
				t.captureHistory[a][to][c] -= t.captureHistory[a][to][c] >> 4
			}
		}
	}
}

// ClearKillers resets the killer table; used between searches so a stale
// killer from a previous, unrelated position cannot leak into ordering.
func (t *Tables) ClearKillers() {
	for i := range t.killers {
		t.killers[i] = [2]position.Move{}
	}
}
