package search

import (
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/csgarlock/corvid/internal/position"
	"github.com/csgarlock/corvid/internal/tb"
	"github.com/csgarlock/corvid/internal/timeman"
	"github.com/csgarlock/corvid/internal/tt"
)

const (
	aspMaxRetries = 5
	stableWindow  = 15
)

// Result is what Iterate reports back to the host after each completed
// depth (spec.md §6's info-record stream). MultiPVIndex is 1 for the
// single-PV case and for the best of several multi-PV lines.
type Result struct {
	Depth        int
	SelDepth     int
	MultiPVIndex int
	Score        int32
	Nodes        uint64
	Elapsed      time.Duration
	HashFull     int
	PV           []position.Move
}

// Progress is called once per completed iteration (and is nil-safe to
// omit). It must not block the search thread for long.
type Progress func(Result)

// Options configures one Search call.
type Options struct {
	MaxDepth int // 0 means unlimited (bounded by deadline)
	Threads  int
	MultiPV  int // 0 or 1 means single best line
	Deadline timeman.Deadlines
	OnInfo   Progress
	TB       tb.Prober // nil defaults every thread to tb.NoOp{}
	Params   Params    // zero value is overridden with Default() by Iterate
}

// Iterate drives iterative deepening with aspiration windows on the main
// thread, launching Threads-1 Lazy SMP helpers that share only table
// (spec.md §4.7's scheduling model). It returns the best move, its
// principal variation, and its score once stopped by depth, deadline, or
// an external stop signal.
func Iterate(root *position.Position, table *tt.Table, opts Options, stop *atomic.Bool) (position.Move, []position.Move, int32) {
	table.NewSearch()
	start := time.Now()

	searchParams := opts.Params
	if searchParams == (Params{}) {
		searchParams = Default()
	}

	main := NewThread(0, true, root.Clone(), table, stop)
	main.Deadline = opts.Deadline
	main.StartTime = start
	main.Params = searchParams
	if opts.TB != nil {
		main.TB = opts.TB
	}

	threads := opts.Threads
	if threads < 1 {
		threads = 1
	}

	helpers := make([]*Thread, 0, threads-1)
	for i := 1; i < threads; i++ {
		h := NewThread(i, false, root.Clone(), table, stop)
		h.Deadline = opts.Deadline
		h.StartTime = start
		h.Params = searchParams
		if opts.TB != nil {
			h.TB = opts.TB
		}
		helpers = append(helpers, h)
	}

	var g errgroup.Group
	for _, h := range helpers {
		h := h
		g.Go(func() error {
			runHelper(h, opts.MaxDepth)
			return nil
		})
	}

	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = maxPly - 1
	}

	multiPV := opts.MultiPV
	if multiPV < 1 {
		multiPV = 1
	}

	var prevScore int32
	stableCount := 0

	for depth := 1; depth <= maxDepth; depth++ {
		if stop.Load() {
			break
		}

		var score int32
		if multiPV > 1 {
			lines := rootMultiPV(main, depth, multiPV)
			if len(lines) == 0 {
				break
			}
			score = lines[0].Score
			main.RootBestScore = lines[0].Score
			if len(lines[0].PV) > 0 {
				main.RootBestMove = lines[0].PV[0]
			}
			main.pvLen[0] = len(lines[0].PV)
			copy(main.pv[0][:], lines[0].PV)
			if opts.OnInfo != nil {
				for i, line := range lines {
					opts.OnInfo(Result{
						Depth:        depth,
						SelDepth:     main.selDepth,
						MultiPVIndex: i + 1,
						Score:        line.Score,
						Nodes:        main.Nodes.Load(),
						Elapsed:      time.Since(start),
						HashFull:     table.Hashfull(),
						PV:           line.PV,
					})
				}
			}
		} else {
			if depth == 1 {
				score = main.Negamax(-MateValue, MateValue, 1, 0, true, position.NilMove)
			} else {
				score = aspirationSearch(main, depth, prevScore)
			}

			if stop.Load() && depth > 1 {
				break
			}

			if opts.OnInfo != nil {
				opts.OnInfo(Result{
					Depth:        depth,
					SelDepth:     main.selDepth,
					MultiPVIndex: 1,
					Score:        score,
					Nodes:        main.Nodes.Load(),
					Elapsed:      time.Since(start),
					HashFull:     table.Hashfull(),
					PV:           main.PV(),
				})
			}
		}

		if depth > 1 && abs32(score-prevScore) <= stableWindow {
			stableCount++
		} else {
			stableCount = 0
		}
		prevScore = score

		main.Heur.Decay()

		if !opts.Deadline.Infinite && stableCount >= 2 && time.Since(start) >= opts.Deadline.Soft {
			break
		}
	}

	stop.Store(true)
	g.Wait()

	return main.RootBestMove, main.PV(), main.RootBestScore
}

// runHelper runs Lazy SMP on its own clone: plain iterative deepening at
// full windows, one ply behind nothing in particular — it shares no
// state with the main thread but the transposition table, so its value
// is simply more coverage of the same tree from a different move-order
// perspective (spec.md §4.7's scheduling model, §9's Lazy SMP note).
func runHelper(h *Thread, maxDepth int) {
	limit := maxDepth
	if limit <= 0 {
		limit = maxPly - 1
	}
	for depth := 1; depth <= limit; depth++ {
		if h.Stop.Load() {
			return
		}
		h.Negamax(-MateValue, MateValue, depth, 0, true, position.NilMove)
		h.Heur.Decay()
	}
}

// aspirationSearch narrows the window around prevScore, widening on
// fail-low/fail-high up to aspMaxRetries times before falling back to a
// full window (spec.md §4.7's aspiration-window paragraph).
func aspirationSearch(th *Thread, depth int, prevScore int32) int32 {
	delta := th.Params.AspBase + int32(depth)*th.Params.AspPerDepth
	alpha := prevScore - delta
	beta := prevScore + delta

	for attempt := 0; attempt < aspMaxRetries; attempt++ {
		if alpha < -MateValue {
			alpha = -MateValue
		}
		if beta > MateValue {
			beta = MateValue
		}
		score := th.Negamax(alpha, beta, depth, 0, true, position.NilMove)
		if th.Stop.Load() {
			return score
		}
		if score <= alpha {
			delta += delta + 10
			alpha = score - delta
			continue
		}
		if score >= beta {
			delta += delta + 10
			beta = score + delta
			continue
		}
		return score
	}
	return th.Negamax(-MateValue, MateValue, depth, 0, true, position.NilMove)
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
