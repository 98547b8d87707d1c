// Package search implements the negamax/quiescence search of spec.md
// §4.7: principal-variation search with iterative deepening, aspiration
// windows, the full pruning/reduction stack, and Lazy SMP across
// multiple Thread values sharing only the transposition table. Grounded
// on the teacher's Search.go negamax skeleton, generalized with the
// ordering and pruning machinery spec.md adds.
package search

import (
	"sync/atomic"
	"time"

	"github.com/csgarlock/corvid/internal/heur"
	"github.com/csgarlock/corvid/internal/position"
	"github.com/csgarlock/corvid/internal/tb"
	"github.com/csgarlock/corvid/internal/timeman"
	"github.com/csgarlock/corvid/internal/tt"
)

const (
	maxPly    = 128
	MateValue = tt.MateValue
	MateBound = tt.MateBound
)

// Thread is one search worker: the main thread driving iterative
// deepening, or a Lazy SMP helper. Every field here is thread-private;
// the only state shared across threads is the Table pointer and the
// stop flag.
type Thread struct {
	ID     int
	IsMain bool

	Pos    *position.Position
	Heur   *heur.Tables
	TT     *tt.Table
	TB     tb.Prober
	Params Params

	Stop  *atomic.Bool
	Nodes atomic.Uint64

	selDepth int

	pv    [maxPly][maxPly]position.Move
	pvLen [maxPly]int

	staticEval [maxPly]int32
	excluded   [maxPly]position.Move
	moveStack  [maxPly]position.Move // the move played to reach ply (for countermove/continuation)

	RootBestMove  position.Move
	RootBestScore int32

	Deadline  timeman.Deadlines
	StartTime time.Time

	nodeCheckMask uint64
}

// NewThread builds a search worker over its own cloned position.
func NewThread(id int, isMain bool, pos *position.Position, table *tt.Table, stop *atomic.Bool) *Thread {
	return &Thread{
		ID:     id,
		IsMain: isMain,
		Pos:    pos,
		Heur:   heur.New(),
		TT:     table,
		TB:     tb.NoOp{},
		Params: Default(),
		Stop:   stop,
	}
}

// PV returns the principal variation found from the root.
func (th *Thread) PV() []position.Move {
	n := th.pvLen[0]
	out := make([]position.Move, n)
	copy(out, th.pv[0][:n])
	return out
}

// timeUp is polled roughly every 2048 nodes (spec.md §4.8); it never
// blocks and only ever reads a monotonic clock and the shared stop flag.
func (th *Thread) timeUp() bool {
	if th.Stop.Load() {
		return true
	}
	if th.Deadline.Infinite {
		return false
	}
	if time.Since(th.StartTime) >= th.Deadline.Hard {
		th.Stop.Store(true)
		return true
	}
	return false
}

func (th *Thread) checkTime() bool {
	n := th.Nodes.Add(1)
	if n&timeman.NodeCheckMask != 0 {
		return false
	}
	return th.timeUp()
}

func (th *Thread) pushPV(ply int, m position.Move) {
	th.pv[ply][0] = m
	copy(th.pv[ply][1:], th.pv[ply+1][:th.pvLen[ply+1]])
	th.pvLen[ply] = th.pvLen[ply+1] + 1
}

func (th *Thread) clearPVLen(ply int) { th.pvLen[ply] = 0 }
