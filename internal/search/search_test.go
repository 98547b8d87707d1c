package search_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/csgarlock/corvid/internal/fen"
	"github.com/csgarlock/corvid/internal/search"
	"github.com/csgarlock/corvid/internal/timeman"
	"github.com/csgarlock/corvid/internal/tt"
)

// TestFindsMateInOne checks a textbook back-rank mate: Ra1-a8 delivers
// checkmate immediately. The search should report it as the best move
// with a score indicating a forced mate.
func TestFindsMateInOne(t *testing.T) {
	p, err := fen.Parse("6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")
	require.NoError(t, err)

	table := tt.New(1)
	var stop atomic.Bool
	opts := search.Options{
		MaxDepth: 4,
		Threads:  1,
		Deadline: timeman.Deadlines{Hard: 2 * time.Second, Soft: 2 * time.Second},
	}
	best, _, score := search.Iterate(p, table, opts, &stop)

	require.Equal(t, "a1a8", best.String())
	require.GreaterOrEqual(t, score, int32(search.MateValue-search.MateBound))
}

// TestFindsMateInOneAtDepthOne confirms the same mate is found even when
// MaxDepth only allows a single ply, since mate-distance pruning and the
// immediate-checkmate terminal case don't depend on iterative deepening.
func TestFindsMateInOneAtDepthOne(t *testing.T) {
	p, err := fen.Parse("6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")
	require.NoError(t, err)

	table := tt.New(1)
	var stop atomic.Bool
	opts := search.Options{
		MaxDepth: 1,
		Threads:  1,
		Deadline: timeman.Deadlines{Hard: 2 * time.Second, Soft: 2 * time.Second},
	}
	best, _, score := search.Iterate(p, table, opts, &stop)
	require.Equal(t, "a1a8", best.String())
	require.GreaterOrEqual(t, score, int32(search.MateValue-search.MateBound))
}

func TestIterateRespectsMaxDepthAndReportsProgress(t *testing.T) {
	p, err := fen.Parse(fen.StartPos)
	require.NoError(t, err)

	table := tt.New(1)
	var stop atomic.Bool
	var depths []int
	opts := search.Options{
		MaxDepth: 3,
		Threads:  1,
		Deadline: timeman.Deadlines{Hard: 5 * time.Second, Soft: 5 * time.Second},
		OnInfo: func(r search.Result) {
			depths = append(depths, r.Depth)
		},
	}
	best, pv, _ := search.Iterate(p, table, opts, &stop)

	require.NotEqual(t, 0, uint32(best))
	require.NotEmpty(t, pv)
	require.Equal(t, []int{1, 2, 3}, depths)
}

func TestStopFlagHaltsSearchPromptly(t *testing.T) {
	p, err := fen.Parse(fen.StartPos)
	require.NoError(t, err)

	table := tt.New(1)
	var stop atomic.Bool
	stop.Store(true)
	opts := search.Options{
		MaxDepth: 20,
		Threads:  1,
		Deadline: timeman.Deadlines{Hard: 5 * time.Second, Soft: 5 * time.Second},
	}
	done := make(chan struct{})
	go func() {
		search.Iterate(p, table, opts, &stop)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Iterate did not stop promptly when stop was already set")
	}
}

// TestMultiPVReportsDistinctSortedLines checks that asking for three
// principal variations from the start position reports three distinct
// root moves, sorted best score first, each a full PV.
func TestMultiPVReportsDistinctSortedLines(t *testing.T) {
	p, err := fen.Parse(fen.StartPos)
	require.NoError(t, err)

	table := tt.New(1)
	var stop atomic.Bool
	var lastLines []search.Result
	opts := search.Options{
		MaxDepth: 2,
		Threads:  1,
		MultiPV:  3,
		Deadline: timeman.Deadlines{Hard: 5 * time.Second, Soft: 5 * time.Second},
		OnInfo: func(r search.Result) {
			if r.Depth == 2 {
				lastLines = append(lastLines, r)
			}
		},
	}
	best, pv, _ := search.Iterate(p, table, opts, &stop)

	require.NotEqual(t, 0, uint32(best))
	require.NotEmpty(t, pv)
	require.Len(t, lastLines, 3)

	seen := map[string]bool{}
	for i, r := range lastLines {
		require.Equal(t, i+1, r.MultiPVIndex)
		require.NotEmpty(t, r.PV)
		seen[r.PV[0].String()] = true
		if i > 0 {
			require.LessOrEqual(t, r.Score, lastLines[i-1].Score)
		}
	}
	require.Len(t, seen, 3)
}
