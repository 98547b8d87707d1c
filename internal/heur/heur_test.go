package heur_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/csgarlock/corvid/internal/heur"
	"github.com/csgarlock/corvid/internal/position"
)

func move(from, to position.Square) position.Move {
	return position.NewMove(from, to, position.Knight, position.NoPieceKind, position.NoPieceKind, false, false, false)
}

func TestAddKillerKeepsMostRecentFirstNoDuplicates(t *testing.T) {
	tb := heur.New()
	m1 := move(0, 1)
	m2 := move(2, 3)

	tb.AddKiller(0, m1)
	k0, k1 := tb.Killers(0)
	require.Equal(t, m1, k0)
	require.Equal(t, position.NilMove, k1)

	tb.AddKiller(0, m2)
	k0, k1 = tb.Killers(0)
	require.Equal(t, m2, k0)
	require.Equal(t, m1, k1)

	// Re-adding the same move must not duplicate it into both slots.
	tb.AddKiller(0, m2)
	k0, k1 = tb.Killers(0)
	require.Equal(t, m2, k0)
	require.Equal(t, m1, k1)
}

func TestHistoryAccumulatesAndClampsMagnitude(t *testing.T) {
	tb := heur.New()
	m := move(10, 20)
	for i := 0; i < 10_000; i++ {
		tb.AddHistory(position.White, m, 400)
	}
	require.LessOrEqual(t, tb.History(position.White, m), int32(1<<20))
}

func TestDecayShrinksHistoryTowardZero(t *testing.T) {
	tb := heur.New()
	m := move(5, 6)
	tb.AddHistory(position.White, m, 1000)
	before := tb.History(position.White, m)
	require.NotZero(t, before)
	tb.Decay()
	after := tb.History(position.White, m)
	require.Less(t, after, before)
	require.Greater(t, after, int32(0))
}

func TestCountermoveRoundTrips(t *testing.T) {
	tb := heur.New()
	prev := move(12, 28)
	reply := move(28, 12)
	require.Equal(t, position.NilMove, tb.Countermove(position.White, prev))
	tb.SetCountermove(position.White, prev, reply)
	require.Equal(t, reply, tb.Countermove(position.White, prev))
}

func TestContinuationHistoryIgnoresNilPrevMove(t *testing.T) {
	tb := heur.New()
	m := move(1, 2)
	require.Equal(t, int32(0), tb.ContinuationScore(position.White, position.NilMove, m))
	tb.AddContinuation(position.White, position.NilMove, m, 500)
	require.Equal(t, int32(0), tb.ContinuationScore(position.White, position.NilMove, m))
}

func TestClearKillersResetsAllPlies(t *testing.T) {
	tb := heur.New()
	tb.AddKiller(3, move(1, 2))
	tb.ClearKillers()
	k0, k1 := tb.Killers(3)
	require.Equal(t, position.NilMove, k0)
	require.Equal(t, position.NilMove, k1)
}
