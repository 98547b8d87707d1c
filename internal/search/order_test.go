package search

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/csgarlock/corvid/internal/movegen"
	"github.com/csgarlock/corvid/internal/position"
)

func knightMove(from, to position.Square) position.Move {
	return position.NewMove(from, to, position.Knight, position.NoPieceKind, position.NoPieceKind, false, false, false)
}

func captureMove(from, to position.Square, moving, captured position.PieceKind) position.Move {
	return position.NewMove(from, to, moving, captured, position.NoPieceKind, false, false, false)
}

func newTestThread() *Thread {
	return NewThread(0, true, &position.Position{}, nil, nil)
}

func TestScoreMovesRanksTTMoveHighest(t *testing.T) {
	th := newTestThread()

	ttMove := knightMove(position.FromFileRank(1, 0), position.FromFileRank(2, 2))
	other := knightMove(position.FromFileRank(6, 0), position.FromFileRank(5, 2))

	var list movegen.List
	list.Add(other)
	list.Add(ttMove)

	scores := make([]int32, list.Len())
	th.scoreMoves(&list, 0, ttMove, position.NilMove, scores)

	require.Equal(t, int32(scoreTT), scores[1])
	require.Less(t, scores[0], scores[1])
}

func TestScoreMovesOrdersCapturesByVictimValueNotAttacker(t *testing.T) {
	th := newTestThread()

	// A pawn taking a queen should outscore a queen taking a pawn: MVV-LVA
	// ranks by victim first, attacker only breaks ties.
	pawnTakesQueen := captureMove(position.FromFileRank(3, 3), position.FromFileRank(4, 4), position.Pawn, position.Queen)
	queenTakesPawn := captureMove(position.FromFileRank(0, 0), position.FromFileRank(1, 1), position.Queen, position.Pawn)

	var list movegen.List
	list.Add(queenTakesPawn)
	list.Add(pawnTakesQueen)

	scores := make([]int32, list.Len())
	th.scoreMoves(&list, 0, position.NilMove, position.NilMove, scores)

	require.Greater(t, scores[1], scores[0])
}

func TestScoreMovesRanksKillersAbovePlainQuiet(t *testing.T) {
	th := newTestThread()

	killer := knightMove(position.FromFileRank(1, 0), position.FromFileRank(2, 2))
	plain := knightMove(position.FromFileRank(6, 0), position.FromFileRank(5, 2))
	th.Heur.AddKiller(0, killer)

	var list movegen.List
	list.Add(plain)
	list.Add(killer)

	scores := make([]int32, list.Len())
	th.scoreMoves(&list, 0, position.NilMove, position.NilMove, scores)

	require.Equal(t, int32(scoreKiller1), scores[1])
	require.Less(t, scores[0], scores[1])
}

func TestScoreMovesRanksQuietHistoryAboveUnhistoried(t *testing.T) {
	th := newTestThread()

	warm := knightMove(position.FromFileRank(1, 0), position.FromFileRank(2, 2))
	cold := knightMove(position.FromFileRank(6, 0), position.FromFileRank(5, 2))
	th.Heur.AddHistory(position.White, warm, 400)

	var list movegen.List
	list.Add(cold)
	list.Add(warm)

	scores := make([]int32, list.Len())
	th.scoreMoves(&list, 0, position.NilMove, position.NilMove, scores)

	require.Greater(t, scores[1], scores[0])
}

func TestPickBestSelectsHighestRemainingScoreEachPass(t *testing.T) {
	a := knightMove(position.FromFileRank(0, 0), position.FromFileRank(1, 2))
	b := knightMove(position.FromFileRank(1, 0), position.FromFileRank(2, 2))
	c := knightMove(position.FromFileRank(2, 0), position.FromFileRank(3, 2))

	var list movegen.List
	list.Add(a)
	list.Add(b)
	list.Add(c)
	scores := []int32{10, 300, 150}

	first := pickBest(&list, scores, 0)
	require.Equal(t, b, first)

	second := pickBest(&list, scores, 1)
	require.Equal(t, c, second)

	third := pickBest(&list, scores, 2)
	require.Equal(t, a, third)
}

func TestSeeThresholdTightensAtLowDepth(t *testing.T) {
	require.Equal(t, int32(-50), seeThreshold(1))
	require.Equal(t, int32(-50), seeThreshold(3))
	require.Equal(t, int32(-100), seeThreshold(4))
	require.Equal(t, int32(-100), seeThreshold(10))
}
