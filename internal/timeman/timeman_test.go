package timeman_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/csgarlock/corvid/internal/timeman"
)

func TestInfiniteLimitsProduceInfiniteDeadline(t *testing.T) {
	d := timeman.Compute(timeman.Limits{Infinite: true}, 0)
	require.True(t, d.Infinite)
}

func TestFixedDepthWithNoClockIsInfinite(t *testing.T) {
	d := timeman.Compute(timeman.Limits{Depth: 10}, 0)
	require.True(t, d.Infinite)
}

func TestFixedDepthIsInfiniteEvenWithClockTimesSet(t *testing.T) {
	d := timeman.Compute(timeman.Limits{
		Depth:     10,
		WhiteTime: 60 * time.Second,
		BlackTime: 60 * time.Second,
	}, 0)
	require.True(t, d.Infinite)
}

func TestMoveTimeSubtractsOverheadAndFloorsAt5ms(t *testing.T) {
	d := timeman.Compute(timeman.Limits{
		MoveTime: 100 * time.Millisecond,
		Overhead: 30 * time.Millisecond,
	}, 0)
	require.False(t, d.Infinite)
	require.Equal(t, 70*time.Millisecond, d.Hard)
	require.LessOrEqual(t, d.Soft, d.Hard)

	floored := timeman.Compute(timeman.Limits{
		MoveTime: 10 * time.Millisecond,
		Overhead: 30 * time.Millisecond,
	}, 0)
	require.Equal(t, 5*time.Millisecond, floored.Hard)
}

func TestClockBasedAllocationNeverExceedsHalfRemainingTime(t *testing.T) {
	d := timeman.Compute(timeman.Limits{
		WhiteTime: 10 * time.Second,
		MovesToGo: 40,
	}, 0)
	require.LessOrEqual(t, d.Hard, 5*time.Second)
}

func TestSuddenDeathSideSelection(t *testing.T) {
	wd := timeman.Compute(timeman.Limits{WhiteTime: 1 * time.Second, BlackTime: 100 * time.Second}, 0)
	bd := timeman.Compute(timeman.Limits{WhiteTime: 1 * time.Second, BlackTime: 100 * time.Second}, 1)
	require.Less(t, wd.Hard, bd.Hard)
}

func TestLowTimeUsesEmergencyAllocation(t *testing.T) {
	d := timeman.Compute(timeman.Limits{WhiteTime: 1 * time.Second, WhiteInc: 0}, 0)
	require.False(t, d.Infinite)
	require.Equal(t, d.Hard, d.Soft)
	require.Less(t, d.Hard, 400*time.Millisecond)
}
