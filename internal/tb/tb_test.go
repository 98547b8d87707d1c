package tb_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/csgarlock/corvid/internal/position"
	"github.com/csgarlock/corvid/internal/tb"
)

func TestNoOpNeverAnswers(t *testing.T) {
	var p tb.Prober = tb.NoOp{}
	require.Equal(t, 0, p.MaxPieces())
	_, ok := p.Probe(&position.Position{})
	require.False(t, ok)
}

func TestScoreFromWDLAdjustsForPly(t *testing.T) {
	require.Equal(t, int32(25000), tb.ScoreFromWDL(tb.Win, 0))
	require.Equal(t, int32(24995), tb.ScoreFromWDL(tb.Win, 5))
	require.Equal(t, int32(-25000), tb.ScoreFromWDL(tb.Loss, 0))
	require.Equal(t, int32(-24995), tb.ScoreFromWDL(tb.Loss, 5))
	require.Equal(t, int32(0), tb.ScoreFromWDL(tb.Draw, 0))
}
