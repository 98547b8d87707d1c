package see_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/csgarlock/corvid/internal/fen"
	"github.com/csgarlock/corvid/internal/movegen"
	"github.com/csgarlock/corvid/internal/position"
	"github.com/csgarlock/corvid/internal/see"
)

func findCapture(t *testing.T, fenStr string, fromTo string) (*position.Position, position.Move) {
	t.Helper()
	p, err := fen.Parse(fenStr)
	require.NoError(t, err)
	for _, m := range movegen.GenerateLegal(p, true) {
		if m.String()[:4] == fromTo {
			return p, m
		}
	}
	t.Fatalf("no legal move %s in %s", fromTo, fenStr)
	return nil, 0
}

func TestEvenPawnTradeIsNeutral(t *testing.T) {
	// White pawn captures a black pawn defended by the black queen; nothing
	// else can recapture, so the exchange nets to zero.
	p, m := findCapture(t, "3q3k/8/8/3p4/4P3/8/8/K7 w - - 0 1", "e4d5")
	require.Equal(t, int32(0), see.Evaluate(p, m))
}

func TestKnightTakesDefendedPawnLoses(t *testing.T) {
	// White knight captures a pawn defended by a black pawn: the knight is
	// recaptured for a net material loss.
	p, m := findCapture(t, "7k/8/4p3/3p4/8/2N5/8/K7 w - - 0 1", "c3d5")
	require.Equal(t, int32(-220), see.Evaluate(p, m))
}

func TestUndefendedCaptureIsPureGain(t *testing.T) {
	p, m := findCapture(t, "7k/8/8/3p4/8/2N5/8/K7 w - - 0 1", "c3d5")
	require.Equal(t, int32(100), see.Evaluate(p, m))
}

func TestGainsAtLeastThreshold(t *testing.T) {
	p, m := findCapture(t, "7k/8/8/3p4/8/2N5/8/K7 w - - 0 1", "c3d5")
	require.True(t, see.GainsAtLeast(p, m, 100))
	require.False(t, see.GainsAtLeast(p, m, 101))
}
