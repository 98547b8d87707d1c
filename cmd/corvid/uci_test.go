package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/csgarlock/corvid/internal/search"
)

func TestScoreStringFormatsCentipawns(t *testing.T) {
	require.Equal(t, "cp 34", scoreString(34))
	require.Equal(t, "cp -120", scoreString(-120))
}

func TestScoreStringFormatsMateForMover(t *testing.T) {
	// A mate delivered on this move: MateValue - 1 ply to go.
	score := int32(search.MateValue - 1)
	require.Equal(t, "mate 1", scoreString(score))
}

func TestScoreStringFormatsMateAgainstMover(t *testing.T) {
	score := int32(-search.MateValue + 2)
	require.Equal(t, "mate -1", scoreString(score))
}
