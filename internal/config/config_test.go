package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/csgarlock/corvid/internal/config"
)

func TestLoadAppliesDefaults(t *testing.T) {
	var c config.Config
	require.NoError(t, c.Load(nil))
	require.Equal(t, 16, c.Hash)
	require.Equal(t, 1, c.Threads)
	require.Equal(t, 1, c.MultiPV)
	require.True(t, c.BookRandom)
}

func TestLoadParsesFlags(t *testing.T) {
	var c config.Config
	require.NoError(t, c.Load([]string{"-hash", "64", "-threads", "4", "-own-book", "-book-file", "book.bin"}))
	require.Equal(t, 64, c.Hash)
	require.Equal(t, 4, c.Threads)
	require.True(t, c.OwnBook)
	require.Equal(t, "book.bin", c.BookFile)
}

func TestClampBoundsOutOfRangeValues(t *testing.T) {
	c := config.Config{
		Hash:          5000,
		Threads:       0,
		MoveOverhead:  -10,
		MultiPV:       99,
		BookMinWeight: 70000,
		BookMaxPly:    -5,
	}
	c.Clamp()
	require.Equal(t, 2048, c.Hash)
	require.Equal(t, 1, c.Threads)
	require.Equal(t, 0, c.MoveOverhead)
	require.Equal(t, 10, c.MultiPV)
	require.Equal(t, 65535, c.BookMinWeight)
	require.Equal(t, 0, c.BookMaxPly)
}
