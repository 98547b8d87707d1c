package params_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/csgarlock/corvid/internal/params"
)

func writeFile(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "params.txt")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadParsesKeyValueLinesAndSkipsCommentsAndBlanks(t *testing.T) {
	path := writeFile(t, "AspBase=20\n# a comment\n\nHistPruneThreshold=-3000\n")
	set, err := params.Load(path)
	require.NoError(t, err)
	require.Equal(t, 20, set.Int("AspBase", 0))
	require.Equal(t, -3000, set.Int("HistPruneThreshold", 0))
}

func TestLoadRejectsLineWithoutEquals(t *testing.T) {
	path := writeFile(t, "NotAKeyValue\n")
	_, err := params.Load(path)
	require.Error(t, err)
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	_, err := params.Load(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
}

func TestIntFallsBackToDefaultWhenAbsentOrMalformed(t *testing.T) {
	path := writeFile(t, "LMRDivisor=2.5\nBad=notanumber\n")
	set, err := params.Load(path)
	require.NoError(t, err)
	require.Equal(t, 7, set.Int("Missing", 7))
	require.Equal(t, 7, set.Int("Bad", 7))
}
