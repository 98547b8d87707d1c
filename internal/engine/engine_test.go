package engine_test

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/csgarlock/corvid/internal/book"
	"github.com/csgarlock/corvid/internal/config"
	"github.com/csgarlock/corvid/internal/engine"
	"github.com/csgarlock/corvid/internal/fen"
	"github.com/csgarlock/corvid/internal/position"
	"github.com/csgarlock/corvid/internal/timeman"
)

func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	var cfg config.Config
	require.NoError(t, cfg.Load(nil))
	cfg.Hash = 1
	return engine.New(cfg)
}

func TestSearchReturnsNilMoveOnCheckmatePosition(t *testing.T) {
	e := newTestEngine(t)
	p, err := fen.Parse("R5k1/5ppp/8/8/8/8/5PPP/6K1 b - - 0 1")
	require.NoError(t, err)

	result := e.Search(p, timeman.Limits{Depth: 1}, nil)
	require.Equal(t, position.NilMove, result.BestMove)
}

func TestSearchFindsMateInOne(t *testing.T) {
	e := newTestEngine(t)
	p, err := fen.Parse("6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")
	require.NoError(t, err)

	limits := timeman.Limits{Depth: 4, WhiteTime: 2 * time.Second, BlackTime: 2 * time.Second}
	result := e.Search(p, limits, nil)
	require.Equal(t, "a1a8", result.BestMove.String())
}

// writePolyglotBook writes a minimal single-entry Polyglot book so the
// root-level book short-circuit can be exercised without a real file.
func writePolyglotBook(t *testing.T, key uint64, move uint16, weight uint16) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "book.bin")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	var raw [16]byte
	binary.BigEndian.PutUint64(raw[0:8], key)
	binary.BigEndian.PutUint16(raw[8:10], move)
	binary.BigEndian.PutUint16(raw[10:12], weight)
	binary.BigEndian.PutUint32(raw[12:16], 0)
	_, err = f.Write(raw[:])
	require.NoError(t, err)
	return path
}

func TestSearchPlaysBookMoveWithoutInvokingSearch(t *testing.T) {
	p, err := fen.Parse(fen.StartPos)
	require.NoError(t, err)

	// e2e4, Polyglot-encoded: to-file4 to-rank3 from-file4 from-rank1.
	e2e4 := uint16(4) | uint16(3)<<3 | uint16(4)<<6 | uint16(1)<<9

	var cfg config.Config
	require.NoError(t, cfg.Load(nil))
	cfg.Hash = 1
	cfg.OwnBook = true
	cfg.BookFile = writePolyglotBook(t, book.PolyglotKey(p), e2e4, 10)
	cfg.BookRandom = false

	e := engine.New(cfg)
	result := e.Search(p, timeman.Limits{Depth: 10}, nil)
	require.Equal(t, "e2e4", result.BestMove.String())
	require.Equal(t, []position.Move{result.BestMove}, result.PV)
}
