package position_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/csgarlock/corvid/internal/fen"
	"github.com/csgarlock/corvid/internal/movegen"
	. "github.com/csgarlock/corvid/internal/position"
)

func mustParse(t *testing.T, s string) *Position {
	t.Helper()
	p, err := fen.Parse(s)
	require.NoError(t, err)
	return p
}

// TestMakeUnmakeRestoresExactly plays every legal move one ply deep from a
// handful of positions and checks that unmaking it restores the FEN, the
// Zobrist keys, and the key history exactly (spec.md §8's make/unmake
// invariant).
func TestMakeUnmakeRestoresExactly(t *testing.T) {
	positions := []string{
		fen.StartPos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq c6 0 2",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}
	for _, s := range positions {
		s := s
		t.Run(s, func(t *testing.T) {
			p := mustParse(t, s)
			legal := movegen.GenerateLegal(p, true)
			require.NotEmpty(t, legal)

			before := fen.String(p)
			beforeKey := p.Key
			beforePawnKey := p.PawnKey
			beforeHistLen := len(p.KeyHistory)

			for _, m := range legal {
				u := p.Make(m)
				p.Unmake(m, u)

				require.Equal(t, before, fen.String(p), "move %s", m)
				require.Equal(t, beforeKey, p.Key, "move %s", m)
				require.Equal(t, beforePawnKey, p.PawnKey, "move %s", m)
				require.Len(t, p.KeyHistory, beforeHistLen, "move %s", m)
			}
		})
	}
}

// TestIncrementalKeyMatchesFromScratch plays a short sequence of moves and
// checks, after each one, that the incrementally maintained key matches a
// from-scratch rebuild via a fresh FEN parse of the resulting position
// (spec.md §8's incremental-vs-from-scratch Zobrist property).
func TestIncrementalKeyMatchesFromScratch(t *testing.T) {
	p := mustParse(t, fen.StartPos)

	for i := 0; i < 6; i++ {
		legal := movegen.GenerateLegal(p, true)
		require.NotEmpty(t, legal)
		m := legal[i%len(legal)]
		p.Make(m)

		rebuilt, err := fen.Parse(fen.String(p))
		require.NoError(t, err)
		require.Equal(t, rebuilt.Key, p.Key)
		require.Equal(t, rebuilt.PawnKey, p.PawnKey)
	}
}

func TestMakeNullUnmakeNullRestoresExactly(t *testing.T) {
	p := mustParse(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	before := fen.String(p)
	beforeKey := p.Key

	u := p.MakeNull()
	require.NotEqual(t, beforeKey, p.Key)
	p.UnmakeNull(u)

	require.Equal(t, before, fen.String(p))
	require.Equal(t, beforeKey, p.Key)
}

func TestCastlingRightsLostOnRookCapture(t *testing.T) {
	// White rook on h1 about to be captured by a black bishop: White's
	// king-side right must be forfeited even though White's own king and
	// rook never moved.
	p := mustParse(t, "b3k3/8/8/8/8/8/8/4K2R b K - 0 1")
	var target Move
	for _, m := range movegen.GenerateLegal(p, true) {
		if m.To() == FromFileRank(7, 0) {
			target = m
		}
	}
	require.NotEqual(t, NilMove, target)
	p.Make(target)
	require.Equal(t, uint8(0), p.CastleRights&WhiteKingSide)
}

func TestEnPassantCaptureRemovesPawnAndKey(t *testing.T) {
	p := mustParse(t, "rnbqkbnr/pp1ppppp/8/2pP4/8/8/PPP1PPPP/RNBQKBNR w KQkq c6 0 2")
	var epMove Move
	for _, m := range movegen.GenerateLegal(p, true) {
		if m.IsEnPassant() {
			epMove = m
		}
	}
	require.NotEqual(t, NilMove, epMove)

	u := p.Make(epMove)
	require.Equal(t, NoPieceKind, p.PieceAt(FromFileRank(2, 4)).Kind) // c5 emptied
	rebuilt := mustParse(t, fen.String(p))
	require.Equal(t, rebuilt.Key, p.Key)
	require.Equal(t, rebuilt.PawnKey, p.PawnKey)
	p.Unmake(epMove, u)
	require.Equal(t, Pawn, p.PieceAt(FromFileRank(2, 4)).Kind)
}

func TestRepetitionDetection(t *testing.T) {
	p := mustParse(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	moves := []string{"e1d1", "e8d8", "d1e1", "d8e8", "e1d1", "e8d8", "d1e1", "d8e8"}
	require.False(t, p.IsRepetition())
	for _, s := range moves {
		var chosen Move
		for _, m := range movegen.GenerateLegal(p, true) {
			if m.String() == s {
				chosen = m
			}
		}
		require.NotEqual(t, NilMove, chosen, "move %s", s)
		p.Make(chosen)
	}
	require.True(t, p.IsRepetition())
}

func TestHalfmoveClockDrawAtHundred(t *testing.T) {
	p := mustParse(t, "4k3/8/8/8/8/8/8/4K3 w - - 99 50")
	require.False(t, p.IsDrawnByHalfmoveClock())
	var quiet Move
	for _, m := range movegen.GenerateLegal(p, true) {
		if m.IsQuiet() {
			quiet = m
			break
		}
	}
	require.NotEqual(t, NilMove, quiet)
	p.Make(quiet)
	require.True(t, p.IsDrawnByHalfmoveClock())
}
