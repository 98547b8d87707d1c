// Package engine is the one entry point the host drives (spec.md §6):
// Search(root, limits) -> bestMove, pv, score. It owns the long-lived,
// process-wide collaborators (transposition table, opening book,
// tablebase prober) and wires them into internal/search for each call,
// consulting the opening book at the root before falling through to the
// search proper. The tablebase prober is not consulted at the root: when
// UseSyzygy is set it is handed to the search, which probes it at
// interior nodes.
package engine

import (
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/csgarlock/corvid/internal/book"
	"github.com/csgarlock/corvid/internal/config"
	"github.com/csgarlock/corvid/internal/movegen"
	"github.com/csgarlock/corvid/internal/params"
	"github.com/csgarlock/corvid/internal/position"
	"github.com/csgarlock/corvid/internal/search"
	"github.com/csgarlock/corvid/internal/tb"
	"github.com/csgarlock/corvid/internal/timeman"
	"github.com/csgarlock/corvid/internal/tt"
)

// Engine bundles every long-lived collaborator a search needs.
type Engine struct {
	Config config.Config

	table *tt.Table
	book  *book.Book
	tb    tb.Prober
	opts  params.Set
}

// New builds an Engine from cfg, loading the opening book, the param
// file, and sizing the transposition table. A missing optional file
// (book, params) degrades quietly to "not configured" rather than
// failing engine construction (spec.md §7's "no fatal error paths").
func New(cfg config.Config) *Engine {
	cfg.Clamp()
	e := &Engine{
		Config: cfg,
		table:  tt.New(cfg.Hash),
		tb:     tb.NoOp{},
	}

	if cfg.OwnBook && cfg.BookFile != "" {
		b, err := book.Load(cfg.BookFile)
		if err != nil {
			log.Warn().Err(err).Str("file", cfg.BookFile).Msg("opening-book-load-failed")
		} else {
			e.book = b
		}
	}

	if cfg.ParamFile != "" {
		p, err := params.Load(cfg.ParamFile)
		if err != nil {
			log.Warn().Err(err).Str("file", cfg.ParamFile).Msg("param-file-load-failed")
		} else {
			e.opts = p
		}
	}

	return e
}

// SetHash resizes the transposition table. Callers must not call this
// concurrently with Search (spec.md §5's "resized only when not
// searching").
func (e *Engine) SetHash(megabytes int) { e.table.Resize(megabytes) }

// Result is what Search returns to the host.
type Result struct {
	BestMove position.Move
	PV       []position.Move
	Score    int32
}

// Search runs one full search over root under limits, consulting the
// opening book first (spec.md §6).
func (e *Engine) Search(root *position.Position, limits timeman.Limits, onInfo search.Progress) Result {
	legal := movegen.GenerateLegal(root, true)
	if len(legal) == 0 {
		return Result{BestMove: position.NilMove}
	}

	if e.Config.OwnBook && e.book != nil {
		if entry, ok := e.book.Pick(root, e.Config.BookRandom, uint16(e.Config.BookMinWeight), e.Config.BookMaxPly); ok {
			if m, ok := book.DecodeMove(root, entry.Move, legal); ok {
				return Result{BestMove: m, PV: []position.Move{m}}
			}
		}
	}

	sideToMove := 0
	if root.SideToMove == position.Black {
		sideToMove = 1
	}
	deadline := timeman.Compute(limits, sideToMove)

	var stop atomic.Bool
	opts := search.Options{
		MaxDepth: limits.Depth,
		Threads:  e.Config.Threads,
		MultiPV:  e.Config.MultiPV,
		Deadline: deadline,
		OnInfo:   onInfo,
		Params:   search.LoadParams(e.opts),
	}
	if e.Config.UseSyzygy {
		opts.TB = e.tb
	}

	start := time.Now()
	bestMove, pv, score := search.Iterate(root, e.table, opts, &stop)
	if bestMove == position.NilMove && len(legal) > 0 {
		bestMove = legal[0]
	}
	log.Debug().Dur("elapsed", time.Since(start)).Str("move", bestMove.String()).Int32("score", score).Msg("search-complete")

	return Result{BestMove: bestMove, PV: pv, Score: score}
}
