// Package config loads the engine's runtime configuration knobs (spec.md
// §6) the way macondo's config package does: a flat Config struct filled
// by namsral/flag, which also reads matching environment variables, so
// the same binary can be driven by flags, env, or a UCI `setoption`
// translation layer above it.
package config

import "github.com/namsral/flag"

// Config holds every knob spec.md §6 enumerates.
type Config struct {
	Hash         int
	Threads      int
	MoveOverhead int
	MultiPV      int

	UseSyzygy  bool
	SyzygyPath string

	OwnBook       bool
	BookFile      string
	BookRandom    bool
	BookMinWeight int
	BookMaxPly    int

	ParamFile string
}

// Load parses args (normally os.Args[1:]) into c, applying the same
// defaults a fresh UCI session would.
func (c *Config) Load(args []string) error {
	fs := flag.NewFlagSet("corvid", flag.ContinueOnError)
	fs.IntVar(&c.Hash, "hash", 16, "transposition table size in megabytes (1-2048)")
	fs.IntVar(&c.Threads, "threads", 1, "search threads (1-64)")
	fs.IntVar(&c.MoveOverhead, "move-overhead", 30, "milliseconds subtracted from clock budgets")
	fs.IntVar(&c.MultiPV, "multipv", 1, "number of principal variations to report (1-10)")

	fs.BoolVar(&c.UseSyzygy, "use-syzygy", false, "enable Syzygy tablebase probing")
	fs.StringVar(&c.SyzygyPath, "syzygy-path", "", "directory holding Syzygy tablebase files")

	fs.BoolVar(&c.OwnBook, "own-book", false, "enable the Polyglot opening book")
	fs.StringVar(&c.BookFile, "book-file", "", "path to a Polyglot .bin opening book")
	fs.BoolVar(&c.BookRandom, "book-random", true, "pick a weighted-random book move instead of the heaviest")
	fs.IntVar(&c.BookMinWeight, "book-min-weight", 1, "minimum Polyglot weight to consider (0-65535)")
	fs.IntVar(&c.BookMaxPly, "book-max-ply", 30, "highest fullmove ply at which the book is still consulted")

	fs.StringVar(&c.ParamFile, "param-file", "", "key=value file of tunable search/eval parameters")

	return fs.Parse(args)
}

// Clamp bounds every field to the ranges spec.md §6 specifies, applied
// after Load so an out-of-range flag or env value degrades to the
// nearest legal value instead of corrupting engine state.
func (c *Config) Clamp() {
	c.Hash = clampInt(c.Hash, 1, 2048)
	c.Threads = clampInt(c.Threads, 1, 64)
	c.MoveOverhead = clampInt(c.MoveOverhead, 0, 500)
	c.MultiPV = clampInt(c.MultiPV, 1, 10)
	c.BookMinWeight = clampInt(c.BookMinWeight, 0, 65535)
	c.BookMaxPly = clampInt(c.BookMaxPly, 0, 200)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
