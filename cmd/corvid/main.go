// Command corvid is the external shell of spec.md §6: a thin text
// protocol loop over the engine façade. The UCI loop never touches
// bitboards, search internals, or evaluation directly — its chess
// operations go through internal/engine, internal/fen, and
// internal/movegen. The debug shell also calls eval.Evaluate for its
// eval command and runs its own perft over movegen.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/csgarlock/corvid/internal/config"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// -debug selects the shell; it is not a config flag, so it is taken
	// out before the remaining arguments reach Config.Load.
	debug := false
	var args []string
	for _, a := range os.Args[1:] {
		if a == "-debug" || a == "--debug" {
			debug = true
			continue
		}
		args = append(args, a)
	}

	var cfg config.Config
	if err := cfg.Load(args); err != nil {
		log.Fatal().Err(err).Msg("config-load-failed")
	}

	if debug {
		runDebugREPL(cfg)
		return
	}
	runUCILoop(cfg)
}
