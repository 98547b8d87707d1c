package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/chzyer/readline"

	"github.com/csgarlock/corvid/internal/config"
	"github.com/csgarlock/corvid/internal/engine"
	"github.com/csgarlock/corvid/internal/eval"
	"github.com/csgarlock/corvid/internal/fen"
	"github.com/csgarlock/corvid/internal/movegen"
	"github.com/csgarlock/corvid/internal/position"
	"github.com/csgarlock/corvid/internal/search"
	"github.com/csgarlock/corvid/internal/timeman"
)

func filterInput(r rune) (rune, bool) {
	if r == readline.CharCtrlZ {
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

// runDebugREPL is an interactive shell for driving the engine by hand,
// grounded on the macondo shell's readline setup: a colored prompt,
// persistent history, and a flat switch over command prefixes.
func runDebugREPL(cfg config.Config) {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mcorvid>\033[0m ",
		HistoryFile:     "/tmp/corvid_history.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	defer l.Close()

	e := engine.New(cfg)
	pos := mustParse(fen.StartPos)

	for {
		line, err := l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		line = strings.TrimSpace(line)

		switch {
		case line == "":
		case line == "bye" || line == "exit" || line == "quit":
			return
		case strings.HasPrefix(line, "fen "):
			p, err := fen.Parse(strings.TrimPrefix(line, "fen "))
			if err != nil {
				showMessage("Error: "+err.Error(), l.Stderr())
				break
			}
			pos = p
			showMessage(fen.String(pos), l.Stderr())
		case line == "fen":
			showMessage(fen.String(pos), l.Stderr())
		case strings.HasPrefix(line, "perft "):
			depth, err := strconv.Atoi(strings.TrimPrefix(line, "perft "))
			if err != nil || depth < 0 {
				showMessage("usage: perft <depth>", l.Stderr())
				break
			}
			nodes := perft(pos, depth)
			showMessage(fmt.Sprintf("nodes: %d", nodes), l.Stderr())
		case line == "eval":
			showMessage(fmt.Sprintf("eval: %d", eval.Evaluate(pos)), l.Stderr())
		case strings.HasPrefix(line, "move "):
			uciMove := strings.TrimPrefix(line, "move ")
			applyUCIMove(pos, uciMove)
			showMessage(fen.String(pos), l.Stderr())
		case strings.HasPrefix(line, "go"):
			limits := timeman.Limits{MoveTime: 1000}
			parseGoArgs(&limits, strings.Fields(line))
			result := e.Search(pos, limits, func(r search.Result) {
				showMessage(fmt.Sprintf("depth %d score %d nodes %d pv %s", r.Depth, r.Score, r.Nodes, pvString(r.PV)), l.Stderr())
			})
			showMessage("bestmove "+result.BestMove.String(), l.Stderr())
		case line == "help":
			showMessage("commands: fen [<fen>], move <uci>, perft <n>, eval, go [movetime N|depth N], quit", l.Stderr())
		default:
			log.Debug().Msgf("unrecognized: %v", strconv.Quote(line))
		}
	}
}

func parseGoArgs(limits *timeman.Limits, fields []string) {
	for i := 1; i < len(fields); i++ {
		switch fields[i] {
		case "movetime":
			limits.MoveTime = msArg(fields, &i)
		case "depth":
			limits.Depth = intArg(fields, &i)
		}
	}
}

// perft counts leaf nodes at depth by brute-force recursion over legal
// moves, the standard move-generator correctness check (spec.md §8).
func perft(p *position.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var nodes uint64
	for _, m := range movegen.GenerateLegal(p, true) {
		u := p.Make(m)
		nodes += perft(p, depth-1)
		p.Unmake(m, u)
	}
	return nodes
}
