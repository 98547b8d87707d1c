package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/csgarlock/corvid/internal/config"
	"github.com/csgarlock/corvid/internal/engine"
	"github.com/csgarlock/corvid/internal/fen"
	"github.com/csgarlock/corvid/internal/movegen"
	"github.com/csgarlock/corvid/internal/position"
	"github.com/csgarlock/corvid/internal/search"
	"github.com/csgarlock/corvid/internal/timeman"
)

// runUCILoop reads one command per line from stdin and writes responses
// to stdout, the "external shell" of spec.md §6. It understands enough
// of the UCI vocabulary to drive the engine façade: uci, isready,
// ucinewgame, position, go, stop, quit.
func runUCILoop(cfg config.Config) {
	e := engine.New(cfg)
	pos := mustParse(fen.StartPos)

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "uci":
			fmt.Println("id name corvid")
			fmt.Println("id author the corvid authors")
			fmt.Println("uciok")
		case "isready":
			fmt.Println("readyok")
		case "ucinewgame":
			pos = mustParse(fen.StartPos)
		case "setoption":
			applySetOption(e, fields)
		case "position":
			pos = handlePosition(fields)
		case "go":
			handleGo(e, pos, fields)
		case "stop":
			// Searches run synchronously inside handleGo, so this line
			// is only read after the search has returned and there is
			// nothing left to cancel. A "go infinite" search therefore
			// ends only at the search's maximum depth.
		case "quit":
			return
		default:
			// Unknown lines are ignored, per spec.md §7's "illegal move
			// from host: parse returns no move; the host line is
			// ignored" philosophy generalized to unknown commands.
		}
	}
}

func mustParse(s string) *position.Position {
	p, err := fen.Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

func applySetOption(e *engine.Engine, fields []string) {
	// setoption name <Name> value <Value>
	nameIdx, valueIdx := -1, -1
	for i, f := range fields {
		switch f {
		case "name":
			nameIdx = i + 1
		case "value":
			valueIdx = i + 1
		}
	}
	if nameIdx < 0 || nameIdx >= len(fields) {
		return
	}
	name := fields[nameIdx]
	value := ""
	if valueIdx >= 0 && valueIdx < len(fields) {
		value = strings.Join(fields[valueIdx:], " ")
	}
	switch strings.ToLower(name) {
	case "hash":
		if mb, err := strconv.Atoi(value); err == nil {
			e.SetHash(mb)
		}
	case "threads":
		if n, err := strconv.Atoi(value); err == nil {
			e.Config.Threads = n
			e.Config.Clamp()
		}
	case "multipv":
		if n, err := strconv.Atoi(value); err == nil {
			e.Config.MultiPV = n
			e.Config.Clamp()
		}
	case "moveoverhead":
		if n, err := strconv.Atoi(value); err == nil {
			e.Config.MoveOverhead = n
			e.Config.Clamp()
		}
	}
}

func handlePosition(fields []string) *position.Position {
	var pos *position.Position
	rest := fields[1:]
	if len(rest) == 0 {
		return mustParse(fen.StartPos)
	}
	idx := 0
	if rest[0] == "startpos" {
		pos = mustParse(fen.StartPos)
		idx = 1
	} else if rest[0] == "fen" {
		end := 1
		for end < len(rest) && rest[end] != "moves" {
			end++
		}
		pos = mustParse(strings.Join(rest[1:end], " "))
		idx = end
	} else {
		return mustParse(fen.StartPos)
	}
	if idx < len(rest) && rest[idx] == "moves" {
		for _, mv := range rest[idx+1:] {
			applyUCIMove(pos, mv)
		}
	}
	return pos
}

func applyUCIMove(pos *position.Position, uciMove string) {
	for _, m := range movegen.GenerateLegal(pos, true) {
		if m.String() == uciMove {
			pos.Make(m)
			return
		}
	}
}

func handleGo(e *engine.Engine, pos *position.Position, fields []string) {
	limits := timeman.Limits{Overhead: time.Duration(e.Config.MoveOverhead) * time.Millisecond}
	for i := 1; i < len(fields); i++ {
		switch fields[i] {
		case "wtime":
			limits.WhiteTime = msArg(fields, &i)
		case "btime":
			limits.BlackTime = msArg(fields, &i)
		case "winc":
			limits.WhiteInc = msArg(fields, &i)
		case "binc":
			limits.BlackInc = msArg(fields, &i)
		case "movestogo":
			limits.MovesToGo = intArg(fields, &i)
		case "movetime":
			limits.MoveTime = msArg(fields, &i)
		case "depth":
			limits.Depth = intArg(fields, &i)
		case "infinite":
			limits.Infinite = true
		}
	}
	limits.FullmoveNumber = 1

	result := e.Search(pos, limits, func(r search.Result) {
		fmt.Printf("info depth %d seldepth %d multipv %d score %s nodes %d nps %d hashfull %d time %d pv %s\n",
			r.Depth, r.SelDepth, r.MultiPVIndex, scoreString(r.Score), r.Nodes, nps(r), r.HashFull, r.Elapsed.Milliseconds(), pvString(r.PV))
	})
	fmt.Printf("bestmove %s\n", result.BestMove.String())
}

// scoreString renders a score using spec.md §6's mate scheme: scores
// within search.MateBound plies of a forced mate are reported as "mate
// N" (signed, plies to mate halved and rounded toward the mating side),
// everything else as centipawns.
func scoreString(score int32) string {
	if score >= search.MateValue-search.MateBound {
		pliesToMate := search.MateValue - score
		return fmt.Sprintf("mate %d", (pliesToMate+1)/2)
	}
	if score <= -search.MateValue+search.MateBound {
		pliesToMate := search.MateValue + score
		return fmt.Sprintf("mate -%d", (pliesToMate+1)/2)
	}
	return fmt.Sprintf("cp %d", score)
}

func nps(r search.Result) uint64 {
	ms := r.Elapsed.Milliseconds()
	if ms <= 0 {
		return 0
	}
	return r.Nodes * 1000 / uint64(ms)
}

func pvString(pv []position.Move) string {
	parts := make([]string, len(pv))
	for i, m := range pv {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}

func msArg(fields []string, i *int) time.Duration {
	return time.Duration(intArg(fields, i)) * time.Millisecond
}

func intArg(fields []string, i *int) int {
	if *i+1 >= len(fields) {
		return 0
	}
	*i++
	v, _ := strconv.Atoi(fields[*i])
	return v
}
