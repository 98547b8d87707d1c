package search

import (
	"sort"

	"github.com/csgarlock/corvid/internal/movegen"
	"github.com/csgarlock/corvid/internal/position"
)

// RootLine is one scored line from a multi-PV root search.
type RootLine struct {
	Score int32
	PV    []position.Move
}

// rootMultiPV implements spec.md §4.7's multi-PV root behavior: every
// legal root move is scored independently at depth-1 under a full
// window, and the lines are returned sorted best-first. count is
// clamped to the number of legal moves.
func rootMultiPV(th *Thread, depth, count int) []RootLine {
	p := th.Pos
	var list movegen.List
	movegen.Generate(p, &list, true)

	lines := make([]RootLine, 0, list.Len())
	for i := 0; i < list.Len(); i++ {
		m := list.At(i)
		u := p.Make(m)
		if p.IsAttacked(p.KingSquare[p.SideToMove.Other()], p.SideToMove) {
			p.Unmake(m, u)
			continue
		}
		th.moveStack[0] = m
		childDepth := depth - 1
		if childDepth < 0 {
			childDepth = 0
		}
		score := -th.Negamax(-MateValue, MateValue, childDepth, 1, true, position.NilMove)
		p.Unmake(m, u)

		if th.Stop.Load() {
			if len(lines) == 0 {
				lines = append(lines, RootLine{Score: score, PV: []position.Move{m}})
			}
			break
		}

		pv := make([]position.Move, 0, th.pvLen[1]+1)
		pv = append(pv, m)
		pv = append(pv, th.pv[1][:th.pvLen[1]]...)
		lines = append(lines, RootLine{Score: score, PV: pv})
	}

	sort.SliceStable(lines, func(i, j int) bool { return lines[i].Score > lines[j].Score })

	if count > 0 && count < len(lines) {
		lines = lines[:count]
	}
	return lines
}
