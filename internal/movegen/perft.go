package movegen

import (
	. "github.com/csgarlock/corvid/internal/position"
)

// Perft counts leaf nodes reached from p at the given depth by pure
// recursive make/unmake, the canonical move-generator correctness check
// of spec.md §8. It is not part of the search's hot path.
func Perft(p *Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var list List
	Generate(p, &list, true)
	var nodes uint64
	for i := 0; i < list.Len(); i++ {
		m := list.At(i)
		mover := p.SideToMove
		u := p.Make(m)
		if !p.IsAttacked(p.KingSquare[mover], mover.Other()) {
			nodes += Perft(p, depth-1)
		}
		p.Unmake(m, u)
	}
	return nodes
}

// Divide reports, for each legal root move, the perft count of the
// subtree below it — the standard movegen debugging tool for finding
// which branch disagrees with a reference engine.
func Divide(p *Position, depth int) map[string]uint64 {
	result := make(map[string]uint64)
	var list List
	Generate(p, &list, true)
	for i := 0; i < list.Len(); i++ {
		m := list.At(i)
		mover := p.SideToMove
		u := p.Make(m)
		if !p.IsAttacked(p.KingSquare[mover], mover.Other()) {
			count := uint64(1)
			if depth > 1 {
				count = Perft(p, depth-1)
			}
			result[m.String()] = count
		}
		p.Unmake(m, u)
	}
	return result
}
