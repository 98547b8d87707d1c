package movegen

import (
	. "github.com/csgarlock/corvid/internal/position"
)

// IsLegal makes m on p, tests whether the mover's own king is attacked,
// and unmakes it. This is the only legality test the engine uses (spec.md
// §4.2): the generator itself only respects piece geometry and
// occupancy.
func IsLegal(p *Position, m Move) bool {
	mover := p.SideToMove
	u := p.Make(m)
	legal := !p.IsAttacked(p.KingSquare[mover], mover.Other())
	p.Unmake(m, u)
	return legal
}

// GenerateLegal returns every fully legal move, for callers (tests, the
// root of search) that don't want to interleave generation with make.
func GenerateLegal(p *Position, includeQuiets bool) []Move {
	var list List
	Generate(p, &list, includeQuiets)
	out := make([]Move, 0, list.Len())
	for i := 0; i < list.Len(); i++ {
		if m := list.At(i); IsLegal(p, m) {
			out = append(out, m)
		}
	}
	return out
}

// HasLegalMove reports whether the side to move has any legal move at
// all, used to distinguish checkmate from stalemate.
func HasLegalMove(p *Position) bool {
	var list List
	Generate(p, &list, true)
	for i := 0; i < list.Len(); i++ {
		if IsLegal(p, list.At(i)) {
			return true
		}
	}
	return false
}
