// Package movegen enumerates pseudo-legal moves from bitboards and the
// magic-bitboard slider tables (spec.md §4.3). It never checks whether a
// move leaves the mover's own king in check; legality is the caller's
// job, decided by making the move and probing Position.IsAttacked.
package movegen

import "github.com/csgarlock/corvid/internal/position"

// maxMoves bounds the densest legal chess position comfortably; the
// generator panics rather than silently truncating if a position ever
// exceeds it, because a truncated move list is a correctness bug, not a
// capacity one.
const maxMoves = 256

// List is a fixed-capacity, allocation-free move buffer. Output order is
// insertion order (spec.md §4.3); callers that want a different order
// (the search's heuristic ordering) sort or re-extract from it.
type List struct {
	moves [maxMoves]position.Move
	n     int
}

func (l *List) Add(m position.Move) {
	if l.n >= maxMoves {
		panic("movegen: move list capacity exceeded")
	}
	l.moves[l.n] = m
	l.n++
}

func (l *List) Len() int                      { return l.n }
func (l *List) At(i int) position.Move        { return l.moves[i] }
func (l *List) Set(i int, m position.Move)    { l.moves[i] = m }
func (l *List) Reset()                        { l.n = 0 }
func (l *List) Slice() []position.Move        { return l.moves[:l.n] }
