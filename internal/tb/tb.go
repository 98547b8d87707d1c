// Package tb defines the narrow endgame-tablebase interface the search
// consults (see Prober for where). No Syzygy decoder exists anywhere in the
// retrieved corpus (the nearest mention, in gorke2's UCI option comment,
// is prose, not code), so this package ships only the interface and a
// Prober that always misses; a real WDL/DTZ file reader can implement
// Prober without touching the engine.
package tb

import "github.com/csgarlock/corvid/internal/position"

// WDL is a win/draw/loss classification from the side-to-move's
// perspective.
type WDL int8

const (
	Loss WDL = iota - 2
	BlindLoss
	Draw
	BlindWin
	Win
)

// Prober answers tablebase queries. The search probes it at interior
// (non-root) nodes; the engine does not probe it at the root. UseSyzygy
// only decides whether the engine hands its prober (always NoOp;
// SyzygyPath is not read) to the search. MaxPieces reports the largest
// piece count it can answer so the search can skip a probe outright for
// larger positions.
type Prober interface {
	MaxPieces() int
	Probe(p *position.Position) (WDL, bool)
}

// NoOp never has an answer. It is the only Prober in this module: the
// engine always holds one, and every search thread starts with one.
type NoOp struct{}

func (NoOp) MaxPieces() int { return 0 }

func (NoOp) Probe(p *position.Position) (WDL, bool) { return Draw, false }

// ScoreFromWDL converts a WDL verdict at a node at ply into a mate-distance
// adjusted centipawn-scale score (spec.md §4.7 step 4: "return a
// mate-distance-adjusted score from the WDL value").
func ScoreFromWDL(w WDL, ply int) int32 {
	const tbWin = 25000
	switch w {
	case Win:
		return tbWin - int32(ply)
	case BlindWin:
		return tbWin/2 - int32(ply)
	case Loss:
		return -tbWin + int32(ply)
	case BlindLoss:
		return -tbWin/2 + int32(ply)
	default:
		return 0
	}
}
