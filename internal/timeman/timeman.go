// Package timeman computes the hard and soft search deadlines of spec.md
// §4.8 from a go-command's limits. The search polls a monotonic clock
// against these deadlines roughly every 2048 nodes via a counter-masked
// probe (NodeCheckMask), never blocking.
package timeman

import "time"

// Limits mirrors the inputs a UCI-style "go" command supplies.
type Limits struct {
	WhiteTime, BlackTime           time.Duration
	WhiteInc, BlackInc             time.Duration
	MovesToGo                      int
	MoveTime                       time.Duration
	Depth                          int
	Infinite                       bool
	Overhead                       time.Duration
	FullmoveNumber                 int
	TotalPieces                    int
}

// NodeCheckMask is ANDed against the node counter; a zero result triggers
// a clock poll (spec.md §4.8's "approximately every 2048 nodes").
const NodeCheckMask = 2048 - 1

// Deadlines is the pair of bounds the search obeys: Hard must never be
// crossed, Soft only gates whether a new iteration is started once the
// PV is judged stable.
type Deadlines struct {
	Hard, Soft time.Duration
	Infinite   bool
}

// Compute derives deadlines for the side to move from l.
func Compute(l Limits, sideToMove int) Deadlines {
	if l.Infinite {
		return Deadlines{Infinite: true}
	}
	if l.MoveTime > 0 {
		hard := l.MoveTime - l.Overhead
		if hard < 5*time.Millisecond {
			hard = 5 * time.Millisecond
		}
		soft := hard - clampDuration(hard/20, 50*time.Millisecond, 1000*time.Millisecond)
		if soft < 0 {
			soft = 0
		}
		return Deadlines{Hard: hard, Soft: soft}
	}
	if l.Depth > 0 {
		return Deadlines{Infinite: true}
	}

	myTime, myInc := l.WhiteTime, l.WhiteInc
	if sideToMove == 1 {
		myTime, myInc = l.BlackTime, l.BlackInc
	}

	if myTime < 1500*time.Millisecond && myTime > 0 {
		hard := myTime/12 + myInc/2
		if hard < 5*time.Millisecond {
			hard = 5 * time.Millisecond
		}
		cap := myTime / 3
		if hard > cap {
			hard = cap
		}
		return Deadlines{Hard: hard, Soft: hard}
	}

	mtg := l.MovesToGo
	if mtg <= 0 {
		mtg = 40
	}
	if mtg < 5 {
		mtg = 5
	} else if mtg > 70 {
		mtg = 70
	}

	base := float64(myTime)/float64(mtg+6) + 0.75*float64(myInc)

	switch {
	case l.FullmoveNumber <= 12:
		base *= 1.15
	case l.FullmoveNumber >= 40:
		base *= 0.95
	}
	if l.TotalPieces > 0 && l.TotalPieces <= 10 {
		base *= 0.85
	}

	alloc := time.Duration(base)
	if cap := myTime / 2; alloc > cap {
		alloc = cap
	}
	if alloc < 5*time.Millisecond {
		alloc = 5 * time.Millisecond
	}

	return Deadlines{Hard: alloc, Soft: alloc}
}

func clampDuration(v, lo, hi time.Duration) time.Duration {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
