// Package see implements static exchange evaluation (spec.md §4.5): given
// a capture-like move, it estimates the net material result of the full
// exchange sequence on the destination square without actually playing
// any moves, by simulating least-valuable-attacker recaptures over a
// scratch occupancy bitboard.
package see

import (
	"github.com/csgarlock/corvid/internal/attacks"
	"github.com/csgarlock/corvid/internal/position"
)

// pieceValue is SEE's own gain-accounting table, separate from (and not
// equal to) eval's tapered material values; kept local so see has no
// dependency on eval.
var pieceValue = [6]int32{100, 320, 330, 500, 900, 20000}

const maxGainDepth = 32

// Evaluate returns the signed centipawn result of the full exchange
// sequence starting with m, from the mover's perspective (spec.md §4.5).
func Evaluate(p *position.Position, m position.Move) int32 {
	to := m.To()
	from := m.From()

	var gain [maxGainDepth]int32
	depth := 0

	target := m.CapturedKind()
	if m.IsEnPassant() {
		target = position.Pawn
	}
	gain[0] = valueOf(target)
	attackerValue := valueOf(m.MovingKind())

	occ := p.All &^ from.Bitboard()
	if m.IsEnPassant() {
		occ &^= epCapturedSquare(p, m).Bitboard()
	}

	side := p.SideToMove.Other()

	for depth < maxGainDepth-1 {
		attackers := p.AllAttackersTo(to, occ) & occ
		sideAttackers := attackers & p.Occupied(side)
		sq, kind, ok := leastValuableAttacker(p, sideAttackers)
		if !ok {
			break
		}

		depth++
		gain[depth] = attackerValue - gain[depth-1]

		occ &^= sq.Bitboard()
		attackerValue = valueOf(kind)
		side = side.Other()
	}

	for depth > 0 {
		gain[depth-1] = -maxInt32(-gain[depth-1], gain[depth])
		depth--
	}
	return gain[0]
}

// GainsAtLeast reports whether the capture's SEE result is >= threshold,
// sparing callers their own comparison at the main search's SEE-pruning
// (seeThreshold) and ProbCut (0) sites.
func GainsAtLeast(p *position.Position, m position.Move, threshold int32) bool {
	return Evaluate(p, m) >= threshold
}

func valueOf(k position.PieceKind) int32 {
	if k == position.NoPieceKind {
		return 0
	}
	return pieceValue[k]
}

func maxInt32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

// leastValuableAttacker returns the cheapest piece among candidates, by
// consulting the mailbox for each candidate square's kind.
func leastValuableAttacker(p *position.Position, candidates attacks.Bitboard) (position.Square, position.PieceKind, bool) {
	if candidates == 0 {
		return 0, position.NoPieceKind, false
	}
	var bestSq position.Square
	bestKind := position.NoPieceKind
	found := false
	bb := candidates
	for bb != 0 {
		sq := attacks.PopLSB(&bb)
		k := p.PieceAt(sq).Kind
		if !found || pieceValue[k] < pieceValue[bestKind] {
			bestSq, bestKind, found = sq, k, true
		}
	}
	return bestSq, bestKind, found
}

func epCapturedSquare(p *position.Position, m position.Move) position.Square {
	to := m.To()
	if p.SideToMove == position.White {
		return position.Square(int(to) - 8)
	}
	return position.Square(int(to) + 8)
}
