package movegen

import (
	"github.com/csgarlock/corvid/internal/attacks"
	. "github.com/csgarlock/corvid/internal/position"
)

var promotionOrder = [4]PieceKind{Queen, Rook, Bishop, Knight}

// Generate appends every pseudo-legal move from the side to move into
// list. When includeQuiets is false, only captures, en-passant, and
// promotions are generated (used by quiescence, spec.md §4.7.1).
func Generate(p *Position, list *List, includeQuiets bool) {
	us := p.SideToMove
	them := us.Other()
	own := p.Occupied(us)
	enemy := p.Occupied(them)
	occ := p.All
	empty := ^occ

	genPawns(p, list, us, them, enemy, empty, includeQuiets)
	genPieceMoves(p, list, us, p.Pieces(us, Knight), attacks.KnightAttacks, own, enemy, includeQuiets, Knight)
	genPieceMoves(p, list, us, p.Pieces(us, Bishop), func(s Square) Bitboard { return attacks.BishopAttacks(s, occ) }, own, enemy, includeQuiets, Bishop)
	genPieceMoves(p, list, us, p.Pieces(us, Rook), func(s Square) Bitboard { return attacks.RookAttacks(s, occ) }, own, enemy, includeQuiets, Rook)
	genPieceMoves(p, list, us, p.Pieces(us, Queen), func(s Square) Bitboard { return attacks.QueenAttacks(s, occ) }, own, enemy, includeQuiets, Queen)
	genKing(p, list, us, own, enemy, includeQuiets)
}

func addNonPawnMove(list *List, from, to Square, moving PieceKind, p *Position) {
	captured := p.PieceAt(to).Kind
	list.Add(NewMove(from, to, moving, captured, NoPieceKind, false, false, false))
}

// genPieceMoves drives both leapers (knight) and sliders (bishop/rook/
// queen): the only difference between them is how attackFn computes the
// destination set, which the caller closes over.
func genPieceMoves(p *Position, list *List, us Color, pieces Bitboard, attackFn func(Square) Bitboard, own, enemy Bitboard, includeQuiets bool, kind PieceKind) {
	bb := pieces
	for bb != 0 {
		from := attacks.PopLSB(&bb)
		targets := attackFn(from) &^ own
		if !includeQuiets {
			targets &= enemy
		}
		for targets != 0 {
			to := attacks.PopLSB(&targets)
			addNonPawnMove(list, from, to, kind, p)
		}
	}
}

func genKing(p *Position, list *List, us Color, own, enemy Bitboard, includeQuiets bool) {
	from := p.KingSquare[us]
	targets := attacks.KingAttacks(from) &^ own
	if !includeQuiets {
		targets &= enemy
	}
	for targets != 0 {
		to := attacks.PopLSB(&targets)
		addNonPawnMove(list, from, to, King, p)
	}
	if !includeQuiets {
		return
	}
	genCastles(p, list, us)
}

func genCastles(p *Position, list *List, us Color) {
	them := us.Other()
	rank := Square(0)
	kingSideRight, queenSideRight := WhiteKingSide, WhiteQueenSide
	if us == Black {
		rank = 56
		kingSideRight, queenSideRight = BlackKingSide, BlackQueenSide
	}
	from := rank + 4
	if p.KingSquare[us] != from {
		return
	}

	if p.CastleRights&kingSideRight != 0 {
		f, g := rank+5, rank+6
		if p.PieceAt(f).Kind == NoPieceKind && p.PieceAt(g).Kind == NoPieceKind &&
			!p.IsAttacked(from, them) && !p.IsAttacked(f, them) && !p.IsAttacked(g, them) {
			list.Add(NewMove(from, g, King, NoPieceKind, NoPieceKind, false, true, false))
		}
	}
	if p.CastleRights&queenSideRight != 0 {
		b, c, d := rank+1, rank+2, rank+3
		if p.PieceAt(b).Kind == NoPieceKind && p.PieceAt(c).Kind == NoPieceKind && p.PieceAt(d).Kind == NoPieceKind &&
			!p.IsAttacked(from, them) && !p.IsAttacked(d, them) && !p.IsAttacked(c, them) {
			list.Add(NewMove(from, c, King, NoPieceKind, NoPieceKind, false, true, false))
		}
	}
}

func genPawns(p *Position, list *List, us, them Color, enemy, empty Bitboard, includeQuiets bool) {
	pawns := p.Pieces(us, Pawn)
	forward := 8
	startRank, lastRank := attacks.Rank2, attacks.Rank8
	if us == Black {
		forward = -8
		startRank, lastRank = attacks.Rank7, attacks.Rank1
	}

	bb := pawns
	for bb != 0 {
		from := attacks.PopLSB(&bb)
		to := stepSquare(from, forward)

		if includeQuiets && empty&to.Bitboard() != 0 {
			if to.Bitboard()&lastRank != 0 {
				addPromotions(list, from, to, NoPieceKind)
			} else {
				list.Add(NewMove(from, to, Pawn, NoPieceKind, NoPieceKind, false, false, false))
				if from.Bitboard()&startRank != 0 {
					to2 := stepSquare(to, forward)
					if empty&to2.Bitboard() != 0 {
						list.Add(NewMove(from, to2, Pawn, NoPieceKind, NoPieceKind, false, false, true))
					}
				}
			}
		}

		capTargets := attacks.PawnAttacks(us, from)
		captures := capTargets & enemy
		for captures != 0 {
			capTo := attacks.PopLSB(&captures)
			captured := p.PieceAt(capTo).Kind
			if capTo.Bitboard()&lastRank != 0 {
				addPromotions(list, from, capTo, captured)
			} else {
				list.Add(NewMove(from, capTo, Pawn, captured, NoPieceKind, false, false, false))
			}
		}

		if p.EPSquare != NoSquare && capTargets&p.EPSquare.Bitboard() != 0 {
			list.Add(NewMove(from, p.EPSquare, Pawn, Pawn, NoPieceKind, true, false, false))
		}
	}
}

func addPromotions(list *List, from, to Square, captured PieceKind) {
	for _, promo := range promotionOrder {
		list.Add(NewMove(from, to, Pawn, captured, promo, false, false, false))
	}
}

func stepSquare(s Square, delta int) Square {
	return Square(int(s) + delta)
}
