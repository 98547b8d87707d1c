package position

import "github.com/csgarlock/corvid/internal/attacks"

// Position is a single chess state: twelve piece bitboards, per-color and
// global occupancy, a 64-entry mailbox, castling/en-passant/clock state,
// incremental Zobrist keys, and the key history used for repetition
// detection (spec.md §3).
type Position struct {
	pieces [2][6]Bitboard
	occ    [2]Bitboard
	All    Bitboard

	board [64]Piece

	SideToMove    Color
	CastleRights  uint8
	EPSquare      Square
	KingSquare    [2]Square
	HalfmoveClock uint16
	FullmoveNum   uint16

	Key     uint64
	PawnKey uint64

	// KeyHistory is the ordered sequence of position keys reached since
	// the game root, used for threefold-repetition detection (spec.md §3,
	// §4.7 step 3).
	KeyHistory []uint64
}

// Undo captures everything Make mutates, so Unmake can restore it exactly
// (spec.md §3's Undo record). Callers keep one Undo per live ply on their
// own call stack; Position never allocates one itself.
type Undo struct {
	Captured      PieceKind
	CastleRights  uint8
	EPSquare      Square
	Key           uint64
	PawnKey       uint64
	Occ           [2]Bitboard
	All           Bitboard
	HalfmoveClock uint16
	FullmoveNum   uint16
}

// NewEmpty returns a Position with no pieces placed, side to move white,
// no castling rights, and keys matching that empty state. FEN decoding
// (internal/fen) builds positions by calling Place repeatedly on a value
// returned from NewEmpty.
func NewEmpty() *Position {
	attacks.Init()
	p := &Position{
		EPSquare:   NoSquare,
		KingSquare: [2]Square{NoSquare, NoSquare},
	}
	for i := range p.board {
		p.board[i] = NoPiece
	}
	return p
}

// Place puts piece (c, k) on sq. It does not touch keys or occupancy;
// callers finish with RecomputeDerived once every piece is placed.
func (p *Position) Place(c Color, k PieceKind, sq Square) {
	p.board[sq] = Piece{Color: c, Kind: k}
	p.pieces[c][k] |= sq.Bitboard()
	if k == King {
		p.KingSquare[c] = sq
	}
}

// RecomputeDerived rebuilds occupancies and both Zobrist keys from
// scratch. spec.md §6 requires this after every FEN load.
func (p *Position) RecomputeDerived() {
	p.occ[White] = 0
	p.occ[Black] = 0
	for k := PieceKind(0); k < 6; k++ {
		p.occ[White] |= p.pieces[White][k]
		p.occ[Black] |= p.pieces[Black][k]
	}
	p.All = p.occ[White] | p.occ[Black]
	p.Key, p.PawnKey = p.hashFromScratch()
	p.KeyHistory = append(p.KeyHistory[:0], p.Key)
}

// PieceAt returns the piece on sq, or NoPiece.
func (p *Position) PieceAt(sq Square) Piece { return p.board[sq] }

func (p *Position) Pieces(c Color, k PieceKind) Bitboard { return p.pieces[c][k] }

func (p *Position) Occupied(c Color) Bitboard { return p.occ[c] }

// Clone deep-copies the position, including key history. Each Lazy-SMP
// search thread owns one clone of the root (spec.md §5).
func (p *Position) Clone() *Position {
	c := *p
	c.KeyHistory = append([]uint64(nil), p.KeyHistory...)
	return &c
}

// InCheck reports whether the side to move is in check.
func (p *Position) InCheck() bool {
	return p.IsAttacked(p.KingSquare[p.SideToMove], p.SideToMove.Other())
}

// IsDrawnByHalfmoveClock implements the 50-move rule test of spec.md §8.
func (p *Position) IsDrawnByHalfmoveClock() bool { return p.HalfmoveClock >= 100 }

// IsRepetition walks the key history (every other ply, same side to move)
// the way spec.md §4.7 step 3 and the design note in §9 describe, and
// reports true once the current key has occurred twice before (three
// occurrences total, counting the current node).
func (p *Position) IsRepetition() bool {
	n := len(p.KeyHistory)
	if n < 5 {
		return false
	}
	count := 1
	for i := n - 3; i >= 0 && i >= n-int(p.HalfmoveClock)-1; i -= 2 {
		if p.KeyHistory[i] == p.Key {
			count++
			if count >= 3 {
				return true
			}
		}
	}
	return false
}
