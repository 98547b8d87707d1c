// Package position implements the board representation and make/unmake
// machinery of spec.md §3/§4.2: twelve piece bitboards, incremental
// Zobrist hashing (a full position key and a pawn-only key), and the
// invariants checked by the test suite in §8.
package position

import "github.com/csgarlock/corvid/internal/attacks"

type (
	Square   = attacks.Square
	Bitboard = attacks.Bitboard
	Color    = attacks.Color
)

const (
	White = attacks.White
	Black = attacks.Black

	NoSquare = attacks.NoSquare
)

// FromFileRank builds a Square from 0-indexed file and rank.
func FromFileRank(file, rank int) Square { return attacks.FromFileRank(file, rank) }

// PieceKind is one of the six piece types, or NoPieceKind for "empty" /
// "no capture" / "no promotion".
type PieceKind uint8

const (
	Pawn PieceKind = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceKind
)

func (k PieceKind) String() string {
	switch k {
	case Pawn:
		return "p"
	case Knight:
		return "n"
	case Bishop:
		return "b"
	case Rook:
		return "r"
	case Queen:
		return "q"
	case King:
		return "k"
	}
	return "."
}

// Piece is a (color, kind) pair, used by the 64-entry board array. An
// empty square is represented by Kind == NoPieceKind.
type Piece struct {
	Color Color
	Kind  PieceKind
}

var NoPiece = Piece{Kind: NoPieceKind}

// Castling rights bitmask bits, per spec.md §3.
const (
	WhiteKingSide uint8 = 1 << iota
	WhiteQueenSide
	BlackKingSide
	BlackQueenSide
	AllCastleRights = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide
)
