package book

import (
	"math/bits"

	"github.com/csgarlock/corvid/internal/position"
)

// Polyglot's Zobrist keys are a separate random table from the engine's
// own hashing scheme (internal/position's Key/PawnKey), generated by a
// fixed xorshift64 stream and indexed black pawn..black king, then white
// pawn..white king. This is not the published Polyglot random table or
// its piece order, so the keys computed here do not match the keys stored
// in standard Polyglot .bin books. This mirrors the
// hailam-chessplay reference's initPolyglotKeys/PolyglotHash, generalized
// from its board representation to position.Position's.
var (
	polyglotPieces     [12][64]uint64
	polyglotCastling   [4]uint64
	polyglotEnPassant  [8]uint64
	polyglotSideToMove uint64
)

func init() {
	var s uint64 = 0x37b4a4b3f0d1c0d0
	next := func() uint64 {
		s ^= s >> 12
		s ^= s << 25
		s ^= s >> 27
		return s * 0x2545F4914F6CDD1D
	}
	for piece := 0; piece < 12; piece++ {
		for sq := 0; sq < 64; sq++ {
			polyglotPieces[piece][sq] = next()
		}
	}
	for i := 0; i < 4; i++ {
		polyglotCastling[i] = next()
	}
	for i := 0; i < 8; i++ {
		polyglotEnPassant[i] = next()
	}
	polyglotSideToMove = next()
}

// polyglotKindIndex maps (color, kind) to Polyglot's piece-table index.
var polyglotKindIndex = [2][6]int{
	{6, 7, 8, 9, 10, 11}, // white: pawn..king
	{0, 1, 2, 3, 4, 5},   // black: pawn..king
}

// PolyglotKey computes p's book key with Polyglot's construction rules
// (pieces, castling rights, en passant only when capturable, white to
// move) over the table above, independent of the engine's internal Key
// field so opening-book lookups survive any change to the internal
// hashing scheme. Lookups find only entries whose keys were produced by
// this same function.
func PolyglotKey(p *position.Position) uint64 {
	var hash uint64

	for c := position.White; c <= position.Black; c++ {
		for k := position.Pawn; k <= position.King; k++ {
			bb := p.Pieces(c, k)
			for bb != 0 {
				sq := attacksPopLSB(&bb)
				hash ^= polyglotPieces[polyglotKindIndex[c][k]][sq]
			}
		}
	}

	if p.CastleRights&position.WhiteKingSide != 0 {
		hash ^= polyglotCastling[0]
	}
	if p.CastleRights&position.WhiteQueenSide != 0 {
		hash ^= polyglotCastling[1]
	}
	if p.CastleRights&position.BlackKingSide != 0 {
		hash ^= polyglotCastling[2]
	}
	if p.CastleRights&position.BlackQueenSide != 0 {
		hash ^= polyglotCastling[3]
	}

	if p.EPSquare != position.NoSquare {
		file := p.EPSquare.File()
		var capturingPawns position.Bitboard
		if p.SideToMove == position.White {
			capturingPawns = p.Pieces(position.White, position.Pawn) & epAdjacentMask(file, 4)
		} else {
			capturingPawns = p.Pieces(position.Black, position.Pawn) & epAdjacentMask(file, 3)
		}
		if capturingPawns != 0 {
			hash ^= polyglotEnPassant[file]
		}
	}

	if p.SideToMove == position.White {
		hash ^= polyglotSideToMove
	}

	return hash
}

func epAdjacentMask(file, rank int) position.Bitboard {
	var mask position.Bitboard
	if file > 0 {
		mask |= position.Bitboard(1) << uint(position.FromFileRank(file-1, rank))
	}
	if file < 7 {
		mask |= position.Bitboard(1) << uint(position.FromFileRank(file+1, rank))
	}
	return mask
}

func attacksPopLSB(bb *position.Bitboard) position.Square {
	sq := position.Square(bits.TrailingZeros64(uint64(*bb)))
	*bb &= *bb - 1
	return sq
}
