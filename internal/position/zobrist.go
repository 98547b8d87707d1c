package position

import (
	"math/rand"

	"github.com/csgarlock/corvid/internal/attacks"
)

// zobristSeed is fixed so that two processes (or two search threads)
// agree on the same key space; this is what lets the transposition table
// be shared and lets perft/search results be reproduced exactly.
const zobristSeed = 0x5A4F42524953542A

var (
	pieceSquareKeys [2][6][64]uint64
	sideToMoveKey   uint64
	castleKeys      [4]uint64
	enPassantKeys   [8]uint64
)

func init() {
	r := rand.New(rand.NewSource(zobristSeed))
	for c := 0; c < 2; c++ {
		for k := 0; k < 6; k++ {
			for s := 0; s < 64; s++ {
				pieceSquareKeys[c][k][s] = r.Uint64()
			}
		}
	}
	sideToMoveKey = r.Uint64()
	for i := range castleKeys {
		castleKeys[i] = r.Uint64()
	}
	for i := range enPassantKeys {
		enPassantKeys[i] = r.Uint64()
	}
}

func pieceKey(c Color, k PieceKind, s Square) uint64 {
	return pieceSquareKeys[c][k][s]
}

// castleRightsKey XORs together the keys for every right currently set.
func castleRightsKey(rights uint8) uint64 {
	var k uint64
	for i := 0; i < 4; i++ {
		if rights&(1<<i) != 0 {
			k ^= castleKeys[i]
		}
	}
	return k
}

// hashFromScratch recomputes both the position key and the pawn-only key
// from the current board state, used by invariant tests (spec.md §8) and
// by FEN loading (spec.md §6).
func (p *Position) hashFromScratch() (key, pawnKey uint64) {
	for c := Color(0); c < 2; c++ {
		for k := PieceKind(0); k < 6; k++ {
			bb := p.pieces[c][k]
			for bb != 0 {
				s := attacks.PopLSB(&bb)
				key ^= pieceKey(c, k, s)
				if k == Pawn {
					pawnKey ^= pieceKey(c, k, s)
				}
			}
		}
	}
	if p.SideToMove == Black {
		key ^= sideToMoveKey
	}
	key ^= castleRightsKey(p.CastleRights)
	if p.EPSquare != NoSquare {
		key ^= enPassantKeys[p.EPSquare.File()]
	}
	return key, pawnKey
}
