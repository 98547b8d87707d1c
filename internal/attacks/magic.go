package attacks

import (
	"math/bits"
	"math/rand"

	"github.com/rs/zerolog/log"
)

// magicEntry is the per-square magic-bitboard structure of spec.md §4.1:
// the relevant-occupancy mask, the multiplier, the shift, and a slice into
// the shared attack table.
type magicEntry struct {
	mask  Bitboard
	magic uint64
	shift uint
	table []Bitboard
	// ray is the slow ray-scan fallback used when no collision-free magic
	// was found for this square within the search bound.
	ray bool
}

var (
	rookMagics   [64]magicEntry
	bishopMagics [64]magicEntry
)

var rookDirs = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
var bishopDirs = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

// maxMagicAttempts bounds the random search for a collision-free magic
// multiplier per square; a square that exhausts this bound falls back to
// ray-scan at runtime (spec.md §4.1).
const maxMagicAttempts = 100_000_000

func initMagics() {
	for s := Square(0); s < 64; s++ {
		rookMagics[s] = buildMagic(s, rookDirs, true)
		bishopMagics[s] = buildMagic(s, bishopDirs, false)
	}
}

// relevantMask returns the ray squares in the given directions from sq,
// excluding the board edge in each ray direction (edge squares never
// affect whether the ray is blocked from sq's perspective) and excluding
// sq itself.
func relevantMask(sq Square, dirs [4][2]int) Bitboard {
	var mask Bitboard
	for _, d := range dirs {
		cur := sq
		for {
			next, ok := offset(cur, d[0], d[1])
			if !ok {
				break
			}
			// stop one square before the edge in this direction
			nf, nr := next.File(), next.Rank()
			if onEdgeFor(nf, nr, d) {
				break
			}
			mask |= next.Bitboard()
			cur = next
		}
	}
	return mask
}

func onEdgeFor(file, rank int, dir [2]int) bool {
	if dir[0] > 0 && file == 7 {
		return true
	}
	if dir[0] < 0 && file == 0 {
		return true
	}
	if dir[1] > 0 && rank == 7 {
		return true
	}
	if dir[1] < 0 && rank == 0 {
		return true
	}
	return false
}

// rayAttack performs a true ray scan in dirs from sq, blocked by occupied.
func rayAttack(sq Square, dirs [4][2]int, occupied Bitboard) Bitboard {
	var result Bitboard
	for _, d := range dirs {
		cur := sq
		for {
			next, ok := offset(cur, d[0], d[1])
			if !ok {
				break
			}
			result |= next.Bitboard()
			if occupied&next.Bitboard() != 0 {
				break
			}
			cur = next
		}
	}
	return result
}

func buildMagic(sq Square, dirs [4][2]int, rook bool) magicEntry {
	mask := relevantMask(sq, dirs)
	bitCount := mask.PopCount()
	shift := uint(64 - bitCount)
	size := 1 << bitCount

	occupancies := make([]Bitboard, size)
	attacks := make([]Bitboard, size)
	var sub Bitboard
	for i := 0; i < size; i++ {
		occupancies[i] = sub
		attacks[i] = rayAttack(sq, dirs, sub)
		sub = (sub - mask) & mask
	}

	table := make([]Bitboard, size)
	used := make([]bool, size)
	rnd := rand.New(rand.NewSource(int64(sq) + 1))
	for attempt := 0; attempt < maxMagicAttempts; attempt++ {
		magic := sparseRandom(rnd)
		if bits.OnesCount64(uint64((mask.bb()*magic)&0xFF00000000000000)) < 6 {
			continue
		}
		for i := range used {
			used[i] = false
		}
		good := true
		for i := 0; i < size; i++ {
			idx := (uint64(occupancies[i]) * magic) >> shift
			if used[idx] {
				if table[idx] != attacks[i] {
					good = false
					break
				}
				continue
			}
			used[idx] = true
			table[idx] = attacks[i]
		}
		if good {
			return magicEntry{mask: mask, magic: magic, shift: shift, table: table}
		}
	}

	log.Warn().Uint8("square", uint8(sq)).Bool("rook", rook).
		Msg("no collision-free magic found, falling back to ray-scan")
	return magicEntry{mask: mask, ray: true}
}

func (b Bitboard) bb() uint64 { return uint64(b) }

// sparseRandom produces a candidate multiplier with few set bits, which
// empirically finds magics faster (high-bit-spread heuristic).
func sparseRandom(rnd *rand.Rand) uint64 {
	return rnd.Uint64() & rnd.Uint64() & rnd.Uint64()
}

func (m *magicEntry) attacksFor(occupied Bitboard, dirs [4][2]int, sq Square) Bitboard {
	if m.ray {
		return rayAttack(sq, dirs, occupied)
	}
	idx := (uint64(occupied&m.mask) * m.magic) >> m.shift
	return m.table[idx]
}

// RookAttacks returns the rook attack set from sq given the current board
// occupancy.
func RookAttacks(sq Square, occupied Bitboard) Bitboard {
	return rookMagics[sq].attacksFor(occupied, rookDirs, sq)
}

// BishopAttacks returns the bishop attack set from sq given the current
// board occupancy.
func BishopAttacks(sq Square, occupied Bitboard) Bitboard {
	return bishopMagics[sq].attacksFor(occupied, bishopDirs, sq)
}

// QueenAttacks is the union of rook and bishop attacks from sq.
func QueenAttacks(sq Square, occupied Bitboard) Bitboard {
	return RookAttacks(sq, occupied) | BishopAttacks(sq, occupied)
}
