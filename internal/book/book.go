// Package book reads Polyglot opening books (spec.md §6's "Opening book
// (Polyglot format)... consulted only at the root"). The on-disk binary
// layout (16-byte big-endian records: key, move, weight, learn) has no
// third-party reader in the retrieved corpus, so it is parsed with
// stdlib encoding/binary; the Zobrist key scheme itself is grounded on
// the Polyglot hash construction in the pack's hailam-chessplay
// reference file, generalized from its board representation to ours.
package book

import (
	"bufio"
	"encoding/binary"
	"io"
	"math/rand"
	"os"
	"sort"

	"github.com/csgarlock/corvid/internal/position"
)

// Entry is one Polyglot book record.
type Entry struct {
	Key    uint64
	Move   uint16
	Weight uint16
	Learn  uint32
}

// Book is a Polyglot book loaded fully into memory, sorted by key for
// binary search (books are a few MB at most; this trades a little
// startup time for O(log n) lookups with zero extra indexing structure).
type Book struct {
	entries []Entry
}

// Load reads every entry from a Polyglot .bin file at path.
func Load(path string) (*Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var entries []Entry
	for {
		var raw [16]byte
		_, err := io.ReadFull(r, raw[:])
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{
			Key:    binary.BigEndian.Uint64(raw[0:8]),
			Move:   binary.BigEndian.Uint16(raw[8:10]),
			Weight: binary.BigEndian.Uint16(raw[10:12]),
			Learn:  binary.BigEndian.Uint32(raw[12:16]),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return &Book{entries: entries}, nil
}

// Probe returns every book entry for key, in file order.
func (b *Book) Probe(key uint64) []Entry {
	lo := sort.Search(len(b.entries), func(i int) bool { return b.entries[i].Key >= key })
	var out []Entry
	for i := lo; i < len(b.entries) && b.entries[i].Key == key; i++ {
		out = append(out, b.entries[i])
	}
	return out
}

// Pick selects a move for p, weighted-random among entries with weight
// >= minWeight when random is true, otherwise the highest-weighted
// entry. It returns the zero Entry and false when the book has nothing
// for this position (or the side has moved past maxPly).
func (b *Book) Pick(p *position.Position, random bool, minWeight uint16, maxPly int) (Entry, bool) {
	if int(p.FullmoveNum)*2 > maxPly {
		return Entry{}, false
	}
	candidates := b.Probe(PolyglotKey(p))
	var eligible []Entry
	for _, e := range candidates {
		if e.Weight >= minWeight {
			eligible = append(eligible, e)
		}
	}
	if len(eligible) == 0 {
		return Entry{}, false
	}
	if !random {
		best := eligible[0]
		for _, e := range eligible[1:] {
			if e.Weight > best.Weight {
				best = e
			}
		}
		return best, true
	}
	var total int
	for _, e := range eligible {
		total += int(e.Weight) + 1
	}
	pick := rand.Intn(total)
	for _, e := range eligible {
		pick -= int(e.Weight) + 1
		if pick < 0 {
			return e, true
		}
	}
	return eligible[len(eligible)-1], true
}

// DecodeMove converts a Polyglot-encoded move into one of p's legal
// moves, since Polyglot's own encoding omits captured-piece and flag
// information that our Move type carries (spec.md §7: "the move must
// validate against the move generator").
func DecodeMove(p *position.Position, raw uint16, legal []position.Move) (position.Move, bool) {
	toFile := int(raw & 0x7)
	toRank := int((raw >> 3) & 0x7)
	fromFile := int((raw >> 6) & 0x7)
	fromRank := int((raw >> 9) & 0x7)
	promo := int((raw >> 12) & 0x7)

	from := position.FromFileRank(fromFile, fromRank)
	to := position.FromFileRank(toFile, toRank)

	for _, m := range legal {
		if m.From() != from {
			continue
		}
		// Polyglot encodes castling as king-takes-rook (e1h1, e1a1, e8h8,
		// e8a8); our generator encodes it as king-to-g/c, so a castle is
		// matched through the rook's corner square and every other move
		// through its literal destination.
		if m.IsCastle() {
			if (to.File() != 0 && to.File() != 7) || m.To() != castleDestForRookSquare(from, to) {
				continue
			}
		} else if m.To() != to {
			continue
		}
		if promo != 0 && !m.IsPromotion() {
			continue
		}
		if promo == 0 && m.IsPromotion() {
			continue
		}
		return m, true
	}
	return position.NilMove, false
}

func castleDestForRookSquare(kingFrom, rookTo position.Square) position.Square {
	if rookTo.File() > kingFrom.File() {
		return position.Square(int(kingFrom) + 2)
	}
	return position.Square(int(kingFrom) - 2)
}
