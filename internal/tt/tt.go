// Package tt implements the concurrent, lock-free transposition table of
// spec.md §4.6: an array of four-slot buckets, each slot a pair of
// atomically accessed 64-bit words (key, packed data), shared read-write
// by every Lazy SMP search thread without locks. Grounded on the
// teacher's Hash.go/transposition.go bucket-less single-slot table,
// generalized to the bucketed, atomic, generationed design the spec
// calls for, in the style of macondo's endgame/negamax transposition
// table (itself credited as adapted from a Go chess engine).
package tt

import (
	"sync/atomic"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"
)

// Flag is the bound type a stored score represents.
type Flag uint8

const (
	FlagNone Flag = iota
	FlagExact
	FlagLower
	FlagUpper
)

const (
	slotsPerBucket = 4
	bucketBytes    = slotsPerBucket * 16 // two uint64 words per slot

	moveBits  = 29
	flagBits  = 2
	scoreBits = 16
	depthBits = 8
	genBits   = 8

	moveShift  = 0
	flagShift  = moveShift + moveBits
	scoreShift = flagShift + flagBits
	depthShift = scoreShift + scoreBits
	genShift   = depthShift + depthBits

	moveMask  = (uint64(1) << moveBits) - 1
	flagMask  = (uint64(1) << flagBits) - 1
	scoreMask = (uint64(1) << scoreBits) - 1
	depthMask = (uint64(1) << depthBits) - 1
	genMask   = (uint64(1) << genBits) - 1

	scoreBias = 1 << 15 // stored score is biased so it fits an unsigned field

	// MateValue and MateBound mirror the search package's mate-scoring
	// convention: scores within MateBound of +/-MateValue represent a
	// forced mate and must be ply-adjusted across the probe/store
	// boundary (spec.md §4.6's "score packing for mates").
	MateValue = 32000
	MateBound = 1000
)

type slot struct {
	key  atomic.Uint64
	data atomic.Uint64
}

// Entry is the unpacked view of a stored slot returned by Probe.
type Entry struct {
	Score int32
	Move  uint32
	Depth uint8
	Flag  Flag
}

// Table is a fixed-size array of buckets sized to a megabyte budget,
// safe for concurrent Probe/Store from every search thread (spec.md
// §4.6's concurrency contract: torn reads are always caught by the key
// check, never by a lock).
type Table struct {
	buckets    []bucket
	mask       uint64
	generation atomic.Uint32
}

type bucket [slotsPerBucket]slot

// New allocates a table sized to fit within megabytes MB, rounded down to
// a power of two bucket count.
func New(megabytes int) *Table {
	t := &Table{}
	t.Resize(megabytes)
	return t
}

// Resize reallocates the table for a new megabyte budget; existing
// entries are discarded, matching engines that only resize between games.
func (t *Table) Resize(megabytes int) {
	if megabytes <= 0 {
		megabytes = 1
	}
	budget := uint64(megabytes) * 1_048_576
	nBuckets := budget / bucketBytes
	if nBuckets == 0 {
		nBuckets = 1
	}
	pow := uint64(1)
	for pow*2 <= nBuckets {
		pow *= 2
	}
	sys := memory.TotalMemory()
	log.Debug().Uint64("requested-bytes", budget).Uint64("system-bytes", sys).
		Uint64("buckets", pow).Msg("transposition-table-resize")
	t.buckets = make([]bucket, pow)
	t.mask = pow - 1
	t.generation.Store(0)
}

// NewSearch bumps the generation counter at the start of a new search
// (spec.md §4.6), wrapping past the 8-bit field's range.
func (t *Table) NewSearch() {
	t.generation.Add(1)
}

func (t *Table) index(key uint64) uint64 { return key & t.mask }

func pack(move uint32, flag Flag, score int32, depth uint8, gen uint8) uint64 {
	biased := uint64(score+scoreBias) & scoreMask
	return (uint64(move)&moveMask)<<moveShift |
		(uint64(flag)&flagMask)<<flagShift |
		biased<<scoreShift |
		(uint64(depth)&depthMask)<<depthShift |
		(uint64(gen)&genMask)<<genShift
}

func unpack(data uint64) (move uint32, flag Flag, score int32, depth uint8, gen uint8) {
	move = uint32((data >> moveShift) & moveMask)
	flag = Flag((data >> flagShift) & flagMask)
	score = int32((data>>scoreShift)&scoreMask) - scoreBias
	depth = uint8((data >> depthShift) & depthMask)
	gen = uint8((data >> genShift) & genMask)
	return
}

// Probe looks up key, adjusting a mate score from "distance from this
// node" back to "distance from root" using ply.
func (t *Table) Probe(key uint64, ply int) (Entry, bool) {
	b := &t.buckets[t.index(key)]
	for i := range b {
		if b[i].key.Load() == key {
			data := b[i].data.Load()
			move, flag, score, depth, _ := unpack(data)
			if flag == FlagNone {
				return Entry{}, false
			}
			score = scoreFromTT(score, ply)
			return Entry{Score: score, Move: move, Depth: depth, Flag: flag}, true
		}
	}
	return Entry{}, false
}

// Store writes an entry for key, applying spec.md §4.6's replacement
// rule: an existing slot for the same key is overwritten when the new
// entry is at least as deep, exact, or from a newer generation; a
// best-move-only patch is applied when the new entry is shallower but
// supplies a move the stored entry lacks. Otherwise the least valuable
// slot in the bucket is evicted.
func (t *Table) Store(key uint64, depth int, score int32, flag Flag, move uint32, ply int) {
	gen := uint8(t.generation.Load())
	stored := scoreToTT(score, ply)

	b := &t.buckets[t.index(key)]
	for i := range b {
		if b[i].key.Load() == key {
			data := b[i].data.Load()
			oldMove, oldFlag, oldScore, oldDepth, oldGen := unpack(data)
			if depth >= int(oldDepth) || flag == FlagExact || oldGen != gen {
				if move == 0 {
					move = oldMove
				}
				b[i].data.Store(pack(move, flag, stored, uint8(depth), gen))
			} else if oldMove == 0 && move != 0 {
				b[i].data.Store(pack(move, oldFlag, oldScore, oldDepth, oldGen))
			}
			return
		}
	}

	victim := 0
	victimScore := int32(1 << 30)
	for i := range b {
		if b[i].key.Load() == 0 {
			victim = i
			break
		}
		_, vFlag, _, vDepth, vGen := unpack(b[i].data.Load())
		age := int32(gen) - int32(vGen)
		if age < 0 {
			age += 1 << genBits
		}
		score := int32(vDepth) - 2*age
		if vFlag == FlagExact {
			score += 4
		}
		if score < victimScore {
			victimScore = score
			victim = i
		}
	}
	// Data is written before the key (conceptually release-ordered) so a
	// concurrent probe that matches the key never observes a data word
	// from an older occupant of this slot.
	b[victim].data.Store(pack(move, flag, stored, uint8(depth), gen))
	b[victim].key.Store(key)
}

// scoreToTT converts a root-relative mate score, as the search produces
// it, into a distance from the current node for storage, and scoreFromTT
// converts it back using the probing node's ply, so mates found at
// different plies compare correctly once retrieved (spec.md §4.6).
func scoreToTT(score int32, ply int) int32 {
	if score >= MateValue-MateBound {
		return score + int32(ply)
	}
	if score <= -MateValue+MateBound {
		return score - int32(ply)
	}
	return score
}

func scoreFromTT(score int32, ply int) int32 {
	if score >= MateValue-MateBound {
		return score - int32(ply)
	}
	if score <= -MateValue+MateBound {
		return score + int32(ply)
	}
	return score
}

// Hashfull samples up to the first 1000 buckets and reports the permille
// of slots matching the current generation (spec.md §4.6).
func (t *Table) Hashfull() int {
	sampleBuckets := len(t.buckets)
	if sampleBuckets > 1000 {
		sampleBuckets = 1000
	}
	if sampleBuckets == 0 {
		return 0
	}
	gen := uint8(t.generation.Load())
	filled := 0
	total := sampleBuckets * slotsPerBucket
	for i := 0; i < sampleBuckets; i++ {
		for s := range t.buckets[i] {
			if t.buckets[i][s].key.Load() == 0 {
				continue
			}
			_, _, _, _, vGen := unpack(t.buckets[i][s].data.Load())
			if vGen == gen {
				filled++
			}
		}
	}
	return filled * 1000 / total
}

// Clear zeroes every slot without reallocating, used between games.
func (t *Table) Clear() {
	for i := range t.buckets {
		for s := range t.buckets[i] {
			t.buckets[i][s].key.Store(0)
			t.buckets[i][s].data.Store(0)
		}
	}
	t.generation.Store(0)
}
