package engine

import "github.com/sgrimes/gannet/internal/board"

// Bound classifies a transposition table score.
type Bound uint8

const (
	BoundExact Bound = iota // score is the exact value at Depth
	BoundLower              // true value >= Score (beta cutoff)
	BoundUpper              // true value <= Score (no move raised alpha)
)

// TTEntry is one transposition table slot. A zero key marks an unused
// slot. Score is 32-bit because mate scores carry the node-count offset
// and can leave the int16 range.
type TTEntry struct {
	Key      uint64
	Score    int32
	BestMove board.Move
	Depth    int8
	Flag     Bound
}

const ttEntrySize = 16 // bytes, including padding

// DefaultHashSizeMB is the transposition table budget used when the
// caller does not pick one.
const DefaultHashSizeMB = 16

// TranspositionTable is a fixed-capacity, single-slot hash table keyed
// by position hash. It is sized once per session: the index mask must
// stay stable so entries written at one depth remain addressable later.
type TranspositionTable struct {
	entries []TTEntry
	mask    uint64
}

// NewTranspositionTable allocates a table of at most sizeMB megabytes,
// rounded down to a power-of-two entry count.
func NewTranspositionTable(sizeMB int) *TranspositionTable {
	if sizeMB <= 0 {
		sizeMB = DefaultHashSizeMB
	}
	n := roundDownPowerOfTwo(uint64(sizeMB) << 20 / ttEntrySize)
	return &TranspositionTable{
		entries: make([]TTEntry, n),
		mask:    n - 1,
	}
}

func roundDownPowerOfTwo(n uint64) uint64 {
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

// Probe returns the entry stored for key, if any. Collisions are not
// chained: a slot holding a different key is a miss.
func (tt *TranspositionTable) Probe(key uint64) (TTEntry, bool) {
	e := tt.entries[key&tt.mask]
	if e.Key == key {
		return e, true
	}
	return TTEntry{}, false
}

// Store writes an entry for key. The slot is overwritten when it is
// empty, when it holds the same key, or when its depth does not exceed
// the new one (depth-preferred, always-replace on key match).
func (tt *TranspositionTable) Store(key uint64, bestMove board.Move, depth, score int, flag Bound) {
	e := &tt.entries[key&tt.mask]
	if e.Key != 0 && int(e.Depth) > depth && e.Key != key {
		return
	}
	*e = TTEntry{
		Key:      key,
		Score:    int32(score),
		BestMove: bestMove,
		Depth:    int8(depth),
		Flag:     flag,
	}
}

// Clear zeroes every slot. Called on "ucinewgame".
func (tt *TranspositionTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = TTEntry{}
	}
}

// Size returns the number of slots.
func (tt *TranspositionTable) Size() uint64 {
	return uint64(len(tt.entries))
}

// HashFull samples the table and returns the used fraction in permille.
func (tt *TranspositionTable) HashFull() int {
	sample := 1000
	if len(tt.entries) < sample {
		sample = len(tt.entries)
	}
	used := 0
	for i := 0; i < sample; i++ {
		if tt.entries[i].Key != 0 {
			used++
		}
	}
	if sample == 0 {
		return 0
	}
	return used * 1000 / sample
}
