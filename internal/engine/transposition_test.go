package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgrimes/gannet/internal/board"
)

func TestTableSizeIsPowerOfTwo(t *testing.T) {
	for _, mb := range []int{1, 2, 16, 33, 100} {
		tt := NewTranspositionTable(mb)
		n := tt.Size()
		assert.Zero(t, n&(n-1), "%d MiB table has %d slots", mb, n)
		assert.LessOrEqual(t, n*ttEntrySize, uint64(mb)<<20)
	}
}

func TestProbeMissOnEmptyTable(t *testing.T) {
	tt := NewTranspositionTable(1)
	_, ok := tt.Probe(0xDEADBEEF)
	assert.False(t, ok)
}

func TestStoreAndProbeRoundTrip(t *testing.T) {
	tt := NewTranspositionTable(1)
	m := board.NewMove(board.E2, board.E4)

	tt.Store(0xABCD1234, m, 5, 42, BoundExact)

	e, ok := tt.Probe(0xABCD1234)
	require.True(t, ok)
	assert.Equal(t, m, e.BestMove)
	assert.Equal(t, int8(5), e.Depth)
	assert.Equal(t, int32(42), e.Score)
	assert.Equal(t, BoundExact, e.Flag)
}

func TestCollisionIsAMiss(t *testing.T) {
	tt := NewTranspositionTable(1)
	key := uint64(0x1111)
	other := key ^ (tt.Size() << 1) // differs above the mask: same slot, different key

	tt.Store(key, board.NoMove, 3, 10, BoundExact)
	_, ok := tt.Probe(other)
	assert.False(t, ok, "a slot holding another key must read as a miss")
}

func TestReplacementPolicy(t *testing.T) {
	tt := NewTranspositionTable(1)
	key := uint64(0x2222)
	shallow := board.NewMove(board.E2, board.E4)
	deep := board.NewMove(board.D2, board.D4)

	// Deeper entries survive shallower store attempts for other keys.
	tt.Store(key, deep, 8, 1, BoundExact)
	colliding := key ^ (tt.Size() << 3)
	tt.Store(colliding, shallow, 2, 2, BoundExact)
	e, ok := tt.Probe(key)
	require.True(t, ok, "shallow colliding store must not evict the deep entry")
	assert.Equal(t, deep, e.BestMove)

	// Equal depth replaces: the policy is depth-preferred with <=.
	tt.Store(colliding, shallow, 8, 2, BoundExact)
	_, ok = tt.Probe(key)
	assert.False(t, ok)

	// The same key always replaces, even at lower depth.
	tt.Store(colliding, shallow, 1, 3, BoundLower)
	e, ok = tt.Probe(colliding)
	require.True(t, ok)
	assert.Equal(t, int8(1), e.Depth)
	assert.Equal(t, BoundLower, e.Flag)
}

func TestClearEmptiesTable(t *testing.T) {
	tt := NewTranspositionTable(1)
	tt.Store(0x3333, board.NoMove, 4, 7, BoundUpper)
	tt.Clear()
	_, ok := tt.Probe(0x3333)
	assert.False(t, ok)
	assert.Equal(t, 0, tt.HashFull())
}

func TestMaskStableAcrossStores(t *testing.T) {
	tt := NewTranspositionTable(1)
	size := tt.Size()
	for key := uint64(1); key < 1000; key++ {
		tt.Store(key, board.NoMove, 1, 0, BoundExact)
	}
	assert.Equal(t, size, tt.Size(), "the table never grows")
}
