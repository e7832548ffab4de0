package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndLoadRun(t *testing.T) {
	s := openTestStore(t)

	run := RunRecord{
		Suite:     "wac",
		Started:   time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		MoveTime:  100 * time.Millisecond,
		Positions: 300,
		Solved:    251,
		Nodes:     1234567,
		Elapsed:   31 * time.Second,
	}
	require.NoError(t, s.SaveRun(run))

	got, ok, err := s.LastRun("wac")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, run, got)
	assert.InDelta(t, 83.67, got.SolveRate(), 0.01)
}

func TestRunsNewestFirst(t *testing.T) {
	s := openTestStore(t)

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, s.SaveRun(RunRecord{
			Suite:   "wac",
			Started: base.Add(time.Duration(i) * time.Hour),
			Solved:  i,
		}))
	}

	runs, err := s.Runs("wac", 10)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, 2, runs[0].Solved, "newest run first")
	assert.Equal(t, 0, runs[2].Solved)

	limited, err := s.Runs("wac", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestSuitesAreIsolated(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.SaveRun(RunRecord{Suite: "wac", Started: time.Now()}))
	_, ok, err := s.LastRun("other")
	require.NoError(t, err)
	assert.False(t, ok)
}
