// Package storage persists bench run history in a BadgerDB database,
// so consecutive runs of the same suite can be compared.
package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// RunRecord summarizes one bench run over a suite.
type RunRecord struct {
	Suite     string        `json:"suite"`
	Started   time.Time     `json:"started"`
	MoveTime  time.Duration `json:"move_time"`
	Depth     int           `json:"depth"`
	Positions int           `json:"positions"`
	Solved    int           `json:"solved"`
	Nodes     uint64        `json:"nodes"`
	Elapsed   time.Duration `json:"elapsed"`
}

// SolveRate returns the solved fraction as a percentage.
func (r RunRecord) SolveRate() float64 {
	if r.Positions == 0 {
		return 0
	}
	return float64(r.Solved) / float64(r.Positions) * 100
}

// Store wraps the database handle.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the history database in dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// runKey orders runs of a suite chronologically under a common prefix.
func runKey(suite string, started time.Time) []byte {
	// Fixed-width fraction: RFC3339Nano trims trailing zeros, which
	// breaks lexical order within a second.
	return []byte(fmt.Sprintf("run/%s/%s", suite, started.UTC().Format("2006-01-02T15:04:05.000000000Z07:00")))
}

func runPrefix(suite string) []byte {
	return []byte("run/" + suite + "/")
}

// SaveRun appends a run to the suite's history.
func (s *Store) SaveRun(r RunRecord) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(runKey(r.Suite, r.Started), data)
	})
}

// Runs returns up to limit most recent runs of suite, newest first.
func (s *Store) Runs(suite string, limit int) ([]RunRecord, error) {
	var runs []RunRecord
	err := s.db.View(func(txn *badger.Txn) error {
		prefix := runPrefix(suite)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		// In reverse iteration the seek key must sort after every key
		// of the prefix.
		seek := append(append([]byte{}, prefix...), 0xFF)
		for it.Seek(seek); it.ValidForPrefix(prefix) && len(runs) < limit; it.Next() {
			var r RunRecord
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &r)
			}); err != nil {
				return err
			}
			runs = append(runs, r)
		}
		return nil
	})
	return runs, err
}

// LastRun returns the most recent run of suite, if any.
func (s *Store) LastRun(suite string) (RunRecord, bool, error) {
	runs, err := s.Runs(suite, 1)
	if err != nil || len(runs) == 0 {
		return RunRecord{}, false, err
	}
	return runs[0], true, nil
}
