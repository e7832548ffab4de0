package engine

import (
	"github.com/sgrimes/gannet/internal/board"
)

// Engine owns a transposition table and a searcher for the lifetime of
// a session. The table survives across searches and is cleared only on
// a new game, so later iterations and later moves reuse earlier work.
type Engine struct {
	tt       *TranspositionTable
	searcher *Searcher

	// OnInfo, when set, receives one report per completed search depth.
	OnInfo func(SearchInfo)
}

// New creates an engine with a hash table of the given size in MiB.
func New(hashSizeMB int) *Engine {
	tt := NewTranspositionTable(hashSizeMB)
	return &Engine{
		tt:       tt,
		searcher: NewSearcher(tt),
	}
}

// Search finds the best move for pos under the given limits. It blocks
// until the search finishes or is stopped, and returns NoMove only when
// pos has no legal moves.
func (e *Engine) Search(pos *board.Position, limits Limits) board.Move {
	e.searcher.OnIteration = e.OnInfo
	return e.searcher.Search(pos, limits.MaxDepth(), limits.Budget(pos.SideToMove))
}

// Stop interrupts a running search. The searcher unwinds cooperatively
// and Search returns the best move of the last completed depth.
func (e *Engine) Stop() {
	e.searcher.Stop()
}

// NewGame resets session state for a fresh game.
func (e *Engine) NewGame() {
	e.tt.Clear()
}

// Nodes returns the node count of the last search.
func (e *Engine) Nodes() uint64 {
	return e.searcher.Nodes()
}

// Evaluate exposes the static evaluation, for debugging commands.
func (e *Engine) Evaluate(pos *board.Position) int {
	return Evaluate(pos)
}

// IsMateScore reports whether score encodes a forced mate for either
// side. Approximate: mate scores carry the node-count offset, so at
// very large node counts they drift away from the MateValue magnitude.
func IsMateScore(score int) bool {
	const margin = MateValue / 2
	return score > margin || score < -margin
}
