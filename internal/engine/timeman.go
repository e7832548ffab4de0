package engine

import (
	"time"

	"github.com/sgrimes/gannet/internal/board"
)

// Limits bounds one search invocation, as parsed from a "go" command.
type Limits struct {
	Depth    int           // maximum depth; 0 means the engine default
	MoveTime time.Duration // fixed budget for this move
	WTime    time.Duration // white's remaining clock
	BTime    time.Duration // black's remaining clock
	Infinite bool          // search until stopped
}

// DefaultDepth applies when a "go" command carries neither a depth nor
// any clock. DefaultMoveTime applies whenever it carries neither a
// movetime nor a clock for the side to move, depth-limited searches
// included.
const (
	DefaultDepth    = 10
	DefaultMoveTime = 5000 * time.Millisecond
)

// clockFraction is the share of the remaining clock spent on one move.
const clockFraction = 20

// MaxDepth resolves the depth bound.
func (l Limits) MaxDepth() int {
	if l.Depth > 0 {
		return l.Depth
	}
	if l.Infinite || l.MoveTime > 0 || l.WTime > 0 || l.BTime > 0 {
		return MaxDepth
	}
	return DefaultDepth
}

// Budget resolves the wall-clock budget for the side to move: movetime
// verbatim, else a fixed fraction of the running clock, else the
// default. An infinite search has no budget and stops only on request.
func (l Limits) Budget(stm board.Color) time.Duration {
	if l.Infinite {
		return 0
	}
	if l.MoveTime > 0 {
		return l.MoveTime
	}
	clock := l.WTime
	if stm == board.Black {
		clock = l.BTime
	}
	if clock > 0 {
		return clock / clockFraction
	}
	return DefaultMoveTime
}
