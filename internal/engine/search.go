package engine

import (
	"sync/atomic"
	"time"

	"github.com/op/go-logging"

	"github.com/sgrimes/gannet/internal/board"
)

var log = logging.MustGetLogger("gannet.search")

// MaxDepth bounds iterative deepening when no depth limit is given.
const MaxDepth = 64

// Quiescence gives up and trusts the static evaluation beyond this
// many capture plies.
const maxQuiescenceDepth = 10

// timePollMask throttles wall-clock checks to every 1024 nodes.
const timePollMask = 1023

// SearchInfo reports one completed iteration of the deepening loop.
type SearchInfo struct {
	Depth    int
	Score    int
	Nodes    uint64
	Elapsed  time.Duration
	BestMove board.Move
}

// Searcher carries all mutable search state: the position being
// searched, the transposition table, the node counter, the clock and
// the stop flag. A Searcher is single-threaded; only the stop flag may
// be touched from outside while a search runs.
type Searcher struct {
	pos   *board.Position
	tt    *TranspositionTable
	nodes uint64

	start time.Time
	limit time.Duration
	stop  atomic.Bool

	// OnIteration, when set, receives a report after every completed
	// depth of the deepening loop.
	OnIteration func(SearchInfo)
}

// NewSearcher creates a searcher backed by the given table.
func NewSearcher(tt *TranspositionTable) *Searcher {
	return &Searcher{tt: tt}
}

// Stop requests cooperative termination. Safe to call from another
// goroutine while Search runs.
func (s *Searcher) Stop() {
	s.stop.Store(true)
}

// Stopped reports whether the last search was cut short.
func (s *Searcher) Stopped() bool {
	return s.stop.Load()
}

// Nodes returns the node count of the last search.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// Search runs iterative deepening on pos up to maxDepth plies within
// the wall-clock limit, and returns the best move found. It returns
// NoMove only when pos has no legal moves.
func (s *Searcher) Search(pos *board.Position, maxDepth int, limit time.Duration) board.Move {
	s.pos = pos
	s.nodes = 0
	s.stop.Store(false)
	s.start = time.Now()
	s.limit = limit
	if maxDepth <= 0 || maxDepth > MaxDepth {
		maxDepth = MaxDepth
	}

	var legal board.MoveList
	pos.GenerateLegalMoves(&legal)

	best := board.NoMove
	for depth := 1; depth <= maxDepth && !s.stop.Load(); depth++ {
		score := s.negamax(depth, -Infinity, Infinity, true)
		if s.stop.Load() {
			// The interrupted iteration is unreliable; keep the best
			// move of the last completed one.
			break
		}
		if e, ok := s.tt.Probe(pos.Hash); ok && e.BestMove != board.NoMove {
			best = e.BestMove
		}
		elapsed := time.Since(s.start)
		log.Debugf("depth %d score %d nodes %d elapsed %v best %v",
			depth, score, s.nodes, elapsed, best)
		if s.OnIteration != nil {
			s.OnIteration(SearchInfo{
				Depth:    depth,
				Score:    score,
				Nodes:    s.nodes,
				Elapsed:  elapsed,
				BestMove: best,
			})
		}
	}

	// The adopted move comes from the table, which may have been
	// overwritten by a colliding position. Fall back to the first
	// legal move rather than ever answering with an illegal one.
	if best == board.NoMove || !legal.Contains(best) {
		if legal.Len() == 0 {
			return board.NoMove
		}
		best = legal.Get(0)
	}
	return best
}

// pollTime flips the stop flag once the budget is exhausted. Called
// after every node increment; it reads the clock only on every 1024th.
func (s *Searcher) pollTime() {
	if s.nodes&timePollMask == 0 && s.limit > 0 && time.Since(s.start) > s.limit {
		s.stop.Store(true)
	}
}

// negamax is a fail-hard alpha-beta search with principal variation
// search, null-move pruning and transposition table reuse. Cutoffs
// return beta, and alpha doubles as the safe answer after a stop
// request. Exact table hits, draws and mates return their score
// unclamped, so those can lie outside [alpha, beta].
func (s *Searcher) negamax(depth, alpha, beta int, nullAllowed bool) int {
	if s.stop.Load() {
		return alpha
	}
	if depth <= 0 {
		return s.quiescence(alpha, beta, 0)
	}

	s.nodes++
	s.pollTime()

	key := s.pos.Hash
	ttMove := board.NoMove
	if e, ok := s.tt.Probe(key); ok {
		ttMove = e.BestMove
		if int(e.Depth) >= depth {
			switch score := int(e.Score); e.Flag {
			case BoundExact:
				return score
			case BoundUpper:
				if score <= alpha {
					return alpha
				}
			case BoundLower:
				if score >= beta {
					return beta
				}
			}
		}
	}

	if s.pos.IsFiftyMoveDraw() || s.pos.IsRepetition() {
		return DrawValue
	}
	if s.pos.IsInsufficientMaterial() {
		return DrawValue
	}

	inCheck := s.pos.InCheck()

	// Null-move pruning: hand the opponent a free move; if the reduced
	// search still fails high, a real move would too. Skipped in check
	// and without non-pawn material, where zugzwang makes the bet
	// unsound.
	if nullAllowed && depth >= 3 && !inCheck && s.pos.HasNonPawnMaterial() {
		undo := s.pos.MakeNullMove()
		nullScore := -s.negamax(depth-3, -beta, -beta+1, false)
		s.pos.UnmakeNullMove(undo)
		if s.stop.Load() {
			return alpha
		}
		if nullScore >= beta {
			return beta
		}
	}

	var ml board.MoveList
	s.pos.GenerateLegalMoves(&ml)
	if ml.Len() == 0 {
		if inCheck {
			// The node counter stands in for distance to mate: mates
			// found earlier in the search score higher, so the engine
			// steers toward the shortest one it knows.
			return -MateValue + int(s.nodes)
		}
		return DrawValue
	}

	scores := scoreMoves(s.pos, &ml, ttMove)

	bestScore := -Infinity
	bestMove := board.NoMove
	flag := BoundUpper

	for i := 0; i < ml.Len(); i++ {
		pickMove(&ml, scores, i)
		m := ml.Get(i)

		undo := s.pos.MakeMove(m)
		var score int
		if i == 0 {
			score = -s.negamax(depth-1, -beta, -alpha, true)
		} else {
			// Principal variation search: probe with a null window and
			// pay for the full-window re-search only on a fail inside
			// (alpha, beta).
			score = -s.negamax(depth-1, -alpha-1, -alpha, true)
			if score > alpha && score < beta {
				score = -s.negamax(depth-1, -beta, -alpha, true)
			}
		}
		s.pos.UnmakeMove(m, undo)

		if s.stop.Load() {
			return alpha
		}

		if score > bestScore {
			bestScore = score
			bestMove = m
		}
		if score >= beta {
			s.tt.Store(key, bestMove, depth, beta, BoundLower)
			return beta
		}
		if score > alpha {
			alpha = score
			flag = BoundExact
		}
	}

	s.tt.Store(key, bestMove, depth, bestScore, flag)
	return bestScore
}

// quiescence resolves the tactical horizon by searching captures only,
// standing pat on the static evaluation.
func (s *Searcher) quiescence(alpha, beta, qdepth int) int {
	if qdepth > maxQuiescenceDepth {
		return Evaluate(s.pos)
	}

	s.nodes++
	s.pollTime()
	if s.stop.Load() {
		return alpha
	}

	standPat := Evaluate(s.pos)
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	var ml board.MoveList
	s.pos.GenerateCaptures(&ml)
	scores := scoreMoves(s.pos, &ml, board.NoMove)

	for i := 0; i < ml.Len(); i++ {
		pickMove(&ml, scores, i)
		m := ml.Get(i)

		undo := s.pos.MakeMove(m)
		score := -s.quiescence(-beta, -alpha, qdepth+1)
		s.pos.UnmakeMove(m, undo)

		if s.stop.Load() {
			return alpha
		}
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}

	return alpha
}
