package engine

import "github.com/sgrimes/gannet/internal/board"

// Move ordering keys. The hash move outranks everything; captures are
// ranked most-valuable-victim, least-valuable-attacker; promotions sit
// between captures and quiet moves.
const (
	ttMoveScore     = 10000
	captureBase     = 1000
	promotionBase   = 500
	givesCheckBonus = 100
)

// scoreMoves assigns an ordering key to every move in ml. The returned
// slice is index-aligned with ml and consumed by pickMove.
func scoreMoves(pos *board.Position, ml *board.MoveList, ttMove board.Move) []int {
	scores := make([]int, ml.Len())
	for i := 0; i < ml.Len(); i++ {
		scores[i] = scoreMove(pos, ml.Get(i), ttMove)
	}
	return scores
}

func scoreMove(pos *board.Position, m board.Move, ttMove board.Move) int {
	var score int
	switch {
	case m == ttMove && m != board.NoMove:
		score = ttMoveScore
	case m.IsCapture(pos):
		victim := board.Pawn // en passant captures a pawn
		if !m.IsEnPassant() {
			victim = pos.PieceAt(m.To()).Type()
		}
		attacker := pos.PieceAt(m.From()).Type()
		score = victim.Value() - attacker.Value() + captureBase
	case m.IsPromotion():
		score = m.Promotion().Value() + promotionBase
	}

	// Checking moves jump the queue within their class. Costs a
	// make/unmake per candidate, acceptable at chess branching factors.
	if m.GivesCheck(pos) {
		score += givesCheckBonus
	}
	return score
}

// pickMove moves the best-scored remaining move to index i, a single
// selection-sort step. Sorting lazily saves work when an early cutoff
// means most of the list is never visited.
func pickMove(ml *board.MoveList, scores []int, i int) {
	best := i
	for j := i + 1; j < ml.Len(); j++ {
		if scores[j] > scores[best] {
			best = j
		}
	}
	if best != i {
		ml.Swap(i, best)
		scores[i], scores[best] = scores[best], scores[i]
	}
}
