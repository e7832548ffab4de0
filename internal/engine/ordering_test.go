package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgrimes/gannet/internal/board"
)

func TestTTMoveOrderedFirst(t *testing.T) {
	pos := board.NewPosition()
	var ml board.MoveList
	pos.GenerateLegalMoves(&ml)

	ttMove := board.NewMove(board.D2, board.D4)
	require.True(t, ml.Contains(ttMove))

	scores := scoreMoves(pos, &ml, ttMove)
	pickMove(&ml, scores, 0)
	assert.Equal(t, ttMove, ml.Get(0))
	assert.GreaterOrEqual(t, scores[0], ttMoveScore)
}

func TestCapturesRankedByVictimMinusAttacker(t *testing.T) {
	// White pawn and queen can both capture the d5 queen; the pawn
	// capture must rank higher (biggest victim, cheapest attacker).
	pos := position(t, "4k3/8/8/3q4/4P3/8/3Q4/4K3 w - - 0 1")

	pawnTakes := scoreMove(pos, board.NewMove(board.E4, board.D5), board.NoMove)
	queenTakes := scoreMove(pos, board.NewMove(board.D2, board.D5), board.NoMove)
	assert.Greater(t, pawnTakes, queenTakes)
	assert.Greater(t, queenTakes, 0, "even equal trades outrank quiet moves")
}

func TestCapturingPromotionOutranksQuietPromotion(t *testing.T) {
	pos := position(t, "4k2q/6P1/8/8/8/8/8/4K3 w - - 0 1")

	quietPromo := scoreMove(pos, board.NewPromotion(board.G7, board.G8, board.Queen), board.NoMove)
	capturePromo := scoreMove(pos, board.NewPromotion(board.G7, board.H8, board.Queen), board.NoMove)
	assert.Greater(t, capturePromo, quietPromo, "capturing promotion is a capture first")
	assert.GreaterOrEqual(t, quietPromo, board.PieceValue[board.Queen]+promotionBase)
}

func TestGivesCheckBonus(t *testing.T) {
	// Rook to the eighth rank gives check, rook to the seventh does not.
	pos := position(t, "4k3/8/8/8/8/8/8/R3K3 w Q - 0 1")

	check := scoreMove(pos, board.NewMove(board.A1, board.A8), board.NoMove)
	quiet := scoreMove(pos, board.NewMove(board.A1, board.A7), board.NoMove)
	assert.Equal(t, givesCheckBonus, check-quiet)
}

func TestPickMoveSelectsDescending(t *testing.T) {
	pos := position(t, "4k3/8/8/3q4/4P3/8/3Q4/4K3 w - - 0 1")
	var ml board.MoveList
	pos.GenerateLegalMoves(&ml)
	scores := scoreMoves(pos, &ml, board.NoMove)

	for i := 0; i < ml.Len(); i++ {
		pickMove(&ml, scores, i)
		if i > 0 {
			assert.GreaterOrEqual(t, scores[i-1], scores[i])
		}
	}
}
