package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sgrimes/gannet/internal/board"
	"github.com/sgrimes/gannet/internal/util"
)

func TestEvaluateStartPositionNearBalance(t *testing.T) {
	score := Evaluate(board.NewPosition())
	assert.LessOrEqual(t, util.Abs(score), 200, "start position is near equal")
}

func TestEvaluatePerspectiveFlips(t *testing.T) {
	// Same pawn structure, opposite side to move. White is a clean pawn
	// up, so White to move sees a positive score and Black a negative
	// one.
	up := "4k3/ppp5/8/8/8/8/PPPP4/4K3"
	white := Evaluate(position(t, up+" w - - 0 1"))
	black := Evaluate(position(t, up+" b - - 0 1"))
	assert.Positive(t, white)
	assert.Negative(t, black)
}

func TestEvaluateCheckmate(t *testing.T) {
	pos := position(t, "R5k1/5ppp/8/8/8/8/5PPP/6K1 b - - 0 1")
	assert.Equal(t, -MateValue, Evaluate(pos), "the side to move is mated")
}

func TestEvaluateStalemateIsDraw(t *testing.T) {
	pos := position(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	assert.Equal(t, DrawValue, Evaluate(pos))
}

func TestEvaluateFiftyMoveDraw(t *testing.T) {
	pos := position(t, "8/8/8/4k3/8/4K3/4R3/8 w - - 100 80")
	assert.Equal(t, DrawValue, Evaluate(pos))
}

func TestEvaluateMaterialDominates(t *testing.T) {
	// An extra queen should outweigh every positional term.
	pos := position(t, "4k3/8/8/8/8/8/8/Q3K3 w - - 0 1")
	assert.Greater(t, Evaluate(pos), 500)
}

func TestEvaluateEndgameKingActivity(t *testing.T) {
	// Identical material; in one position the defending king is driven
	// into the corner with our king adjacent, in the other it sits in
	// the center far away. The chase term must prefer the first.
	cornered := position(t, "k7/2K5/8/8/8/8/8/7R w - - 0 1")
	distant := position(t, "8/8/8/4k3/8/8/8/K6R w - - 0 1")
	assert.Greater(t, Evaluate(cornered), Evaluate(distant))
}

func TestEvaluateCheckTerm(t *testing.T) {
	// Identical material and placement except the rook giving check.
	// The check term is taken off the White-perspective running score
	// before the negation for Black, so a Black side in check scores
	// higher from its own point of view.
	inCheck := position(t, "4k3/8/8/8/8/8/8/4RK2 b - - 0 1")
	noCheck := position(t, "4k3/8/8/8/8/8/8/3R1K2 b - - 0 1")
	assert.Greater(t, Evaluate(inCheck), Evaluate(noCheck))
}

func TestPieceSquareBonusMirrors(t *testing.T) {
	// A white knight on f3 and a black knight on f6 read mirror-image
	// cells (the black index flips the file as well as the rank), which
	// hold the same value in the left-right symmetric knight table.
	w := pieceSquareBonus(board.Knight, board.White, board.F3, false)
	b := pieceSquareBonus(board.Knight, board.Black, board.F6, false)
	assert.Equal(t, 10, w, "f3 is a developed knight square")
	assert.Equal(t, w, b)

	// Central pawns gain as they advance: d4 is worth 20, d5 25.
	assert.Equal(t, 20, pieceSquareBonus(board.Pawn, board.White, board.D4, false))
	assert.Equal(t, 25, pieceSquareBonus(board.Pawn, board.White, board.D5, false))
}

func TestPieceSquareEndgameSwitch(t *testing.T) {
	// The king's midgame shelter bonus turns into a centralization
	// penalty once the endgame tables are in force.
	g1Mid := pieceSquareBonus(board.King, board.White, board.G1, false)
	g1End := pieceSquareBonus(board.King, board.White, board.G1, true)
	assert.Greater(t, g1Mid, g1End)

	e5End := pieceSquareBonus(board.King, board.White, board.E5, true)
	assert.Greater(t, e5End, g1End, "centralized king wins the endgame table")
}
