// Package engine implements the search, evaluation and transposition
// core of the Gannet chess engine.
package engine

import (
	"github.com/sgrimes/gannet/internal/board"
	"github.com/sgrimes/gannet/internal/util"
)

// Score sentinels, in centipawns.
const (
	Infinity  = 32000 // exceeds any reachable score
	MateValue = 30000 // checkmate magnitude, offset by discovery order
	DrawValue = 0
)

// Positions with at most this many non-pawn, non-king pieces use the
// endgame pawn and king tables.
const endgamePieceLimit = 6

const (
	pawnCountWeight = 10
	mobilityWeight  = 5
	checkPenalty    = 20
	kingChaseWeight = 10
)

// Evaluate statically scores a position from the side to move's
// perspective: positive means the side to move stands better.
//
// The running score is accumulated from White's point of view and
// negated at the end for Black. The opponent-mobility term counts moves
// from the single legal move list of the side to move, bucketed by the
// color owning the source square, so in practice it contributes zero
// for the side not to move.
func Evaluate(pos *board.Position) int {
	var ml board.MoveList
	pos.GenerateLegalMoves(&ml)

	// Terminal positions score absolutely: being mated is the worst
	// outcome, every draw is level.
	if ml.Len() == 0 {
		if pos.InCheck() {
			return -MateValue
		}
		return DrawValue
	}
	if pos.IsFiftyMoveDraw() || pos.IsRepetition() || pos.IsInsufficientMaterial() {
		return DrawValue
	}

	endgame := pos.NonPawnPieceCount() <= endgamePieceLimit

	score := 0
	for c := board.White; c <= board.Black; c++ {
		sign := 1
		if c == board.Black {
			sign = -1
		}
		for pt := board.Pawn; pt <= board.King; pt++ {
			for bb := pos.Pieces[c][pt]; bb != 0; {
				sq := bb.PopLSB()
				score += sign * (pt.Value() + pieceSquareBonus(pt, c, sq, endgame))
			}
		}
	}

	score += pawnCountWeight * (pos.Pieces[board.White][board.Pawn].PopCount() -
		pos.Pieces[board.Black][board.Pawn].PopCount())

	var mobility [2]int
	for i := 0; i < ml.Len(); i++ {
		from := ml.Get(i).From()
		if owner := pos.PieceAt(from).Color(); owner != board.NoColor {
			mobility[owner]++
		}
	}
	score += mobilityWeight * (mobility[board.White] - mobility[board.Black])

	if endgame {
		score += kingChaseWeight * kingChaseBonus(pos)
	}

	if pos.InCheck() {
		score -= checkPenalty
	}

	if pos.SideToMove == board.Black {
		score = -score
	}
	return score
}

// kingChaseBonus rewards driving the opposing king to the board's edge
// and walking the own king toward it, which is how the bare-material
// endings this engine reaches are actually won.
func kingChaseBonus(pos *board.Position) int {
	us := pos.SideToMove
	ourKing := pos.KingSquare[us]
	oppKing := pos.KingSquare[us.Other()]

	f, r := oppKing.File(), oppKing.Rank()
	distFromCenter := util.Max(3-f, f-4) + util.Max(3-r, r-4)

	manhattan := util.Abs(ourKing.File()-oppKing.File()) + util.Abs(ourKing.Rank()-oppKing.Rank())

	return distFromCenter + (14 - manhattan)
}
