package board

import "fmt"

// Move packs a chess move into 16 bits:
//
//	bits 0-5   from square
//	bits 6-11  to square
//	bits 12-13 promotion piece (0=knight .. 3=queen)
//	bits 14-15 kind (normal, promotion, en passant, castling)
type Move uint16

const (
	kindNormal    Move = 0 << 14
	kindPromotion Move = 1 << 14
	kindEnPassant Move = 2 << 14
	kindCastling  Move = 3 << 14
)

// NoMove is the null move sentinel. Its UCI form is "0000".
const NoMove Move = 0

// NewMove builds a plain move.
func NewMove(from, to Square) Move {
	return Move(from) | Move(to)<<6
}

// NewPromotion builds a promotion move. promo must be Knight..Queen.
func NewPromotion(from, to Square, promo PieceType) Move {
	return Move(from) | Move(to)<<6 | Move(promo-Knight)<<12 | kindPromotion
}

// NewEnPassant builds an en passant capture.
func NewEnPassant(from, to Square) Move {
	return Move(from) | Move(to)<<6 | kindEnPassant
}

// NewCastling builds a castling move, given the king's from/to squares.
func NewCastling(from, to Square) Move {
	return Move(from) | Move(to)<<6 | kindCastling
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & 0x3F)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square(m >> 6 & 0x3F)
}

// Promotion returns the promotion piece type. Only meaningful when
// IsPromotion reports true.
func (m Move) Promotion() PieceType {
	return PieceType(m>>12&3) + Knight
}

func (m Move) IsPromotion() bool { return m&kindCastling == kindPromotion }
func (m Move) IsEnPassant() bool { return m&kindCastling == kindEnPassant }
func (m Move) IsCastling() bool  { return m&kindCastling == kindCastling }

// IsCapture reports whether m captures a piece in pos.
func (m Move) IsCapture(pos *Position) bool {
	return m.IsEnPassant() || !pos.IsEmpty(m.To())
}

// GivesCheck reports whether playing m leaves the opponent in check.
// It applies and reverts the move, so it is not free.
func (m Move) GivesCheck(pos *Position) bool {
	undo := pos.MakeMove(m)
	check := pos.InCheck()
	pos.UnmakeMove(m, undo)
	return check
}

// String returns the move in UCI coordinate notation, e.g. "e2e4" or
// "e7e8q".
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += string("nbrq"[m.Promotion()-Knight])
	}
	return s
}

// ParseMove parses UCI coordinate notation against a position, so the
// special move kinds can be recognized. The returned move is not
// guaranteed to be legal.
func ParseMove(s string, pos *Position) (Move, error) {
	if len(s) < 4 || len(s) > 5 {
		return NoMove, fmt.Errorf("invalid move %q", s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}
	if len(s) == 5 {
		var promo PieceType
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NoMove, fmt.Errorf("invalid promotion piece %q", s[4])
		}
		return NewPromotion(from, to, promo), nil
	}

	piece := pos.PieceAt(from)
	if piece == NoPiece {
		return NoMove, fmt.Errorf("no piece on %v", from)
	}
	switch {
	case piece.Type() == King && abs(int(to)-int(from)) == 2:
		return NewCastling(from, to), nil
	case piece.Type() == Pawn && to == pos.EnPassant && to != NoSquare:
		return NewEnPassant(from, to), nil
	}
	return NewMove(from, to), nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// MoveList is a fixed-capacity move buffer, sized for the longest known
// legal move lists.
type MoveList struct {
	moves [256]Move
	count int
}

func (ml *MoveList) Add(m Move)      { ml.moves[ml.count] = m; ml.count++ }
func (ml *MoveList) Len() int        { return ml.count }
func (ml *MoveList) Get(i int) Move  { return ml.moves[i] }
func (ml *MoveList) Clear()          { ml.count = 0 }
func (ml *MoveList) Swap(i, j int)   { ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i] }
func (ml *MoveList) Slice() []Move   { return ml.moves[:ml.count] }

// Remove drops the move at index i, preserving order of the rest.
func (ml *MoveList) Remove(i int) {
	copy(ml.moves[i:], ml.moves[i+1:ml.count])
	ml.count--
}

// Contains reports whether m is in the list.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}
