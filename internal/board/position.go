package board

import (
	"fmt"
	"math/bits"
)

// CastlingRights is a bitmask of the four castling options.
type CastlingRights uint8

const (
	WhiteKingSide CastlingRights = 1 << iota
	WhiteQueenSide
	BlackKingSide
	BlackQueenSide
	NoCastling  CastlingRights = 0
	AllCastling                = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide
)

func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	for i, c := range []byte("KQkq") {
		if cr&(1<<i) != 0 {
			s += string(c)
		}
	}
	return s
}

// castleMask clears rights when a move touches a rook or king home
// square: rights &= castleMask[from] & castleMask[to].
var castleMask = func() [64]CastlingRights {
	var m [64]CastlingRights
	for sq := range m {
		m[sq] = AllCastling
	}
	m[A1] &^= WhiteQueenSide
	m[H1] &^= WhiteKingSide
	m[E1] &^= WhiteKingSide | WhiteQueenSide
	m[A8] &^= BlackQueenSide
	m[H8] &^= BlackKingSide
	m[E8] &^= BlackKingSide | BlackQueenSide
	return m
}()

// Status classifies a position's game state.
type Status uint8

const (
	InProgress Status = iota
	Checkmate
	Stalemate
	FiftyMoveDraw
	Repetition
	InsufficientMaterial
)

// IsDraw reports whether the status is one of the drawn terminals.
func (s Status) IsDraw() bool {
	return s == Stalemate || s == FiftyMoveDraw || s == Repetition || s == InsufficientMaterial
}

// Position is the full mutable game state. The searcher mutates it in
// place through MakeMove/UnmakeMove, which must always pair up.
type Position struct {
	// Pieces holds one bitboard per color and piece type.
	Pieces [2][6]Bitboard

	// Occupancy, kept in sync with Pieces.
	Occupied    [2]Bitboard
	AllOccupied Bitboard

	SideToMove     Color
	CastlingRights CastlingRights
	EnPassant      Square // capture target square, NoSquare if none
	HalfMoveClock  int
	FullMoveNumber int

	// Hash is the incrementally maintained Zobrist key.
	Hash uint64

	// KingSquare caches each king's location for check detection.
	KingSquare [2]Square

	// history records the hashes of earlier positions on the current
	// make/unmake path, newest last. Drives repetition detection.
	history []uint64
}

// NewPosition returns the standard starting position.
func NewPosition() *Position {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		panic(err) // the start FEN is a constant
	}
	return pos
}

// Copy returns an independent copy of the position.
func (p *Position) Copy() *Position {
	c := *p
	c.history = append([]uint64(nil), p.history...)
	return &c
}

// PieceAt returns the piece occupying sq, or NoPiece.
func (p *Position) PieceAt(sq Square) Piece {
	bb := SquareBB(sq)
	if p.AllOccupied&bb == 0 {
		return NoPiece
	}
	c := Black
	if p.Occupied[White]&bb != 0 {
		c = White
	}
	for pt := Pawn; pt <= King; pt++ {
		if p.Pieces[c][pt]&bb != 0 {
			return NewPiece(pt, c)
		}
	}
	return NoPiece
}

// IsEmpty reports whether sq holds no piece.
func (p *Position) IsEmpty(sq Square) bool {
	return p.AllOccupied&SquareBB(sq) == 0
}

// InCheck reports whether the side to move is in check.
func (p *Position) InCheck() bool {
	return p.IsSquareAttacked(p.KingSquare[p.SideToMove], p.SideToMove.Other())
}

// HasNonPawnMaterial reports whether the side to move owns at least one
// piece besides pawns and the king. Null-move pruning requires this to
// avoid zugzwang blindness in pawn endings.
func (p *Position) HasNonPawnMaterial() bool {
	us := p.SideToMove
	return p.Pieces[us][Knight]|p.Pieces[us][Bishop]|p.Pieces[us][Rook]|p.Pieces[us][Queen] != 0
}

// putPiece adds a piece and updates hash, occupancy and king cache.
func (p *Position) putPiece(pc Piece, sq Square) {
	c, pt := pc.Color(), pc.Type()
	bb := SquareBB(sq)
	p.Pieces[c][pt] |= bb
	p.Occupied[c] |= bb
	p.AllOccupied |= bb
	p.Hash ^= zobristPiece[c][pt][sq]
	if pt == King {
		p.KingSquare[c] = sq
	}
}

// dropPiece removes a known piece and updates hash and occupancy.
func (p *Position) dropPiece(pc Piece, sq Square) {
	c, pt := pc.Color(), pc.Type()
	bb := SquareBB(sq)
	p.Pieces[c][pt] &^= bb
	p.Occupied[c] &^= bb
	p.AllOccupied &^= bb
	p.Hash ^= zobristPiece[c][pt][sq]
}

// UndoInfo carries the irreversible state a move destroys.
type UndoInfo struct {
	Captured       Piece
	CastlingRights CastlingRights
	EnPassant      Square
	HalfMoveClock  int
	Hash           uint64
}

// MakeMove applies m and returns the information UnmakeMove needs.
// m must be pseudo-legal for the position.
func (p *Position) MakeMove(m Move) UndoInfo {
	undo := UndoInfo{
		Captured:       NoPiece,
		CastlingRights: p.CastlingRights,
		EnPassant:      p.EnPassant,
		HalfMoveClock:  p.HalfMoveClock,
		Hash:           p.Hash,
	}
	p.history = append(p.history, p.Hash)

	us := p.SideToMove
	from, to := m.From(), m.To()
	moving := p.PieceAt(from)

	// Clear the stale en passant file from the hash.
	if p.EnPassant != NoSquare {
		p.Hash ^= zobristEnPassant[p.EnPassant.File()]
		p.EnPassant = NoSquare
	}

	p.HalfMoveClock++
	if moving.Type() == Pawn {
		p.HalfMoveClock = 0
	}

	switch {
	case m.IsEnPassant():
		capSq := to
		if us == White {
			capSq -= 8
		} else {
			capSq += 8
		}
		undo.Captured = NewPiece(Pawn, us.Other())
		p.dropPiece(undo.Captured, capSq)
		p.dropPiece(moving, from)
		p.putPiece(moving, to)

	case m.IsCastling():
		rookFrom, rookTo := rookCastleSquares(to)
		rook := NewPiece(Rook, us)
		p.dropPiece(moving, from)
		p.putPiece(moving, to)
		p.dropPiece(rook, rookFrom)
		p.putPiece(rook, rookTo)

	default:
		if captured := p.PieceAt(to); captured != NoPiece {
			undo.Captured = captured
			p.dropPiece(captured, to)
			p.HalfMoveClock = 0
		}
		p.dropPiece(moving, from)
		if m.IsPromotion() {
			p.putPiece(NewPiece(m.Promotion(), us), to)
		} else {
			p.putPiece(moving, to)
		}

		// A double pawn push opens an en passant target.
		if moving.Type() == Pawn && abs(int(to)-int(from)) == 16 {
			p.EnPassant = (from + to) / 2
			p.Hash ^= zobristEnPassant[p.EnPassant.File()]
		}
	}

	p.Hash ^= zobristCastling[p.CastlingRights]
	p.CastlingRights &= castleMask[from] & castleMask[to]
	p.Hash ^= zobristCastling[p.CastlingRights]

	if us == Black {
		p.FullMoveNumber++
	}
	p.SideToMove = us.Other()
	p.Hash ^= zobristSideToMove

	return undo
}

// UnmakeMove reverts m using the undo record MakeMove returned.
func (p *Position) UnmakeMove(m Move, undo UndoInfo) {
	p.SideToMove = p.SideToMove.Other()
	us := p.SideToMove
	if us == Black {
		p.FullMoveNumber--
	}

	from, to := m.From(), m.To()

	switch {
	case m.IsEnPassant():
		pawn := NewPiece(Pawn, us)
		p.dropPiece(pawn, to)
		p.putPiece(pawn, from)
		capSq := to
		if us == White {
			capSq -= 8
		} else {
			capSq += 8
		}
		p.putPiece(undo.Captured, capSq)

	case m.IsCastling():
		king := NewPiece(King, us)
		rook := NewPiece(Rook, us)
		rookFrom, rookTo := rookCastleSquares(to)
		p.dropPiece(king, to)
		p.putPiece(king, from)
		p.dropPiece(rook, rookTo)
		p.putPiece(rook, rookFrom)

	default:
		if m.IsPromotion() {
			p.dropPiece(NewPiece(m.Promotion(), us), to)
			p.putPiece(NewPiece(Pawn, us), from)
		} else {
			moved := p.PieceAt(to)
			p.dropPiece(moved, to)
			p.putPiece(moved, from)
		}
		if undo.Captured != NoPiece {
			p.putPiece(undo.Captured, to)
		}
	}

	p.CastlingRights = undo.CastlingRights
	p.EnPassant = undo.EnPassant
	p.HalfMoveClock = undo.HalfMoveClock
	p.Hash = undo.Hash
	p.history = p.history[:len(p.history)-1]
}

// rookCastleSquares maps the king's destination to the rook's move.
func rookCastleSquares(kingTo Square) (from, to Square) {
	switch kingTo {
	case G1:
		return H1, F1
	case C1:
		return A1, D1
	case G8:
		return H8, F8
	case C8:
		return A8, D8
	}
	panic(fmt.Sprintf("invalid castling destination %v", kingTo))
}

// NullMoveUndo is the state MakeNullMove saves.
type NullMoveUndo struct {
	EnPassant Square
	Hash      uint64
}

// MakeNullMove passes the turn without moving, for null-move pruning.
func (p *Position) MakeNullMove() NullMoveUndo {
	undo := NullMoveUndo{EnPassant: p.EnPassant, Hash: p.Hash}
	p.history = append(p.history, p.Hash)
	if p.EnPassant != NoSquare {
		p.Hash ^= zobristEnPassant[p.EnPassant.File()]
		p.EnPassant = NoSquare
	}
	p.SideToMove = p.SideToMove.Other()
	p.Hash ^= zobristSideToMove
	return undo
}

// UnmakeNullMove reverts a null move.
func (p *Position) UnmakeNullMove(undo NullMoveUndo) {
	p.SideToMove = p.SideToMove.Other()
	p.EnPassant = undo.EnPassant
	p.Hash = undo.Hash
	p.history = p.history[:len(p.history)-1]
}

// IsFiftyMoveDraw reports whether the half-move clock has run out.
func (p *Position) IsFiftyMoveDraw() bool {
	return p.HalfMoveClock >= 100
}

// IsRepetition reports whether the current position already occurred on
// the make/unmake path. A single earlier occurrence counts: inside a
// search, steering into any repetition of a reachable position is
// equivalent to holding a draw.
func (p *Position) IsRepetition() bool {
	// Only positions since the last irreversible move can repeat.
	limit := len(p.history) - p.HalfMoveClock
	if limit < 0 {
		limit = 0
	}
	for i := len(p.history) - 2; i >= limit; i -= 2 {
		if p.history[i] == p.Hash {
			return true
		}
	}
	return false
}

// SeedHistory installs the hashes of the game positions leading to the
// current root, so the search can detect repetitions that span moves
// already played on the board.
func (p *Position) SeedHistory(hashes []uint64) {
	p.history = append(p.history[:0], hashes...)
}

// IsInsufficientMaterial reports draws by dead position: bare kings,
// king and minor against king, or same-colored single bishops.
func (p *Position) IsInsufficientMaterial() bool {
	if p.Pieces[White][Pawn]|p.Pieces[Black][Pawn] != 0 {
		return false
	}
	if p.Pieces[White][Rook]|p.Pieces[Black][Rook]|p.Pieces[White][Queen]|p.Pieces[Black][Queen] != 0 {
		return false
	}
	knights := p.Pieces[White][Knight] | p.Pieces[Black][Knight]
	bishops := p.Pieces[White][Bishop] | p.Pieces[Black][Bishop]
	minors := (knights | bishops).PopCount()
	if minors <= 1 {
		return true
	}
	// Two bishops on the same square color cannot force mate, whoever
	// owns them.
	if knights == 0 && minors == 2 {
		if bishops&LightSquares == bishops || bishops&DarkSquares == bishops {
			return true
		}
	}
	return false
}

// Status classifies the position: in progress, checkmate, stalemate, or
// one of the draw terminals. Draw-by-rule is checked before movegen so
// a clock-expired position reports the draw even when moves exist.
func (p *Position) Status() Status {
	switch {
	case p.IsFiftyMoveDraw():
		return FiftyMoveDraw
	case p.IsRepetition():
		return Repetition
	case p.IsInsufficientMaterial():
		return InsufficientMaterial
	}
	var ml MoveList
	p.GenerateLegalMoves(&ml)
	if ml.Len() > 0 {
		return InProgress
	}
	if p.InCheck() {
		return Checkmate
	}
	return Stalemate
}

// NonPawnPieceCount returns the number of pieces that are neither pawns
// nor kings, over both colors. The evaluation's endgame switch keys off
// this.
func (p *Position) NonPawnPieceCount() int {
	n := 0
	for c := White; c <= Black; c++ {
		for pt := Knight; pt <= Queen; pt++ {
			n += bits.OnesCount64(uint64(p.Pieces[c][pt]))
		}
	}
	return n
}

// String renders the board with coordinates, for the "d" debug command.
func (p *Position) String() string {
	s := "\n"
	for rank := 7; rank >= 0; rank-- {
		s += fmt.Sprintf("%d  ", rank+1)
		for file := 0; file < 8; file++ {
			pc := p.PieceAt(NewSquare(file, rank))
			if pc == NoPiece {
				s += ". "
			} else {
				s += pc.String() + " "
			}
		}
		s += "\n"
	}
	s += "\n   a b c d e f g h\n\n"
	s += fmt.Sprintf("fen: %s\nhash: %016x\n", p.FEN(), p.Hash)
	return s
}
