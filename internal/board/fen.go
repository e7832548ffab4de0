package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the standard starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN builds a position from a FEN record. At least the first four
// fields are required; the clocks default to 0 and 1.
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fmt.Errorf("invalid FEN %q: want at least 4 fields, got %d", fen, len(fields))
	}

	p := &Position{
		EnPassant:      NoSquare,
		FullMoveNumber: 1,
	}
	p.KingSquare[White] = NoSquare
	p.KingSquare[Black] = NoSquare

	rank, file := 7, 0
	for i := 0; i < len(fields[0]); i++ {
		c := fields[0][i]
		switch {
		case c == '/':
			if file != 8 {
				return nil, fmt.Errorf("invalid FEN %q: rank %d has %d files", fen, rank+1, file)
			}
			rank--
			file = 0
		case c >= '1' && c <= '8':
			file += int(c - '0')
		default:
			pc := PieceFromChar(c)
			if pc == NoPiece || file > 7 || rank < 0 {
				return nil, fmt.Errorf("invalid FEN %q: bad placement at %q", fen, c)
			}
			p.putPiece(pc, NewSquare(file, rank))
			file++
		}
	}
	if rank != 0 || file != 8 {
		return nil, fmt.Errorf("invalid FEN %q: incomplete placement", fen)
	}
	if p.KingSquare[White] == NoSquare || p.KingSquare[Black] == NoSquare {
		return nil, fmt.Errorf("invalid FEN %q: both kings required", fen)
	}

	switch fields[1] {
	case "w":
		p.SideToMove = White
	case "b":
		p.SideToMove = Black
	default:
		return nil, fmt.Errorf("invalid FEN %q: side to move %q", fen, fields[1])
	}

	if fields[2] != "-" {
		for i := 0; i < len(fields[2]); i++ {
			switch fields[2][i] {
			case 'K':
				p.CastlingRights |= WhiteKingSide
			case 'Q':
				p.CastlingRights |= WhiteQueenSide
			case 'k':
				p.CastlingRights |= BlackKingSide
			case 'q':
				p.CastlingRights |= BlackQueenSide
			default:
				return nil, fmt.Errorf("invalid FEN %q: castling %q", fen, fields[2])
			}
		}
	}

	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return nil, fmt.Errorf("invalid FEN %q: en passant %q", fen, fields[3])
		}
		p.EnPassant = sq
	}

	if len(fields) > 4 {
		hmc, err := strconv.Atoi(fields[4])
		if err != nil || hmc < 0 {
			return nil, fmt.Errorf("invalid FEN %q: half-move clock %q", fen, fields[4])
		}
		p.HalfMoveClock = hmc
	}
	if len(fields) > 5 {
		fmn, err := strconv.Atoi(fields[5])
		if err != nil || fmn < 1 {
			return nil, fmt.Errorf("invalid FEN %q: move number %q", fen, fields[5])
		}
		p.FullMoveNumber = fmn
	}

	p.Hash = p.computeHash()
	return p, nil
}

// FEN renders the position as a six-field FEN record.
func (p *Position) FEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			pc := p.PieceAt(NewSquare(file, rank))
			if pc == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteString(pc.String())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	stm := "w"
	if p.SideToMove == Black {
		stm = "b"
	}
	return fmt.Sprintf("%s %s %s %s %d %d",
		sb.String(), stm, p.CastlingRights, p.EnPassant, p.HalfMoveClock, p.FullMoveNumber)
}
