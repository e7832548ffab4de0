// Package epd parses EPD test-suite records, the position collections
// used to benchmark the engine's tactical strength.
package epd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/sgrimes/gannet/internal/board"
)

// Record is one EPD line: a position with its expected (bm) and
// forbidden (am) moves, resolved against the position's legal moves.
type Record struct {
	ID         string
	FEN        string
	Position   *board.Position
	BestMoves  []board.Move
	AvoidMoves []board.Move
}

// Solved reports whether m satisfies the record: it matches a best
// move when any are given, and never matches an avoid move.
func (r *Record) Solved(m board.Move) bool {
	for _, am := range r.AvoidMoves {
		if m == am {
			return false
		}
	}
	if len(r.BestMoves) == 0 {
		return true
	}
	for _, bm := range r.BestMoves {
		if m == bm {
			return true
		}
	}
	return false
}

// Parse reads a suite, one record per line. Lines that fail to parse
// are reported in the error slice and skipped; the suite stays usable.
func Parse(r io.Reader) ([]Record, []error) {
	var records []Record
	var errs []error

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rec, err := ParseLine(line)
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", lineNo, err))
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		errs = append(errs, err)
	}
	return records, errs
}

// ParseLine parses a single EPD record: four FEN fields followed by
// semicolon-terminated operations, of which bm, am and id are honored.
func ParseLine(line string) (Record, error) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return Record{}, fmt.Errorf("want at least 4 FEN fields, got %d", len(fields))
	}

	fen := strings.Join(fields[:4], " ")
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return Record{}, err
	}

	rec := Record{FEN: fen, Position: pos}

	ops := strings.Join(fields[4:], " ")
	for _, op := range strings.Split(ops, ";") {
		op = strings.TrimSpace(op)
		if op == "" {
			continue
		}
		parts := strings.Fields(op)
		switch parts[0] {
		case "bm":
			for _, san := range parts[1:] {
				m, err := resolveSAN(pos, san)
				if err != nil {
					return Record{}, fmt.Errorf("bm %q: %w", san, err)
				}
				rec.BestMoves = append(rec.BestMoves, m)
			}
		case "am":
			for _, san := range parts[1:] {
				m, err := resolveSAN(pos, san)
				if err != nil {
					return Record{}, fmt.Errorf("am %q: %w", san, err)
				}
				rec.AvoidMoves = append(rec.AvoidMoves, m)
			}
		case "id":
			rec.ID = strings.Trim(strings.Join(parts[1:], " "), `"`)
		}
	}
	return rec, nil
}

// resolveSAN matches a SAN token (or plain coordinate notation) to a
// legal move. It covers the notation found in common suites: piece
// moves with optional disambiguator, pawn moves and captures,
// promotions and castling. Check and mate suffixes are ignored.
func resolveSAN(pos *board.Position, san string) (board.Move, error) {
	var legal board.MoveList
	pos.GenerateLegalMoves(&legal)

	// Coordinate notation, e.g. "a1a8" or "e7e8q".
	if m, err := board.ParseMove(san, pos); err == nil && legal.Contains(m) {
		return m, nil
	}

	s := strings.TrimRight(san, "+#!?")

	if s == "O-O" || s == "0-0" || s == "O-O-O" || s == "0-0-0" {
		kingSide := len(s) <= 3
		for i := 0; i < legal.Len(); i++ {
			m := legal.Get(i)
			if m.IsCastling() && (m.To().File() == 6) == kingSide {
				return m, nil
			}
		}
		return board.NoMove, fmt.Errorf("castling not legal")
	}

	var promo board.PieceType = board.NoPieceType
	if i := strings.IndexByte(s, '='); i >= 0 && i+1 < len(s) {
		switch s[i+1] {
		case 'N':
			promo = board.Knight
		case 'B':
			promo = board.Bishop
		case 'R':
			promo = board.Rook
		case 'Q':
			promo = board.Queen
		}
		s = s[:i]
	}

	piece := board.Pawn
	switch {
	case s == "":
		return board.NoMove, fmt.Errorf("empty move")
	case s[0] == 'N':
		piece, s = board.Knight, s[1:]
	case s[0] == 'B':
		piece, s = board.Bishop, s[1:]
	case s[0] == 'R':
		piece, s = board.Rook, s[1:]
	case s[0] == 'Q':
		piece, s = board.Queen, s[1:]
	case s[0] == 'K':
		piece, s = board.King, s[1:]
	}

	capture := strings.ContainsRune(s, 'x')
	s = strings.ReplaceAll(s, "x", "")

	if len(s) < 2 {
		return board.NoMove, fmt.Errorf("truncated SAN")
	}
	dest, err := board.ParseSquare(s[len(s)-2:])
	if err != nil {
		return board.NoMove, err
	}
	disambig := s[:len(s)-2]

	var match board.Move = board.NoMove
	for i := 0; i < legal.Len(); i++ {
		m := legal.Get(i)
		if m.To() != dest || m.IsCastling() {
			continue
		}
		if pos.PieceAt(m.From()).Type() != piece {
			continue
		}
		if capture && !m.IsCapture(pos) {
			continue
		}
		if promo != board.NoPieceType && (!m.IsPromotion() || m.Promotion() != promo) {
			continue
		}
		if promo == board.NoPieceType && m.IsPromotion() && m.Promotion() != board.Queen {
			continue // unannotated promotions mean the queen
		}
		if !matchesDisambig(m.From(), disambig) {
			continue
		}
		if match != board.NoMove {
			return board.NoMove, fmt.Errorf("ambiguous")
		}
		match = m
	}
	if match == board.NoMove {
		return board.NoMove, fmt.Errorf("no legal match")
	}
	return match, nil
}

func matchesDisambig(from board.Square, d string) bool {
	for i := 0; i < len(d); i++ {
		c := d[i]
		switch {
		case c >= 'a' && c <= 'h':
			if from.File() != int(c-'a') {
				return false
			}
		case c >= '1' && c <= '8':
			if from.Rank() != int(c-'1') {
				return false
			}
		default:
			return false
		}
	}
	return true
}
