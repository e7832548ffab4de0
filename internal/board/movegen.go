package board

// Move generation: pseudo-legal generation per piece type, then a
// make/verify/unmake pass that drops moves leaving the own king
// attacked.

// GenerateLegalMoves fills ml with every legal move for the side to
// move. ml is cleared first.
func (p *Position) GenerateLegalMoves(ml *MoveList) {
	ml.Clear()
	p.generatePseudoLegal(ml, false)
	p.filterLegal(ml)
}

// GenerateCaptures fills ml with the legal capturing moves only,
// including en passant and capturing promotions. Used by quiescence.
func (p *Position) GenerateCaptures(ml *MoveList) {
	ml.Clear()
	p.generatePseudoLegal(ml, true)
	p.filterLegal(ml)
}

// filterLegal removes moves after which the mover's king is attacked.
func (p *Position) filterLegal(ml *MoveList) {
	us := p.SideToMove
	for i := 0; i < ml.Len(); {
		m := ml.Get(i)
		undo := p.MakeMove(m)
		illegal := p.IsSquareAttacked(p.KingSquare[us], p.SideToMove)
		p.UnmakeMove(m, undo)
		if illegal {
			ml.Remove(i)
		} else {
			i++
		}
	}
}

func (p *Position) generatePseudoLegal(ml *MoveList, capturesOnly bool) {
	us := p.SideToMove
	them := us.Other()
	own := p.Occupied[us]
	enemy := p.Occupied[them]
	occ := p.AllOccupied

	targets := ^own
	if capturesOnly {
		targets = enemy
	}

	p.generatePawnMoves(ml, capturesOnly)

	for from := p.Pieces[us][Knight]; from != 0; {
		sq := from.PopLSB()
		addTargets(ml, sq, KnightAttacks(sq)&targets)
	}
	for from := p.Pieces[us][Bishop]; from != 0; {
		sq := from.PopLSB()
		addTargets(ml, sq, BishopAttacks(sq, occ)&targets)
	}
	for from := p.Pieces[us][Rook]; from != 0; {
		sq := from.PopLSB()
		addTargets(ml, sq, RookAttacks(sq, occ)&targets)
	}
	for from := p.Pieces[us][Queen]; from != 0; {
		sq := from.PopLSB()
		addTargets(ml, sq, QueenAttacks(sq, occ)&targets)
	}

	ksq := p.KingSquare[us]
	addTargets(ml, ksq, KingAttacks(ksq)&targets)
	if !capturesOnly {
		p.generateCastling(ml)
	}
}

func addTargets(ml *MoveList, from Square, targets Bitboard) {
	for targets != 0 {
		ml.Add(NewMove(from, targets.PopLSB()))
	}
}

func (p *Position) generatePawnMoves(ml *MoveList, capturesOnly bool) {
	us := p.SideToMove
	them := us.Other()
	pawns := p.Pieces[us][Pawn]
	enemy := p.Occupied[them]
	occ := p.AllOccupied

	promoRank, doubleRank := 6, 1
	forward := 8
	if us == Black {
		promoRank, doubleRank = 1, 6
		forward = -8
	}

	for bb := pawns; bb != 0; {
		from := bb.PopLSB()
		rank := from.Rank()

		// Captures, including capturing promotions.
		for caps := PawnCaptures(us, from) & enemy; caps != 0; {
			to := caps.PopLSB()
			if rank == promoRank {
				addPromotions(ml, from, to)
			} else {
				ml.Add(NewMove(from, to))
			}
		}

		if p.EnPassant != NoSquare && PawnCaptures(us, from).IsSet(p.EnPassant) {
			ml.Add(NewEnPassant(from, p.EnPassant))
		}

		if capturesOnly {
			continue
		}

		// Pushes.
		to := Square(int(from) + forward)
		if occ.IsSet(to) {
			continue
		}
		if rank == promoRank {
			addPromotions(ml, from, to)
			continue
		}
		ml.Add(NewMove(from, to))
		if rank == doubleRank {
			to2 := Square(int(to) + forward)
			if !occ.IsSet(to2) {
				ml.Add(NewMove(from, to2))
			}
		}
	}
}

func addPromotions(ml *MoveList, from, to Square) {
	for pt := Knight; pt <= Queen; pt++ {
		ml.Add(NewPromotion(from, to, pt))
	}
}

// generateCastling adds castling moves whose path is empty and not
// attacked. The destination-square check is left to filterLegal.
func (p *Position) generateCastling(ml *MoveList) {
	us := p.SideToMove
	them := us.Other()
	occ := p.AllOccupied

	type side struct {
		right    CastlingRights
		from, to Square
		empty    Bitboard // squares that must be vacant
		safe     Square   // square the king crosses (beyond from)
	}
	var sides [2]side
	if us == White {
		sides = [2]side{
			{WhiteKingSide, E1, G1, SquareBB(F1) | SquareBB(G1), F1},
			{WhiteQueenSide, E1, C1, SquareBB(B1) | SquareBB(C1) | SquareBB(D1), D1},
		}
	} else {
		sides = [2]side{
			{BlackKingSide, E8, G8, SquareBB(F8) | SquareBB(G8), F8},
			{BlackQueenSide, E8, C8, SquareBB(B8) | SquareBB(C8) | SquareBB(D8), D8},
		}
	}

	for _, s := range sides {
		if p.CastlingRights&s.right == 0 || occ&s.empty != 0 {
			continue
		}
		if p.IsSquareAttacked(s.from, them) || p.IsSquareAttacked(s.safe, them) {
			continue
		}
		ml.Add(NewCastling(s.from, s.to))
	}
}

// Perft counts leaf nodes of the legal move tree to the given depth.
// It exists to validate move generation against known counts.
func (p *Position) Perft(depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var ml MoveList
	p.GenerateLegalMoves(&ml)
	if depth == 1 {
		return uint64(ml.Len())
	}
	var nodes uint64
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		undo := p.MakeMove(m)
		nodes += p.Perft(depth - 1)
		p.UnmakeMove(m, undo)
	}
	return nodes
}
