package board

var promotionPieces = [4]PieceType{Queen, Rook, Bishop, Knight}

// rookCorners maps each rook home square to the right lost when it is
// vacated or captured on.
var rookCorners = [4]struct {
	sq    Square
	right CastlingRights
}{
	{A1, WhiteQueenSideCastle},
	{H1, WhiteKingSideCastle},
	{A8, BlackQueenSideCastle},
	{H8, BlackKingSideCastle},
}

// GenerateLegalMoves returns every legal move for the side to move.
func (p *Position) GenerateLegalMoves() []Move {
	var pseudo []Move
	own := p.Occupied[p.SideToMove]
	for own != 0 {
		pseudo = p.pseudoMovesFrom(own.PopLSB(), pseudo)
	}
	return p.filterLegal(pseudo)
}

// LegalMovesFrom returns the legal moves of the piece on sq, generated as
// if its owner were on move. When the owner is not on move the turn is
// passed first, which also drops any en passant right. A checking piece
// never gets the king capture as a move.
func (p *Position) LegalMovesFrom(sq Square) []Move {
	piece := p.PieceAt(sq)
	if piece == NoPiece {
		return nil
	}
	if piece.Color() != p.SideToMove {
		undo := p.MakeNullMove()
		defer p.UnmakeMove(undo)
	}
	return p.filterLegal(p.pseudoMovesFrom(sq, nil))
}

// HasLegalMoves reports whether the side to move can move at all.
func (p *Position) HasLegalMoves() bool {
	return len(p.GenerateLegalMoves()) > 0
}

// IsCheckmate reports whether the side to move is mated.
func (p *Position) IsCheckmate() bool {
	return p.InCheck(p.SideToMove) && !p.HasLegalMoves()
}

// IsStalemate reports whether the side to move has no move and is not in check.
func (p *Position) IsStalemate() bool {
	return !p.InCheck(p.SideToMove) && !p.HasLegalMoves()
}

// filterLegal drops moves that leave the mover's king attacked. Capturing
// the enemy king is never legal; it shows up when the turn was passed to a
// side that is giving check.
func (p *Position) filterLegal(moves []Move) []Move {
	us := p.SideToMove
	theirKing := p.Pieces[us.Other()][King]
	legal := moves[:0]
	for _, m := range moves {
		if theirKing.IsSet(m.To()) {
			continue
		}
		undo := p.MakeMove(m)
		if !p.InCheck(us) {
			legal = append(legal, m)
		}
		p.UnmakeMove(undo)
	}
	return legal
}

// pseudoMovesFrom appends the pseudo-legal moves of the piece on from.
func (p *Position) pseudoMovesFrom(from Square, ml []Move) []Move {
	piece := p.PieceAt(from)
	us := piece.Color()
	own := p.Occupied[us]

	var targets Bitboard
	switch piece.Type() {
	case Pawn:
		return p.pawnMoves(from, us, ml)
	case Knight:
		targets = KnightAttacks(from) &^ own
	case Bishop:
		targets = BishopAttacks(from, p.AllOccupied) &^ own
	case Rook:
		targets = RookAttacks(from, p.AllOccupied) &^ own
	case Queen:
		targets = QueenAttacks(from, p.AllOccupied) &^ own
	case King:
		targets = KingAttacks(from) &^ own
		ml = p.castlingMoves(us, ml)
	default:
		return ml
	}
	for targets != 0 {
		ml = append(ml, NewMove(from, targets.PopLSB()))
	}
	return ml
}

func (p *Position) pawnMoves(from Square, us Color, ml []Move) []Move {
	dir, startRank, lastRank := 8, 1, 7
	if us == Black {
		dir, startRank, lastRank = -8, 6, 0
	}

	add := func(to Square) {
		if to.Rank() == lastRank {
			for _, pt := range promotionPieces {
				ml = append(ml, NewPromotion(from, to, pt))
			}
			return
		}
		ml = append(ml, NewMove(from, to))
	}

	one := Square(int(from) + dir)
	if !p.AllOccupied.IsSet(one) {
		add(one)
		two := Square(int(from) + 2*dir)
		if from.Rank() == startRank && !p.AllOccupied.IsSet(two) {
			ml = append(ml, NewMove(from, two))
		}
	}

	captures := PawnAttacks(from, us) & p.Occupied[us.Other()]
	for captures != 0 {
		add(captures.PopLSB())
	}

	if p.EnPassant != NoSquare && PawnAttacks(from, us).IsSet(p.EnPassant) {
		ml = append(ml, NewEnPassant(from, p.EnPassant))
	}
	return ml
}

func (p *Position) castlingMoves(us Color, ml []Move) []Move {
	rank := 0
	if us == Black {
		rank = 7
	}
	king := NewSquare(4, rank)
	if p.KingSquare(us) != king || p.InCheck(us) {
		return ml
	}
	them := us.Other()

	sides := []struct {
		right    CastlingRights
		rookFile int
		empty    []int
		safe     []int
		toFile   int
	}{
		{WhiteKingSideCastle << (2 * us), 7, []int{5, 6}, []int{5, 6}, 6},
		{WhiteQueenSideCastle << (2 * us), 0, []int{1, 2, 3}, []int{3, 2}, 2},
	}

sideLoop:
	for _, s := range sides {
		if p.CastlingRights&s.right == 0 || !p.Pieces[us][Rook].IsSet(NewSquare(s.rookFile, rank)) {
			continue
		}
		for _, f := range s.empty {
			if p.AllOccupied.IsSet(NewSquare(f, rank)) {
				continue sideLoop
			}
		}
		for _, f := range s.safe {
			if p.IsSquareAttacked(NewSquare(f, rank), them) {
				continue sideLoop
			}
		}
		ml = append(ml, NewCastling(king, NewSquare(s.toFile, rank)))
	}
	return ml
}

// MakeMove plays m for the side to move and returns the undo record.
// m must be pseudo-legal for the position.
func (p *Position) MakeMove(m Move) Undo {
	undo := p.snapshot()
	us := p.SideToMove
	from, to := m.From(), m.To()
	moved := p.PieceAt(from)

	captured := NoPiece
	switch {
	case m.IsEnPassant():
		victim := Square(int(to) - 8)
		if us == Black {
			victim = Square(int(to) + 8)
		}
		captured = p.RemovePiece(victim)
	case !m.IsCastling():
		captured = p.RemovePiece(to)
	}

	p.movePiece(from, to)

	if m.IsPromotion() {
		p.PlacePiece(NewPiece(m.Promotion(), us), to)
	}

	if m.IsCastling() {
		rank := from.Rank()
		if to.File() == 6 {
			p.movePiece(NewSquare(7, rank), NewSquare(5, rank))
		} else {
			p.movePiece(NewSquare(0, rank), NewSquare(3, rank))
		}
	}

	if moved.Type() == King {
		p.CastlingRights &^= (WhiteKingSideCastle | WhiteQueenSideCastle) << (2 * us)
	}
	for _, corner := range rookCorners {
		if from == corner.sq || to == corner.sq {
			p.CastlingRights &^= corner.right
		}
	}

	p.EnPassant = NoSquare
	if moved.Type() == Pawn && (int(to)-int(from) == 16 || int(from)-int(to) == 16) {
		p.EnPassant = Square((int(from) + int(to)) / 2)
	}

	if moved.Type() == Pawn || captured != NoPiece {
		p.HalfMoveClock = 0
	} else {
		p.HalfMoveClock++
	}
	if us == Black {
		p.FullMoveNumber++
	}
	p.SideToMove = us.Other()
	return undo
}

// MakeNullMove passes the turn and clears the en passant square.
func (p *Position) MakeNullMove() Undo {
	undo := p.snapshot()
	p.SideToMove = p.SideToMove.Other()
	p.EnPassant = NoSquare
	return undo
}

// UnmakeMove restores the position recorded in undo.
func (p *Position) UnmakeMove(undo Undo) {
	p.Pieces = undo.pieces
	p.Occupied = undo.occupied
	p.AllOccupied = undo.allOccupied
	p.SideToMove = undo.sideToMove
	p.CastlingRights = undo.castlingRights
	p.EnPassant = undo.enPassant
	p.HalfMoveClock = undo.halfMoveClock
	p.FullMoveNumber = undo.fullMoveNumber
}
