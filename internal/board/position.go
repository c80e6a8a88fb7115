package board

import (
	"fmt"
	"strings"
)

// CastlingRights is the set of castling options still available.
type CastlingRights uint8

const (
	WhiteKingSideCastle CastlingRights = 1 << iota
	WhiteQueenSideCastle
	BlackKingSideCastle
	BlackQueenSideCastle
	NoCastling CastlingRights = 0
)

// String returns the FEN castling field ("KQkq", "-").
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	var sb strings.Builder
	for i, c := range "KQkq" {
		if cr&(1<<i) != 0 {
			sb.WriteRune(c)
		}
	}
	return sb.String()
}

// Position is a complete chess position.
type Position struct {
	Pieces      [2][6]Bitboard
	Occupied    [2]Bitboard
	AllOccupied Bitboard

	SideToMove     Color
	CastlingRights CastlingRights
	EnPassant      Square
	HalfMoveClock  int
	FullMoveNumber int
}

// NewPosition returns the standard starting position.
func NewPosition() *Position {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		panic(err)
	}
	return pos
}

// Copy returns an independent copy of the position.
func (p *Position) Copy() *Position {
	c := *p
	return &c
}

// PieceAt returns the piece on sq, or NoPiece.
func (p *Position) PieceAt(sq Square) Piece {
	bb := SquareBB(sq)
	if p.AllOccupied&bb == 0 {
		return NoPiece
	}
	c := White
	if p.Occupied[Black]&bb != 0 {
		c = Black
	}
	for pt := Pawn; pt <= King; pt++ {
		if p.Pieces[c][pt]&bb != 0 {
			return NewPiece(pt, c)
		}
	}
	return NoPiece
}

// PlacePiece puts piece on sq, replacing whatever stood there.
// Castling rights, en passant and side to move are left untouched.
func (p *Position) PlacePiece(piece Piece, sq Square) {
	if piece == NoPiece {
		return
	}
	p.RemovePiece(sq)
	bb := SquareBB(sq)
	c := piece.Color()
	p.Pieces[c][piece.Type()] |= bb
	p.Occupied[c] |= bb
	p.AllOccupied |= bb
}

// RemovePiece clears sq and returns the piece that stood there.
func (p *Position) RemovePiece(sq Square) Piece {
	piece := p.PieceAt(sq)
	if piece == NoPiece {
		return NoPiece
	}
	bb := SquareBB(sq)
	c := piece.Color()
	p.Pieces[c][piece.Type()] &^= bb
	p.Occupied[c] &^= bb
	p.AllOccupied &^= bb
	return piece
}

func (p *Position) movePiece(from, to Square) {
	piece := p.RemovePiece(from)
	p.PlacePiece(piece, to)
}

// KingSquare returns the square of c's king, or NoSquare.
func (p *Position) KingSquare(c Color) Square {
	return p.Pieces[c][King].LSB()
}

// validate checks the constraints every analyzable position must meet.
func (p *Position) validate() error {
	for _, c := range []Color{White, Black} {
		if n := p.Pieces[c][King].PopCount(); n != 1 {
			return fmt.Errorf("%s must have exactly one king, found %d", c, n)
		}
	}
	if (p.Pieces[White][Pawn]|p.Pieces[Black][Pawn])&(Rank1|Rank8) != 0 {
		return fmt.Errorf("pawns cannot stand on the first or last rank")
	}
	if p.InCheck(p.SideToMove.Other()) {
		return fmt.Errorf("%s is in check but not on move", p.SideToMove.Other())
	}
	return nil
}

// String draws the board, rank 8 on top.
func (p *Position) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d ", rank+1)
		for file := 0; file < 8; file++ {
			piece := p.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				sb.WriteString(" .")
			} else {
				sb.WriteString(" " + piece.String())
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   a b c d e f g h\n")
	fmt.Fprintf(&sb, "%s to move, castling %s, en passant %s\n", p.SideToMove, p.CastlingRights, p.EnPassant)
	return sb.String()
}
