package rules

import (
	"fmt"
	"strings"

	"github.com/dylhunn/dragontoothmg"

	"github.com/hailam/chesslens/internal/analysis"
	"github.com/hailam/chesslens/internal/board"
)

// Dragontooth implements analysis.Rules on a dragontoothmg.Board. Boards
// are plain values, so the undo history is a stack of copies.
type Dragontooth struct {
	b       dragontoothmg.Board
	history []dragontoothmg.Board
}

// NewDragontooth validates fen with the built-in parser and loads it into
// dragontoothmg, which does not report malformed input itself.
func NewDragontooth(fen string) (analysis.Rules, error) {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	return &Dragontooth{b: dragontoothmg.ParseFen(pos.ToFEN())}, nil
}

// FEN returns the current position.
func (d *Dragontooth) FEN() string { return d.b.ToFen() }

func (d *Dragontooth) sides(c board.Color) *dragontoothmg.Bitboards {
	if c == board.White {
		return &d.b.White
	}
	return &d.b.Black
}

// pieceBits returns the bitboard of one piece type within bb.
func pieceBits(bb *dragontoothmg.Bitboards, pt board.PieceType) *uint64 {
	switch pt {
	case board.Pawn:
		return &bb.Pawns
	case board.Knight:
		return &bb.Knights
	case board.Bishop:
		return &bb.Bishops
	case board.Rook:
		return &bb.Rooks
	case board.Queen:
		return &bb.Queens
	default:
		return &bb.Kings
	}
}

func (d *Dragontooth) PieceAt(sq board.Square) board.Piece {
	mask := uint64(board.SquareBB(sq))
	for _, c := range []board.Color{board.White, board.Black} {
		bb := d.sides(c)
		if bb.All&mask == 0 {
			continue
		}
		for pt := board.Pawn; pt <= board.King; pt++ {
			if *pieceBits(bb, pt)&mask != 0 {
				return board.NewPiece(pt, c)
			}
		}
	}
	return board.NoPiece
}

// Attackers combines the library's slider attack tables with leaper
// patterns, the same way an exchange evaluator gathers attackers.
func (d *Dragontooth) Attackers(sq board.Square, by board.Color) []board.Square {
	bb := d.sides(by)
	occ := d.b.White.All | d.b.Black.All
	diag := dragontoothmg.CalculateBishopMoveBitboard(uint8(sq), occ)
	orth := dragontoothmg.CalculateRookMoveBitboard(uint8(sq), occ)

	hits := diag&(bb.Bishops|bb.Queens) |
		orth&(bb.Rooks|bb.Queens) |
		uint64(board.KnightAttacks(sq))&bb.Knights |
		uint64(board.KingAttacks(sq))&bb.Kings |
		uint64(board.PawnAttacks(sq, by.Other()))&bb.Pawns
	return board.Bitboard(hits).Squares()
}

// view returns a board with c to move. When c is not on move the copy is
// rebuilt from FEN with the turn passed and the en passant square cleared.
func (d *Dragontooth) view(c board.Color) dragontoothmg.Board {
	if d.b.Wtomove == (c == board.White) {
		return d.b
	}
	fields := strings.Fields(d.b.ToFen())
	fields[1] = "w"
	if c == board.Black {
		fields[1] = "b"
	}
	fields[3] = "-"
	return dragontoothmg.ParseFen(strings.Join(fields, " "))
}

func (d *Dragontooth) LegalMoves(from board.Square) []board.Move {
	piece := d.PieceAt(from)
	if piece == board.NoPiece {
		return nil
	}
	v := d.view(piece.Color())
	var moves []board.Move
	for _, dm := range d.legalMoves(&v, piece.Color()) {
		if dm.From() != uint8(from) {
			continue
		}
		moves = append(moves, convertMove(&v, dm))
	}
	return moves
}

// legalMoves generates for c on v, dropping captures of the enemy king.
// The library offers those when the turn was passed to a side giving check.
func (d *Dragontooth) legalMoves(v *dragontoothmg.Board, c board.Color) []dragontoothmg.Move {
	theirKing := d.sides(c.Other()).Kings
	moves := v.GenerateLegalMoves()
	legal := moves[:0]
	for _, dm := range moves {
		if theirKing&(uint64(1)<<dm.To()) != 0 {
			continue
		}
		legal = append(legal, dm)
	}
	return legal
}

// convertMove translates a library move into the board encoding, which
// flags castling and en passant explicitly.
func convertMove(v *dragontoothmg.Board, dm dragontoothmg.Move) board.Move {
	from, to := board.Square(dm.From()), board.Square(dm.To())
	mover := board.Pawn
	for pt := board.Pawn; pt <= board.King; pt++ {
		if (*pieceBits(&v.White, pt)|*pieceBits(&v.Black, pt))&uint64(board.SquareBB(from)) != 0 {
			mover = pt
			break
		}
	}
	occupied := (v.White.All|v.Black.All)&uint64(board.SquareBB(to)) != 0

	switch {
	case dm.Promote() != dragontoothmg.Nothing:
		return board.NewPromotion(from, to, board.PieceType(dm.Promote()-1))
	case mover == board.King && (to.File()-from.File() == 2 || from.File()-to.File() == 2):
		return board.NewCastling(from, to)
	case mover == board.Pawn && from.File() != to.File() && !occupied:
		return board.NewEnPassant(from, to)
	default:
		return board.NewMove(from, to)
	}
}

func (d *Dragontooth) IsCapture(m board.Move) bool {
	if m.IsEnPassant() {
		return true
	}
	if m.IsCastling() {
		return false
	}
	return (d.b.White.All|d.b.Black.All)&uint64(board.SquareBB(m.To())) != 0
}

func (d *Dragontooth) InCheck(c board.Color) bool {
	if d.sides(c).Kings == 0 {
		return false
	}
	v := d.view(c)
	return v.OurKingInCheck()
}

// ApplyMove plays m for the owner of the moving piece.
func (d *Dragontooth) ApplyMove(m board.Move) error {
	piece := d.PieceAt(m.From())
	if piece == board.NoPiece {
		return fmt.Errorf("%w: %v", board.ErrIllegalMove, m)
	}
	v := d.view(piece.Color())
	for _, dm := range d.legalMoves(&v, piece.Color()) {
		if convertMove(&v, dm) != m {
			continue
		}
		d.history = append(d.history, d.b)
		v.Apply(dm)
		d.b = v
		return nil
	}
	return fmt.Errorf("%w: %v", board.ErrIllegalMove, m)
}

func (d *Dragontooth) UndoMove() {
	if len(d.history) == 0 {
		return
	}
	last := len(d.history) - 1
	d.b = d.history[last]
	d.history = d.history[:last]
}

func (d *Dragontooth) RemovePiece(sq board.Square) board.Piece {
	piece := d.PieceAt(sq)
	if piece == board.NoPiece {
		return piece
	}
	mask := uint64(board.SquareBB(sq))
	bb := d.sides(piece.Color())
	*pieceBits(bb, piece.Type()) &^= mask
	bb.All &^= mask
	return piece
}

func (d *Dragontooth) PlacePiece(p board.Piece, sq board.Square) {
	if p == board.NoPiece {
		return
	}
	d.RemovePiece(sq)
	mask := uint64(board.SquareBB(sq))
	bb := d.sides(p.Color())
	*pieceBits(bb, p.Type()) |= mask
	bb.All |= mask
}
