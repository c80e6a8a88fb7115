// Package rules provides the rules engines the analyzer runs on: the
// built-in bitboard engine and an adapter over dragontoothmg.
package rules

import (
	"fmt"
	"slices"

	"github.com/hailam/chesslens/internal/analysis"
	"github.com/hailam/chesslens/internal/board"
)

// Builtin implements analysis.Rules on a board.Position.
type Builtin struct {
	pos  *board.Position
	undo []board.Undo
}

// NewBuiltin parses fen into a fresh built-in rules instance.
func NewBuiltin(fen string) (analysis.Rules, error) {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	return &Builtin{pos: pos}, nil
}

// FromPosition wraps a copy of pos.
func FromPosition(pos *board.Position) *Builtin {
	return &Builtin{pos: pos.Copy()}
}

// FEN returns the current position.
func (b *Builtin) FEN() string { return b.pos.ToFEN() }

func (b *Builtin) PieceAt(sq board.Square) board.Piece {
	return b.pos.PieceAt(sq)
}

func (b *Builtin) Attackers(sq board.Square, by board.Color) []board.Square {
	return b.pos.Attackers(sq, by)
}

func (b *Builtin) LegalMoves(from board.Square) []board.Move {
	return b.pos.LegalMovesFrom(from)
}

func (b *Builtin) IsCapture(m board.Move) bool {
	return m.IsCapture(b.pos)
}

func (b *Builtin) InCheck(c board.Color) bool {
	return b.pos.InCheck(c)
}

// ApplyMove plays m for the owner of the moving piece, passing the turn
// first when that side is not on move.
func (b *Builtin) ApplyMove(m board.Move) error {
	piece := b.pos.PieceAt(m.From())
	if piece == board.NoPiece || !slices.Contains(b.pos.LegalMovesFrom(m.From()), m) {
		return fmt.Errorf("%w: %v", board.ErrIllegalMove, m)
	}
	var undo board.Undo
	if piece.Color() != b.pos.SideToMove {
		undo = b.pos.MakeNullMove()
		b.pos.MakeMove(m)
	} else {
		undo = b.pos.MakeMove(m)
	}
	b.undo = append(b.undo, undo)
	return nil
}

func (b *Builtin) UndoMove() {
	if len(b.undo) == 0 {
		return
	}
	last := len(b.undo) - 1
	b.pos.UnmakeMove(b.undo[last])
	b.undo = b.undo[:last]
}

func (b *Builtin) RemovePiece(sq board.Square) board.Piece {
	return b.pos.RemovePiece(sq)
}

func (b *Builtin) PlacePiece(p board.Piece, sq board.Square) {
	b.pos.PlacePiece(p, sq)
}
