package analysis

import "github.com/hailam/chesslens/internal/board"

// Rules is the chess rules engine the analyzer reads from. Square slices
// are in ascending square order.
type Rules interface {
	PieceAt(sq board.Square) board.Piece

	// Attackers returns the pieces of color by whose attack pattern covers
	// sq, ignoring pins and checks.
	Attackers(sq board.Square, by board.Color) []board.Square

	// LegalMoves returns the fully legal moves of the piece on from, as if
	// its owner were on move.
	LegalMoves(from board.Square) []board.Move

	// IsCapture reports whether m takes a piece in the current position.
	IsCapture(m board.Move) bool

	// InCheck reports whether the king of c is attacked. A side without a
	// king is never in check.
	InCheck(c board.Color) bool

	// ApplyMove plays a move returned by LegalMoves; UndoMove takes back
	// the most recent one.
	ApplyMove(m board.Move) error
	UndoMove()

	RemovePiece(sq board.Square) board.Piece
	PlacePiece(p board.Piece, sq board.Square)
}

// Factory builds a private Rules instance for a FEN string. Malformed FEN
// fails with a *board.ParseError.
type Factory func(fen string) (Rules, error)
