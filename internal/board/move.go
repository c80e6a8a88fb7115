package board

import "fmt"

// Move encodes a chess move in 16 bits:
// bits 0-5 from, bits 6-11 to, bits 12-13 promotion piece
// (0=Knight .. 3=Queen), bits 14-15 flag.
type Move uint16

const (
	FlagNormal    uint16 = 0 << 14
	FlagPromotion uint16 = 1 << 14
	FlagEnPassant uint16 = 2 << 14
	FlagCastling  uint16 = 3 << 14
)

// NoMove is the zero, invalid move.
const NoMove Move = 0

// NewMove creates a normal move.
func NewMove(from, to Square) Move {
	return Move(from) | Move(to)<<6
}

// NewPromotion creates a promotion to promo (Knight..Queen).
func NewPromotion(from, to Square, promo PieceType) Move {
	return NewMove(from, to) | Move(promo-Knight)<<12 | Move(FlagPromotion)
}

// NewEnPassant creates an en passant capture.
func NewEnPassant(from, to Square) Move {
	return NewMove(from, to) | Move(FlagEnPassant)
}

// NewCastling creates a castling move, encoded as the king's step.
func NewCastling(from, to Square) Move {
	return NewMove(from, to) | Move(FlagCastling)
}

func (m Move) From() Square { return Square(m & 0x3F) }
func (m Move) To() Square   { return Square((m >> 6) & 0x3F) }
func (m Move) Flag() uint16 { return uint16(m) & 0xC000 }

// Promotion returns the promotion piece; only meaningful for promotions.
func (m Move) Promotion() PieceType {
	return PieceType((m>>12)&3) + Knight
}

func (m Move) IsPromotion() bool { return m.Flag() == FlagPromotion }
func (m Move) IsCastling() bool  { return m.Flag() == FlagCastling }
func (m Move) IsEnPassant() bool { return m.Flag() == FlagEnPassant }

// IsCapture reports whether m takes a piece in pos.
func (m Move) IsCapture(pos *Position) bool {
	if m.IsEnPassant() {
		return true
	}
	return pos.AllOccupied.IsSet(m.To()) && !m.IsCastling()
}

// String returns UCI notation ("e2e4", "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += string(m.Promotion().Char())
	}
	return s
}

// ParseMove resolves a UCI move string against the legal moves of pos.
func ParseMove(s string, pos *Position) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NoMove, fmt.Errorf("%w: %q", ErrIllegalMove, s)
	}
	for _, m := range pos.GenerateLegalMoves() {
		if m.String() == s {
			return m, nil
		}
	}
	return NoMove, fmt.Errorf("%w: %q", ErrIllegalMove, s)
}

// Undo holds what UnmakeMove needs to restore the position.
type Undo struct {
	pieces         [2][6]Bitboard
	occupied       [2]Bitboard
	allOccupied    Bitboard
	sideToMove     Color
	castlingRights CastlingRights
	enPassant      Square
	halfMoveClock  int
	fullMoveNumber int
}

func (p *Position) snapshot() Undo {
	return Undo{
		pieces:         p.Pieces,
		occupied:       p.Occupied,
		allOccupied:    p.AllOccupied,
		sideToMove:     p.SideToMove,
		castlingRights: p.CastlingRights,
		enPassant:      p.EnPassant,
		halfMoveClock:  p.HalfMoveClock,
		fullMoveNumber: p.FullMoveNumber,
	}
}
