package board

import (
	"strconv"
	"strings"
)

// StartFEN is the standard starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses a FEN string. The move counters are optional.
// Errors are *ParseError and match ErrInvalidFEN.
func ParseFEN(fen string) (*Position, error) {
	fail := func(field, reason string) (*Position, error) {
		return nil, &ParseError{FEN: fen, Field: field, Reason: reason}
	}

	parts := strings.Fields(fen)
	if len(parts) < 4 || len(parts) > 6 {
		return fail("fields", "need 4 to 6 space separated fields, got "+strconv.Itoa(len(parts)))
	}

	pos := &Position{EnPassant: NoSquare, FullMoveNumber: 1}

	if reason := parsePlacement(pos, parts[0]); reason != "" {
		return fail("placement", reason)
	}

	switch parts[1] {
	case "w":
		pos.SideToMove = White
	case "b":
		pos.SideToMove = Black
	default:
		return fail("side to move", "expected w or b, got "+strconv.Quote(parts[1]))
	}

	if parts[2] != "-" {
		for _, c := range parts[2] {
			i := strings.IndexRune("KQkq", c)
			if i < 0 {
				return fail("castling", "unexpected character "+strconv.QuoteRune(c))
			}
			pos.CastlingRights |= 1 << i
		}
	}

	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil || (sq.Rank() != 2 && sq.Rank() != 5) {
			return fail("en passant", "bad target square "+strconv.Quote(parts[3]))
		}
		pos.EnPassant = sq
	}

	if len(parts) > 4 {
		n, err := strconv.Atoi(parts[4])
		if err != nil || n < 0 {
			return fail("half-move clock", strconv.Quote(parts[4]))
		}
		pos.HalfMoveClock = n
	}
	if len(parts) > 5 {
		n, err := strconv.Atoi(parts[5])
		if err != nil || n < 1 {
			return fail("full-move number", strconv.Quote(parts[5]))
		}
		pos.FullMoveNumber = n
	}

	if err := pos.validate(); err != nil {
		return fail("position", err.Error())
	}
	return pos, nil
}

// parsePlacement fills pos from the placement field and returns a
// non-empty reason on failure.
func parsePlacement(pos *Position, placement string) string {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return "need 8 ranks, got " + strconv.Itoa(len(ranks))
	}
	for i, row := range ranks {
		rank := 7 - i
		file := 0
		for j := 0; j < len(row); j++ {
			c := row[j]
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			piece := PieceFromChar(c)
			if piece == NoPiece {
				return "invalid piece character " + strconv.QuoteRune(rune(c))
			}
			if file > 7 {
				return "rank " + strconv.Itoa(rank+1) + " describes more than 8 squares"
			}
			pos.PlacePiece(piece, NewSquare(file, rank))
			file++
		}
		if file != 8 {
			return "rank " + strconv.Itoa(rank+1) + " does not describe 8 squares"
		}
	}
	return ""
}

// ToFEN returns the FEN representation of the position.
func (p *Position) ToFEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := p.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	side := "w"
	if p.SideToMove == Black {
		side = "b"
	}
	sb.WriteString(" " + side)
	sb.WriteString(" " + p.CastlingRights.String())
	sb.WriteString(" " + p.EnPassant.String())
	sb.WriteString(" " + strconv.Itoa(p.HalfMoveClock))
	sb.WriteString(" " + strconv.Itoa(p.FullMoveNumber))
	return sb.String()
}
