package board

import (
	"fmt"
	"strings"
)

// ToSAN converts a legal move to Standard Algebraic Notation.
func (m Move) ToSAN(pos *Position) string {
	if m == NoMove {
		return "-"
	}
	from, to := m.From(), m.To()
	piece := pos.PieceAt(from)
	if piece == NoPiece {
		return m.String()
	}

	var sb strings.Builder
	switch {
	case m.IsCastling() && to.File() == 6:
		sb.WriteString("O-O")
	case m.IsCastling():
		sb.WriteString("O-O-O")
	default:
		pt := piece.Type()
		capture := m.IsCapture(pos)
		if pt == Pawn {
			if capture {
				sb.WriteByte(byte('a' + from.File()))
			}
		} else {
			sb.WriteByte("PNBRQK"[pt])
			sb.WriteString(disambiguation(pos, m, pt))
		}
		if capture {
			sb.WriteByte('x')
		}
		sb.WriteString(to.String())
		if m.IsPromotion() {
			sb.WriteByte('=')
			sb.WriteByte("PNBRQK"[m.Promotion()])
		}
	}

	undo := pos.MakeMove(m)
	switch {
	case pos.IsCheckmate():
		sb.WriteByte('#')
	case pos.InCheck(pos.SideToMove):
		sb.WriteByte('+')
	}
	pos.UnmakeMove(undo)
	return sb.String()
}

// disambiguation returns the file, rank or square needed to tell m apart
// from other moves of the same piece type to the same square.
func disambiguation(pos *Position, m Move, pt PieceType) string {
	from := m.From()
	sameFile, sameRank, ambiguous := false, false, false
	for _, other := range pos.GenerateLegalMoves() {
		of := other.From()
		if other.To() != m.To() || of == from || pos.PieceAt(of).Type() != pt {
			continue
		}
		ambiguous = true
		sameFile = sameFile || of.File() == from.File()
		sameRank = sameRank || of.Rank() == from.Rank()
	}
	switch {
	case !ambiguous:
		return ""
	case !sameFile:
		return string(rune('a' + from.File()))
	case !sameRank:
		return string(rune('1' + from.Rank()))
	default:
		return from.String()
	}
}

// ParseSAN resolves a SAN string ("Nf3", "exd5", "O-O", "e8=Q+") against
// the legal moves of pos.
func ParseSAN(s string, pos *Position) (Move, error) {
	text := strings.TrimRight(strings.TrimSpace(s), "+#!?")
	moves := pos.GenerateLegalMoves()

	if text == "O-O" || text == "0-0" || text == "O-O-O" || text == "0-0-0" {
		toFile := 6
		if len(text) == 5 {
			toFile = 2
		}
		for _, m := range moves {
			if m.IsCastling() && m.To().File() == toFile {
				return m, nil
			}
		}
		return NoMove, fmt.Errorf("%w: %q", ErrIllegalMove, s)
	}

	promo := NoPieceType
	if i := strings.IndexByte(text, '='); i >= 0 && i+1 < len(text) {
		promo = pieceTypeFromLetter(text[i+1])
		text = text[:i]
	}
	capture := strings.Contains(text, "x")
	text = strings.ReplaceAll(text, "x", "")

	pt := Pawn
	if len(text) > 0 && text[0] >= 'A' && text[0] <= 'Z' {
		pt = pieceTypeFromLetter(text[0])
		text = text[1:]
	}
	if len(text) < 2 || pt == NoPieceType {
		return NoMove, fmt.Errorf("%w: %q", ErrIllegalMove, s)
	}
	dest, err := ParseSquare(text[len(text)-2:])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %q", ErrIllegalMove, s)
	}

	file, rank := -1, -1
	for _, c := range text[:len(text)-2] {
		switch {
		case c >= 'a' && c <= 'h':
			file = int(c - 'a')
		case c >= '1' && c <= '8':
			rank = int(c - '1')
		}
	}

	for _, m := range moves {
		from := m.From()
		if m.To() != dest || pos.PieceAt(from).Type() != pt {
			continue
		}
		if (file >= 0 && from.File() != file) || (rank >= 0 && from.Rank() != rank) {
			continue
		}
		if capture && !m.IsCapture(pos) {
			continue
		}
		if m.IsPromotion() != (promo != NoPieceType) || (promo != NoPieceType && m.Promotion() != promo) {
			continue
		}
		return m, nil
	}
	return NoMove, fmt.Errorf("%w: %q", ErrIllegalMove, s)
}

func pieceTypeFromLetter(c byte) PieceType {
	switch c {
	case 'N':
		return Knight
	case 'B':
		return Bishop
	case 'R':
		return Rook
	case 'Q':
		return Queen
	case 'K':
		return King
	default:
		return NoPieceType
	}
}
