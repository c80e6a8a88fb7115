package analysis

import "github.com/hailam/chesslens/internal/board"

// resolveAttacks fills PieceInfo for every occupied square: attackers,
// defenders, exchange value, hanging and pinned flags and threat tags.
func resolveAttacks(b *EnrichedBoard, r Rules) {
	b.Each(func(s *EnrichedSquare) {
		piece := r.PieceAt(s.Square)
		if piece == board.NoPiece {
			return
		}
		c := piece.Color()
		info := &PieceInfo{
			Type:       piece.Type(),
			Color:      c,
			AttackedBy: append([]board.Square{}, r.Attackers(s.Square, c.Other())...),
			DefendedBy: append([]board.Square{}, r.Attackers(s.Square, c)...),
		}
		info.ExchangeValue = ExchangeValue(
			PieceValue(info.Type),
			valuesOf(r, info.AttackedBy),
			valuesOf(r, info.DefendedBy),
		)
		info.IsHanging = len(info.AttackedBy) > len(info.DefendedBy)
		info.IsPinned = IsPinned(r, s.Square)
		info.Threats = classifyThreats(info)
		s.Piece = info
	})
}
