package analysis

import (
	"fmt"

	"github.com/hailam/chesslens/internal/board"
)

// extractMobility fills Mobility for every occupied square from the fully
// legal moves of its piece. Several promotions to one square count as a
// single destination.
func extractMobility(b *EnrichedBoard, r Rules) error {
	var err error
	b.Each(func(s *EnrichedSquare) {
		if err != nil {
			return
		}
		piece := r.PieceAt(s.Square)
		if piece == board.NoPiece {
			return
		}
		opponent := piece.Color().Other()

		var moves, captures, checks board.Bitboard
		for _, m := range r.LegalMoves(s.Square) {
			to := board.SquareBB(m.To())
			moves |= to
			if r.IsCapture(m) {
				captures |= to
			}
			if applyErr := r.ApplyMove(m); applyErr != nil {
				err = fmt.Errorf("apply %v from %v: %w", m, s.Square, applyErr)
				return
			}
			if r.InCheck(opponent) {
				checks |= to
			}
			r.UndoMove()
		}

		s.Mobility = Mobility{
			Moves:         moves.Squares(),
			Captures:      captures.Squares(),
			Checks:        checks.Squares(),
			TotalMobility: moves.PopCount(),
		}
	})
	return err
}
