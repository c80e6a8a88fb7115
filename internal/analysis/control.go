package analysis

import "github.com/hailam/chesslens/internal/board"

// aggregateControl fills Control for all 64 squares, occupied or not.
func aggregateControl(b *EnrichedBoard, r Rules) {
	b.Each(func(s *EnrichedSquare) {
		ctl := &s.Control
		ctl.WhiteControllers = append(ctl.WhiteControllers[:0], r.Attackers(s.Square, board.White)...)
		ctl.BlackControllers = append(ctl.BlackControllers[:0], r.Attackers(s.Square, board.Black)...)
		ctl.WhiteStrength = strength(r, ctl.WhiteControllers)
		ctl.BlackStrength = strength(r, ctl.BlackControllers)
		ctl.ControlBalance = ctl.WhiteStrength - ctl.BlackStrength
		ctl.IsContested = len(ctl.WhiteControllers) > 0 && len(ctl.BlackControllers) > 0

		ctl.DominantColor = nil
		switch {
		case ctl.ControlBalance > 0:
			ctl.DominantColor = colorPtr(board.White)
		case ctl.ControlBalance < 0:
			ctl.DominantColor = colorPtr(board.Black)
		}
	})
}

func colorPtr(c board.Color) *board.Color {
	return &c
}
