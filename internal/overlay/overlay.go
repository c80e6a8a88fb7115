package overlay

import (
	"fmt"

	"github.com/hailam/chesslens/internal/analysis"
	"github.com/hailam/chesslens/internal/board"
)

// ArrowColor names the colour of an arrow.
type ArrowColor string

const (
	Red    ArrowColor = "red"
	Green  ArrowColor = "green"
	Yellow ArrowColor = "yellow"
	Purple ArrowColor = "purple"
)

// Arrow points from a piece to the square it attacks, defends or controls.
type Arrow struct {
	ID    string       `json:"id"`
	From  board.Square `json:"from"`
	To    board.Square `json:"to"`
	Color ArrowColor   `json:"color"`
}

// StyleKind tags why a square is highlighted.
type StyleKind string

const (
	StyleMobility StyleKind = "MOBILITY"
	StyleLastMove StyleKind = "LAST_MOVE"
)

// SquareStyle highlights one square.
type SquareStyle struct {
	Square     board.Square `json:"square"`
	Kind       StyleKind    `json:"kind"`
	Background string       `json:"background"`
}

var backgrounds = map[StyleKind]string{
	StyleMobility: "rgb(96, 149, 247)",
	StyleLastMove: "rgba(255, 255, 0, 0.4)",
}

// Overlay is everything a board widget needs to decorate one position.
type Overlay struct {
	Arrows []Arrow       `json:"arrows"`
	Styles []SquareStyle `json:"styles"`
	Card   *InfoCard     `json:"card,omitempty"`
	Prefs  Preferences   `json:"preferences"`
}

// Build derives the overlay for the selected square. selected may be
// board.NoSquare and lastMove board.NoMove.
func Build(b *analysis.EnrichedBoard, prefs Preferences, selected board.Square, lastMove board.Move) Overlay {
	o := Overlay{Arrows: []Arrow{}, Styles: []SquareStyle{}, Prefs: prefs}

	if lastMove != board.NoMove {
		o.Styles = append(o.Styles,
			style(lastMove.From(), StyleLastMove),
			style(lastMove.To(), StyleLastMove),
		)
	}
	if b == nil || !selected.IsValid() {
		return o
	}

	s := b.At(selected)
	if p := s.Piece; p != nil {
		if prefs.ShowAttackers {
			o.Arrows = appendArrows(o.Arrows, "PIECE_ATK", p.AttackedBy, s.Square, Red)
		}
		if prefs.ShowDefenders {
			o.Arrows = appendArrows(o.Arrows, "PIECE_DEF", p.DefendedBy, s.Square, Green)
		}
	}
	if prefs.ShowWhiteControl {
		o.Arrows = appendArrows(o.Arrows, "WHITE_CTRL", s.Control.WhiteControllers, s.Square, Yellow)
	}
	if prefs.ShowBlackControl {
		o.Arrows = appendArrows(o.Arrows, "BLACK_CTRL", s.Control.BlackControllers, s.Square, Purple)
	}

	if prefs.ShowMobility {
		// Captures and checks are subsets of Moves.
		last := map[board.Square]bool{}
		if lastMove != board.NoMove {
			last[lastMove.From()], last[lastMove.To()] = true, true
		}
		for _, to := range s.Mobility.Moves {
			if last[to] {
				o.Styles = removeStyle(o.Styles, to)
			}
			o.Styles = append(o.Styles, style(to, StyleMobility))
		}
	}

	o.Card = NewInfoCard(s)
	return o
}

func appendArrows(arrows []Arrow, prefix string, from []board.Square, to board.Square, c ArrowColor) []Arrow {
	for i, sq := range from {
		arrows = append(arrows, Arrow{
			ID:    fmt.Sprintf("%s_%s_%s_%d", prefix, sq, to, i),
			From:  sq,
			To:    to,
			Color: c,
		})
	}
	return arrows
}

func style(sq board.Square, kind StyleKind) SquareStyle {
	return SquareStyle{Square: sq, Kind: kind, Background: backgrounds[kind]}
}

func removeStyle(styles []SquareStyle, sq board.Square) []SquareStyle {
	out := styles[:0]
	for _, s := range styles {
		if s.Square != sq {
			out = append(out, s)
		}
	}
	return out
}
