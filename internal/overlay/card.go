package overlay

import (
	"fmt"
	"strings"

	"github.com/hailam/chesslens/internal/analysis"
	"github.com/hailam/chesslens/internal/board"
)

// InfoCard summarises one square for an info panel.
type InfoCard struct {
	Square   board.Square        `json:"square"`
	Piece    *analysis.PieceInfo `json:"piece,omitempty"`
	Control  analysis.Control    `json:"control"`
	Mobility int                 `json:"mobility"`
}

// NewInfoCard builds the card for s.
func NewInfoCard(s *analysis.EnrichedSquare) *InfoCard {
	return &InfoCard{
		Square:   s.Square,
		Piece:    s.Piece,
		Control:  s.Control,
		Mobility: s.Mobility.TotalMobility,
	}
}

// String renders the card as plain text, one fact per line.
func (c *InfoCard) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "square    %s\n", c.Square)
	if p := c.Piece; p != nil {
		fmt.Fprintf(&sb, "piece     %s %s\n", p.Color, p.Type)
		fmt.Fprintf(&sb, "attackers %s\n", squareList(p.AttackedBy))
		fmt.Fprintf(&sb, "defenders %s\n", squareList(p.DefendedBy))
		fmt.Fprintf(&sb, "exchange  %+d\n", p.ExchangeValue)
		fmt.Fprintf(&sb, "hanging   %t\n", p.IsHanging)
		fmt.Fprintf(&sb, "pinned    %t\n", p.IsPinned)
		if len(p.Threats) > 0 {
			threats := make([]string, len(p.Threats))
			for i, t := range p.Threats {
				threats[i] = string(t)
			}
			fmt.Fprintf(&sb, "threats   %s\n", strings.Join(threats, ", "))
		}
	} else {
		sb.WriteString("piece     none\n")
	}

	dominant := "none"
	if c.Control.DominantColor != nil {
		dominant = c.Control.DominantColor.String()
	}
	fmt.Fprintf(&sb, "control   white %d, black %d, balance %+d, dominant %s",
		c.Control.WhiteStrength, c.Control.BlackStrength, c.Control.ControlBalance, dominant)
	if c.Control.IsContested {
		sb.WriteString(", contested")
	}
	sb.WriteByte('\n')
	fmt.Fprintf(&sb, "mobility  %d\n", c.Mobility)
	return sb.String()
}

func squareList(squares []board.Square) string {
	if len(squares) == 0 {
		return "-"
	}
	names := make([]string, len(squares))
	for i, sq := range squares {
		names[i] = sq.String()
	}
	return strings.Join(names, " ")
}
