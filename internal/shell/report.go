package shell

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/hailam/chesslens/internal/analysis"
	"github.com/hailam/chesslens/internal/board"
	"github.com/hailam/chesslens/internal/overlay"
)

// WriteSummary prints one line per piece: attackers, defenders, exchange
// value, flags and mobility.
func WriteSummary(w io.Writer, res *analysis.Result) {
	fmt.Fprintf(w, "%s  (%v)\n", res.FEN, res.Duration.Round(time.Microsecond))
	for _, s := range res.Board.Pieces() {
		p := s.Piece
		flags := "-"
		if len(p.Threats) > 0 {
			names := make([]string, len(p.Threats))
			for i, t := range p.Threats {
				names[i] = string(t)
			}
			flags = strings.Join(names, ",")
		}
		fmt.Fprintf(w, "%s %s  atk %d  def %d  see %+d  mob %d  %s\n",
			s.Square, pieceLetter(p), len(p.AttackedBy), len(p.DefendedBy),
			p.ExchangeValue, s.Mobility.TotalMobility, flags)
	}
}

func pieceLetter(p *analysis.PieceInfo) string {
	return board.NewPiece(p.Type, p.Color).String()
}

// WriteControlMap draws the control balance of every square, rank 8 on
// top: '+' white dominates, '-' black dominates, '=' contested and even.
func WriteControlMap(w io.Writer, b *analysis.EnrichedBoard) {
	for rank := range b {
		fmt.Fprintf(w, "%d ", 8-rank)
		for file := range b[rank] {
			ctl := b[rank][file].Control
			c := " ."
			switch {
			case ctl.ControlBalance > 0:
				c = " +"
			case ctl.ControlBalance < 0:
				c = " -"
			case ctl.IsContested:
				c = " ="
			}
			io.WriteString(w, c)
		}
		io.WriteString(w, "\n")
	}
	io.WriteString(w, "   a b c d e f g h\n")
}

// WriteOverlay prints the arrows, styles and card of o.
func WriteOverlay(w io.Writer, o overlay.Overlay) {
	fmt.Fprintf(w, "overlays: %s\n", o.Prefs)
	for _, a := range o.Arrows {
		fmt.Fprintf(w, "arrow %-6s %s -> %s  %s\n", a.Color, a.From, a.To, a.ID)
	}
	for _, s := range o.Styles {
		fmt.Fprintf(w, "style %-9s %s\n", s.Kind, s.Square)
	}
	if o.Card != nil {
		io.WriteString(w, o.Card.String())
	}
}

// WriteJSON encodes v indented.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
