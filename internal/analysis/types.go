// Package analysis computes a square-by-square tactical annotation of a
// chess position: attackers and defenders, static exchange values, hanging
// and pinned pieces, square control and legal-move mobility.
package analysis

import (
	"fmt"
	"time"

	"github.com/hailam/chesslens/internal/board"
)

// Threat tags a tactical property of a piece.
type Threat string

const (
	ThreatPinned  Threat = "pinned"
	ThreatHanging Threat = "hanging"

	// Reserved; never produced by the classifier yet.
	ThreatFork   Threat = "fork"
	ThreatSkewer Threat = "skewer"
)

// PieceInfo describes the piece on a square and its tactical state.
type PieceInfo struct {
	Type          board.PieceType `json:"type"`
	Color         board.Color     `json:"color"`
	AttackedBy    []board.Square  `json:"attackedBy"`
	DefendedBy    []board.Square  `json:"defendedBy"`
	ExchangeValue int             `json:"exchangeValue"`
	IsHanging     bool            `json:"isHanging"`
	IsPinned      bool            `json:"isPinned"`
	Threats       []Threat        `json:"threats"`
}

// Control summarises which pieces of each side cover a square.
type Control struct {
	WhiteControllers []board.Square `json:"whiteControllers"`
	BlackControllers []board.Square `json:"blackControllers"`
	WhiteStrength    int            `json:"whiteStrength"`
	BlackStrength    int            `json:"blackStrength"`
	// DominantColor is nil when neither side is stronger.
	DominantColor  *board.Color `json:"dominantColor"`
	ControlBalance int          `json:"controlBalance"`
	IsContested    bool         `json:"isContested"`
}

// Mobility lists the legal destinations of the piece on a square.
type Mobility struct {
	Moves         []board.Square `json:"moves"`
	Captures      []board.Square `json:"captures"`
	Checks        []board.Square `json:"checks"`
	TotalMobility int            `json:"totalMobility"`
}

// EnrichedSquare is one cell of the annotation grid.
type EnrichedSquare struct {
	Square board.Square `json:"square"`
	Rank   int          `json:"rank"`
	File   int          `json:"file"`

	// Piece is nil iff the square is empty.
	Piece    *PieceInfo `json:"piece,omitempty"`
	Control  Control    `json:"control"`
	Mobility Mobility   `json:"mobility"`
}

// EnrichedBoard is indexed [rank][file] with rank 0 holding the 8th rank
// and file 0 the a-file.
type EnrichedBoard [8][8]EnrichedSquare

// NewEnrichedBoard returns a fully populated grid with every square named
// and every field at its empty value.
func NewEnrichedBoard() *EnrichedBoard {
	var b EnrichedBoard
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			b[rank][file] = EnrichedSquare{
				Square: board.NewSquare(file, 7-rank),
				Rank:   rank,
				File:   file,
				Control: Control{
					WhiteControllers: []board.Square{},
					BlackControllers: []board.Square{},
				},
				Mobility: Mobility{
					Moves:    []board.Square{},
					Captures: []board.Square{},
					Checks:   []board.Square{},
				},
			}
		}
	}
	return &b
}

// At returns the cell for sq. It panics if sq is off the board.
func (b *EnrichedBoard) At(sq board.Square) *EnrichedSquare {
	if !sq.IsValid() {
		panic(fmt.Sprintf("analysis: square %d outside the board", sq))
	}
	return &b[7-sq.Rank()][sq.File()]
}

// Each calls fn for all 64 squares, rank 8 first.
func (b *EnrichedBoard) Each(fn func(*EnrichedSquare)) {
	for rank := range b {
		for file := range b[rank] {
			fn(&b[rank][file])
		}
	}
}

// Pieces returns the occupied squares, rank 8 first.
func (b *EnrichedBoard) Pieces() []*EnrichedSquare {
	var out []*EnrichedSquare
	b.Each(func(s *EnrichedSquare) {
		if s.Piece != nil {
			out = append(out, s)
		}
	})
	return out
}

// Result is the output of one analysis run.
type Result struct {
	FEN      string         `json:"fen"`
	Board    *EnrichedBoard `json:"board"`
	Duration time.Duration  `json:"durationNs"`
}
