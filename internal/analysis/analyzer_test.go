package analysis_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/hailam/chesslens/internal/analysis"
	"github.com/hailam/chesslens/internal/board"
	"github.com/hailam/chesslens/internal/rules"
)

var testFENs = []string{
	board.StartFEN,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"4k3/4r3/8/8/8/8/4N3/4K3 w - - 0 1",
	"4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 2",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"4k3/8/8/8/8/8/3N4/r3K3 w - - 0 1",
}

func newAnalyzer(t *testing.T) *analysis.Analyzer {
	t.Helper()
	a, err := analysis.New(analysis.Config{Rules: rules.NewBuiltin})
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func analyze(t *testing.T, fen string) *analysis.EnrichedBoard {
	t.Helper()
	res, err := newAnalyzer(t).Analyze(fen)
	if err != nil {
		t.Fatalf("Analyze(%q): %v", fen, err)
	}
	return res.Board
}

func sq(t *testing.T, s string) board.Square {
	t.Helper()
	square, err := board.ParseSquare(s)
	if err != nil {
		t.Fatal(err)
	}
	return square
}

func squares(t *testing.T, names ...string) []board.Square {
	t.Helper()
	out := []board.Square{}
	for _, n := range names {
		out = append(out, sq(t, n))
	}
	return out
}

func TestNewEnrichedBoard(t *testing.T) {
	b := analysis.NewEnrichedBoard()
	seen := map[string]bool{}
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			s := b[rank][file]
			name := string([]byte{byte('a' + file), byte('0' + 8 - rank)})
			if s.Square.String() != name {
				t.Errorf("[%d][%d] named %s, want %s", rank, file, s.Square, name)
			}
			if s.Rank != rank || s.File != file {
				t.Errorf("%s has indices (%d,%d), want (%d,%d)", name, s.Rank, s.File, rank, file)
			}
			if s.Piece != nil || s.Mobility.TotalMobility != 0 || len(s.Control.WhiteControllers) != 0 {
				t.Errorf("%s is not empty: %+v", name, s)
			}
			seen[name] = true
		}
	}
	if len(seen) != 64 {
		t.Errorf("got %d distinct squares, want 64", len(seen))
	}
	if got := b.At(sq(t, "e4")); got.Rank != 4 || got.File != 4 {
		t.Errorf("At(e4) = [%d][%d], want [4][4]", got.Rank, got.File)
	}
}

func TestBoardProperties(t *testing.T) {
	for _, fen := range testFENs {
		t.Run(fen, func(t *testing.T) {
			b := analyze(t, fen)
			names := map[string]bool{}
			b.Each(func(s *analysis.EnrichedSquare) {
				names[s.Square.String()] = true
				if b[s.Rank][s.File].Square != s.Square {
					t.Errorf("%s stored at wrong index", s.Square)
				}

				ctl := s.Control
				if want := len(ctl.WhiteControllers) > 0 && len(ctl.BlackControllers) > 0; ctl.IsContested != want {
					t.Errorf("%s: IsContested = %v, want %v", s.Square, ctl.IsContested, want)
				}
				if ctl.ControlBalance != ctl.WhiteStrength-ctl.BlackStrength {
					t.Errorf("%s: balance %d != %d - %d", s.Square, ctl.ControlBalance, ctl.WhiteStrength, ctl.BlackStrength)
				}
				switch {
				case ctl.ControlBalance > 0 && (ctl.DominantColor == nil || *ctl.DominantColor != board.White),
					ctl.ControlBalance < 0 && (ctl.DominantColor == nil || *ctl.DominantColor != board.Black),
					ctl.ControlBalance == 0 && ctl.DominantColor != nil:
					t.Errorf("%s: dominant %v with balance %d", s.Square, ctl.DominantColor, ctl.ControlBalance)
				}

				if s.Piece == nil {
					if diff := cmp.Diff(analysis.Mobility{
						Moves: []board.Square{}, Captures: []board.Square{}, Checks: []board.Square{},
					}, s.Mobility); diff != "" {
						t.Errorf("%s: empty square has mobility (-want +got):\n%s", s.Square, diff)
					}
					return
				}
				p := s.Piece
				if want := len(p.AttackedBy) > len(p.DefendedBy); p.IsHanging != want {
					t.Errorf("%s: IsHanging = %v with %d attackers, %d defenders", s.Square, p.IsHanging, len(p.AttackedBy), len(p.DefendedBy))
				}
				if s.Mobility.TotalMobility != len(s.Mobility.Moves) {
					t.Errorf("%s: TotalMobility %d, %d moves", s.Square, s.Mobility.TotalMobility, len(s.Mobility.Moves))
				}
			})
			if len(names) != 64 {
				t.Errorf("%d distinct squares, want 64", len(names))
			}
		})
	}
}

func TestStartPosition(t *testing.T) {
	b := analyze(t, board.StartFEN)

	b.Each(func(s *analysis.EnrichedSquare) {
		if s.Control.IsContested {
			t.Errorf("%s is contested", s.Square)
		}
		if s.Piece == nil {
			return
		}
		if s.Piece.IsHanging || s.Piece.IsPinned || len(s.Piece.Threats) != 0 {
			t.Errorf("%s: hanging=%v pinned=%v threats=%v", s.Square, s.Piece.IsHanging, s.Piece.IsPinned, s.Piece.Threats)
		}
		want := 0
		switch s.Piece.Type {
		case board.Knight, board.Pawn:
			want = 2
		}
		if s.Mobility.TotalMobility != want {
			t.Errorf("%s %v: mobility %d, want %d", s.Square, s.Piece.Type, s.Mobility.TotalMobility, want)
		}
	})

	white := board.White
	wantE2 := analysis.Control{
		WhiteControllers: squares(t, "d1", "e1", "f1", "g1"),
		BlackControllers: []board.Square{},
		WhiteStrength:    15,
		DominantColor:    &white,
		ControlBalance:   15,
	}
	if diff := cmp.Diff(wantE2, b.At(sq(t, "e2")).Control); diff != "" {
		t.Errorf("e2 control mismatch (-want +got):\n%s", diff)
	}

	a2 := b.At(sq(t, "a2"))
	if a2.Control.WhiteStrength != 5 || a2.Control.BlackStrength != 0 {
		t.Errorf("a2 strength = %d/%d, want 5/0", a2.Control.WhiteStrength, a2.Control.BlackStrength)
	}

	g8 := b.At(sq(t, "g8"))
	if diff := cmp.Diff(squares(t, "f6", "h6"), g8.Mobility.Moves); diff != "" {
		t.Errorf("g8 knight moves (-want +got):\n%s", diff)
	}
}

func TestExchangeOnBoard(t *testing.T) {
	b := analyze(t, "4k3/8/8/3q4/8/4n3/8/3RK3 w - - 0 1")
	queen := b.At(sq(t, "d5")).Piece
	if queen == nil || queen.Type != board.Queen {
		t.Fatalf("d5 = %+v, want the black queen", queen)
	}
	if diff := cmp.Diff(squares(t, "d1"), queen.AttackedBy); diff != "" {
		t.Errorf("attackers (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(squares(t, "e3"), queen.DefendedBy); diff != "" {
		t.Errorf("defenders (-want +got):\n%s", diff)
	}
	if queen.ExchangeValue != 7 {
		t.Errorf("ExchangeValue = %d, want 7", queen.ExchangeValue)
	}
}

func TestHangingPiece(t *testing.T) {
	b := analyze(t, "4k3/8/8/3p4/4N3/8/8/4K3 w - - 0 1")
	want := &analysis.PieceInfo{
		Type:          board.Knight,
		Color:         board.White,
		AttackedBy:    squares(t, "d5"),
		DefendedBy:    []board.Square{},
		ExchangeValue: 3,
		IsHanging:     true,
		Threats:       []analysis.Threat{analysis.ThreatHanging},
	}
	if diff := cmp.Diff(want, b.At(sq(t, "e4")).Piece); diff != "" {
		t.Errorf("e4 mismatch (-want +got):\n%s", diff)
	}
}

func TestPinnedPieceHasNoMoves(t *testing.T) {
	b := analyze(t, "4k3/4r3/8/8/8/8/4N3/4K3 w - - 0 1")
	knight := b.At(sq(t, "e2"))
	if !knight.Piece.IsPinned {
		t.Error("knight on e2 should be pinned")
	}
	if diff := cmp.Diff([]analysis.Threat{analysis.ThreatPinned}, knight.Piece.Threats); diff != "" {
		t.Errorf("threats (-want +got):\n%s", diff)
	}
	if knight.Mobility.TotalMobility != 0 {
		t.Errorf("pinned knight has %d moves", knight.Mobility.TotalMobility)
	}
	if b.At(sq(t, "e7")).Piece.IsPinned {
		t.Error("rook on e7 is not pinned")
	}
	if b.At(sq(t, "e1")).Piece.IsPinned {
		t.Error("a king is never pinned")
	}
}

func TestMobility(t *testing.T) {
	tests := []struct {
		name     string
		fen      string
		square   string
		moves    []string
		captures []string
		checks   []string
	}{
		{
			name:   "rook checks along the back rank",
			fen:    "4k3/8/8/8/8/8/8/R3K3 w - - 0 1",
			square: "a1",
			moves:  []string{"b1", "c1", "d1", "a2", "a3", "a4", "a5", "a6", "a7", "a8"},
			checks: []string{"a8"},
		},
		{
			name:   "checking rook never takes the king",
			fen:    "4k3/8/8/8/8/8/3N4/r3K3 w - - 0 1",
			square: "a1",
			moves:  []string{"b1", "c1", "d1", "a2", "a3", "a4", "a5", "a6", "a7", "a8"},
			checks: []string{"b1", "c1", "d1"},
		},
		{
			name:     "en passant counts as a capture",
			fen:      "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 2",
			square:   "e5",
			moves:    []string{"d6", "e6"},
			captures: []string{"d6"},
		},
		{
			name:   "side not on move",
			fen:    "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 2",
			square: "d5",
			moves:  []string{"d4"},
		},
		{
			name:   "promotions share one destination",
			fen:    "4k3/1P6/8/8/8/8/8/4K3 w - - 0 1",
			square: "b7",
			moves:  []string{"b8"},
			checks: []string{"b8"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := analyze(t, tc.fen)
			want := analysis.Mobility{
				Moves:         squares(t, tc.moves...),
				Captures:      squares(t, tc.captures...),
				Checks:        squares(t, tc.checks...),
				TotalMobility: len(tc.moves),
			}
			if diff := cmp.Diff(want, b.At(sq(t, tc.square)).Mobility); diff != "" {
				t.Errorf("mobility of %s (-want +got):\n%s", tc.square, diff)
			}
		})
	}
}

func TestAnalyzeInvalidFEN(t *testing.T) {
	_, err := newAnalyzer(t).Analyze("not a fen")
	var pe *board.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *board.ParseError", err)
	}
	if !errors.Is(err, board.ErrInvalidFEN) {
		t.Errorf("error does not match ErrInvalidFEN: %v", err)
	}
}

func TestAnalyzeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := newAnalyzer(t).AnalyzeContext(ctx, board.StartFEN); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestNewRequiresRules(t *testing.T) {
	if _, err := analysis.New(analysis.Config{}); err == nil {
		t.Error("New without a rules factory succeeded")
	}
}

func TestAnalyzeLogs(t *testing.T) {
	var buf bytes.Buffer
	a, err := analysis.New(analysis.Config{
		Rules:  rules.NewBuiltin,
		Logger: zerolog.New(&buf).Level(zerolog.DebugLevel),
	})
	if err != nil {
		t.Fatal(err)
	}
	res, err := a.Analyze("  " + board.StartFEN + "\n")
	if err != nil {
		t.Fatal(err)
	}
	if res.FEN != board.StartFEN {
		t.Errorf("FEN = %q, want trimmed input", res.FEN)
	}
	if out := buf.String(); !strings.Contains(out, `"message":"analyzed position"`) || !strings.Contains(out, `"pieces":32`) {
		t.Errorf("log output = %s", out)
	}
}

func TestEnrichLeavesRulesUnchanged(t *testing.T) {
	for _, fen := range testFENs {
		r, err := rules.NewBuiltin(fen)
		if err != nil {
			t.Fatal(err)
		}
		before := r.(*rules.Builtin).FEN()
		if _, err := analysis.Enrich(context.Background(), r); err != nil {
			t.Fatal(err)
		}
		if after := r.(*rules.Builtin).FEN(); after != before {
			t.Errorf("position changed: %s -> %s", before, after)
		}
	}
}
