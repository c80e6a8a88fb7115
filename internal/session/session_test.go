package session

import (
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/hailam/chesslens/internal/analysis"
	"github.com/hailam/chesslens/internal/board"
	"github.com/hailam/chesslens/internal/overlay"
	"github.com/hailam/chesslens/internal/rules"
)

func newSession(t *testing.T, prefs overlay.Preferences) *Session {
	t.Helper()
	a, err := analysis.New(analysis.Config{Rules: rules.NewBuiltin})
	if err != nil {
		t.Fatal(err)
	}
	s := New(a, prefs, zerolog.Nop())
	t.Cleanup(s.Wait)
	return s
}

func sq(t *testing.T, s string) board.Square {
	t.Helper()
	square, err := board.ParseSquare(s)
	if err != nil {
		t.Fatal(err)
	}
	return square
}

func TestSessionStartsAnalyzed(t *testing.T) {
	s := newSession(t, overlay.Preferences{})
	s.Wait()
	snap := s.Snapshot()
	if snap.FEN != board.StartFEN {
		t.Errorf("FEN = %q", snap.FEN)
	}
	if snap.Result == nil || snap.Err != nil {
		t.Fatalf("result %v err %v", snap.Result, snap.Err)
	}
	if snap.Selected != board.NoSquare {
		t.Errorf("selected = %v, want none", snap.Selected)
	}
}

func TestDrop(t *testing.T) {
	s := newSession(t, overlay.Preferences{})
	m, err := s.Drop(sq(t, "e2"), sq(t, "e4"))
	if err != nil {
		t.Fatal(err)
	}
	s.Wait()
	snap := s.Snapshot()
	if want := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"; snap.FEN != want {
		t.Errorf("FEN = %q, want %q", snap.FEN, want)
	}
	if snap.LastMove != m || snap.Selected != sq(t, "e4") {
		t.Errorf("last move %v selected %v", snap.LastMove, snap.Selected)
	}
	if snap.Result == nil || snap.Result.FEN != snap.FEN {
		t.Errorf("result not for the current position: %+v", snap.Result)
	}
	if got := s.History(); got != "e4" {
		t.Errorf("History() = %q", got)
	}

	if _, err := s.Drop(sq(t, "e4"), sq(t, "e6")); !errors.Is(err, board.ErrIllegalMove) {
		t.Errorf("Drop(e4e6) error = %v, want ErrIllegalMove", err)
	}
	if _, err := s.Drop(sq(t, "d4"), sq(t, "d5")); !errors.Is(err, ErrNoPiece) {
		t.Errorf("Drop from empty square error = %v, want ErrNoPiece", err)
	}
}

func TestDropPromotesToQueen(t *testing.T) {
	s := newSession(t, overlay.Preferences{})
	if err := s.Load("4k3/1P6/8/8/8/8/8/4K3 w - - 0 1"); err != nil {
		t.Fatal(err)
	}
	m, err := s.Drop(sq(t, "b7"), sq(t, "b8"))
	if err != nil {
		t.Fatal(err)
	}
	if !m.IsPromotion() || m.Promotion() != board.Queen {
		t.Errorf("move = %v, want b7b8q", m)
	}
	if got := s.History(); got != "b8=Q+" {
		t.Errorf("History() = %q", got)
	}
}

func TestDropKingOnRookCastles(t *testing.T) {
	s := newSession(t, overlay.Preferences{})
	if err := s.Load("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"); err != nil {
		t.Fatal(err)
	}
	m, err := s.Drop(sq(t, "e1"), sq(t, "h1"))
	if err != nil {
		t.Fatal(err)
	}
	if !m.IsCastling() || m.To() != sq(t, "g1") {
		t.Errorf("move = %v, want castling to g1", m)
	}
}

func TestMoveNotations(t *testing.T) {
	s := newSession(t, overlay.Preferences{})
	for _, text := range []string{"e2e4", "e5", "Nf3", "b8c6"} {
		if _, err := s.Move(text); err != nil {
			t.Fatalf("Move(%q): %v", text, err)
		}
	}
	if got := s.History(); got != "e4 e5 Nf3 Nc6" {
		t.Errorf("History() = %q", got)
	}
	if _, err := s.Move("Qh5"); !errors.Is(err, board.ErrIllegalMove) {
		t.Errorf("Move(Qh5) error = %v, want ErrIllegalMove", err)
	}
}

func TestLoadRejectsBadFEN(t *testing.T) {
	s := newSession(t, overlay.Preferences{})
	if err := s.Load("8/8/8 w - -"); !errors.Is(err, board.ErrInvalidFEN) {
		t.Errorf("Load error = %v, want ErrInvalidFEN", err)
	}
	if s.Snapshot().FEN != board.StartFEN {
		t.Error("failed load replaced the position")
	}
}

func TestLatestResultWins(t *testing.T) {
	s := newSession(t, overlay.Preferences{})
	for _, text := range []string{"d4", "d5", "c4", "e6", "Nc3", "Nf6"} {
		if _, err := s.Move(text); err != nil {
			t.Fatal(err)
		}
	}
	s.Wait()
	snap := s.Snapshot()
	if snap.Result == nil {
		t.Fatal("no result after Wait")
	}
	if snap.Result.FEN != snap.FEN {
		t.Errorf("kept result for %q, current position is %q", snap.Result.FEN, snap.FEN)
	}
}

// Readers wait on analysis while other goroutines keep starting new
// requests; every reader sees a result for some position and the session
// ends on the analysis of its final position.
func TestConcurrentOverlayAndRefresh(t *testing.T) {
	s := newSession(t, overlay.Preferences{ShowAttackers: true})
	fens := []string{
		board.StartFEN,
		"4k3/8/8/3q4/8/4n3/8/3RK3 w - - 0 1",
		"4k3/8/8/8/8/8/3N4/r3K3 w - - 0 1",
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		i := i
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				if err := s.Load(fens[(i+j)%len(fens)]); err != nil {
					t.Error(err)
					return
				}
			}
		}()
		go func() {
			defer wg.Done()
			for i := 0; i < 5; i++ {
				if _, err := s.Overlay(); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()

	s.Wait()
	snap := s.Snapshot()
	if snap.Result == nil || snap.Result.FEN != snap.FEN {
		t.Errorf("final result does not belong to %q", snap.FEN)
	}
}

func TestOverlayFollowsSelectionAndToggles(t *testing.T) {
	s := newSession(t, overlay.Preferences{ShowDefenders: true})
	s.Select(sq(t, "e2"))
	o, err := s.Overlay()
	if err != nil {
		t.Fatal(err)
	}
	if len(o.Arrows) != 4 {
		t.Errorf("e2 defender arrows = %d, want 4", len(o.Arrows))
	}
	if o.Card == nil || o.Card.Square != sq(t, "e2") {
		t.Errorf("card = %+v", o.Card)
	}

	if err := s.Toggle("defenders"); err != nil {
		t.Fatal(err)
	}
	if err := s.Toggle("mobility"); err != nil {
		t.Fatal(err)
	}
	o, err = s.Overlay()
	if err != nil {
		t.Fatal(err)
	}
	if len(o.Arrows) != 0 || len(o.Styles) != 2 {
		t.Errorf("arrows %v styles %v, want none and the two pawn pushes", o.Arrows, o.Styles)
	}
	if err := s.Toggle("nope"); !errors.Is(err, overlay.ErrUnknownToggle) {
		t.Errorf("Toggle(nope) error = %v", err)
	}
}
