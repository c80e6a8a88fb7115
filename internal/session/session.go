// Package session keeps an interactive analysis session: the current
// position, the selected square, overlay preferences and the latest
// analysis result. Each change re-analyzes in the background; only the
// result of the most recent request is kept.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/hailam/chesslens/internal/analysis"
	"github.com/hailam/chesslens/internal/board"
	"github.com/hailam/chesslens/internal/overlay"
)

// ErrNoPiece is returned when selecting or moving from an empty square.
var ErrNoPiece = errors.New("no piece on square")

// Session is safe for concurrent use.
type Session struct {
	analyzer *analysis.Analyzer
	log      zerolog.Logger

	mu       sync.Mutex
	pos      *board.Position
	moves    []string
	selected board.Square
	lastMove board.Move
	prefs    overlay.Preferences

	generation uint64
	cancel     context.CancelFunc
	result     *analysis.Result
	err        error
	// done is closed when the latest request finishes.
	done chan struct{}
}

// New starts a session on the standard starting position.
func New(a *analysis.Analyzer, prefs overlay.Preferences, log zerolog.Logger) *Session {
	s := &Session{
		analyzer: a,
		log:      log,
		pos:      board.NewPosition(),
		selected: board.NoSquare,
		prefs:    prefs,
	}
	s.mu.Lock()
	s.refreshLocked()
	s.mu.Unlock()
	return s
}

// Load replaces the position with fen and clears selection and history.
func (s *Session) Load(fen string) error {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pos = pos
	s.moves = nil
	s.selected = board.NoSquare
	s.lastMove = board.NoMove
	s.refreshLocked()
	return nil
}

// Select marks sq as the square the overlay describes. Any square may be
// selected, empty or not.
func (s *Session) Select(sq board.Square) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = sq
}

// Drop moves the piece on from to to for the side on move. Promotions
// become queens and dropping the king on its own rook castles.
func (s *Session) Drop(from, to board.Square) (board.Move, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	piece := s.pos.PieceAt(from)
	if piece == board.NoPiece {
		return board.NoMove, fmt.Errorf("%w: %v", ErrNoPiece, from)
	}
	m := findMove(s.pos.GenerateLegalMoves(), from, to)
	if m == board.NoMove {
		return board.NoMove, fmt.Errorf("%w: %v%v", board.ErrIllegalMove, from, to)
	}
	s.playLocked(m)
	return m, nil
}

// Move plays a move given in UCI ("e2e4") or SAN ("Nf3") notation.
func (s *Session) Move(text string) (board.Move, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := board.ParseMove(text, s.pos)
	if err != nil {
		m, err = board.ParseSAN(text, s.pos)
	}
	if err != nil {
		return board.NoMove, err
	}
	s.playLocked(m)
	return m, nil
}

func (s *Session) playLocked(m board.Move) {
	s.moves = append(s.moves, m.ToSAN(s.pos))
	s.pos.MakeMove(m)
	s.lastMove = m
	s.selected = m.To()
	s.log.Debug().Str("move", m.String()).Str("fen", s.pos.ToFEN()).Msg("played move")
	s.refreshLocked()
}

// findMove picks the legal move from src to dst, preferring the queen for
// promotions and accepting king-takes-own-rook as castling.
func findMove(moves []board.Move, src, dst board.Square) board.Move {
	for _, m := range moves {
		if m.From() != src {
			continue
		}
		if m.To() == dst && (!m.IsPromotion() || m.Promotion() == board.Queen) {
			return m
		}
		if m.IsCastling() {
			rank := src.Rank()
			if (m.To().File() == 6 && dst == board.NewSquare(7, rank)) ||
				(m.To().File() == 2 && dst == board.NewSquare(0, rank)) {
				return m
			}
		}
	}
	return board.NoMove
}

// Toggle flips the named overlay preference.
func (s *Session) Toggle(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs.Toggle(name)
}

// refreshLocked starts analysis of the current position, superseding any
// request still running.
func (s *Session) refreshLocked() {
	if s.cancel != nil {
		s.cancel()
	}
	s.generation++
	gen := s.generation
	fen := s.pos.ToFEN()
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	done := make(chan struct{})
	s.done = done
	go func() {
		defer close(done)
		defer cancel()
		res, err := s.analyzer.AnalyzeContext(ctx, fen)

		s.mu.Lock()
		defer s.mu.Unlock()
		if gen != s.generation {
			s.log.Debug().Uint64("generation", gen).Msg("discarded stale analysis")
			return
		}
		s.result, s.err = res, err
		if err != nil {
			s.log.Error().Err(err).Str("fen", fen).Msg("analysis failed")
		}
	}()
}

// Wait blocks until the latest analysis request has finished. A request
// started while waiting is waited for too. Superseded requests may still be
// unwinding after their cancellation when Wait returns.
func (s *Session) Wait() {
	for {
		s.mu.Lock()
		done := s.done
		s.mu.Unlock()
		<-done
		s.mu.Lock()
		latest := s.done == done
		s.mu.Unlock()
		if latest {
			return
		}
	}
}

// Snapshot is a consistent view of the session.
type Snapshot struct {
	FEN      string
	Moves    []string
	Selected board.Square
	LastMove board.Move
	Prefs    overlay.Preferences
	// Result is nil until the analysis of FEN has finished.
	Result *analysis.Result
	Err    error
}

// Snapshot returns the current state. Result belongs to the current
// position or is nil.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		FEN:      s.pos.ToFEN(),
		Moves:    append([]string(nil), s.moves...),
		Selected: s.selected,
		LastMove: s.lastMove,
		Prefs:    s.prefs,
		Err:      s.err,
	}
	if s.result != nil && s.result.FEN == snap.FEN {
		snap.Result = s.result
	}
	return snap
}

// Overlay builds the overlay for the current selection from the latest
// result, waiting for a pending analysis first.
func (s *Session) Overlay() (overlay.Overlay, error) {
	s.Wait()
	snap := s.Snapshot()
	if snap.Err != nil {
		return overlay.Overlay{}, snap.Err
	}
	var b *analysis.EnrichedBoard
	if snap.Result != nil {
		b = snap.Result.Board
	}
	return overlay.Build(b, snap.Prefs, snap.Selected, snap.LastMove), nil
}

// Position returns a copy of the current position.
func (s *Session) Position() *board.Position {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos.Copy()
}

// History returns the moves played since the last Load, in SAN.
func (s *Session) History() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return strings.Join(s.moves, " ")
}
