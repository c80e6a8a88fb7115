package analysis

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config configures an Analyzer.
type Config struct {
	Rules  Factory
	Logger zerolog.Logger
}

// Analyzer turns FEN strings into enriched boards. It keeps no state
// between calls and is safe for concurrent use.
type Analyzer struct {
	rules Factory
	log   zerolog.Logger
}

// New creates an Analyzer. A zero Logger discards output.
func New(cfg Config) (*Analyzer, error) {
	if cfg.Rules == nil {
		return nil, errors.New("analysis: rules factory required")
	}
	return &Analyzer{rules: cfg.Rules, log: cfg.Logger}, nil
}

// Analyze annotates the position described by fen. FEN errors from the
// rules engine are returned unchanged.
func (a *Analyzer) Analyze(fen string) (*Result, error) {
	return a.AnalyzeContext(context.Background(), fen)
}

// AnalyzeContext is Analyze with cancellation checked between passes.
func (a *Analyzer) AnalyzeContext(ctx context.Context, fen string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	fen = strings.TrimSpace(fen)

	r, err := a.rules(fen)
	if err != nil {
		a.log.Debug().Err(err).Str("fen", fen).Msg("rejected position")
		return nil, err
	}

	b, err := Enrich(ctx, r)
	if err != nil {
		return nil, err
	}

	res := &Result{FEN: fen, Board: b, Duration: time.Since(start)}
	a.log.Debug().
		Str("fen", fen).
		Int("pieces", len(b.Pieces())).
		Dur("took", res.Duration).
		Msg("analyzed position")
	return res, nil
}

// Enrich runs every pass over r and returns the finished grid. r is left
// as it was found.
func Enrich(ctx context.Context, r Rules) (*EnrichedBoard, error) {
	b := NewEnrichedBoard()

	resolveAttacks(b, r)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	aggregateControl(b, r)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := extractMobility(b, r); err != nil {
		return nil, err
	}
	return b, nil
}
