// Command chesslens prints a tactical annotation of a chess position:
// attackers, defenders, exchange values, pins, square control and
// mobility for every square.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/hailam/chesslens/internal/analysis"
	"github.com/hailam/chesslens/internal/config"
	"github.com/hailam/chesslens/internal/rules"
	"github.com/hailam/chesslens/internal/session"
	"github.com/hailam/chesslens/internal/shell"
)

func main() {
	err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
	case errors.Is(err, config.ErrInvalidConfig):
		fmt.Fprintln(os.Stderr, "chesslens:", err)
		os.Exit(2)
	default:
		fmt.Fprintln(os.Stderr, "chesslens:", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := config.Parse(args, os.Getenv, stderr)
	if err != nil {
		return err
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.Kitchen}).
		Level(cfg.LogLevel).
		With().Timestamp().Logger()

	factory, err := rules.ByName(cfg.Engine)
	if err != nil {
		return err
	}
	analyzer, err := analysis.New(analysis.Config{Rules: factory, Logger: log})
	if err != nil {
		return err
	}
	log.Debug().Str("engine", cfg.Engine).Str("overlays", cfg.Prefs.String()).Msg("starting")

	s := session.New(analyzer, cfg.Prefs, log)
	defer s.Wait()
	if err := s.Load(cfg.FEN); err != nil {
		return err
	}
	for _, m := range cfg.Moves {
		if _, err := s.Move(m); err != nil {
			return err
		}
	}
	if cfg.Square.IsValid() {
		s.Select(cfg.Square)
	}

	if cfg.Interactive {
		return shell.New(s, stdout, log).Run(stdin)
	}
	return report(stdout, s, cfg)
}

func report(w io.Writer, s *session.Session, cfg *config.Config) error {
	o, err := s.Overlay()
	if err != nil {
		return err
	}
	snap := s.Snapshot()

	if cfg.Format == config.FormatJSON {
		if cfg.Square.IsValid() {
			return shell.WriteJSON(w, o)
		}
		return shell.WriteJSON(w, snap.Result)
	}

	fmt.Fprint(w, s.Position().String())
	if h := s.History(); h != "" {
		fmt.Fprintf(w, "moves: %s\n", h)
	}
	fmt.Fprintln(w)
	if cfg.Square.IsValid() {
		shell.WriteOverlay(w, o)
		return nil
	}
	shell.WriteSummary(w, snap.Result)
	fmt.Fprintln(w)
	shell.WriteControlMap(w, snap.Result.Board)
	return nil
}
