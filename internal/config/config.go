// Package config reads the chesslens command line and environment.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hailam/chesslens/internal/board"
	"github.com/hailam/chesslens/internal/overlay"
	"github.com/hailam/chesslens/internal/rules"
)

// ErrInvalidConfig wraps every flag or environment error.
var ErrInvalidConfig = errors.New("invalid configuration")

// Environment variables that override the flag defaults.
const (
	EnvEngine   = "CHESSLENS_ENGINE"
	EnvLogLevel = "CHESSLENS_LOG_LEVEL"
	EnvFormat   = "CHESSLENS_FORMAT"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config is the validated command line.
type Config struct {
	FEN         string
	Moves       []string
	Square      board.Square
	Format      string
	Engine      string
	Prefs       overlay.Preferences
	LogLevel    zerolog.Level
	Interactive bool
}

// Parse reads args (without the program name). getenv supplies the
// environment, usually os.Getenv. Flags given explicitly win over the
// environment.
func Parse(args []string, getenv func(string) string, usage io.Writer) (*Config, error) {
	fs := flag.NewFlagSet("chesslens", flag.ContinueOnError)
	fs.SetOutput(usage)

	fen := fs.String("fen", board.StartFEN, "position to analyze")
	moves := fs.String("moves", "", "moves to play from the position first, space separated, UCI or SAN")
	square := fs.String("square", "", "square to describe, e.g. e4")
	format := fs.String("format", FormatText, "output format: text or json")
	engine := fs.String("engine", rules.EngineBuiltin, "rules engine: "+strings.Join(rules.Names(), " or "))
	show := fs.String("show", "attackers,defenders,mobility", "overlays: "+strings.Join(overlay.ToggleNames(), ","))
	logLevel := fs.String("log-level", "info", "log level: debug, info, warn, error")
	interactive := fs.Bool("i", false, "read commands from stdin")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	override := func(name, env string, dst *string) {
		if v := getenv(env); v != "" && !set[name] {
			*dst = v
		}
	}
	override("engine", EnvEngine, engine)
	override("log-level", EnvLogLevel, logLevel)
	override("format", EnvFormat, format)

	cfg := &Config{
		FEN:         strings.TrimSpace(*fen),
		Moves:       append([]string(nil), strings.Fields(*moves)...),
		Square:      board.NoSquare,
		Format:      strings.ToLower(*format),
		Engine:      strings.ToLower(*engine),
		Interactive: *interactive,
	}

	if *square != "" {
		sq, err := board.ParseSquare(*square)
		if err != nil {
			return nil, fmt.Errorf("%w: -square: %w", ErrInvalidConfig, err)
		}
		cfg.Square = sq
	}
	if cfg.Format != FormatText && cfg.Format != FormatJSON {
		return nil, fmt.Errorf("%w: format %q", ErrInvalidConfig, cfg.Format)
	}
	if _, err := rules.ByName(cfg.Engine); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	prefs, err := overlay.Parse(*show)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	cfg.Prefs = prefs
	level, err := zerolog.ParseLevel(strings.ToLower(*logLevel))
	if err != nil {
		return nil, fmt.Errorf("%w: log level: %w", ErrInvalidConfig, err)
	}
	cfg.LogLevel = level
	return cfg, nil
}
