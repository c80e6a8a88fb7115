package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/hailam/chesslens/internal/config"
)

func TestRunText(t *testing.T) {
	var out, errOut bytes.Buffer
	err := run([]string{"-moves", "e4 e5 Nf3", "-log-level", "error"}, strings.NewReader(""), &out, &errOut)
	if err != nil {
		t.Fatalf("run: %v\n%s", err, errOut.String())
	}
	got := out.String()
	for _, want := range []string{"moves: e4 e5 Nf3", "f3 N  atk 0", "   a b c d e f g h"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRunSquareJSON(t *testing.T) {
	var out, errOut bytes.Buffer
	args := []string{
		"-fen", "4k3/8/8/3q4/8/4n3/8/3RK3 w - - 0 1",
		"-square", "d5",
		"-format", "json",
		"-engine", "dragontooth",
		"-show", "attackers",
	}
	if err := run(args, strings.NewReader(""), &out, &errOut); err != nil {
		t.Fatalf("run: %v\n%s", err, errOut.String())
	}
	var o struct {
		Arrows []struct{ ID string }
		Card   struct {
			Piece struct{ ExchangeValue int }
		}
	}
	if err := json.Unmarshal(out.Bytes(), &o); err != nil {
		t.Fatalf("decode: %v\n%s", err, out.String())
	}
	if len(o.Arrows) != 1 || o.Arrows[0].ID != "PIECE_ATK_d1_d5_0" {
		t.Errorf("arrows = %+v", o.Arrows)
	}
	if o.Card.Piece.ExchangeValue != 7 {
		t.Errorf("exchange value = %d, want 7", o.Card.Piece.ExchangeValue)
	}
}

func TestRunInteractive(t *testing.T) {
	var out, errOut bytes.Buffer
	in := strings.NewReader("select e2\nquit\n")
	if err := run([]string{"-i", "-show", "defenders"}, in, &out, &errOut); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "PIECE_DEF_d1_e2_0") {
		t.Errorf("output:\n%s", out.String())
	}
}

func TestRunErrors(t *testing.T) {
	for _, args := range [][]string{
		{"-fen", "nonsense"},
		{"-moves", "e5"},
		{"-engine", "nope"},
	} {
		var out, errOut bytes.Buffer
		if err := run(args, strings.NewReader(""), &out, &errOut); err == nil {
			t.Errorf("run(%v) succeeded", args)
		}
	}
}

func TestRunConfigError(t *testing.T) {
	var out, errOut bytes.Buffer
	err := run([]string{"-format", "yaml"}, strings.NewReader(""), &out, &errOut)
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}
