// Package shell runs the interactive chesslens command loop over a
// session: load positions, play moves, select squares and print the
// analysis.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hailam/chesslens/internal/analysis"
	"github.com/hailam/chesslens/internal/board"
	"github.com/hailam/chesslens/internal/session"
)

// Shell reads one command per line.
type Shell struct {
	s   *session.Session
	out io.Writer
	log zerolog.Logger
}

// New creates a shell writing to out.
func New(s *session.Session, out io.Writer, log zerolog.Logger) *Shell {
	return &Shell{s: s, out: out, log: log}
}

// errQuit stops the loop.
var errQuit = errors.New("quit")

// Run processes commands from in until EOF or "quit".
func (sh *Shell) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		err := sh.Exec(line)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(sh.out, "error: %v\n", err)
		}
	}
	return scanner.Err()
}

// Exec runs a single command line.
func (sh *Shell) Exec(line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}
	cmd, args := parts[0], parts[1:]
	sh.log.Debug().Str("cmd", cmd).Strs("args", args).Msg("command")

	switch cmd {
	case "fen":
		if len(args) == 0 {
			return errors.New("usage: fen <FEN>")
		}
		if err := sh.s.Load(strings.Join(args, " ")); err != nil {
			return err
		}
		return sh.printBoard()
	case "startpos":
		if err := sh.s.Load(board.StartFEN); err != nil {
			return err
		}
		return sh.printBoard()
	case "move", "m":
		if len(args) == 0 {
			return errors.New("usage: move <e2e4|Nf3> ...")
		}
		for _, text := range args {
			if _, err := sh.s.Move(text); err != nil {
				return err
			}
		}
		return sh.printBoard()
	case "drop":
		if len(args) != 2 {
			return errors.New("usage: drop <from> <to>")
		}
		from, err := board.ParseSquare(args[0])
		if err != nil {
			return err
		}
		to, err := board.ParseSquare(args[1])
		if err != nil {
			return err
		}
		if _, err := sh.s.Drop(from, to); err != nil {
			return err
		}
		return sh.printBoard()
	case "select", "sel":
		if len(args) != 1 {
			return errors.New("usage: select <square>")
		}
		sq, err := board.ParseSquare(args[0])
		if err != nil {
			return err
		}
		sh.s.Select(sq)
		return sh.printOverlay()
	case "toggle":
		if len(args) != 1 {
			return errors.New("usage: toggle <attackers|defenders|white|black|mobility>")
		}
		if err := sh.s.Toggle(args[0]); err != nil {
			return err
		}
		return sh.printOverlay()
	case "show":
		return sh.printOverlay()
	case "summary":
		res, err := sh.result()
		if err != nil {
			return err
		}
		WriteSummary(sh.out, res)
		return nil
	case "control":
		res, err := sh.result()
		if err != nil {
			return err
		}
		WriteControlMap(sh.out, res.Board)
		return nil
	case "json":
		res, err := sh.result()
		if err != nil {
			return err
		}
		return WriteJSON(sh.out, res)
	case "board", "d":
		return sh.printBoard()
	case "history":
		fmt.Fprintln(sh.out, sh.s.History())
		return nil
	case "help":
		io.WriteString(sh.out, help)
		return nil
	case "quit", "exit":
		return errQuit
	}
	return fmt.Errorf("unknown command %q, try help", cmd)
}

const help = `commands:
  fen <FEN>            load a position
  startpos             load the starting position
  move <m> ...         play moves in UCI or SAN
  drop <from> <to>     move a piece as if dragged
  select <square>      describe a square
  toggle <overlay>     attackers, defenders, white, black, mobility
  show                 print the overlay for the selection
  summary              one line per piece
  control              control balance map
  json                 full analysis as JSON
  board                print the position
  history              moves played
  quit
`

func (sh *Shell) result() (*analysis.Result, error) {
	sh.s.Wait()
	snap := sh.s.Snapshot()
	if snap.Err != nil {
		return nil, snap.Err
	}
	if snap.Result == nil {
		return nil, errors.New("no analysis available")
	}
	return snap.Result, nil
}

func (sh *Shell) printBoard() error {
	fmt.Fprint(sh.out, sh.s.Position().String())
	return nil
}

func (sh *Shell) printOverlay() error {
	o, err := sh.s.Overlay()
	if err != nil {
		return err
	}
	WriteOverlay(sh.out, o)
	return nil
}
