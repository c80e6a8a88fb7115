package board

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN")

	// ErrIllegalMove indicates a move the position does not allow.
	ErrIllegalMove = errors.New("illegal move")
)

// ParseError reports why a FEN string was rejected.
// It unwraps to ErrInvalidFEN.
type ParseError struct {
	FEN    string
	Field  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid FEN %q: %s: %s", e.FEN, e.Field, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return ErrInvalidFEN
}
