package parser

import (
	"errors"
	"fmt"
)

// ErrorKind classifies parse failures.
type ErrorKind int

const (
	// Syntax marks input that can never become valid by appending more text.
	Syntax ErrorKind = iota
	// Incomplete marks input that ended in the middle of a form.
	Incomplete
)

// Error is a lexical or parse failure at a byte offset of the source.
type Error struct {
	Kind ErrorKind
	Pos  int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse error at position %d: %s", e.Pos, e.Msg)
}

// IsIncomplete reports whether err means the input stopped mid-form, so a
// caller reading interactively should ask for more lines.
func IsIncomplete(err error) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.Kind == Incomplete
}

func failed(kind ErrorKind, pos int, msg string) *Error {
	return &Error{Kind: kind, Pos: pos, Msg: msg}
}
