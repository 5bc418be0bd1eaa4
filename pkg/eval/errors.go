package eval

import (
	"errors"

	"scheme_go/pkg/ast"
)

// Errors that abort the evaluation of the current top-level form.
var (
	ErrDivisionByZero = ast.ErrZeroDenominator
	ErrNotRational    = errors.New("expected an integer or rational operand")
	ErrNotNumber      = errors.New("expected a numeric operand")
	ErrNotInteger     = errors.New("expected an integer operand")
)
