/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Rpncalc Authors
*/

package expr

import (
	"errors"
	"fmt"
)

var (
	// ErrIllegalArgument is returned when a token is neither an operator
	// nor a number.
	ErrIllegalArgument = errors.New("Illegal arguments found in the expression.")

	// ErrMismatchedParenthesis is returned for a closing parenthesis with
	// no matching opening parenthesis.
	ErrMismatchedParenthesis = errors.New("Mismatched parenthesis in the expression.")

	// ErrRPNCalculation is returned when the postfix form cannot be reduced
	// to a single value.
	ErrRPNCalculation = errors.New("Calculation unsuccesfull.")
)

// ParseError identifies the token that failed to parse
type ParseError struct {
	Token string
	Index int
	Pos   int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s Unexpected token %q at position %d.", ErrIllegalArgument, e.Token, e.Pos)
}

// Unwrap lets errors.Is match ErrIllegalArgument
func (e *ParseError) Unwrap() error {
	return ErrIllegalArgument
}

// ErrorKind names the error category of err, or "" when err is nil.
// Unknown errors are reported as "internal".
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrIllegalArgument):
		return "IllegalArgument"
	case errors.Is(err, ErrMismatchedParenthesis):
		return "MismatchedParenthesis"
	case errors.Is(err, ErrRPNCalculation):
		return "RPNCalculationError"
	}
	return "internal"
}
