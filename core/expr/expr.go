/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Rpncalc Authors

Package expr evaluates space-separated arithmetic expressions.
It supports:
  - Decimal number literals: 12, 3.5, -5, 1e3, inf
  - Binary operators: +, -, *, / (left associative) and ^ (right associative)
  - Parentheses for grouping

Tokens must be separated by exactly one space. "-5" is a negative literal,
while a lone "-" is always subtraction. Evaluation converts the expression to
reverse polish notation and reduces it with a value stack.
*/
package expr

import (
	"math"
	"strconv"
	"strings"
)

// Expression is a parsed expression ready for evaluation
type Expression struct {
	source     string
	components []Component
}

// Parse parses an expression string
func Parse(source string) (*Expression, error) {
	components, err := NewParser(source).Parse()
	if err != nil {
		return nil, err
	}
	return &Expression{source: source, components: components}, nil
}

// Source returns the original expression source
func (e *Expression) Source() string {
	return e.source
}

// Components returns a copy of the parsed components in input order
func (e *Expression) Components() []Component {
	return append([]Component(nil), e.components...)
}

// RPN returns the components in reverse polish notation
func (e *Expression) RPN() ([]Component, error) {
	return ToRPN(e.components)
}

// Evaluate computes the value of the expression
func (e *Expression) Evaluate() (float64, error) {
	rpn, err := e.RPN()
	if err != nil {
		return 0, err
	}
	return EvaluateRPN(rpn)
}

// String joins the components with single spaces
func (e *Expression) String() string {
	return JoinComponents(e.components)
}

// Calculate parses and evaluates source in one step
func Calculate(source string) (float64, error) {
	e, err := Parse(source)
	if err != nil {
		return 0, err
	}
	return e.Evaluate()
}

// JoinComponents formats components separated by single spaces
func JoinComponents(components []Component) string {
	parts := make([]string, len(components))
	for i, c := range components {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// FormatResult formats a value in its shortest exact decimal form.
// Non-finite values print as inf, -inf and NaN.
func FormatResult(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
