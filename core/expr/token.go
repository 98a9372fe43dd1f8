/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Rpncalc Authors
*/

package expr

import (
	"fmt"
	"math"
)

// Operator is one of the fixed operator symbols of an expression
type Operator int

const (
	Plus Operator = iota
	Minus
	Asterisk
	ForwardSlash
	Power
	LeftParenthesis
	RightParenthesis
)

// Associativity determines how operators of equal precedence group
type Associativity int

const (
	AssocLeft Associativity = iota
	AssocRight
)

// operatorSymbols maps each operator token to its Operator
var operatorSymbols = map[string]Operator{
	"+": Plus,
	"-": Minus,
	"*": Asterisk,
	"/": ForwardSlash,
	"^": Power,
	"(": LeftParenthesis,
	")": RightParenthesis,
}

// IsArithmetic reports whether the operator is a binary arithmetic operator.
// Parentheses are structural markers only.
func (o Operator) IsArithmetic() bool {
	switch o {
	case Plus, Minus, Asterisk, ForwardSlash, Power:
		return true
	}
	return false
}

// Precedence returns the binding strength of an arithmetic operator.
// Parentheses have no precedence and return 0.
func (o Operator) Precedence() int {
	switch o {
	case Plus, Minus:
		return 2
	case Asterisk, ForwardSlash:
		return 3
	case Power:
		return 4
	}
	return 0
}

// Associativity returns the associativity of an arithmetic operator
func (o Operator) Associativity() Associativity {
	if o == Power {
		return AssocRight
	}
	return AssocLeft
}

// Apply computes a <op> b. Division by zero and invalid powers follow IEEE 754
// and yield Inf or NaN.
func (o Operator) Apply(a, b float64) (float64, bool) {
	switch o {
	case Plus:
		return a + b, true
	case Minus:
		return a - b, true
	case Asterisk:
		return a * b, true
	case ForwardSlash:
		return a / b, true
	case Power:
		return math.Pow(a, b), true
	}
	return 0, false
}

// String returns the operator's token
func (o Operator) String() string {
	switch o {
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Asterisk:
		return "*"
	case ForwardSlash:
		return "/"
	case Power:
		return "^"
	case LeftParenthesis:
		return "("
	case RightParenthesis:
		return ")"
	}
	return fmt.Sprintf("Operator(%d)", int(o))
}

// ComponentKind tags a Component
type ComponentKind int

const (
	KindNumber ComponentKind = iota
	KindOperator
)

// Component is either a number or an operator
type Component struct {
	Kind     ComponentKind
	Number   float64
	Operator Operator
}

// NumberComponent creates a number component
func NumberComponent(n float64) Component {
	return Component{Kind: KindNumber, Number: n}
}

// OperatorComponent creates an operator component
func OperatorComponent(op Operator) Component {
	return Component{Kind: KindOperator, Operator: op}
}

// IsNumber checks if the component holds a number
func (c Component) IsNumber() bool { return c.Kind == KindNumber }

// IsOperator checks if the component holds an operator
func (c Component) IsOperator() bool { return c.Kind == KindOperator }

// String returns the component as it would be written in an expression
func (c Component) String() string {
	if c.Kind == KindNumber {
		return FormatResult(c.Number)
	}
	return c.Operator.String()
}

// Token is a single space-delimited piece of the input
type Token struct {
	Value string
	Index int // ordinal of the token in the input
	Pos   int // byte offset of the token in the input
}
