/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Rpncalc Authors
*/

package expr

// ToRPN reorders infix components into postfix order using the shunting
// yard algorithm.
//
// An operator on the stack is popped before pushing op when it binds
// tighter than op, or equally tight with op left-associative. This groups
// "8 / 4 / 2" as (8/4)/2 and "2 ^ 3 ^ 2" as 2^(3^2).
//
// An unmatched ")" fails with ErrMismatchedParenthesis. An unmatched "("
// is flushed into the output like any other operator and is rejected later
// by EvaluateRPN.
func ToRPN(components []Component) ([]Component, error) {
	output := make([]Component, 0, len(components))
	var stack []Operator

	for _, c := range components {
		if c.IsNumber() {
			output = append(output, c)
			continue
		}

		switch op := c.Operator; op {
		case LeftParenthesis:
			stack = append(stack, op)

		case RightParenthesis:
			for {
				if len(stack) == 0 {
					return nil, ErrMismatchedParenthesis
				}
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top == LeftParenthesis {
					break
				}
				output = append(output, OperatorComponent(top))
			}

		default:
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top == LeftParenthesis {
					break
				}
				if !top.IsArithmetic() {
					return nil, ErrMismatchedParenthesis
				}
				if !binds(top, op) {
					break
				}
				output = append(output, OperatorComponent(top))
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, op)
		}
	}

	for len(stack) > 0 {
		output = append(output, OperatorComponent(stack[len(stack)-1]))
		stack = stack[:len(stack)-1]
	}
	return output, nil
}

// binds reports whether top must be applied before incoming
func binds(top, incoming Operator) bool {
	if top.Precedence() > incoming.Precedence() {
		return true
	}
	return top.Precedence() == incoming.Precedence() && incoming.Associativity() == AssocLeft
}

// EvaluateRPN reduces postfix components to a single value
func EvaluateRPN(rpn []Component) (float64, error) {
	stack := make([]float64, 0, len(rpn))

	for _, c := range rpn {
		if c.IsNumber() {
			stack = append(stack, c.Number)
			continue
		}
		if !c.Operator.IsArithmetic() {
			return 0, ErrRPNCalculation
		}
		if len(stack) < 2 {
			return 0, ErrRPNCalculation
		}
		second := stack[len(stack)-1]
		first := stack[len(stack)-2]
		stack = stack[:len(stack)-2]

		result, ok := c.Operator.Apply(first, second)
		if !ok {
			return 0, ErrRPNCalculation
		}
		stack = append(stack, result)
	}

	if len(stack) != 1 {
		return 0, ErrRPNCalculation
	}
	return stack[0], nil
}
