/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Rpncalc Authors
*/

package expr

import (
	"errors"
	"strconv"
	"strings"
)

// Parser converts tokens into expression components
type Parser struct {
	lexer *Lexer
}

// NewParser creates a new parser
func NewParser(input string) *Parser {
	return &Parser{lexer: NewLexer(input)}
}

// Parse parses the input and returns the components in input order.
// Each token is converted in isolation; the sequence as a whole is not
// checked for balanced parentheses or operand/operator alternation.
func (p *Parser) Parse() ([]Component, error) {
	var components []Component
	for {
		tok, ok := p.lexer.NextToken()
		if !ok {
			return components, nil
		}
		c, err := parseComponent(tok)
		if err != nil {
			return nil, err
		}
		components = append(components, c)
	}
}

func parseComponent(tok Token) (Component, error) {
	if op, ok := operatorSymbols[tok.Value]; ok {
		return OperatorComponent(op), nil
	}
	if !isDecimalLiteral(tok.Value) {
		return Component{}, &ParseError{Token: tok.Value, Index: tok.Index, Pos: tok.Pos}
	}

	n, err := strconv.ParseFloat(tok.Value, 64)
	if err != nil {
		// Out-of-range literals still carry ±Inf
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && numErr.Err == strconv.ErrRange {
			return NumberComponent(n), nil
		}
		return Component{}, &ParseError{Token: tok.Value, Index: tok.Index, Pos: tok.Pos}
	}
	return NumberComponent(n), nil
}

// isDecimalLiteral rejects the Go-only forms ParseFloat also accepts:
// digit separators and hexadecimal mantissas
func isDecimalLiteral(s string) bool {
	if strings.ContainsRune(s, '_') {
		return false
	}
	s = strings.TrimLeft(s, "+-")
	return !(len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X'))
}
