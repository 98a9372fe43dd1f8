/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Rpncalc Authors
*/

package expr

import "strings"

// Lexer splits an expression string into space-delimited tokens.
// Tokens are separated by exactly one space; consecutive, leading and
// trailing spaces yield empty tokens, which the parser rejects.
type Lexer struct {
	input string
	pos   int
	index int
	done  bool
}

// NewLexer creates a new lexer for the given input
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// NextToken returns the next token from the input. The second result is
// false once the input is exhausted. An empty input yields a single empty
// token.
func (l *Lexer) NextToken() (Token, bool) {
	if l.done {
		return Token{}, false
	}

	startPos := l.pos
	rest := l.input[l.pos:]
	end := strings.IndexByte(rest, ' ')
	if end == -1 {
		l.done = true
		end = len(rest)
	}
	l.pos += end + 1

	tok := Token{
		Value: strings.TrimSpace(rest[:end]),
		Index: l.index,
		Pos:   startPos,
	}
	l.index++
	return tok, true
}

// Tokenize returns all tokens of the input
func Tokenize(input string) []Token {
	lexer := NewLexer(input)
	tokens := make([]Token, 0, strings.Count(input, " ")+1)
	for {
		tok, ok := lexer.NextToken()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}
