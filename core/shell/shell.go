/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Rpncalc Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package shell implements the line-oriented calculator prompt
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/rpncalc/rpncalc/core/expr"
)

const (
	// Prompt is printed before every line is read
	Prompt = "Enter an expression: "
	// ExitCommand ends the session
	ExitCommand = "exit"
)

// Shell reads expressions line by line and prints their results
type Shell struct {
	prompt   bool
	errColor *color.Color
	okColor  *color.Color
}

// New creates a shell. With noColor set, results and errors are printed
// without escape sequences. With prompt unset, no prompt is printed, which
// suits piped input.
func New(noColor, prompt bool) *Shell {
	errColor := color.New(color.FgRed)
	okColor := color.New(color.FgGreen)
	if noColor {
		errColor.DisableColor()
		okColor.DisableColor()
	} else {
		errColor.EnableColor()
		okColor.EnableColor()
	}
	return &Shell{prompt: prompt, errColor: errColor, okColor: okColor}
}

// IsExit reports whether line ends the session
func IsExit(line string) bool {
	return strings.TrimRight(line, "\r\n") == ExitCommand
}

// Evaluate parses and evaluates one line
func Evaluate(line string) (float64, error) {
	return expr.Calculate(strings.TrimRight(line, "\r\n"))
}

// Run reads lines from in until EOF, the exit command or ctx is done.
// A failing expression is reported and the loop continues. Lines are not
// length limited.
func (s *Shell) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.prompt {
			fmt.Fprint(out, Prompt)
		}
		line, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return fmt.Errorf("reading input: %w", readErr)
		}
		if line == "" && readErr != nil {
			return nil
		}
		if IsExit(line) {
			return nil
		}

		result, err := Evaluate(line)
		if err != nil {
			s.errColor.Fprintln(out, err.Error())
		} else {
			s.okColor.Fprintln(out, "Result: "+expr.FormatResult(result))
		}
		fmt.Fprintln(out)

		// last line without a trailing newline
		if readErr != nil {
			return nil
		}
	}
}
