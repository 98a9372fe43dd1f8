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

// Package batch evaluates many expressions concurrently and reports the
// results as CSV
package batch

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rpncalc/rpncalc/core/expr"
	"golang.org/x/sync/errgroup"
)

// Header is the first CSV record written by Run
var Header = []string{"expression", "result", "error"}

// Record is the evaluation of one input line
type Record struct {
	Line       int // 1-based input line number
	Expression string
	Result     float64
	Err        error
}

// CSV returns the record as CSV fields
func (r Record) CSV() []string {
	if r.Err != nil {
		return []string{r.Expression, "", r.Err.Error()}
	}
	return []string{r.Expression, expr.FormatResult(r.Result), ""}
}

// ReadExpressions reads one expression per line, skipping blank lines.
// Lines are not length limited.
func ReadExpressions(in io.Reader) ([]Record, error) {
	var records []Record
	reader := bufio.NewReader(in)
	line := 0
	for {
		text, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("reading expressions: %w", err)
		}
		if text == "" && err != nil {
			return records, nil
		}
		line++
		text = strings.TrimRight(text, "\r\n")
		if strings.TrimSpace(text) != "" {
			records = append(records, Record{Line: line, Expression: text})
		}
		if err != nil {
			return records, nil
		}
	}
}

// Evaluate evaluates records in place using at most workers goroutines.
// Expression errors are stored in the records; only cancellation of ctx
// makes Evaluate fail.
func Evaluate(ctx context.Context, records []Record, workers int) error {
	if workers <= 0 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range records {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			records[i].Result, records[i].Err = expr.Calculate(records[i].Expression)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// Write writes the header and one CSV record per evaluation, in input order
func Write(out io.Writer, records []Record) error {
	w := csv.NewWriter(out)
	if err := w.Write(Header); err != nil {
		return err
	}
	for _, r := range records {
		if err := w.Write(r.CSV()); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// Run reads expressions from in, evaluates them and writes CSV to out.
// It returns the number of expressions that failed.
func Run(ctx context.Context, in io.Reader, out io.Writer, workers int) (int, error) {
	records, err := ReadExpressions(in)
	if err != nil {
		return 0, err
	}
	if err := Evaluate(ctx, records, workers); err != nil {
		return 0, err
	}
	if err := Write(out, records); err != nil {
		return 0, fmt.Errorf("writing results: %w", err)
	}

	failed := 0
	for _, r := range records {
		if r.Err != nil {
			failed++
		}
	}
	return failed, nil
}
