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

package views

import (
	"github.com/google/safehtml"
	"github.com/rpncalc/rpncalc/core/expr"
	"github.com/rpncalc/rpncalc/core/query"
)

// CalcViewModel contains an evaluation formatted for template consumption
type CalcViewModel struct {
	Title      string
	Expression string       // Expression as entered
	HasResult  bool         // True when Expression evaluated successfully
	Result     string       // Formatted result
	RPN        string       // Postfix form, empty if conversion failed
	Error      string       // Error message, empty on success
	ErrorKind  string       // IllegalArgument, MismatchedParenthesis or RPNCalculationError
	History    []HistoryEntry
	ClearURL   safehtml.URL // URL dropping the history
	Timings    []TimingEntry
	TotalMs    string
}

// HistoryEntry is a previously evaluated expression with a link to re-run it
type HistoryEntry struct {
	Expression string
	URL        safehtml.URL
}

// TimingEntry is a single measured step of request handling
type TimingEntry struct {
	Operation  string
	DurationMs string
}

// Evaluation is the outcome of evaluating one expression
type Evaluation struct {
	Result float64
	RPN    []expr.Component
	Err    error
}

// BuildViewModel creates the view model for a query and its evaluation.
// An empty expression produces a view with neither result nor error.
func BuildViewModel(q *query.Query, eval Evaluation, timings []TimingEntry, totalMs string) CalcViewModel {
	vm := CalcViewModel{
		Title:      "RPN Calculator",
		Expression: q.Expression,
		ClearURL:   q.WithoutHistory(),
		Timings:    timings,
		TotalMs:    totalMs,
	}

	if q.Expression != "" {
		if eval.RPN != nil {
			vm.RPN = expr.JoinComponents(eval.RPN)
		}
		if eval.Err != nil {
			vm.Error = eval.Err.Error()
			vm.ErrorKind = expr.ErrorKind(eval.Err)
		} else {
			vm.HasResult = true
			vm.Result = expr.FormatResult(eval.Result)
		}
	}

	vm.History = make([]HistoryEntry, 0, len(q.History))
	for _, h := range q.History {
		vm.History = append(vm.History, HistoryEntry{
			Expression: h,
			URL:        q.WithExpression(h),
		})
	}

	return vm
}
