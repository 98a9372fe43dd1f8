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

package query

import (
	"net/url"

	"github.com/google/safehtml"
)

// DefaultHistoryLimit is the number of past expressions kept in a Query
const DefaultHistoryLimit = 10

// Query represents the parsed state of a calculator URL
type Query struct {
	// Base path (e.g., "/")
	Path string

	Expression   string   // Expression to evaluate, as entered by the user
	History      []string // Previously evaluated expressions, most recent first
	HistoryLimit int      // Maximum length of History
}

// NewQuery creates a Query from a URL.
// Format: /?expr=1+%2B+2&h=3+*+4&h=5
func NewQuery(u *url.URL) *Query {
	return NewQueryWithLimit(u, DefaultHistoryLimit)
}

// NewQueryWithLimit creates a Query from a URL keeping at most limit
// history entries
func NewQueryWithLimit(u *url.URL, limit int) *Query {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	state := &Query{
		Path:         u.Path,
		HistoryLimit: limit,
	}

	q := u.Query()
	state.Expression = q.Get("expr")

	seen := make(map[string]bool)
	for _, h := range q["h"] {
		if h == "" || seen[h] {
			continue
		}
		seen[h] = true
		if len(state.History) == limit {
			break
		}
		state.History = append(state.History, h)
	}

	return state
}

// Clone creates a deep copy of the Query
func (s *Query) Clone() *Query {
	clone := &Query{
		Path:         s.Path,
		Expression:   s.Expression,
		History:      make([]string, len(s.History)),
		HistoryLimit: s.HistoryLimit,
	}
	copy(clone.History, s.History)
	return clone
}

// WithExpression returns a URL evaluating expression, with the current
// expression moved to the front of the history
func (s *Query) WithExpression(expression string) safehtml.URL {
	newState := s.Clone()
	newState.pushHistory(s.Expression)
	newState.Expression = expression
	return newState.ToSafeURL()
}

// WithoutHistory returns a URL for the current expression with history cleared
func (s *Query) WithoutHistory() safehtml.URL {
	newState := s.Clone()
	newState.History = nil
	return newState.ToSafeURL()
}

// pushHistory puts expression first, dropping an older duplicate and
// trimming to HistoryLimit
func (s *Query) pushHistory(expression string) {
	if expression == "" {
		return
	}
	history := make([]string, 0, len(s.History)+1)
	history = append(history, expression)
	for _, h := range s.History {
		if h != expression {
			history = append(history, h)
		}
	}
	if s.HistoryLimit > 0 && len(history) > s.HistoryLimit {
		history = history[:s.HistoryLimit]
	}
	s.History = history
}

// ToURL converts the Query back to a URL string
func (s *Query) ToURL() string {
	u := &url.URL{
		Path: s.Path,
	}

	q := u.Query()
	if s.Expression != "" {
		q.Set("expr", s.Expression)
	}
	for _, h := range s.History {
		q.Add("h", h)
	}

	u.RawQuery = q.Encode()
	return u.String()
}

// ToSafeURL converts the Query to a safehtml.URL
func (s *Query) ToSafeURL() safehtml.URL {
	urlStr := s.ToURL()
	// URLSanitized sanitizes the input string and returns a URL
	return safehtml.URLSanitized(urlStr)
}
