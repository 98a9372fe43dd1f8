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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestNewQuery(t *testing.T) {
	q := NewQuery(mustParse(t, "/?expr=1+%2B+2&h=3+*+4&h=&h=5"))
	assert.Equal(t, "/", q.Path)
	assert.Equal(t, "1 + 2", q.Expression)
	assert.Equal(t, []string{"3 * 4", "5"}, q.History)
	assert.Equal(t, DefaultHistoryLimit, q.HistoryLimit)
}

func TestNewQueryTruncatesHistory(t *testing.T) {
	q := NewQueryWithLimit(mustParse(t, "/?h=1&h=2&h=3"), 2)
	assert.Equal(t, []string{"1", "2"}, q.History)
}

func TestWithExpression(t *testing.T) {
	// Test 1: current expression moves into history
	t.Run("Push current expression", func(t *testing.T) {
		q := NewQuery(mustParse(t, "/?expr=1+%2B+2&h=3"))
		next := NewQuery(mustParse(t, q.WithExpression("2 ^ 3").String()))

		assert.Equal(t, "2 ^ 3", next.Expression)
		assert.Equal(t, []string{"1 + 2", "3"}, next.History)
	})

	// Test 2: re-evaluating a history entry does not duplicate it
	t.Run("No duplicates", func(t *testing.T) {
		q := NewQuery(mustParse(t, "/?expr=3&h=1&h=3"))
		next := NewQuery(mustParse(t, q.WithExpression("1").String()))

		assert.Equal(t, "1", next.Expression)
		assert.Equal(t, []string{"3", "1"}, next.History)
	})

	// Test 3: history is bounded
	t.Run("Bounded history", func(t *testing.T) {
		q := NewQueryWithLimit(mustParse(t, "/?expr=c&h=b&h=a"), 2)
		next := NewQueryWithLimit(mustParse(t, q.WithExpression("d").String()), 2)

		assert.Equal(t, []string{"c", "b"}, next.History)
	})

	// Test 4: the original query is untouched
	t.Run("Original unchanged", func(t *testing.T) {
		q := NewQuery(mustParse(t, "/?expr=1&h=2"))
		_ = q.WithExpression("3")

		assert.Equal(t, "1", q.Expression)
		assert.Equal(t, []string{"2"}, q.History)
	})
}

func TestWithoutHistory(t *testing.T) {
	q := NewQuery(mustParse(t, "/?expr=1+%2B+2&h=3&h=4"))
	next := NewQuery(mustParse(t, q.WithoutHistory().String()))

	assert.Equal(t, "1 + 2", next.Expression)
	assert.Empty(t, next.History)
}

func TestToURLRoundTrip(t *testing.T) {
	q := &Query{Path: "/", Expression: "( 1 + 2 ) * 3", History: []string{"8 / 4"}, HistoryLimit: 5}
	parsed := NewQueryWithLimit(mustParse(t, q.ToURL()), 5)

	assert.Equal(t, q.Expression, parsed.Expression)
	assert.Equal(t, q.History, parsed.History)
}

func TestNewQueryDropsDuplicateHistory(t *testing.T) {
	q := NewQuery(mustParse(t, "/?expr=1&h=2&h=3&h=2"))
	assert.Equal(t, []string{"2", "3"}, q.History)
}
