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

package batch

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"testing"

	"github.com/rpncalc/rpncalc/core/expr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	in := strings.NewReader("1 + 2 * 3\n\n2 ^ 3 ^ 2\r\n1 + 2 )\n1 / 0\n")
	var out bytes.Buffer

	failed, err := Run(context.Background(), in, &out, 4)
	require.NoError(t, err)
	assert.Equal(t, 1, failed)

	rows, err := csv.NewReader(&out).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		Header,
		{"1 + 2 * 3", "7", ""},
		{"2 ^ 3 ^ 2", "512", ""},
		{"1 + 2 )", "", expr.ErrMismatchedParenthesis.Error()},
		{"1 / 0", "inf", ""},
	}, rows)
}

func TestReadExpressionsLineNumbers(t *testing.T) {
	records, err := ReadExpressions(strings.NewReader("1\n \n2\n"))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 1, records[0].Line)
	assert.Equal(t, 3, records[1].Line)
}

func TestReadExpressionsLongLine(t *testing.T) {
	long := strings.Repeat("2 * ", 30000) + "1"
	records, err := ReadExpressions(strings.NewReader("1 + 1\n" + long + "\n3"))
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, long, records[1].Expression)
	assert.Equal(t, 2, records[1].Line)
	assert.Equal(t, "3", records[2].Expression)
	assert.Equal(t, 3, records[2].Line)
}

func TestEvaluateKeepsOrder(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 500; i++ {
		fmt.Fprintf(&sb, "%d + 1\n", i)
	}
	records, err := ReadExpressions(strings.NewReader(sb.String()))
	require.NoError(t, err)

	require.NoError(t, Evaluate(context.Background(), records, 8))
	for i, r := range records {
		require.NoError(t, r.Err)
		assert.Equal(t, float64(i+1), r.Result)
	}
}

func TestEvaluateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	records := []Record{{Line: 1, Expression: "1 + 1"}}
	err := Evaluate(ctx, records, 2)
	assert.ErrorIs(t, err, context.Canceled)
}
