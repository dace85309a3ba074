/*
 * Copyright 2025 The csvdiff Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *    https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */
package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataops-tools/csvdiff/internal/table"
)

func TestSurrogateKey(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   string
	}{
		{name: "single value", values: []string{"42"}, want: "42"},
		{name: "two values joined", values: []string{"a", "b"}, want: "a|b"},
		{name: "separator escaped", values: []string{"a|b", "c"}, want: `a\|b|c`},
		{name: "backslash escaped", values: []string{`a\`, "c"}, want: `a\\|c`},
		{name: "empty parts preserved", values: []string{"", ""}, want: "|"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SurrogateKey(tt.values))
		})
	}
}

// Keys built from different part boundaries must never collide, regardless of
// where the separator falls in the data.
func TestSurrogateKeyNoBoundaryCollisions(t *testing.T) {
	pairs := [][2][]string{
		{{"ab", "c"}, {"a", "bc"}},
		{{"a|", "b"}, {"a", "|b"}},
		{{"a", "b|c"}, {"a|b", "c"}},
		{{`a\`, "b"}, {"a", `\b`}},
	}
	for _, p := range pairs {
		assert.NotEqual(t, SurrogateKey(p[0]), SurrogateKey(p[1]),
			"parts %q and %q must produce distinct keys", p[0], p[1])
	}
}

func TestAlignRows(t *testing.T) {
	left := table.New("left.csv", []string{"id", "name"})
	require.NoError(t, left.AppendRow([]string{"2", "bob"}))
	require.NoError(t, left.AppendRow([]string{"1", "alice"}))
	require.NoError(t, left.AppendRow([]string{"2", "bobby"})) // duplicate key

	right := table.New("right.csv", []string{"id", "name"})
	require.NoError(t, right.AppendRow([]string{"3", "carol"}))
	require.NoError(t, right.AppendRow([]string{"1", "alice"}))

	groups, keys := alignRows(left, right, []string{"id"})

	assert.Equal(t, []string{"1", "2", "3"}, keys, "keys must come back sorted")

	assert.Equal(t, []int{1}, groups["1"].left)
	assert.Equal(t, []int{1}, groups["1"].right)
	assert.Equal(t, []int{0, 2}, groups["2"].left, "duplicate rows keep input order")
	assert.Empty(t, groups["2"].right)
	assert.Empty(t, groups["3"].left)
	assert.Equal(t, []int{0}, groups["3"].right)
}

func TestAlignRowsCompositeKeyOrder(t *testing.T) {
	left := table.New("l", []string{"a", "b"})
	require.NoError(t, left.AppendRow([]string{"x", "y"}))

	right := table.New("r", []string{"a", "b"})
	require.NoError(t, right.AppendRow([]string{"y", "x"}))

	// Key order (b, a) must be honored: left row keys to y|x, right to x|y.
	groups, keys := alignRows(left, right, []string{"b", "a"})
	assert.Equal(t, []string{"x|y", "y|x"}, keys)
	assert.Equal(t, []int{0}, groups["y|x"].left)
	assert.Equal(t, []int{0}, groups["x|y"].right)
}
