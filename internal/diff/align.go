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
	"sort"
	"strings"

	"github.com/dataops-tools/csvdiff/internal/table"
)

// keySeparator joins the key column values into one surrogate key. Separator
// and escape characters occurring inside a value are backslash-escaped so
// ("ab","c") and ("a","bc") can never collide.
const keySeparator = "|"

// SurrogateKey builds the composite key string for one row's key values, in
// the user-specified column order.
func SurrogateKey(values []string) string {
	escaped := make([]string, len(values))
	for i, v := range values {
		v = strings.ReplaceAll(v, `\`, `\\`)
		v = strings.ReplaceAll(v, keySeparator, `\`+keySeparator)
		escaped[i] = v
	}
	return strings.Join(escaped, keySeparator)
}

// rowGroup holds the row indices contributed by each side for one surrogate
// key value.
type rowGroup struct {
	left  []int
	right []int
}

// alignRows groups both tables' rows by surrogate key and returns the group
// map plus its keys in ascending lexicographic order. Sorted iteration is
// what makes report output reproducible across runs.
func alignRows(left, right *table.Table, keyColumns []string) (map[string]*rowGroup, []string) {
	groups := make(map[string]*rowGroup)

	collect := func(t *table.Table, pick func(g *rowGroup, row int)) {
		idx := t.ColumnIndex()
		keyIdx := make([]int, len(keyColumns))
		for i, k := range keyColumns {
			keyIdx[i] = idx[k]
		}
		values := make([]string, len(keyColumns))
		for row := range t.Rows {
			for i, col := range keyIdx {
				values[i] = t.Rows[row][col]
			}
			key := SurrogateKey(values)
			g, ok := groups[key]
			if !ok {
				g = &rowGroup{}
				groups[key] = g
			}
			pick(g, row)
		}
	}

	collect(left, func(g *rowGroup, row int) { g.left = append(g.left, row) })
	collect(right, func(g *rowGroup, row int) { g.right = append(g.right, row) })

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return groups, keys
}
