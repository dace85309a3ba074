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
	"strconv"
	"strings"

	"github.com/dataops-tools/csvdiff/internal/table"
)

// Outcome classifies one row group after comparison.
type Outcome string

const (
	OutcomeIdentical     Outcome = "identical"
	OutcomeMismatched    Outcome = "mismatched"
	OutcomeUniqueToLeft  Outcome = "unique_to_left"
	OutcomeUniqueToRight Outcome = "unique_to_right"
	OutcomeDuplicateKey  Outcome = "duplicate_key"
)

const (
	// LabelUniqueRow marks rows whose surrogate key exists on one side only.
	LabelUniqueRow = "UNIQUE ROW"
	// LabelDuplicateKey marks rows whose surrogate key is ambiguous within a
	// single table; distinct from UNIQUE ROW so users can tell a bad key
	// choice apart from genuinely missing rows.
	LabelDuplicateKey = "DUPLICATE KEY"
	// mismatchSeparator joins mismatching column names in failed_columns.
	mismatchSeparator = ","
)

// record is one diff-report row before table assembly.
type record struct {
	surrogateKey  string
	source        string
	failedColumns string
	outcome       Outcome
	values        []string // common-schema values from the contributing row
}

// cellsEqual implements type-flexible equality: null equals only null, and
// values that both parse as numbers are compared numerically so "30" and
// "30.0" agree across sources. Everything else is exact string equality, with
// no trimming or case folding.
func cellsEqual(a, b string) bool {
	if table.IsNull(a) || table.IsNull(b) {
		return table.IsNull(a) && table.IsNull(b)
	}
	if a == b {
		return true
	}
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		return fa == fb
	}
	return false
}

// classifyGroup turns one row group into its diff records. Identical pairs
// produce nothing. When either side contributes more than one row the whole
// group is reported as duplicate_key: the chosen key does not identify rows
// and any cell-level verdict would be arbitrary.
func classifyGroup(c *comparison, key string, g *rowGroup) []record {
	switch {
	case len(g.left) == 0:
		recs := make([]record, 0, len(g.right))
		for _, row := range g.right {
			recs = append(recs, c.newRecord(key, c.right, row, OutcomeUniqueToRight, LabelUniqueRow))
		}
		return recs

	case len(g.right) == 0:
		recs := make([]record, 0, len(g.left))
		for _, row := range g.left {
			recs = append(recs, c.newRecord(key, c.left, row, OutcomeUniqueToLeft, LabelUniqueRow))
		}
		return recs

	case len(g.left) > 1 || len(g.right) > 1:
		recs := make([]record, 0, len(g.left)+len(g.right))
		for _, row := range g.left {
			recs = append(recs, c.newRecord(key, c.left, row, OutcomeDuplicateKey, LabelDuplicateKey))
		}
		for _, row := range g.right {
			recs = append(recs, c.newRecord(key, c.right, row, OutcomeDuplicateKey, LabelDuplicateKey))
		}
		return recs

	default:
		mismatched := c.mismatchedColumns(g.left[0], g.right[0])
		if len(mismatched) == 0 {
			return nil
		}
		label := strings.Join(mismatched, mismatchSeparator)
		return []record{
			c.newRecord(key, c.left, g.left[0], OutcomeMismatched, label),
			c.newRecord(key, c.right, g.right[0], OutcomeMismatched, label),
		}
	}
}

// mismatchedColumns compares one left row against one right row over the
// common schema and returns the unequal columns in schema order.
func (c *comparison) mismatchedColumns(leftRow, rightRow int) []string {
	var mismatched []string
	for i, col := range c.schema {
		lv := c.left.Rows[leftRow][c.leftIdx[i]]
		rv := c.right.Rows[rightRow][c.rightIdx[i]]
		if !cellsEqual(lv, rv) {
			mismatched = append(mismatched, col)
		}
	}
	return mismatched
}

func (c *comparison) newRecord(key string, t *table.Table, row int, outcome Outcome, label string) record {
	idx := c.leftIdx
	if t == c.right {
		idx = c.rightIdx
	}
	values := make([]string, len(c.schema))
	for i, col := range idx {
		values[i] = t.Rows[row][col]
	}
	return record{
		surrogateKey:  key,
		source:        t.Name,
		failedColumns: label,
		outcome:       outcome,
		values:        values,
	}
}
