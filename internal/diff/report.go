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

// Fixed leading columns of every diff report, ahead of the common schema.
const (
	ColSurrogateKey  = "surrogate_key"
	ColSource        = "source"
	ColFailedColumns = "failed_columns"
)

// Summary aggregates the comparison for logging and programmatic callers.
// Outcome fields count row groups, not emitted rows.
type Summary struct {
	LeftRows  int
	RightRows int

	Identical     int
	Mismatched    int
	UniqueToLeft  int
	UniqueToRight int
	DuplicateKey  int

	// ColumnMismatches counts, per common-schema column, the row groups in
	// which that column disagreed.
	ColumnMismatches map[string]int
}

// Result is the outcome of one comparison run.
type Result struct {
	// HasDifferences is false exactly when the report is empty. Distinct from
	// an error: a clean run over identical tables is a success.
	HasDifferences bool
	// Report holds one row per contributing (surrogate key, source) pair with
	// a non-identical outcome, ascending by surrogate key, left source first.
	Report *table.Table
	// Schema is the common schema the comparison ran over.
	Schema  []string
	Summary Summary
}

// assembleReport flattens the classified records into the output table. The
// records arrive already ordered (ascending key, left before right) because
// classification iterates sorted keys and emits left-side rows first.
func assembleReport(records []record, schema []string, reportName string) *table.Table {
	columns := make([]string, 0, len(schema)+3)
	columns = append(columns, ColSurrogateKey, ColSource, ColFailedColumns)
	columns = append(columns, schema...)

	report := table.New(reportName, columns)
	for _, rec := range records {
		row := make([]string, 0, len(columns))
		row = append(row, rec.surrogateKey, rec.source, rec.failedColumns)
		row = append(row, rec.values...)
		report.Rows = append(report.Rows, row)
	}
	return report
}

// summarize tallies outcome counts per row group and per-column mismatches.
func summarize(left, right *table.Table, groups map[string]*rowGroup, keys []string, c *comparison) Summary {
	s := Summary{
		LeftRows:         len(left.Rows),
		RightRows:        len(right.Rows),
		ColumnMismatches: make(map[string]int),
	}
	for _, key := range keys {
		g := groups[key]
		switch {
		case len(g.left) == 0:
			s.UniqueToRight++
		case len(g.right) == 0:
			s.UniqueToLeft++
		case len(g.left) > 1 || len(g.right) > 1:
			s.DuplicateKey++
		default:
			mismatched := c.mismatchedColumns(g.left[0], g.right[0])
			if len(mismatched) == 0 {
				s.Identical++
				continue
			}
			s.Mismatched++
			for _, col := range mismatched {
				s.ColumnMismatches[col]++
			}
		}
	}
	return s
}

// String renders a one-line summary suitable for log fields.
func (s Summary) String() string {
	var b strings.Builder
	writeCount := func(label string, n int) {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteString(label)
		b.WriteString("=")
		b.WriteString(strconv.Itoa(n))
	}
	writeCount("identical", s.Identical)
	writeCount("mismatched", s.Mismatched)
	writeCount("unique_to_left", s.UniqueToLeft)
	writeCount("unique_to_right", s.UniqueToRight)
	writeCount("duplicate_key", s.DuplicateKey)
	return b.String()
}
