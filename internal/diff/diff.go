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

// Package diff compares two in-memory tables sharing a column schema and
// assembles a flat report of every disagreement, keyed by a user-chosen
// composite key. The engine is pure: it never touches files, the console, or
// any state outside its arguments.
package diff

import "github.com/dataops-tools/csvdiff/internal/table"

// comparison carries the resolved schema and per-table column positions for
// one run.
type comparison struct {
	left, right *table.Table
	schema      []string
	leftIdx     []int // schema position -> left column position
	rightIdx    []int
}

// Compare reconciles the two tables' schemas, validates the key selection,
// aligns rows by surrogate key and classifies every row group.
//
// Structural problems (no common schema, bad key columns) return an error
// before any report exists. Duplicate surrogate keys never abort: they are
// reported per group as duplicate_key rows.
func Compare(left, right *table.Table, keyColumns []string) (*Result, error) {
	schema, err := CommonSchema(left, right)
	if err != nil {
		return nil, err
	}
	if err := ValidateKey(schema, keyColumns); err != nil {
		return nil, err
	}

	c := &comparison{
		left:     left,
		right:    right,
		schema:   schema,
		leftIdx:  schemaPositions(schema, left),
		rightIdx: schemaPositions(schema, right),
	}

	groups, keys := alignRows(left, right, keyColumns)

	var records []record
	for _, key := range keys {
		records = append(records, classifyGroup(c, key, groups[key])...)
	}

	return &Result{
		HasDifferences: len(records) > 0,
		Report:         assembleReport(records, schema, "diff"),
		Schema:         schema,
		Summary:        summarize(left, right, groups, keys, c),
	}, nil
}

func schemaPositions(schema []string, t *table.Table) []int {
	idx := t.ColumnIndex()
	positions := make([]int, len(schema))
	for i, col := range schema {
		positions[i] = idx[col]
	}
	return positions
}
