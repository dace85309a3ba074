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

// Package profile computes per-column statistics for a table and ranks
// candidate key columns, so users can pick a composite key before running a
// comparison instead of guessing.
package profile

import (
	"sort"

	"github.com/dataops-tools/csvdiff/internal/diff"
	"github.com/dataops-tools/csvdiff/internal/table"
)

const maxExampleValues = 5

// ColumnStats describes one column of a profiled table.
type ColumnStats struct {
	Name          string   `json:"name"`
	DistinctCount int      `json:"distinct_count"`
	NullCount     int      `json:"null_count"`
	NullPercent   float64  `json:"null_percent"`
	UniquePercent float64  `json:"unique_percent"`
	ExampleValues []string `json:"example_values"`
}

// KeyCandidate is a single column ranked by its fitness as a row key.
type KeyCandidate struct {
	Column        string  `json:"column"`
	UniquePercent float64 `json:"unique_percent"`
	NullPercent   float64 `json:"null_percent"`
	Score         float64 `json:"score"`
}

// CompositeKeyCandidate is an ordered column pair ranked the same way.
type CompositeKeyCandidate struct {
	Columns       []string `json:"columns"`
	UniquePercent float64  `json:"unique_percent"`
	Score         float64  `json:"score"`
}

// Report is the full profile of one table.
type Report struct {
	Table                  string                  `json:"table"`
	Rows                   int                     `json:"rows"`
	Columns                []ColumnStats           `json:"columns"`
	KeyCandidates          []KeyCandidate          `json:"key_candidates"`
	CompositeKeyCandidates []CompositeKeyCandidate `json:"composite_key_candidates"`
}

// Analyze profiles every column of t and ranks key candidates.
func Analyze(t *table.Table) *Report {
	report := &Report{
		Table: t.Name,
		Rows:  len(t.Rows),
	}

	for col, name := range t.Columns {
		report.Columns = append(report.Columns, analyzeColumn(t, col, name))
	}
	report.KeyCandidates = rankKeyCandidates(report.Columns)
	report.CompositeKeyCandidates = rankCompositeCandidates(t, report.KeyCandidates)
	return report
}

func analyzeColumn(t *table.Table, col int, name string) ColumnStats {
	stats := ColumnStats{Name: name}
	distinct := make(map[string]struct{})
	for row := range t.Rows {
		v := t.Rows[row][col]
		if table.IsNull(v) {
			stats.NullCount++
			continue
		}
		if _, seen := distinct[v]; !seen {
			distinct[v] = struct{}{}
			if len(stats.ExampleValues) < maxExampleValues {
				stats.ExampleValues = append(stats.ExampleValues, v)
			}
		}
	}
	stats.DistinctCount = len(distinct)
	if n := len(t.Rows); n > 0 {
		stats.NullPercent = 100 * float64(stats.NullCount) / float64(n)
		stats.UniquePercent = 100 * float64(stats.DistinctCount) / float64(n)
	}
	return stats
}

// rankKeyCandidates scores each column by uniqueness, penalized by nulls: a
// column full of nulls is 100% "distinct" over its non-null values but
// useless as a key.
func rankKeyCandidates(columns []ColumnStats) []KeyCandidate {
	candidates := make([]KeyCandidate, 0, len(columns))
	for _, c := range columns {
		candidates = append(candidates, KeyCandidate{
			Column:        c.Name,
			UniquePercent: c.UniquePercent,
			NullPercent:   c.NullPercent,
			Score:         c.UniquePercent - c.NullPercent,
		})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	return candidates
}

// rankCompositeCandidates measures actual combined uniqueness for pairs of
// the top single candidates, using the same surrogate-key encoding the diff
// engine aligns rows with.
func rankCompositeCandidates(t *table.Table, singles []KeyCandidate) []CompositeKeyCandidate {
	const maxSingles = 4
	top := singles
	if len(top) > maxSingles {
		top = top[:maxSingles]
	}
	if len(top) < 2 || len(t.Rows) == 0 {
		return nil
	}

	idx := t.ColumnIndex()
	var candidates []CompositeKeyCandidate
	for i := 0; i < len(top); i++ {
		for j := i + 1; j < len(top); j++ {
			cols := []string{top[i].Column, top[j].Column}
			unique := compositeUniqueness(t, []int{idx[cols[0]], idx[cols[1]]})
			candidates = append(candidates, CompositeKeyCandidate{
				Columns:       cols,
				UniquePercent: unique,
				Score:         unique,
			})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	return candidates
}

func compositeUniqueness(t *table.Table, cols []int) float64 {
	seen := make(map[string]struct{}, len(t.Rows))
	values := make([]string, len(cols))
	for row := range t.Rows {
		for i, col := range cols {
			values[i] = t.Rows[row][col]
		}
		seen[diff.SurrogateKey(values)] = struct{}{}
	}
	return 100 * float64(len(seen)) / float64(len(t.Rows))
}
