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
package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataops-tools/csvdiff/internal/table"
)

func sampleTable(t *testing.T) *table.Table {
	t.Helper()
	tbl := table.New("customers.csv", []string{"customer_id", "region", "note"})
	rows := [][]string{
		{"1", "east", "a"},
		{"2", "west", ""},
		{"3", "east", ""},
		{"4", "west", ""},
		{"5", "east", ""},
	}
	for _, r := range rows {
		require.NoError(t, tbl.AppendRow(r))
	}
	return tbl
}

func TestAnalyzeColumnStats(t *testing.T) {
	report := Analyze(sampleTable(t))

	assert.Equal(t, "customers.csv", report.Table)
	assert.Equal(t, 5, report.Rows)
	require.Len(t, report.Columns, 3)

	id := report.Columns[0]
	assert.Equal(t, "customer_id", id.Name)
	assert.Equal(t, 5, id.DistinctCount)
	assert.Equal(t, 0, id.NullCount)
	assert.InDelta(t, 100.0, id.UniquePercent, 0.001)
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, id.ExampleValues)

	region := report.Columns[1]
	assert.Equal(t, 2, region.DistinctCount)
	assert.InDelta(t, 40.0, region.UniquePercent, 0.001)

	note := report.Columns[2]
	assert.Equal(t, 4, note.NullCount)
	assert.InDelta(t, 80.0, note.NullPercent, 0.001)
	assert.Equal(t, 1, note.DistinctCount)
}

func TestKeyCandidateRanking(t *testing.T) {
	report := Analyze(sampleTable(t))

	require.NotEmpty(t, report.KeyCandidates)
	top := report.KeyCandidates[0]
	assert.Equal(t, "customer_id", top.Column, "fully unique column must rank first")
	assert.InDelta(t, 100.0, top.UniquePercent, 0.001)

	// A mostly-null column must not outrank a dense one despite high
	// distinctness over its non-null values.
	for _, c := range report.KeyCandidates {
		if c.Column == "note" {
			assert.Less(t, c.Score, top.Score)
		}
	}
}

func TestCompositeKeyCandidates(t *testing.T) {
	tbl := table.New("t.csv", []string{"a", "b"})
	rows := [][]string{
		{"x", "1"},
		{"x", "2"},
		{"y", "1"},
		{"y", "2"},
	}
	for _, r := range rows {
		require.NoError(t, tbl.AppendRow(r))
	}

	report := Analyze(tbl)
	require.NotEmpty(t, report.CompositeKeyCandidates)
	top := report.CompositeKeyCandidates[0]
	assert.ElementsMatch(t, []string{"a", "b"}, top.Columns)
	assert.InDelta(t, 100.0, top.UniquePercent, 0.001, "the pair is fully unique even though each column is not")
}

func TestAnalyzeEmptyTable(t *testing.T) {
	tbl := table.New("empty.csv", []string{"only_col"})
	report := Analyze(tbl)

	assert.Equal(t, 0, report.Rows)
	require.Len(t, report.Columns, 1)
	assert.Equal(t, 0, report.Columns[0].DistinctCount)
	assert.Zero(t, report.Columns[0].UniquePercent)
	assert.Empty(t, report.CompositeKeyCandidates)
}
