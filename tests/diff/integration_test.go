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
package diff_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataops-tools/csvdiff/internal/config"
	"github.com/dataops-tools/csvdiff/internal/diff"
	"github.com/dataops-tools/csvdiff/internal/source"
	_ "github.com/dataops-tools/csvdiff/internal/source/csvfile"
	"github.com/dataops-tools/csvdiff/internal/table"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// File in, file out: load two csv snapshots through the source layer, compare
// them, write the report, and check the serialized result end to end.
func TestFileToFileComparison(t *testing.T) {
	dir := t.TempDir()

	leftPath := writeFile(t, dir, "a.csv",
		"id,name,age,city\n"+
			"1,Alice,30,NewYork\n"+
			"2,Bob,25,LA\n"+
			"3,Charlie,35,Chicago\n"+
			"4,Diana,28,Houston\n")
	rightPath := writeFile(t, dir, "b.csv",
		"id,name,age,city\n"+
			"1,Alice,30,NewYork\n"+
			"2,Bob,26,LA\n"+
			"3,Charlie,35,SanFrancisco\n"+
			"5,Eve,22,Austin\n")

	cfg := config.Default()
	ctx := context.Background()

	left, err := source.Load(ctx, cfg, leftPath)
	require.NoError(t, err)
	right, err := source.Load(ctx, cfg, rightPath)
	require.NoError(t, err)

	result, err := diff.Compare(left, right, []string{"id"})
	require.NoError(t, err)
	require.True(t, result.HasDifferences)

	outPath := filepath.Join(dir, "diff.csv")
	require.NoError(t, table.WriteFile(outPath, result.Report, ','))

	raw, err := os.ReadFile(outPath)
	require.NoError(t, err)
	want := "surrogate_key,source,failed_columns,id,name,age,city\n" +
		"2,a.csv,age,2,Bob,25,LA\n" +
		"2,b.csv,age,2,Bob,26,LA\n" +
		"3,a.csv,city,3,Charlie,35,Chicago\n" +
		"3,b.csv,city,3,Charlie,35,SanFrancisco\n" +
		"4,a.csv,UNIQUE ROW,4,Diana,28,Houston\n" +
		"5,b.csv,UNIQUE ROW,5,Eve,22,Austin\n"
	assert.Equal(t, want, string(raw))
}

func TestIdenticalFilesProduceNoReport(t *testing.T) {
	dir := t.TempDir()
	content := "id,v\n1,x\n2,y\n"
	leftPath := writeFile(t, dir, "left.csv", content)
	rightPath := writeFile(t, dir, "right.csv", content)

	cfg := config.Default()
	ctx := context.Background()

	left, err := source.Load(ctx, cfg, leftPath)
	require.NoError(t, err)
	right, err := source.Load(ctx, cfg, rightPath)
	require.NoError(t, err)

	result, err := diff.Compare(left, right, []string{"id"})
	require.NoError(t, err)
	assert.False(t, result.HasDifferences)
	assert.Empty(t, result.Report.Rows)
}

// Different delimiters and encodings on the two sides still compare, because
// the loader normalizes everything to the in-memory model.
func TestMixedDelimiterComparison(t *testing.T) {
	dir := t.TempDir()
	leftPath := writeFile(t, dir, "semi.csv", "id;v\n1;x\n")
	rightPath := writeFile(t, dir, "comma.csv", "id,v\n1,x\n")

	cfg := config.Default() // delimiter empty: sniffed per file
	ctx := context.Background()

	left, err := source.Load(ctx, cfg, leftPath)
	require.NoError(t, err)
	right, err := source.Load(ctx, cfg, rightPath)
	require.NoError(t, err)

	result, err := diff.Compare(left, right, []string{"id"})
	require.NoError(t, err)
	assert.False(t, result.HasDifferences)
}
