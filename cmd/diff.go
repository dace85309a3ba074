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
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dataops-tools/csvdiff/internal/config"
	"github.com/dataops-tools/csvdiff/internal/diff"
	"github.com/dataops-tools/csvdiff/internal/prompt"
	"github.com/dataops-tools/csvdiff/internal/source"
	"github.com/dataops-tools/csvdiff/internal/table"
)

var (
	keyColumnsFlag string
	outputFile     string
)

// DifferencesFoundError signals a successful run that found differences, so
// main can exit 2 instead of treating the report as a failure.
type DifferencesFoundError struct {
	Output  string
	Summary diff.Summary
}

func (e *DifferencesFoundError) Error() string {
	return fmt.Sprintf("differences found (%s), report written to %s", e.Summary, e.Output)
}

var diffCmd = &cobra.Command{
	Use:   "diff [left right]",
	Short: "Compare two tables and write a diff report",
	Long: `Compares two tables sharing a column schema. Rows are matched by a
composite key built from --key columns, in order. The report lists rows unique
to one side, rows whose key is duplicated within a side, and for matched rows
the columns whose values disagree.

With two arguments, the tables are loaded from the configured source. With no
arguments and a csv source, an interactive picker scans the working directory.`,
	Example: `  csvdiff diff customers_v1.csv customers_v2.csv --key id
  csvdiff diff orders_before.csv orders_after.csv --key "order_id,line_no" -o orders_diff.csv
  csvdiff diff reference candidate --source postgres --host db1 --port 5432 --username u --database prod --key id
  csvdiff diff`,
	Args: cobra.RangeArgs(0, 2),
	RunE: runDiff,
}

func runDiff(cmd *cobra.Command, args []string) error {
	cfg := config.GetConfig()
	if cmd.Flags().Changed("output") {
		cfg.Output = outputFile
	}

	keyColumns := splitColumns(keyColumnsFlag)

	var left, right *table.Table
	var err error

	switch len(args) {
	case 2:
		if len(keyColumns) == 0 {
			return fmt.Errorf("--key is required when table references are given")
		}
		ctx := cmd.Context()
		if left, err = source.Load(ctx, cfg, args[0]); err != nil {
			return err
		}
		if right, err = source.Load(ctx, cfg, args[1]); err != nil {
			return err
		}
	case 0:
		if cfg.Source != "csv" {
			return fmt.Errorf("interactive mode only supports the csv source; pass two table references")
		}
		left, right, keyColumns, err = pickInteractively(cfg, keyColumns)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("pass two table references, or none for interactive mode")
	}

	logger.Info("comparing tables",
		zap.String("left", left.Name),
		zap.String("right", right.Name),
		zap.Strings("key", keyColumns),
		zap.Int("left_rows", len(left.Rows)),
		zap.Int("right_rows", len(right.Rows)))

	result, err := diff.Compare(left, right, keyColumns)
	if err != nil {
		return err
	}

	if !result.HasDifferences {
		logger.Info("no differences found",
			zap.Int("common_columns", len(result.Schema)))
		fmt.Println("No differences found.")
		return nil
	}

	if err := table.WriteFile(cfg.Output, result.Report, ','); err != nil {
		return err
	}

	logger.Info("differences written",
		zap.String("output", cfg.Output),
		zap.Int("report_rows", len(result.Report.Rows)),
		zap.String("summary", result.Summary.String()))
	fmt.Printf("Differences have been written to %q.\n", cfg.Output)

	return &DifferencesFoundError{Output: cfg.Output, Summary: result.Summary}
}

// pickInteractively reproduces the guided flow: scan the working directory
// for csv files (the report file itself excluded), pick two, pick key columns
// from the common schema in order, confirm the output name.
func pickInteractively(cfg *config.Config, preselectedKeys []string) (*table.Table, *table.Table, []string, error) {
	files, err := listCSVFiles(".", cfg.Output)
	if err != nil {
		return nil, nil, nil, err
	}
	if len(files) < 2 {
		return nil, nil, nil, fmt.Errorf("need at least two csv files in the working directory, found %d", len(files))
	}

	picked, err := prompt.SelectN("Select the two files to compare (in order):", files, 2)
	if err != nil {
		return nil, nil, nil, err
	}

	opts := table.ReadOptions{Encoding: cfg.Encoding}
	if cfg.Delimiter != "" {
		opts.Delimiter = []rune(cfg.Delimiter)[0]
	}
	left, err := table.ReadFile(files[picked[0]], opts)
	if err != nil {
		return nil, nil, nil, err
	}
	right, err := table.ReadFile(files[picked[1]], opts)
	if err != nil {
		return nil, nil, nil, err
	}

	keyColumns := preselectedKeys
	if len(keyColumns) == 0 {
		schema, err := diff.CommonSchema(left, right)
		if err != nil {
			return nil, nil, nil, err
		}
		pickedCols, err := prompt.SelectOrdered("Select key columns (pick order defines the composite key):", schema)
		if err != nil {
			return nil, nil, nil, err
		}
		for _, i := range pickedCols {
			keyColumns = append(keyColumns, schema[i])
		}
	}

	output, err := prompt.Input("Output file name:", cfg.Output)
	if err != nil {
		return nil, nil, nil, err
	}
	cfg.Output = output

	return left, right, keyColumns, nil
}

func listCSVFiles(dir, exclude string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list directory %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.EqualFold(filepath.Ext(name), ".csv") || name == exclude {
			continue
		}
		files = append(files, name)
	}
	return files, nil
}

func splitColumns(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var cols []string
	for _, c := range strings.Split(s, ",") {
		if c = strings.TrimSpace(c); c != "" {
			cols = append(cols, c)
		}
	}
	return cols
}

func init() {
	diffCmd.Flags().StringVar(&keyColumnsFlag, "key", "", "Comma-separated key column names, in order (e.g. 'id' or 'order_id,line_no')")
	diffCmd.Flags().StringVarP(&outputFile, "output", "o", "diff.csv", "Diff report path")
}
