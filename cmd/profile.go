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
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dataops-tools/csvdiff/internal/config"
	"github.com/dataops-tools/csvdiff/internal/profile"
	"github.com/dataops-tools/csvdiff/internal/source"
)

var profileOutFile string

var profileCmd = &cobra.Command{
	Use:   "profile table...",
	Short: "Profile tables and rank key column candidates",
	Long: `Computes per-column statistics (distinct count, null count, example
values) for each table and ranks single and composite key candidates by
uniqueness, to help choose the --key for a diff run.`,
	Example: `  csvdiff profile customers_v1.csv customers_v2.csv
  csvdiff profile orders.csv --out_file orders_profile.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProfile,
}

func runProfile(cmd *cobra.Command, args []string) error {
	cfg := config.GetConfig()
	ctx := cmd.Context()

	reports := make([]*profile.Report, 0, len(args))
	for _, ref := range args {
		t, err := source.Load(ctx, cfg, ref)
		if err != nil {
			return err
		}
		report := profile.Analyze(t)
		logger.Info("profiled table",
			zap.String("table", t.Name),
			zap.Int("rows", report.Rows),
			zap.Int("columns", len(report.Columns)))
		reports = append(reports, report)
	}

	encoded, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode profile report: %w", err)
	}
	encoded = append(encoded, '\n')

	if profileOutFile == "" {
		_, err = os.Stdout.Write(encoded)
		return err
	}
	if err := os.WriteFile(profileOutFile, encoded, 0o644); err != nil {
		return fmt.Errorf("failed to write profile report: %w", err)
	}
	logger.Info("profile report written", zap.String("output", profileOutFile))
	return nil
}

func init() {
	profileCmd.Flags().StringVarP(&profileOutFile, "out_file", "o", "", "File path for the JSON report (defaults to stdout)")
}
