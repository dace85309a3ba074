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
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dataops-tools/csvdiff/internal/config"
	"github.com/dataops-tools/csvdiff/internal/logging"
	_ "github.com/dataops-tools/csvdiff/internal/source/csvfile"
	_ "github.com/dataops-tools/csvdiff/internal/source/mysql"
	_ "github.com/dataops-tools/csvdiff/internal/source/postgres"
	_ "github.com/dataops-tools/csvdiff/internal/source/sqlserver"
)

var (
	delimiter  string
	encoding   string
	sourceName string
	logLevel   string

	// Database connection flags (database-backed sources only)
	host          string
	port          int
	username      string
	password      string
	dbName        string
	sslMode       string
	cloudSQLInstanceConnectionName string
	cloudSQLUsePrivateIP           bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "csvdiff",
	Short: "Compare two tabular datasets by composite key",
	Long: `csvdiff compares two delimited tables (or database tables) that share a
column schema and writes a diff report showing, per composite-key record,
which rows are unique to one side and which columns disagree.`,
	PersistentPreRunE: initFlagsAndConfig,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

var supportedSources = []string{"csv", "postgres", "cloudsqlpostgres", "mysql", "cloudsqlmysql", "sqlserver"}

// initFlagsAndConfig layers changed flags over file/env configuration and
// builds the logger.
func initFlagsAndConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("delimiter") {
		cfg.Delimiter = delimiter
	}
	if flags.Changed("encoding") {
		cfg.Encoding = encoding
	}
	if flags.Changed("source") {
		cfg.Source = sourceName
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("host") {
		cfg.Database.Host = host
	}
	if flags.Changed("port") {
		cfg.Database.Port = port
	}
	if flags.Changed("username") {
		cfg.Database.User = username
	}
	if flags.Changed("password") {
		cfg.Database.Password = password
	}
	if flags.Changed("database") {
		cfg.Database.DBName = dbName
	}
	if flags.Changed("sslmode") {
		cfg.Database.SSLMode = sslMode
	}
	if flags.Changed("cloudsql-instance-connection-name") {
		cfg.Database.CloudSQLInstanceConnectionName = cloudSQLInstanceConnectionName
	}
	if flags.Changed("cloudsql-use-private-ip") {
		cfg.Database.UsePrivateIP = cloudSQLUsePrivateIP
	}

	if err := validateSource(cfg.Source); err != nil {
		return err
	}
	if len(cfg.Delimiter) > 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", cfg.Delimiter)
	}

	logger, err = logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}

	config.SetConfig(cfg)
	return nil
}

func validateSource(name string) error {
	for _, s := range supportedSources {
		if name == s {
			return nil
		}
	}
	return fmt.Errorf("unsupported table source: %s (only %s are supported)", name, strings.Join(supportedSources, ", "))
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&delimiter, "delimiter", "", "Input field delimiter (default: sniffed per file)")
	rootCmd.PersistentFlags().StringVar(&encoding, "encoding", "", "Input character encoding: utf-8, latin1, windows-1252, utf-16 (default: utf-8 with BOM detection)")
	rootCmd.PersistentFlags().StringVar(&sourceName, "source", "csv", fmt.Sprintf("Table source (%s)", strings.Join(supportedSources, ", ")))
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.PersistentFlags().StringVar(&host, "host", "", "Database host (database sources)")
	rootCmd.PersistentFlags().IntVar(&port, "port", 0, "Database port (database sources)")
	rootCmd.PersistentFlags().StringVar(&username, "username", "", "Database username (database sources)")
	rootCmd.PersistentFlags().StringVar(&password, "password", "", "Database password (database sources)")
	rootCmd.PersistentFlags().StringVar(&dbName, "database", "", "Database name (database sources)")
	rootCmd.PersistentFlags().StringVar(&sslMode, "sslmode", "disable", "PostgreSQL SSL mode")
	rootCmd.PersistentFlags().StringVar(&cloudSQLInstanceConnectionName, "cloudsql-instance-connection-name", "", "Cloud SQL instance connection name (Cloud SQL sources)")
	rootCmd.PersistentFlags().BoolVar(&cloudSQLUsePrivateIP, "cloudsql-use-private-ip", false, "Use private IP for Cloud SQL connection")

	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(profileCmd)
}
