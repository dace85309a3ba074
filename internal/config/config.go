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
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application. The comparison core
// never reads it; only the CLI glue and the table sources do.
type Config struct {
	// Delimiter is the input field separator; empty means sniff per file.
	Delimiter string `mapstructure:"delimiter"`
	// Encoding names the input character encoding; empty means UTF-8 with
	// BOM detection.
	Encoding string `mapstructure:"encoding"`
	// Output is the diff report path.
	Output string `mapstructure:"output"`
	// Source selects the table loader (csv, postgres, mysql, ...).
	Source string `mapstructure:"source"`
	// LogLevel is a zap level name (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	Database DatabaseConfig `mapstructure:"database"`
}

// DatabaseConfig holds connection settings for database-backed table sources.
type DatabaseConfig struct {
	Host                           string `mapstructure:"host"`
	Port                           int    `mapstructure:"port"`
	User                           string `mapstructure:"user"`
	Password                       string `mapstructure:"password"`
	DBName                         string `mapstructure:"dbname"`
	SSLMode                        string `mapstructure:"sslmode"`
	CloudSQLInstanceConnectionName string `mapstructure:"cloudsql_instance_connection_name"`
	UsePrivateIP                   bool   `mapstructure:"use_private_ip"`
}

var globalConfig *Config

// Default returns the built-in configuration. Flag and file values are
// layered on top of it in cmd/root.go.
func Default() *Config {
	return &Config{
		Output:   "diff.csv",
		Source:   "csv",
		LogLevel: "info",
		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    5432,
			SSLMode: "disable",
		},
	}
}

// Load merges an optional csvdiff.yaml (working directory or $HOME) and
// CSVDIFF_* environment variables over the defaults. A missing config file is
// not an error.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("csvdiff")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME")
	v.SetEnvPrefix("CSVDIFF")
	v.AutomaticEnv()

	cfg := Default()
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// SetConfig sets the global configuration.
func SetConfig(cfg *Config) {
	globalConfig = cfg
}

// GetConfig returns the global configuration, or defaults when unset.
func GetConfig() *Config {
	if globalConfig == nil {
		globalConfig = Default()
	}
	return globalConfig
}
