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
package sqlserver

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/denisenkom/go-mssqldb"

	"github.com/dataops-tools/csvdiff/internal/config"
	"github.com/dataops-tools/csvdiff/internal/source"
	"github.com/dataops-tools/csvdiff/internal/table"
)

type sqlServerLoader struct{}

var _ source.Loader = (*sqlServerLoader)(nil)

func (sqlServerLoader) Load(ctx context.Context, cfg *config.Config, ref string) (*table.Table, error) {
	pool, err := createStandardPool(cfg.Database)
	if err != nil {
		return nil, err
	}
	defer pool.Close()

	if err := pool.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to sqlserver: %w", err)
	}

	query := fmt.Sprintf("SELECT * FROM %s", quoteIdentifier(ref))
	return source.FetchTable(ctx, pool, query, ref)
}

// SQL Server uses square brackets for identifiers.
func quoteIdentifier(name string) string {
	name = strings.ReplaceAll(name, "]", "]]")
	return fmt.Sprintf("[%s]", name)
}

func createStandardPool(cfg config.DatabaseConfig) (*sql.DB, error) {
	port := cfg.Port
	if port == 0 {
		port = 1433
	}
	connStr := fmt.Sprintf("sqlserver://%s:%s@%s:%d?database=%s",
		cfg.User, cfg.Password, cfg.Host, port, cfg.DBName)

	pool, err := sql.Open("sqlserver", connStr)
	if err != nil {
		return nil, fmt.Errorf("sql.Open (standard sqlserver): %w", err)
	}
	return pool, nil
}

func init() {
	source.Register("sqlserver", sqlServerLoader{})
}
