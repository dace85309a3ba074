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
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strings"

	"cloud.google.com/go/cloudsqlconn"
	"github.com/go-sql-driver/mysql"

	"github.com/dataops-tools/csvdiff/internal/config"
	"github.com/dataops-tools/csvdiff/internal/source"
	"github.com/dataops-tools/csvdiff/internal/table"
)

type mysqlLoader struct {
	cloudSQL bool
}

var _ source.Loader = (*mysqlLoader)(nil)

func (l mysqlLoader) Load(ctx context.Context, cfg *config.Config, ref string) (*table.Table, error) {
	var (
		pool *sql.DB
		err  error
	)
	if l.cloudSQL {
		pool, err = createCloudSQLPool(ctx, cfg.Database)
	} else {
		pool, err = createStandardPool(cfg.Database)
	}
	if err != nil {
		return nil, err
	}
	defer pool.Close()

	if err := pool.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to mysql: %w", err)
	}

	query := fmt.Sprintf("SELECT * FROM %s", quoteIdentifier(ref))
	return source.FetchTable(ctx, pool, query, ref)
}

func quoteIdentifier(name string) string {
	name = strings.ReplaceAll(name, "`", "``")
	return fmt.Sprintf("`%s`", name)
}

func createStandardPool(cfg config.DatabaseConfig) (*sql.DB, error) {
	mysqlCfg := mysql.Config{
		User:                 cfg.User,
		Passwd:               cfg.Password,
		Net:                  "tcp",
		Addr:                 fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		DBName:               cfg.DBName,
		AllowNativePasswords: true,
		ParseTime:            true,
	}
	pool, err := sql.Open("mysql", mysqlCfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("sql.Open (standard mysql): %w", err)
	}
	return pool, nil
}

func createCloudSQLPool(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	if cfg.User == "" || cfg.Password == "" || cfg.DBName == "" || cfg.CloudSQLInstanceConnectionName == "" {
		return nil, fmt.Errorf("missing required Cloud SQL connection parameter (user, password, dbname, instance)")
	}

	d, err := cloudsqlconn.NewDialer(ctx)
	if err != nil {
		return nil, fmt.Errorf("cloudsqlconn.NewDialer: %w", err)
	}

	var opts []cloudsqlconn.DialOption
	if cfg.UsePrivateIP {
		opts = append(opts, cloudsqlconn.WithPrivateIP())
	}

	instance := cfg.CloudSQLInstanceConnectionName
	network := fmt.Sprintf("cloudsql-%s", instance)
	mysql.RegisterDialContext(network,
		func(ctx context.Context, addr string) (net.Conn, error) {
			return d.Dial(ctx, instance, opts...)
		})

	mysqlCfg := mysql.Config{
		User:                 cfg.User,
		Passwd:               cfg.Password,
		Net:                  network,
		Addr:                 instance,
		DBName:               cfg.DBName,
		AllowNativePasswords: true,
		ParseTime:            true,
	}
	pool, err := sql.Open("mysql", mysqlCfg.FormatDSN())
	if err != nil {
		mysql.DeregisterDialContext(network)
		d.Close()
		return nil, fmt.Errorf("sql.Open failed for Cloud SQL MySQL: %w", err)
	}
	return pool, nil
}

func init() {
	source.Register("mysql", mysqlLoader{})
	source.Register("cloudsqlmysql", mysqlLoader{cloudSQL: true})
}
