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
package csvfile

import (
	"context"

	"github.com/dataops-tools/csvdiff/internal/config"
	"github.com/dataops-tools/csvdiff/internal/source"
	"github.com/dataops-tools/csvdiff/internal/table"
)

type csvLoader struct{}

var _ source.Loader = (*csvLoader)(nil)

func (csvLoader) Load(_ context.Context, cfg *config.Config, ref string) (*table.Table, error) {
	var delim rune
	if cfg.Delimiter != "" {
		delim = []rune(cfg.Delimiter)[0]
	}
	return table.ReadFile(ref, table.ReadOptions{
		Delimiter: delim,
		Encoding:  cfg.Encoding,
	})
}

func init() {
	source.Register("csv", csvLoader{})
}
