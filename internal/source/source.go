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

// Package source resolves a table reference (a file path, or a database table
// name) into an in-memory table. Concrete loaders register themselves by
// driver name from their package init, wired up via blank imports in
// cmd/root.go.
package source

import (
	"context"
	"fmt"
	"sync"

	"github.com/dataops-tools/csvdiff/internal/config"
	"github.com/dataops-tools/csvdiff/internal/table"
	"go.uber.org/zap"
)

// Loader materializes one table from a source-specific reference.
type Loader interface {
	Load(ctx context.Context, cfg *config.Config, ref string) (*table.Table, error)
}

var (
	mu      sync.RWMutex
	loaders = make(map[string]Loader)
)

// Register installs a loader under a driver name.
func Register(driver string, loader Loader) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := loaders[driver]; exists {
		zap.L().Warn("source loader is being overwritten", zap.String("driver", driver))
	}
	loaders[driver] = loader
}

// Get returns the loader registered under driver.
func Get(driver string) (Loader, error) {
	mu.RLock()
	defer mu.RUnlock()
	loader, ok := loaders[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported table source: %s", driver)
	}
	return loader, nil
}

// Drivers lists the registered driver names, for flag help and validation.
func Drivers() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(loaders))
	for name := range loaders {
		names = append(names, name)
	}
	return names
}

// Load resolves cfg.Source to a loader and materializes ref through it.
func Load(ctx context.Context, cfg *config.Config, ref string) (*table.Table, error) {
	loader, err := Get(cfg.Source)
	if err != nil {
		return nil, err
	}
	t, err := loader.Load(ctx, cfg, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to load table %q from %s source: %w", ref, cfg.Source, err)
	}
	return t, nil
}
