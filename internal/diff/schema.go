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
package diff

import (
	"fmt"
	"strings"

	"github.com/dataops-tools/csvdiff/internal/table"
)

// CommonSchema computes the ordered intersection of the two tables' columns.
// Display order follows the left table. Comparison is undefined without at
// least one shared column, so an empty intersection is an *ErrSchema.
func CommonSchema(left, right *table.Table) ([]string, error) {
	rightCols := make(map[string]struct{}, len(right.Columns))
	for _, c := range right.Columns {
		rightCols[c] = struct{}{}
	}

	var common []string
	seen := make(map[string]struct{}, len(left.Columns))
	for _, c := range left.Columns {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		if _, ok := rightCols[c]; ok {
			common = append(common, c)
		}
	}

	if len(common) == 0 {
		return nil, &ErrSchema{
			Msg: fmt.Sprintf("tables %q and %q share no columns", left.Name, right.Name),
		}
	}
	return common, nil
}

// ValidateKey checks the user-chosen key columns against the common schema.
// Uniqueness of key VALUES is deliberately not checked here: a duplicate key
// is a data-quality signal surfaced per row group, not a precondition.
func ValidateKey(schema, keyColumns []string) error {
	if len(keyColumns) == 0 {
		return &ErrKey{Msg: "no key columns selected"}
	}

	inSchema := make(map[string]struct{}, len(schema))
	for _, c := range schema {
		inSchema[c] = struct{}{}
	}

	var missing []string
	seen := make(map[string]struct{}, len(keyColumns))
	for _, k := range keyColumns {
		if _, dup := seen[k]; dup {
			return &ErrKey{Msg: fmt.Sprintf("key column %q selected twice", k)}
		}
		seen[k] = struct{}{}
		if _, ok := inSchema[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return &ErrKey{
			Msg: fmt.Sprintf("key column(s) %s not in the common schema", strings.Join(missing, ", ")),
		}
	}
	return nil
}
