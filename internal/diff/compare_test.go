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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCellsEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{name: "equal strings", a: "hello", b: "hello", want: true},
		{name: "different strings", a: "hello", b: "world", want: false},
		{name: "both null", a: "", b: "", want: true},
		{name: "null vs non-null", a: "", b: "x", want: false},
		{name: "non-null vs null", a: "x", b: "", want: false},
		{name: "equal integers", a: "30", b: "30", want: true},
		{name: "numeric forms compared numerically", a: "30", b: "30.0", want: true},
		{name: "scientific notation", a: "1e3", b: "1000", want: true},
		{name: "different numbers", a: "25", b: "26", want: false},
		{name: "number vs text", a: "30", b: "thirty", want: false},
		{name: "whitespace is significant", a: "a", b: " a", want: false},
		{name: "case is significant", a: "NY", b: "ny", want: false},
		{name: "leading zeros equal numerically", a: "007", b: "7", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cellsEqual(tt.a, tt.b))
			assert.Equal(t, tt.want, cellsEqual(tt.b, tt.a), "equality must be symmetric")
		})
	}
}
