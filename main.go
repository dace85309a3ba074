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
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/dataops-tools/csvdiff/cmd"
)

var errorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FF5555")).
	Bold(true)

func main() {
	if err := cmd.Execute(); err != nil {
		var diffs *cmd.DifferencesFoundError
		if errors.As(err, &diffs) {
			// Differences are a result, not a failure. Exit 2 so callers
			// can tell "tables disagree" apart from "tool broke".
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}
