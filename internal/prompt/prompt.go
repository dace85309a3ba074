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

// Package prompt implements the interactive pickers used when the diff
// command runs without arguments: choose two files from a directory listing,
// choose key columns in order, name the output file. The comparison core
// never depends on this package.
package prompt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrAborted is returned when the user cancels a picker (q, esc, ctrl+c).
var ErrAborted = errors.New("selection aborted")

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// selectModel is a list picker. In multi mode, space toggles items and the
// pick ORDER is preserved, because key column order determines the surrogate
// key.
type selectModel struct {
	title   string
	items   []string
	cursor  int
	multi   bool
	limit   int // exact number of picks required in multi mode; 0 = any
	picked  []int
	done    bool
	aborted bool
}

func (m selectModel) Init() tea.Cmd { return nil }

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c", "q", "esc":
		m.aborted = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case " ":
		if m.multi {
			m.toggle(m.cursor)
		}
	case "enter":
		if !m.multi {
			m.picked = []int{m.cursor}
			m.done = true
			return m, tea.Quit
		}
		if m.limit == 0 && len(m.picked) > 0 || m.limit > 0 && len(m.picked) == m.limit {
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *selectModel) toggle(i int) {
	for pos, p := range m.picked {
		if p == i {
			m.picked = append(m.picked[:pos], m.picked[pos+1:]...)
			return
		}
	}
	if m.limit > 0 && len(m.picked) == m.limit {
		return
	}
	m.picked = append(m.picked, i)
}

func (m selectModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")
	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		mark := ""
		if m.multi {
			if order := m.pickOrder(i); order > 0 {
				mark = selectedStyle.Render(" [" + strconv.Itoa(order) + "]")
			}
		}
		b.WriteString(fmt.Sprintf("%s%s%s\n", cursor, item, mark))
	}
	b.WriteString("\n")
	if m.multi {
		b.WriteString(helpStyle.Render("space: toggle (order shown) • enter: confirm • q: abort"))
	} else {
		b.WriteString(helpStyle.Render("enter: select • q: abort"))
	}
	b.WriteString("\n")
	return b.String()
}

func (m selectModel) pickOrder(i int) int {
	for pos, p := range m.picked {
		if p == i {
			return pos + 1
		}
	}
	return 0
}

// SelectOne runs a single-choice picker and returns the chosen index.
func SelectOne(title string, items []string) (int, error) {
	picked, err := runSelect(selectModel{title: title, items: items})
	if err != nil {
		return 0, err
	}
	return picked[0], nil
}

// SelectN runs a multi-choice picker requiring exactly n picks and returns
// the chosen indices in pick order.
func SelectN(title string, items []string, n int) ([]int, error) {
	return runSelect(selectModel{title: title, items: items, multi: true, limit: n})
}

// SelectOrdered runs a multi-choice picker accepting one or more picks and
// returns the chosen indices in pick order.
func SelectOrdered(title string, items []string) ([]int, error) {
	return runSelect(selectModel{title: title, items: items, multi: true})
}

func runSelect(m selectModel) ([]int, error) {
	if len(m.items) == 0 {
		return nil, errors.New("nothing to select from")
	}
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return nil, fmt.Errorf("prompt failed: %w", err)
	}
	result := final.(selectModel)
	if result.aborted || !result.done {
		return nil, ErrAborted
	}
	return result.picked, nil
}

// inputModel wraps a single text field with a default value.
type inputModel struct {
	title   string
	input   textinput.Model
	done    bool
	aborted bool
}

func (m inputModel) Init() tea.Cmd { return textinput.Blink }

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	return titleStyle.Render(m.title) + "\n\n" + m.input.View() + "\n\n" +
		helpStyle.Render("enter: confirm • esc: abort") + "\n"
}

// Input prompts for a free-form value, returning def when left empty.
func Input(title, def string) (string, error) {
	ti := textinput.New()
	ti.Placeholder = def
	ti.Focus()

	final, err := tea.NewProgram(inputModel{title: title, input: ti}).Run()
	if err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}
	result := final.(inputModel)
	if result.aborted {
		return "", ErrAborted
	}
	value := strings.TrimSpace(result.input.Value())
	if value == "" {
		return def, nil
	}
	return value, nil
}
