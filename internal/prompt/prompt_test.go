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
package prompt

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func press(t *testing.T, m selectModel, keys ...tea.KeyMsg) selectModel {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(selectModel)
	}
	return m
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keySpace = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyQuit  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
)

func TestSelectModelSingle(t *testing.T) {
	m := selectModel{title: "pick", items: []string{"a", "b", "c"}}

	m = press(t, m, keyDown, keyDown, keyEnter)
	assert.True(t, m.done)
	assert.Equal(t, []int{2}, m.picked)
}

func TestSelectModelMultiPreservesPickOrder(t *testing.T) {
	m := selectModel{title: "pick", items: []string{"a", "b", "c"}, multi: true, limit: 2}

	// Pick c first, then a: the composite key order must follow the picks.
	m = press(t, m, keyDown, keyDown, keySpace, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp}, keySpace, keyEnter)
	assert.True(t, m.done)
	assert.Equal(t, []int{2, 0}, m.picked)
}

func TestSelectModelMultiToggle(t *testing.T) {
	m := selectModel{items: []string{"a", "b"}, multi: true}

	m = press(t, m, keySpace, keySpace)
	assert.Empty(t, m.picked, "second space on the same item untoggles it")

	m = press(t, m, keyEnter)
	assert.False(t, m.done, "enter with nothing picked must not confirm")
}

func TestSelectModelLimitEnforced(t *testing.T) {
	m := selectModel{items: []string{"a", "b", "c"}, multi: true, limit: 2}

	m = press(t, m, keySpace, keyDown, keySpace, keyDown, keySpace)
	assert.Equal(t, []int{0, 1}, m.picked, "picks beyond the limit are ignored")

	m = press(t, m, keyEnter)
	assert.True(t, m.done)
}

func TestSelectModelAbort(t *testing.T) {
	m := selectModel{items: []string{"a"}}
	m = press(t, m, keyQuit)
	assert.True(t, m.aborted)
}
