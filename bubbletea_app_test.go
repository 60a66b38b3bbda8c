// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T, history int) Model {
	t.Helper()
	ix, _ := newTestIndex(t, "avl")
	cfg := testConfig()
	cfg.Shell.History = history
	rc := NewReportCache(time.Minute)
	return InitialModel(ix, newRegistry(rc), rc, cfg, discardLogger())
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	updated, ok := next.(Model)
	require.True(t, ok)
	return updated
}

func enter(t *testing.T, m Model, line string) Model {
	t.Helper()
	m.textInput.SetValue(line)
	return send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
}

func TestModelWaitsForWindowSize(t *testing.T) {
	m := newTestModel(t, 100)
	assert.Equal(t, "Initializing...", m.View())

	m = send(t, m, tea.WindowSizeMsg{Width: 30, Height: 10})
	assert.Contains(t, m.View(), "Terminal too small")

	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.True(t, m.ready)
	assert.Equal(t, 120, m.width)
	assert.Contains(t, m.View(), "Output")
}

func TestModelRunsOperations(t *testing.T) {
	m := newTestModel(t, 100)
	m = enter(t, m, "insert 5 7")

	require.Len(t, m.lines, 3)
	assert.Contains(t, m.lines[0], "> insert 5 7")
	assert.Equal(t, "inserted (5)", m.lines[1])
	assert.Equal(t, "inserted (7)", m.lines[2])
	assert.Equal(t, "2 nodes, height 2", m.status)
	assert.False(t, m.failed)
	assert.Empty(t, m.textInput.Value())
	assert.Equal(t, 2, m.index.Tree().Len())

	m = enter(t, m, "splay 5")
	assert.True(t, m.failed)
	assert.Contains(t, m.status, "splay")
}

func TestModelIgnoresBlankLines(t *testing.T) {
	m := newTestModel(t, 100)
	m = enter(t, m, "   ")
	assert.Empty(t, m.lines)
	assert.Empty(t, m.history)
}

func TestModelHistory(t *testing.T) {
	m := newTestModel(t, 100)
	m = enter(t, m, "insert 1")
	m = enter(t, m, "height")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "height", m.textInput.Value())
	m = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "insert 1", m.textInput.Value())
	m = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "insert 1", m.textInput.Value(), "stops at the oldest line")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Empty(t, m.textInput.Value())
}

func TestModelCapsOutputLog(t *testing.T) {
	m := newTestModel(t, 4)
	for _, line := range []string{"insert 1", "insert 2", "insert 3"} {
		m = enter(t, m, line)
	}
	require.Len(t, m.lines, 4)
	assert.Equal(t, "inserted (3)", m.lines[3])
}

func TestModelTreePaneFollowsVersion(t *testing.T) {
	m := newTestModel(t, 100)
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = enter(t, m, "insert 2 1 3")

	view := m.treeView.View()
	for _, key := range []string{"1", "2", "3"} {
		assert.True(t, strings.Contains(view, "+ "+key), "tree pane shows %s", key)
	}
	assert.Equal(t, 2, m.reports.Len(), "one drawing for the empty tree and one after the insert")
}
