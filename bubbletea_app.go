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
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/cybrota/avlindex/ops"
)

// Model represents the Bubble Tea application state
type Model struct {
	ready bool

	textInput    textinput.Model
	outputView   viewport.Model
	treeView     viewport.Model
	helpViewport viewport.Model

	// Data
	index    ops.Index
	registry *ops.Registry
	reports  *ReportCache
	logger   *slog.Logger

	// State
	lines    []string // output log, oldest first
	maxLines int
	history  []string // lines entered so far
	histPos  int
	showHelp bool
	status   string
	failed   bool

	styles          *Styles
	glamourRenderer *glamour.TermRenderer

	// Dimensions
	width  int
	height int
}

// Styles holds all the styling for the application
type Styles struct {
	BorderFocused  lipgloss.Style
	BorderBlurred  lipgloss.Style
	Title          lipgloss.Style
	InputPrompt    lipgloss.Style
	HelpKey        lipgloss.Style
	HelpDesc       lipgloss.Style
	SuccessMessage lipgloss.Style
	ErrorMessage   lipgloss.Style
	Echo           lipgloss.Style
}

// NewStyles creates the default styles
func NewStyles() *Styles {
	return &Styles{
		BorderFocused: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Bold(true),
		BorderBlurred: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")),
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Padding(0, 1).
			Bold(true),
		InputPrompt: lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true),
		HelpKey: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Bold(true),
		HelpDesc: lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")),
		SuccessMessage: lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")).
			Bold(true),
		ErrorMessage: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
		Echo: lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")),
	}
}

// InitialModel builds the shell around ix.
func InitialModel(ix ops.Index, registry *ops.Registry, reports *ReportCache, cfg *Config, logger *slog.Logger) Model {
	styles := NewStyles()

	ti := textinput.New()
	ti.PromptStyle = styles.InputPrompt
	ti.Placeholder = "insert 50 fifty, delete 50, lca 20 60, report ..."
	ti.Prompt = "avl> "
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50

	outputView := viewport.New(0, 0)
	treeView := viewport.New(0, 0)
	helpViewport := viewport.New(0, 0)

	m := Model{
		textInput:    ti,
		outputView:   outputView,
		treeView:     treeView,
		helpViewport: helpViewport,
		index:        ix,
		registry:     registry,
		reports:      reports,
		logger:       logger,
		maxLines:     cfg.Shell.History,
		styles:       styles,
	}
	m.refreshTree()
	return m
}

// Init is called when the program starts
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles all the I/O
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			m.execute(m.textInput.Value())
			m.textInput.SetValue("")
			return m, nil

		case "up":
			if m.histPos > 0 {
				m.histPos--
				m.textInput.SetValue(m.history[m.histPos])
				m.textInput.CursorEnd()
			}
			return m, nil

		case "down":
			if m.histPos < len(m.history) {
				m.histPos++
			}
			if m.histPos == len(m.history) {
				m.textInput.SetValue("")
			} else {
				m.textInput.SetValue(m.history[m.histPos])
				m.textInput.CursorEnd()
			}
			return m, nil

		case "f1":
			m.showHelp = !m.showHelp
			if m.showHelp {
				m.updateHelp()
			}
			return m, nil

		case "ctrl+y":
			keys := m.index.Tree().Keys(m.index.Tree().InOrder())
			parts := make([]string, len(keys))
			for i, k := range keys {
				parts[i] = strconv.FormatInt(k, 10)
			}
			if err := copyToClipboard(strings.Join(parts, " ")); err != nil {
				m.setStatus(fmt.Sprintf("❌ copy failed: %v", err), true)
			} else {
				m.setStatus(fmt.Sprintf("📋 copied %d keys", len(keys)), false)
			}
			return m, nil

		case "pgup", "pgdown":
			var cmd tea.Cmd
			if m.showHelp {
				m.helpViewport, cmd = m.helpViewport.Update(msg)
			} else {
				m.outputView, cmd = m.outputView.Update(msg)
			}
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.ready = true
		if m.showHelp {
			m.updateHelp()
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// execute runs one line and appends the echo and the result to the log.
func (m *Model) execute(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	m.history = append(m.history, line)
	m.histPos = len(m.history)

	m.appendLines(m.styles.Echo.Render("> " + line))
	out, err := m.registry.Execute(m.index, line)
	if err != nil {
		m.logger.Debug("shell operation failed", "line", line, "err", err)
		m.appendLines(m.styles.ErrorMessage.Render("! " + err.Error()))
		m.setStatus(err.Error(), true)
	} else {
		if out != "" {
			m.appendLines(strings.Split(out, "\n")...)
		}
		m.setStatus(fmt.Sprintf("%d nodes, height %d", m.index.Tree().Len(), m.index.Tree().Height()), false)
	}
	m.refreshTree()
}

func (m *Model) appendLines(lines ...string) {
	m.lines = append(m.lines, lines...)
	if over := len(m.lines) - m.maxLines; over > 0 {
		m.lines = m.lines[over:]
	}
	m.outputView.SetContent(strings.Join(m.lines, "\n"))
	m.outputView.GotoBottom()
}

func (m *Model) setStatus(text string, failed bool) {
	m.status = text
	m.failed = failed
}

// refreshTree redraws the tree pane, reusing the drawing until the tree
// changes.
func (m *Model) refreshTree() {
	t := m.index.Tree()
	drawing := m.reports.GetOrRender("show", t.ID(), t.Version(), func() string {
		var sb strings.Builder
		if _, err := t.Print(&sb, false); err != nil {
			return err.Error()
		}
		return sb.String()
	})
	m.treeView.SetContent(drawing)
}

func (m *Model) updateHelp() {
	source := helpMarkdown(m.registry)
	if m.glamourRenderer == nil {
		width := m.helpViewport.Width - 4
		if width < 20 {
			width = 72
		}
		m.glamourRenderer, _ = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
	}

	// Try to render as markdown first
	if m.glamourRenderer != nil {
		if rendered, err := m.glamourRenderer.Render(source); err == nil {
			m.helpViewport.SetContent(rendered)
			return
		}
	}
	m.helpViewport.SetContent(source)
}

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.width < 40 || m.height < 12 {
		return "Terminal too small. Please resize your terminal."
	}

	leftWidth := (m.width / 2) - 1
	rightWidth := m.width - leftWidth - 3
	bodyHeight := m.height - 9

	outputBox := m.styles.BorderFocused.
		Width(leftWidth).
		Height(bodyHeight).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			m.styles.Title.Render(" 📜 Output "),
			m.outputView.View(),
		))

	rightTitle := " 🌳 Tree "
	rightContent := m.treeView.View()
	if m.showHelp {
		rightTitle = " 📖 Usage "
		rightContent = m.helpViewport.View()
	}
	rightBox := m.styles.BorderBlurred.
		Width(rightWidth).
		Height(bodyHeight).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			m.styles.Title.Render(rightTitle),
			rightContent,
		))

	m.textInput.Width = m.width - 8
	inputBox := m.styles.BorderFocused.
		Width(m.width - 2).
		Padding(0, 1).
		Render(m.textInput.View())

	status := m.styles.SuccessMessage.Render(m.status)
	if m.failed {
		status = m.styles.ErrorMessage.Render(m.status)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, outputBox, rightBox),
		inputBox,
		lipgloss.NewStyle().Padding(0, 0, 0, 2).Render(status),
		m.renderShellHelp(),
	)
}

// updateLayout updates component dimensions
func (m *Model) updateLayout() {
	leftWidth := (m.width / 2) - 1
	rightWidth := m.width - leftWidth - 3
	bodyHeight := m.height - 9

	m.outputView.Width = leftWidth - 2
	m.outputView.Height = bodyHeight - 2
	m.treeView.Width = rightWidth - 2
	m.treeView.Height = bodyHeight - 2
	m.helpViewport.Width = rightWidth - 2
	m.helpViewport.Height = bodyHeight - 2
	m.textInput.Width = m.width - 8
}

// renderShellHelp renders the key help footer
func (m Model) renderShellHelp() string {
	keys := []string{"enter", "↑/↓", "pgup/pgdown", "f1", "ctrl+y", "esc"}
	descs := []string{"run", "history", "scroll", "usage", "copy keys", "quit"}

	var helpEntries []string
	for i, key := range keys {
		helpEntries = append(helpEntries,
			fmt.Sprintf("%s %s",
				m.styles.HelpKey.Render(key),
				m.styles.HelpDesc.Render(descs[i])))
	}

	return lipgloss.NewStyle().
		Padding(1, 0, 0, 2).
		Render(strings.Join(helpEntries, " • "))
}

// copyToClipboard copies text to clipboard
func copyToClipboard(text string) error {
	return clipboard.WriteAll(text)
}

// runBubbleTeaApp starts the Bubble Tea application
func runBubbleTeaApp(ix ops.Index, registry *ops.Registry, reports *ReportCache, cfg *Config, logger *slog.Logger) error {
	model := InitialModel(ix, registry, reports, cfg, logger)

	program := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := program.Run()
	return err
}
