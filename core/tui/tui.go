/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Rpncalc Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rpncalc/rpncalc/core/expr"
	"github.com/rpncalc/rpncalc/core/shell"
)

// Config holds the appearance of the calculator prompt
type Config struct {
	Title        string
	Placeholder  string
	HistoryLimit int // Number of past evaluations kept on screen
	TitleStyle   lipgloss.Style
	InputStyle   lipgloss.Style
	ResultStyle  lipgloss.Style
	ErrorStyle   lipgloss.Style
	HelpStyle    lipgloss.Style
	HelpText     string
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() Config {
	return Config{
		Title:        "Enter an expression:",
		Placeholder:  "( 1 + 2 ) * 3",
		HistoryLimit: 10,
		TitleStyle:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		InputStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		ResultStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		ErrorStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		HelpStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		HelpText:     "Enter: evaluate • exit/Esc: quit",
	}
}

// Entry is one evaluated line
type Entry struct {
	Input  string
	Output string
	Failed bool
}

// Model is the bubbletea model of the interactive calculator
type Model struct {
	input    textinput.Model
	config   Config
	entries  []Entry
	quitting bool
}

// New creates the calculator model
func New(config Config) Model {
	ti := textinput.New()
	ti.Placeholder = config.Placeholder
	ti.TextStyle = config.InputStyle
	ti.Focus()

	return Model{input: ti, config: config}
}

// Entries returns the evaluations kept on screen, oldest first
func (m Model) Entries() []Entry {
	return append([]Entry(nil), m.entries...)
}

// Quitting reports whether the user asked to leave
func (m Model) Quitting() bool {
	return m.quitting
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			line := m.input.Value()
			if shell.IsExit(line) {
				m.quitting = true
				return m, tea.Quit
			}
			m.push(evaluate(line))
			m.input.Reset()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) push(e Entry) {
	m.entries = append(m.entries, e)
	if limit := m.config.HistoryLimit; limit > 0 && len(m.entries) > limit {
		m.entries = m.entries[len(m.entries)-limit:]
	}
}

func evaluate(line string) Entry {
	result, err := shell.Evaluate(line)
	if err != nil {
		return Entry{Input: line, Output: err.Error(), Failed: true}
	}
	return Entry{Input: line, Output: "Result: " + expr.FormatResult(result)}
}

// View implements tea.Model
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	for _, e := range m.entries {
		b.WriteString(m.config.HelpStyle.Render("> " + e.Input))
		b.WriteString("\n")
		if e.Failed {
			b.WriteString(m.config.ErrorStyle.Render(e.Output))
		} else {
			b.WriteString(m.config.ResultStyle.Render(e.Output))
		}
		b.WriteString("\n\n")
	}
	b.WriteString(m.config.TitleStyle.Render(m.config.Title))
	b.WriteString(" ")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.config.HelpStyle.Render(m.config.HelpText))
	b.WriteString("\n")
	return b.String()
}

// Run starts the interactive calculator and blocks until the user quits
func Run(config Config, opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(New(config), opts...).Run()
	return err
}
