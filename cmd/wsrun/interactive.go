package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle  = lipgloss.NewStyle().Faint(true)
)

// inputModel is a bubbletea model for text input with validation.
type inputModel struct {
	textInput textinput.Model
	title     string
	hint      string
	validate  func(string) error
	errMsg    string
	done      bool
	aborted   bool
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			val := m.textInput.Value()
			if m.validate != nil {
				if err := m.validate(val); err != nil {
					m.errMsg = err.Error()
					return m, nil
				}
			}
			m.done = true
			return m, tea.Quit
		}
	}
	m.errMsg = ""
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title) + "\n")
	if m.hint != "" {
		b.WriteString(hintStyle.Render(m.hint) + "\n")
	}
	b.WriteString(m.textInput.View() + "\n")
	if m.errMsg != "" {
		b.WriteString(errStyle.Render(m.errMsg) + "\n")
	}
	return b.String()
}

// newScriptInput builds the prompt model for choosing a script. Tab
// completes from the known script names.
func newScriptInput(scripts []string) inputModel {
	ti := textinput.New()
	ti.Placeholder = "build"
	ti.ShowSuggestions = true
	ti.SetSuggestions(scripts)
	ti.Focus()

	return inputModel{
		textInput: ti,
		title:     "Script to run",
		hint:      "available: " + strings.Join(scripts, ", "),
		validate:  scriptValidator(scripts),
	}
}

// scriptValidator accepts only names of scripts declared by some project.
func scriptValidator(scripts []string) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" {
			return fmt.Errorf("script name is required")
		}
		if !slices.Contains(scripts, s) {
			return fmt.Errorf("no project declares script %q", s)
		}
		return nil
	}
}

func promptScript(scripts []string) (string, error) {
	if len(scripts) == 0 {
		return "", fmt.Errorf("no project declares any scripts")
	}
	result, err := tea.NewProgram(newScriptInput(scripts)).Run()
	if err != nil {
		return "", err
	}
	rm := result.(inputModel)
	if rm.aborted {
		return "", fmt.Errorf("user aborted")
	}
	return strings.TrimSpace(rm.textInput.Value()), nil
}
