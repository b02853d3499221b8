// Package tui is the local terminal front-end: the same dialog controller a
// chat transport drives, rendered as a filterable menu.
package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/listbot/internal/dialog"
	"github.com/atomicstack/listbot/internal/theme"
)

type Mode int

const (
	ModeMenu Mode = iota
	ModeInput
)

var styles = theme.Default()

// Model implements the Bubble Tea model for the console menu.
type Model struct {
	controller *dialog.Controller
	user       string

	mode    Mode
	text    string
	full    []Item
	items   []Item
	cursor  int
	offset  int
	infoMsg string
	errMsg  string

	filter textinput.Model
	input  textinput.Model
	prompt string

	width    int
	height   int
	quitting bool
}

// NewModel initialises the UI with the controller's opening outcome.
func NewModel(controller *dialog.Controller, user string) *Model {
	filter := textinput.New()
	filter.Placeholder = "filter"
	filter.Prompt = ""
	filter.Focus()

	input := textinput.New()
	input.CharLimit = 128

	m := &Model{
		controller: controller,
		user:       user,
		filter:     filter,
		input:      input,
	}
	m.apply(controller.Start(user))
	return m
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampViewport()
		return m, nil
	case tea.KeyMsg:
		if m.mode == ModeInput {
			return m.updateInput(msg)
		}
		return m.updateMenu(msg)
	}
	return m, nil
}

func (m *Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	case "up", "ctrl+p":
		m.moveCursor(-1)
		return m, nil
	case "down", "ctrl+n":
		m.moveCursor(1)
		return m, nil
	case "pgup":
		m.moveCursor(-m.maxVisible())
		return m, nil
	case "pgdown":
		m.moveCursor(m.maxVisible())
		return m, nil
	case "home":
		m.cursor = 0
		m.clampViewport()
		return m, nil
	case "end":
		if len(m.items) > 0 {
			m.cursor = len(m.items) - 1
		}
		m.clampViewport()
		return m, nil
	case "enter":
		if m.cursor >= 0 && m.cursor < len(m.items) {
			m.apply(m.controller.Action(m.user, m.items[m.cursor].Token))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		// Abandon the prompt and fall back to the last menu.
		m.mode = ModeMenu
		m.prompt = ""
		m.filter.Focus()
		return m, nil
	case "enter":
		value := m.input.Value()
		if strings.TrimSpace(value) == "" && m.prompt != "" {
			return m, nil
		}
		m.apply(m.controller.Text(m.user, value))
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// apply folds one controller outcome into the model.
func (m *Model) apply(outcome dialog.Outcome) {
	m.infoMsg = ""
	m.errMsg = ""

	switch {
	case outcome.View != nil:
		m.mode = ModeMenu
		m.prompt = ""
		m.text = outcome.View.Text
		m.full = flatten(outcome.View)
		m.filter.SetValue("")
		m.filter.Focus()
		m.input.Blur()
		m.items = cloneItems(m.full)
		m.cursor = 0
		m.offset = 0
		m.infoMsg = outcome.Info
	case outcome.Prompt != "":
		m.mode = ModeInput
		m.prompt = outcome.Prompt
		m.input.SetValue("")
		m.input.Focus()
		m.filter.Blur()
	case outcome.Fail != "":
		m.mode = ModeMenu
		m.prompt = ""
		m.errMsg = outcome.Fail
		m.filter.Focus()
	case outcome.Info != "":
		m.infoMsg = outcome.Info
	}
}

func (m *Model) applyFilter() {
	query := m.filter.Value()
	m.items = filterItems(m.full, query)
	if idx := bestMatchIndex(m.items, query); idx >= 0 {
		m.cursor = idx
	} else {
		m.cursor = 0
	}
	m.offset = 0
	m.clampViewport()
}

func (m *Model) moveCursor(delta int) {
	if len(m.items) == 0 {
		m.cursor = 0
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.items) {
		m.cursor = len(m.items) - 1
	}
	m.clampViewport()
}

func (m *Model) maxVisible() int {
	// Header, blank separator, filter line and footer take four rows.
	visible := m.height - 4 - strings.Count(m.text, "\n") - 1
	if visible < 1 {
		visible = 10
	}
	return visible
}

func (m *Model) clampViewport() {
	visible := m.maxVisible()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// Run executes the console program until the user quits.
func Run(controller *dialog.Controller, user string) error {
	model := NewModel(controller, user)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
