package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/truncate"
)

const defaultWidth = 80

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.mode == ModeInput {
		return m.inputView()
	}
	return m.menuView()
}

func (m *Model) menuView() string {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}

	var b strings.Builder
	for i, line := range strings.Split(m.text, "\n") {
		style := styles.Body
		if i == 0 {
			style = styles.Header
		}
		b.WriteString(style.Render(truncate.String(line, uint(width))))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	visible := m.maxVisible()
	end := m.offset + visible
	if end > len(m.items) {
		end = len(m.items)
	}
	for i := m.offset; i < end; i++ {
		label := truncate.String(m.items[i].Label, uint(width-2))
		if i == m.cursor {
			b.WriteString(styles.ItemIndicator.Render(">"))
			b.WriteString(styles.SelectedItem.Render(" " + label))
		} else {
			b.WriteString(styles.Item.Render("  " + label))
		}
		b.WriteString("\n")
	}
	if len(m.items) == 0 {
		b.WriteString(styles.Item.Render("  (no matching entries)"))
		b.WriteString("\n")
	}

	b.WriteString(styles.FilterPrompt.Render("/ "))
	b.WriteString(styles.Filter.Render(m.filter.View()))
	b.WriteString("\n")
	b.WriteString(m.footer(width))
	return b.String()
}

func (m *Model) inputView() string {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	var b strings.Builder
	b.WriteString(styles.Header.Render(truncate.String(m.prompt, uint(width))))
	b.WriteString("\n\n")
	b.WriteString(styles.InputPrompt.Render("> "))
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(styles.Footer.Render("enter to submit, esc to cancel"))
	return b.String()
}

func (m *Model) footer(width int) string {
	switch {
	case m.errMsg != "":
		return styles.Error.Render(truncate.String(m.errMsg, uint(width)))
	case m.infoMsg != "":
		return styles.Info.Render(truncate.String(m.infoMsg, uint(width)))
	}
	hint := "enter to select, esc to quit"
	if len(m.items) > 0 {
		hint = fmt.Sprintf("%d/%d  %s", m.cursor+1, len(m.items), hint)
	}
	return styles.Footer.Render(truncate.String(hint, uint(width)))
}
