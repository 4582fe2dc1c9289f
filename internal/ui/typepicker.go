package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// TypeChoice is one entry in the interactive ABI type picker.
type TypeChoice struct {
	Tag  string // the type tag returned on selection, e.g. "uint256"
	Hint string // shown dimmed, e.g. "unsigned 256-bit integer"
}

// typePickerModel is the Bubble Tea model for the type picker.
type typePickerModel struct {
	title    string
	choices  []TypeChoice
	cursor   int
	selected *TypeChoice
	quitting bool
}

func (m typePickerModel) Init() tea.Cmd { return nil }

func (m typePickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.choices)-1 {
				m.cursor++
			}
		case "enter", " ":
			if len(m.choices) > 0 {
				ch := m.choices[m.cursor]
				m.selected = &ch
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m typePickerModel) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(StyleTitle.Render("  "+m.title) + "\n\n")

	for i, ch := range m.choices {
		prefix := "    "
		if i == m.cursor {
			prefix = "  ▸ "
		}

		line := prefix + StyleType.Render(fmt.Sprintf("%-12s", ch.Tag))
		if ch.Hint != "" {
			line += "  " + StyleMeta.Render(ch.Hint)
		}

		if i == m.cursor {
			sb.WriteString(StyleSelected.Render(line) + "\n")
		} else {
			sb.WriteString(line + "\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(StyleMeta.Render("  [ ↑↓ / jk ] navigate   [ Enter ] select   [ q ] cancel") + "\n")
	return sb.String()
}

// PickType runs the interactive type picker and returns the chosen tag.
// Returns ("", nil) if the user cancels. Error only on TUI failure.
func PickType(title string, choices []TypeChoice) (string, error) {
	if len(choices) == 0 {
		return "", fmt.Errorf("no types to pick from")
	}

	m := typePickerModel{title: title, choices: choices}
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("type picker: %w", err)
	}

	fm := final.(typePickerModel)
	if fm.selected == nil {
		return "", nil
	}
	return fm.selected.Tag, nil
}
