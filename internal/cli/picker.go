package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/loomui/loom/pkg/registry"
)

var (
	pickerSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	pickerNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	pickerDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// pickerModel is the bubbletea model for interactive component selection.
// Space toggles a component, enter confirms the selection.
type pickerModel struct {
	Components []registry.Component
	Cursor     int
	Checked    map[int]struct{}
	Height     int
	Offset     int
	Aborted    bool
	Confirmed  bool
}

// newPickerModel creates a picker over the given components.
func newPickerModel(comps []registry.Component) pickerModel {
	return pickerModel{
		Components: comps,
		Checked:    make(map[int]struct{}),
		Height:     15,
	}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.Aborted = true
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Components)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ", "x":
			if _, ok := m.Checked[m.Cursor]; ok {
				delete(m.Checked, m.Cursor)
			} else {
				m.Checked[m.Cursor] = struct{}{}
			}
		case "enter":
			m.Confirmed = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Components"))
	b.WriteString("\n")
	b.WriteString(pickerDimStyle.Render("↑/↓ navigate  space toggle  ⏎ install  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Components) {
		end = len(m.Components)
	}

	for i := m.Offset; i < end; i++ {
		comp := m.Components[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		checked := "[ ]"
		if _, ok := m.Checked[i]; ok {
			checked = "[" + StyleSuccess.Render("x") + "]"
		}

		line := fmt.Sprintf("%s%s %-20s", cursor, checked, comp.ID)
		if comp.Description != "" {
			line += "  " + pickerDimStyle.Render(comp.Description)
		}

		if i == m.Cursor {
			b.WriteString(pickerSelectedStyle.Render(line))
		} else {
			b.WriteString(pickerNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(pickerDimStyle.Render(fmt.Sprintf("  [%d/%d]  %d selected", m.Cursor+1, len(m.Components), len(m.Checked))))

	return b.String()
}

// selected returns the ids of all checked components in list order.
func (m pickerModel) selected() []string {
	var ids []string
	for i, comp := range m.Components {
		if _, ok := m.Checked[i]; ok {
			ids = append(ids, comp.ID)
		}
	}
	return ids
}

// pickComponents fetches the registry index and lets the user select
// components interactively. Returns nil when the user aborts.
func (c *CLI) pickComponents(ctx context.Context, client *registry.Client, refresh bool) ([]string, error) {
	comps, err := client.Components(ctx, refresh)
	if err != nil {
		return nil, err
	}
	if len(comps) == 0 {
		return nil, nil
	}

	prog := tea.NewProgram(newPickerModel(comps), tea.WithContext(ctx))
	final, err := prog.Run()
	if err != nil {
		return nil, fmt.Errorf("picker: %w", err)
	}

	m, ok := final.(pickerModel)
	if !ok || m.Aborted || !m.Confirmed {
		return nil, nil
	}
	return m.selected(), nil
}
