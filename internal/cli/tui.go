package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ErrorListModel - Interactive problem list
// =============================================================================

// ErrorListModel is the bubbletea model behind "check --interactive". It
// shows the problems found in one diagram and closes on enter or q.
type ErrorListModel struct {
	Title  string
	Errors []string
	Cursor int
	Height int
	Offset int
	Width  int
}

// NewErrorListModel creates a dialog listing errs.
func NewErrorListModel(title string, errs []string) ErrorListModel {
	return ErrorListModel{Title: title, Errors: errs, Height: 15, Width: 100}
}

func (m ErrorListModel) Init() tea.Cmd {
	return nil
}

func (m ErrorListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc", "enter":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Errors)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
		m.Width = max(msg.Width-12, 20)
	}
	return m, nil
}

func (m ErrorListModel) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ scroll  ⏎/q close"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Errors))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		rows = append(rows, []string{strconv.Itoa(i + 1), truncate(m.Errors[i], m.Width)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Problem").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			if col == 0 {
				return listDimStyle
			}
			return lipgloss.NewStyle().Foreground(colorRed)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	if len(m.Errors) > 0 {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Errors))))
	}
	return b.String()
}

// showErrorList runs the dialog until the user closes it.
func showErrorList(title string, errs []string) error {
	_, err := tea.NewProgram(NewErrorListModel(title, errs)).Run()
	return err
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 1 || len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
