package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ukaji3/xlsdeid/pkg/deid/models"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	flagStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	cursorStyle  = lipgloss.NewStyle().Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	previewStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	switch m.screen {
	case screenPassOne:
		b.WriteString(titleStyle.Render("Pass one: columns matched by name"))
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Identifying strings: " + strings.Join(m.sess.IdentifyingStrings(), ", ")))
		b.WriteString("\n\n")
		m.writeItems(&b)
	case screenPassTwo:
		b.WriteString(titleStyle.Render("Pass two: columns sharing values with removed columns"))
		b.WriteString("\n")
		if rec := m.sess.Record(); !rec.Empty() {
			b.WriteString(labelStyle.Render("Removed: " + strings.Join(rec.Columns, ", ")))
		}
		b.WriteString("\n\n")
		m.writeItems(&b)
	case screenOutput:
		b.WriteString(titleStyle.Render("Output file"))
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Columns kept: " + strings.Join(m.sess.Table().ColumnNames(), ", ")))
		b.WriteString("\n\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	case screenDone:
		b.WriteString(successStyle.Render(m.status))
		b.WriteString("\n")
		return b.String()
	}

	if m.edit != editNone {
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	if m.data != nil && len(m.data.Columns) > 0 {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Original data"))
		b.WriteString("\n")
		b.WriteString(previewStyle.Render(renderTable(m.data)))
		b.WriteString("\n")
	}

	if m.preview != nil && len(m.preview.Columns) > 0 {
		b.WriteString("\n")
		b.WriteString(previewStyle.Render(renderTable(m.preview)))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) writeItems(b *strings.Builder) {
	if len(m.items) == 0 {
		b.WriteString(labelStyle.Render("no columns"))
		b.WriteString("\n")
		return
	}
	flagged := 0
	for i, it := range m.items {
		pointer := "  "
		if i == m.cursor {
			pointer = cursorStyle.Render("> ")
		}
		box := "[ ]"
		if it.checked {
			box = "[x]"
		}
		line := fmt.Sprintf("%s%s %s", pointer, box, it.column)
		if it.flagged {
			flagged++
			line += "  " + flagStyle.Render(it.detail)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if flagged == 0 {
		b.WriteString(labelStyle.Render("no columns identified"))
		b.WriteString("\n")
	}
}

// renderTable formats a table preview as aligned text.
func renderTable(t *models.Table) string {
	widths := make([]int, len(t.Columns))
	cells := make([][]string, t.RowCount()+1)
	cells[0] = t.ColumnNames()
	for r := 0; r < t.RowCount(); r++ {
		row := make([]string, len(t.Columns))
		for c, v := range t.Row(r) {
			row[c], _ = models.CellString(v)
		}
		cells[r+1] = row
	}
	for _, row := range cells {
		for c, s := range row {
			if w := lipgloss.Width(s); w > widths[c] {
				widths[c] = w
			}
		}
	}

	lines := make([]string, len(cells))
	for r, row := range cells {
		parts := make([]string, len(row))
		for c, s := range row {
			parts[c] = s + strings.Repeat(" ", widths[c]-lipgloss.Width(s))
		}
		lines[r] = strings.TrimRight(strings.Join(parts, "  "), " ")
	}
	return strings.Join(lines, "\n")
}
