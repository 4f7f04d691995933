package resource

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/freightdesk/internal/theme"
	"github.com/nhle/freightdesk/internal/ui"
)

// View renders the screen.
func (m Model) View() string {
	switch m.mode {
	case modeForm:
		return m.viewForm()
	case modeConfirmDelete:
		if m.confirmForm == nil {
			return ""
		}
		return lipgloss.NewStyle().Padding(1, 2).Render(m.confirmForm.View())
	default:
		return m.viewList()
	}
}

func (m Model) viewList() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorText)
	countStyle := lipgloss.NewStyle().Foreground(theme.ColorMuted)
	b.WriteString(titleStyle.Render(m.res.Plural()))
	b.WriteString(countStyle.Render(fmt.Sprintf("  %d of %d", len(m.visible), len(m.rows))))
	b.WriteString("\n\n")

	if m.mode == modeSearch || m.query != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n\n")
	}

	cols := m.res.Columns()
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = fit(c.Title, c.Width)
	}
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorAccent).PaddingLeft(2)
	b.WriteString(headerStyle.Render(strings.Join(header, " ")))
	b.WriteString("\n")

	emptyStyle := lipgloss.NewStyle().Foreground(theme.ColorMuted).Italic(true).PaddingLeft(2)
	switch {
	case m.loading:
		b.WriteString(emptyStyle.Render("Loading..."))
	case len(m.rows) == 0:
		b.WriteString(emptyStyle.Render(fmt.Sprintf("No %s yet. Press 'n' to add one.", strings.ToLower(m.res.Plural()))))
	case len(m.visible) == 0:
		b.WriteString(emptyStyle.Render("Nothing matches the search."))
	default:
		start, end := m.window()
		for i := start; i < end; i++ {
			r := m.visible[i]
			cells := make([]string, len(cols))
			for j, c := range cols {
				v := ""
				if j < len(r.Cells) {
					v = r.Cells[j]
				}
				cells[j] = fit(v, c.Width)
			}
			line := strings.Join(cells, " ")
			if i == m.selectedIdx {
				b.WriteString(theme.SelectedItemStyle.Render(line))
			} else {
				b.WriteString(theme.ListItemStyle.Render(line))
			}
			b.WriteString("\n")
		}
	}

	hints := "n new | e edit | d delete | / search | r refresh | esc back"
	if m.gated() {
		hints = "n new | e request edit | d request delete | / search | r refresh | esc back"
	}
	b.WriteString("\n")
	b.WriteString(theme.HelpStyle.Render(hints))

	return lipgloss.NewStyle().Padding(1, 2).Width(m.width).Height(m.height).Render(b.String())
}

func (m Model) viewForm() string {
	if m.form == nil {
		return ""
	}

	title := "New " + m.res.Name()
	if m.status == statusEdit {
		title = fmt.Sprintf("Edit %s %s", m.res.Name(), m.editing.Key)
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(theme.ColorText).Render(title))
	b.WriteString("\n")
	if m.status == statusEdit && m.gated() {
		b.WriteString(theme.HelpStyle.Render("Changes are sent to the admin for approval."))
		b.WriteString("\n")
	}
	if m.duplicate {
		warn := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorDanger)
		b.WriteString(warn.Render(ui.DuplicateText(m.res.Name())))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.form.View())

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

// window returns the slice of visible rows that fits on screen around the
// selection.
func (m Model) window() (int, int) {
	avail := m.height - 9
	if avail < 3 {
		avail = 3
	}
	start := 0
	if m.selectedIdx >= avail {
		start = m.selectedIdx - avail + 1
	}
	end := start + avail
	if end > len(m.visible) {
		end = len(m.visible)
	}
	return start, end
}

func fit(s string, w int) string {
	if w <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) > w {
		if w == 1 {
			return "…"
		}
		return string(r[:w-1]) + "…"
	}
	return s + strings.Repeat(" ", w-len(r))
}
