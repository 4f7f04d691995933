package inbox

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/freightdesk/internal/approval"
	"github.com/nhle/freightdesk/internal/theme"
)

// View renders the inbox.
func (m Model) View() string {
	if m.showDetail {
		return m.viewDetail()
	}
	return m.viewList()
}

func (m Model) viewList() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorText)
	countStyle := lipgloss.NewStyle().Foreground(theme.ColorMuted)
	b.WriteString(titleStyle.Render("Notifications"))
	b.WriteString(countStyle.Render(fmt.Sprintf("  %d pending", len(m.decisions))))
	b.WriteString("\n\n")

	emptyStyle := lipgloss.NewStyle().Foreground(theme.ColorMuted).Italic(true).PaddingLeft(2)
	switch {
	case m.loading && len(m.decisions) == 0:
		b.WriteString(emptyStyle.Render("Loading..."))
	case len(m.decisions) == 0:
		b.WriteString(emptyStyle.Render("Inbox is empty."))
	default:
		for i, d := range m.decisions {
			badge := theme.ActionStyle(d.Kind.Action).Render(fmt.Sprintf("%-8s", d.Kind.Action))
			line := badge + " " + d.Title
			if m.busy == d.Notification.ID {
				line += countStyle.Render("  working...")
			}
			if i == m.selectedIdx {
				b.WriteString(theme.SelectedItemStyle.Render(line))
			} else {
				b.WriteString(theme.ListItemStyle.Render(line))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(theme.HelpStyle.Render(m.hints()))

	return lipgloss.NewStyle().Padding(1, 2).Width(m.width).Render(b.String())
}

func (m Model) viewDetail() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		theme.DetailPanelStyle.Width(m.width-2).Render(m.viewport.View()),
		theme.HelpStyle.Render(m.hints()),
	)
}

func (m Model) hints() string {
	d, ok := m.selected()
	if !ok {
		return "r refresh | esc back"
	}
	var parts []string
	if !m.showDetail {
		parts = append(parts, "enter open")
	}
	if d.Mode == approval.ModeApproval {
		parts = append(parts, "a approve", "x decline")
	}
	if offers(d, actionNoted) {
		parts = append(parts, "o noted")
	}
	parts = append(parts, "r refresh", "esc back")
	return strings.Join(parts, " | ")
}

func (m Model) renderDetail() string {
	d, ok := m.selected()
	if !ok {
		return ""
	}
	n := d.Notification

	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorText)
	sections = append(sections, titleStyle.Render(d.Title))

	badge := theme.ActionStyle(n.ActionType).Render(strings.ToUpper(string(n.ActionType)))
	entity := lipgloss.NewStyle().Foreground(theme.ColorAccent).Render(string(n.EntityType))
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, badge, "  ", entity))
	sections = append(sections, "")

	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorMuted)
	valStyle := lipgloss.NewStyle().Foreground(theme.ColorText)
	meta := func(label, value string) {
		if value == "" {
			return
		}
		sections = append(sections, fmt.Sprintf("%s %s",
			metaStyle.Render(fmt.Sprintf("%-10s", label+":")),
			valStyle.Render(value),
		))
	}
	meta("Request", n.RequestID)
	if n.CreatedByRole != "" {
		meta("From", strings.TrimSpace(n.CreatedByRole+" "+n.CreatedByID))
	}
	if !n.CreatedAt.IsZero() {
		meta("Created", n.CreatedAt.Format("2006-01-02 15:04"))
	}
	meta("Status", n.Status)

	sepStyle := lipgloss.NewStyle().Foreground(theme.ColorBar)
	separator := sepStyle.Render(strings.Repeat("─", max(min(m.width-8, 80), 1)))
	sections = append(sections, "", separator, "")

	body := d.Description
	if body == "" {
		body = renderFields(d)
	}
	if body == "" {
		body = lipgloss.NewStyle().Foreground(theme.ColorMuted).Italic(true).Render("No details")
	}
	sections = append(sections, body)

	if !d.Known {
		sections = append(sections, "", metaStyle.Render("This notification type is not recognised; it can only be marked as read."))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderFields lists a flat record payload as sorted key: value lines.
func renderFields(d approval.Decision) string {
	fields, err := d.Notification.Fields()
	if err != nil || len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %v", k, fields[k]))
	}
	return strings.Join(lines, "\n")
}
