package home

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/freightdesk/internal/keys"
	"github.com/nhle/freightdesk/internal/theme"
)

// Item is one menu entry.
type Item struct {
	Slug  string
	Title string
	Group string
}

// OpenMsg asks the parent to open the section with the given slug.
type OpenMsg struct {
	Slug string
}

// Model is the home menu. Items are shown under their group headings in
// the order given.
type Model struct {
	items       []Item
	keys        *keys.KeyMap
	selectedIdx int
	greeting    string
	width       int
	height      int
}

// New creates the home menu.
func New(items []Item, greeting string, k *keys.KeyMap, width, height int) Model {
	return Model{
		items:    items,
		keys:     k,
		greeting: greeting,
		width:    width,
		height:   height,
	}
}

// Init does nothing; the menu is static.
func (m Model) Init() tea.Cmd { return nil }

// Selected returns the highlighted item.
func (m Model) Selected() (Item, bool) {
	if m.selectedIdx < 0 || m.selectedIdx >= len(m.items) {
		return Item{}, false
	}
	return m.items[m.selectedIdx], true
}

// Update handles navigation.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Down):
			if len(m.items) > 0 {
				m.selectedIdx = (m.selectedIdx + 1) % len(m.items)
			}
		case key.Matches(msg, m.keys.Up):
			if len(m.items) > 0 {
				m.selectedIdx--
				if m.selectedIdx < 0 {
					m.selectedIdx = len(m.items) - 1
				}
			}
		case key.Matches(msg, m.keys.Select):
			if it, ok := m.Selected(); ok {
				return m, func() tea.Msg { return OpenMsg{Slug: it.Slug} }
			}
		default:
			// 1-9 jump straight to an item.
			if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
				idx := int(s[0] - '1')
				if idx < len(m.items) {
					m.selectedIdx = idx
					slug := m.items[idx].Slug
					return m, func() tea.Msg { return OpenMsg{Slug: slug} }
				}
			}
		}
	}
	return m, nil
}

// View renders the menu.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(theme.ColorText).Render(m.greeting))
	b.WriteString("\n")

	groupStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorAccent).MarginTop(1)
	numStyle := lipgloss.NewStyle().Foreground(theme.ColorMuted)

	group := ""
	for i, it := range m.items {
		if it.Group != group {
			group = it.Group
			b.WriteString(groupStyle.Render(group))
			b.WriteString("\n")
		}
		num := " "
		if i < 9 {
			num = fmt.Sprintf("%d", i+1)
		}
		line := numStyle.Render(num) + " " + it.Title
		if i == m.selectedIdx {
			b.WriteString(theme.SelectedItemStyle.Render(line))
		} else {
			b.WriteString(theme.ListItemStyle.Render(line))
		}
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Padding(1, 2).Width(m.width).Render(b.String())
}

// SetSize updates the menu dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
