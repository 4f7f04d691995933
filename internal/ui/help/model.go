package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/freightdesk/internal/keys"
	"github.com/nhle/freightdesk/internal/theme"
)

// commands documents the palette verbs.
var commands = [][2]string{
	{":go <section>", "open a section, e.g. go freight-memos"},
	{":inbox", "open notifications"},
	{":reports", "export history"},
	{":export <kind> <name> <from> <to>", "export a report directly"},
	{":refresh", "reload the current screen"},
	{":logout", "forget the saved session"},
	{":quit", "leave FreightDesk"},
}

// Model is the help overlay. It scrolls when the terminal is short.
type Model struct {
	keys     *keys.KeyMap
	help     help.Model
	viewport viewport.Model
	sections []string
	width    int
	height   int
}

// New creates the help overlay.
func New(k *keys.KeyMap, width, height int) Model {
	m := Model{keys: k, help: help.New()}
	m.help.ShowAll = true
	m.SetSize(width, height)
	return m
}

// SetSections lists the section names accepted by ":go".
func (m *Model) SetSections(slugs []string) {
	m.sections = slugs
	m.viewport.SetContent(m.body())
}

// Init returns nil.
func (m Model) Init() tea.Cmd { return nil }

// Update scrolls the overlay.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) body() string {
	heading := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorText)
	verb := lipgloss.NewStyle().Foreground(theme.ColorAccent).Width(34)

	var b strings.Builder
	b.WriteString(heading.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n\n")

	b.WriteString(heading.Render("Commands"))
	b.WriteString("\n\n")
	for _, c := range commands {
		fmt.Fprintf(&b, "%s  %s\n", verb.Render(c[0]), theme.HelpStyle.Render(c[1]))
	}

	if len(m.sections) > 0 {
		b.WriteString("\n")
		b.WriteString(heading.Render("Sections"))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Width(max(m.viewport.Width, 20)).Render(strings.Join(m.sections, "  ")))
		b.WriteString("\n")
	}
	return b.String()
}

// View renders the overlay.
func (m Model) View() string {
	return theme.DetailPanelStyle.Render(m.viewport.View())
}

// SetSize fits the overlay inside the content area, leaving room for the
// panel border and padding.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = max(width-8, 20)
	m.viewport = viewport.New(max(width-8, 20), max(height-4, 3))
	m.viewport.SetContent(m.body())
}
