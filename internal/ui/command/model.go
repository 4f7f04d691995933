package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/freightdesk/internal/theme"
)

// Verbs understood by the palette.
const (
	VerbGo      = "go"
	VerbInbox   = "inbox"
	VerbReports = "reports"
	VerbExport  = "export"
	VerbRefresh = "refresh"
	VerbLogout  = "logout"
	VerbHelp    = "help"
	VerbQuit    = "quit"
)

var verbs = []string{VerbGo, VerbInbox, VerbReports, VerbExport, VerbRefresh, VerbLogout, VerbHelp, VerbQuit}

// Command is a parsed palette entry.
type Command struct {
	Verb string
	Args []string
}

// Arg returns the i-th argument or "".
func (c Command) Arg(i int) string {
	if i < len(c.Args) {
		return c.Args[i]
	}
	return ""
}

// CommandMsg is emitted when the user executes a command.
type CommandMsg struct {
	Command Command
	Err     error
}

// Parse splits a palette line into a verb and arguments. "q" and "exit"
// are accepted for quit; a bare section name is shorthand for "go".
func Parse(line string, sections []string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, errors.New("empty command")
	}
	verb := strings.ToLower(fields[0])
	args := fields[1:]

	switch verb {
	case "q", "exit":
		verb = VerbQuit
	}
	for _, v := range verbs {
		if v == verb {
			if verb == VerbGo && len(args) == 0 {
				return Command{}, errors.New("go: which section?")
			}
			return Command{Verb: verb, Args: args}, nil
		}
	}
	for _, s := range sections {
		if strings.EqualFold(s, line) || strings.EqualFold(s, verb) {
			return Command{Verb: VerbGo, Args: []string{s}}, nil
		}
	}
	return Command{}, fmt.Errorf("unknown command %q", verb)
}

// Model is the command palette view.
type Model struct {
	input    textinput.Model
	sections []string
	width    int
	height   int
}

// New creates a command palette that completes verbs and section names.
func New(sections []string, width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "go lorry-receipts, inbox, export, logout..."
	ti.Prompt = ": "
	ti.ShowSuggestions = true
	ti.Focus()
	ti.Width = width - 6

	var suggestions []string
	for _, v := range verbs {
		if v == VerbGo {
			continue
		}
		suggestions = append(suggestions, v)
	}
	for _, s := range sections {
		suggestions = append(suggestions, VerbGo+" "+s)
	}
	ti.SetSuggestions(suggestions)

	return Model{
		input:    ti,
		sections: sections,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the command palette.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			line := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if line == "" {
				return m, nil
			}
			c, err := Parse(line, m.sections)
			return m, func() tea.Msg {
				return CommandMsg{Command: c, Err: err}
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the command palette.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorText).
		MarginBottom(1)

	title := titleStyle.Render("Command Palette")
	input := m.input.View()
	hint := theme.HelpStyle.Render("tab completes | enter runs | esc closes")

	content := lipgloss.JoinVertical(lipgloss.Left, title, input, "", hint)

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Render(content)
}

// SetSize updates the command palette dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}

// Focus gives keyboard focus to the text input.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}
