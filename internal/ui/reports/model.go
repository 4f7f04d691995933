package reports

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/freightdesk/internal/keys"
	"github.com/nhle/freightdesk/internal/model"
	"github.com/nhle/freightdesk/internal/report"
	"github.com/nhle/freightdesk/internal/theme"
	"github.com/nhle/freightdesk/internal/ui"
)

// HistoryLimit is how many past exports the screen lists.
const HistoryLimit = 20

// ExportTimeout bounds one report run.
const ExportTimeout = 2 * time.Minute

// Runner produces a report workbook.
type Runner interface {
	Export(ctx context.Context, req report.Request) (*report.Result, error)
}

// History lists and forgets past exports.
type History interface {
	ListExports(ctx context.Context, limit int) ([]model.ExportRecord, error)
	DeleteExport(ctx context.Context, id string) error
}

// CloseMsg signals the parent to leave the reports screen.
type CloseMsg struct{}

type historyLoadedMsg struct {
	exports []model.ExportRecord
	err     error
}

// ExportedMsg carries the outcome of one export run. The parent forwards
// it even when the screen is closed.
type ExportedMsg struct {
	result *report.Result
	err    error
}

type forgottenMsg struct{ err error }

// formBindings holds form values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	kind   string
	entity string
	from   string
	to     string
}

// Model is the report export screen: a request form and the export history.
type Model struct {
	runner  Runner
	history History
	keys    *keys.KeyMap
	now     func() time.Time

	form        *huh.Form
	fb          *formBindings
	exports     []model.ExportRecord
	selectedIdx int
	running     bool
	lastErr     string

	width  int
	height int
}

// New creates the reports screen.
func New(r Runner, h History, k *keys.KeyMap, width, height int) Model {
	return Model{
		runner:  r,
		history: h,
		keys:    k,
		now:     time.Now,
		fb:      &formBindings{},
		width:   width,
		height:  height,
	}
}

// Init loads the export history.
func (m Model) Init() tea.Cmd {
	return m.loadHistory()
}

// FormOpen reports whether the request form is showing.
func (m Model) FormOpen() bool { return m.form != nil }

// Running reports whether an export is in flight.
func (m Model) Running() bool { return m.running }

// Exports returns the listed history, newest first.
func (m Model) Exports() []model.ExportRecord { return m.exports }

// StartExport opens the request form, optionally preselecting a report.
func (m *Model) StartExport(kind report.Kind) tea.Cmd {
	today := m.now().Format("2006-01-02")
	monthStart := m.now().Format("2006-01") + "-01"

	m.fb.kind = string(kind)
	if m.fb.kind == "" {
		m.fb.kind = string(report.Definitions[0].Kind)
	}
	m.fb.entity = ""
	m.fb.from = monthStart
	m.fb.to = today
	m.lastErr = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// Run exports req without showing the form.
func (m *Model) Run(req report.Request) tea.Cmd {
	if m.running {
		return nil
	}
	m.form = nil
	m.running = true
	m.lastErr = ""
	return m.export(req)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case historyLoadedMsg:
		if msg.err != nil {
			return m, ui.Toast(ui.FailureText, true)
		}
		m.exports = msg.exports
		if m.selectedIdx >= len(m.exports) {
			m.selectedIdx = max(len(m.exports)-1, 0)
		}
		return m, nil

	case ExportedMsg:
		m.running = false
		if msg.err != nil {
			m.lastErr = msg.err.Error()
			return m, ui.Toast(ui.FailureText, true)
		}
		text := fmt.Sprintf("Exported %d rows to %s", msg.result.Export.Rows, filepath.Base(msg.result.Export.Path))
		failed := false
		switch {
		case msg.result.DraftErr != nil:
			text += " (mail draft failed)"
			failed = true
		case msg.result.Drafted:
			text += " and saved a mail draft"
		}
		return m, tea.Batch(ui.Toast(text, failed), m.loadHistory())

	case forgottenMsg:
		if msg.err != nil {
			return m, ui.Toast(ui.FailureText, true)
		}
		return m, m.loadHistory()
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}
	switch m.form.State {
	case huh.StateCompleted:
		m.form = nil
		m.running = true
		return m, m.export(m.request())
	case huh.StateAborted:
		m.form = nil
		return m, nil
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return CloseMsg{} }
	case key.Matches(msg, m.keys.New), key.Matches(msg, m.keys.Export):
		if m.running {
			return m, nil
		}
		return m, m.StartExport("")
	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadHistory()
	case key.Matches(msg, m.keys.Down):
		if len(m.exports) > 0 {
			m.selectedIdx = (m.selectedIdx + 1) % len(m.exports)
		}
	case key.Matches(msg, m.keys.Up):
		if len(m.exports) > 0 {
			m.selectedIdx--
			if m.selectedIdx < 0 {
				m.selectedIdx = len(m.exports) - 1
			}
		}
	case key.Matches(msg, m.keys.Delete):
		if m.selectedIdx < len(m.exports) {
			return m, m.forget(m.exports[m.selectedIdx].ID)
		}
	}
	return m, nil
}

func (m Model) request() report.Request {
	return report.Request{
		Kind:   report.Kind(m.fb.kind),
		Entity: strings.TrimSpace(m.fb.entity),
		From:   strings.TrimSpace(m.fb.from),
		To:     strings.TrimSpace(m.fb.to),
	}
}

func (m Model) export(req report.Request) tea.Cmd {
	r := m.runner
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), ExportTimeout)
		defer cancel()
		res, err := r.Export(ctx, req)
		return ExportedMsg{result: res, err: err}
	}
}

func (m Model) loadHistory() tea.Cmd {
	h := m.history
	return func() tea.Msg {
		exports, err := h.ListExports(context.Background(), HistoryLimit)
		return historyLoadedMsg{exports: exports, err: err}
	}
}

// forget drops the history entry only; the workbook stays on disk.
func (m Model) forget(id string) tea.Cmd {
	h := m.history
	return func() tea.Msg {
		return forgottenMsg{err: h.DeleteExport(context.Background(), id)}
	}
}

func (m Model) buildForm() *huh.Form {
	opts := make([]huh.Option[string], 0, len(report.Definitions))
	for _, d := range report.Definitions {
		opts = append(opts, huh.NewOption(d.Title, string(d.Kind)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Report").
				Options(opts...).
				Value(&m.fb.kind),
			huh.NewInput().
				Title("Client, vendor or branch name").
				Placeholder("exact name as saved").
				Value(&m.fb.entity).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("From").
				Placeholder("YYYY-MM-DD").
				Value(&m.fb.from).
				Validate(validDate),
			huh.NewInput().
				Title("To").
				Placeholder("YYYY-MM-DD").
				Value(&m.fb.to).
				Validate(func(s string) error {
					if err := validDate(s); err != nil {
						return err
					}
					if strings.TrimSpace(s) < strings.TrimSpace(m.fb.from) {
						return errors.New("must not be before the start date")
					}
					return nil
				}),
		),
	).WithWidth(max(min(m.width-4, 70), 20)).WithShowHelp(true)
}

func validDate(s string) error {
	if _, err := time.Parse("2006-01-02", strings.TrimSpace(s)); err != nil {
		return errors.New("use YYYY-MM-DD")
	}
	return nil
}

// View renders the screen.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorText)

	if m.form != nil {
		return lipgloss.NewStyle().Padding(1, 2).Render(
			titleStyle.Render("Export report") + "\n\n" + m.form.View(),
		)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Reports"))
	b.WriteString("\n\n")

	dim := lipgloss.NewStyle().Foreground(theme.ColorMuted)
	switch {
	case m.running:
		b.WriteString(dim.Render("Exporting..."))
		b.WriteString("\n\n")
	case m.lastErr != "":
		b.WriteString(lipgloss.NewStyle().Foreground(theme.ColorDanger).Render(m.lastErr))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(theme.ColorAccent).Render("Recent exports"))
	b.WriteString("\n")
	if len(m.exports) == 0 {
		b.WriteString(dim.Italic(true).PaddingLeft(2).Render("Nothing exported yet. Press 'n' to export a report."))
		b.WriteString("\n")
	}
	for i, e := range m.exports {
		line := fmt.Sprintf("%s  %-16s %-24s %s..%s  %4d rows  %s",
			e.CreatedAt.Local().Format("2006-01-02 15:04"),
			e.Kind, e.EntityName, e.FromDate, e.ToDate, e.Rows,
			filepath.Base(e.Path),
		)
		if i == m.selectedIdx {
			b.WriteString(theme.SelectedItemStyle.Render(line))
		} else {
			b.WriteString(theme.ListItemStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.HelpStyle.Render("n export | d forget | r refresh | esc back"))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
