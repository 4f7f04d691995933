package inbox

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/freightdesk/internal/approval"
	"github.com/nhle/freightdesk/internal/keys"
	"github.com/nhle/freightdesk/internal/model"
	"github.com/nhle/freightdesk/internal/ui"
)

// RequestTimeout bounds a single inbox action including its follow-up
// notification calls.
const RequestTimeout = 30 * time.Second

// Resolver is the part of the approval workflow the inbox drives.
type Resolver interface {
	Load(ctx context.Context) ([]approval.Decision, error)
	Approve(ctx context.Context, n model.Notification) error
	Decline(ctx context.Context, n model.Notification) error
	Acknowledge(ctx context.Context, n model.Notification) error
}

// CloseMsg signals the parent to leave the inbox.
type CloseMsg struct{}

// LoadedMsg carries a freshly fetched inbox. The parent forwards it even
// while the inbox is closed so the header count stays current.
type LoadedMsg struct {
	Decisions []approval.Decision
	Err       error
}

type action int

const (
	actionApprove action = iota
	actionDecline
	actionNoted
)

func (a action) success() string {
	switch a {
	case actionApprove:
		return "Request approved"
	case actionDecline:
		return "Request declined"
	default:
		return "Marked as read"
	}
}

// ActedMsg carries the outcome of an approve, decline or noted call. The
// parent forwards it even when the inbox is closed so the busy guard clears.
type ActedMsg struct {
	action action
	id     string
	err    error
}

// Model renders the approval inbox: a list of pending notifications and a
// scrollable detail pane for the selected one.
type Model struct {
	wf       Resolver
	keys     *keys.KeyMap
	viewport viewport.Model

	decisions   []approval.Decision
	selectedIdx int
	showDetail  bool
	loading     bool
	busy        string

	width  int
	height int
}

// New creates an inbox model.
func New(wf Resolver, k *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, height-4)
	vp.Style = lipgloss.NewStyle()

	return Model{
		wf:       wf,
		keys:     k,
		viewport: vp,
		width:    width,
		height:   height,
	}
}

// Init fetches the inbox.
func (m Model) Init() tea.Cmd {
	return m.Refresh()
}

// Refresh returns a command that re-fetches the inbox.
func (m Model) Refresh() tea.Cmd {
	wf := m.wf
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), RequestTimeout)
		defer cancel()
		ds, err := wf.Load(ctx)
		return LoadedMsg{Decisions: ds, Err: err}
	}
}

// Count is the number of notifications waiting in the inbox.
func (m Model) Count() int { return len(m.decisions) }

// Decisions returns the loaded notifications in display order.
func (m Model) Decisions() []approval.Decision { return m.decisions }

// Busy reports whether an action is in flight.
func (m Model) Busy() bool { return m.busy != "" }

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case LoadedMsg:
		m.loading = false
		if msg.Err != nil {
			return m, ui.Toast(ui.FailureText, true)
		}
		m.decisions = msg.Decisions
		m.clampSelection()
		m.syncDetail()
		return m, nil

	case ActedMsg:
		m.busy = ""
		if msg.err != nil {
			return m, ui.Toast(ui.FailureText, true)
		}
		m.showDetail = false
		m.loading = true
		return m, tea.Batch(ui.Toast(msg.action.success(), false), m.Refresh())

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.showDetail {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		if m.showDetail {
			m.showDetail = false
			return m, nil
		}
		return m, func() tea.Msg { return CloseMsg{} }

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, m.Refresh()

	case key.Matches(msg, m.keys.Approve):
		return m.act(actionApprove)

	case key.Matches(msg, m.keys.Decline):
		return m.act(actionDecline)

	case key.Matches(msg, m.keys.Noted):
		return m.act(actionNoted)
	}

	if m.showDetail {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		if len(m.decisions) > 0 {
			m.selectedIdx = (m.selectedIdx + 1) % len(m.decisions)
		}
	case key.Matches(msg, m.keys.Up):
		if len(m.decisions) > 0 {
			m.selectedIdx--
			if m.selectedIdx < 0 {
				m.selectedIdx = len(m.decisions) - 1
			}
		}
	case key.Matches(msg, m.keys.Select):
		if _, ok := m.selected(); ok {
			m.showDetail = true
			m.syncDetail()
		}
	}
	return m, nil
}

// act runs the chosen action on the selected notification. Buttons that
// the notification does not offer are ignored, as is any key pressed while
// another action is still running.
func (m Model) act(a action) (Model, tea.Cmd) {
	d, ok := m.selected()
	if !ok || m.busy != "" || !offers(d, a) {
		return m, nil
	}
	m.busy = d.Notification.ID

	wf := m.wf
	n := d.Notification
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), RequestTimeout)
		defer cancel()

		var err error
		switch a {
		case actionApprove:
			err = wf.Approve(ctx, n)
		case actionDecline:
			err = wf.Decline(ctx, n)
		default:
			err = wf.Acknowledge(ctx, n)
		}
		return ActedMsg{action: a, id: n.ID, err: err}
	}
}

func offers(d approval.Decision, a action) bool {
	switch a {
	case actionApprove, actionDecline:
		return d.Mode == approval.ModeApproval
	default:
		return d.ShowNoted || d.Mode == approval.ModeAck
	}
}

func (m Model) selected() (approval.Decision, bool) {
	if m.selectedIdx < 0 || m.selectedIdx >= len(m.decisions) {
		return approval.Decision{}, false
	}
	return m.decisions[m.selectedIdx], true
}

func (m *Model) clampSelection() {
	if m.selectedIdx >= len(m.decisions) {
		m.selectedIdx = len(m.decisions) - 1
	}
	if m.selectedIdx < 0 {
		m.selectedIdx = 0
	}
	if len(m.decisions) == 0 {
		m.showDetail = false
	}
}

func (m *Model) syncDetail() {
	if !m.showDetail {
		return
	}
	m.viewport.SetContent(m.renderDetail())
	m.viewport.GotoTop()
}

// SetSize updates the inbox dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width - 4
	m.viewport.Height = height - 4
	m.syncDetail()
}
