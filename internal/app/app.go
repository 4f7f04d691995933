package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nhle/freightdesk/internal/api"
	"github.com/nhle/freightdesk/internal/approval"
	"github.com/nhle/freightdesk/internal/credential"
	"github.com/nhle/freightdesk/internal/keys"
	"github.com/nhle/freightdesk/internal/model"
	"github.com/nhle/freightdesk/internal/report"
	"github.com/nhle/freightdesk/internal/session"
	"github.com/nhle/freightdesk/internal/store"
	"github.com/nhle/freightdesk/internal/theme"
	"github.com/nhle/freightdesk/internal/ui"
	"github.com/nhle/freightdesk/internal/ui/command"
	helpview "github.com/nhle/freightdesk/internal/ui/help"
	"github.com/nhle/freightdesk/internal/ui/home"
	"github.com/nhle/freightdesk/internal/ui/inbox"
	"github.com/nhle/freightdesk/internal/ui/reports"
	"github.com/nhle/freightdesk/internal/ui/resource"
	"github.com/nhle/freightdesk/internal/ui/setup"
)

// ToastDuration is how long a status message stays in the status bar.
const ToastDuration = 4 * time.Second

// Section slugs that are not entity screens.
const (
	slugInbox   = "inbox"
	slugReports = "reports"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewSetup ViewState = iota
	ViewHome
	ViewResource
	ViewInbox
	ViewReports
	ViewHelp
	ViewCommand
)

// Deps are the long-lived collaborators the application is built from.
type Deps struct {
	Config     *model.AppConfig
	ConfigPath string
	Store      store.Store
	Vault      *credential.Vault
	Logger     *zap.Logger

	// Drafts, when set, files every export as a mail draft.
	Drafts report.DraftSaver

	// Session is the saved identity; HasSession is false on first run.
	Session    model.Session
	HasSession bool
}

type toastClearMsg struct{ seq int }

// Model is the root Bubble Tea model that manages view routing,
// layout, and the per-session services.
type Model struct {
	deps Deps
	keys *keys.KeyMap

	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	ready        bool

	session  model.Session
	client   *api.Client
	workflow *approval.Workflow
	sections []Section

	homeView    home.Model
	setupView   setup.Model
	inboxView   inbox.Model
	reportsView reports.Model
	helpView    helpview.Model
	commandView command.Model
	screens     map[string]resource.Model
	activeSlug  string

	toast    ui.ToastMsg
	toastSeq int
}

// New creates the root model. Without a saved session it starts on the
// sign-in screen.
func New(d Deps) Model {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	k := keys.DefaultKeyMap()
	m := Model{
		deps:     d,
		keys:     k,
		helpView: helpview.New(k, 80, 24),
		screens:  make(map[string]resource.Model),
	}
	if d.HasSession {
		m.connect(d.Session)
		m.currentView = ViewHome
	} else {
		m.setupView = m.newSetup(model.Session{})
		m.currentView = ViewSetup
	}
	return m
}

// connect builds the services for sess. The API token is read from the
// keyring on every connect so a new sign-in takes effect immediately.
func (m *Model) connect(sess model.Session) {
	cfg := m.deps.Config
	token := ""
	if m.deps.Vault != nil {
		t, err := m.deps.Vault.Lookup(credential.KeyAPIToken)
		if err != nil {
			m.deps.Logger.Warn("reading api token", zap.Error(err))
		}
		token = t
	}
	timeout := time.Duration(cfg.Backend.TimeoutSec) * time.Second

	m.session = sess
	m.client = api.NewClient(cfg.Backend.BaseURL, token, timeout, m.deps.Logger)
	m.workflow = approval.NewWorkflow(m.client, sess, m.deps.Logger)
	m.sections = Visible(Sections(m.client, sess), sess)
	m.screens = make(map[string]resource.Model)

	exporter := report.NewExporter(m.client, m.deps.Store, cfg.Reports, m.deps.Logger)
	if m.deps.Drafts != nil {
		exporter.SetDrafts(m.deps.Drafts)
	}

	w, h := m.contentSize()
	m.homeView = home.New(m.menu(), "Welcome, "+sess.Label(), m.keys, w, h)
	m.inboxView = inbox.New(m.workflow, m.keys, w, h)
	m.reportsView = reports.New(exporter, m.deps.Store, m.keys, w, h)
	m.commandView = command.New(m.slugs(), w, h)
	m.helpView.SetSections(m.slugs())

	m.deps.Logger.Info("session started",
		zap.String("role", sess.Role.String()),
		zap.String("id", sess.ID),
		zap.String("backend", cfg.Backend.BaseURL),
	)
}

func (m Model) newSetup(prev model.Session) setup.Model {
	w, h := m.contentSize()
	return setup.New(m.verifySetup, m.saveSetup, m.deps.Config.Backend.BaseURL, prev, w, h)
}

// verifySetup checks a sign-in by fetching the inbox it would see.
func (m Model) verifySetup(ctx context.Context, r setup.Result) error {
	timeout := time.Duration(m.deps.Config.Backend.TimeoutSec) * time.Second
	c := api.NewClient(r.BaseURL, r.Token, timeout, m.deps.Logger)
	_, err := c.Inbox(ctx, r.Session)
	return err
}

// saveSetup persists a verified sign-in: the identity in the local store,
// the token in the keyring and a changed backend URL in the config file.
func (m Model) saveSetup(ctx context.Context, r setup.Result) error {
	if err := session.Save(ctx, m.deps.Store, r.Session); err != nil {
		return err
	}
	if m.deps.Vault != nil {
		if err := m.deps.Vault.Set(credential.KeyAPIToken, r.Token); err != nil {
			return err
		}
	}
	if r.BaseURL != m.deps.Config.Backend.BaseURL {
		m.deps.Config.Backend.BaseURL = r.BaseURL
		if m.deps.ConfigPath != "" {
			if err := model.SaveConfig(m.deps.ConfigPath, m.deps.Config); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m Model) menu() []home.Item {
	items := make([]home.Item, 0, len(m.sections)+2)
	items = append(items,
		home.Item{Slug: slugInbox, Title: "Notifications", Group: "Inbox"},
		home.Item{Slug: slugReports, Title: "Reports", Group: "Inbox"},
	)
	for _, s := range m.sections {
		items = append(items, home.Item{Slug: s.Slug, Title: s.Resource.Plural(), Group: s.Group})
	}
	return items
}

func (m Model) slugs() []string {
	out := []string{slugInbox, slugReports}
	for _, s := range m.sections {
		out = append(out, s.Slug)
	}
	return out
}

func (m Model) contentSize() (int, int) {
	if !m.ready {
		return 80, 24
	}
	return m.layout.ContentWidth(), m.layout.ContentHeight()
}

// Init starts the first screen and fetches the inbox for the header count.
func (m Model) Init() tea.Cmd {
	if m.currentView == ViewSetup {
		return m.setupView.Init()
	}
	return m.inboxView.Refresh()
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w, h := m.layout.ContentWidth(), m.layout.ContentHeight()
		size := tea.WindowSizeMsg{Width: w, Height: h}
		m.homeView.SetSize(w, h)
		m.inboxView.SetSize(w, h)
		m.helpView.SetSize(w, h)
		m.commandView.SetSize(w, h)
		m.setupView, _ = m.setupView.Update(size)
		m.reportsView, _ = m.reportsView.Update(size)
		if scr, ok := m.screens[m.activeSlug]; ok {
			m.screens[m.activeSlug], _ = scr.Update(size)
		}
		return m, nil

	case ui.ToastMsg:
		m.toast = msg
		m.toastSeq++
		seq := m.toastSeq
		return m, tea.Tick(ToastDuration, func(time.Time) tea.Msg { return toastClearMsg{seq: seq} })

	case toastClearMsg:
		if msg.seq == m.toastSeq {
			m.toast = ui.ToastMsg{}
		}
		return m, nil

	case inbox.LoadedMsg, inbox.ActedMsg:
		var cmd tea.Cmd
		m.inboxView, cmd = m.inboxView.Update(msg)
		return m, cmd

	case reports.ExportedMsg:
		var cmd tea.Cmd
		m.reportsView, cmd = m.reportsView.Update(msg)
		return m, cmd

	case setup.DoneMsg:
		m.connect(msg.Result.Session)
		m.currentView = ViewHome
		return m, tea.Batch(m.inboxView.Refresh(), ui.Toast("Signed in as "+msg.Result.Session.Label(), false))

	case setup.QuitMsg:
		return m, tea.Quit

	case home.OpenMsg:
		return m, m.open(msg.Slug)

	case resource.CloseMsg, inbox.CloseMsg, reports.CloseMsg:
		m.currentView = ViewHome
		return m, nil

	case command.CommandMsg:
		m.currentView = m.previousView
		if msg.Err != nil {
			return m, ui.Toast(msg.Err.Error(), true)
		}
		return m, m.executeCommand(msg.Command)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if !m.capturing() {
			if cmd, handled := m.handleGlobalKey(msg); handled {
				return m, cmd
			}
		}
		if m.currentView == ViewCommand && key.Matches(msg, m.keys.Back) {
			m.currentView = m.previousView
			return m, nil
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// capturing reports whether keystrokes belong to a text input.
func (m Model) capturing() bool {
	switch m.currentView {
	case ViewSetup, ViewCommand:
		return true
	case ViewResource:
		return m.screens[m.activeSlug].Capturing()
	case ViewReports:
		return m.reportsView.FormOpen()
	}
	return false
}

// handleGlobalKey processes keys that work from every non-input view.
func (m *Model) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.currentView == ViewHome {
			return tea.Quit, true
		}

	case key.Matches(msg, m.keys.Help):
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return nil, true
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return nil, true

	case key.Matches(msg, m.keys.Command):
		m.previousView = m.currentView
		m.currentView = ViewCommand
		return m.commandView.Focus(), true

	case key.Matches(msg, m.keys.Inbox):
		if m.currentView == ViewHome || m.currentView == ViewResource {
			return m.open(slugInbox), true
		}

	case key.Matches(msg, m.keys.Export):
		if m.currentView != ViewReports {
			cmd := m.open(slugReports)
			return tea.Batch(cmd, m.reportsView.StartExport("")), true
		}

	case key.Matches(msg, m.keys.Back):
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return nil, true
		}
	}
	return nil, false
}

// open switches to the screen for slug.
func (m *Model) open(slug string) tea.Cmd {
	switch slug {
	case slugInbox:
		m.currentView = ViewInbox
		return m.inboxView.Refresh()
	case slugReports:
		m.currentView = ViewReports
		return m.reportsView.Init()
	}

	for _, s := range m.sections {
		if s.Slug != slug {
			continue
		}
		w, h := m.contentSize()
		var req resource.Requester
		if m.workflow != nil {
			req = m.workflow
		}
		scr := resource.New(s.Resource, m.session, req, m.keys, m.debounce(), w, h)
		m.screens[slug] = scr
		m.activeSlug = slug
		m.currentView = ViewResource
		return scr.Init()
	}
	return ui.Toast(fmt.Sprintf("No section %q", slug), true)
}

func (m Model) debounce() time.Duration {
	return time.Duration(m.deps.Config.Display.SearchDebounceMs) * time.Millisecond
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewSetup:
		m.setupView, cmd = m.setupView.Update(msg)
	case ViewHome:
		m.homeView, cmd = m.homeView.Update(msg)
	case ViewResource:
		scr, ok := m.screens[m.activeSlug]
		if !ok {
			return m, nil
		}
		scr, cmd = scr.Update(msg)
		m.screens[m.activeSlug] = scr
	case ViewInbox:
		m.inboxView, cmd = m.inboxView.Update(msg)
	case ViewReports:
		m.reportsView, cmd = m.reportsView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	}

	return m, cmd
}

// executeCommand runs a parsed command palette entry.
func (m *Model) executeCommand(c command.Command) tea.Cmd {
	switch c.Verb {
	case command.VerbGo:
		return m.open(strings.ToLower(c.Arg(0)))
	case command.VerbInbox:
		return m.open(slugInbox)
	case command.VerbReports:
		return m.open(slugReports)
	case command.VerbExport:
		return m.exportFromCommand(c)
	case command.VerbRefresh:
		return m.refresh()
	case command.VerbLogout:
		return m.logout()
	case command.VerbHelp:
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return nil
	case command.VerbQuit:
		return tea.Quit
	}
	return nil
}

// exportFromCommand handles "export <kind> <name...> <from> <to>". The
// name may contain spaces.
func (m *Model) exportFromCommand(c command.Command) tea.Cmd {
	m.currentView = ViewReports
	if len(c.Args) == 0 {
		return tea.Batch(m.reportsView.Init(), m.reportsView.StartExport(""))
	}
	if len(c.Args) < 4 {
		return tea.Batch(m.reportsView.Init(), m.reportsView.StartExport(report.Kind(c.Arg(0))))
	}
	n := len(c.Args)
	req := report.Request{
		Kind:   report.Kind(c.Args[0]),
		Entity: strings.Join(c.Args[1:n-2], " "),
		From:   c.Args[n-2],
		To:     c.Args[n-1],
	}
	if err := req.Validate(); err != nil {
		return ui.Toast(err.Error(), true)
	}
	return m.reportsView.Run(req)
}

func (m *Model) refresh() tea.Cmd {
	switch m.currentView {
	case ViewResource:
		return m.screens[m.activeSlug].Init()
	case ViewReports:
		return m.reportsView.Init()
	default:
		return m.inboxView.Refresh()
	}
}

// logout forgets the saved identity and returns to the sign-in screen.
// The API token stays in the keyring for the next sign-in.
func (m *Model) logout() tea.Cmd {
	if err := session.Clear(context.Background(), m.deps.Store); err != nil {
		m.deps.Logger.Error("clearing session", zap.Error(err))
		return ui.Toast(ui.FailureText, true)
	}
	m.deps.Logger.Info("session ended", zap.String("id", m.session.ID))
	prev := m.session
	m.session = model.Session{}
	m.client = nil
	m.workflow = nil
	m.sections = nil
	m.screens = make(map[string]resource.Model)
	m.setupView = m.newSetup(prev)
	m.currentView = ViewSetup
	return m.setupView.Init()
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader(m.title(), m.status())
	content := m.renderContent()
	toast := ""
	if m.toast.Text != "" {
		toast = theme.ToastStyle(m.toast.Failed).Render(m.toast.Text)
	}
	statusBar := m.layout.RenderStatusBar(m.keyHints(), toast)

	return m.layout.RenderWithFrame(header, content, statusBar)
}

func (m Model) title() string {
	switch m.currentView {
	case ViewResource:
		if scr, ok := m.screens[m.activeSlug]; ok {
			return "FreightDesk / " + scr.Resource().Plural()
		}
	case ViewInbox:
		return "FreightDesk / Notifications"
	case ViewReports:
		return "FreightDesk / Reports"
	}
	return "FreightDesk"
}

func (m Model) status() string {
	if m.currentView == ViewSetup || m.workflow == nil {
		return "not signed in"
	}
	label := m.session.Label()
	if n := m.inboxView.Count(); n > 0 {
		return fmt.Sprintf("%s | %d in inbox", label, n)
	}
	return label
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewSetup:
		return m.setupView.View()
	case ViewHome:
		return m.homeView.View()
	case ViewResource:
		if scr, ok := m.screens[m.activeSlug]; ok {
			return scr.View()
		}
	case ViewInbox:
		return m.inboxView.View()
	case ViewReports:
		return m.reportsView.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	}
	return ""
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewSetup:
		return "enter next | shift+tab back | ctrl+c quit"
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "enter execute | esc back"
	case ViewInbox:
		return "a approve | x decline | o noted | enter open | r refresh | esc back"
	case ViewReports:
		return "n export | d forget | esc back"
	case ViewResource:
		return ": command | i inbox | ctrl+e export | ? help"
	default:
		return "q quit | ? help | : command | enter open | i inbox | ctrl+e export"
	}
}
