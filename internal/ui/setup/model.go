// Package setup is the sign-in screen shown when no session has been saved,
// or when the user logs out. It collects the role and identity, checks them
// against the backend and hands the result to the caller to persist.
package setup

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/freightdesk/internal/model"
	"github.com/nhle/freightdesk/internal/theme"
)

// VerifyTimeout bounds the connection check.
const VerifyTimeout = 15 * time.Second

// Mode is the current state of the setup screen.
type Mode int

const (
	ModeForm       Mode = iota // Collecting identity
	ModeValidating             // Testing the backend with the entered identity
	ModeResult                 // Showing a failed check
)

// Result is what the user entered.
type Result struct {
	Session model.Session
	BaseURL string
	Token   string
}

// Verifier checks that the backend accepts r, typically by fetching the
// session's inbox.
type Verifier func(ctx context.Context, r Result) error

// Saver persists a verified result.
type Saver func(ctx context.Context, r Result) error

// DoneMsg is sent once the identity has been verified and saved.
type DoneMsg struct {
	Result Result
}

// QuitMsg is sent when the user backs out of the setup screen.
type QuitMsg struct{}

type verifiedMsg struct {
	result Result
	err    error
}

const (
	roleAdmin  = "admin"
	roleBranch = "branch"
)

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	role       string
	adminID    string
	branchID   string
	branchName string
	baseURL    string
	token      string
}

// Model is the Bubble Tea model of the setup screen.
type Model struct {
	mode    Mode
	verify  Verifier
	save    Saver
	form    *huh.Form
	fb      *formBindings
	spinner spinner.Model
	err     error

	width  int
	height int
}

// New creates the setup screen prefilled with baseURL and, when non-zero,
// the previous session.
func New(verify Verifier, save Saver, baseURL string, prev model.Session, width, height int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.ColorAccent)

	fb := &formBindings{role: roleBranch, baseURL: baseURL}
	switch prev.Role {
	case model.RoleAdmin:
		fb.role = roleAdmin
		fb.adminID = prev.ID
	case model.RoleBranch:
		fb.branchID = prev.BranchID
		fb.branchName = prev.BranchName
	}

	m := Model{
		mode:    ModeForm,
		verify:  verify,
		save:    save,
		fb:      fb,
		spinner: sp,
		width:   width,
		height:  height,
	}
	m.form = m.buildForm()
	return m
}

// Init starts the form.
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// Mode returns the current state.
func (m Model) Mode() Mode { return m.mode }

// Update handles messages and dispatches based on current mode.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case verifiedMsg:
		if m.mode != ModeValidating {
			return m, nil
		}
		if msg.err != nil {
			m.err = msg.err
			m.mode = ModeResult
			return m, nil
		}
		r := msg.result
		return m, func() tea.Msg { return DoneMsg{Result: r} }

	case spinner.TickMsg:
		if m.mode == ModeValidating {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeValidating:
			if msg.String() == "esc" {
				m.mode = ModeForm
				m.form = m.buildForm()
				return m, m.form.Init()
			}
			return m, nil
		case ModeResult:
			switch msg.String() {
			case "r":
				return m.submit()
			case "enter", "esc":
				m.mode = ModeForm
				m.form = m.buildForm()
				return m, m.form.Init()
			}
			return m, nil
		}
	}

	if m.mode != ModeForm {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}
	switch m.form.State {
	case huh.StateCompleted:
		return m.submit()
	case huh.StateAborted:
		return m, func() tea.Msg { return QuitMsg{} }
	}
	return m, cmd
}

// result builds the session from the form.
func (m Model) result() Result {
	r := Result{
		BaseURL: strings.TrimRight(strings.TrimSpace(m.fb.baseURL), "/"),
		Token:   strings.TrimSpace(m.fb.token),
	}
	if m.fb.role == roleAdmin {
		r.Session = model.AdminSession(strings.TrimSpace(m.fb.adminID))
	} else {
		r.Session = model.BranchSession(strings.TrimSpace(m.fb.branchID), strings.TrimSpace(m.fb.branchName))
	}
	return r
}

func (m Model) submit() (Model, tea.Cmd) {
	m.mode = ModeValidating
	m.err = nil
	return m, tea.Batch(m.spinner.Tick, m.verifyAndSave(m.result()))
}

// verifyAndSave checks the identity then persists it if the check passed.
func (m Model) verifyAndSave(r Result) tea.Cmd {
	verify, save := m.verify, m.save
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), VerifyTimeout)
		defer cancel()

		if verify != nil {
			if err := verify(ctx, r); err != nil {
				return verifiedMsg{result: r, err: fmt.Errorf("connection failed: %w", err)}
			}
		}
		if err := save(ctx, r); err != nil {
			return verifiedMsg{result: r, err: fmt.Errorf("connection OK but save failed: %w", err)}
		}
		return verifiedMsg{result: r}
	}
}

func (m *Model) buildForm() *huh.Form {
	fb := m.fb
	isAdmin := func() bool { return fb.role == roleAdmin }

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Sign in as").
				Options(
					huh.NewOption("Branch", roleBranch),
					huh.NewOption("Admin", roleAdmin),
				).
				Value(&m.fb.role),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Admin ID").
				Placeholder("optional").
				Value(&m.fb.adminID),
		).WithHideFunc(func() bool { return !isAdmin() }),
		huh.NewGroup(
			huh.NewInput().
				Title("Branch ID").
				Value(&m.fb.branchID).
				Validate(validateRequired("Branch ID")),
			huh.NewInput().
				Title("Branch name").
				Value(&m.fb.branchName).
				Validate(validateRequired("Branch name")),
		).WithHideFunc(isAdmin),
		huh.NewGroup(
			huh.NewInput().
				Title("Backend URL").
				Placeholder("https://tms.example.com/api").
				Value(&m.fb.baseURL).
				Validate(validateURL),
			huh.NewInput().
				Title("API token").
				Description("Stored in the system keyring. Leave empty if the backend is open.").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.token),
		),
	).WithWidth(m.formWidth()).WithShowHelp(true)
}

func (m Model) formWidth() int {
	w := m.width - 8
	if w > 70 {
		w = 70
	}
	if w < 30 {
		w = 30
	}
	return w
}

// View renders the current mode.
func (m Model) View() string {
	style := lipgloss.NewStyle().
		Padding(1, 2).
		Width(m.width).
		Height(m.height)

	title := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorText).Render("FreightDesk sign-in")

	switch m.mode {
	case ModeValidating:
		return style.Render(fmt.Sprintf(
			"%s\n\n%s Testing connection...\n\nPress esc to cancel.",
			title, m.spinner.View(),
		))

	case ModeResult:
		errStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorDanger)
		msg := "unknown error"
		if m.err != nil {
			msg = m.err.Error()
		}
		return style.Render(title + "\n\n" +
			errStyle.Render("Sign-in failed") + "\n\n" +
			msg + "\n\n" +
			lipgloss.NewStyle().Foreground(theme.ColorMuted).Render("r retry | enter/esc back"))
	}

	return style.Render(title + "\n\n" + m.form.View())
}

// --- Validators ---

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateURL(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("URL is required")
	}
	parsed, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return errors.New("URL must include scheme and host (e.g., https://example.com)")
	}
	return nil
}
