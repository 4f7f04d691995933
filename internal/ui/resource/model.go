package resource

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/nhle/freightdesk/internal/api"
	"github.com/nhle/freightdesk/internal/keys"
	"github.com/nhle/freightdesk/internal/model"
	"github.com/nhle/freightdesk/internal/ui"
)

// DuplicateTimeout is how long the "already exists" warning stays up.
const DuplicateTimeout = 2 * time.Second

// DefaultDebounce is the search settle time when none is configured.
const DefaultDebounce = 300 * time.Millisecond

// CloseMsg signals the parent to leave the resource screen.
type CloseMsg struct{}

type viewMode int

const (
	modeList viewMode = iota
	modeSearch
	modeForm
	modeConfirmDelete
)

// formStatus decides whether a submitted form creates or updates.
type formStatus int

const (
	statusCreate formStatus = iota
	statusEdit
)

// formBindings lives on the heap so the huh form keeps writing into the
// same strings across Bubble Tea's value-copied models.
type formBindings struct {
	values  map[string]*string
	confirm bool
}

func (fb *formBindings) reset(fields []Field, values map[string]string) {
	fb.values = make(map[string]*string, len(fields))
	for _, f := range fields {
		v := values[f.Key]
		fb.values[f.Key] = &v
	}
	fb.confirm = false
}

func (fb *formBindings) snapshot() map[string]string {
	out := make(map[string]string, len(fb.values))
	for k, v := range fb.values {
		out[k] = strings.TrimSpace(*v)
	}
	return out
}

type rowsLoadedMsg struct {
	resource string
	rows     []Row
	err      error
}

type savedMsg struct {
	resource  string
	status    formStatus
	requested bool
	err       error
}

type deletedMsg struct {
	resource  string
	requested bool
	err       error
}

type searchTickMsg struct {
	resource string
	seq      int
}

type duplicateClearMsg struct {
	resource string
	seq      int
}

// Model is the Bubble Tea model for one entity's list and forms.
type Model struct {
	res       Resource
	session   model.Session
	requester Requester
	keys      *keys.KeyMap
	debounce  time.Duration

	// tick schedules timers; tea.Tick outside tests.
	tick func(time.Duration, func(time.Time) tea.Msg) tea.Cmd

	mode        viewMode
	status      formStatus
	rows        []Row
	visible     []Row
	selectedIdx int
	editing     Row
	loading     bool

	search    textinput.Model
	query     string
	searchSeq int

	duplicate bool
	dupSeq    int

	form        *huh.Form
	confirmForm *huh.Form
	fb          *formBindings

	width  int
	height int
}

// New creates a resource screen. requester may be nil when every change
// is applied directly.
func New(
	res Resource,
	s model.Session,
	req Requester,
	k *keys.KeyMap,
	debounce time.Duration,
	width, height int,
) Model {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "search " + strings.ToLower(res.Plural())

	return Model{
		res:       res,
		session:   s,
		requester: req,
		keys:      k,
		debounce:  debounce,
		tick:      tea.Tick,
		mode:      modeList,
		search:    ti,
		fb:        &formBindings{},
		loading:   true,
		width:     width,
		height:    height,
	}
}

// Init fetches the rows.
func (m Model) Init() tea.Cmd {
	return m.load()
}

// Resource returns the entity shown by the screen.
func (m Model) Resource() Resource { return m.res }

// Visible returns the rows that pass the applied search query.
func (m Model) Visible() []Row { return m.visible }

// Query returns the search query currently applied to the rows.
func (m Model) Query() string { return m.query }

// Duplicate reports whether the "already exists" warning is showing.
func (m Model) Duplicate() bool { return m.duplicate }

// FormOpen reports whether the create/edit form is showing.
func (m Model) FormOpen() bool { return m.mode == modeForm }

// Capturing reports whether keys are going to a text input, so global
// shortcuts must not fire.
func (m Model) Capturing() bool { return m.mode != modeList }

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	name := m.res.Name()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case rowsLoadedMsg:
		if msg.resource != name {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			return m, ui.Toast(ui.FailureText, true)
		}
		m.rows = msg.rows
		m.applyFilter()
		return m, nil

	case savedMsg:
		if msg.resource != name {
			return m, nil
		}
		return m.handleSaved(msg)

	case deletedMsg:
		if msg.resource != name {
			return m, nil
		}
		m.mode = modeList
		if msg.err != nil {
			return m, ui.Toast(ui.FailureText, true)
		}
		if msg.requested {
			return m, ui.Toast("Delete request sent for approval", false)
		}
		return m, tea.Batch(ui.Toast(name+" deleted", false), m.load())

	case searchTickMsg:
		if msg.resource == name && msg.seq == m.searchSeq {
			m.query = strings.TrimSpace(m.search.Value())
			m.applyFilter()
		}
		return m, nil

	case duplicateClearMsg:
		if msg.resource == name && msg.seq == m.dupSeq {
			m.duplicate = false
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateActiveForm(msg)
}

func (m Model) handleSaved(msg savedMsg) (Model, tea.Cmd) {
	name := m.res.Name()

	switch api.Classify(msg.err) {
	case api.OutcomeOK:
		m.mode = modeList
		m.duplicate = false
		text := name + " updated"
		switch {
		case msg.requested:
			return m, ui.Toast("Edit request sent for approval", false)
		case msg.status == statusCreate:
			text = name + " created"
		}
		return m, tea.Batch(ui.Toast(text, false), m.load())

	case api.OutcomeDuplicate:
		m.duplicate = true
		m.dupSeq++
		m.form = m.buildForm()
		m.mode = modeForm
		return m, tea.Batch(m.form.Init(), m.clearDuplicateAfter(m.dupSeq))

	default:
		m.form = m.buildForm()
		m.mode = modeForm
		return m, tea.Batch(m.form.Init(), ui.Toast(ui.FailureText, true))
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.mode {
	case modeList:
		return m.handleListKey(msg)
	case modeSearch:
		return m.handleSearchKey(msg)
	case modeForm:
		return m.updateForm(msg)
	case modeConfirmDelete:
		return m.updateConfirm(msg)
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		if m.query != "" {
			m.search.Reset()
			m.query = ""
			m.applyFilter()
			return m, nil
		}
		return m, func() tea.Msg { return CloseMsg{} }

	case key.Matches(msg, m.keys.Down):
		if len(m.visible) > 0 {
			m.selectedIdx = (m.selectedIdx + 1) % len(m.visible)
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if len(m.visible) > 0 {
			m.selectedIdx--
			if m.selectedIdx < 0 {
				m.selectedIdx = len(m.visible) - 1
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, m.load()

	case key.Matches(msg, m.keys.New):
		m.status = statusCreate
		m.editing = Row{}
		m.duplicate = false
		m.fb.reset(m.res.Fields(), nil)
		m.form = m.buildForm()
		m.mode = modeForm
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Edit), key.Matches(msg, m.keys.Select):
		r, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.status = statusEdit
		m.editing = r
		m.duplicate = false
		m.fb.reset(m.res.Fields(), m.res.Values(r))
		m.form = m.buildForm()
		m.mode = modeForm
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Delete):
		r, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.editing = r
		m.fb.confirm = false
		m.confirmForm = m.buildConfirmForm()
		m.mode = modeConfirmDelete
		return m, m.confirmForm.Init()
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.search.Blur()
		m.search.Reset()
		m.mode = modeList
		m.searchSeq++
		m.query = ""
		m.applyFilter()
		return m, nil
	case tea.KeyEnter:
		m.search.Blur()
		m.mode = modeList
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return m, cmd
	}

	m.searchSeq++
	return m, tea.Batch(cmd, m.settleSearch(m.searchSeq))
}

// settleSearch schedules the filter for the current keystroke. Earlier
// timers still fire but carry a stale sequence number and are ignored.
func (m Model) settleSearch(seq int) tea.Cmd {
	name := m.res.Name()
	return m.tick(m.debounce, func(time.Time) tea.Msg {
		return searchTickMsg{resource: name, seq: seq}
	})
}

func (m Model) clearDuplicateAfter(seq int) tea.Cmd {
	name := m.res.Name()
	return m.tick(DuplicateTimeout, func(time.Time) tea.Msg {
		return duplicateClearMsg{resource: name, seq: seq}
	})
}

func (m *Model) applyFilter() {
	q := strings.ToLower(m.query)
	m.visible = m.visible[:0:0]
	for _, r := range m.rows {
		if q == "" || rowMatches(r, q) {
			m.visible = append(m.visible, r)
		}
	}
	if m.selectedIdx >= len(m.visible) {
		m.selectedIdx = len(m.visible) - 1
	}
	if m.selectedIdx < 0 {
		m.selectedIdx = 0
	}
}

func rowMatches(r Row, q string) bool {
	if strings.Contains(strings.ToLower(r.Key), q) {
		return true
	}
	for _, c := range r.Cells {
		if strings.Contains(strings.ToLower(c), q) {
			return true
		}
	}
	return false
}

func (m Model) selected() (Row, bool) {
	if m.selectedIdx < 0 || m.selectedIdx >= len(m.visible) {
		return Row{}, false
	}
	return m.visible[m.selectedIdx], true
}

// gated reports whether changes must go through admin approval.
func (m Model) gated() bool {
	return !m.session.IsAdmin() && m.res.Entity() != "" && m.requester != nil
}

func (m Model) buildForm() *huh.Form {
	var fields []huh.Field
	for _, f := range m.res.Fields() {
		ptr := m.fb.values[f.Key]
		if ptr == nil {
			var s string
			ptr = &s
			m.fb.values[f.Key] = ptr
		}

		if f.Immutable && m.status == statusEdit {
			fields = append(fields, huh.NewNote().Title(f.Title).Description(*ptr))
			continue
		}

		validate := func(s string) error {
			if f.Required && strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s is required", strings.ToLower(f.Title))
			}
			if f.Validate != nil && strings.TrimSpace(s) != "" {
				return f.Validate(strings.TrimSpace(s))
			}
			return nil
		}

		if len(f.Options) > 0 {
			fields = append(fields, huh.NewSelect[string]().
				Title(f.Title).
				Options(huh.NewOptions(f.Options...)...).
				Value(ptr))
			continue
		}
		fields = append(fields, huh.NewInput().
			Title(f.Title).
			Placeholder(f.Placeholder).
			Value(ptr).
			Validate(validate))
	}

	return huh.NewForm(huh.NewGroup(fields...)).
		WithWidth(m.formWidth()).
		WithHeight(m.formHeight()).
		WithShowHelp(true)
}

func (m Model) buildConfirmForm() *huh.Form {
	title := fmt.Sprintf("Delete %s %s?", m.res.Name(), m.editing.Key)
	desc := "This cannot be undone."
	if m.gated() {
		title = fmt.Sprintf("Request deletion of %s %s?", m.res.Name(), m.editing.Key)
		desc = "The admin will be asked to approve."
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(desc).
				Affirmative("Yes, delete").
				Negative("Cancel").
				Value(&m.fb.confirm),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State == huh.StateCompleted {
		return m, m.save()
	}
	if m.form.State == huh.StateAborted {
		m.mode = modeList
		m.duplicate = false
		return m, nil
	}
	return m, cmd
}

func (m Model) updateConfirm(msg tea.Msg) (Model, tea.Cmd) {
	if m.confirmForm == nil {
		return m, nil
	}
	mdl, cmd := m.confirmForm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.confirmForm = f
	}
	if m.confirmForm.State == huh.StateCompleted {
		if m.fb.confirm {
			return m, m.remove(m.editing)
		}
		m.mode = modeList
		return m, nil
	}
	if m.confirmForm.State == huh.StateAborted {
		m.mode = modeList
		return m, nil
	}
	return m, cmd
}

func (m Model) updateActiveForm(msg tea.Msg) (Model, tea.Cmd) {
	switch m.mode {
	case modeForm:
		return m.updateForm(msg)
	case modeConfirmDelete:
		return m.updateConfirm(msg)
	case modeSearch:
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.search.Width = width - 8
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 6
	if h < 10 {
		h = 10
	}
	return h
}

func (m Model) load() tea.Cmd {
	res := m.res
	return func() tea.Msg {
		rows, err := res.Load(context.Background())
		return rowsLoadedMsg{resource: res.Name(), rows: rows, err: err}
	}
}

func (m Model) save() tea.Cmd {
	res := m.res
	values := m.fb.snapshot()
	status := m.status
	row := m.editing
	gated := m.gated()
	req := m.requester
	return func() tea.Msg {
		ctx := context.Background()
		msg := savedMsg{resource: res.Name(), status: status}

		switch {
		case status == statusCreate:
			msg.err = res.Create(ctx, values)
		case gated:
			msg.requested = true
			before, after, err := res.Proposed(row, values)
			if err != nil {
				msg.err = err
				break
			}
			msg.err = req.RequestEdit(ctx, res.Entity(), row.RequestID, before, after)
		default:
			msg.err = res.Update(ctx, row, values)
		}
		return msg
	}
}

func (m Model) remove(r Row) tea.Cmd {
	res := m.res
	gated := m.gated()
	req := m.requester
	return func() tea.Msg {
		ctx := context.Background()
		if gated {
			err := req.RequestDelete(ctx, res.Entity(), r.RequestID)
			return deletedMsg{resource: res.Name(), requested: true, err: err}
		}
		return deletedMsg{resource: res.Name(), err: res.Delete(ctx, r)}
	}
}
