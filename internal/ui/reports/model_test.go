package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/freightdesk/internal/keys"
	"github.com/nhle/freightdesk/internal/model"
	"github.com/nhle/freightdesk/internal/report"
	"github.com/nhle/freightdesk/internal/ui"
)

type fakeRunner struct {
	got    []report.Request
	result *report.Result
	err    error
}

func (f *fakeRunner) Export(_ context.Context, req report.Request) (*report.Result, error) {
	f.got = append(f.got, req)
	return f.result, f.err
}

type fakeHistory struct {
	exports []model.ExportRecord
	deleted []string
}

func (f *fakeHistory) ListExports(_ context.Context, limit int) ([]model.ExportRecord, error) {
	if len(f.exports) > limit {
		return f.exports[:limit], nil
	}
	return f.exports, nil
}

func (f *fakeHistory) DeleteExport(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func newModel(r *fakeRunner, h *fakeHistory) Model {
	m := New(r, h, keys.DefaultKeyMap(), 100, 30)
	m.now = func() time.Time { return time.Date(2026, 3, 18, 10, 0, 0, 0, time.UTC) }
	m, _ = m.Update(m.Init()())
	return m
}

func toasts(cmd tea.Cmd) []ui.ToastMsg {
	if cmd == nil {
		return nil
	}
	var out []ui.ToastMsg
	switch msg := cmd().(type) {
	case ui.ToastMsg:
		out = append(out, msg)
	case tea.BatchMsg:
		for _, c := range msg {
			out = append(out, toasts(c)...)
		}
	}
	return out
}

func TestStartExport_DefaultsToCurrentMonth(t *testing.T) {
	m := newModel(&fakeRunner{}, &fakeHistory{})
	m.StartExport(report.KindVendorFMs)

	require.True(t, m.FormOpen())
	assert.Equal(t, "vendor-fms", m.fb.kind)
	assert.Equal(t, "2026-03-01", m.fb.from)
	assert.Equal(t, "2026-03-18", m.fb.to)
}

func TestExport_SendsTrimmedRequest(t *testing.T) {
	r := &fakeRunner{result: &report.Result{Export: model.ExportRecord{Rows: 3, Path: "/tmp/out/client-bills_acme.xlsx"}}}
	h := &fakeHistory{}
	m := newModel(r, h)
	m.StartExport("")
	m.fb.entity = "  Acme Traders "

	msg := m.export(m.request())()
	require.Len(t, r.got, 1)
	assert.Equal(t, report.Request{Kind: report.KindClientBills, Entity: "Acme Traders", From: "2026-03-01", To: "2026-03-18"}, r.got[0])

	h.exports = []model.ExportRecord{{ID: "01J", Kind: "client-bills", Rows: 3}}
	m, cmd := m.Update(msg)
	ts := toasts(cmd)
	require.Len(t, ts, 1)
	assert.Equal(t, "Exported 3 rows to client-bills_acme.xlsx", ts[0].Text)
	assert.False(t, ts[0].Failed)
}

func TestExport_DraftFailureStillReportsFile(t *testing.T) {
	r := &fakeRunner{result: &report.Result{
		Export:   model.ExportRecord{Rows: 1, Path: "out.xlsx"},
		DraftErr: errors.New("imap down"),
	}}
	m := newModel(r, &fakeHistory{})

	_, cmd := m.Update(ExportedMsg{result: r.result})
	ts := toasts(cmd)
	require.Len(t, ts, 1)
	assert.Contains(t, ts[0].Text, "mail draft failed")
	assert.True(t, ts[0].Failed)
}

func TestExport_FailureShowsReason(t *testing.T) {
	m := newModel(&fakeRunner{}, &fakeHistory{})
	m, cmd := m.Update(ExportedMsg{err: errors.New("entity name is required")})

	ts := toasts(cmd)
	require.Len(t, ts, 1)
	assert.Equal(t, ui.FailureText, ts[0].Text)
	assert.Contains(t, m.View(), "entity name is required")
}

func TestHistory_ListAndForget(t *testing.T) {
	h := &fakeHistory{exports: []model.ExportRecord{
		{ID: "a", Kind: "client-lrs", EntityName: "Acme", Path: "/x/a.xlsx"},
		{ID: "b", Kind: "vendor-fms", EntityName: "Road Kings", Path: "/x/b.xlsx"},
	}}
	m := newModel(&fakeRunner{}, h)
	require.Len(t, m.Exports(), 2)
	assert.Contains(t, m.View(), "Road Kings")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, []string{"b"}, h.deleted)
}

func TestValidDate(t *testing.T) {
	assert.NoError(t, validDate("2026-01-31"))
	assert.Error(t, validDate("31/01/2026"))
	assert.Error(t, validDate(""))
}
