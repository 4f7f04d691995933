package setup

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/freightdesk/internal/model"
)

func TestResult_Branch(t *testing.T) {
	m := New(nil, nil, "https://tms.example.com/api/", model.Session{}, 80, 24)
	m.fb.branchID = " b1 "
	m.fb.branchName = "Pune"
	m.fb.token = " secret "

	r := m.result()
	assert.Equal(t, model.BranchSession("b1", "Pune"), r.Session)
	assert.Equal(t, "https://tms.example.com/api", r.BaseURL)
	assert.Equal(t, "secret", r.Token)
}

func TestNew_PrefillsPreviousAdmin(t *testing.T) {
	m := New(nil, nil, "http://localhost", model.AdminSession("a7"), 80, 24)
	assert.Equal(t, roleAdmin, m.fb.role)

	r := m.result()
	assert.True(t, r.Session.IsAdmin())
	assert.Equal(t, "a7", r.Session.ID)
}

func TestVerifyAndSave_Success(t *testing.T) {
	var verified, saved []Result
	verify := func(_ context.Context, r Result) error {
		verified = append(verified, r)
		return nil
	}
	save := func(_ context.Context, r Result) error {
		saved = append(saved, r)
		return nil
	}
	m := New(verify, save, "http://localhost", model.BranchSession("b1", "Pune"), 80, 24)
	m, _ = m.submit()
	require.Equal(t, ModeValidating, m.Mode())

	msg := m.verifyAndSave(m.result())()
	require.Len(t, verified, 1)
	require.Len(t, saved, 1)

	_, cmd := m.Update(msg)
	require.NotNil(t, cmd)
	done, ok := cmd().(DoneMsg)
	require.True(t, ok)
	assert.Equal(t, "b1", done.Result.Session.BranchID)
}

func TestVerifyAndSave_FailureSkipsSave(t *testing.T) {
	saves := 0
	verify := func(context.Context, Result) error { return errors.New("401 unauthorized") }
	save := func(context.Context, Result) error {
		saves++
		return nil
	}
	m := New(verify, save, "http://localhost", model.BranchSession("b1", "Pune"), 80, 24)
	m, _ = m.submit()

	m, cmd := m.Update(m.verifyAndSave(m.result())())
	assert.Nil(t, cmd)
	assert.Zero(t, saves)
	assert.Equal(t, ModeResult, m.Mode())
	assert.Contains(t, m.View(), "401 unauthorized")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ModeForm, m.Mode())
}

func TestVerifiedIgnoredAfterCancel(t *testing.T) {
	m := New(nil, func(context.Context, Result) error { return nil }, "http://localhost", model.Session{}, 80, 24)
	m, _ = m.submit()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, ModeForm, m.Mode())

	_, cmd := m.Update(verifiedMsg{})
	assert.Nil(t, cmd)
}

func TestValidateURL(t *testing.T) {
	assert.NoError(t, validateURL("https://tms.example.com/api"))
	assert.Error(t, validateURL("tms.example.com"))
	assert.Error(t, validateURL(""))
}
