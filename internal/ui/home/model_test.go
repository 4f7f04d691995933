package home

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/freightdesk/internal/keys"
)

func items() []Item {
	return []Item{
		{Slug: "lorry-receipts", Title: "Lorry Receipts", Group: "Shipments"},
		{Slug: "freight-memos", Title: "Freight Memos", Group: "Shipments"},
		{Slug: "bills", Title: "Bills", Group: "Billing"},
	}
}

func TestSelectOpensItem(t *testing.T) {
	m := New(items(), "Welcome", keys.DefaultKeyMap(), 80, 24)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, OpenMsg{Slug: "freight-memos"}, cmd())
}

func TestNumberJumps(t *testing.T) {
	m := New(items(), "Welcome", keys.DefaultKeyMap(), 80, 24)
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3")})
	require.NotNil(t, cmd)
	assert.Equal(t, OpenMsg{Slug: "bills"}, cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("7")})
	assert.Nil(t, cmd)
}

func TestUpWraps(t *testing.T) {
	m := New(items(), "Welcome", keys.DefaultKeyMap(), 80, 24)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	it, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "bills", it.Slug)
}

func TestViewGroups(t *testing.T) {
	v := New(items(), "Welcome", keys.DefaultKeyMap(), 80, 24).View()
	assert.Contains(t, v, "Shipments")
	assert.Contains(t, v, "Billing")
	assert.Contains(t, v, "Lorry Receipts")
}
