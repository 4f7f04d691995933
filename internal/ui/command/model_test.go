package command

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sections = []string{"lorry-receipts", "freight-memos", "bills"}

func TestParse(t *testing.T) {
	tests := []struct {
		line    string
		want    Command
		wantErr bool
	}{
		{line: "inbox", want: Command{Verb: VerbInbox, Args: []string{}}},
		{line: "q", want: Command{Verb: VerbQuit, Args: []string{}}},
		{line: "go bills", want: Command{Verb: VerbGo, Args: []string{"bills"}}},
		{line: "freight-memos", want: Command{Verb: VerbGo, Args: []string{"freight-memos"}}},
		{line: "export client-bills Acme 2026-01-01 2026-01-31", want: Command{Verb: VerbExport, Args: []string{"client-bills", "Acme", "2026-01-01", "2026-01-31"}}},
		{line: "go", wantErr: true},
		{line: "launch", wantErr: true},
		{line: "   ", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := Parse(tt.line, sections)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnterEmitsCommand(t *testing.T) {
	m := New(sections, 80, 24)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("go bills")})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(CommandMsg)
	require.True(t, ok)
	require.NoError(t, msg.Err)
	assert.Equal(t, "bills", msg.Command.Arg(0))
	assert.Equal(t, "", msg.Command.Arg(3))
	assert.Empty(t, m.input.Value())
}
