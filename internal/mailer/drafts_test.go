package mailer

import (
	"bytes"
	"context"
	"io"
	"net"
	"testing"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/freightdesk/internal/model"
)

func TestBuildDraft_RoundTrip(t *testing.T) {
	payload := []byte{0x50, 0x4b, 0x03, 0x04, 0x00, 0xff, 0x10}
	var buf bytes.Buffer
	err := BuildDraft(&buf, Draft{
		From:       "Accounts <accounts@sairoadlines.in>",
		To:         "billing@acme.example",
		Subject:    "Client Bill Statement: Acme",
		Body:       "attached",
		Filename:   "client-bills_acme.xlsx",
		Attachment: payload,
		Date:       time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	mr, err := mail.CreateReader(&buf)
	require.NoError(t, err)

	subject, err := mr.Header.Subject()
	require.NoError(t, err)
	assert.Equal(t, "Client Bill Statement: Acme", subject)

	from, err := mr.Header.AddressList("From")
	require.NoError(t, err)
	require.Len(t, from, 1)
	assert.Equal(t, "accounts@sairoadlines.in", from[0].Address)

	var (
		text     string
		filename string
		got      []byte
	)
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		b, err := io.ReadAll(p.Body)
		require.NoError(t, err)

		switch h := p.Header.(type) {
		case *mail.InlineHeader:
			text = string(b)
		case *mail.AttachmentHeader:
			filename, _ = h.Filename()
			got = b
		}
	}
	assert.Equal(t, "attached", text)
	assert.Equal(t, "client-bills_acme.xlsx", filename)
	assert.Equal(t, payload, got)
}

func TestBuildDraft_BadRecipient(t *testing.T) {
	err := BuildDraft(io.Discard, Draft{To: "not an address", Subject: "x"})
	assert.Error(t, err)
}

func TestNewDrafter_RequiresHost(t *testing.T) {
	_, err := NewDrafter(model.MailConfig{Username: "u"}, "", nil)
	assert.Error(t, err)

	d, err := NewDrafter(model.MailConfig{Host: "imap.example", Username: "u"}, "p", nil)
	require.NoError(t, err)
	assert.Equal(t, "Drafts", d.cfg.DraftsMailbox)
	assert.Equal(t, "u", d.from())
}

func TestSaveReportDraft_StopsWhenContextEnds(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	// Accept and never send a greeting.
	held := make(chan net.Conn, 1)
	go func() {
		if conn, err := ln.Accept(); err == nil {
			held <- conn
		}
	}()
	t.Cleanup(func() {
		select {
		case conn := <-held:
			_ = conn.Close()
		default:
		}
	})

	host, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	d, err := NewDrafter(model.MailConfig{Host: host, Port: port, Username: "u"}, "p", nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- d.SaveReportDraft(ctx, "s", "r.xlsx", []byte("x")) }()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(5 * time.Second):
		t.Fatal("draft kept waiting on a silent server after the context ended")
	}
}
