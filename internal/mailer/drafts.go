// Package mailer files exported reports as drafts in an IMAP mailbox so
// they can be reviewed and sent to the client from any mail program.
package mailer

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
	"github.com/emersion/go-message/mail"
	"go.uber.org/zap"

	"github.com/nhle/freightdesk/internal/model"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Drafter appends report drafts over IMAP.
type Drafter struct {
	cfg      model.MailConfig
	password string
	logger   *zap.Logger
	now      func() time.Time
}

// NewDrafter creates a drafter. The password comes from the keyring.
func NewDrafter(cfg model.MailConfig, password string, logger *zap.Logger) (*Drafter, error) {
	if cfg.Host == "" || cfg.Username == "" {
		return nil, errors.New("mail host and username are required")
	}
	if cfg.DraftsMailbox == "" {
		cfg.DraftsMailbox = "Drafts"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Drafter{cfg: cfg, password: password, logger: logger, now: time.Now}, nil
}

// connect dials the server and logs in. The connection is closed as soon
// as ctx ends, which aborts any command in flight. The caller must call
// release once done, after logging out.
func (d *Drafter) connect(ctx context.Context) (client *imapclient.Client, release func() bool, err error) {
	addr := net.JoinHostPort(d.cfg.Host, d.cfg.Port)
	tlsConfig := &tls.Config{ServerName: d.cfg.Host}

	var conn net.Conn
	if d.cfg.TLS {
		conn, err = (&tls.Dialer{Config: tlsConfig}).DialContext(ctx, "tcp", addr)
	} else {
		conn, err = (&net.Dialer{}).DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to IMAP %s: %w", addr, err)
	}
	release = context.AfterFunc(ctx, func() { _ = conn.Close() })

	opts := &imapclient.Options{TLSConfig: tlsConfig}
	if d.cfg.TLS {
		client = imapclient.New(conn, opts)
	} else if client, err = imapclient.NewStartTLS(conn, opts); err != nil {
		release()
		_ = conn.Close()
		return nil, nil, fmt.Errorf("starting TLS with %s: %w", addr, errors.Join(ctx.Err(), err))
	}

	if err := client.Login(d.cfg.Username, d.password).Wait(); err != nil {
		release()
		_ = client.Close()
		return nil, nil, fmt.Errorf("logging in as %s: %w", d.cfg.Username, errors.Join(ctx.Err(), err))
	}
	return client, release, nil
}

// SaveReportDraft builds a message with the workbook attached and appends
// it to the drafts mailbox.
func (d *Drafter) SaveReportDraft(ctx context.Context, subject, filename string, workbook []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := BuildDraft(&buf, Draft{
		From:       d.from(),
		Subject:    subject,
		Body:       "Please find the statement attached.\r\n",
		Filename:   filename,
		Attachment: workbook,
		Date:       d.now(),
	}); err != nil {
		return err
	}

	client, release, err := d.connect(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Logout().Wait()
		release()
	}()

	cmd := client.Append(d.cfg.DraftsMailbox, int64(buf.Len()), &imap.AppendOptions{
		Flags: []imap.Flag{imap.FlagDraft, imap.FlagSeen},
		Time:  d.now(),
	})
	if _, err := cmd.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("writing draft: %w", err)
	}
	if err := cmd.Close(); err != nil {
		return fmt.Errorf("closing draft: %w", err)
	}
	if _, err := cmd.Wait(); err != nil {
		return fmt.Errorf("appending draft to %s: %w", d.cfg.DraftsMailbox, err)
	}

	d.logger.Info("report draft saved",
		zap.String("mailbox", d.cfg.DraftsMailbox),
		zap.String("filename", filename),
	)
	return nil
}

func (d *Drafter) from() string {
	if d.cfg.From != "" {
		return d.cfg.From
	}
	return d.cfg.Username
}

// Draft is a message with one spreadsheet attachment.
type Draft struct {
	From       string
	To         string
	Subject    string
	Body       string
	Filename   string
	Attachment []byte
	Date       time.Time
}

// BuildDraft writes d as a MIME message.
func BuildDraft(w io.Writer, d Draft) error {
	var h mail.Header
	h.SetDate(d.Date)
	h.SetSubject(d.Subject)
	if d.From != "" {
		from, err := mail.ParseAddress(d.From)
		if err != nil {
			from = &mail.Address{Address: d.From}
		}
		h.SetAddressList("From", []*mail.Address{from})
	}
	if d.To != "" {
		to, err := mail.ParseAddressList(d.To)
		if err != nil {
			return fmt.Errorf("parsing recipients: %w", err)
		}
		h.SetAddressList("To", to)
	}
	if err := h.GenerateMessageID(); err != nil {
		return fmt.Errorf("generating message id: %w", err)
	}

	mw, err := mail.CreateWriter(w, h)
	if err != nil {
		return fmt.Errorf("creating message: %w", err)
	}

	tw, err := mw.CreateInline()
	if err != nil {
		return fmt.Errorf("creating body: %w", err)
	}
	var th mail.InlineHeader
	th.SetContentType("text/plain", map[string]string{"charset": "utf-8"})
	pw, err := tw.CreatePart(th)
	if err != nil {
		return fmt.Errorf("creating text part: %w", err)
	}
	if _, err := io.WriteString(pw, d.Body); err != nil {
		return fmt.Errorf("writing text part: %w", err)
	}
	if err := pw.Close(); err != nil {
		return err
	}
	if err := tw.Close(); err != nil {
		return err
	}

	var ah mail.AttachmentHeader
	ah.SetContentType(xlsxContentType, nil)
	ah.SetFilename(d.Filename)
	ah.Set("Content-Transfer-Encoding", "base64")
	aw, err := mw.CreateAttachment(ah)
	if err != nil {
		return fmt.Errorf("creating attachment: %w", err)
	}
	if _, err := aw.Write(d.Attachment); err != nil {
		return fmt.Errorf("writing attachment: %w", err)
	}
	if err := aw.Close(); err != nil {
		return err
	}
	return mw.Close()
}
