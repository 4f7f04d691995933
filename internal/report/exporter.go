package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/nhle/freightdesk/internal/api"
	"github.com/nhle/freightdesk/internal/model"
)

const dateLayout = "2006-01-02"

// History records finished exports.
type History interface {
	RecordExport(ctx context.Context, rec model.ExportRecord) error
}

// DraftSaver files an exported workbook as an email draft.
type DraftSaver interface {
	SaveReportDraft(ctx context.Context, subject, filename string, workbook []byte) error
}

// Request selects one report run.
type Request struct {
	Kind   Kind
	Entity string
	From   string
	To     string
}

// Validate checks that the request names an entity and a well-formed,
// ordered date range.
func (r Request) Validate() error {
	if _, err := Lookup(r.Kind); err != nil {
		return err
	}
	if strings.TrimSpace(r.Entity) == "" {
		return errors.New("entity name is required")
	}
	from, err := time.Parse(dateLayout, r.From)
	if err != nil {
		return fmt.Errorf("invalid from date %q: use YYYY-MM-DD", r.From)
	}
	to, err := time.Parse(dateLayout, r.To)
	if err != nil {
		return fmt.Errorf("invalid to date %q: use YYYY-MM-DD", r.To)
	}
	if to.Before(from) {
		return fmt.Errorf("date range ends (%s) before it starts (%s)", r.To, r.From)
	}
	return nil
}

// Result describes a finished export.
type Result struct {
	Export model.ExportRecord

	// DraftErr is set when the workbook was written but filing the mail
	// draft failed.
	DraftErr error
	Drafted  bool
}

// Exporter fetches report data, writes the workbook and records it.
type Exporter struct {
	src     Source
	history History
	cfg     model.ReportConfig
	drafts  DraftSaver
	logger  *zap.Logger
	now     func() time.Time
}

// NewExporter creates an exporter writing into cfg.OutputDir.
func NewExporter(src Source, history History, cfg model.ReportConfig, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{
		src:     src,
		history: history,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
	}
}

// SetDrafts enables filing each export as a mail draft.
func (e *Exporter) SetDrafts(d DraftSaver) { e.drafts = d }

// Export runs req end to end.
func (e *Exporter) Export(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	def, _ := Lookup(req.Kind)
	entity := strings.TrimSpace(req.Entity)

	records, err := def.Fetch(ctx, e.src, api.Filter{Name: entity, From: req.From, To: req.To})
	if err != nil {
		return nil, err
	}

	sheet := NewSheet(def, entity, req.From, req.To, records)
	sheet.Company = e.cfg.CompanyName

	var buf bytes.Buffer
	if err := Write(&buf, sheet, e.cfg.LogoPath); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(e.cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	filename := FileName(req.Kind, entity, req.From, req.To)
	path := filepath.Join(e.cfg.OutputDir, filename)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}

	now := e.now()
	rec := model.ExportRecord{
		ID:         ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String(),
		Kind:       string(req.Kind),
		EntityName: entity,
		FromDate:   req.From,
		ToDate:     req.To,
		Rows:       len(records),
		Path:       path,
		CreatedAt:  now,
	}
	if err := e.history.RecordExport(ctx, rec); err != nil {
		if rmErr := os.Remove(path); rmErr != nil {
			e.logger.Warn("removing unrecorded workbook", zap.String("path", path), zap.Error(rmErr))
		}
		return nil, fmt.Errorf("recording export: %w", err)
	}
	e.logger.Info("report exported",
		zap.String("kind", rec.Kind),
		zap.String("entity", entity),
		zap.Int("rows", rec.Rows),
		zap.String("path", path),
	)

	res := &Result{Export: rec}
	if e.drafts != nil {
		subject := fmt.Sprintf("%s: %s (%s to %s)", def.Title, entity, req.From, req.To)
		if err := e.drafts.SaveReportDraft(ctx, subject, filename, buf.Bytes()); err != nil {
			e.logger.Warn("saving report draft", zap.Error(err))
			res.DraftErr = err
		} else {
			res.Drafted = true
		}
	}
	return res, nil
}

// FileName builds the workbook file name for a report run.
func FileName(kind Kind, entity, from, to string) string {
	return fmt.Sprintf("%s_%s_%s_%s.xlsx", kind, slug(entity), from, to)
}

func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
