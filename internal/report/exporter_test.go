package report

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/nhle/freightdesk/internal/api"
	"github.com/nhle/freightdesk/internal/model"
	"github.com/nhle/freightdesk/tests/testutil"
)

type fakeSource struct {
	filter api.Filter
	err    error
}

func (f *fakeSource) FilterBills(_ context.Context, flt api.Filter) ([]model.Bill, error) {
	f.filter = flt
	return nil, f.err
}

func (f *fakeSource) FilterFreightMemos(_ context.Context, flt api.Filter) ([]model.FreightMemo, error) {
	f.filter = flt
	return []model.FreightMemo{
		{FMNumber: "FM-1", HireAmount: decimal.NewFromInt(5000), Advance: decimal.NewFromInt(2000), Balance: decimal.NewFromInt(3000)},
		{FMNumber: "FM-2", HireAmount: decimal.NewFromInt(7000), Advance: decimal.NewFromInt(1000), Balance: decimal.NewFromInt(6000)},
	}, f.err
}

func (f *fakeSource) FilterLorryReceipts(_ context.Context, flt api.Filter) ([]model.LorryReceipt, error) {
	f.filter = flt
	return nil, f.err
}

func (f *fakeSource) FilterExpenses(_ context.Context, flt api.Filter) ([]model.Expense, error) {
	f.filter = flt
	return nil, f.err
}

type fakeDrafts struct {
	subject, filename string
	size              int
	err               error
}

func (d *fakeDrafts) SaveReportDraft(_ context.Context, subject, filename string, wb []byte) error {
	d.subject, d.filename, d.size = subject, filename, len(wb)
	return d.err
}

func TestRequest_Validate(t *testing.T) {
	ok := Request{Kind: KindVendorFMs, Entity: "Road Kings", From: "2024-05-01", To: "2024-05-31"}
	assert.NoError(t, ok.Validate())

	bad := []Request{
		{Kind: "nope", Entity: "x", From: "2024-05-01", To: "2024-05-31"},
		{Kind: KindVendorFMs, Entity: "  ", From: "2024-05-01", To: "2024-05-31"},
		{Kind: KindVendorFMs, Entity: "x", From: "01/05/2024", To: "2024-05-31"},
		{Kind: KindVendorFMs, Entity: "x", From: "2024-05-31", To: "2024-05-01"},
	}
	for _, r := range bad {
		assert.Error(t, r.Validate(), "%+v", r)
	}
}

func TestExporter_Export(t *testing.T) {
	dir := t.TempDir()
	st := testutil.NewTestStore(t)
	src := &fakeSource{}
	drafts := &fakeDrafts{}

	e := NewExporter(src, st, model.ReportConfig{OutputDir: dir, CompanyName: "Sai Roadlines"}, nil)
	e.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	e.SetDrafts(drafts)

	res, err := e.Export(context.Background(), Request{
		Kind: KindVendorFMs, Entity: " Road Kings ", From: "2024-05-01", To: "2024-05-31",
	})
	require.NoError(t, err)
	assert.Equal(t, api.Filter{Name: "Road Kings", From: "2024-05-01", To: "2024-05-31"}, src.filter)

	assert.Equal(t, 2, res.Export.Rows)
	assert.Equal(t, filepath.Join(dir, "vendor-fms_road-kings_2024-05-01_2024-05-31.xlsx"), res.Export.Path)
	assert.Len(t, res.Export.ID, 26)
	assert.True(t, res.Drafted)
	assert.Equal(t, "vendor-fms_road-kings_2024-05-01_2024-05-31.xlsx", drafts.filename)
	assert.Contains(t, drafts.subject, "Road Kings")

	data, err := os.ReadFile(res.Export.Path)
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	title, _ := f.GetCellValue(SheetName, TitleCell)
	assert.Equal(t, "Sai Roadlines - Vendor Freight Memo Statement", title)
	hire, _ := f.GetCellValue(SheetName, "B5")
	assert.Equal(t, "12000", hire)
	first, _ := f.GetCellValue(SheetName, "A11")
	assert.Equal(t, "FM-1", first)

	recs, err := st.ListExports(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, res.Export.ID, recs[0].ID)
}

func TestExporter_DraftFailureStillExports(t *testing.T) {
	st := testutil.NewTestStore(t)
	e := NewExporter(&fakeSource{}, st, model.ReportConfig{OutputDir: t.TempDir()}, nil)
	e.SetDrafts(&fakeDrafts{err: errors.New("imap down")})

	res, err := e.Export(context.Background(), Request{
		Kind: KindClientBills, Entity: "Acme", From: "2024-05-01", To: "2024-05-31",
	})
	require.NoError(t, err)
	assert.False(t, res.Drafted)
	assert.Error(t, res.DraftErr)
	assert.Equal(t, 0, res.Export.Rows)
}

func TestExporter_FetchFailure(t *testing.T) {
	st := testutil.NewTestStore(t)
	e := NewExporter(&fakeSource{err: errors.New("boom")}, st, model.ReportConfig{OutputDir: t.TempDir()}, nil)

	_, err := e.Export(context.Background(), Request{
		Kind: KindBranchExpenses, Entity: "Pune", From: "2024-05-01", To: "2024-05-31",
	})
	require.Error(t, err)

	recs, err := st.ListExports(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

type failingHistory struct{}

func (failingHistory) RecordExport(context.Context, model.ExportRecord) error {
	return errors.New("disk full")
}

func TestExporter_HistoryFailureRemovesWorkbook(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(&fakeSource{}, failingHistory{}, model.ReportConfig{OutputDir: dir}, nil)

	_, err := e.Export(context.Background(), Request{
		Kind: KindVendorFMs, Entity: "Road Kings", From: "2024-05-01", To: "2024-05-31",
	})
	require.ErrorContains(t, err, "disk full")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "client-lrs_m-s-shree-traders_2024-01-01_2024-01-31.xlsx",
		FileName(KindClientLRs, "M/s. Shree Traders", "2024-01-01", "2024-01-31"))
}
