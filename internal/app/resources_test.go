package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/freightdesk/internal/api"
	"github.com/nhle/freightdesk/internal/model"
)

func testClient() *api.Client {
	return api.NewClient("http://localhost", "", 0, nil)
}

func TestSections_VisibleByRole(t *testing.T) {
	c := testClient()

	admin := Visible(Sections(c, model.AdminSession("")), model.AdminSession(""))
	branch := Visible(Sections(c, model.BranchSession("b1", "Pune")), model.BranchSession("b1", "Pune"))

	assert.Len(t, admin, len(branch)+1)
	assert.Equal(t, "branches", admin[len(admin)-1].Slug)

	seen := map[string]bool{}
	for _, s := range admin {
		assert.False(t, seen[s.Slug], "duplicate slug %s", s.Slug)
		seen[s.Slug] = true
	}
}

func TestLorryReceiptDecode_BranchStampsBranch(t *testing.T) {
	spec := lorryReceipts(testClient(), model.BranchSession("b1", "Pune"))

	lr, err := spec.Decode(map[string]string{
		"lrNumber": "LR-9", "date": "2026-01-05", "consignor": "Acme", "consignee": "Zen",
		"from": "Pune", "to": "Surat", "vehicleNumber": "mh12ab1234",
		"packages": "12", "weight": "1,250.5", "freight": "18000",
	}, model.LorryReceipt{})
	require.NoError(t, err)
	assert.Equal(t, "b1", lr.BranchID)
	assert.Equal(t, "MH12AB1234", lr.VehicleNumber)
	assert.Equal(t, 12, lr.Packages)
	assert.True(t, lr.Weight.Equal(decimal.RequireFromString("1250.5")))
	assert.Equal(t, "LR-9", spec.KeyOf(lr))
}

func TestLorryReceiptDecode_KeepsNumberOnEdit(t *testing.T) {
	spec := lorryReceipts(testClient(), model.AdminSession(""))
	base := model.LorryReceipt{ID: "1", LRNumber: "LR-1", BranchID: "b2"}

	lr, err := spec.Decode(map[string]string{"lrNumber": "LR-X", "packages": "x"}, base)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "packages")

	lr, err = spec.Decode(map[string]string{"lrNumber": "LR-X", "branchId": "b9"}, base)
	require.NoError(t, err)
	assert.Equal(t, "LR-1", lr.LRNumber)
	assert.Equal(t, "b2", lr.BranchID)
}

func TestFreightMemoDecode_AdvanceAboveHire(t *testing.T) {
	spec := freightMemos(testClient(), model.AdminSession(""))
	_, err := spec.Decode(map[string]string{
		"fmNumber": "FM-1", "hireAmount": "10000", "advance": "12000", "lrNumbers": "LR-1, LR-2",
	}, model.FreightMemo{})
	assert.ErrorContains(t, err, "exceeds hire")

	fm, err := spec.Decode(map[string]string{"fmNumber": "FM-1", "hireAmount": "10000", "advance": "4000", "lrNumbers": "LR-1, LR-2"}, model.FreightMemo{})
	require.NoError(t, err)
	assert.Equal(t, []string{"LR-1", "LR-2"}, fm.LRNumbers)
}

func TestPaymentRecords_ByParent(t *testing.T) {
	c := testClient()
	bill := paymentRecords(c, model.EntityBill)
	fm := paymentRecords(c, model.EntityFM)

	assert.Equal(t, model.EntityBillRecord, bill.Entity())
	assert.Equal(t, model.EntityFMRecord, fm.Entity())
	assert.Equal(t, "Bill number", bill.Fields()[0].Title)
	assert.Equal(t, "FM number", fm.Fields()[0].Title)
}

func TestPaymentRecords_RequestsNameTheRecord(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/billing/bill-record", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id":"p1","parentNumber":"B-1","date":"2024-01-01","amount":"500"},
			{"id":"p2","parentNumber":"B-1","date":"2024-01-01","amount":"700"}
		]`))
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	spec := paymentRecords(api.NewClient(srv.URL, "", 0, nil), model.EntityBill)
	rows, err := spec.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "B-1/2024-01-01", rows[0].Key)
	assert.Equal(t, "p1", rows[0].RequestID)
	assert.Equal(t, "p2", rows[1].RequestID)
}

func TestParseHelpers(t *testing.T) {
	d, err := parseAmount("freight", " 1,500.75 ")
	require.NoError(t, err)
	assert.Equal(t, "1500.75", d.String())

	d, err = parseAmount("freight", "")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	_, err = parseAmount("freight", "abc")
	assert.ErrorContains(t, err, "freight")

	_, err = parseCount("packages", "-1")
	assert.Error(t, err)

	assert.Equal(t, []string{"LR-1", "LR-2", "LR-3"}, splitList("LR-1, LR-2;LR-3"))
	assert.Nil(t, splitList("  "))

	assert.NoError(t, validatePercent("2"))
	assert.Error(t, validatePercent("120"))
	assert.Error(t, validateDate("05/01/2026"))
	assert.Equal(t, "", amountOrEmpty(decimal.Zero))
	assert.Equal(t, "12.50", money(decimal.RequireFromString("12.5")))
}
