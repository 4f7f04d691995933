package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/freightdesk/internal/model"
)

func newTestClient(t *testing.T, r chi.Router) *Client {
	t.Helper()
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "secret", 5*time.Second, nil)
}

func TestClient_OKDecodesBody(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/partner/clients", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		_, _ = w.Write([]byte(`[{"id":"c1","name":"Acme","gstNumber":"27AAA"}]`))
	})
	c := newTestClient(t, r)

	clients, err := c.Clients(context.Background())
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "Acme", clients[0].Name)
	assert.Equal(t, "27AAA", clients[0].GSTNumber)
	assert.Equal(t, OutcomeOK, Classify(err))
}

func TestClient_CreatedIsDuplicate(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/partner/vendors", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	c := newTestClient(t, r)

	err := c.CreateVendor(context.Background(), model.Vendor{Name: "Road Kings"})
	require.Error(t, err)
	assert.True(t, IsDuplicate(err))
	assert.Equal(t, OutcomeDuplicate, Classify(err))
}

func TestClient_OtherStatusIsFailure(t *testing.T) {
	r := chi.NewRouter()
	r.Delete("/expense/{id}", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	c := newTestClient(t, r)

	err := c.DeleteExpense(context.Background(), "e1")
	require.Error(t, err)

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusInternalServerError, reqErr.StatusCode)
	assert.Equal(t, "/expense/e1", reqErr.Path)
	assert.Equal(t, OutcomeFailed, Classify(err))
	assert.False(t, IsDuplicate(err))
}

func TestClient_TransportErrorIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := NewClient(srv.URL, "", time.Second, nil)

	_, err := c.Bills(context.Background())
	require.Error(t, err)
	assert.Equal(t, OutcomeFailed, Classify(err))
}

func TestClient_MoneyIsSentAsNumber(t *testing.T) {
	var body map[string]any
	r := chi.NewRouter()
	r.Post("/shipment/lr", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
	})
	c := newTestClient(t, r)

	err := c.CreateLorryReceipt(context.Background(), model.LorryReceipt{
		LRNumber: "LR-9",
		Freight:  decimal.RequireFromString("1250.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, "LR-9", body["lrNumber"])
	assert.Equal(t, 1250.5, body["freight"])
}

func TestClient_CheckLRNumber(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/shipment/lr/check/{number}", func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "number") == "LR-001" {
			w.WriteHeader(http.StatusCreated)
		}
	})
	c := newTestClient(t, r)

	assert.True(t, IsDuplicate(c.CheckLRNumber(context.Background(), "LR-001")))
	assert.NoError(t, c.CheckLRNumber(context.Background(), "LR-002"))
}

func TestClient_FilterPostsRange(t *testing.T) {
	var got Filter
	r := chi.NewRouter()
	r.Post("/billing/bill/filter", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`[{"billNumber":"B-1","amount":100}]`))
	})
	c := newTestClient(t, r)

	bills, err := c.FilterBills(context.Background(), Filter{Name: "Acme", From: "2024-04-01", To: "2024-04-30"})
	require.NoError(t, err)
	require.Len(t, bills, 1)
	assert.Equal(t, Filter{Name: "Acme", From: "2024-04-01", To: "2024-04-30"}, got)
	assert.True(t, bills[0].Amount.Equal(decimal.NewFromInt(100)))
}

func TestClient_Inbox(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/admin/notifications", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"n1","entityType":"LR","actionType":"delete","requestId":"LR-001"}]`))
	})
	r.Get("/branch/{id}/notifications", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "b7", chi.URLParam(r, "id"))
		_, _ = w.Write([]byte(`[]`))
	})
	c := newTestClient(t, r)

	admin, err := c.Inbox(context.Background(), model.AdminSession(""))
	require.NoError(t, err)
	require.Len(t, admin, 1)
	assert.Equal(t, model.EntityLR, admin[0].EntityType)
	assert.Equal(t, model.ActionDelete, admin[0].ActionType)

	branch, err := c.Inbox(context.Background(), model.BranchSession("b7", "Pune"))
	require.NoError(t, err)
	assert.Empty(t, branch)
}

func TestClient_DeleteByNotification(t *testing.T) {
	var body string
	r := chi.NewRouter()
	r.Post("/shipment/fm/delete-by-notification", func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		body = string(b)
	})
	c := newTestClient(t, r)

	require.NoError(t, c.DeleteByNotification(context.Background(), model.EntityFM, "FM-12"))
	assert.JSONEq(t, `{"id":"FM-12"}`, body)

	err := c.DeleteByNotification(context.Background(), model.EntityType("Truck"), "x")
	assert.Error(t, err)
}

func TestEntityPath_CoversEveryEntity(t *testing.T) {
	for _, e := range model.EntityTypes {
		p, err := EntityPath(e)
		require.NoError(t, err, "entity %s", e)
		assert.NotEmpty(t, p)
	}
}
