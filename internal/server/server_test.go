package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticket-bot/internal/config"
	"ticket-bot/internal/models"
)

type fakeOrders struct {
	orders []models.Order
	err    error
}

func (f fakeOrders) List(ctx context.Context) ([]models.Order, error) {
	return f.orders, f.err
}

func TestHealthz(t *testing.T) {
	h := Handler(config.Config{}, fakeOrders{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestExport(t *testing.T) {
	cfg := config.Config{ExportSecret: "s3cret"}
	h := Handler(cfg, fakeOrders{orders: []models.Order{{FullName: "Ivan Ivanov Petrov", Confirmation: models.ConfirmationPending}}})

	tests := []struct {
		name  string
		query string
		code  int
	}{
		{"missing token", "", http.StatusBadRequest},
		{"bad token", "?token=nope", http.StatusForbidden},
		{"ok", "?token=" + ExportToken("s3cret"), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/export/orders.xlsx"+tt.query, nil))
			assert.Equal(t, tt.code, rec.Code)
			if tt.code == http.StatusOK {
				assert.Contains(t, rec.Header().Get("Content-Disposition"), "tickets.xlsx")
				assert.NotZero(t, rec.Body.Len())
			}
		})
	}
}

func TestExport_StoreError(t *testing.T) {
	cfg := config.Config{ExportSecret: "s3cret"}
	h := Handler(cfg, fakeOrders{err: errors.New("db down")})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/export/orders.xlsx?token="+ExportToken("s3cret"), nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestExport_EmptySecretRejected(t *testing.T) {
	h := Handler(config.Config{}, fakeOrders{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/export/orders.xlsx?token="+ExportToken(""), nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestExportURL(t *testing.T) {
	local := ExportURL(config.Config{HTTPAddr: ":8080", ExportSecret: "s3cret"})
	assert.Equal(t, "http://localhost:8080/export/orders.xlsx?token="+ExportToken("s3cret"), local)

	public := ExportURL(config.Config{HTTPAddr: ":8080", BasePublicURL: "https://tickets.example.org", ExportSecret: "s3cret"})
	u, err := url.Parse(public)
	require.NoError(t, err)
	assert.Equal(t, "tickets.example.org", u.Host)
	assert.Equal(t, ExportToken("s3cret"), u.Query().Get("token"))
}
