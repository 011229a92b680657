package server

import (
	"context"
	"crypto/hmac"
	"log"
	"net/http"
	"net/url"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ticket-bot/internal/config"
	"ticket-bot/internal/models"
	"ticket-bot/internal/sheets"
	"ticket-bot/internal/util"
)

type OrderLister interface {
	List(ctx context.Context) ([]models.Order, error)
}

const exportPath = "/export/orders.xlsx"

// ExportToken signs the order export link.
func ExportToken(secret string) string {
	return util.HMACSHA256Hex(secret, "export:orders")
}

// ExportURL is the signed download link handed to admins. Without BASE_PUBLIC_URL
// it points at the local listener.
func ExportURL(cfg config.Config) string {
	base := cfg.BasePublicURL
	if base == "" {
		base = "http://localhost" + cfg.HTTPAddr
	}
	return base + exportPath + "?token=" + url.QueryEscape(ExportToken(cfg.ExportSecret))
}

func New(cfg config.Config, orders OrderLister) *http.Server {
	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: Handler(cfg, orders),
	}
}

func Handler(cfg config.Config, orders OrderLister) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	mux.Handle("/metrics", promhttp.Handler())

	// XLSX export (admin-only link with token = HMAC)
	mux.HandleFunc(exportPath, func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token == "" {
			http.Error(w, "token required", http.StatusBadRequest)
			return
		}
		if cfg.ExportSecret == "" || !hmac.Equal([]byte(token), []byte(ExportToken(cfg.ExportSecret))) {
			http.Error(w, "invalid token", http.StatusForbidden)
			return
		}
		list, err := orders.List(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		data, err := sheets.WriteXLSX(list)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="`+sheets.XLSXFileName+`"`)
		if _, err := w.Write(data); err != nil {
			log.Printf("export write: %v", err)
		}
	})

	return mux
}
