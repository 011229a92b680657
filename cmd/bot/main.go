package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"ticket-bot/internal/config"
	"ticket-bot/internal/event"
	"ticket-bot/internal/models"
	"ticket-bot/internal/payments"
	"ticket-bot/internal/promo"
	"ticket-bot/internal/server"
	"ticket-bot/internal/sheets"
	"ticket-bot/internal/store"
	"ticket-bot/internal/tgbot"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer st.Close()

	ev, err := st.LoadEvent(ctx, models.Event{Date: cfg.EventDate, Price: cfg.EventPrice})
	if err != nil {
		log.Fatalf("event settings: %v", err)
	}

	payProvider, err := payments.NewProvider(cfg)
	if err != nil {
		log.Fatalf("payments: %v", err)
	}

	deps := tgbot.Deps{
		Store:  st,
		Event:  event.New(ev),
		Promos: promo.Parse(cfg.PromoCodes),
		Pay:    payProvider,
	}
	if cfg.SheetsMirrorEnabled() {
		sheetsClient, err := sheets.New(ctx, cfg.GoogleServiceAccountJSON, cfg.SpreadsheetID)
		if err != nil {
			log.Fatalf("sheets: %v", err)
		}
		deps.Mirror = sheetsClient
		log.Printf("mirroring orders to spreadsheet %s", sheetsClient.SpreadsheetID())
	}

	botApp, err := tgbot.New(cfg, deps)
	if err != nil {
		log.Fatalf("telegram: %v", err)
	}

	var httpSrv *http.Server
	if cfg.HTTPAddr != "" {
		httpSrv = server.New(cfg, st)
		go func() {
			log.Printf("HTTP listening on %s", cfg.HTTPAddr)
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatalf("http server: %v", err)
			}
		}()
	}

	// Start Telegram
	go func() {
		if err := botApp.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("bot stopped: %v", err)
			cancel()
		}
	}()

	// Graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sig:
	case <-ctx.Done():
	}
	log.Println("shutting down...")

	cancel()
	if httpSrv != nil {
		ctxTimeout, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel2()
		_ = httpSrv.Shutdown(ctxTimeout)
	}

	log.Println("bye")
}
