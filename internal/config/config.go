package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	TelegramToken string

	AdminTGIDs         map[int64]bool
	NotificationChatID int64

	DatabasePath string

	EventDate  string
	EventPrice int
	PromoCodes string

	PaymentProvider   string
	PaymentRequisites string

	VenueAddress string
	VenueLat     float64
	VenueLon     float64

	SpreadsheetID            string
	GoogleServiceAccountJSON string

	HTTPAddr      string
	BasePublicURL string
	ExportSecret  string
}

// SheetsMirrorEnabled reports whether both Google Sheets settings are present.
func (c Config) SheetsMirrorEnabled() bool {
	return c.SpreadsheetID != "" && c.GoogleServiceAccountJSON != ""
}

func FromEnv() (Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (Config, error) {
	v.SetDefault("DATABASE_PATH", "tickets.db")
	v.SetDefault("EVENT_DATE", "5 апреля")
	v.SetDefault("EVENT_PRICE", 2300)
	v.SetDefault("PROMO_CODES", "PROMO10:10,PROMO20:20,PROMO30:30")
	v.SetDefault("PAYMENT_PROVIDER", "manual")
	v.SetDefault("PAYMENT_REQUISITES", "1234567890")
	v.SetDefault("VENUE_ADDRESS", "Ольховская ул. 14с5")
	v.SetDefault("VENUE_LAT", 55.775170)
	v.SetDefault("VENUE_LON", 37.669693)
	v.AutomaticEnv()

	var c Config
	c.TelegramToken = strings.TrimSpace(v.GetString("TELEGRAM_BOT_TOKEN"))
	c.AdminTGIDs = parseAdminIDs(v.GetString("ADMIN_TG_IDS"))

	if raw := strings.TrimSpace(v.GetString("NOTIFICATION_CHAT_ID")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c, fmt.Errorf("NOTIFICATION_CHAT_ID: %w", err)
		}
		c.NotificationChatID = id
	}

	c.DatabasePath = strings.TrimSpace(v.GetString("DATABASE_PATH"))
	c.EventDate = strings.TrimSpace(v.GetString("EVENT_DATE"))
	price, err := strconv.Atoi(strings.TrimSpace(v.GetString("EVENT_PRICE")))
	if err != nil {
		return c, fmt.Errorf("EVENT_PRICE: %w", err)
	}
	c.EventPrice = price
	c.PromoCodes = v.GetString("PROMO_CODES")

	c.PaymentProvider = strings.TrimSpace(v.GetString("PAYMENT_PROVIDER"))
	c.PaymentRequisites = strings.TrimSpace(v.GetString("PAYMENT_REQUISITES"))

	c.VenueAddress = strings.TrimSpace(v.GetString("VENUE_ADDRESS"))
	c.VenueLat = v.GetFloat64("VENUE_LAT")
	c.VenueLon = v.GetFloat64("VENUE_LON")

	c.SpreadsheetID = strings.TrimSpace(v.GetString("GOOGLE_SHEETS_SPREADSHEET_ID"))
	c.GoogleServiceAccountJSON = strings.TrimSpace(v.GetString("GOOGLE_SERVICE_ACCOUNT_JSON"))

	c.HTTPAddr = strings.TrimSpace(v.GetString("HTTP_ADDR"))
	c.BasePublicURL = strings.TrimRight(strings.TrimSpace(v.GetString("BASE_PUBLIC_URL")), "/")
	c.ExportSecret = strings.TrimSpace(v.GetString("EXPORT_SECRET"))

	if c.TelegramToken == "" {
		return c, fmt.Errorf("TELEGRAM_BOT_TOKEN is empty")
	}
	if c.DatabasePath == "" {
		return c, fmt.Errorf("DATABASE_PATH is empty")
	}
	// The export link hands out every order, so the side server never runs unsigned.
	if c.HTTPAddr != "" && c.ExportSecret == "" {
		return c, fmt.Errorf("EXPORT_SECRET is required when HTTP_ADDR is set")
	}

	return c, nil
}

func parseAdminIDs(raw string) map[int64]bool {
	m := map[int64]bool{}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return m
	}
	parts := strings.Split(raw, ",")
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			continue
		}
		m[v] = true
	}
	return m
}
