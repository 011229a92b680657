package payments

import (
	"fmt"

	"ticket-bot/internal/config"
	"ticket-bot/internal/payments/manual"
)

func NewProvider(cfg config.Config) (PaymentProvider, error) {
	switch cfg.PaymentProvider {
	case "manual":
		return manual.New(cfg.PaymentRequisites), nil
	default:
		return nil, fmt.Errorf("unknown payment provider: %s", cfg.PaymentProvider)
	}
}
