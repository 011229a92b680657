package manual

import (
	"context"
	"fmt"
	"strings"

	"ticket-bot/internal/models"
)

// Provider asks the buyer to transfer money by hand; an admin confirms the order
// once the transfer shows up.
type Provider struct {
	requisites string
}

func New(requisites string) *Provider {
	return &Provider{requisites: strings.TrimSpace(requisites)}
}

func (p *Provider) Name() string { return "manual" }

func (p *Provider) Instructions(ctx context.Context, o models.Order) (string, error) {
	if p.requisites == "" {
		return "", fmt.Errorf("payment requisites are not configured")
	}
	return fmt.Sprintf("Переведите %d₽ на реквизиты: %s. После перевода сообщите админу.", o.Amount, p.requisites), nil
}
