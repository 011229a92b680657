package payments

import (
	"context"

	"ticket-bot/internal/models"
)

type PaymentProvider interface {
	Name() string

	// Instructions tells the buyer how to pay for a freshly created order.
	Instructions(ctx context.Context, o models.Order) (string, error)
}
