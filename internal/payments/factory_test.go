package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticket-bot/internal/config"
)

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(config.Config{PaymentProvider: "manual", PaymentRequisites: "123"})
	require.NoError(t, err)
	assert.Equal(t, "manual", p.Name())

	_, err = NewProvider(config.Config{PaymentProvider: "stripe"})
	assert.Error(t, err)
}
