package manual

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticket-bot/internal/models"
)

func TestInstructions(t *testing.T) {
	p := New(" 1234567890 ")

	txt, err := p.Instructions(context.Background(), models.Order{Amount: 2290})
	require.NoError(t, err)
	assert.Equal(t, "Переведите 2290₽ на реквизиты: 1234567890. После перевода сообщите админу.", txt)
}

func TestInstructions_NoRequisites(t *testing.T) {
	_, err := New("").Instructions(context.Background(), models.Order{Amount: 1})
	assert.Error(t, err)
}
