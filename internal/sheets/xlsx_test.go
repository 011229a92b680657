package sheets

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"ticket-bot/internal/models"
)

func sampleOrders() []models.Order {
	return []models.Order{
		{
			FullName:     "Ivan Ivanov Petrov",
			Institution:  "MSU",
			RegisteredAt: "2026-03-01T10:00:00Z",
			Confirmation: models.ConfirmationPending,
			Paid:         models.PaidNo,
			Amount:       2290,
			Username:     "@ivan",
			TgID:         42,
		},
		{
			FullName:     "Petr Petrov Petrovich",
			Institution:  "MIPT",
			RegisteredAt: "2026-03-01T11:00:00Z",
			Confirmation: "2026-03-02T09:00:00Z",
			Paid:         models.PaidYes,
			Amount:       2300,
			Username:     "N/A",
			TgID:         43,
		},
	}
}

func TestRows(t *testing.T) {
	rows := Rows(sampleOrders())
	require.Len(t, rows, 3)
	assert.Len(t, rows[0], 8)
	assert.Equal(t, "ФИО", rows[0][0])
	assert.Equal(t, "Ожидание", rows[1][3])
	assert.Equal(t, "Нет", rows[1][4])
	assert.Equal(t, "2026-03-02T09:00:00Z", rows[2][3])
	assert.Equal(t, "Да", rows[2][4])
	assert.Equal(t, int64(43), rows[2][7])
}

func TestRows_EmptyHasHeader(t *testing.T) {
	rows := Rows(nil)
	require.Len(t, rows, 1)
	assert.Len(t, rows[0], len(models.Columns))
}

func TestWriteXLSX(t *testing.T) {
	data, err := WriteXLSX(sampleOrders())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, models.Columns, rows[0])
	assert.Equal(t, "Ivan Ivanov Petrov", rows[1][0])
	assert.Equal(t, "2290", rows[1][5])
	assert.Equal(t, "43", rows[2][7])
}
