package sheets

import "ticket-bot/internal/models"

// Rows renders orders in the fixed column layout, header first.
func Rows(orders []models.Order) [][]interface{} {
	out := make([][]interface{}, 0, len(orders)+1)
	header := make([]interface{}, len(models.Columns))
	for i, c := range models.Columns {
		header[i] = c
	}
	out = append(out, header)
	for _, o := range orders {
		out = append(out, []interface{}{
			o.FullName,
			o.Institution,
			o.RegisteredAt,
			confirmationLabel(o),
			paidLabel(o),
			o.Amount,
			o.Username,
			o.TgID,
		})
	}
	return out
}

func confirmationLabel(o models.Order) string {
	if o.IsPending() {
		return "Ожидание"
	}
	return o.Confirmation
}

func paidLabel(o models.Order) string {
	if o.IsPaid() {
		return "Да"
	}
	return "Нет"
}
