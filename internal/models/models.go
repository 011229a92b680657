package models

import "time"

const (
	ConfirmationPending = "pending"

	PaidYes = "yes"
	PaidNo  = "no"
)

// Columns is the fixed schema of the exported order table.
var Columns = []string{
	"ФИО",
	"Учебное заведение",
	"Дата регистрации",
	"Подтверждение",
	"Оплачено",
	"Сумма",
	"Telegram Username",
	"Telegram ID",
}

type Order struct {
	ID           uint   `gorm:"primaryKey"`
	FullName     string `gorm:"uniqueIndex;not null"`
	Institution  string
	RegisteredAt string
	Confirmation string `gorm:"index;not null;default:pending"` // "pending" or RFC3339 of confirmation
	Paid         string `gorm:"not null;default:no"`            // yes/no
	Amount       int
	Username     string
	TgID         int64
	PromoCode    string
	Discount     int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (o Order) IsPending() bool { return o.Confirmation == ConfirmationPending }

func (o Order) IsPaid() bool { return o.Paid == PaidYes }

// Event is the single mutable event record.
type Event struct {
	Date  string
	Price int
}

// EventSettings persists Event between restarts. There is only ever one row.
type EventSettings struct {
	ID        uint `gorm:"primaryKey"`
	Date      string
	Price     int
	UpdatedAt time.Time
}
