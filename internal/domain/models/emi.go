package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type EmiStatus string

const (
	EmiPending EmiStatus = "PENDING"
	EmiPaid    EmiStatus = "PAID"
)

// Emi is a scheduled installment against a booking's due amount.
// Reminded flags the at-most-once overdue reminder.
type Emi struct {
	ID        string          `json:"id"`
	BookingID string          `json:"bookingId"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
	Status    EmiStatus       `json:"status"`
	Reminded  bool            `json:"reminded"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
