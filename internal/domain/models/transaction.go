package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionCredit TransactionType = "CREDIT"
	TransactionRefund TransactionType = "REFUND"
)

// Transaction is an append-only ledger entry for a booking. The summed
// settled CREDIT rows minus REFUND rows are the source of truth for how
// much has actually been paid; Booking.PaidAmount is a cached
// projection of that sum.
//
// Settled starts false for CASH entries, which staff verify manually.
// Gateway-confirmed and credit-note entries are settled on creation.
type Transaction struct {
	ID               string          `json:"id"`
	BookingID        string          `json:"bookingId"`
	Currency         string          `json:"currency"`
	Amount           decimal.Decimal `json:"amount"`
	PaymentMethod    PaymentMethod   `json:"paymentMethod"`
	GatewayPaymentID string          `json:"gatewayPaymentId,omitempty"`
	Settled          bool            `json:"settled"`
	Type             TransactionType `json:"transactionType"`
	CreatedAt        time.Time       `json:"createdAt"`
}
