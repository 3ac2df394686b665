package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentCreated PaymentStatus = "CREATED"
	PaymentPaid    PaymentStatus = "PAID"
	PaymentFailed  PaymentStatus = "FAILED"
)

type PaymentMethod string

const (
	MethodCash       PaymentMethod = "CASH"
	MethodOnline     PaymentMethod = "ONLINE"
	MethodCreditNote PaymentMethod = "CREDIT_NOTE"
	MethodNEFT       PaymentMethod = "NEFT"
)

// Payment tracks one gateway order, keyed by the gateway order id.
// Rows that stay CREATED past the abandoned-order TTL are purged by the
// retention sweep.
type Payment struct {
	ID             int64           `json:"id"`
	GatewayOrderID string          `json:"gatewayOrderId"`
	EmiID          string          `json:"emiId"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	PaymentMethod  PaymentMethod   `json:"paymentMethod"`
	Status         PaymentStatus   `json:"status"`
	CreatedAt      time.Time       `json:"createdAt"`
}
