package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Traveler is a registered customer. Refund is the credit-note balance:
// consumed when a new booking is created, topped up by credit-note
// refunds. It never goes negative.
type Traveler struct {
	ID        string          `json:"id"`
	AvatarURL string          `json:"avatarUrl"`
	FullName  string          `json:"fullName"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone"`
	Address   string          `json:"address"`
	Refund    decimal.Decimal `json:"refund"`
	CreatedAt time.Time       `json:"createdAt"`
}
