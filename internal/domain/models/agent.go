package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Agent refers travelers and earns commission coins when their bookings
// complete. Coins may go negative after a post-completion refund; the
// balance is not clamped.
type Agent struct {
	ID        string          `json:"id"`
	AvatarURL string          `json:"avatarUrl"`
	FullName  string          `json:"fullName"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone"`
	Address   string          `json:"address"`
	Coins     decimal.Decimal `json:"coins"`
	CreatedAt time.Time       `json:"createdAt"`
}
