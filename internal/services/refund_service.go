package services

import (
	"time"

	"tourdesk/internal/domain"
	"tourdesk/internal/domain/models"
	"tourdesk/internal/utils"

	"github.com/shopspring/decimal"
)

// RefundService pays money back against a booking. The refundable
// position comes from the ledger, not the cached booking columns:
// settled credits minus prior refunds.
type RefundService struct {
	Bookings     BookingStore
	Travelers    TravelerStore
	Agents       AgentStore
	Transactions TransactionStore
	IDs          IDSource

	// RefundCommission is the agent coin claw-back rate applied when the
	// refunded booking had already completed.
	RefundCommission decimal.Decimal

	RequestID string
	Now       func() time.Time
}

func (s RefundService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Refund applies a refund of amount via the given method. CREDIT_NOTE
// returns the money to the traveler's balance instead of an external
// payout. Both booking.amount and booking.paidAmount shrink by the
// refund, so the booking's effective value tracks what was actually
// kept.
func (s RefundService) Refund(bookingID string, amount decimal.Decimal, method models.PaymentMethod) (models.Transaction, error) {
	if !amount.IsPositive() {
		return models.Transaction{}, domain.ValidationError{Field: "amount", Msg: "must be positive"}
	}
	switch method {
	case models.MethodCash, models.MethodNEFT, models.MethodCreditNote:
	default:
		return models.Transaction{}, domain.ValidationError{Field: "paymentMethod", Msg: "unsupported refund method"}
	}

	b, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		return models.Transaction{}, err
	}

	paid, refunded, err := s.Transactions.SumByBooking(b.ID)
	if err != nil {
		return models.Transaction{}, domain.InternalError{Err: err}
	}
	if paid.IsZero() {
		return models.Transaction{}, domain.ConflictError{Resource: "refund", Msg: "no settled payment found"}
	}
	if refunded.Add(amount).GreaterThan(paid) {
		return models.Transaction{}, domain.ConflictError{Resource: "refund", Msg: "amount exceeds net paid amount"}
	}

	if err := s.Bookings.ApplyFinancials(b.ID, b.Amount.Sub(amount), b.DueAmount, b.PaidAmount.Sub(amount), b.Version); err != nil {
		return models.Transaction{}, err
	}

	if method == models.MethodCreditNote {
		if err := s.Travelers.AddRefund(b.TravelerID, amount); err != nil {
			return models.Transaction{}, err
		}
	}

	t, err := appendTransaction(s.Transactions, s.IDs, models.Transaction{
		BookingID:     b.ID,
		Amount:        amount,
		PaymentMethod: method,
		Settled:       true,
		Type:          models.TransactionRefund,
		CreatedAt:     s.now(),
	})
	if err != nil {
		return models.Transaction{}, domain.InternalError{Msg: "refund ledger entry failed", Err: err}
	}

	// Claw back the commission already credited at completion.
	if b.Status == models.BookingCompleted && b.AgentID != "" {
		reversal := amount.Mul(s.RefundCommission)
		if err := s.Agents.AddCoins(b.AgentID, reversal.Neg()); err != nil {
			utils.LogEvent(s.RequestID, "refund", "commission_reversal", "agent="+b.AgentID+" failed: "+err.Error())
		}
	}

	utils.LogEvent(s.RequestID, "refund", "apply", "booking="+b.ID+" amount="+amount.String()+" method="+string(method))
	return t, nil
}
