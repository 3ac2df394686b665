package services

import (
	"time"

	"tourdesk/internal/domain"
	"tourdesk/internal/domain/models"
	"tourdesk/internal/idgen"
	"tourdesk/internal/utils"

	"github.com/shopspring/decimal"
)

// EmiService schedules installments against a booking's due amount.
// The due amount is allocated out when an installment is scheduled and
// given back when one is deleted or shrunk; the balance is procedural,
// so every write goes through the versioned booking update.
type EmiService struct {
	Emis      EmiStore
	Bookings  BookingStore
	IDs       IDSource
	RequestID string
	Now       func() time.Time
}

func (s EmiService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// emiHorizon caps how far ahead an installment may be scheduled.
const emiHorizonYears = 2

// AddEmi schedules a new PENDING installment and deducts its amount
// from the booking's due balance.
func (s EmiService) AddEmi(bookingID string, amount decimal.Decimal, date time.Time) (models.Emi, error) {
	if !amount.IsPositive() {
		return models.Emi{}, domain.ValidationError{Field: "amount", Msg: "must be positive"}
	}
	now := s.now()
	if !date.After(now) {
		return models.Emi{}, domain.ValidationError{Field: "date", Msg: "must be in the future"}
	}
	if date.After(now.AddDate(emiHorizonYears, 0, 0)) {
		return models.Emi{}, domain.ValidationError{Field: "date", Msg: "beyond the scheduling horizon"}
	}

	b, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		return models.Emi{}, err
	}
	if b.DueAmount.IsZero() {
		return models.Emi{}, domain.ConflictError{Resource: "emi", Msg: "there is no due amount"}
	}
	if amount.GreaterThan(b.DueAmount) {
		return models.Emi{}, domain.ConflictError{Resource: "emi", Msg: "amount exceeds due amount"}
	}

	id, err := s.IDs.Next(idgen.EntityEmi)
	if err != nil {
		return models.Emi{}, domain.InternalError{Err: err}
	}

	if err := s.Bookings.ApplyFinancials(b.ID, b.Amount, b.DueAmount.Sub(amount), b.PaidAmount, b.Version); err != nil {
		return models.Emi{}, err
	}

	e := models.Emi{
		ID:        id,
		BookingID: b.ID,
		Amount:    amount,
		Date:      date,
		Status:    models.EmiPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Emis.Create(e); err != nil {
		// The due deduction already landed; surface loudly so the
		// balance can be reconciled by hand.
		utils.LogEvent(s.RequestID, "emi", "add", "create failed after due deduction, booking="+b.ID+": "+err.Error())
		return models.Emi{}, domain.InternalError{Msg: "emi not recorded", Err: err}
	}

	utils.LogEvent(s.RequestID, "emi", "add", "id="+e.ID+" booking="+b.ID+" amount="+amount.String())
	return e, nil
}

type UpdateEmiInput struct {
	Amount *decimal.Decimal `json:"amount"`
	Date   *time.Time       `json:"date"`
}

// UpdateEmi reshapes a pending installment. The due balance gets the
// old amount back and the new amount re-subtracted in one write.
func (s EmiService) UpdateEmi(emiID string, in UpdateEmiInput) (models.Emi, error) {
	e, err := s.Emis.GetByID(emiID)
	if err != nil {
		return models.Emi{}, err
	}
	if e.Status == models.EmiPaid {
		return models.Emi{}, domain.ConflictError{Resource: "emi", Msg: "already paid"}
	}

	newAmount := e.Amount
	if in.Amount != nil {
		newAmount = *in.Amount
		if !newAmount.IsPositive() {
			return models.Emi{}, domain.ValidationError{Field: "amount", Msg: "must be positive"}
		}
	}
	newDate := e.Date
	if in.Date != nil {
		newDate = *in.Date
		now := s.now()
		if !newDate.After(now) {
			return models.Emi{}, domain.ValidationError{Field: "date", Msg: "must be in the future"}
		}
		if newDate.After(now.AddDate(emiHorizonYears, 0, 0)) {
			return models.Emi{}, domain.ValidationError{Field: "date", Msg: "beyond the scheduling horizon"}
		}
	}

	b, err := s.Bookings.GetByID(e.BookingID)
	if err != nil {
		return models.Emi{}, err
	}
	newDue := b.DueAmount.Add(e.Amount).Sub(newAmount)
	if newDue.IsNegative() {
		return models.Emi{}, domain.ConflictError{Resource: "emi", Msg: "amount exceeds due amount"}
	}

	if err := s.Bookings.ApplyFinancials(b.ID, b.Amount, newDue, b.PaidAmount, b.Version); err != nil {
		return models.Emi{}, err
	}

	e.Amount = newAmount
	e.Date = newDate
	e.UpdatedAt = s.now()
	if err := s.Emis.Update(e); err != nil {
		return models.Emi{}, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "emi", "update", "id="+e.ID+" booking="+b.ID)
	return e, nil
}

// DeleteEmi removes a pending installment and returns its amount to the
// booking's due balance.
func (s EmiService) DeleteEmi(emiID string) error {
	e, err := s.Emis.GetByID(emiID)
	if err != nil {
		return err
	}
	if e.Status == models.EmiPaid {
		return domain.ConflictError{Resource: "emi", Msg: "already paid"}
	}

	b, err := s.Bookings.GetByID(e.BookingID)
	if err != nil {
		return err
	}
	if err := s.Bookings.ApplyFinancials(b.ID, b.Amount, b.DueAmount.Add(e.Amount), b.PaidAmount, b.Version); err != nil {
		return err
	}
	if err := s.Emis.Delete(e.ID); err != nil {
		return domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "emi", "delete", "id="+e.ID+" booking="+b.ID)
	return nil
}

// ListEmis returns the booking's schedule in creation order.
func (s EmiService) ListEmis(bookingID string) ([]models.Emi, error) {
	if _, err := s.Bookings.GetByID(bookingID); err != nil {
		return nil, err
	}
	return s.Emis.ListByBooking(bookingID)
}
