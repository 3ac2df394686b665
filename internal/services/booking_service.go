package services

import (
	"fmt"
	"strings"
	"time"

	"tourdesk/internal/domain"
	"tourdesk/internal/domain/models"
	"tourdesk/internal/idgen"
	"tourdesk/internal/mailer"
	"tourdesk/internal/utils"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// BookingService owns the booking state machine and the money fields
// around it.
type BookingService struct {
	Bookings     BookingStore
	Travelers    TravelerStore
	Agents       AgentStore
	Emis         EmiStore
	Transactions TransactionStore
	IDs          IDSource
	Mail         mailer.Mailer
	RequestID    string
	Now          func() time.Time
}

func (s BookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

type CreateBookingInput struct {
	TravelerID       string          `json:"travelerId"`
	AgentID          string          `json:"agentId"`
	Amount           decimal.Decimal `json:"amount"`
	BaseAmount       decimal.Decimal `json:"baseAmount"`
	StartDate        time.Time       `json:"startDate"`
	EndDate          time.Time       `json:"endDate"`
	Venue            string          `json:"venue"`
	PackageType      string          `json:"packageType"`
	NumberOfAdults   int             `json:"numberOfAdults"`
	NumberOfChildren int             `json:"numberOfChildren"`
}

// CreateBooking validates the trip, consumes the traveler's credit-note
// balance against the price, and persists the booking in CREATED.
// Returns the booking and the traveler with the updated balance.
func (s BookingService) CreateBooking(in CreateBookingInput) (models.Booking, models.Traveler, error) {
	in.TravelerID = strings.TrimSpace(in.TravelerID)
	in.AgentID = strings.TrimSpace(in.AgentID)
	in.Venue = strings.TrimSpace(in.Venue)
	in.PackageType = strings.TrimSpace(in.PackageType)

	var none models.Booking
	var noTrav models.Traveler

	if in.TravelerID == "" {
		return none, noTrav, domain.ValidationError{Field: "travelerId", Msg: "required"}
	}
	if in.Venue == "" {
		return none, noTrav, domain.ValidationError{Field: "venue", Msg: "required"}
	}
	if in.PackageType == "" {
		return none, noTrav, domain.ValidationError{Field: "packageType", Msg: "required"}
	}
	if !in.Amount.IsPositive() {
		return none, noTrav, domain.ValidationError{Field: "amount", Msg: "must be positive"}
	}
	if in.BaseAmount.IsNegative() {
		return none, noTrav, domain.ValidationError{Field: "baseAmount", Msg: "cannot be negative"}
	}
	if in.BaseAmount.GreaterThan(in.Amount) {
		return none, noTrav, domain.ValidationError{Field: "baseAmount", Msg: "cannot exceed amount"}
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return none, noTrav, domain.ValidationError{Field: "startDate", Msg: "start and end dates required"}
	}

	now := s.now()
	if in.StartDate.After(in.EndDate) {
		return none, noTrav, domain.ValidationError{Field: "startDate", Msg: "start date is after end date"}
	}
	if !in.EndDate.After(now) {
		return none, noTrav, domain.ValidationError{Field: "endDate", Msg: "must be in the future"}
	}
	if in.NumberOfAdults < 1 {
		return none, noTrav, domain.ValidationError{Field: "numberOfAdults", Msg: "at least one adult required"}
	}
	if in.NumberOfChildren < 0 {
		return none, noTrav, domain.ValidationError{Field: "numberOfChildren", Msg: "cannot be negative"}
	}

	overlapping, err := s.Bookings.HasOverlapping(in.TravelerID, in.StartDate, in.EndDate)
	if err != nil {
		return none, noTrav, domain.InternalError{Err: err}
	}
	if overlapping {
		return none, noTrav, domain.ConflictError{Resource: "booking", Msg: "dates overlap an existing booking for this traveler"}
	}

	traveler, err := s.Travelers.GetByID(in.TravelerID)
	if err != nil {
		return none, noTrav, err
	}

	bookingType := models.BookingDirect
	var agent models.Agent
	if in.AgentID != "" {
		agent, err = s.Agents.GetByID(in.AgentID)
		if err != nil {
			return none, noTrav, err
		}
		bookingType = models.BookingReferral
	}

	// Credit-note offset: the traveler's balance covers the price first,
	// up to the full amount.
	used := decimal.Min(traveler.Refund, in.Amount)

	profit := decimal.Zero
	if !in.BaseAmount.IsZero() {
		profit = in.Amount.Sub(in.BaseAmount).Div(in.BaseAmount).Mul(hundred).Round(2)
	}

	id, err := s.IDs.Next(idgen.EntityBooking)
	if err != nil {
		return none, noTrav, domain.InternalError{Err: err}
	}

	if err := s.Travelers.ConsumeRefund(traveler.ID, used); err != nil {
		return none, noTrav, err
	}

	b := models.Booking{
		ID:               id,
		TravelerID:       traveler.ID,
		TravelerName:     traveler.FullName,
		AgentID:          agent.ID,
		AgentName:        agent.FullName,
		BookingType:      bookingType,
		Amount:           in.Amount,
		BaseAmount:       in.BaseAmount,
		ProfitPercentage: profit,
		DueAmount:        in.Amount.Sub(used),
		PaidAmount:       used,
		UsedCreditNote:   used,
		StartDate:        in.StartDate,
		EndDate:          in.EndDate,
		Venue:            in.Venue,
		PackageType:      in.PackageType,
		Status:           models.BookingCreated,
		NumberOfAdults:   in.NumberOfAdults,
		NumberOfChildren: in.NumberOfChildren,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.Bookings.Create(b); err != nil {
		return none, noTrav, domain.InternalError{Err: err}
	}

	if used.IsPositive() {
		_, err := appendTransaction(s.Transactions, s.IDs, models.Transaction{
			BookingID:     b.ID,
			Amount:        used,
			PaymentMethod: models.MethodCreditNote,
			Settled:       true,
			Type:          models.TransactionCredit,
			CreatedAt:     now,
		})
		if err != nil {
			return none, noTrav, domain.InternalError{Msg: "credit note ledger entry failed", Err: err}
		}
	}
	traveler.Refund = traveler.Refund.Sub(used)

	s.notify(traveler.Email, "Booking confirmed",
		fmt.Sprintf("Hi %s, your booking %s (%s, %s to %s) is confirmed. Amount due: %s.",
			traveler.FullName, b.ID, b.Venue, utils.FormatDate(b.StartDate), utils.FormatDate(b.EndDate),
			utils.FormatINR(b.DueAmount)))

	utils.LogEvent(s.RequestID, "booking", "create", "id="+b.ID+" type="+string(bookingType)+" used_credit_note="+used.String())
	return b, traveler, nil
}

type UpdateBookingInput struct {
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Venue       string    `json:"venue"`
	PackageType string    `json:"packageType"`
}

// UpdateBooking rewrites the trip details while the booking is still
// CREATED. Date overlap against other bookings is not re-checked here.
func (s BookingService) UpdateBooking(id string, in UpdateBookingInput) (models.Booking, error) {
	in.Venue = strings.TrimSpace(in.Venue)
	in.PackageType = strings.TrimSpace(in.PackageType)

	if in.StartDate.IsZero() || in.EndDate.IsZero() || in.Venue == "" || in.PackageType == "" {
		return models.Booking{}, domain.ValidationError{Msg: "startDate, endDate, venue and packageType are required"}
	}
	if in.StartDate.After(in.EndDate) {
		return models.Booking{}, domain.ValidationError{Field: "startDate", Msg: "start date is after end date"}
	}

	b, err := s.Bookings.GetByID(id)
	if err != nil {
		return models.Booking{}, err
	}
	if b.Status != models.BookingCreated {
		return models.Booking{}, domain.ConflictError{Resource: "booking", Msg: "already " + strings.ToLower(string(b.Status))}
	}

	if err := s.Bookings.UpdateDetails(id, in.StartDate, in.EndDate, in.Venue, in.PackageType); err != nil {
		return models.Booking{}, err
	}
	utils.LogEvent(s.RequestID, "booking", "update", "id="+id)
	return s.Bookings.GetByID(id)
}

// ChangeStatus moves the booking along the state machine. Same-status
// transitions are rejected rather than ignored so the caller learns the
// request was a no-op.
func (s BookingService) ChangeStatus(id string, status models.BookingStatus) (models.Booking, error) {
	if !status.Valid() {
		return models.Booking{}, domain.ValidationError{Field: "status", Msg: "unknown status"}
	}

	b, err := s.Bookings.GetByID(id)
	if err != nil {
		return models.Booking{}, err
	}
	if b.Status == status {
		return models.Booking{}, domain.ConflictError{Resource: "booking", Msg: "already " + strings.ToLower(string(b.Status))}
	}
	if b.Terminal() {
		return models.Booking{}, domain.ConflictError{Resource: "booking", Msg: "already " + strings.ToLower(string(b.Status))}
	}
	if status == models.BookingCreated {
		return models.Booking{}, domain.ConflictError{Resource: "booking", Msg: "cannot move back to created"}
	}

	if err := s.Bookings.UpdateStatus(id, status); err != nil {
		return models.Booking{}, err
	}
	b.Status = status

	if traveler, err := s.Travelers.GetByID(b.TravelerID); err == nil {
		s.notify(traveler.Email, "Booking "+strings.ToLower(string(status)),
			fmt.Sprintf("Hi %s, booking %s is now %s.", traveler.FullName, b.ID, strings.ToLower(string(status))))
	}
	utils.LogEvent(s.RequestID, "booking", "change_status", "id="+id+" status="+string(status))
	return b, nil
}

// CancelBooking is a shortcut for moving a CREATED or STARTED booking
// to CANCELLED.
func (s BookingService) CancelBooking(id string) (models.Booking, error) {
	b, err := s.Bookings.GetByID(id)
	if err != nil {
		return models.Booking{}, err
	}
	if b.Status != models.BookingCreated && b.Status != models.BookingStarted {
		return models.Booking{}, domain.ConflictError{Resource: "booking", Msg: "already " + strings.ToLower(string(b.Status))}
	}
	return s.ChangeStatus(id, models.BookingCancelled)
}

// DeleteBooking hard-deletes the booking row. EMIs and ledger entries
// keep their booking_id and become orphans.
func (s BookingService) DeleteBooking(id string) error {
	if err := s.Bookings.Delete(id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "booking", "delete", "id="+id)
	return nil
}

// GetBooking returns the booking with its installment schedule.
func (s BookingService) GetBooking(id string) (models.Booking, error) {
	b, err := s.Bookings.GetByID(id)
	if err != nil {
		return models.Booking{}, err
	}
	emis, err := s.Emis.ListByBooking(id)
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	b.Emis = emis
	return b, nil
}

func (s BookingService) ListBookings(bookingType models.BookingType, f domain.ListFilter) ([]models.Booking, int, error) {
	return s.Bookings.List(bookingType, f)
}

func (s BookingService) notify(to, subject, body string) {
	if s.Mail == nil || to == "" {
		return
	}
	if err := s.Mail.Send(to, subject, body); err != nil {
		utils.LogEvent(s.RequestID, "booking", "notify", "mail failed: "+err.Error())
	}
}
