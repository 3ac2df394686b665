package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingCreated   BookingStatus = "CREATED"
	BookingStarted   BookingStatus = "STARTED"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// Valid reports whether s is one of the known statuses.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingCreated, BookingStarted, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

type BookingType string

const (
	BookingDirect   BookingType = "DIRECT"
	BookingReferral BookingType = "REFERRAL"
)

// Booking is the central aggregate of the money flow.
//
// Invariant after every EMI/payment mutation:
//
//	dueAmount + paidAmount == amount
//
// Refunds reduce amount itself instead, so the equation keeps holding
// with a smaller total. UsedCreditNote is a one-time snapshot taken at
// creation and never revisited.
type Booking struct {
	ID               string          `json:"id"`
	TravelerID       string          `json:"travelerId"`
	TravelerName     string          `json:"travelerName"`
	AgentID          string          `json:"agentId,omitempty"`
	AgentName        string          `json:"agentName,omitempty"`
	BookingType      BookingType     `json:"bookingType"`
	Amount           decimal.Decimal `json:"amount"`
	BaseAmount       decimal.Decimal `json:"baseAmount"`
	ProfitPercentage decimal.Decimal `json:"profitPercentage"`
	DueAmount        decimal.Decimal `json:"dueAmount"`
	PaidAmount       decimal.Decimal `json:"paidAmount"`
	UsedCreditNote   decimal.Decimal `json:"usedCreditNote"`
	StartDate        time.Time       `json:"startDate"`
	EndDate          time.Time       `json:"endDate"`
	Venue            string          `json:"venue"`
	PackageType      string          `json:"packageType"`
	Status           BookingStatus   `json:"status"`
	NumberOfAdults   int             `json:"numberOfAdults"`
	NumberOfChildren int             `json:"numberOfChildren"`
	Version          int64           `json:"-"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`

	// Emis is populated on detail reads only.
	Emis []Emi `json:"emis,omitempty"`
}

// Terminal reports whether no further status transition is accepted.
// Refund bookkeeping on a COMPLETED booking does not count as a
// transition.
func (b Booking) Terminal() bool {
	return b.Status == BookingCompleted || b.Status == BookingCancelled
}
