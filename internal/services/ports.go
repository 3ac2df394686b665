// Consumer-side interfaces for everything the services touch. The
// MySQL repositories satisfy them in production; tests plug in
// in-memory fakes.
package services

import (
	"time"

	"tourdesk/internal/domain"
	"tourdesk/internal/domain/models"
	"tourdesk/internal/idgen"
	"tourdesk/internal/repositories"

	"github.com/shopspring/decimal"
)

type TravelerStore interface {
	Create(models.Traveler) error
	GetByID(id string) (models.Traveler, error)
	FindByEmailOrPhone(email, phone, excludeID string) (models.Traveler, bool, error)
	Update(models.Traveler) error
	Delete(id string) error
	ConsumeRefund(id string, used decimal.Decimal) error
	AddRefund(id string, amount decimal.Decimal) error
	List(domain.ListFilter) ([]models.Traveler, int, error)
}

type AgentStore interface {
	Create(models.Agent) error
	GetByID(id string) (models.Agent, error)
	FindByEmailOrPhone(email, phone, excludeID string) (models.Agent, bool, error)
	Update(models.Agent) error
	Delete(id string) error
	AddCoins(id string, delta decimal.Decimal) error
	List(domain.ListFilter) ([]models.Agent, int, error)
}

type BookingStore interface {
	Create(models.Booking) error
	GetByID(id string) (models.Booking, error)
	HasOverlapping(travelerID string, start, end time.Time) (bool, error)
	UpdateDetails(id string, start, end time.Time, venue, packageType string) error
	UpdateStatus(id string, status models.BookingStatus) error
	ApplyFinancials(id string, amount, due, paid decimal.Decimal, version int64) error
	AddPaid(id string, amount decimal.Decimal) error
	Delete(id string) error
	List(bookingType models.BookingType, f domain.ListFilter) ([]models.Booking, int, error)
	FindStartDue(now time.Time) ([]models.Booking, error)
	FindEndDue(now time.Time) ([]models.Booking, error)
}

type EmiStore interface {
	Create(models.Emi) error
	GetByID(id string) (models.Emi, error)
	ListByBooking(bookingID string) ([]models.Emi, error)
	Update(models.Emi) error
	MarkPaid(id string) error
	MarkReminded(id string) error
	Delete(id string) error
	FindReminderDue(now time.Time) ([]models.Emi, error)
}

type PaymentStore interface {
	Create(models.Payment) error
	GetByOrderID(orderID string) (models.Payment, error)
	Settle(orderID string) (bool, error)
	MarkFailed(orderID string) error
	DeleteAbandoned(before time.Time) (int64, error)
}

type TransactionStore interface {
	Create(models.Transaction) error
	GetByID(id string) (models.Transaction, error)
	ListByBooking(bookingID string) ([]models.Transaction, error)
	List(transactionType models.TransactionType, f domain.ListFilter) ([]models.Transaction, int, error)
	SetSettled(id string, settled bool) error
	SumByBooking(bookingID string) (paid, refunded decimal.Decimal, err error)
}

type UserStore interface {
	Create(models.User) error
	GetByEmail(email string) (models.User, error)
	GetByID(id string) (models.User, error)
}

// IDSource hands out fresh prefixed ids.
type IDSource interface {
	Next(e idgen.Entity) (string, error)
}

var (
	_ TravelerStore    = repositories.TravelerRepository{}
	_ AgentStore       = repositories.AgentRepository{}
	_ BookingStore     = repositories.BookingRepository{}
	_ EmiStore         = repositories.EmiRepository{}
	_ PaymentStore     = repositories.PaymentRepository{}
	_ TransactionStore = repositories.TransactionRepository{}
	_ UserStore        = repositories.UserRepository{}
	_ IDSource         = idgen.Generator{}
)
