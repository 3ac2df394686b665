package services

import (
	"tourdesk/internal/domain"
	"tourdesk/internal/domain/models"
	"tourdesk/internal/utils"
)

// TransactionService exposes the ledger to the accounts screens.
type TransactionService struct {
	Transactions TransactionStore
	RequestID    string
}

func (s TransactionService) Get(id string) (models.Transaction, error) {
	return s.Transactions.GetByID(id)
}

func (s TransactionService) List(transactionType models.TransactionType, f domain.ListFilter) ([]models.Transaction, int, error) {
	return s.Transactions.List(transactionType, f)
}

func (s TransactionService) ListByBooking(bookingID string) ([]models.Transaction, error) {
	return s.Transactions.ListByBooking(bookingID)
}

// MarkSettled is how accounts staff confirm a cash payment they have
// counted. Settling is one-way from this path.
func (s TransactionService) MarkSettled(id string) error {
	t, err := s.Transactions.GetByID(id)
	if err != nil {
		return err
	}
	if t.Settled {
		return domain.ConflictError{Resource: "transaction", Msg: "already settled"}
	}
	if err := s.Transactions.SetSettled(id, true); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "transaction", "settle", "id="+id)
	return nil
}
