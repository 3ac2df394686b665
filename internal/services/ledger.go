package services

import (
	"tourdesk/internal/domain/models"
	"tourdesk/internal/idgen"
)

// appendTransaction assigns a fresh ledger id and persists the entry.
// Currency defaults to INR when the caller leaves it empty.
func appendTransaction(store TransactionStore, ids IDSource, t models.Transaction) (models.Transaction, error) {
	id, err := ids.Next(idgen.EntityTransaction)
	if err != nil {
		return models.Transaction{}, err
	}
	t.ID = id
	if t.Currency == "" {
		t.Currency = "INR"
	}
	if err := store.Create(t); err != nil {
		return models.Transaction{}, err
	}
	return t, nil
}
