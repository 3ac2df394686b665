package repositories

import (
	"database/sql"
	"errors"
	"strings"

	"tourdesk/internal/domain"
	"tourdesk/internal/domain/models"

	"github.com/shopspring/decimal"
)

type TransactionRepository struct {
	DB *sql.DB
}

const transactionColumns = `id, booking_id, currency, amount, payment_method, COALESCE(gateway_payment_id,''), settled, transaction_type, created_at`

func scanTransaction(row rowScanner) (models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(&t.ID, &t.BookingID, &t.Currency, &t.Amount, &t.PaymentMethod, &t.GatewayPaymentID, &t.Settled, &t.Type, &t.CreatedAt)
	return t, err
}

func (r TransactionRepository) Create(t models.Transaction) error {
	_, err := r.DB.Exec(`
		INSERT INTO transactions (id, booking_id, currency, amount, payment_method, gateway_payment_id, settled, transaction_type, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.BookingID, t.Currency, t.Amount, t.PaymentMethod, t.GatewayPaymentID, t.Settled, t.Type, t.CreatedAt,
	)
	return err
}

func (r TransactionRepository) GetByID(id string) (models.Transaction, error) {
	t, err := scanTransaction(r.DB.QueryRow(`SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Transaction{}, domain.NotFoundError{Resource: "transaction"}
	}
	return t, err
}

func (r TransactionRepository) ListByBooking(bookingID string) ([]models.Transaction, error) {
	rows, err := r.DB.Query(`
		SELECT `+transactionColumns+` FROM transactions WHERE booking_id = ? ORDER BY created_at`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTransactions(rows)
}

// List powers the transaction screen: search over ids, optional window
// and type filter, newest first.
func (r TransactionRepository) List(transactionType models.TransactionType, f domain.ListFilter) ([]models.Transaction, int, error) {
	where, args := searchWindowClause(f, []string{"id", "booking_id", "gateway_payment_id"})
	if transactionType != "" {
		if where == "" {
			where = " WHERE transaction_type = ?"
		} else {
			where += " AND transaction_type = ?"
		}
		args = append(args, transactionType)
	}

	var total int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM transactions`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.Query(`SELECT `+transactionColumns+` FROM transactions`+where+orderAndPage(f), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out, err := collectTransactions(rows)
	return out, total, err
}

func (r TransactionRepository) SetSettled(id string, settled bool) error {
	res, err := r.DB.Exec(`UPDATE transactions SET settled = ? WHERE id = ?`, settled, id)
	if err != nil {
		return err
	}
	return noneAffectedAsNotFound(res, "transaction")
}

// SumByBooking computes the refundable position in one pass: settled
// CREDIT total and all-time REFUND total.
func (r TransactionRepository) SumByBooking(bookingID string) (paid, refunded decimal.Decimal, err error) {
	err = r.DB.QueryRow(`
		SELECT
			COALESCE(SUM(CASE WHEN transaction_type = 'CREDIT' AND settled = 1 THEN amount END), 0),
			COALESCE(SUM(CASE WHEN transaction_type = 'REFUND' THEN amount END), 0)
		FROM transactions
		WHERE booking_id = ?`, bookingID,
	).Scan(&paid, &refunded)
	return paid, refunded, err
}

func collectTransactions(rows *sql.Rows) ([]models.Transaction, error) {
	var out []models.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// NormalizeTransactionType maps the query-string filter to a ledger type, empty
// meaning no filter.
func NormalizeTransactionType(raw string) models.TransactionType {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "CREDIT":
		return models.TransactionCredit
	case "REFUND":
		return models.TransactionRefund
	default:
		return ""
	}
}
