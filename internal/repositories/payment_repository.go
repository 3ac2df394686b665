package repositories

import (
	"database/sql"
	"errors"
	"time"

	"tourdesk/internal/domain"
	"tourdesk/internal/domain/models"
)

type PaymentRepository struct {
	DB *sql.DB
}

const paymentColumns = `id, gateway_order_id, emi_id, amount, currency, payment_method, status, created_at`

func (r PaymentRepository) Create(p models.Payment) error {
	_, err := r.DB.Exec(`
		INSERT INTO payments (gateway_order_id, emi_id, amount, currency, payment_method, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.GatewayOrderID, p.EmiID, p.Amount, p.Currency, p.PaymentMethod, p.Status, p.CreatedAt,
	)
	return err
}

func (r PaymentRepository) GetByOrderID(orderID string) (models.Payment, error) {
	var p models.Payment
	err := r.DB.QueryRow(`SELECT `+paymentColumns+` FROM payments WHERE gateway_order_id = ?`, orderID).
		Scan(&p.ID, &p.GatewayOrderID, &p.EmiID, &p.Amount, &p.Currency, &p.PaymentMethod, &p.Status, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Payment{}, domain.NotFoundError{Resource: "order"}
	}
	return p, err
}

// Settle flips a CREATED order to PAID. The condition makes webhook
// double-delivery a no-op: the second delivery matches zero rows and
// the caller rejects it.
func (r PaymentRepository) Settle(orderID string) (bool, error) {
	res, err := r.DB.Exec(`
		UPDATE payments SET status = ? WHERE gateway_order_id = ? AND status = ?`,
		models.PaymentPaid, orderID, models.PaymentCreated,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r PaymentRepository) MarkFailed(orderID string) error {
	_, err := r.DB.Exec(`
		UPDATE payments SET status = ? WHERE gateway_order_id = ?`,
		models.PaymentFailed, orderID,
	)
	return err
}

// DeleteAbandoned drops orders that never left CREATED before the
// cutoff. Storage hygiene only.
func (r PaymentRepository) DeleteAbandoned(before time.Time) (int64, error) {
	res, err := r.DB.Exec(`
		DELETE FROM payments WHERE status = ? AND created_at < ?`,
		models.PaymentCreated, before,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
