package repositories

import (
	"database/sql"
	"errors"
	"time"

	"tourdesk/internal/domain"
	"tourdesk/internal/domain/models"
)

type EmiRepository struct {
	DB *sql.DB
}

const emiColumns = `id, booking_id, amount, date, status, reminded, created_at, updated_at`

func scanEmi(row rowScanner) (models.Emi, error) {
	var e models.Emi
	err := row.Scan(&e.ID, &e.BookingID, &e.Amount, &e.Date, &e.Status, &e.Reminded, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func (r EmiRepository) Create(e models.Emi) error {
	_, err := r.DB.Exec(`
		INSERT INTO emis (id, booking_id, amount, date, status, reminded, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.BookingID, e.Amount, e.Date, e.Status, e.Reminded, e.CreatedAt, e.UpdatedAt,
	)
	return err
}

func (r EmiRepository) GetByID(id string) (models.Emi, error) {
	e, err := scanEmi(r.DB.QueryRow(`SELECT `+emiColumns+` FROM emis WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Emi{}, domain.NotFoundError{Resource: "emi"}
	}
	return e, err
}

// ListByBooking returns the booking's installments in schedule order.
func (r EmiRepository) ListByBooking(bookingID string) ([]models.Emi, error) {
	rows, err := r.DB.Query(`SELECT `+emiColumns+` FROM emis WHERE booking_id = ? ORDER BY created_at`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Emi
	for rows.Next() {
		e, err := scanEmi(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r EmiRepository) Update(e models.Emi) error {
	res, err := r.DB.Exec(`
		UPDATE emis SET amount = ?, date = ? WHERE id = ?`,
		e.Amount, e.Date, e.ID,
	)
	if err != nil {
		return err
	}
	return noneAffectedAsNotFound(res, "emi")
}

func (r EmiRepository) MarkPaid(id string) error {
	res, err := r.DB.Exec(`UPDATE emis SET status = ? WHERE id = ?`, models.EmiPaid, id)
	if err != nil {
		return err
	}
	return noneAffectedAsNotFound(res, "emi")
}

func (r EmiRepository) MarkReminded(id string) error {
	res, err := r.DB.Exec(`UPDATE emis SET reminded = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return noneAffectedAsNotFound(res, "emi")
}

func (r EmiRepository) Delete(id string) error {
	res, err := r.DB.Exec(`DELETE FROM emis WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return noneAffectedAsNotFound(res, "emi")
}

// FindReminderDue returns pending, never-reminded installments whose
// date has passed. This is the dunning sweep's work list.
func (r EmiRepository) FindReminderDue(now time.Time) ([]models.Emi, error) {
	rows, err := r.DB.Query(`
		SELECT `+emiColumns+`
		FROM emis
		WHERE status = ? AND reminded = 0 AND date < ?`,
		models.EmiPending, now,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Emi
	for rows.Next() {
		e, err := scanEmi(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
