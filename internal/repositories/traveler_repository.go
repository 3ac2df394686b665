package repositories

import (
	"database/sql"
	"errors"

	"tourdesk/internal/domain"
	"tourdesk/internal/domain/models"

	"github.com/shopspring/decimal"
)

type TravelerRepository struct {
	DB *sql.DB
}

const travelerColumns = `id, COALESCE(avatar_url,''), full_name, email, phone, COALESCE(address,''), refund, created_at`

func scanTraveler(row *sql.Row) (models.Traveler, error) {
	var t models.Traveler
	err := row.Scan(&t.ID, &t.AvatarURL, &t.FullName, &t.Email, &t.Phone, &t.Address, &t.Refund, &t.CreatedAt)
	return t, err
}

func (r TravelerRepository) Create(t models.Traveler) error {
	_, err := r.DB.Exec(`
		INSERT INTO travelers (id, avatar_url, full_name, email, phone, address, refund, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.AvatarURL, t.FullName, t.Email, t.Phone, t.Address, t.Refund, t.CreatedAt,
	)
	return err
}

func (r TravelerRepository) GetByID(id string) (models.Traveler, error) {
	t, err := scanTraveler(r.DB.QueryRow(`SELECT `+travelerColumns+` FROM travelers WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Traveler{}, domain.NotFoundError{Resource: "traveler"}
	}
	return t, err
}

// FindByEmailOrPhone returns a traveler holding either contact value,
// skipping excludeID so updates can re-check uniqueness against
// everyone else. ok is false when no row matches.
func (r TravelerRepository) FindByEmailOrPhone(email, phone, excludeID string) (models.Traveler, bool, error) {
	t, err := scanTraveler(r.DB.QueryRow(`
		SELECT `+travelerColumns+`
		FROM travelers
		WHERE (email = ? OR phone = ?) AND id <> ?
		LIMIT 1`, email, phone, excludeID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Traveler{}, false, nil
	}
	if err != nil {
		return models.Traveler{}, false, err
	}
	return t, true, nil
}

func (r TravelerRepository) Update(t models.Traveler) error {
	res, err := r.DB.Exec(`
		UPDATE travelers
		SET avatar_url = ?, full_name = ?, email = ?, phone = ?, address = ?
		WHERE id = ?`,
		t.AvatarURL, t.FullName, t.Email, t.Phone, t.Address, t.ID,
	)
	if err != nil {
		return err
	}
	return noneAffectedAsNotFound(res, "traveler")
}

func (r TravelerRepository) Delete(id string) error {
	res, err := r.DB.Exec(`DELETE FROM travelers WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return noneAffectedAsNotFound(res, "traveler")
}

// ConsumeRefund atomically deducts a used credit note. The guard keeps
// the balance non-negative even when two bookings race on the same
// traveler.
func (r TravelerRepository) ConsumeRefund(id string, used decimal.Decimal) error {
	if used.IsZero() {
		return nil
	}
	res, err := r.DB.Exec(`
		UPDATE travelers
		SET refund = refund - ?
		WHERE id = ? AND refund >= ?`,
		used, id, used,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ConflictError{Resource: "traveler", Msg: "credit note balance changed, retry"}
	}
	return nil
}

// AddRefund tops up the credit-note balance (credit-note refunds).
func (r TravelerRepository) AddRefund(id string, amount decimal.Decimal) error {
	res, err := r.DB.Exec(`UPDATE travelers SET refund = refund + ? WHERE id = ?`, amount, id)
	if err != nil {
		return err
	}
	return noneAffectedAsNotFound(res, "traveler")
}

func (r TravelerRepository) List(f domain.ListFilter) ([]models.Traveler, int, error) {
	where, args := searchWindowClause(f, []string{"full_name", "email", "phone", "id"})

	var total int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM travelers`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + travelerColumns + ` FROM travelers` + where + orderAndPage(f)
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []models.Traveler
	for rows.Next() {
		var t models.Traveler
		if err := rows.Scan(&t.ID, &t.AvatarURL, &t.FullName, &t.Email, &t.Phone, &t.Address, &t.Refund, &t.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, t)
	}
	return out, total, rows.Err()
}
