package repositories

import (
	"database/sql"
	"errors"
	"time"

	"tourdesk/internal/domain"
	"tourdesk/internal/domain/models"

	"github.com/shopspring/decimal"
)

type BookingRepository struct {
	DB *sql.DB
}

const bookingColumns = `id, traveler_id, COALESCE(traveler_name,''), COALESCE(agent_id,''), COALESCE(agent_name,''),
	booking_type, amount, base_amount, profit_percentage, due_amount, paid_amount, used_credit_note,
	start_date, end_date, venue, package_type, status, number_of_adults, number_of_children, version,
	created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (models.Booking, error) {
	var b models.Booking
	err := row.Scan(
		&b.ID, &b.TravelerID, &b.TravelerName, &b.AgentID, &b.AgentName,
		&b.BookingType, &b.Amount, &b.BaseAmount, &b.ProfitPercentage, &b.DueAmount, &b.PaidAmount, &b.UsedCreditNote,
		&b.StartDate, &b.EndDate, &b.Venue, &b.PackageType, &b.Status, &b.NumberOfAdults, &b.NumberOfChildren, &b.Version,
		&b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}

func (r BookingRepository) Create(b models.Booking) error {
	_, err := r.DB.Exec(`
		INSERT INTO bookings (id, traveler_id, traveler_name, agent_id, agent_name, booking_type,
			amount, base_amount, profit_percentage, due_amount, paid_amount, used_credit_note,
			start_date, end_date, venue, package_type, status, number_of_adults, number_of_children,
			version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?)`,
		b.ID, b.TravelerID, b.TravelerName, b.AgentID, b.AgentName, b.BookingType,
		b.Amount, b.BaseAmount, b.ProfitPercentage, b.DueAmount, b.PaidAmount, b.UsedCreditNote,
		b.StartDate, b.EndDate, b.Venue, b.PackageType, b.Status, b.NumberOfAdults, b.NumberOfChildren,
		b.CreatedAt, b.UpdatedAt,
	)
	return err
}

func (r BookingRepository) GetByID(id string) (models.Booking, error) {
	b, err := scanBooking(r.DB.QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	return b, err
}

// HasOverlapping reports whether the traveler already has a booking
// whose date range collides with [start, end]: either boundary of the
// new range inside the existing one, or the new range containing it.
func (r BookingRepository) HasOverlapping(travelerID string, start, end time.Time) (bool, error) {
	var n int
	err := r.DB.QueryRow(`
		SELECT COUNT(*)
		FROM bookings
		WHERE traveler_id = ?
		  AND (
			(start_date >= ? AND start_date <= ?) OR
			(end_date   >= ? AND end_date   <= ?) OR
			(start_date <  ? AND end_date   >  ?)
		  )`,
		travelerID,
		start, end,
		start, end,
		start, end,
	).Scan(&n)
	return n > 0, err
}

// UpdateDetails rewrites the editable trip fields. Status gating lives
// in the service.
func (r BookingRepository) UpdateDetails(id string, start, end time.Time, venue, packageType string) error {
	res, err := r.DB.Exec(`
		UPDATE bookings
		SET start_date = ?, end_date = ?, venue = ?, package_type = ?
		WHERE id = ?`,
		start, end, venue, packageType, id,
	)
	if err != nil {
		return err
	}
	return noneAffectedAsNotFound(res, "booking")
}

func (r BookingRepository) UpdateStatus(id string, status models.BookingStatus) error {
	res, err := r.DB.Exec(`UPDATE bookings SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	return noneAffectedAsNotFound(res, "booking")
}

// ApplyFinancials rewrites the money columns with an optimistic version
// check. A read-compute-write caller (EMI scheduling, refunds) passes
// the version it read; losing a race surfaces as a conflict instead of
// a silent lost update.
func (r BookingRepository) ApplyFinancials(id string, amount, due, paid decimal.Decimal, version int64) error {
	res, err := r.DB.Exec(`
		UPDATE bookings
		SET amount = ?, due_amount = ?, paid_amount = ?, version = version + 1
		WHERE id = ? AND version = ?`,
		amount, due, paid, id, version,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ConflictError{Resource: "booking", Msg: "modified concurrently, retry"}
	}
	return nil
}

// AddPaid settles a payment against the cached paid projection. A
// plain atomic increment; payment settlement never needs the
// read-modify-write cycle.
func (r BookingRepository) AddPaid(id string, amount decimal.Decimal) error {
	res, err := r.DB.Exec(`
		UPDATE bookings
		SET paid_amount = paid_amount + ?, version = version + 1
		WHERE id = ?`,
		amount, id,
	)
	if err != nil {
		return err
	}
	return noneAffectedAsNotFound(res, "booking")
}

func (r BookingRepository) Delete(id string) error {
	res, err := r.DB.Exec(`DELETE FROM bookings WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return noneAffectedAsNotFound(res, "booking")
}

func (r BookingRepository) List(bookingType models.BookingType, f domain.ListFilter) ([]models.Booking, int, error) {
	where, args := searchWindowClause(f, []string{
		"id", "venue", "package_type", "status", "traveler_id", "agent_id", "agent_name", "traveler_name",
	})
	if where == "" {
		where = " WHERE booking_type = ?"
	} else {
		where += " AND booking_type = ?"
	}
	args = append(args, bookingType)

	var total int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM bookings`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.Query(`SELECT `+bookingColumns+` FROM bookings`+where+orderAndPage(f), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectBookings(rows, total)
}

// FindStartDue returns CREATED bookings whose start date has arrived.
// The promotion sweep still checks payment completeness per booking.
func (r BookingRepository) FindStartDue(now time.Time) ([]models.Booking, error) {
	rows, err := r.DB.Query(`
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE status = ? AND start_date <= ?`,
		models.BookingCreated, now,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out, _, err := collectBookings(rows, 0)
	return out, err
}

// FindEndDue returns STARTED bookings whose end date has passed.
func (r BookingRepository) FindEndDue(now time.Time) ([]models.Booking, error) {
	rows, err := r.DB.Query(`
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE status = ? AND end_date <= ?`,
		models.BookingStarted, now,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out, _, err := collectBookings(rows, 0)
	return out, err
}

func collectBookings(rows *sql.Rows, total int) ([]models.Booking, int, error) {
	var out []models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, b)
	}
	return out, total, rows.Err()
}
