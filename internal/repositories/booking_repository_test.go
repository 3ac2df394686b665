package repositories

import (
	"testing"

	"tourdesk/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
)

func newMock(t *testing.T) (sqlmock.Sqlmock, BookingRepository) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return mock, BookingRepository{DB: db}
}

func TestApplyFinancialsBumpsVersion(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectExec("UPDATE bookings").
		WithArgs(decimal.NewFromInt(1000), decimal.NewFromInt(400), decimal.NewFromInt(600), "BKG-1", int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.ApplyFinancials("BKG-1", decimal.NewFromInt(1000), decimal.NewFromInt(400), decimal.NewFromInt(600), 3)
	if err != nil {
		t.Fatalf("apply error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestApplyFinancialsStaleVersionConflicts(t *testing.T) {
	mock, repo := newMock(t)

	// Version moved under us, so the CAS matches nothing.
	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.ApplyFinancials("BKG-1", decimal.NewFromInt(1000), decimal.NewFromInt(400), decimal.NewFromInt(600), 2)
	if !domain.IsConflict(err) {
		t.Fatalf("want conflict, got %v", err)
	}
}

func TestBookingUpdateStatusUnknownID(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectExec("UPDATE bookings SET status").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus("BKG-404", "STARTED")
	if !domain.IsNotFound(err) {
		t.Fatalf("want not found, got %v", err)
	}
}
