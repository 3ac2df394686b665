package repositories

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newPaymentMock(t *testing.T) (sqlmock.Sqlmock, PaymentRepository) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return mock, PaymentRepository{DB: db}
}

func TestSettleFirstDeliveryWins(t *testing.T) {
	mock, repo := newPaymentMock(t)

	mock.ExpectExec("UPDATE payments SET status").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE payments SET status").
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.Settle("plink_001")
	if err != nil || !ok {
		t.Fatalf("first settle: ok=%v err=%v", ok, err)
	}
	ok, err = repo.Settle("plink_001")
	if err != nil {
		t.Fatalf("second settle error: %v", err)
	}
	if ok {
		t.Fatal("second delivery must match zero rows")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteAbandonedReportsCount(t *testing.T) {
	mock, repo := newPaymentMock(t)

	mock.ExpectExec("DELETE FROM payments").
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.DeleteAbandoned(time.Now().Add(-24 * time.Hour))
	if err != nil {
		t.Fatalf("delete error: %v", err)
	}
	if n != 3 {
		t.Fatalf("want 3 purged, got %d", n)
	}
}
