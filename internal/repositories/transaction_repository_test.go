package repositories

import (
	"testing"

	"tourdesk/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
)

func TestSumByBookingSplitsLedger(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := TransactionRepository{DB: db}

	mock.ExpectQuery("FROM transactions").
		WithArgs("BKG-1").
		WillReturnRows(sqlmock.NewRows([]string{"paid", "refunded"}).AddRow("800.00", "200.00"))

	paid, refunded, err := repo.SumByBooking("BKG-1")
	if err != nil {
		t.Fatalf("sum error: %v", err)
	}
	if !paid.Equal(decimal.NewFromInt(800)) || !refunded.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("got paid=%s refunded=%s", paid, refunded)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestNormalizeTransactionType(t *testing.T) {
	cases := map[string]models.TransactionType{
		"credit":  models.TransactionCredit,
		" REFUND": models.TransactionRefund,
		"all":     "",
		"":        "",
	}
	for raw, want := range cases {
		if got := NormalizeTransactionType(raw); got != want {
			t.Fatalf("%q: want %q, got %q", raw, want, got)
		}
	}
}
