package services

import (
	"testing"

	"tourdesk/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestDocsServiceGenerate(t *testing.T) {
	bf := newBookingFixture()
	b, _, err := bf.svc.CreateBooking(validBookingInput())
	require.NoError(t, err)

	emiSvc := EmiService{Emis: bf.emis, Bookings: bf.bookings, IDs: &fakeIDs{}, Now: fixedClock}
	_, err = emiSvc.AddEmi(b.ID, d("200"), testNow.AddDate(0, 0, 5))
	require.NoError(t, err)

	svc := DocsService{
		Transactions: bf.transactions,
		Bookings:     bf.bookings,
		Emis:         bf.emis,
		Travelers:    bf.travelers,
	}

	receiptTx := bf.transactions.list[0]
	pdf, filename, err := svc.GenerateReceipt(receiptTx.ID)
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	require.Equal(t, "RECEIPT_"+receiptTx.ID+".pdf", filename)

	pdf, filename, err = svc.GenerateStatement(b.ID)
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	require.Equal(t, "STATEMENT_"+b.ID+".pdf", filename)
}

func TestDocsServiceMissingRecords(t *testing.T) {
	svc := DocsService{
		Transactions: &fakeTransactions{},
		Bookings:     newFakeBookings(),
		Emis:         newFakeEmis(),
		Travelers:    newFakeTravelers(),
	}

	_, _, err := svc.GenerateReceipt("TRN-404")
	require.True(t, domain.IsNotFound(err))

	_, _, err = svc.GenerateStatement("BKG-404")
	require.True(t, domain.IsNotFound(err))
}
