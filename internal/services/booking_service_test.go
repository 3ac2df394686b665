package services

import (
	"testing"
	"time"

	"tourdesk/internal/domain"
	"tourdesk/internal/domain/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

type bookingFixture struct {
	svc          BookingService
	travelers    *fakeTravelers
	agents       *fakeAgents
	bookings     *fakeBookings
	emis         *fakeEmis
	transactions *fakeTransactions
	mail         *fakeMail
}

func newBookingFixture() *bookingFixture {
	f := &bookingFixture{
		travelers:    newFakeTravelers(),
		agents:       newFakeAgents(),
		bookings:     newFakeBookings(),
		emis:         newFakeEmis(),
		transactions: &fakeTransactions{},
		mail:         &fakeMail{},
	}
	f.travelers.Create(models.Traveler{
		ID: "TRV-00000001", FullName: "Asha Rao", Email: "asha@example.com",
		Phone: "9000000001", Refund: d("500"), CreatedAt: testNow,
	})
	f.agents.Create(models.Agent{
		ID: "AGT-00000001", FullName: "Vikram Shah", Email: "vikram@example.com",
		Phone: "9000000002", Coins: decimal.Zero, CreatedAt: testNow,
	})
	f.svc = BookingService{
		Bookings:     f.bookings,
		Travelers:    f.travelers,
		Agents:       f.agents,
		Emis:         f.emis,
		Transactions: f.transactions,
		IDs:          &fakeIDs{},
		Mail:         f.mail,
		Now:          fixedClock,
	}
	return f
}

func validBookingInput() CreateBookingInput {
	return CreateBookingInput{
		TravelerID:     "TRV-00000001",
		Amount:         d("1200"),
		BaseAmount:     d("1000"),
		StartDate:      testNow.AddDate(0, 0, 10),
		EndDate:        testNow.AddDate(0, 0, 20),
		Venue:          "Goa",
		PackageType:    "Deluxe",
		NumberOfAdults: 2,
	}
}

func TestCreateBookingCreditNoteOffset(t *testing.T) {
	f := newBookingFixture()

	b, traveler, err := f.svc.CreateBooking(validBookingInput())
	require.NoError(t, err)

	require.True(t, b.UsedCreditNote.Equal(d("500")), "used=%s", b.UsedCreditNote)
	require.True(t, b.DueAmount.Equal(d("700")))
	require.True(t, b.PaidAmount.Equal(d("500")))
	require.True(t, b.DueAmount.Add(b.PaidAmount).Equal(b.Amount))
	require.True(t, b.ProfitPercentage.Equal(d("20")))
	require.Equal(t, models.BookingCreated, b.Status)
	require.Equal(t, models.BookingDirect, b.BookingType)

	require.True(t, traveler.Refund.IsZero())
	stored, _ := f.travelers.GetByID("TRV-00000001")
	require.True(t, stored.Refund.IsZero())

	require.Len(t, f.transactions.list, 1)
	tx := f.transactions.list[0]
	require.Equal(t, models.TransactionCredit, tx.Type)
	require.Equal(t, models.MethodCreditNote, tx.PaymentMethod)
	require.True(t, tx.Settled)
	require.True(t, tx.Amount.Equal(d("500")))
	require.Len(t, f.mail.sent, 1)
}

func TestCreateBookingPartialCreditNote(t *testing.T) {
	f := newBookingFixture()
	in := validBookingInput()
	in.Amount = d("300")
	in.BaseAmount = d("200")

	b, traveler, err := f.svc.CreateBooking(in)
	require.NoError(t, err)
	require.True(t, b.UsedCreditNote.Equal(d("300")))
	require.True(t, b.DueAmount.IsZero())
	require.True(t, traveler.Refund.Equal(d("200")))
}

func TestCreateBookingReferralType(t *testing.T) {
	f := newBookingFixture()
	in := validBookingInput()
	in.AgentID = "AGT-00000001"

	b, _, err := f.svc.CreateBooking(in)
	require.NoError(t, err)
	require.Equal(t, models.BookingReferral, b.BookingType)
	require.Equal(t, "Vikram Shah", b.AgentName)
}

func TestCreateBookingOverlapShapes(t *testing.T) {
	f := newBookingFixture()
	_, _, err := f.svc.CreateBooking(validBookingInput())
	require.NoError(t, err)

	cases := []struct {
		name       string
		start, end time.Time
		overlap    bool
	}{
		{"partial left", testNow.AddDate(0, 0, 5), testNow.AddDate(0, 0, 12), true},
		{"partial right", testNow.AddDate(0, 0, 18), testNow.AddDate(0, 0, 25), true},
		{"containment", testNow.AddDate(0, 0, 5), testNow.AddDate(0, 0, 25), true},
		{"fully inside", testNow.AddDate(0, 0, 12), testNow.AddDate(0, 0, 15), true},
		{"disjoint after", testNow.AddDate(0, 0, 30), testNow.AddDate(0, 0, 40), false},
	}
	for _, tc := range cases {
		in := validBookingInput()
		in.StartDate, in.EndDate = tc.start, tc.end
		_, _, err := f.svc.CreateBooking(in)
		if tc.overlap {
			require.True(t, domain.IsConflict(err), "%s: got %v", tc.name, err)
		} else {
			require.NoError(t, err, tc.name)
		}
	}
}

func TestCreateBookingValidation(t *testing.T) {
	f := newBookingFixture()

	cases := []struct {
		name   string
		mutate func(*CreateBookingInput)
	}{
		{"base above amount", func(in *CreateBookingInput) { in.BaseAmount = d("2000") }},
		{"zero adults", func(in *CreateBookingInput) { in.NumberOfAdults = 0 }},
		{"negative children", func(in *CreateBookingInput) { in.NumberOfChildren = -1 }},
		{"start after end", func(in *CreateBookingInput) {
			in.StartDate = testNow.AddDate(0, 0, 20)
			in.EndDate = testNow.AddDate(0, 0, 10)
		}},
		{"end in past", func(in *CreateBookingInput) {
			in.StartDate = testNow.AddDate(0, 0, -20)
			in.EndDate = testNow.AddDate(0, 0, -10)
		}},
		{"non-positive amount", func(in *CreateBookingInput) { in.Amount = decimal.Zero }},
		{"missing venue", func(in *CreateBookingInput) { in.Venue = " " }},
	}
	for _, tc := range cases {
		in := validBookingInput()
		tc.mutate(&in)
		_, _, err := f.svc.CreateBooking(in)
		require.True(t, domain.IsValidation(err), "%s: got %v", tc.name, err)
	}

	in := validBookingInput()
	in.TravelerID = "TRV-99999999"
	_, _, err := f.svc.CreateBooking(in)
	require.True(t, domain.IsNotFound(err))

	in = validBookingInput()
	in.AgentID = "AGT-99999999"
	_, _, err = f.svc.CreateBooking(in)
	require.True(t, domain.IsNotFound(err))
}

func TestCreateBookingZeroBaseAmount(t *testing.T) {
	f := newBookingFixture()
	in := validBookingInput()
	in.BaseAmount = decimal.Zero

	b, _, err := f.svc.CreateBooking(in)
	require.NoError(t, err)
	require.True(t, b.ProfitPercentage.IsZero())
}

func TestUpdateBookingOnlyWhileCreated(t *testing.T) {
	f := newBookingFixture()
	b, _, err := f.svc.CreateBooking(validBookingInput())
	require.NoError(t, err)

	upd := UpdateBookingInput{
		StartDate:   b.StartDate.AddDate(0, 0, 1),
		EndDate:     b.EndDate.AddDate(0, 0, 1),
		Venue:       "Kerala",
		PackageType: "Standard",
	}
	got, err := f.svc.UpdateBooking(b.ID, upd)
	require.NoError(t, err)
	require.Equal(t, "Kerala", got.Venue)

	require.NoError(t, f.bookings.UpdateStatus(b.ID, models.BookingStarted))
	_, err = f.svc.UpdateBooking(b.ID, upd)
	require.True(t, domain.IsConflict(err))
	require.Contains(t, err.Error(), "already started")
}

func TestChangeStatusRules(t *testing.T) {
	f := newBookingFixture()
	b, _, err := f.svc.CreateBooking(validBookingInput())
	require.NoError(t, err)

	_, err = f.svc.ChangeStatus(b.ID, models.BookingCreated)
	require.True(t, domain.IsConflict(err), "same-status transition must be rejected")

	got, err := f.svc.ChangeStatus(b.ID, models.BookingStarted)
	require.NoError(t, err)
	require.Equal(t, models.BookingStarted, got.Status)

	_, err = f.svc.ChangeStatus(b.ID, models.BookingCompleted)
	require.NoError(t, err)

	_, err = f.svc.ChangeStatus(b.ID, models.BookingCancelled)
	require.True(t, domain.IsConflict(err), "completed is terminal")
}

func TestCancelBooking(t *testing.T) {
	f := newBookingFixture()
	b, _, err := f.svc.CreateBooking(validBookingInput())
	require.NoError(t, err)

	got, err := f.svc.CancelBooking(b.ID)
	require.NoError(t, err)
	require.Equal(t, models.BookingCancelled, got.Status)

	_, err = f.svc.CancelBooking(b.ID)
	require.True(t, domain.IsConflict(err))
}

func TestGetBookingIncludesEmis(t *testing.T) {
	f := newBookingFixture()
	b, _, err := f.svc.CreateBooking(validBookingInput())
	require.NoError(t, err)

	emiSvc := EmiService{Emis: f.emis, Bookings: f.bookings, IDs: &fakeIDs{}, Now: fixedClock}
	_, err = emiSvc.AddEmi(b.ID, d("200"), testNow.AddDate(0, 0, 5))
	require.NoError(t, err)

	got, err := f.svc.GetBooking(b.ID)
	require.NoError(t, err)
	require.Len(t, got.Emis, 1)
}
