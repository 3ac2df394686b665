package services

import (
	"bytes"
	"fmt"
	"strings"

	"tourdesk/internal/domain/models"
	"tourdesk/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders the printable receipts and booking statements the
// accounts screen downloads.
type DocsService struct {
	Transactions TransactionStore
	Bookings     BookingStore
	Emis         EmiStore
	Travelers    TravelerStore
	RequestID    string
}

// GenerateReceipt renders a PDF receipt for one ledger entry.
func (s DocsService) GenerateReceipt(transactionID string) ([]byte, string, error) {
	t, err := s.Transactions.GetByID(transactionID)
	if err != nil {
		return nil, "", err
	}
	b, err := s.Bookings.GetByID(t.BookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_receipt", "transaction="+transactionID)
	return buildReceiptPDF(t, b)
}

// GenerateStatement renders the full financial statement of a booking:
// money summary, installment schedule and ledger history.
func (s DocsService) GenerateStatement(bookingID string) ([]byte, string, error) {
	b, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		return nil, "", err
	}
	traveler, err := s.Travelers.GetByID(b.TravelerID)
	if err != nil {
		return nil, "", err
	}
	emis, err := s.Emis.ListByBooking(bookingID)
	if err != nil {
		return nil, "", err
	}
	entries, err := s.Transactions.ListByBooking(bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_statement", "booking="+bookingID)
	return buildStatementPDF(b, traveler, emis, entries)
}

func buildReceiptPDF(t models.Transaction, b models.Booking) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Receipt", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "PAYMENT RECEIPT")
	pdf.Ln(12)

	kind := "Payment"
	if t.Type == models.TransactionRefund {
		kind = "Refund"
	}
	settled := "pending verification"
	if t.Settled {
		settled = "settled"
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Receipt No   : %s", t.ID),
		fmt.Sprintf("Date         : %s", utils.FormatDateTime(t.CreatedAt)),
		fmt.Sprintf("Booking      : %s", b.ID),
		fmt.Sprintf("Traveler     : %s", safe(b.TravelerName, "-")),
		fmt.Sprintf("Type         : %s (%s)", kind, settled),
		fmt.Sprintf("Method       : %s", string(t.PaymentMethod)),
		fmt.Sprintf("Amount       : %s", utils.FormatINR(t.Amount)),
	}
	if t.GatewayPaymentID != "" {
		lines = append(lines, fmt.Sprintf("Gateway Ref  : %s", t.GatewayPaymentID))
	}
	for _, l := range lines {
		pdf.Cell(0, 7, l)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "This receipt is computer generated and does not require a signature.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), fmt.Sprintf("RECEIPT_%s.pdf", t.ID), nil
}

func buildStatementPDF(b models.Booking, traveler models.Traveler, emis []models.Emi, entries []models.Transaction) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Statement", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOOKING STATEMENT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	head := []string{
		fmt.Sprintf("Booking      : %s (%s)", b.ID, string(b.Status)),
		fmt.Sprintf("Traveler     : %s, %s", safe(traveler.FullName, "-"), safe(traveler.Phone, "-")),
		fmt.Sprintf("Trip         : %s, %s to %s", safe(b.Venue, "-"), utils.FormatDate(b.StartDate), utils.FormatDate(b.EndDate)),
		fmt.Sprintf("Package      : %s, %d adults, %d children", safe(b.PackageType, "-"), b.NumberOfAdults, b.NumberOfChildren),
	}
	if b.AgentName != "" {
		head = append(head, fmt.Sprintf("Agent        : %s", b.AgentName))
	}
	head = append(head,
		fmt.Sprintf("Amount       : %s", utils.FormatINR(b.Amount)),
		fmt.Sprintf("Paid         : %s", utils.FormatINR(b.PaidAmount)),
		fmt.Sprintf("Due          : %s", utils.FormatINR(b.DueAmount)),
		fmt.Sprintf("Credit Note  : %s", utils.FormatINR(b.UsedCreditNote)),
	)
	for _, l := range head {
		pdf.Cell(0, 7, l)
		pdf.Ln(7)
	}

	if len(emis) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Installment Schedule")
		pdf.Ln(9)
		pdf.SetFont("Helvetica", "", 11)
		for i, e := range emis {
			pdf.Cell(0, 6, fmt.Sprintf("%d) %s  due %s  %s  [%s]",
				i+1, e.ID, utils.FormatDate(e.Date), utils.FormatINR(e.Amount), string(e.Status)))
			pdf.Ln(6)
		}
	}

	if len(entries) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Ledger")
		pdf.Ln(9)
		pdf.SetFont("Helvetica", "", 11)
		for _, t := range entries {
			mark := "+"
			if t.Type == models.TransactionRefund {
				mark = "-"
			}
			pdf.Cell(0, 6, fmt.Sprintf("%s  %s%s  %s  %s",
				utils.FormatDate(t.CreatedAt), mark, utils.FormatINR(t.Amount), string(t.PaymentMethod), t.ID))
			pdf.Ln(6)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), fmt.Sprintf("STATEMENT_%s.pdf", b.ID), nil
}

func safe(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
