package services

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"tourdesk/internal/cache"
	"tourdesk/internal/domain"
	"tourdesk/internal/domain/models"
	"tourdesk/internal/gateway"
	"tourdesk/internal/mailer"
	"tourdesk/internal/utils"
)

// PaymentService settles installments: hosted gateway links for ONLINE,
// immediate ledger entries for CASH, and the verify callback that turns
// a gateway confirmation into money on the booking.
type PaymentService struct {
	Payments     PaymentStore
	Emis         EmiStore
	Bookings     BookingStore
	Travelers    TravelerStore
	Transactions TransactionStore
	IDs          IDSource
	Gateway      gateway.Client
	Guard        cache.OnceGuard
	Mail         mailer.Mailer
	FrontendURL  string
	BackendURL   string
	RequestID    string
	Now          func() time.Time
}

func (s PaymentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// guardTTL bounds how long a processed gateway payment id is remembered.
const guardTTL = 24 * time.Hour

type OrderResult struct {
	EmiID       string `json:"emiId"`
	Status      string `json:"status"`
	OrderID     string `json:"orderId,omitempty"`
	PaymentLink string `json:"paymentLink,omitempty"`
}

// CreateOrder starts collection for one installment. ONLINE returns a
// gateway link and defers settlement to VerifyPayment; CASH settles on
// the spot with an unverified ledger entry that accounts staff confirm
// later.
func (s PaymentService) CreateOrder(emiID string, method models.PaymentMethod, currency, description string) (OrderResult, error) {
	emi, err := s.Emis.GetByID(strings.TrimSpace(emiID))
	if err != nil {
		return OrderResult{}, err
	}
	if emi.Status == models.EmiPaid {
		return OrderResult{}, domain.ConflictError{Resource: "emi", Msg: "already paid"}
	}

	b, err := s.Bookings.GetByID(emi.BookingID)
	if err != nil {
		return OrderResult{}, err
	}
	if currency = strings.ToUpper(strings.TrimSpace(currency)); currency == "" {
		currency = "INR"
	}

	switch method {
	case models.MethodOnline:
		link, err := s.createGatewayLink(emi, b, currency, description)
		if err != nil {
			return OrderResult{}, err
		}
		utils.LogEvent(s.RequestID, "payment", "create_order", "emi="+emi.ID+" order="+link.ID)
		return OrderResult{EmiID: emi.ID, Status: string(models.PaymentCreated), OrderID: link.ID, PaymentLink: link.ShortURL}, nil

	case models.MethodCash:
		now := s.now()
		_, err := appendTransaction(s.Transactions, s.IDs, models.Transaction{
			BookingID:     b.ID,
			Currency:      currency,
			Amount:        emi.Amount,
			PaymentMethod: models.MethodCash,
			Settled:       false,
			Type:          models.TransactionCredit,
			CreatedAt:     now,
		})
		if err != nil {
			return OrderResult{}, domain.InternalError{Msg: "cash ledger entry failed", Err: err}
		}
		if err := s.Emis.MarkPaid(emi.ID); err != nil {
			return OrderResult{}, err
		}
		if err := s.Bookings.AddPaid(b.ID, emi.Amount); err != nil {
			return OrderResult{}, err
		}
		utils.LogEvent(s.RequestID, "payment", "create_order", "emi="+emi.ID+" cash settled")
		return OrderResult{EmiID: emi.ID, Status: string(models.PaymentPaid)}, nil

	default:
		return OrderResult{}, domain.ValidationError{Field: "paymentMethod", Msg: "unsupported payment method"}
	}
}

// createGatewayLink asks the gateway for a hosted payment link and
// records the pending order keyed by the gateway's id.
func (s PaymentService) createGatewayLink(emi models.Emi, b models.Booking, currency, description string) (gateway.PaymentLink, error) {
	traveler, err := s.Travelers.GetByID(b.TravelerID)
	if err != nil {
		return gateway.PaymentLink{}, err
	}
	if description = strings.TrimSpace(description); description == "" {
		description = "Installment " + emi.ID + " for booking " + b.ID
	}

	link, err := s.Gateway.CreatePaymentLink(gateway.PaymentLinkRequest{
		AmountMinor: emi.Amount.Shift(2).Round(0).IntPart(),
		Currency:    currency,
		Description: description,
		Customer: gateway.Customer{
			Name:    traveler.FullName,
			Contact: traveler.Phone,
			Email:   traveler.Email,
		},
		Notify:         gateway.Notify{SMS: true, Email: true},
		ReminderEnable: true,
		CallbackURL:    s.BackendURL + "/api/v1/payments/verify",
		CallbackMethod: "get",
	})
	if err != nil {
		return gateway.PaymentLink{}, err
	}

	p := models.Payment{
		GatewayOrderID: link.ID,
		EmiID:          emi.ID,
		Amount:         emi.Amount,
		Currency:       currency,
		PaymentMethod:  models.MethodOnline,
		Status:         models.PaymentCreated,
		CreatedAt:      s.now(),
	}
	if err := s.Payments.Create(p); err != nil {
		return gateway.PaymentLink{}, domain.InternalError{Msg: "pending order not recorded", Err: err}
	}
	return link, nil
}

type VerifyResult struct {
	OrderID     string `json:"orderId"`
	RedirectURL string `json:"redirectUrl"`
}

// VerifyPayment handles the gateway callback. Settlement is idempotent
// per order: the conditional status flip on the payment row is the
// authoritative gate, the once-guard on the gateway payment id just
// shortcuts obvious duplicate deliveries.
func (s PaymentService) VerifyPayment(orderID, gatewayPaymentID, gatewayStatus string) (VerifyResult, error) {
	orderID = strings.TrimSpace(orderID)
	gatewayPaymentID = strings.TrimSpace(gatewayPaymentID)
	if orderID == "" {
		return VerifyResult{}, domain.ValidationError{Field: "orderId", Msg: "required"}
	}

	if !strings.EqualFold(strings.TrimSpace(gatewayStatus), "paid") {
		if err := s.Payments.MarkFailed(orderID); err != nil {
			utils.LogEvent(s.RequestID, "payment", "verify", "mark failed errored: "+err.Error())
		}
		return VerifyResult{}, domain.ValidationError{Msg: "payment failed"}
	}

	guardKey := ""
	if gatewayPaymentID != "" && s.Guard != nil {
		guardKey = "payment:" + gatewayPaymentID
		if !s.Guard.First(guardKey, guardTTL) {
			return VerifyResult{}, domain.ConflictError{Resource: "payment", Msg: "already processed"}
		}
	}
	// The key stays consumed only once the money has actually moved;
	// a failed attempt must not block the gateway's redelivery.
	credited := false
	defer func() {
		if guardKey != "" && !credited {
			s.Guard.Forget(guardKey)
		}
	}()

	p, err := s.Payments.GetByOrderID(orderID)
	if err != nil {
		return VerifyResult{}, err
	}

	settled, err := s.Payments.Settle(orderID)
	if err != nil {
		return VerifyResult{}, domain.InternalError{Err: err}
	}
	if !settled {
		return VerifyResult{}, domain.ConflictError{Resource: "payment", Msg: "already processed"}
	}

	emi, err := s.Emis.GetByID(p.EmiID)
	if err != nil {
		return VerifyResult{}, err
	}
	if err := s.Emis.MarkPaid(emi.ID); err != nil {
		return VerifyResult{}, err
	}
	if err := s.Bookings.AddPaid(emi.BookingID, p.Amount); err != nil {
		return VerifyResult{}, err
	}

	now := s.now()
	_, err = appendTransaction(s.Transactions, s.IDs, models.Transaction{
		BookingID:        emi.BookingID,
		Currency:         p.Currency,
		Amount:           p.Amount,
		PaymentMethod:    models.MethodOnline,
		GatewayPaymentID: gatewayPaymentID,
		Settled:          true,
		Type:             models.TransactionCredit,
		CreatedAt:        now,
	})
	if err != nil {
		return VerifyResult{}, domain.InternalError{Msg: "payment ledger entry failed", Err: err}
	}
	credited = true

	s.notifyReceipt(emi.BookingID, p)

	redirect := fmt.Sprintf("%s/thank-you?orderNumber=%s&amount=%s&date=%s",
		s.FrontendURL,
		url.QueryEscape(orderID),
		url.QueryEscape(p.Amount.StringFixed(2)),
		url.QueryEscape(now.Format("01/02/2006")),
	)
	utils.LogEvent(s.RequestID, "payment", "verify", "order="+orderID+" settled")
	return VerifyResult{OrderID: orderID, RedirectURL: redirect}, nil
}

func (s PaymentService) notifyReceipt(bookingID string, p models.Payment) {
	if s.Mail == nil {
		return
	}
	b, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		return
	}
	traveler, err := s.Travelers.GetByID(b.TravelerID)
	if err != nil || traveler.Email == "" {
		return
	}
	body := fmt.Sprintf("Hi %s, we received %s towards booking %s. Thank you.",
		traveler.FullName, utils.FormatINR(p.Amount), b.ID)
	if err := s.Mail.Send(traveler.Email, "Payment received", body); err != nil {
		utils.LogEvent(s.RequestID, "payment", "notify", "mail failed: "+err.Error())
	}
}
