package handlers

import (
	"net/http"
	"strings"

	"tourdesk/internal/domain/models"
	"tourdesk/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type PaymentHandler struct {
	Payments services.PaymentService
	Refunds  services.RefundService
}

func (h PaymentHandler) payments(c *gin.Context) services.PaymentService {
	svc := h.Payments
	svc.RequestID = requestID(c)
	return svc
}

func (h PaymentHandler) refunds(c *gin.Context) services.RefundService {
	svc := h.Refunds
	svc.RequestID = requestID(c)
	return svc
}

func (h PaymentHandler) CreateOrder(c *gin.Context) {
	var in struct {
		EmiID         string `json:"emiId"`
		PaymentMethod string `json:"paymentMethod"`
		Currency      string `json:"currency"`
		Description   string `json:"description"`
	}
	if !BindJSONOrError(c, &in) {
		return
	}
	method := models.PaymentMethod(strings.ToUpper(strings.TrimSpace(in.PaymentMethod)))
	result, err := h.payments(c).CreateOrder(in.EmiID, method, in.Currency, in.Description)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, result, "order created")
}

// Verify is the gateway redirect target. It is unauthenticated; the
// traveler's browser lands here after paying a hosted link. On success
// the browser is forwarded to the front-end thank-you page.
func (h PaymentHandler) Verify(c *gin.Context) {
	orderID := firstQuery(c, "orderId", "razorpay_payment_link_id")
	paymentID := firstQuery(c, "paymentId", "razorpay_payment_id")
	status := firstQuery(c, "status", "razorpay_payment_link_status")

	result, err := h.payments(c).VerifyPayment(orderID, paymentID, status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Redirect(http.StatusFound, result.RedirectURL)
}

func (h PaymentHandler) Refund(c *gin.Context) {
	var in struct {
		BookingID     string          `json:"bookingId"`
		Amount        decimal.Decimal `json:"amount"`
		PaymentMethod string          `json:"paymentMethod"`
	}
	if !BindJSONOrError(c, &in) {
		return
	}
	method := models.PaymentMethod(strings.ToUpper(strings.TrimSpace(in.PaymentMethod)))
	t, err := h.refunds(c).Refund(in.BookingID, in.Amount, method)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, t, "refund applied")
}

// firstQuery returns the first non-empty value among the given query
// keys. The gateway uses its own parameter names on the callback.
func firstQuery(c *gin.Context, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(c.Query(k)); v != "" {
			return v
		}
	}
	return ""
}
