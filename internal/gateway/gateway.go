// Package gateway talks to the hosted payment-link provider. The core
// only needs one call: create a payment link the traveler can follow;
// settlement comes back through the verify redirect.
package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"tourdesk/internal/domain"
)

type Customer struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Email   string `json:"email"`
}

type PaymentLinkRequest struct {
	// AmountMinor is in the currency's smallest unit (paise for INR).
	AmountMinor    int64    `json:"amount"`
	Currency       string   `json:"currency"`
	AcceptPartial  bool     `json:"accept_partial"`
	Description    string   `json:"description"`
	Customer       Customer `json:"customer"`
	Notify         Notify   `json:"notify"`
	ReminderEnable bool     `json:"reminder_enable"`
	CallbackURL    string   `json:"callback_url"`
	CallbackMethod string   `json:"callback_method"`
}

type Notify struct {
	SMS   bool `json:"sms"`
	Email bool `json:"email"`
}

type PaymentLink struct {
	ID       string `json:"id"`
	ShortURL string `json:"short_url"`
	Status   string `json:"status"`
}

// Client is what the payment and reminder flows depend on.
type Client interface {
	CreatePaymentLink(req PaymentLinkRequest) (PaymentLink, error)
}

// HTTPClient is the REST implementation (Razorpay-compatible payment
// links API, basic auth with key id/secret).
type HTTPClient struct {
	BaseURL   string
	KeyID     string
	KeySecret string
	Client    *http.Client
}

func NewHTTPClient(baseURL, keyID, keySecret string) *HTTPClient {
	return &HTTPClient{
		BaseURL:   baseURL,
		KeyID:     keyID,
		KeySecret: keySecret,
		Client:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *HTTPClient) CreatePaymentLink(req PaymentLinkRequest) (PaymentLink, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return PaymentLink{}, err
	}

	httpReq, err := http.NewRequest(http.MethodPost, c.BaseURL+"/v1/payment_links", bytes.NewReader(body))
	if err != nil {
		return PaymentLink{}, err
	}
	httpReq.SetBasicAuth(c.KeyID, c.KeySecret)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(httpReq)
	if err != nil {
		return PaymentLink{}, domain.UpstreamError{Service: "payment gateway", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return PaymentLink{}, domain.UpstreamError{
			Service: "payment gateway",
			Msg:     fmt.Sprintf("payment link creation returned %d: %s", resp.StatusCode, snippet),
		}
	}

	var link PaymentLink
	if err := json.NewDecoder(resp.Body).Decode(&link); err != nil {
		return PaymentLink{}, domain.UpstreamError{Service: "payment gateway", Msg: "malformed payment link response", Err: err}
	}
	if link.ID == "" {
		return PaymentLink{}, domain.UpstreamError{Service: "payment gateway", Msg: "payment link response missing id"}
	}
	return link, nil
}
