package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"tourdesk/internal/domain/models"
	"tourdesk/internal/gateway"
	"tourdesk/internal/mailer"
	"tourdesk/internal/utils"

	"github.com/shopspring/decimal"
)

// Reconciler holds the periodic sweeps: status promotion, commission
// crediting, EMI dunning reminders and abandoned-order cleanup. Each
// sweep catches per-item failures so one bad record does not abort the
// rest of the run. The scheduler decides when these fire; the injected
// clock makes each sweep testable in isolation.
type Reconciler struct {
	Bookings  BookingStore
	Emis      EmiStore
	Travelers TravelerStore
	Agents    AgentStore
	Payments  PaymentStore
	Gateway   gateway.Client
	Mail      mailer.Mailer

	// AgentCommission is credited as coins when a referral booking
	// completes: amount * rate.
	AgentCommission decimal.Decimal

	// AbandonedOrderTTL is how long a pending gateway order may stay
	// CREATED before the purge removes it.
	AbandonedOrderTTL time.Duration

	BackendURL string
	Now        func() time.Time
}

func (r Reconciler) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// PromoteStartedBookings moves fully paid CREATED bookings whose start
// date has arrived to STARTED. Unpaid bookings past their start date
// are logged and left alone; there is no escalation path.
func (r Reconciler) PromoteStartedBookings() error {
	now := r.now()
	due, err := r.Bookings.FindStartDue(now)
	if err != nil {
		return err
	}

	for _, b := range due {
		emis, err := r.Emis.ListByBooking(b.ID)
		if err != nil {
			utils.LogEvent("", "reconciler", "promote_started", "booking="+b.ID+" emis: "+err.Error())
			continue
		}
		if !b.DueAmount.IsZero() || anyPending(emis) {
			utils.LogEvent("", "reconciler", "promote_started", "skip booking="+b.ID+" past start date but not fully paid")
			continue
		}
		if err := r.Bookings.UpdateStatus(b.ID, models.BookingStarted); err != nil {
			utils.LogEvent("", "reconciler", "promote_started", "booking="+b.ID+": "+err.Error())
			continue
		}
		r.notifyTraveler(b, "Your trip has started",
			fmt.Sprintf("Booking %s (%s) has started. Have a great trip!", b.ID, b.Venue))
	}
	return nil
}

// PromoteCompletedBookings moves STARTED bookings past their end date
// to COMPLETED and credits the referring agent's commission coins.
func (r Reconciler) PromoteCompletedBookings() error {
	now := r.now()
	due, err := r.Bookings.FindEndDue(now)
	if err != nil {
		return err
	}

	for _, b := range due {
		if err := r.Bookings.UpdateStatus(b.ID, models.BookingCompleted); err != nil {
			utils.LogEvent("", "reconciler", "promote_completed", "booking="+b.ID+": "+err.Error())
			continue
		}

		if b.AgentID != "" {
			coins := b.Amount.Mul(r.AgentCommission)
			if err := r.Agents.AddCoins(b.AgentID, coins); err != nil {
				utils.LogEvent("", "reconciler", "promote_completed", "commission credit agent="+b.AgentID+" failed: "+err.Error())
			} else if agent, err := r.Agents.GetByID(b.AgentID); err == nil {
				r.notify(agent.Email, "Commission credited",
					fmt.Sprintf("Hi %s, booking %s completed and %s coins were credited to your balance.",
						agent.FullName, b.ID, coins.String()))
			}
		}
		r.notifyTraveler(b, "Trip completed",
			fmt.Sprintf("Booking %s (%s) is complete. We hope to see you again.", b.ID, b.Venue))
	}
	return nil
}

// SendEmiReminders creates one payment link per overdue pending
// installment and flags it reminded, so each installment is dunned at
// most once.
func (r Reconciler) SendEmiReminders() error {
	now := r.now()
	overdue, err := r.Emis.FindReminderDue(now)
	if err != nil {
		return err
	}

	for _, e := range overdue {
		b, err := r.Bookings.GetByID(e.BookingID)
		if err != nil {
			utils.LogEvent("", "reconciler", "emi_reminder", "emi="+e.ID+" booking: "+err.Error())
			continue
		}
		if b.Terminal() {
			// No point dunning a cancelled or completed booking; flag it
			// so the sweep stops picking it up.
			if err := r.Emis.MarkReminded(e.ID); err != nil {
				utils.LogEvent("", "reconciler", "emi_reminder", "emi="+e.ID+": "+err.Error())
			}
			continue
		}
		traveler, err := r.Travelers.GetByID(b.TravelerID)
		if err != nil {
			utils.LogEvent("", "reconciler", "emi_reminder", "emi="+e.ID+" traveler: "+err.Error())
			continue
		}

		link, err := r.Gateway.CreatePaymentLink(gateway.PaymentLinkRequest{
			AmountMinor: e.Amount.Shift(2).Round(0).IntPart(),
			Currency:    "INR",
			Description: "Overdue installment " + e.ID + " for booking " + b.ID,
			Customer: gateway.Customer{
				Name:    traveler.FullName,
				Contact: traveler.Phone,
				Email:   traveler.Email,
			},
			Notify:         gateway.Notify{SMS: true, Email: true},
			ReminderEnable: true,
			CallbackURL:    r.BackendURL + "/api/v1/payments/verify",
			CallbackMethod: "get",
		})
		if err != nil {
			// Leave reminded unset; the next sweep retries the link.
			utils.LogEvent("", "reconciler", "emi_reminder", "emi="+e.ID+" gateway: "+err.Error())
			continue
		}

		if err := r.Payments.Create(models.Payment{
			GatewayOrderID: link.ID,
			EmiID:          e.ID,
			Amount:         e.Amount,
			Currency:       "INR",
			PaymentMethod:  models.MethodOnline,
			Status:         models.PaymentCreated,
			CreatedAt:      now,
		}); err != nil {
			utils.LogEvent("", "reconciler", "emi_reminder", "emi="+e.ID+" order row: "+err.Error())
			continue
		}
		if err := r.Emis.MarkReminded(e.ID); err != nil {
			utils.LogEvent("", "reconciler", "emi_reminder", "emi="+e.ID+" mark: "+err.Error())
			continue
		}

		r.notify(traveler.Email, "Installment overdue",
			fmt.Sprintf("Hi %s, installment %s of %s for booking %s was due on %s. Pay here: %s",
				traveler.FullName, e.ID, utils.FormatINR(e.Amount), b.ID, utils.FormatDate(e.Date), link.ShortURL))
	}
	return nil
}

// PurgeAbandonedPayments drops gateway orders that never settled within
// the TTL. Storage hygiene only; nothing financial hangs off a CREATED
// order.
func (r Reconciler) PurgeAbandonedPayments() error {
	n, err := r.Payments.DeleteAbandoned(r.now().Add(-r.AbandonedOrderTTL))
	if err != nil {
		return err
	}
	if n > 0 {
		utils.LogEvent("", "reconciler", "purge_orders", "deleted="+strconv.FormatInt(n, 10))
	}
	return nil
}

func anyPending(emis []models.Emi) bool {
	for _, e := range emis {
		if e.Status == models.EmiPending {
			return true
		}
	}
	return false
}

func (r Reconciler) notifyTraveler(b models.Booking, subject, body string) {
	traveler, err := r.Travelers.GetByID(b.TravelerID)
	if err != nil {
		return
	}
	greeting := "Hi " + strings.TrimSpace(traveler.FullName) + ", "
	r.notify(traveler.Email, subject, greeting+body)
}

func (r Reconciler) notify(to, subject, body string) {
	if r.Mail == nil || to == "" {
		return
	}
	if err := r.Mail.Send(to, subject, body); err != nil {
		utils.LogEvent("", "reconciler", "notify", "mail failed: "+err.Error())
	}
}
