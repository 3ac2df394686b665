package services

import (
	"fmt"
	"sort"
	"time"

	"tourdesk/internal/domain"
	"tourdesk/internal/domain/models"
	"tourdesk/internal/gateway"
	"tourdesk/internal/idgen"

	"github.com/shopspring/decimal"
)

// In-memory stores mirroring the repository semantics closely enough
// for service-level tests: version checks, conditional updates, balance
// guards.

type fakeTravelers struct {
	m map[string]models.Traveler
}

func newFakeTravelers() *fakeTravelers { return &fakeTravelers{m: map[string]models.Traveler{}} }

func (f *fakeTravelers) Create(t models.Traveler) error { f.m[t.ID] = t; return nil }

func (f *fakeTravelers) GetByID(id string) (models.Traveler, error) {
	t, ok := f.m[id]
	if !ok {
		return models.Traveler{}, domain.NotFoundError{Resource: "traveler"}
	}
	return t, nil
}

func (f *fakeTravelers) FindByEmailOrPhone(email, phone, excludeID string) (models.Traveler, bool, error) {
	for _, t := range f.m {
		if t.ID == excludeID {
			continue
		}
		if t.Email == email || t.Phone == phone {
			return t, true, nil
		}
	}
	return models.Traveler{}, false, nil
}

func (f *fakeTravelers) Update(t models.Traveler) error {
	if _, ok := f.m[t.ID]; !ok {
		return domain.NotFoundError{Resource: "traveler"}
	}
	f.m[t.ID] = t
	return nil
}

func (f *fakeTravelers) Delete(id string) error {
	if _, ok := f.m[id]; !ok {
		return domain.NotFoundError{Resource: "traveler"}
	}
	delete(f.m, id)
	return nil
}

func (f *fakeTravelers) ConsumeRefund(id string, used decimal.Decimal) error {
	if used.IsZero() {
		return nil
	}
	t, ok := f.m[id]
	if !ok || t.Refund.LessThan(used) {
		return domain.ConflictError{Resource: "traveler", Msg: "credit note balance changed, retry"}
	}
	t.Refund = t.Refund.Sub(used)
	f.m[id] = t
	return nil
}

func (f *fakeTravelers) AddRefund(id string, amount decimal.Decimal) error {
	t, ok := f.m[id]
	if !ok {
		return domain.NotFoundError{Resource: "traveler"}
	}
	t.Refund = t.Refund.Add(amount)
	f.m[id] = t
	return nil
}

func (f *fakeTravelers) List(domain.ListFilter) ([]models.Traveler, int, error) {
	var out []models.Traveler
	for _, t := range f.m {
		out = append(out, t)
	}
	return out, len(out), nil
}

type fakeAgents struct {
	m map[string]models.Agent
}

func newFakeAgents() *fakeAgents { return &fakeAgents{m: map[string]models.Agent{}} }

func (f *fakeAgents) Create(a models.Agent) error { f.m[a.ID] = a; return nil }

func (f *fakeAgents) GetByID(id string) (models.Agent, error) {
	a, ok := f.m[id]
	if !ok {
		return models.Agent{}, domain.NotFoundError{Resource: "agent"}
	}
	return a, nil
}

func (f *fakeAgents) FindByEmailOrPhone(email, phone, excludeID string) (models.Agent, bool, error) {
	for _, a := range f.m {
		if a.ID == excludeID {
			continue
		}
		if a.Email == email || a.Phone == phone {
			return a, true, nil
		}
	}
	return models.Agent{}, false, nil
}

func (f *fakeAgents) Update(a models.Agent) error {
	if _, ok := f.m[a.ID]; !ok {
		return domain.NotFoundError{Resource: "agent"}
	}
	f.m[a.ID] = a
	return nil
}

func (f *fakeAgents) Delete(id string) error {
	if _, ok := f.m[id]; !ok {
		return domain.NotFoundError{Resource: "agent"}
	}
	delete(f.m, id)
	return nil
}

func (f *fakeAgents) AddCoins(id string, delta decimal.Decimal) error {
	a, ok := f.m[id]
	if !ok {
		return domain.NotFoundError{Resource: "agent"}
	}
	a.Coins = a.Coins.Add(delta)
	f.m[id] = a
	return nil
}

func (f *fakeAgents) List(domain.ListFilter) ([]models.Agent, int, error) {
	var out []models.Agent
	for _, a := range f.m {
		out = append(out, a)
	}
	return out, len(out), nil
}

type fakeBookings struct {
	m map[string]models.Booking
}

func newFakeBookings() *fakeBookings { return &fakeBookings{m: map[string]models.Booking{}} }

func (f *fakeBookings) Create(b models.Booking) error { f.m[b.ID] = b; return nil }

func (f *fakeBookings) GetByID(id string) (models.Booking, error) {
	b, ok := f.m[id]
	if !ok {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	return b, nil
}

func (f *fakeBookings) HasOverlapping(travelerID string, start, end time.Time) (bool, error) {
	for _, b := range f.m {
		if b.TravelerID != travelerID {
			continue
		}
		s, e := b.StartDate, b.EndDate
		startInside := !s.Before(start) && !s.After(end)
		endInside := !e.Before(start) && !e.After(end)
		contains := s.Before(start) && e.After(end)
		if startInside || endInside || contains {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBookings) UpdateDetails(id string, start, end time.Time, venue, packageType string) error {
	b, ok := f.m[id]
	if !ok {
		return domain.NotFoundError{Resource: "booking"}
	}
	b.StartDate, b.EndDate, b.Venue, b.PackageType = start, end, venue, packageType
	f.m[id] = b
	return nil
}

func (f *fakeBookings) UpdateStatus(id string, status models.BookingStatus) error {
	b, ok := f.m[id]
	if !ok {
		return domain.NotFoundError{Resource: "booking"}
	}
	b.Status = status
	f.m[id] = b
	return nil
}

func (f *fakeBookings) ApplyFinancials(id string, amount, due, paid decimal.Decimal, version int64) error {
	b, ok := f.m[id]
	if !ok || b.Version != version {
		return domain.ConflictError{Resource: "booking", Msg: "modified concurrently, retry"}
	}
	b.Amount, b.DueAmount, b.PaidAmount = amount, due, paid
	b.Version++
	f.m[id] = b
	return nil
}

func (f *fakeBookings) AddPaid(id string, amount decimal.Decimal) error {
	b, ok := f.m[id]
	if !ok {
		return domain.NotFoundError{Resource: "booking"}
	}
	b.PaidAmount = b.PaidAmount.Add(amount)
	b.Version++
	f.m[id] = b
	return nil
}

func (f *fakeBookings) Delete(id string) error {
	if _, ok := f.m[id]; !ok {
		return domain.NotFoundError{Resource: "booking"}
	}
	delete(f.m, id)
	return nil
}

func (f *fakeBookings) List(bookingType models.BookingType, _ domain.ListFilter) ([]models.Booking, int, error) {
	var out []models.Booking
	for _, b := range f.m {
		if b.BookingType == bookingType {
			out = append(out, b)
		}
	}
	return out, len(out), nil
}

func (f *fakeBookings) FindStartDue(now time.Time) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.m {
		if b.Status == models.BookingCreated && !b.StartDate.After(now) {
			out = append(out, b)
		}
	}
	sortBookings(out)
	return out, nil
}

func (f *fakeBookings) FindEndDue(now time.Time) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.m {
		if b.Status == models.BookingStarted && !b.EndDate.After(now) {
			out = append(out, b)
		}
	}
	sortBookings(out)
	return out, nil
}

func sortBookings(bs []models.Booking) {
	sort.Slice(bs, func(i, j int) bool { return bs[i].ID < bs[j].ID })
}

type fakeEmis struct {
	m     map[string]models.Emi
	order []string
}

func newFakeEmis() *fakeEmis { return &fakeEmis{m: map[string]models.Emi{}} }

func (f *fakeEmis) Create(e models.Emi) error {
	f.m[e.ID] = e
	f.order = append(f.order, e.ID)
	return nil
}

func (f *fakeEmis) GetByID(id string) (models.Emi, error) {
	e, ok := f.m[id]
	if !ok {
		return models.Emi{}, domain.NotFoundError{Resource: "emi"}
	}
	return e, nil
}

func (f *fakeEmis) ListByBooking(bookingID string) ([]models.Emi, error) {
	var out []models.Emi
	for _, id := range f.order {
		if e, ok := f.m[id]; ok && e.BookingID == bookingID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEmis) Update(e models.Emi) error {
	if _, ok := f.m[e.ID]; !ok {
		return domain.NotFoundError{Resource: "emi"}
	}
	f.m[e.ID] = e
	return nil
}

func (f *fakeEmis) MarkPaid(id string) error {
	e, ok := f.m[id]
	if !ok {
		return domain.NotFoundError{Resource: "emi"}
	}
	e.Status = models.EmiPaid
	f.m[id] = e
	return nil
}

func (f *fakeEmis) MarkReminded(id string) error {
	e, ok := f.m[id]
	if !ok {
		return domain.NotFoundError{Resource: "emi"}
	}
	e.Reminded = true
	f.m[id] = e
	return nil
}

func (f *fakeEmis) Delete(id string) error {
	if _, ok := f.m[id]; !ok {
		return domain.NotFoundError{Resource: "emi"}
	}
	delete(f.m, id)
	return nil
}

func (f *fakeEmis) FindReminderDue(now time.Time) ([]models.Emi, error) {
	var out []models.Emi
	for _, id := range f.order {
		e, ok := f.m[id]
		if ok && e.Status == models.EmiPending && !e.Reminded && e.Date.Before(now) {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakePayments struct {
	m map[string]models.Payment
}

func newFakePayments() *fakePayments { return &fakePayments{m: map[string]models.Payment{}} }

func (f *fakePayments) Create(p models.Payment) error {
	f.m[p.GatewayOrderID] = p
	return nil
}

func (f *fakePayments) GetByOrderID(orderID string) (models.Payment, error) {
	p, ok := f.m[orderID]
	if !ok {
		return models.Payment{}, domain.NotFoundError{Resource: "order"}
	}
	return p, nil
}

func (f *fakePayments) Settle(orderID string) (bool, error) {
	p, ok := f.m[orderID]
	if !ok || p.Status != models.PaymentCreated {
		return false, nil
	}
	p.Status = models.PaymentPaid
	f.m[orderID] = p
	return true, nil
}

func (f *fakePayments) MarkFailed(orderID string) error {
	if p, ok := f.m[orderID]; ok {
		p.Status = models.PaymentFailed
		f.m[orderID] = p
	}
	return nil
}

func (f *fakePayments) DeleteAbandoned(before time.Time) (int64, error) {
	var n int64
	for id, p := range f.m {
		if p.Status == models.PaymentCreated && p.CreatedAt.Before(before) {
			delete(f.m, id)
			n++
		}
	}
	return n, nil
}

type fakeTransactions struct {
	list []models.Transaction
}

func (f *fakeTransactions) Create(t models.Transaction) error {
	f.list = append(f.list, t)
	return nil
}

func (f *fakeTransactions) GetByID(id string) (models.Transaction, error) {
	for _, t := range f.list {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Transaction{}, domain.NotFoundError{Resource: "transaction"}
}

func (f *fakeTransactions) ListByBooking(bookingID string) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, t := range f.list {
		if t.BookingID == bookingID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTransactions) List(transactionType models.TransactionType, _ domain.ListFilter) ([]models.Transaction, int, error) {
	var out []models.Transaction
	for _, t := range f.list {
		if transactionType == "" || t.Type == transactionType {
			out = append(out, t)
		}
	}
	return out, len(out), nil
}

func (f *fakeTransactions) SetSettled(id string, settled bool) error {
	for i, t := range f.list {
		if t.ID == id {
			f.list[i].Settled = settled
			return nil
		}
	}
	return domain.NotFoundError{Resource: "transaction"}
}

func (f *fakeTransactions) SumByBooking(bookingID string) (decimal.Decimal, decimal.Decimal, error) {
	paid, refunded := decimal.Zero, decimal.Zero
	for _, t := range f.list {
		if t.BookingID != bookingID {
			continue
		}
		switch {
		case t.Type == models.TransactionCredit && t.Settled:
			paid = paid.Add(t.Amount)
		case t.Type == models.TransactionRefund:
			refunded = refunded.Add(t.Amount)
		}
	}
	return paid, refunded, nil
}

type fakeUsers struct {
	m map[string]models.User
}

func newFakeUsers() *fakeUsers { return &fakeUsers{m: map[string]models.User{}} }

func (f *fakeUsers) Create(u models.User) error { f.m[u.ID] = u; return nil }

func (f *fakeUsers) GetByEmail(email string) (models.User, error) {
	for _, u := range f.m {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, domain.NotFoundError{Resource: "user"}
}

func (f *fakeUsers) GetByID(id string) (models.User, error) {
	u, ok := f.m[id]
	if !ok {
		return models.User{}, domain.NotFoundError{Resource: "user"}
	}
	return u, nil
}

type fakeIDs struct {
	n int
}

func (f *fakeIDs) Next(e idgen.Entity) (string, error) {
	f.n++
	return fmt.Sprintf("%s-%08d", e.Prefix, f.n), nil
}

type fakeGateway struct {
	n        int
	fail     bool
	requests []gateway.PaymentLinkRequest
}

func (f *fakeGateway) CreatePaymentLink(req gateway.PaymentLinkRequest) (gateway.PaymentLink, error) {
	if f.fail {
		return gateway.PaymentLink{}, domain.UpstreamError{Service: "payment gateway", Msg: "link creation failed"}
	}
	f.n++
	f.requests = append(f.requests, req)
	id := fmt.Sprintf("plink_%03d", f.n)
	return gateway.PaymentLink{ID: id, ShortURL: "https://rzp.test/" + id, Status: "created"}, nil
}

type fakeMail struct {
	sent []string
}

func (f *fakeMail) Send(to, subject, body string) error {
	f.sent = append(f.sent, to+": "+subject)
	return nil
}

type fakeGuard struct {
	seen map[string]bool
}

func newFakeGuard() *fakeGuard { return &fakeGuard{seen: map[string]bool{}} }

func (f *fakeGuard) First(key string, _ time.Duration) bool {
	if f.seen[key] {
		return false
	}
	f.seen[key] = true
	return true
}

func (f *fakeGuard) Forget(key string) {
	delete(f.seen, key)
}
