package handlers

import (
	"net/http"
	"strings"
	"time"

	"tourdesk/internal/domain"
	"tourdesk/internal/domain/models"
	"tourdesk/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type BookingHandler struct {
	Bookings services.BookingService
	Emis     services.EmiService
}

func (h BookingHandler) svc(c *gin.Context) services.BookingService {
	svc := h.Bookings
	svc.RequestID = requestID(c)
	return svc
}

func (h BookingHandler) emis(c *gin.Context) services.EmiService {
	svc := h.Emis
	svc.RequestID = requestID(c)
	return svc
}

func (h BookingHandler) Create(c *gin.Context) {
	var in services.CreateBookingInput
	if !BindJSONOrError(c, &in) {
		return
	}
	b, traveler, err := h.svc(c).CreateBooking(in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, gin.H{"booking": b, "traveler": traveler}, "booking created")
}

func (h BookingHandler) Update(c *gin.Context) {
	var in services.UpdateBookingInput
	if !BindJSONOrError(c, &in) {
		return
	}
	b, err := h.svc(c).UpdateBooking(c.Param("id"), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, b, "booking updated")
}

func (h BookingHandler) ChangeStatus(c *gin.Context) {
	var in struct {
		Status string `json:"status"`
	}
	if !BindJSONOrError(c, &in) {
		return
	}
	status := models.BookingStatus(strings.ToUpper(strings.TrimSpace(in.Status)))
	b, err := h.svc(c).ChangeStatus(c.Param("id"), status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, b, "status changed")
}

func (h BookingHandler) Cancel(c *gin.Context) {
	b, err := h.svc(c).CancelBooking(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, b, "booking cancelled")
}

func (h BookingHandler) Delete(c *gin.Context) {
	if err := h.svc(c).DeleteBooking(c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, nil, "booking deleted")
}

func (h BookingHandler) Get(c *gin.Context) {
	b, err := h.svc(c).GetBooking(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, b, "")
}

// List serves both booking screens; ?type=REFERRAL switches from the
// default direct-booking view.
func (h BookingHandler) List(c *gin.Context) {
	bookingType := models.BookingDirect
	if strings.EqualFold(strings.TrimSpace(c.Query("type")), string(models.BookingReferral)) {
		bookingType = models.BookingReferral
	}
	f := parseListFilter(c)
	items, total, err := h.svc(c).ListBookings(bookingType, f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondList(c, items, domain.Pagination{Page: f.Page, PageSize: f.Limit, Total: total})
}

type emiPayload struct {
	Amount decimal.Decimal `json:"amount"`
	Date   time.Time       `json:"date"`
}

func (h BookingHandler) AddEmi(c *gin.Context) {
	var in emiPayload
	if !BindJSONOrError(c, &in) {
		return
	}
	e, err := h.emis(c).AddEmi(c.Param("id"), in.Amount, in.Date)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, e, "emi scheduled")
}

func (h BookingHandler) ListEmis(c *gin.Context) {
	items, err := h.emis(c).ListEmis(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, items, "")
}

func (h BookingHandler) UpdateEmi(c *gin.Context) {
	var in services.UpdateEmiInput
	if !BindJSONOrError(c, &in) {
		return
	}
	e, err := h.emis(c).UpdateEmi(c.Param("emiId"), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, e, "emi updated")
}

func (h BookingHandler) DeleteEmi(c *gin.Context) {
	if err := h.emis(c).DeleteEmi(c.Param("emiId")); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, nil, "emi deleted")
}
