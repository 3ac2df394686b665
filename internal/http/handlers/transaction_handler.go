package handlers

import (
	"net/http"

	"tourdesk/internal/domain"
	"tourdesk/internal/repositories"
	"tourdesk/internal/services"

	"github.com/gin-gonic/gin"
)

type TransactionHandler struct {
	Transactions services.TransactionService
}

func (h TransactionHandler) svc(c *gin.Context) services.TransactionService {
	svc := h.Transactions
	svc.RequestID = requestID(c)
	return svc
}

func (h TransactionHandler) List(c *gin.Context) {
	f := parseListFilter(c)
	transactionType := repositories.NormalizeTransactionType(c.Query("type"))
	items, total, err := h.svc(c).List(transactionType, f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondList(c, items, domain.Pagination{Page: f.Page, PageSize: f.Limit, Total: total})
}

func (h TransactionHandler) Get(c *gin.Context) {
	t, err := h.svc(c).Get(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, t, "")
}

func (h TransactionHandler) ListByBooking(c *gin.Context) {
	items, err := h.svc(c).ListByBooking(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, items, "")
}

func (h TransactionHandler) Settle(c *gin.Context) {
	if err := h.svc(c).MarkSettled(c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, nil, "transaction settled")
}
