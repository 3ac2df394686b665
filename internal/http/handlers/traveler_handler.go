package handlers

import (
	"net/http"

	"tourdesk/internal/domain"
	"tourdesk/internal/services"

	"github.com/gin-gonic/gin"
)

type TravelerHandler struct {
	Travelers services.TravelerService
}

func (h TravelerHandler) svc(c *gin.Context) services.TravelerService {
	svc := h.Travelers
	svc.RequestID = requestID(c)
	return svc
}

func (h TravelerHandler) Create(c *gin.Context) {
	var in services.TravelerInput
	if !BindJSONOrError(c, &in) {
		return
	}
	t, err := h.svc(c).Register(in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, t, "traveler registered")
}

func (h TravelerHandler) Update(c *gin.Context) {
	var in services.TravelerInput
	if !BindJSONOrError(c, &in) {
		return
	}
	t, err := h.svc(c).Update(c.Param("id"), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, t, "traveler updated")
}

func (h TravelerHandler) Get(c *gin.Context) {
	t, err := h.svc(c).Get(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, t, "")
}

func (h TravelerHandler) List(c *gin.Context) {
	f := parseListFilter(c)
	items, total, err := h.svc(c).List(f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondList(c, items, domain.Pagination{Page: f.Page, PageSize: f.Limit, Total: total})
}

func (h TravelerHandler) Delete(c *gin.Context) {
	if err := h.svc(c).Delete(c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, nil, "traveler deleted")
}
