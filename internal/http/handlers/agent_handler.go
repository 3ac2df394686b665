package handlers

import (
	"net/http"

	"tourdesk/internal/domain"
	"tourdesk/internal/services"

	"github.com/gin-gonic/gin"
)

type AgentHandler struct {
	Agents services.AgentService
}

func (h AgentHandler) svc(c *gin.Context) services.AgentService {
	svc := h.Agents
	svc.RequestID = requestID(c)
	return svc
}

func (h AgentHandler) Create(c *gin.Context) {
	var in services.TravelerInput
	if !BindJSONOrError(c, &in) {
		return
	}
	a, err := h.svc(c).Register(in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, a, "agent registered")
}

func (h AgentHandler) Update(c *gin.Context) {
	var in services.TravelerInput
	if !BindJSONOrError(c, &in) {
		return
	}
	a, err := h.svc(c).Update(c.Param("id"), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, a, "agent updated")
}

func (h AgentHandler) Get(c *gin.Context) {
	a, err := h.svc(c).Get(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, a, "")
}

func (h AgentHandler) List(c *gin.Context) {
	f := parseListFilter(c)
	items, total, err := h.svc(c).List(f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondList(c, items, domain.Pagination{Page: f.Page, PageSize: f.Limit, Total: total})
}

func (h AgentHandler) Delete(c *gin.Context) {
	if err := h.svc(c).Delete(c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, nil, "agent deleted")
}
