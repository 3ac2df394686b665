package handlers

import (
	"net/http"

	"tourdesk/internal/services"

	"github.com/gin-gonic/gin"
)

type DocsHandler struct {
	Docs services.DocsService
}

func (h DocsHandler) svc(c *gin.Context) services.DocsService {
	svc := h.Docs
	svc.RequestID = requestID(c)
	return svc
}

// Receipt returns the PDF receipt of one ledger entry (inline).
func (h DocsHandler) Receipt(c *gin.Context) {
	pdfBytes, filename, err := h.svc(c).GenerateReceipt(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// Statement returns the booking's financial statement PDF (inline).
func (h DocsHandler) Statement(c *gin.Context) {
	pdfBytes, filename, err := h.svc(c).GenerateStatement(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
