package handlers

import (
	"net/http"

	"tourdesk/internal/domain"

	"github.com/gin-gonic/gin"
)

// respondError sends the standard error payload with request_id
// included.
func respondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"success":    false,
		"error":      message,
		"request_id": requestID(c),
	}
	if err != nil && err.Error() != message {
		payload["details"] = err.Error()
	}
	c.JSON(status, payload)
}

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, err.Error(), nil)
	case domain.IsUpstream(err):
		respondError(c, http.StatusBadGateway, err.Error(), nil)
	default:
		respondError(c, http.StatusInternalServerError, "something went wrong", err)
	}
}
