package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"tourdesk/internal/domain"
	"tourdesk/internal/http/middleware"
	"tourdesk/internal/utils"

	"github.com/gin-gonic/gin"
)

// respondOK sends the success envelope.
func respondOK(c *gin.Context, status int, data any, message string) {
	payload := gin.H{"success": true}
	if data != nil {
		payload["data"] = data
	}
	if message != "" {
		payload["message"] = message
	}
	c.JSON(status, payload)
}

// respondList is respondOK with paging metadata attached.
func respondList(c *gin.Context, items any, p domain.Pagination) {
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       items,
		"pagination": p,
	})
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		respondError(c, http.StatusBadRequest, "empty body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}

// parseListFilter reads the shared list-screen query params: search,
// start/end (YYYY-MM-DD), sortBy, page, limit.
func parseListFilter(c *gin.Context) domain.ListFilter {
	f := domain.ListFilter{
		Search: strings.TrimSpace(c.Query("search")),
		SortBy: strings.ToLower(strings.TrimSpace(c.Query("sortBy"))),
		Page:   1,
		Limit:  10,
	}
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		f.Page = v
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 100 {
		f.Limit = v
	}
	if t, err := utils.ParseDate(c.Query("start")); err == nil {
		f.Start = &t
	}
	if t, err := utils.ParseDate(c.Query("end")); err == nil {
		end := t.AddDate(0, 0, 1)
		f.End = &end
	}
	return f
}

func requestID(c *gin.Context) string {
	return middleware.GetRequestID(c)
}
