package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
)

type SystemHandler struct {
	DB *sql.DB
}

func (h SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h SystemHandler) DBCheck(c *gin.Context) {
	if h.DB == nil {
		respondError(c, http.StatusInternalServerError, "database not connected", nil)
		return
	}
	var n int
	if err := h.DB.QueryRow("SELECT 1").Scan(&n); err != nil {
		respondError(c, http.StatusInternalServerError, "database query failed", err)
		return
	}
	respondOK(c, http.StatusOK, nil, "database connection OK")
}
