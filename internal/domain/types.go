package domain

import "time"

// Pagination carries paging params and totals.
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Total    int `json:"total,omitempty"`
}

// ListFilter is the common shape of the back-office list screens:
// free-text search, optional created-at window, sort direction, paging.
// When Search is non-empty paging is skipped; the screens show the full
// filtered result while searching.
type ListFilter struct {
	Search string
	Start  *time.Time
	End    *time.Time
	SortBy string // asc / desc
	Page   int
	Limit  int
}

// RequestContext carries authenticated user info when available.
type RequestContext struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}
