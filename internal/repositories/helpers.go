package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	"tourdesk/internal/domain"
)

// searchWindowClause builds the WHERE clause shared by the list
// screens: case-insensitive LIKE across searchCols plus an optional
// created-at window.
func searchWindowClause(f domain.ListFilter, searchCols []string) (string, []any) {
	var conds []string
	var args []any

	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + s + "%"
		parts := make([]string, 0, len(searchCols))
		for _, col := range searchCols {
			parts = append(parts, col+" LIKE ?")
			args = append(args, like)
		}
		conds = append(conds, "("+strings.Join(parts, " OR ")+")")
	}
	if f.Start != nil && f.End != nil {
		conds = append(conds, "created_at BETWEEN ? AND ?")
		args = append(args, *f.Start, *f.End)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// orderAndPage appends ORDER BY created_at plus LIMIT/OFFSET. Paging is
// skipped while searching, same as the original list screens.
func orderAndPage(f domain.ListFilter) string {
	dir := "DESC"
	if strings.EqualFold(f.SortBy, "asc") {
		dir = "ASC"
	}
	clause := " ORDER BY created_at " + dir

	if strings.TrimSpace(f.Search) != "" {
		return clause
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 10
	}
	page := f.Page
	if page <= 0 {
		page = 1
	}
	return clause + fmt.Sprintf(" LIMIT %d OFFSET %d", limit, (page-1)*limit)
}

func noneAffectedAsNotFound(res sql.Result, resource string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError{Resource: resource}
	}
	return nil
}
