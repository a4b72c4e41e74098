// Package query provides the generic paginated list capability shared by the
// tabular list endpoints: page/per_page pagination, a search term applied
// across declared columns, and allow-listed sorting.
package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const (
	defaultPerPage = 25
	maxPerPage     = 100
)

// Params holds the list query parameters parsed from the request
type Params struct {
	Page    int
	PerPage int
	Search  string
	SortBy  string
	SortDir string
}

// Parse extracts list parameters from the request query string
func Parse(c echo.Context) Params {
	params := Params{
		Page:    1,
		PerPage: defaultPerPage,
		Search:  c.QueryParam("search"),
		SortBy:  c.QueryParam("sort_by"),
		SortDir: strings.ToLower(c.QueryParam("sort_dir")),
	}

	if page, err := strconv.Atoi(c.QueryParam("page")); err == nil && page > 0 {
		params.Page = page
	}
	if perPage, err := strconv.Atoi(c.QueryParam("per_page")); err == nil && perPage > 0 {
		params.PerPage = perPage
	}
	if params.PerPage > maxPerPage {
		params.PerPage = maxPerPage
	}
	if params.SortDir != "desc" {
		params.SortDir = "asc"
	}

	return params
}

// Apply adds search, sorting and pagination to the query. The search term is
// matched case-insensitively against searchColumns; sorting is only applied
// when the requested column is in sortColumns.
func (p Params) Apply(db *gorm.DB, searchColumns []string, sortColumns []string) *gorm.DB {
	if p.Search != "" && len(searchColumns) > 0 {
		pattern := "%" + strings.ToLower(p.Search) + "%"
		conditions := make([]string, 0, len(searchColumns))
		args := make([]interface{}, 0, len(searchColumns))
		for _, col := range searchColumns {
			conditions = append(conditions, fmt.Sprintf("LOWER(%s) LIKE ?", col))
			args = append(args, pattern)
		}
		db = db.Where(strings.Join(conditions, " OR "), args...)
	}

	if p.SortBy != "" && contains(sortColumns, p.SortBy) {
		db = db.Order(p.SortBy + " " + p.SortDir)
	}

	offset := (p.Page - 1) * p.PerPage
	return db.Offset(offset).Limit(p.PerPage)
}

func contains(columns []string, col string) bool {
	for _, c := range columns {
		if c == col {
			return true
		}
	}
	return false
}
