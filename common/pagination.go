package common

import "strings"

// PageRequest carries normalized pagination parameters for repository queries.
type PageRequest struct {
	Page    int
	Size    int
	OrderBy string
}

// sortColumns maps API sort field names to their database columns. Anything
// not listed falls back to created_at so user input never reaches the query.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"title":     "title",
}

// NewPageRequest normalizes raw pagination input. Sort is accepted in the
// form "field,direction", e.g. "createdAt,desc".
func NewPageRequest(page, size int, sort string) PageRequest {
	if page < 0 {
		page = 0
	}
	if size <= 0 || size > 100 {
		size = 10
	}

	column := "created_at"
	direction := "DESC"

	parts := strings.SplitN(sort, ",", 2)
	if col, ok := sortColumns[parts[0]]; ok {
		column = col
	}
	if len(parts) == 2 && strings.EqualFold(parts[1], "asc") {
		direction = "ASC"
	}

	return PageRequest{
		Page:    page,
		Size:    size,
		OrderBy: column + " " + direction,
	}
}

// Limit returns the SQL LIMIT value.
func (p PageRequest) Limit() int { return p.Size }

// Offset returns the SQL OFFSET value.
func (p PageRequest) Offset() int { return p.Page * p.Size }

// TotalPages computes the page count for a given total element count.
func (p PageRequest) TotalPages(totalElements int) int {
	if totalElements == 0 {
		return 0
	}
	return (totalElements + p.Size - 1) / p.Size
}
