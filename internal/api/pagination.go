package api

import (
	"strconv" // String conversion

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 20  // Page size when only page is given
	maxPageSize     = 100 // Upper bound for page_size
)

// TotalCountHeader carries the unpaged item count of a paged response.
const TotalCountHeader = "X-Total-Count"

// paginate returns the requested page of items. Without page and page_size
// query parameters every item is returned. Invalid values fall back to defaults.
func paginate[T any](c *gin.Context, items []T) []T {
	p, ps := c.Query("page"), c.Query("page_size")
	if p == "" && ps == "" {
		return items
	}
	page := 1                   // Default page number
	pageSize := defaultPageSize // Default page size
	if v, err := strconv.Atoi(p); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= maxPageSize {
		pageSize = v
	}
	c.Header(TotalCountHeader, strconv.Itoa(len(items)))

	offset := (page - 1) * pageSize
	if offset >= len(items) {
		return items[:0]
	}
	end := min(offset+pageSize, len(items))
	return items[offset:end]
}
