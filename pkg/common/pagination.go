package common

import "math"

// Defaults applied when a caller omits or mangles the paging params.
const (
	DefaultPage  = 1
	DefaultLimit = 50
)

// NormalizePage clamps caller-supplied paging values to usable ones.
func NormalizePage(page, limit int) (int, int) {
	if page <= 0 {
		page = DefaultPage
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return page, limit
}

// PaginationResult is one page of results with its cursor bookkeeping.
// NextPage and PrevPage are zero at either end, so clients test them with a
// plain truthiness check.
type PaginationResult struct {
	Message     string      `json:"message"`
	Data        interface{} `json:"data"`
	Count       int64       `json:"count"`
	CurrentPage int         `json:"currentPage"`
	NextPage    int         `json:"nextPage"`
	PrevPage    int         `json:"prevPage"`
	LastPage    int         `json:"lastPage"`
}

// PaginateResponse wraps a page of results. An empty message falls back to
// "success".
func PaginateResponse(data interface{}, total int64, page, limit int, message string) PaginationResult {
	if message == "" {
		message = "success"
	}
	page, limit = NormalizePage(page, limit)

	lastPage := int(math.Ceil(float64(total) / float64(limit)))
	result := PaginationResult{
		Message:     message,
		Data:        data,
		Count:       total,
		CurrentPage: page,
		LastPage:    lastPage,
	}
	if page+1 <= lastPage {
		result.NextPage = page + 1
	}
	if page > 1 {
		result.PrevPage = page - 1
	}
	return result
}
