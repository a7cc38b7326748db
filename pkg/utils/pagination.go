package utils

import "math"

// MaxPageLimit caps the page size a client may request.
const MaxPageLimit = 100

// PaginationParams holds pagination query parameters. A zero Limit means
// the whole result set.
type PaginationParams struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// PaginationMeta is returned alongside paged listings
type PaginationMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalCount int64 `json:"totalCount"`
	TotalPages int   `json:"totalPages"`
}

// GetPaginationParams normalizes page and limit
func GetPaginationParams(page, limit int) PaginationParams {
	if page < 1 {
		page = 1
	}
	switch {
	case limit < 0:
		limit = 0
	case limit > MaxPageLimit:
		limit = MaxPageLimit
	}
	return PaginationParams{Page: page, Limit: limit}
}

// Window returns the limit and offset to apply to a query
func (p PaginationParams) Window() (limit, offset int) {
	if p.Limit <= 0 {
		return 0, 0
	}
	page := p.Page
	if page < 1 {
		page = 1
	}
	return p.Limit, (page - 1) * p.Limit
}

// Paged reports whether the caller asked for a bounded page
func (p PaginationParams) Paged() bool {
	return p.Limit > 0
}

// CalculateMeta builds pagination metadata for a listing of totalCount rows
func CalculateMeta(totalCount int64, p PaginationParams) PaginationMeta {
	if p.Limit <= 0 {
		return PaginationMeta{Page: 1, Limit: int(totalCount), TotalCount: totalCount, TotalPages: 1}
	}
	return PaginationMeta{
		Page:       p.Page,
		Limit:      p.Limit,
		TotalCount: totalCount,
		TotalPages: int(math.Ceil(float64(totalCount) / float64(p.Limit))),
	}
}
