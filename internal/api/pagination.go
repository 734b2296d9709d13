package api

import "strconv"

// PageRequest is a normalized page/limit pair with its row offset
type PageRequest struct {
	Page  int
	Limit int
	Skip  int
}

// ResolvePage normalizes raw page and limit query parameters. Missing or
// non-numeric inputs fall back to defaults, never an error. A positive
// maxLimit caps the page size; zero leaves it unbounded.
func ResolvePage(pageStr, limitStr string, defaultLimit, maxLimit int) PageRequest {
	page := 1
	if p, err := strconv.Atoi(pageStr); err == nil && p >= 1 {
		page = p
	}

	limit := defaultLimit
	if l, err := strconv.Atoi(limitStr); err == nil && l >= 1 {
		limit = l
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}

	return PageRequest{
		Page:  page,
		Limit: limit,
		Skip:  (page - 1) * limit,
	}
}
