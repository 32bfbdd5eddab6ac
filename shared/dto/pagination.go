package dto

import "math"

// Pagination is the page metadata returned alongside every list response.
// TotalItems counts rows after filtering, never the full table.
type Pagination struct {
	CurrentPage  int  `json:"currentPage"`
	TotalPages   int  `json:"totalPages"`
	ItemsPerPage int  `json:"itemsPerPage"`
	TotalItems   int  `json:"totalItems"`
	HasNextPage  bool `json:"hasNextPage"`
	HasPrevPage  bool `json:"hasPrevPage"`
}

func (p *Pagination) FromCounts(page, limit, totalItems int) {
	p.CurrentPage = page
	p.ItemsPerPage = limit
	p.TotalItems = totalItems

	if totalItems == 0 || limit <= 0 {
		p.TotalPages = 1
	} else {
		p.TotalPages = int(math.Ceil(float64(totalItems) / float64(limit)))
	}

	p.HasNextPage = page < p.TotalPages
	p.HasPrevPage = page > 1
}
