package models

import "github.com/01moynul/shopcart-admin/internal/pagination"

// Page is the normalized paged envelope every list fetch is reduced to.
type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NormalizePage defaults a nil list to empty and derives TotalPages from
// Total and limit when the server left it out.
func NormalizePage[T any](p Page[T], limit int) Page[T] {
	if p.Items == nil {
		p.Items = []T{}
	}
	if p.Total < 0 {
		p.Total = 0
	}
	if p.TotalPages <= 0 {
		p.TotalPages = pagination.TotalPages(p.Total, limit)
	}
	return p
}

// MessageResponse is the generic {message} body of mutating endpoints.
type MessageResponse struct {
	Message string `json:"message"`
	ID      string `json:"_id,omitempty"`
}
