// Package pagination computes page counts and keeps list screens inside
// their page bounds.
package pagination

// TotalPages returns ceil(total / limit). Non-positive inputs yield 0.
func TotalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// Pager tracks the current page of a list screen. Pages are 1-based.
type Pager struct {
	Page       int
	TotalPages int
}

// NewPager starts at page 1.
func NewPager() *Pager {
	return &Pager{Page: 1}
}

// CanPrev reports whether the "previous" control is enabled.
func (p *Pager) CanPrev() bool {
	return p.Page > 1
}

// CanNext reports whether the "next" control is enabled.
func (p *Pager) CanNext() bool {
	return p.Page < p.TotalPages
}

// Next advances one page. It is a no-op at the last page.
func (p *Pager) Next() bool {
	if !p.CanNext() {
		return false
	}
	p.Page++
	return true
}

// Prev goes back one page. It is a no-op at page 1.
func (p *Pager) Prev() bool {
	if !p.CanPrev() {
		return false
	}
	p.Page--
	return true
}

// SetTotalPages updates the bound after a fetch. The current page is left
// alone so a shrinking list does not trigger another fetch on its own.
func (p *Pager) SetTotalPages(n int) {
	if n < 0 {
		n = 0
	}
	p.TotalPages = n
}
