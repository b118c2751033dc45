// Package screens holds the view-models behind each screen: the local UI
// state (page, search text, view mode, form) and the hook calls they trigger.
package screens

import (
	"context"
	"errors"
	"sync"

	"github.com/01moynul/shopcart-admin/internal/models"
	"github.com/01moynul/shopcart-admin/internal/pagination"
	"github.com/01moynul/shopcart-admin/internal/resource"
	"github.com/01moynul/shopcart-admin/internal/store"
)

// DefaultLimit is the page size of every list screen.
const DefaultLimit = 10

// pagedList is the page state shared by the products, orders and customers
// screens. Changing page triggers a fetch; the pager disables at the bounds.
type pagedList[T, Q, C any] struct {
	res   *resource.Resource[T, Q, C]
	slice *store.Slice[T]
	query func(page, limit int) Q
	limit int

	mu    sync.Mutex
	pager *pagination.Pager
}

func newPagedList[T, Q, C any](res *resource.Resource[T, Q, C], slice *store.Slice[T], limit int, query func(page, limit int) Q) pagedList[T, Q, C] {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return pagedList[T, Q, C]{res: res, slice: slice, query: query, limit: limit, pager: pagination.NewPager()}
}

// Mount loads the current page.
func (l *pagedList[T, Q, C]) Mount(ctx context.Context) error {
	l.mu.Lock()
	page := l.pager.Page
	l.mu.Unlock()
	return l.load(ctx, page)
}

// NextPage moves forward and fetches. It reports false without a request
// when already on the last page.
func (l *pagedList[T, Q, C]) NextPage(ctx context.Context) (bool, error) {
	l.mu.Lock()
	moved := l.pager.Next()
	page := l.pager.Page
	l.mu.Unlock()
	if !moved {
		return false, nil
	}
	return true, l.load(ctx, page)
}

func (l *pagedList[T, Q, C]) PrevPage(ctx context.Context) (bool, error) {
	l.mu.Lock()
	moved := l.pager.Prev()
	page := l.pager.Page
	l.mu.Unlock()
	if !moved {
		return false, nil
	}
	return true, l.load(ctx, page)
}

func (l *pagedList[T, Q, C]) load(ctx context.Context, page int) error {
	result, err := l.res.Fetch(ctx, l.query(page, l.limit))
	switch {
	case errors.Is(err, resource.ErrStale):
		result = l.slice.Snapshot()
	case err != nil:
		return err
	}
	l.mu.Lock()
	l.pager.SetTotalPages(result.TotalPages)
	l.mu.Unlock()
	return nil
}

// Pager returns a copy of the page state for rendering.
func (l *pagedList[T, Q, C]) Pager() pagination.Pager {
	l.mu.Lock()
	defer l.mu.Unlock()
	return *l.pager
}

func (l *pagedList[T, Q, C]) Loading() bool {
	return l.res.Loading()
}

// Snapshot is the slice as the screen renders it.
func (l *pagedList[T, Q, C]) Snapshot() models.Page[T] {
	return l.slice.Snapshot()
}
