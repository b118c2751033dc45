package screens

import (
	"context"
	"strings"
	"sync"

	"github.com/01moynul/shopcart-admin/internal/models"
	"github.com/01moynul/shopcart-admin/internal/resource"
	"github.com/01moynul/shopcart-admin/internal/store"
	"github.com/01moynul/shopcart-admin/internal/validation"
)

type ViewMode string

const (
	ViewCards ViewMode = "cards"
	ViewTable ViewMode = "table"
)

// Customers is the customer list with a client-side search. Edits reload
// the current page.
type Customers struct {
	pagedList[models.Customer, models.ListQuery, models.CustomerInput]

	uiMu   sync.RWMutex
	search string
	mode   ViewMode
}

func NewCustomers(res *resource.Customers, st *store.Store, limit int) *Customers {
	return &Customers{
		pagedList: newPagedList(res, &st.Customers, limit, func(page, limit int) models.ListQuery {
			return models.ListQuery{Page: page, Limit: limit}
		}),
		mode: ViewCards,
	}
}

// Add validates and saves a new customer.
func (s *Customers) Add(ctx context.Context, form validation.CustomerForm) (*models.MessageResponse, error) {
	if err := validation.Validate(form); err != nil {
		return nil, err
	}
	res, err := s.res.Create(ctx, form.Input())
	if err != nil {
		return nil, err
	}
	return res, s.Mount(ctx)
}

func (s *Customers) Edit(ctx context.Context, id string, form validation.CustomerForm) (*models.MessageResponse, error) {
	if err := validation.Validate(form); err != nil {
		return nil, err
	}
	res, err := s.res.Update(ctx, id, form.Input())
	if err != nil {
		return nil, err
	}
	return res, s.Mount(ctx)
}

func (s *Customers) Remove(ctx context.Context, id string) (*models.MessageResponse, error) {
	res, err := s.res.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	return res, s.Mount(ctx)
}

func (s *Customers) SetSearch(q string) {
	s.uiMu.Lock()
	s.search = q
	s.uiMu.Unlock()
}

func (s *Customers) ViewMode() ViewMode {
	s.uiMu.RLock()
	defer s.uiMu.RUnlock()
	return s.mode
}

func (s *Customers) SetViewMode(m ViewMode) {
	if m != ViewCards && m != ViewTable {
		return
	}
	s.uiMu.Lock()
	s.mode = m
	s.uiMu.Unlock()
}

// Visible filters the current page: name and city match case-insensitively,
// phone matches as typed.
func (s *Customers) Visible() []models.Customer {
	s.uiMu.RLock()
	q := s.search
	s.uiMu.RUnlock()
	return FilterCustomers(s.Snapshot().Items, q)
}

func FilterCustomers(customers []models.Customer, q string) []models.Customer {
	lower := strings.ToLower(q)
	out := make([]models.Customer, 0, len(customers))
	for _, c := range customers {
		if strings.Contains(strings.ToLower(c.CustomerName), lower) ||
			strings.Contains(strings.ToLower(c.City), lower) ||
			strings.Contains(c.Phone, q) {
			out = append(out, c)
		}
	}
	return out
}
