package screens

import (
	"context"
	"errors"

	"github.com/01moynul/shopcart-admin/internal/models"
	"github.com/01moynul/shopcart-admin/internal/resource"
	"github.com/01moynul/shopcart-admin/internal/store"
	"github.com/01moynul/shopcart-admin/internal/validation"
)

// Shipper is the shipper-info settings screen.
type Shipper struct {
	res *resource.Shippers
	st  *store.Store
}

func NewShipper(res *resource.Shippers, st *store.Store) *Shipper {
	return &Shipper{res: res, st: st}
}

func (s *Shipper) Mount(ctx context.Context) error {
	return s.refresh(ctx)
}

func (s *Shipper) Items() []models.Shipper {
	return s.st.Shippers.Snapshot().Items
}

// Add validates and saves a new shipper, then reloads the list.
func (s *Shipper) Add(ctx context.Context, form validation.ShipperForm) (*models.MessageResponse, error) {
	if err := validation.Validate(form); err != nil {
		return nil, err
	}
	res, err := s.res.Create(ctx, form.Input())
	if err != nil {
		return nil, err
	}
	return res, s.refresh(ctx)
}

// Edit saves changes to an existing shipper, then reloads the list.
func (s *Shipper) Edit(ctx context.Context, id string, form validation.ShipperForm) (*models.MessageResponse, error) {
	if err := validation.Validate(form); err != nil {
		return nil, err
	}
	res, err := s.res.Update(ctx, id, form.Input())
	if err != nil {
		return nil, err
	}
	return res, s.refresh(ctx)
}

// Remove deletes a shipper, then reloads the list.
func (s *Shipper) Remove(ctx context.Context, id string) (*models.MessageResponse, error) {
	res, err := s.res.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	return res, s.refresh(ctx)
}

func (s *Shipper) Loading() bool {
	return s.res.Loading()
}

func (s *Shipper) refresh(ctx context.Context) error {
	_, err := s.res.Fetch(ctx, models.ListQuery{})
	if errors.Is(err, resource.ErrStale) {
		return nil
	}
	return err
}
