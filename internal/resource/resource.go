// Package resource implements the per-resource hooks: fetch a page into the
// store, create/update/delete with toasts, all behind one generic factory.
package resource

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/01moynul/shopcart-admin/internal/models"
	"github.com/01moynul/shopcart-admin/internal/navigation"
	"github.com/01moynul/shopcart-admin/internal/notify"
	"github.com/01moynul/shopcart-admin/internal/transport"
)

var (
	// ErrStale is returned by Fetch when a newer fetch already wrote the store.
	ErrStale = errors.New("resource: response superseded by a newer request")
	// ErrNotSupported is returned for operations the resource was built without.
	ErrNotSupported = errors.New("resource: operation not supported")
)

// ListFunc fetches one page of a resource.
type ListFunc[T, Q any] func(ctx context.Context, q Q) (models.Page[T], error)

type CreateFunc[C any] func(ctx context.Context, in C) (*models.MessageResponse, error)

type UpdateFunc[C any] func(ctx context.Context, id string, in C) (*models.MessageResponse, error)

type DeleteFunc func(ctx context.Context, id string) (*models.MessageResponse, error)

// LimitFunc reads the page size out of a query, used to derive totalPages.
type LimitFunc[Q any] func(q Q) int

// SetFunc is the store action that receives a fetched page, e.g.
// (*store.Store).SetOrders. It reports false when seq is stale.
type SetFunc[T any] func(seq uint64, page models.Page[T]) bool

// Config wires one resource. List and Set are required.
type Config[T, Q, C any] struct {
	Name   string
	List   ListFunc[T, Q]
	Limit  LimitFunc[Q]
	Create CreateFunc[C]
	Update UpdateFunc[C]
	Delete DeleteFunc
	Set    SetFunc[T]

	Notifier  notify.Notifier
	Navigator navigation.Navigator
	// AfterCreate is the route opened after a successful create. Empty stays put.
	AfterCreate string
	Logger      *slog.Logger
}

// Resource is the hook a screen talks to.
type Resource[T, Q, C any] struct {
	cfg     Config[T, Q, C]
	seq     atomic.Uint64
	loading atomic.Int32
}

func New[T, Q, C any](cfg Config[T, Q, C]) (*Resource[T, Q, C], error) {
	if cfg.List == nil {
		return nil, fmt.Errorf("resource %s: list function is required", cfg.Name)
	}
	if cfg.Set == nil {
		return nil, fmt.Errorf("resource %s: store action is required", cfg.Name)
	}
	if cfg.Notifier == nil {
		cfg.Notifier = notify.Nop{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Resource[T, Q, C]{cfg: cfg}, nil
}

// Name identifies the resource in logs and toasts.
func (r *Resource[T, Q, C]) Name() string {
	return r.cfg.Name
}

// Loading reports whether any call of this resource is in flight.
func (r *Resource[T, Q, C]) Loading() bool {
	return r.loading.Load() > 0
}

func (r *Resource[T, Q, C]) begin() func() {
	r.loading.Add(1)
	return func() { r.loading.Add(-1) }
}

// Fetch loads one page into the store. A failed fetch leaves the store as it
// was. If a later-issued fetch has already been applied, the page is returned
// with ErrStale and the store keeps the newer data.
func (r *Resource[T, Q, C]) Fetch(ctx context.Context, q Q) (models.Page[T], error) {
	seq := r.seq.Add(1)
	defer r.begin()()

	// 1. --- Call ---
	page, err := r.cfg.List(ctx, q)
	if err != nil {
		r.fail(ctx, "fetch", err)
		return models.Page[T]{}, err
	}

	// 2. --- Normalize ---
	limit := 0
	if r.cfg.Limit != nil {
		limit = r.cfg.Limit(q)
	}
	page = models.NormalizePage(page, limit)

	// 3. --- Apply ---
	if !r.cfg.Set(seq, page) {
		r.cfg.Logger.Debug("Discarded stale page", "resource", r.cfg.Name, "seq", seq)
		return page, ErrStale
	}
	return page, nil
}

// Create posts a new entity. The list is not touched; it refreshes on the
// next Fetch.
func (r *Resource[T, Q, C]) Create(ctx context.Context, in C) (*models.MessageResponse, error) {
	if r.cfg.Create == nil {
		return nil, fmt.Errorf("%w: create %s", ErrNotSupported, r.cfg.Name)
	}
	defer r.begin()()

	res, err := r.cfg.Create(ctx, in)
	if err != nil {
		r.fail(ctx, "create", err)
		return nil, err
	}
	r.succeed(ctx, res)
	if r.cfg.AfterCreate != "" && r.cfg.Navigator != nil {
		r.cfg.Navigator.Navigate(r.cfg.AfterCreate)
	}
	return res, nil
}

func (r *Resource[T, Q, C]) Update(ctx context.Context, id string, in C) (*models.MessageResponse, error) {
	if r.cfg.Update == nil {
		return nil, fmt.Errorf("%w: update %s", ErrNotSupported, r.cfg.Name)
	}
	defer r.begin()()

	res, err := r.cfg.Update(ctx, id, in)
	if err != nil {
		r.fail(ctx, "update", err)
		return nil, err
	}
	r.succeed(ctx, res)
	return res, nil
}

func (r *Resource[T, Q, C]) Delete(ctx context.Context, id string) (*models.MessageResponse, error) {
	if r.cfg.Delete == nil {
		return nil, fmt.Errorf("%w: delete %s", ErrNotSupported, r.cfg.Name)
	}
	defer r.begin()()

	res, err := r.cfg.Delete(ctx, id)
	if err != nil {
		r.fail(ctx, "delete", err)
		return nil, err
	}
	r.succeed(ctx, res)
	return res, nil
}

func (r *Resource[T, Q, C]) succeed(ctx context.Context, res *models.MessageResponse) {
	msg := ""
	if res != nil {
		msg = res.Message
	}
	notify.Show(ctx, r.cfg.Notifier, notify.Success, r.cfg.Name, msg)
}

func (r *Resource[T, Q, C]) fail(ctx context.Context, op string, err error) {
	r.cfg.Logger.Warn("Resource call failed", "resource", r.cfg.Name, "op", op, "kind", transport.KindOf(err), "error", err)
	notify.ShowError(ctx, r.cfg.Notifier, r.cfg.Name, err)
}
