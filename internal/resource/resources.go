package resource

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/01moynul/shopcart-admin/internal/api"
	"github.com/01moynul/shopcart-admin/internal/models"
	"github.com/01moynul/shopcart-admin/internal/navigation"
	"github.com/01moynul/shopcart-admin/internal/notify"
	"github.com/01moynul/shopcart-admin/internal/store"
)

type (
	Orders    = Resource[models.Order, models.OrderQuery, models.CreateOrderInput]
	Products  = Resource[models.Product, models.ProductQuery, models.CreateProductInput]
	Customers = Resource[models.Customer, models.ListQuery, models.CustomerInput]
	Shippers  = Resource[models.Shipper, models.ListQuery, models.Shipper]
)

// Deps are the collaborators every resource hook shares.
type Deps struct {
	Notifier  notify.Notifier
	Navigator navigation.Navigator
	Logger    *slog.Logger
}

func NewOrders(c *api.OrdersController, st *store.Store, d Deps) (*Orders, error) {
	return New(Config[models.Order, models.OrderQuery, models.CreateOrderInput]{
		Name:      "orders",
		List:      c.List,
		Limit:     func(q models.OrderQuery) int { return q.Limit },
		Create:    c.Create,
		Set:       st.SetOrders,
		Notifier:  d.Notifier,
		Navigator: d.Navigator,
		Logger:    d.Logger,
	})
}

// NewProducts opens the product list after a successful create.
func NewProducts(c *api.ProductsController, st *store.Store, d Deps) (*Products, error) {
	return New(Config[models.Product, models.ProductQuery, models.CreateProductInput]{
		Name:        "products",
		List:        c.List,
		Limit:       func(q models.ProductQuery) int { return q.Limit },
		Create:      c.Create,
		Set:         st.SetProducts,
		Notifier:    d.Notifier,
		Navigator:   d.Navigator,
		AfterCreate: navigation.RouteProducts,
		Logger:      d.Logger,
	})
}

func NewCustomers(c *api.CustomersController, st *store.Store, d Deps) (*Customers, error) {
	return New(Config[models.Customer, models.ListQuery, models.CustomerInput]{
		Name:      "customers",
		List:      c.List,
		Limit:     func(q models.ListQuery) int { return q.Limit },
		Create:    c.Create,
		Update:    c.Update,
		Delete:    c.Delete,
		Set:       st.SetCustomers,
		Notifier:  d.Notifier,
		Navigator: d.Navigator,
		Logger:    d.Logger,
	})
}

func NewShippers(c *api.ShippersController, st *store.Store, d Deps) (*Shippers, error) {
	return New(Config[models.Shipper, models.ListQuery, models.Shipper]{
		Name:      "shippers",
		List:      c.List,
		Limit:     func(q models.ListQuery) int { return q.Limit },
		Create:    c.Create,
		Update:    c.Update,
		Delete:    c.Delete,
		Set:       st.SetShippers,
		Notifier:  d.Notifier,
		Navigator: d.Navigator,
		Logger:    d.Logger,
	})
}

// StatsFunc loads the dashboard numbers.
type StatsFunc func(ctx context.Context) (*models.DashboardStats, error)

// Dashboard is the hook behind the home screen's stats cards and chart.
type Dashboard struct {
	stats    StatsFunc
	store    *store.Store
	notifier notify.Notifier
	logger   *slog.Logger
	loading  atomic.Int32
}

func NewDashboard(stats StatsFunc, st *store.Store, d Deps) *Dashboard {
	if d.Notifier == nil {
		d.Notifier = notify.Nop{}
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	return &Dashboard{stats: stats, store: st, notifier: d.Notifier, logger: d.Logger}
}

func (h *Dashboard) Loading() bool {
	return h.loading.Load() > 0
}

// Fetch stores fresh stats. On failure the previous stats stay.
func (h *Dashboard) Fetch(ctx context.Context) (models.DashboardStats, error) {
	h.loading.Add(1)
	defer h.loading.Add(-1)

	stats, err := h.stats(ctx)
	if err != nil {
		h.logger.Warn("Dashboard fetch failed", "error", err)
		notify.ShowError(ctx, h.notifier, "dashboard", err)
		return models.DashboardStats{}, err
	}
	var out models.DashboardStats
	if stats != nil {
		out = *stats
	}
	if out.TopProducts == nil {
		out.TopProducts = []models.TopProduct{}
	}
	h.store.SetDashboard(out)
	return out, nil
}
