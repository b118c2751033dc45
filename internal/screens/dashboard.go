package screens

import (
	"context"
	"errors"

	"github.com/01moynul/shopcart-admin/internal/models"
	"github.com/01moynul/shopcart-admin/internal/navigation"
	"github.com/01moynul/shopcart-admin/internal/resource"
	"github.com/01moynul/shopcart-admin/internal/store"
	"golang.org/x/sync/errgroup"
)

// Dashboard is the home screen: stats cards, the overview chart and the
// most recent orders.
type Dashboard struct {
	stats  *resource.Dashboard
	orders *resource.Orders
	st     *store.Store
	nav    navigation.Navigator
	limit  int
}

func NewDashboard(stats *resource.Dashboard, orders *resource.Orders, st *store.Store, nav navigation.Navigator, limit int) *Dashboard {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Dashboard{stats: stats, orders: orders, st: st, nav: nav, limit: limit}
}

// Mount loads stats and the first orders page side by side. Both hooks have
// already toasted their own failures; the first error is returned.
func (s *Dashboard) Mount(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.stats.Fetch(ctx)
		return err
	})
	g.Go(func() error {
		_, err := s.orders.Fetch(ctx, models.OrderQuery{Page: 1, Limit: s.limit})
		if errors.Is(err, resource.ErrStale) {
			return nil
		}
		return err
	})
	return g.Wait()
}

func (s *Dashboard) Stats() (models.DashboardStats, bool) {
	return s.st.Dashboard()
}

// ChartLabels name the bars of Chart.
var ChartLabels = [3]string{"Orders", "Sales", "Revenue"}

// Chart returns today's orders and sales/revenue in thousands.
func (s *Dashboard) Chart() [3]float64 {
	stats, _ := s.st.Dashboard()
	return stats.ChartPoints()
}

func (s *Dashboard) RecentOrders() []models.Order {
	return s.st.Orders.Snapshot().Items
}

func (s *Dashboard) TopProducts() []models.TopProduct {
	stats, _ := s.st.Dashboard()
	return stats.TopProducts
}

func (s *Dashboard) Loading() bool {
	return s.stats.Loading() || s.orders.Loading()
}

// ViewAllProducts opens the product list.
func (s *Dashboard) ViewAllProducts() {
	s.nav.Navigate(navigation.RouteProducts)
}
