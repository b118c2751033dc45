package resource

import (
	"context"
	"errors"
	"testing"

	"github.com/01moynul/shopcart-admin/internal/api"
	"github.com/01moynul/shopcart-admin/internal/models"
	"github.com/01moynul/shopcart-admin/internal/navigation"
	"github.com/01moynul/shopcart-admin/internal/notify"
	"github.com/01moynul/shopcart-admin/internal/store"
	"github.com/01moynul/shopcart-admin/internal/transport"
)

func orderPage(ids ...string) models.Page[models.Order] {
	p := models.Page[models.Order]{Total: len(ids)}
	for _, id := range ids {
		p.Items = append(p.Items, models.Order{ID: id})
	}
	return p
}

func newOrders(t *testing.T, list ListFunc[models.Order, models.OrderQuery], rec *notify.Recorder) (*Orders, *store.Store) {
	t.Helper()
	st := store.New()
	cfg := Config[models.Order, models.OrderQuery, models.CreateOrderInput]{
		Name:  "orders",
		List:  list,
		Limit: func(q models.OrderQuery) int { return q.Limit },
		Set:   st.SetOrders,
	}
	if rec != nil {
		cfg.Notifier = rec
	}
	r, err := New(cfg)
	if err != nil {
		t.Fatalf("new resource: %v", err)
	}
	return r, st
}

func TestFetchNormalizesIntoStore(t *testing.T) {
	r, st := newOrders(t, func(context.Context, models.OrderQuery) (models.Page[models.Order], error) {
		return models.Page[models.Order]{Items: nil, Total: 21}, nil
	}, nil)

	page, err := r.Fetch(context.Background(), models.OrderQuery{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Items == nil || page.TotalPages != 3 {
		t.Fatalf("expected empty items and 3 pages, got %+v", page)
	}
	snap := st.Orders.Snapshot()
	if snap.Items == nil || snap.Total != 21 || snap.TotalPages != 3 {
		t.Fatalf("unexpected store contents %+v", snap)
	}
	if r.Loading() {
		t.Fatalf("expected loading to be reset")
	}
}

func TestFetchTwiceIsIdempotent(t *testing.T) {
	r, st := newOrders(t, func(context.Context, models.OrderQuery) (models.Page[models.Order], error) {
		return orderPage("o1", "o2"), nil
	}, nil)
	ctx := context.Background()
	q := models.OrderQuery{Page: 1, Limit: 10}

	if _, err := r.Fetch(ctx, q); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	first := st.Orders.Snapshot()
	if _, err := r.Fetch(ctx, q); err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	second := st.Orders.Snapshot()
	if len(first.Items) != len(second.Items) || first.Items[1].ID != second.Items[1].ID || first.TotalPages != second.TotalPages {
		t.Fatalf("expected identical store contents, got %+v then %+v", first, second)
	}
}

func TestFetchNewestIssuedWins(t *testing.T) {
	entered := make(chan int)
	release := map[int]chan struct{}{1: make(chan struct{}), 2: make(chan struct{})}
	r, st := newOrders(t, func(_ context.Context, q models.OrderQuery) (models.Page[models.Order], error) {
		entered <- q.Page
		<-release[q.Page]
		if q.Page == 1 {
			return orderPage("page-1"), nil
		}
		return orderPage("page-2"), nil
	}, nil)
	ctx := context.Background()

	fetch := func(page int) <-chan error {
		done := make(chan error, 1)
		go func() {
			_, err := r.Fetch(ctx, models.OrderQuery{Page: page, Limit: 10})
			done <- err
		}()
		return done
	}

	// page 1 takes its sequence number before page 2 is issued.
	done1 := fetch(1)
	if got := <-entered; got != 1 {
		t.Fatalf("expected page 1 in flight, got %d", got)
	}
	done2 := fetch(2)
	if got := <-entered; got != 2 {
		t.Fatalf("expected page 2 in flight, got %d", got)
	}

	close(release[2])
	if err := <-done2; err != nil {
		t.Fatalf("page 2 fetch: %v", err)
	}
	close(release[1])
	if err := <-done1; !errors.Is(err, ErrStale) {
		t.Fatalf("expected late page 1 to be stale, got %v", err)
	}

	snap := st.Orders.Snapshot()
	if len(snap.Items) != 1 || snap.Items[0].ID != "page-2" {
		t.Fatalf("store reverted to older data: %+v", snap)
	}
	if r.Loading() {
		t.Fatalf("expected loading to be reset")
	}
}

func TestFetchFailureLeavesStoreAndToasts(t *testing.T) {
	fail := false
	rec := &notify.Recorder{}
	r, st := newOrders(t, func(context.Context, models.OrderQuery) (models.Page[models.Order], error) {
		if fail {
			return models.Page[models.Order]{}, &transport.Error{Status: 500, Message: "Server Error", Kind: transport.KindServer}
		}
		return orderPage("o1"), nil
	}, rec)
	ctx := context.Background()

	if _, err := r.Fetch(ctx, models.OrderQuery{Limit: 10}); err != nil {
		t.Fatalf("seed fetch: %v", err)
	}
	fail = true
	_, err := r.Fetch(ctx, models.OrderQuery{Limit: 10})
	if transport.StatusOf(err) != 500 {
		t.Fatalf("expected the transport error back, got %v", err)
	}
	if snap := st.Orders.Snapshot(); len(snap.Items) != 1 || snap.Items[0].ID != "o1" {
		t.Fatalf("failure changed the store: %+v", snap)
	}
	toast, ok := rec.Last()
	if !ok || toast.Kind != notify.Error || toast.Text != "Server Error" || toast.Source != "orders" {
		t.Fatalf("unexpected toast %+v", toast)
	}
	if r.Loading() {
		t.Fatalf("expected loading to be reset after failure")
	}
}

func TestUnauthorizedIsNotToasted(t *testing.T) {
	rec := &notify.Recorder{}
	r, _ := newOrders(t, func(context.Context, models.OrderQuery) (models.Page[models.Order], error) {
		return models.Page[models.Order]{}, &transport.Error{Status: 401, Message: "Unauthorized", Kind: transport.KindUnauthorized}
	}, rec)
	if _, err := r.Fetch(context.Background(), models.OrderQuery{}); !errors.Is(err, transport.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if len(rec.Toasts()) != 0 {
		t.Fatalf("expected no toast, got %+v", rec.Toasts())
	}
}

func TestCreateToastsAndNavigates(t *testing.T) {
	st := store.New()
	rec := &notify.Recorder{}
	router := navigation.NewRouter(navigation.RouteCreateProduct)
	var listed int
	r, err := New(Config[models.Product, models.ProductQuery, models.CreateProductInput]{
		Name: "products",
		List: func(context.Context, models.ProductQuery) (models.Page[models.Product], error) {
			listed++
			return models.Page[models.Product]{}, nil
		},
		Create: func(_ context.Context, in models.CreateProductInput) (*models.MessageResponse, error) {
			return &models.MessageResponse{Message: "Product created"}, nil
		},
		Set:         st.SetProducts,
		Notifier:    rec,
		Navigator:   router,
		AfterCreate: navigation.RouteProducts,
	})
	if err != nil {
		t.Fatalf("new resource: %v", err)
	}

	if _, err := r.Create(context.Background(), models.CreateProductInput{Name: "Widget"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if toast, _ := rec.Last(); toast.Kind != notify.Success || toast.Text != "Product created" {
		t.Fatalf("unexpected toast %+v", toast)
	}
	if router.Current() != navigation.RouteProducts {
		t.Fatalf("expected navigation to products, got %s", router.Current())
	}
	if listed != 0 || st.Products.Len() != 0 {
		t.Fatalf("create must not touch the list")
	}
}

func TestCreateFailureStaysPut(t *testing.T) {
	st := store.New()
	rec := &notify.Recorder{}
	router := navigation.NewRouter(navigation.RouteCreateProduct)
	r, _ := New(Config[models.Product, models.ProductQuery, models.CreateProductInput]{
		Name: "products",
		List: func(context.Context, models.ProductQuery) (models.Page[models.Product], error) {
			return models.Page[models.Product]{}, nil
		},
		Create: func(context.Context, models.CreateProductInput) (*models.MessageResponse, error) {
			return nil, &transport.Error{Status: 400, Message: "Name taken", Kind: transport.KindClient}
		},
		Set:         st.SetProducts,
		Notifier:    rec,
		Navigator:   router,
		AfterCreate: navigation.RouteProducts,
	})

	if _, err := r.Create(context.Background(), models.CreateProductInput{}); err == nil {
		t.Fatalf("expected error")
	}
	if router.Current() != navigation.RouteCreateProduct {
		t.Fatalf("expected to stay on the form, got %s", router.Current())
	}
	if toast, _ := rec.Last(); toast.Kind != notify.Error || toast.Text != "Name taken" {
		t.Fatalf("unexpected toast %+v", toast)
	}
}

func TestUnsupportedOperations(t *testing.T) {
	r, _ := newOrders(t, func(context.Context, models.OrderQuery) (models.Page[models.Order], error) {
		return models.Page[models.Order]{}, nil
	}, nil)
	ctx := context.Background()
	if _, err := r.Create(ctx, models.CreateOrderInput{}); !errors.Is(err, ErrNotSupported) {
		t.Fatalf("expected ErrNotSupported for create, got %v", err)
	}
	if _, err := r.Update(ctx, "o1", models.CreateOrderInput{}); !errors.Is(err, ErrNotSupported) {
		t.Fatalf("expected ErrNotSupported for update, got %v", err)
	}
	if _, err := r.Delete(ctx, "o1"); !errors.Is(err, ErrNotSupported) {
		t.Fatalf("expected ErrNotSupported for delete, got %v", err)
	}
}

func TestNewRequiresListAndSet(t *testing.T) {
	if _, err := New(Config[models.Order, models.OrderQuery, models.CreateOrderInput]{Name: "orders"}); err == nil {
		t.Fatalf("expected error without list")
	}
	list := func(context.Context, models.OrderQuery) (models.Page[models.Order], error) {
		return models.Page[models.Order]{}, nil
	}
	if _, err := New(Config[models.Order, models.OrderQuery, models.CreateOrderInput]{Name: "orders", List: list}); err == nil {
		t.Fatalf("expected error without a store action")
	}
}

func TestDashboardFetch(t *testing.T) {
	st := store.New()
	rec := &notify.Recorder{}
	calls := 0
	d := NewDashboard(func(context.Context) (*models.DashboardStats, error) {
		calls++
		if calls > 1 {
			return nil, &transport.Error{Status: 500, Message: "Server Error", Kind: transport.KindServer}
		}
		return &models.DashboardStats{TotalSales: models.TotalSalesStat{TotalSales: 5000}}, nil
	}, st, Deps{Notifier: rec})
	ctx := context.Background()

	if _, err := d.Fetch(ctx); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if _, err := d.Fetch(ctx); err == nil {
		t.Fatalf("expected second fetch to fail")
	}
	stats, ok := st.Dashboard()
	if !ok || stats.TotalSales.TotalSales != 5000 || stats.TopProducts == nil {
		t.Fatalf("unexpected stored stats %+v", stats)
	}
	if toast, _ := rec.Last(); toast.Kind != notify.Error {
		t.Fatalf("expected an error toast, got %+v", toast)
	}
}

// scriptedRequester answers every call with err, or with message on success.
type scriptedRequester struct {
	calls   []string
	err     error
	message string
}

func (f *scriptedRequester) Request(_ context.Context, method transport.Method, path string, _, out any) error {
	f.calls = append(f.calls, string(method)+" "+path)
	if f.err != nil {
		return f.err
	}
	if m, ok := out.(*models.MessageResponse); ok {
		m.Message = f.message
	}
	return nil
}

func TestCustomerAndShipperMutations(t *testing.T) {
	ops := []struct {
		name string
		call string
		run  func(ctx context.Context, c *Customers, s *Shippers) error
	}{
		{"create customer", "post /api/customers/create", func(ctx context.Context, c *Customers, _ *Shippers) error {
			_, err := c.Create(ctx, models.CustomerInput{CustomerName: "Ali", City: "Lahore", Phone: "0300"})
			return err
		}},
		{"update customer", "put /api/customers/update/c1", func(ctx context.Context, c *Customers, _ *Shippers) error {
			_, err := c.Update(ctx, "c1", models.CustomerInput{CustomerName: "Ali"})
			return err
		}},
		{"delete customer", "delete /api/customers/delete/c1", func(ctx context.Context, c *Customers, _ *Shippers) error {
			_, err := c.Delete(ctx, "c1")
			return err
		}},
		{"delete shipper", "delete /api/shipper-info/delete/s1", func(ctx context.Context, _ *Customers, s *Shippers) error {
			_, err := s.Delete(ctx, "s1")
			return err
		}},
	}
	outcomes := []struct {
		name      string
		err       error
		wantToast notify.Kind
		wantText  string
	}{
		{"success", nil, notify.Success, "Done"},
		{"server error", &transport.Error{Status: 500, Message: "Server Error", Kind: transport.KindServer}, notify.Error, "Server Error"},
		{"unauthorized", &transport.Error{Status: 401, Message: "Invalid or expired token", Kind: transport.KindUnauthorized}, "", ""},
	}

	for _, op := range ops {
		for _, oc := range outcomes {
			t.Run(op.name+"/"+oc.name, func(t *testing.T) {
				req := &scriptedRequester{err: oc.err, message: "Done"}
				controllers := api.New(req)
				st := store.New()
				rec := &notify.Recorder{}
				deps := Deps{Notifier: rec}
				customers, err := NewCustomers(controllers.Customers, st, deps)
				if err != nil {
					t.Fatalf("customers: %v", err)
				}
				shippers, err := NewShippers(controllers.Shippers, st, deps)
				if err != nil {
					t.Fatalf("shippers: %v", err)
				}

				err = op.run(context.Background(), customers, shippers)
				if (err != nil) != (oc.err != nil) {
					t.Fatalf("unexpected error %v", err)
				}
				if len(req.calls) != 1 || req.calls[0] != op.call {
					t.Fatalf("expected exactly %q, got %v", op.call, req.calls)
				}
				if st.Customers.Len() != 0 || st.Shippers.Len() != 0 {
					t.Fatalf("a mutation must not patch the list")
				}

				toasts := rec.Toasts()
				if oc.wantToast == "" {
					if len(toasts) != 0 {
						t.Fatalf("expected no toast, got %+v", toasts)
					}
					return
				}
				if len(toasts) != 1 || toasts[0].Kind != oc.wantToast || toasts[0].Text != oc.wantText {
					t.Fatalf("unexpected toasts %+v", toasts)
				}
				if customers.Loading() || shippers.Loading() {
					t.Fatalf("expected loading to be reset")
				}
			})
		}
	}
}
