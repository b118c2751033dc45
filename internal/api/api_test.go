package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"testing"

	"github.com/01moynul/shopcart-admin/internal/models"
	"github.com/01moynul/shopcart-admin/internal/transport"
)

type call struct {
	method transport.Method
	path   string
	data   any
}

// fakeRequester records calls and answers with a canned JSON body.
type fakeRequester struct {
	calls    []call
	response string
	err      error
}

func (f *fakeRequester) Request(_ context.Context, method transport.Method, path string, data, out any) error {
	f.calls = append(f.calls, call{method: method, path: path, data: data})
	if f.err != nil {
		return f.err
	}
	if out != nil && f.response != "" {
		return json.Unmarshal([]byte(f.response), out)
	}
	return nil
}

func (f *fakeRequester) last(t *testing.T) call {
	t.Helper()
	if len(f.calls) == 0 {
		t.Fatalf("expected a request")
	}
	return f.calls[len(f.calls)-1]
}

func TestProductsListBuildsQueryAndEnvelope(t *testing.T) {
	f := &fakeRequester{response: `{"products":[{"_id":"p1","name":"Widget","price":9.99}],"totalProducts":11,"totalPages":2}`}
	c := New(f)

	page, err := c.Products.List(context.Background(), models.ProductQuery{Page: 1, Limit: 10, Status: models.ProductActive})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := f.last(t)
	if got.method != transport.Get || got.path != PathProductsList {
		t.Fatalf("unexpected call %+v", got)
	}
	q := got.data.(url.Values)
	if q.Get("page") != "1" || q.Get("limit") != "10" || q.Get("status") != "active" {
		t.Fatalf("unexpected query %v", q)
	}
	if len(page.Items) != 1 || page.Items[0].ID != "p1" || page.Total != 11 || page.TotalPages != 2 {
		t.Fatalf("unexpected page %+v", page)
	}
}

func TestOrdersListSendsEmptyFilters(t *testing.T) {
	f := &fakeRequester{response: `{"orders":null,"totalOrders":0}`}
	c := New(f)

	page, err := c.Orders.List(context.Background(), models.OrderQuery{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	q := f.last(t).data.(url.Values)
	if _, ok := q["status"]; !ok {
		t.Fatalf("expected status key to be present: %v", q)
	}
	if _, ok := q["payment"]; !ok {
		t.Fatalf("expected payment key to be present: %v", q)
	}
	if page.Items != nil {
		t.Fatalf("controllers pass the list through untouched, got %#v", page.Items)
	}
}

func TestCustomersAndShippersEnvelopes(t *testing.T) {
	f := &fakeRequester{response: `{"customer":[{"_id":"c1","customerName":"Sara"}],"totalCustomers":1,"totalPages":1}`}
	c := New(f)
	cp, err := c.Customers.List(context.Background(), models.ListQuery{Page: 1, Limit: 10})
	if err != nil || len(cp.Items) != 1 || cp.Items[0].CustomerName != "Sara" {
		t.Fatalf("unexpected customers page %+v err=%v", cp, err)
	}

	f.response = `{"shipper":[{"_id":"s1","city":"Lahore"}],"totalShippers":1,"totalPages":1}`
	sp, err := c.Shippers.List(context.Background(), models.ListQuery{})
	if err != nil || len(sp.Items) != 1 || sp.Items[0].City != "Lahore" {
		t.Fatalf("unexpected shippers page %+v err=%v", sp, err)
	}
	if q := f.last(t).data.(url.Values); len(q) != 0 {
		t.Fatalf("expected no page params when unset, got %v", q)
	}
}

func TestMutatingPaths(t *testing.T) {
	f := &fakeRequester{response: `{"message":"ok"}`}
	c := New(f)
	ctx := context.Background()

	cases := []struct {
		name   string
		run    func() error
		method transport.Method
		path   string
	}{
		{"login", func() error { _, err := c.Auth.Login(ctx, models.LoginInput{}); return err }, transport.Post, "/api/login"},
		{"signup", func() error { _, err := c.Auth.Signup(ctx, models.SignupInput{}); return err }, transport.Post, "/api/register"},
		{"forget", func() error { _, err := c.Auth.ForgetPassword(ctx, models.ForgetPasswordInput{}); return err }, transport.Post, "/auth/forget-password"},
		{"profile", func() error { _, err := c.Auth.UpdateProfile(ctx, models.UpdateProfileInput{}); return err }, transport.Put, "/api/update"},
		{"dashboard", func() error { _, err := c.Auth.DashboardStats(ctx); return err }, transport.Get, "/api/orders/dashboard-stats"},
		{"product", func() error { _, err := c.Products.Create(ctx, models.CreateProductInput{}); return err }, transport.Post, "/api/products/create"},
		{"order", func() error { _, err := c.Orders.Create(ctx, models.CreateOrderInput{}); return err }, transport.Post, "/api/orders/create"},
		{"customer update", func() error { _, err := c.Customers.Update(ctx, "c 1", models.CustomerInput{}); return err }, transport.Put, "/api/customers/update/c%201"},
		{"customer delete", func() error { _, err := c.Customers.Delete(ctx, "c1"); return err }, transport.Delete, "/api/customers/delete/c1"},
		{"shipper create", func() error { _, err := c.Shippers.Create(ctx, models.Shipper{}); return err }, transport.Post, "/api/shipper-info/create"},
		{"shipper update", func() error { _, err := c.Shippers.Update(ctx, "s1", models.Shipper{}); return err }, transport.Put, "/api/shipper-info/update/s1"},
		{"shipper delete", func() error { _, err := c.Shippers.Delete(ctx, "s1"); return err }, transport.Delete, "/api/shipper-info/delete/s1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.run(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := f.last(t)
			if got.method != tc.method || got.path != tc.path {
				t.Fatalf("expected %s %s, got %s %s", tc.method, tc.path, got.method, got.path)
			}
		})
	}
}

func TestControllerPassesErrorsThrough(t *testing.T) {
	want := &transport.Error{Status: 400, Message: "bad"}
	f := &fakeRequester{err: want}
	c := New(f)
	if _, err := c.Orders.List(context.Background(), models.OrderQuery{}); !errors.Is(err, want) {
		t.Fatalf("expected error to pass through, got %v", err)
	}
}
