package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/01moynul/shopcart-admin/internal/api"
	"github.com/01moynul/shopcart-admin/internal/auth"
	"github.com/01moynul/shopcart-admin/internal/config"
	"github.com/01moynul/shopcart-admin/internal/navigation"
	"github.com/01moynul/shopcart-admin/internal/notify"
	"github.com/01moynul/shopcart-admin/internal/resource"
	"github.com/01moynul/shopcart-admin/internal/storage"
	"github.com/01moynul/shopcart-admin/internal/store"
	"github.com/01moynul/shopcart-admin/internal/transport"
)

// app is the composition root: one of everything, wired the way the mobile
// client wires its providers.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	kv       *storage.SQLStore
	router   *navigation.Router
	toasts   *notify.Recorder
	sessions *auth.Manager
	auth     *auth.Service
	api      *api.Controllers
	store    *store.Store

	orders    *resource.Orders
	products  *resource.Products
	customers *resource.Customers
	shippers  *resource.Shippers
	dashboard *resource.Dashboard
}

func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	// 1. --- Device Storage ---
	kv, err := storage.Open(ctx, cfg.StorageDriver, cfg.StorageDSN)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	// 2. --- Session & Navigation ---
	a := &app{cfg: cfg, logger: logger, kv: kv, toasts: &notify.Recorder{}, store: store.New()}
	probe := auth.NewManager(kv, nil, auth.WithManagerLogger(logger))
	a.router = navigation.NewRouter(navigation.InitialRoute(probe.HasSession(ctx)))
	a.sessions = auth.NewManager(kv, a.router, auth.WithManagerLogger(logger))

	// 3. --- Transport & Controllers ---
	client, err := transport.New(cfg.APIBaseURL,
		transport.WithTimeout(cfg.RequestTimeout),
		transport.WithAcceptedStatuses(cfg.AcceptedStatuses...),
		transport.WithTokenSource(a.sessions),
		transport.WithSessionExpired(a.sessions.HandleSessionExpired),
		transport.WithLogger(logger),
	)
	if err != nil {
		kv.Close()
		return nil, err
	}
	a.api = api.New(client)

	// 4. --- Hooks ---
	notifier := notify.Multi{a.toasts, notify.SlogNotifier{Logger: logger}}
	a.auth = auth.NewService(a.api.Auth, a.sessions, notifier)
	deps := resource.Deps{Notifier: notifier, Navigator: a.router, Logger: logger}
	if a.orders, err = resource.NewOrders(a.api.Orders, a.store, deps); err != nil {
		kv.Close()
		return nil, err
	}
	if a.products, err = resource.NewProducts(a.api.Products, a.store, deps); err != nil {
		kv.Close()
		return nil, err
	}
	if a.customers, err = resource.NewCustomers(a.api.Customers, a.store, deps); err != nil {
		kv.Close()
		return nil, err
	}
	if a.shippers, err = resource.NewShippers(a.api.Shippers, a.store, deps); err != nil {
		kv.Close()
		return nil, err
	}
	a.dashboard = resource.NewDashboard(a.api.Auth.DashboardStats, a.store, deps)
	return a, nil
}

func (a *app) Close() error {
	return a.kv.Close()
}

// requireSession fails fast instead of sending an unauthenticated request.
func (a *app) requireSession(ctx context.Context) error {
	if !a.sessions.HasSession(ctx) {
		return errNotLoggedIn
	}
	return nil
}
