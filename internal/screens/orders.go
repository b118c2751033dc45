package screens

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/01moynul/shopcart-admin/internal/models"
	"github.com/01moynul/shopcart-admin/internal/navigation"
	"github.com/01moynul/shopcart-admin/internal/resource"
	"github.com/01moynul/shopcart-admin/internal/store"
	"github.com/01moynul/shopcart-admin/internal/validation"
)

// OrderFilter narrows the current page on the client. Empty fields match
// everything.
type OrderFilter struct {
	Status  models.OrderStatus
	Payment models.PaymentStatus
}

func (f OrderFilter) match(o models.Order) bool {
	return (f.Status == "" || o.Status == f.Status) && (f.Payment == "" || o.Payment == f.Payment)
}

// SummaryCard is one tile above the order list.
type SummaryCard struct {
	ID    string
	Title string
	Value int
}

// Orders is the order management list. The server is always asked for every
// status and payment; filtering happens on the fetched page.
type Orders struct {
	pagedList[models.Order, models.OrderQuery, models.CreateOrderInput]
	nav navigation.Navigator

	filterMu sync.RWMutex
	filter   OrderFilter
}

func NewOrders(res *resource.Orders, st *store.Store, nav navigation.Navigator, limit int) *Orders {
	return &Orders{
		pagedList: newPagedList(res, &st.Orders, limit, func(page, limit int) models.OrderQuery {
			return models.OrderQuery{Page: page, Limit: limit}
		}),
		nav: nav,
	}
}

func (s *Orders) SetFilter(f OrderFilter) {
	s.filterMu.Lock()
	s.filter = f
	s.filterMu.Unlock()
}

// Visible returns the orders of the current page that pass the filter.
func (s *Orders) Visible() []models.Order {
	s.filterMu.RLock()
	f := s.filter
	s.filterMu.RUnlock()

	items := s.Snapshot().Items
	out := make([]models.Order, 0, len(items))
	for _, o := range items {
		if f.match(o) {
			out = append(out, o)
		}
	}
	return out
}

// SummaryCards counts the total from the server and the per-status numbers
// of the current page.
func (s *Orders) SummaryCards() []SummaryCard {
	page := s.Snapshot()
	counts := map[models.OrderStatus]int{}
	for _, o := range page.Items {
		counts[o.Status]++
	}
	return []SummaryCard{
		{ID: "total", Title: "Total Orders", Value: page.Total},
		{ID: "pending", Title: "Pending", Value: counts[models.OrderPending]},
		{ID: "delivered", Title: "Delivered", Value: counts[models.OrderDelivered]},
		{ID: "cancelled", Title: "Cancelled", Value: counts[models.OrderCancelled]},
	}
}

// Order finds an order of the current page for the detail view.
func (s *Orders) Order(id string) (models.Order, bool) {
	for _, o := range s.Snapshot().Items {
		if o.ID == id {
			return o, true
		}
	}
	return models.Order{}, false
}

func (s *Orders) OpenCreate() {
	s.nav.Navigate(navigation.RouteCreateOrder)
}

// ShortID is the trailing part of an id shown on order cards.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[len(id)-8:]
}

// OrderTitle is the card heading: the order name, or its short id.
func OrderTitle(o models.Order) string {
	if o.Name != "" {
		return o.Name
	}
	return ShortID(o.ID)
}

// ErrNoProduct is returned when the create-order form was opened without a
// product to order.
var ErrNoProduct = errors.New("screens: no product selected")

// CreateOrder is the create-order form for one product.
type CreateOrder struct {
	orders    *resource.Orders
	shippers  *resource.Shippers
	st        *store.Store
	nav       navigation.Navigator
	productID string
	price     float64

	mu          sync.Mutex
	form        validation.CreateOrderForm
	unsubscribe func()
}

func NewCreateOrder(orders *resource.Orders, shippers *resource.Shippers, st *store.Store, nav navigation.Navigator, productID string, price float64) *CreateOrder {
	s := &CreateOrder{orders: orders, shippers: shippers, st: st, nav: nav, productID: productID, price: price}
	s.form = s.initialForm()
	return s
}

// Mount follows the shipper list in the store and loads it. While no shipper
// is selected, the first shipper to arrive becomes the default.
func (s *CreateOrder) Mount(ctx context.Context) error {
	s.mu.Lock()
	if s.unsubscribe == nil {
		s.unsubscribe = s.st.Subscribe(func(e store.Event) {
			if e == store.EventShippers {
				s.defaultShipper()
			}
		})
	}
	s.mu.Unlock()

	_, err := s.shippers.Fetch(ctx, models.ListQuery{})
	if err != nil && !errors.Is(err, resource.ErrStale) {
		return err
	}
	return nil
}

// Close stops following the shipper list.
func (s *CreateOrder) Close() {
	s.mu.Lock()
	stop := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()
	if stop != nil {
		stop()
	}
}

func (s *CreateOrder) defaultShipper() {
	shippers := s.st.Shippers.Snapshot().Items
	if len(shippers) == 0 {
		return
	}
	s.mu.Lock()
	if s.form.SelectedShipper == "" {
		s.form.SelectedShipper = shippers[0].City
		s.form.ShipmentDetails.ShipperCity = shippers[0].City
	}
	s.mu.Unlock()
}

func (s *CreateOrder) initialForm() validation.CreateOrderForm {
	city := ""
	if shippers := s.st.Shippers.Snapshot().Items; len(shippers) > 0 {
		city = shippers[0].City
	}
	return validation.CreateOrderForm{
		Quantity:        1,
		SelectedShipper: city,
		ShipmentDetails: validation.ShipmentForm{ShipperCity: city},
	}
}

// Form returns the current form values.
func (s *CreateOrder) Form() validation.CreateOrderForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// Reset puts the form back to its initial values.
func (s *CreateOrder) Reset() {
	form := s.initialForm()
	s.mu.Lock()
	s.form = form
	s.mu.Unlock()
}

// Pricing previews what Submit will send.
func (s *CreateOrder) Pricing(form validation.CreateOrderForm) models.Pricing {
	return models.ComputePricing(s.price, form.Quantity, form.OrderTax, form.Shipping)
}

// Submit validates, prices and creates the order, then resets the form and
// opens the order list.
func (s *CreateOrder) Submit(ctx context.Context, form validation.CreateOrderForm) (*models.MessageResponse, error) {
	if s.productID == "" {
		return nil, ErrNoProduct
	}
	s.mu.Lock()
	s.form = form
	s.mu.Unlock()

	if err := validation.Validate(form); err != nil {
		return nil, err
	}
	res, err := s.orders.Create(ctx, form.Input(s.productID, s.price))
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	s.Reset()
	s.nav.Navigate(navigation.RouteOrders)
	return res, nil
}

func (s *CreateOrder) Loading() bool {
	return s.orders.Loading() || s.shippers.Loading()
}
