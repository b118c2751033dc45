// Package store is the single shared state container the screens read from.
// Each resource owns one slice; writes overwrite, they never merge.
package store

import (
	"sync"

	"github.com/01moynul/shopcart-admin/internal/models"
)

// Slice holds the last applied page of one resource.
type Slice[T any] struct {
	mu      sync.RWMutex
	page    models.Page[T]
	applied uint64
	onSet   func()
}

// Apply overwrites the slice with page unless a newer request already wrote
// to it. seq must come from the owner's monotonically increasing counter; 0
// always applies. It reports whether the page was stored.
func (s *Slice[T]) Apply(seq uint64, page models.Page[T]) bool {
	s.mu.Lock()
	if seq != 0 && seq < s.applied {
		s.mu.Unlock()
		return false
	}
	if seq > s.applied {
		s.applied = seq
	}
	if page.Items == nil {
		page.Items = []T{}
	}
	s.page = page
	notify := s.onSet
	s.mu.Unlock()

	if notify != nil {
		notify()
	}
	return true
}

// Snapshot returns a copy that is safe to read while fetches continue.
func (s *Slice[T]) Snapshot() models.Page[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.page
	out.Items = append(make([]T, 0, len(s.page.Items)), s.page.Items...)
	return out
}

// Len is the number of items currently held.
func (s *Slice[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.page.Items)
}

// Event names which part of the store changed.
type Event string

const (
	EventOrders    Event = "orders"
	EventProducts  Event = "products"
	EventCustomers Event = "customers"
	EventShippers  Event = "shippers"
	EventDashboard Event = "dashboard"
)

// Store is the application state shared by all screens.
type Store struct {
	Orders    Slice[models.Order]
	Products  Slice[models.Product]
	Customers Slice[models.Customer]
	Shippers  Slice[models.Shipper]

	mu        sync.RWMutex
	dashboard models.DashboardStats
	hasStats  bool

	subMu     sync.Mutex
	nextSubID int
	subs      map[int]func(Event)
}

func New() *Store {
	s := &Store{subs: map[int]func(Event){}}
	s.Orders.onSet = func() { s.publish(EventOrders) }
	s.Products.onSet = func() { s.publish(EventProducts) }
	s.Customers.onSet = func() { s.publish(EventCustomers) }
	s.Shippers.onSet = func() { s.publish(EventShippers) }
	return s
}

// --- Actions ---

func (s *Store) SetOrders(seq uint64, page models.Page[models.Order]) bool {
	return s.Orders.Apply(seq, page)
}

func (s *Store) SetProducts(seq uint64, page models.Page[models.Product]) bool {
	return s.Products.Apply(seq, page)
}

func (s *Store) SetCustomers(seq uint64, page models.Page[models.Customer]) bool {
	return s.Customers.Apply(seq, page)
}

func (s *Store) SetShippers(seq uint64, page models.Page[models.Shipper]) bool {
	return s.Shippers.Apply(seq, page)
}

func (s *Store) SetDashboard(stats models.DashboardStats) {
	s.mu.Lock()
	s.dashboard = stats
	s.hasStats = true
	s.mu.Unlock()
	s.publish(EventDashboard)
}

// Dashboard returns the last stored stats and whether any were stored.
func (s *Store) Dashboard() (models.DashboardStats, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := s.dashboard
	if s.dashboard.TopProducts != nil {
		stats.TopProducts = append(make([]models.TopProduct, 0, len(s.dashboard.TopProducts)), s.dashboard.TopProducts...)
	}
	return stats, s.hasStats
}

// --- Subscriptions ---

// Subscribe registers fn to run after every write. The returned func
// removes it.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	if s.subs == nil {
		s.subs = map[int]func(Event){}
	}
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) publish(e Event) {
	s.subMu.Lock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn(e)
	}
}
