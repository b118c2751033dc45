// Package navigation names the app's routes and records where the user is.
package navigation

import "sync"

const (
	RouteLogin          = "/(auth)/login"
	RouteSignup         = "/(auth)/signup"
	RouteForgotPassword = "/(auth)/forgot-password"
	RouteHome           = "/"
	RouteProducts       = "/products"
	RouteCreateProduct  = "/products/create"
	RouteOrders         = "/orders"
	RouteCreateOrder    = "/orders/create"
	RouteCustomers      = "/customers"
	RouteSettings       = "/settings"
	RouteShipper        = "/settings/shipper"
	RouteProfile        = "/settings/profile"
)

// ProductRoute is the detail screen of one product.
func ProductRoute(id string) string {
	return RouteProducts + "/" + id
}

// Navigator moves the user to another screen.
type Navigator interface {
	Navigate(route string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(route string)

func (f NavigatorFunc) Navigate(route string) {
	if f != nil {
		f(route)
	}
}

// Router is an in-process Navigator that keeps the route history.
type Router struct {
	mu      sync.Mutex
	history []string
}

// NewRouter starts at the given route.
func NewRouter(initial string) *Router {
	return &Router{history: []string{initial}}
}

func (r *Router) Navigate(route string) {
	r.mu.Lock()
	r.history = append(r.history, route)
	r.mu.Unlock()
}

// Current returns the route the user is on.
func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.history) == 0 {
		return ""
	}
	return r.history[len(r.history)-1]
}

// History returns a copy of every visited route, oldest first.
func (r *Router) History() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.history...)
}

// InitialRoute picks the first screen from whether a session token exists.
func InitialRoute(hasToken bool) string {
	if hasToken {
		return RouteHome
	}
	return RouteLogin
}
