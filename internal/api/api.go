// Package api holds one thin controller per storefront resource. Each method
// translates intent into exactly one transport call; there is no caching,
// retrying or request coalescing here.
package api

import (
	"net/url"
	"strconv"

	"github.com/01moynul/shopcart-admin/internal/transport"
)

// Controllers groups every resource controller over one transport.
type Controllers struct {
	Auth      *AuthController
	Products  *ProductsController
	Orders    *OrdersController
	Customers *CustomersController
	Shippers  *ShippersController
}

// New wires all controllers to the same Requester.
func New(r transport.Requester) *Controllers {
	return &Controllers{
		Auth:      &AuthController{r: r},
		Products:  &ProductsController{r: r},
		Orders:    &OrdersController{r: r},
		Customers: &CustomersController{r: r},
		Shippers:  &ShippersController{r: r},
	}
}

// pageValues renders page/limit, leaving out unset values.
func pageValues(page, limit int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return q
}

func idPath(prefix, id string) string {
	return prefix + url.PathEscape(id)
}
