package screens

import (
	"context"

	"github.com/01moynul/shopcart-admin/internal/models"
	"github.com/01moynul/shopcart-admin/internal/navigation"
	"github.com/01moynul/shopcart-admin/internal/resource"
	"github.com/01moynul/shopcart-admin/internal/store"
	"github.com/01moynul/shopcart-admin/internal/validation"
)

// Products lists active products.
type Products struct {
	pagedList[models.Product, models.ProductQuery, models.CreateProductInput]
	nav navigation.Navigator
}

func NewProducts(res *resource.Products, st *store.Store, nav navigation.Navigator, limit int) *Products {
	return &Products{
		pagedList: newPagedList(res, &st.Products, limit, func(page, limit int) models.ProductQuery {
			return models.ProductQuery{Page: page, Limit: limit, Status: models.ProductActive}
		}),
		nav: nav,
	}
}

func (s *Products) Items() []models.Product {
	return s.Snapshot().Items
}

// OpenCreate goes to the create-product form.
func (s *Products) OpenCreate() {
	s.nav.Navigate(navigation.RouteCreateProduct)
}

// Open shows the detail of a product on the loaded page. It reports false
// when the product is not there.
func (s *Products) Open(id string) (ProductDetail, bool) {
	for _, p := range s.Items() {
		if p.ID == id {
			s.nav.Navigate(navigation.ProductRoute(id))
			return NewProductDetail(p), true
		}
	}
	return ProductDetail{}, false
}

// --- Product Detail ---

// StockStatus is the badge on the product detail screen.
type StockStatus string

const (
	StockOut StockStatus = "Out of Stock"
	StockLow StockStatus = "Low Stock"
	StockIn  StockStatus = "In Stock"
)

// LowStockThreshold is the stock level below which a product shows as low.
const LowStockThreshold = 10

func StockStatusOf(stock int) StockStatus {
	switch {
	case stock <= 0:
		return StockOut
	case stock < LowStockThreshold:
		return StockLow
	}
	return StockIn
}

const defaultDescription = "No description provided."

// ProductDetail is what the product detail screen renders.
type ProductDetail struct {
	Product     models.Product
	Status      StockStatus
	Description string
	// ListPrice is the struck-through price shown next to the selling price.
	ListPrice float64
}

func NewProductDetail(p models.Product) ProductDetail {
	desc := p.Description
	if desc == "" {
		desc = defaultDescription
	}
	return ProductDetail{
		Product:     p,
		Status:      StockStatusOf(p.Stock),
		Description: desc,
		ListPrice:   p.Price * 1.2,
	}
}

// CreateProduct is the create-product form.
type CreateProduct struct {
	res *resource.Products
}

func NewCreateProduct(res *resource.Products) *CreateProduct {
	return &CreateProduct{res: res}
}

// Submit validates the form and creates the product. Field errors come back
// as validation.FieldErrors and never reach the network. On success the
// hook opens the product list.
func (s *CreateProduct) Submit(ctx context.Context, form validation.CreateProductForm) (*models.MessageResponse, error) {
	if err := validation.Validate(form); err != nil {
		return nil, err
	}
	return s.res.Create(ctx, form.Input())
}

func (s *CreateProduct) Loading() bool {
	return s.res.Loading()
}
