package api

import (
	"context"

	"github.com/01moynul/shopcart-admin/internal/models"
	"github.com/01moynul/shopcart-admin/internal/transport"
)

const (
	PathProductsList   = "/api/products/get"
	PathProductsCreate = "/api/products/create"
)

// productList is the wire envelope of the products list.
type productList struct {
	Products      []models.Product `json:"products"`
	TotalProducts int              `json:"totalProducts"`
	TotalPages    int              `json:"totalPages"`
}

type ProductsController struct {
	r transport.Requester
}

// List always sends status, even when empty, matching the server's expectations.
func (c *ProductsController) List(ctx context.Context, q models.ProductQuery) (models.Page[models.Product], error) {
	params := pageValues(q.Page, q.Limit)
	params.Set("status", string(q.Status))

	var out productList
	if err := c.r.Request(ctx, transport.Get, PathProductsList, params, &out); err != nil {
		return models.Page[models.Product]{}, err
	}
	return models.Page[models.Product]{Items: out.Products, Total: out.TotalProducts, TotalPages: out.TotalPages}, nil
}

func (c *ProductsController) Create(ctx context.Context, in models.CreateProductInput) (*models.MessageResponse, error) {
	var out models.MessageResponse
	if err := c.r.Request(ctx, transport.Post, PathProductsCreate, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
