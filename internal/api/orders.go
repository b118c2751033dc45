package api

import (
	"context"

	"github.com/01moynul/shopcart-admin/internal/models"
	"github.com/01moynul/shopcart-admin/internal/transport"
)

const (
	PathOrdersList   = "/api/orders/get"
	PathOrdersCreate = "/api/orders/create"
)

type orderList struct {
	Orders      []models.Order `json:"orders"`
	TotalOrders int            `json:"totalOrders"`
	TotalPages  int            `json:"totalPages"`
}

type OrdersController struct {
	r transport.Requester
}

// List sends status and payment as given; empty strings mean "any".
func (c *OrdersController) List(ctx context.Context, q models.OrderQuery) (models.Page[models.Order], error) {
	params := pageValues(q.Page, q.Limit)
	params.Set("status", string(q.Status))
	params.Set("payment", string(q.Payment))

	var out orderList
	if err := c.r.Request(ctx, transport.Get, PathOrdersList, params, &out); err != nil {
		return models.Page[models.Order]{}, err
	}
	return models.Page[models.Order]{Items: out.Orders, Total: out.TotalOrders, TotalPages: out.TotalPages}, nil
}

func (c *OrdersController) Create(ctx context.Context, in models.CreateOrderInput) (*models.MessageResponse, error) {
	var out models.MessageResponse
	if err := c.r.Request(ctx, transport.Post, PathOrdersCreate, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
