package api

import (
	"context"

	"github.com/01moynul/shopcart-admin/internal/models"
	"github.com/01moynul/shopcart-admin/internal/transport"
)

const (
	PathCustomersList   = "/api/customers/get"
	PathCustomersCreate = "/api/customers/create"
	PathCustomersUpdate = "/api/customers/update/"
	PathCustomersDelete = "/api/customers/delete/"
)

type customerList struct {
	Customer       []models.Customer `json:"customer"`
	TotalCustomers int               `json:"totalCustomers"`
	TotalPages     int               `json:"totalPages"`
}

type CustomersController struct {
	r transport.Requester
}

func (c *CustomersController) List(ctx context.Context, q models.ListQuery) (models.Page[models.Customer], error) {
	var out customerList
	if err := c.r.Request(ctx, transport.Get, PathCustomersList, pageValues(q.Page, q.Limit), &out); err != nil {
		return models.Page[models.Customer]{}, err
	}
	return models.Page[models.Customer]{Items: out.Customer, Total: out.TotalCustomers, TotalPages: out.TotalPages}, nil
}

func (c *CustomersController) Create(ctx context.Context, in models.CustomerInput) (*models.MessageResponse, error) {
	var out models.MessageResponse
	if err := c.r.Request(ctx, transport.Post, PathCustomersCreate, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *CustomersController) Update(ctx context.Context, id string, in models.CustomerInput) (*models.MessageResponse, error) {
	var out models.MessageResponse
	if err := c.r.Request(ctx, transport.Put, idPath(PathCustomersUpdate, id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *CustomersController) Delete(ctx context.Context, id string) (*models.MessageResponse, error) {
	var out models.MessageResponse
	if err := c.r.Request(ctx, transport.Delete, idPath(PathCustomersDelete, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
