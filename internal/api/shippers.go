package api

import (
	"context"

	"github.com/01moynul/shopcart-admin/internal/models"
	"github.com/01moynul/shopcart-admin/internal/transport"
)

const (
	PathShippersList   = "/api/shipper-info/get"
	PathShippersCreate = "/api/shipper-info/create"
	PathShippersUpdate = "/api/shipper-info/update/"
	PathShippersDelete = "/api/shipper-info/delete/"
)

type shipperList struct {
	Shipper       []models.Shipper `json:"shipper"`
	TotalShippers int              `json:"totalShippers"`
	TotalPages    int              `json:"totalPages"`
}

type ShippersController struct {
	r transport.Requester
}

func (c *ShippersController) List(ctx context.Context, q models.ListQuery) (models.Page[models.Shipper], error) {
	var out shipperList
	if err := c.r.Request(ctx, transport.Get, PathShippersList, pageValues(q.Page, q.Limit), &out); err != nil {
		return models.Page[models.Shipper]{}, err
	}
	return models.Page[models.Shipper]{Items: out.Shipper, Total: out.TotalShippers, TotalPages: out.TotalPages}, nil
}

func (c *ShippersController) Create(ctx context.Context, in models.Shipper) (*models.MessageResponse, error) {
	var out models.MessageResponse
	if err := c.r.Request(ctx, transport.Post, PathShippersCreate, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *ShippersController) Update(ctx context.Context, id string, in models.Shipper) (*models.MessageResponse, error) {
	var out models.MessageResponse
	if err := c.r.Request(ctx, transport.Put, idPath(PathShippersUpdate, id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *ShippersController) Delete(ctx context.Context, id string) (*models.MessageResponse, error) {
	var out models.MessageResponse
	if err := c.r.Request(ctx, transport.Delete, idPath(PathShippersDelete, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
