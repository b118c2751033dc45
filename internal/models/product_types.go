package models

import (
	"time"
)

type ProductStatus string

const (
	ProductActive   ProductStatus = "active"
	ProductInactive ProductStatus = "inactive"
)

// Product mirrors the 'products' resource of the storefront API.
// Image is either a base64 data URI (fresh uploads) or a remote URL.
type Product struct {
	ID          string        `json:"_id"`
	Name        string        `json:"name"`
	Slug        string        `json:"slug,omitempty"`
	Description string        `json:"description"`
	Price       float64       `json:"price"`
	Stock       int           `json:"stock"`
	Available   int           `json:"available"`
	Category    string        `json:"category"`
	SubCategory string        `json:"subCategory"`
	Status      ProductStatus `json:"status"`
	Image       string        `json:"image"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// CreateProductInput is the body of POST /api/products/create.
type CreateProductInput struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Price       float64       `json:"price"`
	Stock       int           `json:"stock"`
	Category    string        `json:"category"`
	SubCategory string        `json:"subCategory"`
	Status      ProductStatus `json:"status"`
	Image       string        `json:"image,omitempty"`
}

// ProductQuery is the query string of GET /api/products/get.
type ProductQuery struct {
	Page   int
	Limit  int
	Status ProductStatus
}
