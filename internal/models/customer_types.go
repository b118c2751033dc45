package models

import "time"

// Customer is read-only in the client; totals are maintained by the server.
type Customer struct {
	ID           string    `json:"_id"`
	CustomerName string    `json:"customerName"`
	City         string    `json:"city"`
	Phone        string    `json:"phone"`
	TotalOrders  int       `json:"totalOrders"`
	TotalSpent   float64   `json:"totalSpent"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CustomerInput is the body for customer create and update calls.
type CustomerInput struct {
	CustomerName string `json:"customerName"`
	City         string `json:"city"`
	Phone        string `json:"phone"`
}

// ListQuery is a plain page/limit query.
type ListQuery struct {
	Page  int
	Limit int
}
