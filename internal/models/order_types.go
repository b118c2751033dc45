package models

import (
	"time"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderOpen       OrderStatus = "open"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// PaymentCashOnDelivery is the only payment method the create-order flow offers.
const PaymentCashOnDelivery = "cod"

// Order is the model for the 'orders' resource.
type Order struct {
	ID              string          `json:"_id"`
	Name            string          `json:"name"`
	Status          OrderStatus     `json:"status"`
	Payment         PaymentStatus   `json:"payment"`
	PaymentMethod   string          `json:"paymentMethod"`
	Products        []OrderItem     `json:"products"`
	ShipmentDetails ShipmentDetails `json:"shipmentDetails"`
	Pricing         Pricing         `json:"pricing"`
	TrackingID      *string         `json:"trackingId,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// OrderItem references a product by id. The client never joins it against
// the products slice.
type OrderItem struct {
	ProductID  string `json:"productId"`
	ProductQty int    `json:"productQty"`
}

type ShipmentDetails struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	City        string `json:"city"`
	Address     string `json:"address"`
	ShipperCity string `json:"shipperCity"`
}

type Pricing struct {
	SubTotal   float64 `json:"subTotal"`
	OrderTax   float64 `json:"orderTax"`
	Shipping   float64 `json:"shipping"`
	Paid       float64 `json:"paid"`
	TotalPrice float64 `json:"totalPrice"`
}

// CreateOrderInput is the body of POST /api/orders/create.
type CreateOrderInput struct {
	ClientSecret    string          `json:"clientSecret"`
	PaymentMethod   string          `json:"paymentMethod"`
	Status          OrderStatus     `json:"status"`
	Tags            []string        `json:"tags"`
	Products        []OrderItem     `json:"products"`
	PromoCode       string          `json:"promoCode"`
	ShipmentDetails ShipmentDetails `json:"shipmentDetails"`
	ShipperCity     string          `json:"shipperCity"`
	Pricing         Pricing         `json:"pricing"`
}

// OrderQuery is the query string of GET /api/orders/get. Empty Status and
// Payment mean "any".
type OrderQuery struct {
	Page    int
	Limit   int
	Status  OrderStatus
	Payment PaymentStatus
}

// ComputePricing prices a single-product order:
// subTotal = price * quantity, totalPrice = subTotal + orderTax + shipping.
func ComputePricing(price float64, quantity int, orderTax, shipping float64) Pricing {
	subTotal := price * float64(quantity)
	return Pricing{
		SubTotal:   subTotal,
		OrderTax:   orderTax,
		Shipping:   shipping,
		Paid:       0,
		TotalPrice: subTotal + orderTax + shipping,
	}
}

// NewOrderPayload builds the create-order body for one product line.
// New orders are always cash-on-delivery and start "open".
func NewOrderPayload(productID string, price float64, quantity int, orderTax, shipping float64, promoCode string, details ShipmentDetails, shipperCity string) CreateOrderInput {
	return CreateOrderInput{
		ClientSecret:  "",
		PaymentMethod: PaymentCashOnDelivery,
		Status:        OrderOpen,
		Tags:          []string{},
		Products: []OrderItem{
			{ProductID: productID, ProductQty: quantity},
		},
		PromoCode:       promoCode,
		ShipmentDetails: details,
		ShipperCity:     shipperCity,
		Pricing:         ComputePricing(price, quantity, orderTax, shipping),
	}
}
