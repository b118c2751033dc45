package models

import "testing"

func TestComputePricing(t *testing.T) {
	p := ComputePricing(100, 2, 10, 20)
	if p.SubTotal != 200 {
		t.Fatalf("expected subtotal 200, got %v", p.SubTotal)
	}
	if p.TotalPrice != 230 {
		t.Fatalf("expected total 230, got %v", p.TotalPrice)
	}
	if p.Paid != 0 {
		t.Fatalf("expected paid 0, got %v", p.Paid)
	}
}

func TestNewOrderPayload(t *testing.T) {
	details := ShipmentDetails{Name: "Ali", Email: "ali@example.com", City: "Lahore"}
	payload := NewOrderPayload("p-1", 50, 3, 0, 5, "SAVE", details, "Karachi")

	if payload.PaymentMethod != PaymentCashOnDelivery || payload.Status != OrderOpen {
		t.Fatalf("unexpected defaults: %+v", payload)
	}
	if len(payload.Products) != 1 || payload.Products[0].ProductID != "p-1" || payload.Products[0].ProductQty != 3 {
		t.Fatalf("unexpected products: %+v", payload.Products)
	}
	if payload.Pricing.TotalPrice != 155 {
		t.Fatalf("expected total 155, got %v", payload.Pricing.TotalPrice)
	}
	if payload.Tags == nil {
		t.Fatalf("expected empty tags slice, got nil")
	}
}

func TestNormalizePage(t *testing.T) {
	p := NormalizePage(Page[Order]{Total: 21}, 10)
	if p.Items == nil || len(p.Items) != 0 {
		t.Fatalf("expected empty items, got %#v", p.Items)
	}
	if p.TotalPages != 3 {
		t.Fatalf("expected derived totalPages 3, got %d", p.TotalPages)
	}

	kept := NormalizePage(Page[Order]{Total: 21, TotalPages: 7}, 10)
	if kept.TotalPages != 7 {
		t.Fatalf("expected server totalPages to be kept, got %d", kept.TotalPages)
	}
}

func TestUpdateProfileApply(t *testing.T) {
	img := "https://cdn.example.com/a.png"
	u := User{UserName: "old", Email: "old@example.com", Address: "Street 1"}
	got := UpdateProfileInput{Name: "new", Image: &img}.Apply(u)
	if got.UserName != "new" || got.Email != "old@example.com" || got.Image != img || got.Address != "Street 1" {
		t.Fatalf("unexpected merge result: %+v", got)
	}
}

func TestPasswordMatches(t *testing.T) {
	var p Password
	if err := p.Set("secret123"); err != nil {
		t.Fatalf("set: %v", err)
	}
	ok, err := p.Matches("secret123")
	if err != nil || !ok {
		t.Fatalf("expected match, got %v %v", ok, err)
	}
	ok, err = p.Matches("wrong")
	if err != nil || ok {
		t.Fatalf("expected mismatch, got %v %v", ok, err)
	}
}
