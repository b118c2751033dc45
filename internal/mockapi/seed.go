package mockapi

import (
	"context"
	"fmt"
	"os"

	"github.com/01moynul/shopcart-admin/internal/models"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// SeedUser is a store owner created with a known password.
type SeedUser struct {
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SeedData is the shape of a seed file.
type SeedData struct {
	Users    []SeedUser                  `json:"users"`
	Products []models.CreateProductInput `json:"products"`
}

// LoadSeedFile reads a JSON seed file.
func LoadSeedFile(path string) (SeedData, error) {
	var data SeedData
	raw, err := os.ReadFile(path)
	if err != nil {
		return data, err
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return data, fmt.Errorf("mockapi: parse seed %s: %w", path, err)
	}
	return data, nil
}

// Seed inserts users and products. Users whose email already exists are
// skipped so a seed can be replayed against a persistent database.
func (h *Handlers) Seed(ctx context.Context, data SeedData) error {
	now := h.now().UnixMilli()
	for _, u := range data.Users {
		var existing int
		if err := h.queryRow(ctx, "SELECT COUNT(*) FROM users WHERE email = ?", u.Email).Scan(&existing); err != nil {
			return err
		}
		if existing > 0 {
			continue
		}
		var password models.Password
		if err := password.Set(u.Password); err != nil {
			return err
		}
		if _, err := h.exec(ctx,
			`INSERT INTO users (id, user_name, email, password_hash, phone_number, address, image, created_at)
			VALUES (?, ?, ?, ?, '', '', '', ?)`,
			uuid.NewString(), u.UserName, u.Email, password.Hash, now,
		); err != nil {
			return fmt.Errorf("mockapi: seed user %s: %w", u.Email, err)
		}
	}

	for i, p := range data.Products {
		status := p.Status
		if status == "" {
			status = models.ProductActive
		}
		id := uuid.NewString()
		// Later entries sort first, matching the newest-first list order.
		created := now + int64(i)
		if _, err := h.exec(ctx,
			"INSERT INTO products ("+productColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
			id, slug.Make(p.Name+" "+id[:8]), p.Name, p.Description, p.Price, p.Stock, p.Stock,
			p.Category, p.SubCategory, status, p.Image, created, created,
		); err != nil {
			return fmt.Errorf("mockapi: seed product %q: %w", p.Name, err)
		}
	}
	h.Logger.Info("seed applied", "users", len(data.Users), "products", len(data.Products))
	return nil
}
