package mockapi

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/01moynul/shopcart-admin/internal/models"
	"github.com/01moynul/shopcart-admin/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

const productColumns = "id, slug, name, description, price, stock, available, category, sub_category, status, image, created_at, updated_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (models.Product, error) {
	var p models.Product
	var description, image sql.NullString
	var created, updated int64
	err := row.Scan(&p.ID, &p.Slug, &p.Name, &description, &p.Price, &p.Stock, &p.Available,
		&p.Category, &p.SubCategory, &p.Status, &image, &created, &updated)
	if err != nil {
		return p, err
	}
	p.Description, p.Image = description.String, image.String
	p.CreatedAt, p.UpdatedAt = time.UnixMilli(created).UTC(), time.UnixMilli(updated).UTC()
	return p, nil
}

// --- Get Products ---

// GetProducts lists products newest first, optionally filtered by ?status.
func (h *Handlers) GetProducts(c *gin.Context) {
	page, limit := pageParams(c)
	ctx := c.Request.Context()
	var f filter
	f.eq("status", c.Query("status"))

	// 1. --- Count ---
	var total int
	if err := h.queryRow(ctx, "SELECT COUNT(*) FROM products"+f.where(), f.args...).Scan(&total); err != nil {
		h.Logger.Error("products: count failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	// 2. --- Page ---
	args := append(f.args, limit, (page-1)*limit)
	rows, err := h.query(ctx,
		"SELECT "+productColumns+" FROM products"+f.where()+" ORDER BY created_at DESC, id LIMIT ? OFFSET ?", args...)
	if err != nil {
		h.Logger.Error("products: query failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan product"})
			return
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products":      products,
		"totalProducts": total,
		"totalPages":    totalPages(total, limit),
	})
}

// --- Create Product ---

func (h *Handlers) CreateProduct(c *gin.Context) {
	var form validation.CreateProductForm
	if !bindJSON(c, &form) {
		return
	}
	in := form.Input()
	now := h.now()
	id := uuid.NewString()

	_, err := h.exec(c.Request.Context(),
		"INSERT INTO products ("+productColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		id, slug.Make(in.Name+" "+id[:8]), in.Name, in.Description, in.Price, in.Stock, in.Stock,
		in.Category, in.SubCategory, in.Status, in.Image, now.UnixMilli(), now.UnixMilli(),
	)
	if err != nil {
		h.Logger.Error("create product failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Product created successfully", "_id": id})
}
