package mockapi

import (
	"net/http"
	"time"

	"github.com/01moynul/shopcart-admin/internal/models"
	"github.com/01moynul/shopcart-admin/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// --- Get Customers ---

func (h *Handlers) GetCustomers(c *gin.Context) {
	page, limit := pageParams(c)
	ctx := c.Request.Context()

	var total int
	if err := h.queryRow(ctx, "SELECT COUNT(*) FROM customers").Scan(&total); err != nil {
		h.Logger.Error("customers: count failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	rows, err := h.query(ctx, `SELECT id, customer_name, city, phone, total_orders, total_spent, created_at
		FROM customers ORDER BY created_at DESC, id LIMIT ? OFFSET ?`, limit, (page-1)*limit)
	if err != nil {
		h.Logger.Error("customers: query failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	defer rows.Close()

	customers := []models.Customer{}
	for rows.Next() {
		var cu models.Customer
		var created int64
		if err := rows.Scan(&cu.ID, &cu.CustomerName, &cu.City, &cu.Phone, &cu.TotalOrders, &cu.TotalSpent, &created); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan customer"})
			return
		}
		cu.CreatedAt = time.UnixMilli(created).UTC()
		customers = append(customers, cu)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customer":       customers,
		"totalCustomers": total,
		"totalPages":     totalPages(total, limit),
	})
}

// --- Create Customer ---

func (h *Handlers) CreateCustomer(c *gin.Context) {
	var form validation.CustomerForm
	if !bindJSON(c, &form) {
		return
	}
	id := uuid.NewString()
	_, err := h.exec(c.Request.Context(),
		`INSERT INTO customers (id, customer_name, city, phone, total_orders, total_spent, created_at)
		VALUES (?, ?, ?, ?, 0, 0, ?)`,
		id, form.CustomerName, form.City, form.Phone, h.now().UnixMilli(),
	)
	if err != nil {
		h.Logger.Error("create customer failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create customer"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Customer created successfully", "_id": id})
}

// --- Update Customer ---

func (h *Handlers) UpdateCustomer(c *gin.Context) {
	var form validation.CustomerForm
	if !bindJSON(c, &form) {
		return
	}
	res, err := h.exec(c.Request.Context(),
		"UPDATE customers SET customer_name = ?, city = ?, phone = ? WHERE id = ?",
		form.CustomerName, form.City, form.Phone, c.Param("id"),
	)
	if !h.affected(c, res, err, "Customer") {
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Customer updated successfully"})
}

// --- Delete Customer ---

func (h *Handlers) DeleteCustomer(c *gin.Context) {
	res, err := h.exec(c.Request.Context(), "DELETE FROM customers WHERE id = ?", c.Param("id"))
	if !h.affected(c, res, err, "Customer") {
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}
