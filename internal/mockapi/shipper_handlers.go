package mockapi

import (
	"database/sql"
	"net/http"

	"github.com/01moynul/shopcart-admin/internal/models"
	"github.com/01moynul/shopcart-admin/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Shippers are scoped to the signed-in store owner.

func (h *Handlers) GetShippers(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	page, limit := pageParams(c)
	ctx := c.Request.Context()

	var total int
	if err := h.queryRow(ctx, "SELECT COUNT(*) FROM shippers WHERE store_id = ?", userID).Scan(&total); err != nil {
		h.Logger.Error("shippers: count failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	rows, err := h.query(ctx, `SELECT id, store_id, store_name, location_name, address, return_address, city, phone_number
		FROM shippers WHERE store_id = ? ORDER BY created_at, id LIMIT ? OFFSET ?`, userID, limit, (page-1)*limit)
	if err != nil {
		h.Logger.Error("shippers: query failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	defer rows.Close()

	shippers := []models.Shipper{}
	for rows.Next() {
		var s models.Shipper
		if err := rows.Scan(&s.ID, &s.StoreID, &s.StoreName, &s.LocationName, &s.Address, &s.ReturnAddress, &s.City, &s.PhoneNumber); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan shipper"})
			return
		}
		shippers = append(shippers, s)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shipper":       shippers,
		"totalShippers": total,
		"totalPages":    totalPages(total, limit),
	})
}

func (h *Handlers) CreateShipper(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	var form validation.ShipperForm
	if !bindJSON(c, &form) {
		return
	}
	id := uuid.NewString()
	_, err := h.exec(c.Request.Context(),
		`INSERT INTO shippers (id, store_id, store_name, location_name, address, return_address, city, phone_number, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, userID, form.StoreName, form.LocationName, form.Address, form.ReturnAddress, form.City, form.PhoneNumber, h.now().UnixMilli(),
	)
	if err != nil {
		h.Logger.Error("create shipper failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create shipper"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Shipper created successfully", "_id": id})
}

func (h *Handlers) UpdateShipper(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	var form validation.ShipperForm
	if !bindJSON(c, &form) {
		return
	}
	res, err := h.exec(c.Request.Context(),
		`UPDATE shippers SET store_name = ?, location_name = ?, address = ?, return_address = ?, city = ?, phone_number = ?
		WHERE id = ? AND store_id = ?`,
		form.StoreName, form.LocationName, form.Address, form.ReturnAddress, form.City, form.PhoneNumber, c.Param("id"), userID,
	)
	if !h.affected(c, res, err, "Shipper") {
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Shipper updated successfully"})
}

func (h *Handlers) DeleteShipper(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	res, err := h.exec(c.Request.Context(), "DELETE FROM shippers WHERE id = ? AND store_id = ?", c.Param("id"), userID)
	if !h.affected(c, res, err, "Shipper") {
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Shipper deleted successfully"})
}

// affected answers 500 on err and 404 when no row matched.
func (h *Handlers) affected(c *gin.Context, res sql.Result, err error, what string) bool {
	if err != nil {
		h.Logger.Error("write failed", "resource", what, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return false
	}
	n, err := res.RowsAffected()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return false
	}
	if n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
		return false
	}
	return true
}
