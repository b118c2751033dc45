package mockapi

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/01moynul/shopcart-admin/internal/database"
	"github.com/01moynul/shopcart-admin/internal/models"
	"github.com/01moynul/shopcart-admin/internal/validation"
	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

var (
	errUnknownProduct    = errors.New("product not found")
	errInsufficientStock = errors.New("insufficient stock")
)

// CreateOrderInput is the body of POST /api/orders/create. Pricing is
// recomputed from the catalogue; only tax and shipping are taken as sent.
type CreateOrderInput struct {
	PaymentMethod   string                  `json:"paymentMethod"`
	Status          models.OrderStatus      `json:"status"`
	Products        []models.OrderItem      `json:"products" binding:"required,min=1"`
	PromoCode       string                  `json:"promoCode"`
	ShipmentDetails validation.ShipmentForm `json:"shipmentDetails"`
	ShipperCity     string                  `json:"shipperCity"`
	Pricing         models.Pricing          `json:"pricing"`
}

const orderColumns = "id, name, status, payment, payment_method, shipment_json, sub_total, order_tax, shipping, paid, total_price, tracking_id, created_at, updated_at"

func scanOrder(row rowScanner) (models.Order, error) {
	var o models.Order
	var shipment []byte
	var tracking sql.NullString
	var created, updated int64
	err := row.Scan(&o.ID, &o.Name, &o.Status, &o.Payment, &o.PaymentMethod, &shipment,
		&o.Pricing.SubTotal, &o.Pricing.OrderTax, &o.Pricing.Shipping, &o.Pricing.Paid, &o.Pricing.TotalPrice,
		&tracking, &created, &updated)
	if err != nil {
		return o, err
	}
	if err := json.Unmarshal(shipment, &o.ShipmentDetails); err != nil {
		return o, fmt.Errorf("order %s: shipment details: %w", o.ID, err)
	}
	if tracking.Valid {
		o.TrackingID = &tracking.String
	}
	o.CreatedAt, o.UpdatedAt = time.UnixMilli(created).UTC(), time.UnixMilli(updated).UTC()
	return o, nil
}

// --- Get Orders ---

// GetOrders lists orders newest first. Empty ?status and ?payment mean any.
func (h *Handlers) GetOrders(c *gin.Context) {
	page, limit := pageParams(c)
	ctx := c.Request.Context()
	var f filter
	f.eq("status", c.Query("status"))
	f.eq("payment", c.Query("payment"))

	// 1. --- Count ---
	var total int
	if err := h.queryRow(ctx, "SELECT COUNT(*) FROM orders"+f.where(), f.args...).Scan(&total); err != nil {
		h.Logger.Error("orders: count failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	// 2. --- Page ---
	orders, err := h.loadOrders(ctx, f, limit, (page-1)*limit)
	if err != nil {
		h.Logger.Error("orders: query failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders":      orders,
		"totalOrders": total,
		"totalPages":  totalPages(total, limit),
	})
}

// loadOrders reads one page of orders, then their line items. The two reads
// are sequential because sqlite pools hold a single connection.
func (h *Handlers) loadOrders(ctx context.Context, f filter, limit, offset int) ([]models.Order, error) {
	args := append(f.args, limit, offset)
	rows, err := h.query(ctx,
		"SELECT "+orderColumns+" FROM orders"+f.where()+" ORDER BY created_at DESC, id LIMIT ? OFFSET ?", args...)
	if err != nil {
		return nil, err
	}
	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for i := range orders {
		items, err := h.loadOrderItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Products = items
	}
	return orders, nil
}

func (h *Handlers) loadOrderItems(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	rows, err := h.query(ctx, "SELECT product_id, product_qty FROM order_items WHERE order_id = ?", orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ProductID, &item.ProductQty); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// --- Create Order ---

// CreateOrder stores the order, reserves stock and rolls the buyer into the
// customers table.
func (h *Handlers) CreateOrder(c *gin.Context) {
	// 1. --- Bind & Validate ---
	var input CreateOrderInput
	if !bindJSON(c, &input) {
		return
	}
	for _, item := range input.Products {
		if item.ProductID == "" || item.ProductQty < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Each product needs an id and a quantity of at least 1"})
			return
		}
	}
	if input.Pricing.OrderTax < 0 || input.Pricing.Shipping < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tax and shipping cannot be negative"})
		return
	}
	details := models.ShipmentDetails(input.ShipmentDetails)
	if input.ShipperCity != "" {
		details.ShipperCity = input.ShipperCity
	}
	shipment, err := json.Marshal(details)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode shipment details"})
		return
	}
	status := input.Status
	if status == "" {
		status = models.OrderOpen
	}
	method := input.PaymentMethod
	if method == "" {
		method = models.PaymentCashOnDelivery
	}

	// 2. --- Transaction ---
	ctx := c.Request.Context()
	tx, err := h.DB.BeginTx(ctx, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}
	defer tx.Rollback()
	q := func(s string) string { return database.Rebind(h.Driver, s) }

	// 3. --- Price Lines & Reserve Stock ---
	var subTotal float64
	for _, item := range input.Products {
		var price float64
		var available int
		err := tx.QueryRowContext(ctx, q("SELECT price, available FROM products WHERE id = ?"), item.ProductID).Scan(&price, &available)
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("%s: %s", errUnknownProduct, item.ProductID)})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		if available < item.ProductQty {
			c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("%s for product %s", errInsufficientStock, item.ProductID)})
			return
		}
		if _, err := tx.ExecContext(ctx, q("UPDATE products SET available = available - ?, updated_at = ? WHERE id = ?"),
			item.ProductQty, h.now().UnixMilli(), item.ProductID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reserve stock"})
			return
		}
		subTotal += price * float64(item.ProductQty)
	}
	pricing := models.Pricing{
		SubTotal:   subTotal,
		OrderTax:   input.Pricing.OrderTax,
		Shipping:   input.Pricing.Shipping,
		TotalPrice: subTotal + input.Pricing.OrderTax + input.Pricing.Shipping,
	}

	// 4. --- Insert Order & Items ---
	now := h.now().UnixMilli()
	id := uuid.NewString()
	name := slug.Make("order " + details.Name + " " + id[:8])
	_, err = tx.ExecContext(ctx, q(`INSERT INTO orders (id, name, status, payment, payment_method, promo_code, shipper_city,
		shipment_json, sub_total, order_tax, shipping, paid, total_price, tracking_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NULL, ?, ?)`),
		id, name, status, models.PaymentPending, method, input.PromoCode, details.ShipperCity,
		string(shipment), pricing.SubTotal, pricing.OrderTax, pricing.Shipping, pricing.Paid, pricing.TotalPrice, now, now,
	)
	if err != nil {
		h.Logger.Error("create order: insert failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}
	for _, item := range input.Products {
		if _, err := tx.ExecContext(ctx, q("INSERT INTO order_items (order_id, product_id, product_qty) VALUES (?, ?, ?)"),
			id, item.ProductID, item.ProductQty); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save order items"})
			return
		}
	}

	// 5. --- Roll Up Customer ---
	if err := upsertCustomer(ctx, tx, q, details, pricing.TotalPrice, now); err != nil {
		h.Logger.Error("create order: customer roll-up failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer"})
		return
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit order"})
		return
	}
	h.Logger.Info("order created", "order_id", id, "total", pricing.TotalPrice)
	c.JSON(http.StatusCreated, gin.H{"message": "Order created successfully", "_id": id})
}

// upsertCustomer matches buyers by phone number.
func upsertCustomer(ctx context.Context, tx *sql.Tx, q func(string) string, d models.ShipmentDetails, spent float64, now int64) error {
	phone := strings.TrimSpace(d.Phone)
	var id string
	err := tx.QueryRowContext(ctx, q("SELECT id FROM customers WHERE phone = ?"), phone).Scan(&id)
	switch {
	case err == nil:
		_, err = tx.ExecContext(ctx, q("UPDATE customers SET total_orders = total_orders + 1, total_spent = total_spent + ? WHERE id = ?"), spent, id)
		return err
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx, q(`INSERT INTO customers (id, customer_name, city, phone, total_orders, total_spent, created_at)
			VALUES (?, ?, ?, ?, 1, ?, ?)`), uuid.NewString(), d.Name, d.City, phone, spent, now)
		return err
	default:
		return err
	}
}

// --- Dashboard Stats ---

const topProductsLimit = 5

// DashboardStats summarises orders. Percentages are today's share of the
// all-time figure.
func (h *Handlers) DashboardStats(c *gin.Context) {
	ctx := c.Request.Context()
	now := h.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).UnixMilli()

	var stats models.DashboardStats
	var totalOrders int
	var todaySales, todayRevenue float64

	// 1. --- Orders & Sales ---
	err := h.queryRow(ctx, `SELECT COUNT(*), COALESCE(SUM(sub_total), 0),
		COALESCE(SUM(CASE WHEN created_at >= ? THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN created_at >= ? THEN sub_total ELSE 0 END), 0)
		FROM orders`, today, today,
	).Scan(&totalOrders, &stats.TotalSales.TotalSales, &stats.NewOrders.TodayOrders, &todaySales)
	if err != nil {
		h.Logger.Error("dashboard: order totals failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	// 2. --- Revenue (delivered orders) ---
	err = h.queryRow(ctx, `SELECT COALESCE(SUM(total_price), 0),
		COALESCE(SUM(CASE WHEN created_at >= ? THEN total_price ELSE 0 END), 0)
		FROM orders WHERE status = ?`, today, models.OrderDelivered,
	).Scan(&stats.TotalRevenue.TotalRevenue, &todayRevenue)
	if err != nil {
		h.Logger.Error("dashboard: revenue failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	stats.NewOrders.TotalPercentage = percentOf(float64(stats.NewOrders.TodayOrders), float64(totalOrders))
	stats.TotalSales.TotalPercentage = percentOf(todaySales, stats.TotalSales.TotalSales)
	stats.TotalRevenue.TotalPercentage = percentOf(todayRevenue, stats.TotalRevenue.TotalRevenue)

	// 3. --- Top Products ---
	top, err := h.topProducts(ctx)
	if err != nil {
		h.Logger.Error("dashboard: top products failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	stats.TopProducts = top

	c.JSON(http.StatusOK, stats)
}

func (h *Handlers) topProducts(ctx context.Context) ([]models.TopProduct, error) {
	rows, err := h.query(ctx, `SELECT product_id, SUM(product_qty) AS sold FROM order_items
		GROUP BY product_id ORDER BY sold DESC, product_id LIMIT ?`, topProductsLimit)
	if err != nil {
		return nil, err
	}
	top := []models.TopProduct{}
	for rows.Next() {
		var t models.TopProduct
		if err := rows.Scan(&t.Product.ID, &t.TotalSold); err != nil {
			rows.Close()
			return nil, err
		}
		top = append(top, t)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for i := range top {
		p, err := scanProduct(h.queryRow(ctx, "SELECT "+productColumns+" FROM products WHERE id = ?", top[i].Product.ID))
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		if err == nil {
			top[i].Product = p
		}
	}
	return top, nil
}

func percentOf(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole * 100
}
