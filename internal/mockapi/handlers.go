// Package mockapi is a development implementation of the storefront REST API
// the client consumes. It backs local runs and end-to-end tests.
package mockapi

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/01moynul/shopcart-admin/internal/auth"
	"github.com/01moynul/shopcart-admin/internal/database"
	"github.com/01moynul/shopcart-admin/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	DB       *sql.DB
	Driver   string
	Secret   []byte
	TokenTTL time.Duration
	Now      func() time.Time
	Logger   *slog.Logger
}

// NewHandlers prepares the schema on db and returns ready handlers. driver is
// the database/sql driver name db was opened with.
func NewHandlers(ctx context.Context, db *sql.DB, driver string, secret []byte) (*Handlers, error) {
	if len(secret) == 0 {
		return nil, errors.New("mockapi: signing secret is required")
	}
	if err := InitSchema(ctx, db); err != nil {
		return nil, err
	}
	return &Handlers{
		DB:       db,
		Driver:   driver,
		Secret:   secret,
		TokenTTL: auth.DefaultTokenTTL,
		Now:      time.Now,
		Logger:   slog.Default(),
	}, nil
}

func (h *Handlers) now() time.Time {
	if h.Now != nil {
		return h.Now().UTC()
	}
	return time.Now().UTC()
}

// --- Database Helpers ---

func (h *Handlers) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return h.DB.QueryRowContext(ctx, database.Rebind(h.Driver, query), args...)
}

func (h *Handlers) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return h.DB.QueryContext(ctx, database.Rebind(h.Driver, query), args...)
}

func (h *Handlers) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return h.DB.ExecContext(ctx, database.Rebind(h.Driver, query), args...)
}

// filter collects optional equality conditions for list endpoints.
type filter struct {
	clauses []string
	args    []any
}

func (f *filter) eq(column, value string) {
	if value == "" {
		return
	}
	f.clauses = append(f.clauses, column+" = ?")
	f.args = append(f.args, value)
}

func (f filter) where() string {
	if len(f.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(f.clauses, " AND ")
}

// --- Request Helpers ---

// bindJSON decodes and validates the body. On failure it answers 400 with
// the first field message and the full field map.
func bindJSON(c *gin.Context, v any) bool {
	err := c.ShouldBindJSON(v)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		var fe validation.FieldErrors
		if errors.As(validation.Validate(v), &fe) && len(fe) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": firstMessage(fe), "fields": fe})
			return false
		}
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	return false
}

func firstMessage(fe validation.FieldErrors) string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fe[fields[0]]
}

// pageParams reads ?page&limit with defaults 1 and 10.
func pageParams(c *gin.Context) (page, limit int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func totalPages(total, limit int) int {
	return (total + limit - 1) / limit
}

func userIDFrom(c *gin.Context) (string, bool) {
	raw, exists := c.Get("userID")
	if !exists {
		return "", false
	}
	id, ok := raw.(string)
	return id, ok && id != ""
}
