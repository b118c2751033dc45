package mockapi

import (
	"net/http"
	"time"

	"github.com/01moynul/shopcart-admin/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RouterConfig tunes the cross-cutting middleware.
type RouterConfig struct {
	AllowedOrigin string        // CORS origin; empty allows any
	AuthEvery     time.Duration // refill interval of the auth rate limit
	AuthBurst     int
}

// DefaultRouterConfig allows five quick auth attempts, then one every 2s.
var DefaultRouterConfig = RouterConfig{AuthEvery: 2 * time.Second, AuthBurst: 5}

// CORSMiddleware lets a browser-hosted client talk to the API.
func CORSMiddleware(origin string) gin.HandlerFunc {
	if origin == "" {
		origin = "*"
	}
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Authorization, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		// Preflight requests never reach the handlers.
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// SetupRouter wires every endpoint the storefront client calls.
func SetupRouter(h *Handlers, cfg RouterConfig) *gin.Engine {
	// Share the custom validation rules with gin's binding engine.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterRules(v)
	}

	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(h.Logger), CORSMiddleware(cfg.AllowedOrigin))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong!"})
	})

	// --- Auth Routes (Public, rate limited) ---
	limiter := NewRateLimiter(cfg.AuthEvery, cfg.AuthBurst)
	router.POST("/api/login", limiter.Middleware(), h.Login)
	router.POST("/api/register", limiter.Middleware(), h.Register)
	router.POST("/auth/forget-password", limiter.Middleware(), h.ForgetPassword)

	// --- Protected Routes (Login Required) ---
	api := router.Group("/api")
	api.Use(AuthMiddleware(h.Secret))
	{
		api.PUT("/update", h.UpdateProfile)

		// --- Product Routes ---
		api.GET("/products/get", h.GetProducts)
		api.POST("/products/create", h.CreateProduct)

		// --- Order Routes ---
		api.GET("/orders/get", h.GetOrders)
		api.POST("/orders/create", h.CreateOrder)
		api.GET("/orders/dashboard-stats", h.DashboardStats)

		// --- Customer Routes ---
		api.GET("/customers/get", h.GetCustomers)
		api.POST("/customers/create", h.CreateCustomer)
		api.PUT("/customers/update/:id", h.UpdateCustomer)
		api.DELETE("/customers/delete/:id", h.DeleteCustomer)

		// --- Shipper Routes ---
		api.GET("/shipper-info/get", h.GetShippers)
		api.POST("/shipper-info/create", h.CreateShipper)
		api.PUT("/shipper-info/update/:id", h.UpdateShipper)
		api.DELETE("/shipper-info/delete/:id", h.DeleteShipper)
	}

	return router
}
