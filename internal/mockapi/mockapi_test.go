package mockapi

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/01moynul/shopcart-admin/internal/database"
	"github.com/01moynul/shopcart-admin/internal/models"
	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
)

type testServer struct {
	h      *Handlers
	router *gin.Engine
}

func newTestServer(t *testing.T, cfg RouterConfig) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := database.Open(database.DriverSQLite, "file::memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	h, err := NewHandlers(context.Background(), db, database.DriverSQLite, []byte("test-secret"))
	if err != nil {
		t.Fatalf("new handlers: %v", err)
	}
	if cfg.AuthBurst == 0 {
		cfg = RouterConfig{AuthEvery: time.Millisecond, AuthBurst: 100}
	}
	return &testServer{h: h, router: SetupRouter(h, cfg)}
}

func (s *testServer) seed(t *testing.T) {
	t.Helper()
	data, err := LoadSeedFile("testdata/seed.json")
	if err != nil {
		t.Fatalf("load seed: %v", err)
	}
	if err := s.h.Seed(context.Background(), data); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return out
}

func (s *testServer) login(t *testing.T) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/login", "", gin.H{"email": "owner@example.com", "password": "secret123"})
	if w.Code != http.StatusOK {
		t.Fatalf("login: %d %s", w.Code, w.Body.String())
	}
	return decode[models.AuthResponse](t, w).Token
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestServer(t, RouterConfig{})

	w := s.do(t, http.MethodPost, "/api/register", "", gin.H{"userName": "Ayesha", "email": "Ayesha@Example.com", "password": "secret123"})
	if w.Code != http.StatusCreated {
		t.Fatalf("register: %d %s", w.Code, w.Body.String())
	}
	res := decode[models.AuthResponse](t, w)
	if res.Token == "" || res.User == nil || res.User.Email != "ayesha@example.com" {
		t.Fatalf("unexpected register response %+v", res)
	}

	w = s.do(t, http.MethodPost, "/api/register", "", gin.H{"userName": "Again", "email": "ayesha@example.com", "password": "secret123"})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected conflict for duplicate email, got %d", w.Code)
	}

	w = s.do(t, http.MethodPost, "/api/login", "", gin.H{"email": "ayesha@example.com", "password": "wrong-password"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad password, got %d", w.Code)
	}

	w = s.do(t, http.MethodPost, "/api/login", "", gin.H{"email": "ayesha@example.com", "password": "secret123"})
	if w.Code != http.StatusOK || decode[models.AuthResponse](t, w).User.UserName != "Ayesha" {
		t.Fatalf("login: %d %s", w.Code, w.Body.String())
	}
}

func TestRegisterValidationMessage(t *testing.T) {
	s := newTestServer(t, RouterConfig{})
	w := s.do(t, http.MethodPost, "/api/register", "", gin.H{"userName": "A", "email": "not-an-email", "password": "secret123"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	body := decode[map[string]any](t, w)
	fields, ok := body["fields"].(map[string]any)
	if !ok || fields["email"] == nil {
		t.Fatalf("expected an email field error, got %v", body)
	}
}

func TestProtectedRoutesRequireBearer(t *testing.T) {
	s := newTestServer(t, RouterConfig{})
	cases := []struct {
		header string
		want   string
	}{
		{"", "Authorization header required"},
		{"Token abc", "Invalid token format (must be Bearer)"},
		{"Bearer not-a-jwt", "Invalid or expired token"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/api/products/get", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%q: expected 401, got %d", tc.header, w.Code)
		}
		if got := decode[map[string]string](t, w)["error"]; got != tc.want {
			t.Fatalf("%q: expected %q, got %q", tc.header, tc.want, got)
		}
	}
}

func TestProductsPagingAndStatusFilter(t *testing.T) {
	s := newTestServer(t, RouterConfig{})
	s.seed(t)
	token := s.login(t)

	type productList struct {
		Products      []models.Product `json:"products"`
		TotalProducts int              `json:"totalProducts"`
		TotalPages    int              `json:"totalPages"`
	}

	w := s.do(t, http.MethodGet, "/api/products/get?page=1&limit=1&status=active", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: %d %s", w.Code, w.Body.String())
	}
	got := decode[productList](t, w)
	if got.TotalProducts != 2 || got.TotalPages != 2 || len(got.Products) != 1 {
		t.Fatalf("unexpected page %+v", got)
	}
	if got.Products[0].Name != "Canvas Tote" || got.Products[0].Slug == "" {
		t.Fatalf("expected newest active product first, got %+v", got.Products[0])
	}

	w = s.do(t, http.MethodGet, "/api/products/get", token, nil)
	if all := decode[productList](t, w); all.TotalProducts != 3 {
		t.Fatalf("expected all three products without a filter, got %d", all.TotalProducts)
	}
}

func TestCreateProductValidation(t *testing.T) {
	s := newTestServer(t, RouterConfig{})
	s.seed(t)
	token := s.login(t)

	w := s.do(t, http.MethodPost, "/api/products/create", token, gin.H{"name": "Mug", "price": 0, "stock": 2, "category": "Home", "subCategory": "Kitchen"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if got := decode[map[string]any](t, w)["error"]; got != "Price must be a positive number" {
		t.Fatalf("unexpected message %v", got)
	}

	w = s.do(t, http.MethodPost, "/api/products/create", token, gin.H{"name": "Mug", "stock": 2, "category": "Home", "subCategory": "Kitchen"})
	if got := decode[map[string]any](t, w)["error"]; w.Code != http.StatusBadRequest || got != "Price is required" {
		t.Fatalf("expected a missing price to be reported, got %d %v", w.Code, got)
	}

	w = s.do(t, http.MethodPost, "/api/products/create", token, gin.H{"name": "Mug", "price": 450, "stock": 2, "category": "Home", "subCategory": "Kitchen", "status": "active"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", w.Code, w.Body.String())
	}
	if decode[models.MessageResponse](t, w).ID == "" {
		t.Fatalf("expected the new id in the response")
	}
}

func orderBody(productID string, qty int, phone string) models.CreateOrderInput {
	return models.NewOrderPayload(productID, 1, qty, 50, 100, "", models.ShipmentDetails{
		Name:        "Bilal",
		Email:       "bilal@example.com",
		Phone:       phone,
		City:        "Karachi",
		Address:     "12 Clifton",
		ShipperCity: "Lahore",
	}, "Lahore")
}

func TestCreateOrderFlow(t *testing.T) {
	s := newTestServer(t, RouterConfig{})
	s.seed(t)
	token := s.login(t)

	products := decode[struct {
		Products []models.Product `json:"products"`
	}](t, s.do(t, http.MethodGet, "/api/products/get?status=active", token, nil))
	tee := products.Products[1]
	if tee.Name != "Cotton Tee" {
		t.Fatalf("unexpected product order %+v", products.Products)
	}

	// 1. Two orders from the same phone roll into one customer.
	for i := 0; i < 2; i++ {
		w := s.do(t, http.MethodPost, "/api/orders/create", token, orderBody(tee.ID, 3, "03001234567"))
		if w.Code != http.StatusCreated {
			t.Fatalf("create order: %d %s", w.Code, w.Body.String())
		}
	}

	orders := decode[struct {
		Orders      []models.Order `json:"orders"`
		TotalOrders int            `json:"totalOrders"`
	}](t, s.do(t, http.MethodGet, "/api/orders/get?page=1&limit=10&status=&payment=", token, nil))
	if orders.TotalOrders != 2 || len(orders.Orders) != 2 {
		t.Fatalf("unexpected orders %+v", orders)
	}
	o := orders.Orders[0]
	if o.Pricing.SubTotal != 3600 || o.Pricing.TotalPrice != 3750 {
		t.Fatalf("expected server-side pricing, got %+v", o.Pricing)
	}
	if o.Status != models.OrderOpen || o.Payment != models.PaymentPending || o.PaymentMethod != models.PaymentCashOnDelivery {
		t.Fatalf("unexpected order state %+v", o)
	}
	if o.ShipmentDetails.ShipperCity != "Lahore" || len(o.Products) != 1 || o.Products[0].ProductQty != 3 {
		t.Fatalf("unexpected order details %+v", o)
	}

	w := s.do(t, http.MethodGet, "/api/orders/get?status=delivered", token, nil)
	if n := decode[struct {
		TotalOrders int `json:"totalOrders"`
	}](t, w).TotalOrders; n != 0 {
		t.Fatalf("expected no delivered orders, got %d", n)
	}

	// 2. Customers.
	customers := decode[struct {
		Customer []models.Customer `json:"customer"`
	}](t, s.do(t, http.MethodGet, "/api/customers/get", token, nil))
	if len(customers.Customer) != 1 || customers.Customer[0].TotalOrders != 2 || customers.Customer[0].TotalSpent != 7500 {
		t.Fatalf("unexpected customers %+v", customers)
	}

	// 3. Dashboard.
	stats := decode[models.DashboardStats](t, s.do(t, http.MethodGet, "/api/orders/dashboard-stats", token, nil))
	if stats.NewOrders.TodayOrders != 2 || stats.NewOrders.TotalPercentage != 100 || stats.TotalSales.TotalSales != 7200 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if len(stats.TopProducts) != 1 || stats.TopProducts[0].TotalSold != 6 || stats.TopProducts[0].Product.Name != "Cotton Tee" {
		t.Fatalf("unexpected top products %+v", stats.TopProducts)
	}

	// 4. Stock is reserved; over-ordering is refused.
	w = s.do(t, http.MethodPost, "/api/orders/create", token, orderBody(tee.ID, 35, "03001234567"))
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for insufficient stock, got %d %s", w.Code, w.Body.String())
	}
	w = s.do(t, http.MethodPost, "/api/orders/create", token, orderBody("missing", 1, "03001234567"))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown product, got %d", w.Code)
	}
}

func TestShipperCRUDIsScopedToOwner(t *testing.T) {
	s := newTestServer(t, RouterConfig{})
	s.seed(t)
	token := s.login(t)

	shipper := gin.H{
		"storeName": "Main", "locationName": "Warehouse", "address": "Plot 4",
		"returnAddress": "Plot 4", "city": "Lahore", "phoneNumber": "03001234567",
	}
	bad := gin.H{
		"storeName": "Main", "locationName": "Warehouse", "address": "Plot 4",
		"returnAddress": "Plot 4", "city": "Lahore", "phoneNumber": "0300-123",
	}
	if w := s.do(t, http.MethodPost, "/api/shipper-info/create", token, bad); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a non-digit phone, got %d", w.Code)
	}
	w := s.do(t, http.MethodPost, "/api/shipper-info/create", token, shipper)
	if w.Code != http.StatusCreated {
		t.Fatalf("create shipper: %d %s", w.Code, w.Body.String())
	}
	id := decode[models.MessageResponse](t, w).ID

	shipper["city"] = "Karachi"
	if w := s.do(t, http.MethodPut, "/api/shipper-info/update/"+id, token, shipper); w.Code != http.StatusOK {
		t.Fatalf("update shipper: %d %s", w.Code, w.Body.String())
	}
	list := decode[struct {
		Shipper       []models.Shipper `json:"shipper"`
		TotalShippers int              `json:"totalShippers"`
	}](t, s.do(t, http.MethodGet, "/api/shipper-info/get", token, nil))
	if list.TotalShippers != 1 || list.Shipper[0].City != "Karachi" || list.Shipper[0].StoreID == "" {
		t.Fatalf("unexpected shippers %+v", list)
	}

	// Another owner cannot see or delete it.
	other := decode[models.AuthResponse](t, s.do(t, http.MethodPost, "/api/register", "",
		gin.H{"userName": "Other", "email": "other@example.com", "password": "secret123"})).Token
	if w := s.do(t, http.MethodDelete, "/api/shipper-info/delete/"+id, other, nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for a foreign shipper, got %d", w.Code)
	}
	if w := s.do(t, http.MethodDelete, "/api/shipper-info/delete/"+id, token, nil); w.Code != http.StatusOK {
		t.Fatalf("delete shipper: %d", w.Code)
	}
}

func TestCustomerUpdateAndDeleteUnknown(t *testing.T) {
	s := newTestServer(t, RouterConfig{})
	s.seed(t)
	token := s.login(t)

	body := gin.H{"customerName": "Sara", "city": "Multan", "phone": "0311"}
	if w := s.do(t, http.MethodPut, "/api/customers/update/nope", token, body); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	w := s.do(t, http.MethodPost, "/api/customers/create", token, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create customer: %d %s", w.Code, w.Body.String())
	}
	id := decode[models.MessageResponse](t, w).ID
	if w := s.do(t, http.MethodDelete, "/api/customers/delete/"+id, token, nil); w.Code != http.StatusOK {
		t.Fatalf("delete customer: %d", w.Code)
	}
	if w := s.do(t, http.MethodDelete, "/api/customers/delete/"+id, token, nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", w.Code)
	}
}

func TestUpdateProfileMergesFields(t *testing.T) {
	s := newTestServer(t, RouterConfig{})
	s.seed(t)
	token := s.login(t)

	w := s.do(t, http.MethodPut, "/api/update", token, gin.H{"name": "New Name", "address": "House 9"})
	if w.Code != http.StatusOK {
		t.Fatalf("update: %d %s", w.Code, w.Body.String())
	}
	w = s.do(t, http.MethodPost, "/api/login", "", gin.H{"email": "owner@example.com", "password": "secret123"})
	user := decode[models.AuthResponse](t, w).User
	if user.UserName != "New Name" || user.Address != "House 9" || user.Email != "owner@example.com" {
		t.Fatalf("unexpected merged profile %+v", user)
	}
}

func TestForgetPasswordDoesNotLeakAccounts(t *testing.T) {
	s := newTestServer(t, RouterConfig{})
	s.seed(t)
	known := s.do(t, http.MethodPost, "/auth/forget-password", "", gin.H{"email": "owner@example.com"})
	unknown := s.do(t, http.MethodPost, "/auth/forget-password", "", gin.H{"email": "nobody@example.com"})
	if known.Code != http.StatusOK || unknown.Code != http.StatusOK || known.Body.String() != unknown.Body.String() {
		t.Fatalf("expected identical answers, got %d %q and %d %q", known.Code, known.Body, unknown.Code, unknown.Body)
	}
}

func TestAuthRoutesAreRateLimited(t *testing.T) {
	s := newTestServer(t, RouterConfig{AuthEvery: time.Hour, AuthBurst: 2})
	body := gin.H{"email": "owner@example.com", "password": "wrong"}
	for i := 0; i < 2; i++ {
		if w := s.do(t, http.MethodPost, "/api/login", "", body); w.Code == http.StatusTooManyRequests {
			t.Fatalf("request %d should not be limited", i+1)
		}
	}
	if w := s.do(t, http.MethodPost, "/api/login", "", body); w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
}

func TestSeedIsReplayable(t *testing.T) {
	s := newTestServer(t, RouterConfig{})
	s.seed(t)
	data := SeedData{Users: []SeedUser{{UserName: "Dup", Email: "owner@example.com", Password: "other123"}}}
	if err := s.h.Seed(context.Background(), data); err != nil {
		t.Fatalf("replay seed: %v", err)
	}
	s.login(t)
}
