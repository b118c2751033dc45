package validation

import "github.com/01moynul/shopcart-admin/internal/models"

// --- Auth Forms ---

type LoginForm struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

func (LoginForm) Messages() map[string]string {
	return map[string]string{
		"email.required":    "Email is required",
		"password.required": "Password is required",
		"password.min":      "Password must be at least 6 characters",
	}
}

func (f LoginForm) Input() models.LoginInput {
	return models.LoginInput{Email: f.Email, Password: f.Password}
}

type SignupForm struct {
	UserName        string `json:"userName" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
}

func (SignupForm) Messages() map[string]string {
	return map[string]string{
		"userName.required":        "Username is required",
		"email.required":           "Email is required",
		"password.required":        "Password is required",
		"password.min":             "Password must be at least 6 characters",
		"confirmPassword.required": "Confirm your password",
		"confirmPassword.eqfield":  "Passwords must match",
	}
}

// Input drops the confirmation; the server never sees it.
func (f SignupForm) Input() models.SignupInput {
	return models.SignupInput{UserName: f.UserName, Email: f.Email, Password: f.Password}
}

type ForgotPasswordForm struct {
	Email string `json:"email" binding:"required,email"`
}

func (ForgotPasswordForm) Messages() map[string]string {
	return map[string]string{"email.required": "Email is required"}
}

func (f ForgotPasswordForm) Input() models.ForgetPasswordInput {
	return models.ForgetPasswordInput{Email: f.Email}
}

type ProfileForm struct {
	Name        string  `json:"name" binding:"required"`
	Email       string  `json:"email" binding:"required,email"`
	PhoneNumber string  `json:"phoneNumber" binding:"required"`
	Address     string  `json:"address" binding:"required"`
	Image       *string `json:"image"`
}

func (ProfileForm) Messages() map[string]string {
	return map[string]string{
		"name.required":        "Name is required",
		"email.required":       "Email is required",
		"phoneNumber.required": "Phone number is required",
		"address.required":     "Address is required",
	}
}

func (f ProfileForm) Input() models.UpdateProfileInput {
	return models.UpdateProfileInput{
		Name:        f.Name,
		Email:       f.Email,
		PhoneNumber: f.PhoneNumber,
		Address:     f.Address,
		Image:       f.Image,
	}
}

// --- Catalog Forms ---

// CreateProductForm keeps price and stock as pointers so a blank input is
// told apart from a zero.
type CreateProductForm struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" binding:"required,gt=0"`
	Stock       *int     `json:"stock" binding:"required,min=1"`
	Category    string   `json:"category" binding:"required"`
	SubCategory string   `json:"subCategory" binding:"required"`
	Image       string   `json:"image"`
}

func (CreateProductForm) Messages() map[string]string {
	return map[string]string{
		"name.required":        "Name is required",
		"price.required":       "Price is required",
		"price.gt":             "Price must be a positive number",
		"stock.required":       "Stock is required",
		"stock.min":            "Stock must be at least 1",
		"category.required":    "Category is required",
		"subCategory.required": "Subcategory is required",
	}
}

// Input builds the create body. New products are listed as active.
func (f CreateProductForm) Input() models.CreateProductInput {
	var price float64
	if f.Price != nil {
		price = *f.Price
	}
	var stock int
	if f.Stock != nil {
		stock = *f.Stock
	}
	return models.CreateProductInput{
		Name:        f.Name,
		Description: f.Description,
		Price:       price,
		Stock:       stock,
		Category:    f.Category,
		SubCategory: f.SubCategory,
		Status:      models.ProductActive,
		Image:       f.Image,
	}
}

// --- Order Forms ---

type ShipmentForm struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone" binding:"required"`
	City        string `json:"city" binding:"required"`
	Address     string `json:"address" binding:"required"`
	ShipperCity string `json:"shipperCity" binding:"required"`
}

type CreateOrderForm struct {
	ShipmentDetails ShipmentForm `json:"shipmentDetails"`
	OrderTax        float64      `json:"orderTax" binding:"min=0"`
	Shipping        float64      `json:"shipping" binding:"min=0"`
	PromoCode       string       `json:"promoCode"`
	Quantity        int          `json:"quantity" binding:"min=1"`
	SelectedShipper string       `json:"selectedShipper" binding:"required"`
}

func (CreateOrderForm) Messages() map[string]string {
	return map[string]string{
		"shipmentDetails.name.required":        "Name is required",
		"shipmentDetails.email.required":       "Email is required",
		"shipmentDetails.email.email":          "Invalid email",
		"shipmentDetails.phone.required":       "Phone is required",
		"shipmentDetails.city.required":        "City is required",
		"shipmentDetails.address.required":     "Address is required",
		"shipmentDetails.shipperCity.required": "Shipper city is required",
		"orderTax.min":                         "Invalid tax",
		"shipping.min":                         "Invalid shipping",
		"quantity.min":                         "Quantity must be at least 1",
		"selectedShipper.required":             "Select a shipper",
	}
}

// Input prices the order for one product line. The top-level shipperCity
// comes from the selected shipper, not from the shipment details.
func (f CreateOrderForm) Input(productID string, price float64) models.CreateOrderInput {
	details := models.ShipmentDetails(f.ShipmentDetails)
	return models.NewOrderPayload(productID, price, f.Quantity, f.OrderTax, f.Shipping, f.PromoCode, details, f.SelectedShipper)
}

// --- Settings Forms ---

type ShipperForm struct {
	StoreName     string `json:"storeName" binding:"required"`
	LocationName  string `json:"locationName" binding:"required"`
	Address       string `json:"address" binding:"required"`
	ReturnAddress string `json:"returnAddress" binding:"required"`
	City          string `json:"city" binding:"required"`
	PhoneNumber   string `json:"phoneNumber" binding:"required,digits,min=11,max=13"`
}

func (ShipperForm) Messages() map[string]string {
	return map[string]string{
		"storeName.required":     "Store is required",
		"locationName.required":  "Location is required",
		"address.required":       "Address is required",
		"returnAddress.required": "Return Address is required",
		"city.required":          "City is required",
		"phoneNumber.required":   "Phone Number is required",
		"phoneNumber.digits":     "Phone Number must contain only numbers",
		"phoneNumber.min":        "Phone Number must be at least 11 digits",
		"phoneNumber.max":        "Phone Number cannot be more than 13 digits",
	}
}

func (f ShipperForm) Input() models.Shipper {
	return models.Shipper{
		StoreName:     f.StoreName,
		LocationName:  f.LocationName,
		Address:       f.Address,
		ReturnAddress: f.ReturnAddress,
		City:          f.City,
		PhoneNumber:   f.PhoneNumber,
	}
}

type CustomerForm struct {
	CustomerName string `json:"customerName" binding:"required"`
	City         string `json:"city" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
}

func (f CustomerForm) Input() models.CustomerInput {
	return models.CustomerInput(f)
}
