package mockapi

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/01moynul/shopcart-admin/internal/auth"
	"github.com/01moynul/shopcart-admin/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// --- User Registration ---

// RegisterInput is what the signup screen sends. The confirmation field never
// leaves the client.
type RegisterInput struct {
	UserName string `json:"userName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// Register creates a store owner and signs them in.
func (h *Handlers) Register(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input RegisterInput
	if !bindJSON(c, &input) {
		return
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))

	// 2. --- Reject Duplicate Email ---
	var existing string
	err := h.queryRow(c.Request.Context(), "SELECT id FROM users WHERE email = ?", email).Scan(&existing)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email is already registered"})
		return
	}
	if !errors.Is(err, sql.ErrNoRows) {
		h.Logger.Error("register: lookup failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	// 3. --- Hash the Password ---
	var password models.Password
	if err := password.Set(input.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	// 4. --- Save to Database ---
	user := models.User{ID: uuid.NewString(), UserName: input.UserName, Email: email}
	_, err = h.exec(c.Request.Context(),
		`INSERT INTO users (id, user_name, email, password_hash, phone_number, address, image, created_at)
		VALUES (?, ?, ?, ?, '', '', '', ?)`,
		user.ID, user.UserName, user.Email, password.Hash, h.now().UnixMilli(),
	)
	if err != nil {
		h.Logger.Error("register: insert failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	// 5. --- Issue Token ---
	token, err := auth.GenerateToken(h.Secret, user.ID, h.TokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully",
		"token":   token,
		"user":    user,
	})
}

// --- User Login ---

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handlers) Login(c *gin.Context) {
	var input LoginInput
	if !bindJSON(c, &input) {
		return
	}

	// 1. --- Find User ---
	var user models.User
	var password models.Password
	var address, image sql.NullString
	err := h.queryRow(c.Request.Context(),
		"SELECT id, user_name, email, password_hash, phone_number, address, image FROM users WHERE email = ?",
		strings.ToLower(strings.TrimSpace(input.Email)),
	).Scan(&user.ID, &user.UserName, &user.Email, &password.Hash, &user.PhoneNumber, &address, &image)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		h.Logger.Error("login: lookup failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	user.Address, user.Image = address.String, image.String

	// 2. --- Check Password ---
	match, err := password.Matches(input.Password)
	if err != nil || !match {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	// 3. --- Issue Token ---
	token, err := auth.GenerateToken(h.Secret, user.ID, h.TokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// --- Forgot Password ---

type ForgetPasswordInput struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgetPassword answers the same way whether or not the email exists.
func (h *Handlers) ForgetPassword(c *gin.Context) {
	var input ForgetPasswordInput
	if !bindJSON(c, &input) {
		return
	}
	var id string
	err := h.queryRow(c.Request.Context(), "SELECT id FROM users WHERE email = ?",
		strings.ToLower(strings.TrimSpace(input.Email))).Scan(&id)
	if err == nil {
		h.Logger.Info("password reset requested", "user_id", id)
	} else if !errors.Is(err, sql.ErrNoRows) {
		h.Logger.Error("forget password: lookup failed", "error", err)
	}
	c.JSON(http.StatusOK, gin.H{"message": "If that email is registered, a reset link has been sent"})
}

// --- Update Profile ---

type UpdateProfileInput struct {
	Name        string  `json:"name"`
	Email       string  `json:"email" binding:"omitempty,email"`
	PhoneNumber string  `json:"phoneNumber"`
	Address     string  `json:"address"`
	Image       *string `json:"image"`
}

// UpdateProfile overwrites the non-empty fields of the caller's profile.
func (h *Handlers) UpdateProfile(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	var input UpdateProfileInput
	if !bindJSON(c, &input) {
		return
	}

	// 1. --- Load Current Profile ---
	var user models.User
	var address, image sql.NullString
	err := h.queryRow(c.Request.Context(),
		"SELECT id, user_name, email, phone_number, address, image FROM users WHERE id = ?", userID,
	).Scan(&user.ID, &user.UserName, &user.Email, &user.PhoneNumber, &address, &image)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	user.Address, user.Image = address.String, image.String

	// 2. --- Merge & Save ---
	user = models.UpdateProfileInput{
		Name:        input.Name,
		Email:       strings.ToLower(strings.TrimSpace(input.Email)),
		PhoneNumber: input.PhoneNumber,
		Address:     input.Address,
		Image:       input.Image,
	}.Apply(user)
	_, err = h.exec(c.Request.Context(),
		"UPDATE users SET user_name = ?, email = ?, phone_number = ?, address = ?, image = ? WHERE id = ?",
		user.UserName, user.Email, user.PhoneNumber, user.Address, user.Image, user.ID,
	)
	if err != nil {
		h.Logger.Error("update profile failed", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}
