package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is how long an issued token stays valid.
const DefaultTokenTTL = 72 * time.Hour

// GenerateToken creates a signed HS256 JWT for a given user ID.
func GenerateToken(secret []byte, userID string, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("empty signing secret")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	now := time.Now()

	// 1. Create the claims.
	claims := jwt.MapClaims{
		"sub": userID,              // "sub" (Subject) is the standard claim for User ID
		"exp": now.Add(ttl).Unix(), // Expiry
		"iat": now.Unix(),          // "iat" (Issued At)
	}

	// 2. Sign it using HS256.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken parses and validates a JWT token string.
// It returns the user ID (subject) if the token is valid.
func ValidateToken(secret []byte, tokenString string) (string, error) {
	// 1. Parse the token string, rejecting anything not signed with HMAC.
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return "", err // Token parsing failed (e.g., expired, malformed)
	}
	if !token.Valid {
		return "", errors.New("invalid token")
	}

	// 2. Get the user ID ("sub") from the claims.
	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", errors.New("invalid subject claim")
	}
	return sub, nil
}

// ExpiresAt reads the exp claim without verifying the signature. The client
// never holds the signing key; it only needs to know when to stop sending a
// token. ok is false for opaque (non-JWT) tokens or tokens without exp.
func ExpiresAt(tokenString string) (time.Time, bool) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
