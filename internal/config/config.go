package config

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL       string
	RequestTimeout   time.Duration
	AcceptedStatuses []int
	StorageDriver    string
	StorageDSN       string
	LogLevel         slog.Level
	PageLimit        int

	// Development API server
	MockAPIPort   string
	MockAPIDriver string
	MockAPIDSN    string
	CORSOrigin    string
	JWTSecret     []byte
}

// LoadEnvFile loads .env into the process environment. A missing file is not
// an error.
func LoadEnvFile(paths ...string) {
	if err := godotenv.Load(paths...); err != nil {
		slog.Warn("No .env file found, using environment variables", "error", err)
	}
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		APIBaseURL:    strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:8080"), "/"),
		StorageDriver: getEnv("STORAGE_DRIVER", "sqlite"),
		StorageDSN:    getEnv("STORAGE_DSN", "./shopcart.db"),
		MockAPIPort:   getEnv("MOCKAPI_PORT", "8080"),
		MockAPIDriver: getEnv("MOCKAPI_DB_DRIVER", "sqlite"),
		MockAPIDSN:    getEnv("MOCKAPI_DB_DSN", "file::memory:"),
		CORSOrigin:    getEnv("CORS_ORIGIN", ""),
	}

	if cfg.APIBaseURL == "" {
		return nil, errors.New("API_BASE_URL must not be empty")
	}

	// Request timeout: "0" leaves requests unbounded.
	timeout, err := parseDuration(getEnv("REQUEST_TIMEOUT", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
	}
	cfg.RequestTimeout = timeout

	statuses, err := parseStatuses(getEnv("ACCEPTED_STATUSES", "200,201"))
	if err != nil {
		return nil, fmt.Errorf("invalid ACCEPTED_STATUSES: %w", err)
	}
	cfg.AcceptedStatuses = statuses

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		slog.Warn("Invalid LOG_LEVEL. Falling back to info.", "LOG_LEVEL", os.Getenv("LOG_LEVEL"))
		cfg.LogLevel = slog.LevelInfo
	}

	limit, err := strconv.Atoi(getEnv("PAGE_LIMIT", "10"))
	if err != nil || limit <= 0 {
		slog.Warn("Invalid PAGE_LIMIT. Falling back to default.", "PAGE_LIMIT", os.Getenv("PAGE_LIMIT"))
		limit = 10
	}
	cfg.PageLimit = limit

	// Make sure port is valid
	if _, err := strconv.Atoi(cfg.MockAPIPort); err != nil {
		slog.Warn("Invalid MOCKAPI_PORT. Falling back to default.", "MOCKAPI_PORT", os.Getenv("MOCKAPI_PORT"))
		cfg.MockAPIPort = "8080"
	}

	// JWT secret (only the development server signs tokens)
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.JWTSecret = []byte(secret)
	} else {
		slog.Warn("JWT_SECRET environment variable not set. Generating a random key for development. Tokens will be invalid on restart.")
		cfg.JWTSecret = generateRandomBytes(32)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// parseDuration accepts Go durations ("30s") or a bare number of seconds.
func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if secs, err := strconv.Atoi(s); err == nil {
		if secs < 0 {
			return 0, fmt.Errorf("negative timeout %d", secs)
		}
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative timeout %s", d)
	}
	return d, nil
}

func parseStatuses(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		code, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		if code < 200 || code > 299 {
			return nil, fmt.Errorf("status %d is not a success status", code)
		}
		out = append(out, code)
	}
	if len(out) == 0 {
		return nil, errors.New("at least one status is required")
	}
	return out, nil
}

func generateRandomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		slog.Error("Failed to read random bytes", "error", err)
		return []byte(base64.StdEncoding.EncodeToString([]byte(strconv.FormatInt(time.Now().UnixNano(), 10))))
	}
	return b
}
