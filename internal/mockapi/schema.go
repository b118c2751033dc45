package mockapi

import (
	"context"
	"database/sql"
	"fmt"
)

// Timestamps are stored as unix milliseconds so the schema stays portable
// across sqlite and mysql.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id VARCHAR(36) PRIMARY KEY,
		user_name VARCHAR(191) NOT NULL,
		email VARCHAR(191) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		phone_number VARCHAR(32) NOT NULL DEFAULT '',
		address TEXT,
		image TEXT,
		created_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id VARCHAR(36) PRIMARY KEY,
		slug VARCHAR(191) NOT NULL,
		name VARCHAR(191) NOT NULL,
		description TEXT,
		price DOUBLE PRECISION NOT NULL,
		stock INTEGER NOT NULL,
		available INTEGER NOT NULL,
		category VARCHAR(191) NOT NULL,
		sub_category VARCHAR(191) NOT NULL,
		status VARCHAR(32) NOT NULL,
		image TEXT,
		created_at BIGINT NOT NULL,
		updated_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id VARCHAR(36) PRIMARY KEY,
		name VARCHAR(191) NOT NULL,
		status VARCHAR(32) NOT NULL,
		payment VARCHAR(32) NOT NULL,
		payment_method VARCHAR(32) NOT NULL,
		promo_code VARCHAR(64),
		shipper_city VARCHAR(191),
		shipment_json TEXT NOT NULL,
		sub_total DOUBLE PRECISION NOT NULL,
		order_tax DOUBLE PRECISION NOT NULL,
		shipping DOUBLE PRECISION NOT NULL,
		paid DOUBLE PRECISION NOT NULL,
		total_price DOUBLE PRECISION NOT NULL,
		tracking_id VARCHAR(64),
		created_at BIGINT NOT NULL,
		updated_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		order_id VARCHAR(36) NOT NULL,
		product_id VARCHAR(36) NOT NULL,
		product_qty INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS customers (
		id VARCHAR(36) PRIMARY KEY,
		customer_name VARCHAR(191) NOT NULL,
		city VARCHAR(191) NOT NULL,
		phone VARCHAR(32) NOT NULL,
		total_orders INTEGER NOT NULL DEFAULT 0,
		total_spent DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS shippers (
		id VARCHAR(36) PRIMARY KEY,
		store_id VARCHAR(36) NOT NULL,
		store_name VARCHAR(191) NOT NULL,
		location_name VARCHAR(191) NOT NULL,
		address TEXT NOT NULL,
		return_address TEXT NOT NULL,
		city VARCHAR(191) NOT NULL,
		phone_number VARCHAR(32) NOT NULL,
		created_at BIGINT NOT NULL
	)`,
}

// InitSchema creates the tables if they do not exist yet.
func InitSchema(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("mockapi: schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
