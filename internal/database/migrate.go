package database

import (
	"database/sql"
	"fmt"
)

// migrations are idempotent DDL statements run at startup, in order.
// Nested document data (images, sizes, cart items, order items, addresses)
// lives in jsonb columns.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		user_id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'customer',
		phone TEXT NOT NULL DEFAULT '',
		addresses jsonb NOT NULL DEFAULT '[]',
		wishlist integer[] NOT NULL DEFAULT '{}',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		last_login TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS products (
		product_id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price INT NOT NULL,
		compare_price INT,
		category TEXT NOT NULL,
		collection TEXT,
		images jsonb NOT NULL DEFAULT '[]',
		sizes jsonb NOT NULL DEFAULT '[]',
		colors jsonb NOT NULL DEFAULT '[]',
		tags text[] NOT NULL DEFAULT '{}',
		badge TEXT,
		rating_average DOUBLE PRECISION NOT NULL DEFAULT 0,
		rating_count INT NOT NULL DEFAULT 0,
		is_limited BOOLEAN NOT NULL DEFAULT FALSE,
		limited_stock INT,
		is_featured BOOLEAN NOT NULL DEFAULT FALSE,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		sold_count INT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_products_category ON products (category, collection)`,
	`CREATE INDEX IF NOT EXISTS idx_products_price ON products (price)`,

	`CREATE TABLE IF NOT EXISTS carts (
		cart_id SERIAL PRIMARY KEY,
		user_id INT NOT NULL UNIQUE REFERENCES users (user_id),
		items jsonb NOT NULL DEFAULT '[]',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	// order_number_seq backs order-number generation so numbers stay unique
	// under concurrent checkout.
	`CREATE SEQUENCE IF NOT EXISTS order_number_seq`,
	`CREATE TABLE IF NOT EXISTS orders (
		order_id SERIAL PRIMARY KEY,
		user_id INT NOT NULL REFERENCES users (user_id),
		order_number TEXT NOT NULL UNIQUE,
		items jsonb NOT NULL DEFAULT '[]',
		shipping_address jsonb NOT NULL DEFAULT '{}',
		payment_method TEXT NOT NULL DEFAULT 'cod',
		payment_status TEXT NOT NULL DEFAULT 'pending',
		items_price INT NOT NULL,
		shipping_price INT NOT NULL DEFAULT 0,
		tax_price INT NOT NULL DEFAULT 0,
		total_price INT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		tracking_number TEXT,
		delivered_at TIMESTAMPTZ,
		cancelled_at TIMESTAMPTZ,
		cancel_reason TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders (user_id, created_at DESC)`,
}

// Migrate applies the schema. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for _, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
