package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// NewTestDB creates an in-memory SQLite database for testing
func NewTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Create schema
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email VARCHAR(255) NOT NULL UNIQUE,
		username VARCHAR(255),
		password_hash VARCHAR(255) NOT NULL,
		full_name VARCHAR(255),
		role VARCHAR(50) NOT NULL DEFAULT 'user',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS profiles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL UNIQUE,
		plan_tier VARCHAR(50) NOT NULL DEFAULT 'free',
		currency_preference VARCHAR(10) NOT NULL DEFAULT 'USD',
		total_saved DECIMAL(10, 2) NOT NULL DEFAULT 0,
		subscription_count INTEGER NOT NULL DEFAULT 0,
		lemonsqueezy_customer_id VARCHAR(255),
		lemonsqueezy_subscription_id VARCHAR(255),
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS subscriptions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		name VARCHAR(255) NOT NULL,
		amount DECIMAL(10, 2) NOT NULL,
		currency VARCHAR(10) NOT NULL DEFAULT 'USD',
		category VARCHAR(50) NOT NULL DEFAULT 'other',
		billing_cycle VARCHAR(20) NOT NULL DEFAULT 'monthly',
		status VARCHAR(20) NOT NULL DEFAULT 'active',
		renewal_date TIMESTAMP,
		website_url VARCHAR(500),
		description TEXT,
		logo_url VARCHAR(500),
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS pause_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		subscription_id INTEGER NOT NULL,
		user_id INTEGER NOT NULL,
		paused_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		resumed_at TIMESTAMP,
		amount_saved DECIMAL(10, 2) NOT NULL DEFAULT 0,
		FOREIGN KEY (subscription_id) REFERENCES subscriptions(id) ON DELETE CASCADE,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS cancellation_requests (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		subscription_id INTEGER NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'drafting',
		provider VARCHAR(255) NOT NULL,
		draft_subject VARCHAR(500) NOT NULL DEFAULT '',
		draft_body TEXT NOT NULL DEFAULT '',
		outcome VARCHAR(50),
		saved_amount DECIMAL(10, 2) NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		resolved_at TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
		FOREIGN KEY (subscription_id) REFERENCES subscriptions(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS cancellation_messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		request_id INTEGER NOT NULL,
		role VARCHAR(20) NOT NULL,
		kind VARCHAR(20) NOT NULL,
		subject VARCHAR(500),
		body TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (request_id) REFERENCES cancellation_requests(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS insights (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		type VARCHAR(50) NOT NULL,
		title VARCHAR(255) NOT NULL,
		body TEXT NOT NULL,
		subscription_id INTEGER,
		amount DECIMAL(10, 2) NOT NULL DEFAULT 0,
		is_read BOOLEAN NOT NULL DEFAULT FALSE,
		action_taken BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);
	`

	_, err = db.Exec(schema)
	if err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	return db
}

// CleanupDB closes the test database
func CleanupDB(db *sql.DB) {
	if db != nil {
		db.Close()
	}
}
