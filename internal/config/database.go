package config

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
)

// SetupDatabase initializes the database connection
func SetupDatabase(cfg *Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return db, nil
}

// createTables creates the necessary tables in the database
func createTables(db *sqlx.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(36) PRIMARY KEY,
			email VARCHAR(255) UNIQUE NOT NULL,
			full_name VARCHAR(255) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			avatar_url TEXT,
			currency_preference VARCHAR(3) NOT NULL DEFAULT 'VND',
			usd_vnd_rate NUMERIC(20,2) NOT NULL DEFAULT 25000,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id VARCHAR(36) PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL,
			icon VARCHAR(64) NOT NULL,
			color VARCHAR(16) NOT NULL,
			type VARCHAR(10) NOT NULL,
			is_default BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id VARCHAR(36) PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			category_id VARCHAR(36) NOT NULL,
			amount NUMERIC(20,2) NOT NULL,
			currency VARCHAR(3) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			date TIMESTAMP NOT NULL,
			receipt_url TEXT,
			is_shared BOOLEAN NOT NULL DEFAULT FALSE,
			shared_expense_id VARCHAR(36),
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS shared_expenses (
			id VARCHAR(36) PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			total_amount NUMERIC(20,2) NOT NULL,
			currency VARCHAR(3) NOT NULL,
			creator_id VARCHAR(36) NOT NULL REFERENCES users(id),
			split_type VARCHAR(10) NOT NULL,
			status VARCHAR(20) NOT NULL,
			category_id VARCHAR(36),
			date TIMESTAMP NOT NULL,
			receipt_url TEXT,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS shared_expense_participants (
			expense_id VARCHAR(36) NOT NULL REFERENCES shared_expenses(id) ON DELETE CASCADE,
			user_id VARCHAR(36) NOT NULL REFERENCES users(id),
			email VARCHAR(255) NOT NULL,
			full_name VARCHAR(255) NOT NULL,
			amount NUMERIC(20,2) NOT NULL DEFAULT 0,
			paid NUMERIC(20,2) NOT NULL DEFAULT 0,
			confirmed BOOLEAN NOT NULL DEFAULT FALSE,
			position INT NOT NULL,
			PRIMARY KEY (expense_id, user_id)
		)`,
		`CREATE TABLE IF NOT EXISTS friendships (
			id VARCHAR(36) PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			friend_id VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			friend_email VARCHAR(255) NOT NULL,
			friend_name VARCHAR(255) NOT NULL,
			status VARCHAR(10) NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS notifications (
			id VARCHAR(36) PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			type VARCHAR(50) NOT NULL,
			content TEXT NOT NULL,
			read BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS budgets (
			id VARCHAR(36) PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			category_id VARCHAR(36) NOT NULL,
			amount NUMERIC(20,2) NOT NULL,
			period VARCHAR(20) NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	// Indexes are not critical; failures are logged by the caller's logger
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_transactions_user_date ON transactions(user_id, date)",
		"CREATE INDEX IF NOT EXISTS idx_participants_user ON shared_expense_participants(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id, created_at)",
	}
	for _, idx := range indexes {
		db.Exec(idx)
	}

	return nil
}
