package storage

import (
	"database/sql"
	"fmt"
	"log"
)

// Migration represents a database schema migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.Tx) error
}

// allMigrations defines all migrations in order
var allMigrations = []Migration{
	{
		Version: 1,
		Name:    "create_transactions_table",
		Up:      migration001CreateTransactionsTable,
	},
	{
		Version: 2,
		Name:    "add_transaction_indexes",
		Up:      migration002AddTransactionIndexes,
	},
}

// runMigrations executes all pending migrations
func (s *Storage) runMigrations() error {
	if err := s.ensureMigrationsTable(); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := s.getAppliedMigrations()
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	for _, migration := range allMigrations {
		if applied[migration.Version] {
			continue // Already applied
		}

		log.Printf("Running migration %d: %s", migration.Version, migration.Name)

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Name, err)
		}

		_, err = tx.Exec(`
			INSERT INTO schema_migrations (version, name) VALUES (?, ?)
		`, migration.Version, migration.Name)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// ensureMigrationsTable creates the schema_migrations table
func (s *Storage) ensureMigrationsTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`

	_, err := s.db.Exec(query)
	return err
}

// getAppliedMigrations returns a set of applied migration versions
func (s *Storage) getAppliedMigrations() (map[int]bool, error) {
	applied := make(map[int]bool)

	rows, err := s.db.Query(`SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}

	return applied, rows.Err()
}

func migration001CreateTransactionsTable(tx *sql.Tx) error {
	query := `
	CREATE TABLE IF NOT EXISTS transactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TIMESTAMP NOT NULL,
		item_serial TEXT NOT NULL DEFAULT '',
		item_name TEXT NOT NULL,
		department TEXT NOT NULL,
		issued_to TEXT NOT NULL DEFAULT '',
		quantity REAL NOT NULL,
		unit_of_measure TEXT NOT NULL DEFAULT '',
		item_category TEXT NOT NULL DEFAULT '',
		week TEXT NOT NULL DEFAULT '',
		reference TEXT NOT NULL DEFAULT '',
		department_category TEXT NOT NULL DEFAULT '',
		batch_number TEXT NOT NULL DEFAULT '',
		store TEXT NOT NULL DEFAULT '',
		received_by TEXT NOT NULL DEFAULT ''
	)`

	_, err := tx.Exec(query)
	return err
}

func migration002AddTransactionIndexes(tx *sql.Tx) error {
	queries := []string{
		`CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_item_name ON transactions(item_name COLLATE NOCASE)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_item_serial ON transactions(item_serial COLLATE NOCASE)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_department ON transactions(department)`,
	}

	for _, query := range queries {
		if _, err := tx.Exec(query); err != nil {
			return err
		}
	}
	return nil
}
