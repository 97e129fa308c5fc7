package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/spp-kitchen/ingredient-allocation-backend/internal/domain/dataset"
)

// Storage provides SQLite database access for the issuance ledger.
// It implements the Repository interface.
type Storage struct {
	db *sql.DB
}

// Compile-time check that Storage implements Repository
var _ Repository = (*Storage)(nil)

// NewStorage creates a new storage instance with SQLite database
func NewStorage(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign key constraints (SQLite-specific)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Storage{db: db}

	// Run all pending migrations
	if err := s.runMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

const transactionColumns = `date, item_serial, item_name, department, issued_to, quantity,
	unit_of_measure, item_category, week, reference, department_category,
	batch_number, store, received_by`

// SaveTransaction records a single issuance row
func (s *Storage) SaveTransaction(tx *dataset.Transaction) error {
	if tx.Reference == "" {
		tx.Reference = uuid.NewString()
	}

	query := `
	INSERT INTO transactions (` + transactionColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.Exec(query,
		tx.Date,
		tx.ItemSerial,
		tx.ItemName,
		tx.Department,
		tx.IssuedTo,
		tx.Quantity,
		tx.UnitOfMeasure,
		tx.ItemCategory,
		tx.Week,
		tx.Reference,
		tx.DepartmentCategory,
		tx.BatchNumber,
		tx.Store,
		tx.ReceivedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}

	tx.ID, _ = result.LastInsertId()
	return nil
}

// ImportTransactions bulk-inserts ledger rows in one database transaction
func (s *Storage) ImportTransactions(txs []dataset.Transaction) (int, error) {
	if len(txs) == 0 {
		return 0, nil
	}

	dbTx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin import transaction: %w", err)
	}

	stmt, err := dbTx.Prepare(`
	INSERT INTO transactions (` + transactionColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		_ = dbTx.Rollback()
		return 0, fmt.Errorf("failed to prepare import statement: %w", err)
	}
	defer stmt.Close()

	for i := range txs {
		t := &txs[i]
		if _, err := stmt.Exec(
			t.Date, t.ItemSerial, t.ItemName, t.Department, t.IssuedTo,
			t.Quantity, t.UnitOfMeasure, t.ItemCategory, t.Week, t.Reference,
			t.DepartmentCategory, t.BatchNumber, t.Store, t.ReceivedBy,
		); err != nil {
			_ = dbTx.Rollback()
			return 0, fmt.Errorf("failed to import row %d: %w", i+1, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit import: %w", err)
	}

	return len(txs), nil
}

// LoadTransactions returns all rows dated on or after since, oldest first
func (s *Storage) LoadTransactions(since time.Time) ([]dataset.Transaction, error) {
	query := `
	SELECT id, ` + transactionColumns + `
	FROM transactions
	WHERE date >= ?
	ORDER BY date ASC, id ASC
	`

	rows, err := s.db.Query(query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// ListTransactions returns rows matching the filters with pagination
func (s *Storage) ListTransactions(filters TransactionFilters) (*TransactionListResult, error) {
	where, args := buildTransactionFilters(filters)

	countQuery := "SELECT COUNT(*) FROM transactions" + where
	var total int
	if err := s.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = 50
	}

	orderColumn := "date"
	if filters.OrderBy == "quantity" {
		orderColumn = "quantity"
	}
	direction := "ASC"
	if filters.OrderDesc {
		direction = "DESC"
	}

	query := fmt.Sprintf(
		"SELECT id, %s FROM transactions%s ORDER BY %s %s, id %s LIMIT ? OFFSET ?",
		transactionColumns, where, orderColumn, direction, direction,
	)
	args = append(args, limit, filters.Offset)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	txs, err := scanTransactions(rows)
	if err != nil {
		return nil, err
	}

	return &TransactionListResult{
		Transactions: txs,
		TotalCount:   total,
		Limit:        limit,
		Offset:       filters.Offset,
	}, nil
}

func buildTransactionFilters(filters TransactionFilters) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	if filters.Item != "" {
		if dataset.IsSerial(filters.Item) {
			clauses = append(clauses, "LOWER(item_serial) = LOWER(?)")
		} else {
			clauses = append(clauses, "LOWER(item_name) = LOWER(?)")
		}
		args = append(args, filters.Item)
	}
	if filters.Department != "" && filters.Department != dataset.AllDepartments {
		clauses = append(clauses, "department = ?")
		args = append(args, filters.Department)
	}
	if filters.Category != "" {
		clauses = append(clauses, "item_category = ?")
		args = append(args, filters.Category)
	}
	if filters.Store != "" {
		clauses = append(clauses, "store = ?")
		args = append(args, filters.Store)
	}
	if !filters.From.IsZero() {
		clauses = append(clauses, "date >= ?")
		args = append(args, filters.From)
	}
	if !filters.To.IsZero() {
		clauses = append(clauses, "date <= ?")
		args = append(args, filters.To)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func scanTransactions(rows *sql.Rows) ([]dataset.Transaction, error) {
	var txs []dataset.Transaction
	for rows.Next() {
		var t dataset.Transaction
		if err := rows.Scan(
			&t.ID, &t.Date, &t.ItemSerial, &t.ItemName, &t.Department,
			&t.IssuedTo, &t.Quantity, &t.UnitOfMeasure, &t.ItemCategory,
			&t.Week, &t.Reference, &t.DepartmentCategory, &t.BatchNumber,
			&t.Store, &t.ReceivedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}
