// Package storage persists ledger snapshots in a local SQLite database.
// The engine is storage-agnostic; it only ever sees model.Snapshot values
// passing through Load and Save.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	_ "modernc.org/sqlite"

	"github.com/budgetbook-dev/budgetbook/internal/model"
)

const (
	dateFormat = "2006-01-02"
	timeFormat = time.RFC3339
)

// SQLiteStore persists snapshots in one SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// Open creates or opens the snapshot database at dbPath and migrates its
// schema.
func Open(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load reads the full snapshot. A fresh database yields an empty snapshot,
// not an error.
func (s *SQLiteStore) Load(ctx context.Context) (model.Snapshot, error) {
	var snap model.Snapshot
	var err error

	if snap.Accounts, err = s.loadAccounts(ctx); err != nil {
		return model.Snapshot{}, err
	}
	if snap.Envelopes, err = s.loadEnvelopes(ctx); err != nil {
		return model.Snapshot{}, err
	}
	if snap.Payees, err = s.loadPayees(ctx); err != nil {
		return model.Snapshot{}, err
	}
	if snap.Transactions, err = s.loadTransactions(ctx); err != nil {
		return model.Snapshot{}, err
	}
	if snap.Allocations, err = s.loadAllocations(ctx); err != nil {
		return model.Snapshot{}, err
	}
	if snap.CategoryOrder, err = s.loadCategoryOrder(ctx); err != nil {
		return model.Snapshot{}, err
	}

	slog.InfoContext(ctx, "ledger snapshot loaded",
		"accounts", len(snap.Accounts),
		"envelopes", len(snap.Envelopes),
		"transactions", len(snap.Transactions))
	return snap, nil
}

// Save rewrites the whole snapshot in one database transaction, the atomic
// commit boundary for multi-write operations like transfers.
func (s *SQLiteStore) Save(ctx context.Context, snap model.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"accounts", "envelopes", "payees", "transactions", "allocations", "category_order"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, a := range snap.Accounts {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO accounts (id, name, type, initial_balance, created_at) VALUES (?, ?, ?, ?, ?)`,
			a.ID, a.Name, a.Type, a.InitialBalance.String(), a.CreatedAt.UTC().Format(timeFormat))
		if err != nil {
			return fmt.Errorf("insert account %s: %w", a.ID, err)
		}
	}

	for _, e := range snap.Envelopes {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO envelopes (id, name, category, budget, estimate, due_day, order_index, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID, e.Name, e.Category, e.Budget.String(), e.Estimate.String(),
			e.DueDay, e.OrderIndex, e.CreatedAt.UTC().Format(timeFormat))
		if err != nil {
			return fmt.Errorf("insert envelope %s: %w", e.ID, err)
		}
	}

	for _, p := range snap.Payees {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO payees (id, name, category, created_at) VALUES (?, ?, ?, ?)`,
			p.ID, p.Name, p.Category, p.CreatedAt.UTC().Format(timeFormat))
		if err != nil {
			return fmt.Errorf("insert payee %s: %w", p.ID, err)
		}
	}

	for _, t := range snap.Transactions {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO transactions (id, account_id, envelope_id, payee_id, amount, type, description, date, created_at, is_transfer, transfer_group)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.AccountID, t.EnvelopeID, t.PayeeID, t.Amount.String(), string(t.Type),
			t.Description, t.Date.Format(dateFormat), t.CreatedAt.UTC().Format(timeFormat),
			boolToInt(t.IsTransfer), t.TransferGroupID)
		if err != nil {
			return fmt.Errorf("insert transaction %s: %w", t.ID, err)
		}
	}

	for _, a := range snap.Allocations {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO allocations (envelope_id, month, amount) VALUES (?, ?, ?)`,
			a.EnvelopeID, a.Month, a.Amount.String())
		if err != nil {
			return fmt.Errorf("insert allocation %s/%s: %w", a.EnvelopeID, a.Month, err)
		}
	}

	for i, category := range snap.CategoryOrder {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO category_order (position, category) VALUES (?, ?)`, i, category)
		if err != nil {
			return fmt.Errorf("insert category order %q: %w", category, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}

	slog.InfoContext(ctx, "ledger snapshot saved",
		"transactions", len(snap.Transactions))
	return nil
}

func (s *SQLiteStore) loadAccounts(ctx context.Context) ([]model.Account, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, type, initial_balance, created_at FROM accounts ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	var out []model.Account
	for rows.Next() {
		var a model.Account
		var balance, createdAt string
		if err := rows.Scan(&a.ID, &a.Name, &a.Type, &balance, &createdAt); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		if a.InitialBalance, err = parseAmount(balance); err != nil {
			return nil, fmt.Errorf("account %s: %w", a.ID, err)
		}
		if a.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("account %s: %w", a.ID, err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) loadEnvelopes(ctx context.Context) ([]model.Envelope, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, category, budget, estimate, due_day, order_index, created_at
		 FROM envelopes ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query envelopes: %w", err)
	}
	defer rows.Close()

	var out []model.Envelope
	for rows.Next() {
		var e model.Envelope
		var budget, estimate, createdAt string
		if err := rows.Scan(&e.ID, &e.Name, &e.Category, &budget, &estimate, &e.DueDay, &e.OrderIndex, &createdAt); err != nil {
			return nil, fmt.Errorf("scan envelope: %w", err)
		}
		if e.Budget, err = parseAmount(budget); err != nil {
			return nil, fmt.Errorf("envelope %s: %w", e.ID, err)
		}
		if e.Estimate, err = parseAmount(estimate); err != nil {
			return nil, fmt.Errorf("envelope %s: %w", e.ID, err)
		}
		if e.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("envelope %s: %w", e.ID, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) loadPayees(ctx context.Context) ([]model.Payee, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, category, created_at FROM payees ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query payees: %w", err)
	}
	defer rows.Close()

	var out []model.Payee
	for rows.Next() {
		var p model.Payee
		var createdAt string
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &createdAt); err != nil {
			return nil, fmt.Errorf("scan payee: %w", err)
		}
		if p.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("payee %s: %w", p.ID, err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) loadTransactions(ctx context.Context) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, account_id, envelope_id, payee_id, amount, type, description, date, created_at, is_transfer, transfer_group
		 FROM transactions ORDER BY date DESC, created_at`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []model.Transaction
	for rows.Next() {
		var t model.Transaction
		var amount, typ, date, createdAt string
		var isTransfer int
		if err := rows.Scan(&t.ID, &t.AccountID, &t.EnvelopeID, &t.PayeeID, &amount, &typ,
			&t.Description, &date, &createdAt, &isTransfer, &t.TransferGroupID); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		if t.Amount, err = parseAmount(amount); err != nil {
			return nil, fmt.Errorf("transaction %s: %w", t.ID, err)
		}
		t.Type = model.TransactionType(typ)
		if t.Date, err = time.Parse(dateFormat, date); err != nil {
			return nil, fmt.Errorf("transaction %s: parsing date %q: %w", t.ID, date, err)
		}
		if t.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("transaction %s: %w", t.ID, err)
		}
		t.IsTransfer = isTransfer != 0
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) loadAllocations(ctx context.Context) ([]model.Allocation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT envelope_id, month, amount FROM allocations ORDER BY envelope_id, month`)
	if err != nil {
		return nil, fmt.Errorf("query allocations: %w", err)
	}
	defer rows.Close()

	var out []model.Allocation
	for rows.Next() {
		var a model.Allocation
		var amount string
		if err := rows.Scan(&a.EnvelopeID, &a.Month, &amount); err != nil {
			return nil, fmt.Errorf("scan allocation: %w", err)
		}
		if a.Amount, err = parseAmount(amount); err != nil {
			return nil, fmt.Errorf("allocation %s/%s: %w", a.EnvelopeID, a.Month, err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) loadCategoryOrder(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT category FROM category_order ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query category order: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category order: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// parseAmount treats an empty stored amount as zero.
func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	return d, nil
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(timeFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
