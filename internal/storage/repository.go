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

	"masareef/internal/core"
)

const dateLayout = "2006-01-02"

// SQLiteRepository is the relational ledger backend. Amounts are stored as
// decimal strings so no precision is lost on the round trip.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
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

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Available implements ledger.Store
func (r *SQLiteRepository) Available(ctx context.Context) bool {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return r.db.PingContext(pingCtx) == nil
}

// Append implements ledger.Store
func (r *SQLiteRepository) Append(ctx context.Context, userID int64, t core.Transaction) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (user_id, date, type, category, source, amount, description)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		userID,
		t.Date.Format(dateLayout),
		string(t.Type),
		t.Category,
		t.Source,
		t.Amount.String(),
		t.Description,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	id, _ := res.LastInsertId()
	slog.InfoContext(ctx, "Transaction saved to SQLite",
		"id", id,
		"user_id", userID,
		"type", t.Type,
		"source", t.Source,
		"amount", t.Amount.String())

	return nil
}

// LoadAll implements ledger.Store. Rows come back newest-first, the UI
// convention; aggregates never depend on that order.
func (r *SQLiteRepository) LoadAll(ctx context.Context, userID int64) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT date, type, category, source, amount, description
		FROM transactions
		WHERE user_id = ?
		ORDER BY date DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	txns := make([]core.Transaction, 0)
	for rows.Next() {
		var (
			dateStr   string
			typeStr   string
			amountStr string
			t         core.Transaction
		)
		if err := rows.Scan(&dateStr, &typeStr, &t.Category, &t.Source, &amountStr, &t.Description); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}

		// A row that no longer parses is corruption, not something to
		// silently coerce.
		day, err := time.Parse(dateLayout, dateStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt stored date %q: %w", dateStr, err)
		}
		t.Date = core.DateOf(day)

		t.Type, err = core.ParseTxnType(typeStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt stored type %q: %w", typeStr, err)
		}

		t.Amount, err = decimal.NewFromString(amountStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt stored amount %q: %w", amountStr, err)
		}

		t.UserID = userID
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return txns, nil
}
