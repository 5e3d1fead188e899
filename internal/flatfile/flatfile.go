// Package flatfile is the CSV ledger backend, used as the fallback when the
// relational store is unreachable and as the mirror replica target.
package flatfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"masareef/internal/core"
)

const dateLayout = "2006-01-02"

var header = []string{"date", "type", "category", "source", "amount", "description"}

// Store keeps one CSV file per user under a base directory. Appends are
// O_APPEND writes guarded by a mutex, so a single process never interleaves
// rows.
type Store struct {
	mu  sync.Mutex
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create flat-file directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(userID int64) string {
	return filepath.Join(s.dir, fmt.Sprintf("user_%d.csv", userID))
}

// Available implements ledger.Store
func (s *Store) Available(_ context.Context) bool {
	info, err := os.Stat(s.dir)
	return err == nil && info.IsDir()
}

// Append implements ledger.Store
func (s *Store) Append(ctx context.Context, userID int64, t core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(userID)
	_, statErr := os.Stat(path)
	writeHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open ledger file %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("write header to %s: %w", path, err)
		}
	}

	record := []string{
		t.Date.Format(dateLayout),
		string(t.Type),
		t.Category,
		t.Source,
		t.Amount.String(),
		t.Description,
	}
	if err := w.Write(record); err != nil {
		return fmt.Errorf("write record to %s: %w", path, err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush ledger file %s: %w", path, err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync ledger file %s: %w", path, err)
	}

	slog.InfoContext(ctx, "Transaction appended to flat file",
		"path", path,
		"user_id", userID,
		"type", t.Type,
		"amount", t.Amount.String())

	return nil
}

// LoadAll implements ledger.Store. A missing file is a new user, not an error.
func (s *Store) LoadAll(_ context.Context, userID int64) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(userID)
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return []core.Transaction{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open ledger file %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read ledger file %s: %w", path, err)
	}
	if len(records) == 0 {
		return []core.Transaction{}, nil
	}

	txns := make([]core.Transaction, 0, len(records)-1)
	for i, record := range records[1:] { // skip header
		if len(record) != len(header) {
			return nil, fmt.Errorf("malformed record %d in %s: %d fields", i+2, path, len(record))
		}

		day, err := time.Parse(dateLayout, record[0])
		if err != nil {
			return nil, fmt.Errorf("corrupt date %q in %s: %w", record[0], path, err)
		}

		typ, err := core.ParseTxnType(record[1])
		if err != nil {
			return nil, fmt.Errorf("corrupt type %q in %s: %w", record[1], path, err)
		}

		amount, err := decimal.NewFromString(record[4])
		if err != nil {
			return nil, fmt.Errorf("corrupt amount %q in %s: %w", record[4], path, err)
		}

		txns = append(txns, core.Transaction{
			Date:        core.DateOf(day),
			Type:        typ,
			Category:    record[2],
			Source:      record[3],
			Amount:      amount,
			Description: record[5],
			UserID:      userID,
		})
	}

	return txns, nil
}
