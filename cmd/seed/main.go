package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"masareef/internal/backend"
	"masareef/internal/config"
	"masareef/internal/core"
	applog "masareef/internal/log"
)

// seed bulk-imports transactions from a CSV file into the primary backend.
// Expected columns: date,type,category,source,amount,description
func main() {
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentApp)
	applog.SetDefault(logger)

	csvPath := flag.String("file", "", "path to a CSV file of transactions")
	userID := flag.Int64("user", 0, "user to import for (defaults to DEFAULT_USER_ID)")
	flag.Parse()

	if *csvPath == "" {
		fmt.Fprintln(os.Stderr, "usage: seed -file transactions.csv [-user id]")
		os.Exit(2)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if *userID == 0 {
		*userID = cfg.DefaultUserID
	}

	factory := backend.NewFactory(logger.Logger)
	primaryCfg, err := backend.FromAppConfig(cfg, backend.PrimarySlot)
	if err != nil {
		logger.Error("Invalid primary backend configuration", "error", err)
		os.Exit(1)
	}
	primary, err := factory.CreateStore(primaryCfg)
	if err != nil {
		logger.Error("Failed to initialize primary backend", "error", err)
		os.Exit(1)
	}
	if primary.Cleanup != nil {
		defer primary.Cleanup()
	}

	f, err := os.Open(*csvPath)
	if err != nil {
		logger.Error("Failed to open CSV file", "error", err, "path", *csvPath)
		os.Exit(1)
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	imported, skipped, err := importCSV(ctx, primary.Store.Append, *userID, f)
	if err != nil {
		logger.Error("Import failed", "error", err)
		os.Exit(1)
	}
	logger.Info("Import complete",
		applog.FieldUserID, *userID,
		"imported", imported,
		"skipped", skipped)
}

type appendFunc func(ctx context.Context, userID int64, t core.Transaction) error

func importCSV(ctx context.Context, appendTxn appendFunc, userID int64, r io.Reader) (imported, skipped int, err error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return imported, skipped, fmt.Errorf("read line %d: %w", line+1, err)
		}
		line++

		// Skip the header row if present.
		if line == 1 && len(record) > 0 && record[0] == "date" {
			continue
		}
		if len(record) < 5 {
			return imported, skipped, fmt.Errorf("line %d: expected at least 5 columns, got %d", line, len(record))
		}

		txn, err := parseRecord(record)
		if err != nil {
			// Malformed rows are skipped so one bad line does not abort a
			// long import. The summary reports how many were dropped.
			skipped++
			continue
		}
		if err := appendTxn(ctx, userID, txn); err != nil {
			return imported, skipped, fmt.Errorf("line %d: append: %w", line, err)
		}
		imported++
	}
	return imported, skipped, nil
}

func parseRecord(record []string) (core.Transaction, error) {
	date, err := time.Parse("2006-01-02", record[0])
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse date %q: %w", record[0], err)
	}
	typ, err := core.ParseTxnType(record[1])
	if err != nil {
		return core.Transaction{}, err
	}
	amount, err := decimal.NewFromString(record[4])
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse amount %q: %w", record[4], err)
	}

	txn := core.Transaction{
		Date:     core.DateOf(date),
		Type:     typ,
		Category: record[2],
		Source:   record[3],
		Amount:   amount,
	}
	if len(record) > 5 {
		txn.Description = record[5]
	}
	if err := txn.Validate(); err != nil {
		return core.Transaction{}, err
	}
	return txn, nil
}
