package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ngson927/Greatea-smart-management/pkg/logger"
)

type columnKind int

const (
	textColumn columnKind = iota
	intColumn
	floatColumn
	dateColumn
)

type seedColumn struct {
	name string
	kind columnKind
}

// seedTable maps one CSV file onto a table keyed by its own id column.
type seedTable struct {
	name    string
	file    string
	key     string
	columns []seedColumn
}

// seedTables lists the tables in foreign key order.
var seedTables = []seedTable{
	{
		name: "suppliers", file: "suppliers.csv", key: "supplier_id",
		columns: []seedColumn{{"supplier_id", intColumn}, {"name", textColumn}},
	},
	{
		name: "supplies", file: "supplies.csv", key: "supply_id",
		columns: []seedColumn{
			{"supply_id", intColumn}, {"name", textColumn}, {"category", textColumn},
			{"expiry_date", dateColumn}, {"total_quantity", floatColumn}, {"cost_per_unit", floatColumn},
		},
	},
	{
		name: "store_stock", file: "store_stock.csv", key: "stock_id",
		columns: []seedColumn{
			{"stock_id", intColumn}, {"supply_id", intColumn}, {"quantity_available", floatColumn}, {"last_updated", dateColumn},
		},
	},
	{
		name: "usage_records", file: "usage_records.csv", key: "usage_id",
		columns: []seedColumn{
			{"usage_id", intColumn}, {"date", dateColumn}, {"supply_id", intColumn},
			{"quantity_used", floatColumn}, {"location", textColumn},
		},
	},
	{
		name: "supply_orders", file: "supply_orders.csv", key: "order_id",
		columns: []seedColumn{
			{"order_id", intColumn}, {"date", dateColumn}, {"supplier_id", intColumn}, {"supply_id", intColumn},
			{"quantity_received", floatColumn}, {"total_cost", floatColumn},
		},
	},
	{
		name: "expenses", file: "expenses.csv", key: "expense_id",
		columns: []seedColumn{
			{"expense_id", intColumn}, {"date", dateColumn}, {"category", textColumn}, {"amount", floatColumn},
		},
	},
	{
		name: "market_purchases", file: "market_purchases.csv", key: "purchase_id",
		columns: []seedColumn{
			{"purchase_id", intColumn}, {"date", dateColumn}, {"item_name", textColumn},
			{"category", textColumn}, {"quantity", floatColumn}, {"cost", floatColumn},
		},
	},
}

func (t seedTable) upsertQuery() string {
	names := make([]string, len(t.columns))
	placeholders := make([]string, len(t.columns))
	updates := make([]string, 0, len(t.columns))
	for i, col := range t.columns {
		names[i] = col.name
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		if col.name != t.key {
			updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", col.name, col.name))
		}
	}

	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET %s",
		t.name,
		strings.Join(names, ", "),
		strings.Join(placeholders, ", "),
		t.key,
		strings.Join(updates, ", "),
	)
}

// resetSequenceQuery moves the serial past the explicitly seeded ids.
func (t seedTable) resetSequenceQuery() string {
	return fmt.Sprintf(
		"SELECT setval(pg_get_serial_sequence('%s', '%s'), COALESCE(MAX(%s), 0) + 1, false) FROM %s",
		t.name, t.key, t.key, t.name,
	)
}

// parseCell converts a raw CSV value; blanks become NULL.
func parseCell(kind columnKind, raw string) (interface{}, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	switch kind {
	case intColumn:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer value %s: %w", value, err)
		}
		return n, nil
	case floatColumn:
		f, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", ""), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float value %s: %w", value, err)
		}
		return f, nil
	case dateColumn:
		for _, layout := range []string{time.DateOnly, time.RFC3339, time.DateTime} {
			if t, err := time.Parse(layout, value); err == nil {
				return t, nil
			}
		}
		return nil, fmt.Errorf("invalid date value %s", value)
	default:
		return value, nil
	}
}

func columnIndexes(header []string, columns []seedColumn) ([]int, error) {
	positions := make(map[string]int, len(header))
	for i, h := range header {
		positions[strings.ToLower(strings.TrimSpace(h))] = i
	}

	indexes := make([]int, len(columns))
	for i, col := range columns {
		idx, ok := positions[col.name]
		if !ok {
			return nil, fmt.Errorf("column '%s' not found in header: %v", col.name, header)
		}
		indexes[i] = idx
	}
	return indexes, nil
}

// load upserts every row of r into the table and returns the row count.
func (t seedTable) load(ctx context.Context, tx *sql.Tx, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("failed to read CSV header: %w", err)
	}
	indexes, err := columnIndexes(header, t.columns)
	if err != nil {
		return 0, err
	}

	query := t.upsertQuery()
	rowCount := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return rowCount, fmt.Errorf("failed to read CSV record: %w", err)
		}

		args := make([]interface{}, len(t.columns))
		for i, col := range t.columns {
			if indexes[i] >= len(record) {
				return rowCount, fmt.Errorf("row %d has no value for column '%s'", rowCount+2, col.name)
			}
			if args[i], err = parseCell(col.kind, record[indexes[i]]); err != nil {
				return rowCount, fmt.Errorf("row %d column '%s': %w", rowCount+2, col.name, err)
			}
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return rowCount, fmt.Errorf("failed to insert %s row %d: %w", t.name, rowCount+2, err)
		}
		rowCount++
	}

	if _, err := tx.ExecContext(ctx, t.resetSequenceQuery()); err != nil {
		return rowCount, fmt.Errorf("failed to reset %s sequence: %w", t.name, err)
	}
	return rowCount, nil
}

func (t seedTable) loadFile(ctx context.Context, tx *sql.Tx, path string) error {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Log.Warn().Str("table", t.name).Str("file", path).Msg("seed file not found, skipping")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	start := time.Now()
	rows, err := t.load(ctx, tx, file)
	if err != nil {
		return fmt.Errorf("failed to seed %s: %w", t.name, err)
	}

	logger.Log.Info().
		Str("table", t.name).
		Int("rows", rows).
		Dur("duration", time.Since(start)).
		Msg("table seeded")
	return nil
}
