package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ngson927/Greatea-smart-management/internal/domain"
	"github.com/ngson927/Greatea-smart-management/internal/repository"
	"github.com/rs/zerolog/log"
)

type inventoryRepository struct {
	db *DB
}

func NewInventoryRepository(db *DB) repository.InventoryRepository {
	return &inventoryRepository{db: db}
}

// Dates and numbers may be NULL; numbers are coalesced to 0 in SQL and dates
// come back as a zero time.Time.
type usageRow struct {
	Date         sql.NullTime `db:"date"`
	SupplyID     int64        `db:"supply_id"`
	SupplyName   string       `db:"supply_name"`
	QuantityUsed float64      `db:"quantity_used"`
	Location     string       `db:"location"`
}

type stockRow struct {
	SupplyID          int64        `db:"supply_id"`
	QuantityAvailable float64      `db:"quantity_available"`
	LastUpdated       sql.NullTime `db:"last_updated"`
}

func nullTime(t sql.NullTime) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}

func (r stockRow) toDomain() domain.StockLevel {
	return domain.StockLevel{
		SupplyID:          r.SupplyID,
		QuantityAvailable: r.QuantityAvailable,
		LastUpdated:       nullTime(r.LastUpdated),
	}
}

const usageQuery = `
	SELECT
		u.date,
		u.supply_id,
		COALESCE(s.name, '') AS supply_name,
		COALESCE(u.quantity_used, 0) AS quantity_used,
		COALESCE(u.location, '') AS location
	FROM usage_records u
	LEFT JOIN supplies s ON s.supply_id = u.supply_id
	WHERE u.supply_id IS NOT NULL
	ORDER BY u.usage_id ASC
`

func (r *inventoryRepository) ListUsage(ctx context.Context) ([]domain.UsageRecord, error) {
	var rows []usageRow
	if err := r.db.selectAll(ctx, "usage records", &rows, usageQuery); err != nil {
		return nil, err
	}

	records := make([]domain.UsageRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, domain.UsageRecord{
			Date:         nullTime(row.Date),
			SupplyID:     row.SupplyID,
			SupplyName:   row.SupplyName,
			QuantityUsed: row.QuantityUsed,
			Location:     row.Location,
		})
	}

	return records, nil
}

const stockColumns = `
	SELECT
		supply_id,
		COALESCE(quantity_available, 0) AS quantity_available,
		last_updated
	FROM store_stock
`

func (r *inventoryRepository) ListStockLevels(ctx context.Context) ([]domain.StockLevel, error) {
	query := stockColumns + `
	WHERE supply_id IS NOT NULL
	ORDER BY stock_id ASC
`

	var rows []stockRow
	if err := r.db.selectAll(ctx, "stock levels", &rows, query); err != nil {
		return nil, err
	}

	levels := make([]domain.StockLevel, 0, len(rows))
	for _, row := range rows {
		levels = append(levels, row.toDomain())
	}

	return levels, nil
}

func (r *inventoryRepository) GetStockLevel(ctx context.Context, supplyID int64) (*domain.StockLevel, error) {
	query := stockColumns + `
	WHERE supply_id = $1
	ORDER BY stock_id ASC
	LIMIT 1
`

	var row stockRow
	err := r.db.WithConn(ctx, func() error {
		return r.db.GetContext(ctx, &row, query, supplyID)
	})
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug().Int64("supply_id", supplyID).Msg("no stock row for supply")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stock for supply %d: %w", supplyID, err)
	}

	level := row.toDomain()
	return &level, nil
}
