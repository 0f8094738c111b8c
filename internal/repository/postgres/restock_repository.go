package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ngson927/Greatea-smart-management/internal/domain"
	"github.com/ngson927/Greatea-smart-management/internal/repository"
	"github.com/rs/zerolog/log"
)

type restockRepository struct {
	db *DB
}

func NewRestockRepository(db *DB) repository.RestockRepository {
	return &restockRepository{db: db}
}

func (r *restockRepository) Create(ctx context.Context, req *domain.RestockRequest) error {
	requestType, ok := domain.ParseRequestType(string(req.RequestType))
	if !ok {
		return fmt.Errorf("unknown restock request type %q", req.RequestType)
	}

	query := `
		INSERT INTO restock_requests (date, supply_id, quantity_requested, request_type)
		VALUES ($1, $2, $3, $4)
		RETURNING request_id
	`

	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, query,
			req.Date,
			req.SupplyID,
			req.QuantityRequested,
			string(requestType),
		).Scan(&req.RequestID)
	})
	if err != nil {
		return fmt.Errorf("failed to insert restock request: %w", err)
	}

	log.Info().
		Int64("request_id", req.RequestID).
		Int64("supply_id", req.SupplyID).
		Float64("quantity", req.QuantityRequested).
		Msg("restock request created")

	return nil
}

func (r *restockRepository) Count(ctx context.Context) (int, error) {
	var total int
	err := r.db.WithConn(ctx, func() error {
		return r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM restock_requests`)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count restock requests: %w", err)
	}

	return total, nil
}
