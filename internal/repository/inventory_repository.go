package repository

import (
	"context"

	"github.com/ngson927/Greatea-smart-management/internal/domain"
)

// InventoryRepository reads the record collections the analytics consume.
// Every List method returns rows in insertion order.
type InventoryRepository interface {
	ListUsage(ctx context.Context) ([]domain.UsageRecord, error)
	ListStockLevels(ctx context.Context) ([]domain.StockLevel, error)
	// GetStockLevel returns nil, nil when the supply item has no stock row.
	GetStockLevel(ctx context.Context, supplyID int64) (*domain.StockLevel, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
	ListExpenses(ctx context.Context) ([]domain.Expense, error)
	ListPurchases(ctx context.Context) ([]domain.Purchase, error)
	ListSupplies(ctx context.Context) ([]domain.Supply, error)
}

type RestockRepository interface {
	// Create stores the request and sets its RequestID.
	Create(ctx context.Context, req *domain.RestockRequest) error
	Count(ctx context.Context) (int, error)
}
