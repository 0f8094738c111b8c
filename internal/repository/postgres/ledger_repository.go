package postgres

import (
	"context"
	"database/sql"

	"github.com/ngson927/Greatea-smart-management/internal/domain"
)

type orderRow struct {
	Date             sql.NullTime `db:"date"`
	SupplierID       int64        `db:"supplier_id"`
	SupplierName     string       `db:"supplier_name"`
	SupplyID         int64        `db:"supply_id"`
	QuantityReceived float64      `db:"quantity_received"`
	TotalCost        float64      `db:"total_cost"`
}

type expenseRow struct {
	Date     sql.NullTime `db:"date"`
	Category string       `db:"category"`
	Amount   float64      `db:"amount"`
}

type purchaseRow struct {
	Date     sql.NullTime `db:"date"`
	ItemName string       `db:"item_name"`
	Category string       `db:"category"`
	Quantity float64      `db:"quantity"`
	Cost     float64      `db:"cost"`
}

type supplyRow struct {
	SupplyID      int64        `db:"supply_id"`
	Name          string       `db:"name"`
	Category      string       `db:"category"`
	ExpiryDate    sql.NullTime `db:"expiry_date"`
	TotalQuantity float64      `db:"total_quantity"`
	CostPerUnit   float64      `db:"cost_per_unit"`
}

func (r *inventoryRepository) ListOrders(ctx context.Context) ([]domain.Order, error) {
	query := `
		SELECT
			o.date,
			o.supplier_id,
			COALESCE(sp.name, '') AS supplier_name,
			COALESCE(o.supply_id, 0) AS supply_id,
			COALESCE(o.quantity_received, 0) AS quantity_received,
			COALESCE(o.total_cost, 0) AS total_cost
		FROM supply_orders o
		LEFT JOIN suppliers sp ON sp.supplier_id = o.supplier_id
		WHERE o.supplier_id IS NOT NULL
		ORDER BY o.order_id ASC
	`

	var rows []orderRow
	if err := r.db.selectAll(ctx, "supply orders", &rows, query); err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, domain.Order{
			Date:             nullTime(row.Date),
			SupplierID:       row.SupplierID,
			SupplierName:     row.SupplierName,
			SupplyID:         row.SupplyID,
			QuantityReceived: row.QuantityReceived,
			TotalCost:        row.TotalCost,
		})
	}

	return orders, nil
}

func (r *inventoryRepository) ListExpenses(ctx context.Context) ([]domain.Expense, error) {
	query := `
		SELECT
			date,
			COALESCE(category, '') AS category,
			COALESCE(amount, 0) AS amount
		FROM expenses
		ORDER BY expense_id ASC
	`

	var rows []expenseRow
	if err := r.db.selectAll(ctx, "expenses", &rows, query); err != nil {
		return nil, err
	}

	expenses := make([]domain.Expense, 0, len(rows))
	for _, row := range rows {
		expenses = append(expenses, domain.Expense{
			Date:     nullTime(row.Date),
			Category: row.Category,
			Amount:   row.Amount,
		})
	}

	return expenses, nil
}

func (r *inventoryRepository) ListPurchases(ctx context.Context) ([]domain.Purchase, error) {
	query := `
		SELECT
			date,
			COALESCE(item_name, '') AS item_name,
			COALESCE(category, '') AS category,
			COALESCE(quantity, 0) AS quantity,
			COALESCE(cost, 0) AS cost
		FROM market_purchases
		ORDER BY purchase_id ASC
	`

	var rows []purchaseRow
	if err := r.db.selectAll(ctx, "market purchases", &rows, query); err != nil {
		return nil, err
	}

	purchases := make([]domain.Purchase, 0, len(rows))
	for _, row := range rows {
		purchases = append(purchases, domain.Purchase{
			Date:     nullTime(row.Date),
			ItemName: row.ItemName,
			Category: row.Category,
			Quantity: row.Quantity,
			Cost:     row.Cost,
		})
	}

	return purchases, nil
}

func (r *inventoryRepository) ListSupplies(ctx context.Context) ([]domain.Supply, error) {
	query := `
		SELECT
			supply_id,
			name,
			COALESCE(category, '') AS category,
			expiry_date,
			COALESCE(total_quantity, 0) AS total_quantity,
			COALESCE(cost_per_unit, 0) AS cost_per_unit
		FROM supplies
		ORDER BY supply_id ASC
	`

	var rows []supplyRow
	if err := r.db.selectAll(ctx, "supplies", &rows, query); err != nil {
		return nil, err
	}

	supplies := make([]domain.Supply, 0, len(rows))
	for _, row := range rows {
		s := domain.Supply{
			SupplyID:      row.SupplyID,
			Name:          row.Name,
			Category:      row.Category,
			TotalQuantity: row.TotalQuantity,
			CostPerUnit:   row.CostPerUnit,
		}
		if row.ExpiryDate.Valid {
			expiry := row.ExpiryDate.Time
			s.ExpiryDate = &expiry
		}
		supplies = append(supplies, s)
	}

	return supplies, nil
}
