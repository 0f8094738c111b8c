package domain

import "time"

// Supply is the master record of a stocked item
type Supply struct {
	SupplyID      int64      `json:"supply_id" db:"supply_id"`
	Name          string     `json:"name" db:"name"`
	Category      string     `json:"category" db:"category"`
	ExpiryDate    *time.Time `json:"expiry_date,omitempty" db:"expiry_date"`
	TotalQuantity float64    `json:"total_quantity" db:"total_quantity"`
	CostPerUnit   float64    `json:"cost_per_unit" db:"cost_per_unit"`
}

// UsageRecord is a single consumption event for a supply item.
// A zero Date means the date was not recorded.
type UsageRecord struct {
	Date         time.Time `json:"date" db:"date"`
	SupplyID     int64     `json:"supply_id" db:"supply_id"`
	SupplyName   string    `json:"supply_name" db:"supply_name"`
	QuantityUsed float64   `json:"quantity_used" db:"quantity_used"`
	Location     string    `json:"location,omitempty" db:"location"`
}

// StockLevel is the current on-hand amount of one supply item
type StockLevel struct {
	SupplyID          int64     `json:"supply_id" db:"supply_id"`
	QuantityAvailable float64   `json:"quantity_available" db:"quantity_available"`
	LastUpdated       time.Time `json:"last_updated" db:"last_updated"`
}

// Order is one delivery transaction from a supplier
type Order struct {
	Date             time.Time `json:"date" db:"date"`
	SupplierID       int64     `json:"supplier_id" db:"supplier_id"`
	SupplierName     string    `json:"supplier_name" db:"supplier_name"`
	SupplyID         int64     `json:"supply_id" db:"supply_id"`
	QuantityReceived float64   `json:"quantity_received" db:"quantity_received"`
	TotalCost        float64   `json:"total_cost" db:"total_cost"`
}

// Expense is a generic ledger entry
type Expense struct {
	Date     time.Time `json:"date" db:"date"`
	Category string    `json:"category" db:"category"`
	Amount   float64   `json:"amount" db:"amount"`
}

// Purchase is a market purchase; its cost counts as an expense under its category
type Purchase struct {
	Date     time.Time `json:"date" db:"date"`
	ItemName string    `json:"item_name" db:"item_name"`
	Category string    `json:"category" db:"category"`
	Quantity float64   `json:"quantity" db:"quantity"`
	Cost     float64   `json:"cost" db:"cost"`
}

// RestockRequest is the write-side payload handed to the data-access layer.
// RequestID is zero until the request has been stored.
type RestockRequest struct {
	RequestID         int64       `json:"request_id,omitempty" db:"request_id"`
	Date              time.Time   `json:"date" db:"date"`
	SupplyID          int64       `json:"supply_id" db:"supply_id"`
	QuantityRequested float64     `json:"quantity_requested" db:"quantity_requested"`
	RequestType       RequestType `json:"request_type" db:"request_type"`
}
