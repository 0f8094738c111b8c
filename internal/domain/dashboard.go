package domain

// NoReorderPressure is the days-until-reorder value reported when an item has
// no usage rate to decay its stock.
const NoReorderPressure = 999

// ForecastResult is the reorder forecast for one supply item
type ForecastResult struct {
	SupplyID           int64         `json:"supply_id"`
	SupplyName         string        `json:"supply_name"`
	AvgDailyUsage      float64       `json:"avg_daily_usage"`
	CurrentStock       float64       `json:"current_stock"`
	DaysUntilReorder   int           `json:"days_until_reorder"`
	NoUsageRate        bool          `json:"no_usage_rate"`
	Predicted30DayNeed float64       `json:"predicted_30day_need"`
	ReorderStatus      ReorderStatus `json:"reorder_status"`
}

// LookupFailure records a supply item dropped because its stock could not be resolved
type LookupFailure struct {
	SupplyID int64  `json:"supply_id"`
	Reason   string `json:"reason"`
}

// ForecastReport bundles the forecast lines with their diagnostics
type ForecastReport struct {
	Results          []ForecastResult `json:"results"`
	InsufficientData bool             `json:"insufficient_data"`
	LookupFailures   []LookupFailure  `json:"lookup_failures,omitempty"`
}

// SupplierScorecard is a per-supplier aggregate
type SupplierScorecard struct {
	SupplierID           int64   `json:"supplier_id"`
	SupplierName         string  `json:"supplier_name"`
	TotalOrders          int     `json:"total_orders"`
	TotalCost            float64 `json:"total_cost"`
	ItemsOrdered         float64 `json:"items_ordered"`
	AvgCostPerItem       float64 `json:"avg_cost_per_item"`
	AvgDaysBetweenOrders float64 `json:"avg_days_between_orders"`
	DaysSinceLastOrder   int     `json:"days_since_last_order"`
}

// SupplierReport is the scorecard table plus the top-K subset for charting
type SupplierReport struct {
	Scorecards       []SupplierScorecard `json:"scorecards"`
	Top              []SupplierScorecard `json:"top"`
	InsufficientData bool                `json:"insufficient_data"`
}

// CategoryAmount is an amount attributed to one category
type CategoryAmount struct {
	Category Category `json:"category"`
	Amount   float64  `json:"amount"`
}

// CategoryShare is a highlighted category with its share of total spend
type CategoryShare struct {
	Category     Category `json:"category"`
	Amount       float64  `json:"amount"`
	SharePercent float64  `json:"share_percent"`
}

// MonthlyBreakdown is one row of the month x category matrix; ByCategory
// follows the report's category ranking.
type MonthlyBreakdown struct {
	Month      YearMonth        `json:"month"`
	ByCategory []CategoryAmount `json:"by_category"`
	Total      float64          `json:"total"`
}

// ExpenseTrendReport is the monthly category-trend report
type ExpenseTrendReport struct {
	InsufficientData      bool               `json:"insufficient_data"`
	TotalExpenses         float64            `json:"total_expenses"`
	MonthOverMonthChange  float64            `json:"mom_change"`
	MonthOverMonthPercent float64            `json:"mom_percent"`
	TopCategories         []CategoryShare    `json:"top_categories"`
	CategoryTotals        []CategoryAmount   `json:"category_totals"`
	Months                []MonthlyBreakdown `json:"months"`
	SkippedUndated        int                `json:"skipped_undated,omitempty"`
	// Undated amounts count toward the totals but belong to no month
	UndatedTotal          float64            `json:"undated_total,omitempty"`
	UndatedByCategory     []CategoryAmount   `json:"undated_by_category,omitempty"`
}

// StockAlert flags a supply item running low
type StockAlert struct {
	SupplyID            int64       `json:"supply_id"`
	Name                string      `json:"name"`
	Category            string      `json:"category"`
	CurrentStock        float64     `json:"current_stock"`
	DailyUsage          float64     `json:"daily_usage"`
	DaysRemaining       int         `json:"days_remaining"`
	DaysRemainingCapped bool        `json:"days_remaining_capped"`
	Status              AlertStatus `json:"status"`
}

// ExpiringSupply is a supply item whose expiry falls in the look-ahead window
type ExpiringSupply struct {
	Supply
	DaysUntilExpiry int            `json:"days_until_expiry"`
	CurrentStock    float64        `json:"current_stock"`
	Priority        ExpiryPriority `json:"priority"`
}

// PurchaseMix splits recent purchasing between supplier orders and market purchases
type PurchaseMix struct {
	Supply           float64 `json:"supply"`
	Market           float64 `json:"market"`
	SupplyPercentage float64 `json:"supply_percentage"`
	MarketPercentage float64 `json:"market_percentage"`
}

// SupplyConsumption is the recent total usage of one supply item
type SupplyConsumption struct {
	SupplyID     int64   `json:"supply_id"`
	Name         string  `json:"name"`
	QuantityUsed float64 `json:"quantity_used"`
}

// Summary holds the dashboard headline figures
type Summary struct {
	LowStockCount     int     `json:"low_stock_count"`
	ExpiringSoonCount int     `json:"expiring_soon_count"`
	PendingRestocks   int     `json:"pending_restocks"`
	InventoryValue    float64 `json:"inventory_value"`
	MonthlyExpenses   float64 `json:"monthly_expenses"`
}
