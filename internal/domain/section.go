package domain

import "time"

// SectionStatus is the state of one dashboard section
type SectionStatus string

const (
	SectionOK               SectionStatus = "ok"
	SectionInsufficientData SectionStatus = "insufficient_data"
	SectionError            SectionStatus = "error"
)

// Section wraps one analysis result with its state. Error is only set when
// Status is SectionError.
type Section[T any] struct {
	Status SectionStatus `json:"status"`
	Error  string        `json:"error,omitempty"`
	Data   T             `json:"data"`
}

// Dashboard aggregates every analysis the inventory dashboard shows
type Dashboard struct {
	ReportDate  string                       `json:"report_date"`
	Summary     Section[Summary]             `json:"summary"`
	Forecast    Section[ForecastReport]      `json:"forecast"`
	Suppliers   Section[SupplierReport]      `json:"suppliers"`
	Expenses    Section[ExpenseTrendReport]  `json:"expenses"`
	StockAlerts Section[[]StockAlert]        `json:"stock_alerts"`
	Expiring    Section[[]ExpiringSupply]    `json:"expiring_soon"`
	PurchaseMix Section[PurchaseMix]         `json:"purchase_mix"`
	TopSupplies Section[[]SupplyConsumption] `json:"top_supplies"`
	GeneratedAt time.Time                    `json:"generated_at"`
}

// FailedSections names the sections whose inputs could not be loaded
func (d *Dashboard) FailedSections() []string {
	statuses := []struct {
		name   string
		status SectionStatus
	}{
		{"summary", d.Summary.Status},
		{"forecast", d.Forecast.Status},
		{"suppliers", d.Suppliers.Status},
		{"expenses", d.Expenses.Status},
		{"stock_alerts", d.StockAlerts.Status},
		{"expiring_soon", d.Expiring.Status},
		{"purchase_mix", d.PurchaseMix.Status},
		{"top_supplies", d.TopSupplies.Status},
	}

	failed := make([]string, 0)
	for _, s := range statuses {
		if s.status == SectionError {
			failed = append(failed, s.name)
		}
	}
	return failed
}
