package analytics

import (
	"math"
	"time"

	"github.com/ngson927/Greatea-smart-management/internal/domain"
)

// BuildRestockRequest turns a forecast line into a transfer request for the
// predicted 30-day need, rounded up to whole units and dated today.
func BuildRestockRequest(f domain.ForecastResult, today time.Time) domain.RestockRequest {
	quantity := math.Ceil(f.Predicted30DayNeed)
	if quantity < 0 || math.IsNaN(quantity) {
		quantity = 0
	}

	return domain.RestockRequest{
		Date:              calendarDate(today),
		SupplyID:          f.SupplyID,
		QuantityRequested: quantity,
		RequestType:       domain.RequestTypeTransfer,
	}
}

// Today returns the current calendar date under opts.
func Today(opts Options) time.Time {
	return opts.normalized().today()
}
