package analytics

import (
	"testing"
	"time"

	"github.com/ngson927/Greatea-smart-management/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestBuildRestockRequest(t *testing.T) {
	f := domain.ForecastResult{SupplyID: 12, Predicted30DayNeed: 41.2}

	req := BuildRestockRequest(f, time.Date(2024, 6, 3, 17, 45, 0, 0, time.UTC))

	assert.Equal(t, day(2024, 6, 3), req.Date)
	assert.Equal(t, int64(12), req.SupplyID)
	assert.Equal(t, 42.0, req.QuantityRequested)
	assert.Equal(t, domain.RequestTypeTransfer, req.RequestType)
	assert.Zero(t, req.RequestID)
}

func TestBuildRestockRequest_WholeNeedIsKept(t *testing.T) {
	req := BuildRestockRequest(domain.ForecastResult{SupplyID: 1, Predicted30DayNeed: 60}, day(2024, 1, 1))
	assert.Equal(t, 60.0, req.QuantityRequested)

	req = BuildRestockRequest(domain.ForecastResult{SupplyID: 1}, day(2024, 1, 1))
	assert.Equal(t, 0.0, req.QuantityRequested)
}

func TestToday_UsesConfiguredLocation(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*60*60)
	opts := DefaultOptions()
	opts.Location = loc
	opts.Now = func() time.Time { return time.Date(2024, 1, 31, 20, 0, 0, 0, time.UTC) }

	assert.Equal(t, day(2024, 2, 1), Today(opts))
}
