package analytics

import (
	"testing"
	"time"

	"github.com/ngson927/Greatea-smart-management/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pinnedOptions(now time.Time) Options {
	opts := DefaultOptions()
	opts.Now = func() time.Time { return now }
	return opts
}

func TestSupplierAnalyzer_TwoOrders(t *testing.T) {
	orders := []domain.Order{
		{Date: day(2024, 1, 1), SupplierID: 7, SupplierName: "Fresh Farms", TotalCost: 100, QuantityReceived: 10},
		{Date: day(2024, 1, 11), SupplierID: 7, SupplierName: "Fresh Farms", TotalCost: 150, QuantityReceived: 15},
	}

	report := NewSupplierAnalyzer(pinnedOptions(day(2024, 2, 1))).Analyze(orders)

	require.False(t, report.InsufficientData)
	require.Len(t, report.Scorecards, 1)
	card := report.Scorecards[0]
	assert.Equal(t, int64(7), card.SupplierID)
	assert.Equal(t, "Fresh Farms", card.SupplierName)
	assert.Equal(t, 2, card.TotalOrders)
	assert.Equal(t, 250.0, card.TotalCost)
	assert.Equal(t, 25.0, card.ItemsOrdered)
	assert.Equal(t, 10.0, card.AvgCostPerItem)
	assert.Equal(t, 10.0, card.AvgDaysBetweenOrders)
	assert.Equal(t, 21, card.DaysSinceLastOrder)
	assert.Equal(t, report.Scorecards, report.Top)
}

func TestSupplierAnalyzer_SingleOrder(t *testing.T) {
	orders := []domain.Order{
		{Date: day(2024, 3, 1), SupplierID: 3, TotalCost: 40, QuantityReceived: 0},
	}

	report := NewSupplierAnalyzer(pinnedOptions(time.Date(2024, 3, 5, 13, 0, 0, 0, time.UTC))).Analyze(orders)

	require.Len(t, report.Scorecards, 1)
	card := report.Scorecards[0]
	assert.Equal(t, "ID: 3", card.SupplierName)
	assert.Equal(t, 0.0, card.AvgDaysBetweenOrders)
	assert.Equal(t, 0.0, card.AvgCostPerItem)
	// 4 days and 13 hours, rounded up
	assert.Equal(t, 5, card.DaysSinceLastOrder)
}

func TestSupplierAnalyzer_RankingAndTopK(t *testing.T) {
	orders := []domain.Order{
		{Date: day(2024, 1, 1), SupplierID: 1, TotalCost: 10},
		{Date: day(2024, 1, 1), SupplierID: 2, TotalCost: 30},
		{Date: day(2024, 1, 1), SupplierID: 3, TotalCost: 30},
		{Date: day(2024, 1, 1), SupplierID: 4, TotalCost: 5},
		{Date: day(2024, 1, 2), SupplierID: 1, TotalCost: 15},
	}
	opts := pinnedOptions(day(2024, 1, 10))
	opts.TopSuppliers = 2

	report := NewSupplierAnalyzer(opts).Analyze(orders)

	ids := make([]int64, 0, len(report.Scorecards))
	for _, c := range report.Scorecards {
		ids = append(ids, c.SupplierID)
	}
	assert.Equal(t, []int64{2, 3, 1, 4}, ids)
	require.Len(t, report.Top, 2)
	assert.Equal(t, int64(2), report.Top[0].SupplierID)
	assert.Equal(t, int64(3), report.Top[1].SupplierID)
}

func TestSupplierAnalyzer_UndatedOrdersCountButHaveNoGaps(t *testing.T) {
	orders := []domain.Order{
		{SupplierID: 5, TotalCost: 20, QuantityReceived: 2},
		{Date: day(2024, 1, 4), SupplierID: 5, TotalCost: 20, QuantityReceived: 2},
	}

	report := NewSupplierAnalyzer(pinnedOptions(day(2024, 1, 4))).Analyze(orders)

	card := report.Scorecards[0]
	assert.Equal(t, 2, card.TotalOrders)
	assert.Equal(t, 0.0, card.AvgDaysBetweenOrders)
	assert.Equal(t, 0, card.DaysSinceLastOrder)
}

func TestSupplierAnalyzer_NoOrders(t *testing.T) {
	report := NewSupplierAnalyzer(DefaultOptions()).Analyze(nil)

	assert.True(t, report.InsufficientData)
	assert.NotNil(t, report.Scorecards)
	assert.Empty(t, report.Scorecards)
	assert.Empty(t, report.Top)
}

func TestSupplierAnalyzer_Idempotent(t *testing.T) {
	orders := []domain.Order{
		{Date: day(2024, 1, 9), SupplierID: 1, TotalCost: 12.5, QuantityReceived: 3},
		{Date: day(2024, 1, 2), SupplierID: 1, TotalCost: 7.25, QuantityReceived: 1},
		{Date: day(2024, 1, 5), SupplierID: 2, TotalCost: 99, QuantityReceived: 9},
	}
	a := NewSupplierAnalyzer(pinnedOptions(day(2024, 2, 1)))

	assert.Equal(t, a.Analyze(orders), a.Analyze(orders))
}
