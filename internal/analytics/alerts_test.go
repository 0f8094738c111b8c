package analytics

import (
	"testing"
	"time"

	"github.com/ngson927/Greatea-smart-management/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datePtr(y, m, d int) *time.Time {
	t := day(y, time.Month(m), d)
	return &t
}

func TestMonitor_StockAlerts(t *testing.T) {
	m := NewMonitor(pinnedOptions(day(2024, 3, 31)))
	stock := []domain.StockLevel{
		{SupplyID: 1, QuantityAvailable: 4},
		{SupplyID: 2, QuantityAvailable: 50},
		{SupplyID: 3, QuantityAvailable: 9},
		{SupplyID: 4, QuantityAvailable: 5},
	}
	usage := []domain.UsageRecord{
		{Date: day(2024, 3, 1), SupplyID: 1, QuantityUsed: 30},
		{Date: day(2024, 3, 20), SupplyID: 1, QuantityUsed: 30},
		{Date: day(2024, 2, 1), SupplyID: 4, QuantityUsed: 500},
		{Date: day(2024, 3, 25), SupplyID: 4, QuantityUsed: 15},
	}
	supplies := []domain.Supply{{SupplyID: 1, Name: "Oat milk", Category: "Dairy"}}

	alerts := m.StockAlerts(stock, usage, supplies)

	require.Len(t, alerts, 3)

	assert.Equal(t, int64(1), alerts[0].SupplyID)
	assert.Equal(t, "Oat milk", alerts[0].Name)
	assert.Equal(t, "Dairy", alerts[0].Category)
	assert.Equal(t, 2.0, alerts[0].DailyUsage)
	assert.Equal(t, 2, alerts[0].DaysRemaining)
	assert.Equal(t, domain.AlertCritical, alerts[0].Status)

	assert.Equal(t, int64(3), alerts[1].SupplyID)
	assert.Equal(t, "Supply 3", alerts[1].Name)
	assert.Equal(t, "Unknown", alerts[1].Category)
	assert.Equal(t, 0.1, alerts[1].DailyUsage)
	assert.Equal(t, 90, alerts[1].DaysRemaining)
	assert.False(t, alerts[1].DaysRemainingCapped)
	assert.Equal(t, domain.AlertLow, alerts[1].Status)

	assert.Equal(t, int64(4), alerts[2].SupplyID)
	assert.Equal(t, 0.5, alerts[2].DailyUsage)
	assert.Equal(t, 10, alerts[2].DaysRemaining)
}

func TestMonitor_StockAlertsCapped(t *testing.T) {
	m := NewMonitor(pinnedOptions(day(2024, 3, 31)))

	alerts := m.StockAlerts([]domain.StockLevel{{SupplyID: 1, QuantityAvailable: 9.5}}, nil, nil)

	require.Len(t, alerts, 1)
	assert.Equal(t, 95, alerts[0].DaysRemaining)

	alerts = m.StockAlerts([]domain.StockLevel{{SupplyID: 1, QuantityAvailable: 9.5}}, []domain.UsageRecord{
		{Date: day(2024, 3, 30), SupplyID: 1, QuantityUsed: 0.5},
	}, nil)
	assert.Equal(t, 570, alerts[0].DaysRemaining)
	assert.True(t, alerts[0].DaysRemainingCapped)
}

func TestMonitor_StockAlertsCountFutureUsage(t *testing.T) {
	m := NewMonitor(pinnedOptions(day(2024, 3, 31)))
	usage := []domain.UsageRecord{
		{Date: day(2024, 4, 10), SupplyID: 1, QuantityUsed: 20},
		{Date: day(2024, 3, 1), SupplyID: 1, QuantityUsed: 10},
		{Date: day(2024, 2, 29), SupplyID: 1, QuantityUsed: 300},
		{SupplyID: 1, QuantityUsed: 300},
	}

	alerts := m.StockAlerts([]domain.StockLevel{{SupplyID: 1, QuantityAvailable: 9}}, usage, nil)

	require.Len(t, alerts, 1)
	assert.Equal(t, 1.0, alerts[0].DailyUsage)
	assert.Equal(t, 9, alerts[0].DaysRemaining)
}

func TestMonitor_ExpiringSoon(t *testing.T) {
	m := NewMonitor(pinnedOptions(day(2024, 3, 1)))
	supplies := []domain.Supply{
		{SupplyID: 1, Name: "Cream", ExpiryDate: datePtr(2024, 3, 20)},
		{SupplyID: 2, Name: "Sugar"},
		{SupplyID: 3, Name: "Yogurt", ExpiryDate: datePtr(2024, 3, 3)},
		{SupplyID: 4, Name: "Old", ExpiryDate: datePtr(2024, 2, 28)},
		{SupplyID: 5, Name: "Far", ExpiryDate: datePtr(2024, 4, 15)},
		{SupplyID: 6, Name: "Edge", ExpiryDate: datePtr(2024, 3, 31)},
		{SupplyID: 7, Name: "Soon", ExpiryDate: datePtr(2024, 3, 11)},
	}
	stock := []domain.StockLevel{{SupplyID: 3, QuantityAvailable: 6}}

	items := m.ExpiringSoon(supplies, stock)

	require.Len(t, items, 4)
	assert.Equal(t, "Yogurt", items[0].Name)
	assert.Equal(t, 2, items[0].DaysUntilExpiry)
	assert.Equal(t, 6.0, items[0].CurrentStock)
	assert.Equal(t, domain.ExpiryHigh, items[0].Priority)

	assert.Equal(t, "Soon", items[1].Name)
	assert.Equal(t, domain.ExpiryMedium, items[1].Priority)

	assert.Equal(t, "Cream", items[2].Name)
	assert.Equal(t, 0.0, items[2].CurrentStock)
	assert.Equal(t, domain.ExpiryLow, items[2].Priority)

	assert.Equal(t, "Edge", items[3].Name)
	assert.Equal(t, 30, items[3].DaysUntilExpiry)
}

func TestMonitor_PurchaseMix(t *testing.T) {
	m := NewMonitor(pinnedOptions(day(2024, 3, 31)))
	orders := []domain.Order{
		{Date: day(2024, 3, 10), TotalCost: 200},
		{Date: day(2024, 1, 10), TotalCost: 1000},
	}
	purchases := []domain.Purchase{
		{Date: day(2024, 3, 1), Cost: 100},
	}

	mix := m.PurchaseMix(orders, purchases)

	assert.Equal(t, 200.0, mix.Supply)
	assert.Equal(t, 100.0, mix.Market)
	assert.Equal(t, 66.67, mix.SupplyPercentage)
	assert.Equal(t, 33.33, mix.MarketPercentage)

	assert.Equal(t, domain.PurchaseMix{}, m.PurchaseMix(nil, nil))
}

func TestMonitor_TopSupplies(t *testing.T) {
	m := NewMonitor(pinnedOptions(day(2024, 3, 31)))
	var usage []domain.UsageRecord
	for id := int64(1); id <= 7; id++ {
		usage = append(usage, domain.UsageRecord{Date: day(2024, 3, 15), SupplyID: id, QuantityUsed: float64(id % 4)})
	}
	usage = append(usage, domain.UsageRecord{Date: day(2023, 12, 1), SupplyID: 1, QuantityUsed: 100})

	top := m.TopSupplies(usage, []domain.Supply{{SupplyID: 3, Name: "Beans"}})

	require.Len(t, top, 5)
	ids := make([]int64, 0, len(top))
	for _, s := range top {
		ids = append(ids, s.SupplyID)
	}
	assert.Equal(t, []int64{3, 7, 2, 6, 1}, ids)
	assert.Equal(t, "Beans", top[0].Name)
	assert.Equal(t, "ID: 7", top[1].Name)
}

func TestMonitor_Summarize(t *testing.T) {
	m := NewMonitor(pinnedOptions(day(2024, 3, 31)))
	stock := []domain.StockLevel{{SupplyID: 1, QuantityAvailable: 3}, {SupplyID: 2, QuantityAvailable: 30}}
	supplies := []domain.Supply{
		{SupplyID: 1, TotalQuantity: 10, CostPerUnit: 2.5, ExpiryDate: datePtr(2024, 4, 5)},
		{SupplyID: 2, TotalQuantity: 4, CostPerUnit: 10},
	}
	expenses := []domain.Expense{
		{Date: day(2024, 3, 1), Amount: 70},
		{Date: day(2024, 2, 1), Amount: 1000},
	}

	summary := m.Summarize(stock, supplies, expenses, 4)

	assert.Equal(t, domain.Summary{
		LowStockCount:     1,
		ExpiringSoonCount: 1,
		PendingRestocks:   4,
		InventoryValue:    65,
		MonthlyExpenses:   70,
	}, summary)
}
