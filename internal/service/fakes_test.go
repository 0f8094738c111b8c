package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ngson927/Greatea-smart-management/internal/analytics"
	"github.com/ngson927/Greatea-smart-management/internal/cache"
	"github.com/ngson927/Greatea-smart-management/internal/domain"
)

var errDown = errors.New("connection refused")

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type fakeInventory struct {
	usage     []domain.UsageRecord
	stock     []domain.StockLevel
	orders    []domain.Order
	expenses  []domain.Expense
	purchases []domain.Purchase
	supplies  []domain.Supply

	// failing lists the collections that return errDown
	failing map[string]bool
}

func (f *fakeInventory) fail(name string) error {
	if f.failing[name] {
		return errDown
	}
	return nil
}

func (f *fakeInventory) ListUsage(ctx context.Context) ([]domain.UsageRecord, error) {
	return f.usage, f.fail("usage")
}

func (f *fakeInventory) ListStockLevels(ctx context.Context) ([]domain.StockLevel, error) {
	return f.stock, f.fail("stock")
}

func (f *fakeInventory) GetStockLevel(ctx context.Context, supplyID int64) (*domain.StockLevel, error) {
	if f.failing["stock_item"] {
		return nil, errDown
	}
	for _, l := range f.stock {
		if l.SupplyID == supplyID {
			level := l
			return &level, nil
		}
	}
	return nil, nil
}

func (f *fakeInventory) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return f.orders, f.fail("orders")
}

func (f *fakeInventory) ListExpenses(ctx context.Context) ([]domain.Expense, error) {
	return f.expenses, f.fail("expenses")
}

func (f *fakeInventory) ListPurchases(ctx context.Context) ([]domain.Purchase, error) {
	return f.purchases, f.fail("purchases")
}

func (f *fakeInventory) ListSupplies(ctx context.Context) ([]domain.Supply, error) {
	return f.supplies, f.fail("supplies")
}

type fakeRestocks struct {
	mu      sync.Mutex
	created []domain.RestockRequest
	err     error
}

func (f *fakeRestocks) Create(ctx context.Context, req *domain.RestockRequest) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	req.RequestID = int64(len(f.created) + 1)
	f.created = append(f.created, *req)
	return nil
}

func (f *fakeRestocks) Count(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created), nil
}

type memoryCache struct {
	entries     map[cache.DashboardKey]*domain.Dashboard
	invalidated int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[cache.DashboardKey]*domain.Dashboard)}
}

func (m *memoryCache) GetDashboard(ctx context.Context, key cache.DashboardKey) (*domain.Dashboard, bool, error) {
	d, ok := m.entries[key]
	return d, ok, nil
}

func (m *memoryCache) SetDashboard(ctx context.Context, key cache.DashboardKey, d *domain.Dashboard) error {
	m.entries[key] = d
	return nil
}

func (m *memoryCache) InvalidateAll(ctx context.Context) error {
	m.invalidated++
	m.entries = make(map[cache.DashboardKey]*domain.Dashboard)
	return nil
}

func sampleInventory() *fakeInventory {
	expiry := day(2024, 4, 5)
	return &fakeInventory{
		usage: []domain.UsageRecord{
			{Date: day(2024, 3, 11), SupplyID: 1, SupplyName: "Milk", QuantityUsed: 10},
			{Date: day(2024, 3, 21), SupplyID: 1, SupplyName: "Milk", QuantityUsed: 10},
			{Date: day(2024, 3, 20), SupplyID: 2, SupplyName: "Tea", QuantityUsed: 1},
		},
		stock: []domain.StockLevel{
			{SupplyID: 1, QuantityAvailable: 20},
			{SupplyID: 2, QuantityAvailable: 100},
		},
		orders: []domain.Order{
			{Date: day(2024, 3, 1), SupplierID: 7, SupplierName: "Fresh Farms", TotalCost: 100, QuantityReceived: 10},
			{Date: day(2024, 3, 11), SupplierID: 7, SupplierName: "Fresh Farms", TotalCost: 150, QuantityReceived: 15},
		},
		expenses: []domain.Expense{
			{Date: day(2024, 2, 10), Category: "Rent", Amount: 500},
			{Date: day(2024, 3, 10), Category: "Rent", Amount: 500},
		},
		purchases: []domain.Purchase{
			{Date: day(2024, 3, 12), ItemName: "Cups", Category: "Packaging", Cost: 50},
		},
		supplies: []domain.Supply{
			{SupplyID: 1, Name: "Milk", Category: "Dairy", TotalQuantity: 20, CostPerUnit: 1.5, ExpiryDate: &expiry},
			{SupplyID: 2, Name: "Tea", Category: "Leaves", TotalQuantity: 100, CostPerUnit: 0.5},
		},
	}
}

func testSettings() AnalyticsSettings {
	opts := analytics.DefaultOptions()
	opts.Now = func() time.Time { return time.Date(2024, 3, 31, 9, 0, 0, 0, time.UTC) }
	return AnalyticsSettings{Options: opts}
}
