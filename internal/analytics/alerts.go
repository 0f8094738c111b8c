package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/ngson927/Greatea-smart-management/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	lowStockThreshold   = 10
	recentWindowDays    = 30
	fallbackDailyUsage  = 0.1
	daysRemainingCap    = 365
	alertCriticalBelow  = 3
	alertWarningBelow   = 7
	expiryWindowDays    = 30
	expiryHighBelow     = 7
	expiryMediumBelow   = 14
	topSuppliesLimit    = 5
	unknownCategoryName = "Unknown"
)

// Monitor computes the short-horizon dashboard views: low-stock alerts,
// expiring supplies, purchase mix, consumption leaders and headline figures.
type Monitor struct {
	opts Options
}

// NewMonitor creates a new dashboard monitor
func NewMonitor(opts Options) *Monitor {
	return &Monitor{opts: opts.normalized()}
}

// inWindow reports whether the calendar date of t lies in [from, to].
func inWindow(t, from, to time.Time) bool {
	if t.IsZero() {
		return false
	}
	d := calendarDate(t)
	return !d.Before(from) && !d.After(to)
}

// onOrAfter reports whether the calendar date of t is from or later.
func onOrAfter(t, from time.Time) bool {
	return !t.IsZero() && !calendarDate(t).Before(from)
}

func indexSupplies(supplies []domain.Supply) map[int64]domain.Supply {
	byID := make(map[int64]domain.Supply, len(supplies))
	for _, s := range supplies {
		if _, ok := byID[s.SupplyID]; !ok {
			byID[s.SupplyID] = s
		}
	}
	return byID
}

// StockAlerts flags every stock level under the low-stock threshold, in input
// order. Daily usage comes from usage dated 30 days ago or later, future
// dates included; an item with no recent usage is assumed to use 0.1 units a day.
func (m *Monitor) StockAlerts(stock []domain.StockLevel, usage []domain.UsageRecord, supplies []domain.Supply) []domain.StockAlert {
	today := m.opts.today()
	from := today.AddDate(0, 0, -recentWindowDays)

	recent := make(map[int64]decimal.Decimal)
	for _, u := range usage {
		if onOrAfter(u.Date, from) {
			recent[u.SupplyID] = recent[u.SupplyID].Add(dec(u.QuantityUsed))
		}
	}

	byID := indexSupplies(supplies)
	alerts := make([]domain.StockAlert, 0)

	for _, s := range stock {
		if s.QuantityAvailable >= lowStockThreshold {
			continue
		}

		available := dec(s.QuantityAvailable)
		daily := decimal.NewFromFloat(fallbackDailyUsage)
		days := int(available.Div(daily).IntPart())
		if used := recent[s.SupplyID]; used.IsPositive() {
			window := decimal.NewFromInt(recentWindowDays)
			daily = used.Div(window)
			days = int(available.Mul(window).Div(used).IntPart())
		}

		alert := domain.StockAlert{
			SupplyID:            s.SupplyID,
			Name:                fmt.Sprintf("Supply %d", s.SupplyID),
			Category:            unknownCategoryName,
			CurrentStock:        s.QuantityAvailable,
			DailyUsage:          daily.InexactFloat64(),
			DaysRemaining:       days,
			DaysRemainingCapped: days >= daysRemainingCap,
			Status:              classifyAlert(days),
		}
		if sup, ok := byID[s.SupplyID]; ok {
			alert.Name = sup.Name
			alert.Category = sup.Category
		}

		alerts = append(alerts, alert)
	}

	return alerts
}

func classifyAlert(days int) domain.AlertStatus {
	switch {
	case days < alertCriticalBelow:
		return domain.AlertCritical
	case days < alertWarningBelow:
		return domain.AlertWarning
	default:
		return domain.AlertLow
	}
}

// ExpiringSoon lists supplies expiring within the next 30 days, soonest first.
func (m *Monitor) ExpiringSoon(supplies []domain.Supply, stock []domain.StockLevel) []domain.ExpiringSupply {
	today := m.opts.today()
	until := today.AddDate(0, 0, expiryWindowDays)
	levels := NewStockTable(stock)

	out := make([]domain.ExpiringSupply, 0)
	for _, s := range supplies {
		if s.ExpiryDate == nil || !inWindow(*s.ExpiryDate, today, until) {
			continue
		}

		days := ceilDays(today, calendarDate(*s.ExpiryDate))
		item := domain.ExpiringSupply{
			Supply:          s,
			DaysUntilExpiry: days,
			Priority:        classifyExpiry(days),
		}
		if l, ok, _ := levels.CurrentStock(s.SupplyID); ok {
			item.CurrentStock = l.QuantityAvailable
		}
		out = append(out, item)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DaysUntilExpiry < out[j].DaysUntilExpiry
	})

	return out
}

func classifyExpiry(days int) domain.ExpiryPriority {
	switch {
	case days < expiryHighBelow:
		return domain.ExpiryHigh
	case days < expiryMediumBelow:
		return domain.ExpiryMedium
	default:
		return domain.ExpiryLow
	}
}

// PurchaseMix splits the last 30 days of purchasing between supplier orders
// and market purchases.
func (m *Monitor) PurchaseMix(orders []domain.Order, purchases []domain.Purchase) domain.PurchaseMix {
	today := m.opts.today()
	from := today.AddDate(0, 0, -recentWindowDays)

	supply := decimal.Zero
	for _, o := range orders {
		if inWindow(o.Date, from, today) {
			supply = supply.Add(dec(o.TotalCost))
		}
	}
	market := decimal.Zero
	for _, p := range purchases {
		if inWindow(p.Date, from, today) {
			market = market.Add(dec(p.Cost))
		}
	}

	total := supply.Add(market)
	if !total.IsPositive() {
		return domain.PurchaseMix{}
	}

	return domain.PurchaseMix{
		Supply:           supply.InexactFloat64(),
		Market:           market.InexactFloat64(),
		SupplyPercentage: roundFloat(sharePercent(supply, total), 2),
		MarketPercentage: roundFloat(sharePercent(market, total), 2),
	}
}

// TopSupplies returns the five most consumed supply items over the last 30 days.
func (m *Monitor) TopSupplies(usage []domain.UsageRecord, supplies []domain.Supply) []domain.SupplyConsumption {
	today := m.opts.today()
	from := today.AddDate(0, 0, -recentWindowDays)
	byID := indexSupplies(supplies)

	index := make(map[int64]int)
	totals := make([]decimal.Decimal, 0)
	out := make([]domain.SupplyConsumption, 0)

	for _, u := range usage {
		if !inWindow(u.Date, from, today) {
			continue
		}
		i, ok := index[u.SupplyID]
		if !ok {
			i = len(out)
			index[u.SupplyID] = i
			name := u.SupplyName
			if sup, known := byID[u.SupplyID]; known && sup.Name != "" {
				name = sup.Name
			}
			out = append(out, domain.SupplyConsumption{SupplyID: u.SupplyID, Name: fallbackName(name, u.SupplyID)})
			totals = append(totals, decimal.Zero)
		}
		totals[i] = totals[i].Add(dec(u.QuantityUsed))
	}

	for i := range out {
		out[i].QuantityUsed = totals[i].InexactFloat64()
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].QuantityUsed > out[j].QuantityUsed
	})
	if len(out) > topSuppliesLimit {
		out = out[:topSuppliesLimit]
	}

	return out
}

// Summarize computes the headline figures shown above the dashboard sections.
func (m *Monitor) Summarize(stock []domain.StockLevel, supplies []domain.Supply, expenses []domain.Expense, pendingRestocks int) domain.Summary {
	today := m.opts.today()
	from := today.AddDate(0, 0, -recentWindowDays)
	until := today.AddDate(0, 0, expiryWindowDays)

	summary := domain.Summary{PendingRestocks: pendingRestocks}

	for _, s := range stock {
		if s.QuantityAvailable < lowStockThreshold {
			summary.LowStockCount++
		}
	}

	value := decimal.Zero
	for _, s := range supplies {
		value = value.Add(dec(s.TotalQuantity).Mul(dec(s.CostPerUnit)))
		if s.ExpiryDate != nil && inWindow(*s.ExpiryDate, today, until) {
			summary.ExpiringSoonCount++
		}
	}
	summary.InventoryValue = value.InexactFloat64()

	monthly := decimal.Zero
	for _, e := range expenses {
		if inWindow(e.Date, from, today) {
			monthly = monthly.Add(dec(e.Amount))
		}
	}
	summary.MonthlyExpenses = monthly.InexactFloat64()

	return summary
}
