package analytics

import (
	"sort"
	"time"

	"github.com/ngson927/Greatea-smart-management/internal/domain"
	"github.com/shopspring/decimal"
)

// SupplierAnalyzer builds per-supplier scorecards from delivery orders
type SupplierAnalyzer struct {
	opts Options
}

// NewSupplierAnalyzer creates a new supplier performance analyzer
func NewSupplierAnalyzer(opts Options) *SupplierAnalyzer {
	return &SupplierAnalyzer{opts: opts.normalized()}
}

type supplierAccumulator struct {
	id         int64
	name       string
	orders     int
	totalCost  decimal.Decimal
	items      decimal.Decimal
	orderDates []time.Time
}

// Analyze aggregates orders per supplier. Scorecards are sorted by total cost
// descending (ties keep first-appearance order) and the first TopSuppliers of
// them are repeated in Top.
func (a *SupplierAnalyzer) Analyze(orders []domain.Order) domain.SupplierReport {
	report := domain.SupplierReport{
		Scorecards: []domain.SupplierScorecard{},
		Top:        []domain.SupplierScorecard{},
	}
	if len(orders) == 0 {
		report.InsufficientData = true
		return report
	}

	now := a.opts.now()

	index := make(map[int64]int)
	accs := make([]*supplierAccumulator, 0)
	for _, o := range orders {
		i, ok := index[o.SupplierID]
		if !ok {
			i = len(accs)
			index[o.SupplierID] = i
			accs = append(accs, &supplierAccumulator{id: o.SupplierID})
		}
		acc := accs[i]

		// 1. Counters
		acc.orders++
		acc.totalCost = acc.totalCost.Add(dec(o.TotalCost))
		acc.items = acc.items.Add(dec(o.QuantityReceived))
		if acc.name == "" {
			acc.name = o.SupplierName
		}
		if !o.Date.IsZero() {
			acc.orderDates = append(acc.orderDates, calendarDate(o.Date))
		}
	}

	for _, acc := range accs {
		report.Scorecards = append(report.Scorecards, acc.scorecard(now))
	}

	sort.SliceStable(report.Scorecards, func(i, j int) bool {
		return report.Scorecards[i].TotalCost > report.Scorecards[j].TotalCost
	})

	k := a.opts.TopSuppliers
	if k > len(report.Scorecards) {
		k = len(report.Scorecards)
	}
	report.Top = append(report.Top, report.Scorecards[:k]...)

	return report
}

func (acc *supplierAccumulator) scorecard(now time.Time) domain.SupplierScorecard {
	card := domain.SupplierScorecard{
		SupplierID:   acc.id,
		SupplierName: fallbackName(acc.name, acc.id),
		TotalOrders:  acc.orders,
		TotalCost:    acc.totalCost.InexactFloat64(),
		ItemsOrdered: acc.items.InexactFloat64(),
	}

	// 2. Average cost per item
	if acc.items.IsPositive() {
		card.AvgCostPerItem = acc.totalCost.Div(acc.items).InexactFloat64()
	}

	dates := append([]time.Time(nil), acc.orderDates...)
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	// 3. Average gap between consecutive orders
	if len(dates) >= 2 {
		gaps := 0
		for i := 1; i < len(dates); i++ {
			gaps += ceilDays(dates[i-1], dates[i])
		}
		card.AvgDaysBetweenOrders = float64(gaps) / float64(len(dates)-1)
	}

	// 4. Days since the latest order
	if len(dates) > 0 {
		card.DaysSinceLastOrder = ceilDays(dates[len(dates)-1], now)
	}

	return card
}
