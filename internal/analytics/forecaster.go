package analytics

import (
	"sort"

	"github.com/ngson927/Greatea-smart-management/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	// reorderFraction of current stock is kept back as the reorder point.
	reorderFraction = 0.30
	forecastHorizon = 30

	criticalWithinDays = 7
	warningWithinDays  = 14
)

var (
	decReorderFraction = decimal.NewFromFloat(reorderFraction)
	decForecastHorizon = decimal.NewFromInt(forecastHorizon)
)

// Forecaster turns usage history and current stock into per-item reorder forecasts
type Forecaster struct{}

// NewForecaster creates a new usage forecaster
func NewForecaster() *Forecaster {
	return &Forecaster{}
}

type usagePartition struct {
	supplyID int64
	records  []domain.UsageRecord
}

// Forecast computes one ForecastResult per supply item with usage history.
// Items whose stock lookup fails are left out and listed in LookupFailures.
// Results are ordered Critical, Warning, Good; ties keep the order in which
// items first appear in usage.
func (f *Forecaster) Forecast(usage []domain.UsageRecord, stock StockLookup) domain.ForecastReport {
	report := domain.ForecastReport{Results: []domain.ForecastResult{}}
	if len(usage) == 0 {
		report.InsufficientData = true
		return report
	}

	for _, p := range partitionUsage(usage) {
		level, _, err := stock.CurrentStock(p.supplyID)
		if err != nil {
			report.LookupFailures = append(report.LookupFailures, domain.LookupFailure{
				SupplyID: p.supplyID,
				Reason:   err.Error(),
			})
			continue
		}

		report.Results = append(report.Results, forecastItem(p, level.QuantityAvailable))
	}

	sort.SliceStable(report.Results, func(i, j int) bool {
		return report.Results[i].ReorderStatus.Priority() < report.Results[j].ReorderStatus.Priority()
	})

	return report
}

// partitionUsage groups records by supply id in order of first appearance and
// sorts each group by date ascending. Undated records sort first.
func partitionUsage(usage []domain.UsageRecord) []usagePartition {
	index := make(map[int64]int)
	partitions := make([]usagePartition, 0)

	for _, u := range usage {
		i, ok := index[u.SupplyID]
		if !ok {
			i = len(partitions)
			index[u.SupplyID] = i
			partitions = append(partitions, usagePartition{supplyID: u.SupplyID})
		}
		u.Date = calendarDate(u.Date)
		partitions[i].records = append(partitions[i].records, u)
	}

	for i := range partitions {
		recs := partitions[i].records
		sort.SliceStable(recs, func(a, b int) bool {
			return recs[a].Date.Before(recs[b].Date)
		})
	}

	return partitions
}

func forecastItem(p usagePartition, currentStock float64) domain.ForecastResult {
	// 1. Days spanned by the dated records, at least one
	span := usageSpanDays(p.records)

	// 2. Total usage
	total := decimal.Zero
	name := ""
	for _, r := range p.records {
		total = total.Add(dec(r.QuantityUsed))
		if name == "" {
			name = r.SupplyName
		}
	}

	// 3. Average daily usage and 30-day need
	decSpan := decimal.NewFromInt(int64(span))
	avg := total.Div(decSpan)
	need := total.Mul(decForecastHorizon).Div(decSpan)

	// 4. Days until the stock decays to the reorder point
	days, noRate := daysUntilReorder(total, decSpan, currentStock)

	return domain.ForecastResult{
		SupplyID:           p.supplyID,
		SupplyName:         fallbackName(name, p.supplyID),
		AvgDailyUsage:      avg.InexactFloat64(),
		CurrentStock:       currentStock,
		DaysUntilReorder:   days,
		NoUsageRate:        noRate,
		Predicted30DayNeed: need.InexactFloat64(),
		ReorderStatus:      ClassifyReorder(days),
	}
}

// usageSpanDays returns max(1, ceil(last - first)) over the dated records.
func usageSpanDays(records []domain.UsageRecord) int {
	var first, last *domain.UsageRecord
	for i := range records {
		if records[i].Date.IsZero() {
			continue
		}
		if first == nil {
			first = &records[i]
		}
		last = &records[i]
	}
	if first == nil {
		return 1
	}

	span := ceilDays(first.Date, last.Date)
	if span < 1 {
		span = 1
	}
	return span
}

// daysUntilReorder returns floor((stock - 0.3*stock) / (total/span)), or
// NoReorderPressure with noRate set when there is no positive usage rate.
// The division is rearranged to avoid dividing by a rounded rate.
func daysUntilReorder(total, span decimal.Decimal, currentStock float64) (int, bool) {
	if !total.IsPositive() {
		return domain.NoReorderPressure, true
	}

	stock := dec(currentStock)
	reorderPoint := stock.Mul(decReorderFraction)
	available := stock.Sub(reorderPoint)

	return int(available.Mul(span).Div(total).Floor().IntPart()), false
}

// ClassifyReorder maps days until reorder onto a status.
func ClassifyReorder(daysUntilReorder int) domain.ReorderStatus {
	switch {
	case daysUntilReorder <= criticalWithinDays:
		return domain.ReorderCritical
	case daysUntilReorder <= warningWithinDays:
		return domain.ReorderWarning
	default:
		return domain.ReorderGood
	}
}
