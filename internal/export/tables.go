package export

import (
	"strconv"

	"github.com/ngson927/Greatea-smart-management/internal/domain"
)

// Reports is the set of reports rendered by one export run.
type Reports struct {
	Forecast  domain.ForecastReport
	Suppliers domain.SupplierReport
	Expenses  domain.ExpenseTrendReport
}

// table is a rendered report: a header plus typed cells, so the XLSX writer
// can keep numbers numeric.
type table struct {
	name   string
	header []string
	rows   [][]any
}

func (r Reports) tables() []table {
	return []table{
		expenseTable(r.Expenses),
		forecastTable(r.Forecast),
		supplierTable(r.Suppliers),
	}
}

func forecastTable(r domain.ForecastReport) table {
	t := table{
		name: "forecast",
		header: []string{
			"supply_id", "supply_name", "avg_daily_usage", "current_stock",
			"days_until_reorder", "no_usage_rate", "predicted_30day_need", "reorder_status",
		},
	}
	for _, f := range r.Results {
		t.rows = append(t.rows, []any{
			f.SupplyID, f.SupplyName, f.AvgDailyUsage, f.CurrentStock,
			f.DaysUntilReorder, f.NoUsageRate, f.Predicted30DayNeed, string(f.ReorderStatus),
		})
	}
	return t
}

func supplierTable(r domain.SupplierReport) table {
	t := table{
		name: "suppliers",
		header: []string{
			"supplier_id", "supplier_name", "total_orders", "total_cost", "items_ordered",
			"avg_cost_per_item", "avg_days_between_orders", "days_since_last_order",
		},
	}
	for _, s := range r.Scorecards {
		t.rows = append(t.rows, []any{
			s.SupplierID, s.SupplierName, s.TotalOrders, s.TotalCost, s.ItemsOrdered,
			s.AvgCostPerItem, s.AvgDaysBetweenOrders, s.DaysSinceLastOrder,
		})
	}
	return t
}

// expenseTable lays the trend report out as a month x category matrix with
// categories in ranking order; a category absent from a month reads 0.
// Undated amounts get their own row so the columns add up to the total row.
func expenseTable(r domain.ExpenseTrendReport) table {
	t := table{name: "expenses", header: []string{"month"}}
	for _, c := range r.CategoryTotals {
		t.header = append(t.header, c.Category.String())
	}
	t.header = append(t.header, "total")

	for _, m := range r.Months {
		amounts := make(map[domain.Category]float64, len(m.ByCategory))
		for _, a := range m.ByCategory {
			amounts[a.Category] = a.Amount
		}
		row := []any{m.Month.String()}
		for _, c := range r.CategoryTotals {
			row = append(row, amounts[c.Category])
		}
		t.rows = append(t.rows, append(row, m.Total))
	}

	if len(r.UndatedByCategory) > 0 {
		amounts := make(map[domain.Category]float64, len(r.UndatedByCategory))
		for _, a := range r.UndatedByCategory {
			amounts[a.Category] = a.Amount
		}
		row := []any{"undated"}
		for _, c := range r.CategoryTotals {
			row = append(row, amounts[c.Category])
		}
		t.rows = append(t.rows, append(row, r.UndatedTotal))
	}

	if len(r.CategoryTotals) > 0 {
		row := []any{"total"}
		for _, c := range r.CategoryTotals {
			row = append(row, c.Amount)
		}
		t.rows = append(t.rows, append(row, r.TotalExpenses))
	}
	return t
}

func formatCell(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}
