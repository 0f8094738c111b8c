package analytics

import (
	"sort"
	"time"

	"github.com/ngson927/Greatea-smart-management/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ledgerEntry is an expense or purchase reduced to what the trend needs
type ledgerEntry struct {
	date     time.Time
	category domain.Category
	amount   decimal.Decimal
}

// ExpenseAnalyzer builds month-over-month category trends from expenses and purchases
type ExpenseAnalyzer struct {
	opts Options
}

// NewExpenseAnalyzer creates a new expense trend analyzer
func NewExpenseAnalyzer(opts Options) *ExpenseAnalyzer {
	return &ExpenseAnalyzer{opts: opts.normalized()}
}

// Analyze groups every dated expense and purchase by month and category.
// Undated entries belong to no month but still count toward the category
// and grand totals, reported separately as UndatedTotal.
func (a *ExpenseAnalyzer) Analyze(expenses []domain.Expense, purchases []domain.Purchase) domain.ExpenseTrendReport {
	report := domain.ExpenseTrendReport{
		TopCategories:  []domain.CategoryShare{},
		CategoryTotals: []domain.CategoryAmount{},
		Months:         []domain.MonthlyBreakdown{},
	}
	if len(expenses)+len(purchases) == 0 {
		report.InsufficientData = true
		return report
	}

	dated, undated := unifyLedger(expenses, purchases)
	report.SkippedUndated = len(undated)

	// 1. Sort by date
	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].date.Before(dated[j].date)
	})

	// 2. Group by month, then category; undated entries follow the dated ones
	byMonth := make(map[domain.YearMonth]map[domain.Category]decimal.Decimal)
	months := make([]domain.YearMonth, 0)
	categories := make([]domain.Category, 0)
	seenCategory := make(map[domain.Category]bool)
	see := func(cat domain.Category) {
		if !seenCategory[cat] {
			seenCategory[cat] = true
			categories = append(categories, cat)
		}
	}

	for _, e := range dated {
		ym := domain.YearMonthOf(e.date)
		cells, ok := byMonth[ym]
		if !ok {
			cells = make(map[domain.Category]decimal.Decimal)
			byMonth[ym] = cells
			months = append(months, ym)
		}
		cells[e.category] = cells[e.category].Add(e.amount)
		see(e.category)
	}

	undatedCells := make(map[domain.Category]decimal.Decimal)
	undatedTotal := decimal.Zero
	for _, e := range undated {
		undatedCells[e.category] = undatedCells[e.category].Add(e.amount)
		undatedTotal = undatedTotal.Add(e.amount)
		see(e.category)
	}

	sort.SliceStable(months, func(i, j int) bool { return months[i].Before(months[j]) })

	// 3. Category and monthly totals
	categoryTotals := make(map[domain.Category]decimal.Decimal, len(categories))
	monthlyTotals := make(map[domain.YearMonth]decimal.Decimal, len(months))
	grandTotal := undatedTotal
	for _, ym := range months {
		for cat, amount := range byMonth[ym] {
			categoryTotals[cat] = categoryTotals[cat].Add(amount)
			monthlyTotals[ym] = monthlyTotals[ym].Add(amount)
			grandTotal = grandTotal.Add(amount)
		}
	}
	for cat, amount := range undatedCells {
		categoryTotals[cat] = categoryTotals[cat].Add(amount)
	}

	// 4. Rank categories by total, ties by first appearance
	sort.SliceStable(categories, func(i, j int) bool {
		return categoryTotals[categories[i]].GreaterThan(categoryTotals[categories[j]])
	})

	report.TotalExpenses = grandTotal.InexactFloat64()
	for i, cat := range categories {
		total := categoryTotals[cat]
		report.CategoryTotals = append(report.CategoryTotals, domain.CategoryAmount{
			Category: cat,
			Amount:   total.InexactFloat64(),
		})
		if i < a.opts.TopCategories {
			report.TopCategories = append(report.TopCategories, domain.CategoryShare{
				Category:     cat,
				Amount:       total.InexactFloat64(),
				SharePercent: sharePercent(total, grandTotal),
			})
		}
	}

	for _, ym := range months {
		row := domain.MonthlyBreakdown{
			Month:      ym,
			ByCategory: make([]domain.CategoryAmount, 0, len(categories)),
			Total:      monthlyTotals[ym].InexactFloat64(),
		}
		for _, cat := range categories {
			row.ByCategory = append(row.ByCategory, domain.CategoryAmount{
				Category: cat,
				Amount:   byMonth[ym][cat].InexactFloat64(),
			})
		}
		report.Months = append(report.Months, row)
	}

	if len(undated) > 0 {
		report.UndatedTotal = undatedTotal.InexactFloat64()
		for _, cat := range categories {
			if amount, ok := undatedCells[cat]; ok {
				report.UndatedByCategory = append(report.UndatedByCategory, domain.CategoryAmount{
					Category: cat,
					Amount:   amount.InexactFloat64(),
				})
			}
		}
	}

	// 5. Month over month
	if len(months) >= 2 {
		current := monthlyTotals[months[len(months)-1]]
		previous := monthlyTotals[months[len(months)-2]]
		change := current.Sub(previous)
		report.MonthOverMonthChange = change.InexactFloat64()
		if !previous.IsZero() {
			report.MonthOverMonthPercent = change.Div(previous).Mul(hundred).InexactFloat64()
		}
	}

	return report
}

// unifyLedger merges expenses and purchases into one list, expenses first,
// and splits off the entries without a date.
func unifyLedger(expenses []domain.Expense, purchases []domain.Purchase) (dated, undated []ledgerEntry) {
	dated = make([]ledgerEntry, 0, len(expenses)+len(purchases))
	add := func(date time.Time, category string, amount float64) {
		e := ledgerEntry{category: domain.NormalizeCategory(category), amount: dec(amount)}
		if date.IsZero() {
			undated = append(undated, e)
			return
		}
		e.date = calendarDate(date)
		dated = append(dated, e)
	}

	for _, e := range expenses {
		add(e.Date, e.Category, e.Amount)
	}
	for _, p := range purchases {
		add(p.Date, p.Category, p.Cost)
	}

	return dated, undated
}

func sharePercent(part, total decimal.Decimal) float64 {
	if !total.IsPositive() {
		return 0
	}
	return part.Div(total).Mul(hundred).InexactFloat64()
}
