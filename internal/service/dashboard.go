package service

import (
	"context"
	"sync"
	"time"

	"github.com/ngson927/Greatea-smart-management/internal/analytics"
	"github.com/ngson927/Greatea-smart-management/internal/cache"
	"github.com/ngson927/Greatea-smart-management/internal/domain"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type collection uint8

const (
	needUsage collection = 1 << iota
	needStock
	needOrders
	needExpenses
	needPurchases
	needSupplies
	needRestockCount

	needAll = needUsage | needStock | needOrders | needExpenses | needPurchases | needSupplies | needRestockCount
)

var collectionOrder = []collection{needUsage, needStock, needOrders, needExpenses, needPurchases, needSupplies, needRestockCount}

// collections holds whatever record sets were loaded for one request. A
// collection that failed to load has an entry in errs and a nil slice.
type collections struct {
	usage           []domain.UsageRecord
	stock           []domain.StockLevel
	orders          []domain.Order
	expenses        []domain.Expense
	purchases       []domain.Purchase
	supplies        []domain.Supply
	pendingRestocks int

	errs map[collection]error
}

func (c *collections) firstErr(deps collection) error {
	for _, which := range collectionOrder {
		if deps&which == 0 {
			continue
		}
		if err, ok := c.errs[which]; ok {
			return err
		}
	}
	return nil
}

// load fetches the requested collections concurrently. One failing fetch
// never cancels the others.
func (s *AnalyticsService) load(ctx context.Context, mask collection) *collections {
	c := &collections{errs: make(map[collection]error)}

	var (
		mu sync.Mutex
		g  errgroup.Group
	)

	fetch := func(which collection, name string, fn func() error) {
		if mask&which == 0 {
			return
		}
		g.Go(func() error {
			start := time.Now()
			if err := fn(); err != nil {
				log.Error().Err(err).Str("collection", name).Msg("analytics: collection unavailable")
				mu.Lock()
				c.errs[which] = upstream(name, err)
				mu.Unlock()
				return nil
			}
			log.Debug().Str("collection", name).Dur("duration", time.Since(start)).Msg("analytics: collection loaded")
			return nil
		})
	}

	fetch(needUsage, "usage records", func() (err error) {
		c.usage, err = s.repo.ListUsage(ctx)
		return err
	})
	fetch(needStock, "stock levels", func() (err error) {
		c.stock, err = s.repo.ListStockLevels(ctx)
		return err
	})
	fetch(needOrders, "supply orders", func() (err error) {
		c.orders, err = s.repo.ListOrders(ctx)
		return err
	})
	fetch(needExpenses, "expenses", func() (err error) {
		c.expenses, err = s.repo.ListExpenses(ctx)
		return err
	})
	fetch(needPurchases, "market purchases", func() (err error) {
		c.purchases, err = s.repo.ListPurchases(ctx)
		return err
	})
	fetch(needSupplies, "supplies", func() (err error) {
		c.supplies, err = s.repo.ListSupplies(ctx)
		return err
	})
	if s.restocks != nil {
		fetch(needRestockCount, "restock requests", func() (err error) {
			c.pendingRestocks, err = s.restocks.Count(ctx)
			return err
		})
	}

	_ = g.Wait()

	return c
}

// buildSection runs compute only when every collection it depends on loaded.
func buildSection[T any](c *collections, deps collection, compute func() (T, bool)) domain.Section[T] {
	if err := c.firstErr(deps); err != nil {
		return domain.Section[T]{Status: domain.SectionError, Error: err.Error()}
	}

	data, insufficient := compute()
	if insufficient {
		return domain.Section[T]{Status: domain.SectionInsufficientData, Data: data}
	}
	return domain.Section[T]{Status: domain.SectionOK, Data: data}
}

func (s *AnalyticsService) dashboardKey() cache.DashboardKey {
	opts := s.settings.Options
	return cache.DashboardKey{
		ReportDate:    s.Today().Format(time.DateOnly),
		TopSuppliers:  opts.TopSuppliers,
		TopCategories: opts.TopCategories,
		Location:      opts.Location.String(),
	}
}

// Dashboard assembles every dashboard section. A collection that cannot be
// loaded marks only the sections that depend on it as failed.
func (s *AnalyticsService) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	start := time.Now()
	key := s.dashboardKey()

	if cached, ok, err := s.cache.GetDashboard(ctx, key); err == nil && ok {
		return cached, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("dashboard: cache get failed")
	}

	c := s.load(ctx, needAll)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d := &domain.Dashboard{
		ReportDate:  key.ReportDate,
		GeneratedAt: s.settings.Options.Now().UTC(),
	}

	d.Summary = buildSection(c, needStock|needSupplies|needExpenses|needRestockCount, func() (domain.Summary, bool) {
		return s.monitor.Summarize(c.stock, c.supplies, c.expenses, c.pendingRestocks), false
	})

	forecastDeps := needUsage | needStock
	if s.settings.StockFanOut {
		forecastDeps = needUsage
	}
	d.Forecast = buildSection(c, forecastDeps, func() (domain.ForecastReport, bool) {
		var stock analytics.StockLookup = analytics.NewStockTable(c.stock)
		if s.settings.StockFanOut {
			stock = s.resolveStock(ctx, c.usage)
		}
		report := s.forecast(c.usage, stock)
		return report, report.InsufficientData
	})

	d.Suppliers = buildSection(c, needOrders, func() (domain.SupplierReport, bool) {
		report := s.suppliers.Analyze(c.orders)
		return report, report.InsufficientData
	})

	d.Expenses = buildSection(c, needExpenses|needPurchases, func() (domain.ExpenseTrendReport, bool) {
		report := s.expenseReport(c.expenses, c.purchases)
		return report, report.InsufficientData
	})

	d.StockAlerts = buildSection(c, needStock|needUsage|needSupplies, func() ([]domain.StockAlert, bool) {
		return s.monitor.StockAlerts(c.stock, c.usage, c.supplies), len(c.stock) == 0
	})

	d.Expiring = buildSection(c, needSupplies|needStock, func() ([]domain.ExpiringSupply, bool) {
		return s.monitor.ExpiringSoon(c.supplies, c.stock), len(c.supplies) == 0
	})

	d.PurchaseMix = buildSection(c, needOrders|needPurchases, func() (domain.PurchaseMix, bool) {
		mix := s.monitor.PurchaseMix(c.orders, c.purchases)
		return mix, mix.Supply == 0 && mix.Market == 0
	})

	d.TopSupplies = buildSection(c, needUsage|needSupplies, func() ([]domain.SupplyConsumption, bool) {
		top := s.monitor.TopSupplies(c.usage, c.supplies)
		return top, len(top) == 0
	})

	failed := d.FailedSections()
	if len(failed) == 0 {
		if err := s.cache.SetDashboard(ctx, key, d); err != nil {
			log.Warn().Err(err).Msg("dashboard: cache set failed")
		}
	}

	log.Info().
		Str("report_date", d.ReportDate).
		Strs("failed_sections", failed).
		Dur("duration", time.Since(start)).
		Msg("dashboard assembled")

	return d, nil
}

// InvalidateDashboard drops every cached dashboard payload.
func (s *AnalyticsService) InvalidateDashboard(ctx context.Context) {
	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("dashboard: cache invalidation failed")
	}
}
