package service

import (
	"context"
	"time"

	"github.com/ngson927/Greatea-smart-management/internal/analytics"
	"github.com/ngson927/Greatea-smart-management/internal/cache"
	"github.com/ngson927/Greatea-smart-management/internal/config"
	"github.com/ngson927/Greatea-smart-management/internal/domain"
	"github.com/ngson927/Greatea-smart-management/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// AnalyticsSettings tunes the engine and how stock is resolved for forecasts
type AnalyticsSettings struct {
	Options analytics.Options
	// StockFanOut resolves stock item by item instead of one bulk query.
	StockFanOut bool
	Lookup      analytics.ResolveOptions
}

func SettingsFromConfig(cfg config.AnalyticsConfig) AnalyticsSettings {
	opts := analytics.DefaultOptions()
	opts.TopSuppliers = cfg.TopSuppliers
	opts.TopCategories = cfg.TopCategories
	if cfg.Location != nil {
		opts.Location = cfg.Location
	}

	return AnalyticsSettings{
		Options:     opts,
		StockFanOut: cfg.StockFanOut,
		Lookup: analytics.ResolveOptions{
			Timeout: cfg.StockLookupTimeout,
			Workers: cfg.StockLookupWorkers,
		},
	}
}

type AnalyticsService struct {
	repo     repository.InventoryRepository
	restocks repository.RestockRepository
	cache    cache.DashboardCache
	settings AnalyticsSettings

	forecaster *analytics.Forecaster
	suppliers  *analytics.SupplierAnalyzer
	expenses   *analytics.ExpenseAnalyzer
	monitor    *analytics.Monitor
}

func NewAnalyticsService(repo repository.InventoryRepository, restocks repository.RestockRepository, cacheImpl cache.DashboardCache, settings AnalyticsSettings) *AnalyticsService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopDashboardCache()
	}
	if settings.Options.Now == nil {
		settings.Options.Now = time.Now
	}
	if settings.Options.Location == nil {
		settings.Options.Location = time.UTC
	}

	return &AnalyticsService{
		repo:       repo,
		restocks:   restocks,
		cache:      cacheImpl,
		settings:   settings,
		forecaster: analytics.NewForecaster(),
		suppliers:  analytics.NewSupplierAnalyzer(settings.Options),
		expenses:   analytics.NewExpenseAnalyzer(settings.Options),
		monitor:    analytics.NewMonitor(settings.Options),
	}
}

// Today returns the calendar date the service computes against
func (s *AnalyticsService) Today() time.Time {
	return analytics.Today(s.settings.Options)
}

func (s *AnalyticsService) Forecast(ctx context.Context) (domain.ForecastReport, error) {
	usage, err := s.repo.ListUsage(ctx)
	if err != nil {
		return domain.ForecastReport{}, upstream("usage records", err)
	}

	var stock analytics.StockLookup
	if s.settings.StockFanOut {
		stock = s.resolveStock(ctx, usage)
	} else {
		levels, err := s.repo.ListStockLevels(ctx)
		if err != nil {
			return domain.ForecastReport{}, upstream("stock levels", err)
		}
		stock = analytics.NewStockTable(levels)
	}

	return s.forecast(usage, stock), nil
}

// resolveStock fetches stock item by item for every supply in usage.
func (s *AnalyticsService) resolveStock(ctx context.Context, usage []domain.UsageRecord) analytics.StockLookup {
	ids := analytics.SupplyIDs(usage)
	table := analytics.ResolveStockTable(ctx, s.repo, ids, s.settings.Lookup)
	if failed := table.Failed(); failed > 0 {
		log.Warn().
			Int("items", len(ids)).
			Int("failed", failed).
			Msg("forecast: stock fan-out incomplete")
	}
	return table
}

func (s *AnalyticsService) forecast(usage []domain.UsageRecord, stock analytics.StockLookup) domain.ForecastReport {
	report := s.forecaster.Forecast(usage, stock)
	for _, f := range report.LookupFailures {
		log.Warn().
			Int64("supply_id", f.SupplyID).
			Str("reason", f.Reason).
			Msg("forecast: stock lookup failed, item skipped")
	}
	return report
}

func (s *AnalyticsService) Suppliers(ctx context.Context) (domain.SupplierReport, error) {
	orders, err := s.repo.ListOrders(ctx)
	if err != nil {
		return domain.SupplierReport{}, upstream("supply orders", err)
	}

	return s.suppliers.Analyze(orders), nil
}

func (s *AnalyticsService) Expenses(ctx context.Context) (domain.ExpenseTrendReport, error) {
	var (
		expenses  []domain.Expense
		purchases []domain.Purchase
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if expenses, err = s.repo.ListExpenses(gctx); err != nil {
			return upstream("expenses", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if purchases, err = s.repo.ListPurchases(gctx); err != nil {
			return upstream("market purchases", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.ExpenseTrendReport{}, err
	}

	return s.expenseReport(expenses, purchases), nil
}

func (s *AnalyticsService) expenseReport(expenses []domain.Expense, purchases []domain.Purchase) domain.ExpenseTrendReport {
	report := s.expenses.Analyze(expenses, purchases)
	if report.SkippedUndated > 0 {
		log.Warn().
			Int("rows", report.SkippedUndated).
			Float64("amount", report.UndatedTotal).
			Msg("expenses: undated entries counted in totals but not in any month")
	}
	return report
}

func (s *AnalyticsService) StockAlerts(ctx context.Context) ([]domain.StockAlert, error) {
	c := s.load(ctx, needStock|needUsage|needSupplies)
	if err := c.firstErr(needStock | needUsage | needSupplies); err != nil {
		return nil, err
	}

	return s.monitor.StockAlerts(c.stock, c.usage, c.supplies), nil
}

func (s *AnalyticsService) ExpiringSoon(ctx context.Context) ([]domain.ExpiringSupply, error) {
	c := s.load(ctx, needSupplies|needStock)
	if err := c.firstErr(needSupplies | needStock); err != nil {
		return nil, err
	}

	return s.monitor.ExpiringSoon(c.supplies, c.stock), nil
}
