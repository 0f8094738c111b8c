package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ngson927/Greatea-smart-management/internal/analytics"
	"github.com/ngson927/Greatea-smart-management/internal/domain"
	"github.com/ngson927/Greatea-smart-management/internal/repository"
	"github.com/rs/zerolog/log"
)

// ForecastSource produces the current forecast and owns the dashboard cache
type ForecastSource interface {
	Forecast(ctx context.Context) (domain.ForecastReport, error)
	Today() time.Time
	InvalidateDashboard(ctx context.Context)
}

type RestockService struct {
	forecasts ForecastSource
	repo      repository.RestockRepository
}

func NewRestockService(forecasts ForecastSource, repo repository.RestockRepository) *RestockService {
	return &RestockService{forecasts: forecasts, repo: repo}
}

// CreateFromForecast stores a transfer request sized to the item's predicted
// 30-day need.
func (s *RestockService) CreateFromForecast(ctx context.Context, supplyID int64) (*domain.RestockRequest, error) {
	if supplyID <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSupplyID, supplyID)
	}

	report, err := s.forecasts.Forecast(ctx)
	if err != nil {
		return nil, err
	}

	line, ok := findForecast(report, supplyID)
	if !ok {
		return nil, fmt.Errorf("%w: supply %d", ErrForecastNotFound, supplyID)
	}

	req := analytics.BuildRestockRequest(line, s.forecasts.Today())
	if err := s.repo.Create(ctx, &req); err != nil {
		return nil, err
	}

	s.forecasts.InvalidateDashboard(ctx)

	log.Info().
		Int64("supply_id", supplyID).
		Str("reorder_status", string(line.ReorderStatus)).
		Float64("quantity", req.QuantityRequested).
		Msg("restock requested from forecast")

	return &req, nil
}

func findForecast(report domain.ForecastReport, supplyID int64) (domain.ForecastResult, bool) {
	for _, r := range report.Results {
		if r.SupplyID == supplyID {
			return r, true
		}
	}
	return domain.ForecastResult{}, false
}
