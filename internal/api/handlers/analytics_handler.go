package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ngson927/Greatea-smart-management/internal/domain"
)

// AnalyticsReader is the read side of the analytics service.
type AnalyticsReader interface {
	Forecast(ctx context.Context) (domain.ForecastReport, error)
	Suppliers(ctx context.Context) (domain.SupplierReport, error)
	Expenses(ctx context.Context) (domain.ExpenseTrendReport, error)
	StockAlerts(ctx context.Context) ([]domain.StockAlert, error)
	ExpiringSoon(ctx context.Context) ([]domain.ExpiringSupply, error)
	Dashboard(ctx context.Context) (*domain.Dashboard, error)
}

type AnalyticsHandler struct {
	service AnalyticsReader
}

func NewAnalyticsHandler(service AnalyticsReader) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

func (h *AnalyticsHandler) GetForecast(c *gin.Context) {
	report, err := h.service.Forecast(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to compute forecast")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *AnalyticsHandler) GetSuppliers(c *gin.Context) {
	report, err := h.service.Suppliers(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to compute supplier performance")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *AnalyticsHandler) GetExpenses(c *gin.Context) {
	report, err := h.service.Expenses(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to compute expense trends")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *AnalyticsHandler) GetStockAlerts(c *gin.Context) {
	alerts, err := h.service.StockAlerts(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to fetch stock alerts")
		return
	}
	if alerts == nil {
		alerts = []domain.StockAlert{}
	}
	c.JSON(http.StatusOK, alerts)
}

func (h *AnalyticsHandler) GetExpiringSoon(c *gin.Context) {
	items, err := h.service.ExpiringSoon(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to fetch expiring supplies")
		return
	}
	if items == nil {
		items = []domain.ExpiringSupply{}
	}
	c.JSON(http.StatusOK, items)
}

// GetDashboard always answers 200 once the payload is assembled; failed
// sections carry their own status.
func (h *AnalyticsHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to assemble dashboard")
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
