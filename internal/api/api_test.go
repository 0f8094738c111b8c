package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ngson927/Greatea-smart-management/internal/api/middleware"
	"github.com/ngson927/Greatea-smart-management/internal/domain"
	"github.com/ngson927/Greatea-smart-management/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAnalytics struct {
	err   error
	alert []domain.StockAlert
	panic bool
}

func (f *fakeAnalytics) Forecast(ctx context.Context) (domain.ForecastReport, error) {
	if f.panic {
		panic("boom")
	}
	return domain.ForecastReport{
		Results: []domain.ForecastResult{{SupplyID: 1, SupplyName: "Milk", DaysUntilReorder: 7, ReorderStatus: domain.ReorderCritical}},
	}, f.err
}

func (f *fakeAnalytics) Suppliers(ctx context.Context) (domain.SupplierReport, error) {
	return domain.SupplierReport{InsufficientData: true}, f.err
}

func (f *fakeAnalytics) Expenses(ctx context.Context) (domain.ExpenseTrendReport, error) {
	return domain.ExpenseTrendReport{TotalExpenses: 1050}, f.err
}

func (f *fakeAnalytics) StockAlerts(ctx context.Context) ([]domain.StockAlert, error) {
	return f.alert, f.err
}

func (f *fakeAnalytics) ExpiringSoon(ctx context.Context) ([]domain.ExpiringSupply, error) {
	return nil, f.err
}

func (f *fakeAnalytics) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Dashboard{ReportDate: "2024-03-31"}, nil
}

type fakeRestocks struct {
	err    error
	gotIDs []int64
}

func (f *fakeRestocks) CreateFromForecast(ctx context.Context, supplyID int64) (*domain.RestockRequest, error) {
	f.gotIDs = append(f.gotIDs, supplyID)
	if f.err != nil {
		return nil, f.err
	}
	return &domain.RestockRequest{
		RequestID:         9,
		Date:              time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		SupplyID:          supplyID,
		QuantityRequested: 60,
		RequestType:       domain.RequestTypeTransfer,
	}, nil
}

func serve(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestRouter_Health(t *testing.T) {
	rec := serve(NewRouter(nil, nil), http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestRouter_RequestIDIsEchoed(t *testing.T) {
	router := NewRouter(nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(middleware.RequestIDHeader))
}

func TestRouter_AnalyticsRoutes(t *testing.T) {
	router := NewRouter(&Services{Analytics: &fakeAnalytics{}}, nil)

	tests := []struct {
		path string
		want string
	}{
		{"/api/v1/analytics/forecast", `"days_until_reorder":7`},
		{"/api/v1/analytics/suppliers", `"insufficient_data":true`},
		{"/api/v1/analytics/expenses", `"total_expenses":1050`},
		{"/api/v1/analytics/stock-alerts", `[]`},
		{"/api/v1/analytics/expiring-soon", `[]`},
		{"/api/v1/dashboard", `"report_date":"2024-03-31"`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := serve(router, http.MethodGet, tt.path, "")

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}
}

func TestRouter_ErrorMapping(t *testing.T) {
	upstream := fmt.Errorf("%w: load usage records: %w", service.ErrUpstream, errors.New("connection refused"))

	tests := []struct {
		name string
		err  error
		code int
	}{
		{"upstream", upstream, http.StatusBadGateway},
		{"timeout", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := NewRouter(&Services{Analytics: &fakeAnalytics{err: tt.err}}, nil)

			rec := serve(router, http.MethodGet, "/api/v1/analytics/forecast", "")

			assert.Equal(t, tt.code, rec.Code)
			body := decode(t, rec)
			assert.Equal(t, "failed to compute forecast", body["error"])
		})
	}

	t.Run("upstream details", func(t *testing.T) {
		router := NewRouter(&Services{Analytics: &fakeAnalytics{err: upstream}}, nil)

		body := decode(t, serve(router, http.MethodGet, "/api/v1/dashboard", ""))

		assert.Contains(t, body["details"], "usage records")
	})
}

func TestRouter_Recovery(t *testing.T) {
	router := NewRouter(&Services{Analytics: &fakeAnalytics{panic: true}}, nil)

	rec := serve(router, http.MethodGet, "/api/v1/analytics/forecast", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestRouter_CreateRestock(t *testing.T) {
	restocks := &fakeRestocks{}
	router := NewRouter(&Services{Restocks: restocks}, nil)

	rec := serve(router, http.MethodPost, "/api/v1/restocks/from-forecast", `{"supply_id": 3}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, []int64{3}, restocks.gotIDs)
	body := decode(t, rec)
	assert.Equal(t, float64(9), body["request_id"])
	assert.Equal(t, float64(60), body["quantity_requested"])
	assert.Equal(t, string(domain.RequestTypeTransfer), body["request_type"])
}

func TestRouter_CreateRestockErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
		code int
	}{
		{"malformed json", `{"supply_id":`, nil, http.StatusBadRequest},
		{"missing id", `{}`, nil, http.StatusBadRequest},
		{"negative id", `{"supply_id": -4}`, fmt.Errorf("%w: -4", service.ErrInvalidSupplyID), http.StatusBadRequest},
		{"no forecast", `{"supply_id": 42}`, fmt.Errorf("%w: supply 42", service.ErrForecastNotFound), http.StatusNotFound},
		{"store down", `{"supply_id": 1}`, errors.New("insert failed"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := NewRouter(&Services{Restocks: &fakeRestocks{err: tt.err}}, nil)

			rec := serve(router, http.MethodPost, "/api/v1/restocks/from-forecast", tt.body)

			assert.Equal(t, tt.code, rec.Code)
			assert.NotEmpty(t, decode(t, rec)["error"])
		})
	}
}

func TestRouter_UnregisteredServices(t *testing.T) {
	router := NewRouter(&Services{}, nil)

	rec := serve(router, http.MethodGet, "/api/v1/dashboard", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNormalizeAllowedOrigins(t *testing.T) {
	origins, allowAll := normalizeAllowedOrigins([]string{"https://a.example, https://b.example", " ", "https://c.example"})
	assert.False(t, allowAll)
	assert.Equal(t, []string{"https://a.example", "https://b.example", "https://c.example"}, origins)

	origins, allowAll = normalizeAllowedOrigins([]string{"*"})
	assert.True(t, allowAll)
	assert.Empty(t, origins)
}

func TestRouter_CORS(t *testing.T) {
	router := NewRouter(nil, []string{"https://shop.example"})
	req := httptest.NewRequest(http.MethodOptions, "/health", nil)
	req.Header.Set("Origin", "https://shop.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, "https://shop.example", rec.Header().Get("Access-Control-Allow-Origin"))
}
