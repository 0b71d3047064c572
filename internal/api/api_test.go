// internal/api/api_test.go
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuchialin/pharmapos-backend/internal/cache"
	"github.com/yuchialin/pharmapos-backend/internal/domain"
	"github.com/yuchialin/pharmapos-backend/internal/service"
)

type stubMovementRepo struct {
	movements []domain.RawMovement
}

func (s *stubMovementRepo) GetMovements(ctx context.Context, filter *domain.ReportFilter, orderedOnly bool) ([]domain.RawMovement, error) {
	return s.movements, nil
}

func (s *stubMovementRepo) GetCategories(ctx context.Context) ([]string, error) {
	return []string{"analgesics"}, nil
}

func (s *stubMovementRepo) InsertMovements(ctx context.Context, source string, movements []domain.RawMovement) (int, error) {
	return len(movements), nil
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	repo := &stubMovementRepo{movements: []domain.RawMovement{
		{
			ProductID:           "A001",
			ProductCode:         "A001",
			ProductName:         "aspirin",
			PurchaseOrderNumber: "20250101001",
			Quantity:            100,
			TotalAmount:         decimal.NullDecimal{Decimal: decimal.NewFromInt(1000), Valid: true},
		},
		{
			ProductID:   "A001",
			ProductCode: "A001",
			ProductName: "aspirin",
			SaleNumber:  "20250102001",
			Quantity:    -10,
			TotalAmount: decimal.NullDecimal{Decimal: decimal.NewFromInt(200), Valid: true},
		},
	}}

	return NewRouter(&Services{
		ReportService: service.NewReportService(repo, cache.NewNoopReportCache()),
	}, nil)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestInventoryReportEndpoint(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/inventory?include_history=true", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var report domain.InventoryReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	require.Len(t, report.Data, 1)
	assert.Equal(t, "A001", report.Data[0].ProductID)
	assert.Equal(t, "-800", report.Data[0].LatestProfitLoss.String())
	assert.Len(t, report.Data[0].Transactions, 2)
	assert.Equal(t, []string{"analgesics"}, report.Filters.Categories)
}

func TestProfitLossSummaryEndpoint(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/profit-loss/summary", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var summary domain.ProfitLossSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, "-800", summary.TotalProfitLoss.String())
	assert.Equal(t, 1, summary.ProductCount)
}

func TestUploadRouteAbsentWithoutIngestService(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/movements/upload", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
