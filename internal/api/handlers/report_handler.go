// internal/api/handlers/report_handler.go
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yuchialin/pharmapos-backend/internal/domain"
	"github.com/yuchialin/pharmapos-backend/internal/service"
)

type ReportHandler struct {
	reportService *service.ReportService
}

func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetInventoryReport returns the grouped per-product inventory report.
func (h *ReportHandler) GetInventoryReport(c *gin.Context) {
	filter := parseReportFilter(c)

	report, err := h.reportService.GetInventoryReport(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build inventory report"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetChartData returns the per-transaction running profit/loss series.
func (h *ReportHandler) GetChartData(c *gin.Context) {
	filter := parseReportFilter(c)

	items, err := h.reportService.GetChartData(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build chart data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

// GetProfitLossSummary returns the portfolio summary cards.
func (h *ReportHandler) GetProfitLossSummary(c *gin.Context) {
	filter := parseReportFilter(c)

	summary, err := h.reportService.GetProfitLossSummary(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build profit/loss summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func parseReportFilter(c *gin.Context) *domain.ReportFilter {
	return &domain.ReportFilter{
		Supplier:                  strings.TrimSpace(c.Query("supplier")),
		Category:                  strings.TrimSpace(c.Query("category")),
		ProductCode:               strings.TrimSpace(c.Query("product_code")),
		ProductName:               strings.TrimSpace(c.Query("product_name")),
		ProductType:               strings.TrimSpace(c.Query("product_type")),
		IncludeTransactionHistory: parseBool(c.Query("include_history")),
		UseSequentialProfitLoss:   parseBool(c.Query("sequential")),
	}
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes":
		return true
	}
	return false
}
