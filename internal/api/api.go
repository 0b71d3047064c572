// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yuchialin/pharmapos-backend/internal/api/handlers"
	"github.com/yuchialin/pharmapos-backend/internal/api/middleware"
	"github.com/yuchialin/pharmapos-backend/internal/ingest"
	"github.com/yuchialin/pharmapos-backend/internal/service"
)

type Services struct {
	ReportService *service.ReportService
	OrderService  *service.OrderService
	IngestService *ingest.Service
	UploadDir     string
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	corsConfig := cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.ReportService != nil {
			reportHandler := handlers.NewReportHandler(services.ReportService)
			reportGroup := apiGroup.Group("/reports")
			{
				reportGroup.GET("/inventory", reportHandler.GetInventoryReport)
				reportGroup.GET("/inventory/chart", reportHandler.GetChartData)
				reportGroup.GET("/profit-loss/summary", reportHandler.GetProfitLossSummary)
			}
		}

		if services.OrderService != nil {
			orderHandler := handlers.NewOrderHandler(services.OrderService)
			apiGroup.GET("/purchase-orders", orderHandler.ListPurchaseOrders)
			apiGroup.GET("/purchase-orders/:number", orderHandler.GetPurchaseOrder)
			apiGroup.GET("/shipping-orders", orderHandler.ListShippingOrders)
			apiGroup.GET("/shipping-orders/:number", orderHandler.GetShippingOrder)
		}

		if services.IngestService != nil {
			movementHandler := handlers.NewMovementHandler(services.IngestService, services.UploadDir)
			apiGroup.POST("/movements/upload", movementHandler.UploadMovements)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		for _, part := range strings.Split(origin, ",") {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
