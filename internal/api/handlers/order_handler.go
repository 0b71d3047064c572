// internal/api/handlers/order_handler.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yuchialin/pharmapos-backend/internal/domain"
	"github.com/yuchialin/pharmapos-backend/internal/service"
)

type OrderHandler struct {
	orderService *service.OrderService
}

func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) ListPurchaseOrders(c *gin.Context) {
	page, err := h.orderService.ListPurchaseOrders(c.Request.Context(), parseOrderListFilter(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch purchase orders"})
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *OrderHandler) GetPurchaseOrder(c *gin.Context) {
	poNumber := c.Param("number")

	detail, err := h.orderService.GetPurchaseOrder(c.Request.Context(), poNumber)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "purchase order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch purchase order"})
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (h *OrderHandler) ListShippingOrders(c *gin.Context) {
	page, err := h.orderService.ListShippingOrders(c.Request.Context(), parseOrderListFilter(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch shipping orders"})
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *OrderHandler) GetShippingOrder(c *gin.Context) {
	soNumber := c.Param("number")

	detail, err := h.orderService.GetShippingOrder(c.Request.Context(), soNumber)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "shipping order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch shipping order"})
		return
	}

	c.JSON(http.StatusOK, detail)
}

func parseOrderListFilter(c *gin.Context) domain.OrderListFilter {
	return domain.OrderListFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		Status:   strings.TrimSpace(c.Query("status")),
		Page:     parsePositiveInt(c.Query("page")),
		PageSize: parsePositiveInt(c.Query("page_size")),
	}
}

func parsePositiveInt(value string) int {
	if v, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && v > 0 {
		return v
	}
	return 0
}
