// internal/service/order_service.go
package service

import (
	"context"
	"fmt"

	"github.com/yuchialin/pharmapos-backend/internal/domain"
	"github.com/yuchialin/pharmapos-backend/internal/repository"
)

// OrderService serves the purchase and shipping order browsing endpoints.
type OrderService struct {
	repo repository.OrderRepository
}

func NewOrderService(repo repository.OrderRepository) *OrderService {
	return &OrderService{repo: repo}
}

func (s *OrderService) ListPurchaseOrders(ctx context.Context, filter domain.OrderListFilter) (*domain.PurchaseOrderPage, error) {
	page, err := s.repo.ListPurchaseOrders(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchase orders: %w", err)
	}
	return page, nil
}

func (s *OrderService) GetPurchaseOrder(ctx context.Context, poNumber string) (*domain.PurchaseOrderDetail, error) {
	if poNumber == "" {
		return nil, fmt.Errorf("po number is required")
	}
	return s.repo.GetPurchaseOrder(ctx, poNumber)
}

func (s *OrderService) ListShippingOrders(ctx context.Context, filter domain.OrderListFilter) (*domain.ShippingOrderPage, error) {
	page, err := s.repo.ListShippingOrders(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list shipping orders: %w", err)
	}
	return page, nil
}

func (s *OrderService) GetShippingOrder(ctx context.Context, soNumber string) (*domain.ShippingOrderDetail, error) {
	if soNumber == "" {
		return nil, fmt.Errorf("so number is required")
	}
	return s.repo.GetShippingOrder(ctx, soNumber)
}
