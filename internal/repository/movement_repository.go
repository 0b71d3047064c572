// internal/repository/movement_repository.go
package repository

import (
	"context"

	"github.com/yuchialin/pharmapos-backend/internal/domain"
)

// MovementRepository fetches and stores raw inventory movements. The
// orderedOnly flag on GetMovements drops rows with no order number at all,
// which is the precondition for the sequential profit/loss computation.
type MovementRepository interface {
	GetMovements(ctx context.Context, filter *domain.ReportFilter, orderedOnly bool) ([]domain.RawMovement, error)
	GetCategories(ctx context.Context) ([]string, error)
	InsertMovements(ctx context.Context, source string, movements []domain.RawMovement) (int, error)
}

type OrderRepository interface {
	ListPurchaseOrders(ctx context.Context, filter domain.OrderListFilter) (*domain.PurchaseOrderPage, error)
	GetPurchaseOrder(ctx context.Context, poNumber string) (*domain.PurchaseOrderDetail, error)
	ListShippingOrders(ctx context.Context, filter domain.OrderListFilter) (*domain.ShippingOrderPage, error)
	GetShippingOrder(ctx context.Context, soNumber string) (*domain.ShippingOrderDetail, error)
}
