// internal/repository/postgres/order_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/yuchialin/pharmapos-backend/internal/domain"
)

const defaultPageSize = 20
const maxPageSize = 100

type orderRepository struct {
	db *DB
}

func NewOrderRepository(db *DB) *orderRepository {
	return &orderRepository{db: db}
}

func normalizePaging(filter *domain.OrderListFilter) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = defaultPageSize
	}
	if filter.PageSize > maxPageSize {
		filter.PageSize = maxPageSize
	}
}

func buildOrderListClause(filter domain.OrderListFilter, numberColumn, partyColumn string) (string, []interface{}) {
	var (
		clauses []string
		args    []interface{}
	)
	idx := 1

	if filter.Search != "" {
		clauses = append(clauses, fmt.Sprintf("(%s ILIKE $%d OR %s ILIKE $%d)", numberColumn, idx, partyColumn, idx+1))
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
		idx += 2
	}

	if filter.Status != "" {
		clauses = append(clauses, fmt.Sprintf("status = $%d", idx))
		args = append(args, filter.Status)
		idx++
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (r *orderRepository) ListPurchaseOrders(ctx context.Context, filter domain.OrderListFilter) (*domain.PurchaseOrderPage, error) {
	normalizePaging(&filter)
	clause, args := buildOrderListClause(filter, "po_number", "supplier")

	var total int
	countQuery := "SELECT COUNT(*) FROM purchase_orders" + clause
	if err := sqlx.GetContext(ctx, r.db, &total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("failed to count purchase orders: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, po_number, supplier, status, order_date, total_amount, item_count, note, created_at
		FROM purchase_orders
		%s
		ORDER BY po_number DESC
		LIMIT $%d OFFSET $%d
	`, clause, len(args)+1, len(args)+2)
	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)

	items := []domain.PurchaseOrder{}
	if err := sqlx.SelectContext(ctx, r.db, &items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list purchase orders: %w", err)
	}

	return &domain.PurchaseOrderPage{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages(total, filter.PageSize),
	}, nil
}

func (r *orderRepository) GetPurchaseOrder(ctx context.Context, poNumber string) (*domain.PurchaseOrderDetail, error) {
	var order domain.PurchaseOrder
	query := `
		SELECT id, po_number, supplier, status, order_date, total_amount, item_count, note, created_at
		FROM purchase_orders
		WHERE po_number = $1
	`
	if err := sqlx.GetContext(ctx, r.db, &order, query, poNumber); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get purchase order %s: %w", poNumber, err)
	}

	lines, err := r.orderLines(ctx, "purchase_order_number", poNumber)
	if err != nil {
		return nil, err
	}

	return &domain.PurchaseOrderDetail{Order: order, Lines: lines}, nil
}

func (r *orderRepository) ListShippingOrders(ctx context.Context, filter domain.OrderListFilter) (*domain.ShippingOrderPage, error) {
	normalizePaging(&filter)
	clause, args := buildOrderListClause(filter, "so_number", "customer")

	var total int
	countQuery := "SELECT COUNT(*) FROM shipping_orders" + clause
	if err := sqlx.GetContext(ctx, r.db, &total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("failed to count shipping orders: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, so_number, customer, status, ship_date, total_amount, item_count, note, created_at
		FROM shipping_orders
		%s
		ORDER BY so_number DESC
		LIMIT $%d OFFSET $%d
	`, clause, len(args)+1, len(args)+2)
	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)

	items := []domain.ShippingOrder{}
	if err := sqlx.SelectContext(ctx, r.db, &items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list shipping orders: %w", err)
	}

	return &domain.ShippingOrderPage{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages(total, filter.PageSize),
	}, nil
}

func (r *orderRepository) GetShippingOrder(ctx context.Context, soNumber string) (*domain.ShippingOrderDetail, error) {
	var order domain.ShippingOrder
	query := `
		SELECT id, so_number, customer, status, ship_date, total_amount, item_count, note, created_at
		FROM shipping_orders
		WHERE so_number = $1
	`
	if err := sqlx.GetContext(ctx, r.db, &order, query, soNumber); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get shipping order %s: %w", soNumber, err)
	}

	lines, err := r.orderLines(ctx, "shipping_order_number", soNumber)
	if err != nil {
		return nil, err
	}

	return &domain.ShippingOrderDetail{Order: order, Lines: lines}, nil
}

func (r *orderRepository) orderLines(ctx context.Context, numberColumn, number string) ([]domain.RawMovement, error) {
	query := fmt.Sprintf(`
		SELECT
			m.product_id,
			p.code AS product_code,
			p.name AS product_name,
			m.transaction_type,
			m.purchase_order_number,
			m.shipping_order_number,
			m.sale_number,
			m.quantity,
			m.total_amount,
			p.purchase_price,
			p.selling_price,
			m.movement_date
		FROM movements m
		JOIN products p ON m.product_id = p.id
		WHERE m.%s = $1
		ORDER BY m.id
	`, numberColumn)

	lines := []domain.RawMovement{}
	if err := sqlx.SelectContext(ctx, r.db, &lines, query, number); err != nil {
		return nil, fmt.Errorf("failed to get order lines for %s: %w", number, err)
	}

	return lines, nil
}

func totalPages(total, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
