// internal/repository/postgres/movement_repository.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/yuchialin/pharmapos-backend/internal/domain"
)

type movementRepository struct {
	db *DB
}

func NewMovementRepository(db *DB) *movementRepository {
	return &movementRepository{db: db}
}

func (r *movementRepository) GetMovements(ctx context.Context, filter *domain.ReportFilter, orderedOnly bool) ([]domain.RawMovement, error) {
	query := `
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
		WHERE 1=1
	`

	clause, args := buildMovementFilterClause(filter, "p", 1)
	query += clause
	if orderedOnly {
		query += orderedOnlyClause("m")
	}
	query += " ORDER BY m.product_id, m.id"

	var movements []domain.RawMovement
	if err := sqlx.SelectContext(ctx, r.db, &movements, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get movements: %w", err)
	}

	return movements, nil
}

func (r *movementRepository) GetCategories(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT category
		FROM products
		WHERE category <> ''
		ORDER BY category
	`

	var categories []string
	if err := sqlx.SelectContext(ctx, r.db, &categories, query); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return categories, nil
}

// InsertMovements stores a batch of parsed movement rows, upserting the
// product master from the embedded product fields first. The whole batch
// commits or rolls back as one unit; the source tag records which export
// file the rows came from.
func (r *movementRepository) InsertMovements(ctx context.Context, source string, movements []domain.RawMovement) (int, error) {
	inserted := 0

	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		productQuery := `
			INSERT INTO products (id, code, name, purchase_price, selling_price, created_at)
			VALUES ($1, $2, $3, $4, $5, NOW())
			ON CONFLICT (id) DO UPDATE SET
				code = EXCLUDED.code,
				name = EXCLUDED.name,
				purchase_price = EXCLUDED.purchase_price,
				selling_price = EXCLUDED.selling_price,
				updated_at = NOW()
		`

		productStmt, err := tx.PrepareContext(ctx, productQuery)
		if err != nil {
			return fmt.Errorf("failed to prepare product statement: %w", err)
		}
		defer productStmt.Close()

		movementQuery := `
			INSERT INTO movements (
				product_id, transaction_type, purchase_order_number,
				shipping_order_number, sale_number, quantity, total_amount,
				source, movement_date, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`

		movementStmt, err := tx.PrepareContext(ctx, movementQuery)
		if err != nil {
			return fmt.Errorf("failed to prepare movement statement: %w", err)
		}
		defer movementStmt.Close()

		seenProducts := make(map[string]bool)
		for _, m := range movements {
			if m.ProductID != "" && !seenProducts[m.ProductID] {
				if _, err := productStmt.ExecContext(
					ctx,
					m.ProductID,
					m.ProductCode,
					m.ProductName,
					m.PurchasePrice,
					m.SellingPrice,
				); err != nil {
					return fmt.Errorf("failed to upsert product %s: %w", m.ProductID, err)
				}
				seenProducts[m.ProductID] = true
			}

			if _, err := movementStmt.ExecContext(
				ctx,
				m.ProductID,
				m.TransactionType,
				m.PurchaseOrderNumber,
				m.ShippingOrderNumber,
				m.SaleNumber,
				m.Quantity,
				m.TotalAmount,
				source,
				m.Date,
				time.Now(),
			); err != nil {
				return fmt.Errorf("failed to insert movement: %w", err)
			}
			inserted++
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return inserted, nil
}
