// cmd/seed/seeders.go
package main

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yuchialin/pharmapos-backend/internal/ingest"
)

func runSchema(c *cli.Context) error {
	db, err := dbFromContext(c)
	if err != nil {
		return err
	}

	schema, err := os.ReadFile(c.String("schema-file"))
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}

	if _, err := db.ExecContext(c.Context, string(schema)); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	log.Println("schema applied")
	return nil
}

// runProducts loads the product master. Expected columns:
// code,name,product_type,category,supplier,purchase_price,selling_price
func runProducts(c *cli.Context) error {
	db, err := dbFromContext(c)
	if err != nil {
		return err
	}

	f, err := os.Open(c.String("file"))
	if err != nil {
		return fmt.Errorf("failed to open products file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read products header: %w", err)
	}

	colMap := make(map[string]int)
	for i, col := range header {
		colMap[strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))] = i
	}
	for _, required := range []string{"code", "name"} {
		if _, ok := colMap[required]; !ok {
			return fmt.Errorf("missing required column: %s", required)
		}
	}

	query := `
		INSERT INTO products (id, code, name, product_type, category, supplier, purchase_price, selling_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, '')::numeric, NULLIF($8, '')::numeric, NOW())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			product_type = EXCLUDED.product_type,
			category = EXCLUDED.category,
			supplier = EXCLUDED.supplier,
			purchase_price = EXCLUDED.purchase_price,
			selling_price = EXCLUDED.selling_price,
			updated_at = NOW()
	`

	count := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read products record: %w", err)
		}

		get := func(name string) string {
			if idx, ok := colMap[name]; ok && idx < len(record) {
				return strings.TrimSpace(record[idx])
			}
			return ""
		}

		code := get("code")
		if code == "" {
			continue
		}

		if _, err := db.ExecContext(c.Context, query,
			code, code, get("name"), get("product_type"), get("category"),
			get("supplier"), get("purchase_price"), get("selling_price"),
		); err != nil {
			return fmt.Errorf("failed to upsert product %s: %w", code, err)
		}
		count++
	}

	log.Printf("seeded %d products\n", count)
	return nil
}

// runMovements loads every POS export in the directory through the same
// parser the importer uses.
func runMovements(c *cli.Context) error {
	db, err := dbFromContext(c)
	if err != nil {
		return err
	}

	dir := c.String("dir")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read movements dir: %w", err)
	}

	total := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".csv") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		n, err := seedMovementFile(c, db, path)
		if err != nil {
			return fmt.Errorf("failed to seed %s: %w", path, err)
		}
		log.Printf("seeded %d movements from %s\n", n, entry.Name())
		total += n
	}

	log.Printf("seeded %d movements total\n", total)
	return nil
}

func seedMovementFile(c *cli.Context, db *sql.DB, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	movements, err := ingest.ParseMovements(f)
	if err != nil {
		return 0, err
	}

	query := `
		INSERT INTO movements (
			product_id, transaction_type, purchase_order_number,
			shipping_order_number, sale_number, quantity, total_amount,
			source, movement_date, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
	`

	source := filepath.Base(path)
	for _, m := range movements {
		if _, err := db.ExecContext(c.Context, query,
			m.ProductID, m.TransactionType, m.PurchaseOrderNumber,
			m.ShippingOrderNumber, m.SaleNumber, m.Quantity, m.TotalAmount,
			source, m.Date,
		); err != nil {
			return 0, err
		}
	}

	return len(movements), nil
}

// runOrders rebuilds the purchase and shipping order headers from the
// movement lines, one header per distinct order number.
func runOrders(c *cli.Context) error {
	db, err := dbFromContext(c)
	if err != nil {
		return err
	}

	purchaseQuery := `
		INSERT INTO purchase_orders (po_number, supplier, status, order_date, total_amount, item_count, created_at)
		SELECT
			m.purchase_order_number,
			COALESCE(MAX(p.supplier), ''),
			'received',
			COALESCE(MAX(m.movement_date), NOW()),
			COALESCE(SUM(m.total_amount), 0),
			COUNT(*),
			NOW()
		FROM movements m
		LEFT JOIN products p ON m.product_id = p.id
		WHERE m.purchase_order_number <> ''
		GROUP BY m.purchase_order_number
		ON CONFLICT (po_number) DO UPDATE SET
			total_amount = EXCLUDED.total_amount,
			item_count = EXCLUDED.item_count
	`

	shippingQuery := `
		INSERT INTO shipping_orders (so_number, customer, status, ship_date, total_amount, item_count, created_at)
		SELECT
			m.shipping_order_number,
			'',
			'shipped',
			COALESCE(MAX(m.movement_date), NOW()),
			COALESCE(SUM(m.total_amount), 0),
			COUNT(*),
			NOW()
		FROM movements m
		WHERE m.shipping_order_number <> ''
		GROUP BY m.shipping_order_number
		ON CONFLICT (so_number) DO UPDATE SET
			total_amount = EXCLUDED.total_amount,
			item_count = EXCLUDED.item_count
	`

	if _, err := db.ExecContext(c.Context, purchaseQuery); err != nil {
		return fmt.Errorf("failed to rebuild purchase orders: %w", err)
	}
	if _, err := db.ExecContext(c.Context, shippingQuery); err != nil {
		return fmt.Errorf("failed to rebuild shipping orders: %w", err)
	}

	log.Println("order headers rebuilt")
	return nil
}
