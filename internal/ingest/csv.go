// Package ingest parses POS export files and loads them into the movements
// table. The exports are messy by nature: headers come in Traditional
// Chinese or English, numeric cells may be blank, and most rows populate
// only one of the three order number columns. Parsing degrades blank cells
// to zero values; only a structurally broken file is an error.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yuchialin/pharmapos-backend/internal/domain"
)

// Column aliases accepted in export headers. The POS writes Traditional
// Chinese; manually prepared files tend to use the English names.
var columnAliases = map[string]string{
	"商品編號":                  "product_code",
	"product_code":          "product_code",
	"商品名稱":                  "product_name",
	"product_name":          "product_name",
	"交易類型":                  "transaction_type",
	"transaction_type":      "transaction_type",
	"進貨單號":                  "purchase_order_number",
	"purchase_order_number": "purchase_order_number",
	"出貨單號":                  "shipping_order_number",
	"shipping_order_number": "shipping_order_number",
	"銷售單號":                  "sale_number",
	"sale_number":           "sale_number",
	"數量":                    "quantity",
	"quantity":              "quantity",
	"總金額":                   "total_amount",
	"total_amount":          "total_amount",
	"進貨價":                   "purchase_price",
	"purchase_price":        "purchase_price",
	"售價":                    "selling_price",
	"selling_price":         "selling_price",
	"日期":                    "date",
	"date":                  "date",
}

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-01-02 15:04:05",
}

// ParseMovements reads a POS export and returns its movement rows. The
// product code doubles as the product ID; the POS has no separate
// identifier. Rows with no product code and no order number are skipped.
func ParseMovements(r io.Reader) ([]domain.RawMovement, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read export header: %w", err)
	}

	colMap := make(map[string]int)
	for i, col := range header {
		// Excel exports prepend a UTF-8 BOM to the first header cell.
		name := strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))
		if canonical, ok := columnAliases[name]; ok {
			colMap[canonical] = i
		}
	}

	for _, required := range []string{"product_code", "quantity"} {
		if _, ok := colMap[required]; !ok {
			return nil, fmt.Errorf("missing required column: %s", required)
		}
	}

	var movements []domain.RawMovement
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read export record: %w", err)
		}

		m := parseRow(record, colMap)
		if m.ProductID == "" && !m.HasOrderNumber() {
			continue
		}
		movements = append(movements, m)
	}

	if len(movements) == 0 {
		return nil, domain.ErrEmptyFile
	}

	return movements, nil
}

func parseRow(record []string, colMap map[string]int) domain.RawMovement {
	getValue := func(colName string) string {
		if idx, ok := colMap[colName]; ok && idx < len(record) {
			return strings.TrimSpace(record[idx])
		}
		return ""
	}

	getInt := func(colName string) int64 {
		val := getValue(colName)
		if val == "" {
			return 0
		}
		// Handle float strings like "1.0"
		f, _ := strconv.ParseFloat(val, 64)
		return int64(f)
	}

	getDecimal := func(colName string) decimal.Decimal {
		val := getValue(colName)
		if val == "" {
			return decimal.Zero
		}
		d, err := decimal.NewFromString(val)
		if err != nil {
			return decimal.Zero
		}
		return d
	}

	getNullDecimal := func(colName string) decimal.NullDecimal {
		val := getValue(colName)
		if val == "" {
			return decimal.NullDecimal{}
		}
		d, err := decimal.NewFromString(val)
		if err != nil {
			return decimal.NullDecimal{}
		}
		return decimal.NullDecimal{Decimal: d, Valid: true}
	}

	code := getValue("product_code")

	return domain.RawMovement{
		ProductID:           code,
		ProductCode:         code,
		ProductName:         getValue("product_name"),
		TransactionType:     getValue("transaction_type"),
		PurchaseOrderNumber: getValue("purchase_order_number"),
		ShippingOrderNumber: getValue("shipping_order_number"),
		SaleNumber:          getValue("sale_number"),
		Quantity:            getInt("quantity"),
		TotalAmount:         getNullDecimal("total_amount"),
		PurchasePrice:       getDecimal("purchase_price"),
		SellingPrice:        getDecimal("selling_price"),
		Date:                parseDate(getValue("date")),
	}
}

func parseDate(val string) time.Time {
	if val == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, val); err == nil {
			return t
		}
	}
	return time.Time{}
}
