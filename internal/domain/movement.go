// internal/domain/movement.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType classifies an inventory movement by origin document.
type MovementType string

const (
	MovementPurchase MovementType = "purchase"
	MovementShip     MovementType = "ship"
	MovementSale     MovementType = "sale"
	MovementOther    MovementType = "other"
)

// Labels used by the POS export files for the transaction type column.
// The upstream POS is Traditional Chinese; both the raw labels and the
// English tokens are accepted as discriminants.
const (
	LabelPurchase = "進貨"
	LabelShip     = "出貨"
	LabelSale     = "銷售"
)

// MissingOrderNumber is the sentinel used when none of the order number
// fields can be resolved. Records carrying it sort first ascending and
// merge with each other per product, which mirrors the POS behaviour.
const MissingOrderNumber = "-"

var typeLabels = map[string]MovementType{
	"purchase":    MovementPurchase,
	LabelPurchase: MovementPurchase,
	"ship":        MovementShip,
	LabelShip:     MovementShip,
	"sale":        MovementSale,
	LabelSale:     MovementSale,
}

// ParseMovementType resolves an explicit type discriminant. The second
// return value reports whether the label was recognised.
func ParseMovementType(label string) (MovementType, bool) {
	t, ok := typeLabels[label]
	if !ok {
		return MovementOther, false
	}
	return t, true
}

// RawMovement is a single heterogeneous row as fetched from the movements
// table (or parsed from a POS export file). At most one of the three order
// number fields is populated; quantity signs come from the POS as-is:
// purchases positive, sales and shipments negative.
type RawMovement struct {
	ProductID           string              `json:"product_id" db:"product_id"`
	ProductCode         string              `json:"product_code" db:"product_code"`
	ProductName         string              `json:"product_name" db:"product_name"`
	TransactionType     string              `json:"transaction_type" db:"transaction_type"`
	PurchaseOrderNumber string              `json:"purchase_order_number" db:"purchase_order_number"`
	ShippingOrderNumber string              `json:"shipping_order_number" db:"shipping_order_number"`
	SaleNumber          string              `json:"sale_number" db:"sale_number"`
	Quantity            int64               `json:"quantity" db:"quantity"`
	TotalAmount         decimal.NullDecimal `json:"total_amount" db:"total_amount"`
	PurchasePrice       decimal.Decimal     `json:"purchase_price" db:"purchase_price"`
	SellingPrice        decimal.Decimal     `json:"selling_price" db:"selling_price"`
	Date                time.Time           `json:"date" db:"movement_date"`
}

// HasOrderNumber reports whether any of the three order number fields carries
// a value. The fetch layer drops rows where this is false before the ledger
// runs; the normalizer still tolerates them.
func (m RawMovement) HasOrderNumber() bool {
	return m.PurchaseOrderNumber != "" || m.ShippingOrderNumber != "" || m.SaleNumber != ""
}

// Transaction is the canonical movement shape produced by the normalizer.
// Downstream stages assume every field is populated; all degrade-to-zero
// handling happens at the normalizer boundary.
type Transaction struct {
	ProductID   string          `json:"product_id"`
	ProductCode string          `json:"product_code"`
	ProductName string          `json:"product_name"`
	OrderNumber string          `json:"order_number"`
	Type        MovementType    `json:"type"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Date        time.Time       `json:"date"`
}

// MergedTransaction is one transaction per (product, order number) pair.
// Quantity and TotalAmount are sums over the merged constituents; every
// other field comes from the first constituent.
type MergedTransaction struct {
	ProductID   string          `json:"product_id"`
	ProductCode string          `json:"product_code"`
	ProductName string          `json:"product_name"`
	OrderNumber string          `json:"order_number"`
	Type        MovementType    `json:"type"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Date        time.Time       `json:"date"`
}

// SequencedTransaction carries the running snapshots derived by the
// sequencer. The snapshots are only meaningful within the fully sorted
// sequence of one product and must be recomputed when the input changes.
type SequencedTransaction struct {
	MergedTransaction
	CumulativeStock      int64           `json:"cumulative_stock"`
	CumulativeProfitLoss decimal.Decimal `json:"cumulative_profit_loss"`
}
