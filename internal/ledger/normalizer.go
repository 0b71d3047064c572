// internal/ledger/normalizer.go

// Package ledger rebuilds a product's inventory history from flat POS
// movement rows: it normalizes heterogeneous raw records, merges them by
// order number, orders them by order-number string sequence, and walks the
// sequence accumulating running stock and running profit/loss. The package
// is pure and framework-free; callers fetch the rows and serve the results.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/yuchialin/pharmapos-backend/internal/domain"
)

// Normalize converts a raw movement row into the canonical transaction
// shape. The second return value is false only when the row carries no
// identifying data at all (no product and no order number); the fetch layer
// already drops such rows, so this is a guard, not a code path callers
// should rely on.
//
// Resolution rules, in order:
//   - type: the explicit discriminant wins when recognised, even when it
//     disagrees with which order number field is populated (observed POS
//     behaviour); otherwise the populated order number field decides;
//     otherwise "other".
//   - order number: the field matching the resolved type, else "-".
//   - unit price: totalAmount/abs(quantity) when both are present and the
//     quantity is non-zero (the actual transaction price beats any static
//     product price), else the product selling price for sale/ship or the
//     purchase price for purchase, else zero.
//
// Missing numeric fields degrade to zero; nothing in this package returns
// an error for dirty input.
func Normalize(raw domain.RawMovement) (domain.Transaction, bool) {
	if raw.ProductID == "" && !raw.HasOrderNumber() {
		return domain.Transaction{}, false
	}

	typ := resolveType(raw)

	return domain.Transaction{
		ProductID:   raw.ProductID,
		ProductCode: raw.ProductCode,
		ProductName: raw.ProductName,
		OrderNumber: resolveOrderNumber(raw, typ),
		Type:        typ,
		Quantity:    raw.Quantity,
		UnitPrice:   resolveUnitPrice(raw, typ),
		TotalAmount: resolveTotalAmount(raw),
		Date:        raw.Date,
	}, true
}

// NormalizeAll maps Normalize over a slice, dropping unidentifiable rows.
func NormalizeAll(raws []domain.RawMovement) []domain.Transaction {
	txs := make([]domain.Transaction, 0, len(raws))
	for _, raw := range raws {
		if tx, ok := Normalize(raw); ok {
			txs = append(txs, tx)
		}
	}
	return txs
}

func resolveType(raw domain.RawMovement) domain.MovementType {
	// Explicit discriminant wins over the populated order number field.
	if raw.TransactionType != "" {
		if typ, ok := domain.ParseMovementType(raw.TransactionType); ok {
			return typ
		}
		return domain.MovementOther
	}

	switch {
	case raw.PurchaseOrderNumber != "":
		return domain.MovementPurchase
	case raw.ShippingOrderNumber != "":
		return domain.MovementShip
	case raw.SaleNumber != "":
		return domain.MovementSale
	}
	return domain.MovementOther
}

func resolveOrderNumber(raw domain.RawMovement, typ domain.MovementType) string {
	switch typ {
	case domain.MovementPurchase:
		if raw.PurchaseOrderNumber != "" {
			return raw.PurchaseOrderNumber
		}
	case domain.MovementShip:
		if raw.ShippingOrderNumber != "" {
			return raw.ShippingOrderNumber
		}
	case domain.MovementSale:
		if raw.SaleNumber != "" {
			return raw.SaleNumber
		}
	}
	return domain.MissingOrderNumber
}

func resolveUnitPrice(raw domain.RawMovement, typ domain.MovementType) decimal.Decimal {
	if raw.TotalAmount.Valid && raw.Quantity != 0 {
		qty := raw.Quantity
		if qty < 0 {
			qty = -qty
		}
		return raw.TotalAmount.Decimal.Div(decimal.NewFromInt(qty))
	}

	switch typ {
	case domain.MovementPurchase:
		return raw.PurchasePrice
	case domain.MovementSale, domain.MovementShip:
		return raw.SellingPrice
	}
	return decimal.Zero
}

func resolveTotalAmount(raw domain.RawMovement) decimal.Decimal {
	if raw.TotalAmount.Valid {
		return raw.TotalAmount.Decimal
	}
	return decimal.Zero
}
