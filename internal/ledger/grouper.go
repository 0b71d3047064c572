// internal/ledger/grouper.go
package ledger

import "github.com/yuchialin/pharmapos-backend/internal/domain"

// Group partitions canonical transactions by product and, within each
// product, merges transactions sharing an order number into one record:
// quantity and total amount are summed, every other field is taken from the
// first constituent. Order numbers are document-type specific, so merged
// constituents share a type by construction.
//
// The "-" sentinel merges like any other key, so several unnumbered
// movements of one product collapse into a single record. That matches the
// POS behaviour and is deliberately not "fixed" here.
//
// The returned slices preserve first-seen order; Sequence imposes the
// actual ordering. The function is pure.
func Group(txs []domain.Transaction) map[string][]domain.MergedTransaction {
	byProduct := make(map[string][]domain.MergedTransaction)
	// index[productID][orderNumber] -> position in byProduct[productID]
	index := make(map[string]map[string]int)

	for _, tx := range txs {
		slot, ok := index[tx.ProductID]
		if !ok {
			slot = make(map[string]int)
			index[tx.ProductID] = slot
		}

		if pos, seen := slot[tx.OrderNumber]; seen {
			merged := &byProduct[tx.ProductID][pos]
			merged.Quantity += tx.Quantity
			merged.TotalAmount = merged.TotalAmount.Add(tx.TotalAmount)
			continue
		}

		slot[tx.OrderNumber] = len(byProduct[tx.ProductID])
		byProduct[tx.ProductID] = append(byProduct[tx.ProductID], domain.MergedTransaction{
			ProductID:   tx.ProductID,
			ProductCode: tx.ProductCode,
			ProductName: tx.ProductName,
			OrderNumber: tx.OrderNumber,
			Type:        tx.Type,
			Quantity:    tx.Quantity,
			UnitPrice:   tx.UnitPrice,
			TotalAmount: tx.TotalAmount,
			Date:        tx.Date,
		})
	}

	return byProduct
}
