// internal/ledger/report.go
package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/yuchialin/pharmapos-backend/internal/domain"
)

// DropUnordered removes rows where all three order number fields are blank.
// This is the fetch-layer precondition for the sequential profit/loss
// computation; the engine itself still degrades such rows to "-" when a
// caller skips the filter.
func DropUnordered(raws []domain.RawMovement) []domain.RawMovement {
	out := make([]domain.RawMovement, 0, len(raws))
	for _, raw := range raws {
		if raw.HasOrderNumber() {
			out = append(out, raw)
		}
	}
	return out
}

// BuildGroupedProducts runs the full normalize -> group -> sequence
// pipeline and shapes one aggregate per product for the report tables.
// Products are ordered by product code for deterministic output; each
// product's transaction history is attached descending by order number
// when includeHistory is set.
func BuildGroupedProducts(raws []domain.RawMovement, includeHistory bool) []domain.GroupedProduct {
	grouped := Group(NormalizeAll(raws))

	products := make([]domain.GroupedProduct, 0, len(grouped))
	for _, merged := range grouped {
		seq := Sequence(merged)

		var totalQuantity int64
		for _, m := range merged {
			totalQuantity += m.Quantity
		}

		first := merged[0]
		product := domain.GroupedProduct{
			ProductID:           first.ProductID,
			ProductCode:         first.ProductCode,
			ProductName:         first.ProductName,
			TotalQuantity:       totalQuantity,
			TotalInventoryValue: inventoryValue(seq),
			LatestProfitLoss:    LatestSnapshot(seq),
		}
		if includeHistory {
			product.Transactions = Descending(seq)
		}
		products = append(products, product)
	}

	sort.Slice(products, func(i, j int) bool {
		if products[i].ProductCode != products[j].ProductCode {
			return products[i].ProductCode < products[j].ProductCode
		}
		return products[i].ProductID < products[j].ProductID
	})

	return products
}

// inventoryValue prices the final cumulative stock at the most recent
// purchase unit price in the sequence, zero when the product was never
// purchased in the data set.
func inventoryValue(seq []domain.SequencedTransaction) decimal.Decimal {
	if len(seq) == 0 {
		return decimal.Zero
	}

	price := decimal.Zero
	for i := len(seq) - 1; i >= 0; i-- {
		if seq[i].Type == domain.MovementPurchase {
			price = seq[i].UnitPrice
			break
		}
	}

	finalStock := seq[len(seq)-1].CumulativeStock
	return decimal.NewFromInt(finalStock).Mul(price)
}

// BuildChartData flattens every product's ascending sequence into chart
// points, splitting the cumulative profit/loss into a positive and a
// negative component for stacked-area rendering. Points are ordered by
// product code, then ascending order number.
func BuildChartData(raws []domain.RawMovement) []domain.ChartDataItem {
	grouped := Group(NormalizeAll(raws))

	keys := make([]string, 0, len(grouped))
	for productID := range grouped {
		keys = append(keys, productID)
	}
	sort.Slice(keys, func(i, j int) bool {
		return grouped[keys[i]][0].ProductCode < grouped[keys[j]][0].ProductCode
	})

	var items []domain.ChartDataItem
	for _, productID := range keys {
		for _, tx := range Sequence(grouped[productID]) {
			item := domain.ChartDataItem{
				ProductID:            tx.ProductID,
				ProductCode:          tx.ProductCode,
				ProductName:          tx.ProductName,
				OrderNumber:          tx.OrderNumber,
				Type:                 tx.Type,
				Quantity:             tx.Quantity,
				CumulativeStock:      tx.CumulativeStock,
				CumulativeProfitLoss: tx.CumulativeProfitLoss,
			}
			if tx.CumulativeProfitLoss.IsNegative() {
				item.PositiveProfitLoss = decimal.Zero
				item.NegativeProfitLoss = tx.CumulativeProfitLoss
			} else {
				item.PositiveProfitLoss = tx.CumulativeProfitLoss
				item.NegativeProfitLoss = decimal.Zero
			}
			items = append(items, item)
		}
	}

	return items
}

// BuildSummary computes the summary-card aggregation: each product
// contributes its latest-snapshot profit/loss, and the portfolio total is
// the sum of those snapshots.
func BuildSummary(raws []domain.RawMovement) domain.ProfitLossSummary {
	grouped := Group(NormalizeAll(raws))

	summary := domain.ProfitLossSummary{
		TotalProfitLoss: decimal.Zero,
		Products:        make([]domain.ProductProfitLoss, 0, len(grouped)),
	}

	for _, merged := range grouped {
		seq := Sequence(merged)
		latest := LatestSnapshot(seq)

		var finalStock int64
		if len(seq) > 0 {
			finalStock = seq[len(seq)-1].CumulativeStock
		}

		first := merged[0]
		summary.Products = append(summary.Products, domain.ProductProfitLoss{
			ProductID:        first.ProductID,
			ProductCode:      first.ProductCode,
			ProductName:      first.ProductName,
			FinalStock:       finalStock,
			LatestProfitLoss: latest,
		})
		summary.TotalProfitLoss = summary.TotalProfitLoss.Add(latest)
		summary.TransactionCount += len(seq)
	}

	sort.Slice(summary.Products, func(i, j int) bool {
		return summary.Products[i].ProductCode < summary.Products[j].ProductCode
	})
	summary.ProductCount = len(summary.Products)

	return summary
}
