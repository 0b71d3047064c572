// internal/ledger/report_test.go
package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuchialin/pharmapos-backend/internal/domain"
)

func rawPurchase(productID, orderNumber string, qty int64, total string) domain.RawMovement {
	return domain.RawMovement{
		ProductID:           productID,
		ProductCode:         productID,
		ProductName:         "product " + productID,
		PurchaseOrderNumber: orderNumber,
		Quantity:            qty,
		TotalAmount:         amount(total),
	}
}

func rawSale(productID, orderNumber string, qty int64, total string) domain.RawMovement {
	return domain.RawMovement{
		ProductID:   productID,
		ProductCode: productID,
		ProductName: "product " + productID,
		SaleNumber:  orderNumber,
		Quantity:    qty,
		TotalAmount: amount(total),
	}
}

func TestDropUnordered(t *testing.T) {
	kept := DropUnordered([]domain.RawMovement{
		rawPurchase("P1", "20250101001", 10, "100"),
		{ProductID: "P1", Quantity: 5},
		rawSale("P1", "20250102001", -2, "40"),
	})

	require.Len(t, kept, 2)
	assert.Equal(t, "20250101001", kept[0].PurchaseOrderNumber)
	assert.Equal(t, "20250102001", kept[1].SaleNumber)
}

func TestBuildGroupedProducts(t *testing.T) {
	raws := []domain.RawMovement{
		rawSale("P2", "20250103001", -10, "200"),
		rawPurchase("P2", "20250101001", 100, "1000"),
		rawPurchase("P1", "20250102001", 20, "100"),
	}

	products := BuildGroupedProducts(raws, true)
	require.Len(t, products, 2)

	// Ordered by product code.
	assert.Equal(t, "P1", products[0].ProductID)
	assert.Equal(t, "P2", products[1].ProductID)

	p2 := products[1]
	assert.EqualValues(t, 90, p2.TotalQuantity)
	assert.Equal(t, "-800", p2.LatestProfitLoss.String())
	// 90 units on hand at the last purchase price of 10.
	assert.Equal(t, "900", p2.TotalInventoryValue.String())

	// History is attached descending by order number.
	require.Len(t, p2.Transactions, 2)
	assert.Equal(t, "20250103001", p2.Transactions[0].OrderNumber)
	assert.Equal(t, "20250101001", p2.Transactions[1].OrderNumber)
	assert.EqualValues(t, 90, p2.Transactions[0].CumulativeStock)
}

func TestBuildGroupedProductsWithoutHistory(t *testing.T) {
	products := BuildGroupedProducts([]domain.RawMovement{
		rawPurchase("P1", "20250101001", 10, "100"),
	}, false)

	require.Len(t, products, 1)
	assert.Nil(t, products[0].Transactions)
	assert.Equal(t, "-100", products[0].LatestProfitLoss.String())
}

func TestBuildGroupedProductsNeverPurchased(t *testing.T) {
	products := BuildGroupedProducts([]domain.RawMovement{
		rawSale("P1", "20250101001", -5, "100"),
	}, false)

	require.Len(t, products, 1)
	assert.True(t, products[0].TotalInventoryValue.IsZero())
	assert.Equal(t, "100", products[0].LatestProfitLoss.String())
}

func TestBuildChartDataSplitsSign(t *testing.T) {
	items := BuildChartData([]domain.RawMovement{
		rawPurchase("P1", "20250101001", 10, "100"),
		rawSale("P1", "20250102001", -10, "300"),
	})

	require.Len(t, items, 2)

	assert.Equal(t, "-100", items[0].CumulativeProfitLoss.String())
	assert.True(t, items[0].PositiveProfitLoss.IsZero())
	assert.Equal(t, "-100", items[0].NegativeProfitLoss.String())

	assert.Equal(t, "200", items[1].CumulativeProfitLoss.String())
	assert.Equal(t, "200", items[1].PositiveProfitLoss.String())
	assert.True(t, items[1].NegativeProfitLoss.IsZero())
}

func TestBuildChartDataOrdering(t *testing.T) {
	items := BuildChartData([]domain.RawMovement{
		rawPurchase("P2", "20250101001", 1, "10"),
		rawPurchase("P1", "20250103001", 1, "10"),
		rawPurchase("P1", "20250102001", 1, "10"),
	})

	require.Len(t, items, 3)
	assert.Equal(t, "P1", items[0].ProductID)
	assert.Equal(t, "20250102001", items[0].OrderNumber)
	assert.Equal(t, "20250103001", items[1].OrderNumber)
	assert.Equal(t, "P2", items[2].ProductID)
}

// The portfolio total is the sum of each product's latest snapshot, not the
// sum of every transaction delta.
func TestBuildSummary(t *testing.T) {
	summary := BuildSummary([]domain.RawMovement{
		rawPurchase("P1", "20250101001", 100, "1000"),
		rawSale("P1", "20250102001", -10, "200"),
		rawPurchase("P2", "20250101002", 10, "50"),
	})

	assert.Equal(t, "-850", summary.TotalProfitLoss.String())
	assert.Equal(t, 2, summary.ProductCount)
	assert.Equal(t, 3, summary.TransactionCount)

	require.Len(t, summary.Products, 2)
	assert.Equal(t, "P1", summary.Products[0].ProductID)
	assert.Equal(t, "-800", summary.Products[0].LatestProfitLoss.String())
	assert.EqualValues(t, 90, summary.Products[0].FinalStock)
	assert.Equal(t, "-50", summary.Products[1].LatestProfitLoss.String())
}

// Running the pipeline twice over the same rows yields identical reports.
func TestPipelineIdempotent(t *testing.T) {
	raws := []domain.RawMovement{
		rawPurchase("P1", "20250101001", 100, "1000"),
		rawSale("P1", "20250102001", -10, "200"),
		rawPurchase("P2", "20250101002", 10, "50"),
		{ProductID: "P2", ProductCode: "P2", TransactionType: "盤點", Quantity: 2},
	}

	first := BuildGroupedProducts(raws, true)
	second := BuildGroupedProducts(raws, true)
	assert.Equal(t, first, second)

	assert.Equal(t, BuildSummary(raws), BuildSummary(raws))
	assert.Equal(t, BuildChartData(raws), BuildChartData(raws))
}
