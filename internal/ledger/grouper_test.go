// internal/ledger/grouper_test.go
package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuchialin/pharmapos-backend/internal/domain"
)

func purchase(productID, orderNumber string, qty int64, unitPrice, total string) domain.Transaction {
	return domain.Transaction{
		ProductID:   productID,
		ProductCode: productID,
		OrderNumber: orderNumber,
		Type:        domain.MovementPurchase,
		Quantity:    qty,
		UnitPrice:   dec(unitPrice),
		TotalAmount: dec(total),
	}
}

// Two purchase lines on the same order number collapse into one merged
// record: quantities and amounts summed, the rest taken from the first line.
func TestGroupMergesSameOrderNumber(t *testing.T) {
	grouped := Group([]domain.Transaction{
		purchase("P1", "20250101001", 50, "10", "500"),
		purchase("P1", "20250101001", 50, "10", "500"),
	})

	require.Len(t, grouped, 1)
	require.Len(t, grouped["P1"], 1)

	merged := grouped["P1"][0]
	assert.EqualValues(t, 100, merged.Quantity)
	assert.Equal(t, "1000", merged.TotalAmount.String())
	assert.Equal(t, domain.MovementPurchase, merged.Type)
	assert.Equal(t, "20250101001", merged.OrderNumber)
}

func TestGroupPartitionsByProduct(t *testing.T) {
	grouped := Group([]domain.Transaction{
		purchase("P1", "20250101001", 10, "5", "50"),
		purchase("P2", "20250101001", 20, "5", "100"),
	})

	require.Len(t, grouped, 2)
	assert.EqualValues(t, 10, grouped["P1"][0].Quantity)
	assert.EqualValues(t, 20, grouped["P2"][0].Quantity)
}

func TestGroupDistinctOrderNumbersStaySeparate(t *testing.T) {
	grouped := Group([]domain.Transaction{
		purchase("P1", "20250101001", 10, "5", "50"),
		purchase("P1", "20250102001", 10, "5", "50"),
	})

	require.Len(t, grouped["P1"], 2)
	assert.Equal(t, "20250101001", grouped["P1"][0].OrderNumber)
	assert.Equal(t, "20250102001", grouped["P1"][1].OrderNumber)
}

// "-" merges like any other key: every unnumbered movement of one product
// collapses into a single record.
func TestGroupMissingSentinelMerges(t *testing.T) {
	grouped := Group([]domain.Transaction{
		{ProductID: "P1", OrderNumber: domain.MissingOrderNumber, Type: domain.MovementOther, Quantity: 3, TotalAmount: dec("0")},
		{ProductID: "P1", OrderNumber: domain.MissingOrderNumber, Type: domain.MovementOther, Quantity: -1, TotalAmount: dec("0")},
	})

	require.Len(t, grouped["P1"], 1)
	assert.EqualValues(t, 2, grouped["P1"][0].Quantity)
}

// Grouping must not mutate its input.
func TestGroupIsPure(t *testing.T) {
	txs := []domain.Transaction{
		purchase("P1", "20250101001", 50, "10", "500"),
		purchase("P1", "20250101001", 50, "10", "500"),
	}

	Group(txs)

	assert.EqualValues(t, 50, txs[0].Quantity)
	assert.Equal(t, "500", txs[0].TotalAmount.String())
	assert.EqualValues(t, 50, txs[1].Quantity)
}
