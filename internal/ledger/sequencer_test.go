// internal/ledger/sequencer_test.go
package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuchialin/pharmapos-backend/internal/domain"
)

func TestSequencePurchaseThenSale(t *testing.T) {
	// A purchase of 100 units for 1000 followed by a sale of 10 for 200.
	seq := Sequence([]domain.MergedTransaction{
		{ProductID: "P1", OrderNumber: "20250102001", Type: domain.MovementSale, Quantity: -10, UnitPrice: dec("20"), TotalAmount: dec("200")},
		{ProductID: "P1", OrderNumber: "20250101001", Type: domain.MovementPurchase, Quantity: 100, UnitPrice: dec("10"), TotalAmount: dec("1000")},
	})

	require.Len(t, seq, 2)

	// Sorted ascending regardless of input order.
	assert.Equal(t, "20250101001", seq[0].OrderNumber)
	assert.EqualValues(t, 100, seq[0].CumulativeStock)
	assert.Equal(t, "-1000", seq[0].CumulativeProfitLoss.String())

	assert.Equal(t, "20250102001", seq[1].OrderNumber)
	assert.EqualValues(t, 90, seq[1].CumulativeStock)
	assert.Equal(t, "-800", seq[1].CumulativeProfitLoss.String())
}

func TestSequenceShipMatchesSale(t *testing.T) {
	seq := Sequence([]domain.MergedTransaction{
		{ProductID: "P1", OrderNumber: "20250101001", Type: domain.MovementPurchase, Quantity: 10, UnitPrice: dec("10"), TotalAmount: dec("100")},
		{ProductID: "P1", OrderNumber: "20250102001", Type: domain.MovementShip, Quantity: -4, UnitPrice: dec("15"), TotalAmount: dec("60")},
	})

	require.Len(t, seq, 2)
	assert.EqualValues(t, 6, seq[1].CumulativeStock)
	// -100 from the purchase, +60 from shipping 4 units at 15.
	assert.Equal(t, "-40", seq[1].CumulativeProfitLoss.String())
}

// "other" records move stock but never profit/loss.
func TestSequenceOtherMovesStockOnly(t *testing.T) {
	seq := Sequence([]domain.MergedTransaction{
		{ProductID: "P1", OrderNumber: "20250101001", Type: domain.MovementPurchase, Quantity: 10, UnitPrice: dec("10"), TotalAmount: dec("100")},
		{ProductID: "P1", OrderNumber: domain.MissingOrderNumber, Type: domain.MovementOther, Quantity: 5, UnitPrice: dec("99"), TotalAmount: dec("0")},
	})

	require.Len(t, seq, 2)
	// "-" sorts before any digit-prefixed order number.
	assert.Equal(t, domain.MissingOrderNumber, seq[0].OrderNumber)
	assert.EqualValues(t, 5, seq[0].CumulativeStock)
	assert.True(t, seq[0].CumulativeProfitLoss.IsZero())

	assert.EqualValues(t, 15, seq[1].CumulativeStock)
	assert.Equal(t, "-100", seq[1].CumulativeProfitLoss.String())
}

// The order is lexicographic on the string, never numeric: "9" sorts after
// "10". Conforming order numbers are fixed-width, so this matches
// chronology for real data.
func TestSequenceOrdersLexicographically(t *testing.T) {
	seq := Sequence([]domain.MergedTransaction{
		{ProductID: "P1", OrderNumber: "9", Type: domain.MovementOther, Quantity: 1},
		{ProductID: "P1", OrderNumber: "10", Type: domain.MovementOther, Quantity: 1},
	})

	require.Len(t, seq, 2)
	assert.Equal(t, "10", seq[0].OrderNumber)
	assert.Equal(t, "9", seq[1].OrderNumber)
}

// Final stock is the plain sum of merged quantities, whatever the types.
func TestSequenceStockAdditivity(t *testing.T) {
	input := []domain.MergedTransaction{
		{ProductID: "P1", OrderNumber: "20250101001", Type: domain.MovementPurchase, Quantity: 100, UnitPrice: dec("10")},
		{ProductID: "P1", OrderNumber: "20250102001", Type: domain.MovementSale, Quantity: -30, UnitPrice: dec("20")},
		{ProductID: "P1", OrderNumber: "20250103001", Type: domain.MovementShip, Quantity: -20, UnitPrice: dec("20")},
		{ProductID: "P1", OrderNumber: domain.MissingOrderNumber, Type: domain.MovementOther, Quantity: 7},
	}

	var want int64
	for _, m := range input {
		want += m.Quantity
	}

	seq := Sequence(input)
	require.NotEmpty(t, seq)
	assert.Equal(t, want, seq[len(seq)-1].CumulativeStock)
}

func TestSequenceDeterministic(t *testing.T) {
	input := []domain.MergedTransaction{
		{ProductID: "P1", OrderNumber: "20250103001", Type: domain.MovementSale, Quantity: -5, UnitPrice: dec("20"), TotalAmount: dec("100")},
		{ProductID: "P1", OrderNumber: "20250101001", Type: domain.MovementPurchase, Quantity: 50, UnitPrice: dec("10"), TotalAmount: dec("500")},
		{ProductID: "P1", OrderNumber: "20250102001", Type: domain.MovementShip, Quantity: -10, UnitPrice: dec("15"), TotalAmount: dec("150")},
	}

	first := Sequence(input)
	second := Sequence(input)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].OrderNumber, second[i].OrderNumber)
		assert.Equal(t, first[i].CumulativeStock, second[i].CumulativeStock)
		assert.True(t, first[i].CumulativeProfitLoss.Equal(second[i].CumulativeProfitLoss))
	}
}

// Reversing the ascending sequence and the descending view must agree; the
// snapshots travel with the records.
func TestDescendingIsReversedAscending(t *testing.T) {
	seq := Sequence([]domain.MergedTransaction{
		{ProductID: "P1", OrderNumber: "20250101001", Type: domain.MovementPurchase, Quantity: 100, UnitPrice: dec("10")},
		{ProductID: "P1", OrderNumber: "20250102001", Type: domain.MovementSale, Quantity: -10, UnitPrice: dec("20")},
		{ProductID: "P1", OrderNumber: "20250103001", Type: domain.MovementSale, Quantity: -20, UnitPrice: dec("20")},
	})

	desc := Descending(seq)
	require.Len(t, desc, len(seq))
	for i := range seq {
		mirror := desc[len(desc)-1-i]
		assert.Equal(t, seq[i].OrderNumber, mirror.OrderNumber)
		assert.Equal(t, seq[i].CumulativeStock, mirror.CumulativeStock)
		assert.True(t, seq[i].CumulativeProfitLoss.Equal(mirror.CumulativeProfitLoss))
	}

	// The ascending input is left untouched.
	assert.Equal(t, "20250101001", seq[0].OrderNumber)
}

func TestLatestSnapshot(t *testing.T) {
	assert.True(t, LatestSnapshot(nil).IsZero())

	seq := Sequence([]domain.MergedTransaction{
		{ProductID: "P1", OrderNumber: "20250101001", Type: domain.MovementPurchase, Quantity: 100, UnitPrice: dec("10")},
		{ProductID: "P1", OrderNumber: "20250102001", Type: domain.MovementSale, Quantity: -10, UnitPrice: dec("20")},
	})
	assert.Equal(t, "-800", LatestSnapshot(seq).String())
}
