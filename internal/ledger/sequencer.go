// internal/ledger/sequencer.go
package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/yuchialin/pharmapos-backend/internal/domain"
)

// Sequence sorts one product's merged transactions ascending by order
// number and walks them once, deriving the running stock and running
// profit/loss snapshot on every record.
//
// The sort is plain lexicographic string comparison, never numeric. Order
// numbers are date-prefixed fixed-width strings by convention, so this
// matches chronology for conforming input; a numeric sort would silently
// reorder anything non-conforming and is deliberately not used.
//
// Stock accumulates the signed quantity for every type. Profit/loss uses
// the POS sign convention: purchase quantities arrive positive, sale and
// shipment quantities arrive negative, and the two delta helpers reproduce
// the exact double-negation arithmetic the quantity signs are entangled
// with. "other" records move stock but never profit/loss.
func Sequence(merged []domain.MergedTransaction) []domain.SequencedTransaction {
	seq := make([]domain.SequencedTransaction, 0, len(merged))
	for _, m := range merged {
		seq = append(seq, domain.SequencedTransaction{MergedTransaction: m})
	}

	sort.SliceStable(seq, func(i, j int) bool {
		return seq[i].OrderNumber < seq[j].OrderNumber
	})

	var stock int64
	profitLoss := decimal.Zero

	for i := range seq {
		tx := &seq[i]
		stock += tx.Quantity

		switch tx.Type {
		case domain.MovementPurchase:
			profitLoss = applyPurchaseDelta(profitLoss, tx.Quantity, tx.UnitPrice)
		case domain.MovementSale, domain.MovementShip:
			profitLoss = applySaleOrShipDelta(profitLoss, tx.Quantity, tx.UnitPrice)
		}

		tx.CumulativeStock = stock
		tx.CumulativeProfitLoss = profitLoss
	}

	return seq
}

// applyPurchaseDelta accumulates a purchase into the running profit/loss:
// profitLoss += -(quantity * unitPrice). Purchase quantities are positive,
// so a purchase always reduces the running value by its cost.
func applyPurchaseDelta(profitLoss decimal.Decimal, quantity int64, unitPrice decimal.Decimal) decimal.Decimal {
	delta := decimal.NewFromInt(quantity).Mul(unitPrice).Neg()
	return profitLoss.Add(delta)
}

// applySaleOrShipDelta accumulates a sale or shipment:
// profitLoss -= quantity * unitPrice. Sale and shipment quantities are
// already negative, so the subtraction adds the revenue magnitude. Do not
// simplify either helper into a shared formula; the sign convention is
// entangled with the upstream quantity signs.
func applySaleOrShipDelta(profitLoss decimal.Decimal, quantity int64, unitPrice decimal.Decimal) decimal.Decimal {
	delta := decimal.NewFromInt(quantity).Mul(unitPrice)
	return profitLoss.Sub(delta)
}

// Descending returns a copy of an already-sequenced slice in descending
// order-number order for display. The snapshots travel with the records,
// so no re-scan happens here; reversing the ascending sequence also keeps
// ascending-reversed and descending-sorted views identical.
func Descending(seq []domain.SequencedTransaction) []domain.SequencedTransaction {
	out := make([]domain.SequencedTransaction, len(seq))
	for i, tx := range seq {
		out[len(seq)-1-i] = tx
	}
	return out
}

// LatestSnapshot returns the cumulative profit/loss at the product's
// highest order number: the product's contribution to the portfolio
// summary. This is a point-in-time snapshot, not the sum of every
// transaction's delta, and the two must not be conflated.
func LatestSnapshot(seq []domain.SequencedTransaction) decimal.Decimal {
	if len(seq) == 0 {
		return decimal.Zero
	}
	return seq[len(seq)-1].CumulativeProfitLoss
}
