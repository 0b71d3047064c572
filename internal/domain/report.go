// internal/domain/report.go
package domain

import "github.com/shopspring/decimal"

// ReportFilter holds the query-side filters for the inventory report.
type ReportFilter struct {
	Supplier                  string `json:"supplier"`
	Category                  string `json:"category"`
	ProductCode               string `json:"product_code"`
	ProductName               string `json:"product_name"`
	ProductType               string `json:"product_type"`
	IncludeTransactionHistory bool   `json:"include_transaction_history"`
	UseSequentialProfitLoss   bool   `json:"use_sequential_profit_loss"`
}

// GroupedProduct is the aggregate root per product for tabular display.
// TotalQuantity is the arithmetic sum of all raw quantities, not the final
// cumulative stock snapshot. Transactions are sorted descending by order
// number for display; their snapshots were computed on the ascending pass.
type GroupedProduct struct {
	ProductID           string                 `json:"product_id"`
	ProductCode         string                 `json:"product_code"`
	ProductName         string                 `json:"product_name"`
	TotalQuantity       int64                  `json:"total_quantity"`
	TotalInventoryValue decimal.Decimal        `json:"total_inventory_value"`
	LatestProfitLoss    decimal.Decimal        `json:"latest_profit_loss"`
	Transactions        []SequencedTransaction `json:"transactions,omitempty"`
}

// InventoryReport is the response envelope for the inventory report
// endpoint, mirroring what the back-office tables consume.
type InventoryReport struct {
	Data    []GroupedProduct `json:"data"`
	Filters ReportFilters    `json:"filters"`
}

// ReportFilters carries the filter options derived from the data set.
type ReportFilters struct {
	Categories []string `json:"categories,omitempty"`
}

// ChartDataItem is one chart point per sequenced transaction, ascending by
// order number. The cumulative profit/loss is split into a positive and a
// negative component for stacked-area rendering.
type ChartDataItem struct {
	ProductID            string          `json:"product_id"`
	ProductCode          string          `json:"product_code"`
	ProductName          string          `json:"product_name"`
	OrderNumber          string          `json:"order_number"`
	Type                 MovementType    `json:"type"`
	Quantity             int64           `json:"quantity"`
	CumulativeStock      int64           `json:"cumulative_stock"`
	CumulativeProfitLoss decimal.Decimal `json:"cumulative_profit_loss"`
	PositiveProfitLoss   decimal.Decimal `json:"positive_profit_loss"`
	NegativeProfitLoss   decimal.Decimal `json:"negative_profit_loss"`
}

// ProductProfitLoss is one product's contribution to the summary cards:
// the cumulative profit/loss evaluated at that product's highest order
// number (the latest-snapshot definition), not the sum of its deltas.
type ProductProfitLoss struct {
	ProductID        string          `json:"product_id"`
	ProductCode      string          `json:"product_code"`
	ProductName      string          `json:"product_name"`
	FinalStock       int64           `json:"final_stock"`
	LatestProfitLoss decimal.Decimal `json:"latest_profit_loss"`
}

// ProfitLossSummary aggregates latest-snapshot profit/loss across the
// portfolio for the summary cards.
type ProfitLossSummary struct {
	TotalProfitLoss  decimal.Decimal     `json:"total_profit_loss"`
	ProductCount     int                 `json:"product_count"`
	TransactionCount int                 `json:"transaction_count"`
	Products         []ProductProfitLoss `json:"products"`
}
