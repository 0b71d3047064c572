// internal/domain/orders.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a row from the product master.
type Product struct {
	ID            string          `json:"id" db:"id"`
	Code          string          `json:"code" db:"code"`
	Name          string          `json:"name" db:"name"`
	ProductType   string          `json:"product_type" db:"product_type"`
	Category      string          `json:"category" db:"category"`
	Supplier      string          `json:"supplier" db:"supplier"`
	PurchasePrice decimal.Decimal `json:"purchase_price" db:"purchase_price"`
	SellingPrice  decimal.Decimal `json:"selling_price" db:"selling_price"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

// PurchaseOrder is a purchase order header. Line items live in the
// movements table keyed by the PO number.
type PurchaseOrder struct {
	ID          int64           `json:"id" db:"id"`
	PONumber    string          `json:"po_number" db:"po_number"`
	Supplier    string          `json:"supplier" db:"supplier"`
	Status      string          `json:"status" db:"status"`
	OrderDate   time.Time       `json:"order_date" db:"order_date"`
	TotalAmount decimal.Decimal `json:"total_amount" db:"total_amount"`
	ItemCount   int             `json:"item_count" db:"item_count"`
	Note        string          `json:"note" db:"note"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

// ShippingOrder is a shipping order header.
type ShippingOrder struct {
	ID          int64           `json:"id" db:"id"`
	SONumber    string          `json:"so_number" db:"so_number"`
	Customer    string          `json:"customer" db:"customer"`
	Status      string          `json:"status" db:"status"`
	ShipDate    time.Time       `json:"ship_date" db:"ship_date"`
	TotalAmount decimal.Decimal `json:"total_amount" db:"total_amount"`
	ItemCount   int             `json:"item_count" db:"item_count"`
	Note        string          `json:"note" db:"note"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

// PurchaseOrderDetail pairs a PO header with its movement lines.
type PurchaseOrderDetail struct {
	Order PurchaseOrder `json:"order"`
	Lines []RawMovement `json:"lines"`
}

// ShippingOrderDetail pairs a shipping order header with its movement lines.
type ShippingOrderDetail struct {
	Order ShippingOrder `json:"order"`
	Lines []RawMovement `json:"lines"`
}

// OrderListFilter is the shared pagination/search filter for the order
// browsing endpoints.
type OrderListFilter struct {
	Search   string `json:"search"`
	Status   string `json:"status"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

// PurchaseOrderPage is a paginated PO listing.
type PurchaseOrderPage struct {
	Items      []PurchaseOrder `json:"items"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}

// ShippingOrderPage is a paginated shipping order listing.
type ShippingOrderPage struct {
	Items      []ShippingOrder `json:"items"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}
