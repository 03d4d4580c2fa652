package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

type Cart struct {
	ID        int64     `json:"-" db:"cart_id"`
	UserID    string    `json:"-" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type Line struct {
	ID        int64           `json:"id" db:"line_id"`
	CartID    int64           `json:"-" db:"cart_id"`
	ProductID int64           `json:"product" db:"product_id"`
	Quantity  decimal.Decimal `json:"quantity" db:"quantity"`
	CreatedAt time.Time       `json:"-" db:"created_at"`
	UpdatedAt time.Time       `json:"-" db:"updated_at"`
}

type LineNew struct {
	ProductID int64           `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// Merge is the policy applied when a line for the same product already
// exists in the cart.
type Merge int

const (
	// MergeAdd sums the requested quantity into the existing line.
	MergeAdd Merge = iota
	// MergeReplace overwrites the existing quantity with the requested one.
	MergeReplace
)

// LineItem is a cart line joined with the product it references,
// denormalized for display. Price is read live, never stored with the
// line, so the reported cost of old lines follows product price changes.
type LineItem struct {
	ID           int64  `json:"id"`
	Product      int64  `json:"product"`
	Quantity     string `json:"quantity"`
	ProductName  string `json:"product_name"`
	ProductPrice string `json:"product_price"`
}

// Contents is the full cart projection with the running totals.
type Contents struct {
	Products      []LineItem `json:"products"`
	TotalQuantity string     `json:"total_quantity"`
	TotalCost     string     `json:"total_cost"`
}

// lineRow is a cart line joined with its product as read by fetchLines.
type lineRow struct {
	LineID    int64           `db:"line_id"`
	ProductID int64           `db:"product_id"`
	Quantity  decimal.Decimal `db:"quantity"`
	Name      string          `db:"name"`
	Price     decimal.Decimal `db:"price"`
}

func (r lineRow) item() LineItem {
	return LineItem{
		ID:           r.LineID,
		Product:      r.ProductID,
		Quantity:     r.Quantity.StringFixed(2),
		ProductName:  r.Name,
		ProductPrice: r.Price.StringFixed(2),
	}
}

// totals computes the quantity and cost sums over the given rows, cost
// being quantity times the product's current price.
func totals(rows []lineRow) (quantity, cost decimal.Decimal) {
	for _, r := range rows {
		quantity = quantity.Add(r.Quantity)
		cost = cost.Add(r.Quantity.Mul(r.Price))
	}
	return quantity, cost
}
