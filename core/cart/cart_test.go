package cart

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func TestTotals(t *testing.T) {
	rows := []lineRow{
		{LineID: 1, ProductID: 10, Quantity: decimal.RequireFromString("2"), Name: "apples", Price: decimal.RequireFromString("1.50")},
		{LineID: 2, ProductID: 11, Quantity: decimal.RequireFromString("0.5"), Name: "cheese", Price: decimal.RequireFromString("12.00")},
	}

	quantity, cost := totals(rows)

	if got, want := quantity.StringFixed(2), "2.50"; got != want {
		t.Errorf("total quantity: got %s, want %s", got, want)
	}
	if got, want := cost.StringFixed(2), "9.00"; got != want {
		t.Errorf("total cost: got %s, want %s", got, want)
	}
}

func TestTotalsEmpty(t *testing.T) {
	quantity, cost := totals(nil)

	if got, want := quantity.StringFixed(2), "0.00"; got != want {
		t.Errorf("total quantity: got %s, want %s", got, want)
	}
	if got, want := cost.StringFixed(2), "0.00"; got != want {
		t.Errorf("total cost: got %s, want %s", got, want)
	}
}

func TestLineRowProjection(t *testing.T) {
	row := lineRow{
		LineID:    7,
		ProductID: 42,
		Quantity:  decimal.RequireFromString("3"),
		Name:      "flour",
		Price:     decimal.RequireFromString("2.5"),
	}

	want := LineItem{
		ID:           7,
		Product:      42,
		Quantity:     "3.00",
		ProductName:  "flour",
		ProductPrice: "2.50",
	}

	if diff := cmp.Diff(want, row.item()); diff != "" {
		t.Errorf("projection mismatch (-want +got):\n%s", diff)
	}
}
