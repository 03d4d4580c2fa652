package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SavinNik/Alfa-test-case/api/weberr"
	"github.com/SavinNik/Alfa-test-case/core/product"
	"github.com/SavinNik/Alfa-test-case/database"
	"github.com/jmoiron/sqlx"
)

// Add puts the requested quantity of a product into the user's cart.
// When the cart already holds a line for that product the quantities
// are summed; the cart itself is created on first use. Cart creation
// and the line write share one transaction.
func Add(ctx context.Context, db *sqlx.DB, userID string, ln LineNew) (LineItem, error) {
	if ln.Quantity.Sign() <= 0 {
		return LineItem{}, weberr.Validation(errors.New("quantity must be greater than zero"))
	}

	prd, err := product.Fetch(ctx, db, ln.ProductID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return LineItem{}, weberr.NotFound(fmt.Errorf("product[%d] does not exist", ln.ProductID))
		}
		return LineItem{}, fmt.Errorf("fetching product[%d]: %w", ln.ProductID, err)
	}

	var line Line
	err = database.Transaction(db, func(tx sqlx.ExtContext) error {
		crt, err := FetchOrCreate(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("resolving cart for user[%s]: %w", userID, err)
		}

		line, err = UpsertLine(ctx, tx, crt.ID, ln.ProductID, ln.Quantity, MergeAdd)
		if err != nil {
			return fmt.Errorf("adding line to cart[%d]: %w", crt.ID, err)
		}
		return nil
	})
	if err != nil {
		return LineItem{}, err
	}

	return LineItem{
		ID:           line.ID,
		Product:      line.ProductID,
		Quantity:     line.Quantity.StringFixed(2),
		ProductName:  prd.Name,
		ProductPrice: prd.Price.StringFixed(2),
	}, nil
}

// Update replaces the quantity of an existing line. Unlike Add it never
// creates anything: a missing cart or a missing line is a not-found
// condition.
func Update(ctx context.Context, db *sqlx.DB, userID string, ln LineNew) (LineItem, error) {
	if ln.Quantity.Sign() <= 0 {
		return LineItem{}, weberr.Validation(errors.New("quantity must be greater than zero"))
	}

	crt, err := Fetch(ctx, db, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return LineItem{}, weberr.NotFound(errors.New("product not found in cart"))
		}
		return LineItem{}, fmt.Errorf("fetching cart for user[%s]: %w", userID, err)
	}

	line, err := UpdateLine(ctx, db, crt.ID, ln.ProductID, ln.Quantity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return LineItem{}, weberr.NotFound(errors.New("product not found in cart"))
		}
		return LineItem{}, fmt.Errorf("updating line in cart[%d]: %w", crt.ID, err)
	}

	prd, err := product.Fetch(ctx, db, line.ProductID)
	if err != nil {
		return LineItem{}, fmt.Errorf("fetching product[%d]: %w", line.ProductID, err)
	}

	return LineItem{
		ID:           line.ID,
		Product:      line.ProductID,
		Quantity:     line.Quantity.StringFixed(2),
		ProductName:  prd.Name,
		ProductPrice: prd.Price.StringFixed(2),
	}, nil
}

// Remove deletes a single line from the user's cart.
func Remove(ctx context.Context, db *sqlx.DB, userID string, productID int64) error {
	crt, err := Fetch(ctx, db, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return weberr.NotFound(errors.New("product not found in cart"))
		}
		return fmt.Errorf("fetching cart for user[%s]: %w", userID, err)
	}

	removed, err := DeleteLine(ctx, db, crt.ID, productID)
	if err != nil {
		return fmt.Errorf("removing line from cart[%d]: %w", crt.ID, err)
	}
	if !removed {
		return weberr.NotFound(errors.New("product not found in cart"))
	}
	return nil
}

// ClearAll removes every line of the user's cart and returns how many
// were removed. A user without a cart has nothing to clear, which is
// not an error.
func ClearAll(ctx context.Context, db *sqlx.DB, userID string) (int64, error) {
	crt, err := Fetch(ctx, db, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("fetching cart for user[%s]: %w", userID, err)
	}

	n, err := Clear(ctx, db, crt.ID)
	if err != nil {
		return 0, fmt.Errorf("clearing cart[%d]: %w", crt.ID, err)
	}
	return n, nil
}

// FetchContents resolves the user's cart, creating it lazily, and
// projects its lines joined with the current product prices. Totals are
// recomputed on every call so they always reflect live prices.
func FetchContents(ctx context.Context, db *sqlx.DB, userID string) (Contents, error) {
	crt, err := FetchOrCreate(ctx, db, userID)
	if err != nil {
		return Contents{}, fmt.Errorf("resolving cart for user[%s]: %w", userID, err)
	}

	rows, err := fetchLines(ctx, db, crt.ID)
	if err != nil {
		return Contents{}, fmt.Errorf("fetching lines of cart[%d]: %w", crt.ID, err)
	}

	items := make([]LineItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, r.item())
	}

	quantity, cost := totals(rows)
	return Contents{
		Products:      items,
		TotalQuantity: quantity.StringFixed(2),
		TotalCost:     cost.StringFixed(2),
	}, nil
}
