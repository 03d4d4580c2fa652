package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// Fetch returns the cart owned by userID, passing sql.ErrNoRows through
// when the user has none yet.
func Fetch(ctx context.Context, db sqlx.ExtContext, userID string) (Cart, error) {
	const q = `
	SELECT cart_id, user_id, created_at
	FROM carts
	WHERE user_id = $1`

	var crt Cart
	if err := sqlx.GetContext(ctx, db, &crt, q, userID); err != nil {
		return Cart{}, err
	}
	return crt, nil
}

// FetchOrCreate returns the cart owned by userID, creating it when
// absent. The conditional insert resolves concurrent first access on
// the owner uniqueness constraint: the loser of the race gets the
// winner's row back from the same statement, so two carts can never be
// created for one user.
func FetchOrCreate(ctx context.Context, db sqlx.ExtContext, userID string) (Cart, error) {
	const q = `
	INSERT INTO carts (user_id, created_at)
	VALUES ($1, $2)
	ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
	RETURNING cart_id, user_id, created_at`

	var crt Cart
	if err := sqlx.GetContext(ctx, db, &crt, q, userID, time.Now().UTC()); err != nil {
		return Cart{}, fmt.Errorf("upserting cart: %w", err)
	}
	return crt, nil
}

func FetchLine(ctx context.Context, db sqlx.ExtContext, cartID int64, productID int64) (Line, error) {
	const q = `
	SELECT line_id, cart_id, product_id, quantity, created_at, updated_at
	FROM cart_lines
	WHERE cart_id = $1 AND product_id = $2`

	var ln Line
	if err := sqlx.GetContext(ctx, db, &ln, q, cartID, productID); err != nil {
		return Line{}, err
	}
	return ln, nil
}

// UpsertLine writes the (cart, product) line in a single statement so
// that concurrent writers cannot lose updates: the merge runs inside
// the database, not as a read-then-write in the application.
func UpsertLine(ctx context.Context, db sqlx.ExtContext, cartID int64, productID int64, quantity decimal.Decimal, merge Merge) (Line, error) {
	const qAdd = `
	INSERT INTO cart_lines (cart_id, product_id, quantity, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $4)
	ON CONFLICT (cart_id, product_id) DO UPDATE
	SET quantity = cart_lines.quantity + EXCLUDED.quantity, updated_at = EXCLUDED.updated_at
	RETURNING line_id, cart_id, product_id, quantity, created_at, updated_at`

	const qReplace = `
	INSERT INTO cart_lines (cart_id, product_id, quantity, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $4)
	ON CONFLICT (cart_id, product_id) DO UPDATE
	SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at
	RETURNING line_id, cart_id, product_id, quantity, created_at, updated_at`

	q := qAdd
	if merge == MergeReplace {
		q = qReplace
	}

	var ln Line
	if err := sqlx.GetContext(ctx, db, &ln, q, cartID, productID, quantity, time.Now().UTC()); err != nil {
		return Line{}, fmt.Errorf("upserting cart line: %w", err)
	}
	return ln, nil
}

// UpdateLine replaces the quantity of an existing line, passing
// sql.ErrNoRows through when the cart has no line for the product.
func UpdateLine(ctx context.Context, db sqlx.ExtContext, cartID int64, productID int64, quantity decimal.Decimal) (Line, error) {
	const q = `
	UPDATE cart_lines
	SET quantity = $3, updated_at = $4
	WHERE cart_id = $1 AND product_id = $2
	RETURNING line_id, cart_id, product_id, quantity, created_at, updated_at`

	var ln Line
	if err := sqlx.GetContext(ctx, db, &ln, q, cartID, productID, quantity, time.Now().UTC()); err != nil {
		return Line{}, err
	}
	return ln, nil
}

// DeleteLine removes the line for the given product and reports whether
// anything was there to remove.
func DeleteLine(ctx context.Context, db sqlx.ExtContext, cartID int64, productID int64) (bool, error) {
	const q = `
	DELETE FROM cart_lines
	WHERE cart_id = $1 AND product_id = $2`

	res, err := db.ExecContext(ctx, q, cartID, productID)
	if err != nil {
		return false, fmt.Errorf("deleting cart line: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading affected rows: %w", err)
	}
	return n > 0, nil
}

// Clear removes every line of the cart, leaving the cart row in place.
func Clear(ctx context.Context, db sqlx.ExtContext, cartID int64) (int64, error) {
	const q = `
	DELETE FROM cart_lines
	WHERE cart_id = $1`

	res, err := db.ExecContext(ctx, q, cartID)
	if err != nil {
		return 0, fmt.Errorf("clearing cart lines: %w", err)
	}

	return res.RowsAffected()
}

// fetchLines returns the cart's lines joined live with their products,
// in insertion order for deterministic responses.
func fetchLines(ctx context.Context, db sqlx.ExtContext, cartID int64) ([]lineRow, error) {
	const q = `
	SELECT l.line_id, l.product_id, l.quantity, p.name, p.price
	FROM cart_lines l
	JOIN products p ON p.product_id = l.product_id
	WHERE l.cart_id = $1
	ORDER BY l.line_id`

	rows := []lineRow{}
	if err := sqlx.SelectContext(ctx, db, &rows, q, cartID); err != nil {
		return nil, fmt.Errorf("selecting cart lines: %w", err)
	}
	return rows, nil
}
