package test

import (
	"context"
	"net/http"
	"testing"

	"github.com/SavinNik/Alfa-test-case/core/cart"
	"golang.org/x/sync/errgroup"
)

// TestCartConcurrency exercises the two races the cart must survive:
// simultaneous first access must never produce two carts for one user,
// and simultaneous adds of the same product must never lose an update.
func TestCartConcurrency(t *testing.T) {
	env, err := NewTestEnv(t, "cart_concurrency_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	ct := &catalogTest{env}
	rt := &cartTest{env}

	c := ct.createCategoryOK(t)
	s := ct.createSubcategoryOK(t, c.ID)
	p := ct.createProductOK(t, s.ID, "1.00")

	if err := Login(env, env.UserEmail, env.UserPass); err != nil {
		t.Fatal(err)
	}
	defer Logout(env)

	const n = 20

	var g errgroup.Group
	for i := 0; i < n; i++ {
		g.Go(func() error {
			body := map[string]any{"product_id": p.ID, "quantity": 1}
			status, err := env.JSON(http.MethodPost, "/cart", body, nil)
			if err != nil {
				return err
			}
			if status != http.StatusCreated {
				t.Errorf("concurrent add: status code %d", status)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent adds failed: %v", err)
	}

	contents := rt.showCartOK(t)
	if got, want := contents.TotalQuantity, "20.00"; got != want {
		t.Fatalf("lost update: total quantity %s, want %s", got, want)
	}

	// The adds above also raced on cart creation itself.
	ctx := context.Background()

	var userID string
	if err := env.DB.Get(&userID, `SELECT user_id FROM users WHERE email = $1`, env.UserEmail); err != nil {
		t.Fatalf("resolving user id: %v", err)
	}

	var carts int
	if err := env.DB.Get(&carts, `SELECT count(*) FROM carts WHERE user_id = $1`, userID); err != nil {
		t.Fatalf("counting carts: %v", err)
	}
	if carts != 1 {
		t.Fatalf("expected exactly 1 cart for the user, got %d", carts)
	}

	crt, err := cart.Fetch(ctx, env.DB, userID)
	if err != nil {
		t.Fatalf("fetching cart: %v", err)
	}

	line, err := cart.FetchLine(ctx, env.DB, crt.ID, p.ID)
	if err != nil {
		t.Fatalf("fetching line: %v", err)
	}
	if got := line.Quantity.StringFixed(2); got != "20.00" {
		t.Fatalf("lost update at the line level: quantity %s, want 20.00", got)
	}
}
