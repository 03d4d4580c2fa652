package test

import (
	"net/http"
	"testing"

	"github.com/SavinNik/Alfa-test-case/core/cart"
	"github.com/google/go-cmp/cmp"
)

type cartTest struct {
	*TestEnv
}

func (rt *cartTest) showCartOK(t *testing.T) cart.Contents {
	var contents cart.Contents
	status, err := rt.JSON(http.MethodGet, "/cart", nil, &contents)
	if err != nil {
		t.Fatal(err)
	}
	if status != http.StatusOK {
		t.Fatalf("can't show cart: status code %d", status)
	}
	return contents
}

func (rt *cartTest) addItem(t *testing.T, productID int64, quantity any) (cart.LineItem, int) {
	body := map[string]any{"product_id": productID, "quantity": quantity}

	var item cart.LineItem
	status, err := rt.JSON(http.MethodPost, "/cart", body, &item)
	if err != nil {
		t.Fatal(err)
	}
	return item, status
}

func (rt *cartTest) updateItem(t *testing.T, productID int64, quantity any) (cart.LineItem, int) {
	body := map[string]any{"product_id": productID, "quantity": quantity}

	var item cart.LineItem
	status, err := rt.JSON(http.MethodPut, "/cart", body, &item)
	if err != nil {
		t.Fatal(err)
	}
	return item, status
}

func TestCart(t *testing.T) {
	env, err := NewTestEnv(t, "cart_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	ct := &catalogTest{env}
	rt := &cartTest{env}

	c := ct.createCategoryOK(t)
	s := ct.createSubcategoryOK(t, c.ID)
	p1 := ct.createProductOK(t, s.ID, "10.00")
	p2 := ct.createProductOK(t, s.ID, "4.50")

	t.Run("cart requires authentication", func(t *testing.T) {
		status, err := env.JSON(http.MethodGet, "/cart", nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		if status != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", status)
		}
	})

	if err := Login(env, env.UserEmail, env.UserPass); err != nil {
		t.Fatal(err)
	}
	defer Logout(env)

	t.Run("empty cart projects zero totals", func(t *testing.T) {
		want := cart.Contents{
			Products:      []cart.LineItem{},
			TotalQuantity: "0.00",
			TotalCost:     "0.00",
		}
		if diff := cmp.Diff(want, rt.showCartOK(t)); diff != "" {
			t.Fatalf("cart mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("adding twice sums quantities", func(t *testing.T) {
		item, status := rt.addItem(t, p1.ID, 2)
		if status != http.StatusCreated {
			t.Fatalf("adding to cart: status code %d", status)
		}
		if item.Product != p1.ID || item.Quantity != "2.00" {
			t.Fatalf("unexpected line after first add: %+v", item)
		}

		item, status = rt.addItem(t, p1.ID, 3)
		if status != http.StatusCreated {
			t.Fatalf("adding to cart again: status code %d", status)
		}
		if item.Quantity != "5.00" {
			t.Fatalf("expected summed quantity 5.00, got %s", item.Quantity)
		}
	})

	t.Run("add rejects non-positive quantities", func(t *testing.T) {
		if _, status := rt.addItem(t, p1.ID, 0); status != http.StatusBadRequest {
			t.Fatalf("expected 400 for zero quantity, got %d", status)
		}
		if _, status := rt.addItem(t, p1.ID, -1); status != http.StatusBadRequest {
			t.Fatalf("expected 400 for negative quantity, got %d", status)
		}
	})

	t.Run("add rejects unknown products", func(t *testing.T) {
		if _, status := rt.addItem(t, 999999, 1); status != http.StatusNotFound {
			t.Fatalf("expected 404 for unknown product, got %d", status)
		}
	})

	t.Run("update replaces the quantity", func(t *testing.T) {
		item, status := rt.updateItem(t, p1.ID, 1)
		if status != http.StatusOK {
			t.Fatalf("updating quantity: status code %d", status)
		}
		if item.Quantity != "1.00" {
			t.Fatalf("expected replaced quantity 1.00, got %s", item.Quantity)
		}
	})

	t.Run("update rejects lines not in the cart", func(t *testing.T) {
		if _, status := rt.updateItem(t, p2.ID, 1); status != http.StatusNotFound {
			t.Fatalf("expected 404 for a product not in the cart, got %d", status)
		}
	})

	t.Run("update rejects non-positive quantities", func(t *testing.T) {
		if _, status := rt.updateItem(t, p1.ID, 0); status != http.StatusBadRequest {
			t.Fatalf("expected 400 for zero quantity, got %d", status)
		}
	})

	t.Run("fractional quantities are kept", func(t *testing.T) {
		item, status := rt.addItem(t, p2.ID, 0.5)
		if status != http.StatusCreated {
			t.Fatalf("adding fractional quantity: status code %d", status)
		}
		if item.Quantity != "0.50" {
			t.Fatalf("expected quantity 0.50, got %s", item.Quantity)
		}
	})

	t.Run("totals follow live product prices", func(t *testing.T) {
		// Cart now holds p1 x 1.00 at 10.00 and p2 x 0.50 at 4.50.
		contents := rt.showCartOK(t)
		if contents.TotalQuantity != "1.50" {
			t.Fatalf("expected total quantity 1.50, got %s", contents.TotalQuantity)
		}
		if contents.TotalCost != "12.25" {
			t.Fatalf("expected total cost 12.25, got %s", contents.TotalCost)
		}

		ct.updateProductPriceOK(t, p1.ID, "20.00")

		if err := Login(env, env.UserEmail, env.UserPass); err != nil {
			t.Fatal(err)
		}

		contents = rt.showCartOK(t)
		if contents.TotalCost != "22.25" {
			t.Fatalf("expected total cost 22.25 after price change, got %s", contents.TotalCost)
		}
		if contents.Products[0].ProductPrice != "20.00" {
			t.Fatalf("expected live price 20.00, got %s", contents.Products[0].ProductPrice)
		}
	})

	t.Run("remove deletes a single line", func(t *testing.T) {
		status, err := env.JSON(http.MethodDelete, "/cart?product_id="+itoa(p1.ID), nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		if status != http.StatusNoContent {
			t.Fatalf("removing line: status code %d", status)
		}

		contents := rt.showCartOK(t)
		if len(contents.Products) != 1 || contents.Products[0].Product != p2.ID {
			t.Fatalf("expected only product %d to remain, got %+v", p2.ID, contents.Products)
		}
	})

	t.Run("removing a missing line is not found", func(t *testing.T) {
		status, err := env.JSON(http.MethodDelete, "/cart?product_id="+itoa(p1.ID), nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		if status != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", status)
		}
	})

	t.Run("delete without parameters is rejected", func(t *testing.T) {
		status, err := env.JSON(http.MethodDelete, "/cart", nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		if status != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", status)
		}
	})

	t.Run("clear empties the cart", func(t *testing.T) {
		status, err := env.JSON(http.MethodDelete, "/cart?clear=true", nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		if status != http.StatusNoContent {
			t.Fatalf("clearing cart: status code %d", status)
		}

		want := cart.Contents{
			Products:      []cart.LineItem{},
			TotalQuantity: "0.00",
			TotalCost:     "0.00",
		}
		if diff := cmp.Diff(want, rt.showCartOK(t)); diff != "" {
			t.Fatalf("cart mismatch after clear (-want +got):\n%s", diff)
		}
	})
}
