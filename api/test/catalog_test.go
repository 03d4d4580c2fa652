package test

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/SavinNik/Alfa-test-case/core/category"
	"github.com/SavinNik/Alfa-test-case/core/product"
	"github.com/SavinNik/Alfa-test-case/random"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

type catalogTest struct {
	*TestEnv
}

func (ct *catalogTest) createCategoryOK(t *testing.T) category.Category {
	if err := Login(ct.TestEnv, ct.AdminEmail, ct.AdminPass); err != nil {
		t.Fatal(err)
	}
	defer Logout(ct.TestEnv)

	name := "cat-" + random.String(8)
	body := map[string]string{"name": name, "slug": name, "image": "/img/" + name + ".png"}

	var cat category.Category
	status, err := ct.JSON(http.MethodPost, "/categories", body, &cat)
	if err != nil {
		t.Fatal(err)
	}
	if status != http.StatusCreated {
		t.Fatalf("can't create category: status code %d", status)
	}
	return cat
}

func (ct *catalogTest) createSubcategoryOK(t *testing.T, categoryID int64) category.SubCategory {
	if err := Login(ct.TestEnv, ct.AdminEmail, ct.AdminPass); err != nil {
		t.Fatal(err)
	}
	defer Logout(ct.TestEnv)

	name := "sub-" + random.String(8)
	body := map[string]any{"name": name, "slug": name, "categoryId": categoryID}

	var sub category.SubCategory
	status, err := ct.JSON(http.MethodPost, "/subcategories", body, &sub)
	if err != nil {
		t.Fatal(err)
	}
	if status != http.StatusCreated {
		t.Fatalf("can't create subcategory: status code %d", status)
	}
	return sub
}

func (ct *catalogTest) createProductOK(t *testing.T, subcategoryID int64, price string) product.Product {
	if err := Login(ct.TestEnv, ct.AdminEmail, ct.AdminPass); err != nil {
		t.Fatal(err)
	}
	defer Logout(ct.TestEnv)

	name := "prd-" + random.String(8)
	body := map[string]any{
		"name":          name,
		"slug":          name,
		"price":         price,
		"subcategoryId": subcategoryID,
	}

	var prd product.Product
	status, err := ct.JSON(http.MethodPost, "/products", body, &prd)
	if err != nil {
		t.Fatal(err)
	}
	if status != http.StatusCreated {
		t.Fatalf("can't create product: status code %d", status)
	}
	return prd
}

func (ct *catalogTest) updateProductPriceOK(t *testing.T, id int64, price string) {
	if err := Login(ct.TestEnv, ct.AdminEmail, ct.AdminPass); err != nil {
		t.Fatal(err)
	}
	defer Logout(ct.TestEnv)

	body := map[string]any{"price": price}

	status, err := ct.JSON(http.MethodPut, "/products/"+itoa(id), body, nil)
	if err != nil {
		t.Fatal(err)
	}
	if status != http.StatusOK {
		t.Fatalf("can't update product price: status code %d", status)
	}
}

func TestCatalog(t *testing.T) {
	env, err := NewTestEnv(t, "catalog_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	ct := &catalogTest{env}

	c1 := ct.createCategoryOK(t)
	c2 := ct.createCategoryOK(t)

	s1 := ct.createSubcategoryOK(t, c1.ID)
	s2 := ct.createSubcategoryOK(t, c1.ID)
	s3 := ct.createSubcategoryOK(t, c2.ID)

	p1 := ct.createProductOK(t, s1.ID, "9.99")
	_ = ct.createProductOK(t, s3.ID, "4.50")

	t.Run("categories are paginated with nested subcategories", func(t *testing.T) {
		var res struct {
			Count   int                 `json:"count"`
			Results []category.Category `json:"results"`
		}
		status, err := env.JSON(http.MethodGet, "/categories?page_size=1", nil, &res)
		if err != nil {
			t.Fatal(err)
		}
		if status != http.StatusOK {
			t.Fatalf("listing categories: status code %d", status)
		}

		if res.Count != 2 {
			t.Fatalf("expected count 2, got %d", res.Count)
		}
		if len(res.Results) != 1 {
			t.Fatalf("expected 1 category on the page, got %d", len(res.Results))
		}

		want := c1
		want.Subcategories = []category.SubCategory{s1, s2}
		if diff := cmp.Diff(want, res.Results[0]); diff != "" {
			t.Fatalf("category mismatch (-want +got):\n%s", diff)
		}

		status, err = env.JSON(http.MethodGet, "/categories?page_size=1&page=2", nil, &res)
		if err != nil {
			t.Fatal(err)
		}
		if status != http.StatusOK {
			t.Fatalf("listing second page: status code %d", status)
		}
		if len(res.Results) != 1 || res.Results[0].ID != c2.ID {
			t.Fatalf("expected category %d on the second page", c2.ID)
		}
	})

	t.Run("products are joined with category names", func(t *testing.T) {
		var res struct {
			Count   int            `json:"count"`
			Results []product.Item `json:"results"`
		}
		status, err := env.JSON(http.MethodGet, "/products", nil, &res)
		if err != nil {
			t.Fatal(err)
		}
		if status != http.StatusOK {
			t.Fatalf("listing products: status code %d", status)
		}

		if res.Count != 2 {
			t.Fatalf("expected count 2, got %d", res.Count)
		}

		got := res.Results[0]
		if got.ID != p1.ID || got.Category != c1.Name || got.Subcategory != s1.Name {
			t.Fatalf("unexpected first product projection: %+v", got)
		}
		if !got.Price.Equal(decimal.RequireFromString("9.99")) {
			t.Fatalf("expected price 9.99, got %s", got.Price)
		}
	})

	t.Run("malformed paging is rejected", func(t *testing.T) {
		status, err := env.JSON(http.MethodGet, "/products?page=abc", nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		if status != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", status)
		}
	})

	t.Run("catalog writes require the admin role", func(t *testing.T) {
		if err := Login(env, env.UserEmail, env.UserPass); err != nil {
			t.Fatal(err)
		}
		defer Logout(env)

		body := map[string]string{"name": "nope", "slug": "nope"}
		status, err := env.JSON(http.MethodPost, "/categories", body, nil)
		if err != nil {
			t.Fatal(err)
		}
		if status != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", status)
		}
	})

}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
