package product

import (
	"context"
	"fmt"

	"github.com/SavinNik/Alfa-test-case/api/web"
	"github.com/jmoiron/sqlx"
)

func Fetch(ctx context.Context, db sqlx.ExtContext, id int64) (Product, error) {
	const q = `
	SELECT product_id, name, slug, price,
	       image_small_url, image_medium_url, image_large_url,
	       subcategory_id, created_at, updated_at
	FROM products
	WHERE product_id = $1`

	var p Product
	if err := sqlx.GetContext(ctx, db, &p, q, id); err != nil {
		return Product{}, err
	}
	p.Images = Images{Small: p.ImageSmallURL, Medium: p.ImageMediumURL, Large: p.ImageLargeURL}
	return p, nil
}

func Count(ctx context.Context, db sqlx.ExtContext) (int, error) {
	const q = `SELECT count(*) FROM products`

	var n int
	if err := sqlx.GetContext(ctx, db, &n, q); err != nil {
		return 0, fmt.Errorf("counting products: %w", err)
	}
	return n, nil
}

// FetchPage returns one page of products joined with their category and
// subcategory names.
func FetchPage(ctx context.Context, db sqlx.ExtContext, page web.Page) ([]Item, error) {
	const q = `
	SELECT p.product_id, p.name, p.slug, p.price,
	       p.image_small_url, p.image_medium_url, p.image_large_url,
	       s.name AS subcategory, c.name AS category
	FROM products p
	JOIN subcategories s ON s.subcategory_id = p.subcategory_id
	JOIN categories c ON c.category_id = s.category_id
	ORDER BY p.product_id
	LIMIT $1 OFFSET $2`

	items := []Item{}
	if err := sqlx.SelectContext(ctx, db, &items, q, page.Limit(), page.Offset()); err != nil {
		return nil, fmt.Errorf("selecting products: %w", err)
	}

	for i := range items {
		it := &items[i]
		it.Images = Images{Small: it.ImageSmallURL, Medium: it.ImageMediumURL, Large: it.ImageLargeURL}
	}

	return items, nil
}

func Create(ctx context.Context, db sqlx.ExtContext, p Product) (Product, error) {
	const q = `
	INSERT INTO products
		(name, slug, price, image_small_url, image_medium_url, image_large_url,
		 subcategory_id, created_at, updated_at)
	VALUES
		($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING product_id, name, slug, price,
	          image_small_url, image_medium_url, image_large_url,
	          subcategory_id, created_at, updated_at`

	var out Product
	err := sqlx.GetContext(ctx, db, &out, q,
		p.Name, p.Slug, p.Price,
		p.ImageSmallURL, p.ImageMediumURL, p.ImageLargeURL,
		p.SubcategoryID, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return Product{}, fmt.Errorf("inserting product: %w", err)
	}
	out.Images = Images{Small: out.ImageSmallURL, Medium: out.ImageMediumURL, Large: out.ImageLargeURL}
	return out, nil
}

func Update(ctx context.Context, db sqlx.ExtContext, p Product) (Product, error) {
	const q = `
	UPDATE products SET
		name = $2, slug = $3, price = $4,
		image_small_url = $5, image_medium_url = $6, image_large_url = $7,
		subcategory_id = $8, updated_at = $9
	WHERE product_id = $1
	RETURNING product_id, name, slug, price,
	          image_small_url, image_medium_url, image_large_url,
	          subcategory_id, created_at, updated_at`

	var out Product
	err := sqlx.GetContext(ctx, db, &out, q,
		p.ID, p.Name, p.Slug, p.Price,
		p.ImageSmallURL, p.ImageMediumURL, p.ImageLargeURL,
		p.SubcategoryID, p.UpdatedAt)
	if err != nil {
		return Product{}, err
	}
	out.Images = Images{Small: out.ImageSmallURL, Medium: out.ImageMediumURL, Large: out.ImageLargeURL}
	return out, nil
}
