package category

import (
	"context"
	"fmt"

	"github.com/SavinNik/Alfa-test-case/api/web"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

func Count(ctx context.Context, db sqlx.ExtContext) (int, error) {
	const q = `SELECT count(*) FROM categories`

	var n int
	if err := sqlx.GetContext(ctx, db, &n, q); err != nil {
		return 0, fmt.Errorf("counting categories: %w", err)
	}
	return n, nil
}

// FetchPage returns one page of categories, each with its subcategories
// attached.
func FetchPage(ctx context.Context, db sqlx.ExtContext, page web.Page) ([]Category, error) {
	const q = `
	SELECT category_id, name, slug, image_url
	FROM categories
	ORDER BY category_id
	LIMIT $1 OFFSET $2`

	cats := []Category{}
	if err := sqlx.SelectContext(ctx, db, &cats, q, page.Limit(), page.Offset()); err != nil {
		return nil, fmt.Errorf("selecting categories: %w", err)
	}

	if len(cats) == 0 {
		return cats, nil
	}

	ids := make([]int64, 0, len(cats))
	for _, c := range cats {
		ids = append(ids, c.ID)
	}

	const qs = `
	SELECT subcategory_id, name, slug, image_url, category_id
	FROM subcategories
	WHERE category_id = ANY($1)
	ORDER BY subcategory_id`

	subs := []SubCategory{}
	if err := sqlx.SelectContext(ctx, db, &subs, qs, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("selecting subcategories: %w", err)
	}

	byCat := make(map[int64][]SubCategory)
	for _, s := range subs {
		byCat[s.CategoryID] = append(byCat[s.CategoryID], s)
	}

	for i := range cats {
		cats[i].Subcategories = byCat[cats[i].ID]
		if cats[i].Subcategories == nil {
			cats[i].Subcategories = []SubCategory{}
		}
	}

	return cats, nil
}

func Create(ctx context.Context, db sqlx.ExtContext, c CategoryNew) (Category, error) {
	const q = `
	INSERT INTO categories (name, slug, image_url)
	VALUES ($1, $2, $3)
	RETURNING category_id, name, slug, image_url`

	var cat Category
	if err := sqlx.GetContext(ctx, db, &cat, q, c.Name, c.Slug, c.ImageURL); err != nil {
		return Category{}, fmt.Errorf("inserting category: %w", err)
	}
	cat.Subcategories = []SubCategory{}
	return cat, nil
}

func CreateSub(ctx context.Context, db sqlx.ExtContext, s SubCategoryNew) (SubCategory, error) {
	const q = `
	INSERT INTO subcategories (name, slug, image_url, category_id)
	VALUES ($1, $2, $3, $4)
	RETURNING subcategory_id, name, slug, image_url, category_id`

	var sub SubCategory
	if err := sqlx.GetContext(ctx, db, &sub, q, s.Name, s.Slug, s.ImageURL, s.CategoryID); err != nil {
		return SubCategory{}, fmt.Errorf("inserting subcategory: %w", err)
	}
	return sub, nil
}
