package category

import (
	"context"
	"fmt"
	"net/http"

	"github.com/SavinNik/Alfa-test-case/api/web"
	"github.com/SavinNik/Alfa-test-case/api/weberr"
	"github.com/SavinNik/Alfa-test-case/validate"
	"github.com/jmoiron/sqlx"
)

const (
	defaultPageSize = 8
	maxPageSize     = 50
)

// HandleList returns a paginated listing of categories with their
// subcategories nested.
func HandleList(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		page, err := web.ParsePage(r, defaultPageSize, maxPageSize)
		if err != nil {
			return weberr.BadRequest(err)
		}

		count, err := Count(ctx, db)
		if err != nil {
			return err
		}

		cats, err := FetchPage(ctx, db, page)
		if err != nil {
			return fmt.Errorf("fetching categories page: %w", err)
		}

		res := web.Paginated{Count: count, Results: cats}
		return web.Respond(ctx, w, res, http.StatusOK)
	}
}

func HandleCreate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var c CategoryNew
		if err := web.Decode(w, r, &c); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(c); err != nil {
			return weberr.Validation(err)
		}

		cat, err := Create(ctx, db, c)
		if err != nil {
			return fmt.Errorf("creating category: %w", err)
		}

		return web.Respond(ctx, w, cat, http.StatusCreated)
	}
}

func HandleCreateSub(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var s SubCategoryNew
		if err := web.Decode(w, r, &s); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(s); err != nil {
			return weberr.Validation(err)
		}

		sub, err := CreateSub(ctx, db, s)
		if err != nil {
			return fmt.Errorf("creating subcategory: %w", err)
		}

		return web.Respond(ctx, w, sub, http.StatusCreated)
	}
}
