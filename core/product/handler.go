package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/SavinNik/Alfa-test-case/api/web"
	"github.com/SavinNik/Alfa-test-case/api/weberr"
	"github.com/SavinNik/Alfa-test-case/validate"
	"github.com/jmoiron/sqlx"
)

const (
	defaultPageSize = 16
	maxPageSize     = 100
)

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

		items, err := FetchPage(ctx, db, page)
		if err != nil {
			return fmt.Errorf("fetching products page: %w", err)
		}

		res := web.Paginated{Count: count, Results: items}
		return web.Respond(ctx, w, res, http.StatusOK)
	}
}

func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id, err := strconv.ParseInt(web.Param(r, "id"), 10, 64)
		if err != nil {
			return weberr.BadRequest(errors.New("id is not an integer"))
		}

		p, err := Fetch(ctx, db, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching product[%d]: %w", id, err)
		}

		return web.Respond(ctx, w, p, http.StatusOK)
	}
}

func HandleCreate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var pn ProductNew
		if err := web.Decode(w, r, &pn); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(pn); err != nil {
			return weberr.Validation(err)
		}

		if pn.Price.IsNegative() {
			return weberr.Validation(errors.New("price must not be negative"))
		}

		now := time.Now().UTC()
		p := Product{
			Name:           pn.Name,
			Slug:           pn.Slug,
			Price:          pn.Price,
			ImageSmallURL:  pn.ImageSmallURL,
			ImageMediumURL: pn.ImageMediumURL,
			ImageLargeURL:  pn.ImageLargeURL,
			SubcategoryID:  pn.SubcategoryID,
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		out, err := Create(ctx, db, p)
		if err != nil {
			return fmt.Errorf("creating product: %w", err)
		}

		return web.Respond(ctx, w, out, http.StatusCreated)
	}
}

func HandleUpdate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id, err := strconv.ParseInt(web.Param(r, "id"), 10, 64)
		if err != nil {
			return weberr.BadRequest(errors.New("id is not an integer"))
		}

		var up ProductUp
		if err := web.Decode(w, r, &up); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if up.Price != nil && up.Price.IsNegative() {
			return weberr.Validation(errors.New("price must not be negative"))
		}

		p, err := Fetch(ctx, db, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching product[%d]: %w", id, err)
		}

		if up.Name != nil {
			p.Name = *up.Name
		}
		if up.Slug != nil {
			p.Slug = *up.Slug
		}
		if up.Price != nil {
			p.Price = *up.Price
		}
		if up.ImageSmallURL != nil {
			p.ImageSmallURL = *up.ImageSmallURL
		}
		if up.ImageMediumURL != nil {
			p.ImageMediumURL = *up.ImageMediumURL
		}
		if up.ImageLargeURL != nil {
			p.ImageLargeURL = *up.ImageLargeURL
		}
		if up.SubcategoryID != nil {
			p.SubcategoryID = *up.SubcategoryID
		}
		p.UpdatedAt = time.Now().UTC()

		out, err := Update(ctx, db, p)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("updating product[%d]: %w", id, err)
		}

		return web.Respond(ctx, w, out, http.StatusOK)
	}
}
