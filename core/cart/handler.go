package cart

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/SavinNik/Alfa-test-case/api/web"
	"github.com/SavinNik/Alfa-test-case/api/weberr"
	"github.com/SavinNik/Alfa-test-case/core/claims"
	"github.com/SavinNik/Alfa-test-case/validate"
	"github.com/jmoiron/sqlx"
)

// HandleShow returns the cart contents with live totals.
func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		contents, err := FetchContents(ctx, db, clm.UserID)
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, contents, http.StatusOK)
	}
}

// HandleAddItem adds a product to the cart, summing quantities when the
// product is already there.
func HandleAddItem(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		var ln LineNew
		if err := web.Decode(w, r, &ln); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(ln); err != nil {
			return weberr.Validation(err)
		}

		item, err := Add(ctx, db, clm.UserID, ln)
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, item, http.StatusCreated)
	}
}

// HandleUpdateItem replaces the quantity of a line already in the cart.
func HandleUpdateItem(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		var ln LineNew
		if err := web.Decode(w, r, &ln); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(ln); err != nil {
			return weberr.Validation(err)
		}

		item, err := Update(ctx, db, clm.UserID, ln)
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, item, http.StatusOK)
	}
}

// HandleDelete removes one line (?product_id=ID) or every line
// (?clear=true) from the cart.
func HandleDelete(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		if web.Query(r, "clear") == "true" {
			if _, err := ClearAll(ctx, db, clm.UserID); err != nil {
				return err
			}
			return web.Respond(ctx, w, nil, http.StatusNoContent)
		}

		s := web.Query(r, "product_id")
		if s == "" {
			return weberr.BadRequest(errors.New("either product_id or clear must be provided"))
		}

		productID, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return weberr.BadRequest(errors.New("product_id is not an integer"))
		}

		if err := Remove(ctx, db, clm.UserID, productID); err != nil {
			return err
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}
