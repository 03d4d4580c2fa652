package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/SavinNik/Alfa-test-case/api/web"
	"github.com/SavinNik/Alfa-test-case/api/weberr"
	"github.com/SavinNik/Alfa-test-case/core/claims"
	"github.com/SavinNik/Alfa-test-case/core/user"
	"github.com/SavinNik/Alfa-test-case/validate"
	"github.com/alexedwards/scs/v2"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// uniqueViolation is the postgres error code raised on unique
// constraint conflicts.
const uniqueViolation = "23505"

func HandleSignup(db *sqlx.DB, session *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var u user.UserSignup
		if err := web.Decode(w, r, &u); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(u); err != nil {
			return weberr.Validation(err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("generating password hash: %w", err)
		}

		now := time.Now().UTC()
		usr := user.User{
			ID:           validate.GenerateID(),
			Name:         u.Name,
			Email:        u.Email,
			Role:         claims.RoleUser,
			PasswordHash: hash,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if err := user.Create(ctx, db, usr); err != nil {
			var pqerr *pq.Error
			if errors.As(err, &pqerr) && pqerr.Code == uniqueViolation {
				msg := "a user with this email already exists"
				return weberr.NewError(err, msg, http.StatusConflict)
			}
			return fmt.Errorf("creating user: %w", err)
		}

		if err := session.RenewToken(ctx); err != nil {
			return fmt.Errorf("renewing session token: %w", err)
		}
		session.Put(ctx, userIDKey, usr.ID)
		session.Put(ctx, roleKey, usr.Role)

		return web.Respond(ctx, w, usr, http.StatusCreated)
	}
}

func HandleLogin(db *sqlx.DB, session *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var u user.UserLogin
		if err := web.Decode(w, r, &u); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(u); err != nil {
			return weberr.Validation(err)
		}

		usr, err := user.FetchByEmail(ctx, db, u.Email)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotAuthorized(errors.New("unknown email"))
			}
			return fmt.Errorf("fetching user by email: %w", err)
		}

		if err := bcrypt.CompareHashAndPassword(usr.PasswordHash, []byte(u.Password)); err != nil {
			return weberr.NotAuthorized(errors.New("wrong password"))
		}

		if err := session.RenewToken(ctx); err != nil {
			return fmt.Errorf("renewing session token: %w", err)
		}
		session.Put(ctx, userIDKey, usr.ID)
		session.Put(ctx, roleKey, usr.Role)

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

func HandleLogout(session *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		if err := session.Destroy(ctx); err != nil {
			return fmt.Errorf("destroying session: %w", err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}
