// Package auth resolves the request identity from the session and
// guards routes that require it.
package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/SavinNik/Alfa-test-case/api/web"
	"github.com/SavinNik/Alfa-test-case/api/weberr"
	"github.com/SavinNik/Alfa-test-case/core/claims"
	"github.com/alexedwards/scs/v2"
)

const (
	userIDKey = "user_id"
	roleKey   = "role"
)

// LoadAndSave adapts the scs session middleware to the web.Handler
// chain. It must be the outermost middleware so every later stage sees
// a context with session data attached.
func LoadAndSave(session *scs.SessionManager) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			var err error
			hd := func(w http.ResponseWriter, r *http.Request) {
				err = handler(r.Context(), w, r)
			}

			session.LoadAndSave(http.HandlerFunc(hd)).ServeHTTP(w, r)
			return err
		}
		return h
	}
	return m
}

// Authenticate rejects requests without a logged-in user and stores the
// resolved claims in the context for the handlers downstream.
func Authenticate(session *scs.SessionManager) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			userID := session.GetString(ctx, userIDKey)
			if userID == "" {
				return weberr.NotAuthorized(errors.New("user not authenticated"))
			}

			clm := claims.Claims{
				UserID: userID,
				Role:   session.GetString(ctx, roleKey),
			}

			return handler(claims.Set(ctx, clm), w, r)
		}
		return h
	}
	return m
}

// Admin builds on Authenticate and additionally requires the admin role.
func Admin(session *scs.SessionManager) web.Middleware {
	authen := Authenticate(session)
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			if !claims.IsAdmin(ctx) {
				return weberr.NotAuthorized(errors.New("user is not an admin"))
			}

			return handler(ctx, w, r)
		}
		return authen(h)
	}
	return m
}
