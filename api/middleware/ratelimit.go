package middleware

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/SavinNik/Alfa-test-case/api/web"
	"github.com/SavinNik/Alfa-test-case/api/weberr"
	"github.com/SavinNik/Alfa-test-case/rate"
)

// RateLimit rejects requests from clients that exceed their
// token-bucket allowance, keyed by remote address.
func RateLimit(lim *rate.Limiter) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			key := r.RemoteAddr
			if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
				key = host
			}

			if !lim.Check(key) {
				err := errors.New("rate limit exceeded")
				return weberr.NewError(err, "too many requests", http.StatusTooManyRequests)
			}

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}
