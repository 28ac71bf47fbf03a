// Package ratelimit provides a Redis-backed fixed-window rate limiter for
// abuse-prone endpoints (login, password reset, verification resend).
package ratelimit

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	apphttpx "github.com/delordemm1/learnhub-api/internal/httpx"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
)

// Limiter counts requests per key in fixed windows using Redis INCR/EXPIRE.
type Limiter struct {
	rdb    *redis.Client
	prefix string
	limit  int64
	window time.Duration
	log    *slog.Logger
}

// New creates a limiter allowing `limit` requests per `window` for each key.
func New(rdb *redis.Client, prefix string, limit int, window time.Duration, log *slog.Logger) *Limiter {
	if limit <= 0 {
		limit = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	return &Limiter{
		rdb:    rdb,
		prefix: prefix,
		limit:  int64(limit),
		window: window,
		log:    log,
	}
}

// Allow reports whether the request identified by key fits in the current
// window. Redis failures fail open: availability beats throttling here.
func (l *Limiter) Allow(ctx context.Context, key string) bool {
	k := l.prefix + ":" + key
	n, err := l.rdb.Incr(ctx, k).Result()
	if err != nil {
		l.log.Warn("rate limiter unavailable, failing open", "error", err)
		return true
	}
	if n == 1 {
		// First hit in the window sets its expiry.
		if err := l.rdb.Expire(ctx, k, l.window).Err(); err != nil {
			l.log.Warn("rate limiter expire failed", "key", k, "error", err)
		}
	}
	return n <= l.limit
}

// Huma wraps the limiter as a Huma middleware keyed by client IP (as
// resolved by chi's RealIP middleware). Over-limit requests get a 429
// problem+json response.
func Huma(l *Limiter) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		r, w := humachi.Unwrap(ctx)

		if !l.Allow(r.Context(), clientIP(r)) {
			p := &apphttpx.Problem{
				Type:      "urn:problem:err-too-many-requests",
				Title:     http.StatusText(http.StatusTooManyRequests),
				Status:    http.StatusTooManyRequests,
				Detail:    "Too many requests. Please try again later.",
				Code:      "ErrTooManyRequests",
				RequestID: chimw.GetReqID(r.Context()),
			}
			w.Header().Set("Content-Type", "application/problem+json")
			w.WriteHeader(p.GetStatus())
			_ = json.NewEncoder(w).Encode(p)
			return
		}

		next(ctx)
	}
}

// clientIP prefers the IP the chi middleware chain already resolved and put
// in the context; outside that chain it parses RemoteAddr, which may be a
// bare IP (no port) after chi's RealIP rewrite.
func clientIP(r *http.Request) string {
	if ip := apphttpx.ClientIP(r.Context()); ip != "" {
		return ip
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
