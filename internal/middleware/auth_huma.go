package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/delordemm1/learnhub-api/internal/contextx"
	apphttpx "github.com/delordemm1/learnhub-api/internal/httpx"
	"github.com/delordemm1/learnhub-api/internal/session"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// SessionAuthHuma is a router-agnostic Huma middleware that validates an
// opaque bearer session token against the session provider and injects the
// user and session IDs into the request context for downstream handlers.
// On failure it writes an RFC7807 problem+json response with code ErrUnauthorized.
func SessionAuthHuma(sessions session.Provider, logger *slog.Logger) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		r, w := humachi.Unwrap(ctx)

		writeUnauthorized := func(detail string) {
			reqID := chimw.GetReqID(r.Context())
			p := &apphttpx.Problem{
				Type:      "urn:problem:auth/err-unauthorized",
				Title:     http.StatusText(http.StatusUnauthorized),
				Status:    http.StatusUnauthorized,
				Detail:    detail,
				Code:      "ErrUnauthorized",
				RequestID: reqID,
			}
			w.Header().Set("Content-Type", "application/problem+json")
			w.WriteHeader(p.GetStatus())
			_ = json.NewEncoder(w).Encode(p)
		}

		// 1. Authorization header.
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeUnauthorized("missing authorization header")
			return
		}

		// 2. Bearer token.
		token, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			writeUnauthorized("invalid authorization header format")
			return
		}

		// 3. Validate against the session store; this also extends the sliding TTL.
		userID, err := sessions.GetAndExtend(r.Context(), token)
		if err != nil {
			logger.Warn("invalid session token", "error", err)
			writeUnauthorized("invalid or expired token")
			return
		}

		// 4. Inject user and session IDs into context for downstream handlers.
		ctx = huma.WithValue(ctx, contextx.UserIDKey, userID)
		ctx = huma.WithValue(ctx, contextx.SessionIDKey, token)
		next(ctx)
	}
}

// OptionalSessionAuthHuma resolves a bearer session token when one is
// presented and otherwise lets the request through anonymously. Endpoints
// that serve both guests and signed-in users (e.g. blog comments) use it to
// attribute activity without requiring a login.
func OptionalSessionAuthHuma(sessions session.Provider, logger *slog.Logger) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		r, _ := humachi.Unwrap(ctx)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next(ctx)
			return
		}
		token, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			next(ctx)
			return
		}

		userID, err := sessions.GetAndExtend(r.Context(), token)
		if err != nil {
			// A bad token on an optional route is treated as anonymous.
			logger.Debug("ignoring invalid session token on optional route", "error", err)
			next(ctx)
			return
		}

		ctx = huma.WithValue(ctx, contextx.UserIDKey, userID)
		ctx = huma.WithValue(ctx, contextx.SessionIDKey, token)
		next(ctx)
	}
}
