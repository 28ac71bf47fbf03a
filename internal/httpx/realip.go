package httpx

import (
	"context"
	"net"
	"net/http"
)

type ctxKey string

const clientIPKey ctxKey = "clientIP"

// WithClientIP is a chi middleware that copies the request's client IP into
// the context so handlers behind the huma adapter (which only see a
// context.Context) can still read it. Mount it after chi's RealIP.
func WithClientIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.RemoteAddr
		if host, _, err := net.SplitHostPort(ip); err == nil {
			ip = host
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), clientIPKey, ip)))
	})
}

// ClientIP returns the client IP stored by WithClientIP, or "" when absent.
func ClientIP(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey).(string)
	return ip
}
