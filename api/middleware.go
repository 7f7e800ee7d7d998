package api

import (
	"context"
	"net/http"
	"time"

	"github.com/fatali-fataliyev/household_ledger/internal/contextutil"
)

const TRACE_HEADER = "X-Request-ID"

// TraceMiddleware attaches a trace id, taken from X-Request-ID when the
// client sent one, and echoes it in the response.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := contextutil.WithTraceID(r.Context(), r.Header.Get(TRACE_HEADER))
		w.Header().Set(TRACE_HEADER, contextutil.TraceIDFromContext(ctx))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func TimeoutMiddleware(timeout time.Duration, next http.Handler) http.Handler {
	if timeout <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
