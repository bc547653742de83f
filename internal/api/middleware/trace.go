package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mhoudret/taskdeck-api/internal/api/shared"
	"github.com/mhoudret/taskdeck-api/internal/platform/logger"
)

// TraceMiddleware attaches a trace ID to every request context so logs
// and error responses can be correlated. It also stores a request-scoped
// logger carrying the trace ID, which downstream code retrieves via
// logger.FromContextOrDefault.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())
		traceID := shared.GetTraceID(ctx)
		ctx = logger.WithLogger(ctx, slog.Default().With(slog.String("trace_id", traceID)))
		w.Header().Set("X-Trace-ID", traceID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
