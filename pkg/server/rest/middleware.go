package rest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/DreamyTwilight/transport-catalogue/pkg/logging"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/klauspost/compress/gzhttp"
)

// NewRequestLoggingMiddleware logs every request with its status and duration and puts the
// logger into the request context.
func NewRequestLoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			r = r.WithContext(logging.WithLogger(r.Context(), logger))
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			logging.LogHTTPRequest(logger,
				r.Method,
				r.URL.Path,
				status,
				float64(time.Since(start).Nanoseconds())/1e6,
				slog.String("request_id", middleware.GetReqID(r.Context())),
				slog.String("component", "http_server"))
		})
	}
}

// GzipMiddleware compresses responses of at least 1KiB.
func GzipMiddleware(next http.Handler) http.Handler {
	wrapper, err := gzhttp.NewWrapper(
		gzhttp.MinSize(1024),
		gzhttp.CompressionLevel(6),
	)
	if err != nil {
		return next
	}
	return wrapper(next)
}
