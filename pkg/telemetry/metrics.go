// pkg/telemetry/metrics.go
package telemetry

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// RequestMetrics counts requests and records latency per method and status.
// With no meter provider installed these are no-op instruments, so the
// middleware is safe to mount unconditionally.
func RequestMetrics(serviceName string) func(http.Handler) http.Handler {
	meter := otel.Meter(serviceName)
	requests, _ := meter.Int64Counter("http.server.requests",
		metric.WithDescription("Completed HTTP requests"))
	latency, _ := meter.Float64Histogram("http.server.duration",
		metric.WithDescription("Request duration in milliseconds"),
		metric.WithUnit("ms"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			attrs := metric.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.Int("http.status_code", ww.Status()),
			)
			requests.Add(r.Context(), 1, attrs)
			latency.Record(r.Context(), float64(time.Since(start).Milliseconds()), attrs)
		})
	}
}
