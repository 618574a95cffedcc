package middlewarex

import (
	"cmp"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/zenazn/goji/web/mutil"
)

var requestDuration = promauto.NewHistogramVec( //nolint:gochecknoglobals // skip
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request duration by route pattern.",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"method", "route", "status"},
)

// Metrics длительность запросов по шаблону маршрута chi. Запросы без
// найденного маршрута учитываются как "unmatched".
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lw := mutil.WrapWriter(w)

		next.ServeHTTP(lw, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			route = cmp.Or(rctx.RoutePattern(), route)
		}

		requestDuration.
			WithLabelValues(r.Method, route, strconv.Itoa(cmp.Or(lw.Status(), http.StatusOK))).
			Observe(time.Since(start).Seconds())
	})
}

func RequestDurationCollector() prometheus.Collector {
	return requestDuration
}
