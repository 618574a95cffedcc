package middlewarex_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"card_tracker/pkg/middlewarex"
)

func TestMetrics(t *testing.T) {
	rq := require.New(t)

	r := chi.NewRouter()
	r.Use(middlewarex.Metrics)
	r.Get("/v1/items/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.CollectAndCount(middlewarex.RequestDurationCollector())

	for _, path := range []string{"/v1/items/1", "/v1/items/2"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		rq.Equal(http.StatusTeapot, rec.Code)
	}

	// оба запроса попадают в одну серию по шаблону маршрута
	rq.Equal(before+1, testutil.CollectAndCount(middlewarex.RequestDurationCollector()))
}
