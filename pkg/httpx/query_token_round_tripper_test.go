package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"card_tracker/pkg/httpx"
)

func TestQueryTokenRoundTripper(t *testing.T) {
	rq := require.New(t)

	var gotToken, gotSearch string

	httpServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.URL.Query().Get("t")
		gotSearch = r.URL.Query().Get("search")
		w.WriteHeader(http.StatusOK)
	}))
	defer httpServer.Close()

	client := &http.Client{
		Transport: httpx.NewQueryTokenRoundTripper(http.DefaultTransport, "t", "secret-token"),
	}

	req, err := http.NewRequest(http.MethodGet, httpServer.URL+"/api/products?search=jordan", http.NoBody)
	rq.NoError(err)

	resp, err := client.Do(req)
	rq.NoError(err)

	defer resp.Body.Close()

	rq.Equal("secret-token", gotToken)
	rq.Equal("jordan", gotSearch)
	rq.Empty(req.URL.Query().Get("t"), "original request must stay untouched")
}
