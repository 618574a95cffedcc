package httpx

import (
	"fmt"
	"net/http"
)

// QueryTokenRoundTripper authenticates outgoing requests by adding an API token
// as a query parameter, the way token-gated price APIs expect it.
type QueryTokenRoundTripper struct {
	next  http.RoundTripper
	param string
	token string
}

func NewQueryTokenRoundTripper(
	next http.RoundTripper,
	param string,
	token string,
) QueryTokenRoundTripper {
	return QueryTokenRoundTripper{
		next:  next,
		param: param,
		token: token,
	}
}

func (rt QueryTokenRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the caller's request.
	clone := req.Clone(req.Context())

	query := clone.URL.Query()
	query.Set(rt.param, rt.token)
	clone.URL.RawQuery = query.Encode()

	resp, err := rt.next.RoundTrip(clone)
	if err != nil {
		return nil, fmt.Errorf("next.RoundTrip: %w", err)
	}

	return resp, nil
}
