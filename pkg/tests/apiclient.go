package tests

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httputil"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// APIClient JSON клиент для тестов HTTP сервера. Ответ 2xx декодируется в
// dest, остальные в errDest.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAPIClient(baseURL string, httpClient *http.Client) APIClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return APIClient{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

func (a APIClient) Get(ctx context.Context, endpoint string, headers http.Header, dest, errDest any) (*http.Response, error) {
	return a.do(ctx, http.MethodGet, endpoint, headers, http.NoBody, dest, errDest)
}

func (a APIClient) Delete(ctx context.Context, endpoint string, headers http.Header, dest, errDest any) (*http.Response, error) {
	return a.do(ctx, http.MethodDelete, endpoint, headers, http.NoBody, dest, errDest)
}

func (a APIClient) Post(
	ctx context.Context,
	endpoint string,
	headers http.Header,
	request, dest, errDest any,
) (*http.Response, error) {
	return a.sendJSON(ctx, http.MethodPost, endpoint, headers, request, dest, errDest)
}

func (a APIClient) Put(
	ctx context.Context,
	endpoint string,
	headers http.Header,
	request, dest, errDest any,
) (*http.Response, error) {
	return a.sendJSON(ctx, http.MethodPut, endpoint, headers, request, dest, errDest)
}

// PostJSON отправляет тело как есть, для запросов, которые нельзя собрать
// из типизированной структуры.
func (a APIClient) PostJSON(
	ctx context.Context,
	endpoint string,
	headers http.Header,
	requestJSON string,
	dest, errDest any,
) (*http.Response, error) {
	return a.do(ctx, http.MethodPost, endpoint, headers, bytes.NewReader([]byte(requestJSON)), dest, errDest)
}

func (a APIClient) sendJSON(
	ctx context.Context,
	method string,
	endpoint string,
	headers http.Header,
	request, dest, errDest any,
) (*http.Response, error) {
	b, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	return a.do(ctx, method, endpoint, headers, bytes.NewReader(b), dest, errDest)
}

func (a APIClient) do(
	ctx context.Context,
	method string,
	endpoint string,
	headers http.Header,
	payload io.Reader,
	dest, errDest any,
) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+endpoint, payload)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	if payload != http.NoBody {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header[k] = v
	}

	slog.DebugContext(ctx, "test request", "method", method, "url", req.URL.String())

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpClient.Do: %w", err)
	}

	defer resp.Body.Close()

	if raw, dumpErr := httputil.DumpResponse(resp, true); dumpErr == nil {
		slog.DebugContext(ctx, "test response", "status", resp.StatusCode, "dump", string(raw))
	}

	if err = decode(resp, dest, errDest); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	return resp, nil
}

func decode(r *http.Response, dest, errDest any) error {
	success := r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices

	switch {
	case success && dest != nil:
		if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
			return fmt.Errorf("json.Decode(success destination): %w", err)
		}
	case !success && errDest != nil:
		if err := json.NewDecoder(r.Body).Decode(errDest); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("json.Decode(err destination): %w", err)
		}
	}

	return nil
}
