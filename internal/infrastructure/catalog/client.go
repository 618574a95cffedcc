// Package catalog клиент SportsCardsPro API.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"card_tracker/internal/domain"
	"card_tracker/internal/domain/entity"
	"card_tracker/internal/domain/value"
	"card_tracker/pkg/contextx"
	"card_tracker/pkg/errcodes"
	"card_tracker/pkg/httpx"
	"card_tracker/pkg/logx"
)

const (
	tokenParam        = "t"
	statusError       = "error"
	productsPath      = "/api/products"
	productPath       = "/api/product"
	defaultMaxRetries = 3
	defaultRetryDelay = time.Second
	defaultTimeout    = 10 * time.Second
	logFieldMaxLen    = 4096
)

var (
	json   = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip
	logger = contextx.LoggerFromContextOrDefault          //nolint:gochecknoglobals

	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals // skip
		Name: "catalog_requests_total",
		Help: "Catalog API requests by endpoint and outcome.",
	}, []string{"endpoint", "outcome"})
)

// ErrAPI ответ каталога со статусом error.
var ErrAPI = errors.New("catalog api error")

type Config struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

type SensitiveDataMasker interface {
	Mask([]byte) []byte
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration
}

// NewClient токен добавляется к каждому запросу query-параметром и
// маскируется в логах.
func NewClient(cfg Config, masker SensitiveDataMasker) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}

	if cfg.RetryDelay < 0 {
		cfg.RetryDelay = defaultRetryDelay
	}

	transport := httpx.NewQueryTokenRoundTripper(
		httpx.NewLoggingRoundTripper(
			http.DefaultTransport,
			httpx.WithSensitiveDataMasker(masker),
			httpx.WithLogFieldMaxLen(logFieldMaxLen),
		),
		tokenParam,
		cfg.Token,
	)

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
	}
}

func (c *Client) Search(ctx context.Context, query string, limit int) ([]entity.Card, error) {
	params := url.Values{}
	params.Set("search", query)
	params.Set("limit", strconv.Itoa(limit))

	body, err := c.get(ctx, productsPath, params)
	if err != nil {
		return nil, fmt.Errorf("c.get: %w", err)
	}

	products, err := decodeProducts(body)
	if err != nil {
		return nil, err
	}

	cards := make([]entity.Card, 0, len(products))
	for _, p := range products {
		cards = append(cards, p.toEntity())
	}

	return cards, nil
}

func (c *Client) Product(ctx context.Context, id value.CardID) (entity.Card, error) {
	params := url.Values{}
	params.Set("id", id.String())

	body, err := c.get(ctx, productPath, params)
	if err != nil {
		return entity.Card{}, fmt.Errorf("c.get: %w", err)
	}

	var resp productResponse
	if err = json.Unmarshal(body, &resp); err != nil {
		return entity.Card{}, domain.WrapError(err, errcodes.CatalogError, "unexpected catalog response")
	}

	p := resp.product
	if resp.Product != nil {
		p = *resp.Product
	}

	if p.ID == "" && p.ProductName == "" {
		return entity.Card{}, domain.NewError(errcodes.CardNotFound, fmt.Sprintf("card %s not found", id))
	}

	if p.ID == "" {
		p.ID = flexString(id)
	}

	return p.toEntity(), nil
}

// decodeProducts каталог отдаёт либо {"products": [...]}, либо голый массив.
func decodeProducts(body []byte) ([]product, error) {
	trimmed := strings.TrimSpace(string(body))

	if strings.HasPrefix(trimmed, "[") {
		var products []product
		if err := json.Unmarshal(body, &products); err != nil {
			return nil, domain.WrapError(err, errcodes.CatalogError, "unexpected catalog response")
		}

		return products, nil
	}

	var resp productsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, domain.WrapError(err, errcodes.CatalogError, "unexpected catalog response")
	}

	return resp.Products, nil
}

// get выполняет запрос с повторами. Повторяются только сетевые ошибки и 5xx,
// ответ со статусом error возвращается сразу.
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := c.retryDelay * time.Duration(attempt)

			logger(ctx).Warn("catalog request retry",
				slog.String(logx.FieldURL, path),
				slog.Int("attempt", attempt+1),
				logx.Error(lastErr),
			)

			select {
			case <-ctx.Done():
				return nil, domain.WrapError(ctx.Err(), errcodes.CatalogUnavailable, "catalog request cancelled")
			case <-time.After(delay):
			}
		}

		body, retry, err := c.do(ctx, path, params)
		if err == nil {
			requestsTotal.WithLabelValues(path, "ok").Inc()
			return body, nil
		}

		lastErr = err

		if !retry {
			requestsTotal.WithLabelValues(path, "api_error").Inc()
			return nil, err
		}
	}

	requestsTotal.WithLabelValues(path, "unavailable").Inc()

	return nil, domain.WrapError(
		lastErr,
		errcodes.CatalogUnavailable,
		fmt.Sprintf("catalog request failed after %d attempts", c.maxRetries),
	)
}

func (c *Client) do(ctx context.Context, path string, params url.Values) (body []byte, retry bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, false, domain.WrapError(err, errcodes.CatalogError, "invalid catalog request")
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("httpClient.Do: %w", err)
	}

	defer resp.Body.Close()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("io.ReadAll: %w", err)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, true, fmt.Errorf("catalog responded %d", resp.StatusCode) //nolint:err113
	}

	var env envelope
	if jsonErr := json.Unmarshal(body, &env); jsonErr == nil && env.Status == statusError {
		msg := env.ErrorMessage
		if msg == "" {
			msg = "unknown API error"
		}

		return nil, false, domain.WrapError(fmt.Errorf("%w: %s", ErrAPI, msg), errcodes.CatalogError, "API Error: "+msg)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, false, domain.NewError(errcodes.CardNotFound, "not found in catalog")
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, false, domain.NewError(errcodes.CatalogError, fmt.Sprintf("catalog responded %d", resp.StatusCode))
	}

	return body, false, nil
}
