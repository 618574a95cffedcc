// Package catalog поиск карточек в каталоге цен с кэшированием ответов.
package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"card_tracker/internal/domain"
	"card_tracker/internal/domain/entity"
	"card_tracker/internal/domain/value"
	"card_tracker/pkg/contextx"
	"card_tracker/pkg/errcodes"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const (
	DefaultLimit = 50
	MaxLimit     = 200

	defaultCacheTTL = 5 * time.Minute
)

type Client interface {
	Search(ctx context.Context, query string, limit int) ([]entity.Card, error)
	Product(ctx context.Context, id value.CardID) (entity.Card, error)
}

type CatalogService struct {
	client Client
	cache  *cache.Cache
}

func NewCatalogService(client Client) *CatalogService {
	return &CatalogService{
		client: client,
		cache:  cache.New(defaultCacheTTL, 2*defaultCacheTTL),
	}
}

// WithCacheTTL нулевой TTL отключает кэш.
func (s *CatalogService) WithCacheTTL(ttl time.Duration) *CatalogService {
	if ttl <= 0 {
		s.cache = nil
		return s
	}

	s.cache = cache.New(ttl, 2*ttl)

	return s
}

// Search ищет карточки по запросу. Пустой category означает без фильтра,
// limit <= 0 заменяется на DefaultLimit.
func (s *CatalogService) Search(ctx context.Context, query, category string, limit int) ([]entity.Card, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.NewError(errcodes.MissingQuery, "search query is required")
	}

	limit = normalizeLimit(limit)

	key := fmt.Sprintf("search:%s:%d", strings.ToLower(query), limit)

	cards, ok := s.cached(key)
	if !ok {
		var err error

		cards, err = s.client.Search(ctx, query, limit)
		if err != nil {
			return nil, fmt.Errorf("client.Search: %w", err)
		}

		s.store(key, cards)

		logger(ctx).Debug("catalog search", "query", query, "count", len(cards))
	}

	return FilterByCategory(cards, category), nil
}

func (s *CatalogService) Product(ctx context.Context, id value.CardID) (entity.Card, error) {
	if strings.TrimSpace(id.String()) == "" {
		return entity.Card{}, domain.NewError(errcodes.InvalidCardID, "card id is required")
	}

	key := "product:" + id.String()

	if s.cache != nil {
		if v, found := s.cache.Get(key); found {
			return v.(entity.Card), nil //nolint:forcetypeassert // only cards are stored
		}
	}

	card, err := s.client.Product(ctx, id)
	if err != nil {
		return entity.Card{}, fmt.Errorf("client.Product: %w", err)
	}

	if s.cache != nil {
		s.cache.Set(key, card, cache.DefaultExpiration)
	}

	return card, nil
}

// Fresh берёт карточку из каталога минуя кэш, для снимков цен.
func (s *CatalogService) Fresh(ctx context.Context, id value.CardID) (entity.Card, error) {
	card, err := s.client.Product(ctx, id)
	if err != nil {
		return entity.Card{}, fmt.Errorf("client.Product: %w", err)
	}

	if s.cache != nil {
		s.cache.Set("product:"+id.String(), card, cache.DefaultExpiration)
	}

	return card, nil
}

func (s *CatalogService) cached(key string) ([]entity.Card, bool) {
	if s.cache == nil {
		return nil, false
	}

	v, found := s.cache.Get(key)
	if !found {
		return nil, false
	}

	return v.([]entity.Card), true //nolint:forcetypeassert // only card slices are stored
}

func (s *CatalogService) store(key string, cards []entity.Card) {
	if s.cache != nil {
		s.cache.Set(key, cards, cache.DefaultExpiration)
	}
}

func FilterByCategory(cards []entity.Card, category string) []entity.Card {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return cards
	}

	result := make([]entity.Card, 0, len(cards))

	for _, c := range cards {
		if strings.Contains(strings.ToLower(c.Genre), category) {
			result = append(result, c)
		}
	}

	return result
}

func normalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}
