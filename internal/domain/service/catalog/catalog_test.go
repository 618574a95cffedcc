package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"card_tracker/internal/domain"
	"card_tracker/internal/domain/entity"
	"card_tracker/internal/domain/service/catalog"
	"card_tracker/internal/domain/value"
	"card_tracker/pkg/errcodes"
)

type fakeClient struct {
	cards        []entity.Card
	err          error
	searchCalls  int
	productCalls int
	lastLimit    int
}

func (f *fakeClient) Search(_ context.Context, _ string, limit int) ([]entity.Card, error) {
	f.searchCalls++
	f.lastLimit = limit

	return f.cards, f.err
}

func (f *fakeClient) Product(_ context.Context, id value.CardID) (entity.Card, error) {
	f.productCalls++

	if f.err != nil {
		return entity.Card{}, f.err
	}

	for _, c := range f.cards {
		if c.ID == id {
			return c, nil
		}
	}

	return entity.Card{}, domain.NewError(errcodes.CardNotFound, "not found")
}

func testCards() []entity.Card {
	return []entity.Card{
		{ID: "1", Name: "Jordan", Genre: "Basketball Cards"},
		{ID: "2", Name: "Brady", Genre: "Football Cards"},
		{ID: "3", Name: "Ohtani", Genre: "Baseball Cards"},
	}
}

func TestSearch(t *testing.T) {
	testCases := []struct {
		name          string
		query         string
		category      string
		limit         int
		expectedIDs   []value.CardID
		expectedLimit int
	}{
		{name: "no filter", query: "rookie", limit: 10, expectedIDs: []value.CardID{"1", "2", "3"}, expectedLimit: 10},
		{name: "category filter", query: "rookie", category: "BASE", expectedIDs: []value.CardID{"1", "3"}, expectedLimit: 50},
		{name: "limit capped", query: "rookie", category: "football", limit: 1000, expectedIDs: []value.CardID{"2"}, expectedLimit: 200},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			client := &fakeClient{cards: testCards()}
			svc := catalog.NewCatalogService(client)

			cards, err := svc.Search(context.Background(), tc.query, tc.category, tc.limit)
			rq.NoError(err)

			ids := make([]value.CardID, 0, len(cards))
			for _, c := range cards {
				ids = append(ids, c.ID)
			}

			rq.Equal(tc.expectedIDs, ids)
			rq.Equal(tc.expectedLimit, client.lastLimit)
		})
	}
}

func TestSearchMissingQuery(t *testing.T) {
	rq := require.New(t)

	client := &fakeClient{}

	_, err := catalog.NewCatalogService(client).Search(context.Background(), "   ", "", 0)
	rq.Error(err)
	rq.True(domain.HasCode(err, errcodes.MissingQuery))
	rq.Zero(client.searchCalls)
}

func TestSearchCache(t *testing.T) {
	rq := require.New(t)

	client := &fakeClient{cards: testCards()}
	svc := catalog.NewCatalogService(client)

	_, err := svc.Search(context.Background(), "Rookie", "", 10)
	rq.NoError(err)
	_, err = svc.Search(context.Background(), "rookie", "football", 10)
	rq.NoError(err)
	rq.Equal(1, client.searchCalls)

	_, err = svc.Search(context.Background(), "rookie", "", 20)
	rq.NoError(err)
	rq.Equal(2, client.searchCalls)

	uncached := &fakeClient{cards: testCards()}
	svc = catalog.NewCatalogService(uncached).WithCacheTTL(0)

	_, err = svc.Search(context.Background(), "rookie", "", 10)
	rq.NoError(err)
	_, err = svc.Search(context.Background(), "rookie", "", 10)
	rq.NoError(err)
	rq.Equal(2, uncached.searchCalls)
}

func TestSearchUpstreamError(t *testing.T) {
	rq := require.New(t)

	upstream := domain.WrapError(errors.New("dial tcp"), errcodes.CatalogUnavailable, "catalog unavailable")
	svc := catalog.NewCatalogService(&fakeClient{err: upstream})

	_, err := svc.Search(context.Background(), "rookie", "", 10)
	rq.ErrorIs(err, upstream)
	rq.True(domain.HasCode(err, errcodes.CatalogUnavailable))
}

func TestProduct(t *testing.T) {
	rq := require.New(t)

	client := &fakeClient{cards: testCards()}
	svc := catalog.NewCatalogService(client)

	card, err := svc.Product(context.Background(), "2")
	rq.NoError(err)
	rq.Equal("Brady", card.Name)

	_, err = svc.Product(context.Background(), "2")
	rq.NoError(err)
	rq.Equal(1, client.productCalls)

	_, err = svc.Fresh(context.Background(), "2")
	rq.NoError(err)
	rq.Equal(2, client.productCalls)

	_, err = svc.Product(context.Background(), "")
	rq.True(domain.HasCode(err, errcodes.InvalidCardID))

	_, err = svc.Product(context.Background(), "999")
	rq.True(domain.HasCode(err, errcodes.CardNotFound))
}
