package persistence_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"card_tracker/internal/domain"
	"card_tracker/internal/domain/entity"
	"card_tracker/internal/domain/value"
	"card_tracker/internal/infrastructure/persistence"
	"card_tracker/pkg/errcodes"
)

func newItem(name string, createdAt time.Time) entity.InventoryItem {
	return entity.InventoryItem{
		ID:                 value.NewInventoryID(),
		CardID:             "100",
		CardName:           name,
		Condition:          "PSA 9",
		PurchasePriceCents: 5000,
		PurchaseDate:       value.NewDate(createdAt),
		CreatedAt:          createdAt,
		UpdatedAt:          createdAt,
	}
}

func TestInventoryRepository(t *testing.T) {
	rq := require.New(t)

	ctx := context.Background()
	store := persistence.NewMemoryStore()
	repo := persistence.NewInventoryRepository(store)

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	first := newItem("First", now)
	second := newItem("Second", now.Add(time.Minute))

	rq.NoError(repo.Create(ctx, second))
	rq.NoError(repo.Create(ctx, first))

	got, err := repo.Get(ctx, first.ID)
	rq.NoError(err)
	rq.Equal(first.CardName, got.CardName)
	rq.Equal(first.PurchaseDate, got.PurchaseDate)
	rq.True(first.CreatedAt.Equal(got.CreatedAt))

	items, err := repo.List(ctx)
	rq.NoError(err)
	rq.Len(items, 2)
	rq.Equal("First", items[0].CardName)
	rq.Equal("Second", items[1].CardName)

	updated, err := repo.Modify(ctx, first.ID, func(item *entity.InventoryItem) error {
		item.Notes = "centered"
		return nil
	})
	rq.NoError(err)
	rq.Equal("centered", updated.Notes)

	got, err = repo.Get(ctx, first.ID)
	rq.NoError(err)
	rq.Equal("centered", got.Notes)

	rq.NoError(repo.Delete(ctx, first.ID))

	_, err = repo.Get(ctx, first.ID)
	rq.True(domain.HasCode(err, errcodes.InventoryItemNotFound))

	err = repo.Delete(ctx, first.ID)
	rq.True(domain.HasCode(err, errcodes.InventoryItemNotFound))

	_, err = repo.Modify(ctx, first.ID, func(*entity.InventoryItem) error { return nil })
	rq.True(domain.HasCode(err, errcodes.InventoryItemNotFound))
}

func TestInventoryRepositorySell(t *testing.T) {
	rq := require.New(t)

	ctx := context.Background()
	store := persistence.NewMemoryStore()
	repo := persistence.NewInventoryRepository(store)
	sales := persistence.NewSaleRepository(store)

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	item := newItem("Card", now)
	rq.NoError(repo.Create(ctx, item))

	errRejected := errors.New("rejected")

	_, _, err := repo.Sell(ctx, item.ID, func(entity.InventoryItem) (entity.InventoryItem, entity.Sale, error) {
		return entity.InventoryItem{}, entity.Sale{}, errRejected
	})
	rq.ErrorIs(err, errRejected)

	list, err := sales.List(ctx)
	rq.NoError(err)
	rq.Empty(list)

	soldItem, sale, err := repo.Sell(ctx, item.ID, func(current entity.InventoryItem) (entity.InventoryItem, entity.Sale, error) {
		details := entity.SaleDetails{SalePriceCents: 7500, NetProfitCents: 995, ROI: 19.9, SaleDate: value.NewDate(now)}
		current.Sold = true
		current.Sale = &details

		return current, entity.NewSale(current, details, now), nil
	})
	rq.NoError(err)
	rq.True(soldItem.Sold)
	rq.Equal(item.ID, sale.InventoryID)

	stored, err := repo.Get(ctx, item.ID)
	rq.NoError(err)
	rq.True(stored.Sold)
	rq.Equal(int64(995), stored.Sale.NetProfitCents)

	list, err = sales.List(ctx)
	rq.NoError(err)
	rq.Len(list, 1)
	rq.Equal(sale.ID, list[0].ID)
	rq.Equal(int64(7500), list[0].SalePriceCents)

	_, _, err = repo.Sell(ctx, value.NewInventoryID(), func(entity.InventoryItem) (entity.InventoryItem, entity.Sale, error) {
		t.Fatal("must not be called for unknown item")
		return entity.InventoryItem{}, entity.Sale{}, nil
	})
	rq.True(domain.HasCode(err, errcodes.InventoryItemNotFound))
}

func TestSaleRepositoryOrder(t *testing.T) {
	rq := require.New(t)

	ctx := context.Background()
	store := persistence.NewMemoryStore()
	repo := persistence.NewInventoryRepository(store)

	for i, day := range []int{20, 5, 12} {
		at := time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC)
		item := newItem("Card", at)
		item.CardName = string(rune('A' + i))
		rq.NoError(repo.Create(ctx, item))

		_, _, err := repo.Sell(ctx, item.ID, func(current entity.InventoryItem) (entity.InventoryItem, entity.Sale, error) {
			details := entity.SaleDetails{SaleDate: value.NewDate(at)}
			current.Sold = true
			current.Sale = &details

			return current, entity.NewSale(current, details, at), nil
		})
		rq.NoError(err)
	}

	sales, err := persistence.NewSaleRepository(store).List(ctx)
	rq.NoError(err)
	rq.Len(sales, 3)
	rq.Equal([]string{"B", "C", "A"}, []string{sales[0].CardName, sales[1].CardName, sales[2].CardName})
}

func TestPriceHistoryRepository(t *testing.T) {
	rq := require.New(t)

	ctx := context.Background()
	repo := persistence.NewPriceHistoryRepository(persistence.NewMemoryStore())

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	card := entity.Card{ID: "42", Name: "Griffey RC"}

	_, err := repo.Get(ctx, card.ID)
	rq.True(domain.HasCode(err, errcodes.CardNotTracked))

	for i := 0; i < 3; i++ {
		_, err = repo.Append(ctx, card, entity.PriceSnapshot{
			Timestamp: start.Add(time.Duration(i) * 24 * time.Hour),
			Prices:    entity.Prices{Ungraded: int64(1000 + i*100)},
		})
		rq.NoError(err)
	}

	history, err := repo.Get(ctx, card.ID)
	rq.NoError(err)
	rq.Len(history.Snapshots, 3)
	rq.True(start.Equal(history.FirstTracked))
	rq.True(start.Add(48 * time.Hour).Equal(history.LastUpdated))

	latest, ok := history.Latest()
	rq.True(ok)
	rq.Equal(int64(1200), latest.Prices.Ungraded)

	removed, err := repo.Prune(ctx, start.Add(72*time.Hour))
	rq.NoError(err)
	rq.Equal(2, removed)

	history, err = repo.Get(ctx, card.ID)
	rq.NoError(err)
	rq.Len(history.Snapshots, 1)

	_, err = repo.Append(ctx, entity.Card{ID: "7", Name: "Acuna RC"}, entity.PriceSnapshot{Timestamp: start})
	rq.NoError(err)

	all, err := repo.List(ctx)
	rq.NoError(err)
	rq.Len(all, 2)
	rq.Equal("Acuna RC", all[0].Card.Name)
}
