package persistence

import (
	"context"
	"sort"
	"time"

	"card_tracker/internal/domain"
	"card_tracker/internal/domain/entity"
	"card_tracker/internal/domain/value"
	"card_tracker/pkg/errcodes"
)

type PriceHistoryRepository struct {
	store Store
}

func NewPriceHistoryRepository(store Store) *PriceHistoryRepository {
	return &PriceHistoryRepository{store: store}
}

func (r *PriceHistoryRepository) Get(ctx context.Context, id value.CardID) (entity.PriceHistory, error) {
	docs, err := r.store.Get(ctx, CollectionPriceHistory)
	if err != nil {
		return entity.PriceHistory{}, err
	}

	raw, ok := docs[id.String()]
	if !ok {
		return entity.PriceHistory{}, domain.NewError(errcodes.CardNotTracked, "card "+id.String()+" is not tracked")
	}

	return decodeRecord[entity.PriceHistory](id.String(), raw)
}

// List отслеживаемые карточки по имени.
func (r *PriceHistoryRepository) List(ctx context.Context) ([]entity.PriceHistory, error) {
	docs, err := r.store.Get(ctx, CollectionPriceHistory)
	if err != nil {
		return nil, err
	}

	histories, err := decodeAll[entity.PriceHistory](docs)
	if err != nil {
		return nil, err
	}

	sort.Slice(histories, func(i, j int) bool {
		if histories[i].Card.Name != histories[j].Card.Name {
			return histories[i].Card.Name < histories[j].Card.Name
		}

		return histories[i].Card.ID < histories[j].Card.ID
	})

	return histories, nil
}

// Append добавляет снимок цены и обновляет данные карточки. Карточка, которой
// ещё нет, начинает отслеживаться.
func (r *PriceHistoryRepository) Append(
	ctx context.Context,
	card entity.Card,
	snapshot entity.PriceSnapshot,
) (entity.PriceHistory, error) {
	var result entity.PriceHistory

	err := r.store.Update(ctx, []string{CollectionPriceHistory}, func(c map[string]Documents) error {
		docs := c[CollectionPriceHistory]
		id := card.ID.String()

		history := entity.PriceHistory{FirstTracked: snapshot.Timestamp}

		if raw, ok := docs[id]; ok {
			existing, err := decodeRecord[entity.PriceHistory](id, raw)
			if err != nil {
				return err
			}

			history = existing
		}

		history.Card = card
		history.LastUpdated = snapshot.Timestamp
		history.Snapshots = append(history.Snapshots, snapshot)

		result = history

		return encodeRecord(docs, id, history)
	})
	if err != nil {
		return entity.PriceHistory{}, err
	}

	return result, nil
}

// Prune удаляет снимки старше before, последний снимок сохраняется всегда.
func (r *PriceHistoryRepository) Prune(ctx context.Context, before time.Time) (int, error) {
	removed := 0

	err := r.store.Update(ctx, []string{CollectionPriceHistory}, func(c map[string]Documents) error {
		docs := c[CollectionPriceHistory]
		removed = 0

		for id, raw := range docs {
			history, err := decodeRecord[entity.PriceHistory](id, raw)
			if err != nil {
				return err
			}

			kept := make([]entity.PriceSnapshot, 0, len(history.Snapshots))

			for i, s := range history.Snapshots {
				if s.Timestamp.Before(before) && i != len(history.Snapshots)-1 {
					removed++
					continue
				}

				kept = append(kept, s)
			}

			history.Snapshots = kept

			if err = encodeRecord(docs, id, history); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return removed, nil
}
