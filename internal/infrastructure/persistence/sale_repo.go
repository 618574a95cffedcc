package persistence

import (
	"context"
	"sort"

	"card_tracker/internal/domain/entity"
)

// SaleRepository только чтение: записи о продажах создаёт InventoryRepository.Sell.
type SaleRepository struct {
	store Store
}

func NewSaleRepository(store Store) *SaleRepository {
	return &SaleRepository{store: store}
}

// List продажи по дате продажи, затем по времени записи.
func (r *SaleRepository) List(ctx context.Context) ([]entity.Sale, error) {
	docs, err := r.store.Get(ctx, CollectionSales)
	if err != nil {
		return nil, err
	}

	sales, err := decodeAll[entity.Sale](docs)
	if err != nil {
		return nil, err
	}

	sort.Slice(sales, func(i, j int) bool {
		a, b := sales[i], sales[j]

		if !a.SaleDate.Time().Equal(b.SaleDate.Time()) {
			return a.SaleDate.Time().Before(b.SaleDate.Time())
		}

		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}

		return a.ID.String() < b.ID.String()
	})

	return sales, nil
}
