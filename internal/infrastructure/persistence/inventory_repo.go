package persistence

import (
	"context"
	"sort"

	"card_tracker/internal/domain"
	"card_tracker/internal/domain/entity"
	"card_tracker/internal/domain/value"
	"card_tracker/pkg/errcodes"
)

type InventoryRepository struct {
	store Store
}

func NewInventoryRepository(store Store) *InventoryRepository {
	return &InventoryRepository{store: store}
}

func (r *InventoryRepository) Create(ctx context.Context, item entity.InventoryItem) error {
	return r.store.Update(ctx, []string{CollectionInventory}, func(c map[string]Documents) error {
		return encodeRecord(c[CollectionInventory], item.ID.String(), item)
	})
}

func (r *InventoryRepository) Get(ctx context.Context, id value.InventoryID) (entity.InventoryItem, error) {
	docs, err := r.store.Get(ctx, CollectionInventory)
	if err != nil {
		return entity.InventoryItem{}, err
	}

	raw, ok := docs[id.String()]
	if !ok {
		return entity.InventoryItem{}, itemNotFound(id)
	}

	return decodeRecord[entity.InventoryItem](id.String(), raw)
}

// List позиции в порядке добавления.
func (r *InventoryRepository) List(ctx context.Context) ([]entity.InventoryItem, error) {
	docs, err := r.store.Get(ctx, CollectionInventory)
	if err != nil {
		return nil, err
	}

	items, err := decodeAll[entity.InventoryItem](docs)
	if err != nil {
		return nil, err
	}

	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}

		return items[i].ID.String() < items[j].ID.String()
	})

	return items, nil
}

// Modify атомарно применяет fn к позиции и сохраняет результат.
func (r *InventoryRepository) Modify(
	ctx context.Context,
	id value.InventoryID,
	fn func(item *entity.InventoryItem) error,
) (entity.InventoryItem, error) {
	var result entity.InventoryItem

	err := r.store.Update(ctx, []string{CollectionInventory}, func(c map[string]Documents) error {
		docs := c[CollectionInventory]

		raw, ok := docs[id.String()]
		if !ok {
			return itemNotFound(id)
		}

		item, err := decodeRecord[entity.InventoryItem](id.String(), raw)
		if err != nil {
			return err
		}

		if err = fn(&item); err != nil {
			return err
		}

		result = item

		return encodeRecord(docs, id.String(), item)
	})
	if err != nil {
		return entity.InventoryItem{}, err
	}

	return result, nil
}

func (r *InventoryRepository) Delete(ctx context.Context, id value.InventoryID) error {
	return r.store.Update(ctx, []string{CollectionInventory}, func(c map[string]Documents) error {
		if _, ok := c[CollectionInventory][id.String()]; !ok {
			return itemNotFound(id)
		}

		delete(c[CollectionInventory], id.String())

		return nil
	})
}

// Sell одной операцией над inventory и sales: fn получает текущую позицию и
// возвращает проданную позицию и запись о продаже. Если fn вернула ошибку,
// не меняется ни одна коллекция.
func (r *InventoryRepository) Sell(
	ctx context.Context,
	id value.InventoryID,
	fn func(item entity.InventoryItem) (entity.InventoryItem, entity.Sale, error),
) (entity.InventoryItem, entity.Sale, error) {
	var (
		soldItem entity.InventoryItem
		sale     entity.Sale
	)

	err := r.store.Update(ctx, []string{CollectionInventory, CollectionSales}, func(c map[string]Documents) error {
		inventory, sales := c[CollectionInventory], c[CollectionSales]

		raw, ok := inventory[id.String()]
		if !ok {
			return itemNotFound(id)
		}

		item, err := decodeRecord[entity.InventoryItem](id.String(), raw)
		if err != nil {
			return err
		}

		soldItem, sale, err = fn(item)
		if err != nil {
			return err
		}

		if err = encodeRecord(inventory, id.String(), soldItem); err != nil {
			return err
		}

		return encodeRecord(sales, sale.ID.String(), sale)
	})
	if err != nil {
		return entity.InventoryItem{}, entity.Sale{}, err
	}

	return soldItem, sale, nil
}

func itemNotFound(id value.InventoryID) error {
	return domain.NewError(errcodes.InventoryItemNotFound, "inventory item "+id.String()+" not found")
}
