// Package inventory учёт купленных карточек и фиксация продаж.
package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"card_tracker/internal/domain"
	"card_tracker/internal/domain/entity"
	"card_tracker/internal/domain/service/profit"
	"card_tracker/internal/domain/value"
	"card_tracker/pkg/contextx"
	"card_tracker/pkg/errcodes"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type Repository interface {
	Create(ctx context.Context, item entity.InventoryItem) error
	Get(ctx context.Context, id value.InventoryID) (entity.InventoryItem, error)
	List(ctx context.Context) ([]entity.InventoryItem, error)
	Modify(ctx context.Context, id value.InventoryID, fn func(item *entity.InventoryItem) error) (entity.InventoryItem, error)
	Delete(ctx context.Context, id value.InventoryID) error
	Sell(
		ctx context.Context,
		id value.InventoryID,
		fn func(item entity.InventoryItem) (entity.InventoryItem, entity.Sale, error),
	) (entity.InventoryItem, entity.Sale, error)
}

// NewItem PurchasePriceCents цена за экземпляр, нулевое Quantity означает один.
type NewItem struct {
	CardID             value.CardID
	CardName           string
	Condition          string
	PurchasePriceCents int64
	Quantity           int
	PurchaseDate       value.Date
	Notes              string
}

// ItemChanges nil поля не меняются.
type ItemChanges struct {
	CardName           *string
	Condition          *string
	PurchasePriceCents *int64
	Quantity           *int
	PurchaseDate       *value.Date
	Notes              *string
}

// SaleParams нулевая SaleDate означает сегодня, nil Shipping доставку по умолчанию.
type SaleParams struct {
	SalePriceCents  int64
	SaleDate        value.Date
	ShippingCents   *int64
	AdditionalCents *int64
}

type InventoryService struct {
	repo Repository
	calc profit.Calculator
	now  func() time.Time
}

func NewInventoryService(repo Repository, calc profit.Calculator) *InventoryService {
	return &InventoryService{
		repo: repo,
		calc: calc,
		now:  time.Now,
	}
}

func (s *InventoryService) WithClock(now func() time.Time) *InventoryService {
	s.now = now
	return s
}

func (s *InventoryService) Create(ctx context.Context, in NewItem) (entity.InventoryItem, error) {
	if err := validateNewItem(in); err != nil {
		return entity.InventoryItem{}, err
	}

	now := s.now().UTC()

	purchaseDate := in.PurchaseDate
	if purchaseDate.IsZero() {
		purchaseDate = value.NewDate(now)
	}

	item := entity.InventoryItem{
		ID:                 value.NewInventoryID(),
		CardID:             in.CardID,
		CardName:           strings.TrimSpace(in.CardName),
		Condition:          strings.TrimSpace(in.Condition),
		PurchasePriceCents: in.PurchasePriceCents,
		Quantity:           max(in.Quantity, 1),
		CostBasisCents:     entity.CostBasis(in.PurchasePriceCents, in.Quantity),
		PurchaseDate:       purchaseDate,
		Notes:              in.Notes,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return entity.InventoryItem{}, fmt.Errorf("repo.Create: %w", err)
	}

	logger(ctx).Info("inventory item created", "inventory-id", item.ID.String(), "card", item.CardName)

	return item, nil
}

func (s *InventoryService) Get(ctx context.Context, id value.InventoryID) (entity.InventoryItem, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return entity.InventoryItem{}, fmt.Errorf("repo.Get: %w", err)
	}

	return item, nil
}

func (s *InventoryService) List(ctx context.Context, status entity.InventoryStatus) ([]entity.InventoryItem, error) {
	if status == "" {
		status = entity.InventoryStatusAll
	}

	if !status.Valid() {
		return nil, domain.NewError(errcodes.InvalidStatus, "status must be one of all, available, sold")
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.List: %w", err)
	}

	result := make([]entity.InventoryItem, 0, len(items))

	for _, item := range items {
		if status.Match(item) {
			result = append(result, item)
		}
	}

	return result, nil
}

// Update меняет только непроданные позиции.
func (s *InventoryService) Update(ctx context.Context, id value.InventoryID, changes ItemChanges) (entity.InventoryItem, error) {
	if changes.PurchasePriceCents != nil && *changes.PurchasePriceCents < 0 {
		return entity.InventoryItem{}, domain.NewError(errcodes.InvalidPrice, "purchase price must not be negative")
	}

	if changes.Quantity != nil && *changes.Quantity < 1 {
		return entity.InventoryItem{}, domain.NewError(errcodes.ValidationError, "quantity must be at least 1")
	}

	if changes.CardName != nil && strings.TrimSpace(*changes.CardName) == "" {
		return entity.InventoryItem{}, domain.NewError(errcodes.ValidationError, "card name must not be empty")
	}

	item, err := s.repo.Modify(ctx, id, func(item *entity.InventoryItem) error {
		if item.Sold {
			return domain.NewError(errcodes.ItemAlreadySold, "sold items cannot be edited")
		}

		if changes.CardName != nil {
			item.CardName = strings.TrimSpace(*changes.CardName)
		}

		if changes.Condition != nil {
			item.Condition = strings.TrimSpace(*changes.Condition)
		}

		if changes.PurchasePriceCents != nil {
			item.PurchasePriceCents = *changes.PurchasePriceCents
		}

		if changes.Quantity != nil {
			item.Quantity = *changes.Quantity
		}

		item.CostBasisCents = item.CostBasis()

		if changes.PurchaseDate != nil && !changes.PurchaseDate.IsZero() {
			item.PurchaseDate = *changes.PurchaseDate
		}

		if changes.Notes != nil {
			item.Notes = *changes.Notes
		}

		item.UpdatedAt = s.now().UTC()

		return nil
	})
	if err != nil {
		return entity.InventoryItem{}, fmt.Errorf("repo.Modify: %w", err)
	}

	return item, nil
}

func (s *InventoryService) Delete(ctx context.Context, id value.InventoryID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("repo.Delete: %w", err)
	}

	logger(ctx).Info("inventory item deleted", "inventory-id", id.String())

	return nil
}

// RecordSale переводит позицию в проданные и создаёт запись о продаже одной
// атомарной операцией. Прибыль считается одним расчётом: цена продажи всей
// партии против её себестоимости. Повторная продажа отклоняется с
// ItemAlreadySold и ничего не меняет.
func (s *InventoryService) RecordSale(
	ctx context.Context,
	id value.InventoryID,
	params SaleParams,
) (entity.InventoryItem, entity.Sale, error) {
	if params.SalePriceCents < 0 {
		return entity.InventoryItem{}, entity.Sale{}, domain.NewError(errcodes.InvalidPrice, "sale price must not be negative")
	}

	now := s.now().UTC()

	saleDate := params.SaleDate
	if saleDate.IsZero() {
		saleDate = value.NewDate(now)
	}

	var opts []profit.Option
	if params.ShippingCents != nil {
		opts = append(opts, profit.WithShipping(*params.ShippingCents))
	}

	if params.AdditionalCents != nil {
		opts = append(opts, profit.WithAdditionalCosts(*params.AdditionalCents))
	}

	item, sale, err := s.repo.Sell(ctx, id, func(item entity.InventoryItem) (entity.InventoryItem, entity.Sale, error) {
		if item.Sold {
			return entity.InventoryItem{}, entity.Sale{}, domain.NewError(
				errcodes.ItemAlreadySold,
				"inventory item "+id.String()+" is already sold",
			)
		}

		breakdown := s.calc.Calculate(item.CostBasis(), params.SalePriceCents, opts...)
		details := entity.NewSaleDetails(breakdown, saleDate)

		item.Sold = true
		item.Sale = &details
		item.UpdatedAt = now

		return item, entity.NewSale(item, details, now), nil
	})
	if err != nil {
		return entity.InventoryItem{}, entity.Sale{}, fmt.Errorf("repo.Sell: %w", err)
	}

	logger(ctx).Info("sale recorded",
		"inventory-id", id.String(),
		"sale-price", params.SalePriceCents,
		"net-profit", sale.NetProfitCents,
		"roi", sale.ROI,
	)

	return item, sale, nil
}

func validateNewItem(in NewItem) error {
	if strings.TrimSpace(in.CardName) == "" {
		return domain.NewError(errcodes.ValidationError, "card name is required")
	}

	if in.PurchasePriceCents < 0 {
		return domain.NewError(errcodes.InvalidPrice, "purchase price must not be negative")
	}

	if in.Quantity < 0 {
		return domain.NewError(errcodes.ValidationError, "quantity must be at least 1")
	}

	return nil
}
