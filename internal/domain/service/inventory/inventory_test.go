package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"card_tracker/internal/domain"
	"card_tracker/internal/domain/entity"
	"card_tracker/internal/domain/service/inventory"
	"card_tracker/internal/domain/service/profit"
	"card_tracker/internal/domain/value"
	"card_tracker/internal/infrastructure/persistence"
	"card_tracker/pkg/errcodes"
)

var testNow = time.Date(2024, 5, 10, 15, 30, 0, 0, time.UTC) //nolint:gochecknoglobals

type fixture struct {
	svc   *inventory.InventoryService
	sales *persistence.SaleRepository
}

func newFixture() fixture {
	store := persistence.NewMemoryStore()

	svc := inventory.NewInventoryService(
		persistence.NewInventoryRepository(store),
		profit.NewCalculator(profit.DefaultConfig()),
	).WithClock(func() time.Time { return testNow })

	return fixture{
		svc:   svc,
		sales: persistence.NewSaleRepository(store),
	}
}

func (f fixture) createItem(t *testing.T, purchase int64) entity.InventoryItem {
	t.Helper()

	date, err := value.ParseDate("2024-04-01")
	require.NoError(t, err)

	item, err := f.svc.Create(context.Background(), inventory.NewItem{
		CardID:             "635",
		CardName:           "Ken Griffey Jr. 1989 Upper Deck",
		Condition:          "PSA 9",
		PurchasePriceCents: purchase,
		PurchaseDate:       date,
	})
	require.NoError(t, err)

	return item
}

func TestCreate(t *testing.T) {
	rq := require.New(t)

	f := newFixture()
	item := f.createItem(t, 5000)

	rq.False(item.ID.IsZero())
	rq.False(item.Sold)
	rq.Nil(item.Sale)
	rq.Equal("2024-04-01", item.PurchaseDate.String())
	rq.Equal(testNow, item.CreatedAt)
	rq.Equal(1, item.Quantity)
	rq.Equal(int64(5000), item.CostBasisCents)

	noDate, err := f.svc.Create(context.Background(), inventory.NewItem{CardName: "x", PurchasePriceCents: 1})
	rq.NoError(err)
	rq.Equal("2024-05-10", noDate.PurchaseDate.String())
}

func TestCreateValidation(t *testing.T) {
	testCases := []struct {
		name         string
		in           inventory.NewItem
		expectedCode string
	}{
		{name: "missing name", in: inventory.NewItem{PurchasePriceCents: 100}, expectedCode: "ValidationError"},
		{name: "negative price", in: inventory.NewItem{CardName: "x", PurchasePriceCents: -1}, expectedCode: "InvalidPrice"},
		{name: "negative quantity", in: inventory.NewItem{CardName: "x", Quantity: -2}, expectedCode: "ValidationError"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			_, err := newFixture().svc.Create(context.Background(), tc.in)
			rq.Error(err)

			code, ok := domain.GetCode(err)
			rq.True(ok)
			rq.Equal(tc.expectedCode, code.String())
		})
	}
}

func TestRecordSale(t *testing.T) {
	rq := require.New(t)

	ctx := context.Background()
	f := newFixture()
	item := f.createItem(t, 5000)

	saleDate, err := value.ParseDate("2024-05-09")
	rq.NoError(err)

	sold, sale, err := f.svc.RecordSale(ctx, item.ID, inventory.SaleParams{
		SalePriceCents: 7500,
		SaleDate:       saleDate,
		ShippingCents:  lo.ToPtr(int64(500)),
	})
	rq.NoError(err)

	rq.True(sold.Sold)
	rq.NotNil(sold.Sale)
	rq.Equal(int64(7500), sold.Sale.SalePriceCents)
	rq.Equal(int64(975), sold.Sale.PercentageFeeCents)
	rq.Equal(int64(1005), sold.Sale.TotalFeesCents)
	rq.Equal(int64(995), sold.Sale.NetProfitCents)
	rq.Equal(19.9, sold.Sale.ROI)
	rq.Equal("2024-05-09", sold.Sale.SaleDate.String())

	rq.Equal(item.ID, sale.InventoryID)
	rq.Equal(item.CardName, sale.CardName)
	rq.Equal(item.PurchasePriceCents, sale.PurchasePriceCents)
	rq.Equal(*sold.Sale, entity.SaleDetails{
		SalePriceCents:      sale.SalePriceCents,
		PercentageFeeCents:  sale.PercentageFeeCents,
		TransactionFeeCents: sale.TransactionFeeCents,
		TotalFeesCents:      sale.TotalFeesCents,
		ShippingCents:       sale.ShippingCents,
		AdditionalCents:     sale.AdditionalCents,
		NetProfitCents:      sale.NetProfitCents,
		ROI:                 sale.ROI,
		SaleDate:            sale.SaleDate,
	})

	stored, err := f.svc.Get(ctx, item.ID)
	rq.NoError(err)
	rq.True(stored.Sold)
	rq.Equal(sold.Sale, stored.Sale)
}

func TestRecordSaleQuantity(t *testing.T) {
	rq := require.New(t)

	ctx := context.Background()
	f := newFixture()

	item, err := f.svc.Create(ctx, inventory.NewItem{
		CardID:             "101",
		CardName:           "Mike Trout 2011 Topps Update",
		PurchasePriceCents: 2500,
		Quantity:           3,
	})
	rq.NoError(err)
	rq.Equal(3, item.Quantity)
	rq.Equal(int64(7500), item.CostBasisCents)

	sold, sale, err := f.svc.RecordSale(ctx, item.ID, inventory.SaleParams{SalePriceCents: 15000})
	rq.NoError(err)

	rq.Equal(int64(1980), sold.Sale.TotalFeesCents)
	rq.Equal(int64(5020), sold.Sale.NetProfitCents)
	rq.Equal(66.93, sold.Sale.ROI)

	rq.Equal(3, sale.Quantity)
	rq.Equal(int64(2500), sale.PurchasePriceCents)
	rq.Equal(int64(7500), sale.CostBasis())
	rq.Equal(sold.Sale.NetProfitCents, sale.NetProfitCents)
	rq.Equal(sold.Sale.ROI, sale.ROI)
}

func TestRecordSaleTwiceIsConflict(t *testing.T) {
	rq := require.New(t)

	ctx := context.Background()
	f := newFixture()
	item := f.createItem(t, 5000)

	_, first, err := f.svc.RecordSale(ctx, item.ID, inventory.SaleParams{SalePriceCents: 7500})
	rq.NoError(err)

	before, err := f.svc.Get(ctx, item.ID)
	rq.NoError(err)

	_, _, err = f.svc.RecordSale(ctx, item.ID, inventory.SaleParams{SalePriceCents: 99999})
	rq.Error(err)
	rq.True(domain.HasCode(err, errcodes.ItemAlreadySold))

	after, err := f.svc.Get(ctx, item.ID)
	rq.NoError(err)
	rq.Equal(before, after)

	sales, err := f.sales.List(ctx)
	rq.NoError(err)
	rq.Len(sales, 1)
	rq.Equal(first.ID, sales[0].ID)
	rq.Equal(int64(7500), sales[0].SalePriceCents)
}

func TestRecordSaleConcurrent(t *testing.T) {
	rq := require.New(t)

	ctx := context.Background()
	f := newFixture()
	item := f.createItem(t, 1000)

	const attempts = 16

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)

	for i := 0; i < attempts; i++ {
		wg.Add(1)

		go func(price int64) {
			defer wg.Done()

			_, _, err := f.svc.RecordSale(ctx, item.ID, inventory.SaleParams{SalePriceCents: price})

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err == nil:
				succeeded++
			case domain.HasCode(err, errcodes.ItemAlreadySold):
				conflicts++
			}
		}(int64(2000 + i))
	}

	wg.Wait()

	rq.Equal(1, succeeded)
	rq.Equal(attempts-1, conflicts)

	sales, err := f.sales.List(ctx)
	rq.NoError(err)
	rq.Len(sales, 1)
}

func TestRecordSaleErrors(t *testing.T) {
	rq := require.New(t)

	ctx := context.Background()
	f := newFixture()

	_, _, err := f.svc.RecordSale(ctx, value.NewInventoryID(), inventory.SaleParams{SalePriceCents: 100})
	rq.True(domain.HasCode(err, errcodes.InventoryItemNotFound))

	item := f.createItem(t, 100)

	_, _, err = f.svc.RecordSale(ctx, item.ID, inventory.SaleParams{SalePriceCents: -1})
	rq.True(domain.HasCode(err, errcodes.InvalidPrice))

	sales, err := f.sales.List(ctx)
	rq.NoError(err)
	rq.Empty(sales)
}

func TestUpdate(t *testing.T) {
	rq := require.New(t)

	ctx := context.Background()
	f := newFixture()
	item := f.createItem(t, 5000)

	updated, err := f.svc.Update(ctx, item.ID, inventory.ItemChanges{
		Condition:          lo.ToPtr("PSA 10"),
		PurchasePriceCents: lo.ToPtr(int64(4500)),
		Notes:              lo.ToPtr("regraded"),
	})
	rq.NoError(err)
	rq.Equal("PSA 10", updated.Condition)
	rq.Equal(int64(4500), updated.PurchasePriceCents)
	rq.Equal("regraded", updated.Notes)
	rq.Equal(item.CardName, updated.CardName)
	rq.Equal(int64(4500), updated.CostBasisCents)

	updated, err = f.svc.Update(ctx, item.ID, inventory.ItemChanges{Quantity: lo.ToPtr(2)})
	rq.NoError(err)
	rq.Equal(2, updated.Quantity)
	rq.Equal(int64(9000), updated.CostBasisCents)

	_, err = f.svc.Update(ctx, item.ID, inventory.ItemChanges{PurchasePriceCents: lo.ToPtr(int64(-5))})
	rq.True(domain.HasCode(err, errcodes.InvalidPrice))

	_, err = f.svc.Update(ctx, item.ID, inventory.ItemChanges{Quantity: lo.ToPtr(0)})
	rq.True(domain.HasCode(err, errcodes.ValidationError))

	_, _, err = f.svc.RecordSale(ctx, item.ID, inventory.SaleParams{SalePriceCents: 6000})
	rq.NoError(err)

	_, err = f.svc.Update(ctx, item.ID, inventory.ItemChanges{Notes: lo.ToPtr("too late")})
	rq.True(domain.HasCode(err, errcodes.ItemAlreadySold))

	_, err = f.svc.Update(ctx, value.NewInventoryID(), inventory.ItemChanges{})
	rq.True(domain.HasCode(err, errcodes.InventoryItemNotFound))
}

func TestListAndDelete(t *testing.T) {
	rq := require.New(t)

	ctx := context.Background()
	f := newFixture()

	a := f.createItem(t, 100)
	b := f.createItem(t, 200)

	_, _, err := f.svc.RecordSale(ctx, a.ID, inventory.SaleParams{SalePriceCents: 500})
	rq.NoError(err)

	testCases := []struct {
		status   entity.InventoryStatus
		expected int
	}{
		{status: "", expected: 2},
		{status: entity.InventoryStatusAll, expected: 2},
		{status: entity.InventoryStatusAvailable, expected: 1},
		{status: entity.InventoryStatusSold, expected: 1},
	}

	for _, tc := range testCases {
		items, err := f.svc.List(ctx, tc.status)
		rq.NoError(err)
		rq.Len(items, tc.expected, tc.status)
	}

	_, err = f.svc.List(ctx, "pending")
	rq.True(domain.HasCode(err, errcodes.InvalidStatus))

	rq.NoError(f.svc.Delete(ctx, a.ID))
	rq.NoError(f.svc.Delete(ctx, b.ID))
	rq.True(domain.HasCode(f.svc.Delete(ctx, b.ID), errcodes.InventoryItemNotFound))

	items, err := f.svc.List(ctx, entity.InventoryStatusAll)
	rq.NoError(err)
	rq.Empty(items)

	sales, err := f.sales.List(ctx)
	rq.NoError(err)
	rq.Len(sales, 1)
}
