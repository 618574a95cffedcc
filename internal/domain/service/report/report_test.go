package report_test

import (
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"card_tracker/internal/domain/entity"
	"card_tracker/internal/domain/service/report"
	"card_tracker/internal/domain/value"
)

type fakeSales struct {
	sales []entity.Sale
	err   error
}

func (f fakeSales) List(context.Context) ([]entity.Sale, error) {
	return f.sales, f.err
}

func sale(t *testing.T, name, date string, purchase, price, fees, net int64, roi float64) entity.Sale {
	t.Helper()

	d, err := value.ParseDate(date)
	require.NoError(t, err)

	return entity.Sale{
		ID:                 value.NewSaleID(),
		InventoryID:        value.NewInventoryID(),
		CardID:             value.CardID("id-" + name),
		CardName:           name,
		PurchasePriceCents: purchase,
		PurchaseDate:       d,
		SalePriceCents:     price,
		TotalFeesCents:     fees,
		ShippingCents:      500,
		NetProfitCents:     net,
		ROI:                roi,
		SaleDate:           d,
	}
}

func testSales(t *testing.T) []entity.Sale {
	return []entity.Sale{
		sale(t, "Griffey", "2024-01-05", 5000, 7500, 1005, 995, 19.9),
		sale(t, "Jordan", "2024-01-20", 10000, 15000, 1980, 2520, 25.2),
		sale(t, "Griffey", "2024-01-28", 2000, 4000, 550, 950, 47.5),
		sale(t, "Trout", "2024-02-03", 3000, 2500, 355, -1355, -45.17),
		sale(t, "Ohtani", "2023-12-30", 1000, 3000, 420, 1080, 108),
	}
}

func TestMonthly(t *testing.T) {
	rq := require.New(t)

	jan := value.Month{Year: 2024, Month: time.January}
	summary := report.Monthly(testSales(t), jan)

	rq.Equal(jan, summary.Month)
	rq.Equal(3, summary.SalesCount)
	rq.Equal(int64(26500), summary.RevenueCents)
	rq.Equal(int64(17000), summary.CostCents)
	rq.Equal(int64(3535), summary.FeesCents)
	rq.Equal(int64(1500), summary.ShippingCents)
	rq.Equal(int64(4465), summary.NetProfitCents)
	rq.Equal(int64(1488), summary.AvgProfitCents)
	rq.Equal(30.87, summary.AvgROI)
	rq.Equal(25.2, summary.MedianROI)
	rq.Equal("Jordan", summary.BestSale.CardName)
}

func TestMonthlyEmpty(t *testing.T) {
	rq := require.New(t)

	summary := report.Monthly(testSales(t), value.Month{Year: 2020, Month: time.June})

	rq.Zero(summary.SalesCount)
	rq.Zero(summary.NetProfitCents)
	rq.Zero(summary.AvgROI)
	rq.Zero(summary.MedianROI)
	rq.Nil(summary.BestSale)
}

func TestByMonth(t *testing.T) {
	rq := require.New(t)

	months := report.ByMonth(testSales(t))

	rq.Len(months, 3)
	rq.Equal("2023-12", months[0].Month.String())
	rq.Equal("2024-01", months[1].Month.String())
	rq.Equal("2024-02", months[2].Month.String())
	rq.Equal(3, months[1].SalesCount)
	rq.Equal(int64(-1355), months[2].NetProfitCents)
}

func TestByCard(t *testing.T) {
	rq := require.New(t)

	cards := report.ByCard(testSales(t))

	rq.Len(cards, 4)
	rq.Equal("Jordan", cards[0].CardName)
	rq.Equal("Griffey", cards[1].CardName)
	rq.Equal(2, cards[1].SalesCount)
	rq.Equal(int64(1945), cards[1].NetProfitCents)
	rq.Equal(33.7, cards[1].AvgROI)
	rq.Equal("Ohtani", cards[2].CardName)
	rq.Equal("Trout", cards[3].CardName)
}

func TestSummary(t *testing.T) {
	rq := require.New(t)

	svc := report.NewReportService(fakeSales{sales: testSales(t)})

	summary, err := svc.Summary(context.Background())
	rq.NoError(err)
	rq.Len(summary.Months, 3)
	rq.Len(summary.Cards, 4)
	rq.Equal(5, summary.Total.SalesCount)
	rq.Equal(int64(4190), summary.Total.NetProfitCents)

	_, err = report.NewReportService(fakeSales{err: errors.New("store down")}).Summary(context.Background())
	rq.Error(err)
}

func TestExportCSV(t *testing.T) {
	rq := require.New(t)

	sales := testSales(t)[:2]
	svc := report.NewReportService(fakeSales{sales: sales})

	b, err := svc.ExportCSV(context.Background())
	rq.NoError(err)

	records, err := csv.NewReader(strings.NewReader(string(b))).ReadAll()
	rq.NoError(err)
	rq.Len(records, 3)

	header := records[0]
	rq.Equal("sale_id", header[0])
	rq.Contains(header, "net_profit_cents")
	rq.Contains(header, "roi")

	rq.Equal(sales[0].ID.String(), records[1][0])
	rq.Equal("Griffey", records[1][3])
	rq.Equal("2024-01-05", records[1][6])
	rq.Equal("995", records[1][12])
	rq.Equal("19.9", records[1][13])
}
