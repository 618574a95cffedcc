// Package report сводки по журналу продаж: по месяцам, по карточкам, выгрузка.
package report

import (
	"context"
	"fmt"
	"sort"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"

	"card_tracker/internal/domain/entity"
	"card_tracker/internal/domain/value"
)

const roiPlaces = 2

type SaleRepository interface {
	List(ctx context.Context) ([]entity.Sale, error)
}

type ReportService struct {
	sales SaleRepository
}

func NewReportService(sales SaleRepository) *ReportService {
	return &ReportService{sales: sales}
}

func (s *ReportService) Sales(ctx context.Context) ([]entity.Sale, error) {
	sales, err := s.sales.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("sales.List: %w", err)
	}

	return sales, nil
}

func (s *ReportService) Monthly(ctx context.Context, month value.Month) (entity.MonthlySummary, error) {
	sales, err := s.Sales(ctx)
	if err != nil {
		return entity.MonthlySummary{}, err
	}

	return Monthly(sales, month), nil
}

func (s *ReportService) Summary(ctx context.Context) (entity.Summary, error) {
	sales, err := s.Sales(ctx)
	if err != nil {
		return entity.Summary{}, err
	}

	return entity.Summary{
		Months: ByMonth(sales),
		Cards:  ByCard(sales),
		Total:  summarize(sales),
	}, nil
}

// Monthly сводка по продажам, у которых дата продажи попадает в month.
func Monthly(sales []entity.Sale, month value.Month) entity.MonthlySummary {
	inMonth := make([]entity.Sale, 0, len(sales))

	for _, sale := range sales {
		if sale.SaleDate.Month() == month {
			inMonth = append(inMonth, sale)
		}
	}

	summary := summarize(inMonth)
	summary.Month = month

	return summary
}

// ByMonth сводки по месяцам с продажами, по возрастанию месяца.
func ByMonth(sales []entity.Sale) []entity.MonthlySummary {
	grouped := make(map[value.Month][]entity.Sale)

	for _, sale := range sales {
		m := sale.SaleDate.Month()
		grouped[m] = append(grouped[m], sale)
	}

	result := make([]entity.MonthlySummary, 0, len(grouped))

	for m, group := range grouped {
		summary := summarize(group)
		summary.Month = m
		result = append(result, summary)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Month.Before(result[j].Month)
	})

	return result
}

// ByCard сводки по карточкам, по убыванию чистой прибыли, затем по имени.
func ByCard(sales []entity.Sale) []entity.CardSummary {
	type acc struct {
		summary entity.CardSummary
		rois    []float64
	}

	grouped := make(map[string]*acc)

	for _, sale := range sales {
		key := sale.CardName

		a, ok := grouped[key]
		if !ok {
			a = &acc{summary: entity.CardSummary{CardID: sale.CardID, CardName: sale.CardName}}
			grouped[key] = a
		}

		a.summary.SalesCount++
		a.summary.RevenueCents += sale.SalePriceCents
		a.summary.NetProfitCents += sale.NetProfitCents
		a.rois = append(a.rois, sale.ROI)
	}

	result := make([]entity.CardSummary, 0, len(grouped))

	for _, a := range grouped {
		a.summary.AvgROI = mean(a.rois)
		result = append(result, a.summary)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].NetProfitCents != result[j].NetProfitCents {
			return result[i].NetProfitCents > result[j].NetProfitCents
		}

		return result[i].CardName < result[j].CardName
	})

	return result
}

func summarize(sales []entity.Sale) entity.MonthlySummary {
	var summary entity.MonthlySummary

	rois := make([]float64, 0, len(sales))

	for i, sale := range sales {
		summary.SalesCount++
		summary.RevenueCents += sale.SalePriceCents
		summary.CostCents += sale.CostBasis()
		summary.FeesCents += sale.TotalFeesCents
		summary.ShippingCents += sale.ShippingCents + sale.AdditionalCents
		summary.NetProfitCents += sale.NetProfitCents

		rois = append(rois, sale.ROI)

		if summary.BestSale == nil || sale.NetProfitCents > summary.BestSale.NetProfitCents {
			summary.BestSale = &sales[i]
		}
	}

	if summary.SalesCount == 0 {
		return summary
	}

	summary.AvgProfitCents = decimal.NewFromInt(summary.NetProfitCents).
		Div(decimal.NewFromInt(int64(summary.SalesCount))).
		Round(0).
		IntPart()
	summary.AvgROI = mean(rois)
	summary.MedianROI = median(rois)

	return summary
}

func mean(values []float64) float64 {
	m, err := stats.Mean(values)
	if err != nil {
		return 0
	}

	return round(m)
}

func median(values []float64) float64 {
	m, err := stats.Median(values)
	if err != nil {
		return 0
	}

	return round(m)
}

func round(f float64) float64 {
	return decimal.NewFromFloat(f).Round(roiPlaces).InexactFloat64()
}
