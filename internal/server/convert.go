package server

import (
	"card_tracker/internal/domain/entity"
	"card_tracker/internal/domain/value"
	"card_tracker/pkg/lox"
	"card_tracker/pkg/rest"
)

func newRESTPrices(p entity.Prices) rest.Prices {
	return rest.Prices{
		Ungraded: p.Ungraded,
		PSA10:    p.PSA10,
		Grade9:   p.Grade9,
		Grade8:   p.Grade8,
		Grade7:   p.Grade7,
		BGS10:    p.BGS10,
		CGC10:    p.CGC10,
		SGC10:    p.SGC10,
	}
}

func newRESTCard(c entity.Card) rest.Card {
	return rest.Card{
		ID:          c.ID.String(),
		Name:        c.Name,
		Set:         c.Set,
		Genre:       c.Genre,
		ReleaseDate: c.ReleaseDate,
		Year:        c.Year,
		Prices:      newRESTPrices(c.Prices),
		SalesVolume: c.SalesVolume,
	}
}

func newRESTBreakdown(b entity.Breakdown) rest.Breakdown {
	return rest.Breakdown{
		PurchaseCents:       b.PurchaseCents,
		SaleCents:           b.SaleCents,
		PercentageFeeCents:  b.PercentageFeeCents,
		TransactionFeeCents: b.TransactionFeeCents,
		TotalFeesCents:      b.TotalFeesCents,
		ShippingCents:       b.ShippingCents,
		AdditionalCents:     b.AdditionalCents,
		TotalCostsCents:     b.TotalCostsCents,
		GrossProfitCents:    b.GrossProfitCents,
		NetProfitCents:      b.NetProfitCents,
		ROI:                 b.ROI,
	}
}

func newRESTDeal(d entity.Deal) rest.Deal {
	return rest.Deal{
		Card:           newRESTCard(d.Card),
		BuyPriceCents:  d.BuyPriceCents,
		SalePriceCents: d.SalePriceCents,
		Breakdown:      newRESTBreakdown(d.Breakdown),
		TrendPercent:   d.TrendPercent,
	}
}

func newRESTAnalysis(a entity.Analysis) rest.Analysis {
	return rest.Analysis{
		MarketValueCents: a.MarketValueCents,
		AskingPriceCents: a.AskingPriceCents,
		DiscountPercent:  a.DiscountPercent,
		Breakdown:        newRESTBreakdown(a.Breakdown),
		MeetsMinimumROI:  a.MeetsMinimumROI,
		Recommendation:   string(a.Recommendation),
	}
}

func newRESTConditionDeal(c entity.ConditionDeal) rest.ConditionDeal {
	return rest.ConditionDeal{
		Condition:        string(c.Condition),
		MarketValueCents: c.MarketValueCents,
		BuyPriceCents:    c.BuyPriceCents,
		Breakdown:        newRESTBreakdown(c.Breakdown),
	}
}

func newRESTPriceHistory(h entity.PriceHistory) rest.PriceHistory {
	return rest.PriceHistory{
		Card:         newRESTCard(h.Card),
		FirstTracked: h.FirstTracked,
		LastUpdated:  h.LastUpdated,
		Snapshots: lox.Map(h.Snapshots, func(s entity.PriceSnapshot) rest.PriceSnapshot {
			return rest.PriceSnapshot{
				Timestamp:   s.Timestamp,
				Prices:      newRESTPrices(s.Prices),
				SalesVolume: s.SalesVolume,
			}
		}),
	}
}

func newRESTRefreshResult(r entity.RefreshResult) rest.RefreshResult {
	return rest.RefreshResult{
		Updated: r.Updated,
		Failed:  r.Failed,
		Deals:   lox.Map(r.Deals, newRESTDeal),
	}
}

func newRESTPriceChange(c entity.PriceChange) rest.PriceChange {
	return rest.PriceChange{
		CardID:       c.CardID.String(),
		CardName:     c.CardName,
		OldestCents:  c.OldestCents,
		LatestCents:  c.LatestCents,
		TrendPercent: c.TrendPercent,
	}
}

func newRESTInventoryItem(item entity.InventoryItem) rest.InventoryItem {
	result := rest.InventoryItem{
		ID:                 item.ID.String(),
		CardID:             item.CardID.String(),
		CardName:           item.CardName,
		Condition:          item.Condition,
		PurchasePriceCents: item.PurchasePriceCents,
		Quantity:           item.Units(),
		CostBasisCents:     item.CostBasis(),
		PurchaseDate:       item.PurchaseDate.String(),
		Notes:              item.Notes,
		Sold:               item.Sold,
		CreatedAt:          item.CreatedAt,
		UpdatedAt:          item.UpdatedAt,
	}

	if item.Sale != nil {
		result.Sale = &rest.SaleDetails{
			SalePriceCents:      item.Sale.SalePriceCents,
			PercentageFeeCents:  item.Sale.PercentageFeeCents,
			TransactionFeeCents: item.Sale.TransactionFeeCents,
			TotalFeesCents:      item.Sale.TotalFeesCents,
			ShippingCents:       item.Sale.ShippingCents,
			AdditionalCents:     item.Sale.AdditionalCents,
			NetProfitCents:      item.Sale.NetProfitCents,
			ROI:                 item.Sale.ROI,
			SaleDate:            item.Sale.SaleDate.String(),
		}
	}

	return result
}

func newRESTSale(s entity.Sale) rest.Sale {
	return rest.Sale{
		ID:                  s.ID.String(),
		InventoryID:         s.InventoryID.String(),
		CardID:              s.CardID.String(),
		CardName:            s.CardName,
		Condition:           s.Condition,
		PurchasePriceCents:  s.PurchasePriceCents,
		Quantity:            max(s.Quantity, 1),
		CostBasisCents:      s.CostBasis(),
		PurchaseDate:        s.PurchaseDate.String(),
		SalePriceCents:      s.SalePriceCents,
		PercentageFeeCents:  s.PercentageFeeCents,
		TransactionFeeCents: s.TransactionFeeCents,
		TotalFeesCents:      s.TotalFeesCents,
		ShippingCents:       s.ShippingCents,
		AdditionalCents:     s.AdditionalCents,
		NetProfitCents:      s.NetProfitCents,
		ROI:                 s.ROI,
		SaleDate:            s.SaleDate.String(),
		CreatedAt:           s.CreatedAt,
	}
}

func newRESTMonthlySummary(m entity.MonthlySummary) rest.MonthlySummary {
	result := rest.MonthlySummary{
		SalesCount:     m.SalesCount,
		RevenueCents:   m.RevenueCents,
		CostCents:      m.CostCents,
		FeesCents:      m.FeesCents,
		ShippingCents:  m.ShippingCents,
		NetProfitCents: m.NetProfitCents,
		AvgProfitCents: m.AvgProfitCents,
		AvgROI:         m.AvgROI,
		MedianROI:      m.MedianROI,
	}

	if m.Month != (value.Month{}) {
		result.Month = m.Month.String()
	}

	if m.BestSale != nil {
		best := newRESTSale(*m.BestSale)
		result.BestSale = &best
	}

	return result
}

func newRESTSummary(s entity.Summary) rest.Summary {
	return rest.Summary{
		Months: lox.Map(s.Months, newRESTMonthlySummary),
		Cards: lox.Map(s.Cards, func(c entity.CardSummary) rest.CardSummary {
			return rest.CardSummary{
				CardID:         c.CardID.String(),
				CardName:       c.CardName,
				SalesCount:     c.SalesCount,
				RevenueCents:   c.RevenueCents,
				NetProfitCents: c.NetProfitCents,
				AvgROI:         c.AvgROI,
			}
		}),
		Total: newRESTMonthlySummary(s.Total),
	}
}
