package profit

import (
	"github.com/shopspring/decimal"

	"card_tracker/internal/domain/entity"
)

const (
	strongBuyFactor = 1.5
	maybeFactor     = 0.5
)

// Analyze оценивает предложение купить карточку за askingPrice при рыночной
// цене marketValue, предполагая продажу по рынку.
func (c Calculator) Analyze(marketValueCents, askingPriceCents int64, minROI float64, opts ...Option) entity.Analysis {
	b := c.Calculate(askingPriceCents, marketValueCents, opts...)

	return entity.Analysis{
		MarketValueCents: marketValueCents,
		AskingPriceCents: askingPriceCents,
		DiscountPercent:  DiscountPercent(marketValueCents, askingPriceCents),
		Breakdown:        b,
		MeetsMinimumROI:  b.ROI >= minROI,
		Recommendation:   Recommend(b.ROI, minROI),
	}
}

func Recommend(roi, minROI float64) entity.Recommendation {
	switch {
	case roi >= minROI*strongBuyFactor:
		return entity.RecommendationStrongBuy
	case roi >= minROI:
		return entity.RecommendationBuy
	case roi >= minROI*maybeFactor:
		return entity.RecommendationMaybe
	default:
		return entity.RecommendationPass
	}
}

// DiscountPercent скидка цены предложения к рынку, два знака. 0 без рыночной цены.
func DiscountPercent(marketValueCents, askingPriceCents int64) float64 {
	if marketValueCents <= 0 {
		return 0
	}

	return decimal.NewFromInt(marketValueCents - askingPriceCents).
		Div(decimal.NewFromInt(marketValueCents)).
		Mul(hundred).
		Round(roiPlaces).
		InexactFloat64()
}
