package profit_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"card_tracker/internal/domain/entity"
	"card_tracker/internal/domain/service/profit"
)

func TestAnalyze(t *testing.T) {
	calc := profit.NewCalculator(profit.DefaultConfig())

	testCases := []struct {
		name             string
		market           int64
		asking           int64
		minROI           float64
		expectedRec      entity.Recommendation
		expectedDiscount float64
		expectedMeets    bool
	}{
		{
			name:             "deep discount",
			market:           10000,
			asking:           5000,
			minROI:           20,
			expectedRec:      entity.RecommendationStrongBuy,
			expectedDiscount: 50,
			expectedMeets:    true,
		},
		{
			name:             "buy",
			market:           10000,
			asking:           6500,
			minROI:           20,
			expectedRec:      entity.RecommendationBuy,
			expectedDiscount: 35,
			expectedMeets:    true,
		},
		{
			name:             "maybe",
			market:           10000,
			asking:           7000,
			minROI:           20,
			expectedRec:      entity.RecommendationMaybe,
			expectedDiscount: 30,
			expectedMeets:    false,
		},
		{
			name:             "pass",
			market:           10000,
			asking:           9000,
			minROI:           20,
			expectedRec:      entity.RecommendationPass,
			expectedDiscount: 10,
			expectedMeets:    false,
		},
		{
			name:             "no market value",
			market:           0,
			asking:           1000,
			minROI:           20,
			expectedRec:      entity.RecommendationPass,
			expectedDiscount: 0,
			expectedMeets:    false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			a := calc.Analyze(tc.market, tc.asking, tc.minROI)

			rq.Equal(tc.expectedRec, a.Recommendation)
			rq.Equal(tc.expectedDiscount, a.DiscountPercent)
			rq.Equal(tc.expectedMeets, a.MeetsMinimumROI)
			rq.Equal(calc.Calculate(tc.asking, tc.market), a.Breakdown)
		})
	}
}

func TestRecommend(t *testing.T) {
	rq := require.New(t)

	rq.Equal(entity.RecommendationStrongBuy, profit.Recommend(30, 20))
	rq.Equal(entity.RecommendationBuy, profit.Recommend(29.99, 20))
	rq.Equal(entity.RecommendationBuy, profit.Recommend(20, 20))
	rq.Equal(entity.RecommendationMaybe, profit.Recommend(10, 20))
	rq.Equal(entity.RecommendationPass, profit.Recommend(9.99, 20))
}
