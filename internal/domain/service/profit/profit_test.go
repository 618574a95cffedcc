package profit_test

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"card_tracker/internal/domain/entity"
	"card_tracker/internal/domain/service/profit"
	"card_tracker/pkg/tests"
)

func TestCalculate(t *testing.T) {
	calc := profit.NewCalculator(profit.DefaultConfig())

	testCases := []struct {
		name     string
		purchase int64
		sale     int64
		opts     []profit.Option
		expected entity.Breakdown
	}{
		{
			name:     "typical flip",
			purchase: 5000,
			sale:     7500,
			opts:     []profit.Option{profit.WithShipping(500)},
			expected: entity.Breakdown{
				PurchaseCents:       5000,
				SaleCents:           7500,
				PercentageFeeCents:  975,
				TransactionFeeCents: 30,
				TotalFeesCents:      1005,
				ShippingCents:       500,
				AdditionalCents:     0,
				TotalCostsCents:     6505,
				GrossProfitCents:    2500,
				NetProfitCents:      995,
				ROI:                 19.9,
			},
		},
		{
			name:     "zero purchase",
			purchase: 0,
			sale:     5000,
			expected: entity.Breakdown{
				PurchaseCents:       0,
				SaleCents:           5000,
				PercentageFeeCents:  650,
				TransactionFeeCents: 30,
				TotalFeesCents:      680,
				ShippingCents:       500,
				TotalCostsCents:     1180,
				GrossProfitCents:    5000,
				NetProfitCents:      3820,
				ROI:                 0,
			},
		},
		{
			name:     "buy at eighty percent of a hundred dollars",
			purchase: 8000,
			sale:     10000,
			expected: entity.Breakdown{
				PurchaseCents:       8000,
				SaleCents:           10000,
				PercentageFeeCents:  1300,
				TransactionFeeCents: 30,
				TotalFeesCents:      1330,
				ShippingCents:       500,
				TotalCostsCents:     9830,
				GrossProfitCents:    2000,
				NetProfitCents:      170,
				ROI:                 2.13,
			},
		},
		{
			name:     "fractional cent fee rounds half away from zero",
			purchase: 10,
			sale:     50,
			opts:     []profit.Option{profit.WithShipping(0)},
			expected: entity.Breakdown{
				PurchaseCents:       10,
				SaleCents:           50,
				PercentageFeeCents:  7,
				TransactionFeeCents: 30,
				TotalFeesCents:      37,
				ShippingCents:       0,
				TotalCostsCents:     47,
				GrossProfitCents:    40,
				NetProfitCents:      3,
				ROI:                 30,
			},
		},
		{
			name:     "additional costs and custom shipping",
			purchase: 2000,
			sale:     1999,
			opts:     []profit.Option{profit.WithShipping(350), profit.WithAdditionalCosts(125)},
			expected: entity.Breakdown{
				PurchaseCents:       2000,
				SaleCents:           1999,
				PercentageFeeCents:  260,
				TransactionFeeCents: 30,
				TotalFeesCents:      290,
				ShippingCents:       350,
				AdditionalCents:     125,
				TotalCostsCents:     2765,
				GrossProfitCents:    -1,
				NetProfitCents:      -766,
				ROI:                 -38.3,
			},
		},
		{
			name:     "negative purchase passes through",
			purchase: -1000,
			sale:     1000,
			opts:     []profit.Option{profit.WithShipping(0)},
			expected: entity.Breakdown{
				PurchaseCents:       -1000,
				SaleCents:           1000,
				PercentageFeeCents:  130,
				TransactionFeeCents: 30,
				TotalFeesCents:      160,
				TotalCostsCents:     -840,
				GrossProfitCents:    2000,
				NetProfitCents:      1840,
				ROI:                 0,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			rq.Equal(tc.expected, calc.Calculate(tc.purchase, tc.sale, tc.opts...))
		})
	}
}

func TestCalculateNetProfitInvariant(t *testing.T) {
	calc := profit.NewCalculator(profit.DefaultConfig())

	for purchase := int64(0); purchase <= 20000; purchase += 733 {
		for sale := int64(0); sale <= 30000; sale += 997 {
			b := calc.Calculate(purchase, sale, profit.WithAdditionalCosts(45))
			pct, total := calc.Fees(sale)

			require.Equal(t, sale-purchase-b.ShippingCents-b.AdditionalCents-total, b.NetProfitCents)
			require.Equal(t, pct, b.PercentageFeeCents)
			require.Equal(t, b.PercentageFeeCents+b.TransactionFeeCents, b.TotalFeesCents)
			require.Equal(t, b.SaleCents-b.TotalCostsCents, b.NetProfitCents)

			if purchase == 0 {
				require.Zero(t, b.ROI)
			}
		}
	}
}

func TestCalculateRandomConfig(t *testing.T) {
	random := tests.NewRandomizer()

	for range 500 {
		cfg := profit.Config{
			FeePercent:           math.Round(random.Float64()*2000) / 100,
			TransactionFeeCents:  random.Int64n(100),
			DefaultShippingCents: random.Int64n(1000),
		}
		calc := profit.NewCalculator(cfg)

		purchase := random.Int64n(100000)
		sale := random.Int64n(150000)

		var opts []profit.Option
		if random.Bool() {
			opts = append(opts, profit.WithShipping(random.Int64n(2000)))
		}

		b := calc.Calculate(purchase, sale, opts...)

		exact := float64(sale) * cfg.FeePercent / 100
		require.InDelta(t, exact, float64(b.PercentageFeeCents), 0.501)
		require.Equal(t, cfg.TransactionFeeCents, b.TransactionFeeCents)
		require.Equal(t, b.SaleCents-b.TotalCostsCents, b.NetProfitCents)

		if len(opts) == 0 {
			require.Equal(t, cfg.DefaultShippingCents, b.ShippingCents)
		}

		switch {
		case purchase == 0:
			require.Zero(t, b.ROI)
		case b.NetProfitCents > 0:
			require.GreaterOrEqual(t, b.ROI, 0.0)
		case b.NetProfitCents < 0:
			require.LessOrEqual(t, b.ROI, 0.0)
		}
	}
}

func TestCalculateDeterministic(t *testing.T) {
	rq := require.New(t)

	calc := profit.NewCalculator(profit.DefaultConfig())
	first := calc.Calculate(1234, 5678, profit.WithShipping(99))

	var wg sync.WaitGroup

	results := make([]entity.Breakdown, 32)
	for i := range results {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()
			results[i] = calc.Calculate(1234, 5678, profit.WithShipping(99))
		}(i)
	}

	wg.Wait()

	for _, r := range results {
		rq.Equal(first, r)
	}
}

func TestCustomConfig(t *testing.T) {
	rq := require.New(t)

	calc := profit.NewCalculator(profit.Config{
		FeePercent:           10,
		TransactionFeeCents:  0,
		DefaultShippingCents: 0,
	})

	b := calc.Calculate(1000, 2000)

	rq.Equal(int64(200), b.PercentageFeeCents)
	rq.Equal(int64(200), b.TotalFeesCents)
	rq.Equal(int64(0), b.ShippingCents)
	rq.Equal(int64(800), b.NetProfitCents)
	rq.Equal(80.0, b.ROI)
}

func TestIsProfitable(t *testing.T) {
	rq := require.New(t)

	calc := profit.NewCalculator(profit.DefaultConfig())

	rq.False(calc.IsProfitable(5000, 7500, 20, profit.WithShipping(500)))
	rq.True(calc.IsProfitable(5000, 7500, 19.9, profit.WithShipping(500)))
	rq.True(calc.IsProfitable(5000, 7500, 15))
}

func TestROI(t *testing.T) {
	testCases := []struct {
		name     string
		net      int64
		purchase int64
		expected float64
	}{
		{name: "zero purchase", net: 1000, purchase: 0, expected: 0},
		{name: "negative purchase", net: 1000, purchase: -5, expected: 0},
		{name: "round up", net: 1, purchase: 3, expected: 33.33},
		{name: "round half away from zero", net: 170, purchase: 8000, expected: 2.13},
		{name: "negative", net: -170, purchase: 8000, expected: -2.13},
		{name: "loss of everything", net: -500, purchase: 500, expected: -100},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			rq.Equal(tc.expected, profit.ROI(tc.net, tc.purchase))
		})
	}
}
