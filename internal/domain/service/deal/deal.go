// Package deal отбирает и ранжирует выгодные для перепродажи карточки.
package deal

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"card_tracker/internal/domain/entity"
	"card_tracker/internal/domain/service/profit"
)

const (
	DefaultBuyPriceRatio = 0.80
	DefaultMinROI        = 20.0
)

type Config struct {
	BuyPriceRatio float64
	DefaultMinROI float64
}

func DefaultConfig() Config {
	return Config{
		BuyPriceRatio: DefaultBuyPriceRatio,
		DefaultMinROI: DefaultMinROI,
	}
}

// Criteria фильтры одного запроса. Nil поля означают значение по умолчанию
// или отсутствие фильтра.
type Criteria struct {
	MinROI        *float64
	MaxPriceCents *int64
	Category      string
}

type Evaluator struct {
	calc     profit.Calculator
	cfg      Config
	buyRatio decimal.Decimal
}

func NewEvaluator(calc profit.Calculator, cfg Config) Evaluator {
	return Evaluator{
		calc:     calc,
		cfg:      cfg,
		buyRatio: decimal.NewFromFloat(cfg.BuyPriceRatio),
	}
}

func (e Evaluator) Config() Config {
	return e.cfg
}

// BuyPrice рекомендуемая цена покупки, округлённая до цента.
func (e Evaluator) BuyPrice(marketValueCents int64) int64 {
	return decimal.NewFromInt(marketValueCents).Mul(e.buyRatio).Round(0).IntPart()
}

// Evaluate возвращает прошедшие фильтры сделки, отсортированные по ROI по
// убыванию. При равном ROI сохраняется порядок входа.
func (e Evaluator) Evaluate(candidates []entity.Candidate, criteria Criteria) []entity.Deal {
	minROI := e.cfg.DefaultMinROI
	if criteria.MinROI != nil {
		minROI = *criteria.MinROI
	}

	category := strings.ToLower(strings.TrimSpace(criteria.Category))

	deals := make([]entity.Deal, 0, len(candidates))

	for _, c := range candidates {
		if c.MarketValueCents <= 0 {
			continue
		}

		if category != "" && !strings.Contains(strings.ToLower(c.Card.Genre), category) {
			continue
		}

		buy := e.BuyPrice(c.MarketValueCents)
		if criteria.MaxPriceCents != nil && buy > *criteria.MaxPriceCents {
			continue
		}

		b := e.calc.Calculate(buy, c.MarketValueCents)
		if b.ROI < minROI {
			continue
		}

		deals = append(deals, entity.Deal{
			Card:           c.Card,
			BuyPriceCents:  buy,
			SalePriceCents: c.MarketValueCents,
			Breakdown:      b,
		})
	}

	SortByROI(deals)

	return deals
}

func SortByROI(deals []entity.Deal) {
	sort.SliceStable(deals, func(i, j int) bool {
		return deals[i].Breakdown.ROI > deals[j].Breakdown.ROI
	})
}

// CompareConditions экономика покупки по каждому состоянию с известной ценой,
// в фиксированном порядке состояний.
func (e Evaluator) CompareConditions(prices entity.Prices) []entity.ConditionDeal {
	graded := []struct {
		condition entity.Condition
		cents     int64
	}{
		{entity.ConditionUngraded, prices.Ungraded},
		{entity.ConditionPSA10, prices.PSA10},
		{entity.ConditionGrade9, prices.Grade9},
		{entity.ConditionGrade8, prices.Grade8},
		{entity.ConditionBGS10, prices.BGS10},
		{entity.ConditionCGC10, prices.CGC10},
		{entity.ConditionSGC10, prices.SGC10},
	}

	result := make([]entity.ConditionDeal, 0, len(graded))

	for _, g := range graded {
		if g.cents <= 0 {
			continue
		}

		buy := e.BuyPrice(g.cents)

		result = append(result, entity.ConditionDeal{
			Condition:        g.condition,
			MarketValueCents: g.cents,
			BuyPriceCents:    buy,
			Breakdown:        e.calc.Calculate(buy, g.cents),
		})
	}

	return result
}
