// Package deals связывает каталог, калькулятор и оценщик сделок в операции,
// доступные через API.
package deals

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"card_tracker/internal/domain/entity"
	"card_tracker/internal/domain/service/deal"
	"card_tracker/internal/domain/service/profit"
	"card_tracker/internal/domain/value"
	"card_tracker/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

var (
	candidatesEvaluated = promauto.NewCounter(prometheus.CounterOpts{ //nolint:gochecknoglobals // skip
		Name: "deals_candidates_evaluated_total",
		Help: "Catalog candidates passed through the deal evaluator.",
	})
	dealsFound = promauto.NewCounter(prometheus.CounterOpts{ //nolint:gochecknoglobals // skip
		Name: "deals_found_total",
		Help: "Candidates that passed the ROI and price filters.",
	})
)

type Catalog interface {
	Search(ctx context.Context, query, category string, limit int) ([]entity.Card, error)
	Product(ctx context.Context, id value.CardID) (entity.Card, error)
}

// CalculateParams nil Shipping означает доставку по умолчанию.
type CalculateParams struct {
	PurchaseCents   int64
	SaleCents       int64
	ShippingCents   *int64
	AdditionalCents *int64
}

type DealsService struct {
	catalog   Catalog
	calc      profit.Calculator
	evaluator deal.Evaluator
	limit     int
}

func NewDealsService(catalog Catalog, calc profit.Calculator, evaluator deal.Evaluator) *DealsService {
	return &DealsService{
		catalog:   catalog,
		calc:      calc,
		evaluator: evaluator,
	}
}

// WithSearchLimit сколько карточек запрашивать у каталога для поиска сделок.
func (s *DealsService) WithSearchLimit(limit int) *DealsService {
	s.limit = limit
	return s
}

// FindDeals ищет карточки по запросу и возвращает выгодные, лучшие первыми.
// Фильтр по категории применяет оценщик.
func (s *DealsService) FindDeals(ctx context.Context, query string, criteria deal.Criteria) ([]entity.Deal, error) {
	cards, err := s.catalog.Search(ctx, query, "", s.limit)
	if err != nil {
		return nil, fmt.Errorf("catalog.Search: %w", err)
	}

	found := s.evaluator.Evaluate(entity.NewCandidates(cards), criteria)

	candidatesEvaluated.Add(float64(len(cards)))
	dealsFound.Add(float64(len(found)))

	logger(ctx).Info("deals evaluated",
		"query", query,
		"candidates", len(cards),
		"deals", len(found),
	)

	return found, nil
}

func (s *DealsService) Calculate(params CalculateParams) entity.Breakdown {
	return s.calc.Calculate(params.PurchaseCents, params.SaleCents, options(params.ShippingCents, params.AdditionalCents)...)
}

// Analyze minROI nil означает порог оценщика по умолчанию.
func (s *DealsService) Analyze(marketValueCents, askingPriceCents int64, minROI *float64, shippingCents *int64) entity.Analysis {
	threshold := s.evaluator.Config().DefaultMinROI
	if minROI != nil {
		threshold = *minROI
	}

	return s.calc.Analyze(marketValueCents, askingPriceCents, threshold, options(shippingCents, nil)...)
}

func (s *DealsService) CompareConditions(ctx context.Context, id value.CardID) (entity.Card, []entity.ConditionDeal, error) {
	card, err := s.catalog.Product(ctx, id)
	if err != nil {
		return entity.Card{}, nil, fmt.Errorf("catalog.Product: %w", err)
	}

	return card, s.evaluator.CompareConditions(card.Prices), nil
}

func options(shippingCents, additionalCents *int64) []profit.Option {
	var opts []profit.Option

	if shippingCents != nil {
		opts = append(opts, profit.WithShipping(*shippingCents))
	}

	if additionalCents != nil {
		opts = append(opts, profit.WithAdditionalCosts(*additionalCents))
	}

	return opts
}
