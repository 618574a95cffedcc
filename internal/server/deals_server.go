package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"card_tracker/internal/domain/entity"
	"card_tracker/internal/domain/service/deal"
	"card_tracker/internal/domain/service/deals"
	"card_tracker/internal/domain/value"
	"card_tracker/pkg/errcodes"
	"card_tracker/pkg/httpx/reply"
	"card_tracker/pkg/httpx/req"
	"card_tracker/pkg/lox"
	"card_tracker/pkg/rest"
)

type catalogService interface {
	Search(ctx context.Context, query, category string, limit int) ([]entity.Card, error)
}

type dealsService interface {
	FindDeals(ctx context.Context, query string, criteria deal.Criteria) ([]entity.Deal, error)
	Calculate(params deals.CalculateParams) entity.Breakdown
	Analyze(marketValueCents, askingPriceCents int64, minROI *float64, shippingCents *int64) entity.Analysis
	CompareConditions(ctx context.Context, id value.CardID) (entity.Card, []entity.ConditionDeal, error)
}

// DealsServer поиск по каталогу, сделки и калькулятор.
type DealsServer struct {
	catalogService catalogService
	dealsService   dealsService
}

func NewDealsServer(catalogService catalogService, dealsService dealsService) DealsServer {
	return DealsServer{
		catalogService: catalogService,
		dealsService:   dealsService,
	}
}

func (s DealsServer) getV1Search(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	q := r.URL.Query()

	limit := 0

	if raw := q.Get("limit"); raw != "" {
		var err error

		limit, err = strconv.Atoi(raw)
		if err != nil {
			return invalidArgument(fmt.Errorf("strconv.Atoi: %w", err), errcodes.ValidationError, "limit must be an integer")
		}
	}

	cards, err := s.catalogService.Search(ctx, q.Get("q"), q.Get("category"), limit)
	if err != nil {
		return fmt.Errorf("catalogService.Search: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, lox.Map(cards, newRESTCard))

	return nil
}

func (s DealsServer) getV1Deals(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	criteria, err := criteriaFromQuery(r)
	if err != nil {
		return err
	}

	found, err := s.dealsService.FindDeals(ctx, r.URL.Query().Get("q"), criteria)
	if err != nil {
		return fmt.Errorf("dealsService.FindDeals: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, lox.Map(found, newRESTDeal))

	return nil
}

func (s DealsServer) postV1Calculator(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.CalculateRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	b := s.dealsService.Calculate(deals.CalculateParams{
		PurchaseCents:   *request.PurchasePriceCents,
		SaleCents:       *request.SalePriceCents,
		ShippingCents:   request.ShippingCents,
		AdditionalCents: request.AdditionalCents,
	})

	reply.JSON(ctx, w, http.StatusOK, newRESTBreakdown(b))

	return nil
}

func (s DealsServer) postV1CalculatorAnalyze(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.AnalyzeRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	analysis := s.dealsService.Analyze(
		*request.MarketValueCents,
		*request.AskingPriceCents,
		request.MinROI,
		request.ShippingCents,
	)

	reply.JSON(ctx, w, http.StatusOK, newRESTAnalysis(analysis))

	return nil
}

func (s DealsServer) getV1CardConditions(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	card, conditions, err := s.dealsService.CompareConditions(ctx, value.CardID(r.PathValue("id")))
	if err != nil {
		return fmt.Errorf("dealsService.CompareConditions: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.ConditionsResponse{
		Card:       newRESTCard(card),
		Conditions: lox.Map(conditions, newRESTConditionDeal),
	})

	return nil
}
