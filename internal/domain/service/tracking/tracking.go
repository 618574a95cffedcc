// Package tracking история цен отслеживаемых карточек: снимки, тренды и
// сделки среди отслеживаемых.
package tracking

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"card_tracker/internal/domain/entity"
	"card_tracker/internal/domain/service/deal"
	"card_tracker/internal/domain/value"
	"card_tracker/pkg/contextx"
	"card_tracker/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const (
	DefaultTrendWindow     = 30 * 24 * time.Hour
	DefaultChangeThreshold = 5.0

	defaultConcurrency = 4
	trendPlaces        = 2
)

type Catalog interface {
	Fresh(ctx context.Context, id value.CardID) (entity.Card, error)
}

type HistoryRepository interface {
	Get(ctx context.Context, id value.CardID) (entity.PriceHistory, error)
	List(ctx context.Context) ([]entity.PriceHistory, error)
	Append(ctx context.Context, card entity.Card, snapshot entity.PriceSnapshot) (entity.PriceHistory, error)
	Prune(ctx context.Context, before time.Time) (int, error)
}

type TrackingService struct {
	catalog   Catalog
	history   HistoryRepository
	evaluator deal.Evaluator

	window      time.Duration
	threshold   float64
	concurrency int
	now         func() time.Time
}

func NewTrackingService(catalog Catalog, history HistoryRepository, evaluator deal.Evaluator) *TrackingService {
	return &TrackingService{
		catalog:     catalog,
		history:     history,
		evaluator:   evaluator,
		window:      DefaultTrendWindow,
		threshold:   DefaultChangeThreshold,
		concurrency: defaultConcurrency,
		now:         time.Now,
	}
}

func (s *TrackingService) WithTrendWindow(window time.Duration) *TrackingService {
	if window > 0 {
		s.window = window
	}

	return s
}

func (s *TrackingService) WithChangeThreshold(threshold float64) *TrackingService {
	s.threshold = threshold
	return s
}

// WithConcurrency сколько карточек обновлять одновременно.
func (s *TrackingService) WithConcurrency(n int) *TrackingService {
	if n > 0 {
		s.concurrency = n
	}

	return s
}

func (s *TrackingService) WithClock(now func() time.Time) *TrackingService {
	s.now = now
	return s
}

// Track снимает текущие цены карточки из каталога. Карточка начинает
// отслеживаться, если ещё не отслеживалась.
func (s *TrackingService) Track(ctx context.Context, id value.CardID) (entity.PriceHistory, error) {
	card, err := s.catalog.Fresh(ctx, id)
	if err != nil {
		return entity.PriceHistory{}, fmt.Errorf("catalog.Fresh: %w", err)
	}

	history, err := s.history.Append(ctx, card, entity.PriceSnapshot{
		Timestamp:   s.now().UTC(),
		Prices:      card.Prices,
		SalesVolume: card.SalesVolume,
	})
	if err != nil {
		return entity.PriceHistory{}, fmt.Errorf("history.Append: %w", err)
	}

	logger(ctx).Debug("price snapshot saved",
		logx.FieldCardID, id.String(),
		"snapshots", len(history.Snapshots),
	)

	return history, nil
}

// RefreshAll снимает цены всех отслеживаемых карточек. Ошибка по одной
// карточке учитывается в Failed и не прерывает обновление остальных.
// Deals сделки среди отслеживаемых после обновления.
func (s *TrackingService) RefreshAll(ctx context.Context, criteria deal.Criteria) (entity.RefreshResult, error) {
	histories, err := s.history.List(ctx)
	if err != nil {
		return entity.RefreshResult{}, fmt.Errorf("history.List: %w", err)
	}

	var (
		mu     sync.Mutex
		result entity.RefreshResult
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, h := range histories {
		g.Go(func() error {
			_, trackErr := s.Track(gCtx, h.Card.ID)

			mu.Lock()
			defer mu.Unlock()

			if trackErr != nil {
				result.Failed++

				logger(ctx).Warn("price refresh failed",
					logx.FieldCardID, h.Card.ID.String(),
					logx.FieldError, trackErr,
				)

				return nil
			}

			result.Updated++

			return nil
		})
	}

	_ = g.Wait()

	if err = ctx.Err(); err != nil {
		return result, err
	}

	result.Deals, err = s.TrackedDeals(ctx, criteria)
	if err != nil {
		return result, err
	}

	logger(ctx).Info("tracked prices refreshed",
		"updated", result.Updated,
		"failed", result.Failed,
		"deals", len(result.Deals),
	)

	return result, nil
}

// Tracked отслеживаемые карточки по имени.
func (s *TrackingService) Tracked(ctx context.Context) ([]entity.PriceHistory, error) {
	histories, err := s.history.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("history.List: %w", err)
	}

	return histories, nil
}

// Trend изменение цены карточки за окно в процентах. Nil, если данных
// недостаточно.
func (s *TrackingService) Trend(ctx context.Context, id value.CardID) (*float64, error) {
	history, err := s.history.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("history.Get: %w", err)
	}

	return Trend(history, s.now().Add(-s.window)), nil
}

// Changes карточки, чья цена за окно изменилась больше чем на threshold
// процентов в любую сторону. Nil threshold означает порог по умолчанию.
func (s *TrackingService) Changes(ctx context.Context, threshold *float64) ([]entity.PriceChange, error) {
	limit := s.threshold
	if threshold != nil {
		limit = *threshold
	}

	histories, err := s.history.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("history.List: %w", err)
	}

	return Changes(histories, s.now().Add(-s.window), limit), nil
}

// TrackedDeals оценивает последние снимки отслеживаемых карточек. Каждая
// сделка помечена трендом цены.
func (s *TrackingService) TrackedDeals(ctx context.Context, criteria deal.Criteria) ([]entity.Deal, error) {
	histories, err := s.history.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("history.List: %w", err)
	}

	from := s.now().Add(-s.window)

	candidates := make([]entity.Candidate, 0, len(histories))
	trends := make(map[value.CardID]*float64, len(histories))

	for _, h := range histories {
		latest, ok := h.Latest()
		if !ok {
			continue
		}

		card := h.Card
		card.Prices = latest.Prices

		candidates = append(candidates, entity.NewCandidate(card))
		trends[card.ID] = Trend(h, from)
	}

	deals := s.evaluator.Evaluate(candidates, criteria)
	for i := range deals {
		deals[i].TrendPercent = trends[deals[i].Card.ID]
	}

	return deals, nil
}

// Prune удаляет снимки старше retention.
func (s *TrackingService) Prune(ctx context.Context, retention time.Duration) (int, error) {
	removed, err := s.history.Prune(ctx, s.now().Add(-retention))
	if err != nil {
		return 0, fmt.Errorf("history.Prune: %w", err)
	}

	return removed, nil
}

// Trend процент изменения ungraded цены от самого старого снимка не раньше
// from до последнего, с точностью до сотых. Nil, если таких снимков меньше
// двух или самая старая цена нулевая.
func Trend(history entity.PriceHistory, from time.Time) *float64 {
	snapshots := history.Since(from)
	if len(snapshots) < 2 {
		return nil
	}

	oldest := snapshots[0].Prices.Ungraded
	latest := snapshots[len(snapshots)-1].Prices.Ungraded

	if oldest == 0 {
		return nil
	}

	trend := decimal.NewFromInt(latest - oldest).
		Div(decimal.NewFromInt(oldest)).
		Mul(decimal.NewFromInt(100)).
		Round(trendPlaces).
		InexactFloat64()

	return &trend
}

func Changes(histories []entity.PriceHistory, from time.Time, threshold float64) []entity.PriceChange {
	changes := make([]entity.PriceChange, 0)

	for _, h := range histories {
		trend := Trend(h, from)
		if trend == nil || math.Abs(*trend) <= threshold {
			continue
		}

		snapshots := h.Since(from)

		changes = append(changes, entity.PriceChange{
			CardID:       h.Card.ID,
			CardName:     h.Card.Name,
			OldestCents:  snapshots[0].Prices.Ungraded,
			LatestCents:  snapshots[len(snapshots)-1].Prices.Ungraded,
			TrendPercent: *trend,
		})
	}

	sort.SliceStable(changes, func(i, j int) bool {
		return math.Abs(changes[i].TrendPercent) > math.Abs(changes[j].TrendPercent)
	})

	return changes
}
