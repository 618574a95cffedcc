// Package worker фоновое обновление цен отслеживаемых карточек.
package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"card_tracker/internal/domain/entity"
	"card_tracker/internal/domain/service/deal"
	"card_tracker/internal/domain/value"
	"card_tracker/pkg/contextx"
	"card_tracker/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const defaultInterval = time.Hour

type Tracker interface {
	RefreshAll(ctx context.Context, criteria deal.Criteria) (entity.RefreshResult, error)
	Prune(ctx context.Context, retention time.Duration) (int, error)
}

type PriceRefresher struct {
	tracker  Tracker
	deals    chan<- entity.Deal
	criteria deal.Criteria

	interval  time.Duration
	retention time.Duration

	// уже отправленные сделки: карточка -> цена покупки
	notified map[value.CardID]int64
	cycleMu  sync.Mutex

	mu         sync.Mutex
	cancelFunc context.CancelFunc
	isRunning  bool
	wg         sync.WaitGroup
}

// NewPriceRefresher deals может быть nil, тогда найденные сделки только логируются.
func NewPriceRefresher(tracker Tracker, deals chan<- entity.Deal) *PriceRefresher {
	return &PriceRefresher{
		tracker:  tracker,
		deals:    deals,
		interval: defaultInterval,
		notified: make(map[value.CardID]int64),
	}
}

func (w *PriceRefresher) WithInterval(interval time.Duration) *PriceRefresher {
	if interval > 0 {
		w.interval = interval
	}

	return w
}

func (w *PriceRefresher) WithCriteria(criteria deal.Criteria) *PriceRefresher {
	w.criteria = criteria
	return w
}

// WithRetention снимки старше retention удаляются после каждого цикла.
// Ноль отключает очистку.
func (w *PriceRefresher) WithRetention(retention time.Duration) *PriceRefresher {
	w.retention = retention
	return w
}

func (w *PriceRefresher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isRunning {
		return errors.New("refresher is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	w.cancelFunc = cancel
	w.isRunning = true

	w.wg.Add(1)

	go func() {
		defer w.wg.Done()
		defer func() {
			w.mu.Lock()
			w.isRunning = false
			w.cancelFunc = nil
			w.mu.Unlock()
		}()

		if err := w.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger(ctx).Error("refresher stopped with error", logx.FieldError, err)
		}
	}()

	return nil
}

func (w *PriceRefresher) Stop() {
	w.mu.Lock()

	if !w.isRunning {
		w.mu.Unlock()
		return
	}

	if w.cancelFunc != nil {
		w.cancelFunc()
	}
	w.mu.Unlock()

	w.wg.Wait()
}

func (w *PriceRefresher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.isRunning
}

// Run обновляет цены сразу и затем каждые interval до отмены ctx.
func (w *PriceRefresher) Run(ctx context.Context) error {
	logger(ctx).Info("price refresher started", "interval", w.interval.String())

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if _, err := w.Refresh(ctx); err != nil && ctx.Err() == nil {
			logger(ctx).Error("price refresh failed", logx.FieldError, err)
		}

		select {
		case <-ctx.Done():
			logger(ctx).Info("price refresher stopped")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Refresh один цикл обновления. Новые сделки отправляются в канал.
func (w *PriceRefresher) Refresh(ctx context.Context) (entity.RefreshResult, error) {
	w.cycleMu.Lock()
	defer w.cycleMu.Unlock()

	result, err := w.tracker.RefreshAll(ctx, w.criteria)
	if err != nil {
		return result, err
	}

	if w.retention > 0 {
		removed, pruneErr := w.tracker.Prune(ctx, w.retention)
		if pruneErr != nil {
			logger(ctx).Warn("price history prune failed", logx.FieldError, pruneErr)
		} else if removed > 0 {
			logger(ctx).Info("price history pruned", logx.FieldCount, removed)
		}
	}

	fresh := w.fresh(result.Deals)

	if len(fresh) > 0 {
		logger(ctx).Info("new deals found", logx.FieldCount, len(fresh))
	}

	if w.deals == nil {
		return result, nil
	}

	for _, d := range fresh {
		select {
		case w.deals <- d:
		case <-ctx.Done():
			return result, ctx.Err()
		}
	}

	return result, nil
}

// fresh сделки, о которых ещё не сообщали по той же цене покупки.
// Карточки, выпавшие из сделок, забываются.
func (w *PriceRefresher) fresh(deals []entity.Deal) []entity.Deal {
	result := make([]entity.Deal, 0, len(deals))
	current := make(map[value.CardID]int64, len(deals))

	for _, d := range deals {
		current[d.Card.ID] = d.BuyPriceCents

		if price, ok := w.notified[d.Card.ID]; ok && price == d.BuyPriceCents {
			continue
		}

		result = append(result, d)
	}

	w.notified = current

	return result
}
