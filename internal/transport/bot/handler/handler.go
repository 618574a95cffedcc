// Package handler команды Telegram бота.
package handler

import (
	"context"

	"card_tracker/internal/domain/entity"
	"card_tracker/internal/domain/service/deal"
	"card_tracker/internal/domain/service/deals"
	"card_tracker/internal/domain/value"
	"card_tracker/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const dealsLimit = 10

type DealsService interface {
	FindDeals(ctx context.Context, query string, criteria deal.Criteria) ([]entity.Deal, error)
	Calculate(params deals.CalculateParams) entity.Breakdown
}

type TrackingService interface {
	Track(ctx context.Context, id value.CardID) (entity.PriceHistory, error)
	Tracked(ctx context.Context) ([]entity.PriceHistory, error)
	Changes(ctx context.Context, threshold *float64) ([]entity.PriceChange, error)
}

type ReportService interface {
	Monthly(ctx context.Context, month value.Month) (entity.MonthlySummary, error)
}

type Refresher interface {
	Start(ctx context.Context) error
	Stop()
	IsRunning() bool
	Refresh(ctx context.Context) (entity.RefreshResult, error)
}

type Handler struct {
	deals     DealsService
	tracking  TrackingService
	report    ReportService
	refresher Refresher

	// ctx фоновых задач, запущенных командами
	baseCtx context.Context //nolint:containedctx
}

func New(
	ctx context.Context,
	dealsSvc DealsService,
	trackingSvc TrackingService,
	reportSvc ReportService,
	refresher Refresher,
) *Handler {
	return &Handler{
		deals:     dealsSvc,
		tracking:  trackingSvc,
		report:    reportSvc,
		refresher: refresher,
		baseCtx:   ctx,
	}
}
