package server

import (
	"context"
	"fmt"
	"net/http"

	"card_tracker/internal/domain/entity"
	"card_tracker/internal/domain/service/deal"
	"card_tracker/internal/domain/value"
	"card_tracker/pkg/httpx/reply"
	"card_tracker/pkg/httpx/req"
	"card_tracker/pkg/lox"
	"card_tracker/pkg/rest"
)

type trackingService interface {
	Track(ctx context.Context, id value.CardID) (entity.PriceHistory, error)
	RefreshAll(ctx context.Context, criteria deal.Criteria) (entity.RefreshResult, error)
	Trend(ctx context.Context, id value.CardID) (*float64, error)
	Changes(ctx context.Context, threshold *float64) ([]entity.PriceChange, error)
	TrackedDeals(ctx context.Context, criteria deal.Criteria) ([]entity.Deal, error)
}

type TrackingServer struct {
	trackingService trackingService
}

func NewTrackingServer(trackingService trackingService) TrackingServer {
	return TrackingServer{
		trackingService: trackingService,
	}
}

func (s TrackingServer) postV1Tracked(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.TrackRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	history, err := s.trackingService.Track(ctx, value.CardID(request.CardID))
	if err != nil {
		return fmt.Errorf("trackingService.Track: %w", err)
	}

	reply.JSON(ctx, w, http.StatusCreated, newRESTPriceHistory(history))

	return nil
}

func (s TrackingServer) postV1TrackedRefresh(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	criteria, err := criteriaFromQuery(r)
	if err != nil {
		return err
	}

	result, err := s.trackingService.RefreshAll(ctx, criteria)
	if err != nil {
		return fmt.Errorf("trackingService.RefreshAll: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTRefreshResult(result))

	return nil
}

func (s TrackingServer) getV1TrackedDeals(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	criteria, err := criteriaFromQuery(r)
	if err != nil {
		return err
	}

	found, err := s.trackingService.TrackedDeals(ctx, criteria)
	if err != nil {
		return fmt.Errorf("trackingService.TrackedDeals: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, lox.Map(found, newRESTDeal))

	return nil
}

func (s TrackingServer) getV1TrackedChanges(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	threshold, err := queryFloat(r, "threshold")
	if err != nil {
		return err
	}

	changes, err := s.trackingService.Changes(ctx, threshold)
	if err != nil {
		return fmt.Errorf("trackingService.Changes: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, lox.Map(changes, newRESTPriceChange))

	return nil
}

func (s TrackingServer) getV1TrackedTrend(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	id := value.CardID(r.PathValue("id"))

	trend, err := s.trackingService.Trend(ctx, id)
	if err != nil {
		return fmt.Errorf("trackingService.Trend: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.TrendResponse{
		CardID:       id.String(),
		TrendPercent: trend,
	})

	return nil
}
