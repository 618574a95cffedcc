package entity

import (
	"time"

	"card_tracker/internal/domain/value"
)

type PriceSnapshot struct {
	Timestamp   time.Time `json:"timestamp"`
	Prices      Prices    `json:"prices"`
	SalesVolume int       `json:"salesVolume,omitempty"`
}

// PriceHistory отслеживаемая карточка и её снимки цен в порядке добавления.
type PriceHistory struct {
	Card         Card            `json:"card"`
	FirstTracked time.Time       `json:"firstTracked"`
	LastUpdated  time.Time       `json:"lastUpdated"`
	Snapshots    []PriceSnapshot `json:"snapshots"`
}

func (h PriceHistory) Latest() (PriceSnapshot, bool) {
	if len(h.Snapshots) == 0 {
		return PriceSnapshot{}, false
	}

	return h.Snapshots[len(h.Snapshots)-1], true
}

// Since снимки не старше from.
func (h PriceHistory) Since(from time.Time) []PriceSnapshot {
	result := make([]PriceSnapshot, 0, len(h.Snapshots))

	for _, s := range h.Snapshots {
		if !s.Timestamp.Before(from) {
			result = append(result, s)
		}
	}

	return result
}

type PriceChange struct {
	CardID       value.CardID
	CardName     string
	OldestCents  int64
	LatestCents  int64
	TrendPercent float64
}

type RefreshResult struct {
	Updated int
	Failed  int
	Deals   []Deal
}
