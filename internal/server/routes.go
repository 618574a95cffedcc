package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"card_tracker/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) { //nolint:funlen
	r.Route("/", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			r.Get("/search", handler(s.getV1Search))
			r.Get("/deals", handler(s.getV1Deals))

			r.Route("/calculator", func(r chi.Router) {
				r.Post("/", handler(s.postV1Calculator))
				r.Post("/analyze", handler(s.postV1CalculatorAnalyze))
			})

			r.Get("/cards/{id}/conditions", handler(s.getV1CardConditions))

			r.Route("/tracked", func(r chi.Router) {
				r.Post("/", handler(s.postV1Tracked))
				r.Post("/refresh", handler(s.postV1TrackedRefresh))
				r.Get("/deals", handler(s.getV1TrackedDeals))
				r.Get("/changes", handler(s.getV1TrackedChanges))
				r.Get("/{id}/trend", handler(s.getV1TrackedTrend))
			})

			r.Route("/inventory", func(r chi.Router) {
				r.Get("/", handler(s.getV1Inventory))
				r.Post("/", handler(s.postV1Inventory))
				r.Get("/{id}", handler(s.getV1InventoryItem))
				r.Put("/{id}", handler(s.putV1InventoryItem))
				r.Delete("/{id}", handler(s.deleteV1InventoryItem))
				r.Post("/{id}/sale", handler(s.postV1InventoryItemSale))
			})

			r.Route("/sales", func(r chi.Router) {
				r.Get("/", handler(s.getV1Sales))
				r.Get("/export", handler(s.getV1SalesExport))
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/monthly", handler(s.getV1ReportsMonthly))
				r.Get("/summary", handler(s.getV1ReportsSummary))
			})
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
