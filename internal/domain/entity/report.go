package entity

import "card_tracker/internal/domain/value"

type MonthlySummary struct {
	Month          value.Month
	SalesCount     int
	RevenueCents   int64
	CostCents      int64
	FeesCents      int64
	ShippingCents  int64
	NetProfitCents int64
	AvgProfitCents int64
	AvgROI         float64
	MedianROI      float64
	BestSale       *Sale
}

type CardSummary struct {
	CardID         value.CardID
	CardName       string
	SalesCount     int
	RevenueCents   int64
	NetProfitCents int64
	AvgROI         float64
}

type Summary struct {
	Months []MonthlySummary
	Cards  []CardSummary
	Total  MonthlySummary
}
