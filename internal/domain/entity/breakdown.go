package entity

// Breakdown полный расчёт сделки в центах.
//
// NetProfitCents = SaleCents - TotalCostsCents, TotalCostsCents включает
// закупку, доставку, прочие расходы и обе комиссии площадки.
type Breakdown struct {
	PurchaseCents       int64   `json:"purchaseCents"`
	SaleCents           int64   `json:"saleCents"`
	PercentageFeeCents  int64   `json:"percentageFeeCents"`
	TransactionFeeCents int64   `json:"transactionFeeCents"`
	TotalFeesCents      int64   `json:"totalFeesCents"`
	ShippingCents       int64   `json:"shippingCents"`
	AdditionalCents     int64   `json:"additionalCents"`
	TotalCostsCents     int64   `json:"totalCostsCents"`
	GrossProfitCents    int64   `json:"grossProfitCents"`
	NetProfitCents      int64   `json:"netProfitCents"`
	ROI                 float64 `json:"roi"`
}
