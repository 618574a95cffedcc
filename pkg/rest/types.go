// Данный файл должен быть сгенерирован из openapi спецификации и называться types.gen.go
package rest

import "time"

// Error Модель ошибок
type Error struct {
	// Code Код ошибки
	Code ErrorCode `json:"code"`

	// Message Сообщение об ошибке (для отображения в UI в будущем)
	Message string `json:"message"`

	// SupportID Идентификатор запроса для обращения в поддержку
	SupportID string `json:"supportId"`
}

// ErrorCode Код ошибки
type ErrorCode string

// Prices Цены карточки по состояниям, в центах
type Prices struct {
	Ungraded int64 `json:"ungraded"`
	PSA10    int64 `json:"psa10"`
	Grade9   int64 `json:"grade9"`
	Grade8   int64 `json:"grade8"`
	Grade7   int64 `json:"grade7"`
	BGS10    int64 `json:"bgs10"`
	CGC10    int64 `json:"cgc10"`
	SGC10    int64 `json:"sgc10"`
}

// Card Карточка из каталога
type Card struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Set         string `json:"set,omitempty"`
	Genre       string `json:"genre,omitempty"`
	ReleaseDate string `json:"releaseDate,omitempty"`
	Year        int    `json:"year,omitempty"`
	Prices      Prices `json:"prices"`
	SalesVolume int    `json:"salesVolume,omitempty"`
}

// Breakdown Расчёт комиссий и прибыли
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

// Deal Выгодная для перепродажи карточка
type Deal struct {
	Card           Card      `json:"card"`
	BuyPriceCents  int64     `json:"buyPriceCents"`
	SalePriceCents int64     `json:"salePriceCents"`
	Breakdown      Breakdown `json:"breakdown"`
	TrendPercent   *float64  `json:"trendPercent,omitempty"`
}

// CalculateRequest Расчёт прибыли для произвольных цен
type CalculateRequest struct {
	PurchasePriceCents *int64 `json:"purchasePriceCents" validate:"required"`
	SalePriceCents     *int64 `json:"salePriceCents" validate:"required"`
	ShippingCents      *int64 `json:"shippingCents,omitempty"`
	AdditionalCents    *int64 `json:"additionalCents,omitempty"`
}

// AnalyzeRequest Оценка цены предложения
type AnalyzeRequest struct {
	MarketValueCents *int64   `json:"marketValueCents" validate:"required"`
	AskingPriceCents *int64   `json:"askingPriceCents" validate:"required"`
	MinROI           *float64 `json:"minRoi,omitempty"`
	ShippingCents    *int64   `json:"shippingCents,omitempty"`
}

type Analysis struct {
	MarketValueCents int64     `json:"marketValueCents"`
	AskingPriceCents int64     `json:"askingPriceCents"`
	DiscountPercent  float64   `json:"discountPercent"`
	Breakdown        Breakdown `json:"breakdown"`
	MeetsMinimumROI  bool      `json:"meetsMinimumRoi"`
	Recommendation   string    `json:"recommendation"`
}

type ConditionDeal struct {
	Condition        string    `json:"condition"`
	MarketValueCents int64     `json:"marketValueCents"`
	BuyPriceCents    int64     `json:"buyPriceCents"`
	Breakdown        Breakdown `json:"breakdown"`
}

// ConditionsResponse Экономика покупки по состояниям карточки
type ConditionsResponse struct {
	Card       Card            `json:"card"`
	Conditions []ConditionDeal `json:"conditions"`
}

type TrackRequest struct {
	CardID string `json:"cardId" validate:"required"`
}

type PriceSnapshot struct {
	Timestamp   time.Time `json:"timestamp"`
	Prices      Prices    `json:"prices"`
	SalesVolume int       `json:"salesVolume,omitempty"`
}

type PriceHistory struct {
	Card         Card            `json:"card"`
	FirstTracked time.Time       `json:"firstTracked"`
	LastUpdated  time.Time       `json:"lastUpdated"`
	Snapshots    []PriceSnapshot `json:"snapshots"`
}

type RefreshResult struct {
	Updated int    `json:"updated"`
	Failed  int    `json:"failed"`
	Deals   []Deal `json:"deals"`
}

type PriceChange struct {
	CardID       string  `json:"cardId"`
	CardName     string  `json:"cardName"`
	OldestCents  int64   `json:"oldestCents"`
	LatestCents  int64   `json:"latestCents"`
	TrendPercent float64 `json:"trendPercent"`
}

// InventoryItemRequest Новая позиция инвентаря. Дата в формате YYYY-MM-DD.
type InventoryItemRequest struct {
	CardID             string `json:"cardId"`
	CardName           string `json:"cardName" validate:"required"`
	Condition          string `json:"condition"`
	PurchasePriceCents *int64 `json:"purchasePriceCents" validate:"required"`
	Quantity           int    `json:"quantity,omitempty" validate:"gte=0"`
	PurchaseDate       string `json:"purchaseDate" validate:"required"`
	Notes              string `json:"notes,omitempty"`
}

// InventoryItemUpdate Изменение непроданной позиции. Пропущенные поля не меняются.
type InventoryItemUpdate struct {
	CardName           *string `json:"cardName,omitempty"`
	Condition          *string `json:"condition,omitempty"`
	PurchasePriceCents *int64  `json:"purchasePriceCents,omitempty"`
	Quantity           *int    `json:"quantity,omitempty" validate:"omitempty,gte=1"`
	PurchaseDate       *string `json:"purchaseDate,omitempty"`
	Notes              *string `json:"notes,omitempty"`
}

type SaleDetails struct {
	SalePriceCents      int64   `json:"salePriceCents"`
	PercentageFeeCents  int64   `json:"percentageFeeCents"`
	TransactionFeeCents int64   `json:"transactionFeeCents"`
	TotalFeesCents      int64   `json:"totalFeesCents"`
	ShippingCents       int64   `json:"shippingCents"`
	AdditionalCents     int64   `json:"additionalCents"`
	NetProfitCents      int64   `json:"netProfitCents"`
	ROI                 float64 `json:"roi"`
	SaleDate            string  `json:"saleDate"`
}

type InventoryItem struct {
	ID                 string       `json:"id"`
	CardID             string       `json:"cardId"`
	CardName           string       `json:"cardName"`
	Condition          string       `json:"condition"`
	PurchasePriceCents int64        `json:"purchasePriceCents"`
	Quantity           int          `json:"quantity"`
	CostBasisCents     int64        `json:"costBasisCents"`
	PurchaseDate       string       `json:"purchaseDate"`
	Notes              string       `json:"notes,omitempty"`
	Sold               bool         `json:"sold"`
	Sale               *SaleDetails `json:"sale,omitempty"`
	CreatedAt          time.Time    `json:"createdAt"`
	UpdatedAt          time.Time    `json:"updatedAt"`
}

// SaleRequest Продажа позиции. Пустая дата означает сегодня.
type SaleRequest struct {
	SalePriceCents  *int64 `json:"salePriceCents" validate:"required"`
	SaleDate        string `json:"saleDate,omitempty"`
	ShippingCents   *int64 `json:"shippingCents,omitempty"`
	AdditionalCents *int64 `json:"additionalCents,omitempty"`
}

type Sale struct {
	ID                  string    `json:"id"`
	InventoryID         string    `json:"inventoryId"`
	CardID              string    `json:"cardId"`
	CardName            string    `json:"cardName"`
	Condition           string    `json:"condition"`
	PurchasePriceCents  int64     `json:"purchasePriceCents"`
	Quantity            int       `json:"quantity"`
	CostBasisCents      int64     `json:"costBasisCents"`
	PurchaseDate        string    `json:"purchaseDate"`
	SalePriceCents      int64     `json:"salePriceCents"`
	PercentageFeeCents  int64     `json:"percentageFeeCents"`
	TransactionFeeCents int64     `json:"transactionFeeCents"`
	TotalFeesCents      int64     `json:"totalFeesCents"`
	ShippingCents       int64     `json:"shippingCents"`
	AdditionalCents     int64     `json:"additionalCents"`
	NetProfitCents      int64     `json:"netProfitCents"`
	ROI                 float64   `json:"roi"`
	SaleDate            string    `json:"saleDate"`
	CreatedAt           time.Time `json:"createdAt"`
}

type MonthlySummary struct {
	Month          string  `json:"month,omitempty"`
	SalesCount     int     `json:"salesCount"`
	RevenueCents   int64   `json:"revenueCents"`
	CostCents      int64   `json:"costCents"`
	FeesCents      int64   `json:"feesCents"`
	ShippingCents  int64   `json:"shippingCents"`
	NetProfitCents int64   `json:"netProfitCents"`
	AvgProfitCents int64   `json:"avgProfitCents"`
	AvgROI         float64 `json:"avgRoi"`
	MedianROI      float64 `json:"medianRoi"`
	BestSale       *Sale   `json:"bestSale,omitempty"`
}

type CardSummary struct {
	CardID         string  `json:"cardId"`
	CardName       string  `json:"cardName"`
	SalesCount     int     `json:"salesCount"`
	RevenueCents   int64   `json:"revenueCents"`
	NetProfitCents int64   `json:"netProfitCents"`
	AvgROI         float64 `json:"avgRoi"`
}

type Summary struct {
	Months []MonthlySummary `json:"months"`
	Cards  []CardSummary    `json:"cards"`
	Total  MonthlySummary   `json:"total"`
}

// SaleResponse Проданная позиция и созданная запись журнала продаж
type SaleResponse struct {
	Item InventoryItem `json:"item"`
	Sale Sale          `json:"sale"`
}

type TrendResponse struct {
	CardID       string   `json:"cardId"`
	TrendPercent *float64 `json:"trendPercent"`
}
