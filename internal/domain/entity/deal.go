package entity

type Deal struct {
	Card Card

	// Экономика сделки: покупаем по BuyPriceCents, продаём по рыночной
	BuyPriceCents  int64
	SalePriceCents int64
	Breakdown      Breakdown

	// Изменение цены за окно трекинга, только для отслеживаемых карточек
	TrendPercent *float64
}

type Recommendation string

const (
	RecommendationStrongBuy Recommendation = "STRONG BUY"
	RecommendationBuy       Recommendation = "BUY"
	RecommendationMaybe     Recommendation = "MAYBE"
	RecommendationPass      Recommendation = "PASS"
)

// Analysis оценка конкретной цены предложения относительно рынка.
type Analysis struct {
	MarketValueCents int64
	AskingPriceCents int64
	DiscountPercent  float64
	Breakdown        Breakdown
	MeetsMinimumROI  bool
	Recommendation   Recommendation
}

type Condition string

const (
	ConditionUngraded Condition = "Ungraded"
	ConditionPSA10    Condition = "PSA 10"
	ConditionGrade9   Condition = "Grade 9"
	ConditionGrade8   Condition = "Grade 8"
	ConditionBGS10    Condition = "BGS 10"
	ConditionCGC10    Condition = "CGC 10"
	ConditionSGC10    Condition = "SGC 10"
)

// ConditionDeal экономика покупки для одного состояния карточки.
type ConditionDeal struct {
	Condition        Condition
	MarketValueCents int64
	BuyPriceCents    int64
	Breakdown        Breakdown
}
