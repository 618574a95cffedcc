// Package profit считает комиссии площадки, полную себестоимость продажи и ROI.
// Все суммы в центах, дробные центы возникают только в процентной комиссии и
// округляются до целого цента.
package profit

import (
	"github.com/shopspring/decimal"

	"card_tracker/internal/domain/entity"
)

const (
	DefaultFeePercent                = 13.0
	DefaultTransactionFeeCents       = 30
	DefaultShippingCents             = 500
	roiPlaces                  int32 = 2
)

var hundred = decimal.NewFromInt(100) //nolint:gochecknoglobals // skip

type Config struct {
	FeePercent           float64
	TransactionFeeCents  int64
	DefaultShippingCents int64
}

func DefaultConfig() Config {
	return Config{
		FeePercent:           DefaultFeePercent,
		TransactionFeeCents:  DefaultTransactionFeeCents,
		DefaultShippingCents: DefaultShippingCents,
	}
}

// Calculator не имеет состояния кроме конфигурации и безопасен для
// конкурентного использования.
type Calculator struct {
	cfg        Config
	feePercent decimal.Decimal
}

func NewCalculator(cfg Config) Calculator {
	return Calculator{
		cfg:        cfg,
		feePercent: decimal.NewFromFloat(cfg.FeePercent),
	}
}

func (c Calculator) Config() Config {
	return c.cfg
}

type options struct {
	shippingCents   *int64
	additionalCents int64
}

type Option func(*options)

func WithShipping(cents int64) Option {
	return func(o *options) {
		o.shippingCents = &cents
	}
}

func WithAdditionalCosts(cents int64) Option {
	return func(o *options) {
		o.additionalCents = cents
	}
}

// Calculate строит полный расчёт для пары (закупка, продажа). Отрицательные
// значения не отклоняются и проходят в результат как есть.
func (c Calculator) Calculate(purchaseCents, saleCents int64, opts ...Option) entity.Breakdown {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	shipping := c.cfg.DefaultShippingCents
	if o.shippingCents != nil {
		shipping = *o.shippingCents
	}

	percentageFee, totalFees := c.Fees(saleCents)
	totalCosts := purchaseCents + shipping + o.additionalCents + totalFees
	netProfit := saleCents - totalCosts

	return entity.Breakdown{
		PurchaseCents:       purchaseCents,
		SaleCents:           saleCents,
		PercentageFeeCents:  percentageFee,
		TransactionFeeCents: c.cfg.TransactionFeeCents,
		TotalFeesCents:      totalFees,
		ShippingCents:       shipping,
		AdditionalCents:     o.additionalCents,
		TotalCostsCents:     totalCosts,
		GrossProfitCents:    saleCents - purchaseCents,
		NetProfitCents:      netProfit,
		ROI:                 ROI(netProfit, purchaseCents),
	}
}

// Fees возвращает процентную комиссию и сумму обеих комиссий.
//
// Процент считается в долларах и округляется до цента:
// round(sale/100 * percent/100 * 100), половина от нуля.
func (c Calculator) Fees(saleCents int64) (percentageFeeCents, totalFeesCents int64) {
	dollars := decimal.NewFromInt(saleCents).Div(hundred)
	fee := dollars.Mul(c.feePercent.Div(hundred)).Mul(hundred).Round(0)

	percentageFeeCents = fee.IntPart()

	return percentageFeeCents, percentageFeeCents + c.cfg.TransactionFeeCents
}

func (c Calculator) IsProfitable(purchaseCents, saleCents int64, minROI float64, opts ...Option) bool {
	return c.Calculate(purchaseCents, saleCents, opts...).ROI >= minROI
}

// ROI чистая прибыль к закупке в процентах, два знака. Для нулевой или
// отрицательной закупки 0.
func ROI(netProfitCents, purchaseCents int64) float64 {
	if purchaseCents <= 0 {
		return 0
	}

	return decimal.NewFromInt(netProfitCents).
		Div(decimal.NewFromInt(purchaseCents)).
		Mul(hundred).
		Round(roiPlaces).
		InexactFloat64()
}
