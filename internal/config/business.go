package config

import (
	"time"

	"card_tracker/internal/domain/service/deal"
	"card_tracker/internal/domain/service/profit"
)

type Catalog struct {
	BaseURL     string        `env:"CATALOG_BASE_URL" envDefault:"https://www.sportscardspro.com" validate:"url"`
	Token       string        `env:"CATALOG_TOKEN" json:"-"`
	Timeout     time.Duration `env:"CATALOG_TIMEOUT" envDefault:"30s"`
	MaxRetries  int           `env:"CATALOG_MAX_RETRIES" envDefault:"3" validate:"gte=0"`
	RetryDelay  time.Duration `env:"CATALOG_RETRY_DELAY" envDefault:"1s"`
	CacheTTL    time.Duration `env:"CATALOG_CACHE_TTL" envDefault:"5m"`
	SearchLimit int           `env:"CATALOG_SEARCH_LIMIT" envDefault:"50" validate:"gte=1,lte=200"`
}

// Business параметры расчёта прибыли и отбора сделок.
type Business struct {
	FeePercent           float64       `env:"FEE_PERCENT" envDefault:"13.0" validate:"gte=0,lte=100"`
	TransactionFeeCents  int64         `env:"TRANSACTION_FEE_CENTS" envDefault:"30" validate:"gte=0"`
	DefaultShippingCents int64         `env:"DEFAULT_SHIPPING_CENTS" envDefault:"500" validate:"gte=0"`
	BuyPriceRatio        float64       `env:"BUY_PRICE_RATIO" envDefault:"0.80" validate:"gt=0,lte=1"`
	MinROI               float64       `env:"MIN_ROI" envDefault:"20.0"`
	TrendThreshold       float64       `env:"TREND_THRESHOLD" envDefault:"5.0" validate:"gte=0"`
	TrendWindow          time.Duration `env:"TREND_WINDOW" envDefault:"720h"`
}

func (b Business) Profit() profit.Config {
	return profit.Config{
		FeePercent:           b.FeePercent,
		TransactionFeeCents:  b.TransactionFeeCents,
		DefaultShippingCents: b.DefaultShippingCents,
	}
}

func (b Business) Deal() deal.Config {
	return deal.Config{
		BuyPriceRatio: b.BuyPriceRatio,
		DefaultMinROI: b.MinROI,
	}
}
