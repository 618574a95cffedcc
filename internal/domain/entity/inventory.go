package entity

import (
	"time"

	"card_tracker/internal/domain/value"
)

type InventoryItem struct {
	ID                 value.InventoryID `json:"id"`
	CardID             value.CardID      `json:"cardId"`
	CardName           string            `json:"cardName"`
	Condition          string            `json:"condition"`
	PurchasePriceCents int64             `json:"purchasePriceCents"`
	Quantity           int               `json:"quantity"`
	CostBasisCents     int64             `json:"costBasisCents"`
	PurchaseDate       value.Date        `json:"purchaseDate"`
	Notes              string            `json:"notes,omitempty"`
	Sold               bool              `json:"sold"`
	Sale               *SaleDetails      `json:"sale,omitempty"`
	CreatedAt          time.Time         `json:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt"`
}

// Units количество купленных экземпляров. Записи без количества считаются
// одним экземпляром.
func (i InventoryItem) Units() int {
	return max(i.Quantity, 1)
}

// CostBasis цена за экземпляр, умноженная на количество.
func (i InventoryItem) CostBasis() int64 {
	return CostBasis(i.PurchasePriceCents, i.Units())
}

func CostBasis(priceCents int64, quantity int) int64 {
	return priceCents * int64(max(quantity, 1))
}

// SaleDetails заполняется один раз, вместе с Sold=true.
type SaleDetails struct {
	SalePriceCents      int64      `json:"salePriceCents"`
	PercentageFeeCents  int64      `json:"percentageFeeCents"`
	TransactionFeeCents int64      `json:"transactionFeeCents"`
	TotalFeesCents      int64      `json:"totalFeesCents"`
	ShippingCents       int64      `json:"shippingCents"`
	AdditionalCents     int64      `json:"additionalCents"`
	NetProfitCents      int64      `json:"netProfitCents"`
	ROI                 float64    `json:"roi"`
	SaleDate            value.Date `json:"saleDate"`
}

func NewSaleDetails(b Breakdown, saleDate value.Date) SaleDetails {
	return SaleDetails{
		SalePriceCents:      b.SaleCents,
		PercentageFeeCents:  b.PercentageFeeCents,
		TransactionFeeCents: b.TransactionFeeCents,
		TotalFeesCents:      b.TotalFeesCents,
		ShippingCents:       b.ShippingCents,
		AdditionalCents:     b.AdditionalCents,
		NetProfitCents:      b.NetProfitCents,
		ROI:                 b.ROI,
		SaleDate:            saleDate,
	}
}

type InventoryStatus string

const (
	InventoryStatusAll       InventoryStatus = "all"
	InventoryStatusAvailable InventoryStatus = "available"
	InventoryStatusSold      InventoryStatus = "sold"
)

func (s InventoryStatus) Valid() bool {
	switch s {
	case InventoryStatusAll, InventoryStatusAvailable, InventoryStatusSold:
		return true
	default:
		return false
	}
}

func (s InventoryStatus) Match(item InventoryItem) bool {
	switch s {
	case InventoryStatusAvailable:
		return !item.Sold
	case InventoryStatusSold:
		return item.Sold
	default:
		return true
	}
}
