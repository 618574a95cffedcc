package entity

import (
	"time"

	"card_tracker/internal/domain/value"
)

// Sale запись журнала продаж. Создаётся при продаже и больше не меняется.
type Sale struct {
	ID                 value.SaleID      `json:"id"`
	InventoryID        value.InventoryID `json:"inventoryId"`
	CardID             value.CardID      `json:"cardId"`
	CardName           string            `json:"cardName"`
	Condition          string            `json:"condition"`
	PurchasePriceCents int64             `json:"purchasePriceCents"`
	Quantity           int               `json:"quantity"`
	CostBasisCents     int64             `json:"costBasisCents"`
	PurchaseDate       value.Date        `json:"purchaseDate"`

	SalePriceCents      int64      `json:"salePriceCents"`
	PercentageFeeCents  int64      `json:"percentageFeeCents"`
	TransactionFeeCents int64      `json:"transactionFeeCents"`
	TotalFeesCents      int64      `json:"totalFeesCents"`
	ShippingCents       int64      `json:"shippingCents"`
	AdditionalCents     int64      `json:"additionalCents"`
	NetProfitCents      int64      `json:"netProfitCents"`
	ROI                 float64    `json:"roi"`
	SaleDate            value.Date `json:"saleDate"`

	CreatedAt time.Time `json:"createdAt"`
}

// NewSale снимок финансового состояния проданной позиции.
func NewSale(item InventoryItem, details SaleDetails, createdAt time.Time) Sale {
	return Sale{
		ID:                  value.NewSaleID(),
		InventoryID:         item.ID,
		CardID:              item.CardID,
		CardName:            item.CardName,
		Condition:           item.Condition,
		PurchasePriceCents:  item.PurchasePriceCents,
		Quantity:            item.Units(),
		CostBasisCents:      item.CostBasis(),
		PurchaseDate:        item.PurchaseDate,
		SalePriceCents:      details.SalePriceCents,
		PercentageFeeCents:  details.PercentageFeeCents,
		TransactionFeeCents: details.TransactionFeeCents,
		TotalFeesCents:      details.TotalFeesCents,
		ShippingCents:       details.ShippingCents,
		AdditionalCents:     details.AdditionalCents,
		NetProfitCents:      details.NetProfitCents,
		ROI:                 details.ROI,
		SaleDate:            details.SaleDate,
		CreatedAt:           createdAt,
	}
}

// CostBasis себестоимость покупки. Для записей без CostBasisCents равна
// цене покупки.
func (s Sale) CostBasis() int64 {
	if s.CostBasisCents == 0 {
		return s.PurchasePriceCents
	}

	return s.CostBasisCents
}
