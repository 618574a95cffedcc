package report

import (
	"context"
	"fmt"

	"github.com/gocarina/gocsv"

	"card_tracker/internal/domain/entity"
)

type saleRow struct {
	SaleID             string  `csv:"sale_id"`
	InventoryID        string  `csv:"inventory_id"`
	CardID             string  `csv:"card_id"`
	CardName           string  `csv:"card_name"`
	Condition          string  `csv:"condition"`
	PurchaseDate       string  `csv:"purchase_date"`
	SaleDate           string  `csv:"sale_date"`
	PurchasePriceCents int64   `csv:"purchase_price_cents"`
	SalePriceCents     int64   `csv:"sale_price_cents"`
	TotalFeesCents     int64   `csv:"total_fees_cents"`
	ShippingCents      int64   `csv:"shipping_cents"`
	AdditionalCents    int64   `csv:"additional_cents"`
	NetProfitCents     int64   `csv:"net_profit_cents"`
	ROI                float64 `csv:"roi"`
	Quantity           int     `csv:"quantity"`
	CostBasisCents     int64   `csv:"cost_basis_cents"`
}

// ExportCSV журнал продаж в CSV с заголовком.
func (s *ReportService) ExportCSV(ctx context.Context) ([]byte, error) {
	sales, err := s.Sales(ctx)
	if err != nil {
		return nil, err
	}

	return MarshalCSV(sales)
}

func MarshalCSV(sales []entity.Sale) ([]byte, error) {
	rows := make([]saleRow, 0, len(sales))

	for _, sale := range sales {
		rows = append(rows, saleRow{
			SaleID:             sale.ID.String(),
			InventoryID:        sale.InventoryID.String(),
			CardID:             sale.CardID.String(),
			CardName:           sale.CardName,
			Condition:          sale.Condition,
			PurchaseDate:       sale.PurchaseDate.String(),
			SaleDate:           sale.SaleDate.String(),
			PurchasePriceCents: sale.PurchasePriceCents,
			SalePriceCents:     sale.SalePriceCents,
			TotalFeesCents:     sale.TotalFeesCents,
			ShippingCents:      sale.ShippingCents,
			AdditionalCents:    sale.AdditionalCents,
			NetProfitCents:     sale.NetProfitCents,
			ROI:                sale.ROI,
			Quantity:           max(sale.Quantity, 1),
			CostBasisCents:     sale.CostBasis(),
		})
	}

	b, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return nil, fmt.Errorf("gocsv.MarshalBytes: %w", err)
	}

	return b, nil
}
