package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"card_tracker/internal/domain/entity"
	"card_tracker/internal/domain/service/deal"
	"card_tracker/internal/domain/service/inventory"
	"card_tracker/internal/domain/value"
)

func newTrackCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "track ID",
		Short: "Start tracking a card's price",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.services.Tracking.Track(cmd.Context(), value.CardID(args[0]))
			if err != nil {
				return err
			}

			price := "n/a"
			if latest, ok := h.Latest(); ok {
				price = formatCents(latest.Prices.Ungraded)
			}

			printf(cmd.OutOrStdout(), "tracking %s (%s), ungraded %s, %d snapshots\n",
				h.Card.Name, h.Card.ID, price, len(h.Snapshots))

			return nil
		},
	}
}

func newUpdatePricesCmd(a *app) *cobra.Command {
	var minROI float64

	cmd := &cobra.Command{
		Use:   "update-prices",
		Short: "Refresh prices of all tracked cards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			threshold, err := minROIFlag(cmd, minROI)
			if err != nil {
				return err
			}

			result, err := a.services.Tracking.RefreshAll(cmd.Context(), deal.Criteria{MinROI: threshold})
			if err != nil {
				return err
			}

			printf(cmd.OutOrStdout(), "updated %d, failed %d, deals %d\n",
				result.Updated, result.Failed, len(result.Deals))

			for _, d := range result.Deals {
				printf(cmd.OutOrStdout(), "  %s: buy %s, net %s, ROI %.2f%%\n",
					d.Card.Name,
					formatCents(d.BuyPriceCents),
					formatCents(d.Breakdown.NetProfitCents),
					d.Breakdown.ROI,
				)
			}

			return nil
		},
	}

	cmd.Flags().Float64Var(&minROI, "min-roi", 0, "minimum ROI percent")

	return cmd
}

func newAddInventoryCmd(a *app) *cobra.Command {
	var (
		cardID    string
		condition string
		date      string
		notes     string
		quantity  int
	)

	cmd := &cobra.Command{
		Use:   "add-inventory NAME PRICE",
		Short: "Add a purchased card, price per unit in dollars",
		Args:  cobra.ExactArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			price, err := parseDollars(args[1])
			if err != nil {
				return err
			}

			var purchaseDate value.Date

			if date != "" {
				purchaseDate, err = value.ParseDate(date)
				if err != nil {
					return fmt.Errorf("date must be YYYY-MM-DD: %w", err)
				}
			}

			item, err := a.services.Inventory.Create(cmd.Context(), inventory.NewItem{
				CardID:             value.CardID(cardID),
				CardName:           args[0],
				Condition:          condition,
				PurchasePriceCents: price,
				Quantity:           quantity,
				PurchaseDate:       purchaseDate,
				Notes:              notes,
			})
			if err != nil {
				return err
			}

			printf(cmd.OutOrStdout(), "added %s: %s x%d, cost basis %s\n",
				item.ID, item.CardName, item.Units(), formatCents(item.CostBasis()))

			return nil
		},
	}

	cmd.Flags().StringVar(&cardID, "card-id", "", "catalog card id")
	cmd.Flags().StringVar(&condition, "condition", "", "condition or grade, e.g. PSA 9")
	cmd.Flags().StringVar(&date, "date", "", "purchase date as YYYY-MM-DD, today by default")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	cmd.Flags().IntVar(&quantity, "quantity", 1, "number of copies bought")

	return cmd
}

func newInventoryCmd(a *app) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "List inventory items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := a.services.Inventory.List(cmd.Context(), entity.InventoryStatus(status))
			if err != nil {
				return err
			}

			if len(items) == 0 {
				printf(cmd.OutOrStdout(), "inventory is empty\n")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			printf(w, "ID\tNAME\tQTY\tCOST\tBOUGHT\tSTATUS\n")

			for _, item := range items {
				state := "available"
				if item.Sold && item.Sale != nil {
					state = fmt.Sprintf("sold, net %s", formatCents(item.Sale.NetProfitCents))
				}

				printf(w, "%s\t%s\t%d\t%s\t%s\t%s\n",
					item.ID,
					item.CardName,
					item.Units(),
					formatCents(item.CostBasis()),
					item.PurchaseDate,
					state,
				)
			}

			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&status, "status", string(entity.InventoryStatusAll), "all, available or sold")

	return cmd
}

func newRecordSaleCmd(a *app) *cobra.Command {
	var date, shipping, additional string

	cmd := &cobra.Command{
		Use:   "record-sale ID PRICE",
		Short: "Record the sale of an inventory item, price in dollars",
		Args:  cobra.ExactArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := value.ParseInventoryID(args[0])
			if err != nil {
				return fmt.Errorf("invalid inventory id %q: %w", args[0], err)
			}

			params := inventory.SaleParams{}

			params.SalePriceCents, err = parseDollars(args[1])
			if err != nil {
				return err
			}

			if date != "" {
				params.SaleDate, err = value.ParseDate(date)
				if err != nil {
					return fmt.Errorf("date must be YYYY-MM-DD: %w", err)
				}
			}

			if shipping != "" {
				cents, parseErr := parseDollars(shipping)
				if parseErr != nil {
					return parseErr
				}

				params.ShippingCents = &cents
			}

			if additional != "" {
				cents, parseErr := parseDollars(additional)
				if parseErr != nil {
					return parseErr
				}

				params.AdditionalCents = &cents
			}

			_, sale, err := a.services.Inventory.RecordSale(cmd.Context(), id, params)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			printf(w, "Card\t%s\n", sale.CardName)
			printf(w, "Cost basis\t%s\n", formatCents(sale.CostBasis()))
			printf(w, "Sale\t%s\n", formatCents(sale.SalePriceCents))
			printf(w, "Fees\t%s\n", formatCents(sale.TotalFeesCents))
			printf(w, "Net profit\t%s\n", formatCents(sale.NetProfitCents))
			printf(w, "ROI\t%.2f%%\n", sale.ROI)

			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "sale date as YYYY-MM-DD, today by default")
	cmd.Flags().StringVar(&shipping, "shipping", "", "shipping cost in dollars")
	cmd.Flags().StringVar(&additional, "additional", "", "additional costs in dollars")

	return cmd
}
