package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"card_tracker/internal/domain/service/deal"
	"card_tracker/internal/domain/service/deals"
	"card_tracker/internal/domain/service/report"
	"card_tracker/internal/domain/value"
)

func newSearchCmd(a *app) *cobra.Command {
	var (
		category string
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search the price catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cards, err := a.services.Catalog.Search(cmd.Context(), args[0], category, limit)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			printf(w, "ID\tNAME\tSET\tUNGRADED\tPSA 10\n")

			for _, c := range cards {
				printf(w, "%s\t%s\t%s\t%s\t%s\n",
					c.ID, c.Name, c.Set, formatCents(c.Prices.Ungraded), formatCents(c.Prices.PSA10))
			}

			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "genre filter, e.g. baseball")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum results")

	return cmd
}

func newDealsCmd(a *app) *cobra.Command {
	var (
		minROI   float64
		maxPrice string
		category string
	)

	cmd := &cobra.Command{
		Use:   "deals QUERY",
		Short: "Find cards worth buying for resale",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			threshold, err := minROIFlag(cmd, minROI)
			if err != nil {
				return err
			}

			criteria := deal.Criteria{Category: category, MinROI: threshold}

			if maxPrice != "" {
				cents, parseErr := parseDollars(maxPrice)
				if parseErr != nil {
					return parseErr
				}

				criteria.MaxPriceCents = &cents
			}

			found, err := a.services.Deals.FindDeals(cmd.Context(), args[0], criteria)
			if err != nil {
				return err
			}

			if len(found) == 0 {
				printf(cmd.OutOrStdout(), "no deals found\n")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			printf(w, "NAME\tBUY\tMARKET\tNET\tROI\n")

			for _, d := range found {
				printf(w, "%s\t%s\t%s\t%s\t%.2f%%\n",
					d.Card.Name,
					formatCents(d.BuyPriceCents),
					formatCents(d.SalePriceCents),
					formatCents(d.Breakdown.NetProfitCents),
					d.Breakdown.ROI,
				)
			}

			return w.Flush()
		},
	}

	cmd.Flags().Float64Var(&minROI, "min-roi", 0, "minimum ROI percent")
	cmd.Flags().StringVar(&maxPrice, "max-price", "", "maximum buy price in dollars")
	cmd.Flags().StringVar(&category, "category", "", "genre filter")

	return cmd
}

func newCalcCmd(a *app) *cobra.Command {
	var shipping, additional string

	cmd := &cobra.Command{
		Use:   "calc PURCHASE SALE",
		Short: "Calculate fees and profit, amounts in dollars",
		Args:  cobra.ExactArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			purchase, err := parseDollars(args[0])
			if err != nil {
				return err
			}

			sale, err := parseDollars(args[1])
			if err != nil {
				return err
			}

			params := deals.CalculateParams{PurchaseCents: purchase, SaleCents: sale}

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

			b := a.services.Deals.Calculate(params)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			printf(w, "Purchase\t%s\n", formatCents(b.PurchaseCents))
			printf(w, "Sale\t%s\n", formatCents(b.SaleCents))
			printf(w, "Fees\t%s\n", formatCents(b.TotalFeesCents))
			printf(w, "Shipping\t%s\n", formatCents(b.ShippingCents))
			printf(w, "Additional\t%s\n", formatCents(b.AdditionalCents))
			printf(w, "Net profit\t%s\n", formatCents(b.NetProfitCents))
			printf(w, "ROI\t%.2f%%\n", b.ROI)

			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&shipping, "shipping", "", "shipping cost in dollars")
	cmd.Flags().StringVar(&additional, "additional", "", "additional costs in dollars")

	return cmd
}

func newAnalyzeCmd(a *app) *cobra.Command {
	var minROI float64

	cmd := &cobra.Command{
		Use:   "analyze MARKET ASKING",
		Short: "Judge an asking price against the market value, amounts in dollars",
		Args:  cobra.ExactArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			market, err := parseDollars(args[0])
			if err != nil {
				return err
			}

			asking, err := parseDollars(args[1])
			if err != nil {
				return err
			}

			threshold, err := minROIFlag(cmd, minROI)
			if err != nil {
				return err
			}

			analysis := a.services.Deals.Analyze(market, asking, threshold, nil)

			printf(cmd.OutOrStdout(), "%s: %.2f%% below market, net %s, ROI %.2f%%\n",
				analysis.Recommendation,
				analysis.DiscountPercent,
				formatCents(analysis.Breakdown.NetProfitCents),
				analysis.Breakdown.ROI,
			)

			return nil
		},
	}

	cmd.Flags().Float64Var(&minROI, "min-roi", 0, "minimum ROI percent")

	return cmd
}

func newReportCmd(a *app) *cobra.Command {
	var (
		month  string
		asCSV  bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Monthly sales summary or CSV export of the sales log",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if asCSV {
				data, err := a.services.Report.ExportCSV(ctx)
				if err != nil {
					return err
				}

				if output == "" {
					_, err = cmd.OutOrStdout().Write(data)
					return err
				}

				return os.WriteFile(output, data, 0o600) //nolint:mnd
			}

			m := value.NewMonth(time.Now())

			if month != "" {
				var err error

				m, err = value.ParseMonth(month)
				if err != nil {
					return fmt.Errorf("month must be YYYY-MM: %w", err)
				}
			}

			sales, err := a.services.Report.Sales(ctx)
			if err != nil {
				return err
			}

			s := report.Monthly(sales, m)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			printf(w, "Month\t%s\n", m)
			printf(w, "Sales\t%d\n", s.SalesCount)
			printf(w, "Revenue\t%s\n", formatCents(s.RevenueCents))
			printf(w, "Cost\t%s\n", formatCents(s.CostCents))
			printf(w, "Fees\t%s\n", formatCents(s.FeesCents))
			printf(w, "Shipping\t%s\n", formatCents(s.ShippingCents))
			printf(w, "Net profit\t%s\n", formatCents(s.NetProfitCents))
			printf(w, "Avg ROI\t%.2f%%\n", s.AvgROI)
			printf(w, "Median ROI\t%.2f%%\n", s.MedianROI)

			if s.BestSale != nil {
				printf(w, "Best sale\t%s (%s)\n", s.BestSale.CardName, formatCents(s.BestSale.NetProfitCents))
			}

			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "month as YYYY-MM, current month by default")
	cmd.Flags().BoolVar(&asCSV, "csv", false, "export the whole sales log as CSV")
	cmd.Flags().StringVarP(&output, "output", "o", "", "CSV output file, stdout by default")

	return cmd
}
