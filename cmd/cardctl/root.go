package main

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"card_tracker/internal/application"
	"card_tracker/internal/config"
	"card_tracker/pkg/contextx"
	"card_tracker/pkg/logx"
)

type app struct {
	cfg      config.Config
	services application.Services
	closeFn  func()
}

func newRootCmd() *cobra.Command {
	a := &app{closeFn: func() {}}

	root := &cobra.Command{
		Use:           "cardctl",
		Short:         "Sports card resale tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			log := logx.New(cmd.ErrOrStderr(), cfg.App.LogFormat, cfg.App.LogLevel)
			ctx := contextx.WithLogger(cmd.Context(), log)
			cmd.SetContext(ctx)

			store, closeFn, err := application.OpenStore(ctx, cfg)
			if err != nil {
				return err
			}

			a.cfg = cfg
			a.closeFn = closeFn
			a.services = application.NewServices(cfg, store)

			slog.SetDefault(log)

			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			a.closeFn()
		},
	}

	root.AddCommand(
		newSearchCmd(a),
		newDealsCmd(a),
		newCalcCmd(a),
		newAnalyzeCmd(a),
		newReportCmd(a),
		newTrackCmd(a),
		newUpdatePricesCmd(a),
		newAddInventoryCmd(a),
		newInventoryCmd(a),
		newRecordSaleCmd(a),
	)

	return root
}

func formatCents(cents int64) string {
	return money.New(cents, money.USD).Display()
}

// parseDollars "12.34" -> 1234 цента.
func parseDollars(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	return d.Shift(2).Round(0).IntPart(), nil
}

// minROIFlag значение --min-roi, nil если флаг не задан.
func minROIFlag(cmd *cobra.Command, v float64) (*float64, error) {
	if !cmd.Flags().Changed("min-roi") {
		return nil, nil //nolint:nilnil
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("invalid --min-roi %v: must be a finite number", v)
	}

	return &v, nil
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
