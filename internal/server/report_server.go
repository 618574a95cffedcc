package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"card_tracker/internal/domain/entity"
	"card_tracker/internal/domain/value"
	"card_tracker/pkg/errcodes"
	"card_tracker/pkg/httpx/reply"
	"card_tracker/pkg/lox"
)

type reportService interface {
	Sales(ctx context.Context) ([]entity.Sale, error)
	Monthly(ctx context.Context, month value.Month) (entity.MonthlySummary, error)
	Summary(ctx context.Context) (entity.Summary, error)
	ExportCSV(ctx context.Context) ([]byte, error)
}

type ReportServer struct {
	reportService reportService
	now           func() time.Time
}

func NewReportServer(reportService reportService) ReportServer {
	return ReportServer{
		reportService: reportService,
		now:           time.Now,
	}
}

func (s ReportServer) getV1Sales(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	sales, err := s.reportService.Sales(ctx)
	if err != nil {
		return fmt.Errorf("reportService.Sales: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, lox.Map(sales, newRESTSale))

	return nil
}

func (s ReportServer) getV1SalesExport(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	data, err := s.reportService.ExportCSV(ctx)
	if err != nil {
		return fmt.Errorf("reportService.ExportCSV: %w", err)
	}

	reply.CSV(ctx, w, "sales.csv", data)

	return nil
}

// getV1ReportsMonthly без параметра month отдаёт текущий месяц.
func (s ReportServer) getV1ReportsMonthly(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	month := value.NewMonth(s.now().UTC())

	if raw := r.URL.Query().Get("month"); raw != "" {
		var err error

		month, err = value.ParseMonth(raw)
		if err != nil {
			return invalidArgument(
				fmt.Errorf("value.ParseMonth: %w", err),
				errcodes.InvalidMonth,
				"month must be in YYYY-MM format",
			)
		}
	}

	summary, err := s.reportService.Monthly(ctx, month)
	if err != nil {
		return fmt.Errorf("reportService.Monthly: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTMonthlySummary(summary))

	return nil
}

func (s ReportServer) getV1ReportsSummary(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	summary, err := s.reportService.Summary(ctx)
	if err != nil {
		return fmt.Errorf("reportService.Summary: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTSummary(summary))

	return nil
}
