package controllers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/cotizaplus/cotiza-backend/api/middleware"
	"github.com/cotizaplus/cotiza-backend/api/responses"
	reportssvc "github.com/cotizaplus/cotiza-backend/internal/reports"
	"github.com/cotizaplus/cotiza-backend/pkg/logger"
)

// ReportService describes the reporting methods used by the HTTP controllers.
type ReportService interface {
	Summarize(ctx context.Context, companyID uuid.UUID) (*reportssvc.Summary, error)
	ExportCSV(ctx context.Context, companyID uuid.UUID, w io.Writer) error
}

func ReportsSummary(svc ReportService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		summary, err := svc.Summarize(ctx, middleware.CompanyIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, summary)
	}
}

// ReportsExportCSV streams the quote pipeline as a CSV download.
func ReportsExportCSV(svc ReportService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		filename := fmt.Sprintf("cotizaciones_%s.csv", time.Now().UTC().Format("20060102"))
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

		if err := svc.ExportCSV(ctx, middleware.CompanyIDFromContext(ctx), w); err != nil {
			// headers may already be out; log rather than rewrite the response
			if logg != nil {
				logg.Error(ctx, "csv export failed", err)
			}
		}
	}
}
