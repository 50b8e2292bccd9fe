package reports

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cotizaplus/cotiza-backend/internal/pricing"
	"github.com/cotizaplus/cotiza-backend/pkg/db/models"
	"github.com/cotizaplus/cotiza-backend/pkg/enums"
	pkgerrors "github.com/cotizaplus/cotiza-backend/pkg/errors"
)

// QuoteSource lists a company's quotes and prices them through the shared
// calculation path.
type QuoteSource interface {
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]models.Quote, error)
	PriceQuote(ctx context.Context, quote *models.Quote) (pricing.Financials, error)
}

// StatusStat aggregates quote counts and money per pipeline status.
type StatusStat struct {
	Status         enums.QuoteStatus `json:"estado"`
	Count          int               `json:"cantidad"`
	RecurringTotal decimal.Decimal   `json:"total_recurrente"`
	OneTimeTotal   decimal.Decimal   `json:"total_pago_unico"`
}

// Summary is the company-wide pipeline rollup.
type Summary struct {
	CompanyID uuid.UUID    `json:"company_id"`
	Total     int          `json:"total"`
	ByStatus  []StatusStat `json:"por_estado"`
}

// Service produces pipeline summaries and CSV exports.
type Service struct {
	quotes QuoteSource
}

func NewService(quotes QuoteSource) *Service {
	return &Service{quotes: quotes}
}

// Summarize prices every quote and rolls the totals up per status. Totals come
// from the calculator, never from persisted amounts.
func (s *Service) Summarize(ctx context.Context, companyID uuid.UUID) (*Summary, error) {
	if companyID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "company id is required")
	}

	listed, err := s.quotes.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing quotes")
	}

	byStatus := map[enums.QuoteStatus]*StatusStat{}
	for i := range listed {
		quote := &listed[i]
		fin, err := s.quotes.PriceQuote(ctx, quote)
		if err != nil {
			return nil, err
		}

		stat, ok := byStatus[quote.Status]
		if !ok {
			stat = &StatusStat{Status: quote.Status}
			byStatus[quote.Status] = stat
		}
		stat.Count++
		stat.RecurringTotal = stat.RecurringTotal.Add(fin.RecurringTotal)
		stat.OneTimeTotal = stat.OneTimeTotal.Add(fin.OneTimeTotal)
	}

	summary := &Summary{CompanyID: companyID, Total: len(listed)}
	for _, stat := range byStatus {
		summary.ByStatus = append(summary.ByStatus, *stat)
	}
	sort.Slice(summary.ByStatus, func(i, j int) bool {
		return summary.ByStatus[i].Status < summary.ByStatus[j].Status
	})
	return summary, nil
}

// ExportCSV streams the per-quote breakdown for spreadsheet review.
func (s *Service) ExportCSV(ctx context.Context, companyID uuid.UUID, w io.Writer) error {
	if companyID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "company id is required")
	}

	listed, err := s.quotes.ListByCompany(ctx, companyID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing quotes")
	}

	cw := csv.NewWriter(w)
	header := []string{
		"id", "cliente", "estado", "plan",
		"cuotas", "monto_cuota",
		"total_recurrente", "total_pago_unico", "creada",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for i := range listed {
		quote := &listed[i]
		fin, err := s.quotes.PriceQuote(ctx, quote)
		if err != nil {
			return err
		}

		row := []string{
			quote.ID.String(),
			quote.ClientName,
			quote.Status.String(),
			quote.PlanName,
			fmt.Sprintf("%d", fin.Installments),
			fin.InstallmentAmount.StringFixed(2),
			fin.RecurringTotal.StringFixed(2),
			fin.OneTimeTotal.StringFixed(2),
			quote.CreatedAt.UTC().Format("2006-01-02"),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
