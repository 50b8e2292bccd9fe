package reports

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/cotizaplus/cotiza-backend/internal/pricing"
	"github.com/cotizaplus/cotiza-backend/pkg/db/models"
	"github.com/cotizaplus/cotiza-backend/pkg/enums"
)

type stubSource struct {
	quotes []models.Quote
	err    error
}

func (s *stubSource) ListByCompany(_ context.Context, _ uuid.UUID) ([]models.Quote, error) {
	return s.quotes, s.err
}

func (s *stubSource) PriceQuote(_ context.Context, quote *models.Quote) (pricing.Financials, error) {
	fin := pricing.Financials{Installments: 1, SinglePayment: true}
	fin.RecurringTotal = quote.AnnualLicenseCost.Mul(decimal.NewFromFloat(1.13))
	fin.InstallmentAmount = fin.RecurringTotal
	if quote.IncludeImplementation {
		fin.OneTimeTotal = quote.ImplementationCost.Mul(decimal.NewFromFloat(1.13))
	}
	return fin, nil
}

func quoteWith(status enums.QuoteStatus, annual int64) models.Quote {
	return models.Quote{
		ID:                uuid.New(),
		CompanyID:         uuid.New(),
		Status:            status,
		ClientName:        "Cliente",
		PlanName:          "Pro",
		AnnualLicenseCost: decimal.NewFromInt(annual),
		CreatedAt:         time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestSummarize_GroupsByStatus(t *testing.T) {
	source := &stubSource{quotes: []models.Quote{
		quoteWith(enums.QuoteStatusDraft, 1000),
		quoteWith(enums.QuoteStatusDraft, 500),
		quoteWith(enums.QuoteStatusAccepted, 2000),
	}}
	svc := NewService(source)

	summary, err := svc.Summarize(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Equal(t, 3, summary.Total)
	require.Len(t, summary.ByStatus, 2)

	stats := map[enums.QuoteStatus]StatusStat{}
	for _, s := range summary.ByStatus {
		stats[s.Status] = s
	}
	require.Equal(t, 2, stats[enums.QuoteStatusDraft].Count)
	require.True(t, stats[enums.QuoteStatusDraft].RecurringTotal.Equal(decimal.NewFromFloat(1695)))
	require.Equal(t, 1, stats[enums.QuoteStatusAccepted].Count)
	require.True(t, stats[enums.QuoteStatusAccepted].RecurringTotal.Equal(decimal.NewFromFloat(2260)))
}

func TestSummarize_RequiresCompany(t *testing.T) {
	svc := NewService(&stubSource{})
	_, err := svc.Summarize(context.Background(), uuid.Nil)
	require.Error(t, err)
}

func TestExportCSV_WritesHeaderAndRows(t *testing.T) {
	source := &stubSource{quotes: []models.Quote{
		quoteWith(enums.QuoteStatusSent, 1000),
	}}
	svc := NewService(source)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(context.Background(), uuid.New(), &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "id", records[0][0])

	row := records[1]
	require.Equal(t, "Cliente", row[1])
	require.Equal(t, "enviada", row[2])
	require.Equal(t, "1130.00", row[6])
	require.Equal(t, "2026-03-10", row[8])
}
