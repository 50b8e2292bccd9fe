package quotes

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/cotizaplus/cotiza-backend/pkg/db/models"
	"github.com/cotizaplus/cotiza-backend/pkg/enums"
	pkgerrors "github.com/cotizaplus/cotiza-backend/pkg/errors"
	"github.com/cotizaplus/cotiza-backend/pkg/pagination"
)

type stubRepo struct {
	quotes map[uuid.UUID]*models.Quote
	status map[uuid.UUID]enums.QuoteStatus
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		quotes: map[uuid.UUID]*models.Quote{},
		status: map[uuid.UUID]enums.QuoteStatus{},
	}
}

func (s *stubRepo) Create(ctx context.Context, quote *models.Quote) error {
	if quote.ID == uuid.Nil {
		quote.ID = uuid.New()
	}
	s.quotes[quote.ID] = quote
	return nil
}

func (s *stubRepo) Update(ctx context.Context, quote *models.Quote) error {
	s.quotes[quote.ID] = quote
	return nil
}

func (s *stubRepo) FindByID(ctx context.Context, companyID, id uuid.UUID) (*models.Quote, error) {
	quote, ok := s.quotes[id]
	if !ok || quote.CompanyID != companyID {
		return nil, nil
	}
	return quote, nil
}

func (s *stubRepo) FindByIDAnyCompany(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	return s.quotes[id], nil
}

func (s *stubRepo) List(ctx context.Context, params ListQuery) ([]models.Quote, *pagination.Cursor, error) {
	return nil, nil, nil
}

func (s *stubRepo) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]models.Quote, error) {
	return nil, nil
}

func (s *stubRepo) UpdateStatus(ctx context.Context, companyID, id uuid.UUID, status enums.QuoteStatus) error {
	s.status[id] = status
	if quote, ok := s.quotes[id]; ok {
		quote.Status = status
	}
	return nil
}

type stubResolver struct {
	plan  *models.FinancingPlan
	calls int
	seen  int
}

func (s *stubResolver) Resolve(ctx context.Context, companyID uuid.UUID, installments int) (*models.FinancingPlan, error) {
	s.calls++
	s.seen = installments
	return s.plan, nil
}

func newService(t *testing.T, repo Repository, resolver PlanResolver) *Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Repo: repo, Plans: resolver})
	require.NoError(t, err)
	return svc
}

func decodeRequest(t *testing.T, raw string) UpsertQuoteRequest {
	t.Helper()
	var req UpsertQuoteRequest
	require.NoError(t, json.Unmarshal([]byte(raw), &req))
	return req
}

func TestCreateClassifiesModulesAtIngestion(t *testing.T) {
	repo := newStubRepo()
	svc := newService(t, repo, &stubResolver{})

	req := decodeRequest(t, `{
		"cliente_nombre": "ACME",
		"plan_nombre": "Pro",
		"costo_plan_anual": 1200,
		"modulos_adicionales": [
			{"nombre": "Capacitación", "pago_unico": 50, "costo_anual": 100},
			{"nombre": "Reportes", "costo_anual": 240},
			{"nombre": "Gratis"}
		]
	}`)

	quote, err := svc.Create(context.Background(), uuid.New(), req)
	require.NoError(t, err)

	require.Len(t, quote.LineItems, 2)
	require.Equal(t, enums.LineItemKindOneTime, quote.LineItems[0].Kind)
	require.True(t, quote.LineItems[0].Amount.Equal(decimal.NewFromInt(50)))
	require.Equal(t, enums.LineItemKindRecurring, quote.LineItems[1].Kind)
	require.Equal(t, enums.QuoteStatusDraft, quote.Status)
}

func TestCreateToleratesGarbageNumerics(t *testing.T) {
	repo := newStubRepo()
	svc := newService(t, repo, &stubResolver{})

	req := decodeRequest(t, `{
		"cliente_nombre": "ACME",
		"plan_nombre": "Pro",
		"costo_plan_anual": "mil doscientos",
		"cuotas": "doce"
	}`)

	quote, err := svc.Create(context.Background(), uuid.New(), req)
	require.NoError(t, err)
	require.True(t, quote.AnnualLicenseCost.IsZero())
	require.Nil(t, quote.Installments)
}

func TestFinancialsUsesResolvedInstallmentsForPlanLookup(t *testing.T) {
	repo := newStubRepo()
	resolver := &stubResolver{}
	svc := newService(t, repo, resolver)

	companyID := uuid.New()
	cuotas := 1
	plazo := 12
	quote := &models.Quote{
		ID:                uuid.New(),
		CompanyID:         companyID,
		Status:            enums.QuoteStatusSent,
		AnnualLicenseCost: decimal.NewFromInt(1200),
		Installments:      &cuotas,
		TermMonths:        &plazo,
	}
	require.NoError(t, repo.Create(context.Background(), quote))

	_, result, err := svc.Financials(context.Background(), companyID, quote.ID)
	require.NoError(t, err)

	// cuotas=1 must drive the plan lookup, not plazo_meses=12.
	require.Equal(t, 1, resolver.seen)
	require.Equal(t, 1, result.Installments)
	require.True(t, result.SinglePayment)
}

func TestFinancialsAppliesResolvedPlan(t *testing.T) {
	repo := newStubRepo()
	resolver := &stubResolver{
		plan: &models.FinancingPlan{
			Title:           "12 cuotas",
			InterestPercent: decimal.NewFromInt(10),
			AdjustmentType:  enums.AdjustmentTypeRecharge,
		},
	}
	svc := newService(t, repo, resolver)

	companyID := uuid.New()
	cuotas := 12
	quote := &models.Quote{
		ID:                uuid.New(),
		CompanyID:         companyID,
		AnnualLicenseCost: decimal.NewFromInt(1200),
		Installments:      &cuotas,
	}
	require.NoError(t, repo.Create(context.Background(), quote))

	_, result, err := svc.Financials(context.Background(), companyID, quote.ID)
	require.NoError(t, err)
	require.True(t, result.RecurringTotal.Equal(decimal.RequireFromString("1491.6")))
	require.Equal(t, "12 cuotas", result.PlanTitle)
}

func TestFinancialsMatchesPublicFinancials(t *testing.T) {
	repo := newStubRepo()
	resolver := &stubResolver{
		plan: &models.FinancingPlan{
			Title:           "6 cuotas",
			InterestPercent: decimal.RequireFromString("7.5"),
			AdjustmentType:  enums.AdjustmentTypeRecharge,
		},
	}
	svc := newService(t, repo, resolver)

	companyID := uuid.New()
	cuotas := 6
	quote := &models.Quote{
		ID:                uuid.New(),
		CompanyID:         companyID,
		AnnualLicenseCost: decimal.RequireFromString("999.99"),
		Installments:      &cuotas,
	}
	require.NoError(t, repo.Create(context.Background(), quote))

	_, authed, err := svc.Financials(context.Background(), companyID, quote.ID)
	require.NoError(t, err)
	_, public, err := svc.PublicFinancials(context.Background(), quote.ID)
	require.NoError(t, err)

	require.True(t, authed.RecurringTotal.Equal(public.RecurringTotal))
	require.True(t, authed.InstallmentAmount.Equal(public.InstallmentAmount))
	require.True(t, authed.OneTimeTotal.Equal(public.OneTimeTotal))
}

func TestFinancialsUsesConfiguredIVADefault(t *testing.T) {
	repo := newStubRepo()
	defaultIVA := decimal.NewFromInt(19)
	svc, err := NewService(ServiceParams{
		Repo:              repo,
		Plans:             &stubResolver{},
		DefaultIVAPercent: &defaultIVA,
	})
	require.NoError(t, err)

	companyID := uuid.New()
	quote := &models.Quote{
		ID:                uuid.New(),
		CompanyID:         companyID,
		AnnualLicenseCost: decimal.NewFromInt(1000),
	}
	require.NoError(t, repo.Create(context.Background(), quote))

	_, result, err := svc.Financials(context.Background(), companyID, quote.ID)
	require.NoError(t, err)
	require.True(t, result.RecurringTax.Equal(decimal.NewFromInt(190)))
	require.True(t, result.RecurringTotal.Equal(decimal.NewFromInt(1190)))
}

func TestFinancialsQuoteIVAWinsOverConfiguredDefault(t *testing.T) {
	repo := newStubRepo()
	defaultIVA := decimal.NewFromInt(19)
	svc, err := NewService(ServiceParams{
		Repo:              repo,
		Plans:             &stubResolver{},
		DefaultIVAPercent: &defaultIVA,
	})
	require.NoError(t, err)

	companyID := uuid.New()
	iva := decimal.Zero
	quote := &models.Quote{
		ID:                uuid.New(),
		CompanyID:         companyID,
		AnnualLicenseCost: decimal.NewFromInt(1000),
		IVAPercent:        &iva,
	}
	require.NoError(t, repo.Create(context.Background(), quote))

	_, result, err := svc.Financials(context.Background(), companyID, quote.ID)
	require.NoError(t, err)
	require.True(t, result.RecurringTax.IsZero())
	require.True(t, result.RecurringTotal.Equal(decimal.NewFromInt(1000)))
}

func TestNewServiceRejectsNegativeIVADefault(t *testing.T) {
	bad := decimal.NewFromInt(-1)
	_, err := NewService(ServiceParams{
		Repo:              newStubRepo(),
		Plans:             &stubResolver{},
		DefaultIVAPercent: &bad,
	})
	require.Error(t, err)
}

func TestAcceptSetsStatusWithoutTouchingFinancials(t *testing.T) {
	repo := newStubRepo()
	svc := newService(t, repo, &stubResolver{})

	companyID := uuid.New()
	quote := &models.Quote{
		ID:                uuid.New(),
		CompanyID:         companyID,
		Status:            enums.QuoteStatusSent,
		AnnualLicenseCost: decimal.NewFromInt(1200),
	}
	require.NoError(t, repo.Create(context.Background(), quote))

	updated, err := svc.Accept(context.Background(), companyID, quote.ID)
	require.NoError(t, err)
	require.Equal(t, enums.QuoteStatusAccepted, updated.Status)
	require.True(t, updated.AnnualLicenseCost.Equal(decimal.NewFromInt(1200)))
}

func TestTransitionFromTerminalStateIsRejected(t *testing.T) {
	repo := newStubRepo()
	svc := newService(t, repo, &stubResolver{})

	companyID := uuid.New()
	quote := &models.Quote{
		ID:        uuid.New(),
		CompanyID: companyID,
		Status:    enums.QuoteStatusRejected,
	}
	require.NoError(t, repo.Create(context.Background(), quote))

	_, err := svc.Transition(context.Background(), companyID, quote.ID, enums.QuoteStatusSent)
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())
}

func TestGetScopesByCompany(t *testing.T) {
	repo := newStubRepo()
	svc := newService(t, repo, &stubResolver{})

	quote := &models.Quote{ID: uuid.New(), CompanyID: uuid.New()}
	require.NoError(t, repo.Create(context.Background(), quote))

	_, err := svc.Get(context.Background(), uuid.New(), quote.ID)
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestUpdateRejectsTerminalQuote(t *testing.T) {
	repo := newStubRepo()
	svc := newService(t, repo, &stubResolver{})

	companyID := uuid.New()
	quote := &models.Quote{ID: uuid.New(), CompanyID: companyID, Status: enums.QuoteStatusAccepted}
	require.NoError(t, repo.Create(context.Background(), quote))

	_, err := svc.Update(context.Background(), companyID, quote.ID, UpsertQuoteRequest{ClientName: "X", PlanName: "Y"})
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())
}
