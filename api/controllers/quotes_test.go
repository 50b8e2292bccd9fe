package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cotizaplus/cotiza-backend/api/middleware"
	"github.com/cotizaplus/cotiza-backend/internal/pricing"
	quotessvc "github.com/cotizaplus/cotiza-backend/internal/quotes"
	"github.com/cotizaplus/cotiza-backend/pkg/db/models"
	"github.com/cotizaplus/cotiza-backend/pkg/enums"
	pkgerrors "github.com/cotizaplus/cotiza-backend/pkg/errors"
)

type stubQuoteService struct {
	created    *models.Quote
	createdReq quotessvc.UpsertQuoteRequest
	quote      *models.Quote
	fin        pricing.Financials
	listParams quotessvc.ListParams
	listResult *quotessvc.ListResult
	transition enums.QuoteStatus
	err        error
}

func (s *stubQuoteService) Create(_ context.Context, _ uuid.UUID, req quotessvc.UpsertQuoteRequest) (*models.Quote, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.createdReq = req
	return s.created, nil
}

func (s *stubQuoteService) Update(_ context.Context, _, _ uuid.UUID, _ quotessvc.UpsertQuoteRequest) (*models.Quote, error) {
	return s.quote, s.err
}

func (s *stubQuoteService) Get(_ context.Context, _, _ uuid.UUID) (*models.Quote, error) {
	return s.quote, s.err
}

func (s *stubQuoteService) List(_ context.Context, params quotessvc.ListParams) (*quotessvc.ListResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.listParams = params
	return s.listResult, nil
}

func (s *stubQuoteService) Transition(_ context.Context, _, _ uuid.UUID, target enums.QuoteStatus) (*models.Quote, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.transition = target
	return s.quote, nil
}

func (s *stubQuoteService) Financials(_ context.Context, _, _ uuid.UUID) (*models.Quote, pricing.Financials, error) {
	return s.quote, s.fin, s.err
}

func (s *stubQuoteService) PublicFinancials(_ context.Context, _ uuid.UUID) (*models.Quote, pricing.Financials, error) {
	return s.quote, s.fin, s.err
}

func sampleQuote() *models.Quote {
	return &models.Quote{
		ID:                uuid.New(),
		CompanyID:         uuid.New(),
		Status:            enums.QuoteStatusDraft,
		ClientName:        "Acme Corp",
		PlanName:          "Pro",
		AnnualLicenseCost: decimal.NewFromInt(1200),
	}
}

func sampleFinancials() pricing.Financials {
	return pricing.Financials{
		Installments:          12,
		RecurringBase:         decimal.NewFromInt(1200),
		IVARate:               decimal.NewFromFloat(0.13),
		AdjustedRecurringBase: decimal.NewFromInt(1200),
		TaxableRecurringBase:  decimal.NewFromInt(1200),
		RecurringTax:          decimal.NewFromInt(156),
		RecurringTotal:        decimal.NewFromInt(1356),
		InstallmentAmount:     decimal.NewFromInt(113),
	}
}

func withCompany(req *http.Request) *http.Request {
	return req.WithContext(middleware.WithCompanyID(req.Context(), uuid.New()))
}

func withRouteID(req *http.Request, id uuid.UUID) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id.String())
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestQuoteCreateReturns201(t *testing.T) {
	service := &stubQuoteService{created: sampleQuote()}
	body := `{
		"cliente_nombre": "Acme Corp",
		"plan_nombre": "Pro",
		"costo_plan_anual": "1200",
		"cuotas": 12,
		"modulos_adicionales": [{"nombre": "Firma", "costo_anual": 80}]
	}`
	req := withCompany(httptest.NewRequest(http.MethodPost, "/api/v1/cotizaciones", strings.NewReader(body)))
	resp := httptest.NewRecorder()

	QuoteCreate(service, nil)(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	if service.createdReq.ClientName != "Acme Corp" {
		t.Fatalf("request not decoded: %+v", service.createdReq)
	}
	if !service.createdReq.AnnualLicenseCost.Decimal.Equal(decimal.NewFromInt(1200)) {
		t.Fatalf("string numeric not coerced: %s", service.createdReq.AnnualLicenseCost.Decimal)
	}
	if !service.createdReq.Installments.Set || service.createdReq.Installments.Value != 12 {
		t.Fatalf("cuotas not decoded: %+v", service.createdReq.Installments)
	}
}

func TestQuoteCreateRejectsMissingClient(t *testing.T) {
	service := &stubQuoteService{created: sampleQuote()}
	req := withCompany(httptest.NewRequest(http.MethodPost, "/api/v1/cotizaciones", strings.NewReader(`{"plan_nombre":"Pro"}`)))
	resp := httptest.NewRecorder()

	QuoteCreate(service, nil)(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestQuoteGetReturnsDetailWithBreakdown(t *testing.T) {
	quote := sampleQuote()
	service := &stubQuoteService{quote: quote, fin: sampleFinancials()}
	req := withRouteID(withCompany(httptest.NewRequest(http.MethodGet, "/api/v1/cotizaciones/"+quote.ID.String(), nil)), quote.ID)
	resp := httptest.NewRecorder()

	QuoteGet(service, nil)(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data quoteDetailResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Financials.RecurringTotal != "1356.00" {
		t.Fatalf("expected total 1356.00, got %s", envelope.Data.Financials.RecurringTotal)
	}
	if envelope.Data.Financials.InstallmentAmount != "113.00" {
		t.Fatalf("expected cuota 113.00, got %s", envelope.Data.Financials.InstallmentAmount)
	}
}

func TestQuoteGetInvalidUUID(t *testing.T) {
	service := &stubQuoteService{}
	req := withRouteID(withCompany(httptest.NewRequest(http.MethodGet, "/api/v1/cotizaciones/nope", nil)), uuid.UUID{})
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "nope")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	resp := httptest.NewRecorder()

	QuoteGet(service, nil)(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestQuoteAcceptTransitionsToAccepted(t *testing.T) {
	quote := sampleQuote()
	quote.Status = enums.QuoteStatusAccepted
	service := &stubQuoteService{quote: quote}
	req := withRouteID(withCompany(httptest.NewRequest(http.MethodPost, "/aceptar", nil)), quote.ID)
	resp := httptest.NewRecorder()

	QuoteAccept(service, nil)(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if service.transition != enums.QuoteStatusAccepted {
		t.Fatalf("expected transition to aceptada, got %s", service.transition)
	}
}

func TestQuoteTransitionRejectsUnknownStatus(t *testing.T) {
	quote := sampleQuote()
	service := &stubQuoteService{quote: quote}
	body := `{"estado": "archivada"}`
	req := withRouteID(withCompany(httptest.NewRequest(http.MethodPatch, "/estado", strings.NewReader(body))), quote.ID)
	resp := httptest.NewRecorder()

	QuoteTransition(service, nil)(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestQuoteTransitionTerminalConflict(t *testing.T) {
	service := &stubQuoteService{err: pkgerrors.New(pkgerrors.CodeStateConflict, "quote is in a terminal state")}
	body := `{"estado": "enviada"}`
	req := withRouteID(withCompany(httptest.NewRequest(http.MethodPatch, "/estado", strings.NewReader(body))), uuid.New())
	resp := httptest.NewRecorder()

	QuoteTransition(service, nil)(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.Code)
	}
}

func TestQuotesListPassesFilters(t *testing.T) {
	service := &stubQuoteService{listResult: &quotessvc.ListResult{Quotes: []models.Quote{*sampleQuote()}}}
	req := withCompany(httptest.NewRequest(http.MethodGet, "/api/v1/cotizaciones?estado=enviada&limit=10", nil))
	resp := httptest.NewRecorder()

	QuotesList(service, nil)(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if service.listParams.Status == nil || *service.listParams.Status != enums.QuoteStatusSent {
		t.Fatalf("expected estado filter, got %v", service.listParams.Status)
	}
	if service.listParams.Limit != 10 {
		t.Fatalf("expected limit 10, got %d", service.listParams.Limit)
	}
}

func TestPublicQuoteViewSkipsCompanyScope(t *testing.T) {
	quote := sampleQuote()
	service := &stubQuoteService{quote: quote, fin: sampleFinancials()}
	req := withRouteID(httptest.NewRequest(http.MethodGet, "/api/public/cotizaciones/"+quote.ID.String(), nil), quote.ID)
	resp := httptest.NewRecorder()

	PublicQuoteView(service, nil)(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var envelope struct {
		Data quoteDetailResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Financials.RecurringTotal != "1356.00" {
		t.Fatalf("public view total mismatch: %s", envelope.Data.Financials.RecurringTotal)
	}
}
