package quotes

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cotizaplus/cotiza-backend/internal/pricing"
	"github.com/cotizaplus/cotiza-backend/pkg/db/models"
	"github.com/cotizaplus/cotiza-backend/pkg/enums"
	pkgerrors "github.com/cotizaplus/cotiza-backend/pkg/errors"
	"github.com/cotizaplus/cotiza-backend/pkg/pagination"
)

// PlanResolver resolves the financing plan for an installment count.
type PlanResolver interface {
	Resolve(ctx context.Context, companyID uuid.UUID, installments int) (*models.FinancingPlan, error)
}

// ServiceParams groups dependencies for the quote service.
type ServiceParams struct {
	Repo  Repository
	Plans PlanResolver

	// DefaultIVAPercent applies to quotes that carry no explicit tax rate.
	// Nil falls back to pricing.DefaultIVAPercent; an explicit zero means
	// untaxed quotes by default.
	DefaultIVAPercent *decimal.Decimal
}

// Service orchestrates quote operations. Financials is the only path that
// prices a quote; every surface (detail view, public view, PDF) goes
// through it so the figures always agree.
type Service struct {
	repo       Repository
	plans      PlanResolver
	defaultIVA decimal.Decimal
}

// NewService builds a quote service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}
	if params.Plans == nil {
		return nil, errors.New("plan resolver is required")
	}
	defaultIVA := pricing.DefaultIVAPercent
	if params.DefaultIVAPercent != nil {
		if params.DefaultIVAPercent.IsNegative() {
			return nil, errors.New("default iva percent cannot be negative")
		}
		defaultIVA = *params.DefaultIVAPercent
	}
	return &Service{repo: params.Repo, plans: params.Plans, defaultIVA: defaultIVA}, nil
}

// ListParams configures quote listing.
type ListParams struct {
	CompanyID uuid.UUID
	Status    *enums.QuoteStatus
	Limit     int
	Cursor    string
}

// ListResult carries a quote page and the next cursor, when present.
type ListResult struct {
	Quotes     []models.Quote
	NextCursor string
}

// Create ingests a new quote for the company.
func (s *Service) Create(ctx context.Context, companyID uuid.UUID, req UpsertQuoteRequest) (*models.Quote, error) {
	if companyID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "company id is required")
	}

	quote := &models.Quote{
		CompanyID: companyID,
		Status:    enums.QuoteStatusDraft,
	}
	applyRequest(quote, req)

	if err := s.repo.Create(ctx, quote); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating quote")
	}
	return quote, nil
}

// Update replaces the editable fields of an existing quote.
func (s *Service) Update(ctx context.Context, companyID, id uuid.UUID, req UpsertQuoteRequest) (*models.Quote, error) {
	quote, err := s.loadQuote(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if quote.Status.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "quote is in a terminal state")
	}

	applyRequest(quote, req)

	if err := s.repo.Update(ctx, quote); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating quote")
	}
	return quote, nil
}

// Get loads a quote scoped to the company.
func (s *Service) Get(ctx context.Context, companyID, id uuid.UUID) (*models.Quote, error) {
	return s.loadQuote(ctx, companyID, id)
}

// GetPublic loads a quote without a company scope for the client-facing
// view; access control is enforced upstream by the share link.
func (s *Service) GetPublic(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	quote, err := s.repo.FindByIDAnyCompany(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading quote")
	}
	if quote == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
	}
	return quote, nil
}

// List pages through the company's quotes.
func (s *Service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	if params.CompanyID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "company id is required")
	}
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	listed, next, err := s.repo.List(ctx, ListQuery{
		CompanyID: params.CompanyID,
		Status:    params.Status,
		Limit:     params.Limit,
		Cursor:    cursor,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing quotes")
	}

	result := &ListResult{Quotes: listed}
	if next != nil {
		result.NextCursor = pagination.EncodeCursor(*next)
	}
	return result, nil
}

// Transition moves the quote's lifecycle status. Terminal states are
// final; the transition never touches financial fields.
func (s *Service) Transition(ctx context.Context, companyID, id uuid.UUID, target enums.QuoteStatus) (*models.Quote, error) {
	if !target.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid quote status")
	}

	quote, err := s.loadQuote(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if quote.Status == target {
		return quote, nil
	}
	if quote.Status.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "quote is in a terminal state")
	}

	if err := s.repo.UpdateStatus(ctx, companyID, id, target); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating quote status")
	}

	quote.Status = target
	return quote, nil
}

// Accept marks the quote aceptada, on client or agent acceptance.
func (s *Service) Accept(ctx context.Context, companyID, id uuid.UUID) (*models.Quote, error) {
	return s.Transition(ctx, companyID, id, enums.QuoteStatusAccepted)
}

// Financials loads the quote and prices it. This is the single shared
// calculation path for every rendering surface.
func (s *Service) Financials(ctx context.Context, companyID, id uuid.UUID) (*models.Quote, pricing.Financials, error) {
	quote, err := s.loadQuote(ctx, companyID, id)
	if err != nil {
		return nil, pricing.Financials{}, err
	}
	result, err := s.PriceQuote(ctx, quote)
	return quote, result, err
}

// PublicFinancials prices a quote for the unauthenticated client view.
func (s *Service) PublicFinancials(ctx context.Context, id uuid.UUID) (*models.Quote, pricing.Financials, error) {
	quote, err := s.GetPublic(ctx, id)
	if err != nil {
		return nil, pricing.Financials{}, err
	}
	result, err := s.PriceQuote(ctx, quote)
	return quote, result, err
}

// PriceQuote resolves the financing plan for an already-loaded quote and
// runs the calculator.
func (s *Service) PriceQuote(ctx context.Context, quote *models.Quote) (pricing.Financials, error) {
	if quote == nil {
		return pricing.Financials{}, pkgerrors.New(pkgerrors.CodeValidation, "quote is required")
	}

	installments, _ := pricing.ResolveInstallments(quote.Installments, quote.TermMonths)
	plan, err := s.plans.Resolve(ctx, quote.CompanyID, installments)
	if err != nil {
		return pricing.Financials{}, err
	}

	input := pricing.InputFromQuote(quote)
	if input.IVAPercent == nil {
		iva := s.defaultIVA
		input.IVAPercent = &iva
	}
	return pricing.Calculate(input, pricing.OverrideFromPlan(plan)), nil
}

func (s *Service) loadQuote(ctx context.Context, companyID, id uuid.UUID) (*models.Quote, error) {
	if companyID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "company id is required")
	}
	quote, err := s.repo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading quote")
	}
	if quote == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
	}
	return quote, nil
}

func applyRequest(quote *models.Quote, req UpsertQuoteRequest) {
	quote.ClientName = req.ClientName
	quote.ClientCompany = req.ClientCompany
	quote.ClientEmail = req.ClientEmail
	quote.ClientPhone = req.ClientPhone

	quote.PlanName = req.PlanName
	quote.AnnualVolume = req.AnnualVolume

	quote.AnnualLicenseCost = req.AnnualLicenseCost.Decimal
	quote.MonthlyLicenseCost = req.MonthlyLicenseCost.Decimal
	quote.ImplementationCost = req.ImplementationCost.Decimal
	quote.WhatsAppCost = req.WhatsAppCost.Decimal
	quote.LegacySurchargePct = req.LegacySurchargePct.Decimal
	quote.ManualDiscountPercent = req.ManualDiscountPercent.Decimal
	quote.Installments = req.Installments.Ptr()
	quote.TermMonths = req.TermMonths.Ptr()

	if req.IVAPercent != nil {
		iva := req.IVAPercent.Decimal
		quote.IVAPercent = &iva
	} else {
		quote.IVAPercent = nil
	}

	quote.IncludeImplementation = req.IncludeImplementation
	quote.IncludeWhatsApp = req.IncludeWhatsApp

	quote.LineItems = resolveLineItems(req.Modules)
}
