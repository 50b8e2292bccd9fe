package financingplans

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/cotizaplus/cotiza-backend/pkg/db/models"
	"github.com/cotizaplus/cotiza-backend/pkg/enums"
	pkgerrors "github.com/cotizaplus/cotiza-backend/pkg/errors"
)

// ServiceParams groups dependencies for the financing plan service.
type ServiceParams struct {
	Repo Repository
}

// Service orchestrates financing plan management and resolution.
type Service struct {
	repo Repository
}

// NewService builds a financing plan service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}
	return &Service{repo: params.Repo}, nil
}

// Resolve finds the plan governing the given installment count. The lookup
// is an explicit two-step fallback: company-scoped first, then the global
// plan. Only active plans are eligible; no match is not an error, the
// caller falls back to the quote's own legacy surcharge field.
func (s *Service) Resolve(ctx context.Context, companyID uuid.UUID, installments int) (*models.FinancingPlan, error) {
	if installments < 1 {
		return nil, nil
	}

	plan, err := s.repo.FindActiveForCompany(ctx, companyID, installments)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolving company financing plan")
	}
	if plan != nil {
		return plan, nil
	}

	plan, err = s.repo.FindActiveGlobal(ctx, installments)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolving global financing plan")
	}
	return plan, nil
}

// Create validates and persists a new plan.
func (s *Service) Create(ctx context.Context, plan *models.FinancingPlan) error {
	if err := validatePlan(plan); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, plan); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating financing plan")
	}
	return nil
}

// Update validates and saves an existing plan.
func (s *Service) Update(ctx context.Context, plan *models.FinancingPlan) error {
	if plan == nil || plan.ID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "plan id is required")
	}
	if err := validatePlan(plan); err != nil {
		return err
	}

	existing, err := s.repo.FindByID(ctx, plan.ID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading financing plan")
	}
	if existing == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "financing plan not found")
	}

	if err := s.repo.Update(ctx, plan); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating financing plan")
	}
	return nil
}

// Get loads a plan by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.FinancingPlan, error) {
	plan, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading financing plan")
	}
	if plan == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "financing plan not found")
	}
	return plan, nil
}

// List returns plans visible to the given company, including globals.
func (s *Service) List(ctx context.Context, companyID uuid.UUID, status *enums.PlanStatus) ([]models.FinancingPlan, error) {
	plans, err := s.repo.List(ctx, ListQuery{
		CompanyID:     &companyID,
		Status:        status,
		IncludeGlobal: true,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing financing plans")
	}
	return plans, nil
}

func validatePlan(plan *models.FinancingPlan) error {
	if plan == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "plan is required")
	}
	if plan.Title == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "plan title is required")
	}
	if plan.Installments < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "plan installments must be at least 1")
	}
	if !plan.AdjustmentType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid adjustment type")
	}
	if plan.InterestPercent.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "interest percent cannot be negative")
	}
	if plan.Status != "" && !plan.Status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid plan status")
	}
	return nil
}
