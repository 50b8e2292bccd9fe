package leads

import (
	"context"

	"github.com/google/uuid"

	"github.com/cotizaplus/cotiza-backend/pkg/db/models"
	"github.com/cotizaplus/cotiza-backend/pkg/enums"
	pkgerrors "github.com/cotizaplus/cotiza-backend/pkg/errors"
	"github.com/cotizaplus/cotiza-backend/pkg/logger"
)

// UpsertLeadRequest carries lead fields from the API.
type UpsertLeadRequest struct {
	Name     string  `json:"nombre" validate:"required,min=2,max=200"`
	Business *string `json:"empresa" validate:"omitempty,max=200"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"telefono" validate:"omitempty,max=40"`
	Status   string  `json:"estado" validate:"omitempty"`
	Notes    *string `json:"notas" validate:"omitempty,max=2000"`
}

// Service implements sales funnel lead management.
type Service struct {
	repo Repository
	logg *logger.Logger
}

func NewService(repo Repository, logg *logger.Logger) *Service {
	return &Service{repo: repo, logg: logg}
}

func (s *Service) Create(ctx context.Context, companyID uuid.UUID, req UpsertLeadRequest) (*models.Lead, error) {
	if companyID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "company id is required")
	}

	lead := &models.Lead{CompanyID: companyID, Status: enums.LeadStatusNew}
	if err := applyRequest(lead, req); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, lead); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating lead")
	}
	return lead, nil
}

func (s *Service) Update(ctx context.Context, companyID, id uuid.UUID, req UpsertLeadRequest) (*models.Lead, error) {
	lead, err := s.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	if err := applyRequest(lead, req); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, lead); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating lead")
	}
	return lead, nil
}

func (s *Service) Get(ctx context.Context, companyID, id uuid.UUID) (*models.Lead, error) {
	return s.load(ctx, companyID, id)
}

func (s *Service) List(ctx context.Context, companyID uuid.UUID, status *enums.LeadStatus) ([]models.Lead, error) {
	if companyID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "company id is required")
	}
	listed, err := s.repo.List(ctx, companyID, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing leads")
	}
	return listed, nil
}

func (s *Service) load(ctx context.Context, companyID, id uuid.UUID) (*models.Lead, error) {
	if companyID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "company id is required")
	}
	lead, err := s.repo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading lead")
	}
	if lead == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "lead not found")
	}
	return lead, nil
}

func applyRequest(lead *models.Lead, req UpsertLeadRequest) error {
	lead.Name = req.Name
	lead.Business = req.Business
	lead.Email = req.Email
	lead.Phone = req.Phone
	lead.Notes = req.Notes

	if req.Status != "" {
		status, err := enums.ParseLeadStatus(req.Status)
		if err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "invalid lead status")
		}
		lead.Status = status
	}
	return nil
}
