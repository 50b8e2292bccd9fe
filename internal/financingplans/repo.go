package financingplans

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cotizaplus/cotiza-backend/pkg/db/models"
	"github.com/cotizaplus/cotiza-backend/pkg/enums"
)

// Repository handles financing plan persistence.
type Repository interface {
	Create(ctx context.Context, plan *models.FinancingPlan) error
	Update(ctx context.Context, plan *models.FinancingPlan) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.FinancingPlan, error)
	List(ctx context.Context, query ListQuery) ([]models.FinancingPlan, error)
	FindActiveForCompany(ctx context.Context, companyID uuid.UUID, installments int) (*models.FinancingPlan, error)
	FindActiveGlobal(ctx context.Context, installments int) (*models.FinancingPlan, error)
}

// ListQuery configures plan list queries.
type ListQuery struct {
	CompanyID     *uuid.UUID
	Status        *enums.PlanStatus
	IncludeGlobal bool
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a financing plan repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, plan *models.FinancingPlan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

func (r *repository) Update(ctx context.Context, plan *models.FinancingPlan) error {
	return r.db.WithContext(ctx).Save(plan).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.FinancingPlan, error) {
	var plan models.FinancingPlan
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

func (r *repository) List(ctx context.Context, query ListQuery) ([]models.FinancingPlan, error) {
	q := r.db.WithContext(ctx).Model(&models.FinancingPlan{})
	switch {
	case query.CompanyID != nil && query.IncludeGlobal:
		q = q.Where("company_id = ? OR company_id IS NULL", *query.CompanyID)
	case query.CompanyID != nil:
		q = q.Where("company_id = ?", *query.CompanyID)
	}
	if query.Status != nil {
		q = q.Where("status = ?", *query.Status)
	}

	var plans []models.FinancingPlan
	if err := q.Order("cuotas ASC, created_at DESC").Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *repository) FindActiveForCompany(ctx context.Context, companyID uuid.UUID, installments int) (*models.FinancingPlan, error) {
	var plan models.FinancingPlan
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND cuotas = ? AND status = ?", companyID, installments, enums.PlanStatusActive).
		Order("updated_at DESC").
		First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

func (r *repository) FindActiveGlobal(ctx context.Context, installments int) (*models.FinancingPlan, error) {
	var plan models.FinancingPlan
	if err := r.db.WithContext(ctx).
		Where("company_id IS NULL AND cuotas = ? AND status = ?", installments, enums.PlanStatusActive).
		Order("updated_at DESC").
		First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}
