package leads

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cotizaplus/cotiza-backend/internal/repo"
	"github.com/cotizaplus/cotiza-backend/pkg/db/models"
	"github.com/cotizaplus/cotiza-backend/pkg/enums"
)

// Repository handles lead persistence.
type Repository interface {
	Create(ctx context.Context, lead *models.Lead) error
	Update(ctx context.Context, lead *models.Lead) error
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*models.Lead, error)
	List(ctx context.Context, companyID uuid.UUID, status *enums.LeadStatus) ([]models.Lead, error)
}

type repository struct {
	repo.Base
}

// NewRepository returns a lead repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) Create(ctx context.Context, lead *models.Lead) error {
	return r.DB(ctx).Create(lead).Error
}

func (r *repository) Update(ctx context.Context, lead *models.Lead) error {
	return r.DB(ctx).Save(lead).Error
}

func (r *repository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*models.Lead, error) {
	var lead models.Lead
	if err := r.DB(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&lead).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &lead, nil
}

func (r *repository) List(ctx context.Context, companyID uuid.UUID, status *enums.LeadStatus) ([]models.Lead, error) {
	query := r.DB(ctx).
		Where("company_id = ?", companyID).
		Order("created_at DESC")
	if status != nil {
		query = query.Where("estado = ?", *status)
	}

	var listed []models.Lead
	if err := query.Find(&listed).Error; err != nil {
		return nil, err
	}
	return listed, nil
}
