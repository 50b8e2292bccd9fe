package quotes

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cotizaplus/cotiza-backend/pkg/db/models"
	"github.com/cotizaplus/cotiza-backend/pkg/enums"
	"github.com/cotizaplus/cotiza-backend/pkg/pagination"
)

// Repository handles quote persistence.
type Repository interface {
	Create(ctx context.Context, quote *models.Quote) error
	Update(ctx context.Context, quote *models.Quote) error
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*models.Quote, error)
	FindByIDAnyCompany(ctx context.Context, id uuid.UUID) (*models.Quote, error)
	List(ctx context.Context, params ListQuery) ([]models.Quote, *pagination.Cursor, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]models.Quote, error)
	UpdateStatus(ctx context.Context, companyID, id uuid.UUID, status enums.QuoteStatus) error
}

// ListQuery configures quote list queries.
type ListQuery struct {
	CompanyID uuid.UUID
	Status    *enums.QuoteStatus
	Limit     int
	Cursor    *pagination.Cursor
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a quote repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, quote *models.Quote) error {
	return r.db.WithContext(ctx).Create(quote).Error
}

func (r *repository) Update(ctx context.Context, quote *models.Quote) error {
	return r.db.WithContext(ctx).Save(quote).Error
}

func (r *repository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*models.Quote, error) {
	var quote models.Quote
	if err := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		First(&quote).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &quote, nil
}

func (r *repository) FindByIDAnyCompany(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	var quote models.Quote
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&quote).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &quote, nil
}

func (r *repository) List(ctx context.Context, params ListQuery) ([]models.Quote, *pagination.Cursor, error) {
	limit := pagination.NormalizeLimit(params.Limit)
	query := r.db.WithContext(ctx).Model(&models.Quote{}).Where("company_id = ?", params.CompanyID)
	if params.Status != nil {
		query = query.Where("estado = ?", *params.Status)
	}
	if params.Cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var listed []models.Quote
	if err := query.Order("created_at DESC, id DESC").Limit(pagination.LimitWithBuffer(limit)).Find(&listed).Error; err != nil {
		return nil, nil, err
	}

	if len(listed) > limit {
		next := listed[limit]
		listed = listed[:limit]
		return listed, &pagination.Cursor{
			CreatedAt: next.CreatedAt,
			ID:        next.ID,
		}, nil
	}

	return listed, nil, nil
}

func (r *repository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]models.Quote, error) {
	var listed []models.Quote
	if err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&listed).Error; err != nil {
		return nil, err
	}
	return listed, nil
}

func (r *repository) UpdateStatus(ctx context.Context, companyID, id uuid.UUID, status enums.QuoteStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.Quote{}).
		Where("id = ? AND company_id = ?", id, companyID).
		Update("estado", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
