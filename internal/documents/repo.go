package documents

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cotizaplus/cotiza-backend/pkg/db/models"
)

// Repository handles generated document persistence.
type Repository interface {
	Create(ctx context.Context, doc *models.QuoteDocument) error
	LatestForQuote(ctx context.Context, quoteID uuid.UUID) (*models.QuoteDocument, error)
	ListByQuote(ctx context.Context, quoteID uuid.UUID) ([]models.QuoteDocument, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a document repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, doc *models.QuoteDocument) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *repository) LatestForQuote(ctx context.Context, quoteID uuid.UUID) (*models.QuoteDocument, error) {
	var doc models.QuoteDocument
	if err := r.db.WithContext(ctx).
		Where("quote_id = ?", quoteID).
		Order("created_at DESC").
		First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

func (r *repository) ListByQuote(ctx context.Context, quoteID uuid.UUID) ([]models.QuoteDocument, error) {
	var docs []models.QuoteDocument
	if err := r.db.WithContext(ctx).
		Where("quote_id = ?", quoteID).
		Order("created_at DESC").
		Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}
