package main

import (
	"context"

	"github.com/google/uuid"

	"github.com/cotizaplus/cotiza-backend/internal/pricing"
	"github.com/cotizaplus/cotiza-backend/internal/quotes"
	"github.com/cotizaplus/cotiza-backend/pkg/db/models"
)

// reportSource feeds the report service from the quote repository while
// pricing through the quote service.
type reportSource struct {
	repo   quotes.Repository
	quotes *quotes.Service
}

func (r reportSource) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]models.Quote, error) {
	return r.repo.ListByCompany(ctx, companyID)
}

func (r reportSource) PriceQuote(ctx context.Context, quote *models.Quote) (pricing.Financials, error) {
	return r.quotes.PriceQuote(ctx, quote)
}
