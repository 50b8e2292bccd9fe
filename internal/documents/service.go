package documents

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cotizaplus/cotiza-backend/internal/pricing"
	"github.com/cotizaplus/cotiza-backend/pkg/db/models"
	pkgerrors "github.com/cotizaplus/cotiza-backend/pkg/errors"
	"github.com/cotizaplus/cotiza-backend/pkg/logger"
	"github.com/cotizaplus/cotiza-backend/pkg/metrics"
	"github.com/cotizaplus/cotiza-backend/pkg/storage/gcs"
)

const metricKindQuotePDF = "quote_pdf"

// QuotePricer loads a quote with its computed financials. The quotes service
// satisfies it, keeping the document path on the same calculation as the API.
type QuotePricer interface {
	Financials(ctx context.Context, companyID, id uuid.UUID) (*models.Quote, pricing.Financials, error)
}

// Uploader is the slice of the storage client the service needs.
type Uploader interface {
	Upload(ctx context.Context, bucket, object, contentType string, payload []byte) (*gcs.Object, error)
}

// Service generates quote PDFs and stores them in object storage.
type Service struct {
	pricer  QuotePricer
	repo    Repository
	storage Uploader
	assets  *AssetCache
	logoURL string
	metrics *metrics.DocumentMetrics
	logg    *logger.Logger
}

func NewService(pricer QuotePricer, repo Repository, storage Uploader, assets *AssetCache, logoURL string, m *metrics.DocumentMetrics, logg *logger.Logger) *Service {
	return &Service{
		pricer:  pricer,
		repo:    repo,
		storage: storage,
		assets:  assets,
		logoURL: logoURL,
		metrics: m,
		logg:    logg,
	}
}

// Generate renders the quote PDF, uploads it, records the document row and
// returns it. The PDF bytes are also returned for direct download responses.
func (s *Service) Generate(ctx context.Context, companyID, quoteID uuid.UUID) (*models.QuoteDocument, []byte, error) {
	started := time.Now()

	doc, payload, err := s.generate(ctx, companyID, quoteID)

	s.metrics.ObserveDuration(metricKindQuotePDF, time.Since(started))
	if err != nil {
		s.metrics.IncFailure(metricKindQuotePDF)
		return nil, nil, err
	}
	s.metrics.IncSuccess(metricKindQuotePDF)
	s.metrics.ObserveSize(metricKindQuotePDF, doc.SizeBytes)
	return doc, payload, nil
}

func (s *Service) generate(ctx context.Context, companyID, quoteID uuid.UUID) (*models.QuoteDocument, []byte, error) {
	quote, fin, err := s.pricer.Financials(ctx, companyID, quoteID)
	if err != nil {
		return nil, nil, err
	}

	ctx = s.logg.WithQuoteID(ctx, quoteID.String())

	var logo []byte
	if s.assets != nil && s.logoURL != "" {
		logo, err = s.assets.Fetch(ctx, s.logoURL)
		if err != nil {
			// a missing logo never blocks the document
			s.logg.Warn(ctx, "logo fetch failed, rendering without it")
			logo = nil
		}
	}

	payload, err := RenderQuotePDF(quote, fin, logo)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "rendering quote pdf")
	}

	objectPath := objectPathFor(quote)
	obj, err := s.storage.Upload(ctx, "", objectPath, "application/pdf", payload)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "uploading quote pdf")
	}

	doc := &models.QuoteDocument{
		QuoteID:    quote.ID,
		CompanyID:  quote.CompanyID,
		ObjectPath: obj.Name,
		PublicURL:  obj.PublicURL(),
		SizeBytes:  obj.SizeBytes,
	}
	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "recording quote document")
	}

	s.logg.Info(ctx, "quote pdf generated")
	return doc, payload, nil
}

// Latest returns the most recent document for the quote, nil when none exists.
func (s *Service) Latest(ctx context.Context, companyID, quoteID uuid.UUID) (*models.QuoteDocument, error) {
	quote, _, err := s.pricer.Financials(ctx, companyID, quoteID)
	if err != nil {
		return nil, err
	}
	doc, err := s.repo.LatestForQuote(ctx, quote.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading quote document")
	}
	return doc, nil
}

// History returns every generated document for the quote, newest first.
func (s *Service) History(ctx context.Context, companyID, quoteID uuid.UUID) ([]models.QuoteDocument, error) {
	quote, _, err := s.pricer.Financials(ctx, companyID, quoteID)
	if err != nil {
		return nil, err
	}
	docs, err := s.repo.ListByQuote(ctx, quote.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing quote documents")
	}
	return docs, nil
}

func objectPathFor(quote *models.Quote) string {
	now := time.Now().UTC()
	return fmt.Sprintf(
		"quotes/%s/%s/%s_%d.pdf",
		quote.CompanyID,
		now.Format("2006/01"),
		quote.ID,
		now.Unix(),
	)
}
