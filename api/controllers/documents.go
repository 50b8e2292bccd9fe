package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/cotizaplus/cotiza-backend/api/middleware"
	"github.com/cotizaplus/cotiza-backend/api/responses"
	"github.com/cotizaplus/cotiza-backend/api/validators"
	"github.com/cotizaplus/cotiza-backend/pkg/db/models"
	pkgerrors "github.com/cotizaplus/cotiza-backend/pkg/errors"
	"github.com/cotizaplus/cotiza-backend/pkg/logger"
)

// DocumentService describes the document methods used by the HTTP controllers.
type DocumentService interface {
	Generate(ctx context.Context, companyID, quoteID uuid.UUID) (*models.QuoteDocument, []byte, error)
	Latest(ctx context.Context, companyID, quoteID uuid.UUID) (*models.QuoteDocument, error)
	History(ctx context.Context, companyID, quoteID uuid.UUID) ([]models.QuoteDocument, error)
}

type documentResponse struct {
	ID         string `json:"id"`
	QuoteID    string `json:"quote_id"`
	ObjectPath string `json:"object_path"`
	PublicURL  string `json:"public_url"`
	SizeBytes  int64  `json:"size_bytes"`
	CreatedAt  string `json:"created_at"`
}

type documentListResponse struct {
	Documents []documentResponse `json:"documentos"`
}

// QuoteDocumentGenerate renders the quote PDF, stores it and returns the
// stored document metadata. Pass ?download=1 to receive the PDF bytes
// directly.
func QuoteDocumentGenerate(svc DocumentService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		quoteID, err := validators.PathUUID("id", chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		doc, payload, err := svc.Generate(ctx, middleware.CompanyIDFromContext(ctx), quoteID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if r.URL.Query().Get("download") == "1" {
			w.Header().Set("Content-Type", "application/pdf")
			w.Header().Set("Content-Disposition", `attachment; filename="cotizacion.pdf"`)
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(payload)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, documentToResponse(doc))
	}
}

// QuoteDocumentLatest returns the most recent stored PDF for the quote.
func QuoteDocumentLatest(svc DocumentService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		quoteID, err := validators.PathUUID("id", chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		doc, err := svc.Latest(ctx, middleware.CompanyIDFromContext(ctx), quoteID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if doc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "no document generated yet"))
			return
		}

		responses.WriteSuccess(w, documentToResponse(doc))
	}
}

// QuoteDocumentHistory lists every stored PDF for the quote, newest first.
func QuoteDocumentHistory(svc DocumentService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		quoteID, err := validators.PathUUID("id", chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		docs, err := svc.History(ctx, middleware.CompanyIDFromContext(ctx), quoteID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		payload := documentListResponse{Documents: []documentResponse{}}
		for i := range docs {
			payload.Documents = append(payload.Documents, documentToResponse(&docs[i]))
		}
		responses.WriteSuccess(w, payload)
	}
}

func documentToResponse(doc *models.QuoteDocument) documentResponse {
	return documentResponse{
		ID:         doc.ID.String(),
		QuoteID:    doc.QuoteID.String(),
		ObjectPath: doc.ObjectPath,
		PublicURL:  doc.PublicURL,
		SizeBytes:  doc.SizeBytes,
		CreatedAt:  doc.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}
