package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/cotizaplus/cotiza-backend/api/middleware"
	"github.com/cotizaplus/cotiza-backend/api/responses"
	"github.com/cotizaplus/cotiza-backend/api/validators"
	leadssvc "github.com/cotizaplus/cotiza-backend/internal/leads"
	"github.com/cotizaplus/cotiza-backend/pkg/db/models"
	"github.com/cotizaplus/cotiza-backend/pkg/enums"
	pkgerrors "github.com/cotizaplus/cotiza-backend/pkg/errors"
	"github.com/cotizaplus/cotiza-backend/pkg/logger"
)

// LeadService describes the lead methods used by the HTTP controllers.
type LeadService interface {
	Create(ctx context.Context, companyID uuid.UUID, req leadssvc.UpsertLeadRequest) (*models.Lead, error)
	Update(ctx context.Context, companyID, id uuid.UUID, req leadssvc.UpsertLeadRequest) (*models.Lead, error)
	Get(ctx context.Context, companyID, id uuid.UUID) (*models.Lead, error)
	List(ctx context.Context, companyID uuid.UUID, status *enums.LeadStatus) ([]models.Lead, error)
}

type leadResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"nombre"`
	Business  *string `json:"empresa,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"telefono,omitempty"`
	Status    string  `json:"estado"`
	Notes     *string `json:"notas,omitempty"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

type leadListResponse struct {
	Leads []leadResponse `json:"leads"`
}

func LeadsList(svc LeadService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var status *enums.LeadStatus
		if raw := strings.TrimSpace(r.URL.Query().Get("estado")); raw != "" {
			parsed, err := enums.ParseLeadStatus(raw)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid estado"))
				return
			}
			status = &parsed
		}

		listed, err := svc.List(ctx, middleware.CompanyIDFromContext(ctx), status)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		payload := leadListResponse{Leads: []leadResponse{}}
		for i := range listed {
			payload.Leads = append(payload.Leads, leadToResponse(&listed[i]))
		}
		responses.WriteSuccess(w, payload)
	}
}

func LeadCreate(svc LeadService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req leadssvc.UpsertLeadRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		lead, err := svc.Create(ctx, middleware.CompanyIDFromContext(ctx), req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, leadToResponse(lead))
	}
}

func LeadGet(svc LeadService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := validators.PathUUID("id", chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		lead, err := svc.Get(ctx, middleware.CompanyIDFromContext(ctx), id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, leadToResponse(lead))
	}
}

func LeadUpdate(svc LeadService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := validators.PathUUID("id", chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var req leadssvc.UpsertLeadRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		lead, err := svc.Update(ctx, middleware.CompanyIDFromContext(ctx), id, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, leadToResponse(lead))
	}
}

func leadToResponse(lead *models.Lead) leadResponse {
	return leadResponse{
		ID:        lead.ID.String(),
		Name:      lead.Name,
		Business:  lead.Business,
		Email:     lead.Email,
		Phone:     lead.Phone,
		Status:    lead.Status.String(),
		Notes:     lead.Notes,
		CreatedAt: lead.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: lead.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}
