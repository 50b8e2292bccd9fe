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
	"github.com/cotizaplus/cotiza-backend/pkg/db/models"
	"github.com/cotizaplus/cotiza-backend/pkg/enums"
	pkgerrors "github.com/cotizaplus/cotiza-backend/pkg/errors"
	"github.com/cotizaplus/cotiza-backend/pkg/logger"
	"github.com/cotizaplus/cotiza-backend/pkg/types"
)

// FinancingPlanService describes the plan methods used by the HTTP controllers.
type FinancingPlanService interface {
	Create(ctx context.Context, plan *models.FinancingPlan) error
	Update(ctx context.Context, plan *models.FinancingPlan) error
	Get(ctx context.Context, id uuid.UUID) (*models.FinancingPlan, error)
	List(ctx context.Context, companyID uuid.UUID, status *enums.PlanStatus) ([]models.FinancingPlan, error)
}

type financingPlanResponse struct {
	ID              string  `json:"id"`
	CompanyID       *string `json:"company_id,omitempty"`
	Global          bool    `json:"global"`
	Title           string  `json:"titulo"`
	Description     *string `json:"descripcion,omitempty"`
	Installments    int     `json:"cuotas"`
	InterestPercent string  `json:"interes_porcentaje"`
	AdjustmentType  string  `json:"tipo_ajuste"`
	Status          string  `json:"status"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

type financingPlanListResponse struct {
	Plans []financingPlanResponse `json:"planes"`
}

type financingPlanUpsertRequest struct {
	Title           string             `json:"titulo" validate:"required,min=2,max=200"`
	Description     *string            `json:"descripcion" validate:"omitempty,max=2000"`
	Installments    int                `json:"cuotas" validate:"required,gte=1,lte=120"`
	InterestPercent types.LooseDecimal `json:"interes_porcentaje"`
	AdjustmentType  string             `json:"tipo_ajuste" validate:"required"`
	Status          string             `json:"status" validate:"omitempty"`
	Global          bool               `json:"global"`
}

func FinancingPlansList(svc FinancingPlanService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var status *enums.PlanStatus
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			parsed, err := enums.ParsePlanStatus(raw)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
			status = &parsed
		}

		plans, err := svc.List(ctx, middleware.CompanyIDFromContext(ctx), status)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		payload := financingPlanListResponse{Plans: []financingPlanResponse{}}
		for i := range plans {
			payload.Plans = append(payload.Plans, planToResponse(&plans[i]))
		}
		responses.WriteSuccess(w, payload)
	}
}

func FinancingPlanCreate(svc FinancingPlanService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req financingPlanUpsertRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		plan, err := planFromRequest(ctx, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Create(ctx, plan); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, planToResponse(plan))
	}
}

func FinancingPlanGet(svc FinancingPlanService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := validators.PathUUID("id", chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		plan, err := svc.Get(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, planToResponse(plan))
	}
}

func FinancingPlanUpdate(svc FinancingPlanService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := validators.PathUUID("id", chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var req financingPlanUpsertRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		plan, err := planFromRequest(ctx, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		plan.ID = id

		if err := svc.Update(ctx, plan); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, planToResponse(plan))
	}
}

func planFromRequest(ctx context.Context, req financingPlanUpsertRequest) (*models.FinancingPlan, error) {
	adjustment, err := enums.ParseAdjustmentType(req.AdjustmentType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid tipo_ajuste")
	}

	status := enums.PlanStatusActive
	if req.Status != "" {
		parsed, err := enums.ParsePlanStatus(req.Status)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
		}
		status = parsed
	}

	plan := &models.FinancingPlan{
		Title:           req.Title,
		Description:     req.Description,
		Installments:    req.Installments,
		InterestPercent: req.InterestPercent.Decimal,
		AdjustmentType:  adjustment,
		Status:          status,
	}
	if !req.Global {
		companyID := middleware.CompanyIDFromContext(ctx)
		if companyID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "company id is required")
		}
		plan.CompanyID = &companyID
	}
	return plan, nil
}

func planToResponse(plan *models.FinancingPlan) financingPlanResponse {
	resp := financingPlanResponse{
		ID:              plan.ID.String(),
		Global:          plan.CompanyID == nil,
		Title:           plan.Title,
		Description:     plan.Description,
		Installments:    plan.Installments,
		InterestPercent: plan.InterestPercent.Round(2).StringFixed(2),
		AdjustmentType:  plan.AdjustmentType.String(),
		Status:          plan.Status.String(),
		CreatedAt:       plan.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:       plan.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	if plan.CompanyID != nil {
		id := plan.CompanyID.String()
		resp.CompanyID = &id
	}
	return resp
}
