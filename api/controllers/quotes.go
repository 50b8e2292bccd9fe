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
	"github.com/cotizaplus/cotiza-backend/internal/pricing"
	quotessvc "github.com/cotizaplus/cotiza-backend/internal/quotes"
	"github.com/cotizaplus/cotiza-backend/pkg/db/models"
	"github.com/cotizaplus/cotiza-backend/pkg/enums"
	pkgerrors "github.com/cotizaplus/cotiza-backend/pkg/errors"
	"github.com/cotizaplus/cotiza-backend/pkg/logger"
	"github.com/cotizaplus/cotiza-backend/pkg/pagination"
)

// QuoteService describes the quote methods used by the HTTP controllers.
type QuoteService interface {
	Create(ctx context.Context, companyID uuid.UUID, req quotessvc.UpsertQuoteRequest) (*models.Quote, error)
	Update(ctx context.Context, companyID, id uuid.UUID, req quotessvc.UpsertQuoteRequest) (*models.Quote, error)
	Get(ctx context.Context, companyID, id uuid.UUID) (*models.Quote, error)
	List(ctx context.Context, params quotessvc.ListParams) (*quotessvc.ListResult, error)
	Transition(ctx context.Context, companyID, id uuid.UUID, target enums.QuoteStatus) (*models.Quote, error)
	Financials(ctx context.Context, companyID, id uuid.UUID) (*models.Quote, pricing.Financials, error)
	PublicFinancials(ctx context.Context, id uuid.UUID) (*models.Quote, pricing.Financials, error)
}

type lineItemResponse struct {
	Name        string `json:"nombre"`
	Description string `json:"descripcion,omitempty"`
	Kind        string `json:"tipo"`
	Amount      string `json:"monto"`
}

type quoteResponse struct {
	ID            string  `json:"id"`
	Status        string  `json:"estado"`
	ClientName    string  `json:"cliente_nombre"`
	ClientCompany *string `json:"cliente_empresa,omitempty"`
	ClientEmail   *string `json:"cliente_email,omitempty"`
	ClientPhone   *string `json:"cliente_telefono,omitempty"`

	PlanName     string `json:"plan_nombre"`
	AnnualVolume int64  `json:"volumen_anual"`

	AnnualLicenseCost     string  `json:"costo_plan_anual"`
	MonthlyLicenseCost    string  `json:"costo_plan_mensual"`
	ImplementationCost    string  `json:"costo_implementacion"`
	WhatsAppCost          string  `json:"costo_whatsapp"`
	IVAPercent            *string `json:"iva_porcentaje,omitempty"`
	Installments          *int    `json:"cuotas,omitempty"`
	TermMonths            *int    `json:"plazo_meses,omitempty"`
	ManualDiscountPercent string  `json:"descuento_manual_porcentaje"`

	IncludeImplementation bool `json:"incluir_implementacion"`
	IncludeWhatsApp       bool `json:"servicio_whatsapp"`

	LineItems []lineItemResponse `json:"modulos_adicionales"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type financialsResponse struct {
	Installments  int  `json:"cuotas"`
	SinglePayment bool `json:"pago_unico"`

	RecurringBase string `json:"base_recurrente"`
	OneTimeBase   string `json:"base_pago_unico"`

	AdjustmentType   string `json:"tipo_ajuste,omitempty"`
	AdjustmentLabel  string `json:"etiqueta_ajuste,omitempty"`
	AdjustmentAmount string `json:"monto_ajuste"`

	AdjustedBase   string `json:"base_ajustada"`
	ManualDiscount string `json:"descuento_manual"`
	TaxableBase    string `json:"base_imponible"`

	RecurringTax      string `json:"iva_recurrente"`
	RecurringTotal    string `json:"total_recurrente"`
	InstallmentAmount string `json:"monto_cuota"`

	OneTimeTax   string `json:"iva_pago_unico"`
	OneTimeTotal string `json:"total_pago_unico"`

	PlanTitle       string `json:"plan_financiamiento,omitempty"`
	PlanDescription string `json:"plan_descripcion,omitempty"`
}

type quoteDetailResponse struct {
	Quote      quoteResponse      `json:"cotizacion"`
	Financials financialsResponse `json:"desglose"`
}

type quoteListResponse struct {
	Quotes     []quoteResponse `json:"cotizaciones"`
	NextCursor string          `json:"next_cursor,omitempty"`
}

func QuotesList(svc QuoteService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var status *enums.QuoteStatus
		if raw := strings.TrimSpace(r.URL.Query().Get("estado")); raw != "" {
			parsed, err := enums.ParseQuoteStatus(raw)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid estado"))
				return
			}
			status = &parsed
		}

		result, err := svc.List(ctx, quotessvc.ListParams{
			CompanyID: middleware.CompanyIDFromContext(ctx),
			Status:    status,
			Limit:     limit,
			Cursor:    strings.TrimSpace(r.URL.Query().Get("cursor")),
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		payload := quoteListResponse{NextCursor: result.NextCursor}
		for i := range result.Quotes {
			payload.Quotes = append(payload.Quotes, quoteToResponse(&result.Quotes[i]))
		}
		responses.WriteSuccess(w, payload)
	}
}

func QuoteCreate(svc QuoteService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req quotessvc.UpsertQuoteRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		quote, err := svc.Create(ctx, middleware.CompanyIDFromContext(ctx), req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, quoteToResponse(quote))
	}
}

func QuoteGet(svc QuoteService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := validators.PathUUID("id", chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		quote, fin, err := svc.Financials(ctx, middleware.CompanyIDFromContext(ctx), id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, quoteDetailResponse{
			Quote:      quoteToResponse(quote),
			Financials: financialsToResponse(fin),
		})
	}
}

func QuoteUpdate(svc QuoteService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := validators.PathUUID("id", chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var req quotessvc.UpsertQuoteRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		quote, err := svc.Update(ctx, middleware.CompanyIDFromContext(ctx), id, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, quoteToResponse(quote))
	}
}

type quoteTransitionRequest struct {
	Status string `json:"estado" validate:"required"`
}

func QuoteTransition(svc QuoteService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := validators.PathUUID("id", chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var req quoteTransitionRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		target, err := enums.ParseQuoteStatus(req.Status)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid estado"))
			return
		}

		quote, err := svc.Transition(ctx, middleware.CompanyIDFromContext(ctx), id, target)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, quoteToResponse(quote))
	}
}

// QuoteAccept marks the quote accepted without touching its figures.
func QuoteAccept(svc QuoteService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := validators.PathUUID("id", chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		quote, err := svc.Transition(ctx, middleware.CompanyIDFromContext(ctx), id, enums.QuoteStatusAccepted)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, quoteToResponse(quote))
	}
}

func QuoteFinancials(svc QuoteService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := validators.PathUUID("id", chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		_, fin, err := svc.Financials(ctx, middleware.CompanyIDFromContext(ctx), id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, financialsToResponse(fin))
	}
}

// PublicQuoteView serves the client-facing read-only quote. It runs the same
// calculation as the detail view.
func PublicQuoteView(svc QuoteService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := validators.PathUUID("id", chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		quote, fin, err := svc.PublicFinancials(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, quoteDetailResponse{
			Quote:      quoteToResponse(quote),
			Financials: financialsToResponse(fin),
		})
	}
}

func quoteToResponse(quote *models.Quote) quoteResponse {
	resp := quoteResponse{
		ID:                    quote.ID.String(),
		Status:                quote.Status.String(),
		ClientName:            quote.ClientName,
		ClientCompany:         quote.ClientCompany,
		ClientEmail:           quote.ClientEmail,
		ClientPhone:           quote.ClientPhone,
		PlanName:              quote.PlanName,
		AnnualVolume:          quote.AnnualVolume,
		AnnualLicenseCost:     quote.AnnualLicenseCost.StringFixed(2),
		MonthlyLicenseCost:    quote.MonthlyLicenseCost.StringFixed(2),
		ImplementationCost:    quote.ImplementationCost.StringFixed(2),
		WhatsAppCost:          quote.WhatsAppCost.StringFixed(2),
		Installments:          quote.Installments,
		TermMonths:            quote.TermMonths,
		ManualDiscountPercent: quote.ManualDiscountPercent.StringFixed(2),
		IncludeImplementation: quote.IncludeImplementation,
		IncludeWhatsApp:       quote.IncludeWhatsApp,
		LineItems:             []lineItemResponse{},
		CreatedAt:             quote.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:             quote.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	if quote.IVAPercent != nil {
		pct := quote.IVAPercent.StringFixed(2)
		resp.IVAPercent = &pct
	}
	for _, item := range quote.LineItems {
		resp.LineItems = append(resp.LineItems, lineItemResponse{
			Name:        item.Name,
			Description: item.Description,
			Kind:        item.Kind.String(),
			Amount:      item.Amount.StringFixed(2),
		})
	}
	return resp
}

func financialsToResponse(fin pricing.Financials) financialsResponse {
	resp := financialsResponse{
		Installments:      fin.Installments,
		SinglePayment:     fin.SinglePayment,
		RecurringBase:     fin.RecurringBase.StringFixed(2),
		OneTimeBase:       fin.OneTimeBase.StringFixed(2),
		AdjustmentLabel:   fin.AdjustmentLabel,
		AdjustmentAmount:  fin.AdjustmentAmount.StringFixed(2),
		AdjustedBase:      fin.AdjustedRecurringBase.StringFixed(2),
		ManualDiscount:    fin.ManualDiscountAmount.StringFixed(2),
		TaxableBase:       fin.TaxableRecurringBase.StringFixed(2),
		RecurringTax:      fin.RecurringTax.StringFixed(2),
		RecurringTotal:    fin.RecurringTotal.StringFixed(2),
		InstallmentAmount: fin.InstallmentAmount.StringFixed(2),
		OneTimeTax:        fin.OneTimeTax.StringFixed(2),
		OneTimeTotal:      fin.OneTimeTotal.StringFixed(2),
		PlanTitle:         fin.PlanTitle,
		PlanDescription:   fin.PlanDescription,
	}
	if fin.AdjustmentType != "" {
		resp.AdjustmentType = fin.AdjustmentType.String()
	}
	return resp
}
