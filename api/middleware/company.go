package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/cotizaplus/cotiza-backend/api/responses"
	pkgerrors "github.com/cotizaplus/cotiza-backend/pkg/errors"
	"github.com/cotizaplus/cotiza-backend/pkg/logger"
)

const companyIDHeader = "X-Company-Id"

type contextKey string

const ctxCompanyID contextKey = "company_id"

// CompanyScope extracts the tenant identifier the auth gateway forwards and
// rejects requests without one. Routes mounted behind it can rely on
// CompanyIDFromContext returning a valid id.
func CompanyScope(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(companyIDHeader)
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing company scope"))
				return
			}

			companyID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid company scope"))
				return
			}

			ctx := context.WithValue(r.Context(), ctxCompanyID, companyID)
			if logg != nil {
				ctx = logg.WithCompanyID(ctx, companyID.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithCompanyID injects the tenant identifier into the context for
// downstream handlers.
func WithCompanyID(ctx context.Context, companyID uuid.UUID) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxCompanyID, companyID)
}

func CompanyIDFromContext(ctx context.Context) uuid.UUID {
	if ctx == nil {
		return uuid.Nil
	}
	if v, ok := ctx.Value(ctxCompanyID).(uuid.UUID); ok {
		return v
	}
	return uuid.Nil
}
