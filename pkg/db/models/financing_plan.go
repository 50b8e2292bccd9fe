package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cotizaplus/cotiza-backend/pkg/enums"
)

// FinancingPlan names an installment-count-specific surcharge or discount.
// A NULL CompanyID marks the plan as global; company-scoped plans take
// precedence during resolution.
type FinancingPlan struct {
	ID              uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CompanyID       *uuid.UUID           `gorm:"column:company_id;type:uuid;index"`
	Title           string               `gorm:"column:titulo;not null"`
	Description     *string              `gorm:"column:descripcion"`
	Installments    int                  `gorm:"column:cuotas;not null"`
	InterestPercent decimal.Decimal      `gorm:"column:interes_porcentaje;type:numeric(5,2);not null;default:0"`
	AdjustmentType  enums.AdjustmentType `gorm:"column:tipo_ajuste;type:adjustment_type;not null;default:'none'"`
	Status          enums.PlanStatus     `gorm:"column:status;type:plan_status;not null;default:'active'"`
	CreatedAt       time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the legacy table naming.
func (FinancingPlan) TableName() string {
	return "planes_financiamiento"
}
