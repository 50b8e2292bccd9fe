package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cotizaplus/cotiza-backend/pkg/enums"
	"github.com/cotizaplus/cotiza-backend/pkg/types"
)

// Quote is a cotización: the priced proposal a sales agent sends a client.
// Installments and TermMonths are both kept because legacy records carry
// either one; resolution precedence lives in the pricing package.
type Quote struct {
	ID        uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CompanyID uuid.UUID         `gorm:"column:company_id;type:uuid;not null;index"`
	Status    enums.QuoteStatus `gorm:"column:estado;type:quote_status;not null;default:'borrador'"`

	ClientName    string  `gorm:"column:cliente_nombre;not null"`
	ClientCompany *string `gorm:"column:cliente_empresa"`
	ClientEmail   *string `gorm:"column:cliente_email"`
	ClientPhone   *string `gorm:"column:cliente_telefono"`

	PlanName     string `gorm:"column:plan_nombre;not null"`
	AnnualVolume int64  `gorm:"column:volumen_anual;not null;default:0"`

	AnnualLicenseCost     decimal.Decimal  `gorm:"column:costo_plan_anual;type:numeric(12,2);not null;default:0"`
	MonthlyLicenseCost    decimal.Decimal  `gorm:"column:costo_plan_mensual;type:numeric(12,2);not null;default:0"`
	ImplementationCost    decimal.Decimal  `gorm:"column:costo_implementacion;type:numeric(12,2);not null;default:0"`
	WhatsAppCost          decimal.Decimal  `gorm:"column:costo_whatsapp;type:numeric(12,2);not null;default:0"`
	IVAPercent            *decimal.Decimal `gorm:"column:iva_porcentaje;type:numeric(5,2)"`
	LegacySurchargePct    decimal.Decimal  `gorm:"column:recargo_mensual_porcentaje;type:numeric(5,2);not null;default:0"`
	Installments          *int             `gorm:"column:cuotas"`
	TermMonths            *int             `gorm:"column:plazo_meses"`
	ManualDiscountPercent decimal.Decimal  `gorm:"column:descuento_manual_porcentaje;type:numeric(5,2);not null;default:0"`

	IncludeImplementation bool `gorm:"column:incluir_implementacion;not null;default:true"`
	IncludeWhatsApp       bool `gorm:"column:servicio_whatsapp;not null;default:false"`

	LineItems types.QuoteLineItems `gorm:"column:modulos_adicionales;type:jsonb"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the legacy table naming.
func (Quote) TableName() string {
	return "cotizaciones"
}
