package quotes

import (
	"github.com/cotizaplus/cotiza-backend/internal/pricing"
	"github.com/cotizaplus/cotiza-backend/pkg/types"
)

// ModuleEntry is the raw additional-module payload as the legacy clients
// send it. Monetary fields tolerate numbers, numeric strings, and garbage;
// classification into a bucket happens once, at ingestion.
type ModuleEntry struct {
	Name        string             `json:"nombre" validate:"required"`
	Description string             `json:"descripcion"`
	OneTime     types.LooseDecimal `json:"pago_unico"`
	AnnualCost  types.LooseDecimal `json:"costo_anual"`
	Cost        types.LooseDecimal `json:"costo"`
}

// UpsertQuoteRequest carries the editable fields of a cotización.
type UpsertQuoteRequest struct {
	ClientName    string  `json:"cliente_nombre" validate:"required"`
	ClientCompany *string `json:"cliente_empresa"`
	ClientEmail   *string `json:"cliente_email" validate:"omitempty,email"`
	ClientPhone   *string `json:"cliente_telefono"`

	PlanName     string `json:"plan_nombre" validate:"required"`
	AnnualVolume int64  `json:"volumen_anual" validate:"gte=0"`

	AnnualLicenseCost     types.LooseDecimal  `json:"costo_plan_anual"`
	MonthlyLicenseCost    types.LooseDecimal  `json:"costo_plan_mensual"`
	ImplementationCost    types.LooseDecimal  `json:"costo_implementacion"`
	WhatsAppCost          types.LooseDecimal  `json:"costo_whatsapp"`
	IVAPercent            *types.LooseDecimal `json:"iva_porcentaje"`
	LegacySurchargePct    types.LooseDecimal  `json:"recargo_mensual_porcentaje"`
	Installments          types.LooseInt      `json:"cuotas"`
	TermMonths            types.LooseInt      `json:"plazo_meses"`
	ManualDiscountPercent types.LooseDecimal  `json:"descuento_manual_porcentaje"`

	IncludeImplementation bool `json:"incluir_implementacion"`
	IncludeWhatsApp       bool `json:"servicio_whatsapp"`

	Modules []ModuleEntry `json:"modulos_adicionales" validate:"dive"`
}

// resolveLineItems classifies the raw module entries into tagged line
// items, dropping zero-cost entries.
func resolveLineItems(modules []ModuleEntry) types.QuoteLineItems {
	items := types.QuoteLineItems{}
	for _, module := range modules {
		item, ok := pricing.ClassifyModule(
			module.Name,
			module.Description,
			module.OneTime.Decimal,
			module.AnnualCost.Decimal,
			module.Cost.Decimal,
		)
		if !ok {
			continue
		}
		items = append(items, item)
	}
	return items
}
