package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/cotizaplus/cotiza-backend/pkg/db/models"
	"github.com/cotizaplus/cotiza-backend/pkg/enums"
	"github.com/cotizaplus/cotiza-backend/pkg/types"
)

// DefaultIVAPercent applies when a quote carries no explicit tax rate.
var DefaultIVAPercent = decimal.NewFromInt(13)

// QuoteInput carries the monetary fields the calculator reads. It is plain
// data: building one never touches the database.
type QuoteInput struct {
	AnnualLicenseCost     decimal.Decimal
	ImplementationCost    decimal.Decimal
	WhatsAppCost          decimal.Decimal
	IncludeImplementation bool
	IncludeWhatsApp       bool
	IVAPercent            *decimal.Decimal
	LegacySurchargePct    decimal.Decimal
	Installments          *int
	TermMonths            *int
	ManualDiscountPercent decimal.Decimal
	LineItems             []types.QuoteLineItem
}

// PlanOverride is the financing plan selected for the quote's installment
// count. When present it supersedes the quote's legacy surcharge field.
type PlanOverride struct {
	Title           string
	Description     string
	InterestPercent decimal.Decimal
	AdjustmentType  enums.AdjustmentType
}

// Financials is the fully itemized result. It is ephemeral: recomputed on
// every render and never persisted.
type Financials struct {
	Installments  int
	SinglePayment bool

	RecurringBase decimal.Decimal
	OneTimeBase   decimal.Decimal

	IVARate decimal.Decimal

	AdjustmentPercent decimal.Decimal
	AdjustmentType    enums.AdjustmentType
	AdjustmentAmount  decimal.Decimal
	AdjustmentLabel   string

	AdjustedRecurringBase decimal.Decimal
	ManualDiscountAmount  decimal.Decimal
	TaxableRecurringBase  decimal.Decimal

	RecurringTax      decimal.Decimal
	RecurringTotal    decimal.Decimal
	InstallmentAmount decimal.Decimal

	OneTimeTax   decimal.Decimal
	OneTimeTotal decimal.Decimal

	PlanTitle       string
	PlanDescription string
}

// InputFromQuote projects a persisted quote into calculator input.
func InputFromQuote(q *models.Quote) QuoteInput {
	if q == nil {
		return QuoteInput{}
	}
	return QuoteInput{
		AnnualLicenseCost:     q.AnnualLicenseCost,
		ImplementationCost:    q.ImplementationCost,
		WhatsAppCost:          q.WhatsAppCost,
		IncludeImplementation: q.IncludeImplementation,
		IncludeWhatsApp:       q.IncludeWhatsApp,
		IVAPercent:            q.IVAPercent,
		LegacySurchargePct:    q.LegacySurchargePct,
		Installments:          q.Installments,
		TermMonths:            q.TermMonths,
		ManualDiscountPercent: q.ManualDiscountPercent,
		LineItems:             q.LineItems,
	}
}

// OverrideFromPlan projects a financing plan record into a calculator
// override. A nil plan yields a nil override.
func OverrideFromPlan(plan *models.FinancingPlan) *PlanOverride {
	if plan == nil {
		return nil
	}
	override := &PlanOverride{
		Title:           plan.Title,
		InterestPercent: plan.InterestPercent,
		AdjustmentType:  plan.AdjustmentType,
	}
	if plan.Description != nil {
		override.Description = *plan.Description
	}
	return override
}
