package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cotizaplus/cotiza-backend/pkg/enums"
)

var oneHundred = decimal.NewFromInt(100)

// Calculate produces the itemized financial breakdown for a quote. The
// computation is pure and total: malformed or missing numerics coerce to
// zero and the function never fails. Every rendering surface (detail view,
// public view, PDF) must call this one function so figures agree to the
// cent. No intermediate rounding is applied; callers round only at display
// time.
func Calculate(input QuoteInput, plan *PlanOverride) Financials {
	return calculate(input, plan, true)
}

// CalculateLegacy is the superseded first-generation computation, kept only
// for side-by-side comparison of historical quotes. It differs from
// Calculate in one way: the implementation cost is charged regardless of
// the inclusion flag.
func CalculateLegacy(input QuoteInput, plan *PlanOverride) Financials {
	return calculate(input, plan, false)
}

func calculate(input QuoteInput, plan *PlanOverride, gateImplementationOnFlag bool) Financials {
	installments, single := ResolveInstallments(input.Installments, input.TermMonths)
	recurringBase, oneTimeBase := sumBuckets(input, gateImplementationOnFlag)

	result := Financials{
		Installments:  installments,
		SinglePayment: single,
		RecurringBase: recurringBase,
		OneTimeBase:   oneTimeBase,
		IVARate:       ivaRate(input.IVAPercent),
	}

	applyAdjustment(&result, recurringBase, plan, input.LegacySurchargePct)

	// Manual discount layers strictly after the financing adjustment.
	manualPct := nonNegative(input.ManualDiscountPercent)
	result.ManualDiscountAmount = result.AdjustedRecurringBase.Mul(manualPct).Div(oneHundred)
	result.TaxableRecurringBase = result.AdjustedRecurringBase.Sub(result.ManualDiscountAmount)

	result.RecurringTax = result.TaxableRecurringBase.Mul(result.IVARate)
	result.RecurringTotal = result.TaxableRecurringBase.Add(result.RecurringTax)
	if installments > 1 {
		result.InstallmentAmount = result.RecurringTotal.Div(decimal.NewFromInt(int64(installments)))
	} else {
		result.InstallmentAmount = result.RecurringTotal
	}

	result.OneTimeTax = oneTimeBase.Mul(result.IVARate)
	result.OneTimeTotal = oneTimeBase.Add(result.OneTimeTax)

	if plan != nil {
		result.PlanTitle = plan.Title
		result.PlanDescription = plan.Description
	}

	return result
}

func applyAdjustment(result *Financials, base decimal.Decimal, plan *PlanOverride, legacyPct decimal.Decimal) {
	pct := nonNegative(legacyPct)
	adjustmentType := enums.AdjustmentTypeNone
	if pct.IsPositive() {
		adjustmentType = enums.AdjustmentTypeRecharge
	}
	if plan != nil {
		pct = nonNegative(plan.InterestPercent)
		if plan.AdjustmentType.IsValid() {
			adjustmentType = plan.AdjustmentType
		} else if pct.IsPositive() {
			adjustmentType = enums.AdjustmentTypeRecharge
		} else {
			adjustmentType = enums.AdjustmentTypeNone
		}
	}

	result.AdjustmentPercent = pct
	result.AdjustmentType = adjustmentType
	result.AdjustedRecurringBase = base

	switch adjustmentType {
	case enums.AdjustmentTypeDiscount:
		// Price reduction baked into the base; label only, no money line.
		factor := decimal.NewFromInt(1).Sub(pct.Div(oneHundred))
		result.AdjustedRecurringBase = base.Mul(factor)
		result.AdjustmentLabel = fmt.Sprintf("Descuento %s%%", pct.Round(0))
	case enums.AdjustmentTypeRecharge:
		if pct.IsPositive() {
			result.AdjustmentAmount = base.Mul(pct).Div(oneHundred)
			result.AdjustedRecurringBase = base.Add(result.AdjustmentAmount)
			result.AdjustmentLabel = fmt.Sprintf("Financiamiento (%s%%)", pct.Round(0))
		} else {
			result.AdjustmentType = enums.AdjustmentTypeNone
		}
	}
}

func ivaRate(pct *decimal.Decimal) decimal.Decimal {
	value := DefaultIVAPercent
	if pct != nil && !pct.IsNegative() {
		value = *pct
	}
	return value.Div(oneHundred)
}
