package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/cotizaplus/cotiza-backend/pkg/enums"
	"github.com/cotizaplus/cotiza-backend/pkg/types"
)

// ResolveInstallments determines the authoritative installment count from
// the two independently-editable legacy fields. An explicit cuotas value of
// 1 means "single payment" and must be respected, never treated as unset
// and overridden by plazo_meses; that exact fallthrough shipped as a bug
// once and is regression-tested.
func ResolveInstallments(installments, termMonths *int) (int, bool) {
	resolved := 1
	switch {
	case installments != nil && *installments >= 1:
		resolved = *installments
	case termMonths != nil && *termMonths > 1:
		resolved = *termMonths
	}
	return resolved, resolved <= 1
}

// ClassifyModule buckets a raw additional-module record. One-time wins
// exclusively when both amounts are set; a module with no positive amount
// contributes nothing and the second return is false.
func ClassifyModule(name, description string, oneTime, annualCost, genericCost decimal.Decimal) (types.QuoteLineItem, bool) {
	item := types.QuoteLineItem{Name: name, Description: description}

	if oneTime.IsPositive() {
		item.Kind = enums.LineItemKindOneTime
		item.Amount = oneTime
		return item, true
	}

	recurring := annualCost
	if !recurring.IsPositive() {
		recurring = genericCost
	}
	if recurring.IsPositive() {
		item.Kind = enums.LineItemKindRecurring
		item.Amount = recurring
		return item, true
	}

	return types.QuoteLineItem{}, false
}

// sumBuckets totals the fixed contributors and tagged line items per bucket.
func sumBuckets(input QuoteInput, gateImplementationOnFlag bool) (recurring, oneTime decimal.Decimal) {
	recurring = nonNegative(input.AnnualLicenseCost)
	if input.IncludeWhatsApp {
		recurring = recurring.Add(nonNegative(input.WhatsAppCost))
	}

	if !gateImplementationOnFlag || input.IncludeImplementation {
		oneTime = nonNegative(input.ImplementationCost)
	}

	for _, item := range input.LineItems {
		amount := nonNegative(item.Amount)
		switch item.Kind {
		case enums.LineItemKindOneTime:
			oneTime = oneTime.Add(amount)
		case enums.LineItemKindRecurring:
			recurring = recurring.Add(amount)
		}
	}

	return recurring, oneTime
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
