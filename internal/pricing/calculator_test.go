package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/cotizaplus/cotiza-backend/pkg/enums"
	"github.com/cotizaplus/cotiza-backend/pkg/types"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func decPtr(value string) *decimal.Decimal {
	d := dec(value)
	return &d
}

func baseInput() QuoteInput {
	return QuoteInput{
		AnnualLicenseCost:     dec("1200"),
		ImplementationCost:    dec("300"),
		IncludeImplementation: true,
		IncludeWhatsApp:       false,
		IVAPercent:            decPtr("13"),
		Installments:          intPtr(12),
	}
}

func requireEqualDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, got.Equal(dec(want)), "expected %s, got %s", want, got)
}

func TestCalculateEndToEndExample(t *testing.T) {
	result := Calculate(baseInput(), nil)

	require.Equal(t, 12, result.Installments)
	require.False(t, result.SinglePayment)
	requireEqualDecimal(t, "1200", result.RecurringBase)
	requireEqualDecimal(t, "1200", result.TaxableRecurringBase)
	requireEqualDecimal(t, "156", result.RecurringTax)
	requireEqualDecimal(t, "1356", result.RecurringTotal)
	requireEqualDecimal(t, "113", result.InstallmentAmount)
	requireEqualDecimal(t, "300", result.OneTimeBase)
	requireEqualDecimal(t, "39", result.OneTimeTax)
	requireEqualDecimal(t, "339", result.OneTimeTotal)
	require.Equal(t, enums.AdjustmentTypeNone, result.AdjustmentType)
	require.Empty(t, result.AdjustmentLabel)
}

func TestCalculateFinancingPlanOverride(t *testing.T) {
	plan := &PlanOverride{
		Title:           "12 cuotas",
		InterestPercent: dec("10"),
		AdjustmentType:  enums.AdjustmentTypeRecharge,
	}

	result := Calculate(baseInput(), plan)

	requireEqualDecimal(t, "120", result.AdjustmentAmount)
	requireEqualDecimal(t, "1320", result.AdjustedRecurringBase)
	requireEqualDecimal(t, "171.6", result.RecurringTax)
	requireEqualDecimal(t, "1491.6", result.RecurringTotal)
	requireEqualDecimal(t, "124.3", result.InstallmentAmount)
	require.Equal(t, "Financiamiento (10%)", result.AdjustmentLabel)
	require.Equal(t, "12 cuotas", result.PlanTitle)

	// One-time bucket is untouched by the financing adjustment.
	requireEqualDecimal(t, "339", result.OneTimeTotal)
}

func TestCalculateAdjustmentBeforeManualDiscount(t *testing.T) {
	input := baseInput()
	input.AnnualLicenseCost = dec("1000")
	input.ManualDiscountPercent = dec("10")
	plan := &PlanOverride{InterestPercent: dec("20"), AdjustmentType: enums.AdjustmentTypeRecharge}

	result := Calculate(input, plan)

	// Recharge computed on the base, manual discount on the adjusted base:
	// amounts differ from the wrong order even though the final figure is
	// the same for multiplicative stacking.
	requireEqualDecimal(t, "200", result.AdjustmentAmount)
	requireEqualDecimal(t, "1200", result.AdjustedRecurringBase)
	requireEqualDecimal(t, "120", result.ManualDiscountAmount)
	requireEqualDecimal(t, "1080", result.TaxableRecurringBase)
}

func TestCalculatePlanDiscountIsLabelOnly(t *testing.T) {
	input := baseInput()
	plan := &PlanOverride{InterestPercent: dec("15"), AdjustmentType: enums.AdjustmentTypeDiscount}

	result := Calculate(input, plan)

	requireEqualDecimal(t, "0", result.AdjustmentAmount)
	requireEqualDecimal(t, "1020", result.AdjustedRecurringBase)
	require.Equal(t, "Descuento 15%", result.AdjustmentLabel)
}

func TestCalculatePlanTypeNoneSuppressesLegacySurcharge(t *testing.T) {
	input := baseInput()
	input.LegacySurchargePct = dec("8")
	plan := &PlanOverride{InterestPercent: dec("8"), AdjustmentType: enums.AdjustmentTypeNone}

	result := Calculate(input, plan)

	require.Equal(t, enums.AdjustmentTypeNone, result.AdjustmentType)
	requireEqualDecimal(t, "1200", result.AdjustedRecurringBase)
}

func TestCalculateLegacySurchargeFallback(t *testing.T) {
	input := baseInput()
	input.LegacySurchargePct = dec("5")

	result := Calculate(input, nil)

	require.Equal(t, enums.AdjustmentTypeRecharge, result.AdjustmentType)
	requireEqualDecimal(t, "60", result.AdjustmentAmount)
	requireEqualDecimal(t, "1260", result.AdjustedRecurringBase)
}

func TestCalculateSinglePaymentSkipsDivision(t *testing.T) {
	input := baseInput()
	input.Installments = intPtr(1)
	input.TermMonths = intPtr(12)

	result := Calculate(input, nil)

	require.Equal(t, 1, result.Installments)
	require.True(t, result.SinglePayment)
	require.True(t, result.InstallmentAmount.Equal(result.RecurringTotal))
}

func TestCalculateTaxIdentityHolds(t *testing.T) {
	input := baseInput()
	input.ManualDiscountPercent = dec("7.5")
	input.LineItems = []types.QuoteLineItem{
		{Name: "Módulo reportes", Kind: enums.LineItemKindRecurring, Amount: dec("350.25")},
		{Name: "Migración", Kind: enums.LineItemKindOneTime, Amount: dec("125.75")},
	}
	plan := &PlanOverride{InterestPercent: dec("12.5"), AdjustmentType: enums.AdjustmentTypeRecharge}

	result := Calculate(input, plan)

	one := decimal.NewFromInt(1)
	require.True(t, result.RecurringTotal.Equal(result.TaxableRecurringBase.Mul(one.Add(result.IVARate))))
	require.True(t, result.OneTimeTotal.Equal(result.OneTimeBase.Mul(one.Add(result.IVARate))))
}

func TestCalculateLineItemBuckets(t *testing.T) {
	input := baseInput()
	input.IncludeWhatsApp = true
	input.WhatsAppCost = dec("180")
	input.LineItems = []types.QuoteLineItem{
		{Name: "Módulo A", Kind: enums.LineItemKindRecurring, Amount: dec("100")},
		{Name: "Módulo B", Kind: enums.LineItemKindOneTime, Amount: dec("50")},
	}

	result := Calculate(input, nil)

	requireEqualDecimal(t, "1480", result.RecurringBase)
	requireEqualDecimal(t, "350", result.OneTimeBase)
}

func TestCalculateImplementationGatedOnFlag(t *testing.T) {
	input := baseInput()
	input.IncludeImplementation = false

	result := Calculate(input, nil)
	requireEqualDecimal(t, "0", result.OneTimeBase)
	requireEqualDecimal(t, "0", result.OneTimeTotal)
}

func TestCalculateLegacyChargesImplementationRegardlessOfFlag(t *testing.T) {
	input := baseInput()
	input.IncludeImplementation = false

	result := CalculateLegacy(input, nil)
	requireEqualDecimal(t, "300", result.OneTimeBase)
}

func TestCalculateDefaultsIVAWhenAbsent(t *testing.T) {
	input := baseInput()
	input.IVAPercent = nil

	result := Calculate(input, nil)
	requireEqualDecimal(t, "0.13", result.IVARate)
}

func TestCalculateRespectsExplicitZeroIVA(t *testing.T) {
	input := baseInput()
	input.IVAPercent = decPtr("0")

	result := Calculate(input, nil)
	requireEqualDecimal(t, "0", result.IVARate)
	require.True(t, result.RecurringTotal.Equal(result.TaxableRecurringBase))
}

func TestCalculateIsTotalOverMalformedInput(t *testing.T) {
	// Negative and missing numerics coerce to zero rather than erroring.
	input := QuoteInput{
		AnnualLicenseCost:     dec("-50"),
		ImplementationCost:    dec("-10"),
		IncludeImplementation: true,
		ManualDiscountPercent: dec("-20"),
		LegacySurchargePct:    dec("-5"),
	}

	result := Calculate(input, nil)

	requireEqualDecimal(t, "0", result.RecurringBase)
	requireEqualDecimal(t, "0", result.OneTimeBase)
	requireEqualDecimal(t, "0", result.RecurringTotal)
	require.Equal(t, 1, result.Installments)
}

func TestCalculateDeterministicAcrossCalls(t *testing.T) {
	input := baseInput()
	input.LineItems = []types.QuoteLineItem{
		{Name: "Módulo A", Kind: enums.LineItemKindRecurring, Amount: dec("333.33")},
	}
	plan := &PlanOverride{InterestPercent: dec("10"), AdjustmentType: enums.AdjustmentTypeRecharge}

	first := Calculate(input, plan)
	second := Calculate(input, plan)

	require.True(t, first.RecurringTotal.Equal(second.RecurringTotal))
	require.True(t, first.InstallmentAmount.Equal(second.InstallmentAmount))
	require.True(t, first.OneTimeTotal.Equal(second.OneTimeTotal))
}
