package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/cotizaplus/cotiza-backend/pkg/enums"
)

func intPtr(v int) *int { return &v }

func TestResolveInstallmentsExplicitOneWinsOverTerm(t *testing.T) {
	// cuotas=1 with plazo_meses=12 historically fell through to 12.
	resolved, single := ResolveInstallments(intPtr(1), intPtr(12))
	require.Equal(t, 1, resolved)
	require.True(t, single)
}

func TestResolveInstallmentsPrecedence(t *testing.T) {
	cases := []struct {
		name         string
		installments *int
		termMonths   *int
		want         int
		wantSingle   bool
	}{
		{"explicit cuotas", intPtr(6), intPtr(24), 6, false},
		{"zero cuotas falls back to term", intPtr(0), intPtr(12), 12, false},
		{"negative cuotas falls back to term", intPtr(-3), intPtr(18), 18, false},
		{"nil cuotas uses term", nil, intPtr(36), 36, false},
		{"term of one is not a fallback", nil, intPtr(1), 1, true},
		{"nothing set defaults to single", nil, nil, 1, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resolved, single := ResolveInstallments(tc.installments, tc.termMonths)
			require.Equal(t, tc.want, resolved)
			require.Equal(t, tc.wantSingle, single)
		})
	}
}

func TestClassifyModuleOneTimeWinsExclusively(t *testing.T) {
	item, ok := ClassifyModule("Capacitación", "", decimal.NewFromInt(50), decimal.NewFromInt(100), decimal.Zero)
	require.True(t, ok)
	require.Equal(t, enums.LineItemKindOneTime, item.Kind)
	require.True(t, item.Amount.Equal(decimal.NewFromInt(50)))
}

func TestClassifyModuleAnnualCostPreferredOverGeneric(t *testing.T) {
	item, ok := ClassifyModule("Extra", "", decimal.Zero, decimal.NewFromInt(240), decimal.NewFromInt(99))
	require.True(t, ok)
	require.Equal(t, enums.LineItemKindRecurring, item.Kind)
	require.True(t, item.Amount.Equal(decimal.NewFromInt(240)))
}

func TestClassifyModuleFallsBackToGenericCost(t *testing.T) {
	item, ok := ClassifyModule("Extra", "", decimal.Zero, decimal.Zero, decimal.NewFromInt(99))
	require.True(t, ok)
	require.Equal(t, enums.LineItemKindRecurring, item.Kind)
	require.True(t, item.Amount.Equal(decimal.NewFromInt(99)))
}

func TestClassifyModuleZeroCostIsInvisible(t *testing.T) {
	_, ok := ClassifyModule("Gratis", "", decimal.Zero, decimal.Zero, decimal.Zero)
	require.False(t, ok)
}
