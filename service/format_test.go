package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deal-underwriter/domain"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{999.4, "$999"},
		{60000, "$60,000"},
		{20137.3778, "$20,137"},
		{1234567.5, "$1,234,568"},
		{-1234.2, "$-1,234"},
		{-1234.5, "$-1,234"},
		{2.5, "$2"},
		{3.5, "$4"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCurrency(tt.in), "FormatCurrency(%v)", tt.in)
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "16.00%", FormatPercent(16))
	assert.Equal(t, "46.44%", FormatPercent(46.43770358946673))
	assert.Equal(t, "-3.14%", FormatPercent(-3.14159))
	assert.Equal(t, "0.00%", FormatPercent(0))
	assert.Equal(t, "0.12%", FormatPercent(0.125))
	assert.Equal(t, "0.38%", FormatPercent(0.375))
}

func TestFormatSummary(t *testing.T) {
	m, err := ComputeMetrics(fiveUnitDeal())
	require.NoError(t, err)

	summary := FormatSummary(m)

	want := domain.DealSummary{
		domain.LabelGrossRentAnnual:     "$60,000",
		domain.LabelNOI:                 "$48,000",
		domain.LabelAnnualDebtService:   "$20,137",
		domain.LabelCashFlowAnnual:      "$27,863",
		domain.LabelCapRate:             "16.00%",
		domain.LabelCashOnCash:          "46.44%",
		domain.LabelGrossRentMonthly:    "$5,000",
		domain.LabelNOIMonthly:          "$4,000",
		domain.LabelDebtServiceMonthly:  "$1,678",
		domain.LabelCashFlowMonthly:     "$2,322",
		domain.LabelMortgagePayment:     "$1,678",
		domain.LabelPricePerUnit:        "$60,000",
		domain.LabelDSCR:                "2.38x",
		domain.LabelGrossRentMultiplier: "5.00",
	}
	assert.Equal(t, want, summary)
	assert.Len(t, domain.SummaryOrder, len(summary))
}

func TestFormatSummary_NotApplicableRatios(t *testing.T) {
	summary := FormatSummary(domain.DealMetrics{})

	assert.Equal(t, "n/a", summary[domain.LabelDSCR])
	assert.Equal(t, "n/a", summary[domain.LabelGrossRentMultiplier])
}
