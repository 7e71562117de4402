package service

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"deal-underwriter/domain"
)

var printer = message.NewPrinter(language.English)

// FormatCurrency renders whole dollars with thousands separators, e.g.
// "$60,000" or "$-1,234". Halves round to even.
func FormatCurrency(v float64) string {
	whole := decimal.NewFromFloat(v).RoundBank(0).IntPart()
	return "$" + printer.Sprintf("%d", whole)
}

// FormatPercent renders a percentage with two decimals, e.g. "16.00%".
func FormatPercent(v float64) string {
	return decimal.NewFromFloat(v).StringFixedBank(2) + "%"
}

func formatRatio(v *float64, suffix string) string {
	if v == nil {
		return "n/a"
	}
	return decimal.NewFromFloat(*v).StringFixedBank(2) + suffix
}

// FormatSummary renders metrics for display: currency at 0 decimals,
// percentages and ratios at 2.
func FormatSummary(m domain.DealMetrics) domain.DealSummary {
	return domain.DealSummary{
		domain.LabelGrossRentAnnual:     FormatCurrency(m.GrossRentAnnual),
		domain.LabelNOI:                 FormatCurrency(m.NOI),
		domain.LabelAnnualDebtService:   FormatCurrency(m.AnnualDebtService),
		domain.LabelCashFlowAnnual:      FormatCurrency(m.CashFlowAnnual),
		domain.LabelCapRate:             FormatPercent(m.CapRatePct),
		domain.LabelCashOnCash:          FormatPercent(m.CashOnCashPct),
		domain.LabelGrossRentMonthly:    FormatCurrency(m.GrossRentMonthly),
		domain.LabelNOIMonthly:          FormatCurrency(m.NOIMonthly),
		domain.LabelDebtServiceMonthly:  FormatCurrency(m.DebtServiceMonthly),
		domain.LabelCashFlowMonthly:     FormatCurrency(m.CashFlowMonthly),
		domain.LabelMortgagePayment:     FormatCurrency(m.MonthlyMortgagePayment),
		domain.LabelPricePerUnit:        FormatCurrency(m.PricePerUnit),
		domain.LabelDSCR:                formatRatio(m.DSCR, "x"),
		domain.LabelGrossRentMultiplier: formatRatio(m.GrossRentMultiplier, ""),
	}
}
