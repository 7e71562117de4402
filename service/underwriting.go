package service

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"deal-underwriter/domain"
)

// ComputeMetrics derives the underwriting metrics for one deal. It fails with
// an *domain.InvalidInputError instead of returning NaN or zeroed ratios.
func ComputeMetrics(inputs domain.DealInputs) (domain.DealMetrics, error) {
	if err := validateDealInputs(inputs); err != nil {
		return domain.DealMetrics{}, err
	}

	downPayment := inputs.Price * (inputs.DownPaymentPct / 100)
	loanAmount := inputs.Price * (1 - inputs.DownPaymentPct/100)

	financing, err := CalculateFinancing(domain.FinancingInput{
		Amount:       loanAmount,
		InterestRate: inputs.InterestRate,
		TermYears:    inputs.LoanTermYears,
	})
	if err != nil {
		return domain.DealMetrics{}, fmt.Errorf("calculate financing: %w", err)
	}

	grossAnnual := floats.Sum(inputs.MonthlyRents) * 12

	vacancy := grossAnnual * (inputs.VacancyPct / 100)
	pmFee := grossAnnual * (inputs.PMFeePct / 100)
	fixedAnnual := 12 * (inputs.Capex +
		inputs.PropertyTax +
		inputs.Insurance +
		inputs.MortgageInsurance +
		inputs.Utilities +
		inputs.OtherExpenses)
	operatingExpenses := vacancy + pmFee + fixedAnnual

	debtService := financing.AnnualDebtService
	totalExpenses := operatingExpenses + debtService

	// Debt service is backed out so NOI stays a pre-financing figure.
	noi := grossAnnual - (totalExpenses - debtService)
	cashFlow := grossAnnual - totalExpenses

	metrics := domain.DealMetrics{
		LoanAmount:             loanAmount,
		DownPayment:            downPayment,
		MonthlyMortgagePayment: financing.MonthlyPayment,
		PricePerUnit:           inputs.Price / float64(inputs.Units),

		GrossRentAnnual:         grossAnnual,
		VacancyAnnual:           vacancy,
		ManagementFeeAnnual:     pmFee,
		OperatingExpensesAnnual: operatingExpenses,
		NOI:                     noi,
		AnnualDebtService:       debtService,
		CashFlowAnnual:          cashFlow,

		CapRatePct:    noi / inputs.Price * 100,
		CashOnCashPct: cashFlow / downPayment * 100,

		GrossRentMonthly:   grossAnnual / 12,
		NOIMonthly:         noi / 12,
		DebtServiceMonthly: debtService / 12,
		CashFlowMonthly:    cashFlow / 12,
	}

	for _, v := range []float64{metrics.NOI, metrics.CashFlowAnnual, metrics.CapRatePct, metrics.CashOnCashPct} {
		if err := requireFinite("inputs", v); err != nil {
			return domain.DealMetrics{}, domain.NewInvalidInput("inputs", "magnitudes too large to compute metrics")
		}
	}

	if debtService > 0 {
		dscr := noi / debtService
		metrics.DSCR = &dscr
	}
	if grossAnnual > 0 {
		grm := inputs.Price / grossAnnual
		metrics.GrossRentMultiplier = &grm
	}

	return metrics, nil
}

func validateDealInputs(inputs domain.DealInputs) error {
	if err := requirePositive("price", inputs.Price); err != nil {
		return err
	}
	if inputs.Price > MaxPrice {
		return domain.NewInvalidInput("price", "exceeds the maximum of $%.2f", MaxPrice)
	}
	if inputs.Units < 1 {
		return domain.NewInvalidInput("units", "must be at least 1, got %d", inputs.Units)
	}
	if inputs.Units > MaxUnits {
		return domain.NewInvalidInput("units", "exceeds the maximum of %d", MaxUnits)
	}
	if len(inputs.MonthlyRents) != inputs.Units {
		return domain.NewInvalidInput("monthly_rents", "expected %d rents (one per unit), got %d", inputs.Units, len(inputs.MonthlyRents))
	}
	for i, rent := range inputs.MonthlyRents {
		if err := requireNonNegative(fmt.Sprintf("monthly_rents[%d]", i), rent); err != nil {
			return err
		}
	}

	if err := requirePositive("down_payment_pct", inputs.DownPaymentPct); err != nil {
		return err
	}
	if inputs.DownPaymentPct > 100 {
		return domain.NewInvalidInput("down_payment_pct", "must not exceed 100, got %v", inputs.DownPaymentPct)
	}
	if err := requireNonNegative("interest_rate", inputs.InterestRate); err != nil {
		return err
	}

	monthly := []struct {
		field string
		value float64
	}{
		{"property_tax", inputs.PropertyTax},
		{"insurance", inputs.Insurance},
		{"mortgage_insurance", inputs.MortgageInsurance},
		{"utilities", inputs.Utilities},
		{"capex", inputs.Capex},
		{"other_expenses", inputs.OtherExpenses},
	}
	for _, m := range monthly {
		if err := requireNonNegative(m.field, m.value); err != nil {
			return err
		}
	}

	if err := requirePercent("pm_fee_pct", inputs.PMFeePct); err != nil {
		return err
	}
	return requirePercent("vacancy_pct", inputs.VacancyPct)
}
