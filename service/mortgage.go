package service

import (
	"fmt"
	"math"

	"deal-underwriter/domain"
)

// MonthlyPayment returns the level payment of a fixed-rate amortizing loan.
// termYears must be at least 1. A zero rate divides the principal evenly.
func MonthlyPayment(amount, annualRatePct float64, termYears int) float64 {
	n := float64(termYears * 12)
	if amount == 0 {
		return 0
	}
	if annualRatePct == 0 {
		return amount / n
	}

	r := annualRatePct / 100 / 12
	growth := math.Pow(1+r, n)
	// A rate small enough to vanish in float64 behaves like a zero rate.
	if growth == 1 {
		return amount / n
	}
	return amount * (r * growth) / (growth - 1)
}

// CalculateFinancing validates a loan and returns its steady-state cost.
func CalculateFinancing(input domain.FinancingInput) (domain.Financing, error) {
	if err := requireNonNegative("loan amount", input.Amount); err != nil {
		return domain.Financing{}, err
	}
	if input.Amount > MaxPrice {
		return domain.Financing{}, domain.NewInvalidInput("loan amount", "exceeds the maximum of $%.2f", MaxPrice)
	}
	if err := requireNonNegative("interest_rate", input.InterestRate); err != nil {
		return domain.Financing{}, err
	}
	if input.InterestRate > MaxInterestRate {
		return domain.Financing{}, domain.NewInvalidInput("interest_rate", "exceeds the maximum of %.2f%%", MaxInterestRate)
	}
	if input.TermYears < MinLoanTermYears {
		return domain.Financing{}, domain.NewInvalidInput("loan_term_years", "must be at least %d", MinLoanTermYears)
	}
	if input.TermYears > MaxLoanTermYears {
		return domain.Financing{}, domain.NewInvalidInput("loan_term_years", "exceeds the maximum of %d years", MaxLoanTermYears)
	}

	payment := MonthlyPayment(input.Amount, input.InterestRate, input.TermYears)
	if math.IsNaN(payment) || math.IsInf(payment, 0) {
		return domain.Financing{}, fmt.Errorf("mortgage payment is not finite for %+v", input)
	}

	total := payment * float64(input.TermYears*12)

	return domain.Financing{
		MonthlyPayment:    payment,
		AnnualDebtService: payment * 12,
		TotalPayment:      total,
		TotalInterest:     total - input.Amount,
	}, nil
}
