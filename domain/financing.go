package domain

// FinancingInput describes a fixed-rate amortizing loan.
type FinancingInput struct {
	Amount       float64 `json:"amount"`
	InterestRate float64 `json:"interest_rate"`
	TermYears    int     `json:"term_years"`
}

// Financing is the steady-state cost of a FinancingInput.
type Financing struct {
	MonthlyPayment    float64 `json:"monthly_payment"`
	AnnualDebtService float64 `json:"annual_debt_service"`
	TotalPayment      float64 `json:"total_payment"`
	TotalInterest     float64 `json:"total_interest"`
}
