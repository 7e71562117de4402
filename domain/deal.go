package domain

// DealInputs is a snapshot of one deal. Dollar expenses are monthly amounts;
// percentages are expressed as 0-100.
type DealInputs struct {
	Price             float64   `json:"price"`
	Units             int       `json:"units"`
	DownPaymentPct    float64   `json:"down_payment_pct"`
	InterestRate      float64   `json:"interest_rate"`
	LoanTermYears     int       `json:"loan_term_years"`
	MonthlyRents      []float64 `json:"monthly_rents"`
	PropertyTax       float64   `json:"property_tax"`
	Insurance         float64   `json:"insurance"`
	MortgageInsurance float64   `json:"mortgage_insurance"`
	PMFeePct          float64   `json:"pm_fee_pct"`
	Utilities         float64   `json:"utilities"`
	Capex             float64   `json:"capex"`
	OtherExpenses     float64   `json:"other_expenses"`
	VacancyPct        float64   `json:"vacancy_pct"`
}

// DealMetrics holds the derived figures for one DealInputs value. Annual
// figures are the source of truth; monthly ones are annual / 12.
type DealMetrics struct {
	LoanAmount             float64 `json:"loan_amount"`
	DownPayment            float64 `json:"down_payment"`
	MonthlyMortgagePayment float64 `json:"monthly_mortgage_payment"`
	PricePerUnit           float64 `json:"price_per_unit"`

	GrossRentAnnual         float64 `json:"gross_rent_annual"`
	VacancyAnnual           float64 `json:"vacancy_annual"`
	ManagementFeeAnnual     float64 `json:"management_fee_annual"`
	OperatingExpensesAnnual float64 `json:"operating_expenses_annual"`
	NOI                     float64 `json:"noi"`
	AnnualDebtService       float64 `json:"annual_debt_service"`
	CashFlowAnnual          float64 `json:"cash_flow_annual"`

	CapRatePct    float64 `json:"cap_rate_pct"`
	CashOnCashPct float64 `json:"cash_on_cash_pct"`

	// DSCR is nil when the deal carries no debt.
	DSCR                *float64 `json:"dscr,omitempty"`
	// GrossRentMultiplier is nil when there is no rent.
	GrossRentMultiplier *float64 `json:"gross_rent_multiplier,omitempty"`

	GrossRentMonthly   float64 `json:"gross_rent_monthly"`
	NOIMonthly         float64 `json:"noi_monthly"`
	DebtServiceMonthly float64 `json:"debt_service_monthly"`
	CashFlowMonthly    float64 `json:"cash_flow_monthly"`
}

// DealSummary maps a display label to its formatted value.
type DealSummary map[string]string

// Summary labels, in display order.
const (
	LabelGrossRentAnnual     = "Gross Rent (Annual)"
	LabelNOI                 = "NOI"
	LabelAnnualDebtService   = "Annual Debt Service"
	LabelCashFlowAnnual      = "Cash Flow (Annual)"
	LabelCapRate             = "Cap Rate"
	LabelCashOnCash          = "Cash-on-Cash Return"
	LabelGrossRentMonthly    = "Gross Rent (Monthly)"
	LabelNOIMonthly          = "NOI (Monthly)"
	LabelDebtServiceMonthly  = "Debt Service (Monthly)"
	LabelCashFlowMonthly     = "Cash Flow (Monthly)"
	LabelMortgagePayment     = "Mortgage Payment (Monthly)"
	LabelPricePerUnit        = "Price per Unit"
	LabelDSCR                = "DSCR"
	LabelGrossRentMultiplier = "Gross Rent Multiplier"
)

var SummaryOrder = []string{
	LabelGrossRentAnnual,
	LabelNOI,
	LabelAnnualDebtService,
	LabelCashFlowAnnual,
	LabelCapRate,
	LabelCashOnCash,
	LabelGrossRentMonthly,
	LabelNOIMonthly,
	LabelDebtServiceMonthly,
	LabelCashFlowMonthly,
	LabelMortgagePayment,
	LabelPricePerUnit,
	LabelDSCR,
	LabelGrossRentMultiplier,
}

type UnderwritingResult struct {
	Metrics    DealMetrics `json:"metrics"`
	Summary    DealSummary `json:"summary"`
	Commentary string      `json:"commentary,omitempty"`
}
