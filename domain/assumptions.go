package domain

// Assumptions are the default inputs used to pre-fill a deal from a listing.
type Assumptions struct {
	DownPaymentPct       float64 `json:"down_payment_pct" yaml:"down_payment_pct"`
	InterestRate         float64 `json:"interest_rate" yaml:"interest_rate"`
	LoanTermYears        int     `json:"loan_term_years" yaml:"loan_term_years"`
	RentPerUnit          float64 `json:"rent_per_unit" yaml:"rent_per_unit"`
	AnnualTaxes          float64 `json:"annual_taxes" yaml:"annual_taxes"`
	PMFeePct             float64 `json:"pm_fee_pct" yaml:"pm_fee_pct"`
	VacancyPct           float64 `json:"vacancy_pct" yaml:"vacancy_pct"`
	HorizonYears         int     `json:"horizon_years" yaml:"horizon_years"`
	RentGrowthPct        float64 `json:"rent_growth_pct" yaml:"rent_growth_pct"`
	AppreciationPct      float64 `json:"appreciation_pct" yaml:"appreciation_pct"`
	InflationPct         float64 `json:"inflation_pct" yaml:"inflation_pct"`
	TaxGrowthPct         float64 `json:"tax_growth_pct" yaml:"tax_growth_pct"`
	AlternativeReturnPct float64 `json:"alternative_return_pct" yaml:"alternative_return_pct"`
}

// DefaultAssumptions returns the stock pre-fill values.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		DownPaymentPct:       20,
		InterestRate:         7.5,
		LoanTermYears:        30,
		RentPerUnit:          1000,
		AnnualTaxes:          3000,
		PMFeePct:             10,
		VacancyPct:           5,
		HorizonYears:         10,
		RentGrowthPct:        3,
		AppreciationPct:      3,
		InflationPct:         2.5,
		TaxGrowthPct:         2,
		AlternativeReturnPct: 6,
	}
}

// ListingDefaults pre-fills both calculators for one listing.
type ListingDefaults struct {
	Listing    Listing         `json:"listing"`
	Deal       DealInputs      `json:"deal"`
	Projection ProjectionInput `json:"projection"`
}
