package domain

type ProjectionPoint struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// ProjectionSeries holds years 0..N in order; year 0 is the present value.
type ProjectionSeries []ProjectionPoint

// Values returns the series values without their year index.
func (s ProjectionSeries) Values() []float64 {
	values := make([]float64, len(s))
	for i, p := range s {
		values[i] = p.Value
	}
	return values
}

// Last returns the final point's value, or 0 for an empty series.
func (s ProjectionSeries) Last() float64 {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1].Value
}

// ProjectionInput carries the growth assumptions for a full projection run.
// Percentages are expressed as 0-100.
type ProjectionInput struct {
	Years                 int     `json:"years"`
	InitialRent           float64 `json:"initial_rent"`
	RentGrowthPct         float64 `json:"rent_growth_pct"`
	InitialPrice          float64 `json:"initial_price"`
	AppreciationPct       float64 `json:"appreciation_pct"`
	InflationPct          float64 `json:"inflation_pct"`
	InitialTaxes          float64 `json:"initial_taxes"`
	TaxGrowthPct          float64 `json:"tax_growth_pct"`
	AlternativeReturnPct  float64 `json:"alternative_return_pct"`
	AlternativeInvestment float64 `json:"alternative_investment"`
}

type ProjectionSummary struct {
	CumulativeCashFlow    float64 `json:"cumulative_cash_flow"`
	FinalRent             float64 `json:"final_rent"`
	FinalHomeValue        float64 `json:"final_home_value"`
	AppreciationGain      float64 `json:"appreciation_gain"`
	FinalAlternativeValue float64 `json:"final_alternative_value"`
	AlternativeGain       float64 `json:"alternative_gain"`
}

type ProjectionResult struct {
	Rent                  ProjectionSeries  `json:"rent"`
	HomeValue             ProjectionSeries  `json:"home_value"`
	CashFlow              ProjectionSeries  `json:"cash_flow"`
	AlternativeInvestment ProjectionSeries  `json:"alternative_investment,omitempty"`
	Summary               ProjectionSummary `json:"summary"`
}
