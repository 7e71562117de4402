package service

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"deal-underwriter/domain"
)

func compound(base, ratePct float64, year int) float64 {
	return base * math.Pow(1+ratePct/100, float64(year))
}

func growthSeries(field string, base, ratePct float64, years int) (domain.ProjectionSeries, error) {
	if err := requireHorizon(years); err != nil {
		return nil, err
	}
	if err := requireNonNegative(field, base); err != nil {
		return nil, err
	}
	if err := requireGrowthRate(field+" growth", ratePct); err != nil {
		return nil, err
	}

	series := make(domain.ProjectionSeries, years+1)
	for y := 0; y <= years; y++ {
		value := compound(base, ratePct, y)
		if math.IsInf(value, 0) {
			return nil, domain.NewInvalidInput(field+" growth", "overflows by year %d", y)
		}
		series[y] = domain.ProjectionPoint{Year: y, Value: value}
	}
	return series, nil
}

// ProjectRent compounds initialRent by growthPct for years 0..years.
func ProjectRent(initialRent, growthPct float64, years int) (domain.ProjectionSeries, error) {
	return growthSeries("initial_rent", initialRent, growthPct, years)
}

// ProjectHomeValue compounds price by appreciationPct for years 0..years.
func ProjectHomeValue(price, appreciationPct float64, years int) (domain.ProjectionSeries, error) {
	return growthSeries("initial_price", price, appreciationPct, years)
}

// ProjectAlternativeInvestment compounds the cash that would otherwise go
// into the deal at returnPct for years 0..years.
func ProjectAlternativeInvestment(principal, returnPct float64, years int) (domain.ProjectionSeries, error) {
	return growthSeries("alternative_investment", principal, returnPct, years)
}

// ProjectCashFlow projects net cash flow as rent less operating expenses less
// taxes. Operating expenses are a fixed OperatingExpenseRatio of that year's
// rent, inflated by inflationPct; they ignore the deal's actual expenses.
func ProjectCashFlow(initialRent, rentGrowthPct, inflationPct, initialTaxes, taxGrowthPct float64, years int) (domain.ProjectionSeries, error) {
	rents, err := ProjectRent(initialRent, rentGrowthPct, years)
	if err != nil {
		return nil, err
	}
	taxes, err := growthSeries("initial_taxes", initialTaxes, taxGrowthPct, years)
	if err != nil {
		return nil, err
	}
	if err := requireGrowthRate("inflation", inflationPct); err != nil {
		return nil, err
	}

	series := make(domain.ProjectionSeries, years+1)
	for y := 0; y <= years; y++ {
		rent := rents[y].Value
		opex := compound(OperatingExpenseRatio*rent, inflationPct, y)
		net := rent - opex - taxes[y].Value
		if isNonFinite(opex) || isNonFinite(net) {
			return nil, domain.NewInvalidInput("inflation", "overflows by year %d", y)
		}
		series[y] = domain.ProjectionPoint{Year: y, Value: net}
	}
	return series, nil
}

func isNonFinite(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

// SummarizeProjections reduces a set of series to headline figures. It fails
// when the cumulative cash flow overflows even though every year is finite.
func SummarizeProjections(result domain.ProjectionResult) (domain.ProjectionSummary, error) {
	cumulative := floats.Sum(result.CashFlow.Values())
	if isNonFinite(cumulative) {
		return domain.ProjectionSummary{}, domain.NewInvalidInput("cash_flow", "cumulative total overflows")
	}

	summary := domain.ProjectionSummary{
		CumulativeCashFlow: cumulative,
		FinalRent:          result.Rent.Last(),
		FinalHomeValue:     result.HomeValue.Last(),
	}
	if len(result.HomeValue) > 0 {
		summary.AppreciationGain = result.HomeValue.Last() - result.HomeValue[0].Value
	}
	if len(result.AlternativeInvestment) > 0 {
		summary.FinalAlternativeValue = result.AlternativeInvestment.Last()
		summary.AlternativeGain = result.AlternativeInvestment.Last() - result.AlternativeInvestment[0].Value
	}
	return summary, nil
}
