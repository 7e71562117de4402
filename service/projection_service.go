package service

import (
	"github.com/rs/zerolog"

	"deal-underwriter/domain"
)

type ProjectionService struct {
	log zerolog.Logger
}

func NewProjectionService(log zerolog.Logger) *ProjectionService {
	return &ProjectionService{
		log: log.With().Str("service", "projection").Logger(),
	}
}

// Project runs every projection for one set of growth assumptions. The
// alternative investment series is only produced when a principal is given.
func (s *ProjectionService) Project(input domain.ProjectionInput) (domain.ProjectionResult, error) {
	var (
		result domain.ProjectionResult
		err    error
	)

	if result.Rent, err = ProjectRent(input.InitialRent, input.RentGrowthPct, input.Years); err != nil {
		return domain.ProjectionResult{}, err
	}
	if result.HomeValue, err = ProjectHomeValue(input.InitialPrice, input.AppreciationPct, input.Years); err != nil {
		return domain.ProjectionResult{}, err
	}
	if result.CashFlow, err = ProjectCashFlow(
		input.InitialRent,
		input.RentGrowthPct,
		input.InflationPct,
		input.InitialTaxes,
		input.TaxGrowthPct,
		input.Years,
	); err != nil {
		return domain.ProjectionResult{}, err
	}

	if input.AlternativeInvestment > 0 {
		if result.AlternativeInvestment, err = ProjectAlternativeInvestment(
			input.AlternativeInvestment,
			input.AlternativeReturnPct,
			input.Years,
		); err != nil {
			return domain.ProjectionResult{}, err
		}
	} else if err := requireNonNegative("alternative_investment", input.AlternativeInvestment); err != nil {
		return domain.ProjectionResult{}, err
	}

	if result.Summary, err = SummarizeProjections(result); err != nil {
		return domain.ProjectionResult{}, err
	}

	s.log.Debug().
		Int("years", input.Years).
		Float64("cumulative_cash_flow", result.Summary.CumulativeCashFlow).
		Msg("Projections computed")

	return result, nil
}
