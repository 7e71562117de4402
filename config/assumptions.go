package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"deal-underwriter/domain"
)

// LoadAssumptions returns the default assumptions overlaid with any keys set
// in the YAML file at path. An empty path returns the defaults.
func LoadAssumptions(path string) (domain.Assumptions, error) {
	assumptions := domain.DefaultAssumptions()
	if path == "" {
		return assumptions, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Assumptions{}, fmt.Errorf("failed to read assumptions file: %w", err)
	}

	if err := yaml.UnmarshalStrict(data, &assumptions); err != nil {
		return domain.Assumptions{}, fmt.Errorf("failed to parse assumptions file %s: %w", path, err)
	}

	if err := validateAssumptions(assumptions); err != nil {
		return domain.Assumptions{}, fmt.Errorf("assumptions file %s: %w", path, err)
	}

	return assumptions, nil
}

func validateAssumptions(a domain.Assumptions) error {
	if a.DownPaymentPct <= 0 || a.DownPaymentPct > 100 {
		return domain.NewInvalidInput("down_payment_pct", "must be in (0, 100], got %v", a.DownPaymentPct)
	}
	if a.InterestRate < 0 {
		return domain.NewInvalidInput("interest_rate", "must not be negative, got %v", a.InterestRate)
	}
	if a.LoanTermYears < 1 {
		return domain.NewInvalidInput("loan_term_years", "must be at least 1, got %d", a.LoanTermYears)
	}
	if a.HorizonYears < 0 {
		return domain.NewInvalidInput("horizon_years", "must not be negative, got %d", a.HorizonYears)
	}
	if a.RentPerUnit < 0 || a.AnnualTaxes < 0 {
		return domain.NewInvalidInput("rent_per_unit/annual_taxes", "must not be negative")
	}
	return nil
}
