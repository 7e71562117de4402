package service

import (
	"math"

	"deal-underwriter/domain"
)

func requireFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return domain.NewInvalidInput(field, "must be a finite number")
	}
	return nil
}

func requirePositive(field string, v float64) error {
	if err := requireFinite(field, v); err != nil {
		return err
	}
	if v <= 0 {
		return domain.NewInvalidInput(field, "must be greater than 0, got %v", v)
	}
	return nil
}

func requireNonNegative(field string, v float64) error {
	if err := requireFinite(field, v); err != nil {
		return err
	}
	if v < 0 {
		return domain.NewInvalidInput(field, "must not be negative, got %v", v)
	}
	return nil
}

// requirePercent accepts values in [0, 100].
func requirePercent(field string, v float64) error {
	if err := requireNonNegative(field, v); err != nil {
		return err
	}
	if v > 100 {
		return domain.NewInvalidInput(field, "must not exceed 100, got %v", v)
	}
	return nil
}

func requireGrowthRate(field string, v float64) error {
	if err := requireFinite(field, v); err != nil {
		return err
	}
	if v <= MinGrowthPct {
		return domain.NewInvalidInput(field, "must be greater than %v, got %v", MinGrowthPct, v)
	}
	return nil
}

func requireHorizon(years int) error {
	if years < 0 {
		return domain.NewInvalidInput("years", "must not be negative, got %d", years)
	}
	if years > MaxHorizonYears {
		return domain.NewInvalidInput("years", "must not exceed %d, got %d", MaxHorizonYears, years)
	}
	return nil
}
