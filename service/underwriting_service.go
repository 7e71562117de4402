package service

import (
	"context"

	"github.com/rs/zerolog"

	"deal-underwriter/domain"
)

// DealExplainer writes a short narrative for an underwritten deal.
type DealExplainer interface {
	ExplainDeal(ctx context.Context, inputs domain.DealInputs, metrics domain.DealMetrics, summary domain.DealSummary) string
}

type UnderwritingService struct {
	explainer DealExplainer
	log       zerolog.Logger
}

// NewUnderwritingService creates an UnderwritingService. explainer may be nil,
// in which case commentary is never produced.
func NewUnderwritingService(explainer DealExplainer, log zerolog.Logger) *UnderwritingService {
	return &UnderwritingService{
		explainer: explainer,
		log:       log.With().Str("service", "underwriting").Logger(),
	}
}

// Underwrite computes metrics and their display summary, plus commentary when
// explain is set.
func (s *UnderwritingService) Underwrite(
	ctx context.Context,
	inputs domain.DealInputs,
	explain bool,
) (domain.UnderwritingResult, error) {
	metrics, err := ComputeMetrics(inputs)
	if err != nil {
		s.log.Debug().Err(err).Msg("Rejected deal inputs")
		return domain.UnderwritingResult{}, err
	}

	result := domain.UnderwritingResult{
		Metrics: metrics,
		Summary: FormatSummary(metrics),
	}

	if explain && s.explainer != nil {
		result.Commentary = s.explainer.ExplainDeal(ctx, inputs, metrics, result.Summary)
	}

	s.log.Debug().
		Float64("price", inputs.Price).
		Int("units", inputs.Units).
		Float64("noi", metrics.NOI).
		Float64("cap_rate_pct", metrics.CapRatePct).
		Msg("Deal underwritten")

	return result, nil
}
