package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"deal-underwriter/domain"
)

const (
	defaultCommentaryURL   = "https://api.openai.com/v1/chat/completions"
	defaultCommentaryModel = "gpt-4o-mini"
)

type CommentaryConfig struct {
	APIKey  string
	APIURL  string
	Model   string
	Timeout time.Duration
}

// CommentaryService asks a chat-completion API to explain a deal, falling back
// to a fixed template when no key is configured or the call fails.
type CommentaryService struct {
	client  *resty.Client
	apiURL  string
	model   string
	enabled bool
	log     zerolog.Logger
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func NewCommentaryService(cfg CommentaryConfig, log zerolog.Logger) *CommentaryService {
	if cfg.APIURL == "" {
		cfg.APIURL = defaultCommentaryURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultCommentaryModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(cfg.APIKey)

	return &CommentaryService{
		client:  client,
		apiURL:  cfg.APIURL,
		model:   cfg.Model,
		enabled: cfg.APIKey != "",
		log:     log.With().Str("service", "commentary").Logger(),
	}
}

// Enabled reports whether an API key was configured.
func (s *CommentaryService) Enabled() bool {
	return s.enabled
}

// ExplainDeal returns a 3-4 sentence narrative of the deal.
func (s *CommentaryService) ExplainDeal(
	ctx context.Context,
	inputs domain.DealInputs,
	metrics domain.DealMetrics,
	summary domain.DealSummary,
) string {
	if !s.enabled {
		return fallbackDealExplanation(metrics, summary)
	}

	prompt := fmt.Sprintf(`Review this multifamily rental deal and explain it to a small investor.

PROPERTY:
- Purchase price: %s (%d units, %s per unit)
- Down payment: %.1f%% (%s), interest rate %.2f%%, %d-year fixed

RESULTS:
%s
INSTRUCTIONS:
1. Say whether the deal cash flows after debt service and by how much per month.
2. Put the cap rate and cash-on-cash return in plain words.
3. Comment on the debt service coverage ratio.
4. Be realistic, not promotional.

Answer in 3-4 sentences.`,
		FormatCurrency(inputs.Price), inputs.Units, summary[domain.LabelPricePerUnit],
		inputs.DownPaymentPct, FormatCurrency(metrics.DownPayment), inputs.InterestRate, inputs.LoanTermYears,
		formatSummaryLines(summary))

	explanation, err := s.complete(ctx, prompt)
	if err != nil {
		s.log.Warn().Err(err).Msg("Commentary request failed, using fallback")
		return fallbackDealExplanation(metrics, summary)
	}

	return explanation
}

func (s *CommentaryService) complete(ctx context.Context, prompt string) (string, error) {
	body := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{
				Role:    "system",
				Content: "You are a real estate underwriting analyst. You explain rental property numbers clearly and precisely, quoting the figures you are given without inventing new ones.",
			},
			{
				Role:    "user",
				Content: prompt,
			},
		},
		MaxTokens: 300,
	}

	var out chatResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		Post(s.apiURL)
	if err != nil {
		return "", fmt.Errorf("commentary request: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("commentary API error (status %d): %s", resp.StatusCode(), resp.String())
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("commentary API returned no choices")
	}

	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}

func formatSummaryLines(summary domain.DealSummary) string {
	var b strings.Builder
	for _, label := range domain.SummaryOrder {
		if v, ok := summary[label]; ok {
			fmt.Fprintf(&b, "- %s: %s\n", label, v)
		}
	}
	return b.String()
}

func fallbackDealExplanation(metrics domain.DealMetrics, summary domain.DealSummary) string {
	var flow string
	if metrics.CashFlowAnnual >= 0 {
		flow = fmt.Sprintf("The deal cash flows %s a month (%s a year) after debt service.",
			summary[domain.LabelCashFlowMonthly], summary[domain.LabelCashFlowAnnual])
	} else {
		flow = fmt.Sprintf("The deal loses %s a month after debt service.",
			FormatCurrency(-metrics.CashFlowMonthly))
	}

	coverage := "There is no debt to cover."
	if metrics.DSCR != nil {
		switch {
		case *metrics.DSCR >= 1.25:
			coverage = fmt.Sprintf("NOI covers the mortgage %s, comfortably above the 1.25x lenders usually want.", summary[domain.LabelDSCR])
		case *metrics.DSCR >= 1:
			coverage = fmt.Sprintf("NOI covers the mortgage only %s, below the 1.25x lenders usually want.", summary[domain.LabelDSCR])
		default:
			coverage = fmt.Sprintf("NOI does not cover the mortgage (%s).", summary[domain.LabelDSCR])
		}
	}

	return fmt.Sprintf("%s It trades at a %s cap rate with a %s cash-on-cash return on %s down. %s",
		flow, summary[domain.LabelCapRate], summary[domain.LabelCashOnCash],
		FormatCurrency(metrics.DownPayment), coverage)
}
