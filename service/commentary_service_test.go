package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deal-underwriter/domain"
)

func underwrittenFiveUnitDeal(t *testing.T) (domain.DealInputs, domain.DealMetrics, domain.DealSummary) {
	t.Helper()
	inputs := fiveUnitDeal()
	metrics, err := ComputeMetrics(inputs)
	require.NoError(t, err)
	return inputs, metrics, FormatSummary(metrics)
}

func TestCommentaryService_ExplainDeal(t *testing.T) {
	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  Solid deal.\n"}}]}`))
	}))
	defer server.Close()

	svc := NewCommentaryService(CommentaryConfig{
		APIKey: "test-key",
		APIURL: server.URL,
		Model:  "test-model",
	}, zerolog.Nop())
	require.True(t, svc.Enabled())

	inputs, metrics, summary := underwrittenFiveUnitDeal(t)
	explanation := svc.ExplainDeal(context.Background(), inputs, metrics, summary)

	assert.Equal(t, "Solid deal.", explanation)
	assert.Equal(t, "test-model", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Contains(t, got.Messages[1].Content, "Cap Rate: 16.00%")
	assert.Contains(t, got.Messages[1].Content, "$300,000 (5 units, $60,000 per unit)")
}

func TestCommentaryService_FallsBackOnAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"overloaded"}`, http.StatusServiceUnavailable)
	}))
	defer server.Close()

	svc := NewCommentaryService(CommentaryConfig{APIKey: "k", APIURL: server.URL}, zerolog.Nop())

	inputs, metrics, summary := underwrittenFiveUnitDeal(t)
	explanation := svc.ExplainDeal(context.Background(), inputs, metrics, summary)

	assert.Equal(t, fallbackDealExplanation(metrics, summary), explanation)
}

func TestCommentaryService_FallsBackOnEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	svc := NewCommentaryService(CommentaryConfig{APIKey: "k", APIURL: server.URL}, zerolog.Nop())

	inputs, metrics, summary := underwrittenFiveUnitDeal(t)
	assert.Equal(t, fallbackDealExplanation(metrics, summary), svc.ExplainDeal(context.Background(), inputs, metrics, summary))
}

func TestCommentaryService_Disabled(t *testing.T) {
	svc := NewCommentaryService(CommentaryConfig{}, zerolog.Nop())
	assert.False(t, svc.Enabled())

	inputs, metrics, summary := underwrittenFiveUnitDeal(t)
	explanation := svc.ExplainDeal(context.Background(), inputs, metrics, summary)

	assert.Contains(t, explanation, "cash flows $2,322 a month ($27,863 a year)")
	assert.Contains(t, explanation, "16.00% cap rate")
	assert.Contains(t, explanation, "46.44% cash-on-cash")
	assert.Contains(t, explanation, "$60,000 down")
	assert.Contains(t, explanation, "2.38x, comfortably above")
}

func TestFallbackDealExplanation_NegativeCashFlow(t *testing.T) {
	inputs := fiveUnitDeal()
	inputs.MonthlyRents = []float64{400, 400, 400, 400, 400}
	metrics, err := ComputeMetrics(inputs)
	require.NoError(t, err)
	require.Less(t, metrics.CashFlowAnnual, 0.0)

	explanation := fallbackDealExplanation(metrics, FormatSummary(metrics))

	assert.Contains(t, explanation, "The deal loses $")
	assert.Contains(t, explanation, "does not cover the mortgage")
}

func TestFallbackDealExplanation_AllCash(t *testing.T) {
	inputs := fiveUnitDeal()
	inputs.DownPaymentPct = 100
	metrics, err := ComputeMetrics(inputs)
	require.NoError(t, err)

	explanation := fallbackDealExplanation(metrics, FormatSummary(metrics))
	assert.Contains(t, explanation, "There is no debt to cover.")
}
