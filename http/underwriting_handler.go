package http

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"deal-underwriter/domain"
	"deal-underwriter/service"
)

type UnderwritingHandler struct {
	service *service.UnderwritingService
	cache   *responseCache
	log     zerolog.Logger
}

func NewUnderwritingHandler(
	service *service.UnderwritingService,
	cache *responseCache,
	log zerolog.Logger,
) *UnderwritingHandler {
	return &UnderwritingHandler{
		service: service,
		cache:   cache,
		log:     log.With().Str("handler", "underwriting").Logger(),
	}
}

// underwriteRequest lets loan_term_years be omitted; the outer field shadows
// the embedded one during decoding.
type underwriteRequest struct {
	domain.DealInputs
	LoanTermYears *int `json:"loan_term_years"`
}

type underwriteCacheKey struct {
	Inputs  domain.DealInputs
	Explain bool
}

// Underwrite handles POST /api/deals/underwrite[?explain=true]
func (h *UnderwritingHandler) Underwrite(w http.ResponseWriter, r *http.Request) {
	var req underwriteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.log.Debug().Err(err).Msg("Failed to decode request body")
		writeError(w, h.log, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	inputs := req.DealInputs
	inputs.LoanTermYears = service.DefaultLoanTermYears
	if req.LoanTermYears != nil {
		inputs.LoanTermYears = *req.LoanTermYears
	}

	explain := false
	if raw := r.URL.Query().Get("explain"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, h.log, http.StatusBadRequest, "explain must be a boolean")
			return
		}
		explain = v
	}

	key, err := cacheKey("underwrite", underwriteCacheKey{Inputs: inputs, Explain: explain})
	if err != nil {
		h.log.Warn().Err(err).Msg("Skipping cache")
	}

	var result domain.UnderwritingResult
	if h.cache.load(r.Context(), key, &result) {
		w.Header().Set("X-Cache", "HIT")
		writeJSON(w, h.log, http.StatusOK, result)
		return
	}

	result, err = h.service.Underwrite(r.Context(), inputs, explain)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	h.cache.save(r.Context(), key, result)
	w.Header().Set("X-Cache", "MISS")
	writeJSON(w, h.log, http.StatusOK, result)
}
