package http

import (
	"net/http"

	"github.com/rs/zerolog"

	"deal-underwriter/domain"
	"deal-underwriter/service"
)

const defaultHorizonYears = 10

type ProjectionHandler struct {
	service *service.ProjectionService
	cache   *responseCache
	log     zerolog.Logger
}

func NewProjectionHandler(
	service *service.ProjectionService,
	cache *responseCache,
	log zerolog.Logger,
) *ProjectionHandler {
	return &ProjectionHandler{
		service: service,
		cache:   cache,
		log:     log.With().Str("handler", "projection").Logger(),
	}
}

// projectionRequest lets years be omitted in favor of the 10-year horizon.
type projectionRequest struct {
	domain.ProjectionInput
	Years *int `json:"years"`
}

// Project handles POST /api/projections
func (h *ProjectionHandler) Project(w http.ResponseWriter, r *http.Request) {
	var req projectionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.log.Debug().Err(err).Msg("Failed to decode request body")
		writeError(w, h.log, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	input := req.ProjectionInput
	input.Years = defaultHorizonYears
	if req.Years != nil {
		input.Years = *req.Years
	}

	key, err := cacheKey("projection", input)
	if err != nil {
		h.log.Warn().Err(err).Msg("Skipping cache")
	}

	var result domain.ProjectionResult
	if h.cache.load(r.Context(), key, &result) {
		w.Header().Set("X-Cache", "HIT")
		writeJSON(w, h.log, http.StatusOK, result)
		return
	}

	result, err = h.service.Project(input)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	h.cache.save(r.Context(), key, result)
	w.Header().Set("X-Cache", "MISS")
	writeJSON(w, h.log, http.StatusOK, result)
}
