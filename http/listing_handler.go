package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"deal-underwriter/domain"
	"deal-underwriter/service"
)

type ListingHandler struct {
	listings *service.ListingService
	log      zerolog.Logger
}

func NewListingHandler(listings *service.ListingService, log zerolog.Logger) *ListingHandler {
	return &ListingHandler{
		listings: listings,
		log:      log.With().Str("handler", "listings").Logger(),
	}
}

type listingsResponse struct {
	Listings []domain.Listing `json:"listings"`
	Count    int              `json:"count"`
	LoadedAt time.Time        `json:"loaded_at"`
}

// List handles GET /api/listings
func (h *ListingHandler) List(w http.ResponseWriter, r *http.Request) {
	listings := h.listings.Listings()
	if listings == nil {
		listings = []domain.Listing{}
	}
	writeJSON(w, h.log, http.StatusOK, listingsResponse{
		Listings: listings,
		Count:    len(listings),
		LoadedAt: h.listings.LoadedAt(),
	})
}

// Get handles GET /api/listings/{id}
func (h *ListingHandler) Get(w http.ResponseWriter, r *http.Request) {
	listing, err := h.listings.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, listing)
}

// Defaults handles GET /api/listings/{id}/defaults
func (h *ListingHandler) Defaults(w http.ResponseWriter, r *http.Request) {
	defaults, err := h.listings.Defaults(chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, defaults)
}
