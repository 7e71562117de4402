package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"deal-underwriter/domain"
)

const maxRequestBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

// decodeJSON reads a size-limited JSON body, rejecting unknown fields so a
// misspelled input is reported instead of silently left at zero.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// writeJSON encodes into a buffer first so a failed encode never leaves a
// half-written 200 behind.
func writeJSON(w http.ResponseWriter, log zerolog.Logger, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		if _, err := w.Write([]byte(`{"error":"internal server error"}` + "\n")); err != nil {
			log.Error().Err(err).Msg("Failed to write response")
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Error().Err(err).Msg("Failed to write response")
	}
}

func writeError(w http.ResponseWriter, log zerolog.Logger, status int, msg string) {
	writeJSON(w, log, status, errorResponse{Error: msg})
}

// writeServiceError maps domain errors to status codes.
func writeServiceError(w http.ResponseWriter, log zerolog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, log, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrListingNotFound):
		writeError(w, log, http.StatusNotFound, err.Error())
	default:
		log.Error().Err(err).Msg("Request failed")
		writeError(w, log, http.StatusInternalServerError, "internal server error")
	}
}
