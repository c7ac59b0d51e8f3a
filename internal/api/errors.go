package api

import (
	"errors"
	"net/http"

	"hmis/m/internal/charge"
	"hmis/m/internal/datasource"
)

type validationResponse struct {
	Error string `json:"error"`
	Field string `json:"field"`
}

// fail maps an operation error to its HTTP response.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var verr *charge.ValidationError
	switch {
	case errors.As(err, &verr):
		h.metrics.ValidationFailures.WithLabelValues(verr.Field).Inc()
		respondJSON(w, http.StatusUnprocessableEntity, validationResponse{Error: verr.Error(), Field: verr.Field})
	case errors.Is(err, charge.ErrEmptyOrder):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, datasource.ErrUnknownList):
		respondError(w, http.StatusNotFound, err.Error())
	default:
		h.logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
