package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"glowcart-marketing-core/internal/domain"

	"github.com/rs/zerolog"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// writeError maps a kinded error onto its HTTP status. Unclassified errors
// hide their message behind a generic 500; everything else is safe to show.
func writeError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	kind := domain.KindOf(err)
	status := kind.HTTPStatus()

	message := "internal server error"
	var appErr *domain.Error
	if errors.As(err, &appErr) {
		message = appErr.Message
	}

	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Msg("Request failed")
	} else {
		logger.Debug().Err(err).Int("status", status).Msg("Request rejected")
	}

	writeJSON(w, status, map[string]string{"error": message})
}
