package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"glowcart-marketing-core/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestWriteErrorMapsKinds(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"validation", domain.NewValidation("shop parameter is required"), http.StatusBadRequest, `{"error":"shop parameter is required"}`},
		{"unauthorized", domain.NewUnauthorized("not authenticated"), http.StatusUnauthorized, `{"error":"not authenticated"}`},
		{"forbidden", domain.NewForbidden("state validation failed"), http.StatusForbidden, `{"error":"state validation failed"}`},
		{"not found", domain.NewNotFound("shop not found"), http.StatusNotFound, `{"error":"shop not found"}`},
		{"conflict", domain.NewConflict("username taken"), http.StatusConflict, `{"error":"username taken"}`},
		{"upstream", domain.NewUpstream("provider unavailable", errors.New("502")), http.StatusBadGateway, `{"error":"provider unavailable"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, zerolog.Nop(), tc.err)

			assert.Equal(t, tc.status, rec.Code)
			assert.JSONEq(t, tc.body, rec.Body.String())
		})
	}
}

func TestWriteErrorHidesUnclassifiedMessages(t *testing.T) {
	rec := httptest.NewRecorder()

	writeError(rec, zerolog.Nop(), errors.New("mongo: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}
