package api

import (
	"net/http"

	"glowcart-marketing-core/internal/application"
	"glowcart-marketing-core/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// OAuthHandlers exposes the store connection flow: initiation, the provider
// callback, and the session's connection state.
type OAuthHandlers struct {
	service      *application.OAuthService
	dashboardURL string
	logger       zerolog.Logger
}

// NewOAuthHandlers creates the OAuth handler set. dashboardURL is where the
// browser lands after a completed connection.
func NewOAuthHandlers(service *application.OAuthService, dashboardURL string, logger zerolog.Logger) *OAuthHandlers {
	return &OAuthHandlers{service: service, dashboardURL: dashboardURL, logger: logger}
}

// Register mounts the OAuth routes. All of them only need a session, not a
// connected shop.
func (h *OAuthHandlers) Register(r chi.Router) {
	r.Get("/auth", h.initiate)
	r.Get("/callback", h.callback)
	r.Get("/api/shop", h.shop)
	r.Get("/api/status", h.status)
}

func (h *OAuthHandlers) initiate(w http.ResponseWriter, r *http.Request) {
	session := domain.SessionFromContext(r.Context())
	shop := r.URL.Query().Get("shop")

	authURL, err := h.service.Initiate(r.Context(), session, shop)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	http.Redirect(w, r, authURL, http.StatusFound)
}

func (h *OAuthHandlers) callback(w http.ResponseWriter, r *http.Request) {
	session := domain.SessionFromContext(r.Context())
	query := r.URL.Query()

	_, err := h.service.Callback(r.Context(), session, query.Get("shop"), query.Get("code"), query.Get("state"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	http.Redirect(w, r, h.dashboardURL, http.StatusFound)
}

func (h *OAuthHandlers) shop(w http.ResponseWriter, r *http.Request) {
	session := domain.SessionFromContext(r.Context())

	summary, err := h.service.ShopSummary(r.Context(), session)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func (h *OAuthHandlers) status(w http.ResponseWriter, r *http.Request) {
	session := domain.SessionFromContext(r.Context())

	status, err := h.service.ConnectionStatus(r.Context(), session)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, status)
}
