package api

import (
	"net/http"

	"glowcart-marketing-core/internal/application"
	"glowcart-marketing-core/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// DashboardHandlers exposes the aggregated overview page.
type DashboardHandlers struct {
	service *application.DashboardService
	logger  zerolog.Logger
}

// NewDashboardHandlers creates the dashboard handler set.
func NewDashboardHandlers(service *application.DashboardService, logger zerolog.Logger) *DashboardHandlers {
	return &DashboardHandlers{service: service, logger: logger}
}

// Register mounts the shop-guarded dashboard route.
func (h *DashboardHandlers) Register(r chi.Router) {
	r.Get("/api/dashboard", h.overview)
}

func (h *DashboardHandlers) overview(w http.ResponseWriter, r *http.Request) {
	shop := domain.ShopFromContext(r.Context())

	view, err := h.service.Overview(r.Context(), shop.ID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
