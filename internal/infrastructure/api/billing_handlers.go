package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"glowcart-marketing-core/internal/application"
	"glowcart-marketing-core/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// BillingHandlers exposes the subscription lifecycle. Every route runs behind
// the shop guard; the confirmation callback is browser-facing and redirects
// to the subscription settings page instead of returning JSON.
type BillingHandlers struct {
	service         *application.BillingService
	subscriptionURL string
	logger          zerolog.Logger
}

// NewBillingHandlers creates the billing handler set.
func NewBillingHandlers(service *application.BillingService, subscriptionURL string, logger zerolog.Logger) *BillingHandlers {
	return &BillingHandlers{service: service, subscriptionURL: subscriptionURL, logger: logger}
}

// Register mounts the billing routes.
func (h *BillingHandlers) Register(r chi.Router) {
	r.Get("/api/billing/plans", h.plans)
	r.Post("/api/billing/subscribe", h.subscribe)
	r.Get("/billing/callback", h.confirm)
	r.Post("/api/billing/cancel", h.cancel)
}

func (h *BillingHandlers) plans(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"plans": h.service.Plans()})
}

func (h *BillingHandlers) subscribe(w http.ResponseWriter, r *http.Request) {
	shop := domain.ShopFromContext(r.Context())

	var input struct {
		PlanID string `json:"plan_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, h.logger, domain.NewValidation("invalid request body"))
		return
	}

	confirmationURL, err := h.service.Subscribe(r.Context(), shop, input.PlanID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"confirmation_url": confirmationURL})
}

// confirm handles the merchant's return from the provider's approval page.
// Whatever happens the browser ends up on the subscription settings page;
// failures only add an error marker to the URL.
func (h *BillingHandlers) confirm(w http.ResponseWriter, r *http.Request) {
	shop := domain.ShopFromContext(r.Context())

	chargeID, _ := strconv.ParseInt(r.URL.Query().Get("charge_id"), 10, 64)
	if err := h.service.Confirm(r.Context(), shop, chargeID); err != nil {
		h.logger.Error().Err(err).Str("shop", shop.Domain).Msg("Failed to confirm subscription")
		http.Redirect(w, r, h.subscriptionURL+"?error=1", http.StatusFound)
		return
	}

	http.Redirect(w, r, h.subscriptionURL, http.StatusFound)
}

func (h *BillingHandlers) cancel(w http.ResponseWriter, r *http.Request) {
	shop := domain.ShopFromContext(r.Context())

	if err := h.service.Cancel(r.Context(), shop); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, shop.Summary())
}
