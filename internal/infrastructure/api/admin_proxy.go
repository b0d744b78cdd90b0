package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"glowcart-marketing-core/internal/domain"
	"glowcart-marketing-core/internal/ports"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// AdminProxyHandlers passes Admin API reads through to the provider using
// the connected shop's stored token. The browser never sees the token.
type AdminProxyHandlers struct {
	gateway ports.AdminGateway
	logger  zerolog.Logger
}

// NewAdminProxyHandlers creates the admin passthrough handler set.
func NewAdminProxyHandlers(gateway ports.AdminGateway, logger zerolog.Logger) *AdminProxyHandlers {
	return &AdminProxyHandlers{gateway: gateway, logger: logger}
}

// Register mounts the shop-guarded passthrough routes.
func (h *AdminProxyHandlers) Register(r chi.Router) {
	r.Get("/api/shopify/products", h.products)
	r.Get("/api/shopify/customers", h.customers)
	r.Get("/api/shopify/orders", h.orders)
	r.Post("/api/shopify/webhooks", h.registerWebhook)
}

func (h *AdminProxyHandlers) products(w http.ResponseWriter, r *http.Request) {
	shop := domain.ShopFromContext(r.Context())

	products, err := h.gateway.ListProducts(r.Context(), shop.Domain, shop.AccessToken, queryLimit(r))
	if err != nil {
		writeError(w, h.logger, domain.NewUpstream("failed to fetch products", err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"products": products})
}

func (h *AdminProxyHandlers) customers(w http.ResponseWriter, r *http.Request) {
	shop := domain.ShopFromContext(r.Context())

	customers, err := h.gateway.ListCustomers(r.Context(), shop.Domain, shop.AccessToken, queryLimit(r))
	if err != nil {
		writeError(w, h.logger, domain.NewUpstream("failed to fetch customers", err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"customers": customers})
}

func (h *AdminProxyHandlers) orders(w http.ResponseWriter, r *http.Request) {
	shop := domain.ShopFromContext(r.Context())

	orders, err := h.gateway.ListOrders(r.Context(), shop.Domain, shop.AccessToken, queryLimit(r))
	if err != nil {
		writeError(w, h.logger, domain.NewUpstream("failed to fetch orders", err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}

func (h *AdminProxyHandlers) registerWebhook(w http.ResponseWriter, r *http.Request) {
	shop := domain.ShopFromContext(r.Context())

	var input struct {
		Topic   string `json:"topic"`
		Address string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, h.logger, domain.NewValidation("invalid request body"))
		return
	}
	if input.Topic == "" || input.Address == "" {
		writeError(w, h.logger, domain.NewValidation("topic and address are required"))
		return
	}

	webhook, err := h.gateway.RegisterWebhook(r.Context(), shop.Domain, shop.AccessToken, input.Topic, input.Address)
	if err != nil {
		writeError(w, h.logger, domain.NewUpstream("failed to register webhook", err))
		return
	}
	writeJSON(w, http.StatusCreated, webhook)
}

func queryLimit(r *http.Request) int {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return limit
}
