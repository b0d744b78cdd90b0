package api

import (
	"io"
	"net/http"

	"glowcart-marketing-core/internal/domain"
	"glowcart-marketing-core/internal/ports"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// WebhookVerifier checks a webhook payload against its signature header.
type WebhookVerifier interface {
	Verify(payload []byte, signature string) error
}

// WebhookPublisher fans a verified event out to in-process subscribers.
type WebhookPublisher interface {
	Publish(event *domain.WebhookEvent)
}

// WebhookHandlers receives provider webhooks. Deliveries are verified,
// logged, acknowledged, and published for out-of-band processing.
type WebhookHandlers struct {
	verifier WebhookVerifier
	log      ports.WebhookLogRepository
	events   WebhookPublisher
	logger   zerolog.Logger
}

// NewWebhookHandlers creates the webhook receiver. events may be nil when
// nothing consumes the fan-out.
func NewWebhookHandlers(verifier WebhookVerifier, log ports.WebhookLogRepository, events WebhookPublisher, logger zerolog.Logger) *WebhookHandlers {
	return &WebhookHandlers{verifier: verifier, log: log, events: events, logger: logger}
}

// Register mounts the public webhook route.
func (h *WebhookHandlers) Register(r chi.Router) {
	r.Post("/api/webhooks", h.receive)
}

func (h *WebhookHandlers) receive(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	topic := r.Header.Get("X-Shopify-Topic")
	shop := r.Header.Get("X-Shopify-Shop-Domain")
	signature := r.Header.Get("X-Shopify-Hmac-SHA256")

	if err := h.verifier.Verify(body, signature); err != nil {
		h.logger.Warn().
			Str("topic", topic).
			Str("shop", shop).
			Msg("Rejected webhook with invalid signature")
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	event := &domain.WebhookEvent{
		Topic:    topic,
		Shop:     shop,
		Payload:  body,
		Verified: true,
	}
	if err := h.log.LogWebhook(r.Context(), event); err != nil {
		h.logger.Error().Err(err).Str("topic", topic).Msg("Failed to log webhook")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if h.events != nil {
		h.events.Publish(event)
	}

	h.logger.Info().
		Str("topic", topic).
		Str("shop", shop).
		Msg("Webhook received")
	w.WriteHeader(http.StatusOK)
}
