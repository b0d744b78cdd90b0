package api

import (
	"encoding/json"
	"net/http"

	"glowcart-marketing-core/internal/application"
	"glowcart-marketing-core/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// MarketingHandlers exposes the shop-scoped marketing resources. Everything
// except lead capture runs behind the shop guard.
type MarketingHandlers struct {
	service *application.MarketingService
	logger  zerolog.Logger
}

// NewMarketingHandlers creates the marketing handler set.
func NewMarketingHandlers(service *application.MarketingService, logger zerolog.Logger) *MarketingHandlers {
	return &MarketingHandlers{service: service, logger: logger}
}

// Register mounts the shop-guarded marketing routes.
func (h *MarketingHandlers) Register(r chi.Router) {
	r.Get("/api/campaigns/email", h.listEmailCampaigns)
	r.Post("/api/campaigns/email", h.createEmailCampaign)
	r.Get("/api/campaigns/email/{id}", h.getEmailCampaign)
	r.Put("/api/campaigns/email/{id}", h.updateEmailCampaign)

	r.Get("/api/templates", h.listTemplates)
	r.Post("/api/templates", h.createTemplate)

	r.Get("/api/campaigns/sms", h.listSMSCampaigns)
	r.Post("/api/campaigns/sms", h.createSMSCampaign)

	r.Get("/api/social/accounts", h.listSocialAccounts)
	r.Post("/api/social/accounts", h.createSocialAccount)
	r.Get("/api/social/accounts/{id}/posts", h.listSocialPosts)
	r.Post("/api/social/posts", h.createSocialPost)

	r.Get("/api/popups", h.listPopups)
	r.Post("/api/popups", h.createPopup)
	r.Put("/api/popups/{id}", h.updatePopup)

	r.Get("/api/leads", h.listLeads)

	r.Get("/api/seo", h.getSEOSettings)
	r.Put("/api/seo", h.updateSEOSettings)
}

// RegisterPublic mounts lead capture, the storefront's unauthenticated
// submission path.
func (h *MarketingHandlers) RegisterPublic(r chi.Router) {
	r.Post("/api/leads", h.createLead)
}

func (h *MarketingHandlers) listEmailCampaigns(w http.ResponseWriter, r *http.Request) {
	shop := domain.ShopFromContext(r.Context())

	campaigns, err := h.service.ListEmailCampaigns(r.Context(), shop.ID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, campaigns)
}

func (h *MarketingHandlers) createEmailCampaign(w http.ResponseWriter, r *http.Request) {
	shop := domain.ShopFromContext(r.Context())

	var campaign domain.EmailCampaign
	if err := json.NewDecoder(r.Body).Decode(&campaign); err != nil {
		writeError(w, h.logger, domain.NewValidation("invalid request body"))
		return
	}

	created, err := h.service.CreateEmailCampaign(r.Context(), shop.ID, &campaign)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *MarketingHandlers) getEmailCampaign(w http.ResponseWriter, r *http.Request) {
	shop := domain.ShopFromContext(r.Context())

	campaign, err := h.service.GetEmailCampaign(r.Context(), shop.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, campaign)
}

func (h *MarketingHandlers) updateEmailCampaign(w http.ResponseWriter, r *http.Request) {
	shop := domain.ShopFromContext(r.Context())

	var input struct {
		Name         *string                `json:"name"`
		Subject      *string                `json:"subject"`
		Body         *string                `json:"body"`
		Status       *domain.CampaignStatus `json:"status"`
		ScheduledFor *string                `json:"scheduled_for"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, h.logger, domain.NewValidation("invalid request body"))
		return
	}

	campaign, err := h.service.UpdateEmailCampaign(r.Context(), shop.ID, chi.URLParam(r, "id"), func(c *domain.EmailCampaign) {
		if input.Name != nil {
			c.Name = *input.Name
		}
		if input.Subject != nil {
			c.Subject = *input.Subject
		}
		if input.Body != nil {
			c.Body = *input.Body
		}
		if input.Status != nil {
			c.Status = *input.Status
		}
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, campaign)
}

func (h *MarketingHandlers) listTemplates(w http.ResponseWriter, r *http.Request) {
	shop := domain.ShopFromContext(r.Context())

	templates, err := h.service.ListTemplates(r.Context(), shop.ID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, templates)
}

func (h *MarketingHandlers) createTemplate(w http.ResponseWriter, r *http.Request) {
	shop := domain.ShopFromContext(r.Context())

	var template domain.EmailTemplate
	if err := json.NewDecoder(r.Body).Decode(&template); err != nil {
		writeError(w, h.logger, domain.NewValidation("invalid request body"))
		return
	}

	created, err := h.service.CreateTemplate(r.Context(), shop.ID, &template)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *MarketingHandlers) listSMSCampaigns(w http.ResponseWriter, r *http.Request) {
	shop := domain.ShopFromContext(r.Context())

	campaigns, err := h.service.ListSMSCampaigns(r.Context(), shop.ID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, campaigns)
}

func (h *MarketingHandlers) createSMSCampaign(w http.ResponseWriter, r *http.Request) {
	shop := domain.ShopFromContext(r.Context())

	var campaign domain.SMSCampaign
	if err := json.NewDecoder(r.Body).Decode(&campaign); err != nil {
		writeError(w, h.logger, domain.NewValidation("invalid request body"))
		return
	}

	created, err := h.service.CreateSMSCampaign(r.Context(), shop.ID, &campaign)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *MarketingHandlers) listSocialAccounts(w http.ResponseWriter, r *http.Request) {
	shop := domain.ShopFromContext(r.Context())

	accounts, err := h.service.ListSocialAccounts(r.Context(), shop.ID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

func (h *MarketingHandlers) createSocialAccount(w http.ResponseWriter, r *http.Request) {
	shop := domain.ShopFromContext(r.Context())

	var account domain.SocialAccount
	if err := json.NewDecoder(r.Body).Decode(&account); err != nil {
		writeError(w, h.logger, domain.NewValidation("invalid request body"))
		return
	}

	created, err := h.service.CreateSocialAccount(r.Context(), shop.ID, &account)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *MarketingHandlers) listSocialPosts(w http.ResponseWriter, r *http.Request) {
	shop := domain.ShopFromContext(r.Context())

	posts, err := h.service.ListSocialPosts(r.Context(), shop.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (h *MarketingHandlers) createSocialPost(w http.ResponseWriter, r *http.Request) {
	shop := domain.ShopFromContext(r.Context())

	var post domain.SocialPost
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		writeError(w, h.logger, domain.NewValidation("invalid request body"))
		return
	}

	created, err := h.service.CreateSocialPost(r.Context(), shop.ID, &post)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *MarketingHandlers) listPopups(w http.ResponseWriter, r *http.Request) {
	shop := domain.ShopFromContext(r.Context())

	popups, err := h.service.ListPopups(r.Context(), shop.ID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, popups)
}

func (h *MarketingHandlers) createPopup(w http.ResponseWriter, r *http.Request) {
	shop := domain.ShopFromContext(r.Context())

	var popup domain.Popup
	if err := json.NewDecoder(r.Body).Decode(&popup); err != nil {
		writeError(w, h.logger, domain.NewValidation("invalid request body"))
		return
	}

	created, err := h.service.CreatePopup(r.Context(), shop.ID, &popup)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *MarketingHandlers) updatePopup(w http.ResponseWriter, r *http.Request) {
	shop := domain.ShopFromContext(r.Context())

	var input struct {
		Name    *string                 `json:"name"`
		Title   *string                 `json:"title"`
		Content *string                 `json:"content"`
		Active  *bool                   `json:"active"`
		Design  *map[string]interface{} `json:"design"`
		Trigger *map[string]interface{} `json:"trigger"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, h.logger, domain.NewValidation("invalid request body"))
		return
	}

	popup, err := h.service.UpdatePopup(r.Context(), shop.ID, chi.URLParam(r, "id"), func(p *domain.Popup) {
		if input.Name != nil {
			p.Name = *input.Name
		}
		if input.Title != nil {
			p.Title = *input.Title
		}
		if input.Content != nil {
			p.Content = *input.Content
		}
		if input.Active != nil {
			p.Active = *input.Active
		}
		if input.Design != nil {
			p.Design = *input.Design
		}
		if input.Trigger != nil {
			p.Trigger = *input.Trigger
		}
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, popup)
}

func (h *MarketingHandlers) createLead(w http.ResponseWriter, r *http.Request) {
	var lead domain.Lead
	if err := json.NewDecoder(r.Body).Decode(&lead); err != nil {
		writeError(w, h.logger, domain.NewValidation("invalid request body"))
		return
	}

	created, err := h.service.CreateLead(r.Context(), &lead)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *MarketingHandlers) listLeads(w http.ResponseWriter, r *http.Request) {
	shop := domain.ShopFromContext(r.Context())

	leads, err := h.service.ListLeads(r.Context(), shop.ID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, leads)
}

func (h *MarketingHandlers) getSEOSettings(w http.ResponseWriter, r *http.Request) {
	shop := domain.ShopFromContext(r.Context())

	settings, err := h.service.GetSEOSettings(r.Context(), shop.ID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *MarketingHandlers) updateSEOSettings(w http.ResponseWriter, r *http.Request) {
	shop := domain.ShopFromContext(r.Context())

	var settings domain.SEOSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeError(w, h.logger, domain.NewValidation("invalid request body"))
		return
	}

	updated, err := h.service.UpdateSEOSettings(r.Context(), shop.ID, &settings)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
