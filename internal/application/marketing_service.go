package application

import (
	"context"
	"fmt"
	"time"

	"glowcart-marketing-core/internal/domain"
	"glowcart-marketing-core/internal/ports"

	"github.com/rs/zerolog"
)

// MarketingService owns the shop-scoped marketing resources: email and SMS
// campaigns, templates, social accounts and posts, popups, leads, and SEO
// settings. Every read verifies ownership; a resource belonging to another
// shop is reported as not found.
type MarketingService struct {
	campaigns ports.CampaignRepository
	social    ports.SocialRepository
	popups    ports.PopupRepository
	seo       ports.SEORepository
	logger    zerolog.Logger
}

// NewMarketingService creates the marketing service.
func NewMarketingService(
	campaigns ports.CampaignRepository,
	social ports.SocialRepository,
	popups ports.PopupRepository,
	seo ports.SEORepository,
	logger zerolog.Logger,
) *MarketingService {
	return &MarketingService{
		campaigns: campaigns,
		social:    social,
		popups:    popups,
		seo:       seo,
		logger:    logger,
	}
}

// Email campaigns

func (s *MarketingService) CreateEmailCampaign(ctx context.Context, shopID string, campaign *domain.EmailCampaign) (*domain.EmailCampaign, error) {
	if campaign.Name == "" || campaign.Subject == "" || campaign.Body == "" {
		return nil, domain.NewValidation("name, subject and body are required")
	}

	campaign.ShopID = shopID
	if campaign.Status == "" {
		campaign.Status = domain.CampaignDraft
	}
	campaign.CreatedAt = time.Now()
	campaign.UpdatedAt = campaign.CreatedAt

	if err := s.campaigns.CreateEmailCampaign(ctx, campaign); err != nil {
		return nil, fmt.Errorf("failed to create email campaign: %w", err)
	}
	return campaign, nil
}

func (s *MarketingService) GetEmailCampaign(ctx context.Context, shopID, id string) (*domain.EmailCampaign, error) {
	campaign, err := s.campaigns.GetEmailCampaign(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get email campaign: %w", err)
	}
	if campaign == nil || campaign.ShopID != shopID {
		return nil, domain.NewNotFound("campaign not found")
	}
	return campaign, nil
}

func (s *MarketingService) ListEmailCampaigns(ctx context.Context, shopID string) ([]*domain.EmailCampaign, error) {
	campaigns, err := s.campaigns.ListEmailCampaigns(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to list email campaigns: %w", err)
	}
	return campaigns, nil
}

// UpdateEmailCampaign applies the given mutation to an owned campaign.
func (s *MarketingService) UpdateEmailCampaign(ctx context.Context, shopID, id string, apply func(*domain.EmailCampaign)) (*domain.EmailCampaign, error) {
	campaign, err := s.GetEmailCampaign(ctx, shopID, id)
	if err != nil {
		return nil, err
	}

	apply(campaign)
	campaign.ShopID = shopID
	campaign.UpdatedAt = time.Now()

	if err := s.campaigns.UpdateEmailCampaign(ctx, campaign); err != nil {
		return nil, fmt.Errorf("failed to update email campaign: %w", err)
	}
	return campaign, nil
}

// Email templates

func (s *MarketingService) CreateTemplate(ctx context.Context, shopID string, template *domain.EmailTemplate) (*domain.EmailTemplate, error) {
	if template.Name == "" || template.Body == "" {
		return nil, domain.NewValidation("name and body are required")
	}

	template.ShopID = shopID
	template.CreatedAt = time.Now()
	template.UpdatedAt = template.CreatedAt

	if err := s.campaigns.CreateTemplate(ctx, template); err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}
	return template, nil
}

func (s *MarketingService) ListTemplates(ctx context.Context, shopID string) ([]*domain.EmailTemplate, error) {
	templates, err := s.campaigns.ListTemplates(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return templates, nil
}

// SMS campaigns

func (s *MarketingService) CreateSMSCampaign(ctx context.Context, shopID string, campaign *domain.SMSCampaign) (*domain.SMSCampaign, error) {
	if campaign.Name == "" || campaign.Message == "" {
		return nil, domain.NewValidation("name and message are required")
	}

	campaign.ShopID = shopID
	if campaign.Status == "" {
		campaign.Status = domain.CampaignDraft
	}
	campaign.CreatedAt = time.Now()
	campaign.UpdatedAt = campaign.CreatedAt

	if err := s.campaigns.CreateSMSCampaign(ctx, campaign); err != nil {
		return nil, fmt.Errorf("failed to create sms campaign: %w", err)
	}
	return campaign, nil
}

func (s *MarketingService) ListSMSCampaigns(ctx context.Context, shopID string) ([]*domain.SMSCampaign, error) {
	campaigns, err := s.campaigns.ListSMSCampaigns(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sms campaigns: %w", err)
	}
	return campaigns, nil
}

// Social accounts and posts

func (s *MarketingService) CreateSocialAccount(ctx context.Context, shopID string, account *domain.SocialAccount) (*domain.SocialAccount, error) {
	if account.Platform == "" || account.AccountID == "" {
		return nil, domain.NewValidation("platform and account_id are required")
	}

	account.ShopID = shopID
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt

	if err := s.social.CreateAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create social account: %w", err)
	}
	return account, nil
}

func (s *MarketingService) ListSocialAccounts(ctx context.Context, shopID string) ([]*domain.SocialAccount, error) {
	accounts, err := s.social.ListAccounts(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to list social accounts: %w", err)
	}
	return accounts, nil
}

func (s *MarketingService) ListSocialPosts(ctx context.Context, shopID, accountID string) ([]*domain.SocialPost, error) {
	account, err := s.social.GetAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get social account: %w", err)
	}
	if account == nil || account.ShopID != shopID {
		return nil, domain.NewNotFound("account not found")
	}

	posts, err := s.social.ListPosts(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list social posts: %w", err)
	}
	return posts, nil
}

func (s *MarketingService) CreateSocialPost(ctx context.Context, shopID string, post *domain.SocialPost) (*domain.SocialPost, error) {
	if post.Content == "" || post.AccountID == "" {
		return nil, domain.NewValidation("social_account_id and content are required")
	}

	account, err := s.social.GetAccount(ctx, post.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get social account: %w", err)
	}
	if account == nil || account.ShopID != shopID {
		return nil, domain.NewNotFound("account not found")
	}

	post.ShopID = shopID
	if post.Status == "" {
		post.Status = domain.SocialPostDraft
	}
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt

	if err := s.social.CreatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create social post: %w", err)
	}
	return post, nil
}

// Popups

func (s *MarketingService) CreatePopup(ctx context.Context, shopID string, popup *domain.Popup) (*domain.Popup, error) {
	if popup.Name == "" || popup.Type == "" {
		return nil, domain.NewValidation("name and type are required")
	}

	popup.ShopID = shopID
	popup.CreatedAt = time.Now()
	popup.UpdatedAt = popup.CreatedAt

	if err := s.popups.CreatePopup(ctx, popup); err != nil {
		return nil, fmt.Errorf("failed to create popup: %w", err)
	}
	return popup, nil
}

func (s *MarketingService) ListPopups(ctx context.Context, shopID string) ([]*domain.Popup, error) {
	popups, err := s.popups.ListPopups(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to list popups: %w", err)
	}
	return popups, nil
}

// UpdatePopup applies the given mutation to an owned popup.
func (s *MarketingService) UpdatePopup(ctx context.Context, shopID, id string, apply func(*domain.Popup)) (*domain.Popup, error) {
	popup, err := s.popups.GetPopup(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get popup: %w", err)
	}
	if popup == nil || popup.ShopID != shopID {
		return nil, domain.NewNotFound("popup not found")
	}

	apply(popup)
	popup.ShopID = shopID
	popup.UpdatedAt = time.Now()

	if err := s.popups.UpdatePopup(ctx, popup); err != nil {
		return nil, fmt.Errorf("failed to update popup: %w", err)
	}
	return popup, nil
}

// Leads

// CreateLead records a captured contact. This is the one unauthenticated
// write path; the storefront popup posts directly here.
func (s *MarketingService) CreateLead(ctx context.Context, lead *domain.Lead) (*domain.Lead, error) {
	if lead.ShopID == "" || lead.Email == "" {
		return nil, domain.NewValidation("shop_id and email are required")
	}

	lead.CreatedAt = time.Now()
	if err := s.popups.CreateLead(ctx, lead); err != nil {
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}

	s.logger.Info().
		Str("shopId", lead.ShopID).
		Str("source", lead.Source).
		Msg("Lead captured")
	return lead, nil
}

func (s *MarketingService) ListLeads(ctx context.Context, shopID string) ([]*domain.Lead, error) {
	leads, err := s.popups.ListLeads(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	return leads, nil
}

// SEO settings

func (s *MarketingService) GetSEOSettings(ctx context.Context, shopID string) (*domain.SEOSettings, error) {
	settings, err := s.seo.GetByShop(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to get seo settings: %w", err)
	}
	if settings == nil {
		return &domain.SEOSettings{ShopID: shopID}, nil
	}
	return settings, nil
}

func (s *MarketingService) UpdateSEOSettings(ctx context.Context, shopID string, settings *domain.SEOSettings) (*domain.SEOSettings, error) {
	settings.ShopID = shopID
	settings.UpdatedAt = time.Now()
	if settings.CreatedAt.IsZero() {
		settings.CreatedAt = settings.UpdatedAt
	}

	if err := s.seo.Upsert(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to update seo settings: %w", err)
	}
	return settings, nil
}
