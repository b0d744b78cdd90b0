package ports

import (
	"context"

	"glowcart-marketing-core/internal/domain"
)

// CampaignRepository persists email and SMS campaigns plus email templates,
// and answers the dashboard's aggregate queries over them.
type CampaignRepository interface {
	CreateEmailCampaign(ctx context.Context, campaign *domain.EmailCampaign) error
	GetEmailCampaign(ctx context.Context, id string) (*domain.EmailCampaign, error)
	ListEmailCampaigns(ctx context.Context, shopID string) ([]*domain.EmailCampaign, error)
	UpdateEmailCampaign(ctx context.Context, campaign *domain.EmailCampaign) error

	CreateTemplate(ctx context.Context, template *domain.EmailTemplate) error
	ListTemplates(ctx context.Context, shopID string) ([]*domain.EmailTemplate, error)

	CreateSMSCampaign(ctx context.Context, campaign *domain.SMSCampaign) error
	ListSMSCampaigns(ctx context.Context, shopID string) ([]*domain.SMSCampaign, error)

	AverageEmailOpenRate(ctx context.Context, shopID string) (float64, error)
	AverageSMSClickRate(ctx context.Context, shopID string) (float64, error)
	RecentCampaigns(ctx context.Context, shopID string, limit int) ([]domain.RecentCampaign, error)
}

// SocialRepository persists linked social accounts and their posts.
type SocialRepository interface {
	CreateAccount(ctx context.Context, account *domain.SocialAccount) error
	GetAccount(ctx context.Context, id string) (*domain.SocialAccount, error)
	ListAccounts(ctx context.Context, shopID string) ([]*domain.SocialAccount, error)

	CreatePost(ctx context.Context, post *domain.SocialPost) error
	ListPosts(ctx context.Context, accountID string) ([]*domain.SocialPost, error)

	AverageEngagementRate(ctx context.Context, shopID string) (float64, error)
}

// PopupRepository persists popups and the leads they capture.
type PopupRepository interface {
	CreatePopup(ctx context.Context, popup *domain.Popup) error
	GetPopup(ctx context.Context, id string) (*domain.Popup, error)
	ListPopups(ctx context.Context, shopID string) ([]*domain.Popup, error)
	UpdatePopup(ctx context.Context, popup *domain.Popup) error

	CreateLead(ctx context.Context, lead *domain.Lead) error
	ListLeads(ctx context.Context, shopID string) ([]*domain.Lead, error)

	AverageConversionRate(ctx context.Context, shopID string) (float64, error)
	LeadSourceBreakdown(ctx context.Context, shopID string) (*domain.LeadSourceBreakdown, error)
}

// SEORepository persists the single SEO settings document per shop.
type SEORepository interface {
	GetByShop(ctx context.Context, shopID string) (*domain.SEOSettings, error)
	Upsert(ctx context.Context, settings *domain.SEOSettings) error
}
