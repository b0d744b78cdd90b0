package application

import (
	"context"
	"fmt"

	"glowcart-marketing-core/internal/domain"
	"glowcart-marketing-core/internal/ports"

	"github.com/rs/zerolog"
)

// DashboardStats are the channel averages shown on the overview page.
type DashboardStats struct {
	EmailOpenRate    float64 `json:"email_open_rate"`
	SMSClickRate     float64 `json:"sms_click_rate"`
	SocialEngagement float64 `json:"social_engagement"`
	PopupConversion  float64 `json:"popup_conversion"`
}

// DashboardView is the aggregate payload for GET /api/dashboard.
type DashboardView struct {
	Stats           DashboardStats              `json:"stats"`
	RecentCampaigns []domain.RecentCampaign     `json:"recent_campaigns"`
	LeadSources     *domain.LeadSourceBreakdown `json:"lead_sources"`
}

// DashboardService aggregates marketing performance across channels.
type DashboardService struct {
	campaigns ports.CampaignRepository
	social    ports.SocialRepository
	popups    ports.PopupRepository
	logger    zerolog.Logger
}

// NewDashboardService creates the dashboard aggregator.
func NewDashboardService(
	campaigns ports.CampaignRepository,
	social ports.SocialRepository,
	popups ports.PopupRepository,
	logger zerolog.Logger,
) *DashboardService {
	return &DashboardService{
		campaigns: campaigns,
		social:    social,
		popups:    popups,
		logger:    logger,
	}
}

// Overview builds the dashboard payload for a shop.
func (s *DashboardService) Overview(ctx context.Context, shopID string) (*DashboardView, error) {
	emailOpen, err := s.campaigns.AverageEmailOpenRate(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate email stats: %w", err)
	}

	smsClick, err := s.campaigns.AverageSMSClickRate(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sms stats: %w", err)
	}

	engagement, err := s.social.AverageEngagementRate(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate social stats: %w", err)
	}

	conversion, err := s.popups.AverageConversionRate(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate popup stats: %w", err)
	}

	recent, err := s.campaigns.RecentCampaigns(ctx, shopID, 5)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent campaigns: %w", err)
	}

	leadSources, err := s.popups.LeadSourceBreakdown(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate lead sources: %w", err)
	}

	return &DashboardView{
		Stats: DashboardStats{
			EmailOpenRate:    emailOpen,
			SMSClickRate:     smsClick,
			SocialEngagement: engagement,
			PopupConversion:  conversion,
		},
		RecentCampaigns: recent,
		LeadSources:     leadSources,
	}, nil
}
