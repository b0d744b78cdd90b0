package application

import (
	"context"
	"testing"
	"time"

	"glowcart-marketing-core/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCampaignRepo struct {
	emailOpenRate float64
	smsClickRate  float64
	recent        []domain.RecentCampaign
}

func (r *fakeCampaignRepo) CreateEmailCampaign(context.Context, *domain.EmailCampaign) error {
	return nil
}

func (r *fakeCampaignRepo) GetEmailCampaign(context.Context, string) (*domain.EmailCampaign, error) {
	return nil, nil
}

func (r *fakeCampaignRepo) ListEmailCampaigns(context.Context, string) ([]*domain.EmailCampaign, error) {
	return nil, nil
}

func (r *fakeCampaignRepo) UpdateEmailCampaign(context.Context, *domain.EmailCampaign) error {
	return nil
}

func (r *fakeCampaignRepo) CreateTemplate(context.Context, *domain.EmailTemplate) error { return nil }

func (r *fakeCampaignRepo) ListTemplates(context.Context, string) ([]*domain.EmailTemplate, error) {
	return nil, nil
}

func (r *fakeCampaignRepo) CreateSMSCampaign(context.Context, *domain.SMSCampaign) error { return nil }

func (r *fakeCampaignRepo) ListSMSCampaigns(context.Context, string) ([]*domain.SMSCampaign, error) {
	return nil, nil
}

func (r *fakeCampaignRepo) AverageEmailOpenRate(context.Context, string) (float64, error) {
	return r.emailOpenRate, nil
}

func (r *fakeCampaignRepo) AverageSMSClickRate(context.Context, string) (float64, error) {
	return r.smsClickRate, nil
}

func (r *fakeCampaignRepo) RecentCampaigns(_ context.Context, _ string, limit int) ([]domain.RecentCampaign, error) {
	if len(r.recent) > limit {
		return r.recent[:limit], nil
	}
	return r.recent, nil
}

type fakeSocialRepo struct {
	engagementRate float64
}

func (r *fakeSocialRepo) CreateAccount(context.Context, *domain.SocialAccount) error { return nil }

func (r *fakeSocialRepo) GetAccount(context.Context, string) (*domain.SocialAccount, error) {
	return nil, nil
}

func (r *fakeSocialRepo) ListAccounts(context.Context, string) ([]*domain.SocialAccount, error) {
	return nil, nil
}

func (r *fakeSocialRepo) CreatePost(context.Context, *domain.SocialPost) error { return nil }

func (r *fakeSocialRepo) ListPosts(context.Context, string) ([]*domain.SocialPost, error) {
	return nil, nil
}

func (r *fakeSocialRepo) AverageEngagementRate(context.Context, string) (float64, error) {
	return r.engagementRate, nil
}

type fakePopupRepo struct {
	conversionRate float64
	breakdown      *domain.LeadSourceBreakdown
}

func (r *fakePopupRepo) CreatePopup(context.Context, *domain.Popup) error { return nil }

func (r *fakePopupRepo) GetPopup(context.Context, string) (*domain.Popup, error) { return nil, nil }

func (r *fakePopupRepo) ListPopups(context.Context, string) ([]*domain.Popup, error) {
	return nil, nil
}

func (r *fakePopupRepo) UpdatePopup(context.Context, *domain.Popup) error { return nil }

func (r *fakePopupRepo) CreateLead(context.Context, *domain.Lead) error { return nil }

func (r *fakePopupRepo) ListLeads(context.Context, string) ([]*domain.Lead, error) { return nil, nil }

func (r *fakePopupRepo) AverageConversionRate(context.Context, string) (float64, error) {
	return r.conversionRate, nil
}

func (r *fakePopupRepo) LeadSourceBreakdown(context.Context, string) (*domain.LeadSourceBreakdown, error) {
	return r.breakdown, nil
}

func TestDashboardOverview(t *testing.T) {
	sentAt := time.Now()
	campaigns := &fakeCampaignRepo{
		emailOpenRate: 42.5,
		smsClickRate:  12.25,
		recent: []domain.RecentCampaign{
			{ID: "c1", Type: "email", Name: "Summer Sale", SentAt: &sentAt, Rate: 44},
			{ID: "c2", Type: "sms", Name: "Flash Sale", SentAt: &sentAt, Rate: 11},
		},
	}
	social := &fakeSocialRepo{engagementRate: 3.75}
	popups := &fakePopupRepo{
		conversionRate: 8.5,
		breakdown: &domain.LeadSourceBreakdown{
			BySource: map[string]int64{"popup": 12, "newsletter": 3},
			Total:    15,
		},
	}

	svc := NewDashboardService(campaigns, social, popups, zerolog.Nop())

	view, err := svc.Overview(context.Background(), "shop-1")

	require.NoError(t, err)
	assert.Equal(t, 42.5, view.Stats.EmailOpenRate)
	assert.Equal(t, 12.25, view.Stats.SMSClickRate)
	assert.Equal(t, 3.75, view.Stats.SocialEngagement)
	assert.Equal(t, 8.5, view.Stats.PopupConversion)
	assert.Len(t, view.RecentCampaigns, 2)
	require.NotNil(t, view.LeadSources)
	assert.Equal(t, int64(15), view.LeadSources.Total)
	assert.Equal(t, int64(12), view.LeadSources.BySource["popup"])
}

func TestDashboardOverviewEmptyShop(t *testing.T) {
	svc := NewDashboardService(
		&fakeCampaignRepo{},
		&fakeSocialRepo{},
		&fakePopupRepo{breakdown: &domain.LeadSourceBreakdown{BySource: map[string]int64{}}},
		zerolog.Nop(),
	)

	view, err := svc.Overview(context.Background(), "shop-1")

	require.NoError(t, err)
	assert.Zero(t, view.Stats.EmailOpenRate)
	assert.Zero(t, view.Stats.PopupConversion)
	assert.Empty(t, view.RecentCampaigns)
	assert.Zero(t, view.LeadSources.Total)
}
