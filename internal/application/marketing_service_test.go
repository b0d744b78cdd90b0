package application

import (
	"context"
	"strconv"
	"testing"

	"glowcart-marketing-core/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memCampaignRepo is a stateful CampaignRepository for service tests.
type memCampaignRepo struct {
	fakeCampaignRepo
	emails map[string]*domain.EmailCampaign
	nextID int
}

func newMemCampaignRepo() *memCampaignRepo {
	return &memCampaignRepo{emails: map[string]*domain.EmailCampaign{}}
}

func (r *memCampaignRepo) CreateEmailCampaign(_ context.Context, campaign *domain.EmailCampaign) error {
	r.nextID++
	campaign.ID = "email-" + strconv.Itoa(r.nextID)
	copied := *campaign
	r.emails[campaign.ID] = &copied
	return nil
}

func (r *memCampaignRepo) GetEmailCampaign(_ context.Context, id string) (*domain.EmailCampaign, error) {
	if campaign, ok := r.emails[id]; ok {
		copied := *campaign
		return &copied, nil
	}
	return nil, nil
}

func (r *memCampaignRepo) UpdateEmailCampaign(_ context.Context, campaign *domain.EmailCampaign) error {
	if _, ok := r.emails[campaign.ID]; !ok {
		return domain.NewNotFound("campaign not found")
	}
	copied := *campaign
	r.emails[campaign.ID] = &copied
	return nil
}

// memSocialRepo is a stateful SocialRepository for service tests.
type memSocialRepo struct {
	fakeSocialRepo
	accounts map[string]*domain.SocialAccount
	posts    []*domain.SocialPost
	nextID   int
}

func newMemSocialRepo() *memSocialRepo {
	return &memSocialRepo{accounts: map[string]*domain.SocialAccount{}}
}

func (r *memSocialRepo) CreateAccount(_ context.Context, account *domain.SocialAccount) error {
	r.nextID++
	account.ID = "acct-" + strconv.Itoa(r.nextID)
	copied := *account
	r.accounts[account.ID] = &copied
	return nil
}

func (r *memSocialRepo) GetAccount(_ context.Context, id string) (*domain.SocialAccount, error) {
	if account, ok := r.accounts[id]; ok {
		copied := *account
		return &copied, nil
	}
	return nil, nil
}

func (r *memSocialRepo) CreatePost(_ context.Context, post *domain.SocialPost) error {
	r.nextID++
	post.ID = "post-" + strconv.Itoa(r.nextID)
	copied := *post
	r.posts = append(r.posts, &copied)
	return nil
}

// memPopupRepo is a stateful PopupRepository for service tests.
type memPopupRepo struct {
	fakePopupRepo
	popups map[string]*domain.Popup
	leads  []*domain.Lead
	nextID int
}

func newMemPopupRepo() *memPopupRepo {
	return &memPopupRepo{popups: map[string]*domain.Popup{}}
}

func (r *memPopupRepo) CreatePopup(_ context.Context, popup *domain.Popup) error {
	r.nextID++
	popup.ID = "popup-" + strconv.Itoa(r.nextID)
	copied := *popup
	r.popups[popup.ID] = &copied
	return nil
}

func (r *memPopupRepo) GetPopup(_ context.Context, id string) (*domain.Popup, error) {
	if popup, ok := r.popups[id]; ok {
		copied := *popup
		return &copied, nil
	}
	return nil, nil
}

func (r *memPopupRepo) UpdatePopup(_ context.Context, popup *domain.Popup) error {
	if _, ok := r.popups[popup.ID]; !ok {
		return domain.NewNotFound("popup not found")
	}
	copied := *popup
	r.popups[popup.ID] = &copied
	return nil
}

func (r *memPopupRepo) CreateLead(_ context.Context, lead *domain.Lead) error {
	r.nextID++
	lead.ID = "lead-" + strconv.Itoa(r.nextID)
	copied := *lead
	r.leads = append(r.leads, &copied)
	return nil
}

// memSEORepo is a stateful SEORepository for service tests.
type memSEORepo struct {
	byShop map[string]*domain.SEOSettings
}

func newMemSEORepo() *memSEORepo {
	return &memSEORepo{byShop: map[string]*domain.SEOSettings{}}
}

func (r *memSEORepo) GetByShop(_ context.Context, shopID string) (*domain.SEOSettings, error) {
	if settings, ok := r.byShop[shopID]; ok {
		copied := *settings
		return &copied, nil
	}
	return nil, nil
}

func (r *memSEORepo) Upsert(_ context.Context, settings *domain.SEOSettings) error {
	copied := *settings
	r.byShop[settings.ShopID] = &copied
	return nil
}

func newMarketingService() *MarketingService {
	return NewMarketingService(newMemCampaignRepo(), newMemSocialRepo(), newMemPopupRepo(), newMemSEORepo(), zerolog.Nop())
}

func TestCreateEmailCampaignValidation(t *testing.T) {
	svc := newMarketingService()

	_, err := svc.CreateEmailCampaign(context.Background(), "shop-1", &domain.EmailCampaign{Name: "No subject"})

	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestEmailCampaignScopedToShop(t *testing.T) {
	svc := newMarketingService()

	created, err := svc.CreateEmailCampaign(context.Background(), "shop-1", &domain.EmailCampaign{
		Name:    "Summer Sale",
		Subject: "Hot deals",
		Body:    "<p>20% off</p>",
	})
	require.NoError(t, err)
	assert.Equal(t, "shop-1", created.ShopID)
	assert.Equal(t, domain.CampaignDraft, created.Status)

	// the owner sees it
	got, err := svc.GetEmailCampaign(context.Background(), "shop-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	// another shop does not
	_, err = svc.GetEmailCampaign(context.Background(), "shop-2", created.ID)
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestUpdateEmailCampaignAppliesMutation(t *testing.T) {
	svc := newMarketingService()

	created, err := svc.CreateEmailCampaign(context.Background(), "shop-1", &domain.EmailCampaign{
		Name:    "Summer Sale",
		Subject: "Hot deals",
		Body:    "<p>20% off</p>",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateEmailCampaign(context.Background(), "shop-1", created.ID, func(c *domain.EmailCampaign) {
		c.Status = domain.CampaignScheduled
	})
	require.NoError(t, err)
	assert.Equal(t, domain.CampaignScheduled, updated.Status)
	assert.Equal(t, "Summer Sale", updated.Name)
}

func TestCreateSocialPostChecksAccountOwnership(t *testing.T) {
	svc := newMarketingService()

	account, err := svc.CreateSocialAccount(context.Background(), "shop-1", &domain.SocialAccount{
		Platform:  "instagram",
		AccountID: "ig-123",
	})
	require.NoError(t, err)

	_, err = svc.CreateSocialPost(context.Background(), "shop-2", &domain.SocialPost{
		AccountID: account.ID,
		Content:   "hello",
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	post, err := svc.CreateSocialPost(context.Background(), "shop-1", &domain.SocialPost{
		AccountID: account.ID,
		Content:   "hello",
	})
	require.NoError(t, err)
	assert.Equal(t, "shop-1", post.ShopID)
	assert.Equal(t, domain.SocialPostDraft, post.Status)
}

func TestCreateLeadRequiresShopAndEmail(t *testing.T) {
	svc := newMarketingService()

	_, err := svc.CreateLead(context.Background(), &domain.Lead{Email: "a@example.com"})
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	lead, err := svc.CreateLead(context.Background(), &domain.Lead{
		ShopID: "shop-1",
		Email:  "a@example.com",
		Source: "popup",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, lead.ID)
}

func TestUpdatePopupRejectsForeignShop(t *testing.T) {
	svc := newMarketingService()

	popup, err := svc.CreatePopup(context.Background(), "shop-1", &domain.Popup{
		Name: "Newsletter",
		Type: "newsletter",
	})
	require.NoError(t, err)

	_, err = svc.UpdatePopup(context.Background(), "shop-2", popup.ID, func(p *domain.Popup) {
		p.Active = true
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestSEOSettingsDefaultWhenAbsent(t *testing.T) {
	svc := newMarketingService()

	settings, err := svc.GetSEOSettings(context.Background(), "shop-1")
	require.NoError(t, err)
	assert.Equal(t, "shop-1", settings.ShopID)
	assert.Empty(t, settings.MetaTitle)

	_, err = svc.UpdateSEOSettings(context.Background(), "shop-1", &domain.SEOSettings{MetaTitle: "GlowCart"})
	require.NoError(t, err)

	settings, err = svc.GetSEOSettings(context.Background(), "shop-1")
	require.NoError(t, err)
	assert.Equal(t, "GlowCart", settings.MetaTitle)
}
