package application

import (
	"context"
	"strings"
	"testing"
	"time"

	"glowcart-marketing-core/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOAuthService(shops *fakeShopRepo, sessions *fakeSessionStore, oauth *fakeOAuth, admin *fakeAdmin) *OAuthService {
	return NewOAuthService(shops, sessions, oauth, admin, zerolog.Nop())
}

func testSession() *domain.Session {
	return &domain.Session{
		Token:     "tok-1",
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}
}

func TestInitiateRequiresShop(t *testing.T) {
	svc := newOAuthService(newFakeShopRepo(), newFakeSessionStore(), &fakeOAuth{}, &fakeAdmin{})

	_, err := svc.Initiate(context.Background(), testSession(), "")

	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestInitiateStoresNonceAndReturnsAuthURL(t *testing.T) {
	sessions := newFakeSessionStore()
	svc := newOAuthService(newFakeShopRepo(), sessions, &fakeOAuth{}, &fakeAdmin{})
	session := testSession()

	authURL, err := svc.Initiate(context.Background(), session, "demo.myshopify.com")

	require.NoError(t, err)
	assert.NotEmpty(t, session.OAuthNonce)
	assert.Equal(t, "demo.myshopify.com", session.OAuthShop)
	assert.True(t, strings.HasPrefix(authURL, "https://demo.myshopify.com/admin/oauth/authorize"))
	assert.Contains(t, authURL, session.OAuthNonce)
	assert.Equal(t, 1, sessions.saves)
}

func TestInitiateOverwritesPriorNonce(t *testing.T) {
	svc := newOAuthService(newFakeShopRepo(), newFakeSessionStore(), &fakeOAuth{}, &fakeAdmin{})
	session := testSession()

	_, err := svc.Initiate(context.Background(), session, "first.myshopify.com")
	require.NoError(t, err)
	firstNonce := session.OAuthNonce

	_, err = svc.Initiate(context.Background(), session, "second.myshopify.com")
	require.NoError(t, err)

	assert.NotEqual(t, firstNonce, session.OAuthNonce)
	assert.Equal(t, "second.myshopify.com", session.OAuthShop)
}

func TestCallbackRejectsMissingParameters(t *testing.T) {
	oauth := &fakeOAuth{}
	svc := newOAuthService(newFakeShopRepo(), newFakeSessionStore(), oauth, &fakeAdmin{})
	session := testSession()
	session.BeginOAuth("nonce", "demo.myshopify.com")

	_, err := svc.Callback(context.Background(), session, "demo.myshopify.com", "", "nonce")

	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.Zero(t, oauth.exchangeCalls)
}

func TestCallbackRejectsStateMismatch(t *testing.T) {
	oauth := &fakeOAuth{}
	svc := newOAuthService(newFakeShopRepo(), newFakeSessionStore(), oauth, &fakeAdmin{})
	session := testSession()
	session.BeginOAuth("nonce", "demo.myshopify.com")

	_, err := svc.Callback(context.Background(), session, "demo.myshopify.com", "code", "other-nonce")

	require.Error(t, err)
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
	assert.Zero(t, oauth.exchangeCalls, "token exchange must not run on a failed state check")
}

func TestCallbackRejectsShopMismatch(t *testing.T) {
	oauth := &fakeOAuth{}
	svc := newOAuthService(newFakeShopRepo(), newFakeSessionStore(), oauth, &fakeAdmin{})
	session := testSession()
	session.BeginOAuth("nonce", "demo.myshopify.com")

	_, err := svc.Callback(context.Background(), session, "evil.myshopify.com", "code", "nonce")

	require.Error(t, err)
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
	assert.Zero(t, oauth.exchangeCalls)
}

func TestCallbackRejectsWithoutPriorInitiate(t *testing.T) {
	oauth := &fakeOAuth{}
	svc := newOAuthService(newFakeShopRepo(), newFakeSessionStore(), oauth, &fakeAdmin{})

	_, err := svc.Callback(context.Background(), testSession(), "demo.myshopify.com", "code", "nonce")

	require.Error(t, err)
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
	assert.Zero(t, oauth.exchangeCalls)
}

func TestCallbackCreatesFreshShop(t *testing.T) {
	shops := newFakeShopRepo()
	oauth := &fakeOAuth{grant: domain.TokenGrant{AccessToken: "token-abc", Scope: "read_products"}}
	svc := newOAuthService(shops, newFakeSessionStore(), oauth, &fakeAdmin{shopName: "Demo Store"})
	session := testSession()
	session.BeginOAuth("nonce", "demo.myshopify.com")

	shop, err := svc.Callback(context.Background(), session, "demo.myshopify.com", "code", "nonce")

	require.NoError(t, err)
	assert.Equal(t, "demo.myshopify.com", shop.Domain)
	assert.Equal(t, "Demo Store", shop.Name)
	assert.Equal(t, "token-abc", shop.AccessToken)
	assert.Equal(t, domain.TierFree, shop.Tier)
	assert.Equal(t, domain.StatusActive, shop.Status)
	assert.Empty(t, shop.BillingID)

	assert.Equal(t, shop.ID, session.ShopID)
	assert.Empty(t, session.OAuthNonce, "nonce must be cleared once consumed")
	assert.Empty(t, session.OAuthShop)
}

func TestCallbackShopNameFallsBackToDomain(t *testing.T) {
	oauth := &fakeOAuth{grant: domain.TokenGrant{AccessToken: "token-abc"}}
	admin := &fakeAdmin{err: assert.AnError}
	svc := newOAuthService(newFakeShopRepo(), newFakeSessionStore(), oauth, admin)
	session := testSession()
	session.BeginOAuth("nonce", "demo.myshopify.com")

	shop, err := svc.Callback(context.Background(), session, "demo.myshopify.com", "code", "nonce")

	require.NoError(t, err)
	assert.Equal(t, "demo.myshopify.com", shop.Name)
}

func TestCallbackReauthPreservesSubscription(t *testing.T) {
	shops := newFakeShopRepo()
	existing := &domain.Shop{
		Domain:      "demo.myshopify.com",
		Name:        "Demo Store",
		AccessToken: "old-token",
		Tier:        domain.TierPremium,
		Status:      domain.StatusActive,
		BillingID:   "12345",
	}
	require.NoError(t, shops.Create(context.Background(), existing))

	oauth := &fakeOAuth{grant: domain.TokenGrant{AccessToken: "new-token", Scope: "read_orders"}}
	svc := newOAuthService(shops, newFakeSessionStore(), oauth, &fakeAdmin{})
	session := testSession()
	session.BeginOAuth("nonce", "demo.myshopify.com")

	shop, err := svc.Callback(context.Background(), session, "demo.myshopify.com", "code", "nonce")

	require.NoError(t, err)
	assert.Equal(t, existing.ID, shop.ID)
	assert.Equal(t, "new-token", shop.AccessToken)
	assert.Equal(t, domain.TierPremium, shop.Tier)
	assert.Equal(t, "12345", shop.BillingID)

	stored, err := shops.GetByID(context.Background(), existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-token", stored.AccessToken)
	assert.Equal(t, domain.TierPremium, stored.Tier)
}

func TestCallbackStaleNonceCannotReplay(t *testing.T) {
	shops := newFakeShopRepo()
	oauth := &fakeOAuth{grant: domain.TokenGrant{AccessToken: "token-abc"}}
	svc := newOAuthService(shops, newFakeSessionStore(), oauth, &fakeAdmin{})
	session := testSession()
	session.BeginOAuth("nonce", "demo.myshopify.com")

	_, err := svc.Callback(context.Background(), session, "demo.myshopify.com", "code", "nonce")
	require.NoError(t, err)

	_, err = svc.Callback(context.Background(), session, "demo.myshopify.com", "code", "nonce")
	require.Error(t, err)
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
	assert.Equal(t, 1, oauth.exchangeCalls)
}

func TestShopSummaryUnboundSession(t *testing.T) {
	svc := newOAuthService(newFakeShopRepo(), newFakeSessionStore(), &fakeOAuth{}, &fakeAdmin{})

	_, err := svc.ShopSummary(context.Background(), testSession())

	require.Error(t, err)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))
}

func TestShopSummaryMissingShop(t *testing.T) {
	svc := newOAuthService(newFakeShopRepo(), newFakeSessionStore(), &fakeOAuth{}, &fakeAdmin{})
	session := testSession()
	session.ShopID = "gone"

	_, err := svc.ShopSummary(context.Background(), session)

	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestConnectionStatus(t *testing.T) {
	shops := newFakeShopRepo()
	shop := &domain.Shop{Domain: "demo.myshopify.com", Name: "Demo Store", AccessToken: "tok"}
	require.NoError(t, shops.Create(context.Background(), shop))

	svc := newOAuthService(shops, newFakeSessionStore(), &fakeOAuth{}, &fakeAdmin{})

	status, err := svc.ConnectionStatus(context.Background(), testSession())
	require.NoError(t, err)
	assert.False(t, status.Connected)
	assert.Nil(t, status.Shop)

	session := testSession()
	session.ShopID = shop.ID
	status, err = svc.ConnectionStatus(context.Background(), session)
	require.NoError(t, err)
	assert.True(t, status.Connected)
	require.NotNil(t, status.Shop)
	assert.Equal(t, "demo.myshopify.com", status.Shop.Domain)
}
