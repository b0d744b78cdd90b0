package application

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"glowcart-marketing-core/internal/domain"

	goshopify "github.com/bold-commerce/go-shopify/v4"
)

// fakeShopRepo is an in-memory ShopRepository.
type fakeShopRepo struct {
	shops  map[string]*domain.Shop
	nextID int
}

func newFakeShopRepo() *fakeShopRepo {
	return &fakeShopRepo{shops: map[string]*domain.Shop{}}
}

func (r *fakeShopRepo) GetByID(_ context.Context, id string) (*domain.Shop, error) {
	if shop, ok := r.shops[id]; ok {
		copied := *shop
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeShopRepo) GetByDomain(_ context.Context, shopDomain string) (*domain.Shop, error) {
	for _, shop := range r.shops {
		if shop.Domain == shopDomain {
			copied := *shop
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeShopRepo) Create(_ context.Context, shop *domain.Shop) error {
	r.nextID++
	shop.ID = "shop-" + strconv.Itoa(r.nextID)
	copied := *shop
	r.shops[shop.ID] = &copied
	return nil
}

func (r *fakeShopRepo) UpdateTokens(_ context.Context, id, accessToken, scopes string, installedAt time.Time) error {
	shop, ok := r.shops[id]
	if !ok {
		return domain.NewNotFound("shop not found")
	}
	shop.AccessToken = accessToken
	shop.Scopes = scopes
	shop.InstalledAt = installedAt
	return nil
}

func (r *fakeShopRepo) UpdateSubscription(_ context.Context, id string, tier domain.SubscriptionTier, status domain.SubscriptionStatus, billingID string) error {
	shop, ok := r.shops[id]
	if !ok {
		return domain.NewNotFound("shop not found")
	}
	shop.Tier = tier
	shop.Status = status
	shop.BillingID = billingID
	return nil
}

func (r *fakeShopRepo) UpdateStatus(_ context.Context, id string, status domain.SubscriptionStatus) error {
	shop, ok := r.shops[id]
	if !ok {
		return domain.NewNotFound("shop not found")
	}
	shop.Status = status
	return nil
}

// fakeSessionStore is an in-memory SessionStore.
type fakeSessionStore struct {
	sessions map[string]*domain.Session
	saves    int
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]*domain.Session{}}
}

func (s *fakeSessionStore) Get(_ context.Context, token string) (*domain.Session, error) {
	if session, ok := s.sessions[token]; ok {
		copied := *session
		return &copied, nil
	}
	return nil, nil
}

func (s *fakeSessionStore) Save(_ context.Context, session *domain.Session) error {
	s.saves++
	copied := *session
	s.sessions[session.Token] = &copied
	return nil
}

func (s *fakeSessionStore) Delete(_ context.Context, token string) error {
	delete(s.sessions, token)
	return nil
}

// fakeOAuth records the authorize and exchange calls.
type fakeOAuth struct {
	exchangeCalls int
	exchangeErr   error
	grant         domain.TokenGrant
}

func (o *fakeOAuth) AuthorizeURL(shop, state string) string {
	return fmt.Sprintf("https://%s/admin/oauth/authorize?state=%s", shop, state)
}

func (o *fakeOAuth) ExchangeToken(_ context.Context, shop, code string) (*domain.TokenGrant, error) {
	o.exchangeCalls++
	if o.exchangeErr != nil {
		return nil, o.exchangeErr
	}
	grant := o.grant
	return &grant, nil
}

// fakeBilling records charge calls and returns canned responses.
type fakeBilling struct {
	createCalls int
	createErr   error
	charge      domain.RecurringCharge

	getErr    error
	getCharge domain.RecurringCharge

	cancelCalls int
	cancelErr   error
}

func (b *fakeBilling) CreateRecurringCharge(_ context.Context, shop, accessToken string, req domain.ChargeRequest) (*domain.RecurringCharge, error) {
	b.createCalls++
	if b.createErr != nil {
		return nil, b.createErr
	}
	charge := b.charge
	return &charge, nil
}

func (b *fakeBilling) GetRecurringCharge(_ context.Context, shop, accessToken string, chargeID int64) (*domain.RecurringCharge, error) {
	if b.getErr != nil {
		return nil, b.getErr
	}
	charge := b.getCharge
	charge.ID = chargeID
	return &charge, nil
}

func (b *fakeBilling) CancelRecurringCharge(_ context.Context, shop, accessToken string, chargeID int64) error {
	b.cancelCalls++
	return b.cancelErr
}

// fakeAdmin serves shop info lookups.
type fakeAdmin struct {
	shopName string
	err      error
}

func (a *fakeAdmin) GetShopInfo(_ context.Context, shopDomain, accessToken string) (*goshopify.Shop, error) {
	if a.err != nil {
		return nil, a.err
	}
	return &goshopify.Shop{Name: a.shopName}, nil
}

func (a *fakeAdmin) ListProducts(_ context.Context, shopDomain, accessToken string, limit int) ([]goshopify.Product, error) {
	return nil, nil
}

func (a *fakeAdmin) ListCustomers(_ context.Context, shopDomain, accessToken string, limit int) ([]goshopify.Customer, error) {
	return nil, nil
}

func (a *fakeAdmin) ListOrders(_ context.Context, shopDomain, accessToken string, limit int) ([]goshopify.Order, error) {
	return nil, nil
}

func (a *fakeAdmin) RegisterWebhook(_ context.Context, shopDomain, accessToken, topic, address string) (*goshopify.Webhook, error) {
	return &goshopify.Webhook{Topic: topic, Address: address}, nil
}
