package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"glowcart-marketing-core/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memSessionStore struct {
	sessions map[string]*domain.Session
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: map[string]*domain.Session{}}
}

func (s *memSessionStore) Get(_ context.Context, token string) (*domain.Session, error) {
	if session, ok := s.sessions[token]; ok {
		copied := *session
		return &copied, nil
	}
	return nil, nil
}

func (s *memSessionStore) Save(_ context.Context, session *domain.Session) error {
	copied := *session
	s.sessions[session.Token] = &copied
	return nil
}

func (s *memSessionStore) Delete(_ context.Context, token string) error {
	delete(s.sessions, token)
	return nil
}

type memShopRepo struct {
	shops map[string]*domain.Shop
}

func (r *memShopRepo) GetByID(_ context.Context, id string) (*domain.Shop, error) {
	if shop, ok := r.shops[id]; ok {
		copied := *shop
		return &copied, nil
	}
	return nil, nil
}

func (r *memShopRepo) GetByDomain(context.Context, string) (*domain.Shop, error) { return nil, nil }
func (r *memShopRepo) Create(context.Context, *domain.Shop) error               { return nil }
func (r *memShopRepo) UpdateTokens(context.Context, string, string, string, time.Time) error {
	return nil
}
func (r *memShopRepo) UpdateSubscription(context.Context, string, domain.SubscriptionTier, domain.SubscriptionStatus, string) error {
	return nil
}
func (r *memShopRepo) UpdateStatus(context.Context, string, domain.SubscriptionStatus) error {
	return nil
}

func sessionEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := domain.SessionFromContext(r.Context())
		if session == nil {
			http.Error(w, "no session", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(session.Token))
	})
}

func TestSessionMiddlewareCreatesSession(t *testing.T) {
	store := newMemSessionStore()
	handler := SessionMiddleware(store, time.Hour, false, zerolog.Nop())(sessionEcho())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	token := rec.Body.String()
	assert.NotEmpty(t, token)
	assert.Contains(t, store.sessions, token)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookieName, cookies[0].Name)
	assert.Equal(t, token, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestSessionMiddlewareLoadsExistingSession(t *testing.T) {
	store := newMemSessionStore()
	existing := &domain.Session{Token: "tok-1", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, store.Save(context.Background(), existing))

	handler := SessionMiddleware(store, time.Hour, false, zerolog.Nop())(sessionEcho())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "tok-1"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "tok-1", rec.Body.String())
	assert.Empty(t, rec.Result().Cookies(), "no new cookie when the session already exists")
}

func TestSessionMiddlewareReplacesStaleCookie(t *testing.T) {
	store := newMemSessionStore()
	handler := SessionMiddleware(store, time.Hour, false, zerolog.Nop())(sessionEcho())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "expired-token"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEqual(t, "expired-token", rec.Body.String())
	require.Len(t, rec.Result().Cookies(), 1)
}

func TestRequireShopRejectsUnboundSession(t *testing.T) {
	repo := &memShopRepo{shops: map[string]*domain.Shop{}}
	guard := RequireShop(repo, zerolog.Nop())

	handler := guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(domain.WithSession(req.Context(), &domain.Session{Token: "tok-1"}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireShopRejectsDisconnectedShop(t *testing.T) {
	repo := &memShopRepo{shops: map[string]*domain.Shop{
		"shop-1": {ID: "shop-1", Domain: "demo.myshopify.com"}, // no token
	}}
	guard := RequireShop(repo, zerolog.Nop())

	handler := guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(domain.WithSession(req.Context(), &domain.Session{Token: "tok-1", ShopID: "shop-1"}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireShopResolvesShopOntoContext(t *testing.T) {
	repo := &memShopRepo{shops: map[string]*domain.Shop{
		"shop-1": {ID: "shop-1", Domain: "demo.myshopify.com", AccessToken: "token-abc"},
	}}
	guard := RequireShop(repo, zerolog.Nop())

	handler := guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		shop := domain.ShopFromContext(r.Context())
		require.NotNil(t, shop)
		w.Write([]byte(shop.Domain))
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(domain.WithSession(req.Context(), &domain.Session{Token: "tok-1", ShopID: "shop-1"}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "demo.myshopify.com", rec.Body.String())
}
