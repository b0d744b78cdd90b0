package application

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"glowcart-marketing-core/internal/domain"
	"glowcart-marketing-core/internal/ports"

	"github.com/rs/zerolog"
)

// OAuthService drives the authorization-code flow against the provider:
// initiate issues a nonce and redirect URL, callback validates the nonce,
// exchanges the code and binds the resulting shop to the session.
type OAuthService struct {
	shops    ports.ShopRepository
	sessions ports.SessionStore
	oauth    ports.ShopifyOAuth
	admin    ports.AdminGateway
	logger   zerolog.Logger
}

// NewOAuthService creates the OAuth connector.
func NewOAuthService(
	shops ports.ShopRepository,
	sessions ports.SessionStore,
	oauth ports.ShopifyOAuth,
	admin ports.AdminGateway,
	logger zerolog.Logger,
) *OAuthService {
	return &OAuthService{
		shops:    shops,
		sessions: sessions,
		oauth:    oauth,
		admin:    admin,
		logger:   logger,
	}
}

// Initiate starts a flow for the given shop domain. It stores a fresh nonce
// in the session and returns the provider authorization URL to redirect to.
// Re-running Initiate overwrites any prior in-flight nonce; last write wins.
func (s *OAuthService) Initiate(ctx context.Context, session *domain.Session, shop string) (string, error) {
	if shop == "" {
		return "", domain.NewValidation("shop parameter is required")
	}

	nonce, err := generateNonce()
	if err != nil {
		return "", fmt.Errorf("failed to generate state nonce: %w", err)
	}

	session.BeginOAuth(nonce, shop)
	if err := s.sessions.Save(ctx, session); err != nil {
		return "", fmt.Errorf("failed to save session: %w", err)
	}

	authURL := s.oauth.AuthorizeURL(shop, nonce)

	s.logger.Info().
		Str("shop", shop).
		Msg("OAuth flow initiated")

	return authURL, nil
}

// Callback completes the flow. Both the state and the shop domain must match
// what Initiate stored; either mismatch fails closed before any provider
// call. On success the shop record is created or refreshed, the consumed
// nonce is cleared and the shop is bound to the session.
func (s *OAuthService) Callback(ctx context.Context, session *domain.Session, shop, code, state string) (*domain.Shop, error) {
	if shop == "" || code == "" || state == "" {
		return nil, domain.NewValidation("missing required parameters")
	}

	if session.OAuthNonce == "" || state != session.OAuthNonce || shop != session.OAuthShop {
		s.logger.Warn().
			Str("shop", shop).
			Msg("OAuth state validation failed")
		return nil, domain.NewForbidden("OAuth state validation failed")
	}

	grant, err := s.oauth.ExchangeToken(ctx, shop, code)
	if err != nil {
		s.logger.Error().Err(err).Str("shop", shop).Msg("Failed to exchange token")
		return nil, err
	}

	record, err := s.persistShop(ctx, shop, grant)
	if err != nil {
		return nil, err
	}

	session.ClearOAuth()
	session.ShopID = record.ID
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to bind shop to session: %w", err)
	}

	s.logger.Info().
		Str("shop", shop).
		Str("shopId", record.ID).
		Str("scopes", record.Scopes).
		Msg("OAuth flow completed")

	return record, nil
}

// persistShop updates an existing record's OAuth fields, preserving its
// subscription state, or creates a fresh free/active shop.
func (s *OAuthService) persistShop(ctx context.Context, shop string, grant *domain.TokenGrant) (*domain.Shop, error) {
	now := time.Now()

	existing, err := s.shops.GetByDomain(ctx, shop)
	if err != nil {
		return nil, fmt.Errorf("failed to look up shop: %w", err)
	}

	if existing != nil {
		if err := s.shops.UpdateTokens(ctx, existing.ID, grant.AccessToken, grant.Scope, now); err != nil {
			return nil, fmt.Errorf("failed to update shop tokens: %w", err)
		}
		existing.AccessToken = grant.AccessToken
		existing.Scopes = grant.Scope
		existing.InstalledAt = now
		return existing, nil
	}

	record := &domain.Shop{
		Domain:      shop,
		Name:        s.shopDisplayName(ctx, shop, grant.AccessToken),
		AccessToken: grant.AccessToken,
		Scopes:      grant.Scope,
		InstalledAt: now,
		Tier:        domain.TierFree,
		Status:      domain.StatusActive,
	}
	if err := s.shops.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create shop: %w", err)
	}
	return record, nil
}

// shopDisplayName asks the Admin API for the store's display name. Failure
// is non-fatal; the domain serves as the name until the next sync.
func (s *OAuthService) shopDisplayName(ctx context.Context, shop, accessToken string) string {
	info, err := s.admin.GetShopInfo(ctx, shop, accessToken)
	if err != nil || info == nil || info.Name == "" {
		if err != nil {
			s.logger.Warn().Err(err).Str("shop", shop).Msg("Failed to fetch shop info, using domain as name")
		}
		return shop
	}
	return info.Name
}

// ShopSummary returns the redacted record for the session's bound shop.
func (s *OAuthService) ShopSummary(ctx context.Context, session *domain.Session) (*domain.ShopSummary, error) {
	if !session.ShopBound() {
		return nil, domain.NewUnauthorized("not authenticated with a store")
	}

	shop, err := s.shops.GetByID(ctx, session.ShopID)
	if err != nil {
		return nil, fmt.Errorf("failed to get shop: %w", err)
	}
	if shop == nil {
		return nil, domain.NewNotFound("shop not found")
	}

	summary := shop.Summary()
	return &summary, nil
}

// ConnectionStatus reports whether a shop is bound, with a domain/name
// reference when it is. Never errors on an unbound session.
func (s *OAuthService) ConnectionStatus(ctx context.Context, session *domain.Session) (*domain.ConnectionStatus, error) {
	status := &domain.ConnectionStatus{Connected: session.ShopBound()}
	if !status.Connected {
		return status, nil
	}

	shop, err := s.shops.GetByID(ctx, session.ShopID)
	if err != nil {
		return nil, fmt.Errorf("failed to get shop: %w", err)
	}
	if shop != nil {
		status.Shop = &domain.ShopRef{Domain: shop.Domain, Name: shop.Name}
	}
	return status, nil
}

// generateNonce returns a 128-bit random value, hex encoded.
func generateNonce() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
