package application

import (
	"context"
	"fmt"

	"glowcart-marketing-core/internal/domain"
	"glowcart-marketing-core/internal/ports"

	"github.com/rs/zerolog"
)

// UninstallService reacts to app/uninstalled webhooks. The provider revokes
// the token on uninstall, so the stored copy is wiped and the subscription
// reset; the shop record itself is kept for reinstalls.
type UninstallService struct {
	shops  ports.ShopRepository
	logger zerolog.Logger
}

// NewUninstallService creates the uninstall processor.
func NewUninstallService(shops ports.ShopRepository, logger zerolog.Logger) *UninstallService {
	return &UninstallService{shops: shops, logger: logger}
}

// Handle disconnects the named shop. An unknown domain is a no-op; the
// webhook may outlive the record.
func (s *UninstallService) Handle(ctx context.Context, shopDomain string) error {
	shop, err := s.shops.GetByDomain(ctx, shopDomain)
	if err != nil {
		return fmt.Errorf("failed to look up shop: %w", err)
	}
	if shop == nil {
		s.logger.Warn().Str("shop", shopDomain).Msg("Uninstall webhook for unknown shop")
		return nil
	}

	if err := s.shops.UpdateTokens(ctx, shop.ID, "", "", shop.InstalledAt); err != nil {
		return fmt.Errorf("failed to clear tokens: %w", err)
	}
	if err := s.shops.UpdateSubscription(ctx, shop.ID, domain.TierFree, domain.StatusCanceled, ""); err != nil {
		return fmt.Errorf("failed to reset subscription: %w", err)
	}

	s.logger.Info().Str("shop", shopDomain).Msg("Shop uninstalled, connection cleared")
	return nil
}
