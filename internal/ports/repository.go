package ports

import (
	"context"
	"time"

	"glowcart-marketing-core/internal/domain"
)

// ShopRepository persists shop records. Lookups return (nil, nil) when the
// shop does not exist. The update methods are single-document conditional
// writes so concurrent billing and OAuth mutations cannot interleave halves
// of an update.
type ShopRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Shop, error)
	GetByDomain(ctx context.Context, shopDomain string) (*domain.Shop, error)

	// Create inserts a new shop and fills in its ID.
	Create(ctx context.Context, shop *domain.Shop) error

	// UpdateTokens refreshes the OAuth fields on re-authorization, leaving
	// subscription fields untouched.
	UpdateTokens(ctx context.Context, id, accessToken, scopes string, installedAt time.Time) error

	// UpdateSubscription writes tier, status and billing reference in one
	// atomic update.
	UpdateSubscription(ctx context.Context, id string, tier domain.SubscriptionTier, status domain.SubscriptionStatus, billingID string) error

	// UpdateStatus writes only the subscription status.
	UpdateStatus(ctx context.Context, id string, status domain.SubscriptionStatus) error
}

// UserRepository persists dashboard users.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
}

// WebhookLogRepository records received webhook events.
type WebhookLogRepository interface {
	LogWebhook(ctx context.Context, event *domain.WebhookEvent) error
}
