package ports

import (
	"context"

	"glowcart-marketing-core/internal/domain"

	goshopify "github.com/bold-commerce/go-shopify/v4"
)

// ShopifyOAuth drives the provider side of the authorization-code flow.
type ShopifyOAuth interface {
	// AuthorizeURL builds the provider authorization URL carrying the client
	// id, requested scopes, callback URL and the nonce as state.
	AuthorizeURL(shop, state string) string

	// ExchangeToken swaps an authorization code for an access token. A
	// rejected or reused code is fatal for the flow, never retried.
	ExchangeToken(ctx context.Context, shop, code string) (*domain.TokenGrant, error)
}

// ShopifyBilling manages recurring application charges. Every call is a
// single attempt authenticated with the shop's stored access token.
type ShopifyBilling interface {
	CreateRecurringCharge(ctx context.Context, shop, accessToken string, req domain.ChargeRequest) (*domain.RecurringCharge, error)
	GetRecurringCharge(ctx context.Context, shop, accessToken string, chargeID int64) (*domain.RecurringCharge, error)
	CancelRecurringCharge(ctx context.Context, shop, accessToken string, chargeID int64) error
}

// AdminGateway is the thin pass-through to the provider Admin API.
type AdminGateway interface {
	GetShopInfo(ctx context.Context, shop, accessToken string) (*goshopify.Shop, error)
	ListProducts(ctx context.Context, shop, accessToken string, limit int) ([]goshopify.Product, error)
	ListCustomers(ctx context.Context, shop, accessToken string, limit int) ([]goshopify.Customer, error)
	ListOrders(ctx context.Context, shop, accessToken string, limit int) ([]goshopify.Order, error)
	RegisterWebhook(ctx context.Context, shop, accessToken, topic, address string) (*goshopify.Webhook, error)
}
