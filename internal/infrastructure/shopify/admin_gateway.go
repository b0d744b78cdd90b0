package shopify

import (
	"context"
	"fmt"

	"glowcart-marketing-core/internal/ports"

	goshopify "github.com/bold-commerce/go-shopify/v4"
	"github.com/rs/zerolog"
)

// adminGateway adapts the go-shopify library to the AdminGateway port. A
// fresh library client is created per call from the shop domain and its
// stored access token.
type adminGateway struct {
	app    goshopify.App
	logger zerolog.Logger
}

// NewAdminGateway creates the Admin API adapter.
func NewAdminGateway(apiKey, apiSecret string, logger zerolog.Logger) ports.AdminGateway {
	return &adminGateway{
		app: goshopify.App{
			ApiKey:    apiKey,
			ApiSecret: apiSecret,
		},
		logger: logger,
	}
}

func (g *adminGateway) createClient(shopDomain, accessToken string) (*goshopify.Client, error) {
	client, err := goshopify.NewClient(g.app, shopDomain, accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}

func (g *adminGateway) GetShopInfo(ctx context.Context, shopDomain, accessToken string) (*goshopify.Shop, error) {
	client, err := g.createClient(shopDomain, accessToken)
	if err != nil {
		return nil, err
	}
	shop, err := client.Shop.Get(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get shop: %w", err)
	}
	return shop, nil
}

func (g *adminGateway) ListProducts(ctx context.Context, shopDomain, accessToken string, limit int) ([]goshopify.Product, error) {
	client, err := g.createClient(shopDomain, accessToken)
	if err != nil {
		return nil, err
	}
	products, err := client.Product.List(ctx, listOptions(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (g *adminGateway) ListCustomers(ctx context.Context, shopDomain, accessToken string, limit int) ([]goshopify.Customer, error) {
	client, err := g.createClient(shopDomain, accessToken)
	if err != nil {
		return nil, err
	}
	customers, err := client.Customer.List(ctx, listOptions(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

func (g *adminGateway) ListOrders(ctx context.Context, shopDomain, accessToken string, limit int) ([]goshopify.Order, error) {
	client, err := g.createClient(shopDomain, accessToken)
	if err != nil {
		return nil, err
	}
	orders, err := client.Order.List(ctx, orderListOptions(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (g *adminGateway) RegisterWebhook(ctx context.Context, shopDomain, accessToken, topic, address string) (*goshopify.Webhook, error) {
	client, err := g.createClient(shopDomain, accessToken)
	if err != nil {
		return nil, err
	}
	webhook := goshopify.Webhook{
		Topic:   topic,
		Address: address,
		Format:  "json",
	}
	created, err := client.Webhook.Create(ctx, webhook)
	if err != nil {
		return nil, fmt.Errorf("failed to create webhook: %w", err)
	}

	g.logger.Info().
		Str("shop", shopDomain).
		Str("topic", topic).
		Msg("Webhook registered")
	return created, nil
}

func listOptions(limit int) interface{} {
	if limit <= 0 {
		limit = 10
	}
	return goshopify.ListOptions{Limit: limit}
}

func orderListOptions(limit int) interface{} {
	if limit <= 0 {
		limit = 10
	}
	return goshopify.OrderListOptions{
		ListOptions: goshopify.ListOptions{Limit: limit},
		Status:      "any",
	}
}
