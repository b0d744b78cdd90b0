package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config is built once at process start and injected into constructors.
// Nothing else in the codebase reads the environment.
type Config struct {
	APIKey    string
	APISecret string
	Scopes    []string
	AppURL    string

	Environment string
	Port        string

	MongoURI      string
	MongoDatabase string

	RedisAddr     string
	RedisPassword string

	SessionTTL time.Duration
}

// DefaultScopes are requested when SHOPIFY_SCOPES is not set. Comma-separated
// per the provider's convention.
const DefaultScopes = "read_products,write_products,read_customers,write_customers,read_orders,write_orders,read_content,write_content"

// Load reads configuration from the environment. API credentials are
// required; everything else has a development default.
func Load() (*Config, error) {
	cfg := &Config{
		APIKey:        os.Getenv("SHOPIFY_API_KEY"),
		APISecret:     os.Getenv("SHOPIFY_API_SECRET"),
		AppURL:        envOr("APP_URL", "http://localhost:8080"),
		Environment:   envOr("ENVIRONMENT", "development"),
		Port:          envOr("PORT", "8080"),
		MongoURI:      envOr("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase: envOr("MONGODB_DATABASE", "glowcart"),
		RedisAddr:     envOr("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		SessionTTL:    24 * time.Hour,
	}

	if cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, fmt.Errorf("SHOPIFY_API_KEY and SHOPIFY_API_SECRET are required")
	}

	scopes := envOr("SHOPIFY_SCOPES", DefaultScopes)
	cfg.Scopes = strings.Split(scopes, ",")

	if ttl := os.Getenv("SESSION_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
		}
		cfg.SessionTTL = d
	}

	return cfg, nil
}

// Production reports whether charges should hit the provider for real.
func (c *Config) Production() bool {
	return c.Environment == "production"
}

// CallbackURL is the OAuth redirect target registered with the provider.
func (c *Config) CallbackURL() string {
	return c.AppURL + "/callback"
}

// BillingReturnURL is where the provider sends merchants after charge
// approval; it lands on the billing confirmation endpoint.
func (c *Config) BillingReturnURL() string {
	return c.AppURL + "/billing/callback"
}

// SubscriptionPageURL is the user-facing subscription settings page the
// billing confirmation redirects to.
func (c *Config) SubscriptionPageURL() string {
	return c.AppURL + "/app/settings/subscription"
}

// DashboardURL is the authenticated landing route after a successful OAuth
// callback.
func (c *Config) DashboardURL() string {
	return c.AppURL + "/app/dashboard"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
