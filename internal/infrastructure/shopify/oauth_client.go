package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"glowcart-marketing-core/internal/domain"
	"glowcart-marketing-core/internal/ports"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// apiVersion pins the Admin REST API version for the endpoints the go-shopify
// library does not cover.
const apiVersion = "2023-04"

var providerRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "glowcart_shopify_requests_total",
	Help: "Outbound Shopify API calls by operation and outcome.",
}, []string{"operation", "outcome"})

// Client implements the OAuth and billing ports with direct HTTP calls.
// The go-shopify library's OAuth helpers do not expose redirect_uri, and it
// has no recurring-charge surface we can validate at the boundary, so these
// endpoints are called directly the same way token exchange was.
type Client struct {
	apiKey      string
	apiSecret   string
	scopes      []string
	redirectURI string
	httpClient  *http.Client
	logger      zerolog.Logger

	// baseURL overrides the https://{shop} prefix; used by tests.
	baseURL string
}

var (
	_ ports.ShopifyOAuth   = (*Client)(nil)
	_ ports.ShopifyBilling = (*Client)(nil)
)

// Option configures the client.
type Option func(*Client)

// WithHTTPClient replaces the default bounded-timeout HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL routes every call to a fixed base URL instead of the shop's
// domain. Tests point this at an httptest server.
func WithBaseURL(base string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(base, "/") }
}

// NewClient creates the provider client. redirectURI is the registered OAuth
// callback.
func NewClient(apiKey, apiSecret string, scopes []string, redirectURI string, logger zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		apiKey:      apiKey,
		apiSecret:   apiSecret,
		scopes:      scopes,
		redirectURI: redirectURI,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		logger:      logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AuthorizeURL builds the provider authorization URL. Scopes are
// comma-separated, no spaces, per the provider's convention.
func (c *Client) AuthorizeURL(shop, state string) string {
	return fmt.Sprintf(
		"https://%s/admin/oauth/authorize?client_id=%s&scope=%s&redirect_uri=%s&state=%s",
		shop,
		c.apiKey,
		url.QueryEscape(strings.Join(c.scopes, ",")),
		url.QueryEscape(c.redirectURI),
		url.QueryEscape(state),
	)
}

// ExchangeToken swaps an authorization code for an access token.
func (c *Client) ExchangeToken(ctx context.Context, shop, code string) (*domain.TokenGrant, error) {
	payload := map[string]string{
		"client_id":     c.apiKey,
		"client_secret": c.apiSecret,
		"code":          code,
	}

	var grant domain.TokenGrant
	if err := c.doJSON(ctx, "token_exchange", http.MethodPost, shop, "/admin/oauth/access_token", "", payload, &grant); err != nil {
		return nil, err
	}

	if grant.AccessToken == "" {
		return nil, domain.NewUpstream("token exchange response missing access_token", nil)
	}
	return &grant, nil
}

// chargePayload is the provider's wire envelope for recurring charges.
type chargePayload struct {
	RecurringApplicationCharge chargeBody `json:"recurring_application_charge"`
}

type chargeBody struct {
	ID              int64  `json:"id,omitempty"`
	Name            string `json:"name,omitempty"`
	Price           string `json:"price,omitempty"`
	Status          string `json:"status,omitempty"`
	ReturnURL       string `json:"return_url,omitempty"`
	ConfirmationURL string `json:"confirmation_url,omitempty"`
	TrialDays       int    `json:"trial_days,omitempty"`
	Test            bool   `json:"test,omitempty"`
}

// CreateRecurringCharge creates a recurring application charge.
func (c *Client) CreateRecurringCharge(ctx context.Context, shop, accessToken string, req domain.ChargeRequest) (*domain.RecurringCharge, error) {
	payload := chargePayload{RecurringApplicationCharge: chargeBody{
		Name:      req.Name,
		Price:     strconv.FormatFloat(req.Price, 'f', 2, 64),
		ReturnURL: req.ReturnURL,
		TrialDays: req.TrialDays,
		Test:      req.Test,
	}}

	var resp chargePayload
	path := fmt.Sprintf("/admin/api/%s/recurring_application_charges.json", apiVersion)
	if err := c.doJSON(ctx, "charge_create", http.MethodPost, shop, path, accessToken, payload, &resp); err != nil {
		return nil, err
	}

	charge := resp.RecurringApplicationCharge
	if charge.ID == 0 || charge.ConfirmationURL == "" {
		return nil, domain.NewUpstream("recurring charge response missing id or confirmation_url", nil)
	}
	return chargeToDomain(charge), nil
}

// GetRecurringCharge fetches the current state of a charge.
func (c *Client) GetRecurringCharge(ctx context.Context, shop, accessToken string, chargeID int64) (*domain.RecurringCharge, error) {
	var resp chargePayload
	path := fmt.Sprintf("/admin/api/%s/recurring_application_charges/%d.json", apiVersion, chargeID)
	if err := c.doJSON(ctx, "charge_get", http.MethodGet, shop, path, accessToken, nil, &resp); err != nil {
		return nil, err
	}

	charge := resp.RecurringApplicationCharge
	if charge.ID == 0 || charge.Status == "" {
		return nil, domain.NewUpstream("recurring charge response missing id or status", nil)
	}
	return chargeToDomain(charge), nil
}

// CancelRecurringCharge deletes a charge at the provider.
func (c *Client) CancelRecurringCharge(ctx context.Context, shop, accessToken string, chargeID int64) error {
	path := fmt.Sprintf("/admin/api/%s/recurring_application_charges/%d.json", apiVersion, chargeID)
	return c.doJSON(ctx, "charge_cancel", http.MethodDelete, shop, path, accessToken, nil, nil)
}

func chargeToDomain(c chargeBody) *domain.RecurringCharge {
	return &domain.RecurringCharge{
		ID:              c.ID,
		Name:            c.Name,
		Price:           c.Price,
		Status:          c.Status,
		ConfirmationURL: c.ConfirmationURL,
		TrialDays:       c.TrialDays,
		Test:            c.Test,
	}
}

// doJSON performs one bounded-timeout request. Calls are single-attempt:
// provider calls are not idempotent, so failures surface immediately instead
// of being retried.
func (c *Client) doJSON(ctx context.Context, operation, method, shop, path, accessToken string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(shop, path), reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if accessToken != "" {
		req.Header.Set("X-Shopify-Access-Token", accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		providerRequests.WithLabelValues(operation, "error").Inc()
		return domain.NewUpstream("provider call failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		providerRequests.WithLabelValues(operation, "error").Inc()
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn().
			Str("operation", operation).
			Str("shop", shop).
			Int("status", resp.StatusCode).
			Msg("Provider returned non-success status")
		return domain.NewUpstream(
			fmt.Sprintf("provider returned status %d", resp.StatusCode),
			fmt.Errorf("%s", strings.TrimSpace(string(snippet))),
		)
	}
	providerRequests.WithLabelValues(operation, "ok").Inc()

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.NewUpstream("failed to decode provider response", err)
	}
	return nil
}

func (c *Client) buildURL(shop, path string) string {
	if c.baseURL != "" {
		return c.baseURL + path
	}
	return "https://" + shop + path
}
