package domain

import "time"

// SubscriptionTier is the plan level gating feature access elsewhere in the app.
type SubscriptionTier string

const (
	TierFree    SubscriptionTier = "free"
	TierBasic   SubscriptionTier = "basic"
	TierPremium SubscriptionTier = "premium"
)

// SubscriptionStatus mirrors the provider's recurring charge status vocabulary.
type SubscriptionStatus string

const (
	StatusActive   SubscriptionStatus = "active"
	StatusPending  SubscriptionStatus = "pending"
	StatusCanceled SubscriptionStatus = "canceled"
	StatusPastDue  SubscriptionStatus = "past_due"
)

// Shop represents a connected merchant store, the tenant unit of the system.
// AccessToken is empty until the OAuth flow completes. A shop with status
// active or pending always carries a token; a free shop's BillingID is
// irrelevant.
type Shop struct {
	ID          string             `json:"id" bson:"_id,omitempty"`
	Domain      string             `json:"domain" bson:"domain"`
	Name        string             `json:"name" bson:"name"`
	AccessToken string             `json:"-" bson:"access_token"`
	Scopes      string             `json:"scopes" bson:"scopes"`
	InstalledAt time.Time          `json:"installed_at" bson:"installed_at"`
	Tier        SubscriptionTier   `json:"subscription_tier" bson:"subscription_tier"`
	Status      SubscriptionStatus `json:"subscription_status" bson:"subscription_status"`
	BillingID   string             `json:"billing_id,omitempty" bson:"billing_id,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// Connected reports whether the shop holds an access token.
func (s *Shop) Connected() bool {
	return s.AccessToken != ""
}

// ShopSummary is the redacted view returned to browsers. It never includes
// the access token.
type ShopSummary struct {
	ID          string             `json:"id"`
	Domain      string             `json:"domain"`
	Name        string             `json:"name"`
	InstalledAt time.Time          `json:"installed_at"`
	Tier        SubscriptionTier   `json:"subscription_tier"`
	Status      SubscriptionStatus `json:"subscription_status"`
}

// Summary returns the redacted view of the shop.
func (s *Shop) Summary() ShopSummary {
	return ShopSummary{
		ID:          s.ID,
		Domain:      s.Domain,
		Name:        s.Name,
		InstalledAt: s.InstalledAt,
		Tier:        s.Tier,
		Status:      s.Status,
	}
}

// ConnectionStatus is the payload for the public connection check.
type ConnectionStatus struct {
	Connected bool     `json:"connected"`
	Shop      *ShopRef `json:"shop"`
}

// ShopRef identifies a shop by domain and display name only.
type ShopRef struct {
	Domain string `json:"domain"`
	Name   string `json:"name"`
}
