package domain

import "time"

// SocialAccount is a linked social platform account.
type SocialAccount struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	ShopID       string    `json:"shop_id" bson:"shop_id"`
	Platform     string    `json:"platform" bson:"platform"`
	AccountID    string    `json:"account_id" bson:"account_id"`
	AccountName  string    `json:"account_name" bson:"account_name"`
	AccessToken  string    `json:"-" bson:"access_token"`
	RefreshToken string    `json:"-" bson:"refresh_token"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// SocialPostStatus tracks a post through its publish lifecycle.
type SocialPostStatus string

const (
	SocialPostDraft     SocialPostStatus = "draft"
	SocialPostScheduled SocialPostStatus = "scheduled"
	SocialPostPosted    SocialPostStatus = "posted"
	SocialPostFailed    SocialPostStatus = "failed"
)

// SocialPost is a post belonging to a linked account.
type SocialPost struct {
	ID             string           `json:"id" bson:"_id,omitempty"`
	AccountID      string           `json:"social_account_id" bson:"social_account_id"`
	ShopID         string           `json:"shop_id" bson:"shop_id"`
	Content        string           `json:"content" bson:"content"`
	MediaURLs      []string         `json:"media_urls,omitempty" bson:"media_urls,omitempty"`
	Status         SocialPostStatus `json:"status" bson:"status"`
	ScheduledFor   *time.Time       `json:"scheduled_for,omitempty" bson:"scheduled_for,omitempty"`
	PostedAt       *time.Time       `json:"posted_at,omitempty" bson:"posted_at,omitempty"`
	PlatformPostID string           `json:"platform_post_id,omitempty" bson:"platform_post_id,omitempty"`
	EngagementRate float64          `json:"engagement_rate" bson:"engagement_rate"`
	CreatedAt      time.Time        `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at" bson:"updated_at"`
}
