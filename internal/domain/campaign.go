package domain

import "time"

// CampaignStatus is shared by email and SMS campaigns.
type CampaignStatus string

const (
	CampaignDraft     CampaignStatus = "draft"
	CampaignScheduled CampaignStatus = "scheduled"
	CampaignSent      CampaignStatus = "sent"
	CampaignCanceled  CampaignStatus = "canceled"
)

// EmailCampaign is an outbound email campaign owned by a shop.
type EmailCampaign struct {
	ID           string         `json:"id" bson:"_id,omitempty"`
	ShopID       string         `json:"shop_id" bson:"shop_id"`
	Name         string         `json:"name" bson:"name"`
	Subject      string         `json:"subject" bson:"subject"`
	Body         string         `json:"body" bson:"body"`
	Status       CampaignStatus `json:"status" bson:"status"`
	TemplateID   string         `json:"template_id,omitempty" bson:"template_id,omitempty"`
	ScheduledFor *time.Time     `json:"scheduled_for,omitempty" bson:"scheduled_for,omitempty"`
	SentAt       *time.Time     `json:"sent_at,omitempty" bson:"sent_at,omitempty"`
	OpenRate     float64        `json:"open_rate" bson:"open_rate"`
	ClickRate    float64        `json:"click_rate" bson:"click_rate"`
	CreatedAt    time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" bson:"updated_at"`
}

// EmailTemplate is a reusable email body.
type EmailTemplate struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	ShopID    string    `json:"shop_id" bson:"shop_id"`
	Name      string    `json:"name" bson:"name"`
	Subject   string    `json:"subject" bson:"subject"`
	Body      string    `json:"body" bson:"body"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// SMSCampaign is an outbound SMS campaign owned by a shop.
type SMSCampaign struct {
	ID           string         `json:"id" bson:"_id,omitempty"`
	ShopID       string         `json:"shop_id" bson:"shop_id"`
	Name         string         `json:"name" bson:"name"`
	Message      string         `json:"message" bson:"message"`
	Status       CampaignStatus `json:"status" bson:"status"`
	ScheduledFor *time.Time     `json:"scheduled_for,omitempty" bson:"scheduled_for,omitempty"`
	SentAt       *time.Time     `json:"sent_at,omitempty" bson:"sent_at,omitempty"`
	ClickRate    float64        `json:"click_rate" bson:"click_rate"`
	CreatedAt    time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" bson:"updated_at"`
}

// RecentCampaign is the channel-merged view used by the dashboard.
type RecentCampaign struct {
	ID     string     `json:"id"`
	Type   string     `json:"type"` // email, sms, social
	Name   string     `json:"name"`
	SentAt *time.Time `json:"sent_at,omitempty"`
	Rate   float64    `json:"rate"`
}
