package domain

import "time"

// WebhookEvent is a received provider webhook, logged after signature
// verification.
type WebhookEvent struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Topic     string    `json:"topic" bson:"topic"`
	Shop      string    `json:"shop" bson:"shop"`
	Payload   []byte    `json:"payload" bson:"payload"`
	Verified  bool      `json:"verified" bson:"verified"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
