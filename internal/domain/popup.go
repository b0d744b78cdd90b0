package domain

import "time"

// Popup is a lead-capture popup configured by a shop.
type Popup struct {
	ID             string                 `json:"id" bson:"_id,omitempty"`
	ShopID         string                 `json:"shop_id" bson:"shop_id"`
	Name           string                 `json:"name" bson:"name"`
	Title          string                 `json:"title" bson:"title"`
	Content        string                 `json:"content" bson:"content"`
	Type           string                 `json:"type" bson:"type"` // newsletter, discount, exit-intent
	Design         map[string]interface{} `json:"design,omitempty" bson:"design,omitempty"`
	Trigger        map[string]interface{} `json:"trigger,omitempty" bson:"trigger,omitempty"`
	Active         bool                   `json:"active" bson:"active"`
	ConversionRate float64                `json:"conversion_rate" bson:"conversion_rate"`
	CreatedAt      time.Time              `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at" bson:"updated_at"`
}

// Lead is a captured contact. Leads are created from the storefront without a
// session, so ShopID comes from the submitted payload.
type Lead struct {
	ID        string                 `json:"id" bson:"_id,omitempty"`
	ShopID    string                 `json:"shop_id" bson:"shop_id"`
	Email     string                 `json:"email" bson:"email"`
	Phone     string                 `json:"phone,omitempty" bson:"phone,omitempty"`
	FirstName string                 `json:"first_name,omitempty" bson:"first_name,omitempty"`
	LastName  string                 `json:"last_name,omitempty" bson:"last_name,omitempty"`
	Source    string                 `json:"source,omitempty" bson:"source,omitempty"`
	SourceID  string                 `json:"source_id,omitempty" bson:"source_id,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty" bson:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at" bson:"created_at"`
}

// LeadSourceBreakdown counts captured leads per acquisition channel.
type LeadSourceBreakdown struct {
	BySource map[string]int64 `json:"by_source"`
	Total    int64            `json:"total"`
}
