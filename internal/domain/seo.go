package domain

import "time"

// SEOSettings holds a shop's storefront metadata. One document per shop.
type SEOSettings struct {
	ID                 string                 `json:"id" bson:"_id,omitempty"`
	ShopID             string                 `json:"shop_id" bson:"shop_id"`
	MetaTitle          string                 `json:"meta_title" bson:"meta_title"`
	MetaDescription    string                 `json:"meta_description" bson:"meta_description"`
	OGTitle            string                 `json:"og_title" bson:"og_title"`
	OGDescription      string                 `json:"og_description" bson:"og_description"`
	OGImage            string                 `json:"og_image" bson:"og_image"`
	TwitterTitle       string                 `json:"twitter_title" bson:"twitter_title"`
	TwitterDescription string                 `json:"twitter_description" bson:"twitter_description"`
	TwitterImage       string                 `json:"twitter_image" bson:"twitter_image"`
	StructuredData     map[string]interface{} `json:"structured_data,omitempty" bson:"structured_data,omitempty"`
	CreatedAt          time.Time              `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time              `json:"updated_at" bson:"updated_at"`
}
