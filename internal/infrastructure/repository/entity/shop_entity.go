package entity

import (
	"time"

	"glowcart-marketing-core/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MongoShopDoc represents a shop in MongoDB.
type MongoShopDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Domain      string             `bson:"domain"`
	Name        string             `bson:"name"`
	AccessToken string             `bson:"access_token"`
	Scopes      string             `bson:"scopes"`
	InstalledAt time.Time          `bson:"installed_at"`
	Tier        string             `bson:"subscription_tier"`
	Status      string             `bson:"subscription_status"`
	BillingID   string             `bson:"billing_id,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

// ToDomain converts the MongoDB document to a domain entity.
func (d *MongoShopDoc) ToDomain() *domain.Shop {
	return &domain.Shop{
		ID:          d.ID.Hex(),
		Domain:      d.Domain,
		Name:        d.Name,
		AccessToken: d.AccessToken,
		Scopes:      d.Scopes,
		InstalledAt: d.InstalledAt,
		Tier:        domain.SubscriptionTier(d.Tier),
		Status:      domain.SubscriptionStatus(d.Status),
		BillingID:   d.BillingID,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// MongoShopDocFromDomain converts a domain entity to a MongoDB document.
func MongoShopDocFromDomain(shop *domain.Shop) *MongoShopDoc {
	doc := &MongoShopDoc{
		Domain:      shop.Domain,
		Name:        shop.Name,
		AccessToken: shop.AccessToken,
		Scopes:      shop.Scopes,
		InstalledAt: shop.InstalledAt,
		Tier:        string(shop.Tier),
		Status:      string(shop.Status),
		BillingID:   shop.BillingID,
		CreatedAt:   shop.CreatedAt,
		UpdatedAt:   shop.UpdatedAt,
	}

	if shop.ID != "" {
		if objID, err := primitive.ObjectIDFromHex(shop.ID); err == nil {
			doc.ID = objID
		}
	}

	return doc
}
