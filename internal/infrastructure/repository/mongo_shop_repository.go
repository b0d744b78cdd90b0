package repository

import (
	"context"
	"fmt"
	"time"

	"glowcart-marketing-core/internal/domain"
	"glowcart-marketing-core/internal/infrastructure/repository/entity"
	"glowcart-marketing-core/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoShopRepository implements ShopRepository using MongoDB
type MongoShopRepository struct {
	collection *mongo.Collection
}

// NewMongoShopRepository creates a new MongoDB shop repository
func NewMongoShopRepository(db *mongo.Database) ports.ShopRepository {
	return &MongoShopRepository{
		collection: db.Collection("shops"),
	}
}

// GetByID retrieves a shop by its ID
func (r *MongoShopRepository) GetByID(ctx context.Context, id string) (*domain.Shop, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var doc entity.MongoShopDoc
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shop: %w", err)
	}

	return doc.ToDomain(), nil
}

// GetByDomain retrieves a shop by its myshopify domain
func (r *MongoShopRepository) GetByDomain(ctx context.Context, shopDomain string) (*domain.Shop, error) {
	var doc entity.MongoShopDoc
	err := r.collection.FindOne(ctx, bson.M{"domain": shopDomain}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shop: %w", err)
	}

	return doc.ToDomain(), nil
}

// Create inserts a new shop and fills in its generated ID
func (r *MongoShopRepository) Create(ctx context.Context, shop *domain.Shop) error {
	now := time.Now()
	if shop.CreatedAt.IsZero() {
		shop.CreatedAt = now
	}
	shop.UpdatedAt = now

	doc := entity.MongoShopDocFromDomain(shop)
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create shop: %w", err)
	}

	shop.ID = doc.ID.Hex()
	return nil
}

// UpdateTokens refreshes the OAuth fields after a (re-)authorization. The
// subscription fields are deliberately not touched.
func (r *MongoShopRepository) UpdateTokens(ctx context.Context, id, accessToken, scopes string, installedAt time.Time) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid shop id: %w", err)
	}

	update := bson.M{"$set": bson.M{
		"access_token": accessToken,
		"scopes":       scopes,
		"installed_at": installedAt,
		"updated_at":   time.Now(),
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return fmt.Errorf("failed to update tokens: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.NewNotFound("shop not found")
	}
	return nil
}

// UpdateSubscription writes tier, status and billing reference in one update
func (r *MongoShopRepository) UpdateSubscription(ctx context.Context, id string, tier domain.SubscriptionTier, status domain.SubscriptionStatus, billingID string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid shop id: %w", err)
	}

	update := bson.M{"$set": bson.M{
		"subscription_tier":   string(tier),
		"subscription_status": string(status),
		"billing_id":          billingID,
		"updated_at":          time.Now(),
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.NewNotFound("shop not found")
	}
	return nil
}

// UpdateStatus writes only the subscription status
func (r *MongoShopRepository) UpdateStatus(ctx context.Context, id string, status domain.SubscriptionStatus) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid shop id: %w", err)
	}

	update := bson.M{"$set": bson.M{
		"subscription_status": string(status),
		"updated_at":          time.Now(),
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.NewNotFound("shop not found")
	}
	return nil
}
