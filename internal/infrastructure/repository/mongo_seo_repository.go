package repository

import (
	"context"
	"fmt"
	"time"

	"glowcart-marketing-core/internal/domain"
	"glowcart-marketing-core/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSEORepository implements SEORepository using MongoDB. One settings
// document per shop, keyed by shop_id.
type MongoSEORepository struct {
	collection *mongo.Collection
}

// NewMongoSEORepository creates a new MongoDB SEO repository
func NewMongoSEORepository(db *mongo.Database) ports.SEORepository {
	return &MongoSEORepository{
		collection: db.Collection("seo_settings"),
	}
}

// GetByShop retrieves a shop's SEO settings
func (r *MongoSEORepository) GetByShop(ctx context.Context, shopID string) (*domain.SEOSettings, error) {
	var settings domain.SEOSettings
	err := r.collection.FindOne(ctx, bson.M{"shop_id": shopID}).Decode(&settings)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get seo settings: %w", err)
	}
	return &settings, nil
}

// Upsert saves a shop's SEO settings, creating the document on first write.
// The _id is only set on insert so repeated saves keep the same document.
func (r *MongoSEORepository) Upsert(ctx context.Context, settings *domain.SEOSettings) error {
	now := time.Now()
	settings.UpdatedAt = now

	update := bson.M{
		"$set": bson.M{
			"meta_title":          settings.MetaTitle,
			"meta_description":    settings.MetaDescription,
			"og_title":            settings.OGTitle,
			"og_description":      settings.OGDescription,
			"og_image":            settings.OGImage,
			"twitter_title":       settings.TwitterTitle,
			"twitter_description": settings.TwitterDescription,
			"twitter_image":       settings.TwitterImage,
			"structured_data":     settings.StructuredData,
			"updated_at":          now,
		},
		"$setOnInsert": bson.M{
			"_id":        primitive.NewObjectID().Hex(),
			"shop_id":    settings.ShopID,
			"created_at": now,
		},
	}

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"shop_id": settings.ShopID}

	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save seo settings: %w", err)
	}
	return nil
}
