package repository

import (
	"context"
	"fmt"
	"time"

	"glowcart-marketing-core/internal/domain"
	"glowcart-marketing-core/internal/ports"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoWebhookRepository implements WebhookLogRepository using MongoDB
type MongoWebhookRepository struct {
	collection *mongo.Collection
}

// NewMongoWebhookRepository creates a new MongoDB webhook log repository
func NewMongoWebhookRepository(db *mongo.Database) ports.WebhookLogRepository {
	return &MongoWebhookRepository{
		collection: db.Collection("webhook_events"),
	}
}

// LogWebhook records a received webhook event
func (r *MongoWebhookRepository) LogWebhook(ctx context.Context, event *domain.WebhookEvent) error {
	if event.ID == "" {
		event.ID = primitive.NewObjectID().Hex()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	if _, err := r.collection.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("failed to log webhook: %w", err)
	}
	return nil
}
