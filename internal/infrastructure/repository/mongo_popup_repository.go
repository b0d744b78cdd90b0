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

// MongoPopupRepository implements PopupRepository using MongoDB
type MongoPopupRepository struct {
	popupCollection *mongo.Collection
	leadCollection  *mongo.Collection
}

// NewMongoPopupRepository creates a new MongoDB popup repository
func NewMongoPopupRepository(db *mongo.Database) ports.PopupRepository {
	return &MongoPopupRepository{
		popupCollection: db.Collection("popups"),
		leadCollection:  db.Collection("leads"),
	}
}

// CreatePopup inserts a new popup
func (r *MongoPopupRepository) CreatePopup(ctx context.Context, popup *domain.Popup) error {
	if popup.ID == "" {
		popup.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now()
	popup.CreatedAt = now
	popup.UpdatedAt = now

	if _, err := r.popupCollection.InsertOne(ctx, popup); err != nil {
		return fmt.Errorf("failed to create popup: %w", err)
	}
	return nil
}

// GetPopup retrieves a popup by ID
func (r *MongoPopupRepository) GetPopup(ctx context.Context, id string) (*domain.Popup, error) {
	var popup domain.Popup
	err := r.popupCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&popup)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get popup: %w", err)
	}
	return &popup, nil
}

// ListPopups retrieves all popups for a shop
func (r *MongoPopupRepository) ListPopups(ctx context.Context, shopID string) ([]*domain.Popup, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.popupCollection.Find(ctx, bson.M{"shop_id": shopID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list popups: %w", err)
	}
	defer cursor.Close(ctx)

	popups := []*domain.Popup{}
	if err := cursor.All(ctx, &popups); err != nil {
		return nil, fmt.Errorf("failed to decode popups: %w", err)
	}
	return popups, nil
}

// UpdatePopup replaces an existing popup
func (r *MongoPopupRepository) UpdatePopup(ctx context.Context, popup *domain.Popup) error {
	popup.UpdatedAt = time.Now()

	result, err := r.popupCollection.ReplaceOne(ctx, bson.M{"_id": popup.ID}, popup)
	if err != nil {
		return fmt.Errorf("failed to update popup: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.NewNotFound("popup not found")
	}
	return nil
}

// CreateLead inserts a captured lead
func (r *MongoPopupRepository) CreateLead(ctx context.Context, lead *domain.Lead) error {
	if lead.ID == "" {
		lead.ID = primitive.NewObjectID().Hex()
	}
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = time.Now()
	}

	if _, err := r.leadCollection.InsertOne(ctx, lead); err != nil {
		return fmt.Errorf("failed to create lead: %w", err)
	}
	return nil
}

// ListLeads retrieves all captured leads for a shop, newest first
func (r *MongoPopupRepository) ListLeads(ctx context.Context, shopID string) ([]*domain.Lead, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.leadCollection.Find(ctx, bson.M{"shop_id": shopID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	defer cursor.Close(ctx)

	leads := []*domain.Lead{}
	if err := cursor.All(ctx, &leads); err != nil {
		return nil, fmt.Errorf("failed to decode leads: %w", err)
	}
	return leads, nil
}

// AverageConversionRate averages conversion over a shop's active popups
func (r *MongoPopupRepository) AverageConversionRate(ctx context.Context, shopID string) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"shop_id": shopID}}},
		{{Key: "$group", Value: bson.M{
			"_id": nil,
			"avg": bson.M{"$avg": "$conversion_rate"},
		}}},
	}

	cursor, err := r.popupCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate popups: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Avg float64 `bson:"avg"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, fmt.Errorf("failed to decode popup aggregate: %w", err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Avg, nil
}

// LeadSourceBreakdown counts a shop's leads per acquisition source
func (r *MongoPopupRepository) LeadSourceBreakdown(ctx context.Context, shopID string) (*domain.LeadSourceBreakdown, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"shop_id": shopID}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$source",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.leadCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate leads: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Source string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode lead aggregate: %w", err)
	}

	breakdown := &domain.LeadSourceBreakdown{BySource: map[string]int64{}}
	for _, res := range results {
		source := res.Source
		if source == "" {
			source = "unknown"
		}
		breakdown.BySource[source] = res.Count
		breakdown.Total += res.Count
	}
	return breakdown, nil
}
