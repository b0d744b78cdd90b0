package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"glowcart-marketing-core/internal/domain"
	"glowcart-marketing-core/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCampaignRepository implements CampaignRepository using MongoDB
type MongoCampaignRepository struct {
	emailCollection    *mongo.Collection
	templateCollection *mongo.Collection
	smsCollection      *mongo.Collection
}

// NewMongoCampaignRepository creates a new MongoDB campaign repository
func NewMongoCampaignRepository(db *mongo.Database) ports.CampaignRepository {
	return &MongoCampaignRepository{
		emailCollection:    db.Collection("email_campaigns"),
		templateCollection: db.Collection("email_templates"),
		smsCollection:      db.Collection("sms_campaigns"),
	}
}

// CreateEmailCampaign inserts a new email campaign
func (r *MongoCampaignRepository) CreateEmailCampaign(ctx context.Context, campaign *domain.EmailCampaign) error {
	if campaign.ID == "" {
		campaign.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now()
	campaign.CreatedAt = now
	campaign.UpdatedAt = now

	if _, err := r.emailCollection.InsertOne(ctx, campaign); err != nil {
		return fmt.Errorf("failed to create email campaign: %w", err)
	}
	return nil
}

// GetEmailCampaign retrieves an email campaign by ID
func (r *MongoCampaignRepository) GetEmailCampaign(ctx context.Context, id string) (*domain.EmailCampaign, error) {
	var campaign domain.EmailCampaign
	err := r.emailCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&campaign)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get email campaign: %w", err)
	}
	return &campaign, nil
}

// ListEmailCampaigns retrieves all email campaigns for a shop, newest first
func (r *MongoCampaignRepository) ListEmailCampaigns(ctx context.Context, shopID string) ([]*domain.EmailCampaign, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.emailCollection.Find(ctx, bson.M{"shop_id": shopID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list email campaigns: %w", err)
	}
	defer cursor.Close(ctx)

	campaigns := []*domain.EmailCampaign{}
	if err := cursor.All(ctx, &campaigns); err != nil {
		return nil, fmt.Errorf("failed to decode email campaigns: %w", err)
	}
	return campaigns, nil
}

// UpdateEmailCampaign replaces an existing email campaign
func (r *MongoCampaignRepository) UpdateEmailCampaign(ctx context.Context, campaign *domain.EmailCampaign) error {
	campaign.UpdatedAt = time.Now()

	result, err := r.emailCollection.ReplaceOne(ctx, bson.M{"_id": campaign.ID}, campaign)
	if err != nil {
		return fmt.Errorf("failed to update email campaign: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.NewNotFound("campaign not found")
	}
	return nil
}

// CreateTemplate inserts a new email template
func (r *MongoCampaignRepository) CreateTemplate(ctx context.Context, template *domain.EmailTemplate) error {
	if template.ID == "" {
		template.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now()
	template.CreatedAt = now
	template.UpdatedAt = now

	if _, err := r.templateCollection.InsertOne(ctx, template); err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}
	return nil
}

// ListTemplates retrieves all email templates for a shop
func (r *MongoCampaignRepository) ListTemplates(ctx context.Context, shopID string) ([]*domain.EmailTemplate, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.templateCollection.Find(ctx, bson.M{"shop_id": shopID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer cursor.Close(ctx)

	templates := []*domain.EmailTemplate{}
	if err := cursor.All(ctx, &templates); err != nil {
		return nil, fmt.Errorf("failed to decode templates: %w", err)
	}
	return templates, nil
}

// CreateSMSCampaign inserts a new SMS campaign
func (r *MongoCampaignRepository) CreateSMSCampaign(ctx context.Context, campaign *domain.SMSCampaign) error {
	if campaign.ID == "" {
		campaign.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now()
	campaign.CreatedAt = now
	campaign.UpdatedAt = now

	if _, err := r.smsCollection.InsertOne(ctx, campaign); err != nil {
		return fmt.Errorf("failed to create sms campaign: %w", err)
	}
	return nil
}

// ListSMSCampaigns retrieves all SMS campaigns for a shop
func (r *MongoCampaignRepository) ListSMSCampaigns(ctx context.Context, shopID string) ([]*domain.SMSCampaign, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.smsCollection.Find(ctx, bson.M{"shop_id": shopID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list sms campaigns: %w", err)
	}
	defer cursor.Close(ctx)

	campaigns := []*domain.SMSCampaign{}
	if err := cursor.All(ctx, &campaigns); err != nil {
		return nil, fmt.Errorf("failed to decode sms campaigns: %w", err)
	}
	return campaigns, nil
}

// AverageEmailOpenRate averages the open rate over a shop's sent campaigns
func (r *MongoCampaignRepository) AverageEmailOpenRate(ctx context.Context, shopID string) (float64, error) {
	return averageField(ctx, r.emailCollection, shopID, string(domain.CampaignSent), "$open_rate")
}

// AverageSMSClickRate averages the click rate over a shop's sent campaigns
func (r *MongoCampaignRepository) AverageSMSClickRate(ctx context.Context, shopID string) (float64, error) {
	return averageField(ctx, r.smsCollection, shopID, string(domain.CampaignSent), "$click_rate")
}

// RecentCampaigns merges the latest sent email and SMS campaigns into one
// list ordered by send time
func (r *MongoCampaignRepository) RecentCampaigns(ctx context.Context, shopID string, limit int) ([]domain.RecentCampaign, error) {
	if limit <= 0 {
		limit = 5
	}

	recent := []domain.RecentCampaign{}

	opts := options.Find().
		SetSort(bson.M{"sent_at": -1}).
		SetLimit(int64(limit))
	filter := bson.M{"shop_id": shopID, "status": string(domain.CampaignSent)}

	cursor, err := r.emailCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent email campaigns: %w", err)
	}
	var emails []*domain.EmailCampaign
	if err := cursor.All(ctx, &emails); err != nil {
		return nil, fmt.Errorf("failed to decode recent email campaigns: %w", err)
	}
	for _, c := range emails {
		recent = append(recent, domain.RecentCampaign{
			ID:     c.ID,
			Type:   "email",
			Name:   c.Name,
			SentAt: c.SentAt,
			Rate:   c.OpenRate,
		})
	}

	cursor, err = r.smsCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent sms campaigns: %w", err)
	}
	var sms []*domain.SMSCampaign
	if err := cursor.All(ctx, &sms); err != nil {
		return nil, fmt.Errorf("failed to decode recent sms campaigns: %w", err)
	}
	for _, c := range sms {
		recent = append(recent, domain.RecentCampaign{
			ID:     c.ID,
			Type:   "sms",
			Name:   c.Name,
			SentAt: c.SentAt,
			Rate:   c.ClickRate,
		})
	}

	sort.SliceStable(recent, func(i, j int) bool {
		ti, tj := recent[i].SentAt, recent[j].SentAt
		if ti == nil {
			return false
		}
		if tj == nil {
			return true
		}
		return ti.After(*tj)
	})

	if len(recent) > limit {
		recent = recent[:limit]
	}
	return recent, nil
}

// averageField runs a $match + $group average over one numeric field. An
// empty match yields 0, not an error.
func averageField(ctx context.Context, coll *mongo.Collection, shopID, status, field string) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"shop_id": shopID, "status": status}}},
		{{Key: "$group", Value: bson.M{
			"_id": nil,
			"avg": bson.M{"$avg": field},
		}}},
	}

	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate %s: %w", coll.Name(), err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Avg float64 `bson:"avg"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, fmt.Errorf("failed to decode %s aggregate: %w", coll.Name(), err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Avg, nil
}
