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

// MongoSocialRepository implements SocialRepository using MongoDB
type MongoSocialRepository struct {
	accountCollection *mongo.Collection
	postCollection    *mongo.Collection
}

// NewMongoSocialRepository creates a new MongoDB social repository
func NewMongoSocialRepository(db *mongo.Database) ports.SocialRepository {
	return &MongoSocialRepository{
		accountCollection: db.Collection("social_accounts"),
		postCollection:    db.Collection("social_posts"),
	}
}

// CreateAccount inserts a new linked social account
func (r *MongoSocialRepository) CreateAccount(ctx context.Context, account *domain.SocialAccount) error {
	if account.ID == "" {
		account.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now()
	account.CreatedAt = now
	account.UpdatedAt = now

	if _, err := r.accountCollection.InsertOne(ctx, account); err != nil {
		return fmt.Errorf("failed to create social account: %w", err)
	}
	return nil
}

// GetAccount retrieves a social account by ID
func (r *MongoSocialRepository) GetAccount(ctx context.Context, id string) (*domain.SocialAccount, error) {
	var account domain.SocialAccount
	err := r.accountCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&account)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get social account: %w", err)
	}
	return &account, nil
}

// ListAccounts retrieves all linked accounts for a shop
func (r *MongoSocialRepository) ListAccounts(ctx context.Context, shopID string) ([]*domain.SocialAccount, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.accountCollection.Find(ctx, bson.M{"shop_id": shopID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list social accounts: %w", err)
	}
	defer cursor.Close(ctx)

	accounts := []*domain.SocialAccount{}
	if err := cursor.All(ctx, &accounts); err != nil {
		return nil, fmt.Errorf("failed to decode social accounts: %w", err)
	}
	return accounts, nil
}

// CreatePost inserts a new social post
func (r *MongoSocialRepository) CreatePost(ctx context.Context, post *domain.SocialPost) error {
	if post.ID == "" {
		post.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	if _, err := r.postCollection.InsertOne(ctx, post); err != nil {
		return fmt.Errorf("failed to create social post: %w", err)
	}
	return nil
}

// ListPosts retrieves all posts for a linked account
func (r *MongoSocialRepository) ListPosts(ctx context.Context, accountID string) ([]*domain.SocialPost, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.postCollection.Find(ctx, bson.M{"social_account_id": accountID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list social posts: %w", err)
	}
	defer cursor.Close(ctx)

	posts := []*domain.SocialPost{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode social posts: %w", err)
	}
	return posts, nil
}

// AverageEngagementRate averages engagement over a shop's published posts
func (r *MongoSocialRepository) AverageEngagementRate(ctx context.Context, shopID string) (float64, error) {
	return averageField(ctx, r.postCollection, shopID, string(domain.SocialPostPosted), "$engagement_rate")
}
