package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"investment-bot-backend/internal/features/referral/models"
	"investment-bot-backend/internal/features/referral/repository"
)

type referralRepository struct {
	collection *mongo.Collection
}

func NewReferralRepository(db *mongo.Database) repository.ReferralRepository {
	return &referralRepository{collection: db.Collection("referrals")}
}

// EnsureIndexes enforces one-referral-per-user at the storage level.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("referrals").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "referredUserId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "referrerId", Value: 1}, {Key: "isActive", Value: 1}},
		},
	})
	return err
}

func (r *referralRepository) Create(ctx context.Context, referral *models.Referral) error {
	referral.CreatedAt = time.Now()

	res, err := r.collection.InsertOne(ctx, referral)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrAlreadyReferred
		}
		return err
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		referral.ID = oid
	}
	return nil
}

func (r *referralRepository) ListByReferrer(ctx context.Context, referrerID string) ([]*models.Referral, error) {
	cursor, err := r.collection.Find(ctx,
		bson.M{"referrerId": referrerID, "isActive": true},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var referrals []*models.Referral
	if err := cursor.All(ctx, &referrals); err != nil {
		return nil, err
	}
	return referrals, nil
}

func (r *referralRepository) StatsByReferrer(ctx context.Context, referrerID string) (*models.Stats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"referrerId": referrerID, "isActive": true}}},
		{{Key: "$group", Value: bson.M{
			"_id":              "$referrerId",
			"totalReferrals":   bson.M{"$sum": 1},
			"totalBonusEarned": bson.M{"$sum": "$bonusAmount"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []models.Stats
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return &models.Stats{}, nil
	}
	return &results[0], nil
}

func (r *referralRepository) AddBonus(ctx context.Context, referredUserID string, amount float64) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"referredUserId": referredUserID, "isActive": true},
		bson.M{"$inc": bson.M{"bonusAmount": amount}},
	)
	return err
}
