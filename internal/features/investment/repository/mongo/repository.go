package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"investment-bot-backend/internal/features/investment/models"
	"investment-bot-backend/internal/features/investment/repository"
)

type investmentRepository struct {
	collection *mongo.Collection
}

func NewInvestmentRepository(db *mongo.Database) repository.InvestmentRepository {
	return &investmentRepository{collection: db.Collection("investments")}
}

func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("investments").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})
	return err
}

func (r *investmentRepository) Create(ctx context.Context, investment *models.Investment) error {
	investment.CreatedAt = time.Now()

	res, err := r.collection.InsertOne(ctx, investment)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		investment.ID = oid
	}
	return nil
}

func (r *investmentRepository) ListByUser(ctx context.Context, userID string) ([]*models.Investment, error) {
	cursor, err := r.collection.Find(ctx,
		bson.M{"userId": userID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var investments []*models.Investment
	if err := cursor.All(ctx, &investments); err != nil {
		return nil, err
	}
	return investments, nil
}

func (r *investmentRepository) CountActiveByUser(ctx context.Context, userID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"userId": userID, "status": "active"})
}
