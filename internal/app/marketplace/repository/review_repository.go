package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"marketplace/internal/app/marketplace/entity"
	"marketplace/pkg/logger"
	"marketplace/pkg/metrics"
)

type reviewRepository struct {
	collection *mongo.Collection
}

// NewReviewRepository creates a new review repository.
// Creates an index on product_id for per-product lookups and the cascade delete.
func NewReviewRepository(db *mongo.Database) ReviewRepository {
	collection := db.Collection("reviews")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: "product_id", Value: 1},
		},
		Options: options.Index().SetName("product_id_idx"),
	}

	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		logger.Warn().Err(err).Msg("Failed to create index on product_id")
	}

	return &reviewRepository{
		collection: collection,
	}
}

// Create inserts a new review document. The product and author references
// are stored as given, without checking that they resolve.
func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	timer := metrics.NewDbTimer("marketplace", metrics.DbOpInsert, "reviews")
	defer timer.ObserveDuration()

	result, err := r.collection.InsertOne(ctx, review)
	if err != nil {
		metrics.RecordDbError("marketplace", metrics.DbOpInsert)
		return fmt.Errorf("failed to create review: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		review.ID = oid
	}

	return nil
}

// GetByProductID returns all reviews referencing the product.
func (r *reviewRepository) GetByProductID(ctx context.Context, productID primitive.ObjectID) ([]entity.Review, error) {
	timer := metrics.NewDbTimer("marketplace", metrics.DbOpFind, "reviews")
	defer timer.ObserveDuration()

	filter := bson.M{"product_id": productID}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		metrics.RecordDbError("marketplace", metrics.DbOpFind)
		return nil, fmt.Errorf("failed to find reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []entity.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}

	return reviews, nil
}

// DeleteByProductID removes every review referencing the product and
// returns the number of deleted documents.
func (r *reviewRepository) DeleteByProductID(ctx context.Context, productID primitive.ObjectID) (int64, error) {
	timer := metrics.NewDbTimer("marketplace", metrics.DbOpDelete, "reviews")
	defer timer.ObserveDuration()

	result, err := r.collection.DeleteMany(ctx, bson.M{"product_id": productID})
	if err != nil {
		metrics.RecordDbError("marketplace", metrics.DbOpDelete)
		return 0, fmt.Errorf("failed to delete reviews: %w", err)
	}

	return result.DeletedCount, nil
}
