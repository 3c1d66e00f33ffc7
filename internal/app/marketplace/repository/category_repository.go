package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"marketplace/internal/app/marketplace/entity"
	"marketplace/pkg/metrics"
)

type categoryRepository struct {
	collection *mongo.Collection
}

// NewCategoryRepository creates a new category repository.
func NewCategoryRepository(db *mongo.Database) CategoryRepository {
	return &categoryRepository{
		collection: db.Collection("categories"),
	}
}

// Create inserts a new category document. No uniqueness check on name:
// identically named categories are allowed to coexist.
func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	timer := metrics.NewDbTimer("marketplace", metrics.DbOpInsert, "categories")
	defer timer.ObserveDuration()

	result, err := r.collection.InsertOne(ctx, category)
	if err != nil {
		metrics.RecordDbError("marketplace", metrics.DbOpInsert)
		return fmt.Errorf("failed to create category: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		category.ID = oid
	}

	return nil
}

// GetByID fetches a category by id.
func (r *categoryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Category, error) {
	timer := metrics.NewDbTimer("marketplace", metrics.DbOpFind, "categories")
	defer timer.ObserveDuration()

	var category entity.Category
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCategoryNotFound
		}
		metrics.RecordDbError("marketplace", metrics.DbOpFind)
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return &category, nil
}
