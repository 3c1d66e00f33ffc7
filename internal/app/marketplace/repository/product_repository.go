package repository

import (
	"context"
	"errors"
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

type productRepository struct {
	collection *mongo.Collection
}

// NewProductRepository creates a new product repository.
// Creates an index on category_id for the listing join.
func NewProductRepository(db *mongo.Database) ProductRepository {
	collection := db.Collection("products")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: "category_id", Value: 1},
		},
		Options: options.Index().SetName("category_id_idx"),
	}

	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		// the index may already exist, keep going
		logger.Warn().Err(err).Msg("Failed to create index on category_id")
	}

	return &productRepository{
		collection: collection,
	}
}

// Create inserts a new product document.
func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	timer := metrics.NewDbTimer("marketplace", metrics.DbOpInsert, "products")
	defer timer.ObserveDuration()

	result, err := r.collection.InsertOne(ctx, product)
	if err != nil {
		metrics.RecordDbError("marketplace", metrics.DbOpInsert)
		return fmt.Errorf("failed to create product: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		product.ID = oid
	}

	return nil
}

// GetByID fetches a product by id.
func (r *productRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Product, error) {
	timer := metrics.NewDbTimer("marketplace", metrics.DbOpFind, "products")
	defer timer.ObserveDuration()

	var product entity.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		metrics.RecordDbError("marketplace", metrics.DbOpFind)
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &product, nil
}

// GetAllWithCategories returns every product with its category reference
// resolved to the full category document, joined server-side via $lookup.
func (r *productRepository) GetAllWithCategories(ctx context.Context) ([]entity.ProductWithCategory, error) {
	timer := metrics.NewDbTimer("marketplace", metrics.DbOpFind, "products")
	defer timer.ObserveDuration()

	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         "categories",
			"localField":   "category_id",
			"foreignField": "_id",
			"as":           "category",
		}}},
		// a product whose reference dangles keeps an empty category
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$category",
			"preserveNullAndEmptyArrays": true,
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		metrics.RecordDbError("marketplace", metrics.DbOpFind)
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []entity.ProductWithCategory
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	return products, nil
}

// Delete removes a product by id.
func (r *productRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	timer := metrics.NewDbTimer("marketplace", metrics.DbOpDelete, "products")
	defer timer.ObserveDuration()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		metrics.RecordDbError("marketplace", metrics.DbOpDelete)
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrProductNotFound
	}

	return nil
}
