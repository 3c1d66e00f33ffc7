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

type userRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new user repository.
// Creates an index on username for the caller lookup on product delete.
func NewUserRepository(db *mongo.Database) UserRepository {
	collection := db.Collection("users")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: "username", Value: 1},
		},
		Options: options.Index().SetName("username_idx"),
	}

	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		logger.Warn().Err(err).Msg("Failed to create index on username")
	}

	return &userRepository{
		collection: collection,
	}
}

// Create inserts a new user document. Usernames and emails are not
// checked for uniqueness.
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	timer := metrics.NewDbTimer("marketplace", metrics.DbOpInsert, "users")
	defer timer.ObserveDuration()

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		metrics.RecordDbError("marketplace", metrics.DbOpInsert)
		return fmt.Errorf("failed to create user: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}

	return nil
}

// GetByID fetches a user by id.
func (r *userRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	timer := metrics.NewDbTimer("marketplace", metrics.DbOpFind, "users")
	defer timer.ObserveDuration()

	var user entity.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		metrics.RecordDbError("marketplace", metrics.DbOpFind)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// GetByUsername fetches the first user whose username matches.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	timer := metrics.NewDbTimer("marketplace", metrics.DbOpFind, "users")
	defer timer.ObserveDuration()

	var user entity.User
	err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		metrics.RecordDbError("marketplace", metrics.DbOpFind)
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return &user, nil
}
