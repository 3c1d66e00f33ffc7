package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"marketplace/internal/app/marketplace/entity"
	"marketplace/internal/app/marketplace/repository"
	"marketplace/internal/app/marketplace/util"
	"marketplace/pkg/logger"
	"marketplace/pkg/metrics"
)

// ReviewService handles review creation and per-product review listing
// with resolved author and product references.
type ReviewService struct {
	reviewRepo    repository.ReviewRepository
	productRepo   repository.ProductRepository
	userRepo      repository.UserRepository
	kafkaProducer util.MessagePublisher
}

// NewReviewService creates a new review service with injected dependencies.
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	kafkaProducer util.MessagePublisher,
) *ReviewService {
	return &ReviewService{
		reviewRepo:    reviewRepo,
		productRepo:   productRepo,
		userRepo:      userRepo,
		kafkaProducer: kafkaProducer,
	}
}

// CreateReview stores the review as given. The product and author
// references are not checked against existing documents, so both may
// dangle.
func (s *ReviewService) CreateReview(ctx context.Context, req *entity.CreateReviewRequest) (*entity.Review, error) {
	productID, err := primitive.ObjectIDFromHex(req.Product)
	if err != nil {
		return nil, fmt.Errorf("invalid product id: %w", err)
	}

	authorID, err := primitive.ObjectIDFromHex(req.Author)
	if err != nil {
		return nil, fmt.Errorf("invalid author id: %w", err)
	}

	review := &entity.Review{
		Comment:   req.Comment,
		Rating:    req.Rating,
		ProductID: productID,
		AuthorID:  authorID,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	metrics.ReviewsCreated.Inc()
	metrics.ReviewsRating.Observe(float64(review.Rating))

	event := entity.ReviewEvent{
		EventType: "REVIEW_CREATED",
		ReviewID:  review.ID.Hex(),
		ProductID: review.ProductID.Hex(),
		AuthorID:  review.AuthorID.Hex(),
		Rating:    review.Rating,
		Timestamp: time.Now(),
	}
	if err := s.publishReviewEvent(ctx, event); err != nil {
		// the review is already stored, Kafka trouble is not critical
		logger.Warn().Err(err).Msg("Failed to publish review created event")
	}

	return review, nil
}

// GetReviewsByProduct returns all reviews referencing the product, with
// the author resolved to its username and the product resolved to its
// name. Dangling references resolve to empty values.
func (s *ReviewService) GetReviewsByProduct(ctx context.Context, productID primitive.ObjectID) ([]entity.ResolvedReview, error) {
	reviews, err := s.reviewRepo.GetByProductID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}

	if len(reviews) == 0 {
		return []entity.ResolvedReview{}, nil
	}

	var productName string
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if !errors.Is(err, repository.ErrProductNotFound) {
			return nil, fmt.Errorf("failed to resolve product: %w", err)
		}
		// dangling product reference, keep the name empty
	} else {
		productName = product.Name
	}

	usernames := make(map[primitive.ObjectID]string)
	resolved := make([]entity.ResolvedReview, 0, len(reviews))
	for _, review := range reviews {
		username, ok := usernames[review.AuthorID]
		if !ok {
			author, err := s.userRepo.GetByID(ctx, review.AuthorID)
			if err != nil {
				if !errors.Is(err, repository.ErrUserNotFound) {
					return nil, fmt.Errorf("failed to resolve author: %w", err)
				}
				// dangling author reference, keep the username empty
			} else {
				username = author.Username
			}
			usernames[review.AuthorID] = username
		}

		resolved = append(resolved, entity.ResolvedReview{
			ID:      review.ID,
			Comment: review.Comment,
			Rating:  review.Rating,
			Product: entity.ResolvedProduct{Name: productName},
			Author:  entity.ResolvedAuthor{Username: username},
		})
	}

	return resolved, nil
}

// publishReviewEvent sends a review event to Kafka.
func (s *ReviewService) publishReviewEvent(ctx context.Context, event entity.ReviewEvent) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal review event: %w", err)
	}

	if err := s.kafkaProducer.PublishMessage(ctx, event.ReviewID, eventData); err != nil {
		return fmt.Errorf("failed to publish to kafka: %w", err)
	}

	return nil
}
