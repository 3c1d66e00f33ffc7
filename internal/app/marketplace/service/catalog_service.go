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

var (
	// Business errors handled in handlers
	ErrProductNotFound = errors.New("product not found")
	ErrCallerNotFound  = errors.New("caller not found")
	ErrNotPermitted    = errors.New("caller is not permitted to delete products")
)

const productsCacheTTL = time.Hour

// CatalogService handles the product catalog: listing with resolved
// categories, product creation with its implicit category, and the
// role-gated cascading delete.
type CatalogService struct {
	categoryRepo  repository.CategoryRepository
	productRepo   repository.ProductRepository
	reviewRepo    repository.ReviewRepository
	userRepo      repository.UserRepository
	cache         util.ProductCache
	kafkaProducer util.MessagePublisher
}

// NewCatalogService creates a new catalog service with injected dependencies.
func NewCatalogService(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	reviewRepo repository.ReviewRepository,
	userRepo repository.UserRepository,
	cache util.ProductCache,
	kafkaProducer util.MessagePublisher,
) *CatalogService {
	return &CatalogService{
		categoryRepo:  categoryRepo,
		productRepo:   productRepo,
		reviewRepo:    reviewRepo,
		userRepo:      userRepo,
		cache:         cache,
		kafkaProducer: kafkaProducer,
	}
}

// GetAllProducts returns every product with its category resolved.
// Checks the Redis cache first; on a miss loads from MongoDB and caches
// the result for subsequent requests.
func (s *CatalogService) GetAllProducts(ctx context.Context) ([]entity.ProductWithCategory, error) {
	products, err := s.cache.GetProducts(ctx)
	if err == nil && len(products) > 0 {
		return products, nil
	}

	products, err = s.productRepo.GetAllWithCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	if err := s.cache.SetProducts(ctx, products, productsCacheTTL); err != nil {
		// the listing came from the database, cache trouble is not critical
		logger.Warn().Err(err).Msg("Failed to cache product listing")
	}

	return products, nil
}

// CreateProduct creates a brand-new category from the nested payload and
// then the product referencing it. The category is always created, even
// when an identically named one already exists; deduplication by name is
// deliberately not performed.
func (s *CatalogService) CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error) {
	category := &entity.Category{
		Name: req.Category.Name,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	product := &entity.Product{
		Name:       req.Name,
		Price:      req.Price,
		Stock:      req.Stock,
		CategoryID: category.ID,
	}

	// the category write is not transactional with the product write:
	// if this fails the category above remains
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	metrics.ProductsCreated.Inc()

	if err := s.cache.DeleteProducts(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate product cache")
	}

	event := entity.ProductEvent{
		EventType:  "PRODUCT_CREATED",
		ProductID:  product.ID.Hex(),
		Name:       product.Name,
		Price:      product.Price,
		CategoryID: product.CategoryID.Hex(),
		Timestamp:  time.Now(),
	}
	if err := s.publishProductEvent(ctx, event); err != nil {
		// the product is already stored, Kafka trouble is not critical
		logger.Warn().Err(err).Msg("Failed to publish product created event")
	}

	return product, nil
}

// DeleteProduct deletes a product together with all reviews referencing
// it. Only an admin caller may delete; the caller is identified by
// username.
//
// The review delete and the product delete are two independent
// operations: if the second fails the already-deleted reviews are not
// restored.
func (s *CatalogService) DeleteProduct(ctx context.Context, callerUsername string, productID primitive.ObjectID) error {
	caller, err := s.userRepo.GetByUsername(ctx, callerUsername)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrCallerNotFound
		}
		return fmt.Errorf("failed to look up caller: %w", err)
	}

	if !caller.IsAdmin {
		return ErrNotPermitted
	}

	deleted, err := s.reviewRepo.DeleteByProductID(ctx, productID)
	if err != nil {
		return fmt.Errorf("failed to delete reviews: %w", err)
	}

	if err := s.productRepo.Delete(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}

	metrics.ProductsDeleted.Inc()
	logger.Info().
		Str("product_id", productID.Hex()).
		Str("caller", callerUsername).
		Int64("reviews_deleted", deleted).
		Msg("Product deleted with its reviews")

	if err := s.cache.DeleteProducts(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate product cache")
	}

	event := entity.ProductEvent{
		EventType: "PRODUCT_DELETED",
		ProductID: productID.Hex(),
		Timestamp: time.Now(),
	}
	if err := s.publishProductEvent(ctx, event); err != nil {
		logger.Warn().Err(err).Msg("Failed to publish product deleted event")
	}

	return nil
}

// publishProductEvent sends a product event to Kafka.
// Key is the product id so events for one product keep their order.
func (s *CatalogService) publishProductEvent(ctx context.Context, event entity.ProductEvent) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal product event: %w", err)
	}

	if err := s.kafkaProducer.PublishMessage(ctx, event.ProductID, eventData); err != nil {
		return fmt.Errorf("failed to publish to kafka: %w", err)
	}

	return nil
}
