package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"marketplace/internal/app/marketplace/entity"
	"marketplace/internal/app/marketplace/service"
)

type CatalogServiceInterface interface {
	GetAllProducts(ctx context.Context) ([]entity.ProductWithCategory, error)
	CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error)
	DeleteProduct(ctx context.Context, callerUsername string, productID primitive.ObjectID) error
}

type CatalogHandler struct {
	catalogService CatalogServiceInterface
	validator      *validator.Validate
}

func NewCatalogHandler(catalogService CatalogServiceInterface) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		validator:      validator.New(),
	}
}

// ListProducts returns every product with its category resolved.
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.catalogService.GetAllProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get products"})
		return
	}

	if products == nil {
		products = []entity.ProductWithCategory{}
	}

	c.JSON(http.StatusOK, products)
}

// CreateProduct creates a product together with a brand-new category
// built from the nested payload.
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req entity.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, product)
}

// DeleteProduct deletes a product and all reviews referencing it.
// Only an admin caller, identified by the X-Admin header, may delete.
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	caller, ok := callerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Caller identity required"})
		return
	}

	if err := h.catalogService.DeleteProduct(c.Request.Context(), caller, productID); err != nil {
		if errors.Is(err, service.ErrCallerNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown caller"})
			return
		}
		if errors.Is(err, service.ErrNotPermitted) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User is not permitted to delete"})
			return
		}
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{
		Message: "Product deleted with all its reviews",
	})
}

func formatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			return fieldError.Field() + " is " + fieldError.Tag()
		}
	}
	return "Validation failed"
}
