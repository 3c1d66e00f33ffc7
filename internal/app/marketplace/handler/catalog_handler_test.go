package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"marketplace/internal/app/marketplace/entity"
	"marketplace/internal/app/marketplace/service"
)

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) GetAllProducts(ctx context.Context) ([]entity.ProductWithCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ProductWithCategory), args.Error(1)
}

func (m *MockCatalogService) CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockCatalogService) DeleteProduct(ctx context.Context, callerUsername string, productID primitive.ObjectID) error {
	args := m.Called(ctx, callerUsername, productID)
	return args.Error(0)
}

func setupCatalogRouter(mockService *MockCatalogService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	catalogHandler := NewCatalogHandler(mockService)
	router.GET("/api/products", catalogHandler.ListProducts)
	router.POST("/api/products", catalogHandler.CreateProduct)
	router.DELETE("/api/products/:id", CallerIdentity(), catalogHandler.DeleteProduct)

	return router
}

func TestListProducts_Success(t *testing.T) {
	mockService := new(MockCatalogService)
	router := setupCatalogRouter(mockService)

	products := []entity.ProductWithCategory{
		{
			Product:  entity.Product{ID: primitive.NewObjectID(), Name: "Pen", Price: 2, Stock: 10},
			Category: entity.Category{ID: primitive.NewObjectID(), Name: "Office"},
		},
	}
	mockService.On("GetAllProducts", mock.Anything).Return(products, nil)

	req, _ := http.NewRequest(http.MethodGet, "/api/products", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []entity.ProductWithCategory
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response, 1)
	assert.Equal(t, "Pen", response[0].Name)
	assert.Equal(t, "Office", response[0].Category.Name)
}

func TestListProducts_EmptyIsArray(t *testing.T) {
	mockService := new(MockCatalogService)
	router := setupCatalogRouter(mockService)

	mockService.On("GetAllProducts", mock.Anything).Return([]entity.ProductWithCategory{}, nil)

	req, _ := http.NewRequest(http.MethodGet, "/api/products", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestListProducts_ServiceError(t *testing.T) {
	mockService := new(MockCatalogService)
	router := setupCatalogRouter(mockService)

	mockService.On("GetAllProducts", mock.Anything).Return(nil, errors.New("db error"))

	req, _ := http.NewRequest(http.MethodGet, "/api/products", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "db error")
}

func TestCreateProduct_Created(t *testing.T) {
	mockService := new(MockCatalogService)
	router := setupCatalogRouter(mockService)

	categoryID := primitive.NewObjectID()
	product := &entity.Product{ID: primitive.NewObjectID(), Name: "Pen", Price: 2, Stock: 10, CategoryID: categoryID}
	mockService.On("CreateProduct", mock.Anything, mock.AnythingOfType("*entity.CreateProductRequest")).Return(product, nil)

	body, _ := json.Marshal(entity.CreateProductRequest{
		Name:     "Pen",
		Price:    2,
		Stock:    10,
		Category: entity.CreateCategoryRequest{Name: "Office"},
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/products", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var created entity.Product
	json.Unmarshal(w.Body.Bytes(), &created)
	assert.Equal(t, categoryID, created.CategoryID)
}

func TestCreateProduct_NegativePrice(t *testing.T) {
	mockService := new(MockCatalogService)
	router := setupCatalogRouter(mockService)

	body := []byte(`{"name":"Pen","price":-1,"stock":10,"category":{"name":"Office"}}`)
	req, _ := http.NewRequest(http.MethodPost, "/api/products", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
}

func TestCreateProduct_ZeroPriceAllowed(t *testing.T) {
	mockService := new(MockCatalogService)
	router := setupCatalogRouter(mockService)

	product := &entity.Product{ID: primitive.NewObjectID(), Name: "Flyer", Price: 0, Stock: 100}
	mockService.On("CreateProduct", mock.Anything, mock.Anything).Return(product, nil)

	body := []byte(`{"name":"Flyer","price":0,"stock":100,"category":{"name":"Office"}}`)
	req, _ := http.NewRequest(http.MethodPost, "/api/products", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateProduct_InvalidBody(t *testing.T) {
	mockService := new(MockCatalogService)
	router := setupCatalogRouter(mockService)

	req, _ := http.NewRequest(http.MethodPost, "/api/products", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateProduct_ServiceError(t *testing.T) {
	mockService := new(MockCatalogService)
	router := setupCatalogRouter(mockService)

	mockService.On("CreateProduct", mock.Anything, mock.Anything).Return(nil, errors.New("db error"))

	body := []byte(`{"name":"Pen","price":2,"stock":10,"category":{"name":"Office"}}`)
	req, _ := http.NewRequest(http.MethodPost, "/api/products", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "db error")
}

func TestDeleteProduct_Success(t *testing.T) {
	mockService := new(MockCatalogService)
	router := setupCatalogRouter(mockService)
	productID := primitive.NewObjectID()

	mockService.On("DeleteProduct", mock.Anything, "alice", productID).Return(nil)

	req, _ := http.NewRequest(http.MethodDelete, "/api/products/"+productID.Hex(), nil)
	req.Header.Set(CallerHeader, "alice")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "deleted")
}

func TestDeleteProduct_MissingCallerHeader(t *testing.T) {
	mockService := new(MockCatalogService)
	router := setupCatalogRouter(mockService)

	req, _ := http.NewRequest(http.MethodDelete, "/api/products/"+primitive.NewObjectID().Hex(), nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockService.AssertNotCalled(t, "DeleteProduct", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteProduct_UnknownCaller(t *testing.T) {
	mockService := new(MockCatalogService)
	router := setupCatalogRouter(mockService)
	productID := primitive.NewObjectID()

	mockService.On("DeleteProduct", mock.Anything, "ghost", productID).Return(service.ErrCallerNotFound)

	req, _ := http.NewRequest(http.MethodDelete, "/api/products/"+productID.Hex(), nil)
	req.Header.Set(CallerHeader, "ghost")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDeleteProduct_NotPermitted(t *testing.T) {
	mockService := new(MockCatalogService)
	router := setupCatalogRouter(mockService)
	productID := primitive.NewObjectID()

	mockService.On("DeleteProduct", mock.Anything, "bob", productID).Return(service.ErrNotPermitted)

	req, _ := http.NewRequest(http.MethodDelete, "/api/products/"+productID.Hex(), nil)
	req.Header.Set(CallerHeader, "bob")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteProduct_NotFound(t *testing.T) {
	mockService := new(MockCatalogService)
	router := setupCatalogRouter(mockService)
	productID := primitive.NewObjectID()

	mockService.On("DeleteProduct", mock.Anything, "alice", productID).Return(service.ErrProductNotFound)

	req, _ := http.NewRequest(http.MethodDelete, "/api/products/"+productID.Hex(), nil)
	req.Header.Set(CallerHeader, "alice")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteProduct_InvalidID(t *testing.T) {
	mockService := new(MockCatalogService)
	router := setupCatalogRouter(mockService)

	req, _ := http.NewRequest(http.MethodDelete, "/api/products/not-an-id", nil)
	req.Header.Set(CallerHeader, "alice")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "DeleteProduct", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteProduct_ServiceError(t *testing.T) {
	mockService := new(MockCatalogService)
	router := setupCatalogRouter(mockService)
	productID := primitive.NewObjectID()

	mockService.On("DeleteProduct", mock.Anything, "alice", productID).Return(errors.New("db error"))

	req, _ := http.NewRequest(http.MethodDelete, "/api/products/"+productID.Hex(), nil)
	req.Header.Set(CallerHeader, "alice")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "db error")
}
