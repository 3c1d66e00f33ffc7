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
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) CreateUser(ctx context.Context, req *entity.CreateUserRequest) (*entity.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func setupUserRouter(mockService *MockUserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	userHandler := NewUserHandler(mockService)
	router.POST("/api/users", userHandler.CreateUser)

	return router
}

func TestCreateUser_Created(t *testing.T) {
	mockService := new(MockUserService)
	router := setupUserRouter(mockService)

	user := &entity.User{ID: primitive.NewObjectID(), Username: "alice", Email: "alice@example.com", IsAdmin: true}
	mockService.On("CreateUser", mock.Anything, mock.AnythingOfType("*entity.CreateUserRequest")).Return(user, nil)

	body, _ := json.Marshal(entity.CreateUserRequest{Username: "alice", Email: "alice@example.com", Role: true})
	req, _ := http.NewRequest(http.MethodPost, "/api/users", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var created entity.User
	json.Unmarshal(w.Body.Bytes(), &created)
	assert.Equal(t, "alice", created.Username)
	assert.True(t, created.IsAdmin)
}

func TestCreateUser_MissingUsername(t *testing.T) {
	mockService := new(MockUserService)
	router := setupUserRouter(mockService)

	body := []byte(`{"email":"alice@example.com","role":false}`)
	req, _ := http.NewRequest(http.MethodPost, "/api/users", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestCreateUser_InvalidBody(t *testing.T) {
	mockService := new(MockUserService)
	router := setupUserRouter(mockService)

	req, _ := http.NewRequest(http.MethodPost, "/api/users", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateUser_ServiceError(t *testing.T) {
	mockService := new(MockUserService)
	router := setupUserRouter(mockService)

	mockService.On("CreateUser", mock.Anything, mock.Anything).Return(nil, errors.New("db error"))

	body, _ := json.Marshal(entity.CreateUserRequest{Username: "alice", Email: "alice@example.com", Role: false})
	req, _ := http.NewRequest(http.MethodPost, "/api/users", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "db error")
}
