package service

import (
	"context"
	"fmt"

	"marketplace/internal/app/marketplace/entity"
	"marketplace/internal/app/marketplace/repository"
	"marketplace/pkg/metrics"
)

// UserService handles user creation. There is no update or delete;
// users only exist to author reviews and to gate product deletion.
type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// CreateUser stores the user as given. Usernames and emails are not
// checked for uniqueness.
func (s *UserService) CreateUser(ctx context.Context, req *entity.CreateUserRequest) (*entity.User, error) {
	user := &entity.User{
		Username: req.Username,
		Email:    req.Email,
		IsAdmin:  req.Role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	metrics.UsersCreated.Inc()

	return user, nil
}
