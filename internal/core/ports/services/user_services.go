package services

import (
	"context"

	"github.com/knitworks/garment_mgmt_app/internal/core/domain"
	"github.com/knitworks/garment_mgmt_app/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	ListUsers(ctx context.Context, actor domain.Actor, limit int, offset int) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// CreateUser registers a new user. Only owners may create users.
	CreateUser(ctx context.Context, actor domain.Actor, req dto.CreateUserRequest) (*domain.User, error)
}

// AuthSvc defines authentication operations
type AuthSvc interface {
	// AuthenticateUser verifies credentials and returns the user on success.
	AuthenticateUser(ctx context.Context, username string, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	AuthSvc
}
