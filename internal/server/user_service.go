package server

import (
	"context"
	"fmt"

	"github.com/jonathan/careerconnect/internal/config"
	"github.com/jonathan/careerconnect/internal/db"
	"github.com/jonathan/careerconnect/internal/types"
)

// AccountStore is the subset of database access the auth flow needs.
type AccountStore interface {
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
}

// UserService provides business logic for account authentication.
type UserService struct {
	store          AccountStore
	passwordConfig *config.PasswordConfig
}

// NewUserService creates a new UserService with the given dependencies.
func NewUserService(store AccountStore, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{
		store:          store,
		passwordConfig: passwordConfig,
	}
}

// Login authenticates an account and returns its public representation.
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.User, error) {
	dbUser, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	// Same generic error whether the account is missing or the password
	// is wrong.
	if dbUser == nil {
		return nil, &ErrInvalidCredentials{}
	}
	if !s.passwordConfig.VerifyPassword(req.Password, dbUser.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}

	return &types.User{
		ID:        dbUser.ID,
		Name:      dbUser.Name,
		Email:     dbUser.Email,
		Role:      dbUser.Role,
		CreatedAt: dbUser.CreatedAt,
	}, nil
}
