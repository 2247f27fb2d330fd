package auth

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	userRepo "saudeplus/database/repository/user"
	"saudeplus/models"
)

// AuthTokenTTL is the lifetime of issued access JWTs.
const AuthTokenTTL = 24 * time.Hour

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)

// AuthService defines local account authentication.
type AuthService interface {
	Register(ctx context.Context, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// DefaultAuthService implements AuthService. Cache holds single-use password
// reset tokens.
type DefaultAuthService struct {
	Users userRepo.UserRepository
	Cache *redis.Client
}
