package userRepo

import (
	"context"

	"saudeplus/models"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByGoogleSub(ctx context.Context, sub string) (*models.User, error)
	UpdateProfile(ctx context.Context, id, name, phone string) error
	UpdatePasswordHash(ctx context.Context, id, passwordHash string) error
	SetGoogleSub(ctx context.Context, id, sub string) error

	// UpdateGoogleTokens persists a refreshed access token and its expiry in a
	// single atomic update. A non-empty refreshToken replaces the stored one;
	// an empty refreshToken leaves it untouched.
	UpdateGoogleTokens(ctx context.Context, id, accessToken, refreshToken string, expiry int64) error
}
