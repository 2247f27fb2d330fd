package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	userRepo "saudeplus/database/repository/user"
	"saudeplus/models"
	"saudeplus/utils"
)

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a local account and returns the user plus a signed JWT.
func (svc *DefaultAuthService) Register(ctx context.Context, email, password string) (*models.User, string, error) {
	email = NormalizeEmail(email)

	if _, err := svc.Users.GetByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, userRepo.ErrNotFound) {
		return nil, "", fmt.Errorf("checking existing account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := svc.Users.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("creating account: %w", err)
	}

	token, err := utils.GenerateToken(user.ID, user.Email, AuthTokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("signing token: %w", err)
	}
	return user, token, nil
}

// Login verifies the password and returns the user plus a signed JWT.
func (svc *DefaultAuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	email = NormalizeEmail(email)

	user, err := svc.Users.GetByEmail(ctx, email)
	if errors.Is(err, userRepo.ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", fmt.Errorf("fetching account: %w", err)
	}
	if user.PasswordHash == "" {
		return nil, "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID, user.Email, AuthTokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("signing token: %w", err)
	}
	return user, token, nil
}
