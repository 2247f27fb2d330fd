package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"saudeplus/config"
	userRepo "saudeplus/database/repository/user"
	"saudeplus/utils"
)

const (
	resetTokenPrefix = "pwdReset:"
	resetTokenTTL    = 24 * time.Hour
)

// ForgotPassword issues a single-use reset token and emails a reset link.
// The response is identical whether or not the account exists, and mail
// delivery problems are logged without failing the request.
func (svc *DefaultAuthService) ForgotPassword(ctx context.Context, email string) error {
	email = NormalizeEmail(email)
	logger := utils.GetLogger()

	user, err := svc.Users.GetByEmail(ctx, email)
	if errors.Is(err, userRepo.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("fetching account: %w", err)
	}

	token := uuid.New().String()
	if err := svc.Cache.Set(ctx, resetTokenPrefix+token, user.Email, resetTokenTTL).Err(); err != nil {
		return fmt.Errorf("storing reset token: %w", err)
	}

	resetLink := fmt.Sprintf("%s/reset-password/%s", config.AppConfig.FrontURL, token)
	html := fmt.Sprintf(`
		<h2>Recuperação de senha - Saúde Plus</h2>
		<p>Você solicitou a redefinição de senha.</p>
		<p>Clique no link abaixo para criar uma nova senha (válido por 24 horas):</p>
		<p><a href="%s" target="_blank">%s</a></p>
		<p>Se você não solicitou, ignore este e-mail.</p>`, resetLink, resetLink)

	if err := utils.SendMail(user.Email, "Recuperação de Senha - Saúde Plus", html); err != nil {
		logger.Warn("failed to send password reset email",
			zap.String("email", user.Email), zap.Error(err))
	}
	return nil
}

// ResetPassword consumes a reset token and replaces the account password.
func (svc *DefaultAuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	key := resetTokenPrefix + token
	email, err := svc.Cache.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return ErrInvalidResetToken
	}
	if err != nil {
		return fmt.Errorf("looking up reset token: %w", err)
	}

	user, err := svc.Users.GetByEmail(ctx, email)
	if errors.Is(err, userRepo.ErrNotFound) {
		return ErrInvalidResetToken
	}
	if err != nil {
		return fmt.Errorf("fetching account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	if err := svc.Users.UpdatePasswordHash(ctx, user.ID, string(hash)); err != nil {
		return fmt.Errorf("updating password: %w", err)
	}

	svc.Cache.Del(ctx, key)
	return nil
}
