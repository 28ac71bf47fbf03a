package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/delordemm1/learnhub-api/internal/notification"
	"github.com/delordemm1/learnhub-api/internal/notification/templates"
)

// passwordResetTTL bounds how long a reset token stays usable.
const passwordResetTTL = 60 * time.Minute

// InitiatePasswordReset generates a reset token for the given email, stores
// its hash, and mails the raw token. Unknown emails return nil to prevent
// account enumeration.
func (s *service) InitiatePasswordReset(ctx context.Context, email string) error {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.Info("password reset requested for unknown email")
			return nil
		}
		s.logger.Error("password reset: find user failed", "error", err)
		return ErrInternal.WithCause(err)
	}

	token, err := generateSecureToken(32)
	if err != nil {
		s.logger.Error("password reset: failed to generate token", "error", err)
		return ErrInternal.WithCause(err)
	}

	expiry := time.Now().Add(passwordResetTTL)
	if err := s.repo.UpdatePasswordResetInfo(ctx, user.ID, hashToken(token), expiry); err != nil {
		s.logger.Error("password reset: failed to store token", "error", err)
		return ErrInternal.WithCause(err)
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s&email=%s", s.config.App.FrontendURL, token, user.Email)

	go func() {
		data := templates.PasswordResetData{
			Name:     user.Name,
			ResetURL: resetURL,
			AppName:  s.config.App.Name,
		}
		if err := notification.SendTemplate(context.WithoutCancel(ctx), s.notifier, templates.PasswordReset, user.Email, []notification.Channel{notification.ChannelEmail}, notification.PriorityHigh, data); err != nil {
			s.logger.Error("failed to send password reset email", "error", err, "user_id", user.ID)
		}
	}()

	return nil
}

// FinalizePasswordReset validates a reset token and sets the new password.
// The token, its expiry, and the bound email must all check out; every
// failure collapses to ErrInvalidResetToken.
func (s *service) FinalizePasswordReset(ctx context.Context, token, email, newPassword string) error {
	if token == "" {
		return ErrInvalidResetToken
	}

	user, err := s.repo.FindByPasswordResetToken(ctx, hashToken(token))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrInvalidResetToken
		}
		s.logger.Error("password reset: find by token failed", "error", err)
		return ErrInternal.WithCause(err)
	}

	if !equalFold(user.Email, email) {
		return ErrInvalidResetToken
	}

	if user.PasswordResetTokenExpiry == nil || time.Now().After(*user.PasswordResetTokenExpiry) {
		return ErrInvalidResetToken
	}

	newHash, err := hashPassword(newPassword)
	if err != nil {
		s.logger.Error("password reset: failed to hash new password", "error", err)
		return ErrInternal.WithCause(err)
	}

	if err := s.repo.UpdatePassword(ctx, user.ID, newHash); err != nil {
		s.logger.Error("password reset: failed to update password", "error", err)
		return ErrInternal.WithCause(err)
	}

	s.logger.Info("password reset completed", "user_id", user.ID)
	return nil
}
