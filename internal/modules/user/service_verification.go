package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/delordemm1/learnhub-api/internal/notification"
	"github.com/delordemm1/learnhub-api/internal/notification/templates"
	"github.com/delordemm1/learnhub-api/internal/signedurl"
)

// SendVerification issues a fresh signed link for the authenticated user and
// mails it. Calling it on an already-verified account is an idempotent
// success with no email sent.
func (s *service) SendVerification(ctx context.Context, userID string) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		s.logger.Error("send verification: find user failed", "error", err)
		return ErrInternal.WithCause(err)
	}
	if user.HasVerifiedEmail() {
		return nil
	}

	s.dispatchVerificationEmail(ctx, user)
	return nil
}

// ResendEmailVerification is the unauthenticated variant, resolving the user
// by email. Unknown and already-verified addresses both return nil so the
// endpoint cannot be used to probe which emails are registered.
func (s *service) ResendEmailVerification(ctx context.Context, email string) error {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.Info("verification resend requested for unknown email")
			return nil
		}
		s.logger.Error("resend verification: find user failed", "error", err)
		return ErrInternal.WithCause(err)
	}
	if user.HasVerifiedEmail() {
		return nil
	}

	s.dispatchVerificationEmail(ctx, user)
	return nil
}

// ConfirmEmailVerification consumes a signed link. The codec validates the
// link against the fingerprint of the email currently on record; on success
// the verification transition is applied as a single conditional update so a
// concurrent duplicate request resolves to OutcomeAlreadyVerified instead of
// writing timestamps twice.
func (s *service) ConfirmEmailVerification(ctx context.Context, userID, hash string, expires int64, signature string) (VerificationOutcome, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// An unknown user ID means the link is not valid; don't reveal more.
			return "", ErrInvalidVerificationLink
		}
		s.logger.Error("confirm verification: find user failed", "error", err)
		return "", ErrInternal.WithCause(err)
	}

	currentFingerprint := signedurl.EmailFingerprint(user.Email)
	if err := s.codec.Verify(userID, hash, expires, signature, currentFingerprint); err != nil {
		switch {
		case errors.Is(err, signedurl.ErrExpired):
			return "", ErrVerificationLinkExpired
		case errors.Is(err, signedurl.ErrMalformed),
			errors.Is(err, signedurl.ErrFingerprintMismatch),
			errors.Is(err, signedurl.ErrBadSignature):
			return "", ErrInvalidVerificationLink.WithCause(err)
		default:
			s.logger.Error("confirm verification: codec failure", "error", err)
			return "", ErrInternal.WithCause(err)
		}
	}

	if user.HasVerifiedEmail() {
		return OutcomeAlreadyVerified, nil
	}

	transitioned, err := s.repo.MarkEmailVerified(ctx, user.ID, s.codec.Now(), user.IsStudent())
	if err != nil {
		s.logger.Error("confirm verification: update failed", "error", err, "user_id", user.ID)
		return "", ErrInternal.WithCause(err)
	}
	if !transitioned {
		// Lost the race with a concurrent confirmation.
		return OutcomeAlreadyVerified, nil
	}

	s.logger.Info("email verified", "user_id", user.ID, "auto_approved", user.IsStudent())
	return OutcomeVerified, nil
}

// dispatchVerificationEmail issues a signed link and hands it to the mail
// collaborator. Delivery is fire-and-forget; a failure is logged, never
// surfaced to the caller.
func (s *service) dispatchVerificationEmail(ctx context.Context, user *User) {
	link := s.codec.Issue(user.ID, signedurl.EmailFingerprint(user.Email))

	// The frontend consumes the link parameters and calls the API itself.
	verifyURL := fmt.Sprintf("%s/verify-email?id=%s&hash=%s&expires=%d&signature=%s",
		s.config.App.FrontendURL, link.UserID, link.Fingerprint, link.Expires, link.Signature)

	go func() {
		data := templates.VerifyEmailData{
			Name:      user.Name,
			VerifyURL: verifyURL,
			AppName:   s.config.App.Name,
		}
		if err := notification.SendTemplate(context.WithoutCancel(ctx), s.notifier, templates.VerifyEmail, user.Email, []notification.Channel{notification.ChannelEmail}, notification.PriorityHigh, data); err != nil {
			s.logger.Error("failed to send verification email", "error", err, "user_id", user.ID)
		}
	}()
}
