package user

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// Register handles the business logic for creating a new user account. The
// account starts unverified and unapproved; a signed verification link is
// mailed out as a side effect.
func (s *service) Register(ctx context.Context, name, email, password string, role Role) (*User, error) {
	if !role.SelfRegistrable() {
		return nil, ErrInvalidRole
	}

	email = strings.ToLower(strings.TrimSpace(email))

	// Pre-check for a friendlier error; the unique index on lower(email) is
	// what actually closes the race between check and insert.
	_, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailExists
	}
	if !errors.Is(err, ErrNotFound) {
		s.logger.Error("register: find user by email failed", "error", err)
		return nil, ErrInternal.WithCause(err)
	}

	hashedPassword, err := hashPassword(password)
	if err != nil {
		s.logger.Error("register: failed to hash password", "error", err)
		return nil, ErrInternal.WithCause(err)
	}

	newUserID, err := uuid.NewV7()
	if err != nil {
		return nil, ErrInternal.WithCause(err)
	}
	newUser := &User{
		ID:           newUserID.String(),
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         role,
		// EmailVerifiedAt and ApprovedAt stay null until verification.
	}

	if err := s.repo.Create(ctx, newUser); err != nil {
		if errors.Is(err, ErrEmailExists) {
			return nil, ErrEmailExists
		}
		s.logger.Error("register: failed to create user", "error", err)
		return nil, ErrInternal.WithCause(err)
	}

	s.logger.Info("user registered", "user_id", newUser.ID, "role", newUser.Role)

	s.dispatchVerificationEmail(ctx, newUser)

	return newUser, nil
}

// Login evaluates credentials against the account lifecycle and, when the
// gate passes, issues an opaque session token. The checks run in a fixed
// order: credentials, email verification, approval.
func (s *service) Login(ctx context.Context, email, password, userAgent, ip string) (*User, string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// Burn a bcrypt comparison so an unknown email costs the same as
			// a wrong password, then return the identical error.
			checkPasswordHash(password, dummyPasswordHash)
			return nil, "", ErrInvalidCredentials
		}
		s.logger.Error("login: failed to find user by email", "error", err)
		return nil, "", ErrInternal.WithCause(err)
	}

	if !checkPasswordHash(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	if !user.HasVerifiedEmail() {
		return nil, "", ErrEmailNotVerified
	}

	if !user.IsApproved() {
		return nil, "", ErrPendingApproval
	}

	token, err := s.sessions.CreateAuthSession(ctx, user.ID, userAgent, ip)
	if err != nil {
		s.logger.Error("login: failed to create session", "error", err, "user_id", user.ID)
		return nil, "", ErrInternal.WithCause(err)
	}

	s.logger.Info("user logged in", "user_id", user.ID)

	return user, token, nil
}

// Logout deletes the presented session token. Deleting an unknown token is a no-op.
func (s *service) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		s.logger.Error("logout: failed to delete session", "error", err)
		return ErrInternal.WithCause(err)
	}
	return nil
}

// Approve records an administrative approval for a tutor or contributor
// account. The target must have verified its email first. Approving an
// already-approved account succeeds as a no-op.
func (s *service) Approve(ctx context.Context, actorID, userID string) error {
	actor, err := s.repo.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrUnauthorized
		}
		s.logger.Error("approve: failed to load actor", "error", err)
		return ErrInternal.WithCause(err)
	}
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	target, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		s.logger.Error("approve: failed to load target user", "error", err)
		return ErrInternal.WithCause(err)
	}
	if !target.HasVerifiedEmail() {
		return ErrEmailNotVerified
	}

	transitioned, err := s.repo.Approve(ctx, target.ID, s.codec.Now())
	if err != nil {
		s.logger.Error("approve: update failed", "error", err, "user_id", target.ID)
		return ErrInternal.WithCause(err)
	}
	if transitioned {
		s.logger.Info("user approved", "user_id", target.ID, "approved_by", actor.ID)
	}
	return nil
}
