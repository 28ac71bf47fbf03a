package user

import (
	"context"
	"errors"
)

// GetProfile retrieves a single user's profile by their ID.
func (s *service) GetProfile(ctx context.Context, userID string) (*User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound.WithCause(err)
		}
		s.logger.Error("failed to get user profile from repository", "error", err, "user_id", userID)
		return nil, ErrInternal.WithCause(err)
	}
	return user, nil
}
