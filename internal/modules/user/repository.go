package user

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/delordemm1/learnhub-api/internal/database"
)

// Repository defines the interface for database operations for the user module.
// This abstraction allows the service layer to be independent of the database implementation.
type Repository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)

	// MarkEmailVerified applies the verification transition as one atomic
	// conditional update: timestamps are set only where email_verified_at is
	// still null. It reports whether the row was transitioned; false means a
	// concurrent caller (or an earlier request) already verified the account.
	MarkEmailVerified(ctx context.Context, userID string, at time.Time, autoApprove bool) (bool, error)

	// Approve sets approved_at where it is still null. It reports whether the
	// row was transitioned; false on an already-approved account.
	Approve(ctx context.Context, userID string, at time.Time) (bool, error)

	UpdatePassword(ctx context.Context, userID string, newPasswordHash string) error
	FindByPasswordResetToken(ctx context.Context, tokenHash string) (*User, error)
	UpdatePasswordResetInfo(ctx context.Context, userID string, tokenHash string, expiry time.Time) error
}

// repository implements the Repository interface using pgx and squirrel.
type repository struct {
	db   database.DBTX
	psql squirrel.StatementBuilderType
}

// NewRepository creates a new user repository with the given database connection.
func NewRepository(db database.DBTX) Repository {
	return &repository{
		db:   db,
		psql: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}
