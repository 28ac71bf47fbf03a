package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// Create inserts a new user record into the database. The unique index on
// lower(email) is the authority on email uniqueness; a violation maps to
// ErrEmailExists so the check-then-insert race stays closed at the storage level.
func (r *repository) Create(ctx context.Context, user *User) error {
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	query, args, err := r.psql.Insert("users").
		Columns("id", "name", "email", "password_hash", "role", "email_verified_at", "approved_at", "created_at", "updated_at").
		Values(user.ID, user.Name, user.Email, user.PasswordHash, string(user.Role), user.EmailVerifiedAt, user.ApprovedAt, user.CreatedAt, user.UpdatedAt).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrEmailExists.WithCause(err)
		}
		return err
	}

	return nil
}

// FindByEmail retrieves a user by their email address, case-insensitively.
// It returns ErrNotFound if no user is found.
func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query, args, err := r.psql.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"lower(email)": strings.ToLower(strings.TrimSpace(email))}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, err
	}

	var user User
	err = pgxscan.Get(ctx, r.db, &user, query, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound.WithCause(err)
		}
		return nil, err
	}

	return &user, nil
}

// FindByID retrieves a user by their unique ID.
// It returns ErrNotFound if no user is found.
func (r *repository) FindByID(ctx context.Context, id string) (*User, error) {
	query, args, err := r.psql.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, err
	}

	var user User
	err = pgxscan.Get(ctx, r.db, &user, query, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound.WithCause(err)
		}
		return nil, err
	}

	return &user, nil
}

// MarkEmailVerified flips email_verified_at exactly once. When autoApprove is
// true (student accounts) approved_at is set in the same statement, so the
// auto-approval invariant holds within a single atomic write.
func (r *repository) MarkEmailVerified(ctx context.Context, userID string, at time.Time, autoApprove bool) (bool, error) {
	builder := r.psql.Update("users").
		Set("email_verified_at", at).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": userID}).
		Where("email_verified_at IS NULL")
	if autoApprove {
		builder = builder.Set("approved_at", at)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return false, err
	}

	ct, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return false, err
	}

	return ct.RowsAffected() > 0, nil
}

// Approve records an administrative approval. Zero rows affected means the
// account was already approved; the caller treats that as a no-op success.
func (r *repository) Approve(ctx context.Context, userID string, at time.Time) (bool, error) {
	query, args, err := r.psql.Update("users").
		Set("approved_at", at).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": userID}).
		Where("approved_at IS NULL").
		ToSql()
	if err != nil {
		return false, err
	}

	ct, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return false, err
	}

	return ct.RowsAffected() > 0, nil
}

// UpdatePasswordResetInfo stores the hashed reset token and its expiry for a given user.
func (r *repository) UpdatePasswordResetInfo(ctx context.Context, userID string, tokenHash string, expiry time.Time) error {
	query, args, err := r.psql.Update("users").
		Set("password_reset_token", tokenHash).
		Set("password_reset_token_expiry", expiry).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return err
	}

	ct, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdatePassword sets a new password hash for a user and clears any password reset tokens.
func (r *repository) UpdatePassword(ctx context.Context, userID string, newPasswordHash string) error {
	query, args, err := r.psql.Update("users").
		Set("password_hash", newPasswordHash).
		Set("password_reset_token", nil).
		Set("password_reset_token_expiry", nil).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return err
	}

	ct, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// FindByPasswordResetToken finds a user by their hashed password reset token.
func (r *repository) FindByPasswordResetToken(ctx context.Context, tokenHash string) (*User, error) {
	query, args, err := r.psql.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"password_reset_token": tokenHash}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, err
	}

	var user User
	err = pgxscan.Get(ctx, r.db, &user, query, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound.WithCause(err)
		}
		return nil, err
	}

	return &user, nil
}

var userColumns = []string{
	"id", "name", "email", "password_hash", "role",
	"email_verified_at", "approved_at",
	"password_reset_token", "password_reset_token_expiry",
	"created_at", "updated_at",
}
