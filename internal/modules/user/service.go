package user

import (
	"context"
	"log/slog"

	"github.com/delordemm1/learnhub-api/internal/config"
	"github.com/delordemm1/learnhub-api/internal/notification"
	"github.com/delordemm1/learnhub-api/internal/session"
	"github.com/delordemm1/learnhub-api/internal/signedurl"
)

// VerificationOutcome distinguishes a first-time verification from the
// idempotent replay of an already-consumed link. Both are successes.
type VerificationOutcome string

const (
	OutcomeVerified        VerificationOutcome = "verified"
	OutcomeAlreadyVerified VerificationOutcome = "already_verified"
)

// Service defines the interface for the user module's business logic.
// It orchestrates the flow of data between the handlers and the repository,
// and contains the core business rules: registration, the login gate, the
// signed email verification workflow, and administrative approval.
type Service interface {
	// Auth
	Register(ctx context.Context, name, email, password string, role Role) (*User, error)
	Login(ctx context.Context, email, password, userAgent, ip string) (*User, string, error)
	Logout(ctx context.Context, sessionID string) error

	// Profile
	GetProfile(ctx context.Context, userID string) (*User, error)

	// Email verification
	SendVerification(ctx context.Context, userID string) error
	ResendEmailVerification(ctx context.Context, email string) error
	ConfirmEmailVerification(ctx context.Context, userID, hash string, expires int64, signature string) (VerificationOutcome, error)

	// Administrative approval
	Approve(ctx context.Context, actorID, userID string) error

	// Password reset
	InitiatePasswordReset(ctx context.Context, email string) error
	FinalizePasswordReset(ctx context.Context, token, email, newPassword string) error
}

// service implements the Service interface.
type service struct {
	repo     Repository
	sessions session.Provider
	notifier notification.Service
	codec    *signedurl.Codec
	logger   *slog.Logger
	config   *config.Config
}

// Config holds the dependencies for the user service.
type Config struct {
	Repo     Repository
	Sessions session.Provider
	Notifier notification.Service
	Codec    *signedurl.Codec
	Logger   *slog.Logger
	Config   *config.Config
}

// NewService creates a new user service with the given dependencies.
func NewService(cfg *Config) Service {
	return &service{
		repo:     cfg.Repo,
		sessions: cfg.Sessions,
		notifier: cfg.Notifier,
		codec:    cfg.Codec,
		logger:   cfg.Logger,
		config:   cfg.Config,
	}
}
