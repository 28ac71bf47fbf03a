package user

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/delordemm1/learnhub-api/internal/middleware"
	"github.com/delordemm1/learnhub-api/internal/ratelimit"
	"github.com/delordemm1/learnhub-api/internal/session"
)

// Handler holds the dependencies for the user module's HTTP handlers.
type Handler struct {
	service  Service
	logger   *slog.Logger
	sessions session.Provider
	limiter  *ratelimit.Limiter
}

// NewHandler creates a new handler for the user module.
func NewHandler(service Service, logger *slog.Logger, sessions session.Provider, limiter *ratelimit.Limiter) *Handler {
	return &Handler{
		service:  service,
		logger:   logger,
		sessions: sessions,
		limiter:  limiter,
	}
}

// RegisterRoutes sets up the routing for the user module.
// It defines all the API endpoints and connects them to their respective handler functions.
func (h *Handler) RegisterRoutes(api huma.API) {
	auth := middleware.SessionAuthHuma(h.sessions, h.logger)
	throttle := ratelimit.Huma(h.limiter)

	// --- Authentication Routes ---
	huma.Register(api, huma.Operation{
		OperationID:   "register",
		Method:        http.MethodPost,
		Path:          "/register",
		Summary:       "Register a new user",
		DefaultStatus: http.StatusCreated,
	}, h.RegisterHandler)

	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/login",
		Summary:     "Log in a user",
		Middlewares: huma.Middlewares{throttle},
	}, h.LoginHandler)

	huma.Register(api, huma.Operation{
		OperationID: "logout",
		Method:      http.MethodPost,
		Path:        "/logout",
		Summary:     "Log out the current user",
		Middlewares: huma.Middlewares{auth},
	}, h.LogoutHandler)

	// --- Email Verification Routes ---
	huma.Register(api, huma.Operation{
		OperationID: "resend-verification",
		Method:      http.MethodPost,
		Path:        "/email/resend",
		Summary:     "Resend the verification email to the current user",
		Middlewares: huma.Middlewares{auth},
	}, h.ResendVerificationHandler)

	huma.Register(api, huma.Operation{
		OperationID: "resend-verification-unauthenticated",
		Method:      http.MethodPost,
		Path:        "/email/resend-unauthenticated",
		Summary:     "Resend the verification email by address",
		Middlewares: huma.Middlewares{throttle},
	}, h.ResendVerificationUnauthenticatedHandler)

	huma.Register(api, huma.Operation{
		OperationID: "verify-email",
		Method:      http.MethodGet,
		Path:        "/email/verify/{id}/{hash}",
		Summary:     "Consume a signed email verification link",
	}, h.VerifyEmailHandler)

	// --- Password Management Routes ---
	huma.Register(api, huma.Operation{
		OperationID: "forgot-password",
		Method:      http.MethodPost,
		Path:        "/forgot-password",
		Summary:     "Initiate password reset",
		Middlewares: huma.Middlewares{throttle},
	}, h.ForgotPasswordHandler)

	huma.Register(api, huma.Operation{
		OperationID: "reset-password",
		Method:      http.MethodPost,
		Path:        "/reset-password",
		Summary:     "Reset password with a token",
		Middlewares: huma.Middlewares{throttle},
	}, h.ResetPasswordHandler)

	// --- Profile Routes ---
	huma.Register(api, huma.Operation{
		OperationID: "get-current-user",
		Method:      http.MethodGet,
		Path:        "/user",
		Summary:     "Get the current user's profile",
		Middlewares: huma.Middlewares{auth},
	}, h.GetProfileHandler)

	// --- Admin Routes ---
	huma.Register(api, huma.Operation{
		OperationID: "approve-user",
		Method:      http.MethodPost,
		Path:        "/admin/users/{id}/approve",
		Summary:     "Approve a verified tutor or contributor account",
		Middlewares: huma.Middlewares{auth},
	}, h.ApproveUserHandler)
}
