package user

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/delordemm1/learnhub-api/internal/contextx"
	"github.com/delordemm1/learnhub-api/internal/httpx"
	"github.com/delordemm1/learnhub-api/internal/validation"
)

// --- DTOs (Data Transfer Objects) ---

// UserDTO is the public shape of a user record. The password hash is never
// part of it.
type UserDTO struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Role            string     `json:"role"`
	EmailVerifiedAt *time.Time `json:"emailVerifiedAt"`
	ApprovedAt      *time.Time `json:"approvedAt"`
	CreatedAt       time.Time  `json:"createdAt"`
}

func toUserDTO(user *User) UserDTO {
	return UserDTO{
		ID:              user.ID,
		Name:            user.Name,
		Email:           user.Email,
		Role:            string(user.Role),
		EmailVerifiedAt: user.EmailVerifiedAt,
		ApprovedAt:      user.ApprovedAt,
		CreatedAt:       user.CreatedAt,
	}
}

// RegisterRequest defines the structure for the user registration request body.
type RegisterRequest struct {
	Body struct {
		Name                 string `json:"name" validate:"required,min=2"`
		Email                string `json:"email" validate:"required,email"`
		Password             string `json:"password" validate:"required,min=8"`
		PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
		Role                 string `json:"role" validate:"required,oneof=student tutor contributor"`
	}
}

// RegisterResponse defines the structure for a successful registration response.
type RegisterResponse struct {
	Body struct {
		Message string  `json:"message"`
		User    UserDTO `json:"user"`
	}
}

// LoginRequest defines the structure for the user login request body.
type LoginRequest struct {
	UserAgent string `header:"User-Agent"`
	Body      struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
}

// LoginResponse defines the structure for a successful login response.
type LoginResponse struct {
	Body struct {
		Message string  `json:"message"`
		User    UserDTO `json:"user"`
		Token   string  `json:"token"`
	}
}

// LogoutResponse confirms session termination.
type LogoutResponse struct {
	Body struct {
		Message string `json:"message"`
	}
}

// --- Handlers ---

// RegisterHandler handles the user registration endpoint. The account is
// created unverified; a signed verification link is emailed as a side effect.
func (h *Handler) RegisterHandler(ctx context.Context, input *RegisterRequest) (*RegisterResponse, error) {
	if verr := validation.ValidateStruct(&input.Body); verr != nil {
		return nil, httpx.ToProblem(ctx, verr)
	}

	user, err := h.service.Register(ctx, input.Body.Name, input.Body.Email, input.Body.Password, Role(input.Body.Role))
	if err != nil {
		h.logger.Warn("registration failed", "error", err)
		return nil, httpx.ToProblem(ctx, err)
	}

	resp := &RegisterResponse{}
	resp.Body.Message = "Registered successfully. Please check your email for a verification link."
	resp.Body.User = toUserDTO(user)
	return resp, nil
}

// LoginHandler handles the user login endpoint. Invalid credentials, an
// unverified email and a pending approval each map to their own problem
// response; the first deliberately does not distinguish unknown emails from
// wrong passwords.
func (h *Handler) LoginHandler(ctx context.Context, input *LoginRequest) (*LoginResponse, error) {
	if verr := validation.ValidateStruct(&input.Body); verr != nil {
		return nil, httpx.ToProblem(ctx, verr)
	}

	user, token, err := h.service.Login(ctx, input.Body.Email, input.Body.Password, input.UserAgent, httpx.ClientIP(ctx))
	if err != nil {
		h.logger.Warn("login attempt failed", "error", err)
		return nil, httpx.ToProblem(ctx, err)
	}

	resp := &LoginResponse{}
	resp.Body.Message = "Logged in successfully."
	resp.Body.User = toUserDTO(user)
	resp.Body.Token = token
	return resp, nil
}

// LogoutHandler deletes the current session token.
func (h *Handler) LogoutHandler(ctx context.Context, input *struct{}) (*LogoutResponse, error) {
	sessionID, ok := ctx.Value(contextx.SessionIDKey).(string)
	if !ok || sessionID == "" {
		return nil, huma.Error401Unauthorized("invalid authentication context")
	}

	if err := h.service.Logout(ctx, sessionID); err != nil {
		return nil, httpx.ToProblem(ctx, err)
	}

	resp := &LogoutResponse{}
	resp.Body.Message = "Logged out successfully."
	return resp, nil
}
