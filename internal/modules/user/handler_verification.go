package user

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/delordemm1/learnhub-api/internal/contextx"
	"github.com/delordemm1/learnhub-api/internal/httpx"
	"github.com/delordemm1/learnhub-api/internal/validation"
)

// --- DTOs ---

type ResendVerificationResponse struct {
	Body struct {
		Message string `json:"message"`
	}
}

type ResendVerificationUnauthenticatedRequest struct {
	Body struct {
		Email string `json:"email" validate:"required,email"`
	}
}

// VerifyEmailRequest carries the components of a signed verification link.
// id and hash travel in the path; expires and signature in the query string,
// exactly as issued.
type VerifyEmailRequest struct {
	ID        string `path:"id"`
	Hash      string `path:"hash"`
	Expires   int64  `query:"expires"`
	Signature string `query:"signature"`
}

type VerifyEmailResponse struct {
	Body struct {
		Message string `json:"message"`
	}
}

// --- Handlers ---

// ResendVerificationHandler re-sends the verification email to the
// authenticated user. Already-verified accounts get a success without a send.
func (h *Handler) ResendVerificationHandler(ctx context.Context, input *struct{}) (*ResendVerificationResponse, error) {
	userID, ok := ctx.Value(contextx.UserIDKey).(string)
	if !ok || userID == "" {
		return nil, huma.Error401Unauthorized("invalid authentication context")
	}

	if err := h.service.SendVerification(ctx, userID); err != nil {
		return nil, httpx.ToProblem(ctx, err)
	}

	resp := &ResendVerificationResponse{}
	resp.Body.Message = "Verification link resent."
	return resp, nil
}

// ResendVerificationUnauthenticatedHandler re-sends the verification email
// for a given address. The response is identical whether or not the address
// is registered, so the endpoint cannot be used for account enumeration.
func (h *Handler) ResendVerificationUnauthenticatedHandler(ctx context.Context, input *ResendVerificationUnauthenticatedRequest) (*ResendVerificationResponse, error) {
	if verr := validation.ValidateStruct(&input.Body); verr != nil {
		return nil, httpx.ToProblem(ctx, verr)
	}

	if err := h.service.ResendEmailVerification(ctx, input.Body.Email); err != nil {
		return nil, httpx.ToProblem(ctx, err)
	}

	resp := &ResendVerificationResponse{}
	resp.Body.Message = "If the address is registered, a verification link has been sent."
	return resp, nil
}

// VerifyEmailHandler consumes a signed verification link. Replaying a
// consumed link is an idempotent success.
func (h *Handler) VerifyEmailHandler(ctx context.Context, input *VerifyEmailRequest) (*VerifyEmailResponse, error) {
	outcome, err := h.service.ConfirmEmailVerification(ctx, input.ID, input.Hash, input.Expires, input.Signature)
	if err != nil {
		h.logger.Warn("email verification failed", "error", err)
		return nil, httpx.ToProblem(ctx, err)
	}

	resp := &VerifyEmailResponse{}
	if outcome == OutcomeAlreadyVerified {
		resp.Body.Message = "Already verified."
	} else {
		resp.Body.Message = "Email verified successfully."
	}
	return resp, nil
}
