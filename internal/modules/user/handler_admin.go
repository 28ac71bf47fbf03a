package user

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/delordemm1/learnhub-api/internal/contextx"
	"github.com/delordemm1/learnhub-api/internal/httpx"
)

// ApproveUserRequest identifies the account to approve.
type ApproveUserRequest struct {
	ID string `path:"id"`
}

type ApproveUserResponse struct {
	Body struct {
		Message string `json:"message"`
	}
}

// ApproveUserHandler records an administrative approval for a tutor or
// contributor account. Approving an already-approved account is a no-op
// success.
func (h *Handler) ApproveUserHandler(ctx context.Context, input *ApproveUserRequest) (*ApproveUserResponse, error) {
	actorID, ok := ctx.Value(contextx.UserIDKey).(string)
	if !ok || actorID == "" {
		return nil, huma.Error401Unauthorized("invalid authentication context")
	}

	if err := h.service.Approve(ctx, actorID, input.ID); err != nil {
		h.logger.Warn("user approval failed", "error", err, "target_id", input.ID)
		return nil, httpx.ToProblem(ctx, err)
	}

	resp := &ApproveUserResponse{}
	resp.Body.Message = "User approved."
	return resp, nil
}
