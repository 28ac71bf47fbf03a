package user

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/delordemm1/learnhub-api/internal/contextx"
	"github.com/delordemm1/learnhub-api/internal/httpx"
)

// ProfileResponse is the DTO for the authenticated user's own record.
type ProfileResponse struct {
	Body struct {
		User UserDTO `json:"user"`
	}
}

// GetProfileHandler retrieves the profile of the currently authenticated user.
// It relies on the session middleware to have set the user's ID in the context.
func (h *Handler) GetProfileHandler(ctx context.Context, input *struct{}) (*ProfileResponse, error) {
	userID, ok := ctx.Value(contextx.UserIDKey).(string)
	if !ok || userID == "" {
		h.logger.Error("user ID not found in context or is of wrong type")
		return nil, huma.Error401Unauthorized("invalid authentication context")
	}

	user, err := h.service.GetProfile(ctx, userID)
	if err != nil {
		return nil, httpx.ToProblem(ctx, err)
	}

	resp := &ProfileResponse{}
	resp.Body.User = toUserDTO(user)
	return resp, nil
}
