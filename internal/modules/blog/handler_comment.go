package blog

import (
	"context"
	"time"

	"github.com/delordemm1/learnhub-api/internal/httpx"
	"github.com/delordemm1/learnhub-api/internal/validation"
)

// CommentDTO is the public shape of an approved comment. Guest email is
// never exposed.
type CommentDTO struct {
	ID        string    `json:"id"`
	ParentID  *string   `json:"parentId"`
	UserID    *string   `json:"userId"`
	GuestName *string   `json:"guestName"`
	Content   string    `json:"content"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

func toCommentDTO(c *Comment) CommentDTO {
	return CommentDTO{
		ID:        c.ID,
		ParentID:  c.ParentID,
		UserID:    c.UserID,
		GuestName: c.GuestName,
		Content:   c.Content,
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt,
	}
}

func toCommentDTOs(comments []*Comment) []CommentDTO {
	out := make([]CommentDTO, 0, len(comments))
	for _, c := range comments {
		out = append(out, toCommentDTO(c))
	}
	return out
}

type CreateCommentRequest struct {
	ID   string `path:"id" doc:"Post ID"`
	Body struct {
		Content    string  `json:"content" validate:"required,min=2,max=2000"`
		ParentID   *string `json:"parent_id" validate:"omitempty,uuid"`
		GuestName  *string `json:"guest_name" validate:"omitempty,min=2,max=100"`
		GuestEmail *string `json:"guest_email" validate:"omitempty,email"`
	}
}

type CreateCommentResponse struct {
	Body struct {
		Message string     `json:"message"`
		Comment CommentDTO `json:"comment"`
	}
}

// CreateCommentHandler accepts a comment from a signed-in user or, when the
// request is anonymous, from a guest who must supply a name and email. New
// comments await moderation before they appear.
func (h *Handler) CreateCommentHandler(ctx context.Context, input *CreateCommentRequest) (*CreateCommentResponse, error) {
	if verr := validation.ValidateStruct(&input.Body); verr != nil {
		return nil, httpx.ToProblem(ctx, verr)
	}

	userID := optionalActorID(ctx)
	if userID == nil && (input.Body.GuestName == nil || input.Body.GuestEmail == nil) {
		fields := map[string][]string{}
		if input.Body.GuestName == nil {
			fields["guest_name"] = []string{"is required"}
		}
		if input.Body.GuestEmail == nil {
			fields["guest_email"] = []string{"is required"}
		}
		return nil, httpx.ValidationProblem(ctx, "guest name and email are required for guest comments", fields)
	}

	comment, err := h.service.CreateComment(ctx, CreateCommentInput{
		PostID:     input.ID,
		UserID:     userID,
		ParentID:   input.Body.ParentID,
		GuestName:  input.Body.GuestName,
		GuestEmail: input.Body.GuestEmail,
		Content:    input.Body.Content,
	})
	if err != nil {
		h.logger.Warn("comment creation failed", "error", err, "post_id", input.ID)
		return nil, httpx.ToProblem(ctx, err)
	}

	resp := &CreateCommentResponse{}
	resp.Body.Message = "Comment submitted for moderation."
	resp.Body.Comment = toCommentDTO(comment)
	return resp, nil
}

type ModerateCommentRequest struct {
	ID   string `path:"id"`
	Body struct {
		Status string `json:"status" validate:"required,oneof=approved rejected"`
	}
}

func (h *Handler) ModerateCommentHandler(ctx context.Context, input *ModerateCommentRequest) (*MessageResponse, error) {
	id, err := actorID(ctx)
	if err != nil {
		return nil, err
	}
	if verr := validation.ValidateStruct(&input.Body); verr != nil {
		return nil, httpx.ToProblem(ctx, verr)
	}

	if err := h.service.ModerateComment(ctx, id, input.ID, CommentStatus(input.Body.Status)); err != nil {
		return nil, httpx.ToProblem(ctx, err)
	}

	resp := &MessageResponse{}
	resp.Body.Message = "Comment " + input.Body.Status + "."
	return resp, nil
}
