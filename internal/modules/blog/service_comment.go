package blog

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CreateComment stores a new comment in moderation. The post must exist,
// be published, and accept comments; replies must target a comment on the
// same post.
func (s *service) CreateComment(ctx context.Context, in CreateCommentInput) (*Comment, error) {
	post, err := s.repo.FindPostByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post.Status != StatusPublished {
		return nil, ErrPostNotFound
	}
	if !post.AllowComments {
		return nil, ErrCommentsDisabled
	}

	if in.ParentID != nil {
		parent, err := s.repo.FindCommentByID(ctx, *in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.PostID != post.ID {
			return nil, ErrCommentNotFound
		}
	}

	now := time.Now().UTC()
	comment := &Comment{
		ID:         uuid.Must(uuid.NewV7()).String(),
		PostID:     post.ID,
		UserID:     in.UserID,
		ParentID:   in.ParentID,
		GuestName:  in.GuestName,
		GuestEmail: in.GuestEmail,
		Content:    in.Content,
		Status:     CommentPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, ErrInternal.WithCause(err)
	}

	s.logger.Info("blog comment created", "comment_id", comment.ID, "post_id", post.ID)
	return comment, nil
}

// ModerateComment lets an admin approve or reject a pending comment.
func (s *service) ModerateComment(ctx context.Context, actorID, commentID string, status CommentStatus) error {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}
	if status != CommentApproved && status != CommentRejected {
		return ErrInvalidStatus
	}
	return s.repo.SetCommentStatus(ctx, commentID, status, time.Now().UTC())
}
