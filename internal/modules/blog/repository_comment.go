package blog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
)

var commentColumns = []string{
	"id", "blog_post_id", "user_id", "parent_id", "guest_name", "guest_email",
	"content", "status", "created_at", "updated_at",
}

func (r *repository) CreateComment(ctx context.Context, comment *Comment) error {
	query, args, err := r.psql.Insert("blog_comments").
		Columns(commentColumns...).
		Values(comment.ID, comment.PostID, comment.UserID, comment.ParentID,
			comment.GuestName, comment.GuestEmail, comment.Content, comment.Status,
			comment.CreatedAt, comment.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create comment query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (r *repository) FindCommentByID(ctx context.Context, id string) (*Comment, error) {
	query, args, err := r.psql.Select(commentColumns...).
		From("blog_comments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build find comment query: %w", err)
	}

	var comment Comment
	if err := pgxscan.Get(ctx, r.db, &comment, query, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}
	return &comment, nil
}

func (r *repository) SetCommentStatus(ctx context.Context, id string, status CommentStatus, at time.Time) error {
	query, args, err := r.psql.Update("blog_comments").
		Set("status", status).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build comment status query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to set comment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCommentNotFound
	}
	return nil
}

// ListApprovedComments returns the post's approved comments oldest first, so
// threads read top to bottom.
func (r *repository) ListApprovedComments(ctx context.Context, postID string) ([]*Comment, error) {
	query, args, err := r.psql.Select(commentColumns...).
		From("blog_comments").
		Where(squirrel.Eq{"blog_post_id": postID, "status": CommentApproved}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list comments query: %w", err)
	}

	var comments []*Comment
	if err := pgxscan.Select(ctx, r.db, &comments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}
