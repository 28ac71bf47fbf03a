package blog

import (
	"context"
	"log/slog"

	"github.com/delordemm1/learnhub-api/internal/modules/user"
)

// CreatePostInput carries the author-supplied fields for a new post.
type CreatePostInput struct {
	CategoryID      string
	Title           string
	Excerpt         *string
	Content         string
	MetaTitle       *string
	MetaDescription *string
	MetaKeywords    *string
	Status          PostStatus
	IsFeatured      bool
	AllowComments   bool
	TagIDs          []string
}

// UpdatePostInput carries the editable fields of an existing post. Nil
// pointers leave the current value untouched; TagIDs nil leaves tags alone.
type UpdatePostInput struct {
	CategoryID      *string
	Title           *string
	Excerpt         *string
	Content         *string
	MetaTitle       *string
	MetaDescription *string
	MetaKeywords    *string
	Status          *PostStatus
	IsFeatured      *bool
	AllowComments   *bool
	TagIDs          []string
}

// CreateCommentInput carries a new comment from a registered user or a guest.
type CreateCommentInput struct {
	PostID     string
	UserID     *string
	ParentID   *string
	GuestName  *string
	GuestEmail *string
	Content    string
}

// PostDetail is a published post with its tags and approved comments.
type PostDetail struct {
	Post     *PostRow
	Tags     []*Tag
	Comments []*Comment
}

// Service defines the blog business operations.
type Service interface {
	// Posts
	CreatePost(ctx context.Context, actorID string, in CreatePostInput) (*Post, error)
	UpdatePost(ctx context.Context, actorID, postID string, in UpdatePostInput) (*Post, error)
	DeletePost(ctx context.Context, actorID, postID string) error
	SubmitPost(ctx context.Context, actorID, postID string) error
	ApprovePost(ctx context.Context, actorID, postID string) error
	RejectPost(ctx context.Context, actorID, postID string) error
	FeaturePost(ctx context.Context, actorID, postID string, featured bool) error
	ListPublishedPosts(ctx context.Context, filter PostFilter) ([]*PostRow, int64, error)
	GetPublishedPost(ctx context.Context, slug, viewerIP string, viewerUserAgent string, viewerID *string) (*PostDetail, error)

	// Categories
	CreateCategory(ctx context.Context, actorID, name string, description *string) (*Category, error)
	UpdateCategory(ctx context.Context, actorID, id, name string, description *string) (*Category, error)
	DeleteCategory(ctx context.Context, actorID, id string) error
	ListCategories(ctx context.Context) ([]*Category, error)
	GetCategoryBySlug(ctx context.Context, slug string, page int) (*Category, []*PostRow, int64, error)

	// Tags
	CreateTag(ctx context.Context, actorID, name string) (*Tag, error)
	UpdateTag(ctx context.Context, actorID, id, name string) (*Tag, error)
	DeleteTag(ctx context.Context, actorID, id string) error
	ListTags(ctx context.Context) ([]*Tag, error)
	GetTagBySlug(ctx context.Context, slug string, page int) (*Tag, []*PostRow, int64, error)

	// Comments
	CreateComment(ctx context.Context, in CreateCommentInput) (*Comment, error)
	ModerateComment(ctx context.Context, actorID, commentID string, status CommentStatus) error
}

type service struct {
	repo   Repository
	users  user.Repository
	views  ViewDeduper
	logger *slog.Logger
}

// Config holds the dependencies for the blog service.
type Config struct {
	Repo   Repository
	Users  user.Repository
	Views  ViewDeduper
	Logger *slog.Logger
}

// NewService creates a new blog service.
func NewService(cfg Config) Service {
	return &service{
		repo:   cfg.Repo,
		users:  cfg.Users,
		views:  cfg.Views,
		logger: cfg.Logger,
	}
}

// actor loads the acting user, translating lookup failures into a forbidden
// error rather than leaking account state.
func (s *service) actor(ctx context.Context, actorID string) (*user.User, error) {
	u, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		return nil, ErrForbidden.WithCause(err)
	}
	return u, nil
}
