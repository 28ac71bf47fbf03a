package blog

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/delordemm1/learnhub-api/internal/database"
)

// PostFilter narrows the public post listing.
type PostFilter struct {
	CategorySlug string
	TagSlug      string
	FeaturedOnly bool
	Page         int // 1-based
	PerPage      int
}

// Repository defines the database operations for the blog module.
type Repository interface {
	// Posts
	CreatePost(ctx context.Context, post *Post, tagIDs []string) error
	FindPostByID(ctx context.Context, id string) (*Post, error)
	FindPublishedPostBySlug(ctx context.Context, slug string) (*PostRow, error)
	ListPublishedPosts(ctx context.Context, filter PostFilter) ([]*PostRow, int64, error)
	UpdatePost(ctx context.Context, post *Post) error
	SyncPostTags(ctx context.Context, postID string, tagIDs []string) error
	SoftDeletePost(ctx context.Context, id string) error
	CountSlugsLike(ctx context.Context, slugPrefix string) (int, error)
	ListTagsForPost(ctx context.Context, postID string) ([]*Tag, error)

	// Views
	CreateView(ctx context.Context, view *View) error
	IncrementViewsCount(ctx context.Context, postID string) error

	// Categories
	CreateCategory(ctx context.Context, category *Category) error
	FindCategoryByID(ctx context.Context, id string) (*Category, error)
	FindCategoryBySlug(ctx context.Context, slug string) (*Category, error)
	ListCategories(ctx context.Context) ([]*Category, error)
	UpdateCategory(ctx context.Context, category *Category) error
	DeleteCategory(ctx context.Context, id string) error

	// Tags
	CreateTag(ctx context.Context, tag *Tag) error
	FindTagByID(ctx context.Context, id string) (*Tag, error)
	FindTagBySlug(ctx context.Context, slug string) (*Tag, error)
	ListTags(ctx context.Context) ([]*Tag, error)
	UpdateTag(ctx context.Context, tag *Tag) error
	DeleteTag(ctx context.Context, id string) error

	// Comments
	CreateComment(ctx context.Context, comment *Comment) error
	FindCommentByID(ctx context.Context, id string) (*Comment, error)
	SetCommentStatus(ctx context.Context, id string, status CommentStatus, at time.Time) error
	ListApprovedComments(ctx context.Context, postID string) ([]*Comment, error)
}

// repository implements the Repository interface using pgx and squirrel.
type repository struct {
	db   database.DBTX
	psql squirrel.StatementBuilderType
}

// NewRepository creates a new blog repository with the given database connection.
func NewRepository(db database.DBTX) Repository {
	return &repository{
		db:   db,
		psql: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}
