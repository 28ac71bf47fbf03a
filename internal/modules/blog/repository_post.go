package blog

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
)

var postColumns = []string{
	"id", "user_id", "category_id", "title", "slug", "excerpt", "content",
	"meta_title", "meta_description", "meta_keywords", "status", "is_featured",
	"allow_comments", "published_at", "reading_time", "views_count",
	"created_at", "updated_at", "deleted_at",
}

func prefixed(prefix string, cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = prefix + "." + c
	}
	return out
}

func (r *repository) CreatePost(ctx context.Context, post *Post, tagIDs []string) error {
	query, args, err := r.psql.Insert("blog_posts").
		Columns("id", "user_id", "category_id", "title", "slug", "excerpt", "content",
			"meta_title", "meta_description", "meta_keywords", "status", "is_featured",
			"allow_comments", "published_at", "reading_time", "created_at", "updated_at").
		Values(post.ID, post.UserID, post.CategoryID, post.Title, post.Slug, post.Excerpt, post.Content,
			post.MetaTitle, post.MetaDescription, post.MetaKeywords, post.Status, post.IsFeatured,
			post.AllowComments, post.PublishedAt, post.ReadingTime, post.CreatedAt, post.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create post query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	if len(tagIDs) > 0 {
		return r.SyncPostTags(ctx, post.ID, tagIDs)
	}
	return nil
}

func (r *repository) FindPostByID(ctx context.Context, id string) (*Post, error) {
	query, args, err := r.psql.Select(postColumns...).
		From("blog_posts").
		Where(squirrel.Eq{"id": id}).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build find post query: %w", err)
	}

	var post Post
	if err := pgxscan.Get(ctx, r.db, &post, query, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to find post by id: %w", err)
	}
	return &post, nil
}

func (r *repository) FindPublishedPostBySlug(ctx context.Context, slug string) (*PostRow, error) {
	cols := append(prefixed("p", postColumns),
		"u.name AS author_name",
		"c.name AS category_name",
		"c.slug AS category_slug",
	)
	query, args, err := r.psql.Select(cols...).
		From("blog_posts p").
		Join("users u ON u.id = p.user_id").
		Join("blog_categories c ON c.id = p.category_id").
		Where(squirrel.Eq{"p.slug": slug, "p.status": StatusPublished}).
		Where("p.published_at <= now()").
		Where("p.deleted_at IS NULL").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build find published post query: %w", err)
	}

	var row PostRow
	if err := pgxscan.Get(ctx, r.db, &row, query, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to find published post by slug: %w", err)
	}
	return &row, nil
}

// ListPublishedPosts returns one page of public posts, newest first, plus the
// total count matching the filter.
func (r *repository) ListPublishedPosts(ctx context.Context, filter PostFilter) ([]*PostRow, int64, error) {
	base := r.psql.Select().
		From("blog_posts p").
		Join("users u ON u.id = p.user_id").
		Join("blog_categories c ON c.id = p.category_id").
		Where(squirrel.Eq{"p.status": StatusPublished}).
		Where("p.published_at <= now()").
		Where("p.deleted_at IS NULL")

	if filter.CategorySlug != "" {
		base = base.Where(squirrel.Eq{"c.slug": filter.CategorySlug})
	}
	if filter.TagSlug != "" {
		base = base.Where(`p.id IN (
			SELECT pt.blog_post_id FROM blog_post_tag pt
			JOIN blog_tags t ON t.id = pt.blog_tag_id
			WHERE t.slug = ?)`, filter.TagSlug)
	}
	if filter.FeaturedOnly {
		base = base.Where(squirrel.Eq{"p.is_featured": true})
	}

	countQuery, countArgs, err := base.Columns("count(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count posts query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 {
		perPage = 10
	}

	cols := append(prefixed("p", postColumns),
		"u.name AS author_name",
		"c.name AS category_name",
		"c.slug AS category_slug",
	)
	query, args, err := base.Columns(cols...).
		OrderBy("p.published_at DESC").
		Limit(uint64(perPage)).
		Offset(uint64((page - 1) * perPage)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list posts query: %w", err)
	}

	var rows []*PostRow
	if err := pgxscan.Select(ctx, r.db, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}
	return rows, total, nil
}

func (r *repository) UpdatePost(ctx context.Context, post *Post) error {
	query, args, err := r.psql.Update("blog_posts").
		Set("category_id", post.CategoryID).
		Set("title", post.Title).
		Set("slug", post.Slug).
		Set("excerpt", post.Excerpt).
		Set("content", post.Content).
		Set("meta_title", post.MetaTitle).
		Set("meta_description", post.MetaDescription).
		Set("meta_keywords", post.MetaKeywords).
		Set("status", post.Status).
		Set("is_featured", post.IsFeatured).
		Set("allow_comments", post.AllowComments).
		Set("published_at", post.PublishedAt).
		Set("reading_time", post.ReadingTime).
		Set("updated_at", post.UpdatedAt).
		Where(squirrel.Eq{"id": post.ID}).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update post query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPostNotFound
	}
	return nil
}

// SyncPostTags replaces the post's tag set with the given IDs.
func (r *repository) SyncPostTags(ctx context.Context, postID string, tagIDs []string) error {
	delQuery, delArgs, err := r.psql.Delete("blog_post_tag").
		Where(squirrel.Eq{"blog_post_id": postID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build clear post tags query: %w", err)
	}
	if _, err := r.db.Exec(ctx, delQuery, delArgs...); err != nil {
		return fmt.Errorf("failed to clear post tags: %w", err)
	}

	if len(tagIDs) == 0 {
		return nil
	}

	insert := r.psql.Insert("blog_post_tag").Columns("blog_post_id", "blog_tag_id")
	for _, tagID := range tagIDs {
		insert = insert.Values(postID, tagID)
	}
	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build attach post tags query: %w", err)
	}
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to attach post tags: %w", err)
	}
	return nil
}

func (r *repository) SoftDeletePost(ctx context.Context, id string) error {
	query, args, err := r.psql.Update("blog_posts").
		Set("deleted_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete post query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPostNotFound
	}
	return nil
}

// CountSlugsLike counts posts (including soft-deleted ones, which still hold
// their slug) whose slug starts with the given prefix. Used to derive a
// unique slug suffix.
func (r *repository) CountSlugsLike(ctx context.Context, slugPrefix string) (int, error) {
	query, args, err := r.psql.Select("count(*)").
		From("blog_posts").
		Where(squirrel.Like{"slug": slugPrefix + "%"}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count slugs query: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count slugs: %w", err)
	}
	return count, nil
}

func (r *repository) ListTagsForPost(ctx context.Context, postID string) ([]*Tag, error) {
	query, args, err := r.psql.Select("t.id", "t.name", "t.slug", "t.created_at", "t.updated_at").
		From("blog_tags t").
		Join("blog_post_tag pt ON pt.blog_tag_id = t.id").
		Where(squirrel.Eq{"pt.blog_post_id": postID}).
		OrderBy("t.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build post tags query: %w", err)
	}

	var tags []*Tag
	if err := pgxscan.Select(ctx, r.db, &tags, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list post tags: %w", err)
	}
	return tags, nil
}

func (r *repository) CreateView(ctx context.Context, view *View) error {
	query, args, err := r.psql.Insert("blog_views").
		Columns("id", "blog_post_id", "user_id", "ip_address", "user_agent", "created_at").
		Values(view.ID, view.PostID, view.UserID, view.IPAddress, view.UserAgent, view.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create view query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to create view: %w", err)
	}
	return nil
}

func (r *repository) IncrementViewsCount(ctx context.Context, postID string) error {
	query, args, err := r.psql.Update("blog_posts").
		Set("views_count", squirrel.Expr("views_count + 1")).
		Where(squirrel.Eq{"id": postID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build increment views query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to increment views count: %w", err)
	}
	return nil
}
