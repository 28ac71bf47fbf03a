package blog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// uniqueSlug derives a slug from the title, appending a numeric suffix when
// other posts already claimed the base slug.
func (s *service) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := Slugify(title)
	count, err := s.repo.CountSlugsLike(ctx, base)
	if err != nil {
		return "", err
	}
	if count == 0 {
		return base, nil
	}
	return fmt.Sprintf("%s-%d", base, count), nil
}

func (s *service) CreatePost(ctx context.Context, actorID string, in CreatePostInput) (*Post, error) {
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = StatusDraft
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	if _, err := s.repo.FindCategoryByID(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	// Only admins publish directly or feature posts; everyone else's
	// "published" request lands in the review queue.
	featured := in.IsFeatured
	if !actor.IsAdmin() {
		if status == StatusPublished {
			status = StatusPending
		}
		featured = false
	}

	slug, err := s.uniqueSlug(ctx, in.Title)
	if err != nil {
		return nil, ErrInternal.WithCause(err)
	}

	now := time.Now().UTC()
	var publishedAt *time.Time
	if status == StatusPublished {
		publishedAt = &now
	}

	post := &Post{
		ID:              uuid.Must(uuid.NewV7()).String(),
		UserID:          actor.ID,
		CategoryID:      in.CategoryID,
		Title:           in.Title,
		Slug:            slug,
		Excerpt:         in.Excerpt,
		Content:         in.Content,
		MetaTitle:       in.MetaTitle,
		MetaDescription: in.MetaDescription,
		MetaKeywords:    in.MetaKeywords,
		Status:          status,
		IsFeatured:      featured,
		AllowComments:   in.AllowComments,
		PublishedAt:     publishedAt,
		ReadingTime:     ReadingTime(in.Content),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.CreatePost(ctx, post, in.TagIDs); err != nil {
		return nil, ErrInternal.WithCause(err)
	}

	s.logger.Info("blog post created",
		"post_id", post.ID, "author_id", actor.ID, "status", post.Status)
	return post, nil
}

func (s *service) UpdatePost(ctx context.Context, actorID, postID string, in UpdatePostInput) (*Post, error) {
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	post, err := s.repo.FindPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != actor.ID && !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	if in.CategoryID != nil {
		if _, err := s.repo.FindCategoryByID(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
		post.CategoryID = *in.CategoryID
	}
	if in.Title != nil && *in.Title != post.Title {
		post.Title = *in.Title
		slug, err := s.uniqueSlug(ctx, post.Title)
		if err != nil {
			return nil, ErrInternal.WithCause(err)
		}
		post.Slug = slug
	}
	if in.Excerpt != nil {
		post.Excerpt = in.Excerpt
	}
	if in.Content != nil {
		post.Content = *in.Content
		post.ReadingTime = ReadingTime(post.Content)
	}
	if in.MetaTitle != nil {
		post.MetaTitle = in.MetaTitle
	}
	if in.MetaDescription != nil {
		post.MetaDescription = in.MetaDescription
	}
	if in.MetaKeywords != nil {
		post.MetaKeywords = in.MetaKeywords
	}
	if in.AllowComments != nil {
		post.AllowComments = *in.AllowComments
	}
	if in.IsFeatured != nil && actor.IsAdmin() {
		post.IsFeatured = *in.IsFeatured
	}

	now := time.Now().UTC()
	if in.Status != nil {
		status := *in.Status
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
		if status == StatusPublished && !actor.IsAdmin() {
			status = StatusPending
		}
		if status == StatusPublished && post.PublishedAt == nil {
			post.PublishedAt = &now
		}
		post.Status = status
	}
	post.UpdatedAt = now

	if err := s.repo.UpdatePost(ctx, post); err != nil {
		return nil, err
	}
	if in.TagIDs != nil {
		if err := s.repo.SyncPostTags(ctx, post.ID, in.TagIDs); err != nil {
			return nil, ErrInternal.WithCause(err)
		}
	}
	return post, nil
}

func (s *service) DeletePost(ctx context.Context, actorID, postID string) error {
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	return s.repo.SoftDeletePost(ctx, postID)
}

// SubmitPost moves an author's draft into the review queue.
func (s *service) SubmitPost(ctx context.Context, actorID, postID string) error {
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return err
	}
	post, err := s.repo.FindPostByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != actor.ID && !actor.IsAdmin() {
		return ErrForbidden
	}
	if post.Status != StatusDraft {
		return ErrInvalidStatus
	}

	post.Status = StatusPending
	post.UpdatedAt = time.Now().UTC()
	return s.repo.UpdatePost(ctx, post)
}

// ApprovePost publishes a pending post and stamps its publication time.
func (s *service) ApprovePost(ctx context.Context, actorID, postID string) error {
	return s.review(ctx, actorID, postID, StatusPublished)
}

// RejectPost sends a pending post back to its author as a draft.
func (s *service) RejectPost(ctx context.Context, actorID, postID string) error {
	return s.review(ctx, actorID, postID, StatusDraft)
}

func (s *service) review(ctx context.Context, actorID, postID string, to PostStatus) error {
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	post, err := s.repo.FindPostByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.Status != StatusPending {
		return ErrInvalidStatus
	}

	now := time.Now().UTC()
	post.Status = to
	post.UpdatedAt = now
	if to == StatusPublished && post.PublishedAt == nil {
		post.PublishedAt = &now
	}
	if err := s.repo.UpdatePost(ctx, post); err != nil {
		return err
	}

	s.logger.Info("blog post reviewed",
		"post_id", post.ID, "status", post.Status, "reviewer_id", actor.ID)
	return nil
}

func (s *service) FeaturePost(ctx context.Context, actorID, postID string, featured bool) error {
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	post, err := s.repo.FindPostByID(ctx, postID)
	if err != nil {
		return err
	}
	post.IsFeatured = featured
	post.UpdatedAt = time.Now().UTC()
	return s.repo.UpdatePost(ctx, post)
}

func (s *service) ListPublishedPosts(ctx context.Context, filter PostFilter) ([]*PostRow, int64, error) {
	rows, total, err := s.repo.ListPublishedPosts(ctx, filter)
	if err != nil {
		return nil, 0, ErrInternal.WithCause(err)
	}
	return rows, total, nil
}

func (s *service) GetPublishedPost(ctx context.Context, slug, viewerIP, viewerUserAgent string, viewerID *string) (*PostDetail, error) {
	row, err := s.repo.FindPublishedPostBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	tags, err := s.repo.ListTagsForPost(ctx, row.ID)
	if err != nil {
		return nil, ErrInternal.WithCause(err)
	}
	comments, err := s.repo.ListApprovedComments(ctx, row.ID)
	if err != nil {
		return nil, ErrInternal.WithCause(err)
	}

	if viewerIP != "" {
		bg := context.WithoutCancel(ctx)
		go s.trackView(bg, row.ID, viewerIP, viewerUserAgent, viewerID)
	}

	return &PostDetail{Post: row, Tags: tags, Comments: comments}, nil
}

// trackView counts at most one view per post per IP per day. The deduper
// holds the daily key; on dedup failure the view is simply not counted.
func (s *service) trackView(ctx context.Context, postID, ip, userAgent string, viewerID *string) {
	key := fmt.Sprintf("blog:viewed:%s:%s:%s", postID, ip, time.Now().UTC().Format("2006-01-02"))
	first, err := s.views.MarkViewed(ctx, key, 24*time.Hour)
	if err != nil {
		s.logger.Warn("view dedup check failed", "error", err, "post_id", postID)
		return
	}
	if !first {
		return
	}

	var ua *string
	if userAgent != "" {
		ua = &userAgent
	}
	view := &View{
		ID:        uuid.Must(uuid.NewV7()).String(),
		PostID:    postID,
		UserID:    viewerID,
		IPAddress: ip,
		UserAgent: ua,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateView(ctx, view); err != nil {
		s.logger.Warn("failed to record view", "error", err, "post_id", postID)
		return
	}
	if err := s.repo.IncrementViewsCount(ctx, postID); err != nil {
		s.logger.Warn("failed to increment views count", "error", err, "post_id", postID)
	}
}
