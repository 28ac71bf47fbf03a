package blog

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/delordemm1/learnhub-api/internal/modules/user"
)

// fakeUserRepo resolves actors for the blog service. Only FindByID matters
// here; the rest of the user.Repository surface is unused by this module.
type fakeUserRepo struct {
	user.Repository
	users map[string]*user.User
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*user.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, user.ErrNotFound
}

// fakeBlogRepo is an in-memory Repository for service tests.
type fakeBlogRepo struct {
	mu         sync.Mutex
	posts      map[string]*Post
	postTags   map[string][]string
	categories map[string]*Category
	tags       map[string]*Tag
	comments   map[string]*Comment
	views      []*View
}

func newFakeBlogRepo() *fakeBlogRepo {
	return &fakeBlogRepo{
		posts:      make(map[string]*Post),
		postTags:   make(map[string][]string),
		categories: make(map[string]*Category),
		tags:       make(map[string]*Tag),
		comments:   make(map[string]*Comment),
	}
}

func (r *fakeBlogRepo) CreatePost(ctx context.Context, post *Post, tagIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *post
	r.posts[post.ID] = &cp
	if len(tagIDs) > 0 {
		r.postTags[post.ID] = append([]string(nil), tagIDs...)
	}
	return nil
}

func (r *fakeBlogRepo) FindPostByID(ctx context.Context, id string) (*Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok || p.DeletedAt != nil {
		return nil, ErrPostNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeBlogRepo) FindPublishedPostBySlug(ctx context.Context, slug string) (*PostRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.posts {
		if p.Slug == slug && p.Status == StatusPublished && p.DeletedAt == nil {
			return &PostRow{Post: *p}, nil
		}
	}
	return nil, ErrPostNotFound
}

func (r *fakeBlogRepo) ListPublishedPosts(ctx context.Context, filter PostFilter) ([]*PostRow, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var rows []*PostRow
	for _, p := range r.posts {
		if p.Status != StatusPublished || p.DeletedAt != nil {
			continue
		}
		if filter.FeaturedOnly && !p.IsFeatured {
			continue
		}
		if filter.CategorySlug != "" {
			c, ok := r.categories[p.CategoryID]
			if !ok || c.Slug != filter.CategorySlug {
				continue
			}
		}
		if filter.TagSlug != "" && !r.postHasTagSlug(p.ID, filter.TagSlug) {
			continue
		}
		rows = append(rows, &PostRow{Post: *p})
	}
	return rows, int64(len(rows)), nil
}

// postHasTagSlug expects r.mu to be held.
func (r *fakeBlogRepo) postHasTagSlug(postID, slug string) bool {
	for _, id := range r.postTags[postID] {
		if t, ok := r.tags[id]; ok && t.Slug == slug {
			return true
		}
	}
	return false
}

func (r *fakeBlogRepo) UpdatePost(ctx context.Context, post *Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.posts[post.ID]
	if !ok || old.DeletedAt != nil {
		return ErrPostNotFound
	}
	cp := *post
	r.posts[post.ID] = &cp
	return nil
}

func (r *fakeBlogRepo) SyncPostTags(ctx context.Context, postID string, tagIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.postTags[postID] = append([]string(nil), tagIDs...)
	return nil
}

func (r *fakeBlogRepo) SoftDeletePost(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok || p.DeletedAt != nil {
		return ErrPostNotFound
	}
	now := time.Now()
	p.DeletedAt = &now
	return nil
}

func (r *fakeBlogRepo) CountSlugsLike(ctx context.Context, slugPrefix string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, p := range r.posts {
		if strings.HasPrefix(p.Slug, slugPrefix) {
			n++
		}
	}
	return n, nil
}

func (r *fakeBlogRepo) ListTagsForPost(ctx context.Context, postID string) ([]*Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Tag
	for _, id := range r.postTags[postID] {
		if t, ok := r.tags[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeBlogRepo) CreateView(ctx context.Context, view *View) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views = append(r.views, view)
	return nil
}

func (r *fakeBlogRepo) IncrementViewsCount(ctx context.Context, postID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.posts[postID]; ok {
		p.ViewsCount++
	}
	return nil
}

func (r *fakeBlogRepo) CreateCategory(ctx context.Context, category *Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *category
	r.categories[category.ID] = &cp
	return nil
}

func (r *fakeBlogRepo) FindCategoryByID(ctx context.Context, id string) (*Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.categories[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, ErrCategoryNotFound
}

func (r *fakeBlogRepo) FindCategoryBySlug(ctx context.Context, slug string) (*Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.categories {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, ErrCategoryNotFound
}

func (r *fakeBlogRepo) ListCategories(ctx context.Context) ([]*Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Category
	for _, c := range r.categories {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeBlogRepo) UpdateCategory(ctx context.Context, category *Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[category.ID]; !ok {
		return ErrCategoryNotFound
	}
	cp := *category
	r.categories[category.ID] = &cp
	return nil
}

func (r *fakeBlogRepo) DeleteCategory(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[id]; !ok {
		return ErrCategoryNotFound
	}
	delete(r.categories, id)
	return nil
}

func (r *fakeBlogRepo) CreateTag(ctx context.Context, tag *Tag) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *tag
	r.tags[tag.ID] = &cp
	return nil
}

func (r *fakeBlogRepo) FindTagByID(ctx context.Context, id string) (*Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tags[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, ErrTagNotFound
}

func (r *fakeBlogRepo) FindTagBySlug(ctx context.Context, slug string) (*Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tags {
		if t.Slug == slug {
			cp := *t
			return &cp, nil
		}
	}
	return nil, ErrTagNotFound
}

func (r *fakeBlogRepo) ListTags(ctx context.Context) ([]*Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Tag
	for _, t := range r.tags {
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeBlogRepo) UpdateTag(ctx context.Context, tag *Tag) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tags[tag.ID]; !ok {
		return ErrTagNotFound
	}
	cp := *tag
	r.tags[tag.ID] = &cp
	return nil
}

func (r *fakeBlogRepo) DeleteTag(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tags[id]; !ok {
		return ErrTagNotFound
	}
	delete(r.tags, id)
	return nil
}

func (r *fakeBlogRepo) CreateComment(ctx context.Context, comment *Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *comment
	r.comments[comment.ID] = &cp
	return nil
}

func (r *fakeBlogRepo) FindCommentByID(ctx context.Context, id string) (*Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.comments[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, ErrCommentNotFound
}

func (r *fakeBlogRepo) SetCommentStatus(ctx context.Context, id string, status CommentStatus, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[id]
	if !ok {
		return ErrCommentNotFound
	}
	c.Status = status
	c.UpdatedAt = at
	return nil
}

func (r *fakeBlogRepo) ListApprovedComments(ctx context.Context, postID string) ([]*Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Comment
	for _, c := range r.comments {
		if c.PostID == postID && c.Status == CommentApproved {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

// fakeViewDeduper marks keys in memory; setting err simulates a dedup outage.
type fakeViewDeduper struct {
	mu   sync.Mutex
	seen map[string]bool
	err  error
}

func newFakeViewDeduper() *fakeViewDeduper {
	return &fakeViewDeduper{seen: make(map[string]bool)}
}

func (d *fakeViewDeduper) MarkViewed(ctx context.Context, key string, window time.Duration) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return false, d.err
	}
	if d.seen[key] {
		return false, nil
	}
	d.seen[key] = true
	return true, nil
}

type blogEnv struct {
	repo  *fakeBlogRepo
	views *fakeViewDeduper
	svc   Service
}

// newBlogEnv wires a service around in-memory fakes, with one category and
// three users: an admin, a tutor author and a student.
func newBlogEnv(t *testing.T) *blogEnv {
	t.Helper()
	repo := newFakeBlogRepo()
	repo.categories["cat1"] = &Category{ID: "cat1", Name: "Engineering", Slug: "engineering"}
	users := &fakeUserRepo{users: map[string]*user.User{
		"admin": {ID: "admin", Role: user.RoleAdmin},
		"tutor": {ID: "tutor", Role: user.RoleTutor},
		"stud":  {ID: "stud", Role: user.RoleStudent},
	}}
	views := newFakeViewDeduper()
	svc := NewService(Config{
		Repo:   repo,
		Users:  users,
		Views:  views,
		Logger: slog.New(slog.DiscardHandler),
	})
	return &blogEnv{repo: repo, views: views, svc: svc}
}
