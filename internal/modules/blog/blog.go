package blog

import (
	"time"
)

// PostStatus is the editorial state of a post. Drafts are private to their
// author, pending posts await admin review, published posts are public once
// published_at passes.
type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPending   PostStatus = "pending"
	StatusPublished PostStatus = "published"
)

func (s PostStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusPublished:
		return true
	}
	return false
}

// CommentStatus is the moderation state of a comment.
type CommentStatus string

const (
	CommentPending  CommentStatus = "pending"
	CommentApproved CommentStatus = "approved"
	CommentRejected CommentStatus = "rejected"
)

// Post is a blog post record. Soft-deleted posts keep their row with
// deleted_at set and disappear from every query.
type Post struct {
	ID              string     `db:"id"`
	UserID          string     `db:"user_id"`
	CategoryID      string     `db:"category_id"`
	Title           string     `db:"title"`
	Slug            string     `db:"slug"`
	Excerpt         *string    `db:"excerpt"`
	Content         string     `db:"content"`
	MetaTitle       *string    `db:"meta_title"`
	MetaDescription *string    `db:"meta_description"`
	MetaKeywords    *string    `db:"meta_keywords"`
	Status          PostStatus `db:"status"`
	IsFeatured      bool       `db:"is_featured"`
	AllowComments   bool       `db:"allow_comments"`
	PublishedAt     *time.Time `db:"published_at"`
	ReadingTime     int        `db:"reading_time"`
	ViewsCount      int        `db:"views_count"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
	DeletedAt       *time.Time `db:"deleted_at"`
}

// Category groups posts. Slug is unique.
type Category struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Slug        string    `db:"slug"`
	Description *string   `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// Tag labels posts through the blog_post_tag join table. Slug is unique.
type Tag struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Slug      string    `db:"slug"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Comment is a reader comment, from a registered user or a guest. Guest
// comments carry name and email inline; threaded replies reference a parent.
type Comment struct {
	ID         string        `db:"id"`
	PostID     string        `db:"blog_post_id"`
	UserID     *string       `db:"user_id"`
	ParentID   *string       `db:"parent_id"`
	GuestName  *string       `db:"guest_name"`
	GuestEmail *string       `db:"guest_email"`
	Content    string        `db:"content"`
	Status     CommentStatus `db:"status"`
	CreatedAt  time.Time     `db:"created_at"`
	UpdatedAt  time.Time     `db:"updated_at"`
}

// View is one unique daily view of a post from one IP.
type View struct {
	ID        string    `db:"id"`
	PostID    string    `db:"blog_post_id"`
	UserID    *string   `db:"user_id"`
	IPAddress string    `db:"ip_address"`
	UserAgent *string   `db:"user_agent"`
	CreatedAt time.Time `db:"created_at"`
}

// PostRow is a post joined with its author and category names for listings.
type PostRow struct {
	Post
	AuthorName   string `db:"author_name"`
	CategoryName string `db:"category_name"`
	CategorySlug string `db:"category_slug"`
}
