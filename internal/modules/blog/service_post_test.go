package blog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost(t *testing.T) {
	t.Parallel()

	base := CreatePostInput{
		CategoryID:    "cat1",
		Title:         "Intro to Goroutines",
		Content:       words(400),
		AllowComments: true,
	}

	t.Run("derives slug and reading time", func(t *testing.T) {
		t.Parallel()
		env := newBlogEnv(t)

		post, err := env.svc.CreatePost(context.Background(), "tutor", base)
		require.NoError(t, err)

		assert.Equal(t, "intro-to-goroutines", post.Slug)
		assert.Equal(t, 2, post.ReadingTime)
		assert.Equal(t, StatusDraft, post.Status)
		assert.Nil(t, post.PublishedAt)
	})

	t.Run("duplicate titles get a numeric slug suffix", func(t *testing.T) {
		t.Parallel()
		env := newBlogEnv(t)

		first, err := env.svc.CreatePost(context.Background(), "tutor", base)
		require.NoError(t, err)
		second, err := env.svc.CreatePost(context.Background(), "tutor", base)
		require.NoError(t, err)

		assert.Equal(t, "intro-to-goroutines", first.Slug)
		assert.Equal(t, "intro-to-goroutines-1", second.Slug)
	})

	t.Run("non-admin publish request lands in review", func(t *testing.T) {
		t.Parallel()
		env := newBlogEnv(t)

		in := base
		in.Status = StatusPublished
		in.IsFeatured = true

		post, err := env.svc.CreatePost(context.Background(), "tutor", in)
		require.NoError(t, err)
		assert.Equal(t, StatusPending, post.Status)
		assert.False(t, post.IsFeatured, "only admins feature posts")
		assert.Nil(t, post.PublishedAt)
	})

	t.Run("admin publishes directly", func(t *testing.T) {
		t.Parallel()
		env := newBlogEnv(t)

		in := base
		in.Status = StatusPublished
		in.IsFeatured = true

		post, err := env.svc.CreatePost(context.Background(), "admin", in)
		require.NoError(t, err)
		assert.Equal(t, StatusPublished, post.Status)
		assert.True(t, post.IsFeatured)
		require.NotNil(t, post.PublishedAt)
	})

	t.Run("unknown category", func(t *testing.T) {
		t.Parallel()
		env := newBlogEnv(t)

		in := base
		in.CategoryID = "nope"
		_, err := env.svc.CreatePost(context.Background(), "tutor", in)
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})
}

func TestReviewWorkflow(t *testing.T) {
	t.Parallel()

	submit := func(t *testing.T, env *blogEnv) *Post {
		t.Helper()
		post, err := env.svc.CreatePost(context.Background(), "tutor", CreatePostInput{
			CategoryID: "cat1", Title: "Draft", Content: "words here", AllowComments: true,
		})
		require.NoError(t, err)
		require.NoError(t, env.svc.SubmitPost(context.Background(), "tutor", post.ID))
		return post
	}

	t.Run("submit moves draft to pending", func(t *testing.T) {
		t.Parallel()
		env := newBlogEnv(t)
		post := submit(t, env)

		got, err := env.repo.FindPostByID(context.Background(), post.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusPending, got.Status)
	})

	t.Run("submit is only valid from draft", func(t *testing.T) {
		t.Parallel()
		env := newBlogEnv(t)
		post := submit(t, env)

		err := env.svc.SubmitPost(context.Background(), "tutor", post.ID)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("admin approval publishes and stamps published_at", func(t *testing.T) {
		t.Parallel()
		env := newBlogEnv(t)
		post := submit(t, env)

		require.NoError(t, env.svc.ApprovePost(context.Background(), "admin", post.ID))

		got, err := env.repo.FindPostByID(context.Background(), post.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusPublished, got.Status)
		require.NotNil(t, got.PublishedAt)
	})

	t.Run("admin rejection returns post to draft", func(t *testing.T) {
		t.Parallel()
		env := newBlogEnv(t)
		post := submit(t, env)

		require.NoError(t, env.svc.RejectPost(context.Background(), "admin", post.ID))

		got, err := env.repo.FindPostByID(context.Background(), post.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusDraft, got.Status)
		assert.Nil(t, got.PublishedAt)
	})

	t.Run("non-admin cannot review", func(t *testing.T) {
		t.Parallel()
		env := newBlogEnv(t)
		post := submit(t, env)

		assert.ErrorIs(t, env.svc.ApprovePost(context.Background(), "stud", post.ID), ErrForbidden)
		assert.ErrorIs(t, env.svc.RejectPost(context.Background(), "tutor", post.ID), ErrForbidden)
	})
}

func TestUpdateAndDeletePost(t *testing.T) {
	t.Parallel()

	create := func(t *testing.T, env *blogEnv) *Post {
		t.Helper()
		post, err := env.svc.CreatePost(context.Background(), "tutor", CreatePostInput{
			CategoryID: "cat1", Title: "Original", Content: "short content", AllowComments: true,
		})
		require.NoError(t, err)
		return post
	}

	t.Run("author edits own post, slug follows the title", func(t *testing.T) {
		t.Parallel()
		env := newBlogEnv(t)
		post := create(t, env)

		title := "Brand New Title"
		got, err := env.svc.UpdatePost(context.Background(), "tutor", post.ID, UpdatePostInput{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "brand-new-title", got.Slug)
	})

	t.Run("stranger cannot edit", func(t *testing.T) {
		t.Parallel()
		env := newBlogEnv(t)
		post := create(t, env)

		title := "Hijacked"
		_, err := env.svc.UpdatePost(context.Background(), "stud", post.ID, UpdatePostInput{Title: &title})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("only admins delete, and deletion hides the post", func(t *testing.T) {
		t.Parallel()
		env := newBlogEnv(t)
		post := create(t, env)

		assert.ErrorIs(t, env.svc.DeletePost(context.Background(), "tutor", post.ID), ErrForbidden)
		require.NoError(t, env.svc.DeletePost(context.Background(), "admin", post.ID))

		_, err := env.repo.FindPostByID(context.Background(), post.ID)
		assert.ErrorIs(t, err, ErrPostNotFound)
	})
}

func TestComments(t *testing.T) {
	t.Parallel()

	published := func(t *testing.T, env *blogEnv, allowComments bool) *Post {
		t.Helper()
		post, err := env.svc.CreatePost(context.Background(), "admin", CreatePostInput{
			CategoryID: "cat1", Title: "Published", Content: "content",
			Status: StatusPublished, AllowComments: allowComments,
		})
		require.NoError(t, err)
		return post
	}

	t.Run("new comments start pending", func(t *testing.T) {
		t.Parallel()
		env := newBlogEnv(t)
		post := published(t, env, true)

		name, email := "Guest", "guest@example.com"
		c, err := env.svc.CreateComment(context.Background(), CreateCommentInput{
			PostID: post.ID, GuestName: &name, GuestEmail: &email, Content: "nice post",
		})
		require.NoError(t, err)
		assert.Equal(t, CommentPending, c.Status)

		approved, err := env.repo.ListApprovedComments(context.Background(), post.ID)
		require.NoError(t, err)
		assert.Empty(t, approved, "pending comments are not public")
	})

	t.Run("moderation approves a comment", func(t *testing.T) {
		t.Parallel()
		env := newBlogEnv(t)
		post := published(t, env, true)

		userID := "stud"
		c, err := env.svc.CreateComment(context.Background(), CreateCommentInput{
			PostID: post.ID, UserID: &userID, Content: "first!",
		})
		require.NoError(t, err)

		assert.ErrorIs(t, env.svc.ModerateComment(context.Background(), "tutor", c.ID, CommentApproved), ErrForbidden)
		require.NoError(t, env.svc.ModerateComment(context.Background(), "admin", c.ID, CommentApproved))

		approved, err := env.repo.ListApprovedComments(context.Background(), post.ID)
		require.NoError(t, err)
		assert.Len(t, approved, 1)
	})

	t.Run("comments disabled", func(t *testing.T) {
		t.Parallel()
		env := newBlogEnv(t)
		post := published(t, env, false)

		userID := "stud"
		_, err := env.svc.CreateComment(context.Background(), CreateCommentInput{
			PostID: post.ID, UserID: &userID, Content: "hello",
		})
		assert.ErrorIs(t, err, ErrCommentsDisabled)
	})

	t.Run("reply must target the same post", func(t *testing.T) {
		t.Parallel()
		env := newBlogEnv(t)
		postA := published(t, env, true)
		postB := published(t, env, true)

		userID := "stud"
		parent, err := env.svc.CreateComment(context.Background(), CreateCommentInput{
			PostID: postA.ID, UserID: &userID, Content: "root",
		})
		require.NoError(t, err)

		_, err = env.svc.CreateComment(context.Background(), CreateCommentInput{
			PostID: postB.ID, UserID: &userID, ParentID: &parent.ID, Content: "cross-post reply",
		})
		assert.ErrorIs(t, err, ErrCommentNotFound)
	})
}
