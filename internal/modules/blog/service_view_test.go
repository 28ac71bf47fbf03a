package blog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackView(t *testing.T) {
	t.Parallel()

	seed := func(env *blogEnv) {
		env.repo.posts["p1"] = &Post{
			ID: "p1", UserID: "tutor", CategoryID: "cat1",
			Title: "Hello", Slug: "hello", Status: StatusPublished,
		}
	}

	t.Run("first view from an IP counts", func(t *testing.T) {
		t.Parallel()
		env := newBlogEnv(t)
		seed(env)

		env.svc.(*service).trackView(context.Background(), "p1", "203.0.113.9", "go-test", nil)

		require.Len(t, env.repo.views, 1)
		assert.Equal(t, "203.0.113.9", env.repo.views[0].IPAddress)
		assert.Equal(t, 1, env.repo.posts["p1"].ViewsCount)
	})

	t.Run("same IP on the same day is counted once", func(t *testing.T) {
		t.Parallel()
		env := newBlogEnv(t)
		seed(env)
		svc := env.svc.(*service)

		svc.trackView(context.Background(), "p1", "203.0.113.9", "go-test", nil)
		svc.trackView(context.Background(), "p1", "203.0.113.9", "go-test", nil)

		assert.Len(t, env.repo.views, 1)
		assert.Equal(t, 1, env.repo.posts["p1"].ViewsCount)
	})

	t.Run("a different IP counts separately", func(t *testing.T) {
		t.Parallel()
		env := newBlogEnv(t)
		seed(env)
		svc := env.svc.(*service)

		svc.trackView(context.Background(), "p1", "203.0.113.9", "go-test", nil)
		svc.trackView(context.Background(), "p1", "198.51.100.7", "go-test", nil)

		assert.Len(t, env.repo.views, 2)
		assert.Equal(t, 2, env.repo.posts["p1"].ViewsCount)
	})

	t.Run("dedup outage drops the view instead of double-counting", func(t *testing.T) {
		t.Parallel()
		env := newBlogEnv(t)
		seed(env)
		env.views.err = errors.New("connection refused")

		env.svc.(*service).trackView(context.Background(), "p1", "203.0.113.9", "go-test", nil)

		assert.Empty(t, env.repo.views)
		assert.Equal(t, 0, env.repo.posts["p1"].ViewsCount)
	})
}
