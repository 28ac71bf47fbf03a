package blog

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/delordemm1/learnhub-api/internal/middleware"
	"github.com/delordemm1/learnhub-api/internal/ratelimit"
	"github.com/delordemm1/learnhub-api/internal/session"
)

// Handler holds the dependencies for the blog module's HTTP handlers.
type Handler struct {
	service  Service
	logger   *slog.Logger
	sessions session.Provider
	limiter  *ratelimit.Limiter
}

// NewHandler creates a new handler for the blog module.
func NewHandler(service Service, logger *slog.Logger, sessions session.Provider, limiter *ratelimit.Limiter) *Handler {
	return &Handler{
		service:  service,
		logger:   logger,
		sessions: sessions,
		limiter:  limiter,
	}
}

// RegisterRoutes sets up the routing for the blog module.
func (h *Handler) RegisterRoutes(api huma.API) {
	auth := middleware.SessionAuthHuma(h.sessions, h.logger)
	optionalAuth := middleware.OptionalSessionAuthHuma(h.sessions, h.logger)
	throttle := ratelimit.Huma(h.limiter)

	// --- Public Routes ---
	huma.Register(api, huma.Operation{
		OperationID: "list-blog-posts",
		Method:      http.MethodGet,
		Path:        "/blog/posts",
		Summary:     "List published blog posts",
	}, h.ListPostsHandler)

	huma.Register(api, huma.Operation{
		OperationID: "get-blog-post",
		Method:      http.MethodGet,
		Path:        "/blog/posts/{slug}",
		Summary:     "Get a published blog post by slug",
		Middlewares: huma.Middlewares{optionalAuth},
	}, h.GetPostHandler)

	huma.Register(api, huma.Operation{
		OperationID: "list-blog-categories",
		Method:      http.MethodGet,
		Path:        "/blog/categories",
		Summary:     "List blog categories",
	}, h.ListCategoriesHandler)

	huma.Register(api, huma.Operation{
		OperationID: "get-blog-category",
		Method:      http.MethodGet,
		Path:        "/blog/categories/{slug}",
		Summary:     "Get a category and its published posts",
	}, h.GetCategoryHandler)

	huma.Register(api, huma.Operation{
		OperationID: "list-blog-tags",
		Method:      http.MethodGet,
		Path:        "/blog/tags",
		Summary:     "List blog tags",
	}, h.ListTagsHandler)

	huma.Register(api, huma.Operation{
		OperationID: "get-blog-tag",
		Method:      http.MethodGet,
		Path:        "/blog/tags/{slug}",
		Summary:     "Get a tag and its published posts",
	}, h.GetTagHandler)

	huma.Register(api, huma.Operation{
		OperationID:   "create-blog-comment",
		Method:        http.MethodPost,
		Path:          "/blog/posts/{id}/comments",
		Summary:       "Comment on a published post as a user or guest",
		DefaultStatus: http.StatusCreated,
		Middlewares:   huma.Middlewares{optionalAuth, throttle},
	}, h.CreateCommentHandler)

	// --- Author Routes ---
	huma.Register(api, huma.Operation{
		OperationID:   "create-blog-post",
		Method:        http.MethodPost,
		Path:          "/blog/posts",
		Summary:       "Create a blog post",
		DefaultStatus: http.StatusCreated,
		Middlewares:   huma.Middlewares{auth},
	}, h.CreatePostHandler)

	huma.Register(api, huma.Operation{
		OperationID: "update-blog-post",
		Method:      http.MethodPatch,
		Path:        "/blog/posts/{id}",
		Summary:     "Update a blog post",
		Middlewares: huma.Middlewares{auth},
	}, h.UpdatePostHandler)

	huma.Register(api, huma.Operation{
		OperationID: "submit-blog-post",
		Method:      http.MethodPost,
		Path:        "/blog/posts/{id}/submit",
		Summary:     "Submit a draft post for review",
		Middlewares: huma.Middlewares{auth},
	}, h.SubmitPostHandler)

	// --- Admin Routes ---
	huma.Register(api, huma.Operation{
		OperationID: "delete-blog-post",
		Method:      http.MethodDelete,
		Path:        "/admin/blog/posts/{id}",
		Summary:     "Soft-delete a blog post",
		Middlewares: huma.Middlewares{auth},
	}, h.DeletePostHandler)

	huma.Register(api, huma.Operation{
		OperationID: "approve-blog-post",
		Method:      http.MethodPost,
		Path:        "/admin/blog/posts/{id}/approve",
		Summary:     "Publish a pending post",
		Middlewares: huma.Middlewares{auth},
	}, h.ApprovePostHandler)

	huma.Register(api, huma.Operation{
		OperationID: "reject-blog-post",
		Method:      http.MethodPost,
		Path:        "/admin/blog/posts/{id}/reject",
		Summary:     "Send a pending post back to draft",
		Middlewares: huma.Middlewares{auth},
	}, h.RejectPostHandler)

	huma.Register(api, huma.Operation{
		OperationID: "feature-blog-post",
		Method:      http.MethodPost,
		Path:        "/admin/blog/posts/{id}/feature",
		Summary:     "Toggle a post's featured flag",
		Middlewares: huma.Middlewares{auth},
	}, h.FeaturePostHandler)

	huma.Register(api, huma.Operation{
		OperationID:   "create-blog-category",
		Method:        http.MethodPost,
		Path:          "/admin/blog/categories",
		Summary:       "Create a blog category",
		DefaultStatus: http.StatusCreated,
		Middlewares:   huma.Middlewares{auth},
	}, h.CreateCategoryHandler)

	huma.Register(api, huma.Operation{
		OperationID: "update-blog-category",
		Method:      http.MethodPatch,
		Path:        "/admin/blog/categories/{id}",
		Summary:     "Update a blog category",
		Middlewares: huma.Middlewares{auth},
	}, h.UpdateCategoryHandler)

	huma.Register(api, huma.Operation{
		OperationID: "delete-blog-category",
		Method:      http.MethodDelete,
		Path:        "/admin/blog/categories/{id}",
		Summary:     "Delete a blog category",
		Middlewares: huma.Middlewares{auth},
	}, h.DeleteCategoryHandler)

	huma.Register(api, huma.Operation{
		OperationID:   "create-blog-tag",
		Method:        http.MethodPost,
		Path:          "/admin/blog/tags",
		Summary:       "Create a blog tag",
		DefaultStatus: http.StatusCreated,
		Middlewares:   huma.Middlewares{auth},
	}, h.CreateTagHandler)

	huma.Register(api, huma.Operation{
		OperationID: "update-blog-tag",
		Method:      http.MethodPatch,
		Path:        "/admin/blog/tags/{id}",
		Summary:     "Update a blog tag",
		Middlewares: huma.Middlewares{auth},
	}, h.UpdateTagHandler)

	huma.Register(api, huma.Operation{
		OperationID: "delete-blog-tag",
		Method:      http.MethodDelete,
		Path:        "/admin/blog/tags/{id}",
		Summary:     "Delete a blog tag",
		Middlewares: huma.Middlewares{auth},
	}, h.DeleteTagHandler)

	huma.Register(api, huma.Operation{
		OperationID: "moderate-blog-comment",
		Method:      http.MethodPost,
		Path:        "/admin/blog/comments/{id}/moderate",
		Summary:     "Approve or reject a comment",
		Middlewares: huma.Middlewares{auth},
	}, h.ModerateCommentHandler)
}
