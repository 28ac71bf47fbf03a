package blog

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/delordemm1/learnhub-api/internal/contextx"
	"github.com/delordemm1/learnhub-api/internal/httpx"
	"github.com/delordemm1/learnhub-api/internal/validation"
)

// --- DTOs ---

// PostDTO is the public shape of a post in listings and detail responses.
type PostDTO struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Excerpt       *string    `json:"excerpt"`
	Content       string     `json:"content,omitempty"`
	Status        string     `json:"status"`
	IsFeatured    bool       `json:"isFeatured"`
	AllowComments bool       `json:"allowComments"`
	PublishedAt   *time.Time `json:"publishedAt"`
	ReadingTime   int        `json:"readingTime"`
	ViewsCount    int        `json:"viewsCount"`
	AuthorName    string     `json:"authorName,omitempty"`
	CategoryName  string     `json:"categoryName,omitempty"`
	CategorySlug  string     `json:"categorySlug,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

func toPostDTO(p *Post) PostDTO {
	return PostDTO{
		ID:            p.ID,
		Title:         p.Title,
		Slug:          p.Slug,
		Excerpt:       p.Excerpt,
		Content:       p.Content,
		Status:        string(p.Status),
		IsFeatured:    p.IsFeatured,
		AllowComments: p.AllowComments,
		PublishedAt:   p.PublishedAt,
		ReadingTime:   p.ReadingTime,
		ViewsCount:    p.ViewsCount,
		CreatedAt:     p.CreatedAt,
	}
}

func toPostRowDTO(row *PostRow) PostDTO {
	dto := toPostDTO(&row.Post)
	dto.AuthorName = row.AuthorName
	dto.CategoryName = row.CategoryName
	dto.CategorySlug = row.CategorySlug
	return dto
}

func toListingDTOs(rows []*PostRow) []PostDTO {
	out := make([]PostDTO, 0, len(rows))
	for _, row := range rows {
		dto := toPostRowDTO(row)
		dto.Content = "" // listings carry the excerpt only
		out = append(out, dto)
	}
	return out
}

// TagDTO is the public shape of a tag.
type TagDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func toTagDTOs(tags []*Tag) []TagDTO {
	out := make([]TagDTO, 0, len(tags))
	for _, t := range tags {
		out = append(out, TagDTO{ID: t.ID, Name: t.Name, Slug: t.Slug})
	}
	return out
}

// actorID pulls the authenticated user ID injected by the session middleware.
func actorID(ctx context.Context) (string, error) {
	id, ok := ctx.Value(contextx.UserIDKey).(string)
	if !ok || id == "" {
		return "", huma.Error401Unauthorized("invalid authentication context")
	}
	return id, nil
}

// optionalActorID returns the user ID when the request was authenticated.
func optionalActorID(ctx context.Context) *string {
	if id, ok := ctx.Value(contextx.UserIDKey).(string); ok && id != "" {
		return &id
	}
	return nil
}

// --- List / detail ---

type ListPostsRequest struct {
	Category string `query:"category" doc:"Filter by category slug"`
	Tag      string `query:"tag" doc:"Filter by tag slug"`
	Featured bool   `query:"featured" doc:"Only featured posts"`
	Page     int    `query:"page" doc:"1-based page number"`
}

type ListPostsResponse struct {
	Body struct {
		Posts   []PostDTO `json:"posts"`
		Total   int64     `json:"total"`
		Page    int       `json:"page"`
		PerPage int       `json:"perPage"`
	}
}

func (h *Handler) ListPostsHandler(ctx context.Context, input *ListPostsRequest) (*ListPostsResponse, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	filter := PostFilter{
		CategorySlug: input.Category,
		TagSlug:      input.Tag,
		FeaturedOnly: input.Featured,
		Page:         page,
		PerPage:      10,
	}

	rows, total, err := h.service.ListPublishedPosts(ctx, filter)
	if err != nil {
		return nil, httpx.ToProblem(ctx, err)
	}

	resp := &ListPostsResponse{}
	resp.Body.Posts = toListingDTOs(rows)
	resp.Body.Total = total
	resp.Body.Page = page
	resp.Body.PerPage = filter.PerPage
	return resp, nil
}

type GetPostRequest struct {
	Slug      string `path:"slug"`
	UserAgent string `header:"User-Agent"`
}

type GetPostResponse struct {
	Body struct {
		Post     PostDTO      `json:"post"`
		Tags     []TagDTO     `json:"tags"`
		Comments []CommentDTO `json:"comments"`
	}
}

func (h *Handler) GetPostHandler(ctx context.Context, input *GetPostRequest) (*GetPostResponse, error) {
	detail, err := h.service.GetPublishedPost(ctx, input.Slug, httpx.ClientIP(ctx), input.UserAgent, optionalActorID(ctx))
	if err != nil {
		return nil, httpx.ToProblem(ctx, err)
	}

	resp := &GetPostResponse{}
	resp.Body.Post = toPostRowDTO(detail.Post)
	resp.Body.Tags = toTagDTOs(detail.Tags)
	resp.Body.Comments = toCommentDTOs(detail.Comments)
	return resp, nil
}

// --- Author operations ---

type CreatePostRequest struct {
	Body struct {
		CategoryID      string   `json:"category_id" validate:"required,uuid"`
		Title           string   `json:"title" validate:"required,min=3,max=255"`
		Excerpt         *string  `json:"excerpt"`
		Content         string   `json:"content" validate:"required"`
		MetaTitle       *string  `json:"meta_title"`
		MetaDescription *string  `json:"meta_description"`
		MetaKeywords    *string  `json:"meta_keywords"`
		Status          string   `json:"status" validate:"omitempty,oneof=draft pending published"`
		IsFeatured      bool     `json:"is_featured"`
		AllowComments   *bool    `json:"allow_comments"`
		TagIDs          []string `json:"tag_ids" validate:"omitempty,dive,uuid"`
	}
}

type PostResponse struct {
	Body struct {
		Message string  `json:"message"`
		Post    PostDTO `json:"post"`
	}
}

func (h *Handler) CreatePostHandler(ctx context.Context, input *CreatePostRequest) (*PostResponse, error) {
	id, err := actorID(ctx)
	if err != nil {
		return nil, err
	}
	if verr := validation.ValidateStruct(&input.Body); verr != nil {
		return nil, httpx.ToProblem(ctx, verr)
	}

	allowComments := true
	if input.Body.AllowComments != nil {
		allowComments = *input.Body.AllowComments
	}

	post, err := h.service.CreatePost(ctx, id, CreatePostInput{
		CategoryID:      input.Body.CategoryID,
		Title:           input.Body.Title,
		Excerpt:         input.Body.Excerpt,
		Content:         input.Body.Content,
		MetaTitle:       input.Body.MetaTitle,
		MetaDescription: input.Body.MetaDescription,
		MetaKeywords:    input.Body.MetaKeywords,
		Status:          PostStatus(input.Body.Status),
		IsFeatured:      input.Body.IsFeatured,
		AllowComments:   allowComments,
		TagIDs:          input.Body.TagIDs,
	})
	if err != nil {
		h.logger.Warn("post creation failed", "error", err)
		return nil, httpx.ToProblem(ctx, err)
	}

	resp := &PostResponse{}
	resp.Body.Message = "Post created."
	resp.Body.Post = toPostDTO(post)
	return resp, nil
}

type UpdatePostRequest struct {
	ID   string `path:"id"`
	Body struct {
		CategoryID      *string  `json:"category_id" validate:"omitempty,uuid"`
		Title           *string  `json:"title" validate:"omitempty,min=3,max=255"`
		Excerpt         *string  `json:"excerpt"`
		Content         *string  `json:"content"`
		MetaTitle       *string  `json:"meta_title"`
		MetaDescription *string  `json:"meta_description"`
		MetaKeywords    *string  `json:"meta_keywords"`
		Status          *string  `json:"status" validate:"omitempty,oneof=draft pending published"`
		IsFeatured      *bool    `json:"is_featured"`
		AllowComments   *bool    `json:"allow_comments"`
		TagIDs          []string `json:"tag_ids" validate:"omitempty,dive,uuid"`
	}
}

func (h *Handler) UpdatePostHandler(ctx context.Context, input *UpdatePostRequest) (*PostResponse, error) {
	id, err := actorID(ctx)
	if err != nil {
		return nil, err
	}
	if verr := validation.ValidateStruct(&input.Body); verr != nil {
		return nil, httpx.ToProblem(ctx, verr)
	}

	var status *PostStatus
	if input.Body.Status != nil {
		st := PostStatus(*input.Body.Status)
		status = &st
	}

	post, err := h.service.UpdatePost(ctx, id, input.ID, UpdatePostInput{
		CategoryID:      input.Body.CategoryID,
		Title:           input.Body.Title,
		Excerpt:         input.Body.Excerpt,
		Content:         input.Body.Content,
		MetaTitle:       input.Body.MetaTitle,
		MetaDescription: input.Body.MetaDescription,
		MetaKeywords:    input.Body.MetaKeywords,
		Status:          status,
		IsFeatured:      input.Body.IsFeatured,
		AllowComments:   input.Body.AllowComments,
		TagIDs:          input.Body.TagIDs,
	})
	if err != nil {
		h.logger.Warn("post update failed", "error", err, "post_id", input.ID)
		return nil, httpx.ToProblem(ctx, err)
	}

	resp := &PostResponse{}
	resp.Body.Message = "Post updated."
	resp.Body.Post = toPostDTO(post)
	return resp, nil
}

type PostIDRequest struct {
	ID string `path:"id"`
}

type MessageResponse struct {
	Body struct {
		Message string `json:"message"`
	}
}

func (h *Handler) SubmitPostHandler(ctx context.Context, input *PostIDRequest) (*MessageResponse, error) {
	id, err := actorID(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.service.SubmitPost(ctx, id, input.ID); err != nil {
		return nil, httpx.ToProblem(ctx, err)
	}
	resp := &MessageResponse{}
	resp.Body.Message = "Post submitted for review."
	return resp, nil
}

func (h *Handler) DeletePostHandler(ctx context.Context, input *PostIDRequest) (*MessageResponse, error) {
	id, err := actorID(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.service.DeletePost(ctx, id, input.ID); err != nil {
		return nil, httpx.ToProblem(ctx, err)
	}
	resp := &MessageResponse{}
	resp.Body.Message = "Post deleted."
	return resp, nil
}

func (h *Handler) ApprovePostHandler(ctx context.Context, input *PostIDRequest) (*MessageResponse, error) {
	id, err := actorID(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.service.ApprovePost(ctx, id, input.ID); err != nil {
		return nil, httpx.ToProblem(ctx, err)
	}
	resp := &MessageResponse{}
	resp.Body.Message = "Post published."
	return resp, nil
}

func (h *Handler) RejectPostHandler(ctx context.Context, input *PostIDRequest) (*MessageResponse, error) {
	id, err := actorID(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.service.RejectPost(ctx, id, input.ID); err != nil {
		return nil, httpx.ToProblem(ctx, err)
	}
	resp := &MessageResponse{}
	resp.Body.Message = "Post returned to draft."
	return resp, nil
}

type FeaturePostRequest struct {
	ID   string `path:"id"`
	Body struct {
		Featured bool `json:"featured"`
	}
}

func (h *Handler) FeaturePostHandler(ctx context.Context, input *FeaturePostRequest) (*MessageResponse, error) {
	id, err := actorID(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.service.FeaturePost(ctx, id, input.ID, input.Body.Featured); err != nil {
		return nil, httpx.ToProblem(ctx, err)
	}
	resp := &MessageResponse{}
	resp.Body.Message = "Post feature flag updated."
	return resp, nil
}
