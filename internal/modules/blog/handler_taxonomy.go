package blog

import (
	"context"
	"time"

	"github.com/delordemm1/learnhub-api/internal/httpx"
	"github.com/delordemm1/learnhub-api/internal/validation"
)

// CategoryDTO is the public shape of a category.
type CategoryDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toCategoryDTO(c *Category) CategoryDTO {
	return CategoryDTO{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}

type ListCategoriesResponse struct {
	Body struct {
		Categories []CategoryDTO `json:"categories"`
	}
}

func (h *Handler) ListCategoriesHandler(ctx context.Context, input *struct{}) (*ListCategoriesResponse, error) {
	categories, err := h.service.ListCategories(ctx)
	if err != nil {
		return nil, httpx.ToProblem(ctx, err)
	}

	resp := &ListCategoriesResponse{}
	resp.Body.Categories = make([]CategoryDTO, 0, len(categories))
	for _, c := range categories {
		resp.Body.Categories = append(resp.Body.Categories, toCategoryDTO(c))
	}
	return resp, nil
}

type GetCategoryRequest struct {
	Slug string `path:"slug"`
	Page int    `query:"page" doc:"1-based page number"`
}

type GetCategoryResponse struct {
	Body struct {
		Category CategoryDTO `json:"category"`
		Posts    []PostDTO   `json:"posts"`
		Total    int64       `json:"total"`
		Page     int         `json:"page"`
		PerPage  int         `json:"perPage"`
	}
}

func (h *Handler) GetCategoryHandler(ctx context.Context, input *GetCategoryRequest) (*GetCategoryResponse, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	category, rows, total, err := h.service.GetCategoryBySlug(ctx, input.Slug, page)
	if err != nil {
		return nil, httpx.ToProblem(ctx, err)
	}

	resp := &GetCategoryResponse{}
	resp.Body.Category = toCategoryDTO(category)
	resp.Body.Posts = toListingDTOs(rows)
	resp.Body.Total = total
	resp.Body.Page = page
	resp.Body.PerPage = 10
	return resp, nil
}

type CategoryBody struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Description *string `json:"description"`
}

type CreateCategoryRequest struct {
	Body CategoryBody
}

type CategoryResponse struct {
	Body struct {
		Message  string      `json:"message"`
		Category CategoryDTO `json:"category"`
	}
}

func (h *Handler) CreateCategoryHandler(ctx context.Context, input *CreateCategoryRequest) (*CategoryResponse, error) {
	id, err := actorID(ctx)
	if err != nil {
		return nil, err
	}
	if verr := validation.ValidateStruct(&input.Body); verr != nil {
		return nil, httpx.ToProblem(ctx, verr)
	}

	category, err := h.service.CreateCategory(ctx, id, input.Body.Name, input.Body.Description)
	if err != nil {
		return nil, httpx.ToProblem(ctx, err)
	}

	resp := &CategoryResponse{}
	resp.Body.Message = "Category created."
	resp.Body.Category = toCategoryDTO(category)
	return resp, nil
}

type UpdateCategoryRequest struct {
	ID   string `path:"id"`
	Body CategoryBody
}

func (h *Handler) UpdateCategoryHandler(ctx context.Context, input *UpdateCategoryRequest) (*CategoryResponse, error) {
	id, err := actorID(ctx)
	if err != nil {
		return nil, err
	}
	if verr := validation.ValidateStruct(&input.Body); verr != nil {
		return nil, httpx.ToProblem(ctx, verr)
	}

	category, err := h.service.UpdateCategory(ctx, id, input.ID, input.Body.Name, input.Body.Description)
	if err != nil {
		return nil, httpx.ToProblem(ctx, err)
	}

	resp := &CategoryResponse{}
	resp.Body.Message = "Category updated."
	resp.Body.Category = toCategoryDTO(category)
	return resp, nil
}

type CategoryIDRequest struct {
	ID string `path:"id"`
}

func (h *Handler) DeleteCategoryHandler(ctx context.Context, input *CategoryIDRequest) (*MessageResponse, error) {
	id, err := actorID(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.service.DeleteCategory(ctx, id, input.ID); err != nil {
		return nil, httpx.ToProblem(ctx, err)
	}
	resp := &MessageResponse{}
	resp.Body.Message = "Category deleted."
	return resp, nil
}

type ListTagsResponse struct {
	Body struct {
		Tags []TagDTO `json:"tags"`
	}
}

func (h *Handler) ListTagsHandler(ctx context.Context, input *struct{}) (*ListTagsResponse, error) {
	tags, err := h.service.ListTags(ctx)
	if err != nil {
		return nil, httpx.ToProblem(ctx, err)
	}

	resp := &ListTagsResponse{}
	resp.Body.Tags = toTagDTOs(tags)
	return resp, nil
}

type GetTagRequest struct {
	Slug string `path:"slug"`
	Page int    `query:"page" doc:"1-based page number"`
}

type GetTagResponse struct {
	Body struct {
		Tag     TagDTO    `json:"tag"`
		Posts   []PostDTO `json:"posts"`
		Total   int64     `json:"total"`
		Page    int       `json:"page"`
		PerPage int       `json:"perPage"`
	}
}

func (h *Handler) GetTagHandler(ctx context.Context, input *GetTagRequest) (*GetTagResponse, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	tag, rows, total, err := h.service.GetTagBySlug(ctx, input.Slug, page)
	if err != nil {
		return nil, httpx.ToProblem(ctx, err)
	}

	resp := &GetTagResponse{}
	resp.Body.Tag = TagDTO{ID: tag.ID, Name: tag.Name, Slug: tag.Slug}
	resp.Body.Posts = toListingDTOs(rows)
	resp.Body.Total = total
	resp.Body.Page = page
	resp.Body.PerPage = 10
	return resp, nil
}

type TagBody struct {
	Name string `json:"name" validate:"required,min=2,max=50"`
}

type CreateTagRequest struct {
	Body TagBody
}

type TagResponse struct {
	Body struct {
		Message string `json:"message"`
		Tag     TagDTO `json:"tag"`
	}
}

func (h *Handler) CreateTagHandler(ctx context.Context, input *CreateTagRequest) (*TagResponse, error) {
	id, err := actorID(ctx)
	if err != nil {
		return nil, err
	}
	if verr := validation.ValidateStruct(&input.Body); verr != nil {
		return nil, httpx.ToProblem(ctx, verr)
	}

	tag, err := h.service.CreateTag(ctx, id, input.Body.Name)
	if err != nil {
		return nil, httpx.ToProblem(ctx, err)
	}

	resp := &TagResponse{}
	resp.Body.Message = "Tag created."
	resp.Body.Tag = TagDTO{ID: tag.ID, Name: tag.Name, Slug: tag.Slug}
	return resp, nil
}

type UpdateTagRequest struct {
	ID   string `path:"id"`
	Body TagBody
}

func (h *Handler) UpdateTagHandler(ctx context.Context, input *UpdateTagRequest) (*TagResponse, error) {
	id, err := actorID(ctx)
	if err != nil {
		return nil, err
	}
	if verr := validation.ValidateStruct(&input.Body); verr != nil {
		return nil, httpx.ToProblem(ctx, verr)
	}

	tag, err := h.service.UpdateTag(ctx, id, input.ID, input.Body.Name)
	if err != nil {
		return nil, httpx.ToProblem(ctx, err)
	}

	resp := &TagResponse{}
	resp.Body.Message = "Tag updated."
	resp.Body.Tag = TagDTO{ID: tag.ID, Name: tag.Name, Slug: tag.Slug}
	return resp, nil
}

type TagIDRequest struct {
	ID string `path:"id"`
}

func (h *Handler) DeleteTagHandler(ctx context.Context, input *TagIDRequest) (*MessageResponse, error) {
	id, err := actorID(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.service.DeleteTag(ctx, id, input.ID); err != nil {
		return nil, httpx.ToProblem(ctx, err)
	}
	resp := &MessageResponse{}
	resp.Body.Message = "Tag deleted."
	return resp, nil
}
