package blog

import (
	"context"
	"time"

	"github.com/google/uuid"
)

func (s *service) CreateCategory(ctx context.Context, actorID, name string, description *string) (*Category, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	category := &Category{
		ID:          uuid.Must(uuid.NewV7()).String(),
		Name:        name,
		Slug:        Slugify(name),
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, ErrInternal.WithCause(err)
	}
	return category, nil
}

func (s *service) UpdateCategory(ctx context.Context, actorID, id, name string, description *string) (*Category, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	category, err := s.repo.FindCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != category.Name {
		category.Name = name
		category.Slug = Slugify(name)
	}
	category.Description = description
	category.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *service) DeleteCategory(ctx context.Context, actorID, id string) error {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}
	return s.repo.DeleteCategory(ctx, id)
}

func (s *service) ListCategories(ctx context.Context) ([]*Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, ErrInternal.WithCause(err)
	}
	return categories, nil
}

// GetCategoryBySlug returns a category along with a page of its published posts.
func (s *service) GetCategoryBySlug(ctx context.Context, slug string, page int) (*Category, []*PostRow, int64, error) {
	category, err := s.repo.FindCategoryBySlug(ctx, slug)
	if err != nil {
		return nil, nil, 0, err
	}
	rows, total, err := s.repo.ListPublishedPosts(ctx, PostFilter{CategorySlug: slug, Page: page, PerPage: 10})
	if err != nil {
		return nil, nil, 0, ErrInternal.WithCause(err)
	}
	return category, rows, total, nil
}

func (s *service) CreateTag(ctx context.Context, actorID, name string) (*Tag, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	tag := &Tag{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Name:      name,
		Slug:      Slugify(name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateTag(ctx, tag); err != nil {
		return nil, ErrInternal.WithCause(err)
	}
	return tag, nil
}

func (s *service) UpdateTag(ctx context.Context, actorID, id, name string) (*Tag, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	tag, err := s.repo.FindTagByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != tag.Name {
		tag.Name = name
		tag.Slug = Slugify(name)
	}
	tag.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateTag(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *service) DeleteTag(ctx context.Context, actorID, id string) error {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}
	return s.repo.DeleteTag(ctx, id)
}

func (s *service) ListTags(ctx context.Context) ([]*Tag, error) {
	tags, err := s.repo.ListTags(ctx)
	if err != nil {
		return nil, ErrInternal.WithCause(err)
	}
	return tags, nil
}

// GetTagBySlug returns a tag along with a page of its published posts.
func (s *service) GetTagBySlug(ctx context.Context, slug string, page int) (*Tag, []*PostRow, int64, error) {
	tag, err := s.repo.FindTagBySlug(ctx, slug)
	if err != nil {
		return nil, nil, 0, err
	}
	rows, total, err := s.repo.ListPublishedPosts(ctx, PostFilter{TagSlug: slug, Page: page, PerPage: 10})
	if err != nil {
		return nil, nil, 0, ErrInternal.WithCause(err)
	}
	return tag, rows, total, nil
}

func (s *service) requireAdmin(ctx context.Context, actorID string) error {
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	return nil
}
