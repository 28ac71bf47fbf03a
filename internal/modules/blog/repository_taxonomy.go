package blog

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
)

func (r *repository) CreateCategory(ctx context.Context, category *Category) error {
	query, args, err := r.psql.Insert("blog_categories").
		Columns("id", "name", "slug", "description", "created_at", "updated_at").
		Values(category.ID, category.Name, category.Slug, category.Description,
			category.CreatedAt, category.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create category query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *repository) FindCategoryByID(ctx context.Context, id string) (*Category, error) {
	return r.findCategory(ctx, squirrel.Eq{"id": id})
}

func (r *repository) FindCategoryBySlug(ctx context.Context, slug string) (*Category, error) {
	return r.findCategory(ctx, squirrel.Eq{"slug": slug})
}

func (r *repository) findCategory(ctx context.Context, pred squirrel.Eq) (*Category, error) {
	query, args, err := r.psql.Select("id", "name", "slug", "description", "created_at", "updated_at").
		From("blog_categories").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build find category query: %w", err)
	}

	var category Category
	if err := pgxscan.Get(ctx, r.db, &category, query, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return &category, nil
}

func (r *repository) ListCategories(ctx context.Context) ([]*Category, error) {
	query, args, err := r.psql.Select("id", "name", "slug", "description", "created_at", "updated_at").
		From("blog_categories").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list categories query: %w", err)
	}

	var categories []*Category
	if err := pgxscan.Select(ctx, r.db, &categories, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (r *repository) UpdateCategory(ctx context.Context, category *Category) error {
	query, args, err := r.psql.Update("blog_categories").
		Set("name", category.Name).
		Set("slug", category.Slug).
		Set("description", category.Description).
		Set("updated_at", category.UpdatedAt).
		Where(squirrel.Eq{"id": category.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update category query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *repository) DeleteCategory(ctx context.Context, id string) error {
	query, args, err := r.psql.Delete("blog_categories").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete category query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *repository) CreateTag(ctx context.Context, t *Tag) error {
	query, args, err := r.psql.Insert("blog_tags").
		Columns("id", "name", "slug", "created_at", "updated_at").
		Values(t.ID, t.Name, t.Slug, t.CreatedAt, t.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create tag query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}
	return nil
}

func (r *repository) FindTagByID(ctx context.Context, id string) (*Tag, error) {
	return r.findTag(ctx, squirrel.Eq{"id": id})
}

func (r *repository) FindTagBySlug(ctx context.Context, slug string) (*Tag, error) {
	return r.findTag(ctx, squirrel.Eq{"slug": slug})
}

func (r *repository) findTag(ctx context.Context, pred squirrel.Eq) (*Tag, error) {
	query, args, err := r.psql.Select("id", "name", "slug", "created_at", "updated_at").
		From("blog_tags").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build find tag query: %w", err)
	}

	var t Tag
	if err := pgxscan.Get(ctx, r.db, &t, query, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTagNotFound
		}
		return nil, fmt.Errorf("failed to find tag: %w", err)
	}
	return &t, nil
}

func (r *repository) ListTags(ctx context.Context) ([]*Tag, error) {
	query, args, err := r.psql.Select("id", "name", "slug", "created_at", "updated_at").
		From("blog_tags").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list tags query: %w", err)
	}

	var tags []*Tag
	if err := pgxscan.Select(ctx, r.db, &tags, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

func (r *repository) UpdateTag(ctx context.Context, t *Tag) error {
	query, args, err := r.psql.Update("blog_tags").
		Set("name", t.Name).
		Set("slug", t.Slug).
		Set("updated_at", t.UpdatedAt).
		Where(squirrel.Eq{"id": t.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update tag query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update tag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTagNotFound
	}
	return nil
}

func (r *repository) DeleteTag(ctx context.Context, id string) error {
	query, args, err := r.psql.Delete("blog_tags").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete tag query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTagNotFound
	}
	return nil
}
