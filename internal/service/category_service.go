package service

import (
	"context"

	"github.com/iyhunko/catalog-service/internal/metrics"
	"github.com/iyhunko/catalog-service/internal/model"
	"github.com/iyhunko/catalog-service/internal/repository"
	"github.com/iyhunko/catalog-service/internal/schema"
)

// CategoryService orchestrates category CRUD.
type CategoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// CreateCategory persists a new category built from the validated payload.
func (cs *CategoryService) CreateCategory(ctx context.Context, payload schema.CategoryCreate) (*model.Category, error) {
	category := &model.Category{
		Name: payload.Name,
	}

	created, err := cs.repo.Create(ctx, category)
	if err != nil {
		return nil, err
	}

	metrics.CategoriesCreated.Inc()

	return created, nil
}

// GetCategory fetches a category by id with its member products loaded.
func (cs *CategoryService) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	return cs.repo.FindByID(ctx, id)
}

// ListCategories fetches a page of categories. An empty table yields an
// empty slice, never an error.
func (cs *CategoryService) ListCategories(ctx context.Context, query repository.Query) ([]*model.Category, error) {
	return cs.repo.List(ctx, query)
}

// UpdateCategory renames a category.
func (cs *CategoryService) UpdateCategory(ctx context.Context, id int64, payload schema.CategoryUpdate) (*model.Category, error) {
	category := &model.Category{
		ID:   id,
		Name: payload.Name,
	}

	updated, err := cs.repo.Update(ctx, category)
	if err != nil {
		return nil, err
	}

	metrics.CategoriesUpdated.Inc()

	return updated, nil
}

// DeleteCategory removes a category by id. Member products are detached, not
// deleted, by the storage layer.
func (cs *CategoryService) DeleteCategory(ctx context.Context, id int64) error {
	if err := cs.repo.DeleteByID(ctx, id); err != nil {
		return err
	}

	metrics.CategoriesDeleted.Inc()

	return nil
}
