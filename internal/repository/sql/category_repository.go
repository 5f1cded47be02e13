package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iyhunko/catalog-service/internal/model"
	"github.com/iyhunko/catalog-service/internal/repository"
)

// CategoryRepository implements repository.CategoryRepository on PostgreSQL.
type CategoryRepository struct {
	db  *sql.DB
	txn *sql.Tx
}

// NewCategoryRepository creates a new CategoryRepository instance.
func NewCategoryRepository(db *sql.DB) repository.CategoryRepository {
	return &CategoryRepository{db: db}
}

// getExecutor returns the active executor (transaction if exists, otherwise db)
func (r *CategoryRepository) getExecutor() dbExecutor {
	if r.txn != nil {
		return r.txn
	}
	return r.db
}

// Create inserts a new category and reads back the storage-assigned id.
func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) (*model.Category, error) {
	category.InitMeta()

	query := `INSERT INTO categories (name, created_at, updated_at) VALUES ($1, $2, $3) RETURNING id`

	executor := r.getExecutor()
	stmt, err := executor.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Close()

	err = stmt.QueryRowContext(ctx, category.Name, category.CreatedAt, category.UpdatedAt).Scan(&category.ID)
	if err != nil {
		if mapped := mapConstraintError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to insert category: %w", err)
	}

	return category, nil
}

// List retrieves a page of categories with their member products attached.
func (r *CategoryRepository) List(ctx context.Context, query repository.Query) ([]*model.Category, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT id, name, created_at, updated_at FROM categories WHERE 1=1")

	var args []interface{}
	argIndex := 1

	// Apply pagination
	if query.Paginator != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND (created_at, id) < ($%d, $%d)", argIndex, argIndex+1))
		args = append(args, query.Paginator.LastCreatedAt, query.Paginator.LastID)
		argIndex += 2
	}

	// Order by created_at DESC, id DESC for consistent pagination
	queryBuilder.WriteString(" ORDER BY created_at DESC, id DESC")

	limit := query.Limit
	if limit <= 0 {
		limit = repository.DefaultPaginationLimit
	}
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argIndex))
	args = append(args, limit)

	executor := r.getExecutor()
	stmt, err := executor.PrepareContext(ctx, queryBuilder.String())
	if err != nil {
		return nil, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []*model.Category
	for rows.Next() {
		var category model.Category
		err := rows.Scan(&category.ID, &category.Name, &category.CreatedAt, &category.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, &category)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	if err := r.loadProducts(ctx, categories); err != nil {
		return nil, err
	}

	return categories, nil
}

// FindByID retrieves a single category by ID with its member products.
func (r *CategoryRepository) FindByID(ctx context.Context, id int64) (*model.Category, error) {
	query := `SELECT id, name, created_at, updated_at FROM categories WHERE id = $1`

	executor := r.getExecutor()
	stmt, err := executor.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Close()

	var category model.Category
	err = stmt.QueryRowContext(ctx, id).Scan(&category.ID, &category.Name, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("category not found: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	if err := r.loadProducts(ctx, []*model.Category{&category}); err != nil {
		return nil, err
	}

	return &category, nil
}

// Update renames a category.
func (r *CategoryRepository) Update(ctx context.Context, category *model.Category) (*model.Category, error) {
	category.UpdatedAt = time.Now()

	query := `UPDATE categories SET name = $1, updated_at = $2 WHERE id = $3 RETURNING created_at`

	executor := r.getExecutor()
	stmt, err := executor.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare update statement: %w", err)
	}
	defer stmt.Close()

	err = stmt.QueryRowContext(ctx, category.Name, category.UpdatedAt, category.ID).Scan(&category.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("category not found: %w", repository.ErrNotFound)
		}
		if mapped := mapConstraintError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	if err := r.loadProducts(ctx, []*model.Category{category}); err != nil {
		return nil, err
	}

	return category, nil
}

// DeleteByID deletes a category by ID. Member products are detached by the
// ON DELETE SET NULL constraint on products.category_id.
func (r *CategoryRepository) DeleteByID(ctx context.Context, id int64) error {
	query := `DELETE FROM categories WHERE id = $1`

	executor := r.getExecutor()
	stmt, err := executor.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare delete statement: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("category not found: %w", repository.ErrNotFound)
	}

	return nil
}

// loadProducts attaches member products to the given categories with a single
// grouped query.
func (r *CategoryRepository) loadProducts(ctx context.Context, categories []*model.Category) error {
	if len(categories) == 0 {
		return nil
	}

	byID := make(map[int64]*model.Category, len(categories))
	placeholders := make([]string, 0, len(categories))
	args := make([]interface{}, 0, len(categories))
	for i, category := range categories {
		category.Products = []*model.Product{}
		byID[category.ID] = category
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
		args = append(args, category.ID)
	}

	query := `SELECT id, name, description, price, quantity, category_id, created_at, updated_at
	          FROM products WHERE category_id IN (` + strings.Join(placeholders, ", ") + `)
	          ORDER BY created_at DESC, id DESC`

	executor := r.getExecutor()
	stmt, err := executor.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx, args...)
	if err != nil {
		return fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var product model.Product
		err := rows.Scan(
			&product.ID, &product.Name, &product.Description, &product.Price, &product.Quantity,
			&product.CategoryID, &product.CreatedAt, &product.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to scan product: %w", err)
		}
		if product.CategoryID == nil {
			continue
		}
		if category, ok := byID[*product.CategoryID]; ok {
			category.Products = append(category.Products, &product)
		}
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("error iterating rows: %w", err)
	}

	return nil
}
