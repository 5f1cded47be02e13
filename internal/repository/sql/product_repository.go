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

// productWithCategoryColumns selects a product row together with its
// (possibly absent) category via a LEFT JOIN.
const productWithCategoryColumns = `p.id, p.name, p.description, p.price, p.quantity, p.category_id, p.created_at, p.updated_at,
	       c.id, c.name, c.created_at, c.updated_at`

// ProductRepository implements repository.ProductRepository on PostgreSQL.
type ProductRepository struct {
	db  *sql.DB
	txn *sql.Tx
}

// NewProductRepository creates a new ProductRepository instance.
func NewProductRepository(db *sql.DB) repository.ProductRepository {
	return &ProductRepository{db: db}
}

// getExecutor returns the active executor (transaction if exists, otherwise db)
func (r *ProductRepository) getExecutor() dbExecutor {
	if r.txn != nil {
		return r.txn
	}
	return r.db
}

// Create inserts a new product and reads back the storage-assigned id. When
// the product references a category, the relation is loaded so the caller
// can serialize the nested category.
func (r *ProductRepository) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	product.InitMeta()

	query := `INSERT INTO products (name, description, price, quantity, category_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`

	executor := r.getExecutor()
	stmt, err := executor.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Close()

	err = stmt.QueryRowContext(ctx,
		product.Name, product.Description, product.Price, product.Quantity,
		product.CategoryID, product.CreatedAt, product.UpdatedAt,
	).Scan(&product.ID)
	if err != nil {
		if mapped := mapConstraintError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}

	if product.CategoryID != nil {
		category, err := r.loadCategory(ctx, *product.CategoryID)
		if err != nil {
			return nil, err
		}
		product.Category = category
	}

	return product, nil
}

// List retrieves a page of products with their categories attached.
func (r *ProductRepository) List(ctx context.Context, query repository.Query) ([]*model.Product, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + productWithCategoryColumns +
		" FROM products p LEFT JOIN categories c ON c.id = p.category_id WHERE 1=1")

	var args []interface{}
	argIndex := 1

	// Apply pagination
	if query.Paginator != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND (p.created_at, p.id) < ($%d, $%d)", argIndex, argIndex+1))
		args = append(args, query.Paginator.LastCreatedAt, query.Paginator.LastID)
		argIndex += 2
	}

	// Order by created_at DESC, id DESC for consistent pagination
	queryBuilder.WriteString(" ORDER BY p.created_at DESC, p.id DESC")

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
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []*model.Product
	for rows.Next() {
		product, err := scanProductWithCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return products, nil
}

// FindByID retrieves a single product by ID with its category attached.
func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	query := "SELECT " + productWithCategoryColumns +
		" FROM products p LEFT JOIN categories c ON c.id = p.category_id WHERE p.id = $1"

	executor := r.getExecutor()
	stmt, err := executor.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Close()

	product, err := scanProductWithCategory(stmt.QueryRowContext(ctx, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product not found: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return product, nil
}

// Update replaces every mutable product field. There is no partial-patch
// behavior: name, description, price, quantity and category_id are all
// written from the given product.
func (r *ProductRepository) Update(ctx context.Context, product *model.Product) (*model.Product, error) {
	product.UpdatedAt = time.Now()

	query := `UPDATE products SET name = $1, description = $2, price = $3, quantity = $4, category_id = $5, updated_at = $6
	          WHERE id = $7 RETURNING created_at`

	executor := r.getExecutor()
	stmt, err := executor.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare update statement: %w", err)
	}
	defer stmt.Close()

	err = stmt.QueryRowContext(ctx,
		product.Name, product.Description, product.Price, product.Quantity,
		product.CategoryID, product.UpdatedAt, product.ID,
	).Scan(&product.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product not found: %w", repository.ErrNotFound)
		}
		if mapped := mapConstraintError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	product.Category = nil
	if product.CategoryID != nil {
		category, err := r.loadCategory(ctx, *product.CategoryID)
		if err != nil {
			return nil, err
		}
		product.Category = category
	}

	return product, nil
}

// DeleteByID deletes a product by ID.
func (r *ProductRepository) DeleteByID(ctx context.Context, id int64) error {
	query := `DELETE FROM products WHERE id = $1`

	executor := r.getExecutor()
	stmt, err := executor.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare delete statement: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("product not found: %w", repository.ErrNotFound)
	}

	return nil
}

// loadCategory fetches the bare category row (no member products, matching
// the one-level nesting policy).
func (r *ProductRepository) loadCategory(ctx context.Context, id int64) (*model.Category, error) {
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

	return &category, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProductWithCategory(row rowScanner) (*model.Product, error) {
	var product model.Product
	var categoryID sql.NullInt64
	var categoryName sql.NullString
	var categoryCreatedAt, categoryUpdatedAt sql.NullTime

	err := row.Scan(
		&product.ID, &product.Name, &product.Description, &product.Price, &product.Quantity,
		&product.CategoryID, &product.CreatedAt, &product.UpdatedAt,
		&categoryID, &categoryName, &categoryCreatedAt, &categoryUpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if categoryID.Valid {
		product.Category = &model.Category{
			ID:        categoryID.Int64,
			Name:      categoryName.String,
			CreatedAt: categoryCreatedAt.Time,
			UpdatedAt: categoryUpdatedAt.Time,
		}
	}

	return &product, nil
}
