package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/iyhunko/catalog-service/internal/model"
)

var (
	// ErrNotFound is returned when the requested id has no matching row.
	// A delete of an already-deleted id returns it as well, so a double
	// delete never reports a second success.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidType is returned when a repository receives a resource of an
	// unexpected concrete type.
	ErrInvalidType = errors.New("invalid resource type")
)

// ProductRepository manages product rows.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) (*model.Product, error)
	List(ctx context.Context, query Query) ([]*model.Product, error)
	FindByID(ctx context.Context, id int64) (*model.Product, error)
	Update(ctx context.Context, product *model.Product) (*model.Product, error)
	DeleteByID(ctx context.Context, id int64) error
}

// CategoryRepository manages category rows.
type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) (*model.Category, error)
	List(ctx context.Context, query Query) ([]*model.Category, error)
	FindByID(ctx context.Context, id int64) (*model.Category, error)
	Update(ctx context.Context, category *model.Category) (*model.Category, error)
	DeleteByID(ctx context.Context, id int64) error
}

// EventRepository manages outbox event rows.
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	ListPending(ctx context.Context, limit int) ([]*model.Event, error)
	UpdateStatus(ctx context.Context, eventID uuid.UUID, status model.EventStatus) error
}

// UniqueConstraintError represents a database unique constraint violation.
type UniqueConstraintError struct {
	Detail string
}

func (u *UniqueConstraintError) Error() string {
	return "resource must be unique: " + u.Detail
}

// ForeignKeyViolationError represents a reference to a row that does not
// exist, e.g. a product pointing at a nonexistent category id.
type ForeignKeyViolationError struct {
	Detail string
}

func (f *ForeignKeyViolationError) Error() string {
	return "referenced resource does not exist: " + f.Detail
}
