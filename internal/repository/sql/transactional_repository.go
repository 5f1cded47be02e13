package sql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iyhunko/catalog-service/internal/model"
)

// TransactionalRepository writes a product mutation and its outbox event in a
// single transaction, so a committed change always has a matching event row.
type TransactionalRepository struct {
	db *sql.DB
}

// NewTransactionalRepository creates a new TransactionalRepository
func NewTransactionalRepository(db *sql.DB) *TransactionalRepository {
	return &TransactionalRepository{db: db}
}

// CreateProductWithEvent creates a product and an event in a single
// transaction. The event is built by eventFor from the created product, so
// its payload carries the storage-assigned id.
func (tr *TransactionalRepository) CreateProductWithEvent(ctx context.Context, product *model.Product, eventFor func(*model.Product) (*model.Event, error)) (*model.Product, error) {
	tx, err := tr.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	productRepo := &ProductRepository{db: tr.db, txn: tx}
	eventRepo := &EventRepository{db: tr.db, txn: tx}

	createdProduct, err := productRepo.Create(ctx, product)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	event, err := eventFor(createdProduct)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if _, err := eventRepo.Create(ctx, event); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return createdProduct, nil
}

// DeleteProductWithEvent deletes a product and creates a deletion event in a single transaction.
func (tr *TransactionalRepository) DeleteProductWithEvent(ctx context.Context, productID int64, event *model.Event) error {
	tx, err := tr.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	productRepo := &ProductRepository{db: tr.db, txn: tx}
	eventRepo := &EventRepository{db: tr.db, txn: tx}

	if err := productRepo.DeleteByID(ctx, productID); err != nil {
		tx.Rollback()
		return err
	}

	if _, err := eventRepo.Create(ctx, event); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to create event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
