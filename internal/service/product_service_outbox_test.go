package service_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/iyhunko/catalog-service/internal/model"
	"github.com/iyhunko/catalog-service/internal/repository"
	reposql "github.com/iyhunko/catalog-service/internal/repository/sql"
	"github.com/iyhunko/catalog-service/internal/schema"
	"github.com/iyhunko/catalog-service/internal/service"
	"github.com/iyhunko/catalog-service/internal/sqs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DATA-DOG/go-sqlmock"
)

// TestCreateProduct_OutboxPattern verifies that product creation and event
// creation happen within the same transaction.
func TestCreateProduct_OutboxPattern(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()

	productRepo := reposql.NewProductRepository(db)
	txRepo := reposql.NewTransactionalRepository(db)
	productService := service.NewProductServiceWithOutbox(productRepo, txRepo)

	mock.ExpectBegin()

	mock.ExpectPrepare("INSERT INTO products").
		ExpectQuery().
		WithArgs("Test Product", "Test Description", 99.99, int64(5), nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	mock.ExpectPrepare("INSERT INTO events").
		ExpectExec().
		WithArgs(sqlmock.AnyArg(), "product.created", sqlmock.AnyArg(), string(model.EventStatusPending), sqlmock.AnyArg(), nil).
		WillReturnResult(sqlmock.NewResult(1, 1))

	mock.ExpectCommit()

	product, err := productService.CreateProduct(ctx, schema.ProductCreate{
		Name:        "Test Product",
		Description: "Test Description",
		Price:       float64Ptr(99.99),
		Quantity:    int64Ptr(5),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), product.ID)
	assert.Equal(t, "Test Product", product.Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestDeleteProduct_OutboxPattern verifies that product deletion and event
// creation happen within the same transaction.
func TestDeleteProduct_OutboxPattern(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()

	productRepo := reposql.NewProductRepository(db)
	txRepo := reposql.NewTransactionalRepository(db)
	productService := service.NewProductServiceWithOutbox(productRepo, txRepo)

	// The product is looked up outside the transaction for the event payload.
	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "name", "description", "price", "quantity", "category_id", "created_at", "updated_at",
		"c_id", "c_name", "c_created_at", "c_updated_at",
	}).AddRow(int64(7), "Test Product", "Test Description", 99.99, int64(5), nil, now, now, nil, nil, nil, nil)
	mock.ExpectPrepare("FROM products p LEFT JOIN categories c ON c.id = p.category_id WHERE p.id").
		ExpectQuery().
		WithArgs(int64(7)).
		WillReturnRows(rows)

	mock.ExpectBegin()

	mock.ExpectPrepare("DELETE FROM products WHERE id").
		ExpectExec().
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectPrepare("INSERT INTO events").
		ExpectExec().
		WithArgs(sqlmock.AnyArg(), "product.deleted", sqlmock.AnyArg(), string(model.EventStatusPending), sqlmock.AnyArg(), nil).
		WillReturnResult(sqlmock.NewResult(1, 1))

	mock.ExpectCommit()

	err = productService.DeleteProduct(ctx, 7)
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCreateProduct_OutboxPattern_Rollback verifies that when an error occurs
// during event creation, the entire transaction is rolled back.
func TestCreateProduct_OutboxPattern_Rollback(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()

	productRepo := reposql.NewProductRepository(db)
	txRepo := reposql.NewTransactionalRepository(db)
	productService := service.NewProductServiceWithOutbox(productRepo, txRepo)

	mock.ExpectBegin()

	mock.ExpectPrepare("INSERT INTO products").
		ExpectQuery().
		WithArgs("Test Product", "Test Description", 99.99, int64(5), nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	mock.ExpectPrepare("INSERT INTO events").
		ExpectExec().
		WithArgs(sqlmock.AnyArg(), "product.created", sqlmock.AnyArg(), string(model.EventStatusPending), sqlmock.AnyArg(), nil).
		WillReturnError(sql.ErrConnDone)

	mock.ExpectRollback()

	product, err := productService.CreateProduct(ctx, schema.ProductCreate{
		Name:        "Test Product",
		Description: "Test Description",
		Price:       float64Ptr(99.99),
		Quantity:    int64Ptr(5),
	})

	require.Error(t, err)
	assert.Nil(t, product)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestDeleteProduct_OutboxPattern_NotFound verifies that a missing product
// short-circuits before any transaction is opened.
func TestDeleteProduct_OutboxPattern_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()

	productRepo := reposql.NewProductRepository(db)
	txRepo := reposql.NewTransactionalRepository(db)
	productService := service.NewProductServiceWithOutbox(productRepo, txRepo)

	mock.ExpectPrepare("FROM products p LEFT JOIN categories c ON c.id = p.category_id WHERE p.id").
		ExpectQuery().
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	err = productService.DeleteProduct(ctx, 404)
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestEventData_SerializationFormat verifies that event data round-trips as a
// CatalogMessage.
func TestEventData_SerializationFormat(t *testing.T) {
	msg := sqs.CatalogMessage{
		Action:    "created",
		ProductID: 42,
		Name:      "Test Product",
		Price:     99.99,
	}

	eventData, err := json.Marshal(msg)
	require.NoError(t, err)

	var deserializedMsg sqs.CatalogMessage
	err = json.Unmarshal(eventData, &deserializedMsg)
	require.NoError(t, err)

	assert.Equal(t, msg.Action, deserializedMsg.Action)
	assert.Equal(t, msg.ProductID, deserializedMsg.ProductID)
	assert.Equal(t, msg.Name, deserializedMsg.Name)
	assert.Equal(t, msg.Price, deserializedMsg.Price)
}
