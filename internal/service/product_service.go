package service

import (
	"context"

	"github.com/iyhunko/catalog-service/internal/metrics"
	"github.com/iyhunko/catalog-service/internal/model"
	"github.com/iyhunko/catalog-service/internal/repository"
	reposql "github.com/iyhunko/catalog-service/internal/repository/sql"
	"github.com/iyhunko/catalog-service/internal/schema"
	"github.com/iyhunko/catalog-service/internal/sqs"
)

// ProductService orchestrates product CRUD. Create and Delete write an
// outbox event in the same transaction as the row mutation, so the change
// and its event commit or roll back together.
type ProductService struct {
	repo   repository.ProductRepository
	txRepo *reposql.TransactionalRepository
}

// NewProductService creates a ProductService without outbox support.
func NewProductService(repo repository.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// NewProductServiceWithOutbox creates a ProductService that records catalog
// change events transactionally.
func NewProductServiceWithOutbox(repo repository.ProductRepository, txRepo *reposql.TransactionalRepository) *ProductService {
	return &ProductService{
		repo:   repo,
		txRepo: txRepo,
	}
}

// CreateProduct persists a new product built from the validated payload and
// returns it with the storage-assigned id and loaded category.
func (ps *ProductService) CreateProduct(ctx context.Context, payload schema.ProductCreate) (*model.Product, error) {
	product := &model.Product{
		Name:        payload.Name,
		Description: payload.Description,
		Price:       *payload.Price,
		Quantity:    *payload.Quantity,
		CategoryID:  payload.CategoryID,
	}

	var created *model.Product
	var err error
	if ps.txRepo != nil {
		created, err = ps.txRepo.CreateProductWithEvent(ctx, product, func(p *model.Product) (*model.Event, error) {
			return reposql.CreateEvent(model.EventTypeProductCreated, catalogMessageFor("created", p))
		})
	} else {
		created, err = ps.repo.Create(ctx, product)
	}
	if err != nil {
		return nil, err
	}

	metrics.ProductsCreated.Inc()

	return created, nil
}

// GetProduct fetches a product by id with its category loaded.
func (ps *ProductService) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	return ps.repo.FindByID(ctx, id)
}

// ListProducts fetches a page of products. An empty table yields an empty
// slice, never an error.
func (ps *ProductService) ListProducts(ctx context.Context, query repository.Query) ([]*model.Product, error) {
	return ps.repo.List(ctx, query)
}

// UpdateProduct replaces every product field from the validated payload.
func (ps *ProductService) UpdateProduct(ctx context.Context, id int64, payload schema.ProductUpdate) (*model.Product, error) {
	product := &model.Product{
		ID:          id,
		Name:        payload.Name,
		Description: payload.Description,
		Price:       *payload.Price,
		Quantity:    *payload.Quantity,
		CategoryID:  payload.CategoryID,
	}

	updated, err := ps.repo.Update(ctx, product)
	if err != nil {
		return nil, err
	}

	metrics.ProductsUpdated.Inc()

	return updated, nil
}

// DeleteProduct removes a product by id. Deleting an id twice fails the
// second time with repository.ErrNotFound.
func (ps *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	// Find the product first to get its details for the event payload
	product, err := ps.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if ps.txRepo != nil {
		event, eventErr := reposql.CreateEvent(model.EventTypeProductDeleted, catalogMessageFor("deleted", product))
		if eventErr != nil {
			return eventErr
		}
		if err := ps.txRepo.DeleteProductWithEvent(ctx, product.ID, event); err != nil {
			return err
		}
	} else {
		if err := ps.repo.DeleteByID(ctx, product.ID); err != nil {
			return err
		}
	}

	metrics.ProductsDeleted.Inc()

	return nil
}

func catalogMessageFor(action string, product *model.Product) sqs.CatalogMessage {
	return sqs.CatalogMessage{
		Action:    action,
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
	}
}
