package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProductsCreated is a Prometheus counter for tracking the total number of products created.
	ProductsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "products_created_total",
		Help: "The total number of products created",
	})

	// ProductsUpdated is a Prometheus counter for tracking the total number of products updated.
	ProductsUpdated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "products_updated_total",
		Help: "The total number of products updated",
	})

	// ProductsDeleted is a Prometheus counter for tracking the total number of products deleted.
	ProductsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "products_deleted_total",
		Help: "The total number of products deleted",
	})

	// CategoriesCreated is a Prometheus counter for tracking the total number of categories created.
	CategoriesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "categories_created_total",
		Help: "The total number of categories created",
	})

	// CategoriesUpdated is a Prometheus counter for tracking the total number of categories updated.
	CategoriesUpdated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "categories_updated_total",
		Help: "The total number of categories updated",
	})

	// CategoriesDeleted is a Prometheus counter for tracking the total number of categories deleted.
	CategoriesDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "categories_deleted_total",
		Help: "The total number of categories deleted",
	})
)
