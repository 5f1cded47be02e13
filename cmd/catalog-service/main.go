package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iyhunko/catalog-service/internal/config"
	httpAPI "github.com/iyhunko/catalog-service/internal/http"
	"github.com/iyhunko/catalog-service/internal/http/controller"
	"github.com/iyhunko/catalog-service/internal/logger"
	"github.com/iyhunko/catalog-service/internal/metrics"
	"github.com/iyhunko/catalog-service/internal/repository/sql"
	"github.com/iyhunko/catalog-service/internal/schema"
	"github.com/iyhunko/catalog-service/internal/service"
	sqspkg "github.com/iyhunko/catalog-service/internal/sqs"
)

func main() {
	logger.InitJSONLogger()

	conf, err := config.LoadFromEnv()
	handleErr("loading config", err)

	// Resolve the Product <-> Category response schema cross references
	// before any request can be served.
	schema.Link()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := sql.StartDB(ctx, conf.Database)
	handleErr("starting database", err)

	// Create repositories
	productRepository := sql.NewProductRepository(db)
	categoryRepository := sql.NewCategoryRepository(db)
	eventRepository := sql.NewEventRepository(db)
	transactionalRepository := sql.NewTransactionalRepository(db)

	sqsClient, err := sqspkg.NewClient(ctx, conf.AWS.Region, conf.AWS.Endpoint)
	handleErr("creating SQS client", err)
	sqsPublisher := sqspkg.NewPublisher(sqsClient, conf.AWS.SQSQueueURL)

	// Create services with outbox pattern
	productService := service.NewProductServiceWithOutbox(productRepository, transactionalRepository)
	categoryService := service.NewCategoryService(categoryRepository)

	// Start outbox worker to publish pending events every 2 seconds
	outboxWorker := service.NewOutboxWorker(eventRepository, sqsPublisher, 2*time.Second)
	go outboxWorker.Start(ctx)

	// Start HTTP server
	ctr := controller.New(conf)
	productCtr := controller.NewProductController(productService)
	categoryCtr := controller.NewCategoryController(categoryService)
	httpServer := gin.Default()
	httpServer = httpAPI.InitRouter(conf, httpServer, ctr, productCtr, categoryCtr)

	go func() {
		err = httpServer.Run(":" + conf.HTTPServer.Port)
		if err != nil {
			handleErr("listening to HTTP requests", err)
		}
	}()

	metrics.StartMetricsServer(conf)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Println("Shutting down gracefully...")
	outboxWorker.Stop()
}

func handleErr(msg string, err error) {
	if err != nil {
		log.Fatalf("error while %s: %v", msg, err)
	}
}
