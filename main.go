package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mrops-br/catalog-api/internal/app/service"
	"github.com/mrops-br/catalog-api/internal/domain"
	"github.com/mrops-br/catalog-api/internal/infrastructure/config"
	"github.com/mrops-br/catalog-api/internal/infrastructure/http"
	"github.com/mrops-br/catalog-api/internal/infrastructure/http/handler"
	"github.com/mrops-br/catalog-api/internal/infrastructure/http/middleware"
	"github.com/mrops-br/catalog-api/internal/infrastructure/repository/memory"
	"github.com/mrops-br/catalog-api/internal/infrastructure/repository/mongodb"
	"github.com/mrops-br/catalog-api/internal/infrastructure/storage/gcs"
	storagememory "github.com/mrops-br/catalog-api/internal/infrastructure/storage/memory"
	"github.com/mrops-br/catalog-api/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/trace"
)

func main() {
	// Load configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize OpenTelemetry
	telem, err := telemetry.NewTelemetry(&cfg.OTLP)
	if err != nil {
		log.Fatalf("Failed to initialize telemetry: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracer := telem.TracerProvider.Tracer("catalog-api")
	meter := telem.MeterProvider.Meter("catalog-api")
	logger := telem.Logger

	logger.Info("Starting Catalog API",
		slog.String("store_driver", cfg.Store.Driver),
	)

	// Initialize repositories (dependency injection)
	products, offers, closeStore, err := openStore(ctx, &cfg.Store, tracer, logger)
	if err != nil {
		logger.Error("Failed to open store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	images, closeImages, err := openImageStore(ctx, &cfg.Storage, tracer, logger)
	if err != nil {
		logger.Error("Failed to open image storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeImages()

	// Initialize services and handlers
	productService := service.NewProductService(products, images, tracer, meter, logger)
	offerService := service.NewOfferService(offers, images, tracer, meter, logger)

	authenticate := middleware.AllowAll
	if cfg.Auth.Disabled {
		logger.Warn("Authentication disabled; protected routes are open")
	} else {
		authenticate = middleware.Authenticate([]byte(cfg.Auth.JWTSecret), logger)
	}

	server := http.NewServer(
		&cfg.Server,
		handler.NewProductHandler(productService, logger),
		handler.NewOfferHandler(offerService, logger),
		authenticate,
		logger,
		telem.MeterProvider,
	)

	go func() {
		if err := server.Start(); err != nil {
			logger.Error("Server error", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error shutting down server", slog.String("error", err.Error()))
	}
	if err := telem.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down telemetry: %v", err)
	}

	logger.Info("Server stopped")
}

func openStore(
	ctx context.Context,
	cfg *config.StoreConfig,
	tracer trace.Tracer,
	logger *slog.Logger,
) (domain.ProductRepository, domain.OfferRepository, func(), error) {
	if cfg.Driver == config.StoreDriverMemory {
		return memory.NewProductRepository(tracer, logger), memory.NewOfferRepository(tracer, logger), func() {}, nil
	}

	client, err := mongodb.Connect(ctx, cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	db := client.Database(cfg.Database)
	products := mongodb.NewProductRepository(db.Collection(cfg.ProductsCollection), tracer, logger)
	if err := products.EnsureIndexes(ctx); err != nil {
		logger.Warn("Failed to ensure product indexes", slog.String("error", err.Error()))
	}
	offers := mongodb.NewOfferRepository(db.Collection(cfg.OffersCollection), tracer, logger)

	closeFn := func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error("Failed to disconnect from mongo", slog.String("error", err.Error()))
		}
	}
	return products, offers, closeFn, nil
}

func openImageStore(
	ctx context.Context,
	cfg *config.StorageConfig,
	tracer trace.Tracer,
	logger *slog.Logger,
) (domain.ImageStore, func(), error) {
	if cfg.Bucket == "" {
		logger.Warn("STORAGE_BUCKET not set; image deletions are only recorded in memory")
		return storagememory.NewImageStore(logger), func() {}, nil
	}

	bucket, err := gcs.NewBucket(ctx, cfg, tracer, logger)
	if err != nil {
		return nil, nil, err
	}
	return bucket, func() { _ = bucket.Close() }, nil
}
