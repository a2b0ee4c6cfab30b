package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mrops-br/catalog-api/internal/app/dto"
	"github.com/mrops-br/catalog-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// ProductService handles product use cases
type ProductService struct {
	repo                  domain.ProductRepository
	images                *imageJanitor
	tracer                trace.Tracer
	logger                *slog.Logger
	productCreatedCounter metric.Int64Counter
	productOperations     metric.Int64Counter
}

// NewProductService creates a new product service
func NewProductService(
	repo domain.ProductRepository,
	images domain.ImageStore,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *ProductService {
	productCreatedCounter, _ := meter.Int64Counter(
		"products.created.total",
		metric.WithDescription("Total number of products created"),
	)

	productOperations, _ := meter.Int64Counter(
		"products.operations",
		metric.WithDescription("Total number of product operations"),
	)

	return &ProductService{
		repo:                  repo,
		images:                newImageJanitor(images, meter, logger),
		tracer:                tracer,
		logger:                logger,
		productCreatedCounter: productCreatedCounter,
		productOperations:     productOperations,
	}
}

// CreateProduct validates and stores a new product
func (s *ProductService) CreateProduct(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.CreateProduct")
	defer span.End()

	span.SetAttributes(attribute.String("product.name", req.ProductName))

	categoryID := 0
	if req.ProductCategoryID.Set {
		id, ok := req.ProductCategoryID.Int()
		if !ok {
			return nil, s.fail(ctx, span, "create", domain.ErrInvalidCategoryID)
		}
		categoryID = id
	}

	product, err := domain.NewProduct(
		req.ProductName,
		req.ProductImage,
		req.OldPrice.Float(),
		req.OfferPrice.Float(),
		domain.ProductDetails{Categories: req.Categories, ProductCategoryID: categoryID},
	)
	if err != nil {
		return nil, s.fail(ctx, span, "create", err)
	}

	span.SetAttributes(attribute.String("product.id", product.ID))

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, s.fail(ctx, span, "create", err)
	}

	s.productCreatedCounter.Add(ctx, 1)
	s.record(ctx, "create", "success")

	s.logger.InfoContext(ctx, "Product created successfully",
		slog.String("product_id", product.ID),
	)

	span.SetStatus(codes.Ok, "Product created successfully")
	return dto.ToProductResponse(product), nil
}

// GetProductByID retrieves a product by ID
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.GetProductByID")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	if !domain.IsValidID(id) {
		return nil, s.fail(ctx, span, "read", domain.ErrInvalidProductID)
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, span, "read", err)
	}

	s.record(ctx, "read", "success")
	span.SetStatus(codes.Ok, "Product retrieved successfully")
	return dto.ToProductResponse(product), nil
}

// ListProducts retrieves all products in their flat projection
func (s *ProductService) ListProducts(ctx context.Context) ([]*dto.ProductSummary, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.ListProducts")
	defer span.End()

	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, s.fail(ctx, span, "list", err)
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))
	s.record(ctx, "list", "success")

	s.logger.InfoContext(ctx, "Products listed successfully",
		slog.Int("count", len(products)),
	)

	span.SetStatus(codes.Ok, "Products listed successfully")
	return dto.ToProductSummaryList(products), nil
}

// ListProductsByCategory retrieves the products of one category.
// An empty category is reported as ErrNoProductsInCategory.
func (s *ProductService) ListProductsByCategory(ctx context.Context, categoryID int) ([]*dto.ProductSummary, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.ListProductsByCategory")
	defer span.End()

	span.SetAttributes(attribute.Int("product.category_id", categoryID))

	products, err := s.repo.FindByCategory(ctx, categoryID)
	if err != nil {
		return nil, s.fail(ctx, span, "list_by_category", err)
	}
	if len(products) == 0 {
		return nil, s.fail(ctx, span, "list_by_category", domain.ErrNoProductsInCategory)
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))
	s.record(ctx, "list_by_category", "success")

	span.SetStatus(codes.Ok, "Products listed successfully")
	return dto.ToProductSummaryList(products), nil
}

// UpdateProduct applies a partial update. When the image changes, the previous
// image is removed from storage before the record is written.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, req *dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.UpdateProduct")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	if !domain.IsValidID(id) {
		return nil, s.fail(ctx, span, "update", domain.ErrInvalidProductID)
	}

	patch, err := req.ToPatch()
	if err != nil {
		return nil, s.fail(ctx, span, "update", err)
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, span, "update", err)
	}

	if patch.ImageSet {
		oldImage := current.ImageURL()
		switch {
		case patch.Image != nil && *patch.Image == oldImage:
			patch.ImageSet = false
		case oldImage != "":
			span.AddEvent("image.replaced", trace.WithAttributes(attribute.String("image.old", oldImage)))
			s.images.discard(ctx, oldImage)
		}
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, s.fail(ctx, span, "update", err)
	}

	s.record(ctx, "update", "success")

	s.logger.InfoContext(ctx, "Product updated successfully",
		slog.String("product_id", id),
	)

	span.SetStatus(codes.Ok, "Product updated successfully")
	return dto.ToProductResponse(updated), nil
}

// DeleteProduct removes a product. imageURL, when given, is removed from
// storage first; a storage failure does not stop the deletion.
func (s *ProductService) DeleteProduct(ctx context.Context, id, imageURL string) error {
	ctx, span := s.tracer.Start(ctx, "ProductService.DeleteProduct")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	if !domain.IsValidID(id) {
		return s.fail(ctx, span, "delete", domain.ErrInvalidProductID)
	}

	s.images.discard(ctx, imageURL)

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.fail(ctx, span, "delete", err)
	}

	s.record(ctx, "delete", "success")

	s.logger.InfoContext(ctx, "Product deleted successfully",
		slog.String("product_id", id),
	)

	span.SetStatus(codes.Ok, "Product deleted successfully")
	return nil
}

func (s *ProductService) record(ctx context.Context, operation, result string) {
	s.productOperations.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("result", result),
		),
	)
}

// fail records err on the span and in metrics, then returns it unchanged
func (s *ProductService) fail(ctx context.Context, span trace.Span, operation string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	result := outcome(err)
	if result == "failure" {
		s.logger.ErrorContext(ctx, "Product operation failed",
			slog.String("operation", operation),
			slog.String("error", err.Error()),
		)
	} else {
		s.logger.WarnContext(ctx, "Product operation rejected",
			slog.String("operation", operation),
			slog.String("reason", err.Error()),
		)
	}

	s.record(ctx, operation, result)
	return err
}

// outcome maps an error to the result label used in operation metrics
func outcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrNoProductsInCategory),
		errors.Is(err, domain.ErrOfferImageNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidProductID),
		errors.Is(err, domain.ErrMissingProductFields),
		errors.Is(err, domain.ErrInvalidCategoryID),
		errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrInvalidOfferImageID),
		errors.Is(err, domain.ErrOfferImageURLRequired):
		return "invalid"
	default:
		return "failure"
	}
}
