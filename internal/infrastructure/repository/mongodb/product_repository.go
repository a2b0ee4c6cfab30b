package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mrops-br/catalog-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ProductRepository stores products in a MongoDB collection
type ProductRepository struct {
	coll   *mongo.Collection
	tracer trace.Tracer
	logger *slog.Logger
}

func NewProductRepository(coll *mongo.Collection, tracer trace.Tracer, logger *slog.Logger) *ProductRepository {
	return &ProductRepository{
		coll:   coll,
		tracer: tracer,
		logger: logger,
	}
}

// EnsureIndexes creates the category index used by FindByCategory
func (r *ProductRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "productDetails.productCategoryId", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create product category index: %w", err)
	}
	return nil
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	ctx, span := r.startSpan(ctx, "ProductRepository.Create", attribute.String("product.id", product.ID))
	defer span.End()

	doc, err := toProductDocument(product)
	if err != nil {
		return fail(span, err)
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fail(span, fmt.Errorf("failed to insert product: %w", err))
	}

	r.logger.InfoContext(ctx, "Product created in repository",
		slog.String("product_id", product.ID),
	)
	span.SetStatus(codes.Ok, "Product created successfully")
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	ctx, span := r.startSpan(ctx, "ProductRepository.FindByID", attribute.String("product.id", id))
	defer span.End()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fail(span, domain.ErrInvalidProductID)
	}

	var doc productDocument
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fail(span, domain.ErrProductNotFound)
	}
	if err != nil {
		return nil, fail(span, fmt.Errorf("failed to find product: %w", err))
	}

	span.SetStatus(codes.Ok, "Product found")
	return doc.toDomain(), nil
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	ctx, span := r.startSpan(ctx, "ProductRepository.FindAll")
	defer span.End()

	products, err := r.find(ctx, bson.M{})
	if err != nil {
		return nil, fail(span, err)
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))
	span.SetStatus(codes.Ok, "Products retrieved successfully")
	return products, nil
}

func (r *ProductRepository) FindByCategory(ctx context.Context, categoryID int) ([]*domain.Product, error) {
	ctx, span := r.startSpan(ctx, "ProductRepository.FindByCategory", attribute.Int("product.category_id", categoryID))
	defer span.End()

	products, err := r.find(ctx, bson.M{"productDetails.productCategoryId": categoryID})
	if err != nil {
		return nil, fail(span, err)
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))
	span.SetStatus(codes.Ok, "Products retrieved successfully")
	return products, nil
}

func (r *ProductRepository) Update(ctx context.Context, id string, patch *domain.ProductPatch) (*domain.Product, error) {
	ctx, span := r.startSpan(ctx, "ProductRepository.Update", attribute.String("product.id", id))
	defer span.End()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fail(span, domain.ErrInvalidProductID)
	}

	var doc productDocument
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": patchToSet(patch, time.Now().UTC())},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fail(span, domain.ErrProductNotFound)
	}
	if err != nil {
		return nil, fail(span, fmt.Errorf("failed to update product: %w", err))
	}

	r.logger.InfoContext(ctx, "Product updated in repository",
		slog.String("product_id", id),
	)
	span.SetStatus(codes.Ok, "Product updated successfully")
	return doc.toDomain(), nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	ctx, span := r.startSpan(ctx, "ProductRepository.Delete", attribute.String("product.id", id))
	defer span.End()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fail(span, domain.ErrInvalidProductID)
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fail(span, fmt.Errorf("failed to delete product: %w", err))
	}
	if res.DeletedCount == 0 {
		return fail(span, domain.ErrProductNotFound)
	}

	r.logger.InfoContext(ctx, "Product deleted from repository",
		slog.String("product_id", id),
	)
	span.SetStatus(codes.Ok, "Product deleted successfully")
	return nil
}

func (r *ProductRepository) find(ctx context.Context, filter bson.M) ([]*domain.Product, error) {
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	products := make([]*domain.Product, 0, len(docs))
	for i := range docs {
		products = append(products, docs[i].toDomain())
	}
	return products, nil
}

func (r *ProductRepository) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, span := r.tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("db.system", "mongodb"), attribute.String("db.collection.name", r.coll.Name())),
	)
	span.SetAttributes(attrs...)
	return ctx, span
}
