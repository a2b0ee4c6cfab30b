package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mrops-br/catalog-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// OfferRepository stores offer images in a MongoDB collection
type OfferRepository struct {
	coll   *mongo.Collection
	tracer trace.Tracer
	logger *slog.Logger
}

func NewOfferRepository(coll *mongo.Collection, tracer trace.Tracer, logger *slog.Logger) *OfferRepository {
	return &OfferRepository{
		coll:   coll,
		tracer: tracer,
		logger: logger,
	}
}

func (r *OfferRepository) Create(ctx context.Context, offer *domain.OfferImage) error {
	ctx, span := r.tracer.Start(ctx, "OfferRepository.Create", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	oid, err := primitive.ObjectIDFromHex(offer.ID)
	if err != nil {
		return fail(span, domain.ErrInvalidOfferImageID)
	}

	if _, err := r.coll.InsertOne(ctx, offerDocument{ID: oid, ImageURL: offer.ImageURL}); err != nil {
		return fail(span, fmt.Errorf("failed to insert offer image: %w", err))
	}

	r.logger.InfoContext(ctx, "Offer image created in repository",
		slog.String("offer_id", offer.ID),
	)
	return nil
}

func (r *OfferRepository) FindAll(ctx context.Context) ([]*domain.OfferImage, error) {
	ctx, span := r.tracer.Start(ctx, "OfferRepository.FindAll", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fail(span, fmt.Errorf("failed to query offer images: %w", err))
	}
	defer cursor.Close(ctx)

	var docs []offerDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fail(span, fmt.Errorf("failed to decode offer images: %w", err))
	}

	offers := make([]*domain.OfferImage, 0, len(docs))
	for _, d := range docs {
		offers = append(offers, &domain.OfferImage{ID: d.ID.Hex(), ImageURL: d.ImageURL})
	}

	span.SetAttributes(attribute.Int("offer.count", len(offers)))
	return offers, nil
}

func (r *OfferRepository) FindByID(ctx context.Context, id string) (*domain.OfferImage, error) {
	ctx, span := r.tracer.Start(ctx, "OfferRepository.FindByID", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	span.SetAttributes(attribute.String("offer.id", id))

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fail(span, domain.ErrInvalidOfferImageID)
	}

	var doc offerDocument
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fail(span, domain.ErrOfferImageNotFound)
	}
	if err != nil {
		return nil, fail(span, fmt.Errorf("failed to find offer image: %w", err))
	}

	return &domain.OfferImage{ID: doc.ID.Hex(), ImageURL: doc.ImageURL}, nil
}

func (r *OfferRepository) Delete(ctx context.Context, id string) error {
	ctx, span := r.tracer.Start(ctx, "OfferRepository.Delete", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	span.SetAttributes(attribute.String("offer.id", id))

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fail(span, domain.ErrInvalidOfferImageID)
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fail(span, fmt.Errorf("failed to delete offer image: %w", err))
	}
	if res.DeletedCount == 0 {
		return fail(span, domain.ErrOfferImageNotFound)
	}

	r.logger.InfoContext(ctx, "Offer image deleted from repository",
		slog.String("offer_id", id),
	)
	span.SetStatus(codes.Ok, "Offer image deleted")
	return nil
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
