package service

import (
	"context"
	"log/slog"

	"github.com/mrops-br/catalog-api/internal/app/dto"
	"github.com/mrops-br/catalog-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// OfferService handles offer image use cases
type OfferService struct {
	repo            domain.OfferRepository
	images          *imageJanitor
	tracer          trace.Tracer
	logger          *slog.Logger
	offerOperations metric.Int64Counter
}

func NewOfferService(
	repo domain.OfferRepository,
	images domain.ImageStore,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *OfferService {
	offerOperations, _ := meter.Int64Counter(
		"offers.operations",
		metric.WithDescription("Total number of offer image operations"),
	)

	return &OfferService{
		repo:            repo,
		images:          newImageJanitor(images, meter, logger),
		tracer:          tracer,
		logger:          logger,
		offerOperations: offerOperations,
	}
}

func (s *OfferService) ListOfferImages(ctx context.Context) ([]*dto.OfferImageSummary, error) {
	ctx, span := s.tracer.Start(ctx, "OfferService.ListOfferImages")
	defer span.End()

	offers, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, s.fail(ctx, span, "list", err)
	}

	span.SetAttributes(attribute.Int("offer.count", len(offers)))
	s.record(ctx, "list", "success")
	return dto.ToOfferImageSummaryList(offers), nil
}

func (s *OfferService) CreateOfferImage(ctx context.Context, req *dto.CreateOfferImageRequest) (*dto.OfferImageResponse, error) {
	ctx, span := s.tracer.Start(ctx, "OfferService.CreateOfferImage")
	defer span.End()

	offer, err := domain.NewOfferImage(req.ImageURL)
	if err != nil {
		return nil, s.fail(ctx, span, "create", err)
	}

	if err := s.repo.Create(ctx, offer); err != nil {
		return nil, s.fail(ctx, span, "create", err)
	}

	s.record(ctx, "create", "success")
	s.logger.InfoContext(ctx, "Offer image created successfully",
		slog.String("offer_id", offer.ID),
	)

	span.SetStatus(codes.Ok, "Offer image created")
	return dto.ToOfferImageResponse(offer), nil
}

// DeleteOfferImage removes an offer image record. imageURL is removed from
// storage first, whether or not the record exists.
func (s *OfferService) DeleteOfferImage(ctx context.Context, id, imageURL string) error {
	ctx, span := s.tracer.Start(ctx, "OfferService.DeleteOfferImage")
	defer span.End()

	span.SetAttributes(attribute.String("offer.id", id))

	if !domain.IsValidID(id) {
		return s.fail(ctx, span, "delete", domain.ErrInvalidOfferImageID)
	}

	s.images.discard(ctx, imageURL)

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return s.fail(ctx, span, "delete", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.fail(ctx, span, "delete", err)
	}

	s.record(ctx, "delete", "success")
	s.logger.InfoContext(ctx, "Offer image deleted successfully",
		slog.String("offer_id", id),
	)

	span.SetStatus(codes.Ok, "Offer image deleted")
	return nil
}

func (s *OfferService) record(ctx context.Context, operation, result string) {
	s.offerOperations.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("result", result),
		),
	)
}

func (s *OfferService) fail(ctx context.Context, span trace.Span, operation string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	result := outcome(err)
	if result == "failure" {
		s.logger.ErrorContext(ctx, "Offer image operation failed",
			slog.String("operation", operation),
			slog.String("error", err.Error()),
		)
	}

	s.record(ctx, operation, result)
	return err
}
