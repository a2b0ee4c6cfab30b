package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/mrops-br/catalog-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// OfferRepository is an in-memory implementation of domain.OfferRepository
type OfferRepository struct {
	mu     sync.RWMutex
	offers map[string]domain.OfferImage
	tracer trace.Tracer
	logger *slog.Logger
}

func NewOfferRepository(tracer trace.Tracer, logger *slog.Logger) *OfferRepository {
	return &OfferRepository{
		offers: make(map[string]domain.OfferImage),
		tracer: tracer,
		logger: logger,
	}
}

func (r *OfferRepository) Create(ctx context.Context, offer *domain.OfferImage) error {
	ctx, span := r.tracer.Start(ctx, "OfferRepository.Create")
	defer span.End()

	span.SetAttributes(attribute.String("offer.id", offer.ID))

	r.mu.Lock()
	r.offers[offer.ID] = *offer
	r.mu.Unlock()

	r.logger.InfoContext(ctx, "Offer image created in repository",
		slog.String("offer_id", offer.ID),
	)
	return nil
}

func (r *OfferRepository) FindAll(ctx context.Context) ([]*domain.OfferImage, error) {
	_, span := r.tracer.Start(ctx, "OfferRepository.FindAll")
	defer span.End()

	r.mu.RLock()
	offers := make([]*domain.OfferImage, 0, len(r.offers))
	for _, o := range r.offers {
		o := o
		offers = append(offers, &o)
	}
	r.mu.RUnlock()

	// ObjectIDs sort by creation time
	sort.Slice(offers, func(i, j int) bool { return offers[i].ID < offers[j].ID })

	span.SetAttributes(attribute.Int("offer.count", len(offers)))
	return offers, nil
}

func (r *OfferRepository) FindByID(ctx context.Context, id string) (*domain.OfferImage, error) {
	_, span := r.tracer.Start(ctx, "OfferRepository.FindByID")
	defer span.End()

	span.SetAttributes(attribute.String("offer.id", id))

	r.mu.RLock()
	offer, exists := r.offers[id]
	r.mu.RUnlock()

	if !exists {
		span.RecordError(domain.ErrOfferImageNotFound)
		span.SetStatus(codes.Error, "Offer image not found")
		return nil, domain.ErrOfferImageNotFound
	}
	return &offer, nil
}

func (r *OfferRepository) Delete(ctx context.Context, id string) error {
	ctx, span := r.tracer.Start(ctx, "OfferRepository.Delete")
	defer span.End()

	span.SetAttributes(attribute.String("offer.id", id))

	r.mu.Lock()
	_, exists := r.offers[id]
	delete(r.offers, id)
	r.mu.Unlock()

	if !exists {
		span.RecordError(domain.ErrOfferImageNotFound)
		span.SetStatus(codes.Error, "Offer image not found")
		return domain.ErrOfferImageNotFound
	}

	r.logger.InfoContext(ctx, "Offer image deleted from repository",
		slog.String("offer_id", id),
	)
	return nil
}
