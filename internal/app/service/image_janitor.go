package service

import (
	"context"
	"log/slog"

	"github.com/mrops-br/catalog-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// imageJanitor removes images from object storage on a best-effort basis.
// Failures are logged and counted; they never reach the caller.
type imageJanitor struct {
	store    domain.ImageStore
	logger   *slog.Logger
	cleanups metric.Int64Counter
}

func newImageJanitor(store domain.ImageStore, meter metric.Meter, logger *slog.Logger) *imageJanitor {
	cleanups, _ := meter.Int64Counter(
		"images.cleanup",
		metric.WithDescription("Image deletions attempted against object storage"),
	)

	return &imageJanitor{
		store:    store,
		logger:   logger,
		cleanups: cleanups,
	}
}

// discard deletes imageURL and reports whether it succeeded.
func (j *imageJanitor) discard(ctx context.Context, imageURL string) bool {
	if imageURL == "" {
		return true
	}

	if err := j.store.DeleteByURL(ctx, imageURL); err != nil {
		j.logger.WarnContext(ctx, "Failed to delete image from storage",
			slog.String("image_url", imageURL),
			slog.String("error", err.Error()),
		)
		j.cleanups.Add(ctx, 1, metric.WithAttributes(attribute.String("result", "failure")))
		return false
	}

	j.cleanups.Add(ctx, 1, metric.WithAttributes(attribute.String("result", "success")))
	return true
}
