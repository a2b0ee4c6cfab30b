package gcs

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/storage"
	"github.com/mrops-br/catalog-api/internal/infrastructure/config"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/api/option"
)

// Bucket deletes image objects from a Cloud Storage (Firebase Storage) bucket.
type Bucket struct {
	client *storage.Client
	handle *storage.BucketHandle
	tracer trace.Tracer
	logger *slog.Logger
}

// NewBucket opens a storage client authenticated with the service account
// credentials file named in cfg.
func NewBucket(ctx context.Context, cfg *config.StorageConfig, tracer trace.Tracer, logger *slog.Logger) (*Bucket, error) {
	client, err := storage.NewClient(ctx, option.WithCredentialsFile(cfg.CredentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &Bucket{
		client: client,
		handle: client.Bucket(cfg.Bucket),
		tracer: tracer,
		logger: logger,
	}, nil
}

// DeleteByURL removes the object referenced by publicURL. URLs that do not
// point into the bucket are logged and ignored.
func (b *Bucket) DeleteByURL(ctx context.Context, publicURL string) error {
	ctx, span := b.tracer.Start(ctx, "Bucket.DeleteByURL", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	if publicURL == "" {
		b.logger.InfoContext(ctx, "No image URL provided for deletion")
		return nil
	}

	path, ok, err := ObjectPathFromURL(publicURL)
	if !ok {
		b.logger.WarnContext(ctx, "Invalid image URL format",
			slog.String("image_url", publicURL),
		)
		return nil
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid object path")
		return err
	}

	span.SetAttributes(attribute.String("storage.object", path))

	if err := b.handle.Object(path).Delete(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to delete object")
		return fmt.Errorf("failed to delete object %q: %w", path, err)
	}

	b.logger.InfoContext(ctx, "Deleted image from storage",
		slog.String("object", path),
	)
	span.SetStatus(codes.Ok, "Object deleted")
	return nil
}

// Close releases the underlying storage client
func (b *Bucket) Close() error {
	return b.client.Close()
}
