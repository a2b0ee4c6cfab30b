package memory

import (
	"context"
	"log/slog"
	"sync"
)

// ImageStore records image deletions instead of reaching a bucket.
// It backs local runs without storage credentials.
type ImageStore struct {
	mu      sync.Mutex
	deleted []string
	logger  *slog.Logger
}

func NewImageStore(logger *slog.Logger) *ImageStore {
	return &ImageStore{logger: logger}
}

func (s *ImageStore) DeleteByURL(ctx context.Context, publicURL string) error {
	if publicURL == "" {
		return nil
	}

	s.mu.Lock()
	s.deleted = append(s.deleted, publicURL)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Image deletion recorded",
		slog.String("image_url", publicURL),
	)
	return nil
}

// Deleted returns the URLs passed to DeleteByURL, oldest first
func (s *ImageStore) Deleted() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.deleted...)
}
