package memory

import (
	"context"
	"log/slog"
	"testing"
)

func TestImageStoreRecordsDeletions(t *testing.T) {
	store := NewImageStore(slog.New(slog.DiscardHandler))
	ctx := context.Background()

	for _, u := range []string{"a", "", "b"} {
		if err := store.DeleteByURL(ctx, u); err != nil {
			t.Fatalf("DeleteByURL(%q) error = %v", u, err)
		}
	}

	got := store.Deleted()
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("Deleted() = %v, want [a b]", got)
	}
}
