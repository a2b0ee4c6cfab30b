package memory

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/mrops-br/catalog-api/internal/domain"
	"go.opentelemetry.io/otel/trace/noop"
)

func newTestProductRepo() *ProductRepository {
	return NewProductRepository(noop.NewTracerProvider().Tracer("test"), slog.New(slog.DiscardHandler))
}

func mustProduct(t *testing.T, name string, categoryID int) *domain.Product {
	t.Helper()
	p, err := domain.NewProduct(name, "https://img/"+name, 100, 80, domain.ProductDetails{
		Categories:        "cat",
		ProductCategoryID: categoryID,
	})
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestProductRepositoryLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := newTestProductRepo()

	p := mustProduct(t, "A", 3)
	if err := repo.Create(ctx, p); err != nil {
		t.Fatal(err)
	}

	got, err := repo.FindByID(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "A" || got.ImageURL() != "https://img/A" {
		t.Errorf("FindByID() = %+v", got)
	}

	// Mutating the returned copy must not leak into the store.
	got.Name = "mutated"
	if again, _ := repo.FindByID(ctx, p.ID); again.Name != "A" {
		t.Errorf("store mutated through returned pointer: %q", again.Name)
	}

	name := "B"
	updated, err := repo.Update(ctx, p.ID, &domain.ProductPatch{Name: &name, ImageSet: true})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Name != "B" || updated.Image != nil {
		t.Errorf("Update() = %+v", updated)
	}
	if updated.UpdatedAt.Before(updated.CreatedAt) {
		t.Errorf("UpdatedAt went backwards: %v < %v", updated.UpdatedAt, updated.CreatedAt)
	}

	if err := repo.Delete(ctx, p.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.FindByID(ctx, p.ID); !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("FindByID() after delete error = %v", err)
	}
	if err := repo.Delete(ctx, p.ID); !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("second Delete() error = %v", err)
	}
	if _, err := repo.Update(ctx, p.ID, &domain.ProductPatch{Name: &name}); !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("Update() after delete error = %v", err)
	}
}

func TestProductRepositoryFindByCategory(t *testing.T) {
	ctx := context.Background()
	repo := newTestProductRepo()

	for _, p := range []*domain.Product{mustProduct(t, "a", 1), mustProduct(t, "b", 2), mustProduct(t, "c", 2)} {
		if err := repo.Create(ctx, p); err != nil {
			t.Fatal(err)
		}
	}

	all, _ := repo.FindAll(ctx)
	if len(all) != 3 {
		t.Errorf("FindAll() returned %d products, want 3", len(all))
	}

	two, _ := repo.FindByCategory(ctx, 2)
	if len(two) != 2 {
		t.Errorf("FindByCategory(2) returned %d products, want 2", len(two))
	}

	none, _ := repo.FindByCategory(ctx, 7)
	if len(none) != 0 {
		t.Errorf("FindByCategory(7) returned %d products, want 0", len(none))
	}
}

func TestOfferRepositoryLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewOfferRepository(noop.NewTracerProvider().Tracer("test"), slog.New(slog.DiscardHandler))

	offer, err := domain.NewOfferImage("https://img/offer")
	if err != nil {
		t.Fatal(err)
	}
	if err := repo.Create(ctx, offer); err != nil {
		t.Fatal(err)
	}

	offers, _ := repo.FindAll(ctx)
	if len(offers) != 1 || offers[0].ImageURL != "https://img/offer" {
		t.Errorf("FindAll() = %+v", offers)
	}

	if _, err := repo.FindByID(ctx, offer.ID); err != nil {
		t.Errorf("FindByID() error = %v", err)
	}
	if err := repo.Delete(ctx, offer.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.FindByID(ctx, offer.ID); !errors.Is(err, domain.ErrOfferImageNotFound) {
		t.Errorf("FindByID() after delete error = %v", err)
	}
}
