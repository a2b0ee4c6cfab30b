package domain

import (
	"context"
	"errors"
)

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrNoProductsInCategory = errors.New("no products found for this category")
	ErrOfferImageNotFound   = errors.New("offer image not found")
)

// ProductRepository defines the contract for product storage
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id string) (*Product, error)
	FindAll(ctx context.Context) ([]*Product, error)
	FindByCategory(ctx context.Context, categoryID int) ([]*Product, error)
	// Update applies patch and returns the stored product after the update.
	Update(ctx context.Context, id string, patch *ProductPatch) (*Product, error)
	Delete(ctx context.Context, id string) error
}

// OfferRepository defines the contract for offer image storage
type OfferRepository interface {
	Create(ctx context.Context, offer *OfferImage) error
	FindAll(ctx context.Context) ([]*OfferImage, error)
	FindByID(ctx context.Context, id string) (*OfferImage, error)
	Delete(ctx context.Context, id string) error
}

// ImageStore removes image blobs referenced by their public URL.
type ImageStore interface {
	DeleteByURL(ctx context.Context, publicURL string) error
}
