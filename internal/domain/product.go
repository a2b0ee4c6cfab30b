package domain

import (
	"errors"
	"time"
)

var (
	ErrInvalidProductID     = errors.New("invalid product ID")
	ErrMissingProductFields = errors.New("all fields are required")
	ErrInvalidCategoryID    = errors.New("product category ID must be between 1 and 7")
	ErrInvalidPrice         = errors.New("price must be a number")
)

// Category ids form a closed set.
const (
	MinCategoryID = 1
	MaxCategoryID = 7
)

// ProductDetails groups the category fields of a product
type ProductDetails struct {
	Categories        string
	ProductCategoryID int
}

// Product represents the product entity
type Product struct {
	ID         string
	Name       string
	Image      *string
	OldPrice   float64
	OfferPrice float64
	Details    ProductDetails
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewProduct creates a new product with validation
func NewProduct(name, image string, oldPrice, offerPrice float64, details ProductDetails) (*Product, error) {
	now := time.Now().UTC()
	product := &Product{
		ID:         NewID(),
		Name:       name,
		Image:      &image,
		OldPrice:   oldPrice,
		OfferPrice: offerPrice,
		Details:    details,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}

	return product, nil
}

// Validate performs business validation on the product.
// Zero prices and empty strings count as missing.
func (p *Product) Validate() error {
	if p.Name == "" || p.Image == nil || *p.Image == "" ||
		p.OldPrice == 0 || p.OfferPrice == 0 ||
		p.Details.Categories == "" || p.Details.ProductCategoryID == 0 {
		return ErrMissingProductFields
	}
	if !ValidCategoryID(p.Details.ProductCategoryID) {
		return ErrInvalidCategoryID
	}
	return nil
}

// ImageURL returns the stored image URL or "" when the image was cleared.
func (p *Product) ImageURL() string {
	if p.Image == nil {
		return ""
	}
	return *p.Image
}

// ValidCategoryID reports whether id belongs to the closed category set
func ValidCategoryID(id int) bool {
	return id >= MinCategoryID && id <= MaxCategoryID
}

// ProductPatch describes a partial update. Nil pointers leave the field untouched.
type ProductPatch struct {
	Name       *string
	OldPrice   *float64
	OfferPrice *float64

	// ImageSet marks Image as part of the patch; Image nil then clears the field.
	ImageSet bool
	Image    *string

	Categories        *string
	ProductCategoryID *int
}

// Empty reports whether the patch changes nothing.
func (p *ProductPatch) Empty() bool {
	return p.Name == nil && p.OldPrice == nil && p.OfferPrice == nil &&
		!p.ImageSet && p.Categories == nil && p.ProductCategoryID == nil
}

// Apply mutates product in place with the fields present in the patch.
func (p *ProductPatch) Apply(product *Product) {
	if p.Name != nil {
		product.Name = *p.Name
	}
	if p.OldPrice != nil {
		product.OldPrice = *p.OldPrice
	}
	if p.OfferPrice != nil {
		product.OfferPrice = *p.OfferPrice
	}
	if p.ImageSet {
		if p.Image == nil {
			product.Image = nil
		} else {
			img := *p.Image
			product.Image = &img
		}
	}
	if p.Categories != nil {
		product.Details.Categories = *p.Categories
	}
	if p.ProductCategoryID != nil {
		product.Details.ProductCategoryID = *p.ProductCategoryID
	}
}
