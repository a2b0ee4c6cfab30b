package dto

import (
	"time"

	"github.com/mrops-br/catalog-api/internal/domain"
)

// CreateProductRequest represents the request to create a product
type CreateProductRequest struct {
	ProductName       string `json:"productName"`
	OldPrice          Number `json:"oldPrice"`
	OfferPrice        Number `json:"offerPrice"`
	Categories        string `json:"categories"`
	ProductCategoryID Number `json:"productCategoryId"`
	ProductImage      string `json:"productImage"`
}

// UpdateProductDetails carries the nested category fields of an update
type UpdateProductDetails struct {
	Categories        OptionalString `json:"categories"`
	ProductCategoryID Number         `json:"productCategoryId"`
}

// UpdateProductRequest is a partial update; absent fields are left untouched.
type UpdateProductRequest struct {
	ProductName    OptionalString        `json:"productName"`
	OldPrice       Number                `json:"oldPrice"`
	OfferPrice     Number                `json:"offerPrice"`
	ProductImage   OptionalString        `json:"productImage"`
	ProductDetails *UpdateProductDetails `json:"productDetails"`
}

// ToPatch converts the request into a domain patch. The image is copied as
// supplied; comparing it with the stored image is left to the caller.
func (r *UpdateProductRequest) ToPatch() (*domain.ProductPatch, error) {
	patch := &domain.ProductPatch{}

	if r.ProductName.Present() {
		name := r.ProductName.Value
		patch.Name = &name
	}
	if r.OldPrice.Set {
		v := r.OldPrice.Value
		patch.OldPrice = &v
	}
	if r.OfferPrice.Set {
		v := r.OfferPrice.Value
		patch.OfferPrice = &v
	}

	switch {
	case r.ProductImage.Set && r.ProductImage.Null:
		patch.ImageSet = true
	case r.ProductImage.Present():
		img := r.ProductImage.Value
		patch.ImageSet = true
		patch.Image = &img
	}

	// Categories only travel together with a category id.
	if d := r.ProductDetails; d != nil && d.ProductCategoryID.Set && d.ProductCategoryID.Value != 0 {
		id, ok := d.ProductCategoryID.Int()
		if !ok || !domain.ValidCategoryID(id) {
			return nil, domain.ErrInvalidCategoryID
		}
		patch.ProductCategoryID = &id
		if d.Categories.Set && !d.Categories.Null {
			categories := d.Categories.Value
			patch.Categories = &categories
		}
	}

	return patch, nil
}

// DeleteProductRequest optionally names the image to remove from storage
type DeleteProductRequest struct {
	Image string `json:"image"`
}

// ProductDetailsResponse is the nested category block of a product
type ProductDetailsResponse struct {
	Categories        string `json:"categories"`
	ProductCategoryID int    `json:"productCategoryId"`
}

// ProductResponse represents the full product record
type ProductResponse struct {
	ID             string                 `json:"id"`
	ProductName    string                 `json:"productName"`
	ProductImage   *string                `json:"productImage"`
	OldPrice       float64                `json:"oldPrice"`
	OfferPrice     float64                `json:"offerPrice"`
	ProductDetails ProductDetailsResponse `json:"productDetails"`
	CreatedAt      time.Time              `json:"createdAt"`
	UpdatedAt      time.Time              `json:"updatedAt"`
}

// ProductSummary is the flat projection used by list endpoints
type ProductSummary struct {
	ID                string  `json:"id"`
	ProductName       string  `json:"productName"`
	OldPrice          float64 `json:"oldPrice"`
	OfferPrice        float64 `json:"offerPrice"`
	Categories        string  `json:"categories"`
	ProductCategoryID int     `json:"productCategoryId"`
	Image             *string `json:"image"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *domain.Product) *ProductResponse {
	return &ProductResponse{
		ID:           p.ID,
		ProductName:  p.Name,
		ProductImage: p.Image,
		OldPrice:     p.OldPrice,
		OfferPrice:   p.OfferPrice,
		ProductDetails: ProductDetailsResponse{
			Categories:        p.Details.Categories,
			ProductCategoryID: p.Details.ProductCategoryID,
		},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ToProductSummaryList projects products to the flat list shape
func ToProductSummaryList(products []*domain.Product) []*ProductSummary {
	summaries := make([]*ProductSummary, len(products))
	for i, p := range products {
		summaries[i] = &ProductSummary{
			ID:                p.ID,
			ProductName:       p.Name,
			OldPrice:          p.OldPrice,
			OfferPrice:        p.OfferPrice,
			Categories:        p.Details.Categories,
			ProductCategoryID: p.Details.ProductCategoryID,
			Image:             p.Image,
		}
	}
	return summaries
}
