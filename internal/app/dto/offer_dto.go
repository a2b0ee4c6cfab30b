package dto

import "github.com/mrops-br/catalog-api/internal/domain"

type CreateOfferImageRequest struct {
	ImageURL string `json:"imageUrl"`
}

// DeleteOfferImageRequest optionally names the image to remove from storage
type DeleteOfferImageRequest struct {
	ImageURL string `json:"imageUrl"`
}

// OfferImageResponse is returned when an offer image is created
type OfferImageResponse struct {
	ID       string `json:"id"`
	ImageURL string `json:"imageUrl"`
}

// OfferImageSummary is the list projection
type OfferImageSummary struct {
	ID    string `json:"id"`
	Image string `json:"image"`
}

func ToOfferImageResponse(o *domain.OfferImage) *OfferImageResponse {
	return &OfferImageResponse{ID: o.ID, ImageURL: o.ImageURL}
}

func ToOfferImageSummaryList(offers []*domain.OfferImage) []*OfferImageSummary {
	summaries := make([]*OfferImageSummary, len(offers))
	for i, o := range offers {
		summaries[i] = &OfferImageSummary{ID: o.ID, Image: o.ImageURL}
	}
	return summaries
}
