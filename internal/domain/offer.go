package domain

import "errors"

var (
	ErrInvalidOfferImageID   = errors.New("invalid offer image ID")
	ErrOfferImageURLRequired = errors.New("image URL is required")
)

// OfferImage is a standalone promotional image. It has no update path.
type OfferImage struct {
	ID       string
	ImageURL string
}

// NewOfferImage creates a new offer image with validation
func NewOfferImage(imageURL string) (*OfferImage, error) {
	if imageURL == "" {
		return nil, ErrOfferImageURLRequired
	}
	return &OfferImage{
		ID:       NewID(),
		ImageURL: imageURL,
	}, nil
}
