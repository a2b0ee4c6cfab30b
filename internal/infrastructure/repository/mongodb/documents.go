package mongodb

import (
	"time"

	"github.com/mrops-br/catalog-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type productDetailsDocument struct {
	Categories        string `bson:"categories"`
	ProductCategoryID int    `bson:"productCategoryId"`
}

type productDocument struct {
	ID             primitive.ObjectID     `bson:"_id"`
	ProductName    string                 `bson:"productName"`
	ProductImage   *string                `bson:"productImage"`
	OldPrice       float64                `bson:"oldPrice"`
	OfferPrice     float64                `bson:"offerPrice"`
	ProductDetails productDetailsDocument `bson:"productDetails"`
	CreatedAt      time.Time              `bson:"createdAt"`
	UpdatedAt      time.Time              `bson:"updatedAt"`
}

type offerDocument struct {
	ID       primitive.ObjectID `bson:"_id"`
	ImageURL string             `bson:"imageUrl"`
}

func toProductDocument(p *domain.Product) (*productDocument, error) {
	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return nil, domain.ErrInvalidProductID
	}
	return &productDocument{
		ID:           oid,
		ProductName:  p.Name,
		ProductImage: p.Image,
		OldPrice:     p.OldPrice,
		OfferPrice:   p.OfferPrice,
		ProductDetails: productDetailsDocument{
			Categories:        p.Details.Categories,
			ProductCategoryID: p.Details.ProductCategoryID,
		},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}, nil
}

func (d *productDocument) toDomain() *domain.Product {
	return &domain.Product{
		ID:         d.ID.Hex(),
		Name:       d.ProductName,
		Image:      d.ProductImage,
		OldPrice:   d.OldPrice,
		OfferPrice: d.OfferPrice,
		Details: domain.ProductDetails{
			Categories:        d.ProductDetails.Categories,
			ProductCategoryID: d.ProductDetails.ProductCategoryID,
		},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// patchToSet translates a patch into a $set document using dotted paths
// for nested category fields, so sibling fields are left alone.
func patchToSet(patch *domain.ProductPatch, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	if patch.Name != nil {
		set["productName"] = *patch.Name
	}
	if patch.OldPrice != nil {
		set["oldPrice"] = *patch.OldPrice
	}
	if patch.OfferPrice != nil {
		set["offerPrice"] = *patch.OfferPrice
	}
	if patch.ImageSet {
		if patch.Image == nil {
			set["productImage"] = nil
		} else {
			set["productImage"] = *patch.Image
		}
	}
	if patch.Categories != nil {
		set["productDetails.categories"] = *patch.Categories
	}
	if patch.ProductCategoryID != nil {
		set["productDetails.productCategoryId"] = *patch.ProductCategoryID
	}
	return set
}
